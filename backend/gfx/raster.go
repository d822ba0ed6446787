package gfx

// A rasterizing canvas drawing into an RGBA image, with glyph
// outlines filled through rasterx.

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/mathlayout"
)

// Raster is a Canvas rasterizing into an image.
type Raster struct {
	font       *sfnt.Font
	upem       fixed.Int26_6
	img        *image.RGBA
	filler     *rasterx.Filler
	dpi        float64 // pixels per big point
	colorStack []color.RGBA
	fill       color.RGBA
}

// NewRaster creates a rasterizing canvas of the given pixel size.
// Scale is the number of pixels per big point.
func NewRaster(f *sfnt.Font, width, height int, scale float64) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Raster{
		font:   f,
		upem:   fixed.Int26_6(f.UnitsPerEm()),
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dpi:    scale,
		fill:   color.RGBA{A: 0xff},
	}
}

// Image returns the image drawn so far.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Symbol rasterizes a glyph outline with its baseline origin at
// (x,y) big points.
func (r *Raster) Symbol(x, y float64, gid font.GlyphID, scale float64) error {
	var buf sfnt.Buffer
	segments, err := r.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), r.upem, nil)
	if err != nil {
		return err
	}
	s := scale * r.dpi
	px := func(p fixed.Point26_6) (float64, float64) {
		return x*r.dpi + float64(p.X)/64.0*s, y*r.dpi + float64(p.Y)/64.0*s
	}
	r.filler.Clear()
	r.filler.SetColor(r.fill)
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.filler.Stop(true)
			}
			ax, ay := px(seg.Args[0])
			r.filler.Start(rasterx.ToFixedP(ax, ay))
			open = true
		case sfnt.SegmentOpLineTo:
			ax, ay := px(seg.Args[0])
			r.filler.Line(rasterx.ToFixedP(ax, ay))
		case sfnt.SegmentOpQuadTo:
			cx, cy := px(seg.Args[0])
			ax, ay := px(seg.Args[1])
			r.filler.QuadBezier(rasterx.ToFixedP(cx, cy), rasterx.ToFixedP(ax, ay))
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := px(seg.Args[0])
			c2x, c2y := px(seg.Args[1])
			ax, ay := px(seg.Args[2])
			r.filler.CubeBezier(rasterx.ToFixedP(c1x, c1y), rasterx.ToFixedP(c2x, c2y),
				rasterx.ToFixedP(ax, ay))
		}
	}
	if open {
		r.filler.Stop(true)
	}
	r.filler.Draw()
	return nil
}

// Rule fills a rectangle with top-left corner at (x,y) big points.
func (r *Raster) Rule(x, y, width, height float64) error {
	r.filler.Clear()
	r.filler.SetColor(r.fill)
	x0, y0 := x*r.dpi, y*r.dpi
	x1, y1 := (x+width)*r.dpi, (y+height)*r.dpi
	r.filler.Start(rasterx.ToFixedP(x0, y0))
	r.filler.Line(rasterx.ToFixedP(x1, y0))
	r.filler.Line(rasterx.ToFixedP(x1, y1))
	r.filler.Line(rasterx.ToFixedP(x0, y1))
	r.filler.Stop(true)
	r.filler.Draw()
	return nil
}

// BeginColor opens a colour scope.
func (r *Raster) BeginColor(rgba color.RGBA) error {
	r.colorStack = append(r.colorStack, r.fill)
	r.fill = rgba
	return nil
}

// EndColor restores the previous colour.
func (r *Raster) EndColor() error {
	if n := len(r.colorStack); n > 0 {
		r.fill = r.colorStack[n-1]
		r.colorStack = r.colorStack[:n-1]
	}
	return nil
}

// BeginTransform is accepted but ignored; assembled glyph pieces are
// drawn at their own positions.
func (r *Raster) BeginTransform(scale, tx, ty float64) error {
	return nil
}

// EndTransform closes the innermost transform scope.
func (r *Raster) EndTransform() error {
	return nil
}

// RenderImage renders a layout tree into a fresh image, with a small
// margin, at the given pixels-per-point scale.
func RenderImage(layout mathlayout.Node, f *sfnt.Font, scale float64) (*image.RGBA, error) {
	const margin = 2.0
	width := int((layout.W.Points() + 2*margin) * scale)
	height := int((layout.H.Points() + layout.D.Points() + 2*margin) * scale)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	canvas := NewRaster(f, width, height, scale)
	if err := Render(layout, canvas, margin, layout.H.Points()+margin); err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}
