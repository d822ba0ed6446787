package gfx

// An SVG canvas: glyph outlines from the sfnt font become <path>
// elements, rules become <rect>. Output coordinates are big points
// with y growing downwards, matching the SVG convention.

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/mathlayout"
)

// SVG is a Canvas writing SVG markup.
type SVG struct {
	font       *sfnt.Font
	upem       fixed.Int26_6
	body       strings.Builder
	colorStack []color.RGBA
	fill       color.RGBA
	transforms int
}

// NewSVG creates an SVG canvas drawing glyphs from the given font.
func NewSVG(f *sfnt.Font) *SVG {
	return &SVG{
		font: f,
		upem: fixed.Int26_6(f.UnitsPerEm()),
		fill: color.RGBA{A: 0xff},
	}
}

// Symbol draws a glyph outline.
func (svg *SVG) Symbol(x, y float64, gid font.GlyphID, scale float64) error {
	var buf sfnt.Buffer
	// at ppem = upem the segment coordinates equal font units
	segments, err := svg.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), svg.upem, nil)
	if err != nil {
		return err
	}
	var d strings.Builder
	pt := func(p fixed.Point26_6) (float64, float64) {
		return float64(p.X) / 64.0, float64(p.Y) / 64.0
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			px, py := pt(seg.Args[0])
			fmt.Fprintf(&d, "M%.2f %.2f", px, py)
		case sfnt.SegmentOpLineTo:
			px, py := pt(seg.Args[0])
			fmt.Fprintf(&d, "L%.2f %.2f", px, py)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			px, py := pt(seg.Args[1])
			fmt.Fprintf(&d, "Q%.2f %.2f %.2f %.2f", cx, cy, px, py)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			px, py := pt(seg.Args[2])
			fmt.Fprintf(&d, "C%.2f %.2f %.2f %.2f %.2f %.2f", c1x, c1y, c2x, c2y, px, py)
		}
	}
	d.WriteString("Z")
	fmt.Fprintf(&svg.body,
		"<path transform=\"translate(%.2f %.2f) scale(%.6f)\" d=\"%s\" fill=\"%s\"/>\n",
		x, y, scale, d.String(), svgColor(svg.fill))
	return nil
}

// Rule fills a rectangle.
func (svg *SVG) Rule(x, y, width, height float64) error {
	fmt.Fprintf(&svg.body,
		"<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"/>\n",
		x, y, width, height, svgColor(svg.fill))
	return nil
}

// BeginColor opens a colour scope.
func (svg *SVG) BeginColor(rgba color.RGBA) error {
	svg.colorStack = append(svg.colorStack, svg.fill)
	svg.fill = rgba
	return nil
}

// EndColor restores the previous colour.
func (svg *SVG) EndColor() error {
	if n := len(svg.colorStack); n > 0 {
		svg.fill = svg.colorStack[n-1]
		svg.colorStack = svg.colorStack[:n-1]
	}
	return nil
}

// BeginTransform opens a transform scope.
func (svg *SVG) BeginTransform(scale, tx, ty float64) error {
	fmt.Fprintf(&svg.body, "<g transform=\"translate(%.2f %.2f) scale(%.6f)\">\n", tx, ty, scale)
	svg.transforms++
	return nil
}

// EndTransform closes the innermost transform scope.
func (svg *SVG) EndTransform() error {
	if svg.transforms > 0 {
		svg.body.WriteString("</g>\n")
		svg.transforms--
	}
	return nil
}

func svgColor(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WriteDocument wraps the drawn content into a complete SVG document
// sized for the given layout, with a small margin.
func (svg *SVG) WriteDocument(w io.Writer, layout mathlayout.Node) error {
	const margin = 2.0
	width := layout.W.Points() + 2*margin
	height := layout.H.Points() + layout.D.Points() + 2*margin
	_, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.2fpt\" height=\"%.2fpt\" "+
			"viewBox=\"%.2f %.2f %.2f %.2f\">\n%s</svg>\n",
		width, height,
		-margin, -layout.H.Points()-margin, width, height,
		svg.body.String())
	return err
}

// RenderSVG typesets nothing itself; it renders an already computed
// layout tree into a complete SVG document.
func RenderSVG(layout mathlayout.Node, f *sfnt.Font, w io.Writer) error {
	canvas := NewSVG(f)
	if err := Render(layout, canvas, 0, 0); err != nil {
		return err
	}
	return canvas.WriteDocument(w, layout)
}
