/*
Package gfx renders layout trees onto a drawing backend.

The renderer driver walks a layout tree in drawing order, accumulates
absolute positions, and issues primitive calls to a Canvas. Positions
are in big points, with y growing downwards; (0,0) is the baseline
origin of the formula.

Two concrete canvases ship with the package: an SVG writer and a
rasterizer drawing into an image.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package gfx

import (
	"image/color"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/mathlayout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.render'.
func tracer() tracing.Trace {
	return tracing.Select("mex.render")
}

// Canvas is the contract to be fulfilled by a rendering backend.
// Errors from backends are returned unchanged to the caller of
// Render; nothing is retried.
type Canvas interface {
	// Symbol draws a glyph with its baseline origin at (x,y).
	// The scale converts font units to big points.
	Symbol(x, y float64, gid font.GlyphID, scale float64) error
	// Rule fills a rectangle with top-left corner at (x,y).
	Rule(x, y, width, height float64) error
	// BeginColor opens a colour scope; scopes nest.
	BeginColor(rgba color.RGBA) error
	// EndColor closes the innermost colour scope.
	EndColor() error
	// BeginTransform opens a scope scaled by scale and translated by
	// (tx,ty), for backends that draw assembled glyph pieces with a
	// scaling fallback.
	BeginTransform(scale, tx, ty float64) error
	// EndTransform closes the innermost transform scope.
	EndTransform() error
}

// Render walks a layout tree and draws it onto a canvas, with the
// formula baseline origin at (x,y).
func Render(layout mathlayout.Node, canvas Canvas, x, y float64) error {
	r := renderer{canvas: canvas}
	tracer().Debugf("rendering layout %v at (%.2f,%.2f)", layout, x, y)
	return r.node(pos{x, y}, layout)
}

type pos struct {
	x, y float64
}

func (p pos) right(d float64) pos { p.x += d; return p }
func (p pos) down(d float64) pos  { p.y += d; return p }
func (p pos) up(d float64) pos    { p.y -= d; return p }

type renderer struct {
	canvas Canvas
}

func (r renderer) node(p pos, n mathlayout.Node) error {
	switch b := n.Body.(type) {
	case *mathlayout.Glyph:
		return r.canvas.Symbol(p.x, p.y, b.GID, glyphScale(b))
	case mathlayout.RuleBody:
		return r.canvas.Rule(p.x, p.y-n.H.Points(), n.W.Points(), n.H.Points())
	case *mathlayout.HBox:
		return r.hbox(p, b.Contents, n.W, b.Align, b.Offset)
	case *mathlayout.VBox:
		return r.vbox(p.up(n.H.Points()), b.Contents)
	case *mathlayout.ColorBody:
		if err := r.canvas.BeginColor(b.Color); err != nil {
			return err
		}
		if err := r.hbox(p, b.Contents, n.W, mathlayout.Alignment{}, 0); err != nil {
			return err
		}
		return r.canvas.EndColor()
	case mathlayout.KernBody:
		return nil
	}
	return nil
}

// hbox renders children side by side on the baseline through p,
// honoring the box alignment.
func (r renderer) hbox(p pos, children []mathlayout.Node, width dimen.Dimen,
	align mathlayout.Alignment, offset dimen.Dimen) error {
	switch align.Kind {
	case mathlayout.AlignCentered:
		p = p.right((width - align.Width).Points() / 2)
	case mathlayout.AlignRight:
		p = p.right((width - align.Width).Points())
	}
	p = p.down(offset.Points())
	for _, child := range children {
		if err := r.node(p, child); err != nil {
			return err
		}
		p = p.right(child.W.Points())
	}
	return nil
}

// vbox renders children stacked downwards from the top edge p,
// advancing by each child's height.
func (r renderer) vbox(p pos, children []mathlayout.Node) error {
	for _, child := range children {
		switch b := child.Body.(type) {
		case mathlayout.RuleBody:
			if err := r.canvas.Rule(p.x, p.y, child.W.Points(), child.H.Points()); err != nil {
				return err
			}
		case *mathlayout.Glyph:
			if err := r.canvas.Symbol(p.x, p.y+child.H.Points(), b.GID, glyphScale(b)); err != nil {
				return err
			}
		case *mathlayout.HBox:
			if err := r.hbox(p.down(child.H.Points()), b.Contents, child.W, b.Align, b.Offset); err != nil {
				return err
			}
		case *mathlayout.VBox:
			if err := r.vbox(p, b.Contents); err != nil {
				return err
			}
		case *mathlayout.ColorBody:
			if err := r.canvas.BeginColor(b.Color); err != nil {
				return err
			}
			if err := r.hbox(p.down(child.H.Points()), b.Contents, child.W, mathlayout.Alignment{}, 0); err != nil {
				return err
			}
			if err := r.canvas.EndColor(); err != nil {
				return err
			}
		}
		p = p.down(child.H.Points())
	}
	return nil
}

// glyphScale converts the layout glyph scale (scaled points per font
// unit) to big points per font unit.
func glyphScale(g *mathlayout.Glyph) float64 {
	return g.Scale / 65536.0
}
