package mathlayout

// The layout tree: boxes with absolute extents in scaled points.
//
// A vertical box advances its children by their heights; a child's
// depth reaches into the following vertical kern, which the layout
// procedures account for. The box offset shifts contents below the
// baseline: height shrinks by the offset, depth grows by it.

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
)

// Node is a layout tree node: extents plus a variant body.
// Height extends above the baseline, Depth below; a glyph whose ink
// sits entirely above the baseline may report a negative depth.
type Node struct {
	W, H, D dimen.Dimen
	Body    Body
}

// Body is the variant part of a layout node.
type Body interface {
	body()
}

// Glyph draws a single glyph at the baseline.
type Glyph struct {
	GID     font.GlyphID
	Scale   float64 // scaling from font units to scaled points
	Italics dimen.Dimen
	Attach  dimen.Dimen // top-accent attachment, scaled
	HasAttach bool
}

// HBox places children side by side on a common baseline.
type HBox struct {
	Contents []Node
	Offset   dimen.Dimen
	Align    Alignment
}

// VBox stacks children on top of each other.
type VBox struct {
	Contents []Node
	Offset   dimen.Dimen
}

// RuleBody is a filled rectangle.
type RuleBody struct{}

// KernBody is an empty advance.
type KernBody struct{}

// ColorBody renders its children in a colour scope.
type ColorBody struct {
	Color    color.RGBA
	Contents []Node
}

func (*Glyph) body()     {}
func (*HBox) body()      {}
func (*VBox) body()      {}
func (RuleBody) body()   {}
func (KernBody) body()   {}
func (*ColorBody) body() {}

func (n Node) String() string {
	switch b := n.Body.(type) {
	case *Glyph:
		return fmt.Sprintf("glyph(%d)", b.GID)
	case *HBox:
		return fmt.Sprintf("hbox(%d children)", len(b.Contents))
	case *VBox:
		return fmt.Sprintf("vbox(%d children)", len(b.Contents))
	case RuleBody:
		return fmt.Sprintf("rule(%v x %v)", n.W, n.H)
	case KernBody:
		if n.W != 0 {
			return fmt.Sprintf("kern(%v)", n.W)
		}
		return fmt.Sprintf("vkern(%v)", n.H)
	case *ColorBody:
		return fmt.Sprintf("color(%d children)", len(b.Contents))
	}
	return "<undefined layout node>"
}

// AlignKind is a horizontal alignment mode.
type AlignKind int8

// Alignment modes for box contents.
const (
	AlignDefault AlignKind = iota
	AlignCentered
	AlignLeft
	AlignRight
)

// Alignment aligns box contents of a given natural width within the
// box's (possibly wider) extent.
type Alignment struct {
	Kind  AlignKind
	Width dimen.Dimen // natural width of the contents
}

// hkern returns an empty horizontal advance.
func hkern(w dimen.Dimen) Node {
	return Node{W: w, Body: KernBody{}}
}

// vkern returns an empty vertical advance.
func vkern(h dimen.Dimen) Node {
	return Node{H: h, Body: KernBody{}}
}

// rule returns a filled rectangle node.
func rule(w, h dimen.Dimen) Node {
	return Node{W: w, H: h, Body: RuleBody{}}
}

// IsGlyph reports a node tree that consists of exactly one glyph,
// looking through single-child boxes and colour scopes.
func (n Node) IsGlyph() (*Glyph, bool) {
	switch b := n.Body.(type) {
	case *Glyph:
		return b, true
	case *HBox:
		return singleGlyph(b.Contents)
	case *VBox:
		return singleGlyph(b.Contents)
	case *ColorBody:
		return singleGlyph(b.Contents)
	}
	return nil, false
}

func singleGlyph(contents []Node) (*Glyph, bool) {
	if len(contents) != 1 {
		return nil, false
	}
	return contents[0].IsGlyph()
}

// --- List accumulation -----------------------------------------------------

// hlist accumulates nodes horizontally, tracking extents.
type hlist struct {
	contents []Node
	w, h, d  dimen.Dimen
	offset   dimen.Dimen
	align    Alignment
}

func (l *hlist) add(n Node) {
	l.w += n.W
	l.h = dimen.Max(l.h, n.H)
	l.d = dimen.Max(l.d, n.D)
	l.contents = append(l.contents, n)
}

func (l *hlist) prepend(n Node) {
	l.w += n.W
	l.h = dimen.Max(l.h, n.H)
	l.d = dimen.Max(l.d, n.D)
	l.contents = append([]Node{n}, l.contents...)
}

// finalize applies the offset to the extents.
func (l *hlist) finalize() {
	l.h -= l.offset
	l.d += l.offset
}

// asNode packs the list into an HBox node.
func (l *hlist) asNode() Node {
	return Node{
		W: l.w, H: l.h, D: l.d,
		Body: &HBox{Contents: l.contents, Offset: l.offset, Align: l.align},
	}
}

// centered widens the list to the given width and centres the
// contents in it.
func (l *hlist) centered(width dimen.Dimen) {
	l.align = Alignment{Kind: AlignCentered, Width: l.w}
	l.w = width
}

// isGlyph reports a list holding exactly one glyph node.
func (l *hlist) isGlyph() (*Glyph, bool) {
	return singleGlyph(l.contents)
}

// vbox builds a vertical box.
type vbox struct {
	contents []Node
	w, h     dimen.Dimen
	offset   dimen.Dimen
}

func (v *vbox) add(n Node) {
	v.w = dimen.Max(v.w, n.W)
	v.h += n.H
	v.contents = append(v.contents, n)
}

func (v *vbox) prepend(n Node) {
	v.w = dimen.Max(v.w, n.W)
	v.h += n.H
	v.contents = append([]Node{n}, v.contents...)
}

// build packs the box; the depth stems from the last child and the
// offset.
func (v *vbox) build() Node {
	var d dimen.Dimen
	if len(v.contents) > 0 {
		d = v.contents[len(v.contents)-1].D
	}
	return Node{
		W: v.w, H: v.h - v.offset, D: d + v.offset,
		Body: &VBox{Contents: v.contents, Offset: v.offset},
	}
}

// centerOnAxis shifts a node so that its vertical centre sits on the
// math axis.
func centerOnAxis(n Node, axis dimen.Dimen) Node {
	shift := (n.H - n.D)/2 - axis
	switch b := n.Body.(type) {
	case *VBox:
		b.Offset += shift
		n.H -= shift
		n.D += shift
	case *Glyph:
		vb := vbox{offset: shift}
		vb.add(n)
		return vb.build()
	}
	return n
}
