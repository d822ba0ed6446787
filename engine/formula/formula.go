/*
Package formula defines the parse tree for math formulas.

Parse nodes are closed tagged variants: every node type is a struct
implementing the Node marker interface. Trees are strict, with single
ownership from root to leaves; nodes carry no layout information.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package formula

import (
	"image/color"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/mathsym"
)

// Node is a parse tree node.
type Node interface {
	node()
	// Class is the atom class an atom list sees for this node.
	// Wrapper nodes surface the class of their content.
	Class() mathsym.AtomClass
}

// List is an ordered sequence of parse nodes (a math list).
type List []Node

// --- Node variants ---------------------------------------------------------

// Symbol is a single symbol atom. FontStyle records an enclosing font
// style command; the layout engine maps (codepoint, style) through the
// math-alphanumerics table.
type Symbol struct {
	Sym   mathsym.Symbol
	Style mathsym.FontStyle
}

// Delimited is a \left…\right group, with optional \middle pieces.
// Delims holds the n+1 delimiters enclosing the n inner lists, in
// declaration order; a '.' codepoint denotes a null delimiter.
type Delimited struct {
	Delims []mathsym.Symbol
	Inners []List
}

// Scripts attaches a superscript and/or subscript to a nucleus.
// The nucleus is never nil.
type Scripts struct {
	Nucleus Node
	Sup     List
	Sub     List
}

// BarSpec is a fraction bar thickness request.
type BarSpec struct {
	Default   bool // use the font's FractionRuleThickness
	Thickness dimen.Dimen
}

// StyleOverride is a style change requested by a command variant like
// \dfrac or \tfrac.
type StyleOverride int8

// Style overrides.
const (
	NoStyleChange StyleOverride = iota
	ForceDisplay
	ForceText
	ForceScript
	ForceScriptScript
)

// GenFraction is a generalized fraction: numerator over denominator,
// with a bar of the given thickness and optional enclosing delimiters
// (as for \binom).
type GenFraction struct {
	Numer, Denom List
	Bar          BarSpec
	Left, Right  *mathsym.Symbol
	Style        StyleOverride
}

// RadicalShape selects the radical sign.
type RadicalShape int8

// Radical shapes.
const (
	SquareRoot RadicalShape = iota
	CubeRoot
	FourthRoot
)

// Codepoint returns the radical sign for the shape.
func (sh RadicalShape) Codepoint() rune {
	switch sh {
	case CubeRoot:
		return '∛'
	case FourthRoot:
		return '∜'
	}
	return '√'
}

// Radical is a root: radicand under a radical sign, with an optional
// index as in \sqrt[n]{x}.
type Radical struct {
	Radicand List
	Index    List
	Shape    RadicalShape
}

// Accent places an accent symbol over or under a nucleus. Stretchy
// accents grow with the nucleus width.
type Accent struct {
	Nucleus  List
	Sym      mathsym.Symbol
	Under    bool
	Stretchy bool
}

// ColAlign is a column alignment in an array.
type ColAlign int8

// Column alignments.
const (
	ColCenter ColAlign = iota
	ColLeft
	ColRight
)

// ColSpec describes one column of an array: alignment, the number of
// vertical rules drawn before/after it, and an optional custom
// separator text from an @{…} token, which replaces the default
// column separation.
type ColSpec struct {
	Align      ColAlign
	BarsBefore int
	BarsAfter  int
	SepBefore  *string
	SepAfter   *string
}

// Array is a rows/columns structure: environments array, the matrix
// family, aligned and substack. Rows may be ragged; layout pads them
// with empty cells.
type Array struct {
	Rows        [][]List
	RowSeps     []dimen.Dimen // extra space after each row, from \\[len]
	Cols        []ColSpec
	Left, Right *mathsym.Symbol
	Env         string
	Aligned     bool // R/L column pairs, as in the aligned environment
	Small       bool // script-script cells, as in \substack
}

// Group is a braced group, laid out as a sub-list.
type Group struct {
	Inner List
}

// StyleSize is a math style size class.
type StyleSize int8

// Style size classes.
const (
	Display StyleSize = iota
	Text
	Script
	ScriptScript
)

// Style wraps a list under an explicit style, as set by the style
// switch commands.
type Style struct {
	Inner   List
	Size    StyleSize
	Cramped bool
}

// Rule is a filled rectangle of absolute dimensions.
type Rule struct {
	Width, Height dimen.Dimen
}

// Kern is an empty horizontal advance, either absolute or relative to
// the current em size.
type Kern struct {
	Amount dimen.Dimen // used when Em == 0
	Em     float64     // em-relative amount, may be negative
}

// PlainText is naive upright text, as in \text{…}. SizeAdaptive
// distinguishes \text (scales with script level) from \mbox.
type PlainText struct {
	Text         string
	SizeAdaptive bool
}

// Color renders its content in a colour scope.
type Color struct {
	Color color.RGBA
	Inner List
}

// AtomChange overrides the atom class of its content, as set by
// \mathbin and friends. For class Op, Limits carries the limits flag.
type AtomChange struct {
	Target mathsym.AtomClass
	Limits bool
	Inner  List
}

// Extend stretches a symbol to a target height. The fixed-size
// delimiter commands \big…\Bigg instead set Size to a variant chain
// index 1…4, ignoring Height.
type Extend struct {
	Sym    mathsym.Symbol
	Height dimen.Dimen
	Size   int
}

// --- Marker and classification ---------------------------------------------

func (*Symbol) node()      {}
func (*Delimited) node()   {}
func (*Scripts) node()     {}
func (*GenFraction) node() {}
func (*Radical) node()     {}
func (*Accent) node()      {}
func (*Array) node()       {}
func (*Group) node()       {}
func (*Style) node()       {}
func (*Rule) node()        {}
func (*Kern) node()        {}
func (*PlainText) node()   {}
func (*Color) node()       {}
func (*AtomChange) node()  {}
func (*Extend) node()      {}

// classOf surfaces the class of the first node of a list, Ord for an
// empty list.
func classOf(l List) mathsym.AtomClass {
	if len(l) == 0 {
		return mathsym.Ord
	}
	return l[0].Class()
}

// Class of a symbol is its table class.
func (s *Symbol) Class() mathsym.AtomClass { return s.Sym.Class }

// Class of a delimited group is Inner.
func (d *Delimited) Class() mathsym.AtomClass { return mathsym.Inner }

// Class of a script node is the class of its nucleus.
func (s *Scripts) Class() mathsym.AtomClass { return s.Nucleus.Class() }

// Class of a fraction is Inner.
func (f *GenFraction) Class() mathsym.AtomClass { return mathsym.Inner }

// Class of a radical is Ord.
func (r *Radical) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of an accented atom is Ord.
func (a *Accent) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of an array is Inner.
func (a *Array) Class() mathsym.AtomClass { return mathsym.Inner }

// Class of a group is Ord.
func (g *Group) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of a style wrapper is transparent.
func (s *Style) Class() mathsym.AtomClass { return classOf(s.Inner) }

// Class of a rule is Ord.
func (r *Rule) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of a kern is Ord; spacing treats kerns as transparent.
func (k *Kern) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of plain text is Ord.
func (t *PlainText) Class() mathsym.AtomClass { return mathsym.Ord }

// Class of a colour wrapper is transparent.
func (c *Color) Class() mathsym.AtomClass { return classOf(c.Inner) }

// Class of an atom-change is its target class.
func (a *AtomChange) Class() mathsym.AtomClass { return a.Target }

// Class of an extended symbol is the symbol's class.
func (e *Extend) Class() mathsym.AtomClass { return e.Sym.Class }
