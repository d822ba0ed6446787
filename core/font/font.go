/*
Package font provides the font-side interface of the math typesetting
engine: the contract a font parser has to fulfil, and a font context
which caches the OpenType MATH constants needed during layout.

All metric values at this level are in font units (funits); scaling to
scaled points happens in the layout engine, which knows about font
size and script level.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"github.com/npillmayer/mex/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("mex.fonts")
}

// GlyphID is a glyph index in a font.
type GlyphID uint16

// Axis is the direction in which a glyph is stretched.
type Axis int8

// Stretch directions.
const (
	Horizontal Axis = iota
	Vertical
)

// Corner denotes a corner of a glyph's bounding box, for cut-in
// kerning of scripts.
type Corner int8

// Bounding box corners.
const (
	TopRight Corner = iota
	TopLeft
	BottomRight
	BottomLeft
)

// Metrics are the measurements of a single glyph, in font units.
type Metrics struct {
	Advance           int32
	XMin, YMin        int32
	XMax, YMax        int32
	ItalicsCorrection int32
	TopAccent         int32 // top-accent attachment x-position
	HasTopAccent      bool
}

// Height is the extent of the glyph above the baseline.
func (m Metrics) Height() int32 {
	return m.YMax
}

// Depth is the lowest point of the glyph relative to the baseline
// (YMin): negative for glyphs reaching below the baseline, positive
// for glyphs entirely above it.
func (m Metrics) Depth() int32 {
	return m.YMin
}

// Variant is one entry of a variant chain: a progressively larger
// alternative for a glyph, with its advance along the stretch axis.
type Variant struct {
	GID     GlyphID
	Advance int32
}

// AssemblyPart is one part of a glyph assembly recipe.
type AssemblyPart struct {
	GID            GlyphID
	StartConnector int32
	EndConnector   int32
	FullAdvance    int32
	Extender       bool
}

// Assembly is a recipe for building an arbitrarily large glyph from
// parts: top/bottom (or left/right) pieces plus repeatable extenders.
type Assembly struct {
	Parts               []AssemblyPart
	MinConnectorOverlap int32
}

// MathFont is the contract to be fulfilled by an external font parser.
// Implementations must be re-entrant if a font is to be shared between
// concurrently running layout calls.
type MathFont interface {
	// UnitsPerEm returns the font's design grid size.
	UnitsPerEm() int32
	// GlyphIndex returns the glyph for a codepoint, or false if the
	// font has no glyph for it.
	GlyphIndex(r rune) (GlyphID, bool)
	// Metrics returns the measurements of a glyph.
	Metrics(gid GlyphID) (Metrics, error)
	// Constant returns an OpenType MATH constant. Fonts without a MATH
	// table return an error for every constant.
	Constant(c Constant) (int32, error)
	// Variants returns the variant chain for a glyph along an axis,
	// ordered smallest to largest. An empty chain is allowed.
	Variants(gid GlyphID, axis Axis) []Variant
	// Assembly returns the assembly recipe for a glyph along an axis,
	// if the font provides one.
	Assembly(gid GlyphID, axis Axis) (Assembly, bool)
	// Kern returns the cut-in correction for a corner of a glyph at a
	// given height above (below) the baseline, in font units.
	Kern(gid GlyphID, corner Corner, correctionHeight int32) int32
}

// ErrGlyphNotFound flags codepoints without a glyph in the font.
// Layout aborts on it; there is no glyph substitution fallback.
func ErrGlyphNotFound(r rune) error {
	return core.Error(core.EMISSING, "font has no glyph for %q (U+%04X)", r, r)
}

// ErrMissingMathConstant flags fonts without a usable MATH table.
func ErrMissingMathConstant(c Constant) error {
	return core.Error(core.EMISSING, "font lacks MATH constant %s", c)
}
