package otmath

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/mex/core/font"
	xfont "golang.org/x/image/font"
)

// Font is an OpenType font with a MATH table. It implements
// font.MathFont. A Font is immutable after parsing and re-entrant:
// sfnt scratch buffers are allocated per call.
type Font struct {
	otf  *sfnt.Font
	upem int32
	math *mathTable // nil if the font has no MATH table
}

// Parse decodes an OpenType font from its binary data. Fonts without
// a MATH table parse successfully, but will fail on the first request
// for a math constant.
func Parse(data []byte) (*Font, error) {
	otf, err := sfnt.Parse(data)
	if err != nil {
		return nil, errFontFormat(err.Error())
	}
	f := &Font{otf: otf, upem: int32(otf.UnitsPerEm())}
	seg, err := locateTable(data, "MATH")
	if err != nil {
		return nil, err
	}
	if seg == nil {
		tracer().Infof("font carries no MATH table")
		return f, nil
	}
	if f.math, err = parseMath(seg); err != nil {
		return nil, err
	}
	return f, nil
}

// SFNT exposes the underlying sfnt font, e.g. for backends that need
// glyph outlines.
func (f *Font) SFNT() *sfnt.Font {
	return f.otf
}

// HasMath tells whether the font carries a MATH table.
func (f *Font) HasMath() bool {
	return f.math != nil
}

// locateTable finds a table in the font's table directory and returns
// its byte segment, or nil if the font has no such table.
func locateTable(data fontBinSegm, tag string) (fontBinSegm, error) {
	if len(data) < 12 {
		return nil, errFontFormat("table directory")
	}
	base := 0
	if string(data[0:4]) == "ttcf" {
		// font collection: use the first font
		off, err := data.view(12, 4)
		if err != nil {
			return nil, errFontFormat("font collection header")
		}
		base = int(u32(off))
		if base+12 > len(data) {
			return nil, errFontFormat("font collection offset")
		}
	}
	numTables := int(u16(data[base+4:]))
	records, err := data.view(base+12, 16*numTables)
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := records; len(b) >= 16; b = b[16:] {
		if string(b[0:4]) != tag {
			continue
		}
		off, size := u32(b[8:12]), u32(b[12:16])
		return data.view(int(off), int(size))
	}
	return nil, nil
}

// --- font.MathFont ---------------------------------------------------------

// UnitsPerEm returns the font's design grid size.
func (f *Font) UnitsPerEm() int32 {
	return f.upem
}

// GlyphIndex returns the glyph for a codepoint.
// Character codes without a glyph map to glyph 0 (.notdef), which we
// report as not-found.
func (f *Font) GlyphIndex(r rune) (font.GlyphID, bool) {
	var buf sfnt.Buffer
	gid, err := f.otf.GlyphIndex(&buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return font.GlyphID(gid), true
}

// Metrics returns the measurements of a glyph in font units.
func (f *Font) Metrics(gid font.GlyphID) (font.Metrics, error) {
	var buf sfnt.Buffer
	// Querying at ppem = units-per-em makes the returned fixed-point
	// values numerically equal to font units.
	ppem := fixed.Int26_6(f.upem)
	bounds, adv, err := f.otf.GlyphBounds(&buf, sfnt.GlyphIndex(gid), ppem, xfont.HintingNone)
	if err != nil {
		return font.Metrics{}, errFontFormat("glyph metrics")
	}
	m := font.Metrics{
		Advance: int32(adv),
		XMin:    int32(bounds.Min.X),
		XMax:    int32(bounds.Max.X),
		// sfnt bounds have Y growing downwards
		YMax: int32(-bounds.Min.Y),
		YMin: int32(-bounds.Max.Y),
	}
	if f.math != nil {
		m.ItalicsCorrection = f.math.italicsCorrection(uint16(gid))
		m.TopAccent, m.HasTopAccent = f.math.topAccentAttachment(uint16(gid))
	}
	return m, nil
}

// Constant returns an OpenType MATH constant in design units.
func (f *Font) Constant(c font.Constant) (int32, error) {
	if f.math == nil {
		return 0, font.ErrMissingMathConstant(c)
	}
	return f.math.constant(c)
}

// Variants returns the variant chain for a glyph along an axis,
// smallest to largest.
func (f *Font) Variants(gid font.GlyphID, axis font.Axis) []font.Variant {
	if f.math == nil {
		return nil
	}
	return f.math.variantChain(uint16(gid), axis)
}

// Assembly returns the assembly recipe for a glyph along an axis.
func (f *Font) Assembly(gid font.GlyphID, axis font.Axis) (font.Assembly, bool) {
	if f.math == nil {
		return font.Assembly{}, false
	}
	return f.math.assembly(uint16(gid), axis)
}

// Kern returns the cut-in correction for a glyph corner at the given
// correction height.
func (f *Font) Kern(gid font.GlyphID, corner font.Corner, height int32) int32 {
	if f.math == nil {
		return 0
	}
	return f.math.kern(uint16(gid), corner, height)
}

var _ font.MathFont = &Font{}
