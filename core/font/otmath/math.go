package otmath

// Decoding of the OpenType MATH table.
//
// Code comments often cite passages from the OpenType specification
// version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/math.

import (
	"github.com/npillmayer/mex/core/font"
)

// mathTable navigates a font's MATH table. All contained segments are
// sub-slices of the font's binary data.
type mathTable struct {
	constants fontBinSegm // MathConstants subtable

	italics      fontBinSegm // MathItalicsCorrectionInfo
	italicsCov   coverage
	topAccent    fontBinSegm // MathTopAccentAttachment
	topAccentCov coverage
	kernInfo     fontBinSegm // MathKernInfo
	kernCov      coverage

	variants            fontBinSegm // MathVariants
	minConnectorOverlap uint16
	vertCov, horizCov   coverage
	vertConstrBase      int // offset of construction offset array
	horizConstrBase     int
	vertCount           int
	horizCount          int
}

// parseMath decodes the three sections of a MATH table: constants,
// per-glyph info, and variants.
// "The MATH table begins with a header… majorVersion, minorVersion,
// mathConstantsOffset, mathGlyphInfoOffset, mathVariantsOffset."
func parseMath(b fontBinSegm) (*mathTable, error) {
	if len(b) < 10 {
		return nil, errBufferBounds
	}
	m := &mathTable{}
	constOff := int(u16(b[4:]))
	glyphInfoOff := int(u16(b[6:]))
	variantsOff := int(u16(b[8:]))
	var err error
	if m.constants, err = b.view(constOff, 214); err != nil {
		return nil, errFontFormat("MATH constants table")
	}
	if err = m.parseGlyphInfo(b, glyphInfoOff); err != nil {
		return nil, err
	}
	if err = m.parseVariants(b, variantsOff); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *mathTable) parseGlyphInfo(b fontBinSegm, off int) error {
	gi, err := b.view(off, 8)
	if err != nil {
		return errFontFormat("MATH glyph info table")
	}
	base := b[off:]
	if o := int(u16(gi)); o != 0 {
		m.italics = base[o:]
		if co, err2 := m.italics.u16(0); err2 == nil {
			m.italicsCov = coverage{m.italics[co:]}
		}
	}
	if o := int(u16(gi[2:])); o != 0 {
		m.topAccent = base[o:]
		if co, err2 := m.topAccent.u16(0); err2 == nil {
			m.topAccentCov = coverage{m.topAccent[co:]}
		}
	}
	// gi[4:] is the extended-shape coverage, which we do not interpret
	if o := int(u16(gi[6:])); o != 0 {
		m.kernInfo = base[o:]
		if co, err2 := m.kernInfo.u16(0); err2 == nil {
			m.kernCov = coverage{m.kernInfo[co:]}
		}
	}
	return nil
}

func (m *mathTable) parseVariants(b fontBinSegm, off int) error {
	v, err := b.view(off, 10)
	if err != nil {
		return errFontFormat("MATH variants table")
	}
	m.variants = b[off:]
	m.minConnectorOverlap = u16(v)
	vertCovOff := int(u16(v[2:]))
	horizCovOff := int(u16(v[4:]))
	m.vertCount = int(u16(v[6:]))
	m.horizCount = int(u16(v[8:]))
	if vertCovOff != 0 {
		m.vertCov = coverage{m.variants[vertCovOff:]}
	}
	if horizCovOff != 0 {
		m.horizCov = coverage{m.variants[horizCovOff:]}
	}
	m.vertConstrBase = 10
	m.horizConstrBase = 10 + 2*m.vertCount
	return nil
}

// --- Constants -------------------------------------------------------------

// constant returns a MATH constant by table position. The first two
// constants are percentages, the next two unsigned design units, the
// bulk MathValueRecords, and the final one again a percentage.
func (m *mathTable) constant(c font.Constant) (int32, error) {
	switch {
	case c <= font.ScriptScriptPercentScaleDown:
		v, err := m.constants.i16(2 * int(c))
		return int32(v), err
	case c <= font.DisplayOperatorMinHeight:
		v, err := m.constants.u16(2 * int(c))
		return int32(v), err
	case c <= font.RadicalKernAfterDegree:
		// MathValueRecord: FWORD value plus a device table offset,
		// which we ignore
		v, err := m.constants.i16(8 + 4*(int(c)-4))
		return int32(v), err
	case c == font.RadicalDegreeBottomRaisePercent:
		v, err := m.constants.i16(212)
		return int32(v), err
	}
	return 0, errFontFormat("MATH constant index")
}

// --- Per-glyph info --------------------------------------------------------

func (m *mathTable) italicsCorrection(gid uint16) int32 {
	if m.italics == nil {
		return 0
	}
	idx, ok := m.italicsCov.index(gid)
	if !ok {
		return 0
	}
	v, err := m.italics.i16(4 + 4*idx)
	if err != nil {
		return 0
	}
	return int32(v)
}

func (m *mathTable) topAccentAttachment(gid uint16) (int32, bool) {
	if m.topAccent == nil {
		return 0, false
	}
	idx, ok := m.topAccentCov.index(gid)
	if !ok {
		return 0, false
	}
	v, err := m.topAccent.i16(4 + 4*idx)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

// kern returns the cut-in kern value for a glyph corner at the given
// correction height.
// "The kerning value corresponding to a particular height is
// determined by finding two consecutive entries in the
// correctionHeight array such that the given height is greater than
// or equal to the first entry and less than the second entry."
func (m *mathTable) kern(gid uint16, corner font.Corner, height int32) int32 {
	if m.kernInfo == nil {
		return 0
	}
	idx, ok := m.kernCov.index(gid)
	if !ok {
		return 0
	}
	rec, err := m.kernInfo.view(4+8*idx, 8)
	if err != nil {
		return 0
	}
	var kernOff int
	switch corner {
	case font.TopRight:
		kernOff = int(u16(rec))
	case font.TopLeft:
		kernOff = int(u16(rec[2:]))
	case font.BottomRight:
		kernOff = int(u16(rec[4:]))
	case font.BottomLeft:
		kernOff = int(u16(rec[6:]))
	}
	if kernOff == 0 {
		return 0
	}
	kt := m.kernInfo[kernOff:]
	heightCount, err := kt.u16(0)
	if err != nil {
		return 0
	}
	n := int(heightCount)
	for i := 0; i < n; i++ {
		h, err2 := kt.i16(2 + 4*i)
		if err2 != nil {
			return 0
		}
		if height < int32(h) {
			v, _ := kt.i16(2 + 4*n + 4*i)
			return int32(v)
		}
	}
	v, _ := kt.i16(2 + 4*n + 4*n)
	return int32(v)
}

// --- Variants and assemblies -----------------------------------------------

// construction returns the MathGlyphConstruction segment for a glyph
// along an axis, if any.
func (m *mathTable) construction(gid uint16, axis font.Axis) (fontBinSegm, bool) {
	var cov coverage
	var base, count int
	if axis == font.Vertical {
		cov, base, count = m.vertCov, m.vertConstrBase, m.vertCount
	} else {
		cov, base, count = m.horizCov, m.horizConstrBase, m.horizCount
	}
	idx, ok := cov.index(gid)
	if !ok || idx >= count {
		return nil, false
	}
	off, err := m.variants.u16(base + 2*idx)
	if err != nil || off == 0 {
		return nil, false
	}
	return m.variants[off:], true
}

func (m *mathTable) variantChain(gid uint16, axis font.Axis) []font.Variant {
	constr, ok := m.construction(gid, axis)
	if !ok {
		return nil
	}
	count, err := constr.u16(2)
	if err != nil {
		return nil
	}
	chain := make([]font.Variant, 0, count)
	for i := 0; i < int(count); i++ {
		rec, err2 := constr.view(4+4*i, 4)
		if err2 != nil {
			break
		}
		chain = append(chain, font.Variant{
			GID:     font.GlyphID(u16(rec)),
			Advance: int32(u16(rec[2:])),
		})
	}
	return chain
}

func (m *mathTable) assembly(gid uint16, axis font.Axis) (font.Assembly, bool) {
	constr, ok := m.construction(gid, axis)
	if !ok {
		return font.Assembly{}, false
	}
	asmOff, err := constr.u16(0)
	if err != nil || asmOff == 0 {
		return font.Assembly{}, false
	}
	// GlyphAssembly: italicsCorrection MathValueRecord, partCount,
	// then partCount GlyphPart records of 10 bytes
	asm := constr[asmOff:]
	count, err := asm.u16(4)
	if err != nil {
		return font.Assembly{}, false
	}
	parts := make([]font.AssemblyPart, 0, count)
	for i := 0; i < int(count); i++ {
		rec, err2 := asm.view(6+10*i, 10)
		if err2 != nil {
			return font.Assembly{}, false
		}
		parts = append(parts, font.AssemblyPart{
			GID:            font.GlyphID(u16(rec)),
			StartConnector: int32(u16(rec[2:])),
			EndConnector:   int32(u16(rec[4:])),
			FullAdvance:    int32(u16(rec[6:])),
			Extender:       u16(rec[8:])&0x0001 != 0,
		})
	}
	return font.Assembly{
		Parts:               parts,
		MinConnectorOverlap: int32(m.minConnectorOverlap),
	}, true
}
