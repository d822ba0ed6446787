package otmath

// Decoding tests run against a small synthetic MATH table, assembled
// byte by byte the way a font editor would emit it.

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/mex/core/font"
)

type binBuilder []byte

func (b *binBuilder) u16(v uint16) {
	*b = append(*b, byte(v>>8), byte(v))
}

func (b *binBuilder) i16(v int16) {
	b.u16(uint16(v))
}

// synthMath builds a MATH table with one covered glyph (gid 7) and a
// vertical construction for gid 40.
func synthMath() fontBinSegm {
	// constants subtable
	consts := binBuilder{}
	consts.i16(80) // ScriptPercentScaleDown
	consts.i16(60) // ScriptScriptPercentScaleDown
	consts.u16(1500)
	consts.u16(1800)
	for i := 4; i <= 54; i++ {
		switch font.Constant(i) {
		case font.AxisHeight:
			consts.i16(250)
		case font.FractionRuleThickness:
			consts.i16(40)
		case font.SubscriptShiftDown:
			consts.i16(210)
		default:
			consts.i16(0)
		}
		consts.u16(0) // device table offset
	}
	consts.i16(60) // RadicalDegreeBottomRaisePercent

	// coverage table for gid 7, format 1
	cov7 := binBuilder{}
	cov7.u16(1)
	cov7.u16(1)
	cov7.u16(7)

	// italics correction: header(4) + 1 record(4) + coverage
	italics := binBuilder{}
	italics.u16(8) // coverage offset
	italics.u16(1)
	italics.i16(35)
	italics.u16(0)
	italics = append(italics, cov7...)

	// top accent attachment, same shape
	topAccent := binBuilder{}
	topAccent.u16(8)
	topAccent.u16(1)
	topAccent.i16(300)
	topAccent.u16(0)
	topAccent = append(topAccent, cov7...)

	// kern info: header(4) + 1 record(8 = 4 offsets) + kern table + coverage
	kernInfo := binBuilder{}
	kernInfo.u16(12 + 14) // coverage offset: header + record + kern table
	kernInfo.u16(1)
	kernInfo.u16(12) // top-right kern table offset
	kernInfo.u16(0)  // top-left
	kernInfo.u16(0)  // bottom-right
	kernInfo.u16(0)  // bottom-left
	// MathKern: 1 height, 2 kern values
	kernInfo.u16(1)
	kernInfo.i16(100) // correction height
	kernInfo.u16(0)
	kernInfo.i16(10) // kern below height 100
	kernInfo.u16(0)
	kernInfo.i16(-15) // kern above
	kernInfo.u16(0)
	kernInfo = append(kernInfo, cov7...)

	// glyph info section: header(8) + the three subtables
	glyphInfo := binBuilder{}
	glyphInfo.u16(8)
	glyphInfo.u16(8 + uint16(len(italics)))
	glyphInfo.u16(0) // extended shapes
	glyphInfo.u16(8 + uint16(len(italics)) + uint16(len(topAccent)))
	glyphInfo = append(glyphInfo, italics...)
	glyphInfo = append(glyphInfo, topAccent...)
	glyphInfo = append(glyphInfo, kernInfo...)

	// variants section for gid 40: header(10) + constr offset array(2)
	// + construction + assembly + coverage
	constr := binBuilder{}
	constr.u16(4 + 2*4) // assembly offset, relative to construction
	constr.u16(2)       // variant count
	constr.u16(1000)
	constr.u16(900)
	constr.u16(1001)
	constr.u16(1400)
	// assembly: italics record + part count + 2 parts
	constr.i16(0)
	constr.u16(0)
	constr.u16(2)
	constr.u16(2000) // part glyph
	constr.u16(0)    // start connector
	constr.u16(100)  // end connector
	constr.u16(600)  // full advance
	constr.u16(0)    // flags
	constr.u16(2001)
	constr.u16(100)
	constr.u16(100)
	constr.u16(500)
	constr.u16(1) // extender

	cov40 := binBuilder{}
	cov40.u16(1)
	cov40.u16(1)
	cov40.u16(40)

	variants := binBuilder{}
	variants.u16(20)                        // min connector overlap
	variants.u16(12 + uint16(len(constr))) // vertical coverage offset
	variants.u16(0)                        // horizontal coverage
	variants.u16(1)                        // vertical construction count
	variants.u16(0)
	variants.u16(12) // construction offset
	variants = append(variants, constr...)
	variants = append(variants, cov40...)

	table := binBuilder{}
	table.u16(1)
	table.u16(0)
	constOff := uint16(10)
	glyphInfoOff := constOff + uint16(len(consts))
	variantsOff := glyphInfoOff + uint16(len(glyphInfo))
	table.u16(constOff)
	table.u16(glyphInfoOff)
	table.u16(variantsOff)
	table = append(table, consts...)
	table = append(table, glyphInfo...)
	table = append(table, variants...)
	return fontBinSegm(table)
}

func TestMathConstants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	m, err := parseMath(synthMath())
	if err != nil {
		t.Fatalf("parsing MATH table failed: %v", err)
	}
	cases := []struct {
		c    font.Constant
		want int32
	}{
		{font.ScriptPercentScaleDown, 80},
		{font.ScriptScriptPercentScaleDown, 60},
		{font.DelimitedSubFormulaMinHeight, 1500},
		{font.DisplayOperatorMinHeight, 1800},
		{font.AxisHeight, 250},
		{font.FractionRuleThickness, 40},
		{font.SubscriptShiftDown, 210},
		{font.RadicalDegreeBottomRaisePercent, 60},
		{font.StackGapMin, 0},
	}
	for _, c := range cases {
		got, err := m.constant(c.c)
		if err != nil {
			t.Errorf("reading %s failed: %v", c.c, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s should be %d, is %d", c.c, c.want, got)
		}
	}
}

func TestMathGlyphInfo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	m, err := parseMath(synthMath())
	if err != nil {
		t.Fatal(err)
	}
	if ic := m.italicsCorrection(7); ic != 35 {
		t.Errorf("italics correction of glyph 7 should be 35, is %d", ic)
	}
	if ic := m.italicsCorrection(8); ic != 0 {
		t.Errorf("italics correction of uncovered glyph should be 0, is %d", ic)
	}
	ta, ok := m.topAccentAttachment(7)
	if !ok || ta != 300 {
		t.Errorf("top accent of glyph 7 should be 300, is %d (%v)", ta, ok)
	}
	if k := m.kern(7, font.TopRight, 50); k != 10 {
		t.Errorf("kern below the correction height should be 10, is %d", k)
	}
	if k := m.kern(7, font.TopRight, 150); k != -15 {
		t.Errorf("kern above the correction height should be -15, is %d", k)
	}
	if k := m.kern(7, font.TopLeft, 50); k != 0 {
		t.Errorf("absent corner table should kern 0, is %d", k)
	}
}

func TestMathVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	m, err := parseMath(synthMath())
	if err != nil {
		t.Fatal(err)
	}
	chain := m.variantChain(40, font.Vertical)
	if len(chain) != 2 {
		t.Fatalf("expected a variant chain of 2, got %d", len(chain))
	}
	if chain[0].GID != 1000 || chain[0].Advance != 900 {
		t.Errorf("first chain entry is %+v", chain[0])
	}
	if chain[1].GID != 1001 || chain[1].Advance != 1400 {
		t.Errorf("second chain entry is %+v", chain[1])
	}
	if got := m.variantChain(41, font.Vertical); got != nil {
		t.Errorf("uncovered glyph should have no chain, got %+v", got)
	}
	asm, ok := m.assembly(40, font.Vertical)
	if !ok {
		t.Fatal("expected an assembly for glyph 40")
	}
	if asm.MinConnectorOverlap != 20 || len(asm.Parts) != 2 {
		t.Fatalf("assembly decoded as %+v", asm)
	}
	if asm.Parts[0].Extender || !asm.Parts[1].Extender {
		t.Error("extender flags decoded wrongly")
	}
	if asm.Parts[1].GID != 2001 || asm.Parts[1].FullAdvance != 500 {
		t.Errorf("second part decoded as %+v", asm.Parts[1])
	}
}
