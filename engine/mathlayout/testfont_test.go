package mathlayout

// A synthetic math font with regular metrics, so tests can predict
// positions exactly. Units per em is 1000; glyph ids equal codepoints
// except for variant and styled glyphs.

import (
	"github.com/npillmayer/mex/core/font"
)

type testFont struct{}

const styledGlyphBase = 20000

func (f *testFont) UnitsPerEm() int32 { return 1000 }

func (f *testFont) GlyphIndex(r rune) (font.GlyphID, bool) {
	if r > 0xFFFF {
		if r >= 0x1D400 && r < 0x1D800 {
			return font.GlyphID(r-0x1D400) + styledGlyphBase, true
		}
		return 0, false
	}
	return font.GlyphID(r), true
}

var testVariantMetrics = map[font.GlyphID]font.Metrics{
	1000: {Advance: 500, YMax: 700, YMin: -200},  // '(' chain
	1001: {Advance: 500, YMax: 1150, YMin: -250},
	1002: {Advance: 500, YMax: 1650, YMin: -350},
	2000: {Advance: 500, YMax: 600, YMin: 0},     // '(' assembly parts
	2001: {Advance: 500, YMax: 500, YMin: 0},
	2002: {Advance: 500, YMax: 600, YMin: 0},
	3000: {Advance: 700, YMax: 1300, YMin: -200}, // large operator
	4000: {Advance: 600, YMax: 1000, YMin: -200}, // radical sign chain
	4001: {Advance: 600, YMax: 1800, YMin: -200},
}

func (f *testFont) Metrics(gid font.GlyphID) (font.Metrics, error) {
	if m, ok := testVariantMetrics[gid]; ok {
		return m, nil
	}
	if gid >= styledGlyphBase {
		// styled letters and digits
		return font.Metrics{
			Advance: 500, YMax: 450,
			ItalicsCorrection: 60,
			TopAccent:         250, HasTopAccent: true,
		}, nil
	}
	r := rune(gid)
	switch {
	case r >= '0' && r <= '9':
		return font.Metrics{Advance: 500, YMax: 650}, nil
	case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		return font.Metrics{Advance: 500, YMax: 450,
			TopAccent: 250, HasTopAccent: true}, nil
	case r == '(' || r == ')' || r == '[' || r == ']':
		return font.Metrics{Advance: 500, YMax: 700, YMin: -200}, nil
	case r == '√' || r == '∛' || r == '∜':
		return font.Metrics{Advance: 600, YMax: 800, YMin: -200}, nil
	case r == '∑' || r == '∫' || r == '∏':
		return font.Metrics{Advance: 700, YMax: 700, YMin: -200,
			ItalicsCorrection: 80}, nil
	case r >= 0x300 && r <= 0x36F || r == '⃗' || r == '̅' || r == '̲':
		// combining accents sit above the x-height
		return font.Metrics{Advance: 300, YMax: 750, YMin: 550,
			TopAccent: 150, HasTopAccent: true}, nil
	case r == '⏞' || r == '⏟':
		return font.Metrics{Advance: 800, YMax: 750, YMin: 550}, nil
	}
	return font.Metrics{Advance: 500, YMax: 500, YMin: -50}, nil
}

var testConstants = map[font.Constant]int32{
	font.ScriptPercentScaleDown:                   70,
	font.ScriptScriptPercentScaleDown:             50,
	font.DelimitedSubFormulaMinHeight:             1300,
	font.DisplayOperatorMinHeight:                 1400,
	font.AxisHeight:                               250,
	font.AccentBaseHeight:                         450,
	font.SubscriptShiftDown:                       210,
	font.SubscriptTopMax:                          350,
	font.SubscriptBaselineDropMin:                 50,
	font.SuperscriptShiftUp:                       360,
	font.SuperscriptShiftUpCramped:                280,
	font.SuperscriptBottomMin:                     120,
	font.SuperscriptBaselineDropMax:               230,
	font.SubSuperscriptGapMin:                     150,
	font.SuperscriptBottomMaxWithSubscript:        320,
	font.UpperLimitGapMin:                         100,
	font.UpperLimitBaselineRiseMin:                200,
	font.LowerLimitGapMin:                         100,
	font.LowerLimitBaselineDropMin:                400,
	font.StackTopShiftUp:                          450,
	font.StackTopDisplayStyleShiftUp:              700,
	font.StackBottomShiftDown:                     350,
	font.StackBottomDisplayStyleShiftDown:         600,
	font.StackGapMin:                              120,
	font.StackDisplayStyleGapMin:                  250,
	font.FractionNumeratorShiftUp:                 390,
	font.FractionNumeratorDisplayStyleShiftUp:     580,
	font.FractionDenominatorShiftDown:             480,
	font.FractionDenominatorDisplayStyleShiftDown: 700,
	font.FractionNumeratorGapMin:                  40,
	font.FractionNumDisplayStyleGapMin:            120,
	font.FractionRuleThickness:                    40,
	font.FractionDenominatorGapMin:                40,
	font.FractionDenomDisplayStyleGapMin:          120,
	font.RadicalVerticalGap:                       50,
	font.RadicalDisplayStyleVerticalGap:           120,
	font.RadicalRuleThickness:                     40,
	font.RadicalExtraAscender:                     40,
	font.RadicalKernBeforeDegree:                  280,
	font.RadicalKernAfterDegree:                   -550,
	font.RadicalDegreeBottomRaisePercent:          60,
}

func (f *testFont) Constant(c font.Constant) (int32, error) {
	return testConstants[c], nil
}

func (f *testFont) Variants(gid font.GlyphID, axis font.Axis) []font.Variant {
	if axis != font.Vertical {
		return nil
	}
	switch rune(gid) {
	case '(', ')':
		return []font.Variant{
			{GID: 1000, Advance: 900},
			{GID: 1001, Advance: 1400},
			{GID: 1002, Advance: 2000},
		}
	case '√', '∛', '∜':
		return []font.Variant{
			{GID: 4000, Advance: 1200},
			{GID: 4001, Advance: 2000},
		}
	case '∑', '∫', '∏':
		return []font.Variant{
			{GID: 3000, Advance: 1500},
		}
	}
	return nil
}

func (f *testFont) Assembly(gid font.GlyphID, axis font.Axis) (font.Assembly, bool) {
	if axis != font.Vertical {
		return font.Assembly{}, false
	}
	switch rune(gid) {
	case '(', ')', '√':
		return font.Assembly{
			MinConnectorOverlap: 20,
			Parts: []font.AssemblyPart{
				{GID: 2000, EndConnector: 100, FullAdvance: 600},
				{GID: 2001, StartConnector: 100, EndConnector: 100, FullAdvance: 500, Extender: true},
				{GID: 2002, StartConnector: 100, FullAdvance: 600},
			},
		}, true
	}
	return font.Assembly{}, false
}

func (f *testFont) Kern(gid font.GlyphID, corner font.Corner, height int32) int32 {
	return 0
}

var _ font.MathFont = &testFont{}
