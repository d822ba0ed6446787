package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// stubFont is a synthetic math font for exercising variant selection.
type stubFont struct {
	hasMath bool
}

func (f *stubFont) UnitsPerEm() int32 { return 1000 }

func (f *stubFont) GlyphIndex(r rune) (GlyphID, bool) {
	if r > 0xFFFF {
		return 0, false
	}
	return GlyphID(r), true
}

func (f *stubFont) Metrics(gid GlyphID) (Metrics, error) {
	return Metrics{Advance: 500, YMax: 700, YMin: -200}, nil
}

func (f *stubFont) Constant(c Constant) (int32, error) {
	if !f.hasMath {
		return 0, ErrMissingMathConstant(c)
	}
	switch c {
	case ScriptPercentScaleDown:
		return 70, nil
	case ScriptScriptPercentScaleDown:
		return 50, nil
	case AxisHeight:
		return 250, nil
	}
	return 0, nil
}

func (f *stubFont) Variants(gid GlyphID, axis Axis) []Variant {
	if gid != GlyphID('(') {
		return nil
	}
	return []Variant{
		{GID: 1000, Advance: 900},
		{GID: 1001, Advance: 1400},
		{GID: 1002, Advance: 2000},
	}
}

func (f *stubFont) Assembly(gid GlyphID, axis Axis) (Assembly, bool) {
	if gid != GlyphID('(') || axis != Vertical {
		return Assembly{}, false
	}
	return Assembly{
		MinConnectorOverlap: 20,
		Parts: []AssemblyPart{
			{GID: 2000, StartConnector: 0, EndConnector: 100, FullAdvance: 600},
			{GID: 2001, StartConnector: 100, EndConnector: 100, FullAdvance: 500, Extender: true},
			{GID: 2002, StartConnector: 100, EndConnector: 0, FullAdvance: 600},
		},
	}, true
}

func (f *stubFont) Kern(gid GlyphID, corner Corner, height int32) int32 { return 0 }

func TestContextRequiresMathTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	if _, err := NewContext(&stubFont{hasMath: false}); err == nil {
		t.Error("expected context creation to fail for a font without MATH table")
	}
	ctx, err := NewContext(&stubFont{hasMath: true})
	if err != nil {
		t.Fatalf("context creation failed: %v", err)
	}
	if ctx.Constant(AxisHeight) != 250 {
		t.Errorf("expected axis height 250, got %d", ctx.Constant(AxisHeight))
	}
	if ctx.Percent(ScriptPercentScaleDown) != 0.7 {
		t.Errorf("expected script scale 0.7, got %f", ctx.Percent(ScriptPercentScaleDown))
	}
}

func TestVariantSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	ctx, err := NewContext(&stubFont{hasMath: true})
	if err != nil {
		t.Fatal(err)
	}
	// small target: smallest covering variant
	v, err := ctx.VertVariant('(', 1000)
	if err != nil {
		t.Fatal(err)
	}
	if v.IsAssembly() || v.GID != 1001 {
		t.Errorf("expected replacement variant 1001, got %+v", v)
	}
	// target beyond the chain: assembly
	v, err = ctx.VertVariant('(', 2500)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsAssembly() {
		t.Fatalf("expected an assembled variant, got %+v", v)
	}
	// piece sizes must cover the target
	var total int64
	for i, piece := range v.Pieces {
		part := pieceAdvance(piece.GID)
		total += int64(part)
		if i > 0 {
			if piece.Overlap < 20 {
				t.Errorf("piece %d has overlap %d below the font minimum", i, piece.Overlap)
			}
			total -= int64(piece.Overlap)
		}
	}
	if total < 2500 {
		t.Errorf("assembled size %d does not cover target 2500", total)
	}
}

func pieceAdvance(gid GlyphID) int32 {
	switch gid {
	case 2001:
		return 500
	}
	return 600
}

func TestFixedVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.fonts")
	defer teardown()
	//
	ctx, err := NewContext(&stubFont{hasMath: true})
	if err != nil {
		t.Fatal(err)
	}
	gid, err := ctx.FixedVariant('(', 2)
	if err != nil {
		t.Fatal(err)
	}
	if gid != 1001 {
		t.Errorf("expected second chain entry 1001, got %d", gid)
	}
	// over-long index clamps to the largest variant
	gid, _ = ctx.FixedVariant('(', 9)
	if gid != 1002 {
		t.Errorf("expected largest chain entry 1002, got %d", gid)
	}
}
