package gfx

import (
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/mathlayout"
)

// recorder is a canvas capturing primitive calls.
type recorder struct {
	symbols []recordedSymbol
	rules   []recordedRule
	colors  []color.RGBA
	depth   int
}

type recordedSymbol struct {
	x, y float64
	gid  font.GlyphID
}

type recordedRule struct {
	x, y, w, h float64
}

func (r *recorder) Symbol(x, y float64, gid font.GlyphID, scale float64) error {
	r.symbols = append(r.symbols, recordedSymbol{x, y, gid})
	return nil
}

func (r *recorder) Rule(x, y, w, h float64) error {
	r.rules = append(r.rules, recordedRule{x, y, w, h})
	return nil
}

func (r *recorder) BeginColor(rgba color.RGBA) error {
	r.colors = append(r.colors, rgba)
	r.depth++
	return nil
}

func (r *recorder) EndColor() error {
	r.depth--
	return nil
}

func (r *recorder) BeginTransform(scale, tx, ty float64) error { return nil }
func (r *recorder) EndTransform() error                        { return nil }

// glyph builds a layout glyph node for testing, 10bp wide, 7bp above
// and 2bp below the baseline.
func glyph(gid font.GlyphID) mathlayout.Node {
	return mathlayout.Node{
		W: 10 * dimen.BP, H: 7 * dimen.BP, D: 2 * dimen.BP,
		Body: &mathlayout.Glyph{GID: gid, Scale: 655.36},
	}
}

func hboxOf(children ...mathlayout.Node) mathlayout.Node {
	var w, h, d dimen.Dimen
	for _, c := range children {
		w += c.W
		h = dimen.Max(h, c.H)
		d = dimen.Max(d, c.D)
	}
	return mathlayout.Node{W: w, H: h, D: d,
		Body: &mathlayout.HBox{Contents: children}}
}

func TestRenderHorizontalAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	kern := mathlayout.Node{W: 5 * dimen.BP, Body: mathlayout.KernBody{}}
	box := hboxOf(glyph(1), kern, glyph(2))
	rec := &recorder{}
	if err := Render(box, rec, 0, 100); err != nil {
		t.Fatal(err)
	}
	if len(rec.symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(rec.symbols))
	}
	if rec.symbols[0].x != 0 || rec.symbols[0].y != 100 {
		t.Errorf("first glyph should sit at the baseline origin, is (%g,%g)",
			rec.symbols[0].x, rec.symbols[0].y)
	}
	if rec.symbols[1].x != 15 {
		t.Errorf("second glyph should advance past glyph and kern, x is %g", rec.symbols[1].x)
	}
	if rec.symbols[1].y != 100 {
		t.Errorf("hbox children share the baseline, y is %g", rec.symbols[1].y)
	}
}

func TestRenderVBoxStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	// a rule over a glyph, like a fraction bar over a denominator
	bar := mathlayout.Node{W: 10 * dimen.BP, H: 1 * dimen.BP, Body: mathlayout.RuleBody{}}
	g := glyph(3)
	vb := mathlayout.Node{
		W: 10 * dimen.BP, H: 8 * dimen.BP, D: 2 * dimen.BP,
		Body: &mathlayout.VBox{Contents: []mathlayout.Node{bar, g}},
	}
	rec := &recorder{}
	if err := Render(vb, rec, 0, 50); err != nil {
		t.Fatal(err)
	}
	if len(rec.rules) != 1 || len(rec.symbols) != 1 {
		t.Fatalf("expected 1 rule and 1 symbol, got %d/%d", len(rec.rules), len(rec.symbols))
	}
	// vbox top edge is at y = 50 - height = 42
	if rec.rules[0].y != 42 {
		t.Errorf("rule should start at the top edge, y is %g", rec.rules[0].y)
	}
	// glyph baseline: top edge + rule height + glyph height
	if rec.symbols[0].y != 42+1+7 {
		t.Errorf("glyph baseline should be below the rule, y is %g", rec.symbols[0].y)
	}
}

func TestRenderColorScopes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	red := color.RGBA{R: 0xff, A: 0xff}
	colored := mathlayout.Node{
		W: 10 * dimen.BP, H: 7 * dimen.BP, D: 2 * dimen.BP,
		Body: &mathlayout.ColorBody{Color: red, Contents: []mathlayout.Node{glyph(4)}},
	}
	rec := &recorder{}
	if err := Render(hboxOf(colored, glyph(5)), rec, 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(rec.colors) != 1 || rec.colors[0] != red {
		t.Errorf("expected one red colour scope, got %v", rec.colors)
	}
	if rec.depth != 0 {
		t.Errorf("colour scopes should balance, depth is %d", rec.depth)
	}
}

func TestRenderAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	inner := hboxOf(glyph(6))
	hb := inner.Body.(*mathlayout.HBox)
	hb.Align = mathlayout.Alignment{Kind: mathlayout.AlignCentered, Width: inner.W}
	inner.W = 30 * dimen.BP
	rec := &recorder{}
	if err := Render(inner, rec, 0, 0); err != nil {
		t.Fatal(err)
	}
	if rec.symbols[0].x != 10 {
		t.Errorf("centred content should start at x=10, is %g", rec.symbols[0].x)
	}
}

func TestSVGOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, 'A')
	if err != nil || gid == 0 {
		t.Fatal("no glyph for 'A'")
	}
	scale := 12.0 * 65536 / float64(f.UnitsPerEm()) // 12bp per em, in sp
	g := mathlayout.Node{
		W: 8 * dimen.BP, H: 9 * dimen.BP, D: 0,
		Body: &mathlayout.Glyph{GID: font.GlyphID(gid), Scale: scale},
	}
	bar := mathlayout.Node{W: 8 * dimen.BP, H: 1 * dimen.BP, Body: mathlayout.RuleBody{}}
	layout := hboxOf(g, bar)

	var sb strings.Builder
	if err := RenderSVG(layout, f, &sb); err != nil {
		t.Fatal(err)
	}
	svg := sb.String()
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("output is not an SVG document")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected a glyph outline path")
	}
	if !strings.Contains(svg, "<rect") {
		t.Error("expected a rule rectangle")
	}
}

func TestRasterOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.render")
	defer teardown()
	//
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	bar := mathlayout.Node{W: 8 * dimen.BP, H: 2 * dimen.BP, Body: mathlayout.RuleBody{}}
	layout := hboxOf(bar)
	img, err := RenderImage(layout, f, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() < 4 || bounds.Dy() < 4 {
		t.Fatalf("image too small: %v", bounds)
	}
	// the rule must have left dark pixels
	dark := false
	for y := bounds.Min.Y; y < bounds.Max.Y && !dark; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x8000 && cg < 0x8000 && cb < 0x8000 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Error("expected the rule to darken some pixels")
	}
}
