package mathtex_test

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/sanity-io/litter"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
	"github.com/npillmayer/mex/input/mathtex"
)

func TestShouldPass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	cases := []string{
		`h`,
		`\ldots`, `\vdots`, `\cdots`,
		`\frac\alpha\beta`, `\frac\int2`, `\frac \frac 1 2 3`,
		`\sqrt{x}`, `\sqrt2`, `\sqrt\alpha`, `1^\sqrt2`, `\sqrt\sqrt2`, `\sqrt[3]{x+1}`,
		`\cuberoot{x}`, `\fourthroot{x}`,
		`1_2^3`, `_1`, `^\alpha`, `x^{1+2}_{2+3}`, `a^{b^c}`, `{a_b}^c`, `x'`, `f''`,
		`\left(\right)`, `\left.\right)`, `\left(\frac12\right\vert`,
		`\left(x\middle\vert y\right)`,
		`\bigl(\bigr)`, `\Bigg[\Bigg]`,
		`\begin{array}{c}\end{array}`,
		`\begin{array}{lc|r}1&2&3\\4&5&6\end{array}`,
		`\begin{array}{c@{--}c}1&2\end{array}`,
		`\begin{pmatrix}1&2\\3&4\end{pmatrix}`,
		`\begin{Bmatrix}x\end{Bmatrix}`,
		`\begin{vmatrix}x\end{vmatrix}`,
		`\begin{aligned}x&=1\\y&=2\end{aligned}`,
		`\substack{1 \\ 2 \\ \frac{3+1}{5+6}}`,
		`\sum_{k=0}^n k^2`, `\int\limits_0^1 x\,dx`, `\sum\nolimits_i i`,
		`\hat x`, `\widehat{x+y}`, `\vec v`, `\overline{z}`, `\underbrace{a+b}_{n}`,
		`\'o`, "\\`o", `\~n`,
		`\text{re + 43}`, `\mbox{fixed}`, `\operatorname{supp}`,
		`\sin x + \cos y`, `\lim_{n\to\infty} a_n`,
		`\color{red}{a}+b`, `\color{#00FF00}{g}`, `\blue{x}`, `\phantom{xx}`,
		`\mathbf{A}\mathbb{R}\mathcal{L}\mathfrak{g}\mathsf{s}\mathtt{t}\mathrm{d}`,
		`\mathbin{\ast}`, `\mathrel{\circ}`, `\mathop{F}`,
		`a\,b\:c\;d\!e\ f\quad g\qquad h`,
		`\rule{1pt}{10pt}`, `\hspace{0.5em}`,
		`\displaystyle \frac12`, `x + {\scriptstyle y + z}`,
		`{a \over b}`, `{a \atop b}`, `{n \choose k}`,
		`α + β`, `x ≤ y`,
	}
	for _, c := range cases {
		if _, err := mathtex.Parse(c); err != nil {
			t.Errorf("expected %q to parse, got: %v", c, err)
		}
	}
}

func TestShouldFail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	cases := []struct {
		input string
		kind  mathtex.ErrorKind
	}{
		{`\nosuchcmd`, mathtex.UnknownCommand},
		{`{1+2`, mathtex.UnmatchedGroup},
		{`1+2}`, mathtex.UnmatchedGroup},
		{`\frac{1}`, mathtex.MissingArgument},
		{`\sqrt`, mathtex.MissingArgument},
		{`\sqrt_2`, mathtex.MissingArgument},
		{`x^x^x`, mathtex.UnexpectedToken},
		{`x_x_x`, mathtex.UnexpectedToken},
		{`1_`, mathtex.MissingArgument},
		{`\left(1+2`, mathtex.UnmatchedDelimiter},
		{`\left1\right)`, mathtex.UnexpectedToken},
		{`\right)`, mathtex.UnmatchedDelimiter},
		{`\middle|`, mathtex.UnmatchedDelimiter},
		{`x\limits`, mathtex.UnexpectedToken},
		{`\limits`, mathtex.UnexpectedToken},
		{`\begin{nosuchenv}x\end{nosuchenv}`, mathtex.NoSuchEnvironment},
		{`\begin{array}{c}1&2\end{array}`, mathtex.WrongColumnCount},
		{`\begin{array}{c}1\\2`, mathtex.UnmatchedGroup},
		{`\begin{pmatrix}1\end{bmatrix}`, mathtex.UnmatchedGroup},
		{`\begin{array}1\end{array}`, mathtex.MissingArgument},
		{`\color{nosuchcolor}{x}`, mathtex.UnexpectedToken},
		{`\text{endless`, mathtex.UnmatchedGroup},
		{"a\x01b", mathtex.LexError},
	}
	for _, c := range cases {
		_, err := mathtex.Parse(c.input)
		if err == nil {
			t.Errorf("expected %q to fail", c.input)
			continue
		}
		perr, ok := err.(*mathtex.Error)
		if !ok {
			t.Errorf("error for %q is not a parse error: %v", c.input, err)
			continue
		}
		if perr.Kind != c.kind {
			t.Errorf("error for %q should be %v, is %v (%v)", c.input, c.kind, perr.Kind, err)
		}
	}
}

func TestEquivalences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	pairs := [][2]string{
		{`\frac12`, `\frac{1}{2}`},
		{`\frac \sqrt2 3`, `\frac{\sqrt2}{3}`},
		{`\frac 1 \sqrt2`, `\frac{1}{\sqrt2}`},
		{`\sqrt2`, `\sqrt{2}`},
		{`x_\alpha^\beta`, `x^\beta_\alpha`},
		{`_2^3`, `^3_2`},
		{`1 + 2`, `1+2`},
	}
	lit := litter.Options{Compact: true, StripPackageNames: false}
	for _, pair := range pairs {
		a, err := mathtex.Parse(pair[0])
		if err != nil {
			t.Errorf("parsing %q failed: %v", pair[0], err)
			continue
		}
		b, err := mathtex.Parse(pair[1])
		if err != nil {
			t.Errorf("parsing %q failed: %v", pair[1], err)
			continue
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%q and %q should parse alike:\n%s\nvs\n%s",
				pair[0], pair[1], lit.Sdump(a), lit.Sdump(b))
		}
	}
}

func TestShouldDiffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	a, err := mathtex.Parse(`\sqrt2_3`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := mathtex.Parse(`\sqrt{2_3}`)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, b) {
		t.Error(`\sqrt2_3 should attach the subscript to the radical, not the radicand`)
	}
}

func TestScriptsBindToPrecedingAtom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`ab^2`)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(list))
	}
	sc, ok := list[1].(*formula.Scripts)
	if !ok {
		t.Fatalf("expected second node to carry the script, got %T", list[1])
	}
	sym, ok := sc.Nucleus.(*formula.Symbol)
	if !ok || sym.Sym.Codepoint != 'b' {
		t.Errorf("script should bind to 'b', nucleus is %+v", sc.Nucleus)
	}
	if sc.Sup == nil || sc.Sub != nil {
		t.Error("expected a superscript only")
	}
}

func TestLimitsModifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\int\limits_0^1`)
	if err != nil {
		t.Fatal(err)
	}
	sc, ok := list[0].(*formula.Scripts)
	if !ok {
		t.Fatalf("expected a scripts node, got %T", list[0])
	}
	sym, ok := sc.Nucleus.(*formula.Symbol)
	if !ok || !sym.Sym.Limits {
		t.Error(`\limits should set the limits flag on the integral`)
	}
}

func TestMacros(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	macros := mathtex.Macros{"add": `#1 + #2`}
	got, err := mathtex.ParseWith(`\add{45}{68}`, macros)
	if err != nil {
		t.Fatal(err)
	}
	want, err := mathtex.Parse(`{45} + {68}`)
	if err != nil {
		t.Fatal(err)
	}
	lit := litter.Options{Compact: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("macro expansion differs:\n%s\nvs\n%s", lit.Sdump(got), lit.Sdump(want))
	}
	// recursive expansion
	got, err = mathtex.ParseWith(`\add{1}{\add{2}{3}}4`, macros)
	if err != nil {
		t.Fatal(err)
	}
	want, err = mathtex.Parse(`{1} + {{2} + {3}}4`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recursive macro expansion differs:\n%s\nvs\n%s", lit.Sdump(got), lit.Sdump(want))
	}
}

func TestNewcommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	got, err := mathtex.Parse(`\newcommand{\half}{\frac{1}{2}} \half`)
	if err != nil {
		t.Fatal(err)
	}
	want, err := mathtex.Parse(`\frac{1}{2}`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error(`\newcommand definition should expand like the literal replacement`)
	}
}

func TestTextCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	got, err := mathtex.Parse(`\text{re + 43}`)
	if err != nil {
		t.Fatal(err)
	}
	want := formula.List{&formula.PlainText{Text: "re + 43", SizeAdaptive: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected a plain text node, got %+v", got)
	}
}

func TestArrayStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\begin{array}{l|c@{--}r}1&2&3\\4&5&6\end{array}`)
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := list[0].(*formula.Array)
	if !ok {
		t.Fatalf("expected an array node, got %T", list[0])
	}
	if len(arr.Rows) != 2 || len(arr.Rows[0]) != 3 {
		t.Fatalf("expected 2x3 cells, got %dx%d", len(arr.Rows), len(arr.Rows[0]))
	}
	if len(arr.Cols) != 3 {
		t.Fatalf("expected 3 column specs, got %d", len(arr.Cols))
	}
	if arr.Cols[0].Align != formula.ColLeft || arr.Cols[2].Align != formula.ColRight {
		t.Error("column alignments decoded wrongly")
	}
	if arr.Cols[1].BarsBefore != 1 {
		t.Error("expected a rule before the second column")
	}
	if arr.Cols[2].SepBefore == nil || *arr.Cols[2].SepBefore != "--" {
		t.Error("expected the @{--} separator before the third column")
	}
}

func TestMatrixDelimiters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\begin{pmatrix}1&2\\3&4\end{pmatrix}`)
	if err != nil {
		t.Fatal(err)
	}
	arr := list[0].(*formula.Array)
	if arr.Left == nil || arr.Left.Codepoint != '(' {
		t.Error("pmatrix should carry parentheses")
	}
	if arr.Small || arr.Aligned {
		t.Error("pmatrix is neither small nor aligned")
	}
}

func TestRowSeparatorDimension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\begin{matrix}1\\[2pt]2\end{matrix}`)
	if err != nil {
		t.Fatal(err)
	}
	arr := list[0].(*formula.Array)
	if len(arr.RowSeps) == 0 || arr.RowSeps[0] != 2*dimen.PT {
		t.Errorf("expected a 2pt row separation, got %v", arr.RowSeps)
	}
}

func TestDelimitedMiddle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\left(x\middle\vert y\right)`)
	if err != nil {
		t.Fatal(err)
	}
	del, ok := list[0].(*formula.Delimited)
	if !ok {
		t.Fatalf("expected a delimited node, got %T", list[0])
	}
	if len(del.Inners) != 2 || len(del.Delims) != 3 {
		t.Fatalf("expected 2 sections and 3 delimiters, got %d/%d",
			len(del.Inners), len(del.Delims))
	}
	if del.Delims[1].Class != mathsym.Fence {
		t.Error("middle delimiter should be a fence")
	}
}

func TestAtomChangeClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	list, err := mathtex.Parse(`\mathbin{x}`)
	if err != nil {
		t.Fatal(err)
	}
	ac, ok := list[0].(*formula.AtomChange)
	if !ok || ac.Target != mathsym.Bin {
		t.Errorf("expected a Bin atom change, got %+v", list[0])
	}
	if list[0].Class() != mathsym.Bin {
		t.Error("atom change should surface its target class")
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	cases := []string{
		`1+2`,
		`\frac{1}{2}`,
		`x^{2}_{3}`,
		`\sqrt[3]{x}`,
		`\left(x \right)`,
		`\begin{pmatrix}1&2\\3&4\end{pmatrix}`,
		`\color{#FF0000}{a}+b`,
		`\text{hi}`,
		`\hat{x}`,
		`\mathbin{x}`,
	}
	for _, c := range cases {
		first, err := mathtex.Parse(c)
		if err != nil {
			t.Errorf("parsing %q failed: %v", c, err)
			continue
		}
		serialized := first.TeX()
		second, err := mathtex.Parse(serialized)
		if err != nil {
			t.Errorf("re-parsing %q (from %q) failed: %v", serialized, c, err)
			continue
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip of %q via %q changed the tree", c, serialized)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.parse")
	defer teardown()
	//
	_, err := mathtex.Parse(`1+\nosuchcmd`)
	perr, ok := err.(*mathtex.Error)
	if !ok {
		t.Fatalf("expected a parse error, got %v", err)
	}
	if perr.Pos != 2 {
		t.Errorf("expected error at byte 2, got %d", perr.Pos)
	}
	if perr.Token != `\nosuchcmd` {
		t.Errorf("expected the offending token, got %q", perr.Token)
	}
}
