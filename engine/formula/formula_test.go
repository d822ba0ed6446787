package formula

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/mex/core/mathsym"
)

func TestClassTransparency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.core")
	defer teardown()
	//
	plus := &Symbol{Sym: mathsym.Symbol{Codepoint: '+', Class: mathsym.Bin}}
	colored := &Color{Inner: List{plus}}
	if colored.Class() != mathsym.Bin {
		t.Error("colour wrappers should surface the class of their content")
	}
	styled := &Style{Inner: List{plus}, Size: Script}
	if styled.Class() != mathsym.Bin {
		t.Error("style wrappers should surface the class of their content")
	}
	change := &AtomChange{Target: mathsym.Rel, Inner: List{plus}}
	if change.Class() != mathsym.Rel {
		t.Error("atom changes should surface their target class")
	}
	if (&Color{}).Class() != mathsym.Ord {
		t.Error("an empty wrapper defaults to Ord")
	}
}

func TestSerializeFraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.core")
	defer teardown()
	//
	one := &Symbol{Sym: mathsym.Symbol{Codepoint: '1', Class: mathsym.Alpha}}
	two := &Symbol{Sym: mathsym.Symbol{Codepoint: '2', Class: mathsym.Alpha}}
	frac := &GenFraction{
		Numer: List{one},
		Denom: List{two},
		Bar:   BarSpec{Default: true},
	}
	tex := List{frac}.TeX()
	if tex != `\frac{1}{2}` {
		t.Errorf(`expected \frac{1}{2}, got %s`, tex)
	}
}

func TestSerializeEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.core")
	defer teardown()
	//
	brace := &Symbol{Sym: mathsym.Symbol{Codepoint: '{', Class: mathsym.Open}}
	tex := List{brace}.TeX()
	if !strings.Contains(tex, `\{`) {
		t.Errorf("special characters must be escaped, got %s", tex)
	}
}

func TestRadicalShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mex.core")
	defer teardown()
	//
	if SquareRoot.Codepoint() != '√' || CubeRoot.Codepoint() != '∛' || FourthRoot.Codepoint() != '∜' {
		t.Error("radical shapes map to the wrong signs")
	}
}
