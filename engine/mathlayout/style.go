package mathlayout

import (
	"github.com/npillmayer/mex/engine/formula"
)

// Style is one of the eight math styles: four size classes, each in an
// uncramped and a cramped ("primed") variant. Styles order ascending,
// so comparisons like style >= TextCramped select the non-script
// styles. Styles are small values, passed by value through the layout
// recursion.
type Style int8

// The eight styles of appendix G.
const (
	ScriptScriptCramped Style = iota
	ScriptScript
	ScriptCramped
	Script
	TextCramped
	Text
	DisplayCramped
	Display
)

func (s Style) String() string {
	switch s {
	case ScriptScriptCramped:
		return "SS'"
	case ScriptScript:
		return "SS"
	case ScriptCramped:
		return "S'"
	case Script:
		return "S"
	case TextCramped:
		return "T'"
	case Text:
		return "T"
	case DisplayCramped:
		return "D'"
	case Display:
		return "D"
	}
	return "<undefined style>"
}

// IsCramped tells if the style is a cramped variant.
func (s Style) IsCramped() bool {
	return s&1 == 0
}

// Cramped returns the cramped variant of the style.
func (s Style) Cramped() Style {
	return s &^ 1
}

// Sup is the style for a superscript: D,T → S; S,SS → SS; cramped
// variants stay cramped.
func (s Style) Sup() Style {
	switch s {
	case Display, Text:
		return Script
	case DisplayCramped, TextCramped:
		return ScriptCramped
	case Script, ScriptScript:
		return ScriptScript
	}
	return ScriptScriptCramped
}

// Sub is the style for a subscript: always the cramped variant of
// Sup.
func (s Style) Sub() Style {
	return s.Sup().Cramped()
}

// Numerator is the style for the numerator of a fraction.
func (s Style) Numerator() Style {
	switch s {
	case Display:
		return Text
	case DisplayCramped:
		return TextCramped
	}
	return s.Sup()
}

// Denominator is the style for the denominator of a fraction; it is
// always cramped.
func (s Style) Denominator() Style {
	switch s {
	case Display, DisplayCramped:
		return TextCramped
	}
	return s.Sub()
}

// Size folds the style onto its size class.
func (s Style) Size() formula.StyleSize {
	switch {
	case s >= DisplayCramped:
		return formula.Display
	case s >= TextCramped:
		return formula.Text
	case s >= ScriptCramped:
		return formula.Script
	}
	return formula.ScriptScript
}

// styleFor maps an explicit style request from the parse tree onto a
// style, preserving crampedness.
func styleFor(size formula.StyleSize, cramped bool) Style {
	var s Style
	switch size {
	case formula.Display:
		s = Display
	case formula.Text:
		s = Text
	case formula.Script:
		s = Script
	default:
		s = ScriptScript
	}
	if cramped {
		s = s.Cramped()
	}
	return s
}
