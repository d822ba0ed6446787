package formula

// Re-serialization of parse trees to TeX notation. The output is not
// guaranteed to be byte-identical to the input, but parses to an
// equivalent tree.

import (
	"fmt"
	"strings"

	"github.com/npillmayer/mex/core/mathsym"
)

// TeX serializes a math list to TeX notation.
func (l List) TeX() string {
	var sb strings.Builder
	for _, n := range l {
		writeNode(&sb, n)
	}
	return sb.String()
}

func writeList(sb *strings.Builder, l List) {
	sb.WriteByte('{')
	for _, n := range l {
		writeNode(sb, n)
	}
	sb.WriteByte('}')
}

var styleCommands = map[mathsym.FontStyle]string{
	{Family: mathsym.Normal, Weight: mathsym.Bold}:       "mathbf",
	{Family: mathsym.Normal, Weight: mathsym.Italic}:     "mathit",
	{Family: mathsym.Normal, Weight: mathsym.BoldItalic}: "boldsymbol",
	{Family: mathsym.Roman}:                              "mathrm",
	{Family: mathsym.Script}:                             "mathcal",
	{Family: mathsym.Fraktur}:                            "mathfrak",
	{Family: mathsym.SansSerif}:                          "mathsf",
	{Family: mathsym.Blackboard}:                         "mathbb",
	{Family: mathsym.Monospace}:                          "mathtt",
}

var accentCommands = map[rune]string{
	'̂': "hat",
	'̃': "tilde",
	'̄': "bar",
	'̅': "overline",
	'̀': "grave",
	'́': "acute",
	'̌': "check",
	'̆': "breve",
	'̇': "dot",
	'̈': "ddot",
	'⃗': "vec",
	'̲': "underline",
	'⏞': "overbrace",
	'⏟': "underbrace",
}

func writeSymbol(sb *strings.Builder, r rune) {
	switch r {
	case '{', '}', '%', '&', '$', '#', '_':
		sb.WriteByte('\\')
		sb.WriteRune(r)
	case '\\':
		sb.WriteString(`\backslash `)
	default:
		sb.WriteRune(r)
	}
}

func writeNode(sb *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Symbol:
		if cmd, ok := styleCommands[t.Style]; ok && t.Style != (mathsym.FontStyle{}) {
			sb.WriteByte('\\')
			sb.WriteString(cmd)
			sb.WriteByte('{')
			writeSymbol(sb, t.Sym.Codepoint)
			sb.WriteByte('}')
			return
		}
		writeSymbol(sb, t.Sym.Codepoint)
	case *Delimited:
		for i, inner := range t.Inners {
			switch i {
			case 0:
				sb.WriteString(`\left`)
			default:
				sb.WriteString(`\middle`)
			}
			writeDelim(sb, t.Delims[i])
			for _, n := range inner {
				writeNode(sb, n)
			}
		}
		sb.WriteString(`\right`)
		writeDelim(sb, t.Delims[len(t.Delims)-1])
	case *Scripts:
		writeNode(sb, t.Nucleus)
		if t.Sup != nil {
			sb.WriteByte('^')
			writeList(sb, t.Sup)
		}
		if t.Sub != nil {
			sb.WriteByte('_')
			writeList(sb, t.Sub)
		}
	case *GenFraction:
		writeFraction(sb, t)
	case *Radical:
		switch t.Shape {
		case CubeRoot:
			sb.WriteString(`\cuberoot`)
		case FourthRoot:
			sb.WriteString(`\fourthroot`)
		default:
			sb.WriteString(`\sqrt`)
			if t.Index != nil {
				sb.WriteByte('[')
				for _, n := range t.Index {
					writeNode(sb, n)
				}
				sb.WriteByte(']')
			}
		}
		writeList(sb, t.Radicand)
	case *Accent:
		if cmd, ok := accentCommands[t.Sym.Codepoint]; ok {
			sb.WriteByte('\\')
			if t.Stretchy && (cmd == "hat" || cmd == "tilde") {
				sb.WriteString("wide")
			}
			sb.WriteString(cmd)
		} else {
			sb.WriteString(`\hat`)
		}
		writeList(sb, t.Nucleus)
	case *Array:
		writeArray(sb, t)
	case *Group:
		writeList(sb, t.Inner)
	case *Style:
		sb.WriteByte('{')
		switch t.Size {
		case Display:
			sb.WriteString(`\displaystyle `)
		case Text:
			sb.WriteString(`\textstyle `)
		case Script:
			sb.WriteString(`\scriptstyle `)
		case ScriptScript:
			sb.WriteString(`\scriptscriptstyle `)
		}
		for _, n := range t.Inner {
			writeNode(sb, n)
		}
		sb.WriteByte('}')
	case *Rule:
		fmt.Fprintf(sb, `\rule{%.4gbp}{%.4gbp}`, t.Width.Points(), t.Height.Points())
	case *Kern:
		if t.Em != 0 {
			fmt.Fprintf(sb, `\hspace{%.4gem}`, t.Em)
		} else {
			fmt.Fprintf(sb, `\hspace{%.4gbp}`, t.Amount.Points())
		}
	case *PlainText:
		if t.SizeAdaptive {
			sb.WriteString(`\text{`)
		} else {
			sb.WriteString(`\mbox{`)
		}
		sb.WriteString(t.Text)
		sb.WriteByte('}')
	case *Color:
		if t.Color.A == 0xff {
			fmt.Fprintf(sb, `\color{#%02X%02X%02X}`, t.Color.R, t.Color.G, t.Color.B)
		} else {
			fmt.Fprintf(sb, `\color{#%02X%02X%02X%02X}`, t.Color.R, t.Color.G, t.Color.B, t.Color.A)
		}
		writeList(sb, t.Inner)
	case *AtomChange:
		sb.WriteByte('\\')
		switch t.Target {
		case mathsym.Op:
			sb.WriteString("mathop")
		case mathsym.Bin:
			sb.WriteString("mathbin")
		case mathsym.Rel:
			sb.WriteString("mathrel")
		case mathsym.Open:
			sb.WriteString("mathopen")
		case mathsym.Close:
			sb.WriteString("mathclose")
		case mathsym.Punct:
			sb.WriteString("mathpunct")
		case mathsym.Inner:
			sb.WriteString("mathinner")
		default:
			sb.WriteString("mathord")
		}
		writeList(sb, t.Inner)
	case *Extend:
		if t.Size >= 1 && t.Size <= 4 {
			sb.WriteString(`\` + [...]string{"big", "Big", "bigg", "Bigg"}[t.Size-1])
			switch t.Sym.Class {
			case mathsym.Open:
				sb.WriteByte('l')
			case mathsym.Close:
				sb.WriteByte('r')
			case mathsym.Rel:
				sb.WriteByte('m')
			}
			writeDelim(sb, t.Sym)
			return
		}
		sb.WriteString(`\vextend`)
		writeDelim(sb, t.Sym)
		fmt.Fprintf(sb, `{%.4gbp}`, t.Height.Points())
	}
}

func writeDelim(sb *strings.Builder, sym mathsym.Symbol) {
	if sym.Codepoint == 0 || sym.Codepoint == '.' {
		sb.WriteString(". ")
		return
	}
	switch sym.Codepoint {
	case '{':
		sb.WriteString(`\lbrace `)
	case '}':
		sb.WriteString(`\rbrace `)
	default:
		sb.WriteRune(sym.Codepoint)
		sb.WriteByte(' ')
	}
}

func writeFraction(sb *strings.Builder, f *GenFraction) {
	if f.Bar.Default && f.Left == nil && f.Right == nil {
		switch f.Style {
		case ForceDisplay:
			sb.WriteString(`\dfrac`)
		case ForceText:
			sb.WriteString(`\tfrac`)
		default:
			sb.WriteString(`\frac`)
		}
		writeList(sb, f.Numer)
		writeList(sb, f.Denom)
		return
	}
	if !f.Bar.Default && f.Bar.Thickness == 0 && f.Left != nil && f.Left.Codepoint == '(' {
		switch f.Style {
		case ForceDisplay:
			sb.WriteString(`\dbinom`)
		case ForceText:
			sb.WriteString(`\tbinom`)
		default:
			sb.WriteString(`\binom`)
		}
		writeList(sb, f.Numer)
		writeList(sb, f.Denom)
		return
	}
	// fall back to an infix form
	sb.WriteByte('{')
	for _, n := range f.Numer {
		writeNode(sb, n)
	}
	if f.Bar.Default {
		sb.WriteString(` \over `)
	} else {
		sb.WriteString(` \atop `)
	}
	for _, n := range f.Denom {
		writeNode(sb, n)
	}
	sb.WriteByte('}')
}

func writeArray(sb *strings.Builder, a *Array) {
	env := a.Env
	if env == "" {
		env = "array"
	}
	fmt.Fprintf(sb, `\begin{%s}`, env)
	if env == "array" {
		sb.WriteByte('{')
		for _, col := range a.Cols {
			for i := 0; i < col.BarsBefore; i++ {
				sb.WriteByte('|')
			}
			if col.SepBefore != nil {
				fmt.Fprintf(sb, "@{%s}", *col.SepBefore)
			}
			switch col.Align {
			case ColLeft:
				sb.WriteByte('l')
			case ColRight:
				sb.WriteByte('r')
			default:
				sb.WriteByte('c')
			}
			for i := 0; i < col.BarsAfter; i++ {
				sb.WriteByte('|')
			}
			if col.SepAfter != nil {
				fmt.Fprintf(sb, "@{%s}", *col.SepAfter)
			}
		}
		sb.WriteByte('}')
	}
	for i, row := range a.Rows {
		if i > 0 {
			sb.WriteString(`\\`)
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte('&')
			}
			for _, n := range cell {
				writeNode(sb, n)
			}
		}
	}
	fmt.Fprintf(sb, `\end{%s}`, env)
}
