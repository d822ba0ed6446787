package mathtex

// The built-in command set: fractions, radicals, delimiters, accents,
// spacing, atom and font style changes, text, colours and operators.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

// stretchyAccents grow with their nucleus.
var stretchyAccents = map[string]bool{
	"widehat":    true,
	"widetilde":  true,
	"overbrace":  true,
	"underbrace": true,
	"overline":   true,
	"underline":  true,
	"underbar":   true,
}

// textOperators are the named function operators; the flag tells
// whether they set scripts as limits in display style.
var textOperators = map[string]bool{
	"det": true, "gcd": true, "lim": true, "limsup": true, "liminf": true,
	"sup": true, "inf": true, "max": true, "min": true, "Pr": true,
	"sin": false, "cos": false, "tan": false, "cot": false, "csc": false,
	"sec": false, "arcsin": false, "arccos": false, "arctan": false,
	"sinh": false, "cosh": false, "tanh": false, "coth": false,
	"arg": false, "deg": false, "dim": false, "exp": false,
	"hom": false, "ker": false, "ln": false, "log": false,
}

// colorShorthands are the named colour commands.
var colorShorthands = []string{
	"black", "white", "red", "green", "blue", "cyan", "magenta",
	"yellow", "orange", "purple", "gray", "grey", "brown",
}

// parseCommand dispatches a control sequence. It reports
// matched == false for names that are neither built-ins nor symbols,
// leaving the token unconsumed for macro lookup.
func (p *parser) parseCommand(t token, style mathsym.FontStyle) (formula.Node, bool, error) {
	name := t.name

	// fractions
	switch name {
	case "frac", "tfrac", "dfrac":
		p.lex.advance()
		return p.fraction(t, style, formula.BarSpec{Default: true}, nil, nil, fracStyle(name))
	case "binom", "tbinom", "dbinom":
		p.lex.advance()
		open := mathsym.Symbol{Codepoint: '(', Class: mathsym.Open}
		close_ := mathsym.Symbol{Codepoint: ')', Class: mathsym.Close}
		return p.fraction(t, style, formula.BarSpec{}, &open, &close_, fracStyle(name))
	}

	// radicals
	switch name {
	case "sqrt":
		p.lex.advance()
		index, err := p.optionalArgument(style)
		if err != nil {
			return nil, false, err
		}
		radicand, err := p.requiredArgument(t, style)
		if err != nil {
			return nil, false, err
		}
		return &formula.Radical{Radicand: radicand, Index: index, Shape: formula.SquareRoot}, true, nil
	case "cuberoot", "fourthroot":
		p.lex.advance()
		radicand, err := p.requiredArgument(t, style)
		if err != nil {
			return nil, false, err
		}
		shape := formula.CubeRoot
		if name == "fourthroot" {
			shape = formula.FourthRoot
		}
		return &formula.Radical{Radicand: radicand, Shape: shape}, true, nil
	}

	// the limits modifiers are handled as postfix operators; reaching
	// them here means there was no preceding operator
	if name == "limits" || name == "nolimits" {
		return nil, false, errKind(UnexpectedToken, t.pos, t.String(), "must follow an operator")
	}

	// delimiters
	switch name {
	case "left":
		p.lex.advance()
		return p.delimited(t, style)
	case "right", "middle":
		return nil, false, errKind(UnmatchedDelimiter, t.pos, t.String(), "no \\left group open")
	}
	if size, cls, ok := delimiterSize(name); ok {
		p.lex.advance()
		sym, err := p.delimiterSymbol(t)
		if err != nil {
			return nil, false, err
		}
		if cls != mathsym.Ord {
			sym.Class = cls
		}
		return &formula.Extend{Sym: sym, Size: size}, true, nil
	}
	if name == "vextend" {
		p.lex.advance()
		sym, err := p.delimiterSymbol(t)
		if err != nil {
			return nil, false, err
		}
		d, err := p.dimensionArgument(t)
		if err != nil {
			return nil, false, err
		}
		return &formula.Extend{Sym: sym, Height: d}, true, nil
	}

	// spacing
	if em, ok := fixedSpace(name); ok {
		p.lex.advance()
		return &formula.Kern{Em: em}, true, nil
	}
	if name == "hspace" {
		p.lex.advance()
		p.lex.skipSpace()
		raw, err := p.lex.rawGroup()
		if err != nil {
			return nil, false, err
		}
		d, isEm, err2 := dimen.ParseDimen(raw)
		if err2 != nil {
			return nil, false, errKind(UnexpectedToken, t.pos, raw, "not a dimension")
		}
		if isEm {
			return &formula.Kern{Em: d.Points()}, true, nil
		}
		return &formula.Kern{Amount: d}, true, nil
	}
	if name == "rule" {
		p.lex.advance()
		w, err := p.dimensionArgument(t)
		if err != nil {
			return nil, false, err
		}
		h, err := p.dimensionArgument(t)
		if err != nil {
			return nil, false, err
		}
		return &formula.Rule{Width: w, Height: h}, true, nil
	}

	// atom class overrides
	if cls, ok := atomOverride(name); ok {
		p.lex.advance()
		arg, err := p.requiredArgument(t, style)
		if err != nil {
			return nil, false, err
		}
		return &formula.AtomChange{Target: cls, Inner: arg}, true, nil
	}

	// font style changes
	if styled, ok := fontStyleChange(name, style); ok {
		p.lex.advance()
		arg, err := p.requiredArgument(t, styled)
		if err != nil {
			return nil, false, err
		}
		return &formula.Group{Inner: arg}, true, nil
	}

	// text
	switch name {
	case "text", "mbox":
		p.lex.advance()
		p.lex.skipSpace()
		raw, err := p.lex.rawGroup()
		if err != nil {
			return nil, false, err
		}
		return &formula.PlainText{Text: raw, SizeAdaptive: name == "text"}, true, nil
	case "operatorname":
		p.lex.advance()
		p.lex.skipSpace()
		raw, err := p.lex.rawGroup()
		if err != nil {
			return nil, false, err
		}
		return &formula.AtomChange{
			Target: mathsym.Op,
			Inner:  formula.List{&formula.PlainText{Text: raw, SizeAdaptive: true}},
		}, true, nil
	}
	if limits, ok := textOperators[name]; ok {
		p.lex.advance()
		return &formula.AtomChange{
			Target: mathsym.Op,
			Limits: limits,
			Inner:  formula.List{&formula.PlainText{Text: opText(name), SizeAdaptive: true}},
		}, true, nil
	}

	// colours
	if name == "color" {
		p.lex.advance()
		p.lex.skipSpace()
		spec, err := p.lex.rawGroup()
		if err != nil {
			return nil, false, err
		}
		c, ok := parseColor(spec)
		if !ok {
			return nil, false, errKind(UnexpectedToken, t.pos, spec, "not a known colour")
		}
		inner, err := p.requiredArgument(t, style)
		if err != nil {
			return nil, false, err
		}
		return &formula.Color{Color: c, Inner: inner}, true, nil
	}
	if name == "phantom" {
		p.lex.advance()
		inner, err := p.requiredArgument(t, style)
		if err != nil {
			return nil, false, err
		}
		return &formula.Color{Inner: inner}, true, nil // fully transparent
	}
	for _, shorthand := range colorShorthands {
		if name == shorthand {
			p.lex.advance()
			c, _ := parseColor(name)
			inner, err := p.requiredArgument(t, style)
			if err != nil {
				return nil, false, err
			}
			return &formula.Color{Color: c, Inner: inner}, true, nil
		}
	}

	// environments and stacks
	switch name {
	case "begin":
		p.lex.advance()
		return p.environment(t, style)
	case "end":
		return nil, false, errKind(NoSuchEnvironment, t.pos, t.String(), "no environment open")
	case "substack":
		p.lex.advance()
		return p.substack(t, style)
	case "newcommand":
		p.lex.advance()
		return nil, true, p.newcommand(t)
	}

	// symbols and accents from the symbol table
	if sym, ok := mathsym.FromCommand(name); ok {
		p.lex.advance()
		switch sym.Class {
		case mathsym.Accent, mathsym.AccentUnder, mathsym.Over, mathsym.Under:
			nucleus, err := p.requiredArgument(t, style)
			if err != nil {
				return nil, false, err
			}
			under := sym.Class == mathsym.AccentUnder || sym.Class == mathsym.Under
			return &formula.Accent{
				Nucleus:  nucleus,
				Sym:      sym,
				Under:    under,
				Stretchy: stretchyAccents[name] || sym.Class == mathsym.Over || sym.Class == mathsym.Under,
			}, true, nil
		}
		return &formula.Symbol{Sym: sym, Style: style}, true, nil
	}

	return nil, false, nil
}

func fracStyle(name string) formula.StyleOverride {
	switch name[0] {
	case 't':
		return formula.ForceText
	case 'd':
		return formula.ForceDisplay
	}
	return formula.NoStyleChange
}

func (p *parser) fraction(t token, style mathsym.FontStyle, bar formula.BarSpec,
	left, right *mathsym.Symbol, override formula.StyleOverride) (formula.Node, bool, error) {
	numer, err := p.requiredArgument(t, style)
	if err != nil {
		return nil, false, err
	}
	denom, err := p.requiredArgument(t, style)
	if err != nil {
		return nil, false, err
	}
	return &formula.GenFraction{
		Numer: numer, Denom: denom,
		Bar: bar, Left: left, Right: right, Style: override,
	}, true, nil
}

// delimiterSize recognizes the fixed-size delimiter commands and
// returns the variant index and the atom class override.
func delimiterSize(name string) (int, mathsym.AtomClass, bool) {
	base := name
	cls := mathsym.Ord
	if len(name) > 1 {
		switch name[len(name)-1] {
		case 'l':
			base, cls = name[:len(name)-1], mathsym.Open
		case 'r':
			base, cls = name[:len(name)-1], mathsym.Close
		case 'm':
			base, cls = name[:len(name)-1], mathsym.Rel
		}
	}
	switch base {
	case "big":
		return 1, cls, true
	case "Big":
		return 2, cls, true
	case "bigg":
		return 3, cls, true
	case "Bigg":
		return 4, cls, true
	}
	return 0, mathsym.Ord, false
}

// fixedSpace returns the em amount of the fixed spacing commands.
func fixedSpace(name string) (float64, bool) {
	switch name {
	case ",":
		return 3.0 / 18.0, true
	case ":":
		return 4.0 / 18.0, true
	case ";":
		return 5.0 / 18.0, true
	case "!":
		return -3.0 / 18.0, true
	case " ":
		return 1.0 / 4.0, true
	case "quad":
		return 1.0, true
	case "qquad":
		return 2.0, true
	}
	return 0, false
}

func atomOverride(name string) (mathsym.AtomClass, bool) {
	switch name {
	case "mathord":
		return mathsym.Ord, true
	case "mathop":
		return mathsym.Op, true
	case "mathbin":
		return mathsym.Bin, true
	case "mathrel":
		return mathsym.Rel, true
	case "mathopen":
		return mathsym.Open, true
	case "mathclose":
		return mathsym.Close, true
	case "mathpunct":
		return mathsym.Punct, true
	case "mathinner":
		return mathsym.Inner, true
	}
	return 0, false
}

func fontStyleChange(name string, style mathsym.FontStyle) (mathsym.FontStyle, bool) {
	switch name {
	case "mathbf", "boldsymbol", "bm":
		return style.WithBold(), true
	case "mathit":
		return style.WithItalic(), true
	case "mathrm":
		return style.WithFamily(mathsym.Roman), true
	case "mathsf":
		return style.WithFamily(mathsym.SansSerif), true
	case "mathtt":
		return style.WithFamily(mathsym.Monospace), true
	case "mathfrak":
		return style.WithFamily(mathsym.Fraktur), true
	case "mathbb":
		return style.WithFamily(mathsym.Blackboard), true
	case "mathcal", "mathscr":
		return style.WithFamily(mathsym.Script), true
	}
	return style, false
}

// opText spells the glyph sequence for a named operator.
func opText(name string) string {
	switch name {
	case "limsup":
		return "lim sup"
	case "liminf":
		return "lim inf"
	}
	return name
}

// delimiterSymbol parses the delimiter token after \left, \right,
// \middle and the \big commands.
func (p *parser) delimiterSymbol(cmd token) (mathsym.Symbol, error) {
	p.lex.skipSpace()
	t := p.lex.current()
	switch t.kind {
	case tokChar:
		p.lex.advance()
		if t.ch == '.' {
			return mathsym.Symbol{Codepoint: '.'}, nil
		}
		return mathsym.Symbol{Codepoint: t.ch, Class: mathsym.ClassOf(t.ch)}, nil
	case tokCommand:
		if sym, ok := mathsym.FromCommand(t.name); ok {
			p.lex.advance()
			return sym, nil
		}
	}
	return mathsym.Symbol{}, errKind(MissingArgument, cmd.pos, cmd.String(), "expected a delimiter symbol")
}

// dimensionArgument parses a braced dimension like {1.5pt} or
// {0.3em}, resolving em against the font size at layout time is not
// possible here, so em values resolve against the base size.
func (p *parser) dimensionArgument(cmd token) (dimen.Dimen, error) {
	p.lex.skipSpace()
	raw, err := p.lex.rawGroup()
	if err != nil {
		return 0, err
	}
	d, _, err2 := dimen.ParseDimen(raw)
	if err2 != nil {
		return 0, errKind(UnexpectedToken, cmd.pos, raw, "not a dimension")
	}
	return d, nil
}

// delimited parses a \left…\right group with optional \middle
// pieces.
func (p *parser) delimited(cmd token, style mathsym.FontStyle) (formula.Node, bool, error) {
	left, err := p.delimiterSymbol(cmd)
	if err != nil {
		return nil, false, err
	}
	if !(left.IsOpenDelimiter() || left.Codepoint == '.') {
		return nil, false, errKind(UnexpectedToken, cmd.pos, string(left.Codepoint), "not an opening delimiter")
	}
	delims := []mathsym.Symbol{left}
	var inners []formula.List
	for {
		inner, err := p.expression(style)
		if err != nil {
			return nil, false, err
		}
		inners = append(inners, inner)
		t := p.lex.current()
		switch {
		case t.isCommand("middle"):
			p.lex.advance()
			mid, err := p.delimiterSymbol(t)
			if err != nil {
				return nil, false, err
			}
			if !(mid.IsMiddleDelimiter() || mid.Codepoint == '.') {
				return nil, false, errKind(UnexpectedToken, t.pos, string(mid.Codepoint), "not a middle delimiter")
			}
			delims = append(delims, mid)
		case t.isCommand("right"):
			p.lex.advance()
			right, err := p.delimiterSymbol(t)
			if err != nil {
				return nil, false, err
			}
			if !(right.IsCloseDelimiter() || right.Codepoint == '.') {
				return nil, false, errKind(UnexpectedToken, t.pos, string(right.Codepoint), "not a closing delimiter")
			}
			delims = append(delims, right)
			return &formula.Delimited{Delims: delims, Inners: inners}, true, nil
		default:
			return nil, false, errKind(UnmatchedDelimiter, cmd.pos, cmd.String(), "\\left without \\right")
		}
	}
}

// newcommand defines a user macro: \newcommand{\name}[n]{replacement}.
func (p *parser) newcommand(cmd token) error {
	p.lex.skipSpace()
	nameGroup, err := p.lex.rawGroup()
	if err != nil {
		return err
	}
	if len(nameGroup) < 2 || nameGroup[0] != '\\' {
		return errKind(UnexpectedToken, cmd.pos, nameGroup, "expected a command name")
	}
	name := nameGroup[1:]
	if _, err2 := p.optionalRaw(); err2 != nil {
		return err2
	}
	p.lex.skipSpace()
	repl, err := p.lex.rawGroup()
	if err != nil {
		return err
	}
	p.macros[name] = repl
	tracer().Debugf("defined macro \\%s", name)
	return nil
}
