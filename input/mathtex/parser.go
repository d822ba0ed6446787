package mathtex

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

// Macros is a mutable macro environment: user command names map to
// replacement texts with #1…#9 argument slots.
type Macros map[string]string

// Parse parses a formula string into a math list.
func Parse(input string) (formula.List, error) {
	return ParseWith(input, nil)
}

// ParseWith parses a formula string with a user macro environment.
// Commands defined by \newcommand inside the formula are entered into
// the environment.
func ParseWith(input string, macros Macros) (formula.List, error) {
	if macros == nil {
		macros = make(Macros)
	}
	p := &parser{
		lex:    newLexer(input),
		macros: macros,
		groups: arraystack.New(),
	}
	list, err := p.expression(mathsym.FontStyle{})
	if err != nil {
		return nil, err
	}
	t := p.lex.current()
	if t.kind != tokEOF {
		if t.isChar('}') {
			return nil, errKind(UnmatchedGroup, t.pos, "}", "no group open")
		}
		if t.isCommand("right") || t.isCommand("middle") {
			return nil, errKind(UnmatchedDelimiter, t.pos, t.String(), "no \\left group open")
		}
		return nil, errKind(UnexpectedToken, t.pos, t.String(), "input continues after formula")
	}
	return list, nil
}

type parser struct {
	lex    *lexer
	macros Macros
	groups *arraystack.Stack // open groups and environments, for diagnostics
}

// endsExpression tells if a token terminates the current math list.
// The terminator is left for the caller to inspect.
func endsExpression(t token) bool {
	return t.kind == tokEOF || t.isChar('}') || t.isChar('&') ||
		t.isCommand(`\`) || t.isCommand("right") || t.isCommand("middle") ||
		t.isCommand("end")
}

// expression parses a math list up to the next terminator.
func (p *parser) expression(style mathsym.FontStyle) (formula.List, error) {
	var list formula.List
	for {
		p.lex.skipSpace()
		t := p.lex.current()
		if endsExpression(t) {
			return list, nil
		}

		// style switches consume the remainder of the current group
		if size, cramped, ok := styleSwitch(t); ok {
			p.lex.advance()
			rest, err := p.expression(style)
			if err != nil {
				return nil, err
			}
			return append(list, &formula.Style{Inner: rest, Size: size, Cramped: cramped}), nil
		}

		// the infix fraction commands split the current group
		if bar, left, right, ok := infixFraction(t); ok {
			p.lex.advance()
			denom, err := p.expression(style)
			if err != nil {
				return nil, err
			}
			return formula.List{&formula.GenFraction{
				Numer: list, Denom: denom,
				Bar: bar, Left: left, Right: right,
			}}, nil
		}

		// scripts may appear without a preceding atom
		if t.isChar('_') || t.isChar('^') || t.isChar('\'') {
			if err := p.postfix(&list, style); err != nil {
				return nil, err
			}
			continue
		}

		node, matched, err := p.parseNode(style)
		if err != nil {
			return nil, err
		}
		if !matched {
			if t.kind == tokCommand {
				if repl, ok := p.macros[t.name]; ok {
					if err := p.expandMacro(t.name, repl); err != nil {
						return nil, err
					}
					continue
				}
				e := errKind(UnknownCommand, t.pos, t.String(), "not a known command")
				if sugg := mathsym.Suggest(t.name); len(sugg) > 0 {
					e.msg += "; did you mean \\" + sugg[0] + "?"
				}
				return nil, e
			}
			return nil, errKind(UnexpectedToken, t.pos, t.String(), "cannot start an atom")
		}
		if node != nil {
			list = append(list, node)
		}
		if err := p.postfix(&list, style); err != nil {
			return nil, err
		}
	}
}

// styleSwitch recognizes the math style switch commands.
func styleSwitch(t token) (formula.StyleSize, bool, bool) {
	if t.kind != tokCommand {
		return 0, false, false
	}
	switch t.name {
	case "displaystyle":
		return formula.Display, false, true
	case "textstyle":
		return formula.Text, false, true
	case "scriptstyle":
		return formula.Script, false, true
	case "scriptscriptstyle":
		return formula.ScriptScript, false, true
	}
	return 0, false, false
}

// infixFraction recognizes the infix fraction commands \over, \atop
// and \choose.
func infixFraction(t token) (formula.BarSpec, *mathsym.Symbol, *mathsym.Symbol, bool) {
	if t.kind != tokCommand {
		return formula.BarSpec{}, nil, nil, false
	}
	switch t.name {
	case "over":
		return formula.BarSpec{Default: true}, nil, nil, true
	case "atop":
		return formula.BarSpec{}, nil, nil, true
	case "choose":
		open := mathsym.Symbol{Codepoint: '(', Class: mathsym.Open}
		close_ := mathsym.Symbol{Codepoint: ')', Class: mathsym.Close}
		return formula.BarSpec{}, &open, &close_, true
	}
	return formula.BarSpec{}, nil, nil, false
}

// expandMacro substitutes a user macro and re-enters the lexer on the
// expanded input. Byte positions in errors refer to the expanded text
// from here on.
func (p *parser) expandMacro(name, repl string) error {
	p.lex.advance() // consume the macro call
	args := countMacroArgs(repl)
	actual := make([]string, args)
	for i := 0; i < args; i++ {
		p.lex.skipSpace()
		t := p.lex.current()
		if t.isChar('{') {
			content, err := p.lex.rawGroup()
			if err != nil {
				return err
			}
			actual[i] = content
			continue
		}
		if t.kind == tokEOF {
			return errKind(MissingArgument, t.pos, "\\"+name, "macro needs %d arguments", args)
		}
		actual[i] = t.String()
		p.lex.advance()
	}
	expanded := substituteMacroArgs(repl, actual)
	tracer().Debugf("macro \\%s expands to %q", name, expanded)
	// the blank keeps a trailing command name in the expansion from
	// merging with following letters
	p.lex = newLexer(expanded + " " + p.lex.remainder())
	return nil
}

// countMacroArgs returns the number of arguments a replacement text
// consumes, from its highest #n slot.
func countMacroArgs(repl string) int {
	max := 0
	for i := 0; i+1 < len(repl); i++ {
		if repl[i] == '#' {
			n := int(repl[i+1] - '0')
			if n >= 1 && n <= 9 && n > max {
				max = n
			}
		}
	}
	return max
}

func substituteMacroArgs(repl string, args []string) string {
	out := make([]byte, 0, len(repl))
	for i := 0; i < len(repl); i++ {
		if repl[i] == '#' && i+1 < len(repl) {
			n := int(repl[i+1] - '0')
			if n >= 1 && n <= len(args) {
				out = append(out, "{"...)
				out = append(out, args[n-1]...)
				out = append(out, "}"...)
				i++
				continue
			}
		}
		out = append(out, repl[i])
	}
	return string(out)
}

// parseNode parses a group, a command or a plain symbol. It reports
// matched == false for tokens it does not recognize, without
// consuming them.
func (p *parser) parseNode(style mathsym.FontStyle) (formula.Node, bool, error) {
	t := p.lex.current()
	switch t.kind {
	case tokChar:
		if t.ch < 0x20 && !isSpace(t.ch) || t.ch == 0x7F {
			return nil, false, errKind(LexError, t.pos, t.String(), "stray control character")
		}
		if t.ch == '{' {
			inner, err := p.group(style)
			if err != nil {
				return nil, false, err
			}
			return &formula.Group{Inner: inner}, true, nil
		}
		cls := mathsym.ClassOf(t.ch)
		p.lex.advance()
		sym := mathsym.Symbol{Codepoint: t.ch, Class: cls}
		if cls == mathsym.Op {
			sym.Limits = mathsym.LimitsByDefault(t.ch)
		}
		return &formula.Symbol{Sym: sym, Style: style}, true, nil
	case tokCommand:
		return p.parseCommand(t, style)
	}
	return nil, false, nil
}

// group parses a brace group; the current token must be '{'.
func (p *parser) group(style mathsym.FontStyle) (formula.List, error) {
	open := p.lex.current()
	p.groups.Push(open.pos)
	p.lex.advance()
	inner, err := p.expression(style)
	if err != nil {
		return nil, err
	}
	t := p.lex.current()
	if !t.isChar('}') {
		return nil, errKind(UnmatchedGroup, open.pos, "{", "group is not closed")
	}
	p.groups.Pop()
	p.lex.advance()
	return inner, nil
}

// requiredArgument parses one mandatory argument: a brace group or a
// single token's worth of nodes.
func (p *parser) requiredArgument(cmd token, style mathsym.FontStyle) (formula.List, error) {
	p.lex.skipSpace()
	t := p.lex.current()
	if t.isChar('{') {
		return p.group(style)
	}
	if endsExpression(t) || t.isChar('_') || t.isChar('^') {
		return nil, errKind(MissingArgument, cmd.pos, cmd.String(), "command needs an argument")
	}
	node, matched, err := p.parseNode(style)
	if err != nil {
		return nil, err
	}
	if !matched {
		if t.kind == tokCommand {
			if repl, ok := p.macros[t.name]; ok {
				if err := p.expandMacro(t.name, repl); err != nil {
					return nil, err
				}
				return p.requiredArgument(cmd, style)
			}
			return nil, errKind(UnknownCommand, t.pos, t.String(), "not a known command")
		}
		return nil, errKind(MissingArgument, cmd.pos, cmd.String(), "command needs an argument")
	}
	if g, ok := node.(*formula.Group); ok {
		return g.Inner, nil
	}
	return formula.List{node}, nil
}

// postfix attaches scripts, primes and the \limits modifiers to the
// most recently emitted node.
func (p *parser) postfix(list *formula.List, style mathsym.FontStyle) error {
	for {
		p.lex.skipSpace()
		t := p.lex.current()
		switch {
		case t.isChar('_'):
			p.lex.advance()
			arg, err := p.requiredArgument(t, style)
			if err != nil {
				return err
			}
			if err := attachScript(list, t, arg, false); err != nil {
				return err
			}
		case t.isChar('^'):
			p.lex.advance()
			arg, err := p.requiredArgument(t, style)
			if err != nil {
				return err
			}
			if err := attachScript(list, t, arg, true); err != nil {
				return err
			}
		case t.isChar('\''):
			// primes accumulate into the superscript
			n := 0
			for p.lex.current().isChar('\'') {
				n++
				p.lex.advance()
			}
			primes := make(formula.List, n)
			for i := range primes {
				primes[i] = &formula.Symbol{
					Sym: mathsym.Symbol{Codepoint: '′', Class: mathsym.Ord},
				}
			}
			if err := attachScript(list, t, primes, true); err != nil {
				return err
			}
		case t.isCommand("limits"), t.isCommand("nolimits"):
			p.lex.advance()
			if err := setLimits(list, t, t.name == "limits"); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// attachScript binds a script to the preceding atom. A second script
// of the same kind on one nucleus is an error.
func attachScript(list *formula.List, t token, arg formula.List, super bool) error {
	var nucleus formula.Node
	if len(*list) > 0 {
		nucleus = (*list)[len(*list)-1]
		*list = (*list)[:len(*list)-1]
	} else {
		nucleus = &formula.Group{}
	}
	sc, ok := nucleus.(*formula.Scripts)
	if !ok {
		sc = &formula.Scripts{Nucleus: nucleus}
	}
	if super {
		if sc.Sup != nil {
			return errKind(UnexpectedToken, t.pos, t.String(), "nucleus already has a superscript")
		}
		sc.Sup = arg
	} else {
		if sc.Sub != nil {
			return errKind(UnexpectedToken, t.pos, t.String(), "nucleus already has a subscript")
		}
		sc.Sub = arg
	}
	*list = append(*list, sc)
	return nil
}

// setLimits modifies the limits flag of a preceding operator atom.
func setLimits(list *formula.List, t token, limits bool) error {
	if len(*list) == 0 {
		return errKind(UnexpectedToken, t.pos, t.String(), "must follow an operator")
	}
	switch n := (*list)[len(*list)-1].(type) {
	case *formula.Symbol:
		if n.Sym.Class == mathsym.Op {
			n.Sym.Limits = limits
			return nil
		}
	case *formula.AtomChange:
		if n.Target == mathsym.Op {
			n.Limits = limits
			return nil
		}
	}
	return errKind(UnexpectedToken, t.pos, t.String(), "must follow an operator")
}
