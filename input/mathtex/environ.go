package mathtex

// Environments: array with a column-spec argument, the matrix family
// with implicit delimiters, aligned and substack.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

type envSpec struct {
	left, right rune // 0 for none
	aligned     bool
	small       bool
	colArg      bool // requires a {colspec} argument
}

var environments = map[string]envSpec{
	"array":    {colArg: true},
	"matrix":   {},
	"pmatrix":  {left: '(', right: ')'},
	"bmatrix":  {left: '[', right: ']'},
	"Bmatrix":  {left: '{', right: '}'},
	"vmatrix":  {left: '∣', right: '∣'},
	"Vmatrix":  {left: '‖', right: '‖'},
	"aligned":  {aligned: true},
	"substack": {small: true},
}

// environment parses \begin{env}…\end{env}. The \begin token has been
// consumed.
func (p *parser) environment(cmd token, style mathsym.FontStyle) (formula.Node, bool, error) {
	p.lex.skipSpace()
	name, err := p.lex.rawGroup()
	if err != nil {
		return nil, false, err
	}
	spec, ok := environments[name]
	if !ok {
		return nil, false, errKind(NoSuchEnvironment, cmd.pos, name, "unknown environment")
	}
	var cols []formula.ColSpec
	if spec.colArg {
		p.lex.skipSpace()
		colspec, err2 := p.lex.rawGroup()
		if err2 != nil {
			return nil, false, err2
		}
		if cols, err = parseColSpec(colspec, cmd); err != nil {
			return nil, false, err
		}
	}
	p.groups.Push(name)

	rows, rowSeps, err := p.parseRows(cmd, style)
	if err != nil {
		return nil, false, err
	}

	// \end{name} must match
	t := p.lex.current()
	if !t.isCommand("end") {
		return nil, false, errKind(UnmatchedGroup, cmd.pos, name, "environment is not terminated")
	}
	p.lex.advance()
	p.lex.skipSpace()
	endName, err := p.lex.rawGroup()
	if err != nil {
		return nil, false, err
	}
	if endName != name {
		return nil, false, errKind(UnmatchedGroup, t.pos, endName,
			"environment %q ended by %q", name, endName)
	}
	p.groups.Pop()

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if spec.colArg {
		for _, row := range rows {
			if len(row) > len(cols) {
				return nil, false, errKind(WrongColumnCount, cmd.pos, name,
					"row has %d cells, column spec allows %d", len(row), len(cols))
			}
		}
	} else {
		cols = defaultCols(numCols, spec.aligned)
	}

	arr := &formula.Array{
		Rows:    rows,
		RowSeps: rowSeps,
		Cols:    cols,
		Env:     name,
		Aligned: spec.aligned,
		Small:   spec.small,
	}
	if spec.left != 0 {
		arr.Left = &mathsym.Symbol{Codepoint: spec.left, Class: mathsym.Open}
		arr.Right = &mathsym.Symbol{Codepoint: spec.right, Class: mathsym.Close}
	}
	return arr, true, nil
}

// parseRows reads &-separated cells and \\-separated rows until the
// closing token of the environment.
func (p *parser) parseRows(cmd token, style mathsym.FontStyle) ([][]formula.List, []dimen.Dimen, error) {
	var rows [][]formula.List
	var rowSeps []dimen.Dimen
	var row []formula.List
	for {
		cell, err := p.expression(style)
		if err != nil {
			return nil, nil, err
		}
		t := p.lex.current()
		switch {
		case t.isChar('&'):
			p.lex.advance()
			row = append(row, cell)
		case t.isCommand(`\`):
			p.lex.advance()
			row = append(row, cell)
			rows = append(rows, row)
			row = nil
			sep, err2 := p.optionalRaw()
			if err2 != nil {
				return nil, nil, err2
			}
			var d dimen.Dimen
			if sep != "" {
				if d, _, err2 = dimen.ParseDimen(sep); err2 != nil {
					return nil, nil, errKind(UnexpectedToken, t.pos, sep, "not a dimension")
				}
			}
			rowSeps = append(rowSeps, d)
		case t.isCommand("end") || t.isChar('}'):
			// a trailing \\ leaves an empty final row behind
			if len(cell) > 0 || len(row) > 0 {
				row = append(row, cell)
				rows = append(rows, row)
			}
			return rows, rowSeps, nil
		default:
			return nil, nil, errKind(UnmatchedGroup, cmd.pos, t.String(), "environment is not terminated")
		}
	}
}

// parseColSpec decodes an array column specification with the tokens
// l, c, r, | and @{…}.
func parseColSpec(spec string, cmd token) ([]formula.ColSpec, error) {
	var cols []formula.ColSpec
	var pendingBars int
	var pendingSep *string
	lex := newLexer(spec)
	for {
		t := lex.current()
		if t.kind == tokEOF {
			break
		}
		switch {
		case t.isChar('l') || t.isChar('c') || t.isChar('r'):
			col := formula.ColSpec{BarsBefore: pendingBars, SepBefore: pendingSep}
			switch t.ch {
			case 'l':
				col.Align = formula.ColLeft
			case 'r':
				col.Align = formula.ColRight
			}
			cols = append(cols, col)
			pendingBars, pendingSep = 0, nil
			lex.advance()
		case t.isChar('|'):
			pendingBars++
			lex.advance()
		case t.isChar('@'):
			lex.advance()
			content, err := lex.rawGroup()
			if err != nil {
				return nil, errKind(UnexpectedToken, cmd.pos, spec, "malformed @{…} separator")
			}
			pendingSep = &content
		case t.kind == tokChar && isSpace(t.ch):
			lex.advance()
		default:
			return nil, errKind(UnexpectedToken, cmd.pos, t.String(), "not a column spec token")
		}
	}
	if len(cols) == 0 {
		return nil, errKind(WrongColumnCount, cmd.pos, spec, "column spec is empty")
	}
	// trailing bars and separators attach to the last column
	if pendingBars > 0 {
		cols[len(cols)-1].BarsAfter = pendingBars
	}
	if pendingSep != nil {
		cols[len(cols)-1].SepAfter = pendingSep
	}
	return cols, nil
}

// defaultCols builds centred columns for the matrix family, or R/L
// pairs for aligned.
func defaultCols(n int, aligned bool) []formula.ColSpec {
	cols := make([]formula.ColSpec, n)
	if aligned {
		for i := range cols {
			if i%2 == 0 {
				cols[i].Align = formula.ColRight
			} else {
				cols[i].Align = formula.ColLeft
			}
		}
	}
	return cols
}

// substack parses \substack{… \\ …}.
func (p *parser) substack(cmd token, style mathsym.FontStyle) (formula.Node, bool, error) {
	p.lex.skipSpace()
	t := p.lex.current()
	if !t.isChar('{') {
		return nil, false, errKind(MissingArgument, cmd.pos, cmd.String(), "\\substack needs a group")
	}
	p.lex.advance()
	var rows [][]formula.List
	for {
		cell, err := p.expression(style)
		if err != nil {
			return nil, false, err
		}
		t := p.lex.current()
		switch {
		case t.isCommand(`\`):
			p.lex.advance()
			rows = append(rows, []formula.List{cell})
		case t.isChar('}'):
			p.lex.advance()
			if len(cell) > 0 {
				rows = append(rows, []formula.List{cell})
			}
			return &formula.Array{
				Rows:  rows,
				Cols:  []formula.ColSpec{{Align: formula.ColCenter}},
				Env:   "substack",
				Small: true,
			}, true, nil
		default:
			return nil, false, errKind(UnmatchedGroup, cmd.pos, "{", "\\substack group is not closed")
		}
	}
}

// optionalArgument parses an optional [...] argument into a math
// list.
func (p *parser) optionalArgument(style mathsym.FontStyle) (formula.List, error) {
	raw, err := p.optionalRaw()
	if err != nil || raw == "" {
		return nil, err
	}
	return ParseWith(raw, p.macros)
}

// optionalRaw reads an optional [...] argument verbatim; it returns
// the empty string if there is none.
func (p *parser) optionalRaw() (string, error) {
	p.lex.skipSpace()
	t := p.lex.current()
	if !t.isChar('[') {
		return "", nil
	}
	return p.lex.rawBracket()
}
