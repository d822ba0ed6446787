/*
Package mathsym provides the static symbol tables for math typesetting:
the mapping from TeX command names and from Unicode codepoints to
symbol records, and the mapping from (font style, codepoint) to the
Mathematical Alphanumeric Symbols block.

The tables are process-wide, read-only and initialized at program
start; they are safe to share freely.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package mathsym

import (
	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.symbols'.
func tracer() tracing.Trace {
	return tracing.Select("mex.symbols")
}

// AtomClass is the TeX spacing category of a symbol.
type AtomClass int8

// Atom classes. The first eight are the classic TeX spacing classes,
// the remaining ones carry parsing information and are folded onto a
// spacing class by SpacingClass.
const (
	Ord AtomClass = iota
	Op
	Bin
	Rel
	Open
	Close
	Punct
	Inner
	Alpha       // letters and digits, subject to alphanumeric substitution
	Fence       // may appear as \middle delimiter
	Accent      // top accent
	AccentUnder // bottom accent
	Over        // wide over-mark, e.g. \overbrace
	Under       // wide under-mark, e.g. \underbrace
)

func (c AtomClass) String() string {
	switch c {
	case Ord:
		return "Ord"
	case Op:
		return "Op"
	case Bin:
		return "Bin"
	case Rel:
		return "Rel"
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Punct:
		return "Punct"
	case Inner:
		return "Inner"
	case Alpha:
		return "Alpha"
	case Fence:
		return "Fence"
	case Accent:
		return "Accent"
	case AccentUnder:
		return "AccentUnder"
	case Over:
		return "Over"
	case Under:
		return "Under"
	}
	return "<undefined atom class>"
}

// SpacingClass folds an atom class onto one of the eight TeX spacing
// classes. Alpha and the accent classes space like ordinary atoms,
// fences like relations.
func (c AtomClass) SpacingClass() AtomClass {
	switch c {
	case Alpha, Accent, AccentUnder, Over, Under:
		return Ord
	case Fence:
		return Rel
	}
	return c
}

// Symbol is a symbol record: a Unicode codepoint together with its
// atom class. For operators, Limits tells whether scripts are set as
// limits above/below in display style.
type Symbol struct {
	Codepoint rune
	Class     AtomClass
	Limits    bool
}

// IsOpenDelimiter tells if the symbol may follow '\left'.
func (s Symbol) IsOpenDelimiter() bool {
	return s.Class == Open || s.Class == Fence
}

// IsCloseDelimiter tells if the symbol may follow '\right'.
func (s Symbol) IsCloseDelimiter() bool {
	return s.Class == Close || s.Class == Fence
}

// IsMiddleDelimiter tells if the symbol may follow '\middle'.
func (s Symbol) IsMiddleDelimiter() bool {
	return s.Class == Fence
}

// commandTrie indexes the command table for lookup and for near-miss
// suggestions.
var commandTrie *trie.Trie

func init() {
	commandTrie = trie.New()
	for name, sym := range symbolCommands {
		commandTrie.Add(name, sym)
	}
}

// FromCommand returns the symbol record for a command name (without
// the leading backslash), e.g. "alpha" or "int".
func FromCommand(name string) (Symbol, bool) {
	node, ok := commandTrie.Find(name)
	if !ok {
		return Symbol{}, false
	}
	return node.Meta().(Symbol), true
}

// Suggest returns known command names close to name, for use in
// unknown-command error messages.
func Suggest(name string) []string {
	if len(name) == 0 {
		return nil
	}
	matches := commandTrie.FuzzySearch(name)
	if len(matches) > 4 {
		matches = matches[:4]
	}
	tracer().Debugf("suggestions for \\%s: %v", name, matches)
	return matches
}

// ClassOf returns the atom class for a directly input codepoint.
// Codepoints without a table entry default to Ord.
func ClassOf(r rune) AtomClass {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return Alpha
	case r >= '0' && r <= '9':
		return Alpha
	case r >= 'Α' && r <= 'Ω', r >= 'α' && r <= 'ω':
		return Alpha
	}
	if cls, ok := codepointClasses[r]; ok {
		return cls
	}
	return Ord
}
