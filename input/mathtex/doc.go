/*
Package mathtex parses math formulas in TeX notation into parse trees
of package engine/formula.

The parser is a recursive descent over an interleaved tokenizer: it
reads one control sequence or one codepoint at a time, skipping ASCII
whitespace except inside \text{…}. Parsing is a total function; the
first error aborts and carries the byte offset of the offending
token.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package mathtex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.parse'.
func tracer() tracing.Trace {
	return tracing.Select("mex.parse")
}
