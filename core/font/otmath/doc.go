/*
Package otmath implements the font-parser contract of package
core/font on top of golang.org/x/image/font/sfnt, adding a decoder
for the OpenType MATH table, which sfnt does not interpret.

Glyph indices and metrics are answered by sfnt; italics corrections,
top-accent attachment points, math constants, variant chains, glyph
assemblies and cut-in kerns are read from the raw MATH table bytes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package otmath

import (
	"github.com/npillmayer/mex/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("mex.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}
