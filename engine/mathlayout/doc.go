/*
Package mathlayout turns parse trees of math formulas into layout
trees of positioned boxes.

The engine follows the box-and-glue model of TeX's appendix G,
parameterized by the OpenType MATH constants of the font in use:
spacing classes, script placement, fraction construction, stretchable
delimiters, radicals, matrices, accents and operators with limits.

Layout is single-threaded and synchronous; a call owns all its values
for the duration of the call. The font context is read-only during
layout and may be shared across concurrent layout calls.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package mathlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mex.layout'.
func tracer() tracing.Trace {
	return tracing.Select("mex.layout")
}
