package font

// Context is a thin adapter around an external font parser. It caches
// units-per-em and the MATH constants, and provides glyph and variant
// lookup to the layout engine. A context is read-only during layout
// and may be shared between threads if the underlying parser is
// re-entrant.
type Context struct {
	font   MathFont
	upem   int32
	consts [constantCount]int32
}

// NewContext wraps a math font. It fails with ErrMissingMathConstant
// if the font does not carry a MATH table; there is no fallback to
// default constants.
func NewContext(f MathFont) (*Context, error) {
	ctx := &Context{font: f, upem: f.UnitsPerEm()}
	for c := Constant(0); c < constantCount; c++ {
		v, err := f.Constant(c)
		if err != nil {
			return nil, ErrMissingMathConstant(c)
		}
		ctx.consts[c] = v
	}
	tracer().Debugf("font context: upem=%d, axis height=%d", ctx.upem,
		ctx.consts[AxisHeight])
	return ctx, nil
}

// Font returns the wrapped font parser.
func (ctx *Context) Font() MathFont {
	return ctx.font
}

// UnitsPerEm returns the font's design grid size.
func (ctx *Context) UnitsPerEm() int32 {
	return ctx.upem
}

// Constant returns a MATH constant in font units (percentage-valued
// constants in percent).
func (ctx *Context) Constant(c Constant) int32 {
	return ctx.consts[c]
}

// Percent returns a percentage-valued MATH constant as a factor.
func (ctx *Context) Percent(c Constant) float64 {
	return float64(ctx.consts[c]) / 100.0
}

// Glyph looks up the glyph and metrics for a codepoint.
func (ctx *Context) Glyph(r rune) (GlyphID, Metrics, error) {
	gid, ok := ctx.font.GlyphIndex(r)
	if !ok {
		return 0, Metrics{}, ErrGlyphNotFound(r)
	}
	m, err := ctx.font.Metrics(gid)
	return gid, m, err
}

// Metrics returns the measurements of a glyph.
func (ctx *Context) Metrics(gid GlyphID) (Metrics, error) {
	return ctx.font.Metrics(gid)
}

// Kern returns the cut-in correction for a corner of a glyph, for
// script attachment.
func (ctx *Context) Kern(gid GlyphID, corner Corner, height int32) int32 {
	return ctx.font.Kern(gid, corner, height)
}
