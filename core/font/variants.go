package font

// Selection of stretched glyphs: walk the variant chain for the
// smallest variant covering the target size, else build the glyph
// from assembly parts with computed connector overlaps.

// GlyphPiece is one glyph of an assembled variant. Overlap is the
// connector overlap with the preceding piece along the stretch axis,
// in font units.
type GlyphPiece struct {
	GID     GlyphID
	Overlap int32
}

// VariantGlyph is the result of variant selection: either a single
// replacement glyph (Pieces is nil), or a sequence of pieces to be
// stacked along Axis, bottom-to-top resp. left-to-right.
type VariantGlyph struct {
	GID    GlyphID
	Axis   Axis
	Pieces []GlyphPiece
}

// IsAssembly tells if the variant has to be assembled from parts.
func (v VariantGlyph) IsAssembly() bool {
	return len(v.Pieces) > 0
}

// VertVariant selects a vertical variant for the glyph of codepoint r
// covering at least height+depth target, in font units.
func (ctx *Context) VertVariant(r rune, target int32) (VariantGlyph, error) {
	gid, ok := ctx.font.GlyphIndex(r)
	if !ok {
		return VariantGlyph{}, ErrGlyphNotFound(r)
	}
	return ctx.variant(gid, Vertical, target), nil
}

// HorzVariant selects a horizontal variant for the glyph of codepoint
// r covering at least the target width, in font units.
func (ctx *Context) HorzVariant(r rune, target int32) (VariantGlyph, error) {
	gid, ok := ctx.font.GlyphIndex(r)
	if !ok {
		return VariantGlyph{}, ErrGlyphNotFound(r)
	}
	return ctx.variant(gid, Horizontal, target), nil
}

// FixedVariant picks the variant chain entry with the given index, as
// used by the fixed-size delimiter commands. Index 0 is the base
// glyph; chains shorter than the requested index yield their largest
// entry.
func (ctx *Context) FixedVariant(r rune, index int) (GlyphID, error) {
	gid, ok := ctx.font.GlyphIndex(r)
	if !ok {
		return 0, ErrGlyphNotFound(r)
	}
	if index <= 0 {
		return gid, nil
	}
	chain := ctx.font.Variants(gid, Vertical)
	if len(chain) == 0 {
		return gid, nil
	}
	if index > len(chain) {
		index = len(chain)
	}
	return chain[index-1].GID, nil
}

func (ctx *Context) variant(gid GlyphID, axis Axis, target int32) VariantGlyph {
	chain := ctx.font.Variants(gid, axis)
	for _, v := range chain {
		if v.Advance >= target {
			return VariantGlyph{GID: v.GID, Axis: axis}
		}
	}
	// no variant is large enough; fall back to the assembly recipe,
	// or to the largest variant if the font has none
	largest := gid
	if len(chain) > 0 {
		largest = chain[len(chain)-1].GID
	}
	asm, ok := ctx.font.Assembly(gid, axis)
	if !ok || len(asm.Parts) == 0 {
		tracer().Debugf("glyph %d has no %v assembly, keeping largest variant", gid, axis)
		return VariantGlyph{GID: largest, Axis: axis}
	}
	return VariantGlyph{
		GID:    largest,
		Axis:   axis,
		Pieces: assemble(asm, target),
	}
}

// assemble computes the piece sequence for an assembly covering the
// target size. Extender parts are repeated as often as needed; the
// connector overlap between adjacent parts is interpolated between
// the font's minimum overlap and the maximal possible overlap, so
// that the assembled size comes out at target.
func assemble(asm Assembly, target int32) []GlyphPiece {
	minOverlap := int64(asm.MinConnectorOverlap)
	var nExt, nFix int64
	var sizeExt, sizeFix int64
	for _, p := range asm.Parts {
		if p.Extender {
			nExt++
			sizeExt += int64(p.FullAdvance)
		} else {
			nFix++
			sizeFix += int64(p.FullAdvance)
		}
	}
	maxSizeNoExt := sizeFix
	if nFix > 1 {
		maxSizeNoExt -= (nFix - 1) * minOverlap
	}
	var repeats int64
	if maxSizeNoExt < int64(target) && nExt > 0 {
		per := sizeExt - nExt*minOverlap
		if per <= 0 {
			per = 1
		}
		need := int64(target) - maxSizeNoExt
		repeats = need / per
		if need%per != 0 {
			repeats++
		}
	}

	maxOverlap := func(left, right AssemblyPart) int64 {
		ov := int64(left.EndConnector)
		if int64(right.StartConnector) < ov {
			ov = int64(right.StartConnector)
		}
		if int64(right.FullAdvance)/2 < ov {
			ov = int64(right.FullAdvance) / 2
		}
		if ov < minOverlap {
			ov = minOverlap
		}
		return ov
	}

	// expand the part list with repeated extenders
	parts := make([]AssemblyPart, 0, int(nFix+repeats*nExt))
	for _, p := range asm.Parts {
		if p.Extender {
			for i := int64(0); i < repeats; i++ {
				parts = append(parts, p)
			}
		} else {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	var sizeNoOverlap, minTotal, maxTotal int64
	for i, p := range parts {
		sizeNoOverlap += int64(p.FullAdvance)
		if i > 0 {
			minTotal += minOverlap
			maxTotal += maxOverlap(parts[i-1], p)
		}
	}
	sizeMin := sizeNoOverlap - minTotal // largest assembled size
	sizeMax := sizeNoOverlap - maxTotal // smallest assembled size

	factor := 0.0
	if sizeMin > sizeMax {
		factor = float64(sizeMin-int64(target)) / float64(sizeMin-sizeMax)
		if factor < 0 {
			factor = 0
		} else if factor > 1 {
			factor = 1
		}
	}

	pieces := make([]GlyphPiece, len(parts))
	for i, p := range parts {
		var overlap int64
		if i > 0 {
			mo := maxOverlap(parts[i-1], p)
			overlap = minOverlap + int64(factor*float64(mo-minOverlap))
		}
		pieces[i] = GlyphPiece{GID: p.GID, Overlap: int32(overlap)}
	}
	return pieces
}
