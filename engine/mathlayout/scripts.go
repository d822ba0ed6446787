package mathlayout

// Script placement, following appendix G and the MATH constants for
// script shifts, gaps and cut-in kerning.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

// opLimits tells if the nucleus is an operator that sets its scripts
// as limits. Wrappers like \mathop are looked through.
func opLimits(n formula.Node) bool {
	switch t := n.(type) {
	case *formula.Symbol:
		return t.Sym.Class == mathsym.Op && t.Sym.Limits
	case *formula.AtomChange:
		return t.Target == mathsym.Op && t.Limits
	}
	return false
}

// opNoLimits tells if the nucleus is an operator without limits; for
// these, the subscript tucks under the italic overhang.
func opNoLimits(n formula.Node) bool {
	switch t := n.(type) {
	case *formula.Symbol:
		return t.Sym.Class == mathsym.Op && !t.Sym.Limits
	case *formula.AtomChange:
		return t.Target == mathsym.Op && !t.Limits
	}
	return false
}

// braceLimits tells if the nucleus is a stretchy over/under-brace,
// whose scripts stack outside the brace.
func braceLimits(n formula.Node) bool {
	acc, ok := n.(*formula.Accent)
	return ok && (acc.Sym.Class == mathsym.Over || acc.Sym.Class == mathsym.Under)
}

// scripts lays out a nucleus with attached superscript and/or
// subscript.
func (set Settings) scripts(sc *formula.Scripts) (Node, error) {
	base, _, err := set.dispatch(sc.Nucleus)
	if err != nil {
		return Node{}, err
	}
	var sup, sub *hlist
	if sc.Sup != nil {
		if sup, err = layoutList(sc.Sup, set.styled(set.Style.Sup())); err != nil {
			return Node{}, err
		}
		sup.finalize()
	}
	if sc.Sub != nil {
		if sub, err = layoutList(sc.Sub, set.styled(set.Style.Sub())); err != nil {
			return Node{}, err
		}
		sub.finalize()
	}

	// Operators with limits in display style stack their scripts
	// above and below instead; scripts of over/under-braces always
	// stack outside the brace.
	if (opLimits(sc.Nucleus) && set.Style > Text) || braceLimits(sc.Nucleus) {
		return set.operatorLimits(base, sup, sub)
	}

	var u, v dimen.Dimen          // shift up / shift down
	var supKern, subKern dimen.Dimen // horizontal corrections

	baseGlyph, baseIsGlyph := base.IsGlyph()

	if sup != nil {
		if set.Style.IsCramped() {
			u = set.konst(font.SuperscriptShiftUpCramped)
		} else {
			u = set.konst(font.SuperscriptShiftUp)
		}
		height := base.H
		if !opNoLimits(sc.Nucleus) {
			// scripts on an accented simple symbol attach relative to
			// the bare symbol, not the accent
			if acc, ok := sc.Nucleus.(*formula.Accent); ok {
				if sym, ok2 := singleSymbol(acc.Nucleus); ok2 {
					_, m, err2 := set.Ctx.Glyph(mathsym.StyleChar(sym.Sym.Codepoint, sym.Style))
					if err2 != nil {
						return Node{}, err2
					}
					height = set.funits(m.Height())
				}
			} else if baseIsGlyph {
				supKern = baseGlyph.Italics
				if supGlyph, ok := sup.isGlyph(); ok {
					h := set.toFUnits(u)
					cut := set.Ctx.Kern(baseGlyph.GID, font.TopRight, h) +
						set.Ctx.Kern(supGlyph.GID, font.BottomLeft, h)
					supKern += set.funits(cut)
				}
			}
		}
		dropMax := set.konst(font.SuperscriptBaselineDropMax)
		u = dimen.Max(u, dimen.Max(height-dropMax, set.konst(font.SuperscriptBottomMin)+sup.d))
	}

	if sub != nil {
		v = dimen.Max(set.konst(font.SubscriptShiftDown),
			dimen.Max(sub.h-set.konst(font.SubscriptTopMax),
				set.konst(font.SubscriptBaselineDropMin)+base.D))
		if baseIsGlyph {
			if opNoLimits(sc.Nucleus) {
				subKern = -baseGlyph.Italics
			}
			if subGlyph, ok := sub.isGlyph(); ok {
				h := -set.toFUnits(v)
				cut := set.Ctx.Kern(baseGlyph.GID, font.BottomRight, h) +
					set.Ctx.Kern(subGlyph.GID, font.TopLeft, h)
				subKern += set.funits(cut)
			}
		}
	}

	// With both scripts present, enforce the minimum gap between the
	// superscript's bottom and the subscript's top by moving the
	// subscript down, then transfer slack back by raising the
	// superscript up to its bottom-max position.
	if sup != nil && sub != nil {
		supBot := u - sup.d
		subTop := sub.h - v
		gapMin := set.konst(font.SubSuperscriptGapMin)
		if supBot-subTop < gapMin {
			v += gapMin - (supBot - subTop)
		}
		bottomMax := set.konst(font.SuperscriptBottomMaxWithSubscript)
		if psi := bottomMax - (u - sup.d); psi > 0 {
			u += psi
			v -= psi
		}
	}

	scriptsBox := vbox{}
	if sup != nil {
		if supKern != 0 {
			sup.prepend(hkern(supKern))
		}
		subH := dimen.Zero
		if sub != nil {
			subH = sub.h
		}
		scriptsBox.add(sup.asNode())
		scriptsBox.add(vkern(u - subH + v))
	}
	scriptsBox.offset = v
	if sub != nil {
		if subKern != 0 {
			sub.prepend(hkern(subKern))
		}
		scriptsBox.add(sub.asNode())
	}

	out := &hlist{}
	out.add(base)
	out.add(scriptsBox.build())
	out.finalize()
	return out.asNode(), nil
}

// singleSymbol reports a list consisting of exactly one symbol node.
func singleSymbol(l formula.List) (*formula.Symbol, bool) {
	if len(l) != 1 {
		return nil, false
	}
	sym, ok := l[0].(*formula.Symbol)
	return sym, ok
}

// operatorLimits stacks the superscript above and the subscript below
// an operator nucleus, centred on each other with the italics
// correction split between them.
func (set Settings) operatorLimits(base Node, sup, sub *hlist) (Node, error) {
	var delta dimen.Dimen
	if g, ok := base.IsGlyph(); ok {
		delta = g.Italics
	}

	supNode, subNode := Node{Body: &HBox{}}, Node{Body: &HBox{}}
	var supW, supD, subW, subH dimen.Dimen
	if sup != nil {
		supNode = sup.asNode()
		supW, supD = sup.w, sup.d
	}
	if sub != nil {
		subNode = sub.asNode()
		subW, subH = sub.w, sub.h
	}

	supKern := dimen.Max(set.konst(font.UpperLimitBaselineRiseMin),
		set.konst(font.UpperLimitGapMin)+supD)
	subKern := dimen.Max(set.konst(font.LowerLimitGapMin),
		set.konst(font.LowerLimitBaselineDropMin)-subH) + base.D

	width := dimen.Max(base.W, dimen.Max(subW+delta/2, supW+delta/2))

	out := vbox{}
	if sup != nil {
		upper := &hlist{align: Alignment{Kind: AlignCentered, Width: supW}}
		upper.add(hkern(delta / 2))
		upper.add(supNode)
		un := upper.asNode()
		un.W = width
		out.add(un)
		out.add(vkern(supKern))
	}

	centred := base
	if hb, ok := centred.Body.(*HBox); ok {
		hb.Align = Alignment{Kind: AlignCentered, Width: centred.W}
		centred.W = width
	} else {
		wrap := &hlist{align: Alignment{Kind: AlignCentered, Width: centred.W}}
		wrap.add(centred)
		centred = wrap.asNode()
		centred.W = width
	}
	out.add(centred)

	if sub != nil {
		out.add(vkern(subKern))
		lower := &hlist{align: Alignment{Kind: AlignCentered, Width: subW}}
		lower.add(hkern(-delta / 2))
		lower.add(subNode)
		ln := lower.asNode()
		ln.W = width
		out.add(ln)
		// preserve the operator baseline
		out.offset = subH + subKern
	}
	return out.build(), nil
}
