package mathlayout

// Generalized fractions: \frac and friends, \atop stacks, \binom with
// sized delimiters.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

func (set Settings) fraction(f *formula.GenFraction) (Node, error) {
	switch f.Style {
	case formula.ForceDisplay:
		set = set.styled(Display)
	case formula.ForceText:
		set = set.styled(Text)
	case formula.ForceScript:
		set = set.styled(Script)
	case formula.ForceScriptScript:
		set = set.styled(ScriptScript)
	}

	var bar dimen.Dimen
	if f.Bar.Default {
		bar = set.konst(font.FractionRuleThickness)
	} else {
		bar = f.Bar.Thickness
	}

	num, err := layoutList(f.Numer, set.styled(set.Style.Numerator()))
	if err != nil {
		return Node{}, err
	}
	num.finalize()
	den, err := layoutList(f.Denom, set.styled(set.Style.Denominator()))
	if err != nil {
		return Node{}, err
	}
	den.finalize()

	// centre the narrower of the two on the wider
	if num.w > den.w {
		den.centered(num.w)
	} else {
		num.centered(den.w)
	}
	numer := num.asNode()
	denom := den.asNode()

	axis := set.konst(font.AxisHeight)
	var shiftUp, shiftDown, gapNum, gapDenom dimen.Dimen
	if set.Style > Text {
		shiftUp = set.konst(font.FractionNumeratorDisplayStyleShiftUp)
		shiftDown = set.konst(font.FractionDenominatorDisplayStyleShiftDown)
		gapNum = set.konst(font.FractionNumDisplayStyleGapMin)
		gapDenom = set.konst(font.FractionDenomDisplayStyleGapMin)
	} else {
		shiftUp = set.konst(font.FractionNumeratorShiftUp)
		shiftDown = set.konst(font.FractionDenominatorShiftDown)
		gapNum = set.konst(font.FractionNumeratorGapMin)
		gapDenom = set.konst(font.FractionDenominatorGapMin)
	}
	if bar == 0 {
		// \atop: the stack gap constants take over
		if set.Style > Text {
			gapNum = set.konst(font.StackDisplayStyleGapMin)
		} else {
			gapNum = set.konst(font.StackGapMin)
		}
		gapDenom = gapNum
	}

	kernNum := dimen.Max(shiftUp-axis-bar/2, gapNum+numer.D)
	kernDen := dimen.Max(shiftDown+axis-denom.H-bar/2, gapDenom)
	offset := denom.H + kernDen + bar/2 - axis

	inner := vbox{offset: offset}
	inner.add(numer)
	inner.add(vkern(kernNum))
	inner.add(rule(numer.W, bar))
	inner.add(vkern(kernDen))
	inner.add(denom)
	innerNode := inner.build()

	// TeX's \nulldelimiterspace; the MATH table has no equivalent, so
	// use a fixed fraction of the font size.
	nullSpace := set.Size / 10

	if f.Left == nil && f.Right == nil {
		return innerNode, nil
	}
	out := &hlist{}
	left, err := set.fractionDelim(f.Left, innerNode, nullSpace)
	if err != nil {
		return Node{}, err
	}
	out.add(left)
	out.add(innerNode)
	right, err := set.fractionDelim(f.Right, innerNode, nullSpace)
	if err != nil {
		return Node{}, err
	}
	out.add(right)
	out.finalize()
	return out.asNode(), nil
}

// fractionDelim sizes an enclosing delimiter to the fraction's
// extent, or yields the null delimiter space.
func (set Settings) fractionDelim(sym *mathsym.Symbol, inner Node, nullSpace dimen.Dimen) (Node, error) {
	if sym == nil || sym.Codepoint == '.' {
		return hkern(nullSpace), nil
	}
	axisAbs := set.konstAbs(font.AxisHeight)
	clearance := dimen.Max(inner.H-axisAbs, axisAbs+inner.D) * 2
	minHeight := set.funitsAbs(set.Ctx.Constant(font.DelimitedSubFormulaMinHeight))
	clearance = dimen.Max(clearance, minHeight)
	variant, err := set.Ctx.VertVariant(sym.Codepoint, set.toFUnits(clearance))
	if err != nil {
		return Node{}, err
	}
	node, err := set.variantNode(variant)
	if err != nil {
		return Node{}, err
	}
	return centerOnAxis(node, set.konst(font.AxisHeight)), nil
}
