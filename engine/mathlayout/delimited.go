package mathlayout

// \left…\right groups with optional \middle pieces: stretch the
// delimiters over the enclosed content and centre them on the axis.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

func (set Settings) delimited(del *formula.Delimited) (Node, error) {
	inners := make([]Node, 0, len(del.Inners))
	var maxHeight, maxDepth dimen.Dimen
	for _, list := range del.Inners {
		l, err := layoutList(list, set)
		if err != nil {
			return Node{}, err
		}
		l.finalize()
		n := l.asNode()
		maxHeight = dimen.Max(maxHeight, n.H)
		maxDepth = dimen.Max(maxDepth, n.D)
		inners = append(inners, n)
	}

	minHeight := set.funitsAbs(set.Ctx.Constant(font.DelimitedSubFormulaMinHeight))
	nullSpace := set.Size / 10

	// Stretch only if the content asks for it; tiny content keeps the
	// delimiters at their natural size.
	stretch := dimen.Max(maxHeight, maxDepth) > minHeight/2
	var clearance dimen.Dimen
	axisAbs := set.konstAbs(font.AxisHeight)
	if stretch {
		inner := dimen.Max(maxHeight-axisAbs, axisAbs+maxDepth) * 2
		clearance = dimen.Max(inner, dimen.Max(minHeight, maxHeight+maxDepth))
	}

	makeDelim := func(sym mathsym.Symbol) (Node, error) {
		if sym.Codepoint == '.' || sym.Codepoint == 0 {
			return hkern(nullSpace), nil
		}
		if !stretch {
			return set.glyphFor(sym.Codepoint)
		}
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

	out := &hlist{}
	for i, inner := range inners {
		d, err := makeDelim(del.Delims[i])
		if err != nil {
			return Node{}, err
		}
		out.add(d)
		out.add(inner)
	}
	d, err := makeDelim(del.Delims[len(del.Delims)-1])
	if err != nil {
		return Node{}, err
	}
	out.add(d)
	out.finalize()
	return out.asNode(), nil
}
