package mathlayout

// Radicals, rule 11 of appendix G: radicand in cramped style under a
// rule, radical sign from the variant chain, optional degree index.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/formula"
)

func (set Settings) radical(rad *formula.Radical) (Node, error) {
	contents, err := layoutList(rad.Radicand, set.styled(set.Style.Cramped()))
	if err != nil {
		return Node{}, err
	}
	contents.finalize()
	radicand := contents.asNode()

	var gap dimen.Dimen
	if set.Style >= Display {
		gap = set.konst(font.RadicalDisplayStyleVerticalGap)
	} else {
		gap = set.konst(font.RadicalVerticalGap)
	}
	thickness := set.konst(font.RadicalRuleThickness)
	ascender := set.konst(font.RadicalExtraAscender)

	// the radical sign must cover the radicand plus clearance and rule
	innerHeight := radicand.H + radicand.D + gap + thickness
	variant, err := set.Ctx.VertVariant(rad.Shape.Codepoint(), set.toFUnits(innerHeight))
	if err != nil {
		return Node{}, err
	}
	sign, err := set.variantNode(variant)
	if err != nil {
		return Node{}, err
	}

	// distribute surplus of an over-tall sign into the gap
	delta := (sign.H+sign.D-innerHeight)/2 + thickness
	gap = dimen.Max(delta, gap)

	// align the sign's top with the top of the rule
	signOffset := sign.H - (thickness + gap + radicand.H)

	signBox := vbox{offset: signOffset}
	signBox.add(sign)

	body := vbox{}
	body.add(vkern(ascender - thickness))
	body.add(rule(radicand.W, thickness))
	body.add(vkern(gap))
	body.add(radicand)

	out := &hlist{}
	if rad.Index != nil {
		index, err2 := set.degreeIndex(rad.Index, sign)
		if err2 != nil {
			return Node{}, err2
		}
		out.add(index)
	}
	out.add(signBox.build())
	out.add(body.build())
	out.finalize()
	return out.asNode(), nil
}

// degreeIndex lays out the index of \sqrt[n]{…} in scriptscript style
// and raises it along the radical sign, with the kerns the font
// prescribes before and after the degree.
func (set Settings) degreeIndex(list formula.List, sign Node) (Node, error) {
	idx, err := layoutList(list, set.styled(ScriptScript))
	if err != nil {
		return Node{}, err
	}
	idx.finalize()
	before := set.konst(font.RadicalKernBeforeDegree)
	after := set.konst(font.RadicalKernAfterDegree)
	raise := set.Ctx.Percent(font.RadicalDegreeBottomRaisePercent)

	lift := dimen.Dimen(float64(sign.H+sign.D) * raise)
	shift := lift - sign.D

	inner := idx.asNode()
	raised := vbox{offset: -shift}
	raised.add(inner)

	out := &hlist{}
	out.add(hkern(before))
	out.add(raised.build())
	// RadicalKernAfterDegree is negative, pulling the sign under the
	// degree
	out.add(hkern(after))
	out.finalize()
	return out.asNode(), nil
}
