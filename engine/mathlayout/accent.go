package mathlayout

// Accents: the nucleus is laid out in cramped style; top accents are
// positioned at the top-accent attachment point, stretchy accents
// grow to the nucleus width. Accents add height only and never alter
// the nucleus baseline.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/engine/formula"
)

func (set Settings) accent(acc *formula.Accent) (Node, error) {
	nuc, err := layoutList(acc.Nucleus, set.styled(set.Style.Cramped()))
	if err != nil {
		return Node{}, err
	}
	nuc.finalize()
	base := nuc.asNode()

	var mark Node
	var markAttach dimen.Dimen
	if acc.Stretchy {
		variant, err2 := set.Ctx.HorzVariant(acc.Sym.Codepoint, set.toFUnits(base.W))
		if err2 != nil {
			return Node{}, err2
		}
		if mark, err = set.variantNode(variant); err != nil {
			return Node{}, err
		}
		if !variant.IsAssembly() {
			markAttach = set.markAttachment(variant.GID, mark)
		} else {
			markAttach = mark.W / 2
		}
	} else {
		gid, m, err2 := set.Ctx.Glyph(acc.Sym.Codepoint)
		if err2 != nil {
			return Node{}, err2
		}
		mark = set.glyphNode(gid, m)
		markAttach = set.markAttachment(gid, mark)
	}

	// attachment point of the nucleus: a simple symbol uses its
	// top-accent attachment, anything else its horizontal centre
	var baseAttach dimen.Dimen
	if g, ok := base.IsGlyph(); ok {
		if g.HasAttach {
			baseAttach = g.Attach
		} else {
			baseAttach = (base.W + g.Italics) / 2
		}
	} else {
		baseAttach = base.W / 2
	}

	if acc.Under {
		shifted := &hlist{}
		shifted.add(hkern(baseAttach - markAttach))
		shifted.add(mark)
		mk := shifted.asNode()
		out := vbox{}
		out.add(base)
		out.add(vkern(base.D))
		out.add(mk)
		out.offset = base.D + mk.H
		n := out.build()
		n.W = base.W
		return n, nil
	}

	// do not raise the accent further than over an 'x' of the
	// current style
	delta := -dimen.Min(base.H, set.konst(font.AccentBaseHeight))

	shifted := &hlist{}
	shifted.add(hkern(baseAttach - markAttach))
	shifted.add(mark)

	out := vbox{}
	out.add(shifted.asNode())
	out.add(vkern(delta))
	out.add(base)
	n := out.build()
	n.W = base.W
	return n, nil
}

// markAttachment is the horizontal attachment point of an accent
// glyph: the font's top-accent attachment if present, else the centre
// of the glyph's ink.
func (set Settings) markAttachment(gid font.GlyphID, mark Node) dimen.Dimen {
	m, err := set.Ctx.Metrics(gid)
	if err != nil {
		return mark.W / 2
	}
	if m.HasTopAccent {
		return set.funits(m.TopAccent)
	}
	// combining marks may have zero advance; use the ink extent
	return set.funits(m.XMin+m.XMax) / 2
}
