package mathlayout

import (
	"math"

	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

// Settings parameterize a layout run: the font context, the font size
// (the length of 1 em) and the current style. Settings are passed by
// value through the layout recursion.
type Settings struct {
	Ctx   *font.Context
	Size  dimen.Dimen
	Style Style
}

// NewSettings returns settings for a font context at the given size.
func NewSettings(ctx *font.Context, size dimen.Dimen, style Style) Settings {
	return Settings{Ctx: ctx, Size: size, Style: style}
}

func (set Settings) styled(s Style) Settings {
	set.Style = s
	return set
}

// scale is the style scale factor from the MATH script percentages.
func (set Settings) scale() float64 {
	switch {
	case set.Style >= TextCramped:
		return 1.0
	case set.Style >= ScriptCramped:
		return set.Ctx.Percent(font.ScriptPercentScaleDown)
	}
	return set.Ctx.Percent(font.ScriptScriptPercentScaleDown)
}

// glyphScale converts font units to scaled points at the current
// style.
func (set Settings) glyphScale() float64 {
	return float64(set.Size) * set.scale() / float64(set.Ctx.UnitsPerEm())
}

// funits converts a font-unit length to scaled points, applying the
// style scale.
func (set Settings) funits(v int32) dimen.Dimen {
	return dimen.Dimen(math.Round(float64(v) * set.glyphScale()))
}

// funitsAbs converts a font-unit length to scaled points at full
// size, ignoring the style scale.
func (set Settings) funitsAbs(v int32) dimen.Dimen {
	return dimen.Dimen(math.Round(float64(v) * float64(set.Size) / float64(set.Ctx.UnitsPerEm())))
}

// toFUnits converts scaled points back to font units at full size,
// e.g. for variant chain targets.
func (set Settings) toFUnits(d dimen.Dimen) int32 {
	return int32(math.Ceil(float64(d) * float64(set.Ctx.UnitsPerEm()) / float64(set.Size)))
}

// em converts an em-relative length to scaled points at the current
// style.
func (set Settings) em(f float64) dimen.Dimen {
	return dimen.Dimen(math.Round(f * float64(set.Size) * set.scale()))
}

// konst returns a MATH constant in scaled points at the current
// style.
func (set Settings) konst(c font.Constant) dimen.Dimen {
	return set.funits(set.Ctx.Constant(c))
}

// konstAbs returns a MATH constant in scaled points at full size.
func (set Settings) konstAbs(c font.Constant) dimen.Dimen {
	return set.funitsAbs(set.Ctx.Constant(c))
}

// --- Entry point -----------------------------------------------------------

// Layout typesets a math list and returns the root of the layout
// tree, an HBox whose baseline is the formula baseline.
func Layout(list formula.List, set Settings) (Node, error) {
	l, err := layoutList(list, set)
	if err != nil {
		return Node{}, err
	}
	l.finalize()
	return l.asNode(), nil
}

// classified is the spacing class of a list entry; transparent
// entries (kerns) do not take part in spacing.
type classified struct {
	class       mathsym.AtomClass
	transparent bool
}

// classify computes the spacing classes for a list and applies the
// bin-to-ord rules: a Bin atom at the start of the list or after
// Bin/Op/Rel/Open/Punct becomes Ord (rule 5), and a Bin directly
// before Rel/Close/Punct becomes Ord (rule 6). The rules edit
// previous classifications, so they run as a pass over the classified
// list, keeping the main layout pass linear.
func classify(list formula.List) []classified {
	cls := make([]classified, len(list))
	for i, n := range list {
		switch n.(type) {
		case *formula.Kern:
			cls[i] = classified{transparent: true}
		default:
			cls[i] = classified{class: n.Class().SpacingClass()}
		}
	}
	// rules 5 and 6
	prev := -1
	for i := range cls {
		if cls[i].transparent {
			continue
		}
		if cls[i].class == mathsym.Bin {
			if prev < 0 {
				cls[i].class = mathsym.Ord
			} else {
				switch cls[prev].class {
				case mathsym.Bin, mathsym.Op, mathsym.Rel, mathsym.Open, mathsym.Punct:
					cls[i].class = mathsym.Ord
				}
			}
		}
		if prev >= 0 && cls[prev].class == mathsym.Bin {
			switch cls[i].class {
			case mathsym.Rel, mathsym.Close, mathsym.Punct:
				cls[prev].class = mathsym.Ord
			}
		}
		prev = i
	}
	return cls
}

// layoutList typesets a list of parse nodes under the given settings,
// inserting inter-atom spacing.
func layoutList(list formula.List, set Settings) (*hlist, error) {
	out := &hlist{}
	cls := classify(list)
	prev := -1
	var pendingItalics dimen.Dimen
	for i, pn := range list {
		var space dimen.Dimen
		if !cls[i].transparent {
			if prev >= 0 {
				space = set.spaceBetween(cls[prev].class, cls[i].class)
			}
			prev = i
		}
		if space != 0 {
			out.add(hkern(space))
			pendingItalics = 0
		} else if pendingItalics != 0 {
			// discharge italics correction before an upright neighbour
			if italicsCorrectionApplies(pn) {
				out.add(hkern(pendingItalics))
			}
			pendingItalics = 0
		}
		node, italics, err := set.dispatch(pn)
		if err != nil {
			return nil, err
		}
		pendingItalics = italics
		out.add(node)
	}
	return out, nil
}

// italicsCorrectionApplies tells if an italics correction pending
// from the previous glyph has to materialize before this node.
func italicsCorrectionApplies(pn formula.Node) bool {
	if sym, ok := pn.(*formula.Symbol); ok {
		if mathsym.IsItalicized(sym.Sym.Codepoint, sym.Style) {
			return false
		}
	}
	return true
}

// dispatch lays out a single parse node. For symbol nodes it returns
// a pending italics correction to be discharged before an upright
// right neighbour.
func (set Settings) dispatch(pn formula.Node) (Node, dimen.Dimen, error) {
	switch t := pn.(type) {
	case *formula.Symbol:
		node, err := set.symbol(t)
		if err != nil {
			return Node{}, 0, err
		}
		var italics dimen.Dimen
		if g, ok := node.IsGlyph(); ok && mathsym.IsItalicized(t.Sym.Codepoint, t.Style) {
			italics = g.Italics
		}
		return node, italics, nil
	case *formula.Scripts:
		n, err := set.scripts(t)
		return n, 0, err
	case *formula.GenFraction:
		n, err := set.fraction(t)
		return n, 0, err
	case *formula.Radical:
		n, err := set.radical(t)
		return n, 0, err
	case *formula.Delimited:
		n, err := set.delimited(t)
		return n, 0, err
	case *formula.Accent:
		n, err := set.accent(t)
		return n, 0, err
	case *formula.Array:
		n, err := set.array(t)
		return n, 0, err
	case *formula.Group:
		l, err := layoutList(t.Inner, set)
		if err != nil {
			return Node{}, 0, err
		}
		l.finalize()
		return l.asNode(), 0, nil
	case *formula.Style:
		cramped := t.Cramped || set.Style.IsCramped()
		l, err := layoutList(t.Inner, set.styled(styleFor(t.Size, cramped)))
		if err != nil {
			return Node{}, 0, err
		}
		l.finalize()
		return l.asNode(), 0, nil
	case *formula.AtomChange:
		l, err := layoutList(t.Inner, set)
		if err != nil {
			return Node{}, 0, err
		}
		l.finalize()
		return l.asNode(), 0, nil
	case *formula.Color:
		l, err := layoutList(t.Inner, set)
		if err != nil {
			return Node{}, 0, err
		}
		l.finalize()
		return Node{
			W: l.w, H: l.h, D: l.d,
			Body: &ColorBody{Color: t.Color, Contents: l.contents},
		}, 0, nil
	case *formula.Rule:
		return rule(t.Width, t.Height), 0, nil
	case *formula.Kern:
		if t.Em != 0 {
			return hkern(set.em(t.Em)), 0, nil
		}
		return hkern(t.Amount), 0, nil
	case *formula.PlainText:
		n, err := set.plainText(t)
		return n, 0, err
	case *formula.Extend:
		n, err := set.extend(t)
		return n, 0, err
	}
	tracer().Errorf("layout cannot handle parse node %T", pn)
	return Node{}, 0, nil
}

// symbol lays out a single symbol atom. Operators are handled
// specially: in display style we may need a larger variant, centred
// on the axis.
func (set Settings) symbol(sym *formula.Symbol) (Node, error) {
	if sym.Sym.Class == mathsym.Op {
		return set.largeOp(sym)
	}
	r := sym.Sym.Codepoint
	if sym.Sym.Class == mathsym.Alpha {
		r = mathsym.StyleChar(r, sym.Style)
	}
	return set.glyphFor(r)
}

// glyphFor builds a glyph node for a codepoint.
func (set Settings) glyphFor(r rune) (Node, error) {
	gid, m, err := set.Ctx.Glyph(r)
	if err != nil {
		return Node{}, err
	}
	return set.glyphNode(gid, m), nil
}

func (set Settings) glyphNode(gid font.GlyphID, m font.Metrics) Node {
	return Node{
		W: set.funits(m.Advance),
		H: set.funits(m.Height()),
		D: -set.funits(m.Depth()),
		Body: &Glyph{
			GID:       gid,
			Scale:     set.glyphScale(),
			Italics:   set.funits(m.ItalicsCorrection),
			Attach:    set.funits(m.TopAccent),
			HasAttach: m.HasTopAccent,
		},
	}
}

// largeOp enlarges an operator glyph in display style to
// DisplayOperatorMinHeight and centres it on the axis.
func (set Settings) largeOp(sym *formula.Symbol) (Node, error) {
	if set.Style <= Text {
		return set.glyphFor(sym.Sym.Codepoint)
	}
	axis := set.konst(font.AxisHeight)
	minHeight := set.Ctx.Constant(font.DisplayOperatorMinHeight)
	variant, err := set.Ctx.VertVariant(sym.Sym.Codepoint, minHeight)
	if err != nil {
		return Node{}, err
	}
	large, err := set.variantNode(variant)
	if err != nil {
		return Node{}, err
	}
	return centerOnAxis(large, axis), nil
}

// variantNode converts a selected variant glyph into a layout node;
// assemblies become boxes of stacked pieces.
func (set Settings) variantNode(v font.VariantGlyph) (Node, error) {
	if !v.IsAssembly() {
		m, err := set.Ctx.Metrics(v.GID)
		if err != nil {
			return Node{}, err
		}
		return set.glyphNode(v.GID, m), nil
	}
	if v.Axis == font.Vertical {
		// stack pieces bottom-to-top; the box baseline ends up at the
		// bottom of the lowest piece
		vb := vbox{}
		for _, piece := range v.Pieces {
			m, err := set.Ctx.Metrics(piece.GID)
			if err != nil {
				return Node{}, err
			}
			g := set.glyphNode(piece.GID, m)
			if piece.Overlap != 0 {
				// the piece's depth bleeds into the connector overlap
				vb.prepend(vkern(g.D - set.funits(piece.Overlap)))
			}
			vb.prepend(g)
		}
		return vb.build(), nil
	}
	out := &hlist{}
	for _, piece := range v.Pieces {
		m, err := set.Ctx.Metrics(piece.GID)
		if err != nil {
			return Node{}, err
		}
		if piece.Overlap != 0 {
			out.add(hkern(-set.funits(piece.Overlap)))
		}
		out.add(set.glyphNode(piece.GID, m))
	}
	return out.asNode(), nil
}

// plainText lays out naive upright text, glyph by glyph. Text in
// \mbox does not adapt to the script size.
func (set Settings) plainText(t *formula.PlainText) (Node, error) {
	tset := set
	if !t.SizeAdaptive && set.Style < TextCramped {
		tset = set.styled(Text)
	}
	out := &hlist{}
	for _, r := range t.Text {
		if r == ' ' || r == '\t' || r == '\n' {
			out.add(hkern(tset.em(spaceMedium)))
			continue
		}
		g, err := tset.glyphFor(r)
		if err != nil {
			return Node{}, err
		}
		out.add(g)
	}
	out.finalize()
	return out.asNode(), nil
}

// extend stretches a symbol to a target height, or picks a fixed
// variant chain entry for the \big command family.
func (set Settings) extend(t *formula.Extend) (Node, error) {
	axis := set.konst(font.AxisHeight)
	if t.Size > 0 {
		gid, err := set.Ctx.FixedVariant(t.Sym.Codepoint, t.Size)
		if err != nil {
			return Node{}, err
		}
		m, err := set.Ctx.Metrics(gid)
		if err != nil {
			return Node{}, err
		}
		return centerOnAxis(set.glyphNode(gid, m), axis), nil
	}
	target := set.toFUnits(t.Height)
	variant, err := set.Ctx.VertVariant(t.Sym.Codepoint, target)
	if err != nil {
		return Node{}, err
	}
	node, err := set.variantNode(variant)
	if err != nil {
		return Node{}, err
	}
	return centerOnAxis(node, axis), nil
}
