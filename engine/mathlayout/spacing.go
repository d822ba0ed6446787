package mathlayout

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/mathsym"
)

// Inter-atom spacing, following the table on p.170 of The TeXbook.

// Space amounts in em.
const (
	spaceThin   = 3.0 / 18.0
	spaceMedium = 4.0 / 18.0
	spaceThick  = 5.0 / 18.0
)

type spaceKind int8

const (
	spaceNone spaceKind = iota
	thin
	med
	thick
	medDT   // medium, only in display and text styles
	thickDT // thick, only in display and text styles
	thinDT  // thin, only in display and text styles
)

// spacingTable[left][right] for the eight spacing classes in the
// order Ord, Op, Bin, Rel, Open, Close, Punct, Inner. Entries for
// pairs that cannot occur after the bin-to-ord rules are spaceNone.
var spacingTable = [8][8]spaceKind{
	//         Ord      Op     Bin      Rel      Open     Close   Punct   Inner
	/* Ord   */ {spaceNone, thin, medDT, thickDT, spaceNone, spaceNone, spaceNone, thinDT},
	/* Op    */ {thin, thin, spaceNone, thickDT, spaceNone, spaceNone, spaceNone, thinDT},
	/* Bin   */ {medDT, medDT, spaceNone, spaceNone, medDT, spaceNone, spaceNone, medDT},
	/* Rel   */ {thickDT, thickDT, spaceNone, spaceNone, thickDT, spaceNone, spaceNone, thickDT},
	/* Open  */ {spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone},
	/* Close */ {spaceNone, thin, medDT, thickDT, spaceNone, spaceNone, spaceNone, thinDT},
	/* Punct */ {thinDT, thinDT, spaceNone, thinDT, thinDT, thinDT, thinDT, thinDT},
	/* Inner */ {thinDT, thin, medDT, thickDT, thinDT, spaceNone, thinDT, thinDT},
}

// spaceBetween returns the separation between two adjacent atoms of
// the given spacing classes, under the current style. Medium and
// thick spaces (and style-restricted thin spaces) are omitted in
// script and scriptscript styles.
func (set Settings) spaceBetween(left, right mathsym.AtomClass) dimen.Dimen {
	l, r := left.SpacingClass(), right.SpacingClass()
	if l > mathsym.Inner || r > mathsym.Inner {
		return 0
	}
	kind := spacingTable[l][r]
	scriptStyle := set.Style < TextCramped
	switch kind {
	case thin:
		return set.em(spaceThin)
	case thinDT:
		if scriptStyle {
			return 0
		}
		return set.em(spaceThin)
	case med, medDT:
		if scriptStyle {
			return 0
		}
		return set.em(spaceMedium)
	case thick, thickDT:
		if scriptStyle {
			return 0
		}
		return set.em(spaceThick)
	}
	return 0
}
