package mathlayout

// Arrays and matrices: cells in text style, strut-based row extents,
// column alignment, vertical rules and custom column separators, the
// whole centred on the math axis. The matrix environments wrap the
// body in stretched delimiters.

import (
	"github.com/npillmayer/mex/core/dimen"
	"github.com/npillmayer/mex/core/font"
	"github.com/npillmayer/mex/core/mathsym"
	"github.com/npillmayer/mex/engine/formula"
)

// Array dimensioning, from the LaTeX class defaults: baseline skip of
// 1.2 em with a 70/30 strut, \arraycolsep 5pt, \arrayrulewidth 0.4pt,
// \doublerulesep 2pt.
const arrayBaselineSkip = 1.2

func (set Settings) array(arr *formula.Array) (Node, error) {
	cellStyle := Text
	if arr.Small {
		cellStyle = ScriptScript
	}
	cellSet := set.styled(cellStyle)

	strutHeight := set.em(arrayBaselineSkip * 0.7)
	strutDepth := set.em(arrayBaselineSkip * 0.3)
	halfColSep := 5 * dimen.PT     // \arraycolsep, half the intercolumn space
	ruleWidth := 2 * dimen.PT / 5  // \arrayrulewidth 0.4pt
	doubleRuleSep := 2 * dimen.PT  // \doublerulesep

	numRows := len(arr.Rows)
	numCols := 0
	for _, row := range arr.Rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return set.emptyArray(arr)
	}

	cols := make([]formula.ColSpec, numCols)
	copy(cols, arr.Cols)

	// lay out all cells, tracking column widths and row extents
	cells := make([][]*hlist, numCols)
	for j := range cells {
		cells[j] = make([]*hlist, numRows)
	}
	colWidth := make([]dimen.Dimen, numCols)
	rowHeight := make([]dimen.Dimen, numRows)
	rowDepth := make([]dimen.Dimen, numRows)
	for i, row := range arr.Rows {
		rowHeight[i] = strutHeight
		rowDepth[i] = strutDepth
		for j := 0; j < numCols; j++ {
			var cell *hlist
			if j < len(row) {
				var err error
				if cell, err = layoutList(row[j], cellSet); err != nil {
					return Node{}, err
				}
				cell.finalize()
			} else {
				cell = &hlist{} // ragged row, pad with an empty cell
			}
			cells[j][i] = cell
			colWidth[j] = dimen.Max(colWidth[j], cell.w)
			rowHeight[i] = dimen.Max(rowHeight[i], cell.h)
			rowDepth[i] = dimen.Max(rowDepth[i], cell.d)
		}
		if arr.RowSeps != nil && i < len(arr.RowSeps) {
			rowDepth[i] += arr.RowSeps[i]
		}
	}
	var totalHeight dimen.Dimen
	for i := 0; i < numRows; i++ {
		totalHeight += rowHeight[i] + rowDepth[i]
	}

	separate := !arr.Aligned && !arr.Small

	body := &hlist{}
	addRules := func(count int) {
		for b := 0; b < count; b++ {
			if b > 0 {
				body.add(hkern(doubleRuleSep))
			}
			body.add(rule(ruleWidth, totalHeight))
		}
	}
	addSep := func(text *string) error {
		if text != nil {
			// custom @{…} separator replaces the default space
			sep, err := set.styled(Text).plainText(&formula.PlainText{Text: *text, SizeAdaptive: false})
			if err != nil {
				return err
			}
			body.add(sep)
			return nil
		}
		if separate {
			body.add(hkern(halfColSep))
		}
		return nil
	}

	if numCols > 0 {
		addRules(cols[0].BarsBefore)
	}
	if cols[0].SepBefore != nil || arr.Left == nil {
		if err := addSep(cols[0].SepBefore); err != nil {
			return Node{}, err
		}
	}

	for j := 0; j < numCols; j++ {
		if cols[j].SepBefore != nil && j > 0 {
			if err := addSep(cols[j].SepBefore); err != nil {
				return Node{}, err
			}
		}
		col := vbox{}
		for i := 0; i < numRows; i++ {
			cell := cells[j][i]
			align := Alignment{Kind: AlignCentered, Width: cell.w}
			switch cols[j].Align {
			case formula.ColLeft:
				align = Alignment{Kind: AlignLeft, Width: cell.w}
			case formula.ColRight:
				align = Alignment{Kind: AlignRight, Width: cell.w}
			}
			cell.align = align
			cn := cell.asNode()
			cn.W = colWidth[j]
			col.add(vkern(rowHeight[i] - cn.H))
			col.add(cn)
			// the cell's ink depth bleeds into the row's depth slot
			col.add(vkern(rowDepth[i]))
		}
		body.add(col.build())

		last := j+1 == numCols
		// an @{…} separator before the next column replaces the default
		// space on both sides of the column boundary
		custom := !last && cols[j+1].SepBefore != nil
		if cols[j].SepAfter != nil {
			if err := addSep(cols[j].SepAfter); err != nil {
				return Node{}, err
			}
		} else if !custom && (!last || arr.Right == nil) {
			if err := addSep(nil); err != nil {
				return Node{}, err
			}
		}
		addRules(cols[j].BarsAfter)
		if !last {
			addRules(cols[j+1].BarsBefore)
		}
		if !last && !custom {
			if err := addSep(nil); err != nil {
				return Node{}, err
			}
		}
	}
	body.finalize()
	bodyNode := body.asNode()

	// centre the body vertically on the math axis
	axis := set.konst(font.AxisHeight)
	centred := vbox{offset: (bodyNode.H+bodyNode.D)/2 - axis}
	centred.add(bodyNode)
	matrix := centred.build()

	if arr.Left == nil && arr.Right == nil {
		return matrix, nil
	}
	return set.matrixDelims(matrix, arr.Left, arr.Right)
}

// matrixDelims wraps a centred matrix body into stretched delimiters.
func (set Settings) matrixDelims(matrix Node, left, right *mathsym.Symbol) (Node, error) {
	total := matrix.H + matrix.D
	// TeX's \delimiterfactor and \delimitershortfall
	clearance := dimen.Max(total.Scale(0.901), total-set.em(0.5))
	axis := set.konst(font.AxisHeight)

	out := &hlist{}
	if left != nil && left.Codepoint != '.' {
		variant, err := set.Ctx.VertVariant(left.Codepoint, set.toFUnits(clearance))
		if err != nil {
			return Node{}, err
		}
		n, err := set.variantNode(variant)
		if err != nil {
			return Node{}, err
		}
		out.add(centerOnAxis(n, axis))
	}
	out.add(matrix)
	if right != nil && right.Codepoint != '.' {
		variant, err := set.Ctx.VertVariant(right.Codepoint, set.toFUnits(clearance))
		if err != nil {
			return Node{}, err
		}
		n, err := set.variantNode(variant)
		if err != nil {
			return Node{}, err
		}
		out.add(centerOnAxis(n, axis))
	}
	out.finalize()
	return out.asNode(), nil
}

// emptyArray renders an array without cells: just the enclosing
// delimiters at their natural size, centred on the axis.
func (set Settings) emptyArray(arr *formula.Array) (Node, error) {
	axis := set.konst(font.AxisHeight)
	out := &hlist{}
	for _, sym := range []*mathsym.Symbol{arr.Left, arr.Right} {
		if sym == nil || sym.Codepoint == '.' {
			continue
		}
		g, err := set.glyphFor(sym.Codepoint)
		if err != nil {
			return Node{}, err
		}
		out.add(centerOnAxis(g, axis))
	}
	out.finalize()
	return out.asNode(), nil
}
