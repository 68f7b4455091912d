package layout

import (
	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/text"
)

// placeTable implements spec §4.7: column width resolution, cell placement
// honoring row/col spans, and row height resolution via deficit
// distribution over spanning cells.
func placeTable(b *Box, metrics *fonts.Metrics, warn func(rendererr.Warning), pending *[]*Box) {
	cx, cy, cw, _ := b.ContentRect()

	var rows []*Box
	for _, r := range b.Children {
		if r.Kind == node.TypeRow {
			rows = append(rows, r)
		}
	}
	numCols := len(b.ColumnWidths)
	if numCols == 0 {
		numCols = maxColumns(rows)
	}

	b.ColWidths = resolveColumnWidths(b, rows, numCols, cw, metrics)

	colX := make([]float64, numCols+1)
	for i := 0; i < numCols; i++ {
		colX[i+1] = colX[i] + b.ColWidths[i]
	}

	type placedCell struct {
		cell             *Box
		col, span        int
		rowStart, rowSpan int
	}
	var cells []placedCell
	occupied := map[[2]int]bool{} // [row, col] -> taken by a rowSpan from an earlier row

	for rowIdx, row := range rows {
		col := 0
		for _, cell := range row.Children {
			if cell.Kind != node.TypeCell {
				continue
			}
			for occupied[[2]int{rowIdx, col}] && col < numCols {
				col++
			}
			colSpan := cell.ColSpan
			if colSpan < 1 {
				colSpan = 1
			}
			if col+colSpan > numCols {
				colSpan = numCols - col
			}
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			for rs := 0; rs < rowSpan; rs++ {
				for cs := 0; cs < colSpan; cs++ {
					occupied[[2]int{rowIdx + rs, col + cs}] = true
				}
			}
			cells = append(cells, placedCell{cell: cell, col: col, span: colSpan, rowStart: rowIdx, rowSpan: rowSpan})
			col += colSpan
		}
	}

	// required height per single-row cell, at its resolved width.
	cellWidth := func(pc placedCell) float64 {
		if pc.col+pc.span > numCols {
			pc.span = numCols - pc.col
		}
		return colX[pc.col+pc.span] - colX[pc.col]
	}

	rowHeights := make([]float64, len(rows))
	for _, pc := range cells {
		w := cellWidth(pc)
		need := measureAtWidth(pc.cell, w, metrics)
		if pc.rowSpan == 1 {
			if need > rowHeights[pc.rowStart] {
				rowHeights[pc.rowStart] = need
			}
		}
	}
	// spanning cells: ensure covered rows sum to at least the requirement,
	// distributing any deficit equally across the spanned rows.
	for _, pc := range cells {
		if pc.rowSpan <= 1 {
			continue
		}
		w := cellWidth(pc)
		need := measureAtWidth(pc.cell, w, metrics)
		var covered float64
		for r := pc.rowStart; r < pc.rowStart+pc.rowSpan && r < len(rowHeights); r++ {
			covered += rowHeights[r]
		}
		if deficit := need - covered; deficit > 0 {
			share := deficit / float64(pc.rowSpan)
			for r := pc.rowStart; r < pc.rowStart+pc.rowSpan && r < len(rowHeights); r++ {
				rowHeights[r] += share
			}
		}
	}
	b.RowHeights = rowHeights

	rowY := make([]float64, len(rows)+1)
	for i := range rows {
		rowY[i+1] = rowY[i] + rowHeights[i]
	}

	for _, row := range rows {
		row.X, row.Y = cx, cy+rowY[indexOf(rows, row)]
		row.W = cw
	}
	for rowIdx := range rows {
		rows[rowIdx].H = rowHeights[rowIdx]
	}

	for _, pc := range cells {
		w := cellWidth(pc)
		var h float64
		for r := pc.rowStart; r < pc.rowStart+pc.rowSpan && r < len(rowHeights); r++ {
			h += rowHeights[r]
		}
		pc.cell.X = cx + colX[pc.col]
		pc.cell.Y = cy + rowY[pc.rowStart]
		pc.cell.W = w
		pc.cell.H = h
		placeBox(pc.cell, metrics, warn, pending)
	}

	b.H = rowY[len(rows)] + b.PaddingPt.Vertical() + b.BorderPt.Vertical()
}

func indexOf(rows []*Box, r *Box) int {
	for i, x := range rows {
		if x == r {
			return i
		}
	}
	return 0
}

func maxColumns(rows []*Box) int {
	max := 0
	for _, row := range rows {
		var n int
		for _, cell := range row.Children {
			if cell.Kind != node.TypeCell {
				continue
			}
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			n += span
		}
		if n > max {
			max = n
		}
	}
	return max
}

// resolveColumnWidths expands fixed/percent entries against the table's
// content width, then sizes "auto" columns from the max intrinsic-pref
// width of their single-span cells, scaling to fit any remainder
// (spec §4.7 step 1).
func resolveColumnWidths(b *Box, rows []*Box, numCols int, tableWidth float64, metrics *fonts.Metrics) []float64 {
	widths := make([]float64, numCols)
	isAuto := make([]bool, numCols)
	var fixedSum float64
	for i := 0; i < numCols; i++ {
		if i >= len(b.ColumnWidths) {
			isAuto[i] = true
			continue
		}
		cw := b.ColumnWidths[i]
		if cw.Auto {
			isAuto[i] = true
			continue
		}
		v, ok := cw.Width.Resolve(tableWidth, true)
		if !ok {
			isAuto[i] = true
			continue
		}
		widths[i] = v
		fixedSum += v
	}

	autoPref := make([]float64, numCols)
	autoMin := make([]float64, numCols)
	for _, row := range rows {
		col := 0
		for _, cell := range row.Children {
			if cell.Kind != node.TypeCell {
				continue
			}
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if span == 1 && col < numCols && isAuto[col] {
				if cell.IntrinsicPref.W > autoPref[col] {
					autoPref[col] = cell.IntrinsicPref.W
				}
				if cell.IntrinsicMin.W > autoMin[col] {
					autoMin[col] = cell.IntrinsicMin.W
				}
			}
			col += span
		}
	}

	remainder := tableWidth - fixedSum
	var autoPrefSum float64
	var autoCount int
	for i := 0; i < numCols; i++ {
		if isAuto[i] {
			autoPrefSum += autoPref[i]
			autoCount++
		}
	}
	if autoCount == 0 {
		return widths
	}
	if remainder < 0 {
		remainder = 0
	}

	if autoPrefSum <= remainder {
		leftover := remainder - autoPrefSum
		share := leftover / float64(autoCount)
		for i := 0; i < numCols; i++ {
			if isAuto[i] {
				widths[i] = autoPref[i] + share
			}
		}
		return widths
	}

	// scale down proportionally, never below intrinsic-min.
	var autoMinSum float64
	for i := 0; i < numCols; i++ {
		if isAuto[i] {
			autoMinSum += autoMin[i]
		}
	}
	scalable := remainder - autoMinSum
	prefRoom := autoPrefSum - autoMinSum
	for i := 0; i < numCols; i++ {
		if !isAuto[i] {
			continue
		}
		if scalable <= 0 || prefRoom <= 0 {
			widths[i] = autoMin[i]
			continue
		}
		widths[i] = autoMin[i] + (autoPref[i]-autoMin[i])*(scalable/prefRoom)
	}
	return widths
}

// measureAtWidth computes a box's natural content height once constrained
// to width, re-wrapping text and summing column-direction containers
// (spec §4.7 step 3: "run the flex layout recursively").
func measureAtWidth(b *Box, width float64, metrics *fonts.Metrics) float64 {
	padH := b.Style.Padding.ResolveHorizontal(width, true)
	padV := b.Style.Padding.ResolveVertical(0, false)
	top, _ := b.Style.Border.Top.Width.Resolve(0, false)
	bottom, _ := b.Style.Border.Bottom.Width.Resolve(0, false)
	borderV := top + bottom
	contentWidth := width - padH

	switch b.Kind {
	case node.TypeText:
		lines := text.Wrap(b.NodeText, b.Text, metrics, contentWidth)
		n := len(lines)
		if n == 0 {
			n = 1
		}
		return float64(n)*b.Text.FontSize*b.Text.LineHeight + padV + borderV
	default:
		var sum float64
		for i, c := range b.Children {
			h := measureAtWidth(c, contentWidth, metrics)
			if i > 0 {
				sum += b.Style.Gap
			}
			sum += h
		}
		if len(b.Children) == 0 {
			sum = b.IntrinsicPref.H
		}
		return sum + padV + borderV
	}
}
