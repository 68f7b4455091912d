package layout

import (
	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
	"github.com/wudi/docrender/text"
)

// Place runs the top-down flexbox-like place pass of spec §4.5 over a
// Measure-annotated tree, starting from the page's own size. Absolute
// descendants are resolved in a second pass once every in-flow box has a
// final rectangle, since their containing block may itself be a box placed
// later in the same traversal.
func Place(root *Box, metrics *fonts.Metrics, warn func(rendererr.Warning)) {
	root.X, root.Y = 0, 0
	root.W, root.H = root.Style.Width.Value, root.Style.Height.Value

	var pending []*Box
	placeBox(root, metrics, warn, &pending)
	for i := 0; i < len(pending); i++ {
		placeAbsoluteBox(pending[i], metrics, warn, &pending)
	}
}

// placeBox assumes b.X/Y/W/H (outer) are already assigned and fills in the
// padding/border and content, recursing as appropriate for its kind.
func placeBox(b *Box, metrics *fonts.Metrics, warn func(rendererr.Warning), pending *[]*Box) {
	b.PaddingPt = resolveEdges(b.Style.Padding, b.W, b.H)
	b.BorderPt = resolveBorder(b.Style.Border, b.W, b.H)

	switch b.Kind {
	case node.TypeText:
		placeText(b, metrics)
	case node.TypeImage, node.TypeSvg:
		// leaves: content rect established by padding/border above.
	case node.TypeTable:
		placeTable(b, metrics, warn, pending)
	default:
		placeFlexContainer(b, metrics, warn, pending)
	}
}

func placeText(b *Box, metrics *fonts.Metrics) {
	_, _, cw, _ := b.ContentRect()
	width := cw
	if b.NoWrap {
		width = text.UnwrappedWidth(b.NodeText, b.Text, metrics) + 1
	}
	b.Lines = text.Wrap(b.NodeText, b.Text, metrics, width)
	if !b.Style.Height.IsSet() {
		needed := text.Height(len(b.Lines), b.Text)
		b.H = needed + b.PaddingPt.Vertical() + b.BorderPt.Vertical()
	}
}

// placeFlexContainer implements spec §4.5 steps 1-8 for one container.
func placeFlexContainer(b *Box, metrics *fonts.Metrics, warn func(rendererr.Warning), pending *[]*Box) {
	cx, cy, cw, ch := b.ContentRect()
	if cw <= 0 || ch <= 0 {
		// spec §7: zero or negative container dimensions — emit no children.
		warn(rendererr.Warn(rendererr.KindDegenerateLayout, "", "container %s has non-positive content box (%.2f x %.2f); no children placed", b.Kind, cw, ch))
		return
	}
	mainIsRow := b.Style.Direction == style.DirectionRow
	mainExtent, crossExtent := cw, ch
	if !mainIsRow {
		mainExtent, crossExtent = ch, cw
	}

	var inFlow []*flexChild
	for _, c := range b.Children {
		if c.Style.Position == style.PositionAbsolute {
			c.Absolute = true
			*pending = append(*pending, c)
			continue
		}
		inFlow = append(inFlow, &flexChild{box: c, mainHypo: hypotheticalMain(c, mainIsRow, mainExtent)})
	}

	lines := wrapIntoLines(inFlow, mainExtent, b.Style.Gap, b.Style.Wrap)

	crossCursor := cy
	if !mainIsRow {
		crossCursor = cx
	}

	for _, line := range lines {
		free := resolveFlexLine(line, mainExtent, b.Style.Gap, mainIsRow)
		start, extraGap := mainAxisOffsets(b.Style.MainAlign, len(line), free)

		// cross-size pre-stretch pass, to establish the line's cross extent.
		var lineCross float64
		for _, c := range line {
			c.crossPre = crossPreSize(c.box, mainIsRow, crossExtent)
			if c.crossPre > lineCross {
				lineCross = c.crossPre
			}
		}
		// a single-line (non-wrapping) container's line spans its whole
		// cross extent, so stretch children fill the content box.
		if !b.Style.Wrap {
			lineCross = crossExtent
		}

		mainPos := start
		for i, c := range line {
			if i > 0 {
				mainPos += b.Style.Gap + extraGap
			}
			c.mainOff = mainPos
			mainPos += c.mainFinal

			c.crossFinal = c.crossPre
			_, hasCrossExplicit := crossExplicit(c.box, mainIsRow, crossExtent)
			if !hasCrossExplicit && b.Style.CrossAlign == style.CrossStretch {
				c.crossFinal = clamp(lineCross, crossMinLen(c.box, mainIsRow), crossMaxLen(c.box, mainIsRow), crossExtent)
			}
			switch b.Style.CrossAlign {
			case style.CrossCenter:
				c.crossOff = (lineCross - c.crossFinal) / 2
			case style.CrossEnd:
				c.crossOff = lineCross - c.crossFinal
			default:
				c.crossOff = 0
			}
		}

		for _, c := range line {
			var x, y, w, h float64
			if mainIsRow {
				x, y = cx+c.mainOff, crossCursor+c.crossOff
				w, h = c.mainFinal, c.crossFinal
			} else {
				x, y = cx+c.crossOff, crossCursor+c.mainOff
				w, h = c.crossFinal, c.mainFinal
			}
			c.box.X, c.box.Y, c.box.W, c.box.H = x, y, w, h
			placeBox(c.box, metrics, warn, pending)
		}

		crossCursor += lineCross
	}
}

func crossExplicit(c *Box, mainIsRow bool, crossExtent float64) (float64, bool) {
	size, _, _ := axisLengths(c, !mainIsRow)
	return size.Resolve(crossExtent, true)
}

func crossMinLen(c *Box, mainIsRow bool) style.Length {
	_, minL, _ := axisLengths(c, !mainIsRow)
	return minL
}

func crossMaxLen(c *Box, mainIsRow bool) style.Length {
	_, _, maxL := axisLengths(c, !mainIsRow)
	return maxL
}

func crossPreSize(c *Box, mainIsRow bool, crossExtent float64) float64 {
	if v, ok := crossExplicit(c, mainIsRow, crossExtent); ok {
		return clamp(v, crossMinLen(c, mainIsRow), crossMaxLen(c, mainIsRow), crossExtent)
	}
	var pref float64
	if mainIsRow {
		pref = c.IntrinsicPref.H
	} else {
		pref = c.IntrinsicPref.W
	}
	return clamp(pref, crossMinLen(c, mainIsRow), crossMaxLen(c, mainIsRow), crossExtent)
}

// nearestPositioned walks up from b's parent to the nearest ancestor whose
// position is relative or absolute; the page root is the fallback
// containing block (spec §4.5 step 9).
func nearestPositioned(b *Box) *Box {
	cur := b.Parent
	if cur == nil {
		return b
	}
	for cur.Parent != nil && cur.Style.Position == style.PositionStatic {
		cur = cur.Parent
	}
	return cur
}

func placeAbsoluteBox(b *Box, metrics *fonts.Metrics, warn func(rendererr.Warning), pending *[]*Box) {
	cb := nearestPositioned(b)
	cbX, cbY, cbW, cbH := cb.ContentRect()

	top, hasTop := b.Style.Top.Resolve(cbH, true)
	right, hasRight := b.Style.Right.Resolve(cbW, true)
	bottom, hasBottom := b.Style.Bottom.Resolve(cbH, true)
	left, hasLeft := b.Style.Left.Resolve(cbW, true)

	width, hasW := b.Style.Width.Resolve(cbW, true)
	if !hasW {
		if hasLeft && hasRight {
			width = cbW - left - right
		} else {
			width = clamp(b.IntrinsicPref.W, b.Style.MinWidth, b.Style.MaxWidth, cbW)
		}
	} else {
		width = clamp(width, b.Style.MinWidth, b.Style.MaxWidth, cbW)
	}

	height, hasH := b.Style.Height.Resolve(cbH, true)
	if !hasH {
		if hasTop && hasBottom {
			height = cbH - top - bottom
		} else {
			height = clamp(b.IntrinsicPref.H, b.Style.MinHeight, b.Style.MaxHeight, cbH)
		}
	} else {
		height = clamp(height, b.Style.MinHeight, b.Style.MaxHeight, cbH)
	}

	var x float64
	switch {
	case hasLeft:
		x = cbX + left
	case hasRight:
		x = cbX + cbW - right - width
	default:
		x = cbX
	}

	var y float64
	switch {
	case hasTop:
		y = cbY + top
	case hasBottom:
		y = cbY + cbH - bottom - height
	default:
		y = cbY
	}

	b.X, b.Y, b.W, b.H = x, y, width, height
	placeBox(b, metrics, warn, pending)
}
