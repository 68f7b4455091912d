// Package paginate implements spec §4.8: splitting a placed page's
// infinitely tall content column into fixed-height pages at safe break
// points — between siblings, text lines, and table rows, never inside a
// single text line, image, or SVG.
package paginate

import (
	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
)

// Page is one output page: its own size/background plus the forest of
// placed LayoutBox subtrees that land on it, already translated to
// page-local coordinates (top of page = 0).
type Page struct {
	Width      float64
	Height     float64
	Background style.Color
	Boxes      []*layout.Box
}

type paginator struct {
	pageW, pageH float64
	bg           style.Color
	warn         func(rendererr.Warning)

	pages   []*Page
	cur     *Page
	pageTop float64

	curEmpty   bool // true once a fresh page has received no boxes yet
	forceBreak bool // set by a break-after box for the next sibling
}

// Paginate splits root's in-flow top-level children across one or more
// Pages of height root.H. root must already have been through Place.
func Paginate(root *layout.Box, warn func(rendererr.Warning)) []*Page {
	p := &paginator{pageW: root.W, pageH: root.H, bg: root.Style.Background, warn: warn}
	p.newPage()

	var absolute, inFlow []*layout.Box
	for _, c := range root.Children {
		if c.Style.Position == style.PositionAbsolute {
			absolute = append(absolute, c)
		} else {
			inFlow = append(inFlow, c)
		}
	}
	p.flow(inFlow)
	p.attachToFirstSlice(p.pages[0], 0, absolute)
	return p.pages
}

func (p *paginator) newPage() {
	p.cur = &Page{Width: p.pageW, Height: p.pageH, Background: p.bg}
	p.pages = append(p.pages, p.cur)
	p.curEmpty = true
}

// breakPage forces a fresh page before b, independent of whether b would
// otherwise fit — the supplemented break-before/break-after hint (spec_full
// §C.2). It reuses the same shift-and-advance bookkeeping as an ordinary
// overflow break.
func (p *paginator) breakPage(b *layout.Box) {
	bottom := p.pageTop + p.pageH
	shiftSubtree(b, bottom-b.Y)
	p.pageTop = bottom
	p.newPage()
}

// attachToFirstSlice implements spec §4.8: "if the ancestor is split,
// absolute descendants attach to the first slice."
func (p *paginator) attachToFirstSlice(page *Page, sliceTop float64, absolute []*layout.Box) {
	for _, a := range absolute {
		shiftSubtree(a, -sliceTop)
		page.Boxes = append(page.Boxes, a)
	}
}

func shiftSubtree(b *layout.Box, dy float64) {
	b.Y += dy
	for _, c := range b.Children {
		shiftSubtree(c, dy)
	}
}

func (p *paginator) flow(children []*layout.Box) {
	for _, c := range children {
		if (c.Style.BreakBefore || p.forceBreak) && !p.curEmpty {
			p.breakPage(c)
		}
		p.forceBreak = false
		p.flowOne(c)
		if c.Style.BreakAfter {
			p.forceBreak = true
		}
	}
}

func (p *paginator) flowOne(b *layout.Box) {
	bottom := p.pageTop + p.pageH
	fits := b.Y+b.H <= bottom+0.5
	// minPresenceAhead (spec_full §C.3): a box that technically fits but
	// leaves less than its declared margin of room below it is pushed to
	// the next page instead, so it doesn't strand its following sibling.
	orphaned := fits && !p.curEmpty && b.Style.MinPresenceAhead > 0 &&
		bottom-(b.Y+b.H) < b.Style.MinPresenceAhead
	if fits && !orphaned {
		p.emit(b)
		return
	}
	if b.H <= p.pageH+0.5 {
		dy := bottom - b.Y
		shiftSubtree(b, dy)
		p.pageTop = bottom
		p.newPage()
		p.emit(b)
		return
	}
	p.split(b)
}

// emit translates b's subtree (already in the compacted, page-top-relative
// coordinate space) to page-local coordinates and attaches it to the
// current page.
func (p *paginator) emit(b *layout.Box) {
	shiftSubtree(b, -p.pageTop)
	p.cur.Boxes = append(p.cur.Boxes, b)
	p.curEmpty = false
}

// split breaks an oversized box (taller than one page) at a safe point:
// text lines, table rows, or a column container's own children. Anything
// else (an oversized image/svg, or a row-direction container) has no safe
// interior break point and is clipped with a warning.
func (p *paginator) split(b *layout.Box) {
	switch {
	case b.Kind == node.TypeText:
		p.splitText(b)
	case len(b.Children) > 0 && (b.Kind == node.TypeTable || b.Style.Direction == style.DirectionColumn):
		p.splitContainer(b)
	default:
		p.clip(b)
	}
}

func (p *paginator) splitContainer(b *layout.Box) {
	firstPage := p.cur
	firstPageTop := p.pageTop

	var absolute, inFlow []*layout.Box
	for _, c := range b.Children {
		if c.Style.Position == style.PositionAbsolute {
			absolute = append(absolute, c)
		} else {
			inFlow = append(inFlow, c)
		}
	}
	p.flow(inFlow)
	p.attachToFirstSlice(firstPage, firstPageTop, absolute)
}

func (p *paginator) splitText(b *layout.Box) {
	lineH := b.Text.FontSize * b.Text.LineHeight
	remaining := b.Lines
	y := b.Y

	for len(remaining) > 0 {
		bottom := p.pageTop + p.pageH
		avail := bottom - y
		n := int(avail / lineH)
		if n <= 0 {
			dy := bottom - y
			y += dy
			p.pageTop = bottom
			p.newPage()
			continue
		}
		if n > len(remaining) {
			n = len(remaining)
		}
		slice := remaining[:n]
		clone := *b
		clone.Lines = slice
		clone.Y = y
		clone.H = float64(len(slice))*lineH + b.PaddingPt.Vertical() + b.BorderPt.Vertical()
		p.emit(&clone)

		remaining = remaining[n:]
		y += float64(n) * lineH
		if len(remaining) > 0 {
			p.pageTop = p.pageTop + p.pageH
			p.newPage()
		}
	}
}

// clip truncates a box to the remaining space on the current page and
// reports a pagination overflow warning (spec §4.8 failure modes).
func (p *paginator) clip(b *layout.Box) {
	avail := (p.pageTop + p.pageH) - b.Y
	if avail < 0 {
		avail = 0
	}
	clone := *b
	clone.H = avail
	clone.Clipped = true
	p.emit(&clone)
	p.warn(rendererr.Warn(rendererr.KindPaginationOverflow, "", "box taller than the page was clipped"))
}
