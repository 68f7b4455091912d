package paginate

import (
	"testing"

	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
)

func noopWarn(rendererr.Warning) {}

func column(w, h float64, children []*layout.Box) *layout.Box {
	return &layout.Box{
		Kind:     node.TypePage,
		Style:    style.Box{Direction: style.DirectionColumn},
		W:        w,
		H:        h,
		Children: children,
	}
}

func block(y, h float64) *layout.Box {
	return &layout.Box{Kind: node.TypeView, Style: style.Box{}, Y: y, H: h, W: 100}
}

// S6 — a column of 20 boxes, each 50 tall, flowed into a page whose content
// height is 400: expect pages of 8, 8, 4 boxes (boxes never split; gap 0).
func TestPaginateEvenSplit(t *testing.T) {
	var children []*layout.Box
	for i := 0; i < 20; i++ {
		children = append(children, block(float64(i)*50, 50))
	}
	root := column(595, 400, children)

	pages := Paginate(root, noopWarn)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	counts := []int{len(pages[0].Boxes), len(pages[1].Boxes), len(pages[2].Boxes)}
	if counts[0] != 8 || counts[1] != 8 || counts[2] != 4 {
		t.Fatalf("unexpected page box counts: %v", counts)
	}
	// the first box on page 2 is translated back to page-local coordinates.
	if pages[1].Boxes[0].Y != 0 {
		t.Fatalf("expected page 2's first box at Y=0, got %v", pages[1].Boxes[0].Y)
	}
}

// BreakBefore forces a fresh page even when the box would otherwise fit on
// the current one (spec_full §C.2).
func TestPaginateBreakBefore(t *testing.T) {
	c0 := block(0, 100)
	c1 := block(100, 100)
	c1.Style.BreakBefore = true
	c2 := block(200, 100)
	root := column(595, 1000, []*layout.Box{c0, c1, c2})

	pages := Paginate(root, noopWarn)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 1 {
		t.Fatalf("expected page 1 to hold only the box before the break, got %d", len(pages[0].Boxes))
	}
	if len(pages[1].Boxes) != 2 {
		t.Fatalf("expected page 2 to hold the break-before box and its sibling, got %d", len(pages[1].Boxes))
	}
}

// BreakAfter forces the next sibling onto a new page.
func TestPaginateBreakAfter(t *testing.T) {
	c0 := block(0, 100)
	c0.Style.BreakAfter = true
	c1 := block(100, 100)
	c2 := block(200, 100)
	root := column(595, 1000, []*layout.Box{c0, c1, c2})

	pages := Paginate(root, noopWarn)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 1 || len(pages[1].Boxes) != 2 {
		t.Fatalf("unexpected split: page1=%d page2=%d", len(pages[0].Boxes), len(pages[1].Boxes))
	}
}

// A box that technically fits but leaves less than its declared
// minPresenceAhead of trailing room is pushed to the next page instead of
// stranding it at the bottom of the current one (spec_full §C.3).
func TestPaginateMinPresenceAhead(t *testing.T) {
	c0 := block(0, 150)
	c1 := block(150, 30)
	c1.Style.MinPresenceAhead = 100
	root := column(595, 200, []*layout.Box{c0, c1})

	pages := Paginate(root, noopWarn)
	if len(pages) != 2 {
		t.Fatalf("expected the orphaned box pushed to a second page, got %d pages", len(pages))
	}
	if len(pages[0].Boxes) != 1 || len(pages[1].Boxes) != 1 {
		t.Fatalf("unexpected distribution: page1=%d page2=%d", len(pages[0].Boxes), len(pages[1].Boxes))
	}
}

// Without a minPresenceAhead constraint, the same layout fits on one page.
func TestPaginateMinPresenceAheadNotTriggeredWhenUnset(t *testing.T) {
	c0 := block(0, 150)
	c1 := block(150, 30)
	root := column(595, 200, []*layout.Box{c0, c1})

	pages := Paginate(root, noopWarn)
	if len(pages) != 1 {
		t.Fatalf("expected a single page, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 2 {
		t.Fatalf("expected both boxes on the single page, got %d", len(pages[0].Boxes))
	}
}

// An oversized box taller than a page, with no safe interior break point
// (e.g. a row-direction container), is clipped with a warning rather than
// looping forever.
func TestPaginateClipsOversizedUnsplittableBox(t *testing.T) {
	big := &layout.Box{
		Kind:  node.TypeView,
		Style: style.Box{Direction: style.DirectionRow},
		Y:     0,
		H:     500,
		W:     100,
	}
	root := column(595, 200, []*layout.Box{big})

	var warned bool
	pages := Paginate(root, func(w rendererr.Warning) {
		warned = true
		if w.Kind != rendererr.KindPaginationOverflow {
			t.Fatalf("expected a pagination overflow warning, got %v", w.Kind)
		}
	})
	if !warned {
		t.Fatal("expected a pagination overflow warning to be reported")
	}
	if len(pages) != 1 {
		t.Fatalf("expected a single (clipped) page, got %d", len(pages))
	}
	if !pages[0].Boxes[0].Clipped {
		t.Fatal("expected the oversized box to be marked clipped")
	}
	if pages[0].Boxes[0].H != 200 {
		t.Fatalf("expected the clipped box to be truncated to the page height, got %v", pages[0].Boxes[0].H)
	}
}
