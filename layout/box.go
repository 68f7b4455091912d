// Package layout builds the LayoutBox tree from a node.Node tree and runs
// the measure and place passes of spec §4.3-§4.5: a two-phase flexbox-like
// layout computing intrinsic sizes bottom-up, then final boxes top-down
// under wrapping, min/max constraints, flex-grow, alignment, and absolute
// positioning.
package layout

import (
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/style"
	"github.com/wudi/docrender/text"
)

// Size is a (width, height) pair.
type Size struct {
	W, H float64
}

// Box is one node of the mutable layout tree: a node's resolved styles
// plus the annotations each pass writes (spec §3 LayoutBox). Parent owns
// children exclusively — Parent is traversal context only, never an
// owning reference (spec §9).
type Box struct {
	Kind   node.Type
	Style  style.Box
	Text   style.TextStyle
	Parent *Box

	Children []*Box

	// text
	NodeText string
	NoWrap   bool
	Lines    []text.Line

	// image / svg
	Src          string
	ObjectFit    node.ObjectFit
	SvgContent   string
	NaturalW     float64
	NaturalH     float64
	HasNatural   bool
	ResourceFail bool

	// table
	ColumnWidths []node.ColumnWidth
	ColWidths    []float64
	RowHeights   []float64

	// cell
	RowSpan, ColSpan int

	// measure annotations
	IntrinsicMin  Size
	IntrinsicPref Size

	// place annotations
	X, Y, W, H float64

	// Padding/Border resolved to points against this box's own outer size,
	// filled in by place before recursing into children (spec §9:
	// percentages resolve eagerly when the containing block is definite).
	PaddingPt edgeWidths
	BorderPt  edgeWidths

	// absolute positioning: set aside during place, resolved in a later pass
	Absolute bool

	// degenerate/diagnostic
	Clipped bool
}

// edgeWidths is a resolved (points) EdgeInsets or border-width set.
type edgeWidths struct{ Top, Right, Bottom, Left float64 }

func (e edgeWidths) Horizontal() float64 { return e.Left + e.Right }
func (e edgeWidths) Vertical() float64   { return e.Top + e.Bottom }

// resolveEdges resolves an EdgeInsets against this box's own outer
// rectangle (always definite once W/H are assigned).
func resolveEdges(e style.EdgeInsets, w, h float64) edgeWidths {
	top, _ := e.Top.Resolve(h, true)
	right, _ := e.Right.Resolve(w, true)
	bottom, _ := e.Bottom.Resolve(h, true)
	left, _ := e.Left.Resolve(w, true)
	return edgeWidths{Top: top, Right: right, Bottom: bottom, Left: left}
}

func resolveBorder(b style.BorderSpec, w, h float64) edgeWidths {
	top, _ := b.Top.Width.Resolve(h, true)
	right, _ := b.Right.Width.Resolve(w, true)
	bottom, _ := b.Bottom.Width.Resolve(h, true)
	left, _ := b.Left.Width.Resolve(w, true)
	return edgeWidths{Top: top, Right: right, Bottom: bottom, Left: left}
}

// ContentRect returns the box's content-box rectangle (outer minus padding
// and border), valid once place has run.
func (b *Box) ContentRect() (x, y, w, h float64) {
	left := b.PaddingPt.Left + b.BorderPt.Left
	top := b.PaddingPt.Top + b.BorderPt.Top
	right := b.PaddingPt.Right + b.BorderPt.Right
	bottom := b.PaddingPt.Bottom + b.BorderPt.Bottom
	return b.X + left, b.Y + top, b.W - left - right, b.H - top - bottom
}
