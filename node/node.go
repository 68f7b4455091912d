// Package node defines the declarative, JSON-described document tree: the
// input data model consumed by the layout tree builder. Node values are
// immutable once decoded — style resolution and layout annotate a separate
// LayoutBox tree, never the Node tree itself (spec §3 Lifecycle).
package node

import "github.com/wudi/docrender/style"

// Type discriminates the node variant (spec §3 Node, a tagged union, not an
// inheritance hierarchy — spec §9).
type Type string

const (
	TypePage  Type = "page"
	TypeView  Type = "view"
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeSvg   Type = "svg"
	TypeTable Type = "table"
	TypeRow   Type = "row"
	TypeCell  Type = "cell"
)

// ObjectFit is the image scaling mode.
type ObjectFit string

const (
	FitCover     ObjectFit = "cover"
	FitContain   ObjectFit = "contain"
	FitFill      ObjectFit = "fill"
	FitNone      ObjectFit = "none"
	FitScaleDown ObjectFit = "scale-down"
)

// ColumnWidth is a table column's declared width: a Length, or "auto".
type ColumnWidth struct {
	Auto  bool
	Width style.Length
}

// Node is one immutable element of the document tree.
type Node struct {
	Type     Type
	Box      *style.BoxSpec
	Text     *style.TextStyleSpec
	Children []*Node

	// text
	Content string
	NoWrap  bool // supplemented feature, spec_full §C.1

	// image
	Src       string
	ObjectFit ObjectFit

	// svg
	SvgContent string

	// table
	ColumnWidths []ColumnWidth

	// cell
	RowSpan, ColSpan int
}

// effectiveSpan returns RowSpan/ColSpan defaulted to 1 (spec §3 Node: cell
// "optional rowSpan, colSpan ... default 1").
func (n *Node) effectiveSpan() (rowSpan, colSpan int) {
	rowSpan, colSpan = n.RowSpan, n.ColSpan
	if rowSpan < 1 {
		rowSpan = 1
	}
	if colSpan < 1 {
		colSpan = 1
	}
	return
}

// RowSpanOrDefault returns the resolved row span (≥1).
func (n *Node) RowSpanOrDefault() int { r, _ := n.effectiveSpan(); return r }

// ColSpanOrDefault returns the resolved column span (≥1).
func (n *Node) ColSpanOrDefault() int { _, c := n.effectiveSpan(); return c }
