package layout

import (
	"fmt"

	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
)

// DefaultPageWidth and DefaultPageHeight are A4 in points (spec §4.3).
const (
	DefaultPageWidth  = 595.0
	DefaultPageHeight = 842.0
)

// Build recursively converts a node.Node tree into a Box tree, resolving
// styles top-down. Page nodes establish a root Box sized from the page
// style's width/height, defaulting to A4 (spec §4.3).
func Build(n *node.Node) (*Box, error) {
	if n.Type != node.TypePage {
		return nil, rendererr.New(rendererr.KindMalformedInput, "root", "root node must have type \"page\", got %q", n.Type)
	}
	return build(n, style.DefaultTextStyle(), "root")
}

func build(n *node.Node, parentText style.TextStyle, path string) (*Box, error) {
	boxStyle := style.ResolveBox(n.Box)
	textStyle := style.ResolveTextStyle(parentText, n.Text)

	b := &Box{
		Kind:         n.Type,
		Style:        boxStyle,
		Text:         textStyle,
		NodeText:     n.Content,
		NoWrap:       n.NoWrap,
		Src:          n.Src,
		ObjectFit:    n.ObjectFit,
		SvgContent:   n.SvgContent,
		ColumnWidths: n.ColumnWidths,
		RowSpan:      n.RowSpanOrDefault(),
		ColSpan:      n.ColSpanOrDefault(),
	}

	if n.Type == node.TypePage {
		if !b.Style.Width.IsSet() {
			b.Style.Width = style.Pt(DefaultPageWidth)
		}
		if !b.Style.Height.IsSet() {
			b.Style.Height = style.Pt(DefaultPageHeight)
		}
	}

	for i, c := range n.Children {
		child, err := build(c, textStyle, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		child.Parent = b
		b.Children = append(b.Children, child)
	}
	return b, nil
}
