package draw

import (
	"testing"

	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/paginate"
	"github.com/wudi/docrender/style"
)

func TestEmitDebugOutlinesWalksChildren(t *testing.T) {
	child := &layout.Box{Kind: node.TypeView, X: 5, Y: 5, W: 10, H: 10}
	parent := &layout.Box{Kind: node.TypeView, X: 0, Y: 0, W: 100, H: 100, Children: []*layout.Box{child}}
	page := &paginate.Page{Width: 595, Height: 842, Background: style.Transparent, Boxes: []*layout.Box{parent}}

	sink := &recordingSink{}
	EmitDebugOutlines([]*paginate.Page{page}, sink)

	if sink.calls[0] != "begin" || sink.calls[len(sink.calls)-1] != "end" {
		t.Fatalf("expected the page bracketed by begin/end, got %v", sink.calls)
	}
	if len(sink.borders) != 2 {
		t.Fatalf("expected one outline per box (parent + child), got %d", len(sink.borders))
	}
}
