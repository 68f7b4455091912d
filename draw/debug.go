package draw

import (
	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/paginate"
	"github.com/wudi/docrender/style"
)

// debugOutlineColor is a fixed magenta hairline, independent of any node's
// own border — matching the teacher's debug-overlay convention of drawing
// layout outlines in a color that never collides with real content.
var debugOutlineColor = style.Color{R: 255, G: 0, B: 255, A: 1}

// EmitDebugOutlines strokes a one-point outline around every placed box on
// every page. It is a separate pass run after Emit: each page is bracketed
// by its own BeginPage/EndPage calls, with a transparent background. Enabled via
// render.WithDebugBoxes; intended for visually inspecting the layout and
// pagination passes, never part of a normal render.
func EmitDebugOutlines(pages []*paginate.Page, sink Sink) {
	for _, page := range pages {
		sink.BeginPage(page.Width, page.Height, style.Transparent)
		for _, b := range page.Boxes {
			outlineBox(b, sink)
		}
		sink.EndPage()
	}
}

func outlineBox(b *layout.Box, sink Sink) {
	widths := SideWidths{Top: 1, Right: 1, Bottom: 1, Left: 1}
	colors := SideColors{Top: debugOutlineColor, Right: debugOutlineColor, Bottom: debugOutlineColor, Left: debugOutlineColor}
	sink.StrokeBorder(b.X, b.Y, b.W, b.H, widths, colors, Radii{})
	for _, c := range b.Children {
		outlineBox(c, sink)
	}
}
