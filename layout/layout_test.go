package layout

import (
	"context"
	"testing"

	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
)

func pt(v float64) *style.Length { l := style.Pt(v); return &l }

func noopWarn(rendererr.Warning) {}

func runPipeline(t *testing.T, root *node.Node) *Box {
	t.Helper()
	b, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mc := &MeasureContext{Metrics: fonts.Helvetica, Resources: map[string]ResourceResult{}, Warn: noopWarn}
	if err := Measure(context.Background(), mc, b); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	Place(b, fonts.Helvetica, noopWarn)
	return b
}

// S1 — single text line: page 595x842, padding 40, "Hello" size 24 bold.
func TestSingleTextLine(t *testing.T) {
	weight := style.WeightBold
	root := &node.Node{
		Type: node.TypePage,
		Box:  &style.BoxSpec{Width: pt(595), Height: pt(842), Padding: &style.EdgeSpec{All: pt(40)}},
		Children: []*node.Node{
			{Type: node.TypeText, Content: "Hello", Text: &style.TextStyleSpec{FontSize: floatp(24), Weight: &weight}},
		},
	}
	b := runPipeline(t, root)
	text := b.Children[0]
	if text.X != 40 || text.Y != 40 {
		t.Fatalf("expected text at (40,40), got (%v,%v)", text.X, text.Y)
	}
	wantW := fonts.Helvetica.StringAdvance("Hello", 24, style.WeightBold, style.StyleNormal)
	if len(text.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(text.Lines))
	}
	if got := text.Lines[0].Advance; abs(got-wantW) > 0.5 {
		t.Fatalf("advance = %v, want ~%v", got, wantW)
	}
}

// S2 — row with flex: width=500, two children flex=1 and flex=2, gap=10.
func TestRowFlexGrow(t *testing.T) {
	dir := style.DirectionRow
	root := &node.Node{
		Type: node.TypePage,
		Box:  &style.BoxSpec{Width: pt(595), Height: pt(842)},
		Children: []*node.Node{
			{
				Type: node.TypeView,
				Box:  &style.BoxSpec{Width: pt(500), Height: pt(50), Direction: &dir, Gap: floatp(10)},
				Children: []*node.Node{
					{Type: node.TypeView, Box: &style.BoxSpec{Flex: floatp(1)}},
					{Type: node.TypeView, Box: &style.BoxSpec{Flex: floatp(2)}},
				},
			},
		},
	}
	b := runPipeline(t, root)
	row := b.Children[0]
	c0, c1 := row.Children[0], row.Children[1]
	if abs(c0.W-163.33) > 0.5 {
		t.Fatalf("child0 width = %v, want ~163.33", c0.W)
	}
	if abs(c1.W-326.67) > 0.5 {
		t.Fatalf("child1 width = %v, want ~326.67", c1.W)
	}
	if abs(c1.X-(c0.X+c0.W+10)) > 0.5 {
		t.Fatalf("gap not honored: c0.X=%v c0.W=%v c1.X=%v", c0.X, c0.W, c1.X)
	}
}

// S5 — table column resolution: columnWidths ["30%","70%"], contentWidth 400.
func TestTableColumnResolution(t *testing.T) {
	root := &node.Node{
		Type: node.TypePage,
		Box:  &style.BoxSpec{Width: pt(400), Height: pt(842)},
		Children: []*node.Node{
			{
				Type:         node.TypeTable,
				ColumnWidths: []node.ColumnWidth{{Width: style.Percent(30)}, {Width: style.Percent(70)}},
				Children: []*node.Node{
					{Type: node.TypeRow, Children: []*node.Node{
						{Type: node.TypeCell, Children: []*node.Node{{Type: node.TypeText, Content: "a"}}},
						{Type: node.TypeCell, Children: []*node.Node{{Type: node.TypeText, Content: "b"}}},
					}},
				},
			},
		},
	}
	b := runPipeline(t, root)
	table := b.Children[0]
	if len(table.ColWidths) != 2 {
		t.Fatalf("expected 2 resolved column widths, got %d", len(table.ColWidths))
	}
	if abs(table.ColWidths[0]-120) > 0.5 {
		t.Fatalf("col0 = %v, want 120", table.ColWidths[0])
	}
	if abs(table.ColWidths[1]-280) > 0.5 {
		t.Fatalf("col1 = %v, want 280", table.ColWidths[1])
	}
}

// Absolute positioning resolves against the nearest relative/absolute
// ancestor, or the page if none (spec §4.5 step 9).
func TestAbsolutePositioning(t *testing.T) {
	rel := style.PositionRelative
	abs_ := style.PositionAbsolute
	root := &node.Node{
		Type: node.TypePage,
		Box:  &style.BoxSpec{Width: pt(595), Height: pt(842)},
		Children: []*node.Node{
			{
				Type: node.TypeView,
				Box:  &style.BoxSpec{Width: pt(200), Height: pt(200), Position: &rel},
				Children: []*node.Node{
					{Type: node.TypeView, Box: &style.BoxSpec{Position: &abs_, Top: pt(10), Left: pt(10), Width: pt(30), Height: pt(30)}},
				},
			},
		},
	}
	b := runPipeline(t, root)
	container := b.Children[0]
	absBox := container.Children[0]
	if absBox.X != container.X+10 || absBox.Y != container.Y+10 {
		t.Fatalf("absolute child placed at (%v,%v), want (%v,%v)", absBox.X, absBox.Y, container.X+10, container.Y+10)
	}
}

func TestDegenerateContainerWarnsAndSkipsChildren(t *testing.T) {
	root := &node.Node{
		Type: node.TypePage,
		Box:  &style.BoxSpec{Width: pt(595), Height: pt(842)},
		Children: []*node.Node{
			{
				Type: node.TypeView,
				Box:  &style.BoxSpec{Width: pt(10), Height: pt(10), Padding: &style.EdgeSpec{All: pt(20)}},
				Children: []*node.Node{
					{Type: node.TypeView, Box: &style.BoxSpec{Width: pt(5), Height: pt(5)}},
				},
			},
		},
	}
	b, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mc := &MeasureContext{Metrics: fonts.Helvetica, Resources: map[string]ResourceResult{}, Warn: noopWarn}
	if err := Measure(context.Background(), mc, b); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	var warnings []rendererr.Warning
	Place(b, fonts.Helvetica, func(w rendererr.Warning) { warnings = append(warnings, w) })

	if len(warnings) != 1 || warnings[0].Kind != rendererr.KindDegenerateLayout {
		t.Fatalf("expected one KindDegenerateLayout warning, got %+v", warnings)
	}
	container := b.Children[0]
	child := container.Children[0]
	if child.W != 0 || child.H != 0 {
		t.Fatalf("expected degenerate container to skip placing children, got w=%v h=%v", child.W, child.H)
	}
}

func floatp(v float64) *float64 { return &v }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
