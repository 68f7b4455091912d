package draw

import (
	"testing"

	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/paginate"
	"github.com/wudi/docrender/resolve"
	"github.com/wudi/docrender/style"
	"github.com/wudi/docrender/text"
)

// recordingSink is a hand-rolled mock Sink that records every call it
// receives, in order, for assertion — no third-party mocking library.
type recordingSink struct {
	calls []string

	opacities []float64
	rects     []fillRectCall
	borders   []strokeBorderCall
	texts     []drawTextCall
	images    int
	svgs      int
	paths     []drawPathCall
}

type fillRectCall struct {
	x, y, w, h float64
	color      style.Color
	radii      Radii
}

type strokeBorderCall struct {
	x, y, w, h float64
	widths     SideWidths
	colors     SideColors
	radii      Radii
}

type drawTextCall struct {
	x, y float64
	run  string
}

type drawPathCall struct {
	cmds  []PathCommand
	color *style.Color
}

func (s *recordingSink) BeginPage(w, h float64, bg style.Color) { s.calls = append(s.calls, "begin") }
func (s *recordingSink) EndPage()                                { s.calls = append(s.calls, "end") }
func (s *recordingSink) SetOpacity(alpha float64) {
	s.calls = append(s.calls, "opacity")
	s.opacities = append(s.opacities, alpha)
}
func (s *recordingSink) FillRect(x, y, w, h float64, color style.Color, radii Radii) {
	s.calls = append(s.calls, "fill")
	s.rects = append(s.rects, fillRectCall{x, y, w, h, color, radii})
}
func (s *recordingSink) StrokeBorder(x, y, w, h float64, widths SideWidths, colors SideColors, radii Radii) {
	s.calls = append(s.calls, "border")
	s.borders = append(s.borders, strokeBorderCall{x, y, w, h, widths, colors, radii})
}
func (s *recordingSink) DrawText(x, yBaseline float64, run string, fontKey string, size float64, color style.Color) {
	s.calls = append(s.calls, "text")
	s.texts = append(s.texts, drawTextCall{x, yBaseline, run})
}
func (s *recordingSink) DrawImage(x, y, w, h float64, bytes []byte, objectFit string) {
	s.calls = append(s.calls, "image")
	s.images++
}
func (s *recordingSink) DrawSvg(x, y, w, h float64, svg []byte) {
	s.calls = append(s.calls, "svg")
	s.svgs++
}
func (s *recordingSink) DrawPath(cmds []PathCommand, stroke *style.Color, fill *style.Color, transform [6]float64) {
	s.calls = append(s.calls, "path")
	s.paths = append(s.paths, drawPathCall{cmds, stroke})
}

func textBox(x, y, w, h float64, line string) *layout.Box {
	return &layout.Box{
		Kind:  node.TypeText,
		Style: style.Box{Opacity: 1, Background: style.Transparent},
		Text:  style.DefaultTextStyle(),
		X:     x, Y: y, W: w, H: h,
		Lines: []text.Line{{Tokens: []text.Token{{Text: line, Width: 40}}, Advance: 40}},
	}
}

func TestEmitWalksPagesAndBoxes(t *testing.T) {
	page := &paginate.Page{Width: 595, Height: 842, Background: style.Transparent, Boxes: []*layout.Box{
		textBox(10, 10, 100, 20, "hello"),
	}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})

	if sink.calls[0] != "begin" || sink.calls[len(sink.calls)-1] != "end" {
		t.Fatalf("expected page bracketed by begin/end, got %v", sink.calls)
	}
	if len(sink.texts) != 1 || sink.texts[0].run != "hello" {
		t.Fatalf("expected one text run \"hello\", got %+v", sink.texts)
	}
}

func TestEmitTextBaselineUsesAscent(t *testing.T) {
	b := textBox(10, 10, 100, 20, "hello")
	b.Text.FontSize = 24
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})

	if len(sink.texts) != 1 {
		t.Fatalf("expected one text run, got %d", len(sink.texts))
	}
	want := 10 + fonts.Helvetica.Ascent(24)
	if got := sink.texts[0].y; abs(got-want) > 1e-9 {
		t.Fatalf("baseline = %v, want contentTop+ascent = %v", got, want)
	}
}

func TestEmitOpacityPushAndPop(t *testing.T) {
	child := textBox(0, 0, 10, 10, "x")
	parent := &layout.Box{
		Kind:     node.TypeView,
		Style:    style.Box{Opacity: 0.5, Background: style.Transparent},
		Children: []*layout.Box{child},
		W:        100, H: 100,
	}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{parent}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})

	if len(sink.opacities) != 2 {
		t.Fatalf("expected opacity set on entry and restored on exit, got %v", sink.opacities)
	}
	if sink.opacities[0] != 0.5 {
		t.Fatalf("expected child opacity 0.5, got %v", sink.opacities[0])
	}
	if sink.opacities[1] != 1 {
		t.Fatalf("expected opacity restored to inherited 1, got %v", sink.opacities[1])
	}
}

func TestEmitBackgroundAndBorder(t *testing.T) {
	red := style.Color{R: 255, A: 1}
	b := &layout.Box{
		Kind: node.TypeView,
		Style: style.Box{
			Opacity:    1,
			Background: red,
			Border: style.BorderSpec{
				Top:    style.BorderSide{Width: style.Pt(2), Color: red},
				Right:  style.BorderSide{Width: style.Pt(2), Color: red},
				Bottom: style.BorderSide{Width: style.Pt(2), Color: red},
				Left:   style.BorderSide{Width: style.Pt(2), Color: red},
			},
		},
		X: 0, Y: 0, W: 50, H: 50,
	}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})

	if len(sink.rects) != 1 {
		t.Fatalf("expected one fill for the background, got %d", len(sink.rects))
	}
	if len(sink.borders) != 1 {
		t.Fatalf("expected one stroke for the border, got %d", len(sink.borders))
	}
}

func TestEmitRoundedCornersDrawPath(t *testing.T) {
	red := style.Color{R: 255, A: 1}
	b := &layout.Box{
		Kind: node.TypeView,
		Style: style.Box{
			Opacity: 1,
			Border: style.BorderSpec{
				Top:      style.BorderSide{Width: style.Pt(1), Color: red},
				Right:    style.BorderSide{Width: style.Pt(1), Color: red},
				Bottom:   style.BorderSide{Width: style.Pt(1), Color: red},
				Left:     style.BorderSide{Width: style.Pt(1), Color: red},
				RadiusTL: style.Pt(5), RadiusTR: style.Pt(5), RadiusBR: style.Pt(5), RadiusBL: style.Pt(5),
			},
		},
		X: 0, Y: 0, W: 50, H: 50,
	}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})

	if len(sink.paths) != 4 {
		t.Fatalf("expected one quarter-arc DrawPath per corner, got %d", len(sink.paths))
	}
}

func TestEmitImageSkipsUnresolvedSrc(t *testing.T) {
	b := &layout.Box{Kind: node.TypeImage, Style: style.Box{Opacity: 1}, Src: "missing.png", W: 10, H: 10}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})
	if sink.images != 0 {
		t.Fatalf("expected no DrawImage for an unresolved src, got %d", sink.images)
	}
}

func TestEmitImageDrawsResolvedSrc(t *testing.T) {
	b := &layout.Box{Kind: node.TypeImage, Style: style.Box{Opacity: 1}, Src: "ok.png", W: 10, H: 10}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	resources := map[string]layout.ResourceResult{
		"ok.png": {Resource: resolve.Resource{Bytes: []byte{1, 2, 3}, Kind: resolve.KindImage}},
	}
	Emit([]*paginate.Page{page}, sink, resources)
	if sink.images != 1 {
		t.Fatalf("expected one DrawImage call, got %d", sink.images)
	}
}

func TestEmitSvgPrefersInlineContent(t *testing.T) {
	b := &layout.Box{Kind: node.TypeSvg, Style: style.Box{Opacity: 1}, SvgContent: "<svg/>", W: 10, H: 10}
	page := &paginate.Page{Width: 595, Height: 842, Boxes: []*layout.Box{b}}
	sink := &recordingSink{}
	Emit([]*paginate.Page{page}, sink, map[string]layout.ResourceResult{})
	if sink.svgs != 1 {
		t.Fatalf("expected one DrawSvg call for inline content, got %d", sink.svgs)
	}
}

func TestSnapRoundsToSixtyFourths(t *testing.T) {
	got := snap(10.0 + 1.0/64)
	if abs(got-(10.0+1.0/64)) > 1e-9 {
		t.Fatalf("snap of an exact 1/64 multiple should be a no-op, got %v", got)
	}
	if got := snap(1.0 / 3); abs(got-1.0/3) > 1.0/64 {
		t.Fatalf("snap drifted by more than one 1/64 step: got %v", got)
	}
}

func TestHelveticaFontKey(t *testing.T) {
	cases := []struct {
		w    style.FontWeight
		s    style.FontStyle
		want string
	}{
		{style.WeightNormal, style.StyleNormal, "Helvetica"},
		{style.WeightBold, style.StyleNormal, "Helvetica-Bold"},
		{style.WeightNormal, style.StyleItalic, "Helvetica-Oblique"},
		{style.WeightBold, style.StyleItalic, "Helvetica-BoldOblique"},
	}
	for _, c := range cases {
		if got := helveticaFontKey(c.w, c.s); got != c.want {
			t.Fatalf("helveticaFontKey(%v,%v) = %q, want %q", c.w, c.s, got, c.want)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
