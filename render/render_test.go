package render

import (
	"context"
	"testing"

	"github.com/wudi/docrender/draw"
	"github.com/wudi/docrender/style"
)

// nullSink records nothing but satisfies draw.Sink, so tests exercise the
// full pipeline without depending on any particular PDF encoder.
type nullSink struct {
	pages        int
	texts        int
	pageW, pageH float64
	firstTextX   float64
}

func (s *nullSink) BeginPage(w, h float64, bg style.Color) {
	s.pages++
	s.pageW, s.pageH = w, h
}
func (s *nullSink) EndPage()                                                         {}
func (s *nullSink) SetOpacity(alpha float64)                                         {}
func (s *nullSink) FillRect(x, y, w, h float64, color style.Color, radii draw.Radii) {}
func (s *nullSink) StrokeBorder(x, y, w, h float64, widths draw.SideWidths, colors draw.SideColors, radii draw.Radii) {
}
func (s *nullSink) DrawText(x, yBaseline float64, run string, fontKey string, size float64, color style.Color) {
	if s.texts == 0 {
		s.firstTextX = x
	}
	s.texts++
}
func (s *nullSink) DrawImage(x, y, w, h float64, bytes []byte, objectFit string) {}
func (s *nullSink) DrawSvg(x, y, w, h float64, svg []byte)                       {}
func (s *nullSink) DrawPath(cmds []draw.PathCommand, stroke *style.Color, fill *style.Color, transform [6]float64) {
}

const simpleDoc = `{
  "root": {
    "type": "page",
    "style": {"width": 300, "height": 200, "padding": 10},
    "children": [
      {"type": "text", "text": "hello world", "style": {"fontSize": 12}}
    ]
  }
}`

func TestRenderEndToEnd(t *testing.T) {
	r := NewRenderer()
	sink := &nullSink{}
	result, err := r.Render(context.Background(), []byte(simpleDoc), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.RequestID == "" {
		t.Fatal("expected a non-empty request id")
	}
	if result.PageCount != 1 {
		t.Fatalf("expected 1 page, got %d", result.PageCount)
	}
	if sink.pages != 1 {
		t.Fatalf("expected sink.BeginPage called once, got %d", sink.pages)
	}
	if sink.texts == 0 {
		t.Fatal("expected at least one DrawText call")
	}
	if result.Warnings != nil {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestRenderMalformedInputFails(t *testing.T) {
	r := NewRenderer()
	sink := &nullSink{}
	_, err := r.Render(context.Background(), []byte("not json"), sink)
	if err == nil {
		t.Fatal("expected an error decoding malformed JSON")
	}
}

func TestRenderAppliesPageDefaultsAndMargins(t *testing.T) {
	doc := `{"root": {"type": "page", "children": [{"type": "text", "text": "x"}]}}`
	r := NewRenderer(WithPageSize(400, 500), WithMargins(Margins{Top: 20, Left: 20, Right: 20, Bottom: 20}))
	sink := &nullSink{}
	result, err := r.Render(context.Background(), []byte(doc), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.PageCount != 1 {
		t.Fatalf("expected 1 page, got %d", result.PageCount)
	}
	if sink.pageW != 400 || sink.pageH != 500 {
		t.Fatalf("expected the WithPageSize default 400x500, got %vx%v", sink.pageW, sink.pageH)
	}
	if sink.texts == 0 || sink.firstTextX != 20 {
		t.Fatalf("expected the text inset by the 20pt left margin, got x=%v (%d runs)", sink.firstTextX, sink.texts)
	}
}

func TestRenderAccumulatesResourceWarnings(t *testing.T) {
	doc := `{
  "root": {
    "type": "page",
    "style": {"width": 300, "height": 200},
    "children": [
      {"type": "image", "src": "/nonexistent/path/does-not-exist.png", "style": {"width": 50, "height": 50}}
    ]
  }
}`
	r := NewRenderer()
	sink := &nullSink{}
	result, err := r.Render(context.Background(), []byte(doc), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.Warnings == nil {
		t.Fatal("expected a resource-resolution warning for a nonexistent image src")
	}
}

func TestRenderDebugBoxesDrawsExtraOutlinePass(t *testing.T) {
	r := NewRenderer(WithDebugBoxes(true))
	sink := &nullSink{}
	if _, err := r.Render(context.Background(), []byte(simpleDoc), sink); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// BeginPage is called once for the normal emit pass and once more for
	// the debug-outline pass.
	if sink.pages != 2 {
		t.Fatalf("expected 2 BeginPage calls with debug boxes enabled, got %d", sink.pages)
	}
}

func TestRenderContextCancellation(t *testing.T) {
	r := NewRenderer()
	sink := &nullSink{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, []byte(simpleDoc), sink)
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}
