package draw

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/wudi/docrender/coords"
	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/paginate"
	"github.com/wudi/docrender/style"
	"github.com/wudi/docrender/text"
)

// Emit walks every page's placed boxes in pre-order and emits draw
// primitives to sink (spec §4.9). resources supplies resolved image/svg
// bytes keyed by src, pre-warmed by the caller (spec §5).
func Emit(pages []*paginate.Page, sink Sink, resources map[string]layout.ResourceResult) {
	for _, page := range pages {
		sink.BeginPage(page.Width, page.Height, page.Background)
		for _, b := range page.Boxes {
			emitBox(b, sink, resources, 1)
		}
		sink.EndPage()
	}
}

func emitBox(b *layout.Box, sink Sink, resources map[string]layout.ResourceResult, inheritedOpacity float64) {
	opacity := inheritedOpacity * b.Style.Opacity
	if b.Style.Opacity != 1 {
		sink.SetOpacity(opacity)
	}

	radii := Radii{
		TL: ptOf(b.Style.Border.RadiusTL),
		TR: ptOf(b.Style.Border.RadiusTR),
		BR: ptOf(b.Style.Border.RadiusBR),
		BL: ptOf(b.Style.Border.RadiusBL),
	}

	if b.Style.Background.A > 0 {
		sink.FillRect(b.X, b.Y, b.W, b.H, b.Style.Background, radii)
	}
	if hasBorder(b.Style.Border) {
		emitBorder(b, sink, radii)
	}

	switch b.Kind {
	case node.TypeText:
		emitText(b, sink)
	case node.TypeImage:
		emitImage(b, sink, resources)
	case node.TypeSvg:
		emitSvg(b, sink, resources)
	}

	for _, c := range b.Children {
		emitBox(c, sink, resources, opacity)
	}

	if b.Style.Opacity != 1 {
		sink.SetOpacity(inheritedOpacity)
	}
}

func ptOf(l style.Length) float64 {
	v, _ := l.Resolve(0, false)
	return v
}

func hasBorder(b style.BorderSpec) bool {
	return ptOf(b.Top.Width) > 0 || ptOf(b.Right.Width) > 0 || ptOf(b.Bottom.Width) > 0 || ptOf(b.Left.Width) > 0
}

// emitBorder draws a non-uniform per-side border as four trapezoids around
// the content rectangle, with quarter-arc Bézier corners (spec §4.9).
func emitBorder(b *layout.Box, sink Sink, radii Radii) {
	widths := SideWidths{
		Top:    ptOf(b.Style.Border.Top.Width),
		Right:  ptOf(b.Style.Border.Right.Width),
		Bottom: ptOf(b.Style.Border.Bottom.Width),
		Left:   ptOf(b.Style.Border.Left.Width),
	}
	colors := SideColors{
		Top:    b.Style.Border.Top.Color,
		Right:  b.Style.Border.Right.Color,
		Bottom: b.Style.Border.Bottom.Color,
		Left:   b.Style.Border.Left.Color,
	}
	sink.StrokeBorder(b.X, b.Y, b.W, b.H, widths, colors, radii)
	emitRoundedCorners(b, sink, radii)
}

// emitRoundedCorners supplies a quarter-arc DrawPath for each nonzero
// corner radius, alongside StrokeBorder, for sinks that compose rounded
// corners from path primitives rather than from the radii themselves
// (spec §4.9: "rounded corners use quarter-arc Bézier approximations").
// Each arc is built centered at the origin and placed via a coords.Matrix
// translation to its corner center, passed as DrawPath's transform.
func emitRoundedCorners(b *layout.Box, sink Sink, radii Radii) {
	type corner struct {
		r      float64
		cx, cy float64
		a0, a1 float64
		color  style.Color
	}
	corners := [4]corner{
		{radii.TL, b.X + radii.TL, b.Y + radii.TL, math.Pi, 1.5 * math.Pi, b.Style.Border.Top.Color},
		{radii.TR, b.X + b.W - radii.TR, b.Y + radii.TR, 1.5 * math.Pi, 2 * math.Pi, b.Style.Border.Right.Color},
		{radii.BR, b.X + b.W - radii.BR, b.Y + b.H - radii.BR, 0, 0.5 * math.Pi, b.Style.Border.Bottom.Color},
		{radii.BL, b.X + radii.BL, b.Y + b.H - radii.BL, 0.5 * math.Pi, math.Pi, b.Style.Border.Left.Color},
	}
	for _, c := range corners {
		if c.r <= 0 {
			continue
		}
		start := PathCommand{Op: 'M', Args: []float64{c.r * math.Cos(c.a0), c.r * math.Sin(c.a0)}}
		arc := QuarterArc(0, 0, c.r, c.a0, c.a1)
		transform := [6]float64(coords.Translate(c.cx, c.cy))
		color := c.color
		sink.DrawPath([]PathCommand{start, arc}, &color, nil, transform)
	}
}

func emitText(b *layout.Box, sink Sink) {
	fontKey := helveticaFontKey(b.Text.Weight, b.Text.Style)
	_, cy, cw, _ := b.ContentRect()
	lineH := b.Text.FontSize * b.Text.LineHeight
	baseline := cy + fonts.Helvetica.Ascent(b.Text.FontSize) // first baseline = ascent below content top
	for _, line := range b.Lines {
		x := b.X + b.PaddingPt.Left + b.BorderPt.Left + line.X
		run := x
		for i, tok := range line.Tokens {
			sink.DrawText(snap(run), baseline, tok.Text, fontKey, b.Text.FontSize, b.Text.Color)
			if i < len(line.Tokens)-1 {
				run += tok.Width + text.GapAdvance(line, cw, i)
			}
		}
		baseline += lineH
	}
}

// snap rounds a glyph-run x-offset to the nearest 1/64 pt (fixed.Int26_6's
// native precision), keeping repeated accumulation of per-token advances
// from drifting past the spec's 0.5pt placement epsilon.
func snap(x float64) float64 {
	return float64(fixed.Int26_6(math.Round(x*64))) / 64
}

func helveticaFontKey(w style.FontWeight, s style.FontStyle) string {
	switch {
	case w == style.WeightBold && s == style.StyleItalic:
		return "Helvetica-BoldOblique"
	case w == style.WeightBold:
		return "Helvetica-Bold"
	case s == style.StyleItalic:
		return "Helvetica-Oblique"
	default:
		return "Helvetica"
	}
}

func emitImage(b *layout.Box, sink Sink, resources map[string]layout.ResourceResult) {
	res, ok := resources[b.Src]
	if !ok || res.Err != nil {
		return
	}
	x, y, w, h := b.ContentRect()
	sink.DrawImage(x, y, w, h, res.Resource.Bytes, string(b.ObjectFit))
}

func emitSvg(b *layout.Box, sink Sink, resources map[string]layout.ResourceResult) {
	x, y, w, h := b.ContentRect()
	if b.SvgContent != "" {
		sink.DrawSvg(x, y, w, h, []byte(b.SvgContent))
		return
	}
	res, ok := resources[b.Src]
	if !ok || res.Err != nil {
		return
	}
	sink.DrawSvg(x, y, w, h, res.Resource.Bytes)
}

// QuarterArc approximates a 90° circular arc of radius r centered at
// (cx, cy) from angle a0 to a1 with a single cubic Bézier, the standard
// kappa≈0.5523 control-point construction. Exported for Sink
// implementations that draw rounded corners themselves from StrokeBorder's
// radii (spec §4.9).
func QuarterArc(cx, cy, r, a0, a1 float64) PathCommand {
	const kappa = 0.5522847498307936
	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	c0x, c0y := x0-kappa*r*math.Sin(a0), y0+kappa*r*math.Cos(a0)
	c1x, c1y := x1+kappa*r*math.Sin(a1), y1-kappa*r*math.Cos(a1)
	return PathCommand{Op: 'C', Args: []float64{c0x, c0y, c1x, c1y, x1, y1}}
}
