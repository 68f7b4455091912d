package layout

import (
	"context"

	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/resolve"
	"github.com/wudi/docrender/style"
	"github.com/wudi/docrender/text"
)

// ResourceResult is a pre-warmed resolve.Resolver answer, keyed by src, for
// every image/svg referenced in the tree (spec §5: resolution happens
// before layout starts, or via a pre-warmed synchronous callback).
type ResourceResult struct {
	Resource resolve.Resource
	Err      error
}

// MeasureContext carries the read-only collaborators the measure pass
// needs: font metrics and pre-resolved resources. Warn records non-fatal
// diagnostics (spec §7).
type MeasureContext struct {
	Metrics   *fonts.Metrics
	Resources map[string]ResourceResult
	Warn      func(rendererr.Warning)
}

// Measure runs the bottom-up intrinsic-sizing pass of spec §4.4, annotating
// every Box's IntrinsicMin/IntrinsicPref.
func Measure(ctx context.Context, mc *MeasureContext, b *Box) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	for _, c := range b.Children {
		if err := Measure(ctx, mc, c); err != nil {
			return err
		}
	}

	var pref, min Size
	switch b.Kind {
	case node.TypeText:
		pref.W = text.UnwrappedWidth(b.NodeText, b.Text, mc.Metrics)
		pref.H = text.Height(1, b.Text)
		if b.NoWrap {
			min = pref
		} else {
			min.W = text.LongestWordWidth(b.NodeText, b.Text, mc.Metrics)
			lines := text.Wrap(b.NodeText, b.Text, mc.Metrics, min.W)
			min.H = text.Height(len(lines), b.Text)
		}
	case node.TypeImage:
		pref = measureImage(mc, b)
		min = pref
	case node.TypeSvg:
		pref = measureSvg(b)
		min = pref
	default:
		pref, min = measureContainer(b)
	}

	pref, min = applyExplicitSize(b, pref, min)
	b.IntrinsicPref, b.IntrinsicMin = pref, min
	return nil
}

func measureImage(mc *MeasureContext, b *Box) Size {
	res, hasRes := mc.Resources[b.Src]
	if hasRes && res.Err != nil {
		b.ResourceFail = true
		mc.Warn(rendererr.Warn(rendererr.KindResourceResolution, b.Src, "resolve image: %v", res.Err))
	}
	w, hasW := b.Style.Width.Resolve(0, false)
	h, hasH := b.Style.Height.Resolve(0, false)
	switch {
	case hasW && hasH:
		return Size{w, h}
	case hasRes && res.Err == nil:
		b.NaturalW, b.NaturalH, b.HasNatural = res.Resource.NaturalWidth, res.Resource.NaturalHeight, true
		ratio := 1.0
		if res.Resource.NaturalWidth > 0 {
			ratio = res.Resource.NaturalHeight / res.Resource.NaturalWidth
		}
		switch {
		case hasW:
			return Size{w, w * ratio}
		case hasH:
			if ratio == 0 {
				return Size{0, h}
			}
			return Size{h / ratio, h}
		default:
			return Size{res.Resource.NaturalWidth, res.Resource.NaturalHeight}
		}
	default:
		// unresolved: render as an empty placeholder sized to explicit dims,
		// or 0x0 if none given (spec §7 resource resolution failure).
		return Size{w, h}
	}
}

func measureSvg(b *Box) Size {
	w, hasW := b.Style.Width.Resolve(0, false)
	h, hasH := b.Style.Height.Resolve(0, false)
	vbW, vbH := 0.0, 0.0
	if b.SvgContent != "" {
		vbW, vbH = resolve.ViewBoxOf([]byte(b.SvgContent))
	}
	switch {
	case hasW && hasH:
		return Size{w, h}
	case hasW:
		ratio := 1.0
		if vbW > 0 {
			ratio = vbH / vbW
		}
		return Size{w, w * ratio}
	case hasH:
		ratio := 1.0
		if vbH > 0 {
			ratio = vbW / vbH
		}
		return Size{h * ratio, h}
	default:
		return Size{vbW, vbH}
	}
}

// measureContainer hypothetically lays children out along the main axis
// with gap, summing along main and taking max along cross (spec §4.4).
func measureContainer(b *Box) (pref, min Size) {
	padH, padV := fallbackEdges(b.Style.Padding)
	borderH, borderV := fallbackBorder(b.Style.Border)

	var mainPref, crossPref, mainMin, crossMin float64
	for i, c := range b.Children {
		if c.Style.Position == style.PositionAbsolute {
			continue
		}
		cMainPref, cCrossPref := axisSizes(b.Style.Direction, c.IntrinsicPref)
		cMainMin, cCrossMin := axisSizes(b.Style.Direction, c.IntrinsicMin)
		if i > 0 {
			mainPref += b.Style.Gap
			mainMin += b.Style.Gap
		}
		mainPref += cMainPref
		mainMin += cMainMin
		crossPref = max(crossPref, cCrossPref)
		crossMin = max(crossMin, cCrossMin)
	}

	prefW, prefH := fromAxis(b.Style.Direction, mainPref, crossPref)
	minW, minH := fromAxis(b.Style.Direction, mainMin, crossMin)
	return Size{prefW + padH + borderH, prefH + padV + borderV},
		Size{minW + padH + borderH, minH + padV + borderV}
}

func axisSizes(dir style.Direction, s Size) (main, cross float64) {
	if dir == style.DirectionRow {
		return s.W, s.H
	}
	return s.H, s.W
}

func fromAxis(dir style.Direction, main, cross float64) (w, h float64) {
	if dir == style.DirectionRow {
		return main, cross
	}
	return cross, main
}

func fallbackEdges(e style.EdgeInsets) (horizontal, vertical float64) {
	return e.ResolveHorizontal(0, false), e.ResolveVertical(0, false)
}

func fallbackBorder(b style.BorderSpec) (horizontal, vertical float64) {
	l, _ := b.Left.Width.Resolve(0, false)
	r, _ := b.Right.Width.Resolve(0, false)
	t, _ := b.Top.Width.Resolve(0, false)
	btm, _ := b.Bottom.Width.Resolve(0, false)
	return l + r, t + btm
}

// applyExplicitSize overrides content-derived sizes with explicit fixed
// dimensions; an indefinite percentage contributes 0 (spec §4.4/§4.5).
func applyExplicitSize(b *Box, pref, min Size) (Size, Size) {
	switch b.Style.Width.Unit {
	case style.LengthPoint:
		pref.W, min.W = b.Style.Width.Value, b.Style.Width.Value
	case style.LengthPercent:
		pref.W, min.W = 0, 0
	}
	switch b.Style.Height.Unit {
	case style.LengthPoint:
		pref.H, min.H = b.Style.Height.Value, b.Style.Height.Value
	case style.LengthPercent:
		pref.H, min.H = 0, 0
	}
	return pref, min
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
