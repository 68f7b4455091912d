package layout

import (
	"github.com/wudi/docrender/style"
)

// flexChild tracks one in-flow child's state through the place pass steps
// of spec §4.5.
type flexChild struct {
	box        *Box
	mainHypo   float64
	mainFinal  float64
	crossPre   float64
	crossFinal float64
	crossOff   float64
	mainOff    float64
}

// hypotheticalMain computes a child's main-size per spec §4.5 step 2:
// explicit size (resolved against the container's main extent) if set,
// else the intrinsic-pref main size, clamped by min/max.
func hypotheticalMain(c *Box, mainIsRow bool, containerMain float64) float64 {
	explicit, minL, maxL := axisLengths(c, mainIsRow)
	v, ok := explicit.Resolve(containerMain, true)
	if !ok {
		if mainIsRow {
			v = c.IntrinsicPref.W
		} else {
			v = c.IntrinsicPref.H
		}
	}
	return clamp(v, minL, maxL, containerMain)
}

func axisLengths(c *Box, mainIsRow bool) (size, minL, maxL style.Length) {
	if mainIsRow {
		return c.Style.Width, c.Style.MinWidth, c.Style.MaxWidth
	}
	return c.Style.Height, c.Style.MinHeight, c.Style.MaxHeight
}

func clamp(v float64, minL, maxL style.Length, containing float64) float64 {
	if mv, ok := minL.Resolve(containing, true); ok && v < mv {
		v = mv
	}
	if mv, ok := maxL.Resolve(containing, true); ok && v > mv {
		v = mv
	}
	return v
}

// wrapIntoLines packs children into lines using hypothetical main sizes and
// gaps; with wrap disabled every child lives on one line (spec §4.5 step 3).
func wrapIntoLines(children []*flexChild, mainExtent, gap float64, wrap bool) [][]*flexChild {
	if !wrap || len(children) == 0 {
		return [][]*flexChild{children}
	}
	var lines [][]*flexChild
	var cur []*flexChild
	var used float64
	for _, c := range children {
		addition := c.mainHypo
		if len(cur) > 0 {
			addition += gap
		}
		if len(cur) > 0 && used+addition > mainExtent+0.5 {
			lines = append(lines, cur)
			cur = nil
			used = 0
			addition = c.mainHypo
		}
		cur = append(cur, c)
		used += addition
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// resolveFlexLine distributes free space across a line's flex-grow/shrink
// weights, setting each child's final main size, then returns the leftover
// free space for main-axis alignment (spec §4.5 step 4).
func resolveFlexLine(line []*flexChild, mainExtent, gap float64, mainIsRow bool) float64 {
	var sumHypo, sumFlex float64
	for _, c := range line {
		c.mainFinal = c.mainHypo
		sumHypo += c.mainHypo
		sumFlex += c.box.Style.Flex
	}
	var gaps float64
	if len(line) > 1 {
		gaps = gap * float64(len(line)-1)
	}
	free := mainExtent - sumHypo - gaps

	if sumFlex > 0 {
		if free > 0 {
			for _, c := range line {
				if c.box.Style.Flex > 0 {
					c.mainFinal += free * (c.box.Style.Flex / sumFlex)
				}
			}
			free = 0
		} else if free < 0 {
			for _, c := range line {
				if c.box.Style.Flex > 0 {
					mainMin := intrinsicMinAxis(c.box, mainIsRow)
					grown := c.mainFinal + free*(c.box.Style.Flex/sumFlex)
					if grown < mainMin {
						grown = mainMin
					}
					c.mainFinal = grown
				}
			}
			free = 0
		}
	}

	var actualSum float64
	for _, c := range line {
		actualSum += c.mainFinal
	}
	return mainExtent - actualSum - gaps
}

func intrinsicMinAxis(c *Box, mainIsRow bool) float64 {
	if mainIsRow {
		return c.IntrinsicMin.W
	}
	return c.IntrinsicMin.H
}

// mainAxisOffsets returns the starting offset and the extra per-gap spacing
// mainAlign injects beyond the base gap (spec §4.5 step 5 + tie-breaks).
func mainAxisOffsets(align style.MainAlign, n int, free float64) (start, extraGap float64) {
	if free <= 0 || n == 0 {
		return 0, 0
	}
	switch align {
	case style.MainCenter:
		return free / 2, 0
	case style.MainEnd:
		return free, 0
	case style.MainSpaceBetween:
		if n == 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case style.MainSpaceAround:
		each := free / float64(n)
		return each / 2, each
	case style.MainSpaceEvenly:
		each := free / float64(n+1)
		return each, each
	default:
		return 0, 0
	}
}
