// Package draw walks a paginated box tree and emits an ordered stream of
// draw primitives to a Sink — the external PDF-encoder collaborator of
// spec §4.9/§6. The core never touches PDF bytes; it only describes shapes,
// text runs, and images in page-local point coordinates.
package draw

import "github.com/wudi/docrender/style"

// Radii holds the four corner radii of a rounded rectangle, in points.
type Radii struct {
	TL, TR, BR, BL float64
}

// SideWidths holds a per-side stroke width, in points.
type SideWidths struct {
	Top, Right, Bottom, Left float64
}

// SideColors holds a per-side stroke color.
type SideColors struct {
	Top, Right, Bottom, Left style.Color
}

// PathCommand is one segment of a drawPath primitive: "M", "L", "C", or "Z",
// mirroring the path-command vocabulary rasterx walks when consuming SVG
// path data (github.com/srwiley/rasterx), reused here for border/corner
// geometry rather than rasterization.
type PathCommand struct {
	Op   byte
	Args []float64
}

// Sink is the draw primitive consumer (spec §6 "Draw primitive sink").
// Implementations translate these calls into an actual PDF content stream;
// the core has no knowledge of that encoding.
type Sink interface {
	BeginPage(w, h float64, bg style.Color)
	EndPage()
	SetOpacity(alpha float64)
	FillRect(x, y, w, h float64, color style.Color, radii Radii)
	StrokeBorder(x, y, w, h float64, widths SideWidths, colors SideColors, radii Radii)
	DrawText(x, yBaseline float64, run string, fontKey string, size float64, color style.Color)
	DrawImage(x, y, w, h float64, bytes []byte, objectFit string)
	// DrawSvg hands the encoder a raw inline or resolved SVG document to
	// place within the given rect; the core never rasterizes SVG content
	// itself (spec §1 — consumes an already-parsed primitive list at the
	// encoder boundary). Named drawSvgPrimitive in spec §4.9's prose.
	DrawSvg(x, y, w, h float64, svg []byte)
	DrawPath(cmds []PathCommand, stroke *style.Color, fill *style.Color, transform [6]float64)
}
