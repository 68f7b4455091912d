package resolve

import (
	"bytes"

	"github.com/srwiley/oksvg"
)

// svgDimensions extracts an inline SVG's viewBox, the intrinsic-size
// source for svg boxes per spec §4.4. Only the viewBox is read — the core
// never rasterizes or walks path data; that stays with the already-parsed
// primitive list the caller supplies (spec §1). Grounded on
// _examples/rupor-github-fb2cng/utils/images/svg.go's
// oksvg.ReadIconStream usage.
func svgDimensions(data []byte) (w, h float64) {
	return ViewBoxOf([]byte(string(data)))
}

// ViewBoxOf returns the (width, height) of an inline SVG document's
// viewBox, or (0,0) if it cannot be parsed. Exported so the layout
// measure pass can size an svg node's `content` field without a resolver
// round-trip.
func ViewBoxOf(svgContent []byte) (w, h float64) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgContent))
	if err != nil {
		return 0, 0
	}
	return icon.ViewBox.W, icon.ViewBox.H
}
