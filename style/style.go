// Package style resolves per-node style attributes — the merge of a node's
// own declared style with inherited text properties, and the normalization
// of shorthand padding/margin/border fields into per-side values.
//
// Box properties never cascade; only TextStyle fields inherit, by field,
// from the nearest ancestor that set them (spec §4.2).
package style

// Color is an (r, g, b, a) tuple; r/g/b are 0-255 integers, a is 0-1.
type Color struct {
	R, G, B int
	A       float64
}

// Black is the default text/border color.
var Black = Color{R: 0, G: 0, B: 0, A: 1}

// Transparent is the default background/border color.
var Transparent = Color{A: 0}

// LengthUnit distinguishes an unset length from a point or percentage one.
type LengthUnit int

const (
	LengthUnset LengthUnit = iota
	LengthPoint
	LengthPercent
)

// Length is a point value or a percentage resolved against a containing
// block's corresponding axis.
type Length struct {
	Unit  LengthUnit
	Value float64
}

// Pt builds a fixed point-valued Length.
func Pt(v float64) Length { return Length{Unit: LengthPoint, Value: v} }

// Percent builds a percentage-valued Length (v in [0,100]).
func Percent(v float64) Length { return Length{Unit: LengthPercent, Value: v} }

// IsSet reports whether the length carries an explicit value.
func (l Length) IsSet() bool { return l.Unit != LengthUnset }

// Resolve returns the length in points against containing, the size of the
// axis it resolves along. ok is false when the length is a percentage and
// containing is not definite, or when the length is unset — the caller
// treats that as auto (spec §3 invariant: an indefinite percentage
// degrades to auto).
func (l Length) Resolve(containing float64, definite bool) (pt float64, ok bool) {
	switch l.Unit {
	case LengthPoint:
		return l.Value, true
	case LengthPercent:
		if !definite {
			return 0, false
		}
		return containing * l.Value / 100, true
	default:
		return 0, false
	}
}

// EdgeInsets holds four Lengths, one per side, after shorthand expansion.
type EdgeInsets struct {
	Top, Right, Bottom, Left Length
}

// ResolveHorizontal returns left+right resolved against containingWidth;
// an indefinite percentage contributes 0.
func (e EdgeInsets) ResolveHorizontal(containingWidth float64, definite bool) float64 {
	l, _ := e.Left.Resolve(containingWidth, definite)
	r, _ := e.Right.Resolve(containingWidth, definite)
	return l + r
}

// ResolveVertical returns top+bottom resolved against containingHeight.
func (e EdgeInsets) ResolveVertical(containingHeight float64, definite bool) float64 {
	t, _ := e.Top.Resolve(containingHeight, definite)
	b, _ := e.Bottom.Resolve(containingHeight, definite)
	return t + b
}

// BorderSide is a single edge's stroke width and color.
type BorderSide struct {
	Width Length
	Color Color
}

// BorderSpec is a per-side border plus four corner radii.
type BorderSpec struct {
	Top, Right, Bottom, Left                      BorderSide
	RadiusTL, RadiusTR, RadiusBR, RadiusBL Length
}

// FontWeight is one of the two supported weights.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// FontStyle is one of the two supported slants.
type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
)

// TextAlign is the paragraph alignment mode.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// TextStyleSpec is the optional, per-field override a node may declare;
// every field is nil unless the node explicitly set it.
type TextStyleSpec struct {
	FontSize   *float64
	Weight     *FontWeight
	Style      *FontStyle
	Align      *TextAlign
	LineHeight *float64
	Color      *Color
}

// TextStyle is the fully resolved, inherited text style.
type TextStyle struct {
	FontSize   float64
	Weight     FontWeight
	Style      FontStyle
	Align      TextAlign
	LineHeight float64
	Color      Color
}

// DefaultTextStyle is the root inheritance seed (spec §4.2 defaults).
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:   12,
		Weight:     WeightNormal,
		Style:      StyleNormal,
		Align:      AlignLeft,
		LineHeight: 1.2,
		Color:      Black,
	}
}

// ResolveTextStyle merges spec onto parent, field by field; an unset field
// on spec adopts the parent's resolved value.
func ResolveTextStyle(parent TextStyle, spec *TextStyleSpec) TextStyle {
	out := parent
	if spec == nil {
		return out
	}
	if spec.FontSize != nil {
		out.FontSize = *spec.FontSize
	}
	if spec.Weight != nil {
		out.Weight = *spec.Weight
	}
	if spec.Style != nil {
		out.Style = *spec.Style
	}
	if spec.Align != nil {
		out.Align = *spec.Align
	}
	if spec.LineHeight != nil {
		out.LineHeight = *spec.LineHeight
	}
	if spec.Color != nil {
		out.Color = *spec.Color
	}
	return out
}
