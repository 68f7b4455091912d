package style

// Direction is a flex container's main axis.
type Direction int

const (
	DirectionColumn Direction = iota
	DirectionRow
)

// MainAlign positions children along the main axis.
type MainAlign int

const (
	MainStart MainAlign = iota
	MainCenter
	MainEnd
	MainSpaceBetween
	MainSpaceAround
	MainSpaceEvenly
)

// CrossAlign positions (or stretches) children along the cross axis.
type CrossAlign int

const (
	CrossStretch CrossAlign = iota
	CrossStart
	CrossCenter
	CrossEnd
)

// Position is the positioning scheme of a box.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
)

// EdgeSpec is the JSON-facing shorthand-or-per-side form of an EdgeInsets;
// an explicit per-side field always overrides the shorthand, regardless of
// declaration order (spec §4.2).
type EdgeSpec struct {
	All                      *Length
	Top, Right, Bottom, Left *Length
}

// Resolve expands shorthand into EdgeInsets, honoring per-side overrides.
func (e *EdgeSpec) Resolve() EdgeInsets {
	var out EdgeInsets
	if e == nil {
		return out
	}
	if e.All != nil {
		out.Top, out.Right, out.Bottom, out.Left = *e.All, *e.All, *e.All, *e.All
	}
	if e.Top != nil {
		out.Top = *e.Top
	}
	if e.Right != nil {
		out.Right = *e.Right
	}
	if e.Bottom != nil {
		out.Bottom = *e.Bottom
	}
	if e.Left != nil {
		out.Left = *e.Left
	}
	return out
}

// BorderSideSpec is the optional per-side border override.
type BorderSideSpec struct {
	Width *Length
	Color *Color
}

// BorderSpecInput is the JSON-facing shorthand-or-per-side border form.
type BorderSpecInput struct {
	All                                    *BorderSideSpec
	Top, Right, Bottom, Left               *BorderSideSpec
	RadiusAll                              *Length
	RadiusTL, RadiusTR, RadiusBR, RadiusBL *Length
}

func applySide(dst *BorderSide, src *BorderSideSpec) {
	if src == nil {
		return
	}
	if src.Width != nil {
		dst.Width = *src.Width
	}
	if src.Color != nil {
		dst.Color = *src.Color
	}
}

// Resolve expands shorthand into a BorderSpec; per-side fields override the
// shorthand regardless of declaration order.
func (b *BorderSpecInput) Resolve() BorderSpec {
	var out BorderSpec
	if b == nil {
		return out
	}
	if b.All != nil {
		applySide(&out.Top, b.All)
		applySide(&out.Right, b.All)
		applySide(&out.Bottom, b.All)
		applySide(&out.Left, b.All)
	}
	applySide(&out.Top, b.Top)
	applySide(&out.Right, b.Right)
	applySide(&out.Bottom, b.Bottom)
	applySide(&out.Left, b.Left)

	out.RadiusTL, out.RadiusTR, out.RadiusBR, out.RadiusBL = zeroLen(), zeroLen(), zeroLen(), zeroLen()
	if b.RadiusAll != nil {
		out.RadiusTL, out.RadiusTR, out.RadiusBR, out.RadiusBL = *b.RadiusAll, *b.RadiusAll, *b.RadiusAll, *b.RadiusAll
	}
	if b.RadiusTL != nil {
		out.RadiusTL = *b.RadiusTL
	}
	if b.RadiusTR != nil {
		out.RadiusTR = *b.RadiusTR
	}
	if b.RadiusBR != nil {
		out.RadiusBR = *b.RadiusBR
	}
	if b.RadiusBL != nil {
		out.RadiusBL = *b.RadiusBL
	}
	return out
}

func zeroLen() Length { return Length{} }

// BoxSpec is the JSON-facing, all-optional box style a node may declare.
type BoxSpec struct {
	Width, Height             *Length
	MinWidth, MinHeight        *Length
	MaxWidth, MaxHeight        *Length
	Padding, Margin            *EdgeSpec
	Border                     *BorderSpecInput
	Background                 *Color
	Direction                  *Direction
	MainAlign                  *MainAlign
	CrossAlign                 *CrossAlign
	Gap                        *float64
	Wrap                       *bool
	Flex                       *float64
	Opacity                    *float64
	Position                   *Position
	Top, Right, Bottom, Left   *Length
	BreakBefore, BreakAfter    *bool
	MinPresenceAhead           *float64
}

// Box is the fully resolved box style for a single LayoutBox. Box
// properties never cascade — every field here comes from this node's own
// BoxSpec, defaulted independently of the parent.
type Box struct {
	Width, Height      Length
	MinWidth, MinHeight Length
	MaxWidth, MaxHeight Length
	Padding, Margin    EdgeInsets
	Border             BorderSpec
	Background         Color
	Direction          Direction
	MainAlign          MainAlign
	CrossAlign         CrossAlign
	Gap                float64
	Wrap               bool
	Flex               float64
	Opacity            float64
	Position           Position
	Top, Right, Bottom, Left Length
	BreakBefore, BreakAfter  bool
	MinPresenceAhead         float64
}

// DefaultBox is the container default (spec §4.3): column direction,
// mainAlign start, crossAlign stretch, gap 0, wrap false.
func DefaultBox() Box {
	return Box{
		Background: Transparent,
		Direction:  DirectionColumn,
		MainAlign:  MainStart,
		CrossAlign: CrossStretch,
		Opacity:    1,
	}
}

// ResolveBox applies a node's own BoxSpec onto the container defaults; box
// properties do not inherit from the parent.
func ResolveBox(spec *BoxSpec) Box {
	out := DefaultBox()
	if spec == nil {
		return out
	}
	if spec.Width != nil {
		out.Width = *spec.Width
	}
	if spec.Height != nil {
		out.Height = *spec.Height
	}
	if spec.MinWidth != nil {
		out.MinWidth = *spec.MinWidth
	}
	if spec.MinHeight != nil {
		out.MinHeight = *spec.MinHeight
	}
	if spec.MaxWidth != nil {
		out.MaxWidth = *spec.MaxWidth
	}
	if spec.MaxHeight != nil {
		out.MaxHeight = *spec.MaxHeight
	}
	out.Padding = spec.Padding.Resolve()
	out.Margin = spec.Margin.Resolve()
	out.Border = spec.Border.Resolve()
	if spec.Background != nil {
		out.Background = *spec.Background
	}
	if spec.Direction != nil {
		out.Direction = *spec.Direction
	}
	if spec.MainAlign != nil {
		out.MainAlign = *spec.MainAlign
	}
	if spec.CrossAlign != nil {
		out.CrossAlign = *spec.CrossAlign
	}
	if spec.Gap != nil {
		out.Gap = *spec.Gap
	}
	if spec.Wrap != nil {
		out.Wrap = *spec.Wrap
	}
	if spec.Flex != nil {
		out.Flex = *spec.Flex
	}
	out.Opacity = 1
	if spec.Opacity != nil {
		out.Opacity = *spec.Opacity
	}
	if spec.Position != nil {
		out.Position = *spec.Position
	}
	if spec.Top != nil {
		out.Top = *spec.Top
	}
	if spec.Right != nil {
		out.Right = *spec.Right
	}
	if spec.Bottom != nil {
		out.Bottom = *spec.Bottom
	}
	if spec.Left != nil {
		out.Left = *spec.Left
	}
	if spec.BreakBefore != nil {
		out.BreakBefore = *spec.BreakBefore
	}
	if spec.BreakAfter != nil {
		out.BreakAfter = *spec.BreakAfter
	}
	if spec.MinPresenceAhead != nil {
		out.MinPresenceAhead = *spec.MinPresenceAhead
	}
	return out
}
