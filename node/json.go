package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/style"
)

// Decode parses the JSON input schema of spec §6: a root object with a
// single required "root" key holding a Node. Unknown keys are ignored.
func Decode(data []byte) (*Node, error) {
	var wire struct {
		Root *wireNode `json:"root"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, rendererr.New(rendererr.KindMalformedInput, "", "invalid JSON: %v", err)
	}
	if wire.Root == nil {
		return nil, rendererr.New(rendererr.KindMalformedInput, "root", "missing required \"root\" key")
	}
	return wire.Root.toNode("root")
}

type wireNode struct {
	Type         string          `json:"type"`
	Style        *wireStyle      `json:"style"`
	Children     []*wireNode     `json:"children"`
	Text         string          `json:"text"`
	NoWrap       bool            `json:"noWrap"`
	Src          string          `json:"src"`
	ObjectFit    string          `json:"objectFit"`
	Content      string          `json:"content"`
	ColumnWidths []json.RawMessage `json:"columnWidths"`
	RowSpan      int             `json:"rowSpan"`
	ColSpan      int             `json:"colSpan"`
}

func (w *wireNode) toNode(path string) (*Node, error) {
	if w.Type == "" {
		return nil, rendererr.New(rendererr.KindMalformedInput, path, "missing required \"type\" field")
	}
	t := Type(w.Type)
	switch t {
	case TypePage, TypeView, TypeText, TypeImage, TypeSvg, TypeTable, TypeRow, TypeCell:
	default:
		return nil, rendererr.New(rendererr.KindMalformedInput, path, "unknown node type %q", w.Type)
	}

	n := &Node{
		Type:       t,
		Content:    w.Text,
		NoWrap:     w.NoWrap,
		Src:        w.Src,
		SvgContent: w.Content,
		RowSpan:    w.RowSpan,
		ColSpan:    w.ColSpan,
	}

	if w.ObjectFit != "" {
		fit := ObjectFit(w.ObjectFit)
		switch fit {
		case FitCover, FitContain, FitFill, FitNone, FitScaleDown:
			n.ObjectFit = fit
		default:
			return nil, rendererr.New(rendererr.KindMalformedInput, path, "unknown objectFit %q", w.ObjectFit)
		}
	}

	if w.Style != nil {
		boxSpec, textSpec, err := w.Style.resolve(path)
		if err != nil {
			return nil, err
		}
		n.Box, n.Text = boxSpec, textSpec
	}

	for _, raw := range w.ColumnWidths {
		cw, err := decodeColumnWidth(raw)
		if err != nil {
			return nil, rendererr.New(rendererr.KindMalformedInput, path+".columnWidths", "%v", err)
		}
		n.ColumnWidths = append(n.ColumnWidths, cw)
	}

	for i, c := range w.Children {
		child, err := c.toNode(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func decodeColumnWidth(raw json.RawMessage) (ColumnWidth, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "auto" {
			return ColumnWidth{Auto: true}, nil
		}
		l, err := parseLength(raw)
		if err != nil {
			return ColumnWidth{}, err
		}
		return ColumnWidth{Width: l}, nil
	}
	l, err := parseLength(raw)
	if err != nil {
		return ColumnWidth{}, err
	}
	return ColumnWidth{Width: l}, nil
}

// wireStyle is the JSON-facing union of box and text style fields; a node's
// "style" object may declare any mix of the two (spec §3 TextStyle /
// box style are independent concerns resolved together here for
// convenience, but never cross-cascade — spec §4.2).
type wireStyle struct {
	Width, Height               json.RawMessage
	MinWidth, MinHeight          json.RawMessage
	MaxWidth, MaxHeight          json.RawMessage
	Padding, Margin              json.RawMessage
	Border                       json.RawMessage
	Background                   *wireColor
	Direction                    string
	MainAlign                    string `json:"mainAlign"`
	CrossAlign                   string `json:"crossAlign"`
	Gap                          *float64
	Wrap                         *bool
	Flex                         *float64
	Opacity                      *float64
	Position                     string
	Top, Right, Bottom, Left     json.RawMessage
	BreakBefore                  *bool    `json:"breakBefore"`
	BreakAfter                   *bool    `json:"breakAfter"`
	MinPresenceAhead             *float64 `json:"minPresenceAhead"`

	FontSize   *float64 `json:"fontSize"`
	FontWeight string   `json:"fontWeight"`
	FontStyle  string   `json:"fontStyle"`
	TextAlign  string   `json:"textAlign"`
	LineHeight *float64 `json:"lineHeight"`
	Color      *wireColor
}

func (w *wireStyle) resolve(path string) (*style.BoxSpec, *style.TextStyleSpec, error) {
	box := &style.BoxSpec{}
	text := &style.TextStyleSpec{}

	var err error
	if box.Width, err = optionalLength(w.Width); err != nil {
		return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".width", "%v", err)
	}
	if box.Height, err = optionalLength(w.Height); err != nil {
		return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".height", "%v", err)
	}
	if box.MinWidth, err = optionalLength(w.MinWidth); err != nil {
		return nil, nil, err
	}
	if box.MinHeight, err = optionalLength(w.MinHeight); err != nil {
		return nil, nil, err
	}
	if box.MaxWidth, err = optionalLength(w.MaxWidth); err != nil {
		return nil, nil, err
	}
	if box.MaxHeight, err = optionalLength(w.MaxHeight); err != nil {
		return nil, nil, err
	}
	if box.Top, err = optionalLength(w.Top); err != nil {
		return nil, nil, err
	}
	if box.Right, err = optionalLength(w.Right); err != nil {
		return nil, nil, err
	}
	if box.Bottom, err = optionalLength(w.Bottom); err != nil {
		return nil, nil, err
	}
	if box.Left, err = optionalLength(w.Left); err != nil {
		return nil, nil, err
	}

	if box.Padding, err = decodeEdgeSpec(w.Padding); err != nil {
		return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".padding", "%v", err)
	}
	if box.Margin, err = decodeEdgeSpec(w.Margin); err != nil {
		return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".margin", "%v", err)
	}
	if box.Border, err = decodeBorder(w.Border); err != nil {
		return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".border", "%v", err)
	}

	if w.Background != nil {
		c, err := w.Background.toColor()
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".background", "%v", err)
		}
		box.Background = &c
	}
	if w.Direction != "" {
		d, err := parseDirection(w.Direction)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".direction", "%v", err)
		}
		box.Direction = &d
	}
	if w.MainAlign != "" {
		m, err := parseMainAlign(w.MainAlign)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".mainAlign", "%v", err)
		}
		box.MainAlign = &m
	}
	if w.CrossAlign != "" {
		c, err := parseCrossAlign(w.CrossAlign)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".crossAlign", "%v", err)
		}
		box.CrossAlign = &c
	}
	box.Gap = w.Gap
	box.Wrap = w.Wrap
	box.Flex = w.Flex
	box.Opacity = w.Opacity
	box.BreakBefore = w.BreakBefore
	box.BreakAfter = w.BreakAfter
	box.MinPresenceAhead = w.MinPresenceAhead
	if w.Position != "" {
		p, err := parsePosition(w.Position)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".position", "%v", err)
		}
		box.Position = &p
	}

	text.FontSize = w.FontSize
	text.LineHeight = w.LineHeight
	if w.FontWeight != "" {
		fw, err := parseFontWeight(w.FontWeight)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".fontWeight", "%v", err)
		}
		text.Weight = &fw
	}
	if w.FontStyle != "" {
		fs, err := parseFontStyle(w.FontStyle)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".fontStyle", "%v", err)
		}
		text.Style = &fs
	}
	if w.TextAlign != "" {
		ta, err := parseTextAlign(w.TextAlign)
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".textAlign", "%v", err)
		}
		text.Align = &ta
	}
	if w.Color != nil {
		c, err := w.Color.toColor()
		if err != nil {
			return nil, nil, rendererr.New(rendererr.KindMalformedInput, path+".color", "%v", err)
		}
		text.Color = &c
	}

	return box, text, nil
}

type wireColor struct {
	R, G, B int
	A       *float64
}

func (c *wireColor) toColor() (style.Color, error) {
	if c.R < 0 || c.R > 255 || c.G < 0 || c.G > 255 || c.B < 0 || c.B > 255 {
		return style.Color{}, fmt.Errorf("color channel out of range [0,255]: {%d,%d,%d}", c.R, c.G, c.B)
	}
	a := 1.0
	if c.A != nil {
		a = *c.A
	}
	if a < 0 || a > 1 {
		return style.Color{}, fmt.Errorf("color alpha out of range [0,1]: %v", a)
	}
	return style.Color{R: c.R, G: c.G, B: c.B, A: a}, nil
}

func optionalLength(raw json.RawMessage) (*style.Length, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	l, err := parseLength(raw)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// parseLength accepts a bare number (points) or a string of the form
// "<number>%" (spec §6).
func parseLength(raw json.RawMessage) (style.Length, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return style.Pt(num), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return style.Length{}, fmt.Errorf("length must be a number or percentage string, got %s", raw)
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return style.Length{}, fmt.Errorf("invalid percentage %q", s)
		}
		return style.Percent(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return style.Length{}, fmt.Errorf("invalid length %q", s)
	}
	return style.Pt(v), nil
}

// decodeEdgeSpec accepts a bare length (applies to all sides) or an object
// with per-side overrides.
func decodeEdgeSpec(raw json.RawMessage) (*style.EdgeSpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var obj struct {
		Top, Right, Bottom, Left json.RawMessage
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (len(obj.Top)+len(obj.Right)+len(obj.Bottom)+len(obj.Left) > 0) {
		spec := &style.EdgeSpec{}
		for _, pair := range []struct {
			raw json.RawMessage
			dst **style.Length
		}{{obj.Top, &spec.Top}, {obj.Right, &spec.Right}, {obj.Bottom, &spec.Bottom}, {obj.Left, &spec.Left}} {
			if len(pair.raw) == 0 {
				continue
			}
			l, err := parseLength(pair.raw)
			if err != nil {
				return nil, err
			}
			*pair.dst = &l
		}
		return spec, nil
	}
	l, err := parseLength(raw)
	if err != nil {
		return nil, err
	}
	return &style.EdgeSpec{All: &l}, nil
}

func decodeBorder(raw json.RawMessage) (*style.BorderSpecInput, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var obj struct {
		Width, Color                           json.RawMessage
		Top, Right, Bottom, Left                json.RawMessage
		Radius   json.RawMessage
		RadiusTL json.RawMessage
		RadiusTR json.RawMessage
		RadiusBR json.RawMessage
		RadiusBL json.RawMessage
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	in := &style.BorderSpecInput{}
	if len(obj.Width) > 0 || len(obj.Color) > 0 {
		side, err := decodeBorderSide(obj.Width, obj.Color)
		if err != nil {
			return nil, err
		}
		in.All = side
	}
	for _, pair := range []struct {
		raw json.RawMessage
		dst **style.BorderSideSpec
	}{{obj.Top, &in.Top}, {obj.Right, &in.Right}, {obj.Bottom, &in.Bottom}, {obj.Left, &in.Left}} {
		if len(pair.raw) == 0 {
			continue
		}
		var sideObj struct {
			Width, Color json.RawMessage
		}
		if err := json.Unmarshal(pair.raw, &sideObj); err != nil {
			return nil, err
		}
		side, err := decodeBorderSide(sideObj.Width, sideObj.Color)
		if err != nil {
			return nil, err
		}
		*pair.dst = side
	}
	if len(obj.Radius) > 0 {
		l, err := parseLength(obj.Radius)
		if err != nil {
			return nil, err
		}
		in.RadiusAll = &l
	}
	for _, pair := range []struct {
		raw json.RawMessage
		dst **style.Length
	}{{obj.RadiusTL, &in.RadiusTL}, {obj.RadiusTR, &in.RadiusTR}, {obj.RadiusBR, &in.RadiusBR}, {obj.RadiusBL, &in.RadiusBL}} {
		if len(pair.raw) == 0 {
			continue
		}
		l, err := parseLength(pair.raw)
		if err != nil {
			return nil, err
		}
		*pair.dst = &l
	}
	return in, nil
}

func decodeBorderSide(widthRaw, colorRaw json.RawMessage) (*style.BorderSideSpec, error) {
	side := &style.BorderSideSpec{}
	if len(widthRaw) > 0 {
		l, err := parseLength(widthRaw)
		if err != nil {
			return nil, err
		}
		side.Width = &l
	}
	if len(colorRaw) > 0 {
		var wc wireColor
		if err := json.Unmarshal(colorRaw, &wc); err != nil {
			return nil, err
		}
		c, err := wc.toColor()
		if err != nil {
			return nil, err
		}
		side.Color = &c
	}
	return side, nil
}

func parseDirection(s string) (style.Direction, error) {
	switch s {
	case "row":
		return style.DirectionRow, nil
	case "column":
		return style.DirectionColumn, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func parseMainAlign(s string) (style.MainAlign, error) {
	switch s {
	case "start":
		return style.MainStart, nil
	case "center":
		return style.MainCenter, nil
	case "end":
		return style.MainEnd, nil
	case "space-between":
		return style.MainSpaceBetween, nil
	case "space-around":
		return style.MainSpaceAround, nil
	case "space-evenly":
		return style.MainSpaceEvenly, nil
	default:
		return 0, fmt.Errorf("unknown mainAlign %q", s)
	}
}

func parseCrossAlign(s string) (style.CrossAlign, error) {
	switch s {
	case "stretch":
		return style.CrossStretch, nil
	case "start":
		return style.CrossStart, nil
	case "center":
		return style.CrossCenter, nil
	case "end":
		return style.CrossEnd, nil
	default:
		return 0, fmt.Errorf("unknown crossAlign %q", s)
	}
}

func parsePosition(s string) (style.Position, error) {
	switch s {
	case "static":
		return style.PositionStatic, nil
	case "relative":
		return style.PositionRelative, nil
	case "absolute":
		return style.PositionAbsolute, nil
	default:
		return 0, fmt.Errorf("unknown position %q", s)
	}
}

func parseFontWeight(s string) (style.FontWeight, error) {
	switch s {
	case "normal":
		return style.WeightNormal, nil
	case "bold":
		return style.WeightBold, nil
	default:
		return 0, fmt.Errorf("unknown fontWeight %q", s)
	}
}

func parseFontStyle(s string) (style.FontStyle, error) {
	switch s {
	case "normal":
		return style.StyleNormal, nil
	case "italic":
		return style.StyleItalic, nil
	default:
		return 0, fmt.Errorf("unknown fontStyle %q", s)
	}
}

func parseTextAlign(s string) (style.TextAlign, error) {
	switch s {
	case "left":
		return style.AlignLeft, nil
	case "center":
		return style.AlignCenter, nil
	case "right":
		return style.AlignRight, nil
	case "justify":
		return style.AlignJustify, nil
	default:
		return 0, fmt.Errorf("unknown textAlign %q", s)
	}
}
