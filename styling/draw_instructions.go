package styling

import (
	"fmt"
	"strconv"
)

// Color is an RGBA quadruple. Channels are 0-255, alpha is 0-1.
type Color [4]float64

func (c Color) Alpha() float64 {
	return c[3]
}

// RGBA implements image/color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp(c[3], 0, 1)
	a = uint32(alpha * 0xffff)
	r = uint32(clamp(c[0], 0, 255) / 255 * alpha * 0xffff)
	g = uint32(clamp(c[1], 0, 255) / 255 * alpha * 0xffff)
	b = uint32(clamp(c[2], 0, 255) / 255 * alpha * 0xffff)
	return
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%s,%s,%s,%s)",
		formatFloat(c[0]), formatFloat(c[1]), formatFloat(c[2]), formatFloat(c[3]))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

type InstructionType string

const (
	InstructionTypeCircle InstructionType = "circle"
	InstructionTypeLine   InstructionType = "line"
	InstructionTypeFill   InstructionType = "fill"
	InstructionTypeText   InstructionType = "text"
	InstructionTypeIcon   InstructionType = "icon"
)

// ItemStyle is a single draw instruction. Instructions are drawn in ascending ZIndex order.
type ItemStyle interface {
	GetZIndex() int
	GetType() InstructionType
}

type Fill struct {
	Color Color `json:"color"`
}

type Stroke struct {
	Color      Color     `json:"color"`
	Width      float64   `json:"width"`
	LineCap    string    `json:"lineCap,omitempty"`
	LineJoin   string    `json:"lineJoin,omitempty"`
	MiterLimit float64   `json:"miterLimit,omitempty"`
	LineDash   []float64 `json:"lineDash,omitempty"`
}

type CircleStyle struct {
	LayerID string  `json:"layerId,omitempty"`
	Radius  float64 `json:"radius"`
	Fill    *Fill   `json:"fill"`
	Stroke  *Stroke `json:"stroke"`
	ZIndex  int     `json:"zIndex"`
}

func (cs *CircleStyle) GetZIndex() int {
	return cs.ZIndex
}

func (cs *CircleStyle) GetType() InstructionType {
	return InstructionTypeCircle
}

type LineStyle struct {
	LayerID string  `json:"layerId,omitempty"`
	Stroke  *Stroke `json:"stroke"`
	ZIndex  int     `json:"zIndex"`
}

func (ls *LineStyle) GetZIndex() int {
	return ls.ZIndex
}

func (ls *LineStyle) GetType() InstructionType {
	return InstructionTypeLine
}

type FillStyle struct {
	LayerID string  `json:"layerId,omitempty"`
	Fill    *Fill   `json:"fill"`
	Stroke  *Stroke `json:"stroke,omitempty"`
	ZIndex  int     `json:"zIndex"`
}

func (fs *FillStyle) GetZIndex() int {
	return fs.ZIndex
}

func (fs *FillStyle) GetType() InstructionType {
	return InstructionTypeFill
}

type TextStyle struct {
	LayerID          string     `json:"layerId,omitempty"`
	Text             string     `json:"text"`
	Font             Font       `json:"font"`
	Fill             *Fill      `json:"fill"`
	Halo             *Stroke    `json:"halo"`
	OffsetX          float64    `json:"offsetX"`
	OffsetY          float64    `json:"offsetY"`
	BackgroundFill   *Fill      `json:"backgroundFill,omitempty"`
	BackgroundStroke *Stroke    `json:"backgroundStroke,omitempty"`
	TextAlign        string     `json:"textAlign"`
	TextBaseline     string     `json:"textBaseline"`
	Padding          [4]float64 `json:"padding"`
	Placement        string     `json:"placement"`
	ZIndex           int        `json:"zIndex"`
}

func (ts *TextStyle) GetZIndex() int {
	return ts.ZIndex
}

func (ts *TextStyle) GetType() InstructionType {
	return InstructionTypeText
}

type IconStyle struct {
	LayerID  string  `json:"layerId,omitempty"`
	Src      string  `json:"src"`
	Scale    float64 `json:"scale"`
	Opacity  float64 `json:"opacity"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
}

func (is *IconStyle) GetZIndex() int {
	return is.ZIndex
}

func (is *IconStyle) GetType() InstructionType {
	return InstructionTypeIcon
}

// Font is a parsed CSS font shorthand
type Font struct {
	Style  string  `json:"style"`
	Weight int     `json:"weight"`
	SizePx float64 `json:"sizePx"`
	Family string  `json:"family"`
}

func (f Font) String() string {
	return fmt.Sprintf("%s %d %spx %s", f.Style, f.Weight, formatFloat(f.SizePx), f.Family)
}

// DrawInstruction tags an ItemStyle with its type, for encoding
type DrawInstruction struct {
	Type  InstructionType `json:"type"`
	Style ItemStyle       `json:"style"`
}

func NewDrawInstructions(itemStyles []ItemStyle) []*DrawInstruction {
	instructions := make([]*DrawInstruction, 0, len(itemStyles))
	for _, itemStyle := range itemStyles {
		instructions = append(instructions, &DrawInstruction{
			Type:  itemStyle.GetType(),
			Style: itemStyle,
		})
	}
	return instructions
}
