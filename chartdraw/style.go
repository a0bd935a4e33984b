package chartdraw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// PathStyle holds the paint settings of a path.
// A nil color disables the corresponding operation.
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor color.Color
}

// DefaultStyle fills black with the winding rule, full opacity,
// no stroke, butt line ends and round line joins.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         1.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fixed.I(4),
		LineJoin:     Round,
		TrailLineCap: ButtCap,
	},
	FillerColor: color.NRGBA{A: 0xff},
}

// Fill returns a style filling with c.
func Fill(c color.Color) PathStyle {
	s := DefaultStyle
	s.FillerColor = c
	return s
}

// Line returns a style stroking with c, without filling.
func Line(c color.Color, width float64) PathStyle {
	s := DefaultStyle
	s.FillerColor = nil
	s.LinerColor = c
	s.LineWidth = width
	return s
}

// FillLine returns a style filling with fill and stroking with line.
func FillLine(fill, line color.Color, width float64) PathStyle {
	s := Line(line, width)
	s.FillerColor = fill
	return s
}

// WithOpacity sets both the fill and line opacity.
func (s PathStyle) WithOpacity(op float64) PathStyle {
	s.FillOpacity, s.LineOpacity = op, op
	return s
}

// WithDash sets the dash pattern of the stroke.
func (s PathStyle) WithDash(dash ...float64) PathStyle {
	s.Dash = DashOptions{Dash: dash}
	return s
}

// Named colors used by the charts
var (
	White     = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Black     = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	Green     = color.NRGBA{0x00, 0x80, 0x00, 0xff}
	DarkGreen = color.NRGBA{0x00, 0x64, 0x00, 0xff}
	Gray      = color.NRGBA{0x80, 0x80, 0x80, 0xff}

	LightGray  = color.NRGBA{0xd3, 0xd3, 0xd3, 0xff}
	LightGreen = color.NRGBA{0x90, 0xee, 0x90, 0xff}
)

var namedColors = map[string]color.NRGBA{
	"white":      White,
	"black":      Black,
	"green":      Green,
	"darkgreen":  DarkGreen,
	"gray":       Gray,
	"grey":       Gray,
	"lightgray":  LightGray,
	"lightgrey":  LightGray,
	"lightgreen": LightGreen,
	"red":        {0xff, 0x00, 0x00, 0xff},
	"orange":     {0xff, 0xa5, 0x00, 0xff},
	"blue":       {0x00, 0x00, 0xff, 0xff},
}

// ParseColor accepts #rgb, #rrggbb and the named colors above.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("chartdraw: unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("chartdraw: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("chartdraw: invalid color %q: %w", s, err)
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// MustParseColor is like ParseColor but panics on error.
// It should only be used with constant values.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
