// Package chartdraw holds chart scenes (styled paths in points)
// and paints them through a Driver: the backends doing the actual
// work are the PNG rasterizer and the PDF writer.
package chartdraw

import (
	"image/color"

	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/image/math/fixed"
)

// Drawer paints one path at a time and knows nothing about charts.
// Points are received in device space: the scene transform
// has already been applied.
type Drawer interface {
	chartpath.Adder

	// Clear resets the path state, before a new item is painted
	Clear()

	// SetColor selects the paint of the current path.
	// opacity multiplies the color alpha.
	SetColor(color color.Color, opacity float64)

	// Draw paints the accumulated path with the current settings
	Draw()
}

type Filler interface {
	Drawer

	// SetWinding chooses between the non-zero (true) and
	// even-odd (false) fill rules
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// SetStrokeOptions sets width, joins, caps and dashes of the next strokes
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers is called once per item. A drawer is only
	// returned when the matching boolean is true, nil otherwise.
	// An item is always filled before it is stroked, with the same path.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // alternating dash and gap lengths, empty for a solid line
	DashOffset float64   // distance into the pattern at the start of the line
}

// JoinMode selects how two segments of a stroke are joined.
type JoinMode uint8

const (
	Arc JoinMode = iota
	Round
	Bevel
	Miter
	MiterClip
	ArcClip
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode selects the shape of the stroke ends.
type CapMode uint8

const (
	NilCap CapMode = iota // use the default, ButtCap
	ButtCap
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
)

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode
	TrailLineCap CapMode // capping function for line ends
	LineGap      GapMode
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line, in device units
	Join      JoinOptions
	Dash      DashOptions
}
