// Package chart lays out the sprint charts as drawing scenes,
// expressed in points, ready to be painted by the raster and pdf backends.
package chart

import (
	"errors"
	"strings"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/sprint"
)

var ErrUnknownKind = errors.New("chart: unknown kind")

// Kind selects one of the chart presets.
type Kind uint8

const (
	StandardBurndown Kind = iota
	EnhancedBurndown
	Velocity
)

// Kinds lists the presets, in generation order.
var Kinds = [...]Kind{StandardBurndown, EnhancedBurndown, Velocity}

func (k Kind) String() string {
	switch k {
	case StandardBurndown:
		return "standard burndown"
	case EnhancedBurndown:
		return "enhanced burndown"
	case Velocity:
		return "velocity"
	default:
		return "<unknown Kind>"
	}
}

// slug turns "Sprint 0" into "sprint0"
func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// FileName returns the base name, without extension, of the chart
// files for the given sprint.
func (k Kind) FileName(rec sprint.Record) string {
	s := slug(rec.Name)
	switch k {
	case StandardBurndown:
		return s + "_burndown"
	case EnhancedBurndown:
		return s + "_burndown_enhanced"
	case Velocity:
		return "velocity_" + s
	default:
		return s
	}
}

// Option configures the layout of New.
type Option func(*options)

type options struct {
	tight bool
}

func defaultOptions() options { return options{tight: true} }

// Tight crops the chart to its drawn extent plus a small margin.
// It is enabled by default.
func Tight(tight bool) Option {
	return func(o *options) { o.tight = tight }
}

// New lays out the chart of kind k for the record.
// team prefixes the chart titles.
func New(k Kind, team string, rec sprint.Record, opts ...Option) (*chartdraw.Scene, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch k {
	case StandardBurndown:
		return burndown(standardPreset, team, rec, o)
	case EnhancedBurndown:
		return burndown(enhancedPreset, team, rec, o)
	case Velocity:
		return velocity(team, rec, o)
	default:
		return nil, ErrUnknownKind
	}
}

// Colors of the chart elements
var (
	IdealColor  = chartdraw.MustParseColor("#1f77b4")
	ActualColor = chartdraw.MustParseColor("#ff7f0e")
	BarColor    = chartdraw.MustParseColor("#2ecc71")
	AxesColor   = chartdraw.MustParseColor("#eaeaf2")
	TextColor   = chartdraw.MustParseColor("#262626")
)
