package chart

import (
	"fmt"
	"image/color"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/charticon"
	"github.com/truesight/sprintcharts/chartpath"
	"github.com/truesight/sprintcharts/charttext"
	"github.com/truesight/sprintcharts/sprint"
)

type burndownPreset struct {
	width, height         float64 // in inches
	lineWidth, markerSize float64 // in points
	tickEvery             int     // days between two date ticks

	titleSize, labelSize, tickSize, legendSize float64

	// completion marker, weekend shading, status box
	// and velocity in the title
	enhanced bool
}

var (
	standardPreset = burndownPreset{
		width: 14, height: 8, lineWidth: 2.5, markerSize: 8, tickEvery: 2,
		titleSize: 16, labelSize: 12, tickSize: 10, legendSize: 11,
	}
	enhancedPreset = burndownPreset{
		width: 16, height: 9, lineWidth: 3, markerSize: 10, tickEvery: 1,
		titleSize: 16, labelSize: 13, tickSize: 9, legendSize: 12,
		enhanced: true,
	}
)

const (
	completionMarkerSize = 25.
	statusFontSize       = 12.
	statusBoxPad         = 0.8 // in units of the font size
)

func seriesStyle(c color.Color, width float64) chartdraw.PathStyle {
	st := chartdraw.Line(c, width)
	st.Join.TrailLineCap = chartdraw.RoundCap
	return st
}

func markerStyle(c color.Color) chartdraw.PathStyle {
	return chartdraw.FillLine(c, c, 1)
}

func burndownTitle(team string, s sprint.Summary, enhanced bool) string {
	title := fmt.Sprintf("%s %s Burndown (%s)", team, s.Name, s.Period())
	if enhanced {
		title += fmt.Sprintf("\nVelocity: %.2f tasks/day | Completed: %d/%d tasks (%.0f%%)",
			s.Velocity, s.Completed, s.Total, s.CompletionRate)
	}
	return title
}

func burndown(p burndownPreset, team string, rec sprint.Record, o options) (*chartdraw.Scene, error) {
	sum := rec.Summarize()
	title := burndownTitle(team, sum, p.enhanced)

	b := newBuilder(fmt.Sprintf("%s %s Burndown", team, rec.Name), p.width, p.height, o)

	n := len(rec.Days)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	actual, ideal := rec.Remaining(), rec.Ideal()

	f := frame{
		title: title, titleSize: p.titleSize,
		xlabel: "Date", ylabel: "Remaining Tasks", labelSize: p.labelSize,
		tickSize: p.tickSize, rotateX: true,
	}
	for i := 0; i < n; i += p.tickEvery {
		f.xticks = append(f.xticks, tick{pos: float64(i), label: rec.Days[i].Date.Format(sprint.DateLayout)})
	}
	top := max(5, rec.Peak()+1)
	f.yticks = integerTicks(top)

	xmin, xmax := dataLimits(0, float64(n-1))
	ax := b.layout(f, xmin, xmax, -0.5, float64(top))

	b.face(ax)
	if p.enhanced {
		b.weekends(ax, rec.Weekends())
	}
	b.grid(ax, f.xticks, f.yticks)

	done := sum.CompletionIdx
	if p.enhanced && done >= 0 {
		var vline chartpath.Path
		x := ax.px(float64(done))
		vline.AddLine(x, ax.y0, x, ax.y1)
		b.add(vline, chartdraw.Line(chartdraw.Green, 2).WithOpacity(0.6).WithDash(3.7*2, 1.6*2))
	}

	idealLine, actualLine := seriesStyle(IdealColor, p.lineWidth), seriesStyle(ActualColor, p.lineWidth)
	b.add(polyline(ax, xs, ideal), idealLine)
	b.add(circles(ax, xs, ideal, p.markerSize), markerStyle(IdealColor))
	b.add(polyline(ax, xs, actual), actualLine)
	b.add(circles(ax, xs, actual, p.markerSize), markerStyle(ActualColor))

	entries := []legendEntry{
		{label: "Ideal Burndown", line: &idealLine, marker: circleMarker(markerStyle(IdealColor), p.markerSize)},
		{label: "Actual Remaining Tasks", line: &actualLine, marker: circleMarker(markerStyle(ActualColor), p.markerSize)},
	}
	if p.enhanced && done >= 0 {
		b.addItems(charticon.Star.PlaceCentered(ax.px(float64(done)), ax.py(actual[done]), completionMarkerSize))
		entries = append(entries, legendEntry{
			label: "Sprint Complete",
			marker: func(cx, cy float64) []chartdraw.Item {
				return charticon.Star.PlaceCentered(cx, cy, completionMarkerSize)
			},
		})
	}
	b.legend(ax, p.legendSize, entries)

	if p.enhanced {
		b.statusBox(ax, sum)
	}

	b.decorate(ax, f)
	return b.finish()
}

// weekends shades the days falling on a weekend, one day wide
func (b *builder) weekends(ax axes, days []int) {
	var p chartpath.Path
	for _, d := range days {
		x0 := max(ax.px(float64(d)-0.5), ax.x0)
		x1 := min(ax.px(float64(d)+0.5), ax.x1)
		p.AddRect(x0, ax.y0, x1, ax.y1)
	}
	b.add(p, chartdraw.Fill(chartdraw.Gray).WithOpacity(0.08))
}

func statusLines(s sprint.Summary) []string {
	state := "Sprint In Progress"
	if s.CompletionIdx >= 0 {
		state = "Sprint Completed"
	}
	return []string{
		state,
		fmt.Sprintf("%.0f%% Complete", s.CompletionRate),
		fmt.Sprintf("%d/%d Tasks Done", s.Completed, s.Total),
	}
}

// statusBox adds the rounded box in the upper left corner of the axes,
// with a check icon in front of the first line.
func (b *builder) statusBox(ax axes, s sprint.Summary) {
	st := charttext.Style{Face: charttext.MonoBold, Size: statusFontSize, VAlign: charttext.Top}
	lines := statusLines(s)
	lines[0] = "  " + lines[0] // room for the icon
	text := lines[0] + "\n" + lines[1] + "\n" + lines[2]

	tx, ty := ax.fraction(0.02, 0.02)
	w, h := b.measure(text, st)
	pad := statusBoxPad * statusFontSize

	var box chartpath.Path
	box.AddRoundRect(tx-pad, ty-pad, tx+w+pad, ty+h+pad, pad)
	b.add(box, chartdraw.FillLine(chartdraw.LightGreen, chartdraw.DarkGreen, 2).WithOpacity(0.85))

	cell, _ := b.measure("  ", st)
	asc, desc := charttext.MonoBold.Metrics(statusFontSize)
	iconSize := 1.1 * statusFontSize
	if s.CompletionIdx >= 0 {
		b.addItems(charticon.Check.PlaceCentered(tx+cell/2, ty+(asc+desc)/2, iconSize))
	}
	b.addText(text, tx, ty, st)
}
