package chart

import (
	"fmt"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"github.com/truesight/sprintcharts/charttext"
	"github.com/truesight/sprintcharts/sprint"
)

const (
	barWidth      = 0.8 // in data units
	barLabelSize  = 14.
	barLabelSpace = 3. // between the bar top and its label
)

func velocity(team string, rec sprint.Record, o options) (*chartdraw.Scene, error) {
	title := fmt.Sprintf("%s Team Velocity - %s", team, rec.Name)
	b := newBuilder(title, 12, 7, o)

	completed := rec.Completed()
	f := frame{
		title: title, titleSize: 20,
		xlabel: "Sprint", ylabel: "Tasks Completed", labelSize: 14,
		xticks:   []tick{{pos: 0, label: rec.Name}},
		yticks:   integerTicks(max(5, completed+1)),
		tickSize: 10,
	}
	xmin, xmax := dataLimits(-barWidth/2, barWidth/2)
	ax := b.layout(f, xmin, xmax, 0, float64(max(5, completed+1)))

	b.face(ax)
	b.grid(ax, nil, f.yticks)

	var bar chartpath.Path
	bar.AddRect(ax.px(-barWidth/2), ax.py(float64(completed)), ax.px(barWidth/2), ax.py(0))
	b.add(bar, chartdraw.FillLine(BarColor, chartdraw.Black, 2).WithOpacity(0.8))

	label := fmt.Sprintf("%d tasks\n%.0f%%", completed, sprint.CompletionRate(completed, rec.Total))
	b.addText(label, ax.px(0), ax.py(float64(completed))-barLabelSpace, charttext.Style{
		Face: charttext.Bold, Size: barLabelSize,
		HAlign: charttext.Center, VAlign: charttext.Bottom,
	})

	b.decorate(ax, f)
	return b.finish()
}
