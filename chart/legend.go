package chart

import (
	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"github.com/truesight/sprintcharts/charttext"
)

// legend layout, in units of the font size
const (
	legendBorderAxesPad = 0.5
	legendBorderPad     = 0.4
	legendHandleLength  = 2.0
	legendHandleTextPad = 0.8
	legendLabelSpacing  = 0.5
)

type legendEntry struct {
	label string
	line  *chartdraw.PathStyle // nil for marker only entries

	// marker returns the items drawn at the middle of the handle
	marker func(cx, cy float64) []chartdraw.Item
}

// legend adds the entries in the upper right corner of the axes.
func (b *builder) legend(ax axes, fontSize float64, entries []legendEntry) {
	st := charttext.Style{Size: fontSize, VAlign: charttext.Middle}
	asc, desc := charttext.Regular.Metrics(fontSize)
	h := asc + desc

	var maxW float64
	for _, e := range entries {
		w, _ := b.measure(e.label, st)
		maxW = max(maxW, w)
	}
	pad := (legendBorderAxesPad + legendBorderPad) * fontSize
	textX := ax.x1 - pad - maxW
	handleX1 := textX - legendHandleTextPad*fontSize
	handleX0 := handleX1 - legendHandleLength*fontSize

	for i, e := range entries {
		cy := ax.y0 + pad + h/2 + float64(i)*(h+legendLabelSpacing*fontSize)
		if e.line != nil {
			var p chartpath.Path
			p.AddLine(handleX0, cy, handleX1, cy)
			b.add(p, *e.line)
		}
		if e.marker != nil {
			b.addItems(e.marker((handleX0+handleX1)/2, cy))
		}
		b.addText(e.label, textX, cy, st)
	}
}

// circleMarker returns a legend marker function drawing one circle
func circleMarker(style chartdraw.PathStyle, diameter float64) func(cx, cy float64) []chartdraw.Item {
	return func(cx, cy float64) []chartdraw.Item {
		var p chartpath.Path
		p.AddCircle(cx, cy, diameter/2)
		return []chartdraw.Item{{Path: p, Style: style}}
	}
}
