package chart

import (
	"math"
	"strconv"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"github.com/truesight/sprintcharts/charttext"
)

const (
	inch = 72. // points per inch

	figurePad = 1.08 * 10 // around the figure, before cropping
	titlePad  = 20.
	labelPad  = 4.
	tickPad   = 3.5
	cropPad   = 0.1 * inch // kept around the drawn extent

	labelRotation = 45. // of the date tick labels, in degrees
)

var gridStyle = chartdraw.Line(chartdraw.LightGray, 0.8).WithOpacity(0.3).WithDash(3.7*0.8, 1.6*0.8)

// axes maps data coordinates to the figure frame (in points, y down).
type axes struct {
	x0, y0, x1, y1         float64
	xmin, xmax, ymin, ymax float64
}

func (a axes) px(x float64) float64 { return a.x0 + (x-a.xmin)/(a.xmax-a.xmin)*(a.x1-a.x0) }

func (a axes) py(y float64) float64 { return a.y1 - (y-a.ymin)/(a.ymax-a.ymin)*(a.y1-a.y0) }

// fraction returns the point at the given fraction of the frame,
// measured from the top left corner.
func (a axes) fraction(fx, fy float64) (float64, float64) {
	return a.x0 + fx*(a.x1-a.x0), a.y0 + fy*(a.y1-a.y0)
}

// dataLimits pads [lo, hi] by 5% on each side.
func dataLimits(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	m := 0.05 * (hi - lo)
	return lo - m, hi + m
}

type tick struct {
	pos   float64
	label string
}

// integerTicks returns the ticks 0, 1, ..., n
func integerTicks(n int) []tick {
	out := make([]tick, n+1)
	for i := range out {
		out[i] = tick{pos: float64(i), label: strconv.Itoa(i)}
	}
	return out
}

// frame describes the decorations around the axes.
type frame struct {
	title     string
	titleSize float64

	xlabel, ylabel string
	labelSize      float64

	xticks, yticks []tick
	tickSize       float64
	rotateX        bool
}

func (f frame) titleStyle() charttext.Style {
	return charttext.Style{Face: charttext.Bold, Size: f.titleSize, HAlign: charttext.Center}
}

func (f frame) labelStyle() charttext.Style {
	return charttext.Style{Face: charttext.Bold, Size: f.labelSize, HAlign: charttext.Center}
}

func (f frame) tickStyle() charttext.Style {
	return charttext.Style{Size: f.tickSize}
}

// builder accumulates the items of a scene. Text shares
// a single color, so it is merged into one path painted last.
type builder struct {
	sc   *chartdraw.Scene
	text chartpath.Path
	err  error
	opts options
}

func newBuilder(title string, wInch, hInch float64, o options) *builder {
	return &builder{sc: chartdraw.NewScene(title, wInch*inch, hInch*inch), opts: o}
}

func (b *builder) add(p chartpath.Path, st chartdraw.PathStyle) { b.sc.Add(p, st) }

func (b *builder) addItems(items []chartdraw.Item) { b.sc.Items = append(b.sc.Items, items...) }

func (b *builder) addText(s string, x, y float64, st charttext.Style) {
	if b.err != nil {
		return
	}
	b.err = charttext.Append(&b.text, s, x, y, st)
}

func (b *builder) measure(s string, st charttext.Style) (w, h float64) {
	if b.err != nil {
		return 0, 0
	}
	w, h, b.err = charttext.Measure(s, st)
	return w, h
}

// finish paints the text and crops the scene if required
func (b *builder) finish() (*chartdraw.Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.add(b.text, chartdraw.Fill(TextColor))
	if b.opts.tight {
		b.sc.Tighten(cropPad)
	}
	return b.sc, nil
}

// rotatedExtent returns the vertical extent of a label of
// size w x h rotated by labelRotation
func rotatedExtent(w, h float64) float64 {
	return (w + h) * math.Sin(labelRotation*math.Pi/180)
}

// layout sizes the axes frame so that the decorations of f fit
// in the figure, for the given data limits.
func (b *builder) layout(f frame, xmin, xmax, ymin, ymax float64) axes {
	W, H := b.sc.ViewBox.W, b.sc.ViewBox.H

	_, th := b.measure(f.title, f.titleStyle())
	top := figurePad + th + titlePad

	var yw float64
	for _, t := range f.yticks {
		w, _ := b.measure(t.label, f.tickStyle())
		yw = max(yw, w)
	}
	_, ylh := b.measure(f.ylabel, f.labelStyle())
	left := figurePad + ylh + labelPad + yw + tickPad

	var xext float64
	for _, t := range f.xticks {
		w, h := b.measure(t.label, f.tickStyle())
		if f.rotateX {
			xext = max(xext, rotatedExtent(w, h))
		} else {
			xext = max(xext, h)
		}
	}
	_, xlh := b.measure(f.xlabel, f.labelStyle())
	bottom := figurePad + xlh + labelPad + xext + tickPad

	return axes{
		x0: left, y0: top, x1: W - 2*figurePad, y1: H - bottom,
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
	}
}

// face paints the axes background
func (b *builder) face(ax axes) {
	var p chartpath.Path
	p.AddRect(ax.x0, ax.y0, ax.x1, ax.y1)
	b.add(p, chartdraw.Fill(AxesColor))
}

// grid adds the grid lines at the given data positions
func (b *builder) grid(ax axes, xs, ys []tick) {
	var p chartpath.Path
	for _, t := range xs {
		x := ax.px(t.pos)
		p.AddLine(x, ax.y0, x, ax.y1)
	}
	for _, t := range ys {
		y := ax.py(t.pos)
		p.AddLine(ax.x0, y, ax.x1, y)
	}
	b.add(p, gridStyle)
}

// decorate adds the tick labels, axis labels and title.
func (b *builder) decorate(ax axes, f frame) {
	st := f.tickStyle()
	var xext float64
	for _, t := range f.xticks {
		x, y := ax.px(t.pos), ax.y1+tickPad
		w, h := b.measure(t.label, st)
		if f.rotateX {
			// the rotated box has its top right corner on the tick
			rst := st
			rst.HAlign, rst.VAlign, rst.Rotation = charttext.Right, charttext.Top, labelRotation
			b.addText(t.label, x-h*math.Sin(labelRotation*math.Pi/180), y, rst)
			xext = max(xext, rotatedExtent(w, h))
		} else {
			cst := st
			cst.HAlign, cst.VAlign = charttext.Center, charttext.Top
			b.addText(t.label, x, y, cst)
			xext = max(xext, h)
		}
	}

	var yw float64
	yst := st
	yst.HAlign, yst.VAlign = charttext.Right, charttext.Middle
	for _, t := range f.yticks {
		w, _ := b.measure(t.label, st)
		yw = max(yw, w)
		b.addText(t.label, ax.x0-tickPad, ax.py(t.pos), yst)
	}

	xl := f.labelStyle()
	xl.VAlign = charttext.Top
	b.addText(f.xlabel, (ax.x0+ax.x1)/2, ax.y1+tickPad+xext+labelPad, xl)

	yl := f.labelStyle()
	yl.VAlign, yl.Rotation = charttext.Bottom, 90
	b.addText(f.ylabel, ax.x0-tickPad-yw-labelPad, (ax.y0+ax.y1)/2, yl)

	b.addText(f.title, (ax.x0+ax.x1)/2, ax.y0-titlePad, f.titleStyle())
}

// circles returns the markers of a series, as one path
func circles(ax axes, xs, ys []float64, diameter float64) chartpath.Path {
	var p chartpath.Path
	for i := range xs {
		p.AddCircle(ax.px(xs[i]), ax.py(ys[i]), diameter/2)
	}
	return p
}

// polyline returns the line of a series
func polyline(ax axes, xs, ys []float64) chartpath.Path {
	pxs, pys := make([]float64, len(xs)), make([]float64, len(ys))
	for i := range xs {
		pxs[i], pys[i] = ax.px(xs[i]), ax.py(ys[i])
	}
	var p chartpath.Path
	p.AddPolyline(pxs, pys)
	return p
}
