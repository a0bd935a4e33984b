package chartdraw

import (
	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/image/math/fixed"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Item binds a style to a path
type Item struct {
	Path  chartpath.Path
	Style PathStyle
}

// Scene is an ordered list of styled paths, expressed
// in points (1/72 inch), with the y axis pointing down.
// Items are painted in order, so later ones cover earlier ones.
type Scene struct {
	ViewBox   Bounds
	Title     string
	Items     []Item
	Transform chartpath.Matrix2D
}

// NewScene returns an empty scene of the given size, in points.
func NewScene(title string, w, h float64) *Scene {
	return &Scene{ViewBox: Bounds{W: w, H: h}, Title: title, Transform: chartpath.Identity}
}

// Add appends a styled path to the scene. Empty paths are ignored.
func (s *Scene) Add(p chartpath.Path, style PathStyle) {
	if len(p) == 0 {
		return
	}
	s.Items = append(s.Items, Item{Path: p, Style: style})
}

// SetTarget sets the Transform matrix so that the view box fills the
// rectangle (x, y, w, h).
func (s *Scene) SetTarget(x, y, w, h float64) {
	scaleW := w / s.ViewBox.W
	scaleH := h / s.ViewBox.H
	s.Transform = chartpath.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y)
}

// Draw the scene into the driver `d`.
// All elements should be contained by the ViewBox of the Scene.
func (s *Scene) Draw(d Driver, opacity float64) {
	for _, it := range s.Items {
		it.drawTransformed(d, opacity, s.Transform)
	}
}

// drawTransformed draws the item into the driver while applying transform t.
func (it Item) drawTransformed(d Driver, opacity float64, t chartpath.Matrix2D) {
	filler, stroker := d.SetupDrawers(it.Style.FillerColor != nil, it.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(it.Style.UseNonZeroWinding)

		it.Path.AddTo(filler, t)
		filler.Stop(false)

		filler.SetColor(it.Style.FillerColor, it.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		join := it.Style.Join
		if join.TrailLineCap == NilCap {
			join.TrailLineCap = DefaultStyle.Join.TrailLineCap
		}
		if join.LineGap == NilGap {
			join.LineGap = FlatGap
		}
		scale := t.ScaleFactor()
		dash := it.Style.Dash
		if len(dash.Dash) != 0 {
			scaled := make([]float64, len(dash.Dash))
			for i, v := range dash.Dash {
				scaled[i] = v * scale
			}
			dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fixed.Int26_6(it.Style.LineWidth * scale * 64),
			Join:      join,
			Dash:      dash,
		})

		it.Path.AddTo(stroker, t)
		stroker.Stop(false)

		stroker.SetColor(it.Style.LinerColor, it.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}

// Extent returns the union of the item bounds, in scene units,
// and false for an empty scene. Stroke widths are taken into account.
func (s *Scene) Extent() (Bounds, bool) {
	var (
		out     fixed.Rectangle26_6
		started bool
	)
	for _, it := range s.Items {
		box, ok := it.Path.Bounds(chartpath.Identity)
		if !ok {
			continue
		}
		if it.Style.LinerColor != nil {
			half := fixed.Int26_6(it.Style.LineWidth * 32)
			box.Min = box.Min.Sub(fixed.Point26_6{X: half, Y: half})
			box.Max = box.Max.Add(fixed.Point26_6{X: half, Y: half})
		}
		if !started {
			out, started = box, true
			continue
		}
		out = unionRect(out, box)
	}
	if !started {
		return Bounds{}, false
	}
	minX, minY := chartpath.FromFixedP(out.Min)
	maxX, maxY := chartpath.FromFixedP(out.Max)
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

func unionRect(r, s fixed.Rectangle26_6) fixed.Rectangle26_6 {
	if s.Min.X < r.Min.X {
		r.Min.X = s.Min.X
	}
	if s.Min.Y < r.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if s.Max.X > r.Max.X {
		r.Max.X = s.Max.X
	}
	if s.Max.Y > r.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Tighten crops the view box to the drawn extent plus pad
// on every side. The result never exceeds the original view box.
// It returns false and leaves the scene untouched when nothing is drawn.
func (s *Scene) Tighten(pad float64) bool {
	ext, ok := s.Extent()
	if !ok {
		return false
	}
	vb := s.ViewBox
	minX, minY := max(ext.X-pad, vb.X), max(ext.Y-pad, vb.Y)
	maxX, maxY := min(ext.X+ext.W+pad, vb.X+vb.W), min(ext.Y+ext.H+pad, vb.Y+vb.H)
	if maxX <= minX || maxY <= minY {
		return false
	}
	s.ViewBox = Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	return true
}
