package chartdraw

import (
	"image/color"
	"math"
	"testing"

	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/image/math/fixed"
)

// recorder logs the calls made by a scene
type recorder struct {
	calls   []string
	points  []fixed.Point26_6
	options StrokeOptions
	opacity float64
}

func (r *recorder) Start(a fixed.Point26_6) {
	r.calls = append(r.calls, "start")
	r.points = append(r.points, a)
}
func (r *recorder) Line(b fixed.Point26_6) {
	r.calls = append(r.calls, "line")
	r.points = append(r.points, b)
}
func (r *recorder) QuadBezier(b, c fixed.Point26_6) { r.calls = append(r.calls, "quad") }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.calls = append(r.calls, "cube") }
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.calls = append(r.calls, "close")
	}
}
func (r *recorder) Clear() { r.calls = append(r.calls, "clear") }
func (r *recorder) SetColor(c color.Color, opacity float64) {
	r.calls = append(r.calls, "color")
	r.opacity = opacity
}
func (r *recorder) Draw() { r.calls = append(r.calls, "draw") }
func (r *recorder) SetWinding(bool) {}
func (r *recorder) SetStrokeOptions(o StrokeOptions) { r.options = o }

type recordDriver struct {
	filler, stroker *recorder
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = d.filler
	}
	if willStroke {
		s = d.stroker
	}
	return f, s
}

func TestDrawFillThenStroke(t *testing.T) {
	var p chartpath.Path
	p.AddRect(0, 0, 10, 10)

	sc := NewScene("test", 100, 100)
	sc.Add(p, Fill(Black))
	sc.Add(p, Line(Gray, 2).WithDash(4, 2))
	sc.Add(nil, Fill(Black)) // ignored
	if len(sc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sc.Items))
	}

	d := &recordDriver{filler: new(recorder), stroker: new(recorder)}
	sc.SetTarget(0, 0, 200, 200) // scale 2
	sc.Draw(d, 0.5)

	exp := []string{"clear", "start", "line", "line", "line", "close", "color", "draw"}
	if len(d.filler.calls) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, d.filler.calls)
	}
	for i := range exp {
		if d.filler.calls[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, d.filler.calls)
		}
	}
	if d.filler.opacity != 0.5 {
		t.Errorf("expected opacity 0.5, got %f", d.filler.opacity)
	}
	if x, y := chartpath.FromFixedP(d.filler.points[2]); x != 20 || y != 20 {
		t.Errorf("expected transformed point (20, 20), got (%f, %f)", x, y)
	}

	o := d.stroker.options
	if o.LineWidth != fixed.I(4) {
		t.Errorf("expected line width scaled to 4, got %v", o.LineWidth)
	}
	if len(o.Dash.Dash) != 2 || o.Dash.Dash[0] != 8 || o.Dash.Dash[1] != 4 {
		t.Errorf("expected scaled dashes, got %v", o.Dash.Dash)
	}
	if o.Join.TrailLineCap != ButtCap || o.Join.LineGap != FlatGap {
		t.Errorf("unexpected default join options %v", o.Join)
	}
}

func TestExtentAndTighten(t *testing.T) {
	sc := NewScene("", 200, 100)
	if _, ok := sc.Extent(); ok {
		t.Error("expected no extent for an empty scene")
	}
	if sc.Tighten(5) {
		t.Error("empty scene should not be tightened")
	}

	var p chartpath.Path
	p.AddLine(20, 30, 120, 30)
	sc.Add(p, Line(Black, 2))
	ext, ok := sc.Extent()
	if !ok {
		t.Fatal("expected an extent")
	}
	if ext.X != 19 || ext.Y != 29 || ext.W != 102 || ext.H != 2 {
		t.Errorf("unexpected extent %v", ext)
	}

	sc.Tighten(25) // clipped on the top and left side
	if vb := sc.ViewBox; vb.X != 0 || vb.Y != 4 || math.Abs(vb.W-146) > 1e-9 || vb.H != 52 {
		t.Errorf("unexpected view box %v", vb)
	}
}

func TestSetTargetOffsetViewBox(t *testing.T) {
	sc := NewScene("", 200, 200)
	sc.ViewBox = Bounds{X: 100, Y: 50, W: 72, H: 36}
	sc.SetTarget(10, 20, 144, 72)
	for _, tc := range [][4]float64{
		{100, 50, 10, 20},  // view box origin
		{172, 86, 154, 92}, // opposite corner
		{136, 68, 82, 56},  // center
	} {
		if x, y := sc.Transform.Transform(tc[0], tc[1]); math.Abs(x-tc[2]) > 1e-9 || math.Abs(y-tc[3]) > 1e-9 {
			t.Errorf("(%g, %g): expected (%g, %g), got (%g, %g)", tc[0], tc[1], tc[2], tc[3], x, y)
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in  string
		exp color.NRGBA
	}{
		{"#1f77b4", color.NRGBA{0x1f, 0x77, 0xb4, 0xff}},
		{"#FF7F0E", color.NRGBA{0xff, 0x7f, 0x0e, 0xff}},
		{"#fff", White},
		{" lightgreen", LightGreen},
	} {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.exp {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.exp, got)
		}
	}
	for _, in := range []string{"", "#12", "#gggggg", "purple"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestModeStrings(t *testing.T) {
	if Miter.String() != "Miter" || RoundCap.String() != "RoundCap" || JoinMode(42).String() != "<unknown JoinMode>" {
		t.Error("unexpected mode names")
	}
}
