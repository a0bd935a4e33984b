package chartpath

import (
	"math"
	"testing"
)

func TestToSVGPath(t *testing.T) {
	var p Path
	p.AddRect(0, 0, 10, 5)
	if got, exp := p.String(), "M0.000,0.000 L10.000,0.000 L10.000,5.000 L0.000,5.000 Z"; got != exp {
		t.Errorf("expected %s, got %s", exp, got)
	}
	p.Clear()
	if len(p) != 0 {
		t.Error("expected empty path after Clear")
	}
}

func TestAppendTransformed(t *testing.T) {
	var src, dst Path
	src.AddLine(0, 0, 1, 0)
	dst.Append(src, Identity.Translate(10, 10).Scale(4, 4))
	if got, exp := dst.String(), "M10.000,10.000 L14.000,10.000"; got != exp {
		t.Errorf("expected %s, got %s", exp, got)
	}
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(3, 4).Rotate(math.Pi / 2)
	x, y := m.Transform(1, 0)
	if math.Abs(x-3) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("expected (3, 5), got (%f, %f)", x, y)
	}
	if s := Identity.Scale(2, 8).ScaleFactor(); s != 4 {
		t.Errorf("expected scale factor 4, got %f", s)
	}
}

func TestShapes(t *testing.T) {
	var p Path
	p.AddRoundRect(0, 0, 40, 20, 50) // radius clamped to 10
	box, _ := p.Bounds(Identity)
	if x, y := FromFixedP(box.Max); math.Abs(x-40) > 0.1 || math.Abs(y-20) > 0.1 {
		t.Errorf("unexpected round rect extent %v", box)
	}

	p.Clear()
	p.AddPolyline([]float64{0}, []float64{0})
	p.AddPolygon([]float64{0, 1}, []float64{0, 1})
	if len(p) != 0 {
		t.Errorf("degenerate shapes should add nothing, got %s", p)
	}
}
