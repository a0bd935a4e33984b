package charttext

import (
	"math"
	"testing"

	"github.com/truesight/sprintcharts/chartpath"
)

func TestAdvanceIsMonotonic(t *testing.T) {
	s := "Remaining Tasks"
	prev := 0.
	for i := 1; i <= len(s); i++ {
		w, err := Regular.Advance(s[:i], 12)
		if err != nil {
			t.Fatal(err)
		}
		if w <= prev {
			t.Fatalf("advance of %q (%f) should exceed %f", s[:i], w, prev)
		}
		prev = w
	}

	w12, _ := Bold.Advance("Date", 12)
	w24, _ := Bold.Advance("Date", 24)
	if math.Abs(w24-2*w12) > 0.5 {
		t.Errorf("advance should scale with size: %f vs %f", w12, w24)
	}
}

func TestMonospaceAdvance(t *testing.T) {
	a, _ := MonoBold.Advance("iiii", 10)
	b, _ := MonoBold.Advance("WWWW", 10)
	if a != b {
		t.Errorf("expected equal advances for a monospace face, got %f and %f", a, b)
	}
}

func bounds(t *testing.T, p chartpath.Path) (minX, minY, maxX, maxY float64) {
	t.Helper()
	box, ok := p.Bounds(chartpath.Identity)
	if !ok {
		t.Fatal("expected glyph outlines")
	}
	minX, minY = chartpath.FromFixedP(box.Min)
	maxX, maxY = chartpath.FromFixedP(box.Max)
	return
}

func TestAppendAlignment(t *testing.T) {
	st := Style{Face: Regular, Size: 20, HAlign: Right, VAlign: Top}

	var p chartpath.Path
	if err := Append(&p, "04/02/2026", 100, 50, st); err != nil {
		t.Fatal(err)
	}
	_, minY, maxX, _ := bounds(t, p)
	if maxX > 100.5 || maxX < 95 {
		t.Errorf("right aligned text should end at 100, got %f", maxX)
	}
	if minY < 50-0.5 {
		t.Errorf("top aligned text should start below 50, got %f", minY)
	}

	p.Clear()
	st.HAlign, st.VAlign = Center, Baseline
	if err := Append(&p, "Sprint", 0, 0, st); err != nil {
		t.Fatal(err)
	}
	minX, minY, maxX, maxY := bounds(t, p)
	if math.Abs(minX+maxX) > 3 {
		t.Errorf("expected centered text, got [%f, %f]", minX, maxX)
	}
	// glyphs sit on the baseline, only the 'p' descends below it
	if minY >= 0 || maxY <= 0 || maxY > 20*0.3 {
		t.Errorf("unexpected vertical extent [%f, %f]", minY, maxY)
	}
}

func TestAppendRotated(t *testing.T) {
	var p chartpath.Path
	st := Style{Size: 10, Rotation: 90}
	if err := Append(&p, "Remaining Tasks", 0, 0, st); err != nil {
		t.Fatal(err)
	}
	minX, minY, maxX, _ := bounds(t, p)
	w, _ := Regular.Advance("Remaining Tasks", 10)
	if minY > -w+1 {
		t.Errorf("text rotated counter-clockwise should go up to %f, got %f", -w, minY)
	}
	if maxX-minX > 15 {
		t.Errorf("rotated text should be narrow, got width %f", maxX-minX)
	}
}

func TestMultiLine(t *testing.T) {
	st := Style{Face: MonoBold, Size: 10}
	w1, h1, err := Measure("4/4 Tasks Done", st)
	if err != nil {
		t.Fatal(err)
	}
	w3, h3, err := Measure("Sprint Completed\n100% Complete\n4/4 Tasks Done", st)
	if err != nil {
		t.Fatal(err)
	}
	if w3 <= w1 {
		t.Errorf("block width should be the widest line: %f <= %f", w3, w1)
	}
	if math.Abs(h3-h1-2*12) > 1e-9 {
		t.Errorf("expected two extra line heights, got %f and %f", h1, h3)
	}

	var p chartpath.Path
	st.VAlign = Top
	if err := Append(&p, "one\n\nthree", 0, 0, st); err != nil {
		t.Fatal(err)
	}
	_, _, _, maxY := bounds(t, p)
	if maxY < 24 {
		t.Errorf("third line should be two line heights below, got max y %f", maxY)
	}
}
