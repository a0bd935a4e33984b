package sprint

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func TestIdealSprint0(t *testing.T) {
	r := Sprint0()
	ideal := r.Ideal()
	if len(ideal) != 15 {
		t.Fatalf("expected 15 points, got %d", len(ideal))
	}
	if ideal[0] != 4 || ideal[14] != 0 {
		t.Errorf("expected ideal from 4 to 0, got %v to %v", ideal[0], ideal[14])
	}
	step := ideal[0] - ideal[1]
	for i := 1; i < len(ideal); i++ {
		if d := ideal[i-1] - ideal[i]; math.Abs(d-step) > 1e-9 {
			t.Errorf("uneven step at %d: %v (expected %v)", i, d, step)
		}
	}
}

func TestIdealDegenerate(t *testing.T) {
	if got := Ideal(4, 0); len(got) != 0 {
		t.Errorf("expected empty series, got %v", got)
	}
	if got := Ideal(4, -3); len(got) != 0 {
		t.Errorf("expected empty series, got %v", got)
	}
	if got := Ideal(4, 1); len(got) != 1 || got[0] != 4 {
		t.Errorf("expected [4], got %v", got)
	}
	if got := Ideal(3, 4); fmt.Sprint(got) != "[3 2 1 0]" {
		t.Errorf("unexpected series %v", got)
	}
}

func TestSprint0Remaining(t *testing.T) {
	r := Sprint0()
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	got := fmt.Sprint(r.Remaining())
	if exp := "[4 3 3 3 3 3 2 2 1 1 1 0 0 0 0]"; got != exp {
		t.Errorf("expected %s, got %s", exp, got)
	}
	rem := r.Remaining()
	for i := 1; i < len(rem); i++ {
		if rem[i] > rem[i-1] {
			t.Errorf("remaining increases at %d", i)
		}
	}
}

func TestSprint0Metrics(t *testing.T) {
	r := Sprint0()
	if i := r.CompletionIndex(); i != 11 {
		t.Errorf("expected completion index 11, got %d", i)
	}
	if d := r.Days[r.CompletionIndex()].Date.Format(DateLayout); d != "15/02/2026" {
		t.Errorf("expected completion on 15/02/2026, got %s", d)
	}
	if s := r.SpanDays(); s != 15 {
		t.Errorf("expected 15 days, got %d", s)
	}
	if v := fmt.Sprintf("%.2f", r.Velocity()); v != "0.27" {
		t.Errorf("expected velocity 0.27, got %s", v)
	}
	if e := r.DaysEarly(); e != 3 {
		t.Errorf("expected 3 days early, got %d", e)
	}
	if c := r.Completed(); c != 4 {
		t.Errorf("expected 4 completed tasks, got %d", c)
	}
	if rate := CompletionRate(4, 4); rate != 100 {
		t.Errorf("expected 100%%, got %v", rate)
	}
	if rate := CompletionRate(1, 0); rate != 0 {
		t.Errorf("expected 0%% for empty sprint, got %v", rate)
	}
}

func TestWeekends(t *testing.T) {
	got := fmt.Sprint(Sprint0().Weekends())
	// 7-8 and 14-15 February 2026
	if exp := "[3 4 10 11]"; got != exp {
		t.Errorf("expected weekend indices %s, got %s", exp, got)
	}
}

func TestSummary(t *testing.T) {
	s := Sprint0().Summarize()
	if s.Period() != "04/02/2026 - 18/02/2026" {
		t.Errorf("unexpected period %q", s.Period())
	}
	if s.CompletionRate != 100 || s.Total != 4 || s.Completed != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Completion.IsZero() {
		t.Error("expected a completion date")
	}
}

func TestValidate(t *testing.T) {
	d := func(day, rem int) Day {
		return Day{Date: time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC), Remaining: rem}
	}
	for _, tc := range []struct {
		days []Day
		err  error
	}{
		{nil, ErrEmpty},
		{[]Day{d(4, 2), d(4, 1)}, ErrNotIncreasing},
		{[]Day{d(5, 2), d(4, 1)}, ErrNotIncreasing},
		{[]Day{d(4, 1), d(5, 2)}, nil},
		{[]Day{d(4, -1)}, ErrNegative},
		{[]Day{d(4, 2), d(6, 2), d(7, 0)}, nil},
	} {
		err := Record{Days: tc.days}.Validate()
		if !errors.Is(err, tc.err) {
			t.Errorf("days %v: expected %v, got %v", tc.days, tc.err, err)
		}
	}
}

func TestMonotonic(t *testing.T) {
	if err := Sprint0().Monotonic(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	r := Sprint0()
	r.Days[3].Remaining = 5 // a task was added
	if err := r.Monotonic(); !errors.Is(err, ErrIncreasingRemaining) {
		t.Errorf("expected ErrIncreasingRemaining, got %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("a rising count should still be valid, got %v", err)
	}
	if r.Peak() != 5 || Sprint0().Peak() != 4 {
		t.Errorf("unexpected peaks %d, %d", r.Peak(), Sprint0().Peak())
	}
}

func TestEmptyRecord(t *testing.T) {
	var r Record
	if r.CompletionIndex() != -1 || r.SpanDays() != 0 || r.Velocity() != 0 || r.Ideal() != nil {
		t.Error("expected zero values for an empty record")
	}
}
