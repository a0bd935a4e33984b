// Holds the sprint task-completion history and the
// few numbers derived from it (ideal line, velocity, completion).
package sprint

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmpty               = errors.New("sprint: no days recorded")
	ErrNotIncreasing       = errors.New("sprint: dates are not strictly increasing")
	ErrNegative            = errors.New("sprint: negative remaining count")
	ErrIncreasingRemaining = errors.New("sprint: remaining count increases")
)

// DateLayout is the layout used on chart axes and titles.
const DateLayout = "02/01/2006"

// Day pairs a calendar date with the number of tasks still open
// at the end of that day.
type Day struct {
	Date      time.Time
	Remaining int
}

// Record is an ordered sprint history.
type Record struct {
	Name  string
	Total int // tasks committed at sprint start
	Days  []Day
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Sprint0 returns the recorded history of the first sprint
// (February 4-18, 2026).
func Sprint0() Record {
	dates := [...]string{
		"2026-02-04", "2026-02-05", "2026-02-06", "2026-02-07",
		"2026-02-08", "2026-02-09", "2026-02-10", "2026-02-11",
		"2026-02-12", "2026-02-13", "2026-02-14", "2026-02-15",
		"2026-02-16", "2026-02-17", "2026-02-18",
	}
	remaining := [...]int{4, 3, 3, 3, 3, 3, 2, 2, 1, 1, 1, 0, 0, 0, 0}

	days := make([]Day, len(dates))
	for i := range dates {
		days[i] = Day{Date: mustDate(dates[i]), Remaining: remaining[i]}
	}
	return Record{Name: "Sprint 0", Total: 4, Days: days}
}

// Validate checks that dates are strictly increasing and that
// counts are non-negative. Counts going up are allowed, see Monotonic.
func (r Record) Validate() error {
	if len(r.Days) == 0 {
		return ErrEmpty
	}
	for i, d := range r.Days {
		if d.Remaining < 0 {
			return fmt.Errorf("%w: day %d (%s)", ErrNegative, i, d.Date.Format(DateLayout))
		}
		if i == 0 {
			continue
		}
		prev := r.Days[i-1]
		if !d.Date.After(prev.Date) {
			return fmt.Errorf("%w: day %d (%s)", ErrNotIncreasing, i, d.Date.Format(DateLayout))
		}
	}
	return nil
}

// Monotonic returns an ErrIncreasingRemaining error for the first day
// whose count is above the previous one, such as when tasks are added
// during the sprint.
func (r Record) Monotonic() error {
	for i := 1; i < len(r.Days); i++ {
		if cur, prev := r.Days[i].Remaining, r.Days[i-1].Remaining; cur > prev {
			return fmt.Errorf("%w: day %d (%d > %d)", ErrIncreasingRemaining, i, cur, prev)
		}
	}
	return nil
}

// Peak returns the highest remaining count, 0 for an empty record.
func (r Record) Peak() int {
	peak := 0
	for _, d := range r.Days {
		peak = max(peak, d.Remaining)
	}
	return peak
}

// Dates returns the dates of the record, in order.
func (r Record) Dates() []time.Time {
	out := make([]time.Time, len(r.Days))
	for i, d := range r.Days {
		out[i] = d.Date
	}
	return out
}

// Remaining returns the remaining-task series as floats, ready to plot.
func (r Record) Remaining() []float64 {
	out := make([]float64, len(r.Days))
	for i, d := range r.Days {
		out[i] = float64(d.Remaining)
	}
	return out
}

// Start returns the first date, or the zero time for an empty record.
func (r Record) Start() time.Time {
	if len(r.Days) == 0 {
		return time.Time{}
	}
	return r.Days[0].Date
}

// End returns the last date, or the zero time for an empty record.
func (r Record) End() time.Time {
	if len(r.Days) == 0 {
		return time.Time{}
	}
	return r.Days[len(r.Days)-1].Date
}

// Ideal returns the ideal burndown for the record: a straight line
// from the first remaining count down to zero.
func (r Record) Ideal() []float64 {
	if len(r.Days) == 0 {
		return nil
	}
	return Ideal(float64(r.Days[0].Remaining), len(r.Days))
}

// CompletionIndex returns the index of the first day with no
// remaining task, or -1 if the sprint never completed.
func (r Record) CompletionIndex() int {
	for i, d := range r.Days {
		if d.Remaining == 0 {
			return i
		}
	}
	return -1
}

// SpanDays counts the calendar days covered by the record, both ends included.
func (r Record) SpanDays() int {
	if len(r.Days) == 0 {
		return 0
	}
	return daysBetween(r.Start(), r.End()) + 1
}

// DaysEarly is the number of days between completion and the
// last day of the sprint.
func (r Record) DaysEarly() int {
	i := r.CompletionIndex()
	if i < 0 {
		return 0
	}
	return daysBetween(r.Days[i].Date, r.End())
}

// Completed is the number of tasks closed over the sprint.
func (r Record) Completed() int {
	if len(r.Days) == 0 {
		return 0
	}
	return r.Total - r.Days[len(r.Days)-1].Remaining
}

// Velocity is the average number of tasks per calendar day.
func (r Record) Velocity() float64 {
	span := r.SpanDays()
	if span == 0 {
		return 0
	}
	return float64(r.Total) / float64(span)
}

// Weekends returns the indices of the days falling on Saturday or Sunday.
func (r Record) Weekends() []int {
	var out []int
	for i, d := range r.Days {
		if wd := d.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			out = append(out, i)
		}
	}
	return out
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(time.Hour).Hours() / 24)
}
