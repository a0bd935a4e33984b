package sprint

import "time"

// Ideal returns n evenly spaced values going from start down to 0,
// both ends included. A single point yields [start]; n <= 0 yields nil.
func Ideal(start float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := start / float64(n-1)
	for i := range out {
		out[i] = start - step*float64(i)
	}
	out[n-1] = 0 // exact end point, no roundoff
	return out
}

// CompletionRate returns completed/total as a percentage.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Summary gathers the figures printed on the console and in chart titles.
type Summary struct {
	Name           string
	Start, End     time.Time
	Completion     time.Time // zero if the sprint never completed
	CompletionIdx  int
	DaysEarly      int
	Total          int
	Completed      int
	CompletionRate float64
	Velocity       float64
}

// Summarize computes the summary of the record.
func (r Record) Summarize() Summary {
	s := Summary{
		Name:           r.Name,
		Start:          r.Start(),
		End:            r.End(),
		CompletionIdx:  r.CompletionIndex(),
		DaysEarly:      r.DaysEarly(),
		Total:          r.Total,
		Completed:      r.Completed(),
		CompletionRate: CompletionRate(r.Completed(), r.Total),
		Velocity:       r.Velocity(),
	}
	if s.CompletionIdx >= 0 {
		s.Completion = r.Days[s.CompletionIdx].Date
	}
	return s
}

// Period formats the sprint range as used in chart titles.
func (s Summary) Period() string {
	return s.Start.Format(DateLayout) + " - " + s.End.Format(DateLayout)
}
