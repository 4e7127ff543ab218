package scale

import (
	"math"
	"time"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count round values inside the domain, stepping by 1, 2 or 5
// times a power of ten.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := s.Domain()
	if count <= 0 || lo == hi || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	ratio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case ratio >= e10:
		factor = 10
	case ratio >= e5:
		factor = 5
	case ratio >= e2:
		factor = 2
	}

	var out []float64
	if power >= 0 {
		inc := factor * math.Pow(10, power)
		for i := math.Ceil(lo / inc); i*inc <= hi; i++ {
			out = append(out, i*inc)
		}
		return out
	}
	// negative powers divide to keep values like 0.3 exact
	inv := math.Pow(10, -power) / factor
	for i := math.Ceil(lo * inv); i/inv <= hi; i++ {
		out = append(out, i/inv)
	}
	return out
}

var timeSteps = []time.Duration{
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
	30 * 24 * time.Hour,
	91 * 24 * time.Hour,
	365 * 24 * time.Hour,
}

// Ticks returns at most count+1 instants aligned to a step from a fixed ladder.
func (s Time) Ticks(count int) []time.Time {
	t0, t1 := s.Domain()
	if count <= 0 || !t1.After(t0) {
		return nil
	}
	span := t1.Sub(t0)
	step := timeSteps[len(timeSteps)-1]
	for _, d := range timeSteps {
		if span/d <= time.Duration(count) {
			step = d
			break
		}
	}
	var out []time.Time
	t := t0.Truncate(step)
	if t.Before(t0) {
		t = t.Add(step)
	}
	for ; !t.After(t1); t = t.Add(step) {
		out = append(out, t)
	}
	return out
}

// TickFormat picks a label layout for the visible span.
func (s Time) TickFormat() string {
	t0, t1 := s.Domain()
	span := t1.Sub(t0)
	switch {
	case span >= 3*365*24*time.Hour:
		return "2006"
	case span >= 2*24*time.Hour:
		return "2006-01-02"
	default:
		return "01-02 15:04"
	}
}
