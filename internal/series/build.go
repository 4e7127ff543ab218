package series

import (
	"errors"
	"sort"

	"CandleScope/internal/model"
)

// Report summarizes a build. Malformed rows are skipped, not fatal.
type Report struct {
	Total      int
	Kept       int
	Malformed  int
	Duplicates int
	Defects    []*RowError
}

// Err joins every row defect, or returns nil for a clean load.
func (r Report) Err() error {
	if len(r.Defects) == 0 {
		return nil
	}
	errs := make([]error, len(r.Defects))
	for i, d := range r.Defects {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Build parses rows into a Series sorted by time. Rows that fail parsing or the OHLC
// invariant are dropped and counted; rows sharing a timestamp keep the first one seen.
func Build(rows []Row) (*model.Series, Report) {
	rep := Report{Total: len(rows)}
	bars := make([]model.OHLCV, 0, len(rows))
	for _, r := range rows {
		bar, err := r.Parse()
		if err != nil {
			var re *RowError
			if errors.As(err, &re) {
				rep.Defects = append(rep.Defects, re)
			}
			rep.Malformed++
			continue
		}
		bars = append(bars, bar)
	}

	// stable: equal timestamps stay in input order, so the first seen survives dedupe
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].Time.Equal(b.Time) {
			rep.Duplicates++
			continue
		}
		out = append(out, b)
	}
	rep.Kept = len(out)
	return model.NewSeries(out), rep
}
