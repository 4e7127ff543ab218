// Package series turns raw delimited rows into a validated, time-ordered model.Series.
package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"CandleScope/internal/model"
)

// Header is the case-sensitive column set every tabular source must provide.
var Header = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Row is one unparsed record as read from a source. Line is 1-based and only used
// in defect reports.
type Row struct {
	Line   int
	Date   string
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// RowError describes why a row was dropped.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
}

// Unwrap makes every RowError match model.ErrMalformedRow.
func (e *RowError) Unwrap() error { return model.ErrMalformedRow }

var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-06",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"1/2/2006",
}

// ParseDate accepts the calendar layouts seen in exported price files and unix seconds.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

func parseNumber(field, raw string, line int) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &RowError{Line: line, Field: field, Reason: "missing value"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &RowError{Line: line, Field: field, Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &RowError{Line: line, Field: field, Reason: "not finite"}
	}
	return v, nil
}

// Parse converts a row into a bar, enforcing the OHLC ordering invariant.
func (r Row) Parse() (model.OHLCV, error) {
	ts, ok := ParseDate(r.Date)
	if !ok {
		return model.OHLCV{}, &RowError{Line: r.Line, Field: "Date", Reason: fmt.Sprintf("unparseable date %q", r.Date)}
	}
	bar := model.OHLCV{Time: ts}
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"Open", r.Open, &bar.Open},
		{"High", r.High, &bar.High},
		{"Low", r.Low, &bar.Low},
		{"Close", r.Close, &bar.Close},
		{"Volume", r.Volume, &bar.Volume},
	}
	for _, f := range fields {
		v, err := parseNumber(f.name, f.raw, r.Line)
		if err != nil {
			return model.OHLCV{}, err
		}
		*f.dst = v
	}
	if bar.Volume < 0 {
		return model.OHLCV{}, &RowError{Line: r.Line, Field: "Volume", Reason: "negative volume"}
	}
	if !bar.Valid() {
		return model.OHLCV{}, &RowError{Line: r.Line, Reason: fmt.Sprintf(
			"ohlc ordering violated (o=%g h=%g l=%g c=%g)", bar.Open, bar.High, bar.Low, bar.Close)}
	}
	return bar, nil
}
