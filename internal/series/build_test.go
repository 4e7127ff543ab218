package series

import (
	"errors"
	"testing"
	"time"

	"CandleScope/internal/model"
)

func TestBuild_SortsAndDedupes(t *testing.T) {
	rows := []Row{
		{Line: 2, Date: "2024-01-03", Open: "11", High: "12", Low: "10", Close: "11.5", Volume: "300"},
		{Line: 3, Date: "2024-01-01", Open: "10", High: "11", Low: "9", Close: "10.5", Volume: "100"},
		{Line: 4, Date: "2024-01-02", Open: "10.5", High: "11", Low: "10", Close: "10", Volume: "200"},
		{Line: 5, Date: "2024-01-01", Open: "50", High: "60", Low: "40", Close: "55", Volume: "999"},
	}
	s, rep := Build(rows)

	if s.Len() != 3 {
		t.Fatalf("expected 3 bars, got %d", s.Len())
	}
	if rep.Duplicates != 1 || rep.Malformed != 0 || rep.Kept != 3 || rep.Total != 4 {
		t.Errorf("unexpected report: %+v", rep)
	}
	for i := 1; i < s.Len(); i++ {
		if !s.At(i - 1).Time.Before(s.At(i).Time) {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
	}
	if s.First().Close != 10.5 {
		t.Errorf("duplicate must keep the first-seen row, got close=%v", s.First().Close)
	}
}

func TestBuild_DropsMalformedRows(t *testing.T) {
	rows := []Row{
		{Line: 2, Date: "2024-01-01", Open: "10", High: "11", Low: "9", Close: "10", Volume: "1"},
		{Line: 3, Date: "not-a-date", Open: "10", High: "11", Low: "9", Close: "10", Volume: "1"},
		{Line: 4, Date: "2024-01-03", Open: "", High: "11", Low: "9", Close: "10", Volume: "1"},
		{Line: 5, Date: "2024-01-04", Open: "10", High: "11", Low: "9", Close: "abc", Volume: "1"},
		{Line: 6, Date: "2024-01-05", Open: "10", High: "9", Low: "8", Close: "10", Volume: "1"},
		{Line: 7, Date: "2024-01-06", Open: "10", High: "11", Low: "9", Close: "10", Volume: "-5"},
		{Line: 8, Date: "2024-01-07", Open: "10", High: "11", Low: "9", Close: "10", Volume: "NaN"},
	}
	s, rep := Build(rows)

	if s.Len() != 1 {
		t.Fatalf("expected 1 surviving bar, got %d", s.Len())
	}
	if rep.Malformed != 6 || len(rep.Defects) != 6 {
		t.Fatalf("expected 6 malformed rows, got %d (%d defects)", rep.Malformed, len(rep.Defects))
	}
	if !errors.Is(rep.Err(), model.ErrMalformedRow) {
		t.Error("report error must match ErrMalformedRow")
	}
	if rep.Defects[1].Line != 4 || rep.Defects[1].Field != "Open" {
		t.Errorf("unexpected defect: %v", rep.Defects[1])
	}
}

func TestBuild_InvariantHoldsForKeptBars(t *testing.T) {
	rows := []Row{
		{Line: 1, Date: "2024-02-01", Open: "5", High: "7", Low: "4", Close: "6", Volume: "0"},
		{Line: 2, Date: "2024-02-02", Open: "6", High: "6", Low: "6", Close: "6", Volume: "10"},
		{Line: 3, Date: "2024-02-03", Open: "6", High: "5", Low: "7", Close: "6", Volume: "10"},
	}
	s, _ := Build(rows)
	for i := 0; i < s.Len(); i++ {
		b := s.At(i)
		lo, hi := b.Open, b.Close
		if lo > hi {
			lo, hi = hi, lo
		}
		if !(b.Low <= lo && lo <= hi && hi <= b.High) {
			t.Errorf("bar %d violates the OHLC invariant: %+v", i, b)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	s, rep := Build(nil)
	if s.Len() != 0 || rep.Err() != nil {
		t.Errorf("expected empty clean build, got len=%d err=%v", s.Len(), rep.Err())
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2014, 3, 11, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2014-03-11", "11-Mar-14", "2014-03-11T00:00:00Z", "1394496000", "3/11/2014"} {
		got, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q) failed", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, ok := ParseDate(""); ok {
		t.Error("empty date must not parse")
	}
}
