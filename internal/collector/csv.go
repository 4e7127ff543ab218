package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"CandleScope/internal/series"
)

// CSVFetcher reads a comma-separated file with a Date,Open,High,Low,Close,Volume header.
// Column order is free; names are case-sensitive.
type CSVFetcher struct {
	Path string
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchRows(ctx context.Context) ([]series.Row, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return ReadCSV(ctx, file)
}

// ReadCSV parses delimited text into rows. A record with the wrong number of fields
// becomes a row with empty cells so series.Build reports it instead of aborting the load.
func ReadCSV(ctx context.Context, r io.Reader) ([]series.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	var rows []series.Row
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rows = append(rows, series.Row{Line: line})
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		get := func(name string) string {
			i := cols[name]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		rows = append(rows, series.Row{
			Line:   line,
			Date:   get("Date"),
			Open:   get("Open"),
			High:   get("High"),
			Low:    get("Low"),
			Close:  get("Close"),
			Volume: get("Volume"),
		})
	}
	return rows, nil
}

func columns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, name := range series.Header {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
