package collector

import (
	"context"
	"fmt"
	"time"

	"CandleScope/internal/config"
	"CandleScope/internal/series"
)

// Fetcher produces the raw rows of one data load. Rows are returned unparsed;
// validation and ordering belong to series.Build.
type Fetcher interface {
	FetchRows(ctx context.Context) ([]series.Row, error)
	Name() string
}

// NewFetcher builds the fetcher selected by source.kind.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	src := cfg.Source
	switch src.Kind {
	case "csv":
		return &CSVFetcher{Path: src.Path}, nil
	case "sqlite":
		return &SQLiteFetcher{Path: src.Path, Table: src.Table, Limit: src.Bars}, nil
	case "yahoo":
		f := NewYahooFetcher(src.Proxy)
		f.Symbol = src.Symbol
		f.Range = src.Range
		f.Limit = src.Bars
		return f, nil
	case "mock":
		return &MockFetcher{
			Start: time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -src.Bars),
			Price: 100,
			Count: src.Bars,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}
