package collector

import (
	"context"
	"fmt"
	"time"

	"CandleScope/internal/metrics"
	"CandleScope/internal/series"

	"github.com/rs/zerolog"
)

// Collector wraps a Fetcher with logging and fetch timing.
type Collector struct {
	Fetcher Fetcher
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// NewCollector creates a new Collector. m may be nil.
func NewCollector(fetcher Fetcher, log zerolog.Logger, m *metrics.Recorder) *Collector {
	return &Collector{Fetcher: fetcher, log: log, metrics: m}
}

// Collect fetches the raw rows of one load.
func (c *Collector) Collect(ctx context.Context) ([]series.Row, error) {
	start := time.Now()
	rows, err := c.Fetcher.FetchRows(ctx)
	elapsed := time.Since(start)
	c.metrics.ObserveFetch(c.Fetcher.Name(), elapsed)
	if err != nil {
		c.log.Error().Err(err).Str("source", c.Fetcher.Name()).Msg("fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", c.Fetcher.Name(), err)
	}
	c.log.Debug().
		Str("source", c.Fetcher.Name()).
		Int("rows", len(rows)).
		Dur("elapsed", elapsed).
		Msg("rows fetched")
	return rows, nil
}
