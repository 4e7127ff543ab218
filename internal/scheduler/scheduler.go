// Package scheduler reloads the chart on a cron schedule and exports a snapshot after
// every load.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"CandleScope/internal/chart"
	"CandleScope/internal/collector"
	"CandleScope/internal/export"
	"CandleScope/internal/metrics"
	"CandleScope/internal/recorder"
	"CandleScope/internal/series"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages the reload job.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Chart     *chart.Chart
	Recorder  recorder.Recorder
	Output    string
	Format    export.Format
	Ctx       context.Context

	log zerolog.Logger
	// chart is single-threaded; mu serializes every call into it
	mu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, ch *chart.Chart, rec recorder.Recorder,
	output string, format export.Format, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Chart:     ch,
		Recorder:  rec,
		Output:    output,
		Format:    format,
		Ctx:       ctx,
		log:       log,
	}
}

// Register adds the reload job. Expressions take six fields, seconds first.
func (s *Scheduler) Register(reloadCron string) error {
	if _, err := s.Cron.AddFunc(reloadCron, s.reloadTask); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) reloadTask() {
	if _, err := s.RunNow(); err != nil {
		s.log.Error().Err(err).Msg("reload failed")
	}
}

// RunNow performs one load, render and export. The fetch runs outside the lock so a
// slow source never blocks other chart calls; a newer load started meanwhile makes
// this one stale.
func (s *Scheduler) RunNow() (*recorder.Snapshot, error) {
	snap := &recorder.Snapshot{Time: time.Now(), Source: s.Collector.Fetcher.Name()}

	s.mu.Lock()
	ticket := s.Chart.BeginLoad()
	s.mu.Unlock()

	rows, fetchErr := s.Collector.Collect(s.Ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.run(ticket, rows, fetchErr, snap)
	if err != nil {
		snap.Error = err.Error()
	}
	if recErr := s.Recorder.RecordSnapshot(snap); recErr != nil {
		s.log.Error().Err(recErr).Msg("record snapshot")
	}
	return snap, err
}

func (s *Scheduler) run(ticket chart.Ticket, rows []series.Row, fetchErr error, snap *recorder.Snapshot) error {
	snap.Rows = len(rows)
	if fetchErr != nil {
		s.Chart.AbortLoad(ticket, fetchErr)
		snap.Outcome = metrics.OutcomeAborted
		return fetchErr
	}

	rep, err := s.Chart.CompleteLoad(ticket, rows)
	if errors.Is(err, chart.ErrStaleLoad) {
		snap.Outcome = metrics.OutcomeStale
		return nil
	}
	if err != nil {
		snap.Outcome = metrics.OutcomeAborted
		return err
	}
	snap.Kept, snap.Malformed, snap.Duplicates = rep.Kept, rep.Malformed, rep.Duplicates

	snap.Outcome = metrics.OutcomeOK
	if sr := s.Chart.Series(); sr.Len() > 0 {
		snap.FirstBar = sr.First().Time
		snap.LastBar = sr.Last().Time
		snap.LastClose = sr.Last().Close
	} else {
		snap.Outcome = metrics.OutcomeEmpty
	}

	dm, err := s.Chart.Draw()
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	snap.Shapes = dm.ShapeCount()
	if err := export.WriteFile(s.Output, dm, s.Format); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	snap.Output = s.Output

	s.log.Info().
		Str("source", snap.Source).
		Int("bars", snap.Kept).
		Int("malformed", snap.Malformed).
		Int("shapes", snap.Shapes).
		Str("output", s.Output).
		Msg("snapshot written")
	return nil
}
