package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CandleScope/internal/chart"
	"CandleScope/internal/collector"
	"CandleScope/internal/config"
	"CandleScope/internal/export"
	"CandleScope/internal/logger"
	"CandleScope/internal/metrics"
	"CandleScope/internal/model"
	"CandleScope/internal/recorder"
	"CandleScope/internal/scheduler"
	"CandleScope/internal/series"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	importPath := flag.String("import", "", "seed the sqlite source from a CSV file and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		fatal(err, "config validation")
	}

	log, closer, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fatal(err, "init logger")
	}
	defer closer.Close()
	log.Info().Str("config", cfgPath).Msg("CandleScope starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *importPath != "" {
		if err := importCSV(ctx, cfg, *importPath, log); err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
		return
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, reg, log)
		srv.Start()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Stop(shutdownCtx)
		}()
	}

	// Init fetcher
	fetcher, err := collector.NewFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")
	col := collector.NewCollector(fetcher, log, m)

	ch, err := chart.New(cfg.Chart, chart.WithLogger(log), chart.WithMetrics(m))
	if err != nil {
		log.Fatal().Err(err).Msg("init chart")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.History.DBPath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.History.DBPath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sched := scheduler.NewScheduler(ctx, col, ch, rec, cfg.Output.Path, export.FormatOf(cfg.Output.Format), log)

	// Without a reload schedule, render once and exit.
	if cfg.Schedule.ReloadCron == "" {
		if _, err := sched.RunNow(); err != nil {
			log.Error().Err(err).Msg("snapshot failed")
			os.Exit(1)
		}
		return
	}

	if err := sched.Register(cfg.Schedule.ReloadCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if _, err := sched.RunNow(); err != nil {
			log.Error().Err(err).Msg("initial snapshot failed")
		}
	}()

	log.Info().Str("cron", cfg.Schedule.ReloadCron).Msg("CandleScope is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}

// importCSV parses a CSV file and stores the valid bars in the configured sqlite table.
func importCSV(ctx context.Context, cfg *config.Config, path string, log zerolog.Logger) error {
	if cfg.Source.Kind != "sqlite" {
		return fmt.Errorf("import needs source.kind sqlite, have %q", cfg.Source.Kind)
	}
	rows, err := (&collector.CSVFetcher{Path: path}).FetchRows(ctx)
	if err != nil {
		return err
	}
	s, rep := series.Build(rows)
	bars := make([]model.OHLCV, s.Len())
	for i := range bars {
		bars[i] = s.At(i)
	}
	dst := &collector.SQLiteFetcher{Path: cfg.Source.Path, Table: cfg.Source.Table}
	if err := dst.Store(ctx, bars); err != nil {
		return err
	}
	log.Info().
		Str("file", path).
		Str("db", cfg.Source.Path).
		Int("bars", rep.Kept).
		Int("malformed", rep.Malformed).
		Int("duplicates", rep.Duplicates).
		Msg("import complete")
	return nil
}

func fatal(err error, msg string) {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	l.Fatal().Err(err).Msg(msg)
}
