// Package chart is one interactive chart instance. It owns the series, the zoom
// controller and the overlays, and turns loads and pointer events into DrawModels.
// A Chart runs in a single execution context and is not safe for concurrent use.
package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"CandleScope/internal/calculator"
	"CandleScope/internal/config"
	"CandleScope/internal/layout"
	"CandleScope/internal/metrics"
	"CandleScope/internal/model"
	"CandleScope/internal/overlay"
	"CandleScope/internal/render"
	"CandleScope/internal/scale"
	"CandleScope/internal/series"
	"CandleScope/internal/zoom"
)

var (
	// ErrStaleLoad is returned when a load finishes after a newer one began.
	ErrStaleLoad = errors.New("stale load discarded")
	// ErrLoadPending is returned by Draw while a load is in flight.
	ErrLoadPending = errors.New("load pending")
)

// Chart is a single chart instance.
type Chart struct {
	cfg     config.Chart
	layout  layout.Layout
	style   render.Style
	params  calculator.Params
	log     zerolog.Logger
	metrics *metrics.Recorder

	series    *model.Series
	outputs   calculator.Outputs
	zoom      *zoom.Controller
	crosshair overlay.Crosshair
	editor    *overlay.Editor
	trades    []model.Trade

	generation uint64
	pending    bool
	// annotation drag in progress
	editing bool
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Chart) { c.log = l }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Chart) { c.metrics = m }
}

// New validates cfg and builds an empty chart. Configuration problems are returned
// here, wrapped in model.ErrInvalidConfiguration, before anything is drawn.
func New(cfg config.Chart, opts ...Option) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := layout.Compute(cfg)
	if err != nil {
		return nil, err
	}
	c := &Chart{
		cfg:    cfg,
		layout: l,
		style:  render.NewStyle(cfg),
		params: Params(cfg.Indicators),
		log:    zerolog.Nop(),
		series: model.NewSeries(nil),
		zoom:   zoom.New(cfg, l),
		editor: overlay.NewEditor(cfg.Overlay.HitTolerance),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Params converts configured indicators into pipeline parameters.
func Params(ind config.Indicators) calculator.Params {
	return calculator.Params{
		SMA: append([]int(nil), ind.SMA...),
		EMA: append([]int(nil), ind.EMA...),
		MACD: calculator.MACDParams{
			Enabled: ind.MACD.Enabled,
			Fast:    ind.MACD.Fast,
			Slow:    ind.MACD.Slow,
			Signal:  ind.MACD.Signal,
		},
		RSI: calculator.RSIParams{Enabled: ind.RSI.Enabled, Period: ind.RSI.Period},
	}
}

// Layout returns the resolved geometry.
func (c *Chart) Layout() layout.Layout { return c.layout }

// Series returns the current series.
func (c *Chart) Series() *model.Series { return c.series }

// Indicators returns the indicator outputs for the current series.
func (c *Chart) Indicators() calculator.Outputs { return c.outputs }

// Pending reports whether a load is in flight.
func (c *Chart) Pending() bool { return c.pending }

// Scales returns the current scales of every pane.
func (c *Chart) Scales() scale.Set { return c.zoom.Frame() }

// Zoom exposes the zoom controller state.
func (c *Chart) Zoom() *zoom.Controller { return c.zoom }

// Ticket identifies one load. Only the most recent ticket may complete.
type Ticket struct {
	generation uint64
}

// BeginLoad starts a load and invalidates every earlier ticket.
func (c *Chart) BeginLoad() Ticket {
	c.generation++
	c.pending = true
	c.log.Debug().Uint64("generation", c.generation).Msg("load started")
	return Ticket{generation: c.generation}
}

// AbortLoad ends a failed load. The previous series stays in place.
func (c *Chart) AbortLoad(t Ticket, cause error) {
	if t.generation != c.generation {
		return
	}
	c.pending = false
	c.metrics.RecordOutcome(metrics.OutcomeAborted)
	c.log.Warn().Err(cause).Uint64("generation", t.generation).Msg("load aborted, keeping previous series")
}

// CompleteLoad installs the rows fetched for t. A ticket superseded by a later
// BeginLoad is discarded with ErrStaleLoad. Malformed rows are dropped and reported in
// the returned Report; they never fail the load.
func (c *Chart) CompleteLoad(t Ticket, rows []series.Row) (series.Report, error) {
	if t.generation != c.generation {
		c.metrics.RecordOutcome(metrics.OutcomeStale)
		c.log.Warn().Uint64("generation", t.generation).Uint64("current", c.generation).Msg("discarding stale load")
		return series.Report{}, ErrStaleLoad
	}

	s, rep := series.Build(rows)
	for _, d := range rep.Defects {
		c.log.Debug().Int("line", d.Line).Str("field", d.Field).Msg(d.Reason)
	}

	outputs, err := calculator.Compute(s, c.params)
	if err != nil && !errors.Is(err, model.ErrInsufficientData) {
		c.log.Warn().Err(err).Msg("indicator pipeline degraded")
	}

	var base scale.Set
	if s.Len() > 0 {
		base, err = scale.ComputeBase(s, c.layout)
		if err != nil {
			c.pending = false
			return rep, fmt.Errorf("compute scales: %w", err)
		}
		base = c.indicatorScales(base, outputs)
	}

	c.series = s
	c.outputs = outputs
	c.zoom.Reset(base)
	c.crosshair.Leave()
	c.crosshair.Resume()
	c.editor.Release()
	c.editing = false
	c.pending = false

	outcome := metrics.OutcomeOK
	if s.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	c.metrics.RecordLoad(outcome, rep.Kept, rep.Malformed, rep.Duplicates)
	c.log.Info().
		Uint64("generation", t.generation).
		Int("rows", rep.Total).
		Int("bars", rep.Kept).
		Int("malformed", rep.Malformed).
		Int("duplicates", rep.Duplicates).
		Msg("series loaded")
	return rep, nil
}

// indicatorScales adds the MACD and RSI pane scales to base.
func (c *Chart) indicatorScales(base scale.Set, out calculator.Outputs) scale.Set {
	for _, pane := range c.layout.Panes {
		switch pane.ID {
		case layout.PaneMACD:
			lo, hi := -1.0, 1.0
			if out.MACD != nil {
				if l, h, ok := calculator.DefinedExtent(out.MACD.Line.Values, out.MACD.Signal.Values, out.MACD.Histogram.Values); ok {
					lo, hi = l, h
				}
			}
			base = base.WithIndicator(pane.ID, lo, hi, pane.Rect)
		case layout.PaneRSI:
			base = base.WithIndicator(pane.ID, 0, 100, pane.Rect)
		}
	}
	return base
}

// Draw projects the current frame. While a load is pending it draws nothing and
// returns ErrLoadPending; an empty series yields the explicit empty state.
func (c *Chart) Draw() (render.DrawModel, error) {
	if c.pending {
		return render.DrawModel{}, ErrLoadPending
	}
	began := time.Now()
	if c.series.Len() == 0 {
		return render.Empty(c.layout, c.style), nil
	}

	// every pane's scale comes from one transform snapshot before anything is drawn
	scales := c.zoom.Frame()
	dm := render.Project(render.Input{
		Series:     c.series,
		Scales:     scales,
		Indicators: c.outputs,
		Layout:     c.layout,
		Style:      c.style,
		Trades:     c.trades,
		Trendlines: c.editor.Trendlines(),
		Supstances: c.editor.Supstances(),
	})
	dm.Layers = append(dm.Layers, c.crosshair.Layer(c.layout, c.series, scales, c.outputs, c.style))
	c.metrics.ObserveFrame(time.Since(began))
	return dm, nil
}
