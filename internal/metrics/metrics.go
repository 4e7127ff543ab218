// Package metrics exposes Prometheus collectors for chart loads, frames and gestures.
// Every method is safe on a nil *Recorder so the chart library can run without metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the chart collectors.
type Recorder struct {
	loads         *prometheus.CounterVec
	rows          *prometheus.CounterVec
	bars          prometheus.Gauge
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	gestures      *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "candlescope_loads_total",
			Help: "Data loads by outcome",
		}, []string{"outcome"}),
		rows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "candlescope_rows_total",
			Help: "Raw rows seen by loads, by disposition",
		}, []string{"disposition"}),
		bars: f.NewGauge(prometheus.GaugeOpts{
			Name: "candlescope_series_bars",
			Help: "Bars in the current series",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "candlescope_frames_total",
			Help: "Draw models projected",
		}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "candlescope_frame_duration_seconds",
			Help:    "Time to project one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		gestures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "candlescope_gestures_total",
			Help: "Pointer gestures handled, by kind",
		}, []string{"kind"}),
		fetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "candlescope_fetch_duration_seconds",
			Help:    "Source fetch duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
	}
}

// Load outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeStale   = "stale"
	OutcomeAborted = "aborted"
	OutcomeEmpty   = "empty"
)

// RecordLoad counts a finished load and its row dispositions.
func (r *Recorder) RecordLoad(outcome string, kept, malformed, duplicates int) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(outcome).Inc()
	r.rows.WithLabelValues("kept").Add(float64(kept))
	r.rows.WithLabelValues("malformed").Add(float64(malformed))
	r.rows.WithLabelValues("duplicate").Add(float64(duplicates))
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		r.bars.Set(float64(kept))
	}
}

// RecordOutcome counts a load that produced no rows to report.
func (r *Recorder) RecordOutcome(outcome string) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(outcome).Inc()
}

// ObserveFrame records one projected frame.
func (r *Recorder) ObserveFrame(d time.Duration) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.frameDuration.Observe(d.Seconds())
}

// RecordGesture counts a gesture of the given kind (drag, wheel, pinch, annotation, reset).
func (r *Recorder) RecordGesture(kind string) {
	if r == nil {
		return
	}
	r.gestures.WithLabelValues(kind).Inc()
}

// ObserveFetch records how long a source took.
func (r *Recorder) ObserveFetch(source string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}
