// Package recorder keeps a history of rendered snapshots.
package recorder

import "time"

// Snapshot describes one scheduled load and render.
type Snapshot struct {
	Time       time.Time
	Source     string
	Outcome    string // ok, empty, stale, aborted
	Rows       int
	Kept       int
	Malformed  int
	Duplicates int
	FirstBar   time.Time
	LastBar    time.Time
	LastClose  float64
	Shapes     int
	Output     string
	Error      string
}

// Recorder persists snapshot history for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	Close() error
}
