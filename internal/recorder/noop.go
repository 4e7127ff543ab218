package recorder

// NoopRecorder is used when no history database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *Snapshot) error { return nil }
func (n *NoopRecorder) Close() error                    { return nil }
