package pipeline

import "sync/atomic"

// Metrics holds the pipeline's frame counters.
type Metrics struct {
	Received     atomic.Uint64
	Decoded      atomic.Uint64
	DecodeErrors atomic.Uint64
	Rendered     atomic.Uint64
	RenderErrors atomic.Uint64
}

// NewMetrics creates a zeroed counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() Stats {
	return Stats{
		Received:     m.Received.Load(),
		Decoded:      m.Decoded.Load(),
		DecodeErrors: m.DecodeErrors.Load(),
		Rendered:     m.Rendered.Load(),
		RenderErrors: m.RenderErrors.Load(),
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.Received.Store(0)
	m.Decoded.Store(0)
	m.DecodeErrors.Store(0)
	m.Rendered.Store(0)
	m.RenderErrors.Store(0)
}

// Stats is a point-in-time snapshot of Metrics.
type Stats struct {
	Received     uint64
	Decoded      uint64
	DecodeErrors uint64
	Rendered     uint64
	RenderErrors uint64
}
