// Package pipeline implements the frame processing loop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/strixcap/strix/internal/core"
	"github.com/strixcap/strix/internal/core/decoder"
	"github.com/strixcap/strix/internal/log"
	"github.com/strixcap/strix/internal/metrics"
	"github.com/strixcap/strix/internal/source"
)

// Sink consumes decoded frames.
type Sink interface {
	Render(frame core.DecodedFrame) error
}

// Pipeline drives the synchronous capture loop: read one frame, decode
// it, render the report, repeat. The source's receive buffer is reused
// across iterations, so a frame is never retained past its own turn.
type Pipeline struct {
	source  source.Source
	decoder decoder.Decoder
	sink    Sink
	label   string
	metrics *Metrics
}

// Config wires the pipeline stages together.
type Config struct {
	Source  source.Source
	Decoder decoder.Decoder
	Sink    Sink
	// SourceLabel tags exported metrics, normally the source type name.
	SourceLabel string
}

// New creates a pipeline from cfg.
func New(cfg Config) *Pipeline {
	label := cfg.SourceLabel
	if label == "" {
		label = "unknown"
	}
	return &Pipeline{
		source:  cfg.Source,
		decoder: cfg.Decoder,
		sink:    cfg.Sink,
		label:   label,
		metrics: NewMetrics(),
	}
}

// Run starts the source and processes frames until the context is
// cancelled, the source is exhausted, or reading fails outright. A decode
// failure skips the frame and the loop continues.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.source.Start(ctx); err != nil {
		return fmt.Errorf("start source: %w", err)
	}
	defer p.source.Stop()

	logger := log.GetLogger()
	logger.WithField("source", p.label).Info("capture loop started")
	// Summary runs before source.Stop so kernel counters are still
	// readable.
	defer p.logSummary(logger)

	for {
		if ctx.Err() != nil {
			return nil
		}

		raw, err := p.source.ReadFrame()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				logger.Info("capture source exhausted")
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil
			default:
				return fmt.Errorf("read frame: %w", err)
			}
		}
		p.metrics.Received.Add(1)
		metrics.FramesCapturedTotal.WithLabelValues(p.label).Inc()

		decoded, err := p.decoder.Decode(raw)
		if err != nil {
			p.metrics.DecodeErrors.Add(1)
			metrics.DecodeErrorsTotal.WithLabelValues(decodeReason(err)).Inc()
			logger.WithError(err).Debug("frame not decodable")
			continue
		}
		p.metrics.Decoded.Add(1)
		metrics.FramesDecodedTotal.Inc()

		if err := p.sink.Render(decoded); err != nil {
			p.metrics.RenderErrors.Add(1)
			metrics.RenderErrorsTotal.Inc()
			logger.WithError(err).Warn("report write failed")
			continue
		}
		p.metrics.Rendered.Add(1)
		metrics.FramesRenderedTotal.Inc()
	}
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return p.metrics.Snapshot()
}

// logSummary reports final counters, including kernel-side numbers when
// the source tracks them.
func (p *Pipeline) logSummary(logger log.Logger) {
	stats := p.Stats()
	fields := map[string]interface{}{
		"received":      stats.Received,
		"decoded":       stats.Decoded,
		"decode_errors": stats.DecodeErrors,
		"rendered":      stats.Rendered,
		"render_errors": stats.RenderErrors,
	}
	if sr, ok := p.source.(source.StatsReporter); ok {
		if ks, err := sr.Stats(); err == nil {
			fields["kernel_received"] = ks.Received
			fields["kernel_dropped"] = ks.Dropped
			metrics.KernelFramesReceived.WithLabelValues(p.label).Set(float64(ks.Received))
			metrics.KernelFramesDropped.WithLabelValues(p.label).Set(float64(ks.Dropped))
		}
	}
	logger.WithFields(fields).Info("capture loop stopped")
}

// decodeReason maps a decode failure onto its metrics label.
func decodeReason(err error) string {
	switch {
	case errors.Is(err, core.ErrFrameTruncated):
		return "truncated"
	case errors.Is(err, core.ErrInvalidHeaderLength):
		return "invalid_header_length"
	default:
		return "other"
	}
}
