// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesCapturedTotal counts frames handed over by the capture source.
	FramesCapturedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strix_frames_captured_total",
			Help: "Total number of frames read from the capture source",
		},
		[]string{"source"},
	)

	// FramesDecodedTotal counts frames that passed all three decode stages.
	FramesDecodedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strix_frames_decoded_total",
			Help: "Total number of frames decoded through Ethernet, IPv4 and TCP",
		},
	)

	// DecodeErrorsTotal counts frames rejected by a decode stage.
	DecodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strix_decode_errors_total",
			Help: "Total number of frames that failed decoding",
		},
		[]string{"reason"},
	)

	// FramesRenderedTotal counts reports written to the sink.
	FramesRenderedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strix_frames_rendered_total",
			Help: "Total number of frame reports rendered",
		},
	)

	// RenderErrorsTotal counts sink write failures.
	RenderErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strix_render_errors_total",
			Help: "Total number of failed report writes",
		},
	)

	// KernelFramesReceived mirrors the kernel-side receive counter of the
	// capture socket, sampled when the pipeline stops.
	KernelFramesReceived = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "strix_kernel_frames_received",
			Help: "Frames the kernel delivered to the capture socket",
		},
		[]string{"source"},
	)

	// KernelFramesDropped mirrors the kernel-side drop counter of the
	// capture socket, sampled when the pipeline stops.
	KernelFramesDropped = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "strix_kernel_frames_dropped",
			Help: "Frames the kernel dropped before the capture socket read them",
		},
		[]string{"source"},
	)
)
