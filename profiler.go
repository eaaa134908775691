package rhi

import "sync/atomic"

// Metric identifies one profiling counter.
type Metric uint8

const (
	MetricDrawCalls Metric = iota
	MetricDispatches
	MetricBufferUpdates
	MetricBufferBindings
	MetricTextureBindings
	MetricSamplerBindings
	MetricRenderTargetBindings
	MetricGraphicsPipelineBindings
	MetricComputePipelineBindings
	MetricStreamOutputSections
	MetricQuerySections

	numMetrics
)

// metricNames is keyed by Metric ordinal.
var metricNames = [numMetrics]string{
	MetricDrawCalls:                "DrawCalls",
	MetricDispatches:               "Dispatches",
	MetricBufferUpdates:            "BufferUpdates",
	MetricBufferBindings:           "BufferBindings",
	MetricTextureBindings:          "TextureBindings",
	MetricSamplerBindings:          "SamplerBindings",
	MetricRenderTargetBindings:     "RenderTargetBindings",
	MetricGraphicsPipelineBindings: "GraphicsPipelineBindings",
	MetricComputePipelineBindings:  "ComputePipelineBindings",
	MetricStreamOutputSections:     "StreamOutputSections",
	MetricQuerySections:            "QuerySections",
}

// String returns the string representation of a Metric.
func (m Metric) String() string {
	if int(m) < len(metricNames) {
		return metricNames[m]
	}
	return "Unknown"
}

// Profiler receives per-metric increment signals from the validation
// layer. Increments are fire-and-forget; Reset is expected once per
// frame and is performed by the external caller, never by rhi itself.
type Profiler interface {
	Add(metric Metric, delta uint64)
	Reset()
}

// FrameProfile is the standard Profiler: a set of atomic counters that
// a frame loop reads and resets once per frame.
//
// FrameProfile is safe for concurrent use, so independently wrapped
// command buffers may share one profile.
type FrameProfile struct {
	counters [numMetrics]atomic.Uint64
}

// NewFrameProfile creates an empty frame profile.
func NewFrameProfile() *FrameProfile {
	return &FrameProfile{}
}

// Add implements Profiler.
func (p *FrameProfile) Add(metric Metric, delta uint64) {
	if int(metric) < len(p.counters) {
		p.counters[metric].Add(delta)
	}
}

// Value returns the current count of a metric.
func (p *FrameProfile) Value(metric Metric) uint64 {
	if int(metric) < len(p.counters) {
		return p.counters[metric].Load()
	}
	return 0
}

// Reset implements Profiler, zeroing every counter.
func (p *FrameProfile) Reset() {
	for i := range p.counters {
		p.counters[i].Store(0)
	}
}

// Snapshot returns all counters keyed by metric name, for logging or
// display.
func (p *FrameProfile) Snapshot() map[string]uint64 {
	out := make(map[string]uint64, numMetrics)
	for i := range p.counters {
		out[Metric(i).String()] = p.counters[i].Load()
	}
	return out
}
