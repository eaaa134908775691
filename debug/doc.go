// Package debug provides an advisory validation layer for command
// buffers.
//
// New wraps any rhi.CommandBuffer in a decorator that checks every call
// against the recorded binding state and the device capabilities before
// forwarding it. Violations are reported to a Debugger sink and never
// block the call: the wrapped implementation receives exactly the
// stream it would have received without the wrapper, making the layer
// safe to enable and disable without behavioral drift.
//
//	cb, _ := device.NewCommandBuffer()
//	cb = debug.New(cb,
//		debug.WithCaps(device.Caps()),
//		debug.WithProfiler(profile),
//	)
//
// The layer also feeds per-frame counters to an optional Profiler.
package debug
