package debug

import (
	"github.com/gogpu/rhi"
)

// Option configures a CommandBuffer during New.
type Option func(*CommandBuffer)

// WithDebugger sets the sink receiving validation reports. The default
// logs through the rhi package logger.
func WithDebugger(d rhi.Debugger) Option {
	return func(cb *CommandBuffer) {
		if d != nil {
			cb.dbg = d
		}
	}
}

// WithProfiler sets the sink receiving per-call counter increments.
// Without it no counters are kept.
func WithProfiler(p rhi.Profiler) Option {
	return func(cb *CommandBuffer) {
		cb.prof = p
	}
}

// WithCaps supplies the device capabilities the layer validates
// against. Without it a fully permissive set is assumed and
// capability-dependent checks pass vacuously.
func WithCaps(caps rhi.RenderingCaps) Option {
	return func(cb *CommandBuffer) {
		cb.caps = caps
	}
}

// permissiveCaps is the default validation bound: every feature
// present, every limit at maximum.
func permissiveCaps() rhi.RenderingCaps {
	const maxU32 = ^uint32(0)
	return rhi.RenderingCaps{
		HasRenderTargets:       true,
		Has3DTextures:          true,
		HasCubeTextures:        true,
		HasTextureArrays:       true,
		HasCubeTextureArrays:   true,
		HasMultiSampleTextures: true,
		HasSamplers:            true,
		HasConstantBuffers:     true,
		HasStorageBuffers:      true,
		HasGeometryShaders:     true,
		HasTessellationShaders: true,
		HasComputeShaders:      true,
		HasInstancing:          true,
		HasOffsetInstancing:    true,
		HasViewportArrays:      true,
		HasStreamOutputs:       true,

		MaxVertices:                maxU32,
		MaxInstances:               maxU32,
		MaxTextureArrayLayers:      maxU32,
		MaxRenderTargetAttachments: maxU32,
		MaxConstantBufferSize:      maxU32,
		MaxPatchVertices:           maxU32,
		Max1DTextureSize:           maxU32,
		Max2DTextureSize:           maxU32,
		Max3DTextureSize:           maxU32,
		MaxCubeTextureSize:         maxU32,
		MaxAnisotropy:              maxU32,
		MaxViewports:               maxU32,
		MaxTextureLayers:           maxU32,
		MaxComputeWorkGroups:       [3]uint32{maxU32, maxU32, maxU32},
		MaxComputeWorkGroupSize:    [3]uint32{maxU32, maxU32, maxU32},
	}
}
