package rhi

// RenderingCaps describes the limits and supported features of a
// device. A backend fills it once while opening the device; it is
// immutable afterwards. The validation layer uses it as its set of
// validation bounds and never mutates it.
type RenderingCaps struct {
	// ScreenOrigin is the logical location of coordinate (0,0).
	ScreenOrigin ScreenOrigin

	// ClippingRange is the clip-space depth interval.
	ClippingRange ClippingRange

	// ShadingLanguage names the accepted shader language and version,
	// e.g. "GLSL 4.60" or "WGSL".
	ShadingLanguage string

	// Feature booleans. Resolved once at device creation; optional
	// native entry points are folded into these instead of being probed
	// at call sites.
	HasRenderTargets       bool
	Has3DTextures          bool
	HasCubeTextures        bool
	HasTextureArrays       bool
	HasCubeTextureArrays   bool
	HasMultiSampleTextures bool
	HasSamplers            bool
	HasConstantBuffers     bool
	HasStorageBuffers      bool
	HasGeometryShaders     bool
	HasTessellationShaders bool
	HasComputeShaders      bool
	HasInstancing          bool
	HasOffsetInstancing    bool
	HasViewportArrays      bool
	HasStreamOutputs       bool

	// Limits.
	MaxVertices                uint32
	MaxInstances               uint32
	MaxTextureArrayLayers      uint32
	MaxRenderTargetAttachments uint32
	MaxConstantBufferSize      uint32
	MaxPatchVertices           uint32
	Max1DTextureSize           uint32
	Max2DTextureSize           uint32
	Max3DTextureSize           uint32
	MaxCubeTextureSize         uint32
	MaxAnisotropy              uint32
	MaxViewports               uint32
	MaxTextureLayers           uint32

	// MaxComputeWorkGroups is the maximum dispatch grid extent per axis.
	MaxComputeWorkGroups [3]uint32

	// MaxComputeWorkGroupSize is the maximum work group extent per axis.
	MaxComputeWorkGroupSize [3]uint32
}

// ProgramStages returns the stages a device can run given its feature
// booleans. The validation layer intersects binding stage masks with
// this set.
func (c *RenderingCaps) ProgramStages() ShaderStages {
	stages := StageVertex | StageFragment
	if c.HasGeometryShaders {
		stages |= StageGeometry
	}
	if c.HasTessellationShaders {
		stages |= StageTessControl | StageTessEvaluation
	}
	if c.HasComputeShaders {
		stages |= StageCompute
	}
	return stages
}
