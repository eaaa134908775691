package gl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
)

// glVersion is a parsed context version.
type glVersion struct {
	major int
	minor int
}

// atLeast reports whether the context version is >= major.minor.
func (v glVersion) atLeast(major, minor int) bool {
	return v.major > major || (v.major == major && v.minor >= minor)
}

func (v glVersion) String() string {
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// parseVersion extracts "major.minor" from a GL_VERSION string. Vendor
// strings append driver details after the version, e.g.
// "4.6.0 NVIDIA 535.86.05".
func parseVersion(s string) (glVersion, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 2)
	parts := strings.Split(fields[0], ".")
	if len(parts) < 2 {
		return glVersion{}, fmt.Errorf("gl: malformed version string %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return glVersion{}, fmt.Errorf("gl: malformed version string %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return glVersion{}, fmt.Errorf("gl: malformed version string %q", s)
	}
	return glVersion{major: major, minor: minor}, nil
}

// detectFeatures resolves the optional entry points from the context
// version. The booleans gate array and indexed call forms for the
// lifetime of the device.
func detectFeatures(v glVersion) Features {
	return Features{
		HasViewportArrays:   v.atLeast(4, 1),
		HasDrawBuffersBlend: v.atLeast(4, 0),
		HasClipControl:      v.atLeast(4, 5),
		HasBaseInstance:     v.atLeast(4, 2),
		HasComputeShaders:   v.atLeast(4, 3),
	}
}

// queryCaps fills a RenderingCaps from the live context. Called once
// while the device opens; the result is immutable afterwards.
func queryCaps(fns Functions, v glVersion, feats Features) rhi.RenderingCaps {
	caps := rhi.RenderingCaps{
		ScreenOrigin:    rhi.OriginLowerLeft,
		ClippingRange:   rhi.ClipMinusOneToOne,
		ShadingLanguage: "GLSL " + strings.TrimSpace(fns.GetString(gl.SHADING_LANGUAGE_VERSION)),

		HasRenderTargets:       true,
		Has3DTextures:          true,
		HasCubeTextures:        true,
		HasTextureArrays:       true,
		HasCubeTextureArrays:   v.atLeast(4, 0),
		HasMultiSampleTextures: true,
		HasSamplers:            true,
		HasConstantBuffers:     true,
		HasStorageBuffers:      v.atLeast(4, 3),
		HasGeometryShaders:     true,
		HasTessellationShaders: v.atLeast(4, 0),
		HasComputeShaders:      feats.HasComputeShaders,
		HasInstancing:          true,
		HasOffsetInstancing:    feats.HasBaseInstance,
		HasViewportArrays:      feats.HasViewportArrays,
		HasStreamOutputs:       true,

		MaxVertices:                uint32(fns.GetInteger(gl.MAX_ELEMENTS_VERTICES)),
		MaxInstances:               ^uint32(0),
		MaxTextureArrayLayers:      uint32(fns.GetInteger(gl.MAX_ARRAY_TEXTURE_LAYERS)),
		MaxRenderTargetAttachments: uint32(fns.GetInteger(gl.MAX_DRAW_BUFFERS)),
		MaxConstantBufferSize:      uint32(fns.GetInteger(gl.MAX_UNIFORM_BLOCK_SIZE)),
		Max1DTextureSize:           uint32(fns.GetInteger(gl.MAX_TEXTURE_SIZE)),
		Max2DTextureSize:           uint32(fns.GetInteger(gl.MAX_TEXTURE_SIZE)),
		Max3DTextureSize:           uint32(fns.GetInteger(gl.MAX_3D_TEXTURE_SIZE)),
		MaxCubeTextureSize:         uint32(fns.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE)),
		MaxAnisotropy:              16,
		MaxTextureLayers:           uint32(fns.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)),
	}
	if feats.HasViewportArrays {
		caps.MaxViewports = uint32(fns.GetInteger(gl.MAX_VIEWPORTS))
	} else {
		caps.MaxViewports = 1
	}
	if v.atLeast(4, 0) {
		caps.MaxPatchVertices = uint32(fns.GetInteger(gl.MAX_PATCH_VERTICES))
	}
	if feats.HasComputeShaders {
		for i := uint32(0); i < 3; i++ {
			caps.MaxComputeWorkGroups[i] = uint32(fns.GetIntegerIndexed(gl.MAX_COMPUTE_WORK_GROUP_COUNT, i))
			caps.MaxComputeWorkGroupSize[i] = uint32(fns.GetIntegerIndexed(gl.MAX_COMPUTE_WORK_GROUP_SIZE, i))
		}
	}
	return caps
}
