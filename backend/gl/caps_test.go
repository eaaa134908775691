package gl

import (
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		major   int
		minor   int
		wantErr bool
	}{
		{in: "4.6.0 NVIDIA 535.86.05", major: 4, minor: 6},
		{in: "4.1 Metal - 88.1", major: 4, minor: 1},
		{in: "3.3.0", major: 3, minor: 3},
		{in: "garbage", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		v, err := parseVersion(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseVersion(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVersion(%q) failed: %v", tt.in, err)
			continue
		}
		if v.major != tt.major || v.minor != tt.minor {
			t.Errorf("parseVersion(%q) = %d.%d, want %d.%d", tt.in, v.major, v.minor, tt.major, tt.minor)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	v := glVersion{major: 4, minor: 1}
	if !v.atLeast(3, 3) || !v.atLeast(4, 0) || !v.atLeast(4, 1) {
		t.Error("atLeast rejects satisfied requirements")
	}
	if v.atLeast(4, 2) || v.atLeast(5, 0) {
		t.Error("atLeast accepts unsatisfied requirements")
	}
}

func TestDetectFeatures(t *testing.T) {
	full := detectFeatures(glVersion{major: 4, minor: 6})
	if !full.HasViewportArrays || !full.HasDrawBuffersBlend || !full.HasClipControl ||
		!full.HasBaseInstance || !full.HasComputeShaders {
		t.Errorf("detectFeatures(4.6) = %+v, want everything on", full)
	}

	old := detectFeatures(glVersion{major: 3, minor: 3})
	if old.HasViewportArrays || old.HasClipControl || old.HasComputeShaders {
		t.Errorf("detectFeatures(3.3) = %+v, want everything off", old)
	}

	mid := detectFeatures(glVersion{major: 4, minor: 1})
	if !mid.HasViewportArrays || !mid.HasDrawBuffersBlend {
		t.Errorf("detectFeatures(4.1) = %+v, want viewport arrays and drawbuffers blend", mid)
	}
	if mid.HasClipControl || mid.HasComputeShaders {
		t.Errorf("detectFeatures(4.1) = %+v, want no clip control or compute", mid)
	}
}

func TestQueryCaps(t *testing.T) {
	fns := newRecordingFuncs()
	fns.strs[gl.SHADING_LANGUAGE_VERSION] = "4.60"
	fns.integers[gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS] = 48
	fns.integers[gl.MAX_DRAW_BUFFERS] = 8
	fns.integers[gl.MAX_VIEWPORTS] = 16
	fns.integers[gl.MAX_COMPUTE_WORK_GROUP_COUNT] = 65535

	v := glVersion{major: 4, minor: 6}
	caps := queryCaps(fns, v, detectFeatures(v))

	if caps.ScreenOrigin != rhi.OriginLowerLeft {
		t.Errorf("ScreenOrigin = %v, want LowerLeft", caps.ScreenOrigin)
	}
	if caps.ClippingRange != rhi.ClipMinusOneToOne {
		t.Errorf("ClippingRange = %v, want MinusOneToOne", caps.ClippingRange)
	}
	if caps.ShadingLanguage != "GLSL 4.60" {
		t.Errorf("ShadingLanguage = %q, want %q", caps.ShadingLanguage, "GLSL 4.60")
	}
	if caps.MaxTextureLayers != 48 {
		t.Errorf("MaxTextureLayers = %d, want 48", caps.MaxTextureLayers)
	}
	if caps.MaxViewports != 16 {
		t.Errorf("MaxViewports = %d, want 16", caps.MaxViewports)
	}
	if caps.MaxComputeWorkGroups[0] != 65535 {
		t.Errorf("MaxComputeWorkGroups[0] = %d, want 65535", caps.MaxComputeWorkGroups[0])
	}
	if !caps.HasComputeShaders || !caps.HasViewportArrays {
		t.Error("4.6 caps missing compute or viewport arrays")
	}
}

func TestQueryCapsOldContext(t *testing.T) {
	fns := newRecordingFuncs()
	v := glVersion{major: 3, minor: 3}
	caps := queryCaps(fns, v, detectFeatures(v))

	if caps.MaxViewports != 1 {
		t.Errorf("MaxViewports = %d without array support, want 1", caps.MaxViewports)
	}
	if caps.HasComputeShaders || caps.HasStorageBuffers || caps.HasTessellationShaders {
		t.Error("3.3 caps report features the context cannot have")
	}
	if caps.MaxComputeWorkGroups != [3]uint32{} {
		t.Errorf("MaxComputeWorkGroups = %v without compute, want zeros", caps.MaxComputeWorkGroups)
	}
}
