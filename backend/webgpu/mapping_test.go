// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

func TestMapFormatCoversEveryMember(t *testing.T) {
	unsupported := map[rhi.Format]bool{
		rhi.FormatUnknown:  true,
		rhi.FormatRGBADXT1: true,
		rhi.FormatRGBADXT3: true,
		rhi.FormatRGBADXT5: true,
	}
	for f := rhi.FormatUnknown; f <= rhi.FormatRGBADXT5; f++ {
		_, err := MapFormat(f)
		if unsupported[f] {
			if !errors.Is(err, rhi.ErrUnsupportedMapping) {
				t.Errorf("MapFormat(%s) error = %v, want ErrUnsupportedMapping", f, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("MapFormat(%s) error = %v", f, err)
		}
	}
}

func TestMapFormatDistinct(t *testing.T) {
	seen := make(map[gputypes.TextureFormat]rhi.Format)
	for f := rhi.FormatR8; f <= rhi.FormatDepth24Stencil8; f++ {
		native, err := MapFormat(f)
		if err != nil {
			t.Fatalf("MapFormat(%s): %v", f, err)
		}
		if prev, dup := seen[native]; dup {
			t.Errorf("MapFormat(%s) collides with MapFormat(%s)", f, prev)
		}
		seen[native] = f
	}
}

func TestMapTopology(t *testing.T) {
	supported := map[rhi.PrimitiveTopology]bool{
		rhi.TopologyPointList:     true,
		rhi.TopologyLineList:      true,
		rhi.TopologyLineStrip:     true,
		rhi.TopologyTriangleList:  true,
		rhi.TopologyTriangleStrip: true,
	}
	for top := rhi.TopologyPointList; top <= rhi.TopologyPatches; top++ {
		_, err := MapTopology(top)
		if supported[top] && err != nil {
			t.Errorf("MapTopology(%s) error = %v", top, err)
		}
		if !supported[top] && !errors.Is(err, rhi.ErrUnsupportedMapping) {
			t.Errorf("MapTopology(%s) error = %v, want ErrUnsupportedMapping", top, err)
		}
	}
}

func TestMapCompareFuncCoversEveryMember(t *testing.T) {
	for f := rhi.CompareNever; f <= rhi.CompareAlways; f++ {
		if _, err := MapCompareFunc(f); err != nil {
			t.Errorf("MapCompareFunc(%d) error = %v", f, err)
		}
	}
	if _, err := MapCompareFunc(rhi.CompareFunc(200)); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("MapCompareFunc(200) error = %v, want ErrUnsupportedMapping", err)
	}
}

func TestMapStencilOpCoversEveryMember(t *testing.T) {
	for op := rhi.StencilKeep; op <= rhi.StencilDecWrap; op++ {
		if _, err := MapStencilOp(op); err != nil {
			t.Errorf("MapStencilOp(%d) error = %v", op, err)
		}
	}
	if _, err := MapStencilOp(rhi.StencilOp(200)); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("MapStencilOp(200) error = %v, want ErrUnsupportedMapping", err)
	}
}

func TestMapBlendCoversEveryMember(t *testing.T) {
	for f := rhi.BlendZero; f <= rhi.BlendOneMinusDstAlpha; f++ {
		if _, err := MapBlendFactor(f); err != nil {
			t.Errorf("MapBlendFactor(%d) error = %v", f, err)
		}
	}
	for op := rhi.BlendAdd; op <= rhi.BlendMax; op++ {
		if _, err := MapBlendOp(op); err != nil {
			t.Errorf("MapBlendOp(%d) error = %v", op, err)
		}
	}
	if _, err := MapBlendFactor(rhi.BlendFactor(200)); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("MapBlendFactor(200) error = %v, want ErrUnsupportedMapping", err)
	}
	if _, err := MapBlendOp(rhi.BlendOp(200)); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("MapBlendOp(200) error = %v, want ErrUnsupportedMapping", err)
	}
}

func TestMapCullModeAndIndexFormat(t *testing.T) {
	for m := rhi.CullNone; m <= rhi.CullBack; m++ {
		if _, err := MapCullMode(m); err != nil {
			t.Errorf("MapCullMode(%d) error = %v", m, err)
		}
	}
	if _, err := MapIndexFormat(rhi.IndexUint16); err != nil {
		t.Errorf("MapIndexFormat(IndexUint16) error = %v", err)
	}
	if _, err := MapIndexFormat(rhi.IndexUint32); err != nil {
		t.Errorf("MapIndexFormat(IndexUint32) error = %v", err)
	}
}

func TestMapAddressModeBorderUnsupported(t *testing.T) {
	for m := rhi.WrapRepeat; m <= rhi.WrapClamp; m++ {
		if _, err := MapAddressMode(m); err != nil {
			t.Errorf("MapAddressMode(%d) error = %v", m, err)
		}
	}
	if _, err := MapAddressMode(rhi.WrapBorder); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("MapAddressMode(WrapBorder) error = %v, want ErrUnsupportedMapping", err)
	}
}

func TestMapVertexFormat(t *testing.T) {
	tests := []struct {
		dataType   rhi.DataType
		components uint32
		normalized bool
		ok         bool
	}{
		{rhi.DataFloat32, 1, false, true},
		{rhi.DataFloat32, 2, false, true},
		{rhi.DataFloat32, 3, false, true},
		{rhi.DataFloat32, 4, false, true},
		{rhi.DataFloat16, 2, false, true},
		{rhi.DataFloat16, 4, false, true},
		{rhi.DataFloat16, 3, false, false},
		{rhi.DataInt32, 3, false, true},
		{rhi.DataUint32, 1, false, true},
		{rhi.DataInt8, 2, false, true},
		{rhi.DataInt8, 4, true, true},
		{rhi.DataInt8, 3, false, false},
		{rhi.DataUint8, 4, true, true},
		{rhi.DataInt16, 2, true, true},
		{rhi.DataUint16, 4, false, true},
		{rhi.DataUint16, 1, false, false},
		{rhi.DataFloat64, 1, false, false},
	}
	for _, tt := range tests {
		_, err := MapVertexFormat(tt.dataType, tt.components, tt.normalized)
		if tt.ok && err != nil {
			t.Errorf("MapVertexFormat(%s, %d, %v) error = %v", tt.dataType, tt.components, tt.normalized, err)
		}
		if !tt.ok && !errors.Is(err, rhi.ErrUnsupportedMapping) {
			t.Errorf("MapVertexFormat(%s, %d, %v) error = %v, want ErrUnsupportedMapping",
				tt.dataType, tt.components, tt.normalized, err)
		}
	}
}

func TestMapVertexFormatNormalizedDiffers(t *testing.T) {
	plain, err := MapVertexFormat(rhi.DataUint8, 4, false)
	if err != nil {
		t.Fatalf("MapVertexFormat(Uint8, 4, false): %v", err)
	}
	norm, err := MapVertexFormat(rhi.DataUint8, 4, true)
	if err != nil {
		t.Fatalf("MapVertexFormat(Uint8, 4, true): %v", err)
	}
	if plain == norm {
		t.Error("normalized flag does not change the vertex format")
	}
}

func TestMapVertexLayout(t *testing.T) {
	var layout rhi.VertexFormat
	layout.AppendAttribute("position", rhi.DataFloat32, 2)
	layout.AppendAttribute("uv", rhi.DataFloat32, 2)
	layout.AppendAttribute("color", rhi.DataFloat32, 4)

	buffers, err := mapVertexLayout(layout)
	if err != nil {
		t.Fatalf("mapVertexLayout: %v", err)
	}
	if len(buffers) != 1 {
		t.Fatalf("mapVertexLayout returned %d buffers, want 1", len(buffers))
	}
	if buffers[0].ArrayStride != uint64(layout.Stride()) {
		t.Errorf("ArrayStride = %d, want %d", buffers[0].ArrayStride, layout.Stride())
	}
	if len(buffers[0].Attributes) != 3 {
		t.Fatalf("mapped %d attributes, want 3", len(buffers[0].Attributes))
	}
	if buffers[0].Attributes[2].ShaderLocation != 2 {
		t.Errorf("Attributes[2].ShaderLocation = %d, want 2", buffers[0].Attributes[2].ShaderLocation)
	}
	if buffers[0].Attributes[2].Offset != 16 {
		t.Errorf("Attributes[2].Offset = %d, want 16", buffers[0].Attributes[2].Offset)
	}

	var empty rhi.VertexFormat
	if got, err := mapVertexLayout(empty); err != nil || got != nil {
		t.Errorf("mapVertexLayout(empty) = %v, %v, want nil, nil", got, err)
	}

	var bad rhi.VertexFormat
	bad.AppendAttribute("weights", rhi.DataFloat64, 1)
	if _, err := mapVertexLayout(bad); !errors.Is(err, rhi.ErrUnsupportedMapping) {
		t.Errorf("mapVertexLayout(float64) error = %v, want ErrUnsupportedMapping", err)
	}
}
