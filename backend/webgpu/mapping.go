// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// The abstract enums are broader than WebGPU. Every mapping below
// returns rhi.ErrUnsupportedMapping for members the API cannot
// express, and callers surface that error instead of guessing a
// substitute.

// MapFormat translates a pixel format. Compressed formats need the BC
// device feature, which the backend does not request.
func MapFormat(f rhi.Format) (gputypes.TextureFormat, error) {
	switch f {
	case rhi.FormatR8:
		return gputypes.TextureFormatR8Unorm, nil
	case rhi.FormatRG8:
		return gputypes.TextureFormatRG8Unorm, nil
	case rhi.FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case rhi.FormatRGBA8SRGB:
		return gputypes.TextureFormatRGBA8UnormSrgb, nil
	case rhi.FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm, nil
	case rhi.FormatBGRA8SRGB:
		return gputypes.TextureFormatBGRA8UnormSrgb, nil
	case rhi.FormatR16F:
		return gputypes.TextureFormatR16Float, nil
	case rhi.FormatRG16F:
		return gputypes.TextureFormatRG16Float, nil
	case rhi.FormatRGBA16F:
		return gputypes.TextureFormatRGBA16Float, nil
	case rhi.FormatR32F:
		return gputypes.TextureFormatR32Float, nil
	case rhi.FormatRG32F:
		return gputypes.TextureFormatRG32Float, nil
	case rhi.FormatRGBA32F:
		return gputypes.TextureFormatRGBA32Float, nil
	case rhi.FormatR32Uint:
		return gputypes.TextureFormatR32Uint, nil
	case rhi.FormatDepth16:
		return gputypes.TextureFormatDepth16Unorm, nil
	case rhi.FormatDepth32F:
		return gputypes.TextureFormatDepth32Float, nil
	case rhi.FormatDepth24Stencil8:
		return gputypes.TextureFormatDepth24PlusStencil8, nil
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("%w: format %s", rhi.ErrUnsupportedMapping, f)
}

// MapTopology translates a primitive topology. WebGPU has no loop,
// fan, adjacency, or patch topologies.
func MapTopology(t rhi.PrimitiveTopology) (gputypes.PrimitiveTopology, error) {
	switch t {
	case rhi.TopologyPointList:
		return gputypes.PrimitiveTopologyPointList, nil
	case rhi.TopologyLineList:
		return gputypes.PrimitiveTopologyLineList, nil
	case rhi.TopologyLineStrip:
		return gputypes.PrimitiveTopologyLineStrip, nil
	case rhi.TopologyTriangleList:
		return gputypes.PrimitiveTopologyTriangleList, nil
	case rhi.TopologyTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, nil
	}
	return 0, fmt.Errorf("%w: topology %s", rhi.ErrUnsupportedMapping, t)
}

// MapCompareFunc translates a comparison function. The set maps 1:1.
func MapCompareFunc(f rhi.CompareFunc) (gputypes.CompareFunction, error) {
	switch f {
	case rhi.CompareNever:
		return gputypes.CompareFunctionNever, nil
	case rhi.CompareLess:
		return gputypes.CompareFunctionLess, nil
	case rhi.CompareEqual:
		return gputypes.CompareFunctionEqual, nil
	case rhi.CompareLessEqual:
		return gputypes.CompareFunctionLessEqual, nil
	case rhi.CompareGreater:
		return gputypes.CompareFunctionGreater, nil
	case rhi.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual, nil
	case rhi.CompareGreaterEqual:
		return gputypes.CompareFunctionGreaterEqual, nil
	case rhi.CompareAlways:
		return gputypes.CompareFunctionAlways, nil
	}
	return 0, fmt.Errorf("%w: compare func %d", rhi.ErrUnsupportedMapping, f)
}

// MapStencilOp translates a stencil operation. The set maps 1:1.
func MapStencilOp(op rhi.StencilOp) (hal.StencilOperation, error) {
	switch op {
	case rhi.StencilKeep:
		return hal.StencilOperationKeep, nil
	case rhi.StencilZero:
		return hal.StencilOperationZero, nil
	case rhi.StencilReplace:
		return hal.StencilOperationReplace, nil
	case rhi.StencilIncClamp:
		return hal.StencilOperationIncrementClamp, nil
	case rhi.StencilDecClamp:
		return hal.StencilOperationDecrementClamp, nil
	case rhi.StencilInvert:
		return hal.StencilOperationInvert, nil
	case rhi.StencilIncWrap:
		return hal.StencilOperationIncrementWrap, nil
	case rhi.StencilDecWrap:
		return hal.StencilOperationDecrementWrap, nil
	}
	return 0, fmt.Errorf("%w: stencil op %d", rhi.ErrUnsupportedMapping, op)
}

// MapBlendFactor translates a blend factor. The set maps 1:1; WebGPU
// names the color variants without the Color suffix.
func MapBlendFactor(f rhi.BlendFactor) (gputypes.BlendFactor, error) {
	switch f {
	case rhi.BlendZero:
		return gputypes.BlendFactorZero, nil
	case rhi.BlendOne:
		return gputypes.BlendFactorOne, nil
	case rhi.BlendSrcColor:
		return gputypes.BlendFactorSrc, nil
	case rhi.BlendOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc, nil
	case rhi.BlendSrcAlpha:
		return gputypes.BlendFactorSrcAlpha, nil
	case rhi.BlendOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha, nil
	case rhi.BlendDstColor:
		return gputypes.BlendFactorDst, nil
	case rhi.BlendOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst, nil
	case rhi.BlendDstAlpha:
		return gputypes.BlendFactorDstAlpha, nil
	case rhi.BlendOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha, nil
	}
	return 0, fmt.Errorf("%w: blend factor %d", rhi.ErrUnsupportedMapping, f)
}

// MapBlendOp translates a blend operation. The set maps 1:1.
func MapBlendOp(op rhi.BlendOp) (gputypes.BlendOperation, error) {
	switch op {
	case rhi.BlendAdd:
		return gputypes.BlendOperationAdd, nil
	case rhi.BlendSubtract:
		return gputypes.BlendOperationSubtract, nil
	case rhi.BlendReverseSubtract:
		return gputypes.BlendOperationReverseSubtract, nil
	case rhi.BlendMin:
		return gputypes.BlendOperationMin, nil
	case rhi.BlendMax:
		return gputypes.BlendOperationMax, nil
	}
	return 0, fmt.Errorf("%w: blend op %d", rhi.ErrUnsupportedMapping, op)
}

// MapCullMode translates a cull mode. The set maps 1:1.
func MapCullMode(m rhi.CullMode) (gputypes.CullMode, error) {
	switch m {
	case rhi.CullNone:
		return gputypes.CullModeNone, nil
	case rhi.CullFront:
		return gputypes.CullModeFront, nil
	case rhi.CullBack:
		return gputypes.CullModeBack, nil
	}
	return 0, fmt.Errorf("%w: cull mode %d", rhi.ErrUnsupportedMapping, m)
}

// MapIndexFormat translates an index element width. The set maps 1:1.
func MapIndexFormat(f rhi.IndexFormat) (gputypes.IndexFormat, error) {
	switch f {
	case rhi.IndexUint16:
		return gputypes.IndexFormatUint16, nil
	case rhi.IndexUint32:
		return gputypes.IndexFormatUint32, nil
	}
	return 0, fmt.Errorf("%w: index format %d", rhi.ErrUnsupportedMapping, f)
}

// MapAddressMode translates a wrap mode. WebGPU has no border
// addressing.
func MapAddressMode(m rhi.WrapMode) (gputypes.AddressMode, error) {
	switch m {
	case rhi.WrapRepeat:
		return gputypes.AddressModeRepeat, nil
	case rhi.WrapMirror:
		return gputypes.AddressModeMirrorRepeat, nil
	case rhi.WrapClamp:
		return gputypes.AddressModeClampToEdge, nil
	}
	return 0, fmt.Errorf("%w: wrap mode %d", rhi.ErrUnsupportedMapping, m)
}

// MapFilterMode translates a sampling filter. The set maps 1:1.
func MapFilterMode(f rhi.Filter) (gputypes.FilterMode, error) {
	switch f {
	case rhi.FilterNearest:
		return gputypes.FilterModeNearest, nil
	case rhi.FilterLinear:
		return gputypes.FilterModeLinear, nil
	}
	return 0, fmt.Errorf("%w: filter %d", rhi.ErrUnsupportedMapping, f)
}

// MapVertexFormat translates a vertex attribute's component type and
// count. WebGPU packs 8- and 16-bit components in pairs, so those
// types support only 2 or 4 components, and 64-bit floats do not
// exist.
func MapVertexFormat(t rhi.DataType, components uint32, normalized bool) (gputypes.VertexFormat, error) {
	unsupported := func() (gputypes.VertexFormat, error) {
		return 0, fmt.Errorf("%w: vertex attribute %sx%d", rhi.ErrUnsupportedMapping, t, components)
	}

	switch t {
	case rhi.DataFloat32:
		switch components {
		case 1:
			return gputypes.VertexFormatFloat32, nil
		case 2:
			return gputypes.VertexFormatFloat32x2, nil
		case 3:
			return gputypes.VertexFormatFloat32x3, nil
		case 4:
			return gputypes.VertexFormatFloat32x4, nil
		}
	case rhi.DataFloat16:
		switch components {
		case 2:
			return gputypes.VertexFormatFloat16x2, nil
		case 4:
			return gputypes.VertexFormatFloat16x4, nil
		}
	case rhi.DataInt32:
		switch components {
		case 1:
			return gputypes.VertexFormatSint32, nil
		case 2:
			return gputypes.VertexFormatSint32x2, nil
		case 3:
			return gputypes.VertexFormatSint32x3, nil
		case 4:
			return gputypes.VertexFormatSint32x4, nil
		}
	case rhi.DataUint32:
		switch components {
		case 1:
			return gputypes.VertexFormatUint32, nil
		case 2:
			return gputypes.VertexFormatUint32x2, nil
		case 3:
			return gputypes.VertexFormatUint32x3, nil
		case 4:
			return gputypes.VertexFormatUint32x4, nil
		}
	case rhi.DataInt8:
		switch components {
		case 2:
			if normalized {
				return gputypes.VertexFormatSnorm8x2, nil
			}
			return gputypes.VertexFormatSint8x2, nil
		case 4:
			if normalized {
				return gputypes.VertexFormatSnorm8x4, nil
			}
			return gputypes.VertexFormatSint8x4, nil
		}
	case rhi.DataUint8:
		switch components {
		case 2:
			if normalized {
				return gputypes.VertexFormatUnorm8x2, nil
			}
			return gputypes.VertexFormatUint8x2, nil
		case 4:
			if normalized {
				return gputypes.VertexFormatUnorm8x4, nil
			}
			return gputypes.VertexFormatUint8x4, nil
		}
	case rhi.DataInt16:
		switch components {
		case 2:
			if normalized {
				return gputypes.VertexFormatSnorm16x2, nil
			}
			return gputypes.VertexFormatSint16x2, nil
		case 4:
			if normalized {
				return gputypes.VertexFormatSnorm16x4, nil
			}
			return gputypes.VertexFormatSint16x4, nil
		}
	case rhi.DataUint16:
		switch components {
		case 2:
			if normalized {
				return gputypes.VertexFormatUnorm16x2, nil
			}
			return gputypes.VertexFormatUint16x2, nil
		case 4:
			if normalized {
				return gputypes.VertexFormatUnorm16x4, nil
			}
			return gputypes.VertexFormatUint16x4, nil
		}
	}
	return unsupported()
}

// mapVertexLayout translates a whole vertex buffer layout.
func mapVertexLayout(layout rhi.VertexFormat) ([]gputypes.VertexBufferLayout, error) {
	attrs := layout.Attributes()
	if len(attrs) == 0 {
		return nil, nil
	}
	native := make([]gputypes.VertexAttribute, len(attrs))
	for i, attr := range attrs {
		format, err := MapVertexFormat(attr.Type, attr.Components, attr.Normalized)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr.Name, err)
		}
		native[i] = gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(attr.Offset),
			ShaderLocation: attr.Location,
		}
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(layout.Stride()),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  native,
	}}, nil
}
