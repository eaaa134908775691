package gl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
)

// Capability is a boolean GPU pipeline toggle. The set is closed:
// every member maps to exactly one native enable/disable enum in
// capabilityEnums, and out-of-range values are a programming error.
type Capability uint8

const (
	CapBlend Capability = iota
	CapColorLogicOp
	CapCullFace
	CapDebugOutput
	CapDebugOutputSynchronous
	CapDepthClamp
	CapDepthTest
	CapDither
	CapFramebufferSRGB
	CapLineSmooth
	CapMultisample
	CapPolygonOffsetFill
	CapPolygonOffsetLine
	CapPolygonOffsetPoint
	CapPolygonSmooth
	CapPrimitiveRestart
	CapPrimitiveRestartFixedIndex
	CapRasterizerDiscard
	CapSampleAlphaToCoverage
	CapSampleAlphaToOne
	CapSampleCoverage
	CapSampleShading
	CapSampleMask
	CapScissorTest
	CapStencilTest
	CapSeamlessCubeMap
	CapProgramPointSize

	numCapabilities
)

// BufferTarget is a buffer binding point. Closed set, ordered in
// lock-step with bufferTargetEnums.
type BufferTarget uint8

const (
	TargetArrayBuffer BufferTarget = iota
	TargetAtomicCounterBuffer
	TargetCopyReadBuffer
	TargetCopyWriteBuffer
	TargetDispatchIndirectBuffer
	TargetDrawIndirectBuffer
	TargetElementArrayBuffer
	TargetPixelPackBuffer
	TargetPixelUnpackBuffer
	TargetQueryBuffer
	TargetShaderStorageBuffer
	TargetTextureBuffer
	TargetTransformFeedbackBuffer
	TargetUniformBuffer

	numBufferTargets
)

// TextureTarget is a texture binding point within one texture layer.
// Closed set, ordered in lock-step with textureTargetEnums.
type TextureTarget uint8

const (
	TargetTexture1D TextureTarget = iota
	TargetTexture2D
	TargetTexture3D
	TargetTexture1DArray
	TargetTexture2DArray
	TargetTextureRectangle
	TargetTextureCubeMap
	TargetTextureCubeMapArray
	TargetTextureBufferTexture
	TargetTexture2DMultisample
	TargetTexture2DMultisampleArray

	numTextureTargets
)

// The native tables below are typed with the enum cardinality, so
// adding an enum member without its native counterpart (or the other
// way round) fails to compile.

var capabilityEnums = [numCapabilities]uint32{
	CapBlend:                      gl.BLEND,
	CapColorLogicOp:               gl.COLOR_LOGIC_OP,
	CapCullFace:                   gl.CULL_FACE,
	CapDebugOutput:                gl.DEBUG_OUTPUT,
	CapDebugOutputSynchronous:     gl.DEBUG_OUTPUT_SYNCHRONOUS,
	CapDepthClamp:                 gl.DEPTH_CLAMP,
	CapDepthTest:                  gl.DEPTH_TEST,
	CapDither:                     gl.DITHER,
	CapFramebufferSRGB:            gl.FRAMEBUFFER_SRGB,
	CapLineSmooth:                 gl.LINE_SMOOTH,
	CapMultisample:                gl.MULTISAMPLE,
	CapPolygonOffsetFill:          gl.POLYGON_OFFSET_FILL,
	CapPolygonOffsetLine:          gl.POLYGON_OFFSET_LINE,
	CapPolygonOffsetPoint:         gl.POLYGON_OFFSET_POINT,
	CapPolygonSmooth:              gl.POLYGON_SMOOTH,
	CapPrimitiveRestart:           gl.PRIMITIVE_RESTART,
	CapPrimitiveRestartFixedIndex: gl.PRIMITIVE_RESTART_FIXED_INDEX,
	CapRasterizerDiscard:          gl.RASTERIZER_DISCARD,
	CapSampleAlphaToCoverage:      gl.SAMPLE_ALPHA_TO_COVERAGE,
	CapSampleAlphaToOne:           gl.SAMPLE_ALPHA_TO_ONE,
	CapSampleCoverage:             gl.SAMPLE_COVERAGE,
	CapSampleShading:              gl.SAMPLE_SHADING,
	CapSampleMask:                 gl.SAMPLE_MASK,
	CapScissorTest:                gl.SCISSOR_TEST,
	CapStencilTest:                gl.STENCIL_TEST,
	CapSeamlessCubeMap:            gl.TEXTURE_CUBE_MAP_SEAMLESS,
	CapProgramPointSize:           gl.PROGRAM_POINT_SIZE,
}

var bufferTargetEnums = [numBufferTargets]uint32{
	TargetArrayBuffer:             gl.ARRAY_BUFFER,
	TargetAtomicCounterBuffer:     gl.ATOMIC_COUNTER_BUFFER,
	TargetCopyReadBuffer:          gl.COPY_READ_BUFFER,
	TargetCopyWriteBuffer:         gl.COPY_WRITE_BUFFER,
	TargetDispatchIndirectBuffer:  gl.DISPATCH_INDIRECT_BUFFER,
	TargetDrawIndirectBuffer:      gl.DRAW_INDIRECT_BUFFER,
	TargetElementArrayBuffer:      gl.ELEMENT_ARRAY_BUFFER,
	TargetPixelPackBuffer:         gl.PIXEL_PACK_BUFFER,
	TargetPixelUnpackBuffer:       gl.PIXEL_UNPACK_BUFFER,
	TargetQueryBuffer:             gl.QUERY_BUFFER,
	TargetShaderStorageBuffer:     gl.SHADER_STORAGE_BUFFER,
	TargetTextureBuffer:           gl.TEXTURE_BUFFER,
	TargetTransformFeedbackBuffer: gl.TRANSFORM_FEEDBACK_BUFFER,
	TargetUniformBuffer:           gl.UNIFORM_BUFFER,
}

var textureTargetEnums = [numTextureTargets]uint32{
	TargetTexture1D:                 gl.TEXTURE_1D,
	TargetTexture2D:                 gl.TEXTURE_2D,
	TargetTexture3D:                 gl.TEXTURE_3D,
	TargetTexture1DArray:            gl.TEXTURE_1D_ARRAY,
	TargetTexture2DArray:            gl.TEXTURE_2D_ARRAY,
	TargetTextureRectangle:          gl.TEXTURE_RECTANGLE,
	TargetTextureCubeMap:            gl.TEXTURE_CUBE_MAP,
	TargetTextureCubeMapArray:       gl.TEXTURE_CUBE_MAP_ARRAY,
	TargetTextureBufferTexture:      gl.TEXTURE_BUFFER,
	TargetTexture2DMultisample:      gl.TEXTURE_2D_MULTISAMPLE,
	TargetTexture2DMultisampleArray: gl.TEXTURE_2D_MULTISAMPLE_ARRAY,
}

// Native enums the cache passes as plain arguments rather than through
// a lockstep table.
const (
	glFramebuffer      = gl.FRAMEBUFFER
	glDrawFramebuffer  = gl.DRAW_FRAMEBUFFER
	glReadFramebuffer  = gl.READ_FRAMEBUFFER
	glTexture0         = gl.TEXTURE0
	glColorAttachment0 = gl.COLOR_ATTACHMENT0

	glFront = gl.FRONT
	glBack  = gl.BACK
	glCCW   = gl.CCW
	glCW    = gl.CW

	glLowerLeft        = gl.LOWER_LEFT
	glUpperLeft        = gl.UPPER_LEFT
	glNegativeOneToOne = gl.NEGATIVE_ONE_TO_ONE
	glZeroToOne        = gl.ZERO_TO_ONE

	glPatchVertices = gl.PATCH_VERTICES

	glFramebufferComplete    = gl.FRAMEBUFFER_COMPLETE
	glDepthAttachment        = gl.DEPTH_ATTACHMENT
	glDepthStencilAttachment = gl.DEPTH_STENCIL_ATTACHMENT
)

// textureTargetFor maps an abstract texture type to its binding point.
func textureTargetFor(t rhi.TextureType) TextureTarget {
	switch t {
	case rhi.Texture1D:
		return TargetTexture1D
	case rhi.Texture2D:
		return TargetTexture2D
	case rhi.Texture3D:
		return TargetTexture3D
	case rhi.Texture1DArray:
		return TargetTexture1DArray
	case rhi.Texture2DArray:
		return TargetTexture2DArray
	case rhi.TextureCube:
		return TargetTextureCubeMap
	case rhi.TextureCubeArray:
		return TargetTextureCubeMapArray
	case rhi.Texture2DMS:
		return TargetTexture2DMultisample
	case rhi.Texture2DMSArray:
		return TargetTexture2DMultisampleArray
	}
	panic("gl: unmapped texture type")
}

// Abstract rhi enums are defined in another package, so their
// cardinality is restated here as the last member plus one; the typed
// array lengths below keep the two enumerations in lock-step.
const (
	numTopologies   = int(rhi.TopologyPatches) + 1
	numBlendFactors = int(rhi.BlendOneMinusDstAlpha) + 1
	numBlendOps     = int(rhi.BlendMax) + 1
	numCompareFuncs = int(rhi.CompareAlways) + 1
	numStencilOps   = int(rhi.StencilDecWrap) + 1
	numQueryTypes   = int(rhi.QueryTimeElapsed) + 1
	numDataTypes    = int(rhi.DataFloat64) + 1
)

var topologyEnums = [numTopologies]uint32{
	rhi.TopologyPointList:              gl.POINTS,
	rhi.TopologyLineList:               gl.LINES,
	rhi.TopologyLineStrip:              gl.LINE_STRIP,
	rhi.TopologyLineLoop:               gl.LINE_LOOP,
	rhi.TopologyLineListAdjacency:      gl.LINES_ADJACENCY,
	rhi.TopologyLineStripAdjacency:     gl.LINE_STRIP_ADJACENCY,
	rhi.TopologyTriangleList:           gl.TRIANGLES,
	rhi.TopologyTriangleStrip:          gl.TRIANGLE_STRIP,
	rhi.TopologyTriangleFan:            gl.TRIANGLE_FAN,
	rhi.TopologyTriangleListAdjacency:  gl.TRIANGLES_ADJACENCY,
	rhi.TopologyTriangleStripAdjacency: gl.TRIANGLE_STRIP_ADJACENCY,
	rhi.TopologyPatches:                gl.PATCHES,
}

var blendFactorEnums = [numBlendFactors]uint32{
	rhi.BlendZero:             gl.ZERO,
	rhi.BlendOne:              gl.ONE,
	rhi.BlendSrcColor:         gl.SRC_COLOR,
	rhi.BlendOneMinusSrcColor: gl.ONE_MINUS_SRC_COLOR,
	rhi.BlendSrcAlpha:         gl.SRC_ALPHA,
	rhi.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	rhi.BlendDstColor:         gl.DST_COLOR,
	rhi.BlendOneMinusDstColor: gl.ONE_MINUS_DST_COLOR,
	rhi.BlendDstAlpha:         gl.DST_ALPHA,
	rhi.BlendOneMinusDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var blendOpEnums = [numBlendOps]uint32{
	rhi.BlendAdd:             gl.FUNC_ADD,
	rhi.BlendSubtract:        gl.FUNC_SUBTRACT,
	rhi.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	rhi.BlendMin:             gl.MIN,
	rhi.BlendMax:             gl.MAX,
}

var compareFuncEnums = [numCompareFuncs]uint32{
	rhi.CompareNever:        gl.NEVER,
	rhi.CompareLess:         gl.LESS,
	rhi.CompareEqual:        gl.EQUAL,
	rhi.CompareLessEqual:    gl.LEQUAL,
	rhi.CompareGreater:      gl.GREATER,
	rhi.CompareNotEqual:     gl.NOTEQUAL,
	rhi.CompareGreaterEqual: gl.GEQUAL,
	rhi.CompareAlways:       gl.ALWAYS,
}

var stencilOpEnums = [numStencilOps]uint32{
	rhi.StencilKeep:     gl.KEEP,
	rhi.StencilZero:     gl.ZERO,
	rhi.StencilReplace:  gl.REPLACE,
	rhi.StencilIncClamp: gl.INCR,
	rhi.StencilDecClamp: gl.DECR,
	rhi.StencilInvert:   gl.INVERT,
	rhi.StencilIncWrap:  gl.INCR_WRAP,
	rhi.StencilDecWrap:  gl.DECR_WRAP,
}

var queryTargetEnums = [numQueryTypes]uint32{
	rhi.QuerySamplesPassed:       gl.SAMPLES_PASSED,
	rhi.QueryAnySamplesPassed:    gl.ANY_SAMPLES_PASSED,
	rhi.QueryPrimitivesGenerated: gl.PRIMITIVES_GENERATED,
	rhi.QueryTimeElapsed:         gl.TIME_ELAPSED,
}

var dataTypeEnums = [numDataTypes]uint32{
	rhi.DataInt8:    gl.BYTE,
	rhi.DataUint8:   gl.UNSIGNED_BYTE,
	rhi.DataInt16:   gl.SHORT,
	rhi.DataUint16:  gl.UNSIGNED_SHORT,
	rhi.DataInt32:   gl.INT,
	rhi.DataUint32:  gl.UNSIGNED_INT,
	rhi.DataFloat16: gl.HALF_FLOAT,
	rhi.DataFloat32: gl.FLOAT,
	rhi.DataFloat64: gl.DOUBLE,
}

const numFormats = int(rhi.FormatRGBADXT5) + 1

// formatInternalEnums maps pixel formats to sized internal formats.
// FormatUnknown maps to zero and must be rejected before lookup.
var formatInternalEnums = [numFormats]uint32{
	rhi.FormatR8:              gl.R8,
	rhi.FormatRG8:             gl.RG8,
	rhi.FormatRGBA8:           gl.RGBA8,
	rhi.FormatRGBA8SRGB:       gl.SRGB8_ALPHA8,
	rhi.FormatBGRA8:           gl.RGBA8,
	rhi.FormatBGRA8SRGB:       gl.SRGB8_ALPHA8,
	rhi.FormatR16F:            gl.R16F,
	rhi.FormatRG16F:           gl.RG16F,
	rhi.FormatRGBA16F:         gl.RGBA16F,
	rhi.FormatR32F:            gl.R32F,
	rhi.FormatRG32F:           gl.RG32F,
	rhi.FormatRGBA32F:         gl.RGBA32F,
	rhi.FormatR32Uint:         gl.R32UI,
	rhi.FormatDepth16:         gl.DEPTH_COMPONENT16,
	rhi.FormatDepth32F:        gl.DEPTH_COMPONENT32F,
	rhi.FormatDepth24Stencil8: gl.DEPTH24_STENCIL8,
	rhi.FormatRGBADXT1:        gl.COMPRESSED_RGBA_S3TC_DXT1_EXT,
	rhi.FormatRGBADXT3:        gl.COMPRESSED_RGBA_S3TC_DXT3_EXT,
	rhi.FormatRGBADXT5:        gl.COMPRESSED_RGBA_S3TC_DXT5_EXT,
}

// shaderTypeEnum maps a single-stage mask to the native shader type.
func shaderTypeEnum(stage rhi.ShaderStages) uint32 {
	switch stage {
	case rhi.StageVertex:
		return gl.VERTEX_SHADER
	case rhi.StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case rhi.StageTessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case rhi.StageGeometry:
		return gl.GEOMETRY_SHADER
	case rhi.StageFragment:
		return gl.FRAGMENT_SHADER
	case rhi.StageCompute:
		return gl.COMPUTE_SHADER
	}
	panic("gl: shader source must declare exactly one stage")
}

// attribTypeFor decomposes a reflected attribute GLenum into component
// type and count. Unknown enums report false.
func attribTypeFor(xtype uint32) (rhi.DataType, uint32, bool) {
	switch xtype {
	case gl.FLOAT:
		return rhi.DataFloat32, 1, true
	case gl.FLOAT_VEC2:
		return rhi.DataFloat32, 2, true
	case gl.FLOAT_VEC3:
		return rhi.DataFloat32, 3, true
	case gl.FLOAT_VEC4:
		return rhi.DataFloat32, 4, true
	case gl.INT:
		return rhi.DataInt32, 1, true
	case gl.INT_VEC2:
		return rhi.DataInt32, 2, true
	case gl.INT_VEC3:
		return rhi.DataInt32, 3, true
	case gl.INT_VEC4:
		return rhi.DataInt32, 4, true
	case gl.UNSIGNED_INT:
		return rhi.DataUint32, 1, true
	case gl.UNSIGNED_INT_VEC2:
		return rhi.DataUint32, 2, true
	case gl.UNSIGNED_INT_VEC3:
		return rhi.DataUint32, 3, true
	case gl.UNSIGNED_INT_VEC4:
		return rhi.DataUint32, 4, true
	case gl.DOUBLE:
		return rhi.DataFloat64, 1, true
	}
	return 0, 0, false
}

// bufferTargetFor maps a buffer's declared purpose to its natural
// binding point.
func bufferTargetFor(t rhi.BufferType) BufferTarget {
	switch t {
	case rhi.BufferVertex:
		return TargetArrayBuffer
	case rhi.BufferIndex:
		return TargetElementArrayBuffer
	case rhi.BufferConstant:
		return TargetUniformBuffer
	case rhi.BufferStorage:
		return TargetShaderStorageBuffer
	case rhi.BufferStreamOutput:
		return TargetTransformFeedbackBuffer
	}
	panic("gl: unmapped buffer type")
}

// stencilFaceEnum maps an abstract stencil face to the native enum.
func stencilFaceEnum(face rhi.StencilFace) uint32 {
	switch face {
	case rhi.StencilFront:
		return gl.FRONT
	case rhi.StencilBack:
		return gl.BACK
	case rhi.StencilFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	panic("gl: unmapped stencil face")
}

// indexTypeEnum maps an index format to the native element type.
func indexTypeEnum(f rhi.IndexFormat) uint32 {
	if f == rhi.IndexUint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

// renderConditionEnum maps a render condition mode to the native enum.
func renderConditionEnum(mode rhi.RenderConditionMode) uint32 {
	switch mode {
	case rhi.ConditionWait:
		return gl.QUERY_WAIT
	case rhi.ConditionNoWait:
		return gl.QUERY_NO_WAIT
	case rhi.ConditionByRegionWait:
		return gl.QUERY_BY_REGION_WAIT
	case rhi.ConditionByRegionNoWait:
		return gl.QUERY_BY_REGION_NO_WAIT
	}
	panic("gl: unmapped render condition mode")
}

// streamOutputPrimitiveEnum maps a topology class to the transform
// feedback primitive mode. Only point, line, and triangle classes can
// be captured.
func streamOutputPrimitiveEnum(topology rhi.PrimitiveTopology) uint32 {
	switch topology {
	case rhi.TopologyPointList:
		return gl.POINTS
	case rhi.TopologyLineList, rhi.TopologyLineStrip, rhi.TopologyLineLoop:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}
