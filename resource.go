package rhi

// ResourceType classifies a resource object.
type ResourceType uint8

const (
	ResourceBuffer ResourceType = iota
	ResourceTexture
	ResourceSampler
	ResourceShaderProgram
	ResourceGraphicsPipeline
	ResourceComputePipeline
	ResourceQuery
	ResourceRenderTarget
)

// Resource is the common surface of every device-created object.
type Resource interface {
	// ResourceType reports what kind of object this is.
	ResourceType() ResourceType

	// Release frees the native object. The resource must not be used
	// afterwards.
	Release()
}

// BufferType is the declared purpose of a buffer, fixed at creation.
// The validation layer compares it against the intent of every binding
// call.
type BufferType uint8

const (
	// BufferVertex holds vertex data.
	BufferVertex BufferType = iota

	// BufferIndex holds index data.
	BufferIndex

	// BufferConstant holds uniform/constant data.
	BufferConstant

	// BufferStorage holds read-write shader storage.
	BufferStorage

	// BufferStreamOutput receives stream (transform feedback) output.
	BufferStreamOutput

	numBufferTypes
)

// bufferTypeNames maps BufferType values to their string representation.
var bufferTypeNames = [numBufferTypes]string{
	BufferVertex:       "Vertex",
	BufferIndex:        "Index",
	BufferConstant:     "Constant",
	BufferStorage:      "Storage",
	BufferStreamOutput: "StreamOutput",
}

// String returns the string representation of a BufferType.
func (t BufferType) String() string {
	if int(t) < len(bufferTypeNames) {
		return bufferTypeNames[t]
	}
	return "Unknown"
}

// BufferDescriptor fixes a buffer's creation-time attributes.
type BufferDescriptor struct {
	// Name is an optional debug label.
	Name string

	// Type is the declared purpose of the buffer.
	Type BufferType

	// Size is the buffer size in bytes.
	Size uint64

	// Layout describes the vertex layout. Meaningful only for
	// Type == BufferVertex.
	Layout VertexFormat

	// IndexFormat is the element width. Meaningful only for
	// Type == BufferIndex.
	IndexFormat IndexFormat
}

// Buffer is a device memory object with a declared purpose.
type Buffer interface {
	Resource

	// Descriptor returns the creation-time attributes. The returned
	// value must not be mutated.
	Descriptor() BufferDescriptor
}

// TextureType is the dimensionality category of a texture, fixed at
// creation.
type TextureType uint8

const (
	Texture1D TextureType = iota
	Texture2D
	Texture3D
	TextureCube
	Texture1DArray
	Texture2DArray
	TextureCubeArray
	Texture2DMS
	Texture2DMSArray

	numTextureTypes
)

// textureTypeNames maps TextureType values to their string representation.
var textureTypeNames = [numTextureTypes]string{
	Texture1D:        "Texture1D",
	Texture2D:        "Texture2D",
	Texture3D:        "Texture3D",
	TextureCube:      "TextureCube",
	Texture1DArray:   "Texture1DArray",
	Texture2DArray:   "Texture2DArray",
	TextureCubeArray: "TextureCubeArray",
	Texture2DMS:      "Texture2DMS",
	Texture2DMSArray: "Texture2DMSArray",
}

// String returns the string representation of a TextureType.
func (t TextureType) String() string {
	if int(t) < len(textureTypeNames) {
		return textureTypeNames[t]
	}
	return "Unknown"
}

// IsArray reports whether the type has array layers.
func (t TextureType) IsArray() bool {
	switch t {
	case Texture1DArray, Texture2DArray, TextureCubeArray, Texture2DMSArray:
		return true
	}
	return false
}

// IsMultisample reports whether the type is multisampled.
func (t TextureType) IsMultisample() bool {
	return t == Texture2DMS || t == Texture2DMSArray
}

// TextureDescriptor fixes a texture's creation-time attributes.
type TextureDescriptor struct {
	// Name is an optional debug label.
	Name string

	// Type is the dimensionality category.
	Type TextureType

	// Format is the pixel format.
	Format Format

	// Width, Height, and Depth are the extent in texels. Height is 1
	// for 1D textures; Depth is the array layer count for array types
	// and 1 otherwise.
	Width  uint32
	Height uint32
	Depth  uint32

	// MipLevels is the mip chain length. Zero means the full chain
	// (see NumMipLevels).
	MipLevels uint32

	// Samples is the multisample count for Texture2DMS types.
	Samples uint32
}

// Texture is an image resource with a declared dimensionality.
type Texture interface {
	Resource

	// Descriptor returns the creation-time attributes.
	Descriptor() TextureDescriptor
}

// Filter selects a sampling filter.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// WrapMode selects texture addressing outside [0,1).
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapMirror
	WrapClamp
	WrapBorder
)

// SamplerDescriptor fixes a sampler's creation-time attributes.
type SamplerDescriptor struct {
	Name      string
	MinFilter Filter
	MagFilter Filter
	MipFilter Filter
	WrapU     WrapMode
	WrapV     WrapMode
	WrapW     WrapMode

	// MaxAnisotropy enables anisotropic filtering when > 1.
	MaxAnisotropy uint32
}

// Sampler controls how textures are sampled.
type Sampler interface {
	Resource

	// Descriptor returns the creation-time attributes.
	Descriptor() SamplerDescriptor
}

// ShaderSource carries one stage's source code.
type ShaderSource struct {
	// Stage identifies the pipeline stage. Exactly one bit must be set.
	Stage ShaderStages

	// Code is the source text in the backend's language (GLSL for the
	// gl backend, WGSL for the webgpu backend).
	Code string

	// EntryPoint names the entry function for backends that need one.
	// Empty defaults to "main".
	EntryPoint string
}

// ShaderProgramDescriptor describes a linked set of shader stages.
type ShaderProgramDescriptor struct {
	Name    string
	Sources []ShaderSource
}

// ShaderProgram is a linked shader pipeline stage set. The reflected
// vertex attribute list is what the validation layer compares bound
// vertex formats against.
type ShaderProgram interface {
	Resource

	// Stages reports which pipeline stages the program populates.
	Stages() ShaderStages

	// VertexAttributes returns the input attributes the vertex stage
	// expects, reflected at link time. The returned slice must not be
	// mutated.
	VertexAttributes() []VertexAttribute
}

// CompareFunc is a depth/stencil comparison function.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways

	numCompareFuncs
)

// StencilOp is a stencil buffer update operation.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncClamp
	StencilDecClamp
	StencilInvert
	StencilIncWrap
	StencilDecWrap

	numStencilOps
)

// StencilFace selects which face(s) a stencil state applies to.
type StencilFace uint8

const (
	StencilFront StencilFace = iota
	StencilBack
	StencilFrontAndBack
)

// StencilFaceState is the stencil configuration of one face. Its three
// sub-fields (the op triplet, the func/ref/readmask triplet, and the
// write mask) map to three independent native calls.
type StencilFaceState struct {
	StencilFail StencilOp
	DepthFail   StencilOp
	DepthPass   StencilOp

	Func     CompareFunc
	Ref      int32
	ReadMask uint32

	WriteMask uint32
}

// DepthState is the depth test configuration of a graphics pipeline.
type DepthState struct {
	TestEnabled  bool
	WriteEnabled bool
	Func         CompareFunc
}

// StencilState is the two-faced stencil configuration of a graphics
// pipeline.
type StencilState struct {
	Enabled bool
	Front   StencilFaceState
	Back    StencilFaceState
}

// BlendFactor scales a blend input.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha

	numBlendFactors
)

// BlendOp combines the scaled blend inputs.
type BlendOp uint8

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax

	numBlendOps
)

// ColorMask selects which channels a draw writes.
type ColorMask uint8

const (
	ColorMaskR ColorMask = 1 << iota
	ColorMaskG
	ColorMaskB
	ColorMaskA

	ColorMaskAll = ColorMaskR | ColorMaskG | ColorMaskB | ColorMaskA
)

// BlendTargetState is the blend configuration of one draw buffer.
type BlendTargetState struct {
	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
	Mask     ColorMask
}

// DefaultBlendTarget returns a pass-through blend target state writing
// all channels.
func DefaultBlendTarget() BlendTargetState {
	return BlendTargetState{
		SrcColor: BlendOne,
		DstColor: BlendZero,
		ColorOp:  BlendAdd,
		SrcAlpha: BlendOne,
		DstAlpha: BlendZero,
		AlphaOp:  BlendAdd,
		Mask:     ColorMaskAll,
	}
}

// BlendState is the blend configuration of a graphics pipeline. One
// target applies globally; multiple targets apply per draw buffer where
// the device supports it.
type BlendState struct {
	Enabled bool
	Targets []BlendTargetState
}

// CullMode selects which primitive faces are discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// RasterizerState is the fixed-function raster configuration of a
// graphics pipeline.
type RasterizerState struct {
	Cull               CullMode
	FrontCCW           bool
	ScissorEnabled     bool
	MultisampleEnabled bool
	DepthClampEnabled  bool
}

// GraphicsPipelineDescriptor fixes a graphics pipeline's creation-time
// state.
type GraphicsPipelineDescriptor struct {
	Name string

	// Program is the linked shader set the pipeline runs.
	Program ShaderProgram

	// Topology is the primitive topology draws assemble.
	Topology PrimitiveTopology

	// Layout is the vertex input layout the input assembler is
	// configured for.
	Layout VertexFormat

	Depth      DepthState
	Stencil    StencilState
	Blend      BlendState
	Rasterizer RasterizerState

	// PatchVertices is the patch control point count when Topology is
	// TopologyPatches.
	PatchVertices uint32
}

// GraphicsPipeline is an immutable bundle of graphics state.
type GraphicsPipeline interface {
	Resource

	// Descriptor returns the creation-time state.
	Descriptor() GraphicsPipelineDescriptor
}

// ComputePipelineDescriptor fixes a compute pipeline's creation-time
// state.
type ComputePipelineDescriptor struct {
	Name    string
	Program ShaderProgram
}

// ComputePipeline is an immutable compute dispatch configuration.
type ComputePipeline interface {
	Resource

	// Descriptor returns the creation-time state.
	Descriptor() ComputePipelineDescriptor
}

// QueryType selects what a query measures.
type QueryType uint8

const (
	// QuerySamplesPassed counts samples passing the depth test.
	QuerySamplesPassed QueryType = iota

	// QueryAnySamplesPassed is a boolean occlusion query.
	QueryAnySamplesPassed

	// QueryPrimitivesGenerated counts primitives emitted by the
	// geometry stage.
	QueryPrimitivesGenerated

	// QueryTimeElapsed measures GPU time in nanoseconds.
	QueryTimeElapsed

	numQueryTypes
)

// Query measures a value on the device between Begin and End.
type Query interface {
	Resource

	// Type reports what the query measures.
	Type() QueryType
}

// RenderTargetDescriptor describes an offscreen render destination.
type RenderTargetDescriptor struct {
	Name string

	// ColorAttachments are the textures draws write color into.
	ColorAttachments []Texture

	// DepthStencil optionally receives depth/stencil output.
	DepthStencil Texture
}

// RenderTarget is a draw destination with known extent.
type RenderTarget interface {
	Resource

	// Extent returns the width and height in pixels.
	Extent() (width, height uint32)

	// NumColorAttachments returns how many color attachments the
	// target carries.
	NumColorAttachments() uint32
}
