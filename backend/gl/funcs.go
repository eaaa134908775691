package gl

// Functions is the closed set of native entry points this backend
// issues. All state-changing calls go through the StateCache first; the
// cache and the command buffer never call the driver directly for
// anything outside this set.
//
// The production implementation is glFunctions (go-gl); tests use a
// counting fake. Enum arguments are native GLenum values produced by
// the lockstep tables in tables.go.
type Functions interface {
	// ----- Capability toggles -----

	Enable(cap uint32)
	Disable(cap uint32)
	IsEnabled(cap uint32) bool

	// ----- Buffer and vertex-array binding -----

	BindBuffer(target, buffer uint32)
	BindBufferBase(target, index, buffer uint32)
	BindVertexArray(array uint32)
	BindFramebuffer(target, framebuffer uint32)

	// ----- Texture and sampler binding -----

	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	BindSampler(unit, sampler uint32)

	// ----- Program binding -----

	UseProgram(program uint32)

	// ----- Viewport, scissor, depth range -----

	Viewport(x, y, width, height int32)
	ViewportArray(first uint32, viewports []float32)
	Scissor(x, y, width, height int32)
	ScissorArray(first uint32, boxes []int32)
	DepthRange(near, far float64)
	DepthRangeArray(first uint32, ranges []float64)
	ClipControl(origin, depth uint32)

	// ----- Blend and color mask -----

	ColorMask(r, g, b, a bool)
	ColorMaskIndexed(buf uint32, r, g, b, a bool)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendFuncSeparateIndexed(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendEquationSeparateIndexed(buf, modeRGB, modeAlpha uint32)
	DrawBuffer(buf uint32)

	// ----- Stencil -----

	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilMaskSeparate(face, mask uint32)

	// ----- Depth and raster state -----

	DepthFunc(fn uint32)
	DepthMask(flag bool)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	PatchParameteri(pname uint32, value int32)

	// ----- Clears -----

	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	ClearStencil(stencil int32)
	Clear(mask uint32)
	ClearBufferfv(buffer uint32, drawBuffer int32, values [4]float32)

	// ----- Draws and dispatch -----

	DrawArrays(mode uint32, first, count int32)
	DrawArraysInstanced(mode uint32, first, count, instanceCount int32)
	DrawArraysInstancedBaseInstance(mode uint32, first, count, instanceCount int32, baseInstance uint32)
	DrawElements(mode uint32, count int32, indexType uint32, offset uintptr)
	DrawElementsBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, baseVertex int32)
	DrawElementsInstanced(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount int32)
	DrawElementsInstancedBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32)
	DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32, baseInstance uint32)
	DispatchCompute(x, y, z uint32)
	Finish()

	// ----- Queries and conditional rendering -----

	GenQuery() uint32
	DeleteQuery(id uint32)
	BeginQuery(target, id uint32)
	EndQuery(target uint32)
	QueryResultAvailable(id uint32) bool
	QueryResult(id uint32) uint64
	BeginConditionalRender(id, mode uint32)
	EndConditionalRender()

	// ----- Transform feedback -----

	BeginTransformFeedback(primitiveMode uint32)
	EndTransformFeedback()

	// ----- Resource creation -----

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32)
	TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32)
	TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool)
	TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32)
	TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool)

	GenSampler() uint32
	DeleteSampler(sampler uint32)
	SamplerParameteri(sampler, pname uint32, param int32)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32
	DrawBuffers(bufs []uint32)

	// ----- Shaders and programs -----

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderParameter(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramParameter(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32)
	GetAttribLocation(program uint32, name string) int32

	// ----- Introspection -----

	GetError() uint32
	GetInteger(pname uint32) int32
	GetIntegerIndexed(pname, index uint32) int32
	GetFloat(pname uint32) float32
	GetString(pname uint32) string
	GetStringIndexed(pname, index uint32) string
}
