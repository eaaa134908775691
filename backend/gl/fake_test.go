package gl

import (
	"fmt"
	"strings"
)

// recordingFuncs is a Functions test double that records every native
// call as a formatted string. Tests assert on call counts and order to
// verify that the cache forwards exactly the calls it should.
type recordingFuncs struct {
	calls []string

	// enabled seeds IsEnabled answers for Reset tests.
	enabled map[uint32]bool

	// integers seeds GetInteger answers.
	integers map[uint32]int32

	// strings seeds GetString answers.
	strs map[uint32]string

	nextName uint32
}

func newRecordingFuncs() *recordingFuncs {
	return &recordingFuncs{
		enabled:  map[uint32]bool{},
		integers: map[uint32]int32{},
		strs:     map[uint32]string{},
	}
}

func (f *recordingFuncs) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// count returns how many recorded calls start with prefix.
func (f *recordingFuncs) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *recordingFuncs) reset() { f.calls = nil }

func (f *recordingFuncs) name() uint32 {
	f.nextName++
	return f.nextName
}

func (f *recordingFuncs) Enable(cap uint32)  { f.record("Enable(%d)", cap) }
func (f *recordingFuncs) Disable(cap uint32) { f.record("Disable(%d)", cap) }

func (f *recordingFuncs) IsEnabled(cap uint32) bool { return f.enabled[cap] }

func (f *recordingFuncs) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer(%d,%d)", target, buffer)
}

func (f *recordingFuncs) BindBufferBase(target, index, buffer uint32) {
	f.record("BindBufferBase(%d,%d,%d)", target, index, buffer)
}

func (f *recordingFuncs) BindVertexArray(array uint32) {
	f.record("BindVertexArray(%d)", array)
}

func (f *recordingFuncs) BindFramebuffer(target, framebuffer uint32) {
	f.record("BindFramebuffer(%d,%d)", target, framebuffer)
}

func (f *recordingFuncs) ActiveTexture(unit uint32) { f.record("ActiveTexture(%d)", unit) }

func (f *recordingFuncs) BindTexture(target, texture uint32) {
	f.record("BindTexture(%d,%d)", target, texture)
}

func (f *recordingFuncs) BindSampler(unit, sampler uint32) {
	f.record("BindSampler(%d,%d)", unit, sampler)
}

func (f *recordingFuncs) UseProgram(program uint32) { f.record("UseProgram(%d)", program) }

func (f *recordingFuncs) Viewport(x, y, width, height int32) {
	f.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

func (f *recordingFuncs) ViewportArray(first uint32, viewports []float32) {
	f.record("ViewportArray(%d,%v)", first, viewports)
}

func (f *recordingFuncs) Scissor(x, y, width, height int32) {
	f.record("Scissor(%d,%d,%d,%d)", x, y, width, height)
}

func (f *recordingFuncs) ScissorArray(first uint32, boxes []int32) {
	f.record("ScissorArray(%d,%v)", first, boxes)
}

func (f *recordingFuncs) DepthRange(near, far float64) {
	f.record("DepthRange(%g,%g)", near, far)
}

func (f *recordingFuncs) DepthRangeArray(first uint32, ranges []float64) {
	f.record("DepthRangeArray(%d,%v)", first, ranges)
}

func (f *recordingFuncs) ClipControl(origin, depth uint32) {
	f.record("ClipControl(%d,%d)", origin, depth)
}

func (f *recordingFuncs) ColorMask(r, g, b, a bool) {
	f.record("ColorMask(%t,%t,%t,%t)", r, g, b, a)
}

func (f *recordingFuncs) ColorMaskIndexed(buf uint32, r, g, b, a bool) {
	f.record("ColorMaskIndexed(%d,%t,%t,%t,%t)", buf, r, g, b, a)
}

func (f *recordingFuncs) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparate(%d,%d,%d,%d)", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *recordingFuncs) BlendFuncSeparateIndexed(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparateIndexed(%d,%d,%d,%d,%d)", buf, srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *recordingFuncs) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.record("BlendEquationSeparate(%d,%d)", modeRGB, modeAlpha)
}

func (f *recordingFuncs) BlendEquationSeparateIndexed(buf, modeRGB, modeAlpha uint32) {
	f.record("BlendEquationSeparateIndexed(%d,%d,%d)", buf, modeRGB, modeAlpha)
}

func (f *recordingFuncs) DrawBuffer(buf uint32) { f.record("DrawBuffer(%d)", buf) }

func (f *recordingFuncs) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	f.record("StencilOpSeparate(%d,%d,%d,%d)", face, sfail, dpfail, dppass)
}

func (f *recordingFuncs) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.record("StencilFuncSeparate(%d,%d,%d,%d)", face, fn, ref, mask)
}

func (f *recordingFuncs) StencilMaskSeparate(face, mask uint32) {
	f.record("StencilMaskSeparate(%d,%d)", face, mask)
}

func (f *recordingFuncs) DepthFunc(fn uint32)   { f.record("DepthFunc(%d)", fn) }
func (f *recordingFuncs) DepthMask(flag bool)   { f.record("DepthMask(%t)", flag) }
func (f *recordingFuncs) CullFace(mode uint32)  { f.record("CullFace(%d)", mode) }
func (f *recordingFuncs) FrontFace(mode uint32) { f.record("FrontFace(%d)", mode) }

func (f *recordingFuncs) PatchParameteri(pname uint32, value int32) {
	f.record("PatchParameteri(%d,%d)", pname, value)
}

func (f *recordingFuncs) ClearColor(r, g, b, a float32) {
	f.record("ClearColor(%g,%g,%g,%g)", r, g, b, a)
}

func (f *recordingFuncs) ClearDepth(depth float64)     { f.record("ClearDepth(%g)", depth) }
func (f *recordingFuncs) ClearStencil(stencil int32)   { f.record("ClearStencil(%d)", stencil) }
func (f *recordingFuncs) Clear(mask uint32)            { f.record("Clear(%d)", mask) }

func (f *recordingFuncs) ClearBufferfv(buffer uint32, drawBuffer int32, values [4]float32) {
	f.record("ClearBufferfv(%d,%d,%v)", buffer, drawBuffer, values)
}

func (f *recordingFuncs) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays(%d,%d,%d)", mode, first, count)
}

func (f *recordingFuncs) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	f.record("DrawArraysInstanced(%d,%d,%d,%d)", mode, first, count, instanceCount)
}

func (f *recordingFuncs) DrawArraysInstancedBaseInstance(mode uint32, first, count, instanceCount int32, baseInstance uint32) {
	f.record("DrawArraysInstancedBaseInstance(%d,%d,%d,%d,%d)", mode, first, count, instanceCount, baseInstance)
}

func (f *recordingFuncs) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {
	f.record("DrawElements(%d,%d,%d,%d)", mode, count, indexType, offset)
}

func (f *recordingFuncs) DrawElementsBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, baseVertex int32) {
	f.record("DrawElementsBaseVertex(%d,%d,%d,%d,%d)", mode, count, indexType, offset, baseVertex)
}

func (f *recordingFuncs) DrawElementsInstanced(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount int32) {
	f.record("DrawElementsInstanced(%d,%d,%d,%d,%d)", mode, count, indexType, offset, instanceCount)
}

func (f *recordingFuncs) DrawElementsInstancedBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32) {
	f.record("DrawElementsInstancedBaseVertex(%d,%d,%d,%d,%d,%d)",
		mode, count, indexType, offset, instanceCount, baseVertex)
}

func (f *recordingFuncs) DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32, baseInstance uint32) {
	f.record("DrawElementsInstancedBaseVertexBaseInstance(%d,%d,%d,%d,%d,%d,%d)",
		mode, count, indexType, offset, instanceCount, baseVertex, baseInstance)
}

func (f *recordingFuncs) DispatchCompute(x, y, z uint32) {
	f.record("DispatchCompute(%d,%d,%d)", x, y, z)
}

func (f *recordingFuncs) Finish() { f.record("Finish()") }

func (f *recordingFuncs) GenQuery() uint32 {
	id := f.name()
	f.record("GenQuery()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteQuery(id uint32) { f.record("DeleteQuery(%d)", id) }

func (f *recordingFuncs) BeginQuery(target, id uint32) {
	f.record("BeginQuery(%d,%d)", target, id)
}

func (f *recordingFuncs) EndQuery(target uint32) { f.record("EndQuery(%d)", target) }

func (f *recordingFuncs) QueryResultAvailable(id uint32) bool {
	f.record("QueryResultAvailable(%d)", id)
	return true
}

func (f *recordingFuncs) QueryResult(id uint32) uint64 {
	f.record("QueryResult(%d)", id)
	return 0
}

func (f *recordingFuncs) BeginConditionalRender(id, mode uint32) {
	f.record("BeginConditionalRender(%d,%d)", id, mode)
}

func (f *recordingFuncs) EndConditionalRender() { f.record("EndConditionalRender()") }

func (f *recordingFuncs) BeginTransformFeedback(primitiveMode uint32) {
	f.record("BeginTransformFeedback(%d)", primitiveMode)
}

func (f *recordingFuncs) EndTransformFeedback() { f.record("EndTransformFeedback()") }

func (f *recordingFuncs) GenBuffer() uint32 {
	id := f.name()
	f.record("GenBuffer()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteBuffer(buffer uint32) { f.record("DeleteBuffer(%d)", buffer) }

func (f *recordingFuncs) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.record("BufferData(%d,%d,%d)", target, size, usage)
}

func (f *recordingFuncs) BufferSubData(target uint32, offset int, data []byte) {
	f.record("BufferSubData(%d,%d,%d)", target, offset, len(data))
}

func (f *recordingFuncs) GenTexture() uint32 {
	id := f.name()
	f.record("GenTexture()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteTexture(texture uint32) { f.record("DeleteTexture(%d)", texture) }

func (f *recordingFuncs) TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32) {
	f.record("TexStorage1D(%d,%d,%d,%d)", target, levels, internalFormat, width)
}

func (f *recordingFuncs) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	f.record("TexStorage2D(%d,%d,%d,%d,%d)", target, levels, internalFormat, width, height)
}

func (f *recordingFuncs) TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool) {
	f.record("TexStorage2DMultisample(%d,%d,%d,%d,%d,%t)", target, samples, internalFormat, width, height, fixedLocations)
}

func (f *recordingFuncs) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	f.record("TexStorage3D(%d,%d,%d,%d,%d,%d)", target, levels, internalFormat, width, height, depth)
}

func (f *recordingFuncs) TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool) {
	f.record("TexStorage3DMultisample(%d,%d,%d,%d,%d,%d,%t)",
		target, samples, internalFormat, width, height, depth, fixedLocations)
}

func (f *recordingFuncs) GenSampler() uint32 {
	id := f.name()
	f.record("GenSampler()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteSampler(sampler uint32) { f.record("DeleteSampler(%d)", sampler) }

func (f *recordingFuncs) SamplerParameteri(sampler, pname uint32, param int32) {
	f.record("SamplerParameteri(%d,%d,%d)", sampler, pname, param)
}

func (f *recordingFuncs) GenVertexArray() uint32 {
	id := f.name()
	f.record("GenVertexArray()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteVertexArray(array uint32) { f.record("DeleteVertexArray(%d)", array) }

func (f *recordingFuncs) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray(%d)", index)
}

func (f *recordingFuncs) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer(%d,%d,%d,%t,%d,%d)", index, size, xtype, normalized, stride, offset)
}

func (f *recordingFuncs) GenFramebuffer() uint32 {
	id := f.name()
	f.record("GenFramebuffer()=%d", id)
	return id
}

func (f *recordingFuncs) DeleteFramebuffer(framebuffer uint32) {
	f.record("DeleteFramebuffer(%d)", framebuffer)
}

func (f *recordingFuncs) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	f.record("FramebufferTexture2D(%d,%d,%d,%d,%d)", target, attachment, texTarget, texture, level)
}

func (f *recordingFuncs) CheckFramebufferStatus(target uint32) uint32 {
	f.record("CheckFramebufferStatus(%d)", target)
	return glFramebufferComplete
}

func (f *recordingFuncs) DrawBuffers(bufs []uint32) { f.record("DrawBuffers(%v)", bufs) }

func (f *recordingFuncs) CreateShader(xtype uint32) uint32 {
	id := f.name()
	f.record("CreateShader(%d)=%d", xtype, id)
	return id
}

func (f *recordingFuncs) ShaderSource(shader uint32, source string) {
	f.record("ShaderSource(%d)", shader)
}

func (f *recordingFuncs) CompileShader(shader uint32) { f.record("CompileShader(%d)", shader) }

func (f *recordingFuncs) GetShaderParameter(shader, pname uint32) int32 { return 1 }

func (f *recordingFuncs) GetShaderInfoLog(shader uint32) string { return "" }

func (f *recordingFuncs) DeleteShader(shader uint32) { f.record("DeleteShader(%d)", shader) }

func (f *recordingFuncs) CreateProgram() uint32 {
	id := f.name()
	f.record("CreateProgram()=%d", id)
	return id
}

func (f *recordingFuncs) AttachShader(program, shader uint32) {
	f.record("AttachShader(%d,%d)", program, shader)
}

func (f *recordingFuncs) LinkProgram(program uint32) { f.record("LinkProgram(%d)", program) }

func (f *recordingFuncs) GetProgramParameter(program, pname uint32) int32 { return 1 }

func (f *recordingFuncs) GetProgramInfoLog(program uint32) string { return "" }

func (f *recordingFuncs) DeleteProgram(program uint32) { f.record("DeleteProgram(%d)", program) }

func (f *recordingFuncs) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	return "", 0, 0
}

func (f *recordingFuncs) GetAttribLocation(program uint32, name string) int32 { return -1 }

func (f *recordingFuncs) GetError() uint32 { return 0 }

func (f *recordingFuncs) GetInteger(pname uint32) int32 { return f.integers[pname] }

func (f *recordingFuncs) GetIntegerIndexed(pname, index uint32) int32 {
	return f.integers[pname]
}

func (f *recordingFuncs) GetFloat(pname uint32) float32 { return 0 }

func (f *recordingFuncs) GetString(pname uint32) string { return f.strs[pname] }

func (f *recordingFuncs) GetStringIndexed(pname, index uint32) string { return "" }
