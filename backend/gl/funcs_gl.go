package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// glFunctions is the production Functions implementation backed by
// go-gl. The loader resolves entry points from the context current on
// the calling goroutine.
type glFunctions struct{}

// newFunctions loads the native entry points. Fails when no context is
// current.
func newFunctions() (Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl: loading entry points: %w", err)
	}
	return glFunctions{}, nil
}

func (glFunctions) Enable(cap uint32)  { gl.Enable(cap) }
func (glFunctions) Disable(cap uint32) { gl.Disable(cap) }

func (glFunctions) IsEnabled(cap uint32) bool { return gl.IsEnabled(cap) }

func (glFunctions) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (glFunctions) BindBufferBase(target, index, buffer uint32) {
	gl.BindBufferBase(target, index, buffer)
}

func (glFunctions) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (glFunctions) BindFramebuffer(target, framebuffer uint32) {
	gl.BindFramebuffer(target, framebuffer)
}

func (glFunctions) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (glFunctions) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (glFunctions) BindSampler(unit, sampler uint32) { gl.BindSampler(unit, sampler) }

func (glFunctions) UseProgram(program uint32) { gl.UseProgram(program) }

func (glFunctions) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (glFunctions) ViewportArray(first uint32, viewports []float32) {
	gl.ViewportArrayv(first, int32(len(viewports)/4), &viewports[0])
}

func (glFunctions) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

func (glFunctions) ScissorArray(first uint32, boxes []int32) {
	gl.ScissorArrayv(first, int32(len(boxes)/4), &boxes[0])
}

func (glFunctions) DepthRange(near, far float64) { gl.DepthRange(near, far) }

func (glFunctions) DepthRangeArray(first uint32, ranges []float64) {
	gl.DepthRangeArrayv(first, int32(len(ranges)/2), &ranges[0])
}

func (glFunctions) ClipControl(origin, depth uint32) { gl.ClipControl(origin, depth) }

func (glFunctions) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }

func (glFunctions) ColorMaskIndexed(buf uint32, r, g, b, a bool) {
	gl.ColorMaski(buf, r, g, b, a)
}

func (glFunctions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (glFunctions) BlendFuncSeparateIndexed(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparatei(buf, srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (glFunctions) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (glFunctions) BlendEquationSeparateIndexed(buf, modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparatei(buf, modeRGB, modeAlpha)
}

func (glFunctions) DrawBuffer(buf uint32) { gl.DrawBuffer(buf) }

func (glFunctions) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	gl.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (glFunctions) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}

func (glFunctions) StencilMaskSeparate(face, mask uint32) {
	gl.StencilMaskSeparate(face, mask)
}

func (glFunctions) DepthFunc(fn uint32)   { gl.DepthFunc(fn) }
func (glFunctions) DepthMask(flag bool)   { gl.DepthMask(flag) }
func (glFunctions) CullFace(mode uint32)  { gl.CullFace(mode) }
func (glFunctions) FrontFace(mode uint32) { gl.FrontFace(mode) }

func (glFunctions) PatchParameteri(pname uint32, value int32) {
	gl.PatchParameteri(pname, value)
}

func (glFunctions) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (glFunctions) ClearDepth(depth float64)      { gl.ClearDepth(depth) }
func (glFunctions) ClearStencil(stencil int32)    { gl.ClearStencil(stencil) }
func (glFunctions) Clear(mask uint32)             { gl.Clear(mask) }

func (glFunctions) ClearBufferfv(buffer uint32, drawBuffer int32, values [4]float32) {
	gl.ClearBufferfv(buffer, drawBuffer, &values[0])
}

func (glFunctions) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (glFunctions) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	gl.DrawArraysInstanced(mode, first, count, instanceCount)
}

func (glFunctions) DrawArraysInstancedBaseInstance(mode uint32, first, count, instanceCount int32, baseInstance uint32) {
	gl.DrawArraysInstancedBaseInstance(mode, first, count, instanceCount, baseInstance)
}

func (glFunctions) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, indexType, offset)
}

func (glFunctions) DrawElementsBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, baseVertex int32) {
	gl.DrawElementsBaseVertex(mode, count, indexType, unsafe.Pointer(offset), baseVertex) //nolint:govet
}

func (glFunctions) DrawElementsInstanced(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount int32) {
	gl.DrawElementsInstanced(mode, count, indexType, unsafe.Pointer(offset), instanceCount) //nolint:govet
}

func (glFunctions) DrawElementsInstancedBaseVertex(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32) {
	gl.DrawElementsInstancedBaseVertex(mode, count, indexType,
		unsafe.Pointer(offset), instanceCount, baseVertex) //nolint:govet
}

func (glFunctions) DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int32, indexType uint32, offset uintptr, instanceCount, baseVertex int32, baseInstance uint32) {
	gl.DrawElementsInstancedBaseVertexBaseInstance(mode, count, indexType,
		unsafe.Pointer(offset), instanceCount, baseVertex, baseInstance) //nolint:govet
}

func (glFunctions) DispatchCompute(x, y, z uint32) { gl.DispatchCompute(x, y, z) }

func (glFunctions) Finish() { gl.Finish() }

func (glFunctions) GenQuery() uint32 {
	var id uint32
	gl.GenQueries(1, &id)
	return id
}

func (glFunctions) DeleteQuery(id uint32) { gl.DeleteQueries(1, &id) }

func (glFunctions) BeginQuery(target, id uint32) { gl.BeginQuery(target, id) }

func (glFunctions) EndQuery(target uint32) { gl.EndQuery(target) }

func (glFunctions) QueryResultAvailable(id uint32) bool {
	var available uint32
	gl.GetQueryObjectuiv(id, gl.QUERY_RESULT_AVAILABLE, &available)
	return available != 0
}

func (glFunctions) QueryResult(id uint32) uint64 {
	var result uint64
	gl.GetQueryObjectui64v(id, gl.QUERY_RESULT, &result)
	return result
}

func (glFunctions) BeginConditionalRender(id, mode uint32) {
	gl.BeginConditionalRender(id, mode)
}

func (glFunctions) EndConditionalRender() { gl.EndConditionalRender() }

func (glFunctions) BeginTransformFeedback(primitiveMode uint32) {
	gl.BeginTransformFeedback(primitiveMode)
}

func (glFunctions) EndTransformFeedback() { gl.EndTransformFeedback() }

func (glFunctions) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (glFunctions) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (glFunctions) BufferData(target uint32, size int, data []byte, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, size, ptr, usage)
}

func (glFunctions) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
}

func (glFunctions) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (glFunctions) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (glFunctions) TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32) {
	gl.TexStorage1D(target, levels, internalFormat, width)
}

func (glFunctions) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	gl.TexStorage2D(target, levels, internalFormat, width, height)
}

func (glFunctions) TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool) {
	gl.TexStorage2DMultisample(target, samples, internalFormat, width, height, fixedLocations)
}

func (glFunctions) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	gl.TexStorage3D(target, levels, internalFormat, width, height, depth)
}

func (glFunctions) TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool) {
	gl.TexStorage3DMultisample(target, samples, internalFormat, width, height, depth, fixedLocations)
}

func (glFunctions) GenSampler() uint32 {
	var id uint32
	gl.GenSamplers(1, &id)
	return id
}

func (glFunctions) DeleteSampler(sampler uint32) { gl.DeleteSamplers(1, &sampler) }

func (glFunctions) SamplerParameteri(sampler, pname uint32, param int32) {
	gl.SamplerParameteri(sampler, pname, param)
}

func (glFunctions) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (glFunctions) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (glFunctions) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (glFunctions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (glFunctions) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (glFunctions) DeleteFramebuffer(framebuffer uint32) {
	gl.DeleteFramebuffers(1, &framebuffer)
}

func (glFunctions) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (glFunctions) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (glFunctions) DrawBuffers(bufs []uint32) {
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (glFunctions) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (glFunctions) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

func (glFunctions) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (glFunctions) GetShaderParameter(shader, pname uint32) int32 {
	var value int32
	gl.GetShaderiv(shader, pname, &value)
	return value
}

func (glFunctions) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glFunctions) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (glFunctions) CreateProgram() uint32 { return gl.CreateProgram() }

func (glFunctions) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (glFunctions) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (glFunctions) GetProgramParameter(program, pname uint32) int32 {
	var value int32
	gl.GetProgramiv(program, pname, &value)
	return value
}

func (glFunctions) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glFunctions) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (glFunctions) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	var (
		length int32
		size   int32
		xtype  uint32
	)
	buf := strings.Repeat("\x00", 256)
	gl.GetActiveAttrib(program, index, int32(len(buf)-1), &length, &size, &xtype, gl.Str(buf))
	return buf[:length], size, xtype
}

func (glFunctions) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (glFunctions) GetError() uint32 { return gl.GetError() }

func (glFunctions) GetInteger(pname uint32) int32 {
	var value int32
	gl.GetIntegerv(pname, &value)
	return value
}

func (glFunctions) GetIntegerIndexed(pname, index uint32) int32 {
	var value int32
	gl.GetIntegeri_v(pname, index, &value)
	return value
}

func (glFunctions) GetFloat(pname uint32) float32 {
	var value float32
	gl.GetFloatv(pname, &value)
	return value
}

func (glFunctions) GetString(pname uint32) string {
	return gl.GoStr(gl.GetString(pname))
}

func (glFunctions) GetStringIndexed(pname, index uint32) string {
	return gl.GoStr(gl.GetStringi(pname, index))
}
