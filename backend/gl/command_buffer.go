package gl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
)

// glCommandBuffer translates abstract commands into native calls,
// routing all state changes through the device's state cache. It
// performs no validation; wrap it in the debug layer for that.
type glCommandBuffer struct {
	dev   *glDevice
	fns   Functions
	cache *StateCache
	feats Features

	clearColor   rhi.Color
	clearDepth   float32
	clearStencil uint32

	topologyEnum uint32
	indexFormat  rhi.IndexFormat
}

func newCommandBuffer(dev *glDevice) *glCommandBuffer {
	return &glCommandBuffer{
		dev:          dev,
		fns:          dev.fns,
		cache:        dev.cache,
		feats:        dev.feats,
		clearDepth:   1,
		topologyEnum: topologyEnums[rhi.TopologyTriangleList],
	}
}

// ----- Configuration -----

func (cb *glCommandBuffer) SetViewport(viewport rhi.Viewport) {
	cb.SetViewports([]rhi.Viewport{viewport})
}

func (cb *glCommandBuffer) SetViewports(viewports []rhi.Viewport) {
	cb.cache.SetViewports(viewports)
	ranges := make([]rhi.DepthRange, len(viewports))
	for i, vp := range viewports {
		ranges[i] = rhi.DepthRange{Min: float64(vp.MinDepth), Max: float64(vp.MaxDepth)}
	}
	cb.cache.SetDepthRanges(ranges)
}

func (cb *glCommandBuffer) SetScissor(scissor rhi.Scissor) {
	cb.cache.SetScissors([]rhi.Scissor{scissor})
}

func (cb *glCommandBuffer) SetScissors(scissors []rhi.Scissor) {
	cb.cache.SetScissors(scissors)
}

func (cb *glCommandBuffer) SetClearColor(color rhi.Color) {
	cb.clearColor = color
	cb.fns.ClearColor(color.R, color.G, color.B, color.A)
}

func (cb *glCommandBuffer) SetClearDepth(depth float32) {
	cb.clearDepth = depth
	cb.fns.ClearDepth(float64(depth))
}

func (cb *glCommandBuffer) SetClearStencil(stencil uint32) {
	cb.clearStencil = stencil
	cb.fns.ClearStencil(int32(stencil))
}

func (cb *glCommandBuffer) Clear(flags rhi.ClearFlags) {
	var mask uint32
	if flags&rhi.ClearColorBuffer != 0 {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if flags&rhi.ClearDepthBuffer != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
		// Depth clears require depth writes on.
		cb.cache.SetDepthMask(true)
	}
	if flags&rhi.ClearStencilBuffer != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		cb.fns.Clear(mask)
	}
}

func (cb *glCommandBuffer) ClearAttachment(index uint32, color rhi.Color) {
	cb.fns.ClearBufferfv(gl.COLOR, int32(index), [4]float32{color.R, color.G, color.B, color.A})
}

// ----- Resource binding -----

func (cb *glCommandBuffer) SetVertexBuffer(buffer rhi.Buffer) {
	buf := buffer.(*glBuffer)
	if buf.vao != 0 {
		cb.cache.BindVertexArray(buf.vao)
		return
	}
	cb.cache.BindBuffer(TargetArrayBuffer, buf.id)
}

func (cb *glCommandBuffer) SetIndexBuffer(buffer rhi.Buffer) {
	buf := buffer.(*glBuffer)
	cb.indexFormat = buf.desc.IndexFormat
	cb.cache.BindBuffer(TargetElementArrayBuffer, buf.id)
}

func (cb *glCommandBuffer) SetConstantBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	// GL binding points are global; stage visibility is the program's
	// concern.
	_ = stages
	cb.cache.BindBufferBase(TargetUniformBuffer, slot, buffer.(*glBuffer).id)
}

func (cb *glCommandBuffer) SetStorageBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	_ = stages
	cb.cache.BindBufferBase(TargetShaderStorageBuffer, slot, buffer.(*glBuffer).id)
}

func (cb *glCommandBuffer) SetStreamOutputBuffer(buffer rhi.Buffer) {
	cb.cache.BindBufferBase(TargetTransformFeedbackBuffer, 0, buffer.(*glBuffer).id)
}

func (cb *glCommandBuffer) SetTexture(slot uint32, texture rhi.Texture, stages rhi.ShaderStages) {
	_ = stages
	tex := texture.(*glTexture)
	cb.cache.ActiveTexture(int(slot))
	cb.cache.BindTexture(tex.target, tex.id)
}

func (cb *glCommandBuffer) SetSampler(slot uint32, sampler rhi.Sampler, stages rhi.ShaderStages) {
	_ = stages
	cb.cache.BindSampler(int(slot), sampler.(*glSampler).id)
}

func (cb *glCommandBuffer) SetRenderTarget(target rhi.RenderTarget) {
	if target == nil {
		cb.cache.BindFramebuffer(FramebufferCombined, 0)
		return
	}
	rt := target.(*glRenderTarget)
	cb.cache.BindFramebuffer(FramebufferCombined, rt.fbo)
	cb.cache.NotifyRenderTargetHeight(int32(rt.height))
}

func (cb *glCommandBuffer) UpdateBuffer(buffer rhi.Buffer, offset uint64, data []byte) {
	buf := buffer.(*glBuffer)
	cb.cache.PushBoundBuffer(buf.target)
	cb.cache.BindBuffer(buf.target, buf.id)
	cb.fns.BufferSubData(bufferTargetEnums[buf.target], int(offset), data)
	cb.cache.PopBoundBuffer()
}

// ----- Pipelines -----

func (cb *glCommandBuffer) SetGraphicsPipeline(pipeline rhi.GraphicsPipeline) {
	p := pipeline.(*glGraphicsPipeline)
	p.apply(cb.cache)
	cb.topologyEnum = p.topologyEnum
}

func (cb *glCommandBuffer) SetComputePipeline(pipeline rhi.ComputePipeline) {
	pipeline.(*glComputePipeline).apply(cb.cache)
}

// ----- Queries and conditional rendering -----

func (cb *glCommandBuffer) BeginQuery(query rhi.Query) {
	q := query.(*glQuery)
	cb.fns.BeginQuery(queryTargetEnums[q.qtype], q.id)
}

func (cb *glCommandBuffer) EndQuery(query rhi.Query) {
	q := query.(*glQuery)
	cb.fns.EndQuery(queryTargetEnums[q.qtype])
}

func (cb *glCommandBuffer) QueryResult(query rhi.Query) (uint64, bool) {
	q := query.(*glQuery)
	if !cb.fns.QueryResultAvailable(q.id) {
		return 0, false
	}
	return cb.fns.QueryResult(q.id), true
}

func (cb *glCommandBuffer) BeginRenderCondition(query rhi.Query, mode rhi.RenderConditionMode) {
	cb.fns.BeginConditionalRender(query.(*glQuery).id, renderConditionEnum(mode))
}

func (cb *glCommandBuffer) EndRenderCondition() {
	cb.fns.EndConditionalRender()
}

// ----- Stream output -----

func (cb *glCommandBuffer) BeginStreamOutput(topology rhi.PrimitiveTopology) {
	cb.fns.BeginTransformFeedback(streamOutputPrimitiveEnum(topology))
}

func (cb *glCommandBuffer) EndStreamOutput() {
	cb.fns.EndTransformFeedback()
}

// ----- Drawing -----

// The base-instance draw variants are GL 4.2 entry points, so calls
// with a nonzero firstInstance are only expressible when the context
// has them. Everything else routes through entry points that exist on
// any 3.3 context.

func (cb *glCommandBuffer) Draw(numVertices, firstVertex uint32) {
	cb.fns.DrawArrays(cb.topologyEnum, int32(firstVertex), int32(numVertices))
}

func (cb *glCommandBuffer) DrawIndexed(numIndices, firstIndex uint32, vertexOffset int32) {
	offset := uintptr(firstIndex) * uintptr(cb.indexFormat.Size())
	if vertexOffset == 0 {
		cb.fns.DrawElements(cb.topologyEnum, int32(numIndices), indexTypeEnum(cb.indexFormat), offset)
		return
	}
	cb.fns.DrawElementsBaseVertex(cb.topologyEnum, int32(numIndices),
		indexTypeEnum(cb.indexFormat), offset, vertexOffset)
}

func (cb *glCommandBuffer) DrawInstanced(numVertices, firstVertex, numInstances, firstInstance uint32) {
	if firstInstance == 0 {
		cb.fns.DrawArraysInstanced(cb.topologyEnum, int32(firstVertex), int32(numVertices),
			int32(numInstances))
		return
	}
	if !cb.feats.HasBaseInstance {
		rhi.Logger().Warn("gl: dropping instanced draw, context cannot offset the instance ID",
			"firstInstance", firstInstance)
		return
	}
	cb.fns.DrawArraysInstancedBaseInstance(cb.topologyEnum, int32(firstVertex), int32(numVertices),
		int32(numInstances), firstInstance)
}

func (cb *glCommandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	offset := uintptr(firstIndex) * uintptr(cb.indexFormat.Size())
	switch {
	case firstInstance == 0 && vertexOffset == 0:
		cb.fns.DrawElementsInstanced(cb.topologyEnum, int32(numIndices),
			indexTypeEnum(cb.indexFormat), offset, int32(numInstances))
	case firstInstance == 0:
		cb.fns.DrawElementsInstancedBaseVertex(cb.topologyEnum, int32(numIndices),
			indexTypeEnum(cb.indexFormat), offset, int32(numInstances), vertexOffset)
	case cb.feats.HasBaseInstance:
		cb.fns.DrawElementsInstancedBaseVertexBaseInstance(cb.topologyEnum, int32(numIndices),
			indexTypeEnum(cb.indexFormat), offset, int32(numInstances), vertexOffset, firstInstance)
	default:
		rhi.Logger().Warn("gl: dropping indexed instanced draw, context cannot offset the instance ID",
			"firstInstance", firstInstance)
	}
}

func (cb *glCommandBuffer) Dispatch(x, y, z uint32) {
	if !cb.feats.HasComputeShaders {
		rhi.Logger().Warn("gl: dropping dispatch, context has no compute shaders")
		return
	}
	cb.fns.DispatchCompute(x, y, z)
}

// ----- Synchronization -----

func (cb *glCommandBuffer) SyncGPU() {
	cb.fns.Finish()
}
