// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

const fenceTimeout = 5 * time.Second

// wgpuCommandBuffer translates the immediate command surface into
// encoder passes. Commands accumulate in a native encoder; render
// passes open lazily on the first draw or clear against the current
// target and close when the target changes, a dispatch needs a
// compute pass, or the encoder is flushed. SyncGPU flushes and waits.
//
// It performs no validation; wrap it in the debug layer for that.
type wgpuCommandBuffer struct {
	dev *wgpuDevice

	encoder  hal.CommandEncoder
	encoding bool
	pass     hal.RenderPassEncoder

	target *wgpuRenderTarget

	clearColor   rhi.Color
	clearDepth   float32
	clearStencil uint32

	viewport    rhi.Viewport
	hasViewport bool
	scissor     rhi.Scissor
	hasScissor  bool

	bindings      bindingState
	bindingsDirty bool

	vertexBuffer *wgpuBuffer
	indexBuffer  *wgpuBuffer

	graphics *wgpuGraphicsPipeline
	compute  *wgpuComputePipeline

	// Per-pass applied state; reset when a pass begins.
	passEntry     *renderPipelineEntry
	appliedVertex *wgpuBuffer
	appliedIndex  *wgpuBuffer

	// Bind groups created since the last flush. They stay alive until
	// the submission that references them completes.
	liveGroups []hal.BindGroup

	warnedQueries   bool
	warnedStreamOut bool
	warnedCondition bool
}

func newCommandBuffer(dev *wgpuDevice) *wgpuCommandBuffer {
	return &wgpuCommandBuffer{
		dev:        dev,
		clearDepth: 1,
	}
}

// passLoadOps selects which attachments the next render pass clears
// instead of loading.
type passLoadOps struct {
	clearColors  map[int]gputypes.Color
	clearDepth   bool
	clearStencil bool
}

func (cb *wgpuCommandBuffer) ensureEncoder() bool {
	if cb.encoding {
		return true
	}
	if cb.encoder == nil {
		encoder, err := cb.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rhi_commands"})
		if err != nil {
			rhi.Logger().Warn("webgpu: create command encoder", "error", err)
			return false
		}
		cb.encoder = encoder
	}
	if err := cb.encoder.BeginEncoding("rhi_commands"); err != nil {
		rhi.Logger().Warn("webgpu: begin encoding", "error", err)
		return false
	}
	cb.encoding = true
	return true
}

// beginPass opens a render pass on the current target. Returns false
// when there is no target or no encoder.
func (cb *wgpuCommandBuffer) beginPass(ops passLoadOps) bool {
	if cb.target == nil {
		rhi.Logger().Warn("webgpu: no render target bound, command dropped")
		return false
	}
	if !cb.ensureEncoder() {
		return false
	}

	colors := make([]hal.RenderPassColorAttachment, len(cb.target.colors))
	for i, tex := range cb.target.colors {
		attachment := hal.RenderPassColorAttachment{
			View:    tex.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}
		if clear, ok := ops.clearColors[i]; ok {
			attachment.LoadOp = gputypes.LoadOpClear
			attachment.ClearValue = clear
		}
		colors[i] = attachment
	}

	desc := &hal.RenderPassDescriptor{
		Label:            "rhi_pass",
		ColorAttachments: colors,
	}
	if cb.target.depth != nil {
		ds := &hal.RenderPassDepthStencilAttachment{
			View:              cb.target.depth.view,
			DepthLoadOp:       gputypes.LoadOpLoad,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   cb.clearDepth,
			StencilLoadOp:     gputypes.LoadOpLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: cb.clearStencil,
		}
		if ops.clearDepth {
			ds.DepthLoadOp = gputypes.LoadOpClear
		}
		if ops.clearStencil {
			ds.StencilLoadOp = gputypes.LoadOpClear
		}
		desc.DepthStencilAttachment = ds
	}

	cb.pass = cb.encoder.BeginRenderPass(desc)
	cb.passEntry = nil
	cb.appliedVertex = nil
	cb.appliedIndex = nil
	cb.applyViewport()
	cb.applyScissor()
	return true
}

func (cb *wgpuCommandBuffer) endPass() {
	if cb.pass != nil {
		cb.pass.End()
		cb.pass = nil
	}
}

func (cb *wgpuCommandBuffer) applyViewport() {
	if cb.pass == nil || !cb.hasViewport {
		return
	}
	vp := cb.viewport
	cb.pass.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
}

func (cb *wgpuCommandBuffer) applyScissor() {
	if cb.pass == nil || !cb.hasScissor {
		return
	}
	sc := cb.scissor
	cb.pass.SetScissorRect(uint32(sc.X), uint32(sc.Y), uint32(sc.Width), uint32(sc.Height))
}

// ----- Configuration -----

func (cb *wgpuCommandBuffer) SetViewport(viewport rhi.Viewport) {
	cb.viewport = viewport
	cb.hasViewport = true
	cb.applyViewport()
}

func (cb *wgpuCommandBuffer) SetViewports(viewports []rhi.Viewport) {
	if len(viewports) == 0 {
		return
	}
	if len(viewports) > 1 {
		rhi.Logger().Warn("webgpu: viewport arrays unsupported, applying the first viewport only")
	}
	cb.SetViewport(viewports[0])
}

func (cb *wgpuCommandBuffer) SetScissor(scissor rhi.Scissor) {
	cb.scissor = scissor
	cb.hasScissor = true
	cb.applyScissor()
}

func (cb *wgpuCommandBuffer) SetScissors(scissors []rhi.Scissor) {
	if len(scissors) == 0 {
		return
	}
	if len(scissors) > 1 {
		rhi.Logger().Warn("webgpu: scissor arrays unsupported, applying the first scissor only")
	}
	cb.SetScissor(scissors[0])
}

func (cb *wgpuCommandBuffer) SetClearColor(color rhi.Color) { cb.clearColor = color }

func (cb *wgpuCommandBuffer) SetClearDepth(depth float32) { cb.clearDepth = depth }

func (cb *wgpuCommandBuffer) SetClearStencil(stencil uint32) { cb.clearStencil = stencil }

// Clear reopens the render pass with clearing load ops. The pass stays
// open, so subsequent draws continue in it.
func (cb *wgpuCommandBuffer) Clear(flags rhi.ClearFlags) {
	if cb.target == nil {
		rhi.Logger().Warn("webgpu: no render target bound, clear dropped")
		return
	}
	var ops passLoadOps
	if flags&rhi.ClearColorBuffer != 0 {
		clear := gputypes.Color{
			R: float64(cb.clearColor.R),
			G: float64(cb.clearColor.G),
			B: float64(cb.clearColor.B),
			A: float64(cb.clearColor.A),
		}
		ops.clearColors = make(map[int]gputypes.Color, len(cb.target.colors))
		for i := range cb.target.colors {
			ops.clearColors[i] = clear
		}
	}
	ops.clearDepth = flags&rhi.ClearDepthBuffer != 0
	ops.clearStencil = flags&rhi.ClearStencilBuffer != 0

	cb.endPass()
	cb.beginPass(ops)
}

func (cb *wgpuCommandBuffer) ClearAttachment(index uint32, color rhi.Color) {
	if cb.target == nil || int(index) >= len(cb.target.colors) {
		rhi.Logger().Warn("webgpu: clear attachment out of range", "index", index)
		return
	}
	ops := passLoadOps{clearColors: map[int]gputypes.Color{
		int(index): {R: float64(color.R), G: float64(color.G), B: float64(color.B), A: float64(color.A)},
	}}
	cb.endPass()
	cb.beginPass(ops)
}

// ----- Resource binding -----

func (cb *wgpuCommandBuffer) SetVertexBuffer(buffer rhi.Buffer) {
	cb.vertexBuffer = buffer.(*wgpuBuffer)
}

func (cb *wgpuCommandBuffer) SetIndexBuffer(buffer rhi.Buffer) {
	cb.indexBuffer = buffer.(*wgpuBuffer)
}

func (cb *wgpuCommandBuffer) SetConstantBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	if slot >= maxBindingSlots {
		rhi.Logger().Warn("webgpu: constant buffer slot out of range", "slot", slot)
		return
	}
	cb.bindings.uniforms[slot] = bufferSlot{buf: buffer.(*wgpuBuffer), stages: stages}
	cb.bindingsDirty = true
}

func (cb *wgpuCommandBuffer) SetStorageBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	if slot >= maxBindingSlots {
		rhi.Logger().Warn("webgpu: storage buffer slot out of range", "slot", slot)
		return
	}
	cb.bindings.storages[slot] = bufferSlot{buf: buffer.(*wgpuBuffer), stages: stages}
	cb.bindingsDirty = true
}

func (cb *wgpuCommandBuffer) SetStreamOutputBuffer(buffer rhi.Buffer) {
	if !cb.warnedStreamOut {
		rhi.Logger().Warn("webgpu: stream output unsupported, calls ignored")
		cb.warnedStreamOut = true
	}
}

func (cb *wgpuCommandBuffer) SetTexture(slot uint32, texture rhi.Texture, stages rhi.ShaderStages) {
	if slot >= maxBindingSlots {
		rhi.Logger().Warn("webgpu: texture slot out of range", "slot", slot)
		return
	}
	cb.bindings.textures[slot] = textureSlot{tex: texture.(*wgpuTexture), stages: stages}
	cb.bindingsDirty = true
}

func (cb *wgpuCommandBuffer) SetSampler(slot uint32, sampler rhi.Sampler, stages rhi.ShaderStages) {
	if slot >= maxBindingSlots {
		rhi.Logger().Warn("webgpu: sampler slot out of range", "slot", slot)
		return
	}
	cb.bindings.samplers[slot] = samplerSlot{sampler: sampler.(*wgpuSampler), stages: stages}
	cb.bindingsDirty = true
}

func (cb *wgpuCommandBuffer) SetRenderTarget(target rhi.RenderTarget) {
	cb.endPass()
	if target == nil {
		// There is no default framebuffer; presentation goes through a
		// render target built on the surface texture.
		cb.target = nil
		return
	}
	cb.target = target.(*wgpuRenderTarget)
}

// UpdateBuffer flushes pending passes first so the write is ordered
// after draws already recorded against the buffer.
func (cb *wgpuCommandBuffer) UpdateBuffer(buffer rhi.Buffer, offset uint64, data []byte) {
	if cb.encoding {
		cb.flush()
	}
	cb.dev.queue.WriteBuffer(buffer.(*wgpuBuffer).buf, offset, data)
}

// ----- Pipelines -----

func (cb *wgpuCommandBuffer) SetGraphicsPipeline(pipeline rhi.GraphicsPipeline) {
	cb.graphics = pipeline.(*wgpuGraphicsPipeline)
	cb.passEntry = nil
}

func (cb *wgpuCommandBuffer) SetComputePipeline(pipeline rhi.ComputePipeline) {
	cb.compute = pipeline.(*wgpuComputePipeline)
}

// ----- Queries and conditional rendering -----
//
// The hal exposes no query sets, so queries and conditional rendering
// report as unsupported in the device caps and do nothing here.

func (cb *wgpuCommandBuffer) BeginQuery(query rhi.Query) { cb.warnQueries() }

func (cb *wgpuCommandBuffer) EndQuery(query rhi.Query) { cb.warnQueries() }

func (cb *wgpuCommandBuffer) QueryResult(query rhi.Query) (uint64, bool) {
	cb.warnQueries()
	return 0, false
}

func (cb *wgpuCommandBuffer) warnQueries() {
	if !cb.warnedQueries {
		rhi.Logger().Warn("webgpu: queries unsupported, calls ignored")
		cb.warnedQueries = true
	}
}

func (cb *wgpuCommandBuffer) BeginRenderCondition(query rhi.Query, mode rhi.RenderConditionMode) {
	if !cb.warnedCondition {
		rhi.Logger().Warn("webgpu: conditional rendering unsupported, draws run unconditionally")
		cb.warnedCondition = true
	}
}

func (cb *wgpuCommandBuffer) EndRenderCondition() {}

// ----- Stream output -----

func (cb *wgpuCommandBuffer) BeginStreamOutput(topology rhi.PrimitiveTopology) {
	if !cb.warnedStreamOut {
		rhi.Logger().Warn("webgpu: stream output unsupported, calls ignored")
		cb.warnedStreamOut = true
	}
}

func (cb *wgpuCommandBuffer) EndStreamOutput() {}

// ----- Drawing -----

// applyDrawState makes the open pass ready for a draw: native pipeline
// resolved for the current target and bindings, bind group and buffers
// set. Returns false when the draw cannot be issued.
func (cb *wgpuCommandBuffer) applyDrawState(indexed bool) bool {
	if cb.graphics == nil {
		rhi.Logger().Warn("webgpu: draw without a graphics pipeline, dropped")
		return false
	}
	if cb.pass == nil && !cb.beginPass(passLoadOps{}) {
		return false
	}

	if cb.passEntry == nil || cb.bindingsDirty {
		fb, err := formatsFor(cb.target)
		if err != nil {
			rhi.Logger().Warn("webgpu: unsupported attachment format", "error", err)
			return false
		}
		entry, err := cb.dev.renderPipelineFor(cb.graphics, fb, &cb.bindings)
		if err != nil {
			rhi.Logger().Warn("webgpu: pipeline resolution failed", "error", err)
			return false
		}
		if entry != cb.passEntry {
			cb.pass.SetPipeline(entry.pipeline)
			if cb.graphics.desc.Stencil.Enabled {
				cb.pass.SetStencilReference(uint32(cb.graphics.desc.Stencil.Front.Ref))
			}
			cb.passEntry = entry
		}

		group, err := cb.dev.createBindGroup(cb.graphics.desc.Name, entry.bindLayout, &cb.bindings)
		if err != nil {
			rhi.Logger().Warn("webgpu: bind group creation failed", "error", err)
			return false
		}
		cb.liveGroups = append(cb.liveGroups, group)
		cb.pass.SetBindGroup(0, group, nil)
		cb.bindingsDirty = false
	}

	if cb.vertexBuffer != nil && cb.vertexBuffer != cb.appliedVertex {
		cb.pass.SetVertexBuffer(0, cb.vertexBuffer.buf, 0)
		cb.appliedVertex = cb.vertexBuffer
	}
	if indexed {
		if cb.indexBuffer == nil {
			rhi.Logger().Warn("webgpu: indexed draw without an index buffer, dropped")
			return false
		}
		if cb.indexBuffer != cb.appliedIndex {
			format, err := MapIndexFormat(cb.indexBuffer.desc.IndexFormat)
			if err != nil {
				rhi.Logger().Warn("webgpu: unsupported index format", "error", err)
				return false
			}
			cb.pass.SetIndexBuffer(cb.indexBuffer.buf, format, 0)
			cb.appliedIndex = cb.indexBuffer
		}
	}
	return true
}

func (cb *wgpuCommandBuffer) Draw(numVertices, firstVertex uint32) {
	if !cb.applyDrawState(false) {
		return
	}
	cb.pass.Draw(numVertices, 1, firstVertex, 0)
}

func (cb *wgpuCommandBuffer) DrawIndexed(numIndices, firstIndex uint32, vertexOffset int32) {
	if !cb.applyDrawState(true) {
		return
	}
	cb.pass.DrawIndexed(numIndices, 1, firstIndex, vertexOffset, 0)
}

func (cb *wgpuCommandBuffer) DrawInstanced(numVertices, firstVertex, numInstances, firstInstance uint32) {
	if !cb.applyDrawState(false) {
		return
	}
	cb.pass.Draw(numVertices, numInstances, firstVertex, firstInstance)
}

func (cb *wgpuCommandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if !cb.applyDrawState(true) {
		return
	}
	cb.pass.DrawIndexed(numIndices, numInstances, firstIndex, vertexOffset, firstInstance)
}

func (cb *wgpuCommandBuffer) Dispatch(x, y, z uint32) {
	if cb.compute == nil {
		rhi.Logger().Warn("webgpu: dispatch without a compute pipeline, dropped")
		return
	}
	cb.endPass()
	if !cb.ensureEncoder() {
		return
	}

	entry, err := cb.dev.computePipelineFor(cb.compute, &cb.bindings)
	if err != nil {
		rhi.Logger().Warn("webgpu: compute pipeline resolution failed", "error", err)
		return
	}
	group, err := cb.dev.createBindGroup(cb.compute.desc.Name, entry.bindLayout, &cb.bindings)
	if err != nil {
		rhi.Logger().Warn("webgpu: bind group creation failed", "error", err)
		return
	}
	cb.liveGroups = append(cb.liveGroups, group)

	pass := cb.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: cb.compute.desc.Name})
	pass.SetPipeline(entry.pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.Dispatch(x, y, z)
	pass.End()
}

// ----- Synchronization -----

func (cb *wgpuCommandBuffer) SyncGPU() {
	cb.flush()
}

// flush submits everything recorded so far and waits for the device to
// finish it, then frees the submission's transient objects.
func (cb *wgpuCommandBuffer) flush() {
	cb.endPass()
	if !cb.encoding {
		cb.releaseGroups()
		return
	}
	cb.encoding = false

	cmdBuf, err := cb.encoder.EndEncoding()
	if err != nil {
		rhi.Logger().Warn("webgpu: end encoding", "error", err)
		cb.releaseGroups()
		return
	}
	defer cb.dev.device.FreeCommandBuffer(cmdBuf)
	defer cb.releaseGroups()

	fence, err := cb.dev.device.CreateFence()
	if err != nil {
		rhi.Logger().Warn("webgpu: create fence", "error", err)
		return
	}
	defer cb.dev.device.DestroyFence(fence)

	if err := cb.dev.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		rhi.Logger().Warn("webgpu: submit", "error", err)
		return
	}
	if ok, err := cb.dev.device.Wait(fence, 1, fenceTimeout); err != nil || !ok {
		rhi.Logger().Warn("webgpu: wait for GPU", "ok", ok, "error", err)
	}
}

func (cb *wgpuCommandBuffer) releaseGroups() {
	for _, group := range cb.liveGroups {
		cb.dev.device.DestroyBindGroup(group)
	}
	cb.liveGroups = cb.liveGroups[:0]
}
