package debug

import (
	"fmt"

	"github.com/gogpu/rhi"
)

// pipelineState tracks where the command stream is in the recording
// contract.
type pipelineState uint8

const (
	// noPipeline: nothing bound yet; draws are invalid.
	noPipeline pipelineState = iota

	// pipelineBound: a graphics pipeline is bound; draws are valid.
	pipelineBound

	// streamOutputActive: primitives are being captured; regular draws
	// are invalid until EndStreamOutput.
	streamOutputActive
)

// CommandBuffer validates calls against recorded binding state and the
// device capabilities, then forwards them unchanged. All findings are
// advisory; see the package documentation.
type CommandBuffer struct {
	target rhi.CommandBuffer
	dbg    rhi.Debugger
	prof   rhi.Profiler
	caps   rhi.RenderingCaps

	state    pipelineState
	graphics rhi.GraphicsPipeline
	compute  rhi.ComputePipeline

	vertexBuffer       rhi.Buffer
	indexBuffer        rhi.Buffer
	streamOutputBuffer rhi.Buffer

	activeQueries   map[rhi.Query]bool
	conditionActive bool
}

var _ rhi.CommandBuffer = (*CommandBuffer)(nil)

// New wraps target in the validation layer.
func New(target rhi.CommandBuffer, opts ...Option) *CommandBuffer {
	if target == nil {
		panic("debug: nil command buffer")
	}
	cb := &CommandBuffer{
		target:        target,
		dbg:           &rhi.LogDebugger{},
		caps:          permissiveCaps(),
		activeQueries: make(map[rhi.Query]bool),
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

// Unwrap returns the wrapped command buffer.
func (cb *CommandBuffer) Unwrap() rhi.CommandBuffer { return cb.target }

func (cb *CommandBuffer) errorf(source, format string, args ...any) {
	cb.dbg.Report(rhi.ReportError, source, fmt.Sprintf(format, args...))
}

func (cb *CommandBuffer) warnf(source, format string, args ...any) {
	cb.dbg.Report(rhi.ReportWarning, source, fmt.Sprintf(format, args...))
}

func (cb *CommandBuffer) count(metric rhi.Metric) {
	if cb.prof != nil {
		cb.prof.Add(metric, 1)
	}
}

// ----- Configuration -----

func (cb *CommandBuffer) SetViewport(viewport rhi.Viewport) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		cb.warnf("SetViewport", "empty viewport extent %gx%g", viewport.Width, viewport.Height)
	}
	cb.target.SetViewport(viewport)
}

func (cb *CommandBuffer) SetViewports(viewports []rhi.Viewport) {
	if len(viewports) == 0 {
		cb.warnf("SetViewports", "empty viewport list")
	}
	if n := uint32(len(viewports)); n > cb.caps.MaxViewports {
		cb.warnf("SetViewports", "%d viewports exceed the device limit of %d; the excess is dropped",
			n, cb.caps.MaxViewports)
	}
	cb.target.SetViewports(viewports)
}

func (cb *CommandBuffer) SetScissor(scissor rhi.Scissor) {
	cb.target.SetScissor(scissor)
}

func (cb *CommandBuffer) SetScissors(scissors []rhi.Scissor) {
	if len(scissors) == 0 {
		cb.warnf("SetScissors", "empty scissor list")
	}
	cb.target.SetScissors(scissors)
}

func (cb *CommandBuffer) SetClearColor(color rhi.Color) { cb.target.SetClearColor(color) }

func (cb *CommandBuffer) SetClearDepth(depth float32) { cb.target.SetClearDepth(depth) }

func (cb *CommandBuffer) SetClearStencil(stencil uint32) { cb.target.SetClearStencil(stencil) }

func (cb *CommandBuffer) Clear(flags rhi.ClearFlags) {
	if flags == 0 {
		cb.warnf("Clear", "no clear flags set; the call has no effect")
	}
	cb.target.Clear(flags)
}

func (cb *CommandBuffer) ClearAttachment(index uint32, color rhi.Color) {
	if index >= cb.caps.MaxRenderTargetAttachments {
		cb.errorf("ClearAttachment", "attachment index %d exceeds the device limit of %d",
			index, cb.caps.MaxRenderTargetAttachments)
	}
	cb.target.ClearAttachment(index, color)
}

// ----- Resource binding -----

// checkBufferType reports a binding whose buffer was created for a
// different purpose.
func (cb *CommandBuffer) checkBufferType(source string, buffer rhi.Buffer, want rhi.BufferType) {
	if buffer == nil {
		cb.errorf(source, "nil buffer")
		return
	}
	if got := buffer.Descriptor().Type; got != want {
		cb.errorf(source, "buffer %q was created as a %s buffer, not a %s buffer",
			buffer.Descriptor().Name, got, want)
	}
}

// checkStages reports illegal stage masks: empty masks, stages the
// device cannot run, and stages the active program does not populate.
func (cb *CommandBuffer) checkStages(source string, stages rhi.ShaderStages) {
	if stages == 0 {
		cb.warnf(source, "empty shader stage mask; the binding is invisible")
		return
	}
	if illegal := stages &^ cb.caps.ProgramStages(); illegal != 0 {
		cb.errorf(source, "stage mask includes %s, which the device cannot run", illegal)
	}
	if cb.graphics != nil {
		program := cb.graphics.Descriptor().Program
		if program != nil {
			if unused := stages &^ (program.Stages() | rhi.StageCompute); unused != 0 {
				cb.warnf(source, "stage mask includes %s, which the bound program does not populate", unused)
			}
		}
	}
}

func (cb *CommandBuffer) SetVertexBuffer(buffer rhi.Buffer) {
	cb.checkBufferType("SetVertexBuffer", buffer, rhi.BufferVertex)
	cb.vertexBuffer = buffer
	cb.count(rhi.MetricBufferBindings)
	cb.target.SetVertexBuffer(buffer)
}

func (cb *CommandBuffer) SetIndexBuffer(buffer rhi.Buffer) {
	cb.checkBufferType("SetIndexBuffer", buffer, rhi.BufferIndex)
	cb.indexBuffer = buffer
	cb.count(rhi.MetricBufferBindings)
	cb.target.SetIndexBuffer(buffer)
}

func (cb *CommandBuffer) SetConstantBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	cb.checkBufferType("SetConstantBuffer", buffer, rhi.BufferConstant)
	cb.checkStages("SetConstantBuffer", stages)
	if buffer != nil && buffer.Descriptor().Size > uint64(cb.caps.MaxConstantBufferSize) {
		cb.warnf("SetConstantBuffer", "buffer %q (%d bytes) exceeds the constant buffer limit of %d",
			buffer.Descriptor().Name, buffer.Descriptor().Size, cb.caps.MaxConstantBufferSize)
	}
	cb.count(rhi.MetricBufferBindings)
	cb.target.SetConstantBuffer(slot, buffer, stages)
}

func (cb *CommandBuffer) SetStorageBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	if !cb.caps.HasStorageBuffers {
		cb.errorf("SetStorageBuffer", "device has no storage buffer support")
	}
	cb.checkBufferType("SetStorageBuffer", buffer, rhi.BufferStorage)
	cb.checkStages("SetStorageBuffer", stages)
	cb.count(rhi.MetricBufferBindings)
	cb.target.SetStorageBuffer(slot, buffer, stages)
}

func (cb *CommandBuffer) SetStreamOutputBuffer(buffer rhi.Buffer) {
	if !cb.caps.HasStreamOutputs {
		cb.errorf("SetStreamOutputBuffer", "device has no stream output support")
	}
	cb.checkBufferType("SetStreamOutputBuffer", buffer, rhi.BufferStreamOutput)
	cb.streamOutputBuffer = buffer
	cb.count(rhi.MetricBufferBindings)
	cb.target.SetStreamOutputBuffer(buffer)
}

func (cb *CommandBuffer) SetTexture(slot uint32, texture rhi.Texture, stages rhi.ShaderStages) {
	if texture == nil {
		cb.errorf("SetTexture", "nil texture")
	}
	if slot >= cb.caps.MaxTextureLayers {
		cb.errorf("SetTexture", "slot %d exceeds the device limit of %d texture layers",
			slot, cb.caps.MaxTextureLayers)
	}
	cb.checkStages("SetTexture", stages)
	cb.count(rhi.MetricTextureBindings)
	cb.target.SetTexture(slot, texture, stages)
}

func (cb *CommandBuffer) SetSampler(slot uint32, sampler rhi.Sampler, stages rhi.ShaderStages) {
	if sampler == nil {
		cb.errorf("SetSampler", "nil sampler")
	}
	if !cb.caps.HasSamplers {
		cb.errorf("SetSampler", "device has no sampler support")
	}
	cb.checkStages("SetSampler", stages)
	cb.count(rhi.MetricSamplerBindings)
	cb.target.SetSampler(slot, sampler, stages)
}

func (cb *CommandBuffer) SetRenderTarget(target rhi.RenderTarget) {
	cb.count(rhi.MetricRenderTargetBindings)
	cb.target.SetRenderTarget(target)
}

func (cb *CommandBuffer) UpdateBuffer(buffer rhi.Buffer, offset uint64, data []byte) {
	if buffer == nil {
		cb.errorf("UpdateBuffer", "nil buffer")
	} else if end := offset + uint64(len(data)); end > buffer.Descriptor().Size {
		cb.errorf("UpdateBuffer", "write [%d, %d) exceeds buffer %q size %d",
			offset, end, buffer.Descriptor().Name, buffer.Descriptor().Size)
	}
	cb.count(rhi.MetricBufferUpdates)
	cb.target.UpdateBuffer(buffer, offset, data)
}

// ----- Pipelines -----

func (cb *CommandBuffer) SetGraphicsPipeline(pipeline rhi.GraphicsPipeline) {
	if pipeline == nil {
		cb.errorf("SetGraphicsPipeline", "nil pipeline")
	} else {
		if cb.state == noPipeline {
			cb.state = pipelineBound
		}
		cb.graphics = pipeline
	}
	cb.count(rhi.MetricGraphicsPipelineBindings)
	cb.target.SetGraphicsPipeline(pipeline)
}

func (cb *CommandBuffer) SetComputePipeline(pipeline rhi.ComputePipeline) {
	if pipeline == nil {
		cb.errorf("SetComputePipeline", "nil pipeline")
	} else {
		if !cb.caps.HasComputeShaders {
			cb.errorf("SetComputePipeline", "device has no compute shader support")
		}
		cb.compute = pipeline
	}
	cb.count(rhi.MetricComputePipelineBindings)
	cb.target.SetComputePipeline(pipeline)
}

// ----- Queries and conditional rendering -----

func (cb *CommandBuffer) BeginQuery(query rhi.Query) {
	if query == nil {
		cb.errorf("BeginQuery", "nil query")
	} else if cb.activeQueries[query] {
		cb.warnf("BeginQuery", "query is already being measured")
	} else {
		cb.activeQueries[query] = true
	}
	cb.count(rhi.MetricQuerySections)
	cb.target.BeginQuery(query)
}

func (cb *CommandBuffer) EndQuery(query rhi.Query) {
	if query == nil {
		cb.errorf("EndQuery", "nil query")
	} else if !cb.activeQueries[query] {
		cb.warnf("EndQuery", "query is not being measured")
	} else {
		delete(cb.activeQueries, query)
	}
	cb.target.EndQuery(query)
}

func (cb *CommandBuffer) QueryResult(query rhi.Query) (uint64, bool) {
	if query != nil && cb.activeQueries[query] {
		cb.warnf("QueryResult", "query is still being measured; the result cannot be final")
	}
	return cb.target.QueryResult(query)
}

func (cb *CommandBuffer) BeginRenderCondition(query rhi.Query, mode rhi.RenderConditionMode) {
	if query == nil {
		cb.errorf("BeginRenderCondition", "nil query")
	}
	if cb.conditionActive {
		cb.warnf("BeginRenderCondition", "a render condition is already active")
	}
	cb.conditionActive = true
	cb.target.BeginRenderCondition(query, mode)
}

func (cb *CommandBuffer) EndRenderCondition() {
	if !cb.conditionActive {
		cb.warnf("EndRenderCondition", "no render condition is active")
	}
	cb.conditionActive = false
	cb.target.EndRenderCondition()
}

// ----- Stream output -----

func (cb *CommandBuffer) BeginStreamOutput(topology rhi.PrimitiveTopology) {
	switch cb.state {
	case noPipeline:
		cb.errorf("BeginStreamOutput", "no graphics pipeline bound")
	case streamOutputActive:
		cb.errorf("BeginStreamOutput", "stream output is already active")
	}
	if cb.streamOutputBuffer == nil {
		cb.errorf("BeginStreamOutput", "no stream output buffer bound")
	}
	if !capturableTopology(topology) {
		cb.errorf("BeginStreamOutput", "%s primitives cannot be captured", topology)
	}
	cb.state = streamOutputActive
	cb.count(rhi.MetricStreamOutputSections)
	cb.target.BeginStreamOutput(topology)
}

func (cb *CommandBuffer) EndStreamOutput() {
	if cb.state != streamOutputActive {
		cb.errorf("EndStreamOutput", "stream output is not active")
	} else {
		cb.state = pipelineBound
	}
	cb.target.EndStreamOutput()
}

// capturableTopology reports whether a topology belongs to a point,
// line, or triangle class stream output can capture.
func capturableTopology(t rhi.PrimitiveTopology) bool {
	switch t {
	case rhi.TopologyPointList,
		rhi.TopologyLineList, rhi.TopologyLineStrip, rhi.TopologyLineLoop,
		rhi.TopologyTriangleList, rhi.TopologyTriangleStrip, rhi.TopologyTriangleFan:
		return true
	}
	return false
}

// ----- Drawing -----

// checkDraw runs the common draw-time validation.
func (cb *CommandBuffer) checkDraw(source string, numVertices uint32) {
	switch cb.state {
	case noPipeline:
		cb.errorf(source, "no graphics pipeline bound")
		return
	case streamOutputActive:
		cb.errorf(source, "draw call while stream output is active")
	}
	if numVertices > cb.caps.MaxVertices {
		cb.warnf(source, "%d vertices exceed the device limit of %d", numVertices, cb.caps.MaxVertices)
	}
	if cb.vertexBuffer == nil {
		cb.errorf(source, "no vertex buffer bound")
	}

	desc := cb.graphics.Descriptor()
	cb.checkTopologyRemainder(source, desc, numVertices)
	cb.checkVertexFormat(source, desc)
}

// checkVertexFormat compares the bound vertex layout against the
// program's reflected inputs. The missing-buffer case is checkDraw's
// report; here a nil buffer just means there is nothing to compare.
func (cb *CommandBuffer) checkVertexFormat(source string, desc rhi.GraphicsPipelineDescriptor) {
	if desc.Program == nil || cb.vertexBuffer == nil {
		return
	}
	attribs := desc.Program.VertexAttributes()
	if len(attribs) == 0 {
		return
	}
	layout := cb.vertexBuffer.Descriptor().Layout
	if layout.Empty() {
		// The buffer may carry its layout out of band; nothing to
		// compare against.
		return
	}
	for _, want := range attribs {
		found := false
		for _, have := range layout.Attributes() {
			if have.Name != want.Name {
				continue
			}
			found = true
			if have.Type != want.Type || have.Components != want.Components {
				cb.errorf(source, "vertex attribute %s does not match the program input %s", have, want)
			}
			break
		}
		if !found {
			cb.errorf(source, "program input %s is not fed by the bound vertex layout", want)
		}
	}
}

// checkTopologyRemainder warns about vertices a topology cannot
// assemble into a complete primitive.
func (cb *CommandBuffer) checkTopologyRemainder(source string, desc rhi.GraphicsPipelineDescriptor, numVertices uint32) {
	if numVertices == 0 {
		cb.warnf(source, "zero vertices; the call has no effect")
		return
	}
	switch desc.Topology {
	case rhi.TopologyLineList:
		if unused := numVertices % 2; unused != 0 {
			cb.warnf(source, "%d trailing vertices unused by %s", unused, desc.Topology)
		}
	case rhi.TopologyLineListAdjacency:
		if unused := numVertices % 4; unused != 0 {
			cb.warnf(source, "%d trailing vertices unused by %s", unused, desc.Topology)
		}
	case rhi.TopologyTriangleList:
		if unused := numVertices % 3; unused != 0 {
			cb.warnf(source, "%d trailing vertices unused by %s", unused, desc.Topology)
		}
	case rhi.TopologyTriangleListAdjacency:
		if unused := numVertices % 6; unused != 0 {
			cb.warnf(source, "%d trailing vertices unused by %s", unused, desc.Topology)
		}
	case rhi.TopologyLineStrip, rhi.TopologyLineLoop, rhi.TopologyLineStripAdjacency:
		if numVertices < 2 {
			cb.warnf(source, "%s needs at least 2 vertices, got %d", desc.Topology, numVertices)
		}
	case rhi.TopologyTriangleStrip, rhi.TopologyTriangleFan, rhi.TopologyTriangleStripAdjacency:
		if numVertices < 3 {
			cb.warnf(source, "%s needs at least 3 vertices, got %d", desc.Topology, numVertices)
		}
	case rhi.TopologyPatches:
		if desc.PatchVertices > 0 {
			if unused := numVertices % desc.PatchVertices; unused != 0 {
				cb.warnf(source, "%d trailing vertices unused by %d-vertex patches", unused, desc.PatchVertices)
			}
		}
	}
}

// checkIndexed reports missing index buffers.
func (cb *CommandBuffer) checkIndexed(source string) {
	if cb.indexBuffer == nil {
		cb.errorf(source, "no index buffer bound")
	}
}

// checkInstancing validates instance parameters against the caps.
func (cb *CommandBuffer) checkInstancing(source string, numInstances, firstInstance uint32) {
	if !cb.caps.HasInstancing {
		cb.errorf(source, "device has no instancing support")
	}
	if firstInstance > 0 && !cb.caps.HasOffsetInstancing {
		cb.errorf(source, "device cannot offset the instance ID (firstInstance %d)", firstInstance)
	}
	if numInstances == 0 {
		cb.warnf(source, "zero instances; the call has no effect")
	} else if firstInstance >= numInstances {
		cb.warnf(source, "firstInstance %d leaves no effective instances of %d; the call has no effect",
			firstInstance, numInstances)
	} else if numInstances > cb.caps.MaxInstances {
		cb.warnf(source, "%d instances exceed the device limit of %d", numInstances, cb.caps.MaxInstances)
	}
}

func (cb *CommandBuffer) Draw(numVertices, firstVertex uint32) {
	cb.checkDraw("Draw", numVertices)
	cb.count(rhi.MetricDrawCalls)
	cb.target.Draw(numVertices, firstVertex)
}

func (cb *CommandBuffer) DrawIndexed(numIndices, firstIndex uint32, vertexOffset int32) {
	cb.checkDraw("DrawIndexed", numIndices)
	cb.checkIndexed("DrawIndexed")
	cb.count(rhi.MetricDrawCalls)
	cb.target.DrawIndexed(numIndices, firstIndex, vertexOffset)
}

func (cb *CommandBuffer) DrawInstanced(numVertices, firstVertex, numInstances, firstInstance uint32) {
	cb.checkDraw("DrawInstanced", numVertices)
	cb.checkInstancing("DrawInstanced", numInstances, firstInstance)
	cb.count(rhi.MetricDrawCalls)
	cb.target.DrawInstanced(numVertices, firstVertex, numInstances, firstInstance)
}

func (cb *CommandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	cb.checkDraw("DrawIndexedInstanced", numIndices)
	cb.checkIndexed("DrawIndexedInstanced")
	cb.checkInstancing("DrawIndexedInstanced", numInstances, firstInstance)
	cb.count(rhi.MetricDrawCalls)
	cb.target.DrawIndexedInstanced(numIndices, numInstances, firstIndex, vertexOffset, firstInstance)
}

func (cb *CommandBuffer) Dispatch(x, y, z uint32) {
	if cb.compute == nil {
		cb.errorf("Dispatch", "no compute pipeline bound")
	}
	if !cb.caps.HasComputeShaders {
		cb.errorf("Dispatch", "device has no compute shader support")
	}
	if x == 0 || y == 0 || z == 0 {
		cb.warnf("Dispatch", "empty dispatch grid %dx%dx%d; the call has no effect", x, y, z)
	}
	for axis, extent := range [3]uint32{x, y, z} {
		if limit := cb.caps.MaxComputeWorkGroups[axis]; extent > limit {
			cb.errorf("Dispatch", "axis %d extent %d exceeds the device limit of %d by %d",
				axis, extent, limit, extent-limit)
		}
	}
	cb.count(rhi.MetricDispatches)
	cb.target.Dispatch(x, y, z)
}

// ----- Synchronization -----

func (cb *CommandBuffer) SyncGPU() {
	cb.target.SyncGPU()
}
