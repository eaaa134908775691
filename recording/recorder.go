package recording

import (
	"github.com/gogpu/rhi"
)

// Recorder captures rhi.CommandBuffer calls as typed commands.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
	finished bool
}

var _ rhi.CommandBuffer = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) append(c Command) {
	if r.finished {
		panic("recording: Recorder used after Finish")
	}
	r.commands = append(r.commands, c)
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int { return len(r.commands) }

// Finish seals the recording and returns the captured commands as an
// immutable CommandList. The Recorder must not be used afterwards.
func (r *Recorder) Finish() *CommandList {
	r.finished = true
	return &CommandList{commands: r.commands}
}

func (r *Recorder) SetViewport(viewport rhi.Viewport) {
	r.append(SetViewportCommand{Viewport: viewport})
}

func (r *Recorder) SetViewports(viewports []rhi.Viewport) {
	vs := make([]rhi.Viewport, len(viewports))
	copy(vs, viewports)
	r.append(SetViewportsCommand{Viewports: vs})
}

func (r *Recorder) SetScissor(scissor rhi.Scissor) {
	r.append(SetScissorCommand{Scissor: scissor})
}

func (r *Recorder) SetScissors(scissors []rhi.Scissor) {
	ss := make([]rhi.Scissor, len(scissors))
	copy(ss, scissors)
	r.append(SetScissorsCommand{Scissors: ss})
}

func (r *Recorder) SetClearColor(color rhi.Color) {
	r.append(SetClearColorCommand{Color: color})
}

func (r *Recorder) SetClearDepth(depth float32) {
	r.append(SetClearDepthCommand{Depth: depth})
}

func (r *Recorder) SetClearStencil(stencil uint32) {
	r.append(SetClearStencilCommand{Stencil: stencil})
}

func (r *Recorder) Clear(flags rhi.ClearFlags) {
	r.append(ClearCommand{Flags: flags})
}

func (r *Recorder) ClearAttachment(index uint32, color rhi.Color) {
	r.append(ClearAttachmentCommand{Index: index, Color: color})
}

func (r *Recorder) SetVertexBuffer(buffer rhi.Buffer) {
	r.append(SetVertexBufferCommand{Buffer: buffer})
}

func (r *Recorder) SetIndexBuffer(buffer rhi.Buffer) {
	r.append(SetIndexBufferCommand{Buffer: buffer})
}

func (r *Recorder) SetConstantBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	r.append(SetConstantBufferCommand{Slot: slot, Buffer: buffer, Stages: stages})
}

func (r *Recorder) SetStorageBuffer(slot uint32, buffer rhi.Buffer, stages rhi.ShaderStages) {
	r.append(SetStorageBufferCommand{Slot: slot, Buffer: buffer, Stages: stages})
}

func (r *Recorder) SetStreamOutputBuffer(buffer rhi.Buffer) {
	r.append(SetStreamOutputBufferCommand{Buffer: buffer})
}

func (r *Recorder) SetTexture(slot uint32, texture rhi.Texture, stages rhi.ShaderStages) {
	r.append(SetTextureCommand{Slot: slot, Texture: texture, Stages: stages})
}

func (r *Recorder) SetSampler(slot uint32, sampler rhi.Sampler, stages rhi.ShaderStages) {
	r.append(SetSamplerCommand{Slot: slot, Sampler: sampler, Stages: stages})
}

func (r *Recorder) SetRenderTarget(target rhi.RenderTarget) {
	r.append(SetRenderTargetCommand{Target: target})
}

// UpdateBuffer records the write with a private copy of data, so the
// caller may reuse its slice immediately.
func (r *Recorder) UpdateBuffer(buffer rhi.Buffer, offset uint64, data []byte) {
	d := make([]byte, len(data))
	copy(d, data)
	r.append(UpdateBufferCommand{Buffer: buffer, Offset: offset, Data: d})
}

func (r *Recorder) SetGraphicsPipeline(pipeline rhi.GraphicsPipeline) {
	r.append(SetGraphicsPipelineCommand{Pipeline: pipeline})
}

func (r *Recorder) SetComputePipeline(pipeline rhi.ComputePipeline) {
	r.append(SetComputePipelineCommand{Pipeline: pipeline})
}

func (r *Recorder) BeginQuery(query rhi.Query) {
	r.append(BeginQueryCommand{Query: query})
}

func (r *Recorder) EndQuery(query rhi.Query) {
	r.append(EndQueryCommand{Query: query})
}

// QueryResult always reports the result as unavailable: no query has
// executed while the commands are only being recorded.
func (r *Recorder) QueryResult(rhi.Query) (uint64, bool) {
	return 0, false
}

func (r *Recorder) BeginRenderCondition(query rhi.Query, mode rhi.RenderConditionMode) {
	r.append(BeginRenderConditionCommand{Query: query, Mode: mode})
}

func (r *Recorder) EndRenderCondition() {
	r.append(EndRenderConditionCommand{})
}

func (r *Recorder) BeginStreamOutput(topology rhi.PrimitiveTopology) {
	r.append(BeginStreamOutputCommand{Topology: topology})
}

func (r *Recorder) EndStreamOutput() {
	r.append(EndStreamOutputCommand{})
}

func (r *Recorder) Draw(numVertices, firstVertex uint32) {
	r.append(DrawCommand{NumVertices: numVertices, FirstVertex: firstVertex})
}

func (r *Recorder) DrawIndexed(numIndices, firstIndex uint32, vertexOffset int32) {
	r.append(DrawIndexedCommand{NumIndices: numIndices, FirstIndex: firstIndex, VertexOffset: vertexOffset})
}

func (r *Recorder) DrawInstanced(numVertices, firstVertex, numInstances, firstInstance uint32) {
	r.append(DrawInstancedCommand{
		NumVertices:   numVertices,
		FirstVertex:   firstVertex,
		NumInstances:  numInstances,
		FirstInstance: firstInstance,
	})
}

func (r *Recorder) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	r.append(DrawIndexedInstancedCommand{
		NumIndices:    numIndices,
		NumInstances:  numInstances,
		FirstIndex:    firstIndex,
		VertexOffset:  vertexOffset,
		FirstInstance: firstInstance,
	})
}

func (r *Recorder) Dispatch(x, y, z uint32) {
	r.append(DispatchCommand{X: x, Y: y, Z: z})
}

func (r *Recorder) SyncGPU() {
	r.append(SyncGPUCommand{})
}

// CommandList is a sealed sequence of recorded commands. It is
// immutable and may be replayed from multiple goroutines onto distinct
// targets.
type CommandList struct {
	commands []Command
}

// Len returns the number of recorded commands.
func (l *CommandList) Len() int { return len(l.commands) }

// Commands returns the recorded commands in order. The returned slice
// must not be modified.
func (l *CommandList) Commands() []Command { return l.commands }

// Replay applies every recorded command to target in order.
func (l *CommandList) Replay(target rhi.CommandBuffer) {
	for _, c := range l.commands {
		c.replay(target)
	}
}
