package recording

import (
	"github.com/gogpu/rhi"
)

// CommandType identifies the operation a recorded command replays.
type CommandType uint8

const (
	// Configuration commands.
	CmdSetViewport CommandType = iota
	CmdSetViewports
	CmdSetScissor
	CmdSetScissors
	CmdSetClearColor
	CmdSetClearDepth
	CmdSetClearStencil
	CmdClear
	CmdClearAttachment

	// Binding commands.
	CmdSetVertexBuffer
	CmdSetIndexBuffer
	CmdSetConstantBuffer
	CmdSetStorageBuffer
	CmdSetStreamOutputBuffer
	CmdSetTexture
	CmdSetSampler
	CmdSetRenderTarget
	CmdUpdateBuffer

	// Pipeline commands.
	CmdSetGraphicsPipeline
	CmdSetComputePipeline

	// Query and condition commands.
	CmdBeginQuery
	CmdEndQuery
	CmdBeginRenderCondition
	CmdEndRenderCondition

	// Stream output commands.
	CmdBeginStreamOutput
	CmdEndStreamOutput

	// Draw and dispatch commands.
	CmdDraw
	CmdDrawIndexed
	CmdDrawInstanced
	CmdDrawIndexedInstanced
	CmdDispatch

	// Synchronization commands.
	CmdSyncGPU

	numCommandTypes
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [numCommandTypes]string{
	CmdSetViewport:           "SetViewport",
	CmdSetViewports:          "SetViewports",
	CmdSetScissor:            "SetScissor",
	CmdSetScissors:           "SetScissors",
	CmdSetClearColor:         "SetClearColor",
	CmdSetClearDepth:         "SetClearDepth",
	CmdSetClearStencil:       "SetClearStencil",
	CmdClear:                 "Clear",
	CmdClearAttachment:       "ClearAttachment",
	CmdSetVertexBuffer:       "SetVertexBuffer",
	CmdSetIndexBuffer:        "SetIndexBuffer",
	CmdSetConstantBuffer:     "SetConstantBuffer",
	CmdSetStorageBuffer:      "SetStorageBuffer",
	CmdSetStreamOutputBuffer: "SetStreamOutputBuffer",
	CmdSetTexture:            "SetTexture",
	CmdSetSampler:            "SetSampler",
	CmdSetRenderTarget:       "SetRenderTarget",
	CmdUpdateBuffer:          "UpdateBuffer",
	CmdSetGraphicsPipeline:   "SetGraphicsPipeline",
	CmdSetComputePipeline:    "SetComputePipeline",
	CmdBeginQuery:            "BeginQuery",
	CmdEndQuery:              "EndQuery",
	CmdBeginRenderCondition:  "BeginRenderCondition",
	CmdEndRenderCondition:    "EndRenderCondition",
	CmdBeginStreamOutput:     "BeginStreamOutput",
	CmdEndStreamOutput:       "EndStreamOutput",
	CmdDraw:                  "Draw",
	CmdDrawIndexed:           "DrawIndexed",
	CmdDrawInstanced:         "DrawInstanced",
	CmdDrawIndexedInstanced:  "DrawIndexedInstanced",
	CmdDispatch:              "Dispatch",
	CmdSyncGPU:               "SyncGPU",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded operation. replay applies it to a live
// command buffer.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	replay(target rhi.CommandBuffer)
}

// SetViewportCommand records SetViewport.
type SetViewportCommand struct {
	Viewport rhi.Viewport
}

func (SetViewportCommand) Type() CommandType { return CmdSetViewport }

func (c SetViewportCommand) replay(target rhi.CommandBuffer) { target.SetViewport(c.Viewport) }

// SetViewportsCommand records SetViewports.
type SetViewportsCommand struct {
	Viewports []rhi.Viewport
}

func (SetViewportsCommand) Type() CommandType { return CmdSetViewports }

func (c SetViewportsCommand) replay(target rhi.CommandBuffer) { target.SetViewports(c.Viewports) }

// SetScissorCommand records SetScissor.
type SetScissorCommand struct {
	Scissor rhi.Scissor
}

func (SetScissorCommand) Type() CommandType { return CmdSetScissor }

func (c SetScissorCommand) replay(target rhi.CommandBuffer) { target.SetScissor(c.Scissor) }

// SetScissorsCommand records SetScissors.
type SetScissorsCommand struct {
	Scissors []rhi.Scissor
}

func (SetScissorsCommand) Type() CommandType { return CmdSetScissors }

func (c SetScissorsCommand) replay(target rhi.CommandBuffer) { target.SetScissors(c.Scissors) }

// SetClearColorCommand records SetClearColor.
type SetClearColorCommand struct {
	Color rhi.Color
}

func (SetClearColorCommand) Type() CommandType { return CmdSetClearColor }

func (c SetClearColorCommand) replay(target rhi.CommandBuffer) { target.SetClearColor(c.Color) }

// SetClearDepthCommand records SetClearDepth.
type SetClearDepthCommand struct {
	Depth float32
}

func (SetClearDepthCommand) Type() CommandType { return CmdSetClearDepth }

func (c SetClearDepthCommand) replay(target rhi.CommandBuffer) { target.SetClearDepth(c.Depth) }

// SetClearStencilCommand records SetClearStencil.
type SetClearStencilCommand struct {
	Stencil uint32
}

func (SetClearStencilCommand) Type() CommandType { return CmdSetClearStencil }

func (c SetClearStencilCommand) replay(target rhi.CommandBuffer) { target.SetClearStencil(c.Stencil) }

// ClearCommand records Clear.
type ClearCommand struct {
	Flags rhi.ClearFlags
}

func (ClearCommand) Type() CommandType { return CmdClear }

func (c ClearCommand) replay(target rhi.CommandBuffer) { target.Clear(c.Flags) }

// ClearAttachmentCommand records ClearAttachment.
type ClearAttachmentCommand struct {
	Index uint32
	Color rhi.Color
}

func (ClearAttachmentCommand) Type() CommandType { return CmdClearAttachment }

func (c ClearAttachmentCommand) replay(target rhi.CommandBuffer) {
	target.ClearAttachment(c.Index, c.Color)
}

// SetVertexBufferCommand records SetVertexBuffer.
type SetVertexBufferCommand struct {
	Buffer rhi.Buffer
}

func (SetVertexBufferCommand) Type() CommandType { return CmdSetVertexBuffer }

func (c SetVertexBufferCommand) replay(target rhi.CommandBuffer) {
	target.SetVertexBuffer(c.Buffer)
}

// SetIndexBufferCommand records SetIndexBuffer.
type SetIndexBufferCommand struct {
	Buffer rhi.Buffer
}

func (SetIndexBufferCommand) Type() CommandType { return CmdSetIndexBuffer }

func (c SetIndexBufferCommand) replay(target rhi.CommandBuffer) {
	target.SetIndexBuffer(c.Buffer)
}

// SetConstantBufferCommand records SetConstantBuffer.
type SetConstantBufferCommand struct {
	Slot   uint32
	Buffer rhi.Buffer
	Stages rhi.ShaderStages
}

func (SetConstantBufferCommand) Type() CommandType { return CmdSetConstantBuffer }

func (c SetConstantBufferCommand) replay(target rhi.CommandBuffer) {
	target.SetConstantBuffer(c.Slot, c.Buffer, c.Stages)
}

// SetStorageBufferCommand records SetStorageBuffer.
type SetStorageBufferCommand struct {
	Slot   uint32
	Buffer rhi.Buffer
	Stages rhi.ShaderStages
}

func (SetStorageBufferCommand) Type() CommandType { return CmdSetStorageBuffer }

func (c SetStorageBufferCommand) replay(target rhi.CommandBuffer) {
	target.SetStorageBuffer(c.Slot, c.Buffer, c.Stages)
}

// SetStreamOutputBufferCommand records SetStreamOutputBuffer.
type SetStreamOutputBufferCommand struct {
	Buffer rhi.Buffer
}

func (SetStreamOutputBufferCommand) Type() CommandType { return CmdSetStreamOutputBuffer }

func (c SetStreamOutputBufferCommand) replay(target rhi.CommandBuffer) {
	target.SetStreamOutputBuffer(c.Buffer)
}

// SetTextureCommand records SetTexture.
type SetTextureCommand struct {
	Slot    uint32
	Texture rhi.Texture
	Stages  rhi.ShaderStages
}

func (SetTextureCommand) Type() CommandType { return CmdSetTexture }

func (c SetTextureCommand) replay(target rhi.CommandBuffer) {
	target.SetTexture(c.Slot, c.Texture, c.Stages)
}

// SetSamplerCommand records SetSampler.
type SetSamplerCommand struct {
	Slot    uint32
	Sampler rhi.Sampler
	Stages  rhi.ShaderStages
}

func (SetSamplerCommand) Type() CommandType { return CmdSetSampler }

func (c SetSamplerCommand) replay(target rhi.CommandBuffer) {
	target.SetSampler(c.Slot, c.Sampler, c.Stages)
}

// SetRenderTargetCommand records SetRenderTarget.
type SetRenderTargetCommand struct {
	Target rhi.RenderTarget
}

func (SetRenderTargetCommand) Type() CommandType { return CmdSetRenderTarget }

func (c SetRenderTargetCommand) replay(target rhi.CommandBuffer) {
	target.SetRenderTarget(c.Target)
}

// UpdateBufferCommand records UpdateBuffer. Data is the recorder's own
// copy of the written bytes.
type UpdateBufferCommand struct {
	Buffer rhi.Buffer
	Offset uint64
	Data   []byte
}

func (UpdateBufferCommand) Type() CommandType { return CmdUpdateBuffer }

func (c UpdateBufferCommand) replay(target rhi.CommandBuffer) {
	target.UpdateBuffer(c.Buffer, c.Offset, c.Data)
}

// SetGraphicsPipelineCommand records SetGraphicsPipeline.
type SetGraphicsPipelineCommand struct {
	Pipeline rhi.GraphicsPipeline
}

func (SetGraphicsPipelineCommand) Type() CommandType { return CmdSetGraphicsPipeline }

func (c SetGraphicsPipelineCommand) replay(target rhi.CommandBuffer) {
	target.SetGraphicsPipeline(c.Pipeline)
}

// SetComputePipelineCommand records SetComputePipeline.
type SetComputePipelineCommand struct {
	Pipeline rhi.ComputePipeline
}

func (SetComputePipelineCommand) Type() CommandType { return CmdSetComputePipeline }

func (c SetComputePipelineCommand) replay(target rhi.CommandBuffer) {
	target.SetComputePipeline(c.Pipeline)
}

// BeginQueryCommand records BeginQuery.
type BeginQueryCommand struct {
	Query rhi.Query
}

func (BeginQueryCommand) Type() CommandType { return CmdBeginQuery }

func (c BeginQueryCommand) replay(target rhi.CommandBuffer) { target.BeginQuery(c.Query) }

// EndQueryCommand records EndQuery.
type EndQueryCommand struct {
	Query rhi.Query
}

func (EndQueryCommand) Type() CommandType { return CmdEndQuery }

func (c EndQueryCommand) replay(target rhi.CommandBuffer) { target.EndQuery(c.Query) }

// BeginRenderConditionCommand records BeginRenderCondition.
type BeginRenderConditionCommand struct {
	Query rhi.Query
	Mode  rhi.RenderConditionMode
}

func (BeginRenderConditionCommand) Type() CommandType { return CmdBeginRenderCondition }

func (c BeginRenderConditionCommand) replay(target rhi.CommandBuffer) {
	target.BeginRenderCondition(c.Query, c.Mode)
}

// EndRenderConditionCommand records EndRenderCondition.
type EndRenderConditionCommand struct{}

func (EndRenderConditionCommand) Type() CommandType { return CmdEndRenderCondition }

func (EndRenderConditionCommand) replay(target rhi.CommandBuffer) { target.EndRenderCondition() }

// BeginStreamOutputCommand records BeginStreamOutput.
type BeginStreamOutputCommand struct {
	Topology rhi.PrimitiveTopology
}

func (BeginStreamOutputCommand) Type() CommandType { return CmdBeginStreamOutput }

func (c BeginStreamOutputCommand) replay(target rhi.CommandBuffer) {
	target.BeginStreamOutput(c.Topology)
}

// EndStreamOutputCommand records EndStreamOutput.
type EndStreamOutputCommand struct{}

func (EndStreamOutputCommand) Type() CommandType { return CmdEndStreamOutput }

func (EndStreamOutputCommand) replay(target rhi.CommandBuffer) { target.EndStreamOutput() }

// DrawCommand records Draw.
type DrawCommand struct {
	NumVertices uint32
	FirstVertex uint32
}

func (DrawCommand) Type() CommandType { return CmdDraw }

func (c DrawCommand) replay(target rhi.CommandBuffer) {
	target.Draw(c.NumVertices, c.FirstVertex)
}

// DrawIndexedCommand records DrawIndexed.
type DrawIndexedCommand struct {
	NumIndices   uint32
	FirstIndex   uint32
	VertexOffset int32
}

func (DrawIndexedCommand) Type() CommandType { return CmdDrawIndexed }

func (c DrawIndexedCommand) replay(target rhi.CommandBuffer) {
	target.DrawIndexed(c.NumIndices, c.FirstIndex, c.VertexOffset)
}

// DrawInstancedCommand records DrawInstanced.
type DrawInstancedCommand struct {
	NumVertices   uint32
	FirstVertex   uint32
	NumInstances  uint32
	FirstInstance uint32
}

func (DrawInstancedCommand) Type() CommandType { return CmdDrawInstanced }

func (c DrawInstancedCommand) replay(target rhi.CommandBuffer) {
	target.DrawInstanced(c.NumVertices, c.FirstVertex, c.NumInstances, c.FirstInstance)
}

// DrawIndexedInstancedCommand records DrawIndexedInstanced.
type DrawIndexedInstancedCommand struct {
	NumIndices    uint32
	NumInstances  uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

func (DrawIndexedInstancedCommand) Type() CommandType { return CmdDrawIndexedInstanced }

func (c DrawIndexedInstancedCommand) replay(target rhi.CommandBuffer) {
	target.DrawIndexedInstanced(c.NumIndices, c.NumInstances, c.FirstIndex, c.VertexOffset, c.FirstInstance)
}

// DispatchCommand records Dispatch.
type DispatchCommand struct {
	X, Y, Z uint32
}

func (DispatchCommand) Type() CommandType { return CmdDispatch }

func (c DispatchCommand) replay(target rhi.CommandBuffer) { target.Dispatch(c.X, c.Y, c.Z) }

// SyncGPUCommand records SyncGPU.
type SyncGPUCommand struct{}

func (SyncGPUCommand) Type() CommandType { return CmdSyncGPU }

func (SyncGPUCommand) replay(target rhi.CommandBuffer) { target.SyncGPU() }
