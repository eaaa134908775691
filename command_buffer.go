package rhi

// ClearFlags selects which attachments Clear affects.
type ClearFlags uint32

const (
	// ClearColorBuffer clears the color attachments.
	ClearColorBuffer ClearFlags = 1 << iota

	// ClearDepthBuffer clears the depth attachment.
	ClearDepthBuffer

	// ClearStencilBuffer clears the stencil attachment.
	ClearStencilBuffer

	// ClearAll clears color, depth, and stencil.
	ClearAll = ClearColorBuffer | ClearDepthBuffer | ClearStencilBuffer
)

// RenderConditionMode controls how a conditional-rendering block treats
// the query result it depends on.
type RenderConditionMode uint8

const (
	// ConditionWait blocks until the query result is available.
	ConditionWait RenderConditionMode = iota

	// ConditionNoWait renders if the result is not yet available.
	ConditionNoWait

	// ConditionByRegionWait is ConditionWait with region granularity.
	ConditionByRegionWait

	// ConditionByRegionNoWait is ConditionNoWait with region granularity.
	ConditionByRegionNoWait
)

// CommandBuffer is the recording surface every backend implements.
//
// Calls are synchronous from the caller's point of view: each call
// either updates backend-internal mirrors, issues a native call, or
// both, and returns before the next call may be issued. One goroutine
// drives one command buffer at a time.
//
// Implementations never validate their input; wrap a command buffer in
// the debug layer (package debug) to get advisory validation. Resource
// arguments must have been created by the same Device that created the
// command buffer.
type CommandBuffer interface {
	// ----- Configuration -----

	// SetViewport sets a single viewport.
	SetViewport(viewport Viewport)

	// SetViewports sets an array of viewports. Backends without array
	// support apply only what they can express; see the backend docs.
	SetViewports(viewports []Viewport)

	// SetScissor sets a single scissor rectangle.
	SetScissor(scissor Scissor)

	// SetScissors sets an array of scissor rectangles.
	SetScissors(scissors []Scissor)

	// SetClearColor sets the color used by Clear for color attachments.
	SetClearColor(color Color)

	// SetClearDepth sets the depth value used by Clear.
	SetClearDepth(depth float32)

	// SetClearStencil sets the stencil value used by Clear.
	SetClearStencil(stencil uint32)

	// Clear clears the attachments selected by flags using the stored
	// clear values.
	Clear(flags ClearFlags)

	// ClearAttachment clears a single color attachment to the given
	// color, independent of the stored clear values.
	ClearAttachment(index uint32, color Color)

	// ----- Resource binding -----

	// SetVertexBuffer binds the vertex buffer feeding the input
	// assembler.
	SetVertexBuffer(buffer Buffer)

	// SetIndexBuffer binds the index buffer for DrawIndexed* calls.
	SetIndexBuffer(buffer Buffer)

	// SetConstantBuffer binds a constant (uniform) buffer to slot for
	// the given stages.
	SetConstantBuffer(slot uint32, buffer Buffer, stages ShaderStages)

	// SetStorageBuffer binds a read-write storage buffer to slot for
	// the given stages.
	SetStorageBuffer(slot uint32, buffer Buffer, stages ShaderStages)

	// SetStreamOutputBuffer binds the buffer receiving stream output.
	SetStreamOutputBuffer(buffer Buffer)

	// SetTexture binds a texture to slot for the given stages.
	SetTexture(slot uint32, texture Texture, stages ShaderStages)

	// SetSampler binds a sampler to slot for the given stages.
	SetSampler(slot uint32, sampler Sampler, stages ShaderStages)

	// SetRenderTarget makes target the destination of subsequent draw
	// and clear calls. A nil target selects the default framebuffer.
	SetRenderTarget(target RenderTarget)

	// UpdateBuffer writes data into buffer at offset.
	UpdateBuffer(buffer Buffer, offset uint64, data []byte)

	// ----- Pipelines -----

	// SetGraphicsPipeline binds a graphics pipeline. Assumptions tied
	// to the previously bound pipeline (vertex format, topology) no
	// longer hold after this call.
	SetGraphicsPipeline(pipeline GraphicsPipeline)

	// SetComputePipeline binds a compute pipeline. Graphics state is
	// unaffected.
	SetComputePipeline(pipeline ComputePipeline)

	// ----- Queries and conditional rendering -----

	// BeginQuery starts measuring query.
	BeginQuery(query Query)

	// EndQuery stops measuring query.
	EndQuery(query Query)

	// QueryResult returns the query value. ok is false while the result
	// is still pending on the device.
	QueryResult(query Query) (value uint64, ok bool)

	// BeginRenderCondition makes subsequent draws conditional on the
	// result of query.
	BeginRenderCondition(query Query, mode RenderConditionMode)

	// EndRenderCondition ends conditional rendering.
	EndRenderCondition()

	// ----- Stream output -----

	// BeginStreamOutput starts capturing primitives of the given
	// topology class into the bound stream-output buffer. Regular draw
	// calls and stream output are mutually exclusive.
	BeginStreamOutput(topology PrimitiveTopology)

	// EndStreamOutput stops capturing.
	EndStreamOutput()

	// ----- Drawing -----

	// Draw draws numVertices vertices starting at firstVertex.
	Draw(numVertices, firstVertex uint32)

	// DrawIndexed draws numIndices indices starting at firstIndex,
	// adding vertexOffset to every fetched index.
	DrawIndexed(numIndices, firstIndex uint32, vertexOffset int32)

	// DrawInstanced draws numInstances instances of numVertices
	// vertices. firstInstance offsets the instance ID.
	DrawInstanced(numVertices, firstVertex, numInstances, firstInstance uint32)

	// DrawIndexedInstanced is DrawIndexed repeated for numInstances
	// instances.
	DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32, vertexOffset int32, firstInstance uint32)

	// Dispatch launches a compute grid of x*y*z work groups.
	Dispatch(x, y, z uint32)

	// ----- Synchronization -----

	// SyncGPU blocks until the device has finished all submitted work.
	SyncGPU()
}
