package debug

import (
	"strings"

	"github.com/gogpu/rhi"
)

// recordingTarget is a rhi.CommandBuffer double that records the name
// of every forwarded call.
type recordingTarget struct {
	calls []string
}

func (t *recordingTarget) record(name string) { t.calls = append(t.calls, name) }

func (t *recordingTarget) count(name string) int {
	n := 0
	for _, c := range t.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (t *recordingTarget) SetViewport(rhi.Viewport)    { t.record("SetViewport") }
func (t *recordingTarget) SetViewports([]rhi.Viewport) { t.record("SetViewports") }
func (t *recordingTarget) SetScissor(rhi.Scissor)      { t.record("SetScissor") }
func (t *recordingTarget) SetScissors([]rhi.Scissor)   { t.record("SetScissors") }
func (t *recordingTarget) SetClearColor(rhi.Color)     { t.record("SetClearColor") }
func (t *recordingTarget) SetClearDepth(float32)       { t.record("SetClearDepth") }
func (t *recordingTarget) SetClearStencil(uint32)      { t.record("SetClearStencil") }
func (t *recordingTarget) Clear(rhi.ClearFlags)        { t.record("Clear") }

func (t *recordingTarget) ClearAttachment(uint32, rhi.Color) { t.record("ClearAttachment") }

func (t *recordingTarget) SetVertexBuffer(rhi.Buffer) { t.record("SetVertexBuffer") }
func (t *recordingTarget) SetIndexBuffer(rhi.Buffer)  { t.record("SetIndexBuffer") }

func (t *recordingTarget) SetConstantBuffer(uint32, rhi.Buffer, rhi.ShaderStages) {
	t.record("SetConstantBuffer")
}

func (t *recordingTarget) SetStorageBuffer(uint32, rhi.Buffer, rhi.ShaderStages) {
	t.record("SetStorageBuffer")
}

func (t *recordingTarget) SetStreamOutputBuffer(rhi.Buffer) { t.record("SetStreamOutputBuffer") }

func (t *recordingTarget) SetTexture(uint32, rhi.Texture, rhi.ShaderStages) {
	t.record("SetTexture")
}

func (t *recordingTarget) SetSampler(uint32, rhi.Sampler, rhi.ShaderStages) {
	t.record("SetSampler")
}

func (t *recordingTarget) SetRenderTarget(rhi.RenderTarget) { t.record("SetRenderTarget") }

func (t *recordingTarget) UpdateBuffer(rhi.Buffer, uint64, []byte) { t.record("UpdateBuffer") }

func (t *recordingTarget) SetGraphicsPipeline(rhi.GraphicsPipeline) {
	t.record("SetGraphicsPipeline")
}

func (t *recordingTarget) SetComputePipeline(rhi.ComputePipeline) {
	t.record("SetComputePipeline")
}

func (t *recordingTarget) BeginQuery(rhi.Query) { t.record("BeginQuery") }
func (t *recordingTarget) EndQuery(rhi.Query)   { t.record("EndQuery") }

func (t *recordingTarget) QueryResult(rhi.Query) (uint64, bool) {
	t.record("QueryResult")
	return 0, true
}

func (t *recordingTarget) BeginRenderCondition(rhi.Query, rhi.RenderConditionMode) {
	t.record("BeginRenderCondition")
}

func (t *recordingTarget) EndRenderCondition() { t.record("EndRenderCondition") }

func (t *recordingTarget) BeginStreamOutput(rhi.PrimitiveTopology) {
	t.record("BeginStreamOutput")
}

func (t *recordingTarget) EndStreamOutput() { t.record("EndStreamOutput") }

func (t *recordingTarget) Draw(uint32, uint32) { t.record("Draw") }

func (t *recordingTarget) DrawIndexed(uint32, uint32, int32) { t.record("DrawIndexed") }

func (t *recordingTarget) DrawInstanced(uint32, uint32, uint32, uint32) {
	t.record("DrawInstanced")
}

func (t *recordingTarget) DrawIndexedInstanced(uint32, uint32, uint32, int32, uint32) {
	t.record("DrawIndexedInstanced")
}

func (t *recordingTarget) Dispatch(uint32, uint32, uint32) { t.record("Dispatch") }

func (t *recordingTarget) SyncGPU() { t.record("SyncGPU") }

// report is one captured validation finding.
type report struct {
	kind    rhi.ReportKind
	source  string
	message string
}

// recordingDebugger captures reports for assertions.
type recordingDebugger struct {
	reports []report
}

func (d *recordingDebugger) Report(kind rhi.ReportKind, source, message string) {
	d.reports = append(d.reports, report{kind: kind, source: source, message: message})
}

func (d *recordingDebugger) errors() int {
	n := 0
	for _, r := range d.reports {
		if r.kind == rhi.ReportError {
			n++
		}
	}
	return n
}

func (d *recordingDebugger) warnings() int {
	return len(d.reports) - d.errors()
}

// containing returns the first report whose message contains substr.
func (d *recordingDebugger) containing(substr string) (report, bool) {
	for _, r := range d.reports {
		if strings.Contains(r.message, substr) {
			return r, true
		}
	}
	return report{}, false
}

// fakeBuffer is a rhi.Buffer double carrying only a descriptor.
type fakeBuffer struct {
	desc rhi.BufferDescriptor
}

func (b *fakeBuffer) ResourceType() rhi.ResourceType   { return rhi.ResourceBuffer }
func (b *fakeBuffer) Release()                         {}
func (b *fakeBuffer) Descriptor() rhi.BufferDescriptor { return b.desc }

func newFakeBuffer(bufferType rhi.BufferType, size uint64) *fakeBuffer {
	return &fakeBuffer{desc: rhi.BufferDescriptor{Type: bufferType, Size: size}}
}

// fakeProgram is a rhi.ShaderProgram double with fixed reflection data.
type fakeProgram struct {
	stages  rhi.ShaderStages
	attribs []rhi.VertexAttribute
}

func (p *fakeProgram) ResourceType() rhi.ResourceType        { return rhi.ResourceShaderProgram }
func (p *fakeProgram) Release()                              {}
func (p *fakeProgram) Stages() rhi.ShaderStages              { return p.stages }
func (p *fakeProgram) VertexAttributes() []rhi.VertexAttribute { return p.attribs }

// fakeGraphicsPipeline is a rhi.GraphicsPipeline double.
type fakeGraphicsPipeline struct {
	desc rhi.GraphicsPipelineDescriptor
}

func (p *fakeGraphicsPipeline) ResourceType() rhi.ResourceType { return rhi.ResourceGraphicsPipeline }
func (p *fakeGraphicsPipeline) Release()                       {}

func (p *fakeGraphicsPipeline) Descriptor() rhi.GraphicsPipelineDescriptor { return p.desc }

// fakeComputePipeline is a rhi.ComputePipeline double.
type fakeComputePipeline struct {
	desc rhi.ComputePipelineDescriptor
}

func (p *fakeComputePipeline) ResourceType() rhi.ResourceType { return rhi.ResourceComputePipeline }
func (p *fakeComputePipeline) Release()                       {}

func (p *fakeComputePipeline) Descriptor() rhi.ComputePipelineDescriptor { return p.desc }

// fakeQuery is a rhi.Query double.
type fakeQuery struct {
	qtype rhi.QueryType
}

func (q *fakeQuery) ResourceType() rhi.ResourceType { return rhi.ResourceQuery }
func (q *fakeQuery) Release()                       {}
func (q *fakeQuery) Type() rhi.QueryType            { return q.qtype }
