package debug

import (
	"testing"

	"github.com/gogpu/rhi"
)

// newTestBuffer wires a decorator to a recording target and debugger.
func newTestBuffer(opts ...Option) (*CommandBuffer, *recordingTarget, *recordingDebugger) {
	target := &recordingTarget{}
	dbg := &recordingDebugger{}
	cb := New(target, append([]Option{WithDebugger(dbg)}, opts...)...)
	return cb, target, dbg
}

// simplePipeline builds a triangle-list pipeline over a program with
// one float3 "position" input.
func simplePipeline(topology rhi.PrimitiveTopology) *fakeGraphicsPipeline {
	return &fakeGraphicsPipeline{desc: rhi.GraphicsPipelineDescriptor{
		Program: &fakeProgram{
			stages: rhi.StageVertex | rhi.StageFragment,
			attribs: []rhi.VertexAttribute{
				{Name: "position", Type: rhi.DataFloat32, Components: 3},
			},
		},
		Topology: topology,
	}}
}

// positionBuffer builds a vertex buffer whose layout feeds "position".
func positionBuffer() *fakeBuffer {
	var layout rhi.VertexFormat
	layout.AppendAttribute("position", rhi.DataFloat32, 3)
	return &fakeBuffer{desc: rhi.BufferDescriptor{
		Type:   rhi.BufferVertex,
		Size:   1024,
		Layout: layout,
	}}
}

func TestNewNilTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestViolationsStillForward(t *testing.T) {
	cb, target, dbg := newTestBuffer()

	// A draw with nothing bound is as wrong as it gets, and still
	// reaches the device.
	cb.Draw(3, 0)
	if dbg.errors() == 0 {
		t.Error("draw with no pipeline reported no error")
	}
	if got := target.count("Draw"); got != 1 {
		t.Errorf("Draw forwarded %d times, want 1 (validation is advisory)", got)
	}
}

func TestDrawNoPipeline(t *testing.T) {
	cb, _, dbg := newTestBuffer()

	cb.Draw(3, 0)
	r, ok := dbg.containing("no graphics pipeline")
	if !ok {
		t.Fatalf("reports = %v, want a no-pipeline error", dbg.reports)
	}
	if r.kind != rhi.ReportError {
		t.Errorf("kind = %v, want error", r.kind)
	}
	if r.source != "Draw" {
		t.Errorf("source = %q, want %q", r.source, "Draw")
	}
}

func TestDrawIndexedWithoutIndexBuffer(t *testing.T) {
	cb, target, dbg := newTestBuffer()

	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())
	cb.DrawIndexed(3, 0, 0)

	if _, ok := dbg.containing("no index buffer"); !ok {
		t.Errorf("reports = %v, want a missing index buffer error", dbg.reports)
	}
	if got := dbg.errors(); got != 1 {
		t.Errorf("errors = %d, want exactly 1", got)
	}
	if got := target.count("DrawIndexed"); got != 1 {
		t.Errorf("DrawIndexed forwarded %d times, want 1", got)
	}
}

func TestTriangleListRemainder(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())

	cb.Draw(10, 0)
	r, ok := dbg.containing("1 trailing vertices")
	if !ok {
		t.Fatalf("reports = %v, want a 1-unused-vertex warning for 10 vertices", dbg.reports)
	}
	if r.kind != rhi.ReportWarning {
		t.Errorf("kind = %v, want warning", r.kind)
	}

	dbg.reports = nil
	cb.Draw(9, 0)
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for 9 vertices, want none", dbg.reports)
	}
}

func TestStripMinimumVertices(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleStrip))
	cb.SetVertexBuffer(positionBuffer())

	cb.Draw(2, 0)
	if _, ok := dbg.containing("at least 3"); !ok {
		t.Errorf("reports = %v, want a minimum-vertex warning", dbg.reports)
	}

	dbg.reports = nil
	cb.Draw(3, 0)
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for 3 strip vertices, want none", dbg.reports)
	}
}

func TestVertexFormatMismatchCitesAttribute(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))

	// The bound layout feeds "normal", not "position".
	var layout rhi.VertexFormat
	layout.AppendAttribute("normal", rhi.DataFloat32, 3)
	cb.SetVertexBuffer(&fakeBuffer{desc: rhi.BufferDescriptor{
		Type: rhi.BufferVertex, Size: 256, Layout: layout,
	}})

	cb.Draw(3, 0)
	if _, ok := dbg.containing("position"); !ok {
		t.Errorf("reports = %v, want the missing attribute cited by name", dbg.reports)
	}
}

func TestVertexFormatComponentMismatch(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))

	// Same name, wrong component count.
	var layout rhi.VertexFormat
	layout.AppendAttribute("position", rhi.DataFloat32, 2)
	cb.SetVertexBuffer(&fakeBuffer{desc: rhi.BufferDescriptor{
		Type: rhi.BufferVertex, Size: 256, Layout: layout,
	}})

	cb.Draw(3, 0)
	if _, ok := dbg.containing("does not match"); !ok {
		t.Errorf("reports = %v, want a component mismatch error", dbg.reports)
	}
}

func TestDrawWithoutVertexBuffer(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))

	cb.Draw(3, 0)
	if _, ok := dbg.containing("no vertex buffer"); !ok {
		t.Errorf("reports = %v, want a missing vertex buffer error", dbg.reports)
	}
}

func TestDrawWithoutVertexBufferNoAttributes(t *testing.T) {
	cb, target, dbg := newTestBuffer()

	// A program that reflects no inputs still needs a vertex buffer
	// to source vertices from.
	cb.SetGraphicsPipeline(&fakeGraphicsPipeline{desc: rhi.GraphicsPipelineDescriptor{
		Program:  &fakeProgram{stages: rhi.StageVertex | rhi.StageFragment},
		Topology: rhi.TopologyTriangleList,
	}})

	cb.Draw(3, 0)
	if _, ok := dbg.containing("no vertex buffer"); !ok {
		t.Errorf("reports = %v, want a missing vertex buffer error", dbg.reports)
	}
	if got := dbg.errors(); got != 1 {
		t.Errorf("errors = %d, want exactly 1", got)
	}
	if got := target.count("Draw"); got != 1 {
		t.Errorf("Draw forwarded %d times, want 1", got)
	}
}

func TestBufferTypeMisuse(t *testing.T) {
	cb, _, dbg := newTestBuffer()

	// An index buffer where a vertex buffer belongs.
	cb.SetVertexBuffer(newFakeBuffer(rhi.BufferIndex, 64))
	if _, ok := dbg.containing("created as a Index buffer"); !ok {
		t.Errorf("reports = %v, want a buffer type error", dbg.reports)
	}

	dbg.reports = nil
	cb.SetConstantBuffer(0, newFakeBuffer(rhi.BufferStorage, 64), rhi.StageVertex)
	if _, ok := dbg.containing("created as a Storage buffer"); !ok {
		t.Errorf("reports = %v, want a buffer type error", dbg.reports)
	}
}

func TestStageMaskLegality(t *testing.T) {
	caps := permissiveCaps()
	caps.HasGeometryShaders = false
	cb, _, dbg := newTestBuffer(WithCaps(caps))

	cb.SetConstantBuffer(0, newFakeBuffer(rhi.BufferConstant, 64), rhi.StageGeometry)
	if _, ok := dbg.containing("cannot run"); !ok {
		t.Errorf("reports = %v, want an unsupported stage error", dbg.reports)
	}

	dbg.reports = nil
	cb.SetConstantBuffer(0, newFakeBuffer(rhi.BufferConstant, 64), 0)
	if _, ok := dbg.containing("empty shader stage mask"); !ok {
		t.Errorf("reports = %v, want an empty stage mask warning", dbg.reports)
	}
}

func TestStageMaskVsProgram(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))

	// The program has no geometry stage; binding to it is suspicious
	// but legal on the device.
	cb.SetConstantBuffer(0, newFakeBuffer(rhi.BufferConstant, 64), rhi.StageGeometry)
	r, ok := dbg.containing("does not populate")
	if !ok {
		t.Fatalf("reports = %v, want an unused stage warning", dbg.reports)
	}
	if r.kind != rhi.ReportWarning {
		t.Errorf("kind = %v, want warning", r.kind)
	}
}

func TestInstancingChecks(t *testing.T) {
	caps := permissiveCaps()
	caps.HasOffsetInstancing = false
	cb, _, dbg := newTestBuffer(WithCaps(caps))
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())

	cb.DrawInstanced(3, 0, 4, 1)
	if _, ok := dbg.containing("offset the instance ID"); !ok {
		t.Errorf("reports = %v, want an offset-instancing error", dbg.reports)
	}

	dbg.reports = nil
	cb.DrawInstanced(3, 0, 0, 0)
	if _, ok := dbg.containing("zero instances"); !ok {
		t.Errorf("reports = %v, want a zero-instances warning", dbg.reports)
	}

	caps = permissiveCaps()
	caps.HasInstancing = false
	cb, _, dbg = newTestBuffer(WithCaps(caps))
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())
	cb.DrawInstanced(3, 0, 4, 0)
	if _, ok := dbg.containing("no instancing support"); !ok {
		t.Errorf("reports = %v, want an instancing error", dbg.reports)
	}
}

func TestInstanceOffsetPastCount(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())

	// firstInstance 5 of 3 instances renders nothing.
	cb.DrawInstanced(3, 0, 3, 5)
	r, ok := dbg.containing("no effective instances")
	if !ok {
		t.Fatalf("reports = %v, want a no-effective-instances warning", dbg.reports)
	}
	if r.kind != rhi.ReportWarning {
		t.Errorf("kind = %v, want warning", r.kind)
	}

	dbg.reports = nil
	cb.DrawInstanced(3, 0, 3, 2)
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for firstInstance 2 of 3, want none", dbg.reports)
	}
}

func TestDispatchLimits(t *testing.T) {
	caps := permissiveCaps()
	caps.MaxComputeWorkGroups = [3]uint32{65535, 65535, 64}
	cb, target, dbg := newTestBuffer(WithCaps(caps))
	cb.SetComputePipeline(&fakeComputePipeline{})

	cb.Dispatch(1, 1, 100)
	r, ok := dbg.containing("axis 2")
	if !ok {
		t.Fatalf("reports = %v, want a per-axis limit error", dbg.reports)
	}
	if r.kind != rhi.ReportError {
		t.Errorf("kind = %v, want error", r.kind)
	}
	if _, ok := dbg.containing("by 36"); !ok {
		t.Errorf("reports = %v, want the excess cited", dbg.reports)
	}
	if got := target.count("Dispatch"); got != 1 {
		t.Errorf("Dispatch forwarded %d times, want 1", got)
	}
}

func TestDispatchWithoutPipeline(t *testing.T) {
	cb, _, dbg := newTestBuffer()

	cb.Dispatch(1, 1, 1)
	if _, ok := dbg.containing("no compute pipeline"); !ok {
		t.Errorf("reports = %v, want a no-compute-pipeline error", dbg.reports)
	}
}

func TestStreamOutputStateMachine(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())

	// End before begin.
	cb.EndStreamOutput()
	if _, ok := dbg.containing("not active"); !ok {
		t.Errorf("reports = %v, want an end-without-begin error", dbg.reports)
	}

	// Begin without a stream output buffer.
	dbg.reports = nil
	cb.BeginStreamOutput(rhi.TopologyTriangleList)
	if _, ok := dbg.containing("no stream output buffer"); !ok {
		t.Errorf("reports = %v, want a missing buffer error", dbg.reports)
	}
	cb.EndStreamOutput()

	// The legal sequence is silent, and draws inside it are reported.
	dbg.reports = nil
	cb.SetStreamOutputBuffer(newFakeBuffer(rhi.BufferStreamOutput, 1024))
	cb.BeginStreamOutput(rhi.TopologyTriangleList)
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for a legal begin, want none", dbg.reports)
	}
	cb.Draw(3, 0)
	if _, ok := dbg.containing("stream output is active"); !ok {
		t.Errorf("reports = %v, want a draw-during-capture error", dbg.reports)
	}

	// Begin while active.
	dbg.reports = nil
	cb.BeginStreamOutput(rhi.TopologyTriangleList)
	if _, ok := dbg.containing("already active"); !ok {
		t.Errorf("reports = %v, want an already-active error", dbg.reports)
	}
	cb.EndStreamOutput()
}

func TestStreamOutputUncapturableTopology(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetStreamOutputBuffer(newFakeBuffer(rhi.BufferStreamOutput, 1024))

	cb.BeginStreamOutput(rhi.TopologyPatches)
	if _, ok := dbg.containing("cannot be captured"); !ok {
		t.Errorf("reports = %v, want an uncapturable topology error", dbg.reports)
	}
}

func TestQueryPairing(t *testing.T) {
	cb, _, dbg := newTestBuffer()
	q := &fakeQuery{qtype: rhi.QuerySamplesPassed}

	cb.EndQuery(q)
	if _, ok := dbg.containing("not being measured"); !ok {
		t.Errorf("reports = %v, want an unpaired end warning", dbg.reports)
	}

	dbg.reports = nil
	cb.BeginQuery(q)
	cb.BeginQuery(q)
	if _, ok := dbg.containing("already being measured"); !ok {
		t.Errorf("reports = %v, want a double-begin warning", dbg.reports)
	}

	dbg.reports = nil
	cb.QueryResult(q)
	if _, ok := dbg.containing("still being measured"); !ok {
		t.Errorf("reports = %v, want a result-while-active warning", dbg.reports)
	}

	dbg.reports = nil
	cb.EndQuery(q)
	cb.QueryResult(q)
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for a legal query sequence, want none", dbg.reports)
	}
}

func TestUpdateBufferRange(t *testing.T) {
	cb, target, dbg := newTestBuffer()
	buf := newFakeBuffer(rhi.BufferConstant, 64)

	cb.UpdateBuffer(buf, 32, make([]byte, 64))
	if _, ok := dbg.containing("exceeds buffer"); !ok {
		t.Errorf("reports = %v, want an out-of-range write error", dbg.reports)
	}
	if got := target.count("UpdateBuffer"); got != 1 {
		t.Errorf("UpdateBuffer forwarded %d times, want 1", got)
	}

	dbg.reports = nil
	cb.UpdateBuffer(buf, 32, make([]byte, 32))
	if len(dbg.reports) != 0 {
		t.Errorf("reports = %v for an in-range write, want none", dbg.reports)
	}
}

func TestProfilerCounters(t *testing.T) {
	profile := rhi.NewFrameProfile()
	cb, _, _ := newTestBuffer(WithProfiler(profile))

	cb.SetGraphicsPipeline(simplePipeline(rhi.TopologyTriangleList))
	cb.SetVertexBuffer(positionBuffer())
	cb.Draw(3, 0)
	cb.Draw(3, 0)
	cb.SetComputePipeline(&fakeComputePipeline{})
	cb.Dispatch(1, 1, 1)
	cb.UpdateBuffer(newFakeBuffer(rhi.BufferConstant, 64), 0, make([]byte, 16))

	checks := []struct {
		metric rhi.Metric
		want   uint64
	}{
		{rhi.MetricDrawCalls, 2},
		{rhi.MetricDispatches, 1},
		{rhi.MetricBufferUpdates, 1},
		{rhi.MetricBufferBindings, 1},
		{rhi.MetricGraphicsPipelineBindings, 1},
		{rhi.MetricComputePipelineBindings, 1},
	}
	for _, c := range checks {
		if got := profile.Value(c.metric); got != c.want {
			t.Errorf("Value(%v) = %d, want %d", c.metric, got, c.want)
		}
	}

	profile.Reset()
	if got := profile.Value(rhi.MetricDrawCalls); got != 0 {
		t.Errorf("Value(DrawCalls) = %d after Reset, want 0", got)
	}
}

func TestUnwrap(t *testing.T) {
	target := &recordingTarget{}
	cb := New(target)
	if cb.Unwrap() != rhi.CommandBuffer(target) {
		t.Error("Unwrap() did not return the wrapped target")
	}
}
