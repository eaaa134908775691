package gl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
)

// newTestDevice opens a device on a recording fake seeded as a 4.6
// context.
func newTestDevice(t *testing.T) (*glDevice, *recordingFuncs) {
	t.Helper()
	fns := newRecordingFuncs()
	fns.strs[gl.VERSION] = "4.6.0 Test"
	fns.strs[gl.SHADING_LANGUAGE_VERSION] = "4.60"
	fns.integers[gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS] = 32
	fns.integers[gl.MAX_DRAW_BUFFERS] = 8
	fns.integers[gl.MAX_VIEWPORTS] = 16
	dev, err := NewDevice(fns)
	if err != nil {
		t.Fatalf("NewDevice() failed: %v", err)
	}
	fns.reset()
	return dev.(*glDevice), fns
}

func newTestCommandBuffer(t *testing.T) (*glCommandBuffer, *glDevice, *recordingFuncs) {
	t.Helper()
	dev, fns := newTestDevice(t)
	cb, err := dev.NewCommandBuffer()
	if err != nil {
		t.Fatalf("NewCommandBuffer() failed: %v", err)
	}
	return cb.(*glCommandBuffer), dev, fns
}

func TestNewDeviceRejectsOldVersion(t *testing.T) {
	fns := newRecordingFuncs()
	fns.strs[gl.VERSION] = "2.1.0"
	if _, err := NewDevice(fns); !errors.Is(err, rhi.ErrUnsupportedFeature) {
		t.Errorf("NewDevice on GL 2.1 = %v, want ErrUnsupportedFeature", err)
	}
}

func TestCreateBufferBindsThroughCache(t *testing.T) {
	dev, fns := newTestDevice(t)

	buf, err := dev.CreateBuffer(rhi.BufferDescriptor{Type: rhi.BufferVertex, Size: 64}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() failed: %v", err)
	}
	if got := fns.count("BufferData("); got != 1 {
		t.Errorf("BufferData forwarded %d times, want 1", got)
	}
	// The creation bind was restored; the cache mirror is back at 0.
	if got := dev.cache.BoundBuffer(TargetArrayBuffer); got != 0 {
		t.Errorf("array binding = %d after CreateBuffer, want 0", got)
	}
	if buf.Descriptor().Size != 64 {
		t.Errorf("Descriptor().Size = %d, want 64", buf.Descriptor().Size)
	}
}

func TestCreateBufferRejectsBadDescriptors(t *testing.T) {
	dev, _ := newTestDevice(t)

	if _, err := dev.CreateBuffer(rhi.BufferDescriptor{Size: 0}, nil); !errors.Is(err, rhi.ErrInvalidDescriptor) {
		t.Errorf("zero-size buffer = %v, want ErrInvalidDescriptor", err)
	}
	if _, err := dev.CreateBuffer(rhi.BufferDescriptor{Size: 4}, make([]byte, 8)); !errors.Is(err, rhi.ErrInvalidDescriptor) {
		t.Errorf("oversized data = %v, want ErrInvalidDescriptor", err)
	}
}

func TestCreateVertexBufferBuildsVAO(t *testing.T) {
	dev, fns := newTestDevice(t)

	var layout rhi.VertexFormat
	layout.AppendAttribute("position", rhi.DataFloat32, 3)
	layout.AppendAttribute("color", rhi.DataUint8, 4)

	buf, err := dev.CreateBuffer(rhi.BufferDescriptor{
		Type:   rhi.BufferVertex,
		Size:   256,
		Layout: layout,
	}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() failed: %v", err)
	}
	if buf.(*glBuffer).vao == 0 {
		t.Error("vertex buffer with layout has no VAO")
	}
	if got := fns.count("VertexAttribPointer("); got != 2 {
		t.Errorf("VertexAttribPointer forwarded %d times, want 2", got)
	}
	if got := fns.count("EnableVertexAttribArray("); got != 2 {
		t.Errorf("EnableVertexAttribArray forwarded %d times, want 2", got)
	}
}

func TestCreateTexture(t *testing.T) {
	dev, fns := newTestDevice(t)

	tex, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type:   rhi.Texture2D,
		Format: rhi.FormatRGBA8,
		Width:  256,
		Height: 256,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if got := fns.count("TexStorage2D("); got != 1 {
		t.Errorf("TexStorage2D forwarded %d times, want 1", got)
	}
	// MipLevels 0 resolves to the full chain.
	if got := tex.Descriptor().MipLevels; got != 9 {
		t.Errorf("MipLevels = %d for 256x256, want 9", got)
	}
}

func TestCreateTextureRejectsBadDescriptors(t *testing.T) {
	dev, _ := newTestDevice(t)

	if _, err := dev.CreateTexture(rhi.TextureDescriptor{Width: 4, Height: 4}); !errors.Is(err, rhi.ErrInvalidDescriptor) {
		t.Errorf("unknown format = %v, want ErrInvalidDescriptor", err)
	}
	if _, err := dev.CreateTexture(rhi.TextureDescriptor{Format: rhi.FormatRGBA8}); !errors.Is(err, rhi.ErrInvalidDescriptor) {
		t.Errorf("empty extent = %v, want ErrInvalidDescriptor", err)
	}
}

func TestCreateTextureArrayUses3DStorage(t *testing.T) {
	dev, fns := newTestDevice(t)

	_, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type:   rhi.Texture2DArray,
		Format: rhi.FormatRGBA8,
		Width:  64,
		Height: 64,
		Depth:  8,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if got := fns.count("TexStorage3D("); got != 1 {
		t.Errorf("TexStorage3D forwarded %d times, want 1", got)
	}
}

func TestCreateTexture1DUses1DStorage(t *testing.T) {
	dev, fns := newTestDevice(t)

	_, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type:   rhi.Texture1D,
		Format: rhi.FormatRGBA8,
		Width:  64,
		Height: 1,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if got := fns.count("TexStorage1D("); got != 1 {
		t.Errorf("TexStorage1D forwarded %d times, want 1", got)
	}
	if got := fns.count("TexStorage2D("); got != 0 {
		t.Errorf("TexStorage2D forwarded %d times for a 1D texture, want 0", got)
	}
}

func TestCreateTexture1DArrayLayersAsHeight(t *testing.T) {
	dev, fns := newTestDevice(t)

	_, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type:   rhi.Texture1DArray,
		Format: rhi.FormatRGBA8,
		Width:  64,
		Height: 1,
		Depth:  8,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	want := fmt.Sprintf("TexStorage2D(%d,%d,%d,%d,%d)",
		textureTargetEnums[TargetTexture1DArray], 7, formatInternalEnums[rhi.FormatRGBA8], 64, 8)
	found := false
	for _, c := range fns.calls {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Errorf("calls = %v, want %q (layers in the height slot)", fns.calls, want)
	}
	if got := fns.count("TexStorage3D("); got != 0 {
		t.Errorf("TexStorage3D forwarded %d times for a 1D array, want 0", got)
	}
}

func TestCreateMultisampleTexture(t *testing.T) {
	dev, fns := newTestDevice(t)

	tex, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type:    rhi.Texture2DMS,
		Format:  rhi.FormatRGBA8,
		Width:   128,
		Height:  128,
		Samples: 4,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if got := fns.count("TexStorage2DMultisample("); got != 1 {
		t.Errorf("TexStorage2DMultisample forwarded %d times, want 1", got)
	}
	if got := tex.Descriptor().MipLevels; got != 1 {
		t.Errorf("MipLevels = %d for a multisample texture, want 1", got)
	}

	fns.reset()
	_, err = dev.CreateTexture(rhi.TextureDescriptor{
		Type:    rhi.Texture2DMSArray,
		Format:  rhi.FormatRGBA8,
		Width:   128,
		Height:  128,
		Depth:   4,
		Samples: 4,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if got := fns.count("TexStorage3DMultisample("); got != 1 {
		t.Errorf("TexStorage3DMultisample forwarded %d times, want 1", got)
	}
}

func TestSetVertexBufferUsesVAO(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	var layout rhi.VertexFormat
	layout.AppendAttribute("position", rhi.DataFloat32, 2)
	buf, err := dev.CreateBuffer(rhi.BufferDescriptor{Type: rhi.BufferVertex, Size: 64, Layout: layout}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() failed: %v", err)
	}

	fns.reset()
	cb.SetVertexBuffer(buf)
	if got := fns.count("BindVertexArray("); got != 1 {
		t.Errorf("BindVertexArray forwarded %d times, want 1", got)
	}
}

func TestSetConstantBufferIsUnconditional(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	buf, err := dev.CreateBuffer(rhi.BufferDescriptor{Type: rhi.BufferConstant, Size: 64}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() failed: %v", err)
	}

	fns.reset()
	cb.SetConstantBuffer(2, buf, rhi.StageVertex|rhi.StageFragment)
	cb.SetConstantBuffer(2, buf, rhi.StageVertex|rhi.StageFragment)
	if got := fns.count("BindBufferBase("); got != 2 {
		t.Errorf("BindBufferBase forwarded %d times, want 2 (indexed binds are unconditional)", got)
	}
}

func TestUpdateBufferRestoresBinding(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	a, _ := dev.CreateBuffer(rhi.BufferDescriptor{Type: rhi.BufferConstant, Size: 64}, nil)
	b, _ := dev.CreateBuffer(rhi.BufferDescriptor{Type: rhi.BufferConstant, Size: 64}, nil)

	dev.cache.BindBuffer(TargetUniformBuffer, a.(*glBuffer).id)
	fns.reset()

	cb.UpdateBuffer(b, 16, []byte{1, 2, 3, 4})
	if got := fns.count("BufferSubData("); got != 1 {
		t.Errorf("BufferSubData forwarded %d times, want 1", got)
	}
	if got := dev.cache.BoundBuffer(TargetUniformBuffer); got != a.(*glBuffer).id {
		t.Errorf("uniform binding = %d after UpdateBuffer, want %d restored", got, a.(*glBuffer).id)
	}
}

func TestSetTextureActivatesLayer(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	tex, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type: rhi.Texture2D, Format: rhi.FormatRGBA8, Width: 16, Height: 16,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}

	fns.reset()
	cb.SetTexture(3, tex, rhi.StageFragment)
	if got := fns.count("ActiveTexture("); got != 1 {
		t.Errorf("ActiveTexture forwarded %d times, want 1", got)
	}
	if got := dev.cache.BoundTexture(3, TargetTexture2D); got != tex.(*glTexture).id {
		t.Errorf("layer 3 binding = %d, want %d", got, tex.(*glTexture).id)
	}

	// Rebinding the same texture at the same slot is silent.
	fns.reset()
	cb.SetTexture(3, tex, rhi.StageFragment)
	if got := len(fns.calls); got != 0 {
		t.Errorf("forwarded %d calls for redundant SetTexture, want 0: %v", got, fns.calls)
	}
}

func TestClearEnablesDepthWrites(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	dev.cache.SetDepthMask(false)
	fns.reset()

	cb.Clear(rhi.ClearDepthBuffer)
	if got := fns.count("DepthMask(true)"); got != 1 {
		t.Errorf("DepthMask(true) forwarded %d times before depth clear, want 1", got)
	}
	if got := fns.count("Clear("); got != 1 {
		t.Errorf("Clear forwarded %d times, want 1", got)
	}
}

func TestDrawUsesPipelineTopology(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	prog, err := dev.CreateShaderProgram(rhi.ShaderProgramDescriptor{
		Name: "test",
		Sources: []rhi.ShaderSource{
			{Stage: rhi.StageVertex, Code: "void main() {}"},
			{Stage: rhi.StageFragment, Code: "void main() {}"},
		},
	})
	if err != nil {
		t.Fatalf("CreateShaderProgram() failed: %v", err)
	}
	pipe, err := dev.CreateGraphicsPipeline(rhi.GraphicsPipelineDescriptor{
		Program:  prog,
		Topology: rhi.TopologyLineStrip,
	})
	if err != nil {
		t.Fatalf("CreateGraphicsPipeline() failed: %v", err)
	}

	cb.SetGraphicsPipeline(pipe)
	fns.reset()
	cb.Draw(10, 2)

	want := "DrawArrays(" // mode is the line-strip enum
	if got := fns.count(want); got != 1 {
		t.Fatalf("DrawArrays forwarded %d times, want 1", got)
	}
	if cb.topologyEnum != topologyEnums[rhi.TopologyLineStrip] {
		t.Errorf("topologyEnum = %d, want line strip", cb.topologyEnum)
	}
}

func TestDrawIndexedOffsets(t *testing.T) {
	cb, dev, fns := newTestCommandBuffer(t)

	idx, err := dev.CreateBuffer(rhi.BufferDescriptor{
		Type:        rhi.BufferIndex,
		Size:        64,
		IndexFormat: rhi.IndexUint32,
	}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() failed: %v", err)
	}
	cb.SetIndexBuffer(idx)

	fns.reset()
	cb.DrawIndexed(6, 3, 0)
	if got := fns.count("DrawElements("); got != 1 {
		t.Errorf("DrawElements forwarded %d times, want 1", got)
	}
	// firstIndex 3 at 4 bytes per index is byte offset 12.
	if fns.calls[0] != fmt4DrawElements(cb.topologyEnum, 6, 12) {
		t.Errorf("call = %q, want offset 12", fns.calls[0])
	}

	// A vertex offset routes through the base-vertex entry point,
	// which every 3.3 context has.
	fns.reset()
	cb.DrawIndexed(6, 0, 100)
	if got := fns.count("DrawElementsBaseVertex("); got != 1 {
		t.Errorf("base-vertex draw forwarded %d times, want 1", got)
	}
}

// newTestCommandBuffer41 opens a command buffer on a fake 4.1 context,
// which lacks the base-instance draw variants and compute dispatch.
func newTestCommandBuffer41(t *testing.T) (*glCommandBuffer, *recordingFuncs) {
	t.Helper()
	fns := newRecordingFuncs()
	fns.strs[gl.VERSION] = "4.1.0 Test"
	fns.strs[gl.SHADING_LANGUAGE_VERSION] = "4.10"
	dev, err := NewDevice(fns)
	if err != nil {
		t.Fatalf("NewDevice() failed: %v", err)
	}
	cb, err := dev.NewCommandBuffer()
	if err != nil {
		t.Fatalf("NewCommandBuffer() failed: %v", err)
	}
	fns.reset()
	return cb.(*glCommandBuffer), fns
}

func TestDrawInstancedEntryPoints(t *testing.T) {
	cb, _, fns := newTestCommandBuffer(t)

	cb.DrawInstanced(3, 0, 4, 0)
	if got := fns.count("DrawArraysInstanced("); got != 1 {
		t.Errorf("DrawArraysInstanced forwarded %d times for firstInstance 0, want 1", got)
	}

	fns.reset()
	cb.DrawInstanced(3, 0, 4, 2)
	if got := fns.count("DrawArraysInstancedBaseInstance("); got != 1 {
		t.Errorf("DrawArraysInstancedBaseInstance forwarded %d times, want 1", got)
	}
}

func TestDrawInstancedWithoutBaseInstance(t *testing.T) {
	cb, fns := newTestCommandBuffer41(t)

	// Instancing from instance zero needs no 4.2 entry points.
	cb.DrawInstanced(3, 0, 4, 0)
	if got := fns.count("DrawArraysInstanced("); got != 1 {
		t.Errorf("DrawArraysInstanced forwarded %d times on 4.1, want 1", got)
	}

	// A nonzero firstInstance is not expressible on 4.1; the call is
	// dropped instead of reaching an unresolved entry point.
	fns.reset()
	cb.DrawInstanced(3, 0, 4, 2)
	if got := len(fns.calls); got != 0 {
		t.Errorf("forwarded %d calls for firstInstance 2 on 4.1, want 0: %v", got, fns.calls)
	}
}

func TestDrawIndexedInstancedEntryPoints(t *testing.T) {
	cb, _, fns := newTestCommandBuffer(t)

	cb.DrawIndexedInstanced(6, 2, 0, 0, 0)
	if got := fns.count("DrawElementsInstanced("); got != 1 {
		t.Errorf("DrawElementsInstanced forwarded %d times, want 1", got)
	}

	fns.reset()
	cb.DrawIndexedInstanced(6, 2, 0, 10, 0)
	if got := fns.count("DrawElementsInstancedBaseVertex("); got != 1 {
		t.Errorf("DrawElementsInstancedBaseVertex forwarded %d times, want 1", got)
	}

	fns.reset()
	cb.DrawIndexedInstanced(6, 2, 0, 10, 1)
	if got := fns.count("DrawElementsInstancedBaseVertexBaseInstance("); got != 1 {
		t.Errorf("DrawElementsInstancedBaseVertexBaseInstance forwarded %d times, want 1", got)
	}
}

func TestDrawIndexedInstancedWithoutBaseInstance(t *testing.T) {
	cb, fns := newTestCommandBuffer41(t)

	cb.DrawIndexedInstanced(6, 2, 0, 10, 0)
	if got := fns.count("DrawElementsInstancedBaseVertex("); got != 1 {
		t.Errorf("DrawElementsInstancedBaseVertex forwarded %d times on 4.1, want 1", got)
	}

	fns.reset()
	cb.DrawIndexedInstanced(6, 2, 0, 0, 3)
	if got := len(fns.calls); got != 0 {
		t.Errorf("forwarded %d calls for firstInstance 3 on 4.1, want 0: %v", got, fns.calls)
	}
}

// fmt4DrawElements formats the expected DrawElements record for a
// uint32 index stream.
func fmt4DrawElements(mode uint32, count int32, offset uintptr) string {
	return fmt.Sprintf("DrawElements(%d,%d,%d,%d)", mode, count, indexTypeEnum(rhi.IndexUint32), offset)
}

func TestDispatch(t *testing.T) {
	cb, _, fns := newTestCommandBuffer(t)

	cb.Dispatch(4, 2, 1)
	if got := fns.count("DispatchCompute(4,2,1)"); got != 1 {
		t.Errorf("DispatchCompute forwarded %d times, want 1", got)
	}
}

func TestDispatchWithoutComputeDropped(t *testing.T) {
	cb, fns := newTestCommandBuffer41(t)

	cb.Dispatch(4, 2, 1)
	if got := len(fns.calls); got != 0 {
		t.Errorf("forwarded %d calls for dispatch on 4.1, want 0: %v", got, fns.calls)
	}
}

func TestQueryResultPending(t *testing.T) {
	cb, dev, _ := newTestCommandBuffer(t)

	q, err := dev.CreateQuery(rhi.QuerySamplesPassed)
	if err != nil {
		t.Fatalf("CreateQuery() failed: %v", err)
	}
	cb.BeginQuery(q)
	cb.EndQuery(q)
	if _, ok := cb.QueryResult(q); !ok {
		t.Error("QueryResult ok = false, fake reports results available")
	}
}

func TestCreateComputePipelineRequiresFeature(t *testing.T) {
	fns := newRecordingFuncs()
	fns.strs[gl.VERSION] = "4.1.0"
	fns.strs[gl.SHADING_LANGUAGE_VERSION] = "4.10"
	dev, err := NewDevice(fns)
	if err != nil {
		t.Fatalf("NewDevice() failed: %v", err)
	}
	_, err = dev.CreateComputePipeline(rhi.ComputePipelineDescriptor{})
	if !errors.Is(err, rhi.ErrUnsupportedFeature) {
		t.Errorf("CreateComputePipeline on 4.1 = %v, want ErrUnsupportedFeature", err)
	}
}

func TestCreateRenderTarget(t *testing.T) {
	dev, fns := newTestDevice(t)

	color, err := dev.CreateTexture(rhi.TextureDescriptor{
		Type: rhi.Texture2D, Format: rhi.FormatRGBA8, Width: 128, Height: 64,
	})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}

	fns.reset()
	rt, err := dev.CreateRenderTarget(rhi.RenderTargetDescriptor{
		ColorAttachments: []rhi.Texture{color},
	})
	if err != nil {
		t.Fatalf("CreateRenderTarget() failed: %v", err)
	}
	w, h := rt.Extent()
	if w != 128 || h != 64 {
		t.Errorf("Extent() = %dx%d, want 128x64", w, h)
	}
	if rt.NumColorAttachments() != 1 {
		t.Errorf("NumColorAttachments() = %d, want 1", rt.NumColorAttachments())
	}
	if got := fns.count("FramebufferTexture2D("); got != 1 {
		t.Errorf("FramebufferTexture2D forwarded %d times, want 1", got)
	}
}

func TestCreateRenderTargetEmptyRejected(t *testing.T) {
	dev, _ := newTestDevice(t)
	if _, err := dev.CreateRenderTarget(rhi.RenderTargetDescriptor{}); !errors.Is(err, rhi.ErrInvalidDescriptor) {
		t.Errorf("empty render target = %v, want ErrInvalidDescriptor", err)
	}
}
