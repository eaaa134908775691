package gl

import (
	"github.com/gogpu/rhi"
)

// glBuffer is a native buffer object. Vertex buffers with a layout also
// own a vertex array object describing it.
type glBuffer struct {
	dev    *glDevice
	id     uint32
	vao    uint32 // 0 unless a vertex layout is attached
	target BufferTarget
	desc   rhi.BufferDescriptor
}

func (b *glBuffer) ResourceType() rhi.ResourceType { return rhi.ResourceBuffer }

func (b *glBuffer) Descriptor() rhi.BufferDescriptor { return b.desc }

func (b *glBuffer) Release() {
	if b.vao != 0 {
		b.dev.fns.DeleteVertexArray(b.vao)
		b.vao = 0
	}
	if b.id != 0 {
		b.dev.fns.DeleteBuffer(b.id)
		b.id = 0
	}
}

// glTexture is a native texture object.
type glTexture struct {
	dev    *glDevice
	id     uint32
	target TextureTarget
	desc   rhi.TextureDescriptor
}

func (t *glTexture) ResourceType() rhi.ResourceType { return rhi.ResourceTexture }

func (t *glTexture) Descriptor() rhi.TextureDescriptor { return t.desc }

func (t *glTexture) Release() {
	if t.id != 0 {
		t.dev.fns.DeleteTexture(t.id)
		t.id = 0
	}
}

// glSampler is a native sampler object.
type glSampler struct {
	dev  *glDevice
	id   uint32
	desc rhi.SamplerDescriptor
}

func (s *glSampler) ResourceType() rhi.ResourceType { return rhi.ResourceSampler }

func (s *glSampler) Descriptor() rhi.SamplerDescriptor { return s.desc }

func (s *glSampler) Release() {
	if s.id != 0 {
		s.dev.fns.DeleteSampler(s.id)
		s.id = 0
	}
}

// glShaderProgram is a linked native program with its reflected vertex
// inputs.
type glShaderProgram struct {
	dev     *glDevice
	id      uint32
	stages  rhi.ShaderStages
	attribs []rhi.VertexAttribute
}

func (p *glShaderProgram) ResourceType() rhi.ResourceType { return rhi.ResourceShaderProgram }

func (p *glShaderProgram) Stages() rhi.ShaderStages { return p.stages }

func (p *glShaderProgram) VertexAttributes() []rhi.VertexAttribute { return p.attribs }

func (p *glShaderProgram) Release() {
	if p.id != 0 {
		p.dev.fns.DeleteProgram(p.id)
		p.id = 0
	}
}

// glQuery is a native query object.
type glQuery struct {
	dev   *glDevice
	id    uint32
	qtype rhi.QueryType
}

func (q *glQuery) ResourceType() rhi.ResourceType { return rhi.ResourceQuery }

func (q *glQuery) Type() rhi.QueryType { return q.qtype }

func (q *glQuery) Release() {
	if q.id != 0 {
		q.dev.fns.DeleteQuery(q.id)
		q.id = 0
	}
}

// glRenderTarget is a framebuffer object with its attachment extent.
type glRenderTarget struct {
	dev       *glDevice
	fbo       uint32
	width     uint32
	height    uint32
	numColors uint32
}

func (r *glRenderTarget) ResourceType() rhi.ResourceType { return rhi.ResourceRenderTarget }

func (r *glRenderTarget) Extent() (uint32, uint32) { return r.width, r.height }

func (r *glRenderTarget) NumColorAttachments() uint32 { return r.numColors }

func (r *glRenderTarget) Release() {
	if r.fbo != 0 {
		r.dev.fns.DeleteFramebuffer(r.fbo)
		r.fbo = 0
	}
}
