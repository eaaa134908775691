// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// wgpuBuffer is a hal buffer with a declared purpose.
type wgpuBuffer struct {
	dev  *wgpuDevice
	buf  hal.Buffer
	desc rhi.BufferDescriptor
}

func (b *wgpuBuffer) ResourceType() rhi.ResourceType   { return rhi.ResourceBuffer }
func (b *wgpuBuffer) Descriptor() rhi.BufferDescriptor { return b.desc }

func (b *wgpuBuffer) Release() {
	if b.buf != nil {
		b.dev.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// wgpuTexture is a hal texture plus the full-resource view everything
// binds and attaches.
type wgpuTexture struct {
	dev  *wgpuDevice
	tex  hal.Texture
	view hal.TextureView
	desc rhi.TextureDescriptor
}

func (t *wgpuTexture) ResourceType() rhi.ResourceType    { return rhi.ResourceTexture }
func (t *wgpuTexture) Descriptor() rhi.TextureDescriptor { return t.desc }

func (t *wgpuTexture) Release() {
	if t.view != nil {
		t.dev.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.dev.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

type wgpuSampler struct {
	dev     *wgpuDevice
	sampler hal.Sampler
	desc    rhi.SamplerDescriptor
}

func (s *wgpuSampler) ResourceType() rhi.ResourceType    { return rhi.ResourceSampler }
func (s *wgpuSampler) Descriptor() rhi.SamplerDescriptor { return s.desc }

func (s *wgpuSampler) Release() {
	if s.sampler != nil {
		s.dev.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
}

// stageModule is one compiled shader stage.
type stageModule struct {
	module hal.ShaderModule
	entry  string
}

// wgpuShaderProgram is a set of per-stage SPIR-V modules compiled from
// WGSL. WGSL modules carry no reflectable attribute names, so
// VertexAttributes reports nothing and pipelines validate against
// their declared vertex layout instead.
type wgpuShaderProgram struct {
	dev     *wgpuDevice
	name    string
	stages  rhi.ShaderStages
	modules map[rhi.ShaderStages]stageModule
	hash    uint64
}

func (p *wgpuShaderProgram) ResourceType() rhi.ResourceType          { return rhi.ResourceShaderProgram }
func (p *wgpuShaderProgram) Stages() rhi.ShaderStages                { return p.stages }
func (p *wgpuShaderProgram) VertexAttributes() []rhi.VertexAttribute { return nil }

func (p *wgpuShaderProgram) Release() {
	for stage, m := range p.modules {
		if m.module != nil {
			p.dev.device.DestroyShaderModule(m.module)
		}
		delete(p.modules, stage)
	}
}

// wgpuGraphicsPipeline holds baked state. The native pipeline is
// derived at draw time, when the attachment formats and binding
// layout are known, and deduplicated in the device cache.
type wgpuGraphicsPipeline struct {
	dev     *wgpuDevice
	desc    rhi.GraphicsPipelineDescriptor
	program *wgpuShaderProgram
	hash    uint64
}

func (p *wgpuGraphicsPipeline) ResourceType() rhi.ResourceType { return rhi.ResourceGraphicsPipeline }

func (p *wgpuGraphicsPipeline) Descriptor() rhi.GraphicsPipelineDescriptor { return p.desc }

// Release is a no-op: derived native pipelines live in the device
// cache and are destroyed with the device.
func (p *wgpuGraphicsPipeline) Release() {}

type wgpuComputePipeline struct {
	dev     *wgpuDevice
	desc    rhi.ComputePipelineDescriptor
	program *wgpuShaderProgram
	hash    uint64
}

func (p *wgpuComputePipeline) ResourceType() rhi.ResourceType { return rhi.ResourceComputePipeline }

func (p *wgpuComputePipeline) Descriptor() rhi.ComputePipelineDescriptor { return p.desc }

func (p *wgpuComputePipeline) Release() {}

// wgpuRenderTarget is an ordered set of texture views draws render
// into. The views are owned by the attached textures.
type wgpuRenderTarget struct {
	dev    *wgpuDevice
	name   string
	colors []*wgpuTexture
	depth  *wgpuTexture
	width  uint32
	height uint32
}

func (rt *wgpuRenderTarget) ResourceType() rhi.ResourceType { return rhi.ResourceRenderTarget }

func (rt *wgpuRenderTarget) Extent() (uint32, uint32) { return rt.width, rt.height }

func (rt *wgpuRenderTarget) NumColorAttachments() uint32 { return uint32(len(rt.colors)) }

// Release is a no-op: the target borrows its attachments' views.
func (rt *wgpuRenderTarget) Release() {}
