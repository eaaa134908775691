// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/internal/hashcache"
)

// Bind group 0 slot convention; see the package documentation. Each
// resource class owns maxBindingSlots consecutive binding numbers.
const (
	maxBindingSlots    = 8
	storageBindingBase = 8
	textureBindingBase = 16
	samplerBindingBase = 24
)

type bufferSlot struct {
	buf    *wgpuBuffer
	stages rhi.ShaderStages
}

type textureSlot struct {
	tex    *wgpuTexture
	stages rhi.ShaderStages
}

type samplerSlot struct {
	sampler *wgpuSampler
	stages  rhi.ShaderStages
}

// bindingState mirrors the resources bound to bind group 0.
type bindingState struct {
	uniforms [maxBindingSlots]bufferSlot
	storages [maxBindingSlots]bufferSlot
	textures [maxBindingSlots]textureSlot
	samplers [maxBindingSlots]samplerSlot
}

// signature folds the binding layout shape (which slots are occupied,
// by what class, visible to which stages) into the hasher. Two states
// with the same signature share bind group layouts and pipelines.
func (b *bindingState) signature(h *hashcache.Hasher) {
	for i, s := range b.uniforms {
		if s.buf != nil {
			h.WriteUint32(uint32(i))
			h.WriteUint32(uint32(s.stages))
		}
	}
	h.WriteUint32(0xffffffff)
	for i, s := range b.storages {
		if s.buf != nil {
			h.WriteUint32(uint32(i))
			h.WriteUint32(uint32(s.stages))
		}
	}
	h.WriteUint32(0xffffffff)
	for i, s := range b.textures {
		if s.tex != nil {
			h.WriteUint32(uint32(i))
			h.WriteUint32(uint32(s.stages))
			h.WriteUint32(uint32(s.tex.desc.Type))
		}
	}
	h.WriteUint32(0xffffffff)
	for i, s := range b.samplers {
		if s.sampler != nil {
			h.WriteUint32(uint32(i))
			h.WriteUint32(uint32(s.stages))
		}
	}
}

// stageVisibility translates an abstract stage mask, dropping stages
// WebGPU does not have.
func stageVisibility(stages rhi.ShaderStages) gputypes.ShaderStage {
	var v gputypes.ShaderStage
	if stages&rhi.StageVertex != 0 {
		v |= gputypes.ShaderStageVertex
	}
	if stages&rhi.StageFragment != 0 {
		v |= gputypes.ShaderStageFragment
	}
	if stages&rhi.StageCompute != 0 {
		v |= gputypes.ShaderStageCompute
	}
	return v
}

// viewDimensionFor maps a texture type to the view dimension its
// binding declares.
func viewDimensionFor(t rhi.TextureType) gputypes.TextureViewDimension {
	switch t {
	case rhi.Texture1D:
		return gputypes.TextureViewDimension1D
	case rhi.Texture3D:
		return gputypes.TextureViewDimension3D
	case rhi.TextureCube, rhi.TextureCubeArray:
		return gputypes.TextureViewDimensionCube
	}
	return gputypes.TextureViewDimension2D
}

// layoutEntries builds the bind group layout for the current bindings.
func (b *bindingState) layoutEntries() []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	for i, s := range b.uniforms {
		if s.buf == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: stageVisibility(s.stages),
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		})
	}
	for i, s := range b.storages {
		if s.buf == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + storageBindingBase),
			Visibility: stageVisibility(s.stages),
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		})
	}
	for i, s := range b.textures {
		if s.tex == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + textureBindingBase),
			Visibility: stageVisibility(s.stages),
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: viewDimensionFor(s.tex.desc.Type),
			},
		})
	}
	for i, s := range b.samplers {
		if s.sampler == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + samplerBindingBase),
			Visibility: stageVisibility(s.stages),
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		})
	}
	return entries
}

// groupEntries builds the bind group resources matching layoutEntries.
func (b *bindingState) groupEntries() []gputypes.BindGroupEntry {
	var entries []gputypes.BindGroupEntry
	for i, s := range b.uniforms {
		if s.buf == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: uint32(i),
			Resource: gputypes.BufferBinding{
				Buffer: s.buf.buf.NativeHandle(), Offset: 0, Size: s.buf.desc.Size,
			},
		})
	}
	for i, s := range b.storages {
		if s.buf == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: uint32(i + storageBindingBase),
			Resource: gputypes.BufferBinding{
				Buffer: s.buf.buf.NativeHandle(), Offset: 0, Size: s.buf.desc.Size,
			},
		})
	}
	for i, s := range b.textures {
		if s.tex == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + textureBindingBase),
			Resource: gputypes.TextureViewBinding{TextureView: s.tex.view.NativeHandle()},
		})
	}
	for i, s := range b.samplers {
		if s.sampler == nil {
			continue
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + samplerBindingBase),
			Resource: gputypes.SamplerBinding{Sampler: s.sampler.sampler.NativeHandle()},
		})
	}
	return entries
}

// attachmentFormats is the render-target half of a pipeline cache key.
type attachmentFormats struct {
	colors   []gputypes.TextureFormat
	depth    gputypes.TextureFormat
	hasDepth bool
	samples  uint32
}

func formatsFor(rt *wgpuRenderTarget) (attachmentFormats, error) {
	fb := attachmentFormats{samples: 1}
	for _, tex := range rt.colors {
		format, err := MapFormat(tex.desc.Format)
		if err != nil {
			return fb, err
		}
		fb.colors = append(fb.colors, format)
		if tex.desc.Type.IsMultisample() && tex.desc.Samples > 1 {
			fb.samples = tex.desc.Samples
		}
	}
	if rt.depth != nil {
		format, err := MapFormat(rt.depth.desc.Format)
		if err != nil {
			return fb, err
		}
		fb.depth = format
		fb.hasDepth = true
	}
	return fb, nil
}

func (f attachmentFormats) signature(h *hashcache.Hasher) {
	for _, c := range f.colors {
		h.WriteUint32(uint32(c))
	}
	h.WriteUint32(0xffffffff)
	h.WriteBool(f.hasDepth)
	h.WriteUint32(uint32(f.depth))
	h.WriteUint32(f.samples)
}

// renderPipelineEntry is a cached native pipeline and the layout
// objects it was created with.
type renderPipelineEntry struct {
	pipeline   hal.RenderPipeline
	layout     hal.PipelineLayout
	bindLayout hal.BindGroupLayout
}

func (e *renderPipelineEntry) destroy(device hal.Device) {
	if e.pipeline != nil {
		device.DestroyRenderPipeline(e.pipeline)
	}
	if e.layout != nil {
		device.DestroyPipelineLayout(e.layout)
	}
	if e.bindLayout != nil {
		device.DestroyBindGroupLayout(e.bindLayout)
	}
}

type computePipelineEntry struct {
	pipeline   hal.ComputePipeline
	layout     hal.PipelineLayout
	bindLayout hal.BindGroupLayout
}

func (e *computePipelineEntry) destroy(device hal.Device) {
	if e.pipeline != nil {
		device.DestroyComputePipeline(e.pipeline)
	}
	if e.layout != nil {
		device.DestroyPipelineLayout(e.layout)
	}
	if e.bindLayout != nil {
		device.DestroyBindGroupLayout(e.bindLayout)
	}
}

func (d *wgpuDevice) CreateGraphicsPipeline(desc rhi.GraphicsPipelineDescriptor) (rhi.GraphicsPipeline, error) {
	if desc.Program == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no program", rhi.ErrInvalidDescriptor, desc.Name)
	}
	prog, ok := desc.Program.(*wgpuShaderProgram)
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %q program was not created by this device",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	if prog.stages&rhi.StageVertex == 0 {
		return nil, fmt.Errorf("%w: pipeline %q program has no vertex stage",
			rhi.ErrInvalidDescriptor, desc.Name)
	}

	// Resolve every mapped enum now so unsupported state surfaces at
	// creation, not at first draw.
	if _, err := MapTopology(desc.Topology); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}
	if _, err := MapCullMode(desc.Rasterizer.Cull); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}
	if _, err := mapVertexLayout(desc.Layout); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}
	if desc.Depth.TestEnabled {
		if _, err := MapCompareFunc(desc.Depth.Func); err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
		}
	}
	if desc.Stencil.Enabled {
		if _, err := mapStencilFace(desc.Stencil.Front); err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
		}
		if _, err := mapStencilFace(desc.Stencil.Back); err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
		}
	}
	if desc.Blend.Enabled {
		for _, target := range blendTargets(desc.Blend) {
			if _, err := mapBlendTarget(target); err != nil {
				return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
			}
		}
	}

	return &wgpuGraphicsPipeline{
		dev:     d,
		desc:    desc,
		program: prog,
		hash:    hashGraphicsDescriptor(desc, prog.hash),
	}, nil
}

func (d *wgpuDevice) CreateComputePipeline(desc rhi.ComputePipelineDescriptor) (rhi.ComputePipeline, error) {
	if desc.Program == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no program", rhi.ErrInvalidDescriptor, desc.Name)
	}
	prog, ok := desc.Program.(*wgpuShaderProgram)
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %q program was not created by this device",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	if prog.stages&rhi.StageCompute == 0 {
		return nil, fmt.Errorf("%w: pipeline %q program has no compute stage",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	return &wgpuComputePipeline{dev: d, desc: desc, program: prog, hash: prog.hash}, nil
}

// hashGraphicsDescriptor digests the creation-time pipeline state.
func hashGraphicsDescriptor(desc rhi.GraphicsPipelineDescriptor, programHash uint64) uint64 {
	h := hashcache.NewHasher()
	h.WriteUint64(programHash)
	h.WriteUint32(uint32(desc.Topology))

	for _, attr := range desc.Layout.Attributes() {
		h.WriteUint32(uint32(attr.Type))
		h.WriteUint32(attr.Components)
		h.WriteUint32(attr.Location)
		h.WriteUint32(attr.Offset)
		h.WriteBool(attr.Normalized)
	}
	h.WriteUint32(desc.Layout.Stride())

	h.WriteBool(desc.Depth.TestEnabled)
	h.WriteBool(desc.Depth.WriteEnabled)
	h.WriteUint32(uint32(desc.Depth.Func))

	h.WriteBool(desc.Stencil.Enabled)
	hashStencilFace(h, desc.Stencil.Front)
	hashStencilFace(h, desc.Stencil.Back)

	h.WriteBool(desc.Blend.Enabled)
	for _, target := range desc.Blend.Targets {
		h.WriteUint32(uint32(target.SrcColor))
		h.WriteUint32(uint32(target.DstColor))
		h.WriteUint32(uint32(target.ColorOp))
		h.WriteUint32(uint32(target.SrcAlpha))
		h.WriteUint32(uint32(target.DstAlpha))
		h.WriteUint32(uint32(target.AlphaOp))
		h.WriteUint32(uint32(target.Mask))
	}

	h.WriteUint32(uint32(desc.Rasterizer.Cull))
	h.WriteBool(desc.Rasterizer.FrontCCW)
	return h.Sum()
}

func hashStencilFace(h *hashcache.Hasher, face rhi.StencilFaceState) {
	h.WriteUint32(uint32(face.StencilFail))
	h.WriteUint32(uint32(face.DepthFail))
	h.WriteUint32(uint32(face.DepthPass))
	h.WriteUint32(uint32(face.Func))
	h.WriteUint32(uint32(face.Ref))
	h.WriteUint32(face.ReadMask)
	h.WriteUint32(face.WriteMask)
}

func mapStencilFace(face rhi.StencilFaceState) (hal.StencilFaceState, error) {
	compare, err := MapCompareFunc(face.Func)
	if err != nil {
		return hal.StencilFaceState{}, err
	}
	failOp, err := MapStencilOp(face.StencilFail)
	if err != nil {
		return hal.StencilFaceState{}, err
	}
	depthFailOp, err := MapStencilOp(face.DepthFail)
	if err != nil {
		return hal.StencilFaceState{}, err
	}
	passOp, err := MapStencilOp(face.DepthPass)
	if err != nil {
		return hal.StencilFaceState{}, err
	}
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      failOp,
		DepthFailOp: depthFailOp,
		PassOp:      passOp,
	}, nil
}

// blendTargets returns the per-attachment blend targets, falling back
// to a single default target when none were declared.
func blendTargets(state rhi.BlendState) []rhi.BlendTargetState {
	if len(state.Targets) > 0 {
		return state.Targets
	}
	return []rhi.BlendTargetState{rhi.DefaultBlendTarget()}
}

func mapBlendTarget(target rhi.BlendTargetState) (gputypes.BlendState, error) {
	srcColor, err := MapBlendFactor(target.SrcColor)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	dstColor, err := MapBlendFactor(target.DstColor)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	colorOp, err := MapBlendOp(target.ColorOp)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	srcAlpha, err := MapBlendFactor(target.SrcAlpha)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	dstAlpha, err := MapBlendFactor(target.DstAlpha)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	alphaOp, err := MapBlendOp(target.AlphaOp)
	if err != nil {
		return gputypes.BlendState{}, err
	}
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{SrcFactor: srcColor, DstFactor: dstColor, Operation: colorOp},
		Alpha: gputypes.BlendComponent{SrcFactor: srcAlpha, DstFactor: dstAlpha, Operation: alphaOp},
	}, nil
}

func mapColorWriteMask(mask rhi.ColorMask) gputypes.ColorWriteMask {
	if mask == rhi.ColorMaskAll {
		return gputypes.ColorWriteMaskAll
	}
	var m gputypes.ColorWriteMask
	if mask&rhi.ColorMaskR != 0 {
		m |= gputypes.ColorWriteMaskRed
	}
	if mask&rhi.ColorMaskG != 0 {
		m |= gputypes.ColorWriteMaskGreen
	}
	if mask&rhi.ColorMaskB != 0 {
		m |= gputypes.ColorWriteMaskBlue
	}
	if mask&rhi.ColorMaskA != 0 {
		m |= gputypes.ColorWriteMaskAlpha
	}
	return m
}

// bindingObjects creates the bind group layout, pipeline layout, and
// bind group for the current binding state. The layout objects are
// adopted by the cached pipeline entry; the bind group belongs to the
// caller and is freed after the pass.
func (d *wgpuDevice) bindingObjects(label string, bindings *bindingState) (hal.BindGroupLayout, hal.PipelineLayout, error) {
	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: bindings.layoutEntries(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("webgpu: create bind group layout: %w", err)
	}
	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(bindLayout)
		return nil, nil, fmt.Errorf("webgpu: create pipeline layout: %w", err)
	}
	return bindLayout, layout, nil
}

// renderPipelineFor resolves the native pipeline for the bound state,
// creating and caching it on first use.
func (d *wgpuDevice) renderPipelineFor(p *wgpuGraphicsPipeline, fb attachmentFormats, bindings *bindingState) (*renderPipelineEntry, error) {
	h := hashcache.NewHasher()
	h.WriteUint64(p.hash)
	fb.signature(h)
	bindings.signature(h)

	return d.renderPipelines.GetOrCreate(h.Sum(), func() (*renderPipelineEntry, error) {
		return d.buildRenderPipeline(p, fb, bindings)
	})
}

func (d *wgpuDevice) buildRenderPipeline(p *wgpuGraphicsPipeline, fb attachmentFormats, bindings *bindingState) (*renderPipelineEntry, error) {
	desc := p.desc
	topology, _ := MapTopology(desc.Topology)
	cullMode, _ := MapCullMode(desc.Rasterizer.Cull)
	vertexBuffers, _ := mapVertexLayout(desc.Layout)

	frontFace := gputypes.FrontFaceCW
	if desc.Rasterizer.FrontCCW {
		frontFace = gputypes.FrontFaceCCW
	}

	bindLayout, layout, err := d.bindingObjects(desc.Name, bindings)
	if err != nil {
		return nil, err
	}

	vertex := p.program.modules[rhi.StageVertex]
	native := &hal.RenderPipelineDescriptor{
		Label:  desc.Name,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     vertex.module,
			EntryPoint: vertex.entry,
			Buffers:    vertexBuffers,
		},
		Multisample: gputypes.MultisampleState{Count: fb.samples, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology:  topology,
			FrontFace: frontFace,
			CullMode:  cullMode,
		},
	}

	if fragment, ok := p.program.modules[rhi.StageFragment]; ok && len(fb.colors) > 0 {
		targets := make([]gputypes.ColorTargetState, len(fb.colors))
		blends := blendTargets(desc.Blend)
		for i, format := range fb.colors {
			target := gputypes.ColorTargetState{
				Format:    format,
				WriteMask: gputypes.ColorWriteMaskAll,
			}
			blendTarget := blends[min(i, len(blends)-1)]
			target.WriteMask = mapColorWriteMask(blendTarget.Mask)
			if desc.Blend.Enabled {
				blend, err := mapBlendTarget(blendTarget)
				if err != nil {
					d.device.DestroyPipelineLayout(layout)
					d.device.DestroyBindGroupLayout(bindLayout)
					return nil, err
				}
				target.Blend = &blend
			}
			targets[i] = target
		}
		native.Fragment = &hal.FragmentState{
			Module:     fragment.module,
			EntryPoint: fragment.entry,
			Targets:    targets,
		}
	}

	if fb.hasDepth {
		depthCompare := gputypes.CompareFunctionAlways
		if desc.Depth.TestEnabled {
			depthCompare, _ = MapCompareFunc(desc.Depth.Func)
		}
		ds := &hal.DepthStencilState{
			Format:            fb.depth,
			DepthWriteEnabled: desc.Depth.WriteEnabled,
			DepthCompare:      depthCompare,
			StencilFront:      hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			StencilBack:       hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			StencilReadMask:   0xFF,
			StencilWriteMask:  0xFF,
		}
		if desc.Stencil.Enabled {
			ds.StencilFront, _ = mapStencilFace(desc.Stencil.Front)
			ds.StencilBack, _ = mapStencilFace(desc.Stencil.Back)
			// WebGPU has one read/write mask pair for both faces.
			ds.StencilReadMask = desc.Stencil.Front.ReadMask
			ds.StencilWriteMask = desc.Stencil.Front.WriteMask
		}
		native.DepthStencil = ds
	}

	pipeline, err := d.device.CreateRenderPipeline(native)
	if err != nil {
		d.device.DestroyPipelineLayout(layout)
		d.device.DestroyBindGroupLayout(bindLayout)
		return nil, fmt.Errorf("webgpu: create render pipeline %q: %w", desc.Name, err)
	}
	return &renderPipelineEntry{pipeline: pipeline, layout: layout, bindLayout: bindLayout}, nil
}

// computePipelineFor resolves the native compute pipeline for the
// bound state, creating and caching it on first use.
func (d *wgpuDevice) computePipelineFor(p *wgpuComputePipeline, bindings *bindingState) (*computePipelineEntry, error) {
	h := hashcache.NewHasher()
	h.WriteUint64(p.hash)
	bindings.signature(h)

	return d.computePipelines.GetOrCreate(h.Sum(), func() (*computePipelineEntry, error) {
		bindLayout, layout, err := d.bindingObjects(p.desc.Name, bindings)
		if err != nil {
			return nil, err
		}
		compute := p.program.modules[rhi.StageCompute]
		pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label:   p.desc.Name,
			Layout:  layout,
			Compute: hal.ComputeState{Module: compute.module, EntryPoint: compute.entry},
		})
		if err != nil {
			d.device.DestroyPipelineLayout(layout)
			d.device.DestroyBindGroupLayout(bindLayout)
			return nil, fmt.Errorf("webgpu: create compute pipeline %q: %w", p.desc.Name, err)
		}
		return &computePipelineEntry{pipeline: pipeline, layout: layout, bindLayout: bindLayout}, nil
	})
}

// createBindGroup materializes the current bindings against a cached
// layout. The caller frees the group after the pass completes.
func (d *wgpuDevice) createBindGroup(label string, layout hal.BindGroupLayout, bindings *bindingState) (hal.BindGroup, error) {
	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   label + "_bind",
		Layout:  layout,
		Entries: bindings.groupEntries(),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create bind group: %w", err)
	}
	return group, nil
}
