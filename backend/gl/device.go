// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
)

func init() {
	backend.Register(backend.BackendGL, func() backend.Backend {
		return &glBackend{}
	})
}

// glBackend opens devices on the current GL context.
type glBackend struct{}

func (b *glBackend) Name() string { return backend.BackendGL }

// Open creates a device on the GL context current on the calling
// goroutine. The handle is unused: GL devices are implied by the
// context and cannot be borrowed from a host.
func (b *glBackend) Open(handle rhi.DeviceHandle) (rhi.Device, error) {
	fns, err := newFunctions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrBackendNotAvailable, err)
	}
	return NewDevice(fns)
}

// glDevice is a device bound to one GL context.
type glDevice struct {
	fns     Functions
	cache   *StateCache
	feats   Features
	caps    rhi.RenderingCaps
	version glVersion
	closed  bool
}

// NewDevice wraps an already-current GL context. The version and
// optional entry points are detected once here; the state cache starts
// from the fresh-context defaults and is Reset against the live
// toggles.
func NewDevice(fns Functions, opts ...DeviceOption) (rhi.Device, error) {
	version, err := parseVersion(fns.GetString(gl.VERSION))
	if err != nil {
		return nil, err
	}
	if !version.atLeast(3, 3) {
		return nil, fmt.Errorf("%w: OpenGL %s, need 3.3 or later", rhi.ErrUnsupportedFeature, version)
	}

	dev := &glDevice{
		fns:     fns,
		version: version,
		feats:   detectFeatures(version),
	}
	for _, opt := range opts {
		opt(dev)
	}
	dev.caps = queryCaps(fns, version, dev.feats)

	layers := int(dev.caps.MaxTextureLayers)
	if layers <= 0 {
		layers = DefaultTextureLayers
	}
	dev.cache = NewStateCache(fns, WithFeatures(dev.feats), WithTextureLayers(layers))
	dev.cache.Reset()

	rhi.Logger().Info("gl: device opened",
		"version", version.String(),
		"glsl", dev.caps.ShadingLanguage,
		"textureLayers", layers,
	)
	return dev, nil
}

// DeviceOption configures a device during NewDevice.
type DeviceOption func(*glDevice)

// WithDetectedFeatures overrides the version-derived feature booleans.
// Intended for tests and for drivers whose version string lies.
func WithDetectedFeatures(feats Features) DeviceOption {
	return func(d *glDevice) {
		d.feats = feats
	}
}

func (d *glDevice) Caps() rhi.RenderingCaps { return d.caps }

// Cache exposes the device's state cache to code layered on top of the
// command buffer, e.g. hosts that interleave their own GL calls and
// need push/pop around them.
func (d *glDevice) Cache() *StateCache { return d.cache }

func (d *glDevice) NewCommandBuffer() (rhi.CommandBuffer, error) {
	if d.closed {
		return nil, rhi.ErrDeviceLost
	}
	return newCommandBuffer(d), nil
}

func (d *glDevice) CreateBuffer(desc rhi.BufferDescriptor, data []byte) (rhi.Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("%w: buffer %q has zero size", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if uint64(len(data)) > desc.Size {
		return nil, fmt.Errorf("%w: buffer %q initial data (%d bytes) exceeds size %d",
			rhi.ErrInvalidDescriptor, desc.Name, len(data), desc.Size)
	}

	buf := &glBuffer{
		dev:    d,
		id:     d.fns.GenBuffer(),
		target: bufferTargetFor(desc.Type),
		desc:   desc,
	}

	usage := uint32(gl.DYNAMIC_DRAW)
	if data != nil {
		usage = gl.STATIC_DRAW
	}
	d.cache.PushBoundBuffer(buf.target)
	d.cache.BindBuffer(buf.target, buf.id)
	d.fns.BufferData(bufferTargetEnums[buf.target], int(desc.Size), data, usage)
	d.cache.PopBoundBuffer()

	if desc.Type == rhi.BufferVertex && !desc.Layout.Empty() {
		buf.vao = d.buildVertexArray(buf.id, desc.Layout)
	}
	if err := checkError(d.fns, "CreateBuffer"); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

// buildVertexArray bakes a vertex layout into a VAO referencing the
// given buffer.
func (d *glDevice) buildVertexArray(buffer uint32, layout rhi.VertexFormat) uint32 {
	vao := d.fns.GenVertexArray()
	d.cache.BindVertexArray(vao)
	d.cache.BindBuffer(TargetArrayBuffer, buffer)
	stride := int32(layout.Stride())
	for _, attr := range layout.Attributes() {
		d.fns.EnableVertexAttribArray(attr.Location)
		d.fns.VertexAttribPointer(attr.Location, int32(attr.Components),
			dataTypeEnums[attr.Type], attr.Normalized, stride, uintptr(attr.Offset))
	}
	d.cache.BindVertexArray(0)
	return vao
}

func (d *glDevice) CreateTexture(desc rhi.TextureDescriptor) (rhi.Texture, error) {
	if desc.Format == rhi.FormatUnknown {
		return nil, fmt.Errorf("%w: texture %q has no format", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: texture %q has empty extent", rhi.ErrInvalidDescriptor, desc.Name)
	}

	tex := &glTexture{
		dev:    d,
		id:     d.fns.GenTexture(),
		target: textureTargetFor(desc.Type),
		desc:   desc,
	}

	levels := desc.MipLevels
	if levels == 0 {
		levels = rhi.NumMipLevels(desc.Width, desc.Height, 1)
	}
	if desc.Type.IsMultisample() {
		levels = 1
	}
	tex.desc.MipLevels = levels

	internal := formatInternalEnums[desc.Format]
	target := textureTargetEnums[tex.target]
	layers := desc.Depth
	if layers == 0 {
		layers = 1
	}
	samples := desc.Samples
	if samples == 0 {
		samples = 1
	}

	layer := d.cache.activeLayer
	d.cache.PushBoundTexture(layer, tex.target)
	d.cache.BindTexture(tex.target, tex.id)
	switch desc.Type {
	case rhi.Texture1D:
		d.fns.TexStorage1D(target, int32(levels), internal, int32(desc.Width))
	case rhi.Texture1DArray:
		// 1D array storage carries the layer count in the height slot.
		d.fns.TexStorage2D(target, int32(levels), internal, int32(desc.Width), int32(layers))
	case rhi.Texture3D, rhi.Texture2DArray, rhi.TextureCubeArray:
		d.fns.TexStorage3D(target, int32(levels), internal,
			int32(desc.Width), int32(desc.Height), int32(layers))
	case rhi.Texture2DMS:
		d.fns.TexStorage2DMultisample(target, int32(samples), internal,
			int32(desc.Width), int32(desc.Height), true)
	case rhi.Texture2DMSArray:
		d.fns.TexStorage3DMultisample(target, int32(samples), internal,
			int32(desc.Width), int32(desc.Height), int32(layers), true)
	default:
		d.fns.TexStorage2D(target, int32(levels), internal, int32(desc.Width), int32(desc.Height))
	}
	d.cache.PopBoundTexture()

	if err := checkError(d.fns, "CreateTexture"); err != nil {
		tex.Release()
		return nil, err
	}
	return tex, nil
}

func (d *glDevice) CreateSampler(desc rhi.SamplerDescriptor) (rhi.Sampler, error) {
	s := &glSampler{
		dev:  d,
		id:   d.fns.GenSampler(),
		desc: desc,
	}
	d.fns.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, int32(minFilterEnum(desc.MinFilter, desc.MipFilter)))
	d.fns.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, int32(magFilterEnum(desc.MagFilter)))
	d.fns.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, int32(wrapModeEnum(desc.WrapU)))
	d.fns.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, int32(wrapModeEnum(desc.WrapV)))
	d.fns.SamplerParameteri(s.id, gl.TEXTURE_WRAP_R, int32(wrapModeEnum(desc.WrapW)))
	if desc.MaxAnisotropy > 1 {
		d.fns.SamplerParameteri(s.id, gl.TEXTURE_MAX_ANISOTROPY, int32(desc.MaxAnisotropy))
	}
	if err := checkError(d.fns, "CreateSampler"); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (d *glDevice) CreateShaderProgram(desc rhi.ShaderProgramDescriptor) (rhi.ShaderProgram, error) {
	if len(desc.Sources) == 0 {
		return nil, fmt.Errorf("%w: program %q has no sources", rhi.ErrInvalidDescriptor, desc.Name)
	}

	program := d.fns.CreateProgram()
	shaders := make([]uint32, 0, len(desc.Sources))
	var stages rhi.ShaderStages
	for _, src := range desc.Sources {
		shader := d.fns.CreateShader(shaderTypeEnum(src.Stage))
		d.fns.ShaderSource(shader, src.Code)
		d.fns.CompileShader(shader)
		if d.fns.GetShaderParameter(shader, gl.COMPILE_STATUS) == 0 {
			log := d.fns.GetShaderInfoLog(shader)
			d.fns.DeleteShader(shader)
			for _, s := range shaders {
				d.fns.DeleteShader(s)
			}
			d.fns.DeleteProgram(program)
			return nil, fmt.Errorf("gl: compiling %s shader of %q: %s", src.Stage, desc.Name, strings.TrimSpace(log))
		}
		d.fns.AttachShader(program, shader)
		shaders = append(shaders, shader)
		stages |= src.Stage
	}

	d.fns.LinkProgram(program)
	for _, s := range shaders {
		d.fns.DeleteShader(s)
	}
	if d.fns.GetProgramParameter(program, gl.LINK_STATUS) == 0 {
		log := d.fns.GetProgramInfoLog(program)
		d.fns.DeleteProgram(program)
		return nil, fmt.Errorf("gl: linking %q: %s", desc.Name, strings.TrimSpace(log))
	}

	return &glShaderProgram{
		dev:     d,
		id:      program,
		stages:  stages,
		attribs: d.reflectAttributes(program),
	}, nil
}

// reflectAttributes lists the active vertex inputs of a linked
// program, skipping driver builtins.
func (d *glDevice) reflectAttributes(program uint32) []rhi.VertexAttribute {
	count := d.fns.GetProgramParameter(program, gl.ACTIVE_ATTRIBUTES)
	if count <= 0 {
		return nil
	}
	attribs := make([]rhi.VertexAttribute, 0, count)
	for i := int32(0); i < count; i++ {
		name, _, xtype := d.fns.GetActiveAttrib(program, uint32(i))
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		dataType, components, ok := attribTypeFor(xtype)
		if !ok {
			rhi.Logger().Warn("gl: skipping attribute with unsupported type", "name", name, "type", xtype)
			continue
		}
		location := d.fns.GetAttribLocation(program, name)
		if location < 0 {
			continue
		}
		attribs = append(attribs, rhi.VertexAttribute{
			Name:       name,
			Type:       dataType,
			Components: components,
			Location:   uint32(location),
		})
	}
	return attribs
}

func (d *glDevice) CreateGraphicsPipeline(desc rhi.GraphicsPipelineDescriptor) (rhi.GraphicsPipeline, error) {
	if desc.Program == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no program", rhi.ErrInvalidDescriptor, desc.Name)
	}
	prog, ok := desc.Program.(*glShaderProgram)
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %q program was not created by this device",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	if desc.Topology == rhi.TopologyPatches && !d.caps.HasTessellationShaders {
		return nil, fmt.Errorf("%w: patch topology", rhi.ErrUnsupportedFeature)
	}
	return &glGraphicsPipeline{
		dev:          d,
		desc:         desc,
		program:      prog.id,
		topologyEnum: topologyEnums[desc.Topology],
	}, nil
}

func (d *glDevice) CreateComputePipeline(desc rhi.ComputePipelineDescriptor) (rhi.ComputePipeline, error) {
	if !d.feats.HasComputeShaders {
		return nil, fmt.Errorf("%w: compute shaders", rhi.ErrUnsupportedFeature)
	}
	if desc.Program == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no program", rhi.ErrInvalidDescriptor, desc.Name)
	}
	prog, ok := desc.Program.(*glShaderProgram)
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %q program was not created by this device",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	if prog.stages&rhi.StageCompute == 0 {
		return nil, fmt.Errorf("%w: pipeline %q program has no compute stage",
			rhi.ErrInvalidDescriptor, desc.Name)
	}
	return &glComputePipeline{dev: d, desc: desc, program: prog.id}, nil
}

func (d *glDevice) CreateQuery(queryType rhi.QueryType) (rhi.Query, error) {
	return &glQuery{
		dev:   d,
		id:    d.fns.GenQuery(),
		qtype: queryType,
	}, nil
}

func (d *glDevice) CreateRenderTarget(desc rhi.RenderTargetDescriptor) (rhi.RenderTarget, error) {
	if len(desc.ColorAttachments) == 0 && desc.DepthStencil == nil {
		return nil, fmt.Errorf("%w: render target %q has no attachments", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if n := uint32(len(desc.ColorAttachments)); n > d.caps.MaxRenderTargetAttachments {
		return nil, fmt.Errorf("%w: render target %q has %d color attachments, device limit is %d",
			rhi.ErrInvalidDescriptor, desc.Name, n, d.caps.MaxRenderTargetAttachments)
	}

	rt := &glRenderTarget{
		dev:       d,
		fbo:       d.fns.GenFramebuffer(),
		numColors: uint32(len(desc.ColorAttachments)),
	}
	d.cache.BindFramebuffer(FramebufferCombined, rt.fbo)

	bufs := make([]uint32, 0, len(desc.ColorAttachments))
	for i, attachment := range desc.ColorAttachments {
		tex, ok := attachment.(*glTexture)
		if !ok {
			rt.Release()
			return nil, fmt.Errorf("%w: render target %q attachment %d was not created by this device",
				rhi.ErrInvalidDescriptor, desc.Name, i)
		}
		d.fns.FramebufferTexture2D(glFramebuffer, glColorAttachment0+uint32(i),
			textureTargetEnums[tex.target], tex.id, 0)
		bufs = append(bufs, glColorAttachment0+uint32(i))
		rt.width = tex.desc.Width
		rt.height = tex.desc.Height
	}
	if desc.DepthStencil != nil {
		tex, ok := desc.DepthStencil.(*glTexture)
		if !ok {
			rt.Release()
			return nil, fmt.Errorf("%w: render target %q depth attachment was not created by this device",
				rhi.ErrInvalidDescriptor, desc.Name)
		}
		attachment := uint32(glDepthAttachment)
		if tex.desc.Format == rhi.FormatDepth24Stencil8 {
			attachment = glDepthStencilAttachment
		}
		d.fns.FramebufferTexture2D(glFramebuffer, attachment, textureTargetEnums[tex.target], tex.id, 0)
		if rt.width == 0 {
			rt.width = tex.desc.Width
			rt.height = tex.desc.Height
		}
	}
	if len(bufs) > 0 {
		d.fns.DrawBuffers(bufs)
	}

	status := d.fns.CheckFramebufferStatus(glFramebuffer)
	d.cache.BindFramebuffer(FramebufferCombined, 0)
	if status != glFramebufferComplete {
		rt.Release()
		return nil, fmt.Errorf("gl: render target %q incomplete: %s", desc.Name, framebufferStatusString(status))
	}
	return rt, nil
}

func (d *glDevice) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.fns.Finish()
	rhi.Logger().Info("gl: device closed")
}

// minFilterEnum combines minification and mip filters into the native
// enum.
func minFilterEnum(minFilter, mipFilter rhi.Filter) uint32 {
	switch {
	case minFilter == rhi.FilterNearest && mipFilter == rhi.FilterNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case minFilter == rhi.FilterNearest && mipFilter == rhi.FilterLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case minFilter == rhi.FilterLinear && mipFilter == rhi.FilterNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	default:
		return gl.LINEAR_MIPMAP_LINEAR
	}
}

func magFilterEnum(f rhi.Filter) uint32 {
	if f == rhi.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapModeEnum(m rhi.WrapMode) uint32 {
	switch m {
	case rhi.WrapMirror:
		return gl.MIRRORED_REPEAT
	case rhi.WrapClamp:
		return gl.CLAMP_TO_EDGE
	case rhi.WrapBorder:
		return gl.CLAMP_TO_BORDER
	}
	return gl.REPEAT
}
