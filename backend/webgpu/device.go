// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/internal/hashcache"
)

func init() {
	backend.Register(backend.BackendWebGPU, func() backend.Backend {
		return &wgpuBackend{}
	})
}

// wgpuBackend opens devices on the gogpu/wgpu hardware abstraction
// layer.
type wgpuBackend struct{}

func (b *wgpuBackend) Name() string { return backend.BackendWebGPU }

// Open creates a device. A non-nil handle borrows the host
// application's hal device and queue; a nil handle creates a
// standalone Vulkan device the returned rhi.Device owns.
func (b *wgpuBackend) Open(handle rhi.DeviceHandle) (rhi.Device, error) {
	if handle != nil {
		return openShared(handle)
	}
	return openOwned()
}

// halProvider is the surface a host device handle must expose to be
// borrowed. gogpu's App satisfies it.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

func openShared(handle rhi.DeviceHandle) (rhi.Device, error) {
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: device handle does not expose hal types", backend.ErrBackendNotAvailable)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: handle HalDevice is not a hal.Device", backend.ErrBackendNotAvailable)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: handle HalQueue is not a hal.Queue", backend.ErrBackendNotAvailable)
	}
	dev := newDevice(nil, device, queue, false)
	rhi.Logger().Info("webgpu: device opened", "source", "host")
	return dev, nil
}

func openOwned() (rhi.Device, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: no vulkan hal backend", backend.ErrBackendNotAvailable)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", backend.ErrBackendNotAvailable, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters", backend.ErrBackendNotAvailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open adapter: %v", backend.ErrBackendNotAvailable, err)
	}

	dev := newDevice(instance, openDev.Device, openDev.Queue, true)
	rhi.Logger().Info("webgpu: device opened", "source", "standalone", "adapter", selected.Info.Name)
	return dev, nil
}

// wgpuDevice is a device over one hal device/queue pair.
type wgpuDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owns     bool
	caps     rhi.RenderingCaps
	closed   bool

	// Native pipelines are derived lazily at draw time and deduplicated
	// here, keyed by descriptor digest.
	renderPipelines  *hashcache.Cache[uint64, *renderPipelineEntry]
	computePipelines *hashcache.Cache[uint64, *computePipelineEntry]
}

func newDevice(instance hal.Instance, device hal.Device, queue hal.Queue, owns bool) *wgpuDevice {
	return &wgpuDevice{
		instance:         instance,
		device:           device,
		queue:            queue,
		owns:             owns,
		caps:             buildCaps(),
		renderPipelines:  hashcache.New[uint64, *renderPipelineEntry](0, hashcache.HashUint64),
		computePipelines: hashcache.New[uint64, *computePipelineEntry](0, hashcache.HashUint64),
	}
}

// WebGPU baseline limits. Every conforming implementation guarantees
// at least these, so they are safe to advertise for borrowed devices
// whose actual limits are not queryable through the provider surface.
const (
	base1DTextureSize     = 8192
	base3DTextureSize     = 2048
	baseTextureLayers     = 256
	baseColorAttachments  = 8
	baseUniformBufferSize = 65536
	baseWorkGroups        = 65535
)

func buildCaps() rhi.RenderingCaps {
	limits := gputypes.DefaultLimits()
	return rhi.RenderingCaps{
		ScreenOrigin:    rhi.OriginUpperLeft,
		ClippingRange:   rhi.ClipZeroToOne,
		ShadingLanguage: "WGSL",

		HasRenderTargets:       true,
		Has3DTextures:          true,
		HasCubeTextures:        true,
		HasTextureArrays:       true,
		HasCubeTextureArrays:   true,
		HasMultiSampleTextures: true,
		HasSamplers:            true,
		HasConstantBuffers:     true,
		HasStorageBuffers:      true,
		HasComputeShaders:      true,
		HasInstancing:          true,
		HasOffsetInstancing:    true,

		// No WebGPU equivalents.
		HasGeometryShaders:     false,
		HasTessellationShaders: false,
		HasViewportArrays:      false,
		HasStreamOutputs:       false,

		MaxVertices:                1<<32 - 1,
		MaxInstances:               1<<32 - 1,
		MaxTextureArrayLayers:      baseTextureLayers,
		MaxRenderTargetAttachments: baseColorAttachments,
		MaxConstantBufferSize:      baseUniformBufferSize,
		MaxPatchVertices:           0,
		Max1DTextureSize:           base1DTextureSize,
		Max2DTextureSize:           limits.MaxTextureDimension2D,
		Max3DTextureSize:           base3DTextureSize,
		MaxCubeTextureSize:         limits.MaxTextureDimension2D,
		MaxAnisotropy:              16,
		MaxViewports:               1,
		MaxTextureLayers:           maxBindingSlots,

		MaxComputeWorkGroups:    [3]uint32{baseWorkGroups, baseWorkGroups, baseWorkGroups},
		MaxComputeWorkGroupSize: [3]uint32{256, 256, 64},
	}
}

func (d *wgpuDevice) Caps() rhi.RenderingCaps { return d.caps }

func (d *wgpuDevice) NewCommandBuffer() (rhi.CommandBuffer, error) {
	if d.closed {
		return nil, rhi.ErrDeviceLost
	}
	return newCommandBuffer(d), nil
}

// bufferUsageFor maps a buffer's declared purpose to native usage
// flags. Every buffer is CopyDst so UpdateBuffer can write it.
func bufferUsageFor(t rhi.BufferType) (gputypes.BufferUsage, error) {
	switch t {
	case rhi.BufferVertex:
		return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst, nil
	case rhi.BufferIndex:
		return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst, nil
	case rhi.BufferConstant:
		return gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst, nil
	case rhi.BufferStorage:
		return gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst, nil
	}
	return 0, fmt.Errorf("%w: %s buffers", rhi.ErrUnsupportedFeature, t)
}

func (d *wgpuDevice) CreateBuffer(desc rhi.BufferDescriptor, data []byte) (rhi.Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("%w: buffer %q has zero size", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if uint64(len(data)) > desc.Size {
		return nil, fmt.Errorf("%w: buffer %q initial data (%d bytes) exceeds size %d",
			rhi.ErrInvalidDescriptor, desc.Name, len(data), desc.Size)
	}
	usage, err := bufferUsageFor(desc.Type)
	if err != nil {
		return nil, err
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Name,
		Size:  desc.Size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create buffer %q: %w", desc.Name, err)
	}
	if len(data) > 0 {
		d.queue.WriteBuffer(buf, 0, data)
	}
	return &wgpuBuffer{dev: d, buf: buf, desc: desc}, nil
}

// textureDimensionFor maps a texture type to its native dimension.
// Cube and array types are 2D textures with layers.
func textureDimensionFor(t rhi.TextureType) gputypes.TextureDimension {
	switch t {
	case rhi.Texture1D:
		return gputypes.TextureDimension1D
	case rhi.Texture3D:
		return gputypes.TextureDimension3D
	}
	return gputypes.TextureDimension2D
}

// textureLayersFor returns the DepthOrArrayLayers extent for a texture
// type. desc.Depth carries the layer count for array types.
func textureLayersFor(desc rhi.TextureDescriptor) uint32 {
	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}
	switch desc.Type {
	case rhi.TextureCube:
		return 6
	case rhi.TextureCubeArray:
		return 6 * depth
	case rhi.Texture1DArray, rhi.Texture2DArray, rhi.Texture2DMSArray, rhi.Texture3D:
		return depth
	}
	return 1
}

func (d *wgpuDevice) CreateTexture(desc rhi.TextureDescriptor) (rhi.Texture, error) {
	if desc.Format == rhi.FormatUnknown {
		return nil, fmt.Errorf("%w: texture %q has no format", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: texture %q has empty extent", rhi.ErrInvalidDescriptor, desc.Name)
	}
	format, err := MapFormat(desc.Format)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", desc.Name, err)
	}

	levels := desc.MipLevels
	if levels == 0 {
		levels = rhi.NumMipLevels(desc.Width, desc.Height, 1)
	}
	samples := uint32(1)
	if desc.Type.IsMultisample() {
		levels = 1
		samples = desc.Samples
		if samples == 0 {
			samples = 4
		}
	}
	desc.MipLevels = levels

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment |
		gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Name,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: textureLayersFor(desc),
		},
		MipLevelCount: levels,
		SampleCount:   samples,
		Dimension:     textureDimensionFor(desc.Type),
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create texture %q: %w", desc.Name, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Name,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("webgpu: create texture view %q: %w", desc.Name, err)
	}
	return &wgpuTexture{dev: d, tex: tex, view: view, desc: desc}, nil
}

func (d *wgpuDevice) CreateSampler(desc rhi.SamplerDescriptor) (rhi.Sampler, error) {
	modeU, err := MapAddressMode(desc.WrapU)
	if err != nil {
		return nil, fmt.Errorf("sampler %q wrap U: %w", desc.Name, err)
	}
	modeV, err := MapAddressMode(desc.WrapV)
	if err != nil {
		return nil, fmt.Errorf("sampler %q wrap V: %w", desc.Name, err)
	}
	modeW, err := MapAddressMode(desc.WrapW)
	if err != nil {
		return nil, fmt.Errorf("sampler %q wrap W: %w", desc.Name, err)
	}
	magFilter, _ := MapFilterMode(desc.MagFilter)
	minFilter, _ := MapFilterMode(desc.MinFilter)
	mipFilter, _ := MapFilterMode(desc.MipFilter)

	s, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Name,
		AddressModeU: modeU,
		AddressModeV: modeV,
		AddressModeW: modeW,
		MagFilter:    magFilter,
		MinFilter:    minFilter,
		MipmapFilter: mipFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create sampler %q: %w", desc.Name, err)
	}
	return &wgpuSampler{dev: d, sampler: s, desc: desc}, nil
}

func (d *wgpuDevice) CreateQuery(queryType rhi.QueryType) (rhi.Query, error) {
	return nil, fmt.Errorf("%w: device queries", rhi.ErrUnsupportedFeature)
}

func (d *wgpuDevice) CreateRenderTarget(desc rhi.RenderTargetDescriptor) (rhi.RenderTarget, error) {
	if len(desc.ColorAttachments) == 0 && desc.DepthStencil == nil {
		return nil, fmt.Errorf("%w: render target %q has no attachments", rhi.ErrInvalidDescriptor, desc.Name)
	}
	if n := uint32(len(desc.ColorAttachments)); n > d.caps.MaxRenderTargetAttachments {
		return nil, fmt.Errorf("%w: render target %q has %d color attachments, device limit is %d",
			rhi.ErrInvalidDescriptor, desc.Name, n, d.caps.MaxRenderTargetAttachments)
	}

	rt := &wgpuRenderTarget{dev: d, name: desc.Name}
	for i, attachment := range desc.ColorAttachments {
		tex, ok := attachment.(*wgpuTexture)
		if !ok {
			return nil, fmt.Errorf("%w: render target %q attachment %d was not created by this device",
				rhi.ErrInvalidDescriptor, desc.Name, i)
		}
		rt.colors = append(rt.colors, tex)
		rt.width = tex.desc.Width
		rt.height = tex.desc.Height
	}
	if desc.DepthStencil != nil {
		tex, ok := desc.DepthStencil.(*wgpuTexture)
		if !ok {
			return nil, fmt.Errorf("%w: render target %q depth attachment was not created by this device",
				rhi.ErrInvalidDescriptor, desc.Name)
		}
		if !rhi.IsDepthStencilFormat(tex.desc.Format) {
			return nil, fmt.Errorf("%w: render target %q depth attachment has color format %s",
				rhi.ErrInvalidDescriptor, desc.Name, tex.desc.Format)
		}
		rt.depth = tex
		if rt.width == 0 {
			rt.width = tex.desc.Width
			rt.height = tex.desc.Height
		}
	}
	return rt, nil
}

func (d *wgpuDevice) Close() {
	if d.closed {
		return
	}
	d.closed = true

	d.renderPipelines.Range(func(_ uint64, e *renderPipelineEntry) {
		e.destroy(d.device)
	})
	d.renderPipelines.Clear()
	d.computePipelines.Range(func(_ uint64, e *computePipelineEntry) {
		e.destroy(d.device)
	})
	d.computePipelines.Clear()

	if d.owns {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	rhi.Logger().Info("webgpu: device closed")
}
