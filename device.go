// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between rhi and GPU frameworks
// like gogpu. A host that already owns a device (e.g. gogpu.App)
// implements DeviceHandle and passes it to backend.Open, allowing rhi
// to share the host's device instead of creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing an
// rhi-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle requests that the backend create and own its device
// itself rather than borrowing one from a host application.
var NullDeviceHandle DeviceHandle

// Device creates resources and command buffers for one native GPU
// context. All resources passed to a command buffer must have been
// created by the same Device.
//
// One goroutine drives one device's command stream at a time; see the
// CommandBuffer documentation.
type Device interface {
	// Caps returns the device limits and feature booleans, resolved
	// once while the device was opened.
	Caps() RenderingCaps

	// NewCommandBuffer creates a command buffer recording into this
	// device's context.
	NewCommandBuffer() (CommandBuffer, error)

	// CreateBuffer allocates a buffer and uploads initial data when
	// data is non-nil. len(data) must not exceed desc.Size.
	CreateBuffer(desc BufferDescriptor, data []byte) (Buffer, error)

	// CreateTexture allocates a texture.
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// CreateSampler creates a sampler state object.
	CreateSampler(desc SamplerDescriptor) (Sampler, error)

	// CreateShaderProgram compiles and links the given stages into a
	// program. Compile and link failures return a descriptive error
	// carrying the native info log.
	CreateShaderProgram(desc ShaderProgramDescriptor) (ShaderProgram, error)

	// CreateGraphicsPipeline bakes graphics state into an immutable
	// pipeline object.
	CreateGraphicsPipeline(desc GraphicsPipelineDescriptor) (GraphicsPipeline, error)

	// CreateComputePipeline bakes a compute dispatch configuration.
	CreateComputePipeline(desc ComputePipelineDescriptor) (ComputePipeline, error)

	// CreateQuery creates a device query of the given type.
	CreateQuery(queryType QueryType) (Query, error)

	// CreateRenderTarget creates an offscreen draw destination.
	CreateRenderTarget(desc RenderTargetDescriptor) (RenderTarget, error)

	// Close releases the device and everything created from it. The
	// device must not be used afterwards.
	Close()
}
