// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu implements an rhi backend on top of the gogpu/wgpu
// hardware abstraction layer. Shaders are written in WGSL and compiled
// to SPIR-V through gogpu/naga at program creation.
//
// The backend either borrows a device from a host application (any
// rhi.DeviceHandle whose provider exposes HalDevice/HalQueue, e.g. a
// gogpu App) or creates and owns a standalone Vulkan device.
//
// # Binding model
//
// WebGPU groups resources into bind groups while the rhi command
// buffer binds individual slots. The backend flattens everything into
// bind group 0 using a fixed slot convention that WGSL sources must
// follow:
//
//	@group(0) @binding(slot)      constant buffers
//	@group(0) @binding(slot + 8)  storage buffers
//	@group(0) @binding(slot + 16) textures
//	@group(0) @binding(slot + 24) samplers
//
// Bind group layouts, bind groups, and native pipelines are derived
// lazily at draw time from the bound state and deduplicated in a
// hashed cache, so repeating the same state costs one lookup.
//
// Queries, conditional rendering, and stream output have no WebGPU
// equivalent; the corresponding feature booleans in RenderingCaps are
// false and the command-buffer calls are logged no-ops.
package webgpu
