// Package rhi provides a render hardware interface for Go.
//
// # Overview
//
// rhi is a thin abstraction over native GPU APIs designed for the GoGPU
// ecosystem. It defines one command-buffer contract that every backend
// implements, and it concentrates on the state-mediation layer between
// that contract and a stateful native driver: a binding-state cache that
// eliminates redundant driver calls, and a validation layer that checks
// pipeline consistency without ever blocking a call.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/rhi"
//		"github.com/gogpu/rhi/backend"
//		_ "github.com/gogpu/rhi/backend/gl"
//	)
//
//	dev, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	cmd, _ := dev.NewCommandBuffer()
//	cmd.SetViewport(rhi.Viewport{Width: 800, Height: 600, MaxDepth: 1})
//	cmd.Draw(3, 0)
//
// # Validation
//
// Wrap any command buffer in the debug layer to get advisory validation
// and per-frame profiling. Validation never blocks: every call is
// forwarded to the wrapped implementation after being checked.
//
//	dbg := debug.New(cmd, debug.WithCaps(dev.Caps()))
//	dbg.DrawIndexed(9, 0, 0) // reported if no index buffer is bound
//
// # Architecture
//
// The library is organized into:
//   - Public API: CommandBuffer, Device, resource interfaces, RenderingCaps
//   - Backends: gl (stateful driver + state cache), webgpu (gogpu/wgpu)
//   - Layers: debug (validation decorator), recording (deferred command buffer)
//
// # Threading
//
// Command submission is single-threaded by design: one goroutine drives
// one device's command stream, matching the threading model of the
// native APIs underneath. Resource creation on a Device is safe for
// concurrent use where the backend documents it.
package rhi

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
