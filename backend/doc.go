// Package backend provides a pluggable device backend abstraction.
//
// The backend package allows rhi to support multiple native GPU APIs
// behind one device contract. Each backend package registers itself on
// import and is selected at runtime.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime:
//
//	import (
//		_ "github.com/gogpu/rhi/backend/gl"
//		_ "github.com/gogpu/rhi/backend/webgpu"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("gl")
//
// # Opening a Device
//
// A backend opens an rhi.Device either on its own native context or on
// one borrowed from the host application:
//
//	dev, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// # Available Backends
//
// - "gl": OpenGL via go-gl bindings (requires a current GL context)
// - "webgpu": WebGPU via gogpu/wgpu
package backend
