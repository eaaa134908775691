// Package gl implements the rhi device contract on OpenGL.
//
// OpenGL is a strictly stateful, order-sensitive API, so the heart of
// this package is the StateCache: a mirrored view of everything the
// driver currently has bound or enabled. Every state-changing call is
// filtered through the mirror and only forwarded when the requested
// value differs from it.
//
// The driver is reached exclusively through the Functions interface, a
// closed set of native entry points. The production implementation
// binds github.com/go-gl/gl; tests substitute a counting fake.
//
// The package registers itself as the "gl" backend on import:
//
//	import _ "github.com/gogpu/rhi/backend/gl"
//
// A current GL context is required on the calling goroutine before
// opening a device. One goroutine drives one context's command stream
// at a time.
package gl
