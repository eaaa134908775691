package backend

import (
	"errors"

	"github.com/gogpu/rhi"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Open.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendGL is the name of the OpenGL backend (go-gl bindings).
	BackendGL = "gl"
	// BackendWebGPU is the name of the WebGPU backend (gogpu/wgpu).
	BackendWebGPU = "webgpu"
)

// Backend is the interface for device backends. It abstracts how a
// native GPU context is reached, allowing the library to support
// multiple drivers (OpenGL, WebGPU, ...).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "gl", "webgpu").
	Name() string

	// Open creates a device on this backend. A nil handle
	// (rhi.NullDeviceHandle) makes the backend create and own its
	// native context; a non-nil handle borrows the host application's
	// device.
	Open(handle rhi.DeviceHandle) (rhi.Device, error)
}
