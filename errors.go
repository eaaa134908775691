package rhi

import "errors"

// Common rhi errors.
var (
	// ErrUnsupportedMapping is returned when an abstract enum member has
	// no native equivalent on the current backend. Callers check it at
	// the point of format or type translation.
	ErrUnsupportedMapping = errors.New("rhi: unsupported mapping")

	// ErrUnsupportedFeature is returned when an operation requires a
	// device feature that RenderingCaps reports as absent.
	ErrUnsupportedFeature = errors.New("rhi: feature not supported by device")

	// ErrInvalidDescriptor is returned when a resource descriptor is
	// malformed (zero extent, empty shader source, ...).
	ErrInvalidDescriptor = errors.New("rhi: invalid descriptor")

	// ErrDeviceLost is returned when the native device was removed or
	// reset and all resources created from it are gone.
	ErrDeviceLost = errors.New("rhi: device lost")
)
