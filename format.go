package rhi

import "math/bits"

// Format is the pixel format of a texture or render target.
type Format uint8

const (
	// FormatUnknown is the zero value; no storage.
	FormatUnknown Format = iota

	// Color formats.
	FormatR8
	FormatRG8
	FormatRGBA8
	FormatRGBA8SRGB
	FormatBGRA8
	FormatBGRA8SRGB
	FormatR16F
	FormatRG16F
	FormatRGBA16F
	FormatR32F
	FormatRG32F
	FormatRGBA32F
	FormatR32Uint

	// Depth/stencil formats.
	FormatDepth16
	FormatDepth32F
	FormatDepth24Stencil8

	// Block-compressed formats. Everything from here on is compressed.
	FormatRGBADXT1
	FormatRGBADXT3
	FormatRGBADXT5

	numFormats
)

// formatNames is keyed by Format ordinal.
var formatNames = [numFormats]string{
	FormatUnknown:         "Unknown",
	FormatR8:              "R8",
	FormatRG8:             "RG8",
	FormatRGBA8:           "RGBA8",
	FormatRGBA8SRGB:       "RGBA8SRGB",
	FormatBGRA8:           "BGRA8",
	FormatBGRA8SRGB:       "BGRA8SRGB",
	FormatR16F:            "R16F",
	FormatRG16F:           "RG16F",
	FormatRGBA16F:         "RGBA16F",
	FormatR32F:            "R32F",
	FormatRG32F:           "RG32F",
	FormatRGBA32F:         "RGBA32F",
	FormatR32Uint:         "R32Uint",
	FormatDepth16:         "Depth16",
	FormatDepth32F:        "Depth32F",
	FormatDepth24Stencil8: "Depth24Stencil8",
	FormatRGBADXT1:        "RGBADXT1",
	FormatRGBADXT3:        "RGBADXT3",
	FormatRGBADXT5:        "RGBADXT5",
}

// formatSizes holds bytes per texel, keyed by Format ordinal.
// Compressed formats store bytes per 4x4 block instead.
var formatSizes = [numFormats]uint32{
	FormatR8:              1,
	FormatRG8:             2,
	FormatRGBA8:           4,
	FormatRGBA8SRGB:       4,
	FormatBGRA8:           4,
	FormatBGRA8SRGB:       4,
	FormatR16F:            2,
	FormatRG16F:           4,
	FormatRGBA16F:         8,
	FormatR32F:            4,
	FormatRG32F:           8,
	FormatRGBA32F:         16,
	FormatR32Uint:         4,
	FormatDepth16:         2,
	FormatDepth32F:        4,
	FormatDepth24Stencil8: 4,
	FormatRGBADXT1:        8,
	FormatRGBADXT3:        16,
	FormatRGBADXT5:        16,
}

// String returns the string representation of a Format.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "Unknown"
}

// FormatSize returns the storage size of one texel in bytes, or one
// 4x4 block for compressed formats. Returns 0 for FormatUnknown.
func FormatSize(f Format) uint32 {
	if int(f) < len(formatSizes) {
		return formatSizes[f]
	}
	return 0
}

// IsCompressedFormat reports whether f is a block-compressed format.
func IsCompressedFormat(f Format) bool {
	return f >= FormatRGBADXT1 && f < numFormats
}

// IsDepthStencilFormat reports whether f carries depth or stencil data.
func IsDepthStencilFormat(f Format) bool {
	switch f {
	case FormatDepth16, FormatDepth32F, FormatDepth24Stencil8:
		return true
	}
	return false
}

// NumMipLevels returns the length of a full mip chain for the given
// extent: 1 + floor(log2(max(width, height, depth))).
func NumMipLevels(width, height, depth uint32) uint32 {
	maxExtent := max(width, height, depth)
	if maxExtent == 0 {
		return 0
	}
	return uint32(bits.Len32(maxExtent))
}
