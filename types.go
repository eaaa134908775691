package rhi

// Viewport describes a viewport rectangle with a depth range.
// Coordinates follow the logical screen origin of the device (see
// RenderingCaps.ScreenOrigin); backends translate to the native
// convention.
type Viewport struct {
	// X and Y locate the lower-left corner of the viewport in the
	// logical coordinate system.
	X float32
	Y float32

	// Width and Height are the viewport extent in pixels.
	Width  float32
	Height float32

	// MinDepth and MaxDepth bound the depth range. A zero-value
	// viewport has an empty depth range; most callers want MaxDepth 1.
	MinDepth float32
	MaxDepth float32
}

// Scissor describes a scissor rectangle in pixels.
type Scissor struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// DepthRange describes a viewport depth interval.
type DepthRange struct {
	Min float64
	Max float64
}

// Color is a normalized RGBA color.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// PrimitiveTopology specifies how a vertex stream is assembled into
// primitives.
type PrimitiveTopology uint8

const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyLineLoop
	TopologyLineListAdjacency
	TopologyLineStripAdjacency
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
	TopologyTriangleListAdjacency
	TopologyTriangleStripAdjacency
	TopologyPatches

	numTopologies
)

// topologyNames maps PrimitiveTopology values to their string representation.
var topologyNames = [numTopologies]string{
	TopologyPointList:              "PointList",
	TopologyLineList:               "LineList",
	TopologyLineStrip:              "LineStrip",
	TopologyLineLoop:               "LineLoop",
	TopologyLineListAdjacency:      "LineListAdjacency",
	TopologyLineStripAdjacency:     "LineStripAdjacency",
	TopologyTriangleList:           "TriangleList",
	TopologyTriangleStrip:          "TriangleStrip",
	TopologyTriangleFan:            "TriangleFan",
	TopologyTriangleListAdjacency:  "TriangleListAdjacency",
	TopologyTriangleStripAdjacency: "TriangleStripAdjacency",
	TopologyPatches:                "Patches",
}

// String returns the string representation of a PrimitiveTopology.
func (t PrimitiveTopology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return "Unknown"
}

// ShaderStages is a bitmask of pipeline stages a binding is visible to.
type ShaderStages uint32

const (
	// StageVertex selects the vertex shader stage.
	StageVertex ShaderStages = 1 << iota

	// StageTessControl selects the tessellation control (hull) stage.
	StageTessControl

	// StageTessEvaluation selects the tessellation evaluation (domain) stage.
	StageTessEvaluation

	// StageGeometry selects the geometry shader stage.
	StageGeometry

	// StageFragment selects the fragment (pixel) shader stage.
	StageFragment

	// StageCompute selects the compute shader stage.
	StageCompute

	// AllStages selects every recognized stage.
	AllStages = StageVertex | StageTessControl | StageTessEvaluation |
		StageGeometry | StageFragment | StageCompute

	// AllGraphicsStages selects every stage of the graphics pipeline.
	AllGraphicsStages = AllStages &^ StageCompute
)

// stageNames is ordered by bit position.
var stageNames = [...]string{
	"Vertex",
	"TessControl",
	"TessEvaluation",
	"Geometry",
	"Fragment",
	"Compute",
}

// String returns a "|"-joined list of the selected stages.
func (s ShaderStages) String() string {
	if s == 0 {
		return "None"
	}
	var out string
	for i, name := range stageNames {
		if s&(1<<uint(i)) == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	return out
}

// IndexFormat specifies the storage width of index buffer elements.
type IndexFormat uint8

const (
	// IndexUint16 stores indices as 16-bit unsigned integers.
	IndexUint16 IndexFormat = iota

	// IndexUint32 stores indices as 32-bit unsigned integers.
	IndexUint32
)

// Size returns the size of one index in bytes.
func (f IndexFormat) Size() uint32 {
	if f == IndexUint32 {
		return 4
	}
	return 2
}

// ScreenOrigin specifies where coordinate (0,0) sits on the screen.
type ScreenOrigin uint8

const (
	// OriginLowerLeft matches the OpenGL convention.
	OriginLowerLeft ScreenOrigin = iota

	// OriginUpperLeft matches the Direct3D, Metal, and WebGPU convention.
	OriginUpperLeft
)

// String returns the string representation of a ScreenOrigin.
func (o ScreenOrigin) String() string {
	if o == OriginUpperLeft {
		return "UpperLeft"
	}
	return "LowerLeft"
}

// ClippingRange specifies the clip-space depth interval.
type ClippingRange uint8

const (
	// ClipMinusOneToOne is the OpenGL default clip-space depth range.
	ClipMinusOneToOne ClippingRange = iota

	// ClipZeroToOne is the Direct3D, Metal, and WebGPU clip-space depth range.
	ClipZeroToOne
)

// String returns the string representation of a ClippingRange.
func (r ClippingRange) String() string {
	if r == ClipZeroToOne {
		return "ZeroToOne"
	}
	return "MinusOneToOne"
}
