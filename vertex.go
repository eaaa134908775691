package rhi

import "fmt"

// DataType is the component type of a vertex attribute.
type DataType uint8

const (
	DataInt8 DataType = iota
	DataUint8
	DataInt16
	DataUint16
	DataInt32
	DataUint32
	DataFloat16
	DataFloat32
	DataFloat64

	numDataTypes
)

// dataTypeSizes is keyed by DataType ordinal.
var dataTypeSizes = [numDataTypes]uint32{
	DataInt8:    1,
	DataUint8:   1,
	DataInt16:   2,
	DataUint16:  2,
	DataInt32:   4,
	DataUint32:  4,
	DataFloat16: 2,
	DataFloat32: 4,
	DataFloat64: 8,
}

// dataTypeNames is keyed by DataType ordinal.
var dataTypeNames = [numDataTypes]string{
	DataInt8:    "Int8",
	DataUint8:   "Uint8",
	DataInt16:   "Int16",
	DataUint16:  "Uint16",
	DataInt32:   "Int32",
	DataUint32:  "Uint32",
	DataFloat16: "Float16",
	DataFloat32: "Float32",
	DataFloat64: "Float64",
}

// DataTypeSize returns the size of one component in bytes.
func DataTypeSize(t DataType) uint32 {
	if int(t) < len(dataTypeSizes) {
		return dataTypeSizes[t]
	}
	return 0
}

// String returns the string representation of a DataType.
func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return "Unknown"
}

// VertexAttribute describes one input of the vertex stage.
type VertexAttribute struct {
	// Name is the attribute name as declared in the shader.
	Name string

	// Type is the component type.
	Type DataType

	// Components is the component count per vertex (1..4).
	Components uint32

	// Location is the shader input location.
	Location uint32

	// Offset is the byte offset inside one vertex.
	Offset uint32

	// Normalized marks integer data normalized to [0,1] or [-1,1].
	Normalized bool
}

// Size returns the attribute size in bytes.
func (a VertexAttribute) Size() uint32 {
	return DataTypeSize(a.Type) * a.Components
}

// String formats the attribute the way validation messages cite it.
func (a VertexAttribute) String() string {
	return fmt.Sprintf("%s(%sx%d@%d)", a.Name, a.Type, a.Components, a.Location)
}

// VertexFormat is the layout of one vertex buffer: an ordered attribute
// list with a derived stride. The zero value is an empty layout.
type VertexFormat struct {
	attributes []VertexAttribute
	stride     uint32
}

// AppendAttribute adds an attribute at the current end of the vertex,
// assigning its offset and location automatically.
func (f *VertexFormat) AppendAttribute(name string, dataType DataType, components uint32) {
	f.attributes = append(f.attributes, VertexAttribute{
		Name:       name,
		Type:       dataType,
		Components: components,
		Location:   uint32(len(f.attributes)),
		Offset:     f.stride,
	})
	f.stride += DataTypeSize(dataType) * components
}

// Attributes returns the attribute list in declaration order. The
// returned slice must not be mutated.
func (f VertexFormat) Attributes() []VertexAttribute {
	return f.attributes
}

// Stride returns the byte distance between consecutive vertices.
func (f VertexFormat) Stride() uint32 {
	return f.stride
}

// Empty reports whether the layout has no attributes.
func (f VertexFormat) Empty() bool {
	return len(f.attributes) == 0
}
