package mesh

import (
	"unsafe"

	"github.com/Carmen-Shannon/bumpcube/common"
)

// Vertex is one interleaved vertex of a tangent-space mapped mesh.
// The field order matches the vertex input struct of the cube shader.
type Vertex struct {
	// Position is the object space position.
	Position [3]float32
	// Tangent points along increasing U on the surface.
	Tangent [3]float32
	// Bitangent points along increasing V on the surface.
	Bitangent [3]float32
	// UV is the texture coordinate.
	UV [2]float32
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name     string
	vertices []Vertex
	indices  []uint16
}

// Mesh is immutable indexed triangle geometry ready for upload.
type Mesh interface {
	// Name returns the mesh's identifier.
	Name() string

	// Vertices returns a copy of the vertex list.
	Vertices() []Vertex

	// Indices returns a copy of the triangle index list.
	Indices() []uint16

	// VertexBytes returns the interleaved vertex data as raw bytes.
	// The returned slice shares memory with the mesh and must not be modified.
	VertexBytes() []byte

	// IndexBytes returns the index data as raw bytes, padded to a 4-byte multiple
	// as buffer writes require. The returned slice must not be modified.
	IndexBytes() []byte

	// IndexCount returns the number of indices to draw.
	IndexCount() int
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from a vertex and index list. Both slices are copied.
//
// Parameters:
//   - name: identifier used in logs and GPU labels
//   - vertices: the vertex list
//   - indices: triangle list indices into vertices
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(name string, vertices []Vertex, indices []uint16) Mesh {
	return &mesh{
		name:     name,
		vertices: append([]Vertex(nil), vertices...),
		indices:  append([]uint16(nil), indices...),
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []Vertex {
	return append([]Vertex(nil), m.vertices...)
}

func (m *mesh) Indices() []uint16 {
	return append([]uint16(nil), m.indices...)
}

func (m *mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.vertices)
}

func (m *mesh) IndexBytes() []byte {
	if len(m.indices)%2 == 0 {
		return common.SliceToBytes(m.indices)
	}
	padded := append(append([]uint16(nil), m.indices...), 0)
	return common.SliceToBytes(padded)
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}
