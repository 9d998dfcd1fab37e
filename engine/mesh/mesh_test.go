package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func TestCubeCounts(t *testing.T) {
	cube := Cube()
	assert.Equal(t, "cube", cube.Name())
	assert.Len(t, cube.Vertices(), 24)
	assert.Equal(t, 36, cube.IndexCount())
	assert.Equal(t, uint64(44), VertexStride)
	assert.Len(t, cube.VertexBytes(), 24*44)
	assert.Len(t, cube.IndexBytes(), 72)
}

func TestCubeIndexValues(t *testing.T) {
	assert.Equal(t, []uint16{
		0, 1, 2, 0, 3, 1,
		4, 6, 5, 4, 5, 7,
		8, 9, 10, 8, 11, 9,
		12, 14, 13, 12, 13, 15,
		16, 18, 17, 16, 17, 19,
		20, 21, 22, 20, 23, 21,
	}, Cube().Indices())
}

func TestCubeWindingFacesOutward(t *testing.T) {
	cube := Cube()
	verts := cube.Vertices()
	idx := cube.Indices()
	for tri := 0; tri < len(idx); tri += 3 {
		a, b, c := verts[idx[tri]].Position, verts[idx[tri+1]].Position, verts[idx[tri+2]].Position
		n := cross(sub(b, a), sub(c, a))
		centroid := [3]float32{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3, (a[2] + b[2] + c[2]) / 3}
		assert.Greater(t, dot(n, centroid), float32(0), "triangle %d is not counter-clockwise from outside", tri/3)
	}
}

func TestCubeTangentFrameLiesOnFace(t *testing.T) {
	verts := Cube().Vertices()
	for f := 0; f < 6; f++ {
		quad := verts[f*4 : f*4+4]
		normal := cross(sub(quad[1].Position, quad[0].Position), sub(quad[2].Position, quad[0].Position))
		for _, v := range quad {
			assert.Zero(t, dot(v.Tangent, normal), "face %d tangent", f)
			assert.Zero(t, dot(v.Bitangent, normal), "face %d bitangent", f)
			assert.Zero(t, dot(v.Tangent, v.Bitangent), "face %d frame", f)
		}
	}
}

func TestVertexBytesLayout(t *testing.T) {
	b := Cube().VertexBytes()
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off*4:]))
	}
	// Second vertex of the front face: position, tangent, bitangent, uv.
	base := 11
	assert.Equal(t, []float32{1, 1, 1}, []float32{read(base), read(base + 1), read(base + 2)})
	assert.Equal(t, []float32{1, 0, 0}, []float32{read(base + 3), read(base + 4), read(base + 5)})
	assert.Equal(t, []float32{0, -1, 0}, []float32{read(base + 6), read(base + 7), read(base + 8)})
	assert.Equal(t, []float32{1, 0}, []float32{read(base + 9), read(base + 10)})
}

func TestNewMeshCopiesAndPads(t *testing.T) {
	verts := []Vertex{{Position: [3]float32{1, 2, 3}}, {}, {}}
	idx := []uint16{0, 1, 2}
	m := NewMesh("tri", verts, idx)

	verts[0].Position[0] = 9
	idx[0] = 7
	assert.Equal(t, float32(1), m.Vertices()[0].Position[0])
	assert.Equal(t, uint16(0), m.Indices()[0])

	require.Equal(t, 3, m.IndexCount())
	assert.Equal(t, []byte{0, 0, 1, 0, 2, 0, 0, 0}, m.IndexBytes())
}
