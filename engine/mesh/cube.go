package mesh

// face describes one side of the cube: four corners, the shared tangent frame and the UVs.
type face struct {
	corners   [4][3]float32
	tangent   [3]float32
	bitangent [3]float32
	uvs       [4][2]float32
	indices   [6]uint16
}

// cubeFaces lists the faces in front, back, right, left, top, bottom order. Index values are
// local to the face and are offset by 4*face when the mesh is assembled.
var cubeFaces = [6]face{
	{ // front
		corners:   [4][3]float32{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {1, -1, 1}},
		tangent:   [3]float32{1, 0, 0},
		bitangent: [3]float32{0, -1, 0},
		uvs:       [4][2]float32{{0, 1}, {1, 0}, {0, 0}, {1, 1}},
		indices:   [6]uint16{0, 1, 2, 0, 3, 1},
	},
	{ // back
		corners:   [4][3]float32{{-1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {1, -1, -1}},
		tangent:   [3]float32{-1, 0, 0},
		bitangent: [3]float32{0, -1, 0},
		uvs:       [4][2]float32{{1, 1}, {0, 0}, {1, 0}, {0, 1}},
		indices:   [6]uint16{0, 2, 1, 0, 1, 3},
	},
	{ // right
		corners:   [4][3]float32{{1, -1, -1}, {1, 1, 1}, {1, -1, 1}, {1, 1, -1}},
		tangent:   [3]float32{0, 0, -1},
		bitangent: [3]float32{0, -1, 0},
		uvs:       [4][2]float32{{1, 1}, {0, 0}, {0, 1}, {1, 0}},
		indices:   [6]uint16{0, 1, 2, 0, 3, 1},
	},
	{ // left
		corners:   [4][3]float32{{-1, -1, -1}, {-1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}},
		tangent:   [3]float32{0, 0, 1},
		bitangent: [3]float32{0, -1, 0},
		uvs:       [4][2]float32{{0, 1}, {1, 0}, {1, 1}, {0, 0}},
		indices:   [6]uint16{0, 2, 1, 0, 1, 3},
	},
	{ // top
		corners:   [4][3]float32{{-1, 1, -1}, {1, 1, 1}, {-1, 1, 1}, {1, 1, -1}},
		tangent:   [3]float32{1, 0, 0},
		bitangent: [3]float32{0, 0, 1},
		uvs:       [4][2]float32{{0, 0}, {1, 1}, {0, 1}, {1, 0}},
		indices:   [6]uint16{0, 2, 1, 0, 1, 3},
	},
	{ // bottom
		corners:   [4][3]float32{{-1, -1, -1}, {1, -1, 1}, {-1, -1, 1}, {1, -1, -1}},
		tangent:   [3]float32{1, 0, 0},
		bitangent: [3]float32{0, 0, -1},
		uvs:       [4][2]float32{{0, 1}, {1, 0}, {0, 0}, {1, 1}},
		indices:   [6]uint16{0, 1, 2, 0, 3, 1},
	},
}

// Cube returns the 2x2x2 cube centered on the origin, 24 vertices and 36 indices, with
// counter-clockwise front faces and a per-face tangent frame for bump mapping.
//
// Returns:
//   - Mesh: the cube mesh
func Cube() Mesh {
	vertices := make([]Vertex, 0, len(cubeFaces)*4)
	indices := make([]uint16, 0, len(cubeFaces)*6)
	for f, fc := range cubeFaces {
		base := uint16(f * 4)
		for c := range fc.corners {
			vertices = append(vertices, Vertex{
				Position:  fc.corners[c],
				Tangent:   fc.tangent,
				Bitangent: fc.bitangent,
				UV:        fc.uvs[c],
			})
		}
		for _, idx := range fc.indices {
			indices = append(indices, base+idx)
		}
	}
	return &mesh{name: "cube", vertices: vertices, indices: indices}
}
