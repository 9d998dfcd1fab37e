package common

import (
	"log"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 transform stored in column-major order, the layout the GPU consumes directly.
// The element at flat index i + j*4 is row i, column j:
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
//
// Written as a Go literal the matrix therefore reads as the transpose of its mathematical form,
// with the translation in the last four elements. Mat4 is a value type; every function below
// returns a new matrix and never writes through its inputs.
type Mat4 [16]float32

// Identity returns the multiplicative identity.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Zero returns the additive identity. It is also the result of inverting a singular matrix.
func Zero() Mat4 {
	return Mat4{}
}

// Mat4FromRows builds a matrix from its rows in mathematical order, transposing them into
// column-major storage.
//
// Parameters:
//   - r0, r1, r2, r3: the four rows of the matrix, top to bottom
//
// Returns:
//   - Mat4: the column-major matrix
func Mat4FromRows(r0, r1, r2, r3 [4]float32) Mat4 {
	var m Mat4
	rows := [4][4]float32{r0, r1, r2, r3}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i+j*4] = rows[i][j]
		}
	}
	return m
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[row+col*4]
}

// Bytes returns the matrix as raw bytes ready for a uniform buffer write.
// The returned slice is a copy and does not alias m.
func (m Mat4) Bytes() []byte {
	return append([]byte(nil), StructToBytes(&m)...)
}

// Translation returns a matrix that translates by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// RotationX returns a right-handed rotation of r radians about the X axis.
func RotationX(r float32) Mat4 {
	c, s := math32.Cos(r), math32.Sin(r)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a right-handed rotation of r radians about the Y axis.
func RotationY(r float32) Mat4 {
	c, s := math32.Cos(r), math32.Sin(r)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Multiply returns the matrix product a * b. Applied to a vector, b acts first.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a * b
func Multiply(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ { // row
		for j := 0; j < 4; j++ { // column
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[i+k*4] * b[k+j*4]
			}
			out[i+j*4] = sum
		}
	}
	return out
}

// Transpose returns the transpose of a.
func Transpose(a Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+j*4] = a[j+i*4]
		}
	}
	return out
}

// Inverse returns the inverse of m. A singular matrix is not an error here: the failure is
// logged and the zero matrix is returned so a frame in progress can still complete.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - Mat4: the inverse of m, or Zero() if m is singular
func Inverse(m Mat4) Mat4 {
	inv, ok := TryInverse(m)
	if !ok {
		log.Printf("[Mat4] non-invertible matrix (determinant is zero), substituting zero matrix")
		return Zero()
	}
	return inv
}

// TryInverse inverts m by cofactor expansion. The adjugate is accumulated in float64 and the
// determinant is taken along storage column 0 against its cofactors. Only an exactly zero
// determinant is treated as singular.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - Mat4: the inverse of m, or Zero() if m is singular
//   - bool: false if the determinant is exactly zero
func TryInverse(m Mat4) (Mat4, bool) {
	var a [16]float64
	for i, v := range m {
		a[i] = float64(v)
	}

	var inv [16]float64
	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if det == 0 {
		return Zero(), false
	}

	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]

	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]

	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	invDet := 1 / det
	var out Mat4
	for i := range inv {
		out[i] = float32(inv[i] * invDet)
	}
	return out, true
}

// Perspective returns a right-handed OpenGL-style perspective projection. Near and far planes
// map to clip-space depth -1 and +1; shaders targeting a [0, 1] depth range remap z themselves.
// Degenerate parameters (zNear <= 0, zFar <= zNear, aspect <= 0) give an undefined result.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - aspect: viewport width divided by height
//   - zNear: distance to the near plane
//   - zFar: distance to the far plane
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovYDegrees, aspect, zNear, zFar float32) Mat4 {
	top := zNear * math32.Tan(fovYDegrees*math32.Pi/360)
	bottom := -top
	left := bottom * aspect
	right := top * aspect
	return Frustum(left, right, bottom, top, zNear, zFar)
}

// Frustum returns the projection for an arbitrary, possibly off-axis, view frustum.
//
// Parameters:
//   - left, right: horizontal extents of the near plane
//   - bottom, top: vertical extents of the near plane
//   - zNear, zFar: near and far plane distances
//
// Returns:
//   - Mat4: the projection matrix
func Frustum(left, right, bottom, top, zNear, zFar float32) Mat4 {
	x := 2 * zNear / (right - left)
	y := 2 * zNear / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(zFar + zNear) / (zFar - zNear)
	d := -2 * zFar * zNear / (zFar - zNear)

	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		a, b, c, -1,
		0, 0, d, 0,
	}
}
