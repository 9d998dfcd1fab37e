package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-6

// sample is an arbitrary well-conditioned affine transform with a non-trivial projective row.
var sample = Mat4FromRows(
	[4]float32{2, 0.5, 0, 1},
	[4]float32{0, 1, -1, 2},
	[4]float32{1, 0, 3, -1},
	[4]float32{0, 0.25, 0, 1},
)

func assertMat4InDelta(t *testing.T, expected, actual Mat4, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], delta)
}

func TestIdentityLaw(t *testing.T) {
	for _, m := range []Mat4{sample, Translation(1, -2, 3), RotationX(0.7), Perspective(40, 1.5, 0.1, 100)} {
		assertMat4InDelta(t, m, Multiply(Identity(), m), standardTol)
		assertMat4InDelta(t, m, Multiply(m, Identity()), standardTol)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Column-major: Multiply(T, R) rotates first, then translates.
	tr := Translation(1, 0, 0)
	rot := RotationY(math32.Pi / 2)

	tThenR := Multiply(tr, rot)
	rThenT := Multiply(rot, tr)
	assert.NotEqual(t, tThenR, rThenT)

	// The translation column of T*R is untouched by R.
	assert.InDelta(t, 1, tThenR.At(0, 3), standardTol)
	assert.InDelta(t, 0, tThenR.At(2, 3), standardTol)
}

func TestTransposeInvolution(t *testing.T) {
	assert.Equal(t, sample, Transpose(Transpose(sample)))
	tr := Transpose(sample)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, sample.At(i, j), tr.At(j, i))
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	cases := map[string]Mat4{
		"sample":      sample,
		"translation": Translation(3, -4, 5.5),
		"rotation":    Multiply(RotationX(1.1), RotationY(-0.4)),
		"model":       Multiply(Multiply(Translation(0, 0, -5.5), RotationX(2.5)), RotationY(2.5)),
		"perspective": Perspective(40, 1.25, 0.1, 100),
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			inv, ok := TryInverse(m)
			require.True(t, ok)
			assertMat4InDelta(t, Identity(), Multiply(m, inv), 1e-5)
			assertMat4InDelta(t, Identity(), Multiply(inv, m), 1e-5)
			assert.Equal(t, inv, Inverse(m))
		})
	}
}

func TestInverseDegenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, Zero(), Inverse(Zero()))
	})

	// Two equal columns make the determinant exactly zero.
	singular := Mat4FromRows(
		[4]float32{1, 1, 0, 0},
		[4]float32{2, 2, 0, 0},
		[4]float32{0, 0, 1, 0},
		[4]float32{0, 0, 0, 1},
	)
	inv, ok := TryInverse(singular)
	assert.False(t, ok)
	assert.Equal(t, Zero(), inv)
	assert.Equal(t, Zero(), Inverse(singular))
}

func TestRotationAtZero(t *testing.T) {
	assert.Equal(t, Identity(), RotationX(0))
	assert.Equal(t, Identity(), RotationY(0))
}

func TestRotationSignConvention(t *testing.T) {
	c, s := math32.Cos(0.3), math32.Sin(0.3)

	rx := RotationX(0.3)
	assert.Equal(t, c, rx[5])
	assert.Equal(t, s, rx[6])
	assert.Equal(t, -s, rx[9])
	assert.Equal(t, c, rx[10])

	ry := RotationY(0.3)
	assert.Equal(t, c, ry[0])
	assert.Equal(t, -s, ry[2])
	assert.Equal(t, s, ry[8])
	assert.Equal(t, c, ry[10])

	// The two constructors are transposes of one another's naive form, so a quarter turn about
	// X sends +Y to +Z and a quarter turn about Y sends +Z to +X.
	quarterX := RotationX(math32.Pi / 2)
	assert.InDelta(t, 1, quarterX.At(2, 1), standardTol)
	quarterY := RotationY(math32.Pi / 2)
	assert.InDelta(t, 1, quarterY.At(0, 2), standardTol)
}

func TestTranslationLayout(t *testing.T) {
	m := Translation(1, 2, 3)
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
	assert.Equal(t, float32(3), m.At(2, 3))
}

func TestPerspectiveShape(t *testing.T) {
	p := Perspective(40, 1, 0.1, 100)
	assert.Equal(t, p.At(0, 0), p.At(1, 1))
	assert.Equal(t, float32(-1), p.At(3, 2))
	assert.Equal(t, float32(0), p.At(3, 3))

	// Symmetric frustum: no skew.
	assert.Equal(t, float32(0), p.At(0, 2))
	assert.Equal(t, float32(0), p.At(1, 2))

	f := 1 / math32.Tan(40*math32.Pi/360)
	assert.InDelta(t, f, p.At(1, 1), 1e-4)
	assert.InDelta(t, -(100+0.1)/(100-0.1), p.At(2, 2), standardTol)
	assert.InDelta(t, -2*100*0.1/(100-0.1), p.At(2, 3), standardTol)

	wide := Perspective(40, 2, 0.1, 100)
	assert.InDelta(t, wide.At(1, 1)/2, wide.At(0, 0), standardTol)
}

func TestPerspectiveDepthMapping(t *testing.T) {
	p := Perspective(40, 1, 0.1, 100)
	ndcZ := func(z float32) float32 {
		clipZ := p.At(2, 2)*z + p.At(2, 3)
		clipW := p.At(3, 2) * z
		return clipZ / clipW
	}
	assert.InDelta(t, -1, ndcZ(-0.1), 1e-4)
	assert.InDelta(t, 1, ndcZ(-100), 1e-4)
}

func TestFrustumOffAxis(t *testing.T) {
	f := Frustum(-1, 3, -2, 2, 1, 10)
	assert.InDelta(t, 0.5, f.At(0, 2), standardTol)
	assert.InDelta(t, 0, f.At(1, 2), standardTol)
	assert.InDelta(t, 0.5, f.At(0, 0), standardTol)
}

func TestMat4FromRowsAndBytes(t *testing.T) {
	m := Mat4FromRows(
		[4]float32{1, 2, 3, 4},
		[4]float32{5, 6, 7, 8},
		[4]float32{9, 10, 11, 12},
		[4]float32{13, 14, 15, 16},
	)
	assert.Equal(t, Mat4{1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15, 4, 8, 12, 16}, m)

	b := m.Bytes()
	require.Len(t, b, 64)
	b[0] = 0xff
	assert.Equal(t, float32(1), m[0])
}
