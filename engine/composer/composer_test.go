package composer

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Drawer that keeps every call it receives.
type recorder struct {
	uniforms []Uniforms
	textures []Textures
	err      error
}

func (r *recorder) Draw(u Uniforms, t Textures) error {
	r.uniforms = append(r.uniforms, u)
	r.textures = append(r.textures, t)
	return r.err
}

type viewportCall struct{ width, height int }

func newTestComposer(options ...ComposerBuilderOption) (Composer, *recorder, *[]viewportCall) {
	rec := &recorder{}
	calls := &[]viewportCall{}
	hook := WithViewportHook(func(w, h int) {
		*calls = append(*calls, viewportCall{w, h})
	})
	c := NewComposer(rec, Textures{Normal: 1, Diffuse: 2, Depth: 3}, append([]ComposerBuilderOption{hook}, options...)...)
	return c, rec, calls
}

func TestFirstFrameAtRest(t *testing.T) {
	c, rec, _ := newTestComposer()

	frame, err := c.Render(0, 800, 800)
	require.NoError(t, err)

	model := common.Translation(0, 0, -5.5)
	assert.Equal(t, model, frame.Model)
	assert.Equal(t, common.Multiply(common.Perspective(40, 1, 0.1, 100), model), frame.Clip)
	assert.False(t, frame.NormalDegenerate)

	require.Len(t, rec.uniforms, 1)
	assert.Equal(t, frame.Uniforms, rec.uniforms[0])
	assert.Equal(t, Textures{Normal: 1, Diffuse: 2, Depth: 3}, rec.textures[0])
}

func TestComposeOrder(t *testing.T) {
	c, _, _ := newTestComposer()
	frame := c.Compose(1500, 1280, 720)

	angle := float32(1500 * 0.001)
	view := common.Translation(0, 0, -5.5)
	model := common.Multiply(common.Multiply(view, common.RotationX(angle)), common.RotationY(angle))
	projection := common.Perspective(40, float32(1280)/float32(720), 0.1, 100)

	assert.Equal(t, model, frame.Model)
	assert.Equal(t, common.Transpose(common.Inverse(model)), frame.Normal)
	assert.Equal(t, common.Multiply(projection, model), frame.Clip)

	// Spin happens in object space, so the cube's center stays on the camera axis.
	assert.InDelta(t, 0, frame.Model.At(0, 3), 1e-6)
	assert.InDelta(t, 0, frame.Model.At(1, 3), 1e-6)
	assert.InDelta(t, -5.5, frame.Model.At(2, 3), 1e-6)
}

func TestNormalMatrixOfRigidModel(t *testing.T) {
	c, _, _ := newTestComposer()
	frame := c.Compose(2345, 640, 480)

	// For rotation plus translation the normal matrix keeps the rotation block unchanged.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, frame.Model.At(i, j), frame.Normal.At(i, j), 1e-5)
		}
	}
}

func TestViewportChangeIsIdempotent(t *testing.T) {
	c, _, calls := newTestComposer()

	first := c.Compose(0, 800, 600)
	second := c.Compose(16, 800, 600)
	assert.True(t, first.Resized)
	assert.False(t, second.Resized)
	assert.Equal(t, []viewportCall{{800, 600}}, *calls)

	c.Compose(32, 1024, 768)
	c.Compose(48, 1024, 768)
	assert.Equal(t, []viewportCall{{800, 600}, {1024, 768}}, *calls)
	assert.Equal(t, Viewport{Width: 1024, Height: 768}, c.Viewport())
}

func TestViewportHookRunsBeforeDraw(t *testing.T) {
	var order []string
	d := DrawerFunc(func(Uniforms, Textures) error {
		order = append(order, "draw")
		return nil
	})
	c := NewComposer(d, Textures{}, WithViewportHook(func(int, int) {
		order = append(order, "viewport")
	}))

	_, err := c.Render(0, 320, 240)
	require.NoError(t, err)
	_, err = c.Render(16, 320, 240)
	require.NoError(t, err)
	assert.Equal(t, []string{"viewport", "draw", "draw"}, order)
}

func TestEmptySurfaceSkipsDraw(t *testing.T) {
	c, rec, calls := newTestComposer()

	_, err := c.Render(0, 800, 600)
	require.NoError(t, err)
	frame, err := c.Render(16, 0, 0)
	require.NoError(t, err)

	assert.True(t, frame.Viewport.Empty())
	assert.Len(t, rec.uniforms, 1)
	assert.Equal(t, []viewportCall{{800, 600}, {0, 0}}, *calls)
}

func assertFinite(t *testing.T, m common.Mat4) {
	t.Helper()
	for i, v := range m {
		assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "element %d is %v", i, v)
	}
}

func TestEmptySurfaceMatricesAreFinite(t *testing.T) {
	for _, size := range []viewportCall{{0, 0}, {800, 0}, {0, 600}} {
		c, _, _ := newTestComposer()
		frame := c.Compose(100, size.width, size.height)

		assert.True(t, frame.Viewport.Empty())
		assert.False(t, frame.NormalDegenerate)
		assertFinite(t, frame.Model)
		assertFinite(t, frame.Normal)
		assertFinite(t, frame.Clip)
		assert.Equal(t, Uniforms{}, frame.Uniforms)
	}
}

func TestDegenerateStreakIsTracked(t *testing.T) {
	c, _, _ := newTestComposer(WithModelScale(0, 1, 1))
	impl := c.(*composer)

	for i := 0; i < 3; i++ {
		frame := c.Compose(float64(i*16), 800, 800)
		assert.True(t, frame.NormalDegenerate)
		assert.True(t, impl.degenerate)
	}

	impl.scale = [3]float32{1, 1, 1}
	frame := c.Compose(64, 800, 800)
	assert.False(t, frame.NormalDegenerate)
	assert.False(t, impl.degenerate)
}

func TestDegenerateModelStillDraws(t *testing.T) {
	c, rec, _ := newTestComposer(WithModelScale(0, 1, 1))

	frame, err := c.Render(500, 800, 800)
	require.NoError(t, err)
	assert.True(t, frame.NormalDegenerate)
	assert.Equal(t, common.Zero(), frame.Normal)
	require.Len(t, rec.uniforms, 1)
	assert.Equal(t, common.Zero(), rec.uniforms[0].Normal)
}

func TestNonUniformScaleNormal(t *testing.T) {
	c, _, _ := newTestComposer(WithModelScale(2, 1, 0.5))
	frame := c.Compose(0, 800, 800)

	// At rest the model is T*S, so the normal matrix block is S^-1.
	assert.InDelta(t, 0.5, frame.Normal.At(0, 0), 1e-6)
	assert.InDelta(t, 1, frame.Normal.At(1, 1), 1e-6)
	assert.InDelta(t, 2, frame.Normal.At(2, 2), 1e-6)
}

func TestDrawErrorIsReturned(t *testing.T) {
	c, rec, _ := newTestComposer()
	rec.err = errors.New("surface lost")

	_, err := c.Render(0, 800, 800)
	assert.EqualError(t, err, "surface lost")
}

func TestCameraOptions(t *testing.T) {
	c, _, _ := newTestComposer(
		WithFovY(60),
		WithNear(1),
		WithFar(50),
		WithCameraDistance(10),
		WithSpinRate(0),
	)
	frame := c.Compose(99999, 400, 400)

	model := common.Translation(0, 0, -10)
	assert.Equal(t, model, frame.Model)
	assert.Equal(t, common.Multiply(common.Perspective(60, 1, 1, 50), model), frame.Clip)
}

func TestNewComposerRequiresDrawer(t *testing.T) {
	assert.Panics(t, func() { NewComposer(nil, Textures{}) })
}
