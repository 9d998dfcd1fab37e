package composer

import (
	"log"

	"github.com/Carmen-Shannon/bumpcube/common"
)

// Default camera and animation constants for the spinning cube.
const (
	DefaultFovY           float32 = 40
	DefaultNear           float32 = 0.1
	DefaultFar            float32 = 100
	DefaultCameraDistance float32 = 5.5
	// DefaultSpinRate is the rotation speed about both X and Y in radians per millisecond.
	DefaultSpinRate float64 = 0.001
)

// Uniforms are the three per-frame matrices handed to the shader as model_mtx, norm_mtx and
// proj_mtx. Each is an independent value; the draw call never sees shared storage.
type Uniforms struct {
	// Model maps object space to view space.
	Model common.Mat4
	// Normal is the transposed inverse of Model, used for normals and tangents.
	Normal common.Mat4
	// Clip is Projection * Model, mapping object space straight to clip space.
	Clip common.Mat4
}

// TextureID is an opaque handle to an image resource already resident on the GPU.
type TextureID uint32

// Textures is the set of images bound for the bump-mapped cube, in texture unit order.
type Textures struct {
	Normal  TextureID // unit 0, tex_norm
	Diffuse TextureID // unit 1, tex_diffuse
	Depth   TextureID // unit 2, tex_depth
}

// Viewport is the size of the drawable surface in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns width divided by height.
func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Drawer issues the indexed triangle draw for the already uploaded cube mesh.
type Drawer interface {
	// Draw renders one frame with the given matrices and bound images.
	//
	// Parameters:
	//   - u: model, normal and clip matrices for this frame
	//   - t: the normal, diffuse and depth images to bind
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	Draw(u Uniforms, t Textures) error
}

// DrawerFunc adapts a plain function to the Drawer interface.
type DrawerFunc func(u Uniforms, t Textures) error

// Draw calls f(u, t).
func (f DrawerFunc) Draw(u Uniforms, t Textures) error {
	return f(u, t)
}

// ViewportFunc reconfigures the rasterizer output rectangle to the full surface.
type ViewportFunc func(width, height int)

// Frame is the outcome of composing one frame.
type Frame struct {
	Uniforms
	// Viewport is the surface size the matrices were built for.
	Viewport Viewport
	// Resized is true if this frame detected a new surface size and fired the viewport hook.
	Resized bool
	// NormalDegenerate is true if the model matrix could not be inverted and Normal is all zero.
	NormalDegenerate bool
}

// composer is the implementation of the Composer interface.
// It is owned by a single frame loop and holds no lock.
type composer struct {
	drawer     Drawer
	onViewport ViewportFunc
	textures   Textures

	viewport Viewport
	// degenerate is true while consecutive frames have a non-invertible model matrix.
	degenerate bool

	fovY           float32
	near           float32
	far            float32
	cameraDistance float32
	spinRate       float64
	scale          [3]float32
}

// Composer turns elapsed time and surface size into the matrices for one frame of the
// spinning cube, and owns the only state that persists between frames: the last seen viewport.
// A Composer must only be called from the goroutine running the frame loop.
type Composer interface {
	// Compose derives the frame's matrices. If the surface size differs from the stored
	// viewport, the viewport is updated and the viewport hook fires before any matrix work.
	// An empty viewport has no aspect ratio, so its frame carries zero uniforms.
	//
	// Parameters:
	//   - elapsedMillis: milliseconds since the frame loop started
	//   - width, height: current drawable surface size in pixels
	//
	// Returns:
	//   - Frame: the composed matrices and viewport state
	Compose(elapsedMillis float64, width, height int) Frame

	// Render composes a frame and hands it to the Drawer. Frames for an empty surface are
	// composed but not drawn.
	//
	// Parameters:
	//   - elapsedMillis: milliseconds since the frame loop started
	//   - width, height: current drawable surface size in pixels
	//
	// Returns:
	//   - Frame: the composed frame
	//   - error: the Drawer's error, if any
	Render(elapsedMillis float64, width, height int) (Frame, error)

	// Viewport returns the stored viewport.
	Viewport() Viewport

	// Textures returns the bound texture set.
	Textures() Textures
}

var _ Composer = &composer{}

// NewComposer creates a Composer that draws through d with the given texture set.
// The stored viewport starts empty, so the first frame always fires the viewport hook.
//
// Parameters:
//   - d: the external draw call
//   - t: the GPU-resident images to bind every frame
//   - options: functional options for the viewport hook and camera constants
//
// Returns:
//   - Composer: the newly created composer
func NewComposer(d Drawer, t Textures, options ...ComposerBuilderOption) Composer {
	if d == nil {
		panic("composer: NewComposer requires a non-nil Drawer")
	}
	c := &composer{
		drawer:         d,
		textures:       t,
		fovY:           DefaultFovY,
		near:           DefaultNear,
		far:            DefaultFar,
		cameraDistance: DefaultCameraDistance,
		spinRate:       DefaultSpinRate,
		scale:          [3]float32{1, 1, 1},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *composer) Compose(elapsedMillis float64, width, height int) Frame {
	frame := Frame{}

	actual := Viewport{Width: width, Height: height}
	if actual != c.viewport {
		c.viewport = actual
		frame.Resized = true
		if c.onViewport != nil {
			c.onViewport(width, height)
		}
	}
	frame.Viewport = c.viewport
	if c.viewport.Empty() {
		// No aspect ratio exists for an empty surface; the uniforms stay zero.
		return frame
	}

	projection := common.Perspective(c.fovY, c.viewport.Aspect(), c.near, c.far)
	view := common.Translation(0, 0, -c.cameraDistance)
	angle := float32(elapsedMillis * c.spinRate)
	spinX := common.RotationX(angle)
	spinY := common.RotationY(angle)

	model := common.Multiply(common.Multiply(view, spinX), spinY)
	if c.scale != [3]float32{1, 1, 1} {
		model = common.Multiply(model, scaling(c.scale))
	}
	inv, ok := common.TryInverse(model)
	c.trackDegenerate(!ok)

	frame.Model = model
	frame.Normal = common.Transpose(inv)
	frame.Clip = common.Multiply(projection, model)
	frame.NormalDegenerate = !ok

	return frame
}

// trackDegenerate logs when the model matrix becomes non-invertible and when it recovers,
// not on every frame in between.
func (c *composer) trackDegenerate(degenerate bool) {
	if degenerate == c.degenerate {
		return
	}
	c.degenerate = degenerate
	if degenerate {
		log.Printf("[Composer] model matrix is not invertible, drawing with a zero normal matrix")
	} else {
		log.Printf("[Composer] model matrix is invertible again")
	}
}

func (c *composer) Render(elapsedMillis float64, width, height int) (Frame, error) {
	frame := c.Compose(elapsedMillis, width, height)
	if frame.Viewport.Empty() {
		return frame, nil
	}
	return frame, c.drawer.Draw(frame.Uniforms, c.textures)
}

func (c *composer) Viewport() Viewport {
	return c.viewport
}

func (c *composer) Textures() Textures {
	return c.textures
}

// scaling returns a matrix scaling each axis by the matching factor.
func scaling(s [3]float32) common.Mat4 {
	return common.Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}
