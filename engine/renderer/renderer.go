package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/Carmen-Shannon/bumpcube/engine/composer"
	"github.com/Carmen-Shannon/bumpcube/engine/mesh"
	"github.com/Carmen-Shannon/bumpcube/engine/shader"
	"github.com/Carmen-Shannon/bumpcube/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrBindingLayout is returned when the program's resources are not laid out as two groups:
	// one holding the three matrix uniforms and one holding the three textures and the sampler.
	ErrBindingLayout = errors.New("renderer: unsupported binding layout")

	// ErrUnknownTexture is returned when Draw is given a TextureID that was never uploaded.
	ErrUnknownTexture = errors.New("renderer: unknown texture")

	// ErrInvalidImage is returned when uploaded pixels do not match the declared size.
	ErrInvalidImage = errors.New("renderer: invalid image data")

	// ErrNotConfigured is returned when drawing before the surface has a non-zero size.
	ErrNotConfigured = errors.New("renderer: surface not configured")
)

// defaultClearColor is (100, 30, 20) / 255.
var defaultClearColor = wgpu.Color{R: 100.0 / 255, G: 30.0 / 255, B: 20.0 / 255, A: 1}

// SurfaceSource is the window side of the renderer: where to present and how big it is.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform surface descriptor for the window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// Width returns the drawable width in pixels.
	Width() int
	// Height returns the drawable height in pixels.
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend    rendererBackend
	bindings   common.UniformBindings
	indexCount uint32

	views      map[composer.TextureID]*wgpu.TextureView
	nextID     composer.TextureID
	bindGroups map[composer.Textures]*wgpu.BindGroup

	width  int
	height int
	// wantWidth and wantHeight are the last requested size, retried by Draw after a failed configure.
	wantWidth  int
	wantHeight int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	cullMode             wgpu.CullMode
	sampler              SamplerStagingData
}

// Renderer draws the bump-mapped cube with WebGPU. It is the composer's Drawer: every Draw
// writes the three matrices, binds the requested texture set and draws the mesh once.
// A Renderer must be used from the thread that created it.
type Renderer interface {
	composer.Drawer

	// Resize reconfigures the surface targets for a new size. An empty size disables drawing
	// until a drawable size arrives. If reconfiguring fails, drawing is disabled and the next
	// Draw retries the same size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// UploadTexture copies a decoded image to the GPU.
	//
	// Parameters:
	//   - img: the ready image
	//   - srgb: true for color data, false for data maps (normals, depth) read as stored
	//
	// Returns:
	//   - composer.TextureID: the handle to pass in composer.Textures
	//   - error: ErrInvalidImage or an upload error
	UploadTexture(img texture.Ready, srgb bool) (composer.TextureID, error)

	// Bindings returns the resource slots resolved from the program at construction.
	//
	// Returns:
	//   - common.UniformBindings: the resolved slots
	Bindings() common.UniformBindings

	// Release frees all GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU device for the surface, compiles the program and uploads the mesh.
//
// Parameters:
//   - surface: the window to present to
//   - program: the linked cube program
//   - m: the mesh drawn every frame
//   - options: functional options for present mode, MSAA, clear color, culling and sampling
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if the program's bindings cannot be resolved or a GPU object cannot be created
func NewRenderer(surface SurfaceSource, program shader.Program, m mesh.Mesh, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)
	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount, r.presentMode, r.clearColor)
	if err != nil {
		return nil, err
	}
	if err := r.init(backend, program, m, surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer applies options over the defaults without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		views:       make(map[composer.TextureID]*wgpu.TextureView),
		bindGroups:  make(map[composer.Textures]*wgpu.BindGroup),
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  defaultClearColor,
		cullMode:    wgpu.CullModeBack,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init resolves the program's slots and creates the pipeline, mesh buffers, uniform buffers
// and sampler on backend.
func (r *renderer) init(backend rendererBackend, program shader.Program, m mesh.Mesh, width, height int) error {
	bindings, err := shader.ResolveBindings(program)
	if err != nil {
		return fmt.Errorf("failed to resolve cube bindings: %w", err)
	}
	if err := checkLayout(bindings); err != nil {
		return err
	}
	r.backend = backend
	r.bindings = bindings
	r.indexCount = uint32(m.IndexCount())

	if err := r.Resize(width, height); err != nil {
		return err
	}
	if err := backend.RegisterPipeline(program, r.cullMode); err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}
	if err := backend.InitMeshBuffers(m); err != nil {
		return fmt.Errorf("failed to upload mesh %q: %w", m.Name(), err)
	}
	slots := bindings.UniformSlots()
	if err := backend.InitUniformBuffers(slots[0].Group, []int{slots[0].Binding, slots[1].Binding, slots[2].Binding}); err != nil {
		return fmt.Errorf("failed to create uniform buffers: %w", err)
	}
	if err := backend.InitSampler(r.sampler); err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	return nil
}

// checkLayout requires the three matrices in one group and the textures plus sampler in another.
func checkLayout(b common.UniformBindings) error {
	uniforms := b.UniformSlots()
	for _, s := range uniforms[1:] {
		if s.Group != uniforms[0].Group {
			return fmt.Errorf("%w: matrix uniforms span groups %d and %d", ErrBindingLayout, uniforms[0].Group, s.Group)
		}
	}
	textures := b.TextureSlots()
	for _, s := range append(textures[1:], b.Sampler) {
		if s.Group != textures[0].Group {
			return fmt.Errorf("%w: textures span groups %d and %d", ErrBindingLayout, textures[0].Group, s.Group)
		}
	}
	if uniforms[0].Group == textures[0].Group {
		return fmt.Errorf("%w: matrices and textures share group %d", ErrBindingLayout, uniforms[0].Group)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	r.wantWidth, r.wantHeight = width, height
	r.width, r.height = 0, 0
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) UploadTexture(img texture.Ready, srgb bool) (composer.TextureID, error) {
	if !img.Image.Valid() {
		return 0, fmt.Errorf("%q: %w: %dx%d with %d bytes", img.Name, ErrInvalidImage, img.Image.Width, img.Image.Height, len(img.Image.Pixels))
	}
	view, err := r.backend.InitTextureView(img.Name, img.Image, srgb)
	if err != nil {
		return 0, fmt.Errorf("failed to upload texture %q: %w", img.Name, err)
	}
	r.nextID++
	r.views[r.nextID] = view
	return r.nextID, nil
}

func (r *renderer) Draw(u composer.Uniforms, t composer.Textures) error {
	if r.width == 0 || r.height == 0 {
		if r.wantWidth <= 0 || r.wantHeight <= 0 {
			return ErrNotConfigured
		}
		if err := r.Resize(r.wantWidth, r.wantHeight); err != nil {
			return fmt.Errorf("%w: %w", ErrNotConfigured, err)
		}
	}

	textures, err := r.textureBindGroup(t)
	if err != nil {
		return err
	}

	writes := [3]struct {
		slot common.BindingSlot
		data common.Mat4
	}{
		{r.bindings.Model, u.Model},
		{r.bindings.Normal, u.Normal},
		{r.bindings.Clip, u.Clip},
	}
	for _, w := range writes {
		if err := r.backend.WriteUniform(w.slot.Binding, w.data.Bytes()); err != nil {
			return fmt.Errorf("failed to write uniform @binding(%d): %w", w.slot.Binding, err)
		}
	}

	return r.backend.DrawFrame(r.bindings.Model.Group, r.bindings.TexNorm.Group, textures, r.indexCount)
}

// textureBindGroup returns the bind group for t, creating and caching it on first use.
func (r *renderer) textureBindGroup(t composer.Textures) (*wgpu.BindGroup, error) {
	if bg, ok := r.bindGroups[t]; ok {
		return bg, nil
	}

	var views [3]*wgpu.TextureView
	for i, id := range [3]composer.TextureID{t.Normal, t.Diffuse, t.Depth} {
		v, ok := r.views[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
		}
		views[i] = v
	}

	slots := r.bindings.TextureSlots()
	bg, err := r.backend.CreateTextureBindGroup(
		slots[0].Group,
		views,
		[3]int{slots[0].Binding, slots[1].Binding, slots[2].Binding},
		r.bindings.Sampler.Binding,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture bind group: %w", err)
	}
	r.bindGroups[t] = bg
	log.Printf("[Renderer] created bind group for textures %d/%d/%d", t.Normal, t.Diffuse, t.Depth)
	return bg, nil
}

func (r *renderer) Bindings() common.UniformBindings {
	return r.bindings
}

func (r *renderer) Release() {
	if r.backend != nil {
		r.backend.Release()
	}
	clear(r.views)
	clear(r.bindGroups)
}
