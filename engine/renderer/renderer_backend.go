package renderer

import (
	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/Carmen-Shannon/bumpcube/engine/mesh"
	"github.com/Carmen-Shannon/bumpcube/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// SamplerStagingData holds the configuration for the texture sampler pending GPU creation.
// Zero fields fall back to linear filtering and repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy is the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// rendererBackend is the GPU-facing half of the renderer. The renderer decides what to
// create and when; the backend owns every GPU object it creates and frees them in Release.
type rendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, depth and MSAA targets for a new surface size.
	ConfigureSurface(width, height int) error

	// RegisterPipeline compiles the program and creates the render pipeline and its layouts.
	RegisterPipeline(p shader.Program, cullMode wgpu.CullMode) error

	// InitMeshBuffers uploads the vertex and index data of m.
	InitMeshBuffers(m mesh.Mesh) error

	// InitUniformBuffers creates one mat4 uniform buffer per binding in group, and the bind
	// group that holds them.
	InitUniformBuffers(group int, bindings []int) error

	// InitSampler creates the sampler shared by every texture bind group.
	InitSampler(s SamplerStagingData) error

	// InitTextureView uploads RGBA8 pixels into a new texture and returns its view.
	InitTextureView(label string, img common.TextureStagingData, srgb bool) (*wgpu.TextureView, error)

	// CreateTextureBindGroup binds three views and the sampler at the given slots of group.
	CreateTextureBindGroup(group int, views [3]*wgpu.TextureView, bindings [3]int, samplerBinding int) (*wgpu.BindGroup, error)

	// WriteUniform writes data into the uniform buffer created for binding.
	WriteUniform(binding int, data []byte) error

	// DrawFrame acquires the next surface texture, draws the mesh once with the uniform bind
	// group and the given texture bind group, submits and presents.
	DrawFrame(uniformGroup, textureGroup int, textures *wgpu.BindGroup, indexCount uint32) error

	// Release frees every GPU object the backend created.
	Release()
}
