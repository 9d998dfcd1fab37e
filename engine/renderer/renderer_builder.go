package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the frame is cleared to before the cube is drawn.
// Channels are in [0, 1]; the default is the dark red (100, 30, 20) / 255.
//
// Parameters:
//   - red, green, blue: the clear color channels
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(red, green, blue float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: 1}
	}
}

// WithCullMode sets which triangle faces are discarded. The default culls back faces.
//
// Parameters:
//   - mode: the wgpu cull mode
//
// Returns:
//   - RendererBuilderOption: a function that applies the cull mode to a renderer
func WithCullMode(mode wgpu.CullMode) RendererBuilderOption {
	return func(r *renderer) {
		r.cullMode = mode
	}
}

// WithSampler overrides the sampler settings. Zero fields keep their defaults.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - RendererBuilderOption: a function that applies the sampler option to a renderer
func WithSampler(s SamplerStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.sampler = s
	}
}
