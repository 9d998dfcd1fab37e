// Package config holds the startup settings for the cube viewer. Settings come from Default,
// optionally overlaid by a TOML file, then by command-line flags.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full set of startup settings.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Engine   EngineConfig   `toml:"engine"`
	Shaders  ShaderConfig   `toml:"shaders"`
	Textures TextureConfig  `toml:"textures"`
}

// WindowConfig sets the native window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig sets the GPU presentation options.
type RendererConfig struct {
	VSync bool `toml:"vsync"`
	// MSAA is the sample count, 1 or 4.
	MSAA int `toml:"msaa"`
	// ForceSoftware requests the fallback (CPU) adapter.
	ForceSoftware bool `toml:"force_software"`
	// ClearColor is the background as linear RGB in [0, 1].
	ClearColor [3]float64 `toml:"clear_color"`
	// Cull is one of "back", "front" or "none".
	Cull string `toml:"cull"`
}

// CameraConfig sets the projection and spin constants.
type CameraConfig struct {
	FovY     float32 `toml:"fov_y"`
	Near     float32 `toml:"near"`
	Far      float32 `toml:"far"`
	Distance float32 `toml:"distance"`
	// SpinRate is radians per millisecond about both the X and Y axes.
	SpinRate float64 `toml:"spin_rate"`
}

// EngineConfig sets the frame loop.
type EngineConfig struct {
	// FPSLimit caps the frame rate; 0 leaves it uncapped.
	FPSLimit float64 `toml:"fps_limit"`
	Profile  bool    `toml:"profile"`
}

// ShaderConfig names the WGSL sources for the two stages.
type ShaderConfig struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

// TextureConfig names the three images and how they are loaded.
type TextureConfig struct {
	Normal  string `toml:"normal"`
	Diffuse string `toml:"diffuse"`
	Depth   string `toml:"depth"`
	// AllowPlaceholder draws the red placeholder instead of failing when an image cannot be loaded.
	AllowPlaceholder bool `toml:"allow_placeholder"`
	// Workers is the number of decode workers; 0 uses one per image.
	Workers int `toml:"workers"`
}

// Default returns the settings the viewer runs with when nothing is overridden.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "bumpcube",
			Width:  800,
			Height: 800,
		},
		Renderer: RendererConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: [3]float64{100.0 / 255, 30.0 / 255, 20.0 / 255},
			Cull:       "back",
		},
		Camera: CameraConfig{
			FovY:     40,
			Near:     0.1,
			Far:      100,
			Distance: 5.5,
			SpinRate: 0.001,
		},
		Shaders: ShaderConfig{
			Vertex:   "assets/shaders/cube.vert.wgsl",
			Fragment: "assets/shaders/cube.frag.wgsl",
		},
		Textures: TextureConfig{
			Normal:  "assets/textures/bump_normal.png",
			Diffuse: "assets/textures/bump_diffuse.png",
			Depth:   "assets/textures/bump_depth.png",
		},
	}
}

// Load reads a TOML file over Default. Keys absent from the file keep their defaults;
// unknown keys are an error.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the merged settings
//   - error: error if the file cannot be read or decoded
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := Decode(bufio.NewReader(f), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays the TOML document in r onto cfg.
func Decode(r io.Reader, cfg *Config) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate rejects settings that would produce a degenerate window or projection.
//
// Returns:
//   - error: an error wrapping ErrInvalid naming the first bad field, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4:
		return fmt.Errorf("%w: msaa must be 1 or 4, got %d", ErrInvalid, c.Renderer.MSAA)
	case c.Renderer.Cull != "back" && c.Renderer.Cull != "front" && c.Renderer.Cull != "none":
		return fmt.Errorf("%w: cull %q", ErrInvalid, c.Renderer.Cull)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return fmt.Errorf("%w: fov_y %v outside (0, 180)", ErrInvalid, c.Camera.FovY)
	case c.Camera.Near <= 0:
		return fmt.Errorf("%w: near %v must be positive", ErrInvalid, c.Camera.Near)
	case c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalid, c.Camera.Far, c.Camera.Near)
	case c.Engine.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit %v", ErrInvalid, c.Engine.FPSLimit)
	case c.Textures.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Textures.Workers)
	case c.Shaders.Vertex == "" || c.Shaders.Fragment == "":
		return fmt.Errorf("%w: both shader paths are required", ErrInvalid)
	case c.Textures.Normal == "" || c.Textures.Diffuse == "" || c.Textures.Depth == "":
		return fmt.Errorf("%w: all three texture paths are required", ErrInvalid)
	}
	for _, ch := range c.Renderer.ClearColor {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("%w: clear_color channel %v outside [0, 1]", ErrInvalid, ch)
		}
	}
	return nil
}
