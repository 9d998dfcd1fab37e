// Command bumpcube opens a window and draws a spinning, parallax bump-mapped cube.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/bumpcube/config"
	"github.com/Carmen-Shannon/bumpcube/engine"
	"github.com/Carmen-Shannon/bumpcube/engine/composer"
	"github.com/Carmen-Shannon/bumpcube/engine/mesh"
	"github.com/Carmen-Shannon/bumpcube/engine/renderer"
	"github.com/Carmen-Shannon/bumpcube/engine/shader"
	"github.com/Carmen-Shannon/bumpcube/engine/texture"
	"github.com/Carmen-Shannon/bumpcube/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/spf13/pflag"
)

func init() {
	// GLFW and the surface must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("[Bootstrap] %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("[Bootstrap] %v", err)
	}
}

// run builds every subsystem from cfg and blocks in the frame loop until the window closes.
func run(cfg config.Config) error {
	// ── Textures ────────────────────────────────────────────────────────
	// Decoding starts first so it overlaps window and device creation.
	loader := texture.NewLoader(texture.WithWorkers(cfg.Textures.Workers))
	handles := requestTextures(loader, cfg.Textures)

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Shaders ─────────────────────────────────────────────────────────
	vs, err := shader.NewShaderFromPath("cube.vert", shader.ShaderTypeVertex, cfg.Shaders.Vertex)
	if err != nil {
		return err
	}
	fs, err := shader.NewShaderFromPath("cube.frag", shader.ShaderTypeFragment, cfg.Shaders.Fragment)
	if err != nil {
		return err
	}
	program, err := shader.Link("cube", vs, fs)
	if err != nil {
		return err
	}

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(win, program, mesh.Cube(), rendererOptions(cfg.Renderer)...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	images, err := awaitTextures(handles, cfg.Textures.AllowPlaceholder, textureTimeout)
	if err != nil {
		return err
	}
	textures, err := uploadTextures(r, images)
	if err != nil {
		return err
	}

	// ── Composer ────────────────────────────────────────────────────────
	c := composer.NewComposer(r, textures,
		composer.WithViewportHook(func(width, height int) {
			if err := r.Resize(width, height); err != nil {
				log.Printf("[Bootstrap] viewport %dx%d: %v", width, height, err)
			}
		}),
		composer.WithFovY(cfg.Camera.FovY),
		composer.WithNear(cfg.Camera.Near),
		composer.WithFar(cfg.Camera.Far),
		composer.WithCameraDistance(cfg.Camera.Distance),
		composer.WithSpinRate(cfg.Camera.SpinRate),
	)

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(win, c.Render,
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithRenderFrameLimit(cfg.Engine.FPSLimit),
	)
	log.Printf("[Bootstrap] running %v", eng)
	eng.Run()
	log.Printf("[Bootstrap] stopped after %d frames", eng.Frames())
	return nil
}

func rendererOptions(rc config.RendererConfig) []renderer.RendererBuilderOption {
	present := renderer.PresentModeVSync
	if !rc.VSync {
		present = renderer.PresentModeUncapped
	}
	cull := map[string]wgpu.CullMode{
		"back":  wgpu.CullModeBack,
		"front": wgpu.CullModeFront,
		"none":  wgpu.CullModeNone,
	}[rc.Cull]
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.MSAASampleCount(rc.MSAA)),
		renderer.WithForceSoftwareRenderer(rc.ForceSoftware),
		renderer.WithClearColor(rc.ClearColor[0], rc.ClearColor[1], rc.ClearColor[2]),
		renderer.WithCullMode(cull),
	}
}
