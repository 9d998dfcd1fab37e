package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Parse builds the settings from command-line arguments: Default, then the file named by
// --config if given, then any flags that were set explicitly. The result is validated.
//
// Parameters:
//   - name: the program name used in usage output
//   - args: the arguments without the program name
//
// Returns:
//   - Config: the final settings
//   - error: pflag.ErrHelp for --help, or a parse, load or validation error
func Parse(name string, args []string) (Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	def := Default()
	path := fs.StringP("config", "c", "", "path to a TOML settings file")
	width := fs.Int("width", def.Window.Width, "window width in pixels")
	height := fs.Int("height", def.Window.Height, "window height in pixels")
	vsync := fs.Bool("vsync", def.Renderer.VSync, "wait for vertical blank when presenting")
	msaa := fs.Int("msaa", def.Renderer.MSAA, "multisample count (1 or 4)")
	software := fs.Bool("software", def.Renderer.ForceSoftware, "force the software fallback adapter")
	fpsLimit := fs.Float64("fps-limit", def.Engine.FPSLimit, "frame rate cap, 0 for uncapped")
	profile := fs.Bool("profile", def.Engine.Profile, "log frame statistics every second")
	placeholder := fs.Bool("allow-placeholder", def.Textures.AllowPlaceholder, "draw a red placeholder for images that fail to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *path != "" {
		loaded, err := Load(*path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"width":             func() { cfg.Window.Width = *width },
		"height":            func() { cfg.Window.Height = *height },
		"vsync":             func() { cfg.Renderer.VSync = *vsync },
		"msaa":              func() { cfg.Renderer.MSAA = *msaa },
		"software":          func() { cfg.Renderer.ForceSoftware = *software },
		"fps-limit":         func() { cfg.Engine.FPSLimit = *fpsLimit },
		"profile":           func() { cfg.Engine.Profile = *profile },
		"allow-placeholder": func() { cfg.Textures.AllowPlaceholder = *placeholder },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}
