package engine

import (
	"time"

	"github.com/Carmen-Shannon/bumpcube/engine/composer"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfileInterval sets how often the profiler logs a report (default 1s).
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfileInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler.SetInterval(d)
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithClock replaces the wall clock the elapsed time is measured with.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}

// WithFrameHook registers a function called after every frame with its result.
//
// Parameters:
//   - hook: receives the composed frame and the draw error, if any
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameHook(hook func(f composer.Frame, err error)) EngineBuilderOption {
	return func(e *engine) {
		e.frameHooks = append(e.frameHooks, hook)
	}
}
