package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/bumpcube/engine/composer"
	"github.com/Carmen-Shannon/bumpcube/engine/profiler"
)

// Host is the part of the window the frame loop drives.
type Host interface {
	// SetUpdateCallback sets the function run once per message loop iteration.
	SetUpdateCallback(callback func())
	// ProcessMessages runs the message loop until the window closes.
	ProcessMessages()
	// RequestClose stops the message loop after the current iteration.
	RequestClose()
	// Width returns the drawable width in pixels.
	Width() int
	// Height returns the drawable height in pixels.
	Height() int
}

// FrameFunc produces one frame for the given time and surface size. composer.Composer.Render
// satisfies it.
type FrameFunc func(elapsedMillis float64, width, height int) (composer.Frame, error)

// engine implements the Engine interface.
type engine struct {
	host  Host
	frame FrameFunc

	now   func() time.Time
	sleep func(time.Duration)
	start time.Time

	quitOnce sync.Once
	quit     atomic.Bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	frames     uint64
	lastErr    string
	errStreak  int
	frameHooks []func(composer.Frame, error)
}

// Engine runs the single-threaded frame loop: every message loop iteration it measures the time
// since Run started, reads the surface size and produces one frame.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns the number of frames produced since Run started.
	Frames() uint64

	// Run starts the frame loop on the calling goroutine and blocks until the host closes or
	// Quit is called.
	Run()

	// Quit stops the loop before the next frame.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates an Engine that draws frames with frame on host.
//
// Parameters:
//   - host: the window whose message loop drives the frames
//   - frame: the per-frame work, usually a Composer's Render method
//   - options: functional options for profiling, frame cap and clock
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(host Host, frame FrameFunc, options ...EngineBuilderOption) Engine {
	e := &engine{
		host:     host,
		frame:    frame,
		now:      time.Now,
		sleep:    time.Sleep,
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Run() {
	e.start = e.now()
	e.host.SetUpdateCallback(e.tick)
	e.host.ProcessMessages()
	e.host.SetUpdateCallback(nil)
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quit.Store(true)
	})
}

// tick runs one frame. Errors are logged and the loop keeps going; a panic stops the loop.
func (e *engine) tick() {
	if e.quit.Load() {
		e.host.RequestClose()
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
			e.host.RequestClose()
		}
	}()

	frameStart := e.now()
	elapsed := float64(frameStart.Sub(e.start)) / float64(time.Millisecond)

	f, err := e.frame(elapsed, e.host.Width(), e.host.Height())
	e.frames++
	e.reportError(err)
	for _, hook := range e.frameHooks {
		hook(f, err)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(outcome(f, err))
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// reportError logs a frame error the first time it appears and once more when frames recover,
// so a persistent failure does not flood the log.
func (e *engine) reportError(err error) {
	if err == nil {
		if e.errStreak > 0 {
			log.Printf("[Engine] frames recovered after %d failed frame(s)", e.errStreak)
		}
		e.lastErr, e.errStreak = "", 0
		return
	}
	msg := err.Error()
	if msg != e.lastErr {
		log.Printf("[Engine] frame %d failed: %v", e.frames, err)
		e.lastErr = msg
	}
	e.errStreak++
}

func outcome(f composer.Frame, err error) profiler.FrameOutcome {
	switch {
	case err != nil:
		return profiler.FrameFailed
	case f.Viewport.Empty():
		return profiler.FrameSkipped
	case f.NormalDegenerate:
		return profiler.FrameDegenerate
	default:
		return profiler.FrameDrawn
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

// frameDuration converts a frame rate to the minimum frame duration; non-positive means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// String describes the engine configuration for startup logging.
func (e *engine) String() string {
	limit := "uncapped"
	if e.renderFrameLimit > 0 {
		limit = fmt.Sprintf("%.1f fps", float64(time.Second)/float64(e.renderFrameLimit))
	}
	return fmt.Sprintf("engine{limit: %s, profiling: %t}", limit, e.profilingEnabled)
}
