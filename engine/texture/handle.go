package texture

import (
	"context"
	"errors"
	"sync"

	"github.com/Carmen-Shannon/bumpcube/common"
)

// State is the lifecycle stage of an asynchronously loaded texture.
type State int

const (
	// StatePending means the image is still being read or decoded.
	StatePending State = iota

	// StateReady means decoded pixel data is available.
	StateReady

	// StateFailed means the image could not be read or decoded.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrPending is returned by Poll while the texture has not resolved yet.
var ErrPending = errors.New("texture: still pending")

// Ready is a fully decoded texture. Its pixel data is never modified after creation.
type Ready struct {
	// Name identifies the texture in logs and GPU labels (e.g. "bump_normal").
	Name string
	// Image holds the RGBA8 pixels and dimensions.
	Image common.TextureStagingData
}

// Placeholder returns the 1x1 opaque red image shown in place of a texture that is not ready.
func Placeholder(name string) Ready {
	return Ready{
		Name: name,
		Image: common.TextureStagingData{
			Pixels: []byte{255, 0, 0, 255},
			Width:  1,
			Height: 1,
		},
	}
}

// Handle is an asynchronous texture resource. It starts Pending and resolves exactly once to
// either Ready or Failed. All methods are safe for concurrent use.
type Handle struct {
	name string

	mu    sync.RWMutex
	state State
	ready Ready
	err   error

	done chan struct{}
	once sync.Once
}

func newHandle(name string) *Handle {
	return &Handle{
		name:  name,
		state: StatePending,
		done:  make(chan struct{}),
	}
}

// resolve moves the handle out of Pending. Calls after the first are ignored.
func (h *Handle) resolve(r Ready, err error) {
	h.once.Do(func() {
		h.mu.Lock()
		if err != nil {
			h.state = StateFailed
			h.err = err
		} else {
			h.state = StateReady
			h.ready = r
		}
		h.mu.Unlock()
		close(h.done)
	})
}

// Name returns the texture name the handle was created with.
func (h *Handle) Name() string {
	return h.name
}

// State returns the current lifecycle stage.
func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Done returns a channel that is closed once the handle leaves Pending.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Poll returns the decoded texture without blocking.
//
// Returns:
//   - Ready: the decoded texture when the handle is Ready
//   - error: ErrPending while pending, or the load failure once Failed
func (h *Handle) Poll() (Ready, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	switch h.state {
	case StateReady:
		return h.ready, nil
	case StateFailed:
		return Ready{}, h.err
	default:
		return Ready{}, ErrPending
	}
}

// Await blocks until the handle resolves or ctx is done.
//
// Parameters:
//   - ctx: bounds how long to wait
//
// Returns:
//   - Ready: the decoded texture
//   - error: the load failure, or ctx.Err() if the context ended first
func (h *Handle) Await(ctx context.Context) (Ready, error) {
	select {
	case <-h.done:
		return h.Poll()
	case <-ctx.Done():
		return Ready{}, ctx.Err()
	}
}

// Current returns the decoded texture if it is Ready and the red placeholder otherwise.
func (h *Handle) Current() Ready {
	if r, err := h.Poll(); err == nil {
		return r
	}
	return Placeholder(h.name)
}
