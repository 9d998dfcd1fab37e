package texture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLifecycle(t *testing.T) {
	h := newHandle("bump_diffuse")
	assert.Equal(t, StatePending, h.State())

	_, err := h.Poll()
	assert.ErrorIs(t, err, ErrPending)
	assert.Equal(t, Placeholder("bump_diffuse"), h.Current())

	want := Ready{Name: "bump_diffuse"}
	want.Image.Width, want.Image.Height = 1, 1
	want.Image.Pixels = []byte{1, 2, 3, 4}
	h.resolve(want, nil)

	assert.Equal(t, StateReady, h.State())
	got, err := h.Poll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, h.Current())

	// A second resolution is ignored.
	h.resolve(Ready{}, errors.New("late failure"))
	assert.Equal(t, StateReady, h.State())
}

func TestHandleFailed(t *testing.T) {
	h := newHandle("bump_depth")
	boom := errors.New("boom")
	h.resolve(Ready{}, boom)

	assert.Equal(t, StateFailed, h.State())
	_, err := h.Await(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Placeholder("bump_depth"), h.Current())
}

func TestHandleAwaitContext(t *testing.T) {
	h := newHandle("bump_normal")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatePending, h.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestPlaceholderIsRed(t *testing.T) {
	p := Placeholder("x")
	assert.True(t, p.Image.Valid())
	assert.Equal(t, []byte{255, 0, 0, 255}, p.Image.Pixels)
}
