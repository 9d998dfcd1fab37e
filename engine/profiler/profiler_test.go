package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsPerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProfiler(clock.now, time.Second)

	outcomes := []FrameOutcome{FrameDrawn, FrameDegenerate, FrameSkipped, FrameFailed, FrameDegenerate}
	for _, o := range outcomes[:4] {
		clock.advance(200 * time.Millisecond)
		_, logged := p.Tick(o)
		assert.False(t, logged)
	}

	clock.advance(200 * time.Millisecond)
	r, logged := p.Tick(outcomes[4])
	require.True(t, logged)
	assert.Equal(t, 5, r.Frames)
	assert.InDelta(t, 5.0, r.FPS, 1e-9)
	assert.Equal(t, 2, r.Degenerate)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Greater(t, r.SysMB, 0.0)
}

func TestTickResetsCounters(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProfiler(clock.now, time.Second)

	clock.advance(time.Second)
	_, logged := p.Tick(FrameDegenerate)
	require.True(t, logged)

	clock.advance(2 * time.Second)
	r, logged := p.Tick(FrameDrawn)
	require.True(t, logged)
	assert.Equal(t, 1, r.Frames)
	assert.InDelta(t, 0.5, r.FPS, 1e-9)
	assert.Zero(t, r.Degenerate)
}

func TestSetInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProfiler(clock.now, time.Second)

	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)

	p.SetInterval(100 * time.Millisecond)
	clock.advance(100 * time.Millisecond)
	_, logged := p.Tick(FrameDrawn)
	assert.True(t, logged)
}
