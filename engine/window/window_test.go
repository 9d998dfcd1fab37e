package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "bumpcube", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 800, w.Height())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
}

func TestBuilderOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("cube"),
		WithSize(1024, 768),
		WithMinWidth(320),
		WithMinHeight(240),
		WithMaxWidth(1920),
		WithMaxHeight(1080),
	)
	assert.Equal(t, "cube", w.title)
	assert.Equal(t, 1024, w.width)
	assert.Equal(t, 768, w.height)
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)

	w = newEngineWindow(WithWidth(10), WithHeight(20))
	assert.Equal(t, 10, w.Width())
	assert.Equal(t, 20, w.Height())
}

func TestFramebufferResizeNotifies(t *testing.T) {
	w := newEngineWindow()
	var got [][2]int
	w.SetResizeCallback(func(width, height int) {
		got = append(got, [2]int{width, height})
	})

	w.setFramebufferSize(1600, 1200)
	w.setFramebufferSize(0, 0)

	assert.Equal(t, [][2]int{{1600, 1200}, {0, 0}}, got)
	assert.Equal(t, 0, w.Width())
}

func TestUninitializedWindow(t *testing.T) {
	w := newEngineWindow()
	calls := 0
	w.SetUpdateCallback(func() { calls++ })

	w.ProcessMessages()
	w.RequestClose()
	assert.Zero(t, calls)
	assert.Error(t, w.Close())
}
