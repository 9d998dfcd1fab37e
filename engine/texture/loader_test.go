package texture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func awaitTimeout(t *testing.T, h *Handle) (Ready, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.Await(ctx)
}

func TestDecodePNG(t *testing.T) {
	data := encodePNG(t, 3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	r, err := Decode("bump_diffuse", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "bump_diffuse", r.Name)
	assert.Equal(t, uint32(3), r.Image.Width)
	assert.Equal(t, uint32(2), r.Image.Height)
	assert.True(t, r.Image.Valid())
	assert.Equal(t, []byte{10, 20, 30, 255}, r.Image.Pixels[:4])
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode("bump_depth", strings.NewReader("not an image"))
	assert.ErrorContains(t, err, "bump_depth")
}

func TestLoaderFromFileSystem(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/normal.png": {Data: encodePNG(t, 4, 4, color.RGBA{R: 128, G: 128, B: 255, A: 255})},
	}
	l := NewLoader(WithFileSystem(fsys), WithWorkers(2))

	ok := l.Load("bump_normal", "textures/normal.png")
	missing := l.Load("bump_depth", "textures/depth.png")

	r, err := awaitTimeout(t, ok)
	require.NoError(t, err)
	assert.Equal(t, StateReady, ok.State())
	assert.Equal(t, uint32(4), r.Image.Width)
	assert.Equal(t, []byte{128, 128, 255, 255}, r.Image.Pixels[:4])

	_, err = awaitTimeout(t, missing)
	assert.Error(t, err)
	assert.Equal(t, StateFailed, missing.State())
	assert.Equal(t, Placeholder("bump_depth"), missing.Current())
}

func TestLoaderBytes(t *testing.T) {
	l := NewLoader()
	h := l.LoadBytes("bump_diffuse", encodePNG(t, 2, 2, color.RGBA{G: 255, A: 255}))

	r, err := awaitTimeout(t, h)
	require.NoError(t, err)
	assert.Equal(t, "bump_diffuse", h.Name())
	assert.Len(t, r.Image.Pixels, 16)
}
