package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/bumpcube/config"
	"github.com/Carmen-Shannon/bumpcube/engine/composer"
	"github.com/Carmen-Shannon/bumpcube/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testTextureConfig() config.TextureConfig {
	return config.TextureConfig{Normal: "n.png", Diffuse: "d.png", Depth: "z.png"}
}

func TestAwaitTexturesInUnitOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"n.png": {Data: encodePNG(t, color.NRGBA{128, 128, 255, 255})},
		"d.png": {Data: encodePNG(t, color.NRGBA{200, 100, 50, 255})},
		"z.png": {Data: encodePNG(t, color.NRGBA{10, 10, 10, 255})},
	}
	l := texture.NewLoader(texture.WithFileSystem(fsys))

	set, err := awaitTextures(requestTextures(l, testTextureConfig()), false, time.Second)
	require.NoError(t, err)

	assert.Equal(t, "bump_normal", set[0].Name)
	assert.Equal(t, "bump_diffuse", set[1].Name)
	assert.Equal(t, "bump_depth", set[2].Name)
	assert.Equal(t, []byte{200, 100, 50, 255}, set[1].Image.Pixels[:4])
	assert.Equal(t, uint32(2), set[2].Image.Width)
}

func TestAwaitTexturesMissingIsFatal(t *testing.T) {
	fsys := fstest.MapFS{
		"n.png": {Data: encodePNG(t, color.NRGBA{128, 128, 255, 255})},
		"z.png": {Data: encodePNG(t, color.NRGBA{10, 10, 10, 255})},
	}
	l := texture.NewLoader(texture.WithFileSystem(fsys))

	_, err := awaitTextures(requestTextures(l, testTextureConfig()), false, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "bump_diffuse")
}

func TestAwaitTexturesPlaceholder(t *testing.T) {
	fsys := fstest.MapFS{
		"n.png": {Data: encodePNG(t, color.NRGBA{128, 128, 255, 255})},
		"d.png": {Data: []byte("not an image")},
		"z.png": {Data: encodePNG(t, color.NRGBA{10, 10, 10, 255})},
	}
	l := texture.NewLoader(texture.WithFileSystem(fsys))

	set, err := awaitTextures(requestTextures(l, testTextureConfig()), true, time.Second)
	require.NoError(t, err)
	assert.Equal(t, texture.Placeholder("bump_diffuse"), set[1])
	assert.Equal(t, uint32(2), set[0].Image.Width)
}

type fakeUploader struct {
	srgb []bool
	fail bool
}

func (f *fakeUploader) UploadTexture(_ texture.Ready, srgb bool) (composer.TextureID, error) {
	if f.fail {
		return 0, errors.New("out of memory")
	}
	f.srgb = append(f.srgb, srgb)
	return composer.TextureID(len(f.srgb) * 10), nil
}

func TestUploadTexturesColorOnlyForDiffuse(t *testing.T) {
	u := &fakeUploader{}
	set := textureSet{texture.Placeholder("n"), texture.Placeholder("d"), texture.Placeholder("z")}

	got, err := uploadTextures(u, set)
	require.NoError(t, err)
	assert.Equal(t, composer.Textures{Normal: 10, Diffuse: 20, Depth: 30}, got)
	assert.Equal(t, []bool{false, true, false}, u.srgb)

	_, err = uploadTextures(&fakeUploader{fail: true}, set)
	assert.Error(t, err)
}
