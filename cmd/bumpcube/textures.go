package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/bumpcube/config"
	"github.com/Carmen-Shannon/bumpcube/engine/composer"
	"github.com/Carmen-Shannon/bumpcube/engine/texture"
)

// textureTimeout bounds how long startup waits for the three images to decode.
const textureTimeout = 30 * time.Second

// textureSet is the three bump-mapping images in texture unit order.
type textureSet [3]texture.Ready

// uploader is the renderer's texture upload.
type uploader interface {
	UploadTexture(img texture.Ready, srgb bool) (composer.TextureID, error)
}

// requestTextures schedules the normal, diffuse and depth images in that order.
func requestTextures(l texture.Loader, tc config.TextureConfig) [3]*texture.Handle {
	return [3]*texture.Handle{
		l.Load("bump_normal", tc.Normal),
		l.Load("bump_diffuse", tc.Diffuse),
		l.Load("bump_depth", tc.Depth),
	}
}

// awaitTextures waits for every handle. A failed image is fatal unless allowPlaceholder is
// set, in which case the red placeholder stands in for it.
func awaitTextures(handles [3]*texture.Handle, allowPlaceholder bool, timeout time.Duration) (textureSet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var set textureSet
	var errs []error
	for i, h := range handles {
		img, err := h.Await(ctx)
		switch {
		case err == nil:
			set[i] = img
		case allowPlaceholder:
			log.Printf("[Bootstrap] %s: %v, using placeholder", h.Name(), err)
			set[i] = texture.Placeholder(h.Name())
		default:
			errs = append(errs, fmt.Errorf("texture %s: %w", h.Name(), err))
		}
	}
	return set, errors.Join(errs...)
}

// uploadTextures copies the set to the GPU. Only the diffuse image holds color; the normal
// and depth maps are uploaded as linear data.
func uploadTextures(u uploader, set textureSet) (composer.Textures, error) {
	var ids [3]composer.TextureID
	for i, img := range set {
		id, err := u.UploadTexture(img, i == 1)
		if err != nil {
			return composer.Textures{}, err
		}
		ids[i] = id
	}
	return composer.Textures{Normal: ids[0], Diffuse: ids[1], Depth: ids[2]}, nil
}
