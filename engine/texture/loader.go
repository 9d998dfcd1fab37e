package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/bumpcube/common"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// loader is the implementation of the Loader interface.
type loader struct {
	pool      worker.DynamicWorkerPool
	workers   int
	queueSize int
	idle      time.Duration

	fsys   fs.FS
	nextID atomic.Int64
}

// Loader reads and decodes texture images in the background. Each load returns immediately
// with a Pending Handle that resolves once a pool worker has finished decoding.
type Loader interface {
	// Load schedules the image at path to be read and decoded.
	//
	// Parameters:
	//   - name: the texture name, used for logging and GPU labels
	//   - path: the image path, resolved against the loader's file system
	//
	// Returns:
	//   - *Handle: a pending handle for the texture
	Load(name, path string) *Handle

	// LoadBytes schedules an already-read encoded image to be decoded.
	//
	// Parameters:
	//   - name: the texture name
	//   - data: the encoded image bytes (PNG, JPEG, BMP, TIFF or WebP)
	//
	// Returns:
	//   - *Handle: a pending handle for the texture
	LoadBytes(name string, data []byte) *Handle
}

var _ Loader = &loader{}

// NewLoader creates a Loader backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options for worker count, queue size and file system
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:   3,
		queueSize: 16,
		idle:      time.Second,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idle)
	return l
}

func (l *loader) Load(name, path string) *Handle {
	return l.submit(name, func() (Ready, error) {
		rc, err := l.open(path)
		if err != nil {
			return Ready{}, fmt.Errorf("failed to open texture %s (%s): %w", name, path, err)
		}
		defer rc.Close()
		return Decode(name, rc)
	})
}

func (l *loader) LoadBytes(name string, data []byte) *Handle {
	return l.submit(name, func() (Ready, error) {
		return Decode(name, bytes.NewReader(data))
	})
}

// submit hands a decode job to the pool and wires its outcome to a new handle.
func (l *loader) submit(name string, job func() (Ready, error)) *Handle {
	h := newHandle(name)
	id := int(l.nextID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			r, err := job()
			if err != nil {
				log.Printf("[Texture] %s failed: %v", name, err)
			} else {
				log.Printf("[Texture] %s ready (%dx%d)", name, r.Image.Width, r.Image.Height)
			}
			h.resolve(r, err)
			return nil, err
		},
	})
	return h
}

func (l *loader) open(path string) (io.ReadCloser, error) {
	if l.fsys != nil {
		return l.fsys.Open(path)
	}
	return os.Open(path)
}

// Decode reads an encoded image and converts it to tightly packed RGBA8 pixels.
// PNG and JPEG are supported through the standard library, BMP, TIFF and WebP through
// golang.org/x/image.
//
// Parameters:
//   - name: the texture name stored on the result
//   - r: the encoded image stream
//
// Returns:
//   - Ready: the decoded texture
//   - error: error if the stream is not a supported image
func Decode(name string, r io.Reader) (Ready, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Ready{}, fmt.Errorf("failed to decode texture %s: %w", name, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return Ready{}, fmt.Errorf("texture %s (%s) has no pixels", name, format)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return Ready{
		Name: name,
		Image: common.TextureStagingData{
			Pixels: rgba.Pix,
			Width:  uint32(bounds.Dx()),
			Height: uint32(bounds.Dy()),
		},
	}, nil
}
