package texture

import (
	"io/fs"
	"time"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the number of pool workers decoding images concurrently.
// Values <= 0 are ignored.
//
// Parameters:
//   - n: worker count (default 3, one per bump-mapping texture)
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize sets how many decode jobs may wait for a free worker.
//
// Parameters:
//   - n: queue capacity (default 16)
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithIdleTimeout sets how long an idle worker lingers before exiting.
//
// Parameters:
//   - d: idle timeout (default 1s)
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithIdleTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if d > 0 {
			l.idle = d
		}
	}
}

// WithFileSystem resolves Load paths against fsys instead of the host file system.
//
// Parameters:
//   - fsys: the file system to read images from
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithFileSystem(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}
