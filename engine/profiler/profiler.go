package profiler

import (
	"log"
	"runtime"
	"time"
)

// Report is one interval of frame statistics.
type Report struct {
	// Frames is the number of frames counted in the interval.
	Frames int
	// FPS is Frames divided by the interval length in seconds.
	FPS float64
	// Degenerate is the number of frames drawn with a zero normal matrix.
	Degenerate int
	// Skipped is the number of frames composed for an empty surface and not drawn.
	Skipped int
	// Failed is the number of frames whose draw returned an error.
	Failed int
	// HeapMB is the live heap in MiB at the end of the interval.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MiB per second over the interval.
	AllocRateMB float64
	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are the latest and largest GC pauses in the interval.
	LastPauseUs, MaxPauseUs uint64
	// SysMB is the memory obtained from the OS in MiB.
	SysMB float64
}

// FrameOutcome classifies a frame for the profiler.
type FrameOutcome int

const (
	// FrameDrawn is a frame drawn with valid matrices.
	FrameDrawn FrameOutcome = iota
	// FrameDegenerate is a frame drawn with a zero normal matrix.
	FrameDegenerate
	// FrameSkipped is a frame for an empty surface.
	FrameSkipped
	// FrameFailed is a frame whose draw returned an error.
	FrameFailed
)

// Profiler tracks frame rate, frame outcomes and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount      int
	degenerateCount int
	skippedCount    int
	failedCount     int

	now            func() time.Time
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler reporting once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return newProfiler(time.Now, time.Second)
}

func newProfiler(now func() time.Time, interval time.Duration) *Profiler {
	return &Profiler{
		now:            now,
		lastTime:       now(),
		updateInterval: interval,
	}
}

// SetInterval changes how often a report is logged. Non-positive values are ignored.
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Tick should be called once per frame with that frame's outcome.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - outcome: how the frame ended
//
// Returns:
//   - Report: the statistics for the interval that just closed
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(outcome FrameOutcome) (Report, bool) {
	p.frameCount++
	switch outcome {
	case FrameDegenerate:
		p.degenerateCount++
	case FrameSkipped:
		p.skippedCount++
	case FrameFailed:
		p.failedCount++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Report{}, false
	}

	r := Report{
		Frames:     p.frameCount,
		FPS:        float64(p.frameCount) / elapsed.Seconds(),
		Degenerate: p.degenerateCount,
		Skipped:    p.skippedCount,
		Failed:     p.failedCount,
	}

	runtime.ReadMemStats(&p.memStats)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	r.GCCount = p.memStats.NumGC
	if r.GCCount > 0 {
		r.LastPauseUs = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if r.GCCount-startIdx > 256 {
			startIdx = r.GCCount - 256
		}
		for i := startIdx; i < r.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Degenerate: %d | Skipped: %d | Failed: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.Degenerate, r.Skipped, r.Failed, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)

	p.frameCount = 0
	p.degenerateCount = 0
	p.skippedCount = 0
	p.failedCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return r, true
}
