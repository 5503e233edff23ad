package fps

import (
	"time"
)

type counterState struct {
	fps        float64
	frameCount int
	lastUpdate time.Time
	now        func() time.Time
}

// Counter averages the frame rate over an update window, trading
// latency for a steadier number than Meter's per-frame estimate.
type Counter struct {
	*counterState
	UpdateInterval time.Duration
}

func NewCounter(updateInterval time.Duration) Counter {
	return Counter{
		counterState:   &counterState{now: time.Now},
		UpdateInterval: updateInterval,
	}
}

func (fc *Counter) update() {
	fc.frameCount++
	now := fc.now()
	elapsed := now.Sub(fc.lastUpdate)

	if elapsed >= fc.UpdateInterval {
		if fc.lastUpdate.IsZero() {
			// first window has no meaningful reference
			fc.fps = 0
		} else {
			fc.fps = float64(fc.frameCount) / elapsed.Seconds()
		}
		fc.frameCount = 0
		fc.lastUpdate = now
	}
}

// Count registers a frame and returns the current windowed estimate.
func (fc *Counter) Count() float64 {
	fc.update()
	return fc.fps
}
