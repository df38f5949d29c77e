package timing

import (
	"time"

	"github.com/valerio/jeebie-core/jeebie/video"
)

// Limiter controls frame rate timing for emulation. The emulator core never
// sleeps; frontends that present frames to a person call WaitForNextFrame
// once per frame.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// CPUFrequency is the DMG master clock in Hz.
const CPUFrequency = 4194304

// TargetFPS calculates the exact Game Boy frame rate, about 59.73 Hz.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(video.DotsPerFrame)
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}
