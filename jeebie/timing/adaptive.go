package timing

import (
	"log/slog"
	"time"
)

// maxLag is how far behind schedule the limiter may fall before it gives up
// catching up and restarts from now.
const maxLag = 100 * time.Millisecond

// AdaptiveLimiter sleeps until a fixed schedule of frame deadlines. Short
// overruns are absorbed by the following frames, stalls longer than maxLag
// restart the schedule.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	frameCounter    int64

	now   func() time.Time
	sleep func(time.Duration)
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	a := &AdaptiveLimiter{
		targetFrameTime: FrameDuration(),
		now:             time.Now,
		sleep:           time.Sleep,
	}
	a.Reset()
	return a
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	wait := a.nextFrameTime.Sub(now)

	switch {
	case wait > 0:
		a.sleep(wait)
	case -wait > maxLag:
		slog.Debug("Frame pacing reset", "behind_ms", (-wait).Milliseconds())
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = a.now()
	a.frameCounter = 0
}

// Frames returns how many frames were paced since the last Reset.
func (a *AdaptiveLimiter) Frames() int64 {
	return a.frameCounter
}
