package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newFakeLimiter() (*AdaptiveLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	a := &AdaptiveLimiter{targetFrameTime: 10 * time.Millisecond, now: clock.now, sleep: clock.sleep}
	a.Reset()
	return a, clock
}

func TestFrameRate(t *testing.T) {
	assert.InDelta(t, 59.7275, TargetFPS(), 0.001)
	assert.InDelta(t, float64(16742*time.Microsecond), float64(FrameDuration()), float64(2*time.Microsecond))
}

func TestAdaptiveLimiterPaces(t *testing.T) {
	a, clock := newFakeLimiter()

	// first frame is due immediately
	a.WaitForNextFrame()
	assert.Empty(t, clock.slept)

	clock.t = clock.t.Add(3 * time.Millisecond)
	a.WaitForNextFrame()
	assert.Equal(t, []time.Duration{7 * time.Millisecond}, clock.slept)
	assert.Equal(t, int64(2), a.Frames())
}

func TestAdaptiveLimiterCatchesUp(t *testing.T) {
	a, clock := newFakeLimiter()
	a.WaitForNextFrame()

	// 15ms behind: the next two frames run without sleeping
	clock.t = clock.t.Add(25 * time.Millisecond)
	a.WaitForNextFrame()
	a.WaitForNextFrame()
	assert.Empty(t, clock.slept)

	a.WaitForNextFrame()
	assert.Equal(t, []time.Duration{5 * time.Millisecond}, clock.slept)
}

func TestAdaptiveLimiterResetsAfterStall(t *testing.T) {
	a, clock := newFakeLimiter()
	a.WaitForNextFrame()

	clock.t = clock.t.Add(time.Second)
	a.WaitForNextFrame()
	a.WaitForNextFrame()

	assert.Equal(t, []time.Duration{10 * time.Millisecond}, clock.slept)
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for rep := 0; rep < 100; rep++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), FrameDuration())
}
