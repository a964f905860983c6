package engine2D

import "time"

// PreviewThrottle is the minimum spacing between two preview frames.
const PreviewThrottle = 16 * time.Millisecond

// due reports whether a frame may run at now. A zero interval never
// throttles and the first frame is always due.
func due(last, now time.Time, interval time.Duration) bool {
	if interval <= 0 || last.IsZero() {
		return true
	}
	return now.Sub(last) >= interval
}

// FrameClock measures wall time between host frames. Effects never see it:
// their clock is the fixed logical step.
type FrameClock struct {
	last  time.Time
	delta time.Duration
	avg   time.Duration
}

// Tick records a frame at now and returns the elapsed time since the
// previous one.
func (c *FrameClock) Tick(now time.Time) time.Duration {
	if !c.last.IsZero() {
		c.delta = now.Sub(c.last)
		if c.avg == 0 {
			c.avg = c.delta
		} else {
			c.avg += (c.delta - c.avg) / 16
		}
	}
	c.last = now
	return c.delta
}

// Average is a smoothed frame time.
func (c *FrameClock) Average() time.Duration { return c.avg }
