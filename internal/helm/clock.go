package helm

import "time"

const (
	// FrameUnit is the nominal frame length that one delta unit stands for.
	FrameUnit = 16 * time.Millisecond
)

// Clock converts wall-clock time between frames into frame-unit deltas,
// capped so a stalled or backgrounded frame cannot cause a jump.
type Clock struct {
	last time.Time
	unit time.Duration
	max  float64
}

func NewClock(now time.Time, unit time.Duration, max float64) *Clock {
	if unit <= 0 {
		unit = FrameUnit
	}
	return &Clock{last: now, unit: unit, max: max}
}

// Advance returns the frame units elapsed since the previous call.
func (c *Clock) Advance(now time.Time) float64 {
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed <= 0 {
		return 0
	}
	d := float64(elapsed) / float64(c.unit)
	if d > c.max {
		return c.max
	}
	return d
}

// Reset restarts timing from now, e.g. after the loop was paused.
func (c *Clock) Reset(now time.Time) { c.last = now }
