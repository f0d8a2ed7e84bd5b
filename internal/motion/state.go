package motion

import "math"

const (
	TrackMin = 0.0
	TrackMax = 100.0
)

// State is the boat's motion record. Target is meaningful only while
// Seeking is set.
type State struct {
	Position float64
	Velocity float64
	Target   float64
	Seeking  bool
	Manual   bool
}

// Moving reports whether the boat is seeking or still carries velocity of
// at least rest.
func (s State) Moving(rest float64) bool {
	return s.Seeking || math.Abs(s.Velocity) >= rest
}

// Seek sets a clamped target.
func (s *State) Seek(x float64) {
	s.Target = ClampPosition(x)
	s.Seeking = true
}

// ClearTarget drops any target; velocity is left to coast.
func (s *State) ClearTarget() {
	s.Target = 0
	s.Seeking = false
}

func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

func ClampPosition(x float64) float64 {
	return Clamp(x, TrackMin, TrackMax)
}

// ClampDelta normalises an elapsed frame count: NaN and negative values
// become 0, anything above max (including +Inf) becomes max.
func ClampDelta(delta, max float64) float64 {
	if math.IsNaN(delta) || delta < 0 {
		return 0
	}
	if delta > max {
		return max
	}
	return delta
}
