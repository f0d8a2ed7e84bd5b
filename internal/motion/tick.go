package motion

import "math"

// Tick advances s by delta frame units. The steps run in a fixed order:
// manual short-circuit, seeking, integration, friction, clamping. The bool
// result is false when the returned state equals s, letting callers skip
// redundant redraws.
func Tick(s State, delta float64, cfg Config) (State, bool) {
	if s.Manual {
		return s, false
	}
	delta = ClampDelta(delta, cfg.MaxDelta)
	if delta == 0 {
		return s, false
	}

	next := s

	if next.Seeking {
		diff := next.Target - next.Position
		next.Velocity += sign(diff) * cfg.Acceleration * delta
		next.Velocity = Clamp(next.Velocity, -cfg.MaxVelocity, cfg.MaxVelocity)

		// a step that would carry the boat onto or past the target arrives too
		if math.Abs(diff) < cfg.ArrivalThreshold || reaches(next.Velocity, delta, diff) {
			next.Position = next.Target
			next.Velocity = 0
			next.ClearTarget()
		}
	}

	next.Position += next.Velocity * delta

	if !next.Seeking {
		next.Velocity *= cfg.Friction
		if math.Abs(next.Velocity) < cfg.RestVelocity {
			next.Velocity = 0
		}
	}

	next.Position = ClampPosition(next.Position)

	if next == s {
		return s, false
	}
	return next, true
}

func reaches(velocity, delta, diff float64) bool {
	return velocity*diff > 0 && math.Abs(velocity*delta) >= math.Abs(diff)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
