package motion

import "math"

const (
	DefaultFriction         = 0.97
	DefaultAcceleration     = 0.08
	DefaultMaxVelocity      = 0.8
	DefaultSnapDistance     = 8.0
	DefaultArrivalThreshold = 0.5
	DefaultRestVelocity     = 0.01
	DefaultMaxDelta         = 3.0
)

// Config holds the tuning constants of the motion model. Velocities are in
// track percent per frame unit.
type Config struct {
	Friction         float64
	Acceleration     float64
	MaxVelocity      float64
	SnapDistance     float64
	ArrivalThreshold float64
	RestVelocity     float64
	MaxDelta         float64
}

func DefaultConfig() Config {
	return Config{
		Friction:         DefaultFriction,
		Acceleration:     DefaultAcceleration,
		MaxVelocity:      DefaultMaxVelocity,
		SnapDistance:     DefaultSnapDistance,
		ArrivalThreshold: DefaultArrivalThreshold,
		RestVelocity:     DefaultRestVelocity,
		MaxDelta:         DefaultMaxDelta,
	}
}

// Validate rejects configs that would make Tick diverge or stall.
func (c Config) Validate() error {
	if !finite(c.Friction) || c.Friction <= 0 || c.Friction >= 1 {
		return &ConfigError{Field: "friction", Value: c.Friction, Want: "in (0,1)"}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"acceleration", c.Acceleration},
		{"max_velocity", c.MaxVelocity},
		{"snap_distance", c.SnapDistance},
		{"arrival_threshold", c.ArrivalThreshold},
		{"rest_velocity", c.RestVelocity},
		{"max_delta", c.MaxDelta},
	}
	for _, p := range positive {
		if !finite(p.v) || p.v <= 0 {
			return &ConfigError{Field: p.name, Value: p.v, Want: "finite and > 0"}
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
