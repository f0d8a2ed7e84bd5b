package config

import "sort"

// Presets tune the feel of the boat. Each preset starts from DefaultConfig
// and overrides the motion block only.
var Presets = map[string]MotionConfig{
	"calm": {
		Friction: 0.985, Acceleration: 0.05, MaxVelocity: 0.6,
		SnapDistance: 8, ArrivalThreshold: 0.5, RestVelocity: 0.01, MaxDelta: 3,
	},
	"brisk": {
		Friction: 0.95, Acceleration: 0.12, MaxVelocity: 1.2,
		SnapDistance: 8, ArrivalThreshold: 0.75, RestVelocity: 0.01, MaxDelta: 3,
	},
	"heavy": {
		Friction: 0.9, Acceleration: 0.03, MaxVelocity: 0.5,
		SnapDistance: 10, ArrivalThreshold: 0.5, RestVelocity: 0.02, MaxDelta: 2,
	},
}

func GetPreset(name string) *Config {
	m, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Motion = m
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
