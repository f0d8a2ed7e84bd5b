package analysis

import (
	"math"

	"github.com/san-kum/voyage/internal/replay"
)

// SettleFrame returns the index of the first sample from which the boat
// stays at rest until the end of the trace, or -1 if it never settles.
func SettleFrame(samples []replay.Sample) int {
	settle := -1
	for i, s := range samples {
		if s.Moving || s.Manual {
			settle = -1
			continue
		}
		if settle < 0 {
			settle = i
		}
	}
	return settle
}

func PeakSpeed(samples []replay.Sample) float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s.Velocity))
	}
	return peak
}

// Overshoot returns how far past target the boat travelled, measured in the
// direction of approach from the first sample.
func Overshoot(samples []replay.Sample, target float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	dir := 1.0
	if samples[0].Position > target {
		dir = -1
	}
	over := 0.0
	for _, s := range samples {
		over = math.Max(over, (s.Position-target)*dir)
	}
	return over
}

// Distance is the total path length sailed.
func Distance(samples []replay.Sample) float64 {
	d := 0.0
	for i := 1; i < len(samples); i++ {
		d += math.Abs(samples[i].Position - samples[i-1].Position)
	}
	return d
}

// MetricNames lists the keys Summary reports.
var MetricNames = []string{
	"anchors",
	"distance",
	"dominant_frequency",
	"final_position",
	"peak_speed",
	"settle_frame",
}

// Summary collects the scalar metrics stored with a run.
func Summary(tr *replay.Trace) map[string]float64 {
	return map[string]float64{
		"settle_frame":       float64(SettleFrame(tr.Samples)),
		"peak_speed":         PeakSpeed(tr.Samples),
		"distance":           Distance(tr.Samples),
		"final_position":     tr.Final().Position,
		"anchors":            float64(len(tr.Anchors)),
		"dominant_frequency": DominantFrequency(tr.Velocities(), tr.Delta),
	}
}
