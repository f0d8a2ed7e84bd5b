package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/voyage/internal/replay"
)

func samples(positions []float64, moving []bool) []replay.Sample {
	out := make([]replay.Sample, len(positions))
	for i, p := range positions {
		out[i] = replay.Sample{Frame: i + 1, Position: p, Moving: moving[i]}
		if i > 0 {
			out[i].Velocity = p - positions[i-1]
		}
	}
	return out
}

func TestSettleFrame(t *testing.T) {
	s := samples([]float64{1, 2, 3, 3, 4, 4, 4}, []bool{true, true, false, true, false, false, false})
	if got := SettleFrame(s); got != 4 {
		t.Errorf("expected settle at 4, got %d", got)
	}

	s[len(s)-1].Moving = true
	if got := SettleFrame(s); got != -1 {
		t.Errorf("expected -1 for unsettled trace, got %d", got)
	}
}

func TestOvershoot(t *testing.T) {
	right := samples([]float64{0, 5, 10.3, 10}, []bool{true, true, true, false})
	if got := Overshoot(right, 10); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected overshoot 0.3, got %f", got)
	}

	left := samples([]float64{50, 30, 20}, []bool{true, true, false})
	if got := Overshoot(left, 20); got != 0 {
		t.Errorf("expected no overshoot, got %f", got)
	}
}

func TestPeakSpeedAndDistance(t *testing.T) {
	s := samples([]float64{10, 12, 11, 11.5}, []bool{true, true, true, false})
	if got := PeakSpeed(s); got != 2 {
		t.Errorf("expected peak speed 2, got %f", got)
	}
	if got := Distance(s); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("expected distance 3.5, got %f", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	n := 256
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	got := DominantFrequency(v, 1)
	if math.Abs(got-8.0/256) > 1e-9 {
		t.Errorf("expected 8/256 cycles per frame, got %f", got)
	}
}

func TestVelocitySpectrumPads(t *testing.T) {
	ps := VelocitySpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("expected padded half-spectrum of 64, got %d", len(ps))
	}
	if VelocitySpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestSummaryReportsMetricNames(t *testing.T) {
	tr := replay.NewTrace("test", 1, 4)
	tr.Samples = samples([]float64{0, 1, 2, 2}, []bool{true, true, false, false})

	m := Summary(tr)
	if len(m) != len(MetricNames) {
		t.Fatalf("expected %d metrics, got %d", len(MetricNames), len(m))
	}
	for _, name := range MetricNames {
		if _, ok := m[name]; !ok {
			t.Errorf("summary missing %s", name)
		}
	}
	if m["settle_frame"] != 2 {
		t.Errorf("expected settle frame 2, got %f", m["settle_frame"])
	}
}
