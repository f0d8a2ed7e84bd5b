package replay

import "github.com/san-kum/voyage/internal/helm"

type Sample struct {
	Frame     int
	Time      float64
	Position  float64
	Velocity  float64
	Moving    bool
	Manual    bool
	Mode      helm.Mode
	NearestID string
}

type Anchor struct {
	Frame   int
	PointID string
}

// Trace records one sample per controller step. It satisfies helm.Observer.
type Trace struct {
	Script  string
	Delta   float64
	Samples []Sample
	Anchors []Anchor

	t float64
}

func NewTrace(script string, delta float64, capacity int) *Trace {
	return &Trace{
		Script:  script,
		Delta:   delta,
		Samples: make([]Sample, 0, capacity),
	}
}

// OnStep appends a sample. Frames count steps since the trace began, not the
// controller's lifetime frame, so they line up with script frames and
// anchor events.
func (tr *Trace) OnStep(_ int, s helm.Snapshot) {
	tr.t += tr.Delta
	tr.Samples = append(tr.Samples, Sample{
		Frame:     len(tr.Samples),
		Time:      tr.t,
		Position:  s.Position,
		Velocity:  s.Velocity,
		Moving:    s.Moving,
		Manual:    s.Manual,
		Mode:      s.Mode,
		NearestID: s.NearestID,
	})
}

func (tr *Trace) Positions() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.Position
	}
	return out
}

func (tr *Trace) Velocities() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.Velocity
	}
	return out
}

// Final returns the last sample, or the zero Sample for an empty trace.
func (tr *Trace) Final() Sample {
	if len(tr.Samples) == 0 {
		return Sample{}
	}
	return tr.Samples[len(tr.Samples)-1]
}
