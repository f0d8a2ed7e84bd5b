package helm

import (
	"math"

	"github.com/san-kum/voyage/internal/motion"
)

const (
	DefaultStart             = 5.0
	DefaultViewportWidth     = 1280.0
	DefaultDragVelocityScale = 0.1
	DefaultNudgeImpulse      = 0.5
	DefaultDragTimeout       = 300.0
)

// Options configures a Controller. ViewportWidth is the pointer-space width
// that maps onto the whole track. DragTimeout is measured in frame units:
// a drag with no UpdateDrag for that long ends. Viewers that only see
// pointer motion should repeat the last position each frame while the
// button is held.
type Options struct {
	Motion            motion.Config
	Start             float64
	ViewportWidth     float64
	DragVelocityScale float64
	NudgeImpulse      float64
	DragTimeout       float64
}

func DefaultOptions() Options {
	return Options{
		Motion:            motion.DefaultConfig(),
		Start:             DefaultStart,
		ViewportWidth:     DefaultViewportWidth,
		DragVelocityScale: DefaultDragVelocityScale,
		NudgeImpulse:      DefaultNudgeImpulse,
		DragTimeout:       DefaultDragTimeout,
	}
}

func (o Options) Validate() error {
	if err := o.Motion.Validate(); err != nil {
		return err
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"viewport_width", o.ViewportWidth},
		{"drag_velocity_scale", o.DragVelocityScale},
		{"nudge_impulse", o.NudgeImpulse},
		{"drag_timeout", o.DragTimeout},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return &motion.ConfigError{Field: c.name, Value: c.v, Want: "finite and > 0"}
		}
	}
	if math.IsNaN(o.Start) || math.IsInf(o.Start, 0) {
		return &motion.ConfigError{Field: "start", Value: o.Start, Want: "finite"}
	}
	return nil
}
