package helm

import (
	"fmt"

	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
)

type Mode int

const (
	Idle Mode = iota
	Seeking
	Dragging
	Coasting
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Seeking:
		return "seeking"
	case Dragging:
		return "dragging"
	case Coasting:
		return "coasting"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	for _, c := range []Mode{Idle, Seeking, Dragging, Coasting} {
		if c.String() == string(b) {
			*m = c
			return nil
		}
	}
	return fmt.Errorf("helm: unknown mode %q", b)
}

// Snapshot is the per-frame view handed to renderers. NearestID is empty
// when no point lies within snap distance.
type Snapshot struct {
	Position  float64
	Velocity  float64
	Moving    bool
	Manual    bool
	Mode      Mode
	NearestID string
}

// Observer is notified after every Step.
type Observer interface {
	OnStep(frame int, s Snapshot)
}

type drag struct {
	originX   float64
	originPos float64
	lastX     float64
	idle      float64
}

type Controller struct {
	opts   Options
	points []poi.Point
	state  motion.State
	drag   drag
	frame  int

	// last id reported to nearest listeners; proximity itself is always
	// recomputed from state
	reported string

	observers []Observer
	onNearest []func(prev, next string)
	onAnchor  func(poi.Point)
}

// New builds a controller resting at opts.Start (clamped to the track).
func New(points []poi.Point, opts Options) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pts, err := poi.Normalize(points)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		opts:      opts,
		points:    pts,
		state:     motion.State{Position: motion.ClampPosition(opts.Start)},
		observers: make([]Observer, 0),
	}
	c.reported = c.NearestID()
	return c, nil
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) RemoveObserver(o Observer) {
	for i, obs := range c.observers {
		if obs == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// OnNearestChange registers fn to run whenever the nearest point id changes.
func (c *Controller) OnNearestChange(fn func(prev, next string)) {
	c.onNearest = append(c.onNearest, fn)
}

// OnAnchor sets the callback fired by Activate.
func (c *Controller) OnAnchor(fn func(poi.Point)) { c.onAnchor = fn }

func (c *Controller) Options() Options       { return c.opts }
func (c *Controller) Points() []poi.Point    { return c.points }
func (c *Controller) State() motion.State    { return c.state }
func (c *Controller) Frame() int             { return c.frame }
func (c *Controller) Dragging() bool         { return c.state.Manual }
func (c *Controller) Moving() bool           { return c.state.Moving(c.opts.Motion.RestVelocity) }
func (c *Controller) ViewportWidth() float64 { return c.opts.ViewportWidth }

// SetViewport changes the pointer-space width. Non-positive widths are
// ignored. An active drag keeps its origin in the old coordinates.
func (c *Controller) SetViewport(width float64) {
	if width > 0 {
		c.opts.ViewportWidth = width
	}
}

// SeekTo sets a navigation target, clamped to the track. A drag still
// marked active is treated as stale and dropped.
func (c *Controller) SeekTo(x float64) {
	if c.state.Manual {
		c.EndDrag()
	}
	c.state.Seek(x)
}

func (c *Controller) BeginDrag(pointerX float64) {
	c.drag = drag{
		originX:   pointerX,
		originPos: c.state.Position,
		lastX:     pointerX,
	}
	c.state.Manual = true
	c.state.ClearTarget()
	c.state.Velocity = 0
}

// UpdateDrag moves the boat with the pointer. Velocity tracks the
// displacement since the previous update so a release carries momentum.
func (c *Controller) UpdateDrag(pointerX float64) {
	if !c.state.Manual {
		return
	}
	w := c.opts.ViewportWidth
	total := (pointerX - c.drag.originX) / w * 100
	step := (pointerX - c.drag.lastX) / w * 100

	maxV := c.opts.Motion.MaxVelocity
	c.state.Position = motion.ClampPosition(c.drag.originPos + total)
	c.state.Velocity = motion.Clamp(step*c.opts.DragVelocityScale, -maxV, maxV)
	c.drag.lastX = pointerX
	c.drag.idle = 0
	c.notifyNearest()
}

func (c *Controller) EndDrag() {
	if !c.state.Manual {
		return
	}
	c.state.Manual = false
	c.drag = drag{}
}

// Nudge adds an impulse to velocity and drops any target. Ignored while a
// drag owns the boat.
func (c *Controller) Nudge(delta float64) {
	if c.state.Manual {
		return
	}
	maxV := c.opts.Motion.MaxVelocity
	c.state.Velocity = motion.Clamp(c.state.Velocity+delta, -maxV, maxV)
	c.state.ClearTarget()
}

// Step advances the simulation by delta frame units and notifies
// observers. It reports whether the motion state changed.
func (c *Controller) Step(delta float64) bool {
	delta = motion.ClampDelta(delta, c.opts.Motion.MaxDelta)
	c.frame++

	expired := false
	if c.state.Manual {
		c.drag.idle += delta
		if c.drag.idle >= c.opts.DragTimeout {
			c.EndDrag()
			expired = true
		}
	}

	next, changed := motion.Tick(c.state, delta, c.opts.Motion)
	c.state = next

	if changed {
		c.notifyNearest()
	}
	snap := c.Snapshot()
	for _, o := range c.observers {
		o.OnStep(c.frame, snap)
	}
	return changed || expired
}

func (c *Controller) Mode() Mode {
	switch {
	case c.state.Manual:
		return Dragging
	case c.state.Seeking:
		return Seeking
	case c.state.Moving(c.opts.Motion.RestVelocity):
		return Coasting
	}
	return Idle
}

// Nearest returns the first point within snap distance of the boat.
func (c *Controller) Nearest() (poi.Point, bool) {
	return poi.Nearest(c.points, c.state.Position, c.opts.Motion.SnapDistance)
}

func (c *Controller) NearestID() string {
	if p, ok := c.Nearest(); ok {
		return p.ID
	}
	return ""
}

// Activate fires the anchor callback for the nearby point, if any.
func (c *Controller) Activate() bool {
	p, ok := c.Nearest()
	if !ok {
		return false
	}
	if c.onAnchor != nil {
		c.onAnchor(p)
	}
	return true
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Position:  c.state.Position,
		Velocity:  c.state.Velocity,
		Moving:    c.Moving(),
		Manual:    c.state.Manual,
		Mode:      c.Mode(),
		NearestID: c.NearestID(),
	}
}

func (c *Controller) notifyNearest() {
	id := c.NearestID()
	if id == c.reported {
		return
	}
	prev := c.reported
	c.reported = id
	for _, fn := range c.onNearest {
		fn(prev, id)
	}
}
