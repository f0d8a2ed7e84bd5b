package helm

import "math"

type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyActivate
)

var keyNames = map[string]Key{
	"left":       KeyLeft,
	"arrowleft":  KeyLeft,
	"a":          KeyLeft,
	"A":          KeyLeft,
	"right":      KeyRight,
	"arrowright": KeyRight,
	"d":          KeyRight,
	"D":          KeyRight,
	"enter":      KeyActivate,
	" ":          KeyActivate,
	"space":      KeyActivate,
}

// ParseKey maps a key name as reported by a terminal or browser-style event
// to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// HandleKey applies a key press. Left and right nudge by NudgeImpulse,
// activate anchors at the nearby point. It reports whether the key had an
// effect.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyLeft:
		if c.state.Manual {
			return false
		}
		c.Nudge(-c.opts.NudgeImpulse)
		return true
	case KeyRight:
		if c.state.Manual {
			return false
		}
		c.Nudge(c.opts.NudgeImpulse)
		return true
	case KeyActivate:
		return c.Activate()
	}
	return false
}

// PointerDown starts a drag when the press lands on the boat and otherwise
// sails to the pressed spot. x is in viewport coordinates.
func (c *Controller) PointerDown(x float64, onBoat bool) {
	if onBoat {
		c.BeginDrag(x)
		return
	}
	c.SeekTo(c.TrackPosition(x))
}

func (c *Controller) PointerMove(x float64) { c.UpdateDrag(x) }
func (c *Controller) PointerUp()            { c.EndDrag() }

// PointerCancel covers a lost pointer capture or window blur. It releases
// the drag the same way a normal release would.
func (c *Controller) PointerCancel() { c.EndDrag() }

// TrackPosition converts a viewport x coordinate to a track position.
func (c *Controller) TrackPosition(x float64) float64 {
	return x / c.opts.ViewportWidth * 100
}

// ViewportX converts the boat's track position to viewport coordinates.
func (c *Controller) ViewportX() float64 {
	return c.state.Position / 100 * c.opts.ViewportWidth
}

// BoatHit reports whether a pointer at x lies within halfWidth of the boat.
func (c *Controller) BoatHit(x, halfWidth float64) bool {
	return math.Abs(x-c.ViewportX()) <= halfWidth
}
