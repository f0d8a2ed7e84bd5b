// Package scene derives what the viewers draw from a controller snapshot:
// parallax layer offsets, the day-to-dusk sky palette and the boat's wake.
// Everything here is a pure function of position and velocity.
package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
)

type Layer struct {
	Name  string
	Speed float64
}

// Layers lists the parallax bands from back to front. Speed is the shift in
// percent of the layer's width per percent of track travelled.
var Layers = []Layer{
	{"sky", 0.05},
	{"clouds", 0.1},
	{"horizon", 0.15},
	{"far_waves", 0.015},
	{"mid_waves", 0.025},
	{"near_waves", 0.04},
}

const (
	// WakeThreshold is the speed above which the boat leaves a wake.
	WakeThreshold = 0.3
	starFadeStart = 0.4
)

// Offset returns how far a layer moving at speed is shifted, in percent of
// its width, for a boat at position. Layers scroll opposite to travel.
func Offset(position, speed float64) float64 {
	return -position * speed
}

// Progress maps a position to the day cycle in [0,1]: sunrise at the left
// edge, sunset at the right.
func Progress(position float64) float64 {
	return motion.ClampPosition(position) / 100
}

type Sky struct {
	Top, Upper, Mid, Lower, Bottom string
	Sun, SunOuter                  string
	StarOpacity                    float64
}

// SkyAt interpolates the sky palette for a boat at position.
func SkyAt(position float64) Sky {
	t := Progress(position)
	return Sky{
		Top:         Lerp("#1a1c2c", "#0f0c29", t),
		Upper:       Lerp("#29366f", "#1a1040", t),
		Mid:         Lerp("#3b5dc9", "#c94b4b", t),
		Lower:       Lerp("#41a6f6", "#f0a35c", t),
		Bottom:      Lerp("#87ceeb", "#f7c873", t),
		Sun:         Lerp("#ffcd75", "#ff6b35", t),
		SunOuter:    Lerp("#ef7d57", "#cc3300", t),
		StarOpacity: math.Max(0, (t-starFadeStart)/(1-starFadeStart)),
	}
}

// Gradient returns the five sky stops top to bottom.
func (s Sky) Gradient() []string {
	return []string{s.Top, s.Upper, s.Mid, s.Lower, s.Bottom}
}

// Lerp interpolates between two #rrggbb colours.
func Lerp(a, b string, t float64) string {
	ar, ag, ab := ParseHex(a)
	br, bg, bb := ParseHex(b)
	t = motion.Clamp(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return HexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// ParseHex parses #rrggbb. Malformed input yields black.
func ParseHex(s string) (r, g, b uint8) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func HexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

type Wake struct {
	Visible     bool
	Opacity     float64
	FacingRight bool
}

// WakeFor describes the wake trailing a boat at velocity. facing is the
// previous heading, kept while the boat is at rest.
func WakeFor(velocity float64, facing bool) Wake {
	if velocity != 0 {
		facing = velocity > 0
	}
	speed := math.Abs(velocity)
	return Wake{
		Visible:     speed > WakeThreshold,
		Opacity:     math.Min(1, speed/2),
		FacingRight: facing,
	}
}

// Visited reports whether the boat has reached or passed p; the voyage map
// marks such islands.
func Visited(p poi.Point, position float64) bool {
	return position >= p.Position
}
