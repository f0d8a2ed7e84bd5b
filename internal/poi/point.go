// Package poi holds the static points of interest (islands) placed along
// the track and the proximity scan used to pick the nearby one.
package poi

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/voyage/internal/motion"
)

var (
	ErrEmptyID     = errors.New("poi: empty id")
	ErrDuplicateID = errors.New("poi: duplicate id")
)

// Point is a named fixed position on the track. Label and Emoji are display
// metadata and never read by the controller.
type Point struct {
	ID       string  `yaml:"id" json:"id"`
	Position float64 `yaml:"position" json:"position"`
	Label    string  `yaml:"label" json:"label"`
	Emoji    string  `yaml:"emoji,omitempty" json:"emoji,omitempty"`
}

// Normalize returns a copy of points with positions clamped to the track.
// Ids must be non-empty and unique; order is preserved since it decides
// proximity ties.
func Normalize(points []Point) ([]Point, error) {
	out := make([]Point, len(points))
	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		if p.ID == "" {
			return nil, fmt.Errorf("point %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("point %q: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
		p.Position = motion.ClampPosition(p.Position)
		out[i] = p
	}
	return out, nil
}

// Nearest returns the first point in list order lying strictly closer than
// snap to position.
func Nearest(points []Point, position, snap float64) (Point, bool) {
	for _, p := range points {
		if math.Abs(p.Position-position) < snap {
			return p, true
		}
	}
	return Point{}, false
}

// Find looks a point up by id.
func Find(points []Point, id string) (Point, bool) {
	for _, p := range points {
		if p.ID == id {
			return p, true
		}
	}
	return Point{}, false
}
