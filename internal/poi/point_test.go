package poi

import (
	"errors"
	"testing"
)

func TestNearest(t *testing.T) {
	points := []Point{{ID: "a", Position: 10}, {ID: "b", Position: 50}}

	tests := []struct {
		pos  float64
		want string
	}{
		{12, "a"},
		{30, ""},
		{50, "b"},
		{2, ""},
		{2.5, "a"},
		{57.9, "b"},
		{58, ""},
	}
	for _, tt := range tests {
		p, ok := Nearest(points, tt.pos, 8)
		got := ""
		if ok {
			got = p.ID
		}
		if got != tt.want {
			t.Errorf("position %.1f: expected %q, got %q", tt.pos, tt.want, got)
		}
	}
}

func TestNearestTieKeepsListOrder(t *testing.T) {
	points := []Point{{ID: "left", Position: 40}, {ID: "right", Position: 60}}
	p, ok := Nearest(points, 50, 12)
	if !ok || p.ID != "left" {
		t.Errorf("expected first listed point on tie, got %+v", p)
	}
}

func TestNormalize(t *testing.T) {
	points, err := Normalize([]Point{{ID: "x", Position: -5}, {ID: "y", Position: 130}})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if points[0].Position != 0 || points[1].Position != 100 {
		t.Errorf("expected clamped positions, got %+v", points)
	}

	if _, err := Normalize([]Point{{ID: ""}}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
	if _, err := Normalize([]Point{{ID: "a"}, {ID: "a"}}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestFind(t *testing.T) {
	points := []Point{{ID: "a", Position: 10, Label: "Alpha"}}
	if p, ok := Find(points, "a"); !ok || p.Label != "Alpha" {
		t.Errorf("expected Alpha, got %+v", p)
	}
	if _, ok := Find(points, "z"); ok {
		t.Error("expected miss")
	}
}
