package tune

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
	"github.com/san-kum/voyage/internal/replay"
)

var islands = []poi.Point{{ID: "a", Position: 10}, {ID: "b", Position: 50}}

func navigate(t *testing.T) *replay.Script {
	t.Helper()
	s, err := replay.Builtin("navigate")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCandidates(t *testing.T) {
	base := motion.DefaultConfig()
	g := Grid{Acceleration: []float64{0.05, 0.1}, MaxVelocity: []float64{0.5, 1, -1}}

	cands := g.Candidates(base)
	if len(cands) != 4 {
		t.Fatalf("expected 4 valid candidates, got %d", len(cands))
	}
	for _, c := range cands {
		if c.Friction != base.Friction {
			t.Errorf("empty axis should keep base friction, got %f", c.Friction)
		}
		if c.MaxVelocity < 0 {
			t.Errorf("invalid candidate kept: %+v", c)
		}
	}
}

func TestSearchPrefersFasterAcceleration(t *testing.T) {
	g := Grid{Acceleration: []float64{0.02, 0.08}}

	res, err := Search(context.Background(), islands, helm.DefaultOptions(), navigate(t), g, "settle_frame", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if res.Best.Config.Acceleration != 0.08 {
		t.Errorf("expected acceleration 0.08 to settle first, got %+v", res.Best)
	}
	if res.Candidates[0].Score > res.Candidates[1].Score {
		t.Error("candidates not sorted by score")
	}
	if res.Best.Metrics["final_position"] != 50 {
		t.Errorf("expected arrival at 50, got %f", res.Best.Metrics["final_position"])
	}
}

func TestSearchErrors(t *testing.T) {
	opts := helm.DefaultOptions()

	_, err := Search(context.Background(), islands, opts, navigate(t), DefaultGrid(), "smoothness", 1)
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}

	_, err = Search(context.Background(), islands, opts, navigate(t), Grid{Friction: []float64{2}}, "distance", 1)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Search(ctx, islands, opts, navigate(t), DefaultGrid(), "distance", 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSearchLeavesScriptUntouched(t *testing.T) {
	s := navigate(t)
	before := len(s.Events)
	if _, err := Search(context.Background(), islands, helm.DefaultOptions(), s, DefaultGrid(), "distance", 4); err != nil {
		t.Fatal(err)
	}
	if len(s.Events) != before {
		t.Errorf("script events changed: %d -> %d", before, len(s.Events))
	}
}
