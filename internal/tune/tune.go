// Package tune searches motion settings for the ones that sail a script
// best. Every candidate gets its own controller, so runs are independent
// and can execute in parallel.
package tune

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/voyage/internal/analysis"
	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
	"github.com/san-kum/voyage/internal/replay"
)

// OvershootWeight converts percent of overshoot past the final seek target
// into score units.
const OvershootWeight = 5.0

var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrEmptyGrid     = errors.New("grid has no valid candidates")
)

// Grid lists the values tried per axis. An empty axis keeps the base value.
type Grid struct {
	Friction     []float64 `yaml:"friction"`
	Acceleration []float64 `yaml:"acceleration"`
	MaxVelocity  []float64 `yaml:"max_velocity"`
}

func DefaultGrid() Grid {
	return Grid{
		Friction:     []float64{0.9, 0.95, 0.97, 0.985},
		Acceleration: []float64{0.03, 0.05, 0.08, 0.12},
		MaxVelocity:  []float64{0.5, 0.8, 1.2},
	}
}

// Candidates expands the grid over base. Combinations that fail
// validation are skipped.
func (g Grid) Candidates(base motion.Config) []motion.Config {
	axis := func(vals []float64, def float64) []float64 {
		if len(vals) == 0 {
			return []float64{def}
		}
		return vals
	}

	var out []motion.Config
	for _, f := range axis(g.Friction, base.Friction) {
		for _, a := range axis(g.Acceleration, base.Acceleration) {
			for _, v := range axis(g.MaxVelocity, base.MaxVelocity) {
				cfg := base
				cfg.Friction, cfg.Acceleration, cfg.MaxVelocity = f, a, v
				if cfg.Validate() != nil {
					continue
				}
				out = append(out, cfg)
			}
		}
	}
	return out
}

type Candidate struct {
	Config  motion.Config
	Score   float64
	Metrics map[string]float64
}

type Result struct {
	Metric     string
	Best       Candidate
	Candidates []Candidate
}

// Search runs script once per grid candidate on up to workers goroutines
// and ranks the candidates by metric, lower is better. A trace that never
// settles scores as many frames as the script has.
func Search(ctx context.Context, points []poi.Point, opts helm.Options, script *replay.Script, grid Grid, metric string, workers int) (*Result, error) {
	if !slices.Contains(analysis.MetricNames, metric) {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownMetric, metric, analysis.MetricNames)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	cands := grid.Candidates(opts.Motion)
	if len(cands) == 0 {
		return nil, ErrEmptyGrid
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	seekFrame, target, hasSeek := script.FinalSeek()
	scored := make([]Candidate, len(cands))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cands {
		g.Go(func() error {
			o := script.Options(opts)
			o.Motion = cfg
			ctrl, err := helm.New(points, o)
			if err != nil {
				return err
			}
			tr, err := replay.Run(ctx, ctrl, script.Clone())
			if err != nil {
				return err
			}

			m := analysis.Summary(tr)
			score := m[metric]
			if metric == "settle_frame" && score < 0 {
				score = float64(script.Frames)
			}
			if hasSeek && seekFrame < len(tr.Samples) {
				score += OvershootWeight * analysis.Overshoot(tr.Samples[seekFrame:], target)
			}
			scored[i] = Candidate{Config: cfg, Score: score, Metrics: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score < scored[j].Score })
	return &Result{Metric: metric, Best: scored[0], Candidates: scored}, nil
}
