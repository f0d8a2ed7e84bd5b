package motion

import (
	"errors"
	"math"
	"testing"
)

func runUntilRest(t *testing.T, s State, cfg Config, limit int) (State, int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if !s.Moving(cfg.RestVelocity) {
			return s, i
		}
		s, _ = Tick(s, 1, cfg)
	}
	t.Fatalf("state still moving after %d ticks: %+v", limit, s)
	return s, limit
}

func TestTickSeekConverges(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Position: 5}
	s.Seek(50)

	final, ticks := runUntilRest(t, s, cfg, 500)

	if final.Position != 50 {
		t.Errorf("expected position 50, got %f", final.Position)
	}
	if final.Velocity != 0 {
		t.Errorf("expected velocity 0, got %f", final.Velocity)
	}
	if final.Seeking {
		t.Error("expected target to be cleared")
	}
	if ticks > 100 {
		t.Errorf("expected arrival within 100 ticks, took %d", ticks)
	}
}

func TestTickSeekNoOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	for _, target := range []float64{0, 12.3, 50, 99.9, 100} {
		s := State{Position: 60}
		s.Seek(target)
		dir := sign(target - s.Position)
		for i := 0; i < 500 && s.Seeking; i++ {
			s, _ = Tick(s, 1, cfg)
			if sign(target-s.Position) == -dir && math.Abs(target-s.Position) >= cfg.ArrivalThreshold {
				t.Fatalf("target %.1f: overshoot beyond arrival threshold at %f", target, s.Position)
			}
		}
		if s.Position != target {
			t.Errorf("target %.1f: got %f", target, s.Position)
		}
	}
}

func TestTickSeekArrivesAtLargeDeltas(t *testing.T) {
	cfg := DefaultConfig()
	for _, delta := range []float64{1, 2, 2.5, 3} {
		for _, start := range []float64{5, 60} {
			for _, target := range []float64{0, 12.3, 15, 50, 62.1, 85, 99.9, 100} {
				s := State{Position: start}
				s.Seek(target)
				dir := sign(target - start)

				ticks := 0
				for ; ticks < 500 && s.Seeking; ticks++ {
					s, _ = Tick(s, delta, cfg)
					if s.Seeking && sign(target-s.Position) == -dir {
						t.Fatalf("delta %.1f %.1f->%.1f: passed target at %f", delta, start, target, s.Position)
					}
				}
				if s.Seeking || s.Position != target {
					t.Errorf("delta %.1f %.1f->%.1f: seeking=%v pos=%f after %d ticks", delta, start, target, s.Seeking, s.Position, ticks)
				}
				if ticks > 200 {
					t.Errorf("delta %.1f %.1f->%.1f: took %d ticks", delta, start, target, ticks)
				}
			}
		}
	}
}

func TestTickCoastDecays(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Position: 50, Velocity: 0.5}

	prev := math.Abs(s.Velocity)
	for i := 0; i < 1000 && s.Moving(cfg.RestVelocity); i++ {
		s, _ = Tick(s, 1, cfg)
		v := math.Abs(s.Velocity)
		if v > prev {
			t.Fatalf("tick %d: |velocity| grew from %f to %f", i, prev, v)
		}
		prev = v
	}

	// 0.5 * 0.97^n < 0.01 within ~129 ticks
	if s.Moving(cfg.RestVelocity) {
		t.Fatal("expected coast to come to rest")
	}
	if s.Velocity != 0 {
		t.Errorf("expected velocity zeroed, got %f", s.Velocity)
	}
}

func TestTickNudgeFirstStep(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Position: 50, Velocity: 0.5}

	next, changed := Tick(s, 1, cfg)
	if !changed {
		t.Fatal("expected change")
	}
	if math.Abs(next.Velocity-0.5*cfg.Friction) > 1e-12 {
		t.Errorf("expected velocity %f, got %f", 0.5*cfg.Friction, next.Velocity)
	}
	if math.Abs(next.Position-50.5) > 1e-12 {
		t.Errorf("expected position 50.5, got %f", next.Position)
	}
}

func TestTickManualUntouched(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Position: 30, Velocity: 0.7, Manual: true}

	for i := 0; i < 100; i++ {
		next, changed := Tick(s, 1, cfg)
		if changed || next != s {
			t.Fatalf("manual state changed on tick %d: %+v", i, next)
		}
	}
}

func TestTickUnchangedAtRest(t *testing.T) {
	s := State{Position: 42}
	next, changed := Tick(s, 1, DefaultConfig())
	if changed {
		t.Errorf("expected no change at rest, got %+v", next)
	}
}

func TestTickClampsPosition(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		s    State
		want float64
	}{
		{"right wall", State{Position: 99.9, Velocity: 0.8}, 100},
		{"left wall", State{Position: 0.1, Velocity: -0.8}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.s
			for i := 0; i < 50; i++ {
				s, _ = Tick(s, 3, cfg)
				if s.Position < TrackMin || s.Position > TrackMax {
					t.Fatalf("position out of track: %f", s.Position)
				}
			}
			if s.Position != tt.want {
				t.Errorf("expected %f, got %f", tt.want, s.Position)
			}
		})
	}
}

func TestTickDeltaIsCapped(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Position: 10, Velocity: 0.5}

	huge, _ := Tick(s, 1000, cfg)
	capped, _ := Tick(s, cfg.MaxDelta, cfg)
	if huge != capped {
		t.Errorf("expected delta capped at %f: %+v vs %+v", cfg.MaxDelta, huge, capped)
	}

	for _, d := range []float64{0, -1, math.NaN()} {
		if _, changed := Tick(s, d, cfg); changed {
			t.Errorf("delta %f: expected no change", d)
		}
	}
	if next, _ := Tick(s, math.Inf(1), cfg); math.IsNaN(next.Position) || math.IsInf(next.Position, 0) {
		t.Errorf("infinite delta produced %f", next.Position)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"zero friction", func(c *Config) { c.Friction = 0 }, "friction"},
		{"unit friction", func(c *Config) { c.Friction = 1 }, "friction"},
		{"nan friction", func(c *Config) { c.Friction = math.NaN() }, "friction"},
		{"negative max velocity", func(c *Config) { c.MaxVelocity = -0.8 }, "max_velocity"},
		{"zero acceleration", func(c *Config) { c.Acceleration = 0 }, "acceleration"},
		{"infinite snap", func(c *Config) { c.SnapDistance = math.Inf(1) }, "snap_distance"},
		{"zero max delta", func(c *Config) { c.MaxDelta = 0 }, "max_delta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, err)
			}
		})
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{2.5, 2.5},
		{7, 3},
		{-2, 0},
		{math.NaN(), 0},
		{math.Inf(1), 3},
	}
	for _, tt := range tests {
		if got := ClampDelta(tt.in, 3); got != tt.want {
			t.Errorf("ClampDelta(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestSeekClampsTarget(t *testing.T) {
	var s State
	s.Seek(140)
	if s.Target != 100 || !s.Seeking {
		t.Errorf("expected clamped target 100, got %+v", s)
	}
	s.Seek(-3)
	if s.Target != 0 {
		t.Errorf("expected clamped target 0, got %f", s.Target)
	}
}
