package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
)

const (
	DefaultFPS     = 60
	DefaultDataDir = ".voyage"
)

type Config struct {
	Start    float64        `yaml:"start"`
	Motion   MotionConfig   `yaml:"motion"`
	Pointer  PointerConfig  `yaml:"pointer"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	FPS      int            `yaml:"fps"`
	Points   []poi.Point    `yaml:"points"`
}

type MotionConfig struct {
	Friction         float64 `yaml:"friction"`
	Acceleration     float64 `yaml:"acceleration"`
	MaxVelocity      float64 `yaml:"max_velocity"`
	SnapDistance     float64 `yaml:"snap_distance"`
	ArrivalThreshold float64 `yaml:"arrival_threshold"`
	RestVelocity     float64 `yaml:"rest_velocity"`
	MaxDelta         float64 `yaml:"max_delta"`
}

type PointerConfig struct {
	ViewportWidth     float64 `yaml:"viewport_width"`
	DragVelocityScale float64 `yaml:"drag_velocity_scale"`
	DragTimeout       float64 `yaml:"drag_timeout"`
}

type KeyboardConfig struct {
	NudgeImpulse float64 `yaml:"nudge_impulse"`
}

// DefaultPoints are the portfolio sections laid out along the voyage.
func DefaultPoints() []poi.Point {
	return []poi.Point{
		{ID: "about", Position: 15, Label: "About Isle", Emoji: "🏝"},
		{ID: "skills", Position: 38, Label: "Skill Reef", Emoji: "⚓"},
		{ID: "projects", Position: 62, Label: "Project Cove", Emoji: "🗺"},
		{ID: "contact", Position: 85, Label: "Contact Bay", Emoji: "🦜"},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Start: helm.DefaultStart,
		Motion: MotionConfig{
			Friction:         motion.DefaultFriction,
			Acceleration:     motion.DefaultAcceleration,
			MaxVelocity:      motion.DefaultMaxVelocity,
			SnapDistance:     motion.DefaultSnapDistance,
			ArrivalThreshold: motion.DefaultArrivalThreshold,
			RestVelocity:     motion.DefaultRestVelocity,
			MaxDelta:         motion.DefaultMaxDelta,
		},
		Pointer: PointerConfig{
			ViewportWidth:     helm.DefaultViewportWidth,
			DragVelocityScale: helm.DefaultDragVelocityScale,
			DragTimeout:       helm.DefaultDragTimeout,
		},
		Keyboard: KeyboardConfig{
			NudgeImpulse: helm.DefaultNudgeImpulse,
		},
		FPS:    DefaultFPS,
		Points: DefaultPoints(),
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides the keys it names.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, typically a preset. base is
// modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if err := c.HelmOptions().Validate(); err != nil {
		return err
	}
	_, err := poi.Normalize(c.Points)
	return err
}

func (c *Config) MotionConfig() motion.Config {
	return motion.Config{
		Friction:         c.Motion.Friction,
		Acceleration:     c.Motion.Acceleration,
		MaxVelocity:      c.Motion.MaxVelocity,
		SnapDistance:     c.Motion.SnapDistance,
		ArrivalThreshold: c.Motion.ArrivalThreshold,
		RestVelocity:     c.Motion.RestVelocity,
		MaxDelta:         c.Motion.MaxDelta,
	}
}

func (c *Config) HelmOptions() helm.Options {
	return helm.Options{
		Motion:            c.MotionConfig(),
		Start:             c.Start,
		ViewportWidth:     c.Pointer.ViewportWidth,
		DragVelocityScale: c.Pointer.DragVelocityScale,
		NudgeImpulse:      c.Keyboard.NudgeImpulse,
		DragTimeout:       c.Pointer.DragTimeout,
	}
}

// NewController builds a helm controller from the config.
func (c *Config) NewController() (*helm.Controller, error) {
	return helm.New(c.Points, c.HelmOptions())
}
