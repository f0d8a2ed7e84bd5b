// Package replay drives a helm controller from a scripted list of input
// events and records the resulting trajectory.
package replay

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voyage/internal/helm"
)

var (
	ErrUnknownOp     = errors.New("replay: unknown op")
	ErrUnknownScript = errors.New("replay: unknown script")
)

type Op string

const (
	OpSeek        Op = "seek"
	OpNudge       Op = "nudge"
	OpDragBegin   Op = "drag_begin"
	OpDragMove    Op = "drag_move"
	OpDragEnd     Op = "drag_end"
	OpPointerDown Op = "pointer_down"
	OpPointerMove Op = "pointer_move"
	OpPointerUp   Op = "pointer_up"
	OpKey         Op = "key"
	OpActivate    Op = "activate"
)

var knownOps = map[Op]bool{
	OpSeek: true, OpNudge: true, OpDragBegin: true, OpDragMove: true, OpDragEnd: true,
	OpPointerDown: true, OpPointerMove: true, OpPointerUp: true, OpKey: true, OpActivate: true,
}

// Event is applied before the step of frame Frame. X carries the target,
// impulse or pointer coordinate depending on Op.
type Event struct {
	Frame  int     `yaml:"frame"`
	Op     Op      `yaml:"op"`
	X      float64 `yaml:"x,omitempty"`
	OnBoat bool    `yaml:"on_boat,omitempty"`
	Key    string  `yaml:"key,omitempty"`
}

type Script struct {
	Name   string   `yaml:"name"`
	Frames int      `yaml:"frames"`
	Delta  float64  `yaml:"delta"`
	Start  *float64 `yaml:"start,omitempty"`
	Events []Event  `yaml:"events"`
}

func (s *Script) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	if s.Delta <= 0 {
		return fmt.Errorf("delta must be positive, got %f", s.Delta)
	}
	for i, ev := range s.Events {
		if !knownOps[ev.Op] {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownOp, ev.Op)
		}
		if ev.Frame < 0 || ev.Frame >= s.Frames {
			return fmt.Errorf("event %d: frame %d outside [0,%d)", i, ev.Frame, s.Frames)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Frame < s.Events[j].Frame })
	return nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Script{Delta: 1}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func startAt(x float64) *float64 { return &x }

var builtins = map[string]Script{
	"navigate": {
		Name: "navigate", Frames: 240, Delta: 1, Start: startAt(5),
		Events: []Event{{Frame: 0, Op: OpSeek, X: 50}},
	},
	"nudge": {
		Name: "nudge", Frames: 240, Delta: 1, Start: startAt(50),
		Events: []Event{{Frame: 0, Op: OpKey, Key: "right"}},
	},
	"drag": {
		Name: "drag", Frames: 240, Delta: 1, Start: startAt(5),
		Events: []Event{
			{Frame: 0, Op: OpDragBegin, X: 100},
			{Frame: 2, Op: OpDragMove, X: 150},
			{Frame: 3, Op: OpDragEnd},
		},
	},
	"tour": {
		Name: "tour", Frames: 900, Delta: 1, Start: startAt(5),
		Events: []Event{
			{Frame: 0, Op: OpSeek, X: 15},
			{Frame: 60, Op: OpActivate},
			{Frame: 90, Op: OpSeek, X: 38},
			{Frame: 200, Op: OpActivate},
			{Frame: 220, Op: OpKey, Key: "d"},
			{Frame: 221, Op: OpKey, Key: "d"},
			{Frame: 400, Op: OpPointerDown, X: 1088},
			{Frame: 600, Op: OpActivate},
		},
	},
}

// Builtin returns a copy of a named built-in script.
func Builtin(name string) (*Script, error) {
	s, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	return s.Clone(), nil
}

// Clone returns a copy that can be validated and run independently.
func (s *Script) Clone() *Script {
	c := *s
	c.Events = append([]Event(nil), s.Events...)
	if s.Start != nil {
		c.Start = startAt(*s.Start)
	}
	return &c
}

// FinalSeek returns the frame and target of the last seek event.
func (s *Script) FinalSeek() (frame int, target float64, ok bool) {
	for _, ev := range s.Events {
		if ev.Op == OpSeek && ev.Frame >= frame {
			frame, target, ok = ev.Frame, ev.X, true
		}
	}
	return frame, target, ok
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns base with the script's start position applied.
func (s *Script) Options(base helm.Options) helm.Options {
	if s.Start != nil {
		base.Start = *s.Start
	}
	return base
}
