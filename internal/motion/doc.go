// Package motion implements the boat's one-dimensional motion model.
//
// A [State] lives on the track [0, 100] and is advanced once per rendered
// frame by [Tick]. Two regimes share one state machine:
//
//   - seeking: accelerate toward Target and arrive exactly
//   - coasting: no target, velocity decays by Friction each frame
//
// While Manual is set the pointer owns Position and Tick leaves the state
// untouched.
//
// # Example
//
//	cfg := motion.DefaultConfig()
//	s := motion.State{Position: 5}
//	s.Seek(50)
//	for s.Moving(cfg.RestVelocity) {
//		s, _ = motion.Tick(s, 1, cfg)
//	}
//
// The package performs no I/O and never schedules its own frames.
package motion
