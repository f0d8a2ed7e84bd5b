// Package helm is the interaction controller wrapped around the motion
// model.
//
// A [Controller] turns gesture and key intents into mutations of a single
// [motion.State]:
//
//   - [Controller.SeekTo]: click-to-navigate, sets a target
//   - [Controller.BeginDrag], [Controller.UpdateDrag], [Controller.EndDrag]:
//     the pointer owns position, release leaves momentum
//   - [Controller.Nudge]: key impulse, coast under friction
//
// Only [Controller.Step] runs the seek/friction integration, once per
// frame. The owner of the frame loop (a bubbletea program, a raylib window,
// a replay script) drives Step; the controller never schedules itself.
//
// # Thread Safety
//
// A Controller is NOT thread-safe. Input handlers and Step must run on the
// same goroutine.
package helm
