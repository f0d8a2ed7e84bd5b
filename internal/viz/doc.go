// Package viz is the terminal viewer: a bubbletea program that draws the
// ocean track with lipgloss and feeds mouse and key events to a helm
// controller.
//
// # Key Bindings
//
//	←/→ a/d     - Nudge the boat
//	Enter Space - Drop anchor at a nearby island
//	1-9         - Sail to an island
//	Esc         - Close the island dialog
//	q           - Quit
//
// Clicking the sea sails to that spot; pressing on the boat and dragging
// moves it by hand, and it keeps drifting on release.
package viz
