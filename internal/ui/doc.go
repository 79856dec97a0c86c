// Package ui renders the gtimer timeline with Bubble Tea.
//
// The screen is a header (clock, phase badge, remaining time, progress bar),
// a vertical timeline with a tick every ten minutes and a clock label on each
// hour, an optional log pane, and a help footer.
//
// The model never owns countdown state. Gestures go to a Controller (the
// engine) and the model redraws from state.Store snapshots it fetches on its
// refresh tick. The only local state is the gesture itself: where the ring
// is while dragging and where it rests after a commit.
//
// # Gestures
//
//   - Mouse: press on the scale to pick up the ring, move to preview,
//     release on the scale to start. Releasing off the scale cancels.
//   - Keys: j/k move one row, J/K one step, pgdown/pgup half a page. enter
//     starts, esc abandons the drag, x cancels the countdown.
//
// Theme and log pane visibility are saved to the prefs file when changed.
package ui
