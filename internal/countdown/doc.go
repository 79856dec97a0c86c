// Package countdown holds the single countdown and its state machine.
//
// # Phases
//
//	Idle ──BeginDrag──> Dragging ──Commit──> Armed ──> Running ──Tick──> Expired ──Collapse──> Idle
//	                       │                              │
//	                       └──AbortDrag / Cancel──> Idle  └──BeginDrag──> Dragging (baseline kept)
//
// Armed is only visible inside Commit. Expired lasts until the caller has
// dispatched end-of-life effects and calls CollapseExpired.
//
// # Baseline
//
// Dragging over a running countdown does not cancel it. The running
// countdown is kept as a baseline: it keeps ticking, its activity keeps
// updating, and AbortDrag puts it back untouched. Commit replaces it and
// Cancel tears it down.
//
// # Transitions
//
// Every mutating method returns a Transition. Transition.Kind is KindNone
// when the call did not apply to the current phase; wrong-phase calls are
// no-ops, never errors, because the UI can race with expiry.
//
// Machine is not synchronized. engine.Engine serializes all calls.
package countdown
