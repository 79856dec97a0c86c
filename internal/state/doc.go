// Package state shares the latest countdown snapshot between the engine and
// the renderer.
//
// # Producer and consumer
//
//	engine (writer)                    ui (reader)
//	┌──────────────────┐              ┌──────────────────┐
//	│ transition       │              │ refresh tick     │
//	│   ↓              │   RWMutex    │   ↓              │
//	│ store.Publish()  │─────────────→│ store.Snapshot() │
//	│ store.Warn()     │              │   ↓              │
//	└──────────────────┘              │ render           │
//	                                  └──────────────────┘
//
// The renderer does not own a clock for countdown state: it redraws from
// whatever the last Publish left behind. The engine publishes after every
// transition, including each tick.
//
// # Update semantics
//
// Publish replaces the countdown, baseline and preview fields. Warnings and
// the last-fired instant are written by separate calls (Warn, MarkFired)
// because they come from collaborator goroutines rather than transitions,
// and Publish preserves them.
//
// Snapshot returns a copy; the error is re-wrapped so callers never share
// the stored instance.
//
// The zero Store is ready to use.
package state
