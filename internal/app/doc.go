// Package app is the composition root for gtimer.
//
// Run loads the config and prefs, points the standard logger at the log
// file, and wires the pieces together:
//
//	notify.Local ──┐
//	               ├─> effects.Dispatcher <── engine.Engine ──> state.Store
//	activity file ─┘                              ▲                 │
//	                                              │                 ▼
//	                                         ui (gestures) <── ui (render)
//
// Alerts fired by the notifier are relayed to the running program. On exit
// the engine cancels any live countdown before the dispatcher drains, so no
// alert or activity file outlives the process.
//
// PrintStatus and WatchStatus back the status subcommand. They only read
// the activity file and never talk to a running gtimer.
package app
