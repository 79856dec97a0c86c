// Package tick provides the periodic wake-up that drives countdown time.
//
// A Source runs only while started. engine.Engine starts it when a countdown
// becomes live and stops it when none is, so an idle timer schedules no
// wake-ups at all.
//
// The handler receives Clock.Now() rather than the ticker timestamp. After a
// suspended process resumes, the first tick therefore carries the real
// instant and the countdown recomputes remaining as target-now instead of
// drifting by a missed second.
package tick
