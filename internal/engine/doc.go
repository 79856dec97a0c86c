// Package engine serializes countdown transitions.
//
// Every entry point (drag, commit, cancel, tick) takes the engine mutex, runs
// one transition on the countdown.Machine, hands it to the Sink for side
// effects, collapses an expired countdown back to idle, starts or stops the
// tick source to match liveness, and publishes a state.Snapshot. The Sink
// only enqueues; collaborator I/O never runs under the lock.
//
// Close cancels a live countdown so no alert or activity display outlives
// the process.
package engine
