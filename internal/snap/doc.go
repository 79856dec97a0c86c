// Package snap maps a continuous drag displacement onto a discrete target time.
//
// # Algorithm
//
//	raw     = max(0, floor(offset / pixelsPerMinute))
//	snapped = clamp(round(raw / step) * step, min, max)
//	instant = now + snapped minutes
//
// Rounding uses math.Round (half away from zero). Offsets at or below zero
// always snap to MinMinutes, so a release at the top of the timeline yields
// a zero-length countdown that expires immediately.
//
// # Determinism
//
// Snap feeds the drag preview on every pointer event. It has no hidden
// inputs: the same offset, instant and Config give the same Target, so the
// preview cannot flicker between two values for one pointer position.
//
// # Configuration
//
// Config.Validate replaces non-positive pixel densities and steps with the
// defaults (6px per minute, 1 minute). Snap validates internally, so callers
// may pass a zero Config.
package snap
