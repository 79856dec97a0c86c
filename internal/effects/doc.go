// Package effects turns countdown transitions into requests for the two
// external displays and delivers them.
//
// # Planning
//
// Plan is a pure function from countdown.Transition to an ordered request
// list:
//
//	commit (running)          [CancelNotification, EndActivity]? ScheduleNotification CreateActivity
//	commit (zero length)      [CancelNotification] EndActivity
//	tick                      UpdateActivity
//	expire                    EndActivity            (the alert fires by itself)
//	cancel of a live countdown CancelNotification EndActivity
//	cancel of a bare drag      nothing
//
// # Delivery
//
// Dispatcher owns one goroutine that drains a FIFO queue, so the requests of
// one transition always reach the collaborators before those of the next.
// Callers never wait for collaborator I/O. Consecutive queued activity
// updates collapse to the newest one.
//
// The dispatcher also owns the ActivityHandle (NoActivity or
// ActiveActivity). Update and End against NoActivity are no-ops, which makes
// a duplicate EndActivity harmless.
//
// # Failures
//
// Nothing is retried. Activity failures are logged. A failed
// ScheduleNotification is logged and passed to Options.OnWarning; the
// countdown keeps running without its alert.
package effects
