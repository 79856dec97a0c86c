// Package notify delivers the countdown alert.
//
// Local keeps one timer per notification id in the process. When a timer
// fires, OnFire receives an Alert (the UI shows it as a banner) and the
// optional Player sounds a Chime. Scheduling an id again replaces the pending
// alert, which is how a re-dragged countdown moves its notification.
//
// Chime renders its tone once with beep and opens the speaker lazily, so a
// machine without audio only loses the sound (ErrAudioUnavailable).
package notify
