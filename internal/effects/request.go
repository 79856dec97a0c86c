package effects

import (
	"fmt"
	"time"
)

// Request is one side effect for the notification or activity collaborator.
// The variants are ScheduleNotification, CancelNotification, CreateActivity,
// UpdateActivity and EndActivity.
type Request interface {
	fmt.Stringer
	request()
}

// ContentState is what the activity display shows.
type ContentState struct {
	RemainingSeconds int
	End              time.Time
}

// NewContentState truncates remaining to whole seconds, never below zero.
func NewContentState(remaining time.Duration, end time.Time) ContentState {
	seconds := int(remaining / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return ContentState{RemainingSeconds: seconds, End: end}
}

type ScheduleNotification struct {
	After time.Duration
}

type CancelNotification struct{}

type CreateActivity struct {
	Content ContentState
}

type UpdateActivity struct {
	Content ContentState
}

type EndActivity struct{}

func (ScheduleNotification) request() {}
func (CancelNotification) request()   {}
func (CreateActivity) request()       {}
func (UpdateActivity) request()       {}
func (EndActivity) request()          {}

func (r ScheduleNotification) String() string {
	return fmt.Sprintf("ScheduleNotification(%s)", r.After)
}

func (CancelNotification) String() string { return "CancelNotification" }

func (r CreateActivity) String() string {
	return fmt.Sprintf("CreateActivity(%ds, %s)", r.Content.RemainingSeconds, r.Content.End.Format(time.TimeOnly))
}

func (r UpdateActivity) String() string {
	return fmt.Sprintf("UpdateActivity(%ds, %s)", r.Content.RemainingSeconds, r.Content.End.Format(time.TimeOnly))
}

func (EndActivity) String() string { return "EndActivity" }

// ActivityHandle tracks the live activity display. It is either NoActivity
// or ActiveActivity.
type ActivityHandle interface {
	activityHandle()
}

type NoActivity struct{}

type ActiveActivity struct {
	ID string
}

func (NoActivity) activityHandle()     {}
func (ActiveActivity) activityHandle() {}
