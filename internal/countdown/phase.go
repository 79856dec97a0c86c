package countdown

import "time"

// Phase is the lifecycle stage of the countdown.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseArmed
	PhaseRunning
	PhaseExpired
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseArmed:
		return "armed"
	case PhaseRunning:
		return "running"
	case PhaseExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Countdown is the authoritative countdown state. Target is zero unless the
// phase is Armed or Running; Remaining is zero unless the phase is Running.
type Countdown struct {
	Phase     Phase
	Target    time.Time
	Remaining time.Duration
}

// HasTarget reports whether Target is meaningful.
func (c Countdown) HasTarget() bool {
	return c.Phase == PhaseArmed || c.Phase == PhaseRunning
}

// HasRemaining reports whether Remaining is meaningful.
func (c Countdown) HasRemaining() bool {
	return c.Phase == PhaseRunning
}

// Kind classifies a Transition.
type Kind int

const (
	KindNone Kind = iota
	KindBeginDrag
	KindAbortDrag
	KindCommit
	KindTick
	KindExpire
	KindCancel
)

func (k Kind) String() string {
	switch k {
	case KindBeginDrag:
		return "begin_drag"
	case KindAbortDrag:
		return "abort_drag"
	case KindCommit:
		return "commit"
	case KindTick:
		return "tick"
	case KindExpire:
		return "expire"
	case KindCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Transition describes one state change for the side-effect planner.
type Transition struct {
	Kind Kind
	From Phase
	To   Phase

	// Target and Remaining describe the countdown the transition concerns.
	// For KindExpire Remaining is zero and Target is the instant that passed.
	Target    time.Time
	Remaining time.Duration

	// Replaced is set on KindCommit when a live countdown was superseded.
	Replaced bool
	// HadLive is set on KindCancel when an armed, running or retained
	// countdown was torn down.
	HadLive bool
	// Baseline is set on KindTick and KindExpire when the countdown that
	// ticked is the one retained underneath an in-progress drag.
	Baseline bool
}

// Changed reports whether the transition did anything.
func (t Transition) Changed() bool {
	return t.Kind != KindNone
}
