package countdown

import (
	"time"

	"github.com/five82/gtimer/internal/snap"
)

// baseline is a running countdown kept alive underneath a drag. It stays
// authoritative for the external displays until the drag commits or cancels.
type baseline struct {
	active    bool
	target    time.Time
	remaining time.Duration
}

// Machine owns the single countdown and its transition rules. It is not
// safe for concurrent use; callers serialize access (see engine.Engine).
type Machine struct {
	cfg        snap.Config
	cd         Countdown
	base       baseline
	preview    snap.Target
	hasPreview bool
}

// New returns a machine in the idle phase.
func New(cfg snap.Config) *Machine {
	return &Machine{cfg: cfg.Validate()}
}

// Config returns the snapping configuration.
func (m *Machine) Config() snap.Config {
	return m.cfg
}

// Countdown returns a copy of the authoritative state.
func (m *Machine) Countdown() Countdown {
	return m.cd
}

// Baseline returns the countdown retained during a drag, if any. The
// returned value reports PhaseRunning.
func (m *Machine) Baseline() (Countdown, bool) {
	if !m.base.active {
		return Countdown{}, false
	}
	return Countdown{Phase: PhaseRunning, Target: m.base.target, Remaining: m.base.remaining}, true
}

// Preview returns the latest snapped drag position.
func (m *Machine) Preview() (snap.Target, bool) {
	return m.preview, m.hasPreview
}

// Live reports whether some countdown is ticking, either the authoritative
// one or a baseline under a drag.
func (m *Machine) Live() bool {
	return m.cd.Phase == PhaseRunning || m.base.active
}

// BeginDrag moves Idle or Running into Dragging. A running countdown is kept
// as the baseline; nothing is cancelled yet.
func (m *Machine) BeginDrag() Transition {
	from := m.cd.Phase
	switch from {
	case PhaseIdle:
	case PhaseRunning:
		m.base = baseline{active: true, target: m.cd.Target, remaining: m.cd.Remaining}
	default:
		return Transition{}
	}
	m.cd = Countdown{Phase: PhaseDragging}
	m.hasPreview = false
	return Transition{Kind: KindBeginDrag, From: from, To: PhaseDragging}
}

// UpdateDrag recomputes the preview. It never touches the countdown.
func (m *Machine) UpdateDrag(offsetPixels float64, now time.Time) (snap.Target, bool) {
	if m.cd.Phase != PhaseDragging {
		return snap.Target{}, false
	}
	m.preview = snap.Snap(offsetPixels, now, m.cfg)
	m.hasPreview = true
	return m.preview, true
}

// AbortDrag leaves Dragging without committing. A retained baseline becomes
// the running countdown again, untouched.
func (m *Machine) AbortDrag() Transition {
	if m.cd.Phase != PhaseDragging {
		return Transition{}
	}
	m.hasPreview = false
	if m.base.active {
		m.cd = Countdown{Phase: PhaseRunning, Target: m.base.target, Remaining: m.base.remaining}
		m.base = baseline{}
		return Transition{
			Kind:      KindAbortDrag,
			From:      PhaseDragging,
			To:        PhaseRunning,
			Target:    m.cd.Target,
			Remaining: m.cd.Remaining,
		}
	}
	m.cd = Countdown{}
	return Transition{Kind: KindAbortDrag, From: PhaseDragging, To: PhaseIdle}
}

// Commit turns the drag into the authoritative countdown. A non-positive
// remaining duration goes straight to Expired.
func (m *Machine) Commit(target snap.Target, now time.Time) Transition {
	if m.cd.Phase != PhaseDragging {
		return Transition{}
	}
	replaced := m.base.active
	m.base = baseline{}
	m.hasPreview = false

	m.cd = Countdown{Phase: PhaseArmed, Target: target.Instant}
	remaining := target.Instant.Sub(now)
	if remaining <= 0 {
		m.cd = Countdown{Phase: PhaseExpired}
		return Transition{
			Kind:     KindCommit,
			From:     PhaseDragging,
			To:       PhaseExpired,
			Target:   target.Instant,
			Replaced: replaced,
		}
	}

	m.cd.Phase = PhaseRunning
	m.cd.Remaining = remaining
	return Transition{
		Kind:      KindCommit,
		From:      PhaseDragging,
		To:        PhaseRunning,
		Target:    target.Instant,
		Remaining: remaining,
		Replaced:  replaced,
	}
}

// Tick recomputes remaining from target-now. Remaining never grows, so a
// clock that steps backwards cannot extend the countdown.
func (m *Machine) Tick(now time.Time) Transition {
	switch {
	case m.cd.Phase == PhaseRunning:
		target := m.cd.Target
		remaining := advance(target, m.cd.Remaining, now)
		if remaining <= 0 {
			m.cd = Countdown{Phase: PhaseExpired}
			return Transition{Kind: KindExpire, From: PhaseRunning, To: PhaseExpired, Target: target}
		}
		m.cd.Remaining = remaining
		return Transition{Kind: KindTick, From: PhaseRunning, To: PhaseRunning, Target: target, Remaining: remaining}

	case m.cd.Phase == PhaseDragging && m.base.active:
		target := m.base.target
		remaining := advance(target, m.base.remaining, now)
		if remaining <= 0 {
			m.base = baseline{}
			return Transition{Kind: KindExpire, From: PhaseDragging, To: PhaseDragging, Target: target, Baseline: true}
		}
		m.base.remaining = remaining
		return Transition{Kind: KindTick, From: PhaseDragging, To: PhaseDragging, Target: target, Remaining: remaining, Baseline: true}
	}
	return Transition{}
}

// Cancel returns to Idle from any phase.
func (m *Machine) Cancel() Transition {
	from := m.cd.Phase
	if from == PhaseIdle && !m.base.active {
		return Transition{}
	}
	hadLive := m.base.active || from == PhaseArmed || from == PhaseRunning
	target := m.cd.Target
	if m.base.active {
		target = m.base.target
	}

	m.cd = Countdown{}
	m.base = baseline{}
	m.hasPreview = false
	return Transition{Kind: KindCancel, From: from, To: PhaseIdle, Target: target, HadLive: hadLive}
}

// CollapseExpired returns Expired to Idle. It reports whether it did.
func (m *Machine) CollapseExpired() bool {
	if m.cd.Phase != PhaseExpired {
		return false
	}
	m.cd = Countdown{}
	return true
}

func advance(target time.Time, previous time.Duration, now time.Time) time.Duration {
	remaining := target.Sub(now)
	if remaining > previous {
		remaining = previous
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}
