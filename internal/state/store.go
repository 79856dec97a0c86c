package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/snap"
)

// Snapshot is what the renderer needs to draw one frame.
type Snapshot struct {
	Countdown countdown.Countdown

	// Baseline is the countdown still running underneath a drag.
	Baseline    countdown.Countdown
	HasBaseline bool

	Preview    snap.Target
	HasPreview bool

	// LastWarning holds the most recent non-fatal collaborator failure, such
	// as a notification that could not be scheduled.
	LastWarning error
	WarnedAt    time.Time

	LastFired   time.Time
	LastUpdated time.Time
}

// Live returns the countdown to display: the authoritative one when it is
// running, otherwise the baseline under a drag.
func (s Snapshot) Live() (countdown.Countdown, bool) {
	if s.Countdown.Phase == countdown.PhaseRunning {
		return s.Countdown, true
	}
	if s.HasBaseline {
		return s.Baseline, true
	}
	return countdown.Countdown{}, false
}

// Store coordinates concurrent access to the latest snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the countdown portion of the snapshot. Warning and fired
// fields are kept.
func (s *Store) Publish(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next.LastWarning = s.snapshot.LastWarning
	next.WarnedAt = s.snapshot.WarnedAt
	next.LastFired = s.snapshot.LastFired
	next.LastUpdated = time.Now()
	s.snapshot = next
}

// Warn records a non-fatal failure. A nil error clears the warning.
func (s *Store) Warn(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastWarning = err
	if err != nil {
		s.snapshot.WarnedAt = time.Now()
	} else {
		s.snapshot.WarnedAt = time.Time{}
	}
}

// MarkFired records that the countdown alert went off.
func (s *Store) MarkFired(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastFired = at
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snapshot
	if s.snapshot.LastWarning != nil {
		out.LastWarning = fmt.Errorf("%w", s.snapshot.LastWarning)
	}
	return out
}
