package tick

import (
	"sync"
	"time"
)

const defaultInterval = time.Second

// Source wakes a handler at a fixed cadence while it is started. A stopped
// source holds no ticker and no goroutine.
type Source struct {
	clock    Clock
	interval time.Duration
	handler  func(now time.Time)

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewSource returns a stopped source. A nil clock uses SystemClock and a
// non-positive interval uses one second.
func NewSource(clock Clock, interval time.Duration, handler func(now time.Time)) *Source {
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Source{clock: clock, interval: interval, handler: handler}
}

// Interval returns the cadence.
func (s *Source) Interval() time.Duration {
	return s.interval
}

// Active reports whether the source is started.
func (s *Source) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCh != nil
}

// Start begins ticking. Starting an active source does nothing.
func (s *Source) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	ticker := s.clock.NewTicker(s.interval)
	go s.run(ticker, stopCh)
}

// Stop halts ticking. It does not wait for an in-flight handler call, so it
// is safe to call from inside the handler.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
}

func (s *Source) run(ticker Ticker, stopCh chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			select {
			case <-stopCh:
				return
			default:
			}
			// Wall time, not the ticker's timestamp, so a wake-up after
			// suspension reports the real instant.
			s.handler(s.clock.Now())
		}
	}
}
