package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Alert is delivered when a scheduled notification comes due.
type Alert struct {
	ID      string
	Title   string
	Body    string
	FiredAt time.Time
}

// Timer is the part of *time.Timer the notifier needs.
type Timer interface {
	Stop() bool
}

// Player makes the audible part of an alert.
type Player interface {
	Play() error
}

// Options configure a Local notifier.
type Options struct {
	Title string
	Body  string

	// OnFire is called from the timer goroutine for every alert.
	OnFire func(Alert)
	// Sound is optional; nil means silent alerts.
	Sound Player

	// AfterFunc defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
	Now       func() time.Time
}

type pending struct {
	timer Timer
	due   time.Time
}

// Local schedules alerts inside the process. Scheduling an id that is already
// pending replaces it.
type Local struct {
	opts Options

	mu      sync.Mutex
	pending map[string]*pending
	closed  bool
}

// NewLocal returns a notifier with nothing scheduled.
func NewLocal(opts Options) *Local {
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Local{opts: opts, pending: make(map[string]*pending)}
}

// Schedule arms id to fire after the delay.
func (l *Local) Schedule(ctx context.Context, id string, after time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if after <= 0 {
		return fmt.Errorf("schedule %s: non-positive delay %s", id, after)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("schedule %s: notifier closed", id)
	}
	if prev, ok := l.pending[id]; ok {
		prev.timer.Stop()
	}
	p := &pending{due: l.opts.Now().Add(after)}
	p.timer = l.opts.AfterFunc(after, func() { l.fire(id, p) })
	l.pending[id] = p
	return nil
}

// Cancel disarms id. Cancelling an unknown id is not an error.
func (l *Local) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.pending[id]; ok {
		p.timer.Stop()
		delete(l.pending, id)
	}
	return nil
}

// Due returns when id will fire.
func (l *Local) Due(id string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.pending[id]
	if !ok {
		return time.Time{}, false
	}
	return p.due, true
}

// Close disarms everything. Later schedules fail.
func (l *Local) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, p := range l.pending {
		p.timer.Stop()
		delete(l.pending, id)
	}
	l.closed = true
}

func (l *Local) fire(id string, p *pending) {
	l.mu.Lock()
	// A replaced or cancelled timer can still run if Stop lost the race.
	if l.pending[id] != p {
		l.mu.Unlock()
		return
	}
	delete(l.pending, id)
	l.mu.Unlock()

	alert := Alert{ID: id, Title: l.opts.Title, Body: l.opts.Body, FiredAt: l.opts.Now()}
	log.Printf("notify: %s fired", id)
	if l.opts.OnFire != nil {
		l.opts.OnFire(alert)
	}
	if l.opts.Sound != nil {
		if err := l.opts.Sound.Play(); err != nil {
			log.Printf("notify: warn: play chime: %v", err)
		}
	}
}
