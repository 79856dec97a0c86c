package engine

import (
	"log"
	"sync"
	"time"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/effects"
	"github.com/five82/gtimer/internal/snap"
	"github.com/five82/gtimer/internal/state"
	"github.com/five82/gtimer/internal/tick"
)

// Sink receives every state transition and turns it into side effects.
// *effects.Dispatcher satisfies it.
type Sink interface {
	Dispatch(tr countdown.Transition) []effects.Request
}

// Options configure an Engine.
type Options struct {
	Snap         snap.Config
	Clock        tick.Clock
	TickInterval time.Duration
	Sink         Sink
	Store        *state.Store
}

// Engine is the single serialization point for countdown transitions.
type Engine struct {
	clock tick.Clock
	sink  Sink
	store *state.Store

	mu      sync.Mutex
	machine *countdown.Machine
	source  *tick.Source
	closed  bool
}

// New builds an idle engine. The tick source is created stopped and runs
// only while a countdown is live.
func New(opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = tick.SystemClock{}
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	e := &Engine{
		clock:   clock,
		sink:    opts.Sink,
		store:   store,
		machine: countdown.New(opts.Snap),
	}
	e.source = tick.NewSource(clock, opts.TickInterval, e.Tick)

	e.mu.Lock()
	e.publishLocked()
	e.mu.Unlock()
	return e
}

// Store returns the snapshot store the engine publishes to.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Config returns the snapping configuration in effect.
func (e *Engine) Config() snap.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Config()
}

// Countdown returns the authoritative countdown.
func (e *Engine) Countdown() countdown.Countdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Countdown()
}

// Ticking reports whether the tick source is running.
func (e *Engine) Ticking() bool {
	return e.source.Active()
}

// BeginDrag starts a drag gesture.
func (e *Engine) BeginDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.applyLocked(e.machine.BeginDrag())
}

// UpdateDrag snaps the drag offset against the current time and returns the
// preview. It reports false when no drag is in progress.
func (e *Engine) UpdateDrag(offsetPixels float64) (snap.Target, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return snap.Target{}, false
	}
	target, ok := e.machine.UpdateDrag(offsetPixels, e.clock.Now())
	if ok {
		e.publishLocked()
	}
	return target, ok
}

// Commit starts the countdown at the last previewed target. A drag that
// never moved commits the zero offset.
func (e *Engine) Commit() countdown.Countdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return e.machine.Countdown()
	}
	now := e.clock.Now()
	target, ok := e.machine.Preview()
	if !ok {
		target = snap.Snap(0, now, e.machine.Config())
	}
	tr := e.machine.Commit(target, now)
	if tr.Changed() {
		log.Printf("engine: commit %d min, target %s", target.Minutes, target.Instant.Format(time.Kitchen))
	}
	e.applyLocked(tr)
	return e.machine.Countdown()
}

// AbortDrag ends a drag without committing.
func (e *Engine) AbortDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.applyLocked(e.machine.AbortDrag())
}

// Cancel tears down whatever countdown exists.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.applyLocked(e.machine.Cancel())
}

// Tick advances the countdown to now. The tick source calls it; tests call
// it directly.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.applyLocked(e.machine.Tick(now))
}

// Close cancels any live countdown and stops ticking. Later calls do nothing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	tr := e.machine.Cancel()
	if tr.HadLive {
		log.Printf("engine: cancelling live countdown on shutdown")
	}
	e.applyLocked(tr)
	e.closed = true
	e.source.Stop()
}

func (e *Engine) applyLocked(tr countdown.Transition) {
	if !tr.Changed() {
		return
	}
	if tr.Kind != countdown.KindTick && tr.Kind != countdown.KindCommit {
		log.Printf("engine: %s %s -> %s", tr.Kind, tr.From, tr.To)
	}
	if e.sink != nil {
		e.sink.Dispatch(tr)
	}
	e.machine.CollapseExpired()
	e.syncSourceLocked()
	e.publishLocked()
}

func (e *Engine) syncSourceLocked() {
	if e.machine.Live() {
		e.source.Start()
		return
	}
	e.source.Stop()
}

func (e *Engine) publishLocked() {
	next := state.Snapshot{Countdown: e.machine.Countdown()}
	next.Baseline, next.HasBaseline = e.machine.Baseline()
	next.Preview, next.HasPreview = e.machine.Preview()
	e.store.Publish(next)
}
