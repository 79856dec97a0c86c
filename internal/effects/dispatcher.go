package effects

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/five82/gtimer/internal/countdown"
)

// NotificationID is the single identifier reused for every countdown alert.
const NotificationID = "gtimer-countdown"

const defaultCallTimeout = 5 * time.Second

// Notifier schedules the one-shot countdown alert.
type Notifier interface {
	Schedule(ctx context.Context, id string, after time.Duration) error
	Cancel(ctx context.Context, id string) error
}

// ActivityService manages the persistent activity display.
type ActivityService interface {
	Create(ctx context.Context, content ContentState) (string, error)
	Update(ctx context.Context, id string, content ContentState) error
	End(ctx context.Context, id string) error
}

// Options configure a Dispatcher.
type Options struct {
	Notifier   Notifier
	Activities ActivityService
	// ActivitiesEnabled is the live-activity capability flag. When false,
	// activity requests are accepted and dropped.
	ActivitiesEnabled bool
	// OnWarning receives non-fatal notification failures. It is called from
	// the delivery goroutine.
	OnWarning   func(error)
	CallTimeout time.Duration
}

type envelope struct {
	req   Request
	flush chan struct{}
}

// Dispatcher delivers requests to the collaborators on a single goroutine,
// in the order they were enqueued. Enqueueing never waits for delivery.
type Dispatcher struct {
	opts Options

	mu     sync.Mutex
	queue  []envelope
	closed bool
	handle ActivityHandle

	wake chan struct{}
	done chan struct{}
}

// New starts a dispatcher. Call Close to stop it.
func New(opts Options) *Dispatcher {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	d := &Dispatcher{
		opts:   opts,
		handle: NoActivity{},
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch plans the transition's requests, queues them and returns them.
func (d *Dispatcher) Dispatch(tr countdown.Transition) []Request {
	reqs := Plan(tr)
	d.Enqueue(reqs...)
	return reqs
}

// Enqueue queues requests for delivery. Requests enqueued after Close are
// dropped.
func (d *Dispatcher) Enqueue(reqs ...Request) {
	if len(reqs) == 0 {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	for _, req := range reqs {
		d.queue = append(d.queue, envelope{req: req})
	}
	d.mu.Unlock()
	d.signal()
}

// Flush blocks until everything queued before the call has been delivered.
func (d *Dispatcher) Flush() {
	marker := make(chan struct{})
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.queue = append(d.queue, envelope{flush: marker})
	d.mu.Unlock()
	d.signal()
	<-marker
}

// Close delivers what is queued, then stops the worker. It is idempotent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.signal()
	<-d.done
}

// Handle returns the current activity handle.
func (d *Dispatcher) Handle() ActivityHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle
}

func (d *Dispatcher) setHandle(h ActivityHandle) {
	d.mu.Lock()
	d.handle = h
	d.mu.Unlock()
}

func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		closed := d.closed
		d.mu.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}
			<-d.wake
			continue
		}

		for _, env := range coalesce(batch) {
			if env.flush != nil {
				close(env.flush)
				continue
			}
			d.deliver(env.req)
		}
	}
}

// coalesce drops activity updates that a later update in the same run
// already supersedes.
func coalesce(batch []envelope) []envelope {
	out := batch[:0:0]
	for i, env := range batch {
		if _, ok := env.req.(UpdateActivity); ok && i+1 < len(batch) {
			if _, next := batch[i+1].req.(UpdateActivity); next {
				continue
			}
		}
		out = append(out, env)
	}
	return out
}

func (d *Dispatcher) deliver(req Request) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opts.CallTimeout)
	defer cancel()

	switch r := req.(type) {
	case ScheduleNotification:
		if d.opts.Notifier == nil {
			return
		}
		if err := d.opts.Notifier.Schedule(ctx, NotificationID, r.After); err != nil {
			log.Printf("dispatch: warn: schedule notification: %v", err)
			if d.opts.OnWarning != nil {
				d.opts.OnWarning(fmt.Errorf("schedule notification: %w", err))
			}
		}

	case CancelNotification:
		if d.opts.Notifier == nil {
			return
		}
		if err := d.opts.Notifier.Cancel(ctx, NotificationID); err != nil {
			log.Printf("dispatch: warn: cancel notification: %v", err)
		}

	case CreateActivity:
		if !d.activitiesOn() {
			return
		}
		if active, ok := d.Handle().(ActiveActivity); ok {
			d.endActivity(ctx, active)
		}
		id, err := d.opts.Activities.Create(ctx, r.Content)
		if err != nil {
			log.Printf("dispatch: warn: create activity: %v", err)
			d.setHandle(NoActivity{})
			return
		}
		d.setHandle(ActiveActivity{ID: id})

	case UpdateActivity:
		if !d.activitiesOn() {
			return
		}
		active, ok := d.Handle().(ActiveActivity)
		if !ok {
			return
		}
		if err := d.opts.Activities.Update(ctx, active.ID, r.Content); err != nil {
			log.Printf("dispatch: warn: update activity %s: %v", active.ID, err)
		}

	case EndActivity:
		if !d.activitiesOn() {
			return
		}
		if active, ok := d.Handle().(ActiveActivity); ok {
			d.endActivity(ctx, active)
		}
	}
}

func (d *Dispatcher) endActivity(ctx context.Context, active ActiveActivity) {
	if err := d.opts.Activities.End(ctx, active.ID); err != nil {
		log.Printf("dispatch: warn: end activity %s: %v", active.ID, err)
	}
	d.setHandle(NoActivity{})
}

func (d *Dispatcher) activitiesOn() bool {
	return d.opts.ActivitiesEnabled && d.opts.Activities != nil
}
