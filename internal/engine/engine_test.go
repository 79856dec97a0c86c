package engine

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/effects"
	"github.com/five82/gtimer/internal/snap"
	"github.com/five82/gtimer/internal/state"
	"github.com/five82/gtimer/internal/tick"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// NewTicker returns a ticker that never fires; tests drive Tick directly.
func (c *fakeClock) NewTicker(time.Duration) tick.Ticker {
	return idleTicker{ch: make(chan time.Time)}
}

type idleTicker struct{ ch chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.ch }
func (t idleTicker) Stop()               {}

type recorder struct {
	mu     sync.Mutex
	calls  []string
	nextID int
}

func (r *recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Take returns the calls recorded so far and resets the log.
func (r *recorder) Take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.calls
	r.calls = nil
	return out
}

func (r *recorder) Schedule(_ context.Context, _ string, after time.Duration) error {
	r.record("schedule %s", after)
	return nil
}

func (r *recorder) Cancel(context.Context, string) error {
	r.record("cancel")
	return nil
}

func (r *recorder) Create(_ context.Context, content effects.ContentState) (string, error) {
	r.mu.Lock()
	r.nextID++
	id := fmt.Sprintf("act-%d", r.nextID)
	r.mu.Unlock()
	r.record("create %s %d", id, content.RemainingSeconds)
	return id, nil
}

func (r *recorder) Update(_ context.Context, id string, content effects.ContentState) error {
	r.record("update %s %d", id, content.RemainingSeconds)
	return nil
}

func (r *recorder) End(_ context.Context, id string) error {
	r.record("end %s", id)
	return nil
}

type harness struct {
	engine *Engine
	clock  *fakeClock
	rec    *recorder
	disp   *effects.Dispatcher
	cfg    snap.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rec := &recorder{}
	clock := &fakeClock{now: t0}
	disp := effects.New(effects.Options{Notifier: rec, Activities: rec, ActivitiesEnabled: true})
	cfg := snap.DefaultConfig()
	e := New(Options{Snap: cfg, Clock: clock, Sink: disp, Store: &state.Store{}})
	t.Cleanup(func() {
		e.Close()
		disp.Close()
	})
	return &harness{engine: e, clock: clock, rec: rec, disp: disp, cfg: cfg}
}

// calls flushes the dispatcher and returns what reached the collaborators.
func (h *harness) calls() []string {
	h.disp.Flush()
	return h.rec.Take()
}

func (h *harness) start(t *testing.T, minutes int) {
	t.Helper()
	h.engine.BeginDrag()
	target, ok := h.engine.UpdateDrag(snap.OffsetFor(minutes, h.cfg))
	if !ok || target.Minutes != minutes {
		t.Fatalf("UpdateDrag preview = %+v/%v, want %d min", target, ok, minutes)
	}
	h.engine.Commit()
}

func assertCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
}

func TestEngine_CommitFromIdleStartsCountdown(t *testing.T) {
	h := newHarness(t)

	h.start(t, 5)

	cd := h.engine.Countdown()
	if cd.Phase != countdown.PhaseRunning || cd.Remaining != 5*time.Minute {
		t.Fatalf("countdown = %+v, want running 5m", cd)
	}
	if !cd.Target.Equal(t0.Add(5 * time.Minute)) {
		t.Fatalf("target = %v, want %v", cd.Target, t0.Add(5*time.Minute))
	}
	if !h.engine.Ticking() {
		t.Fatal("tick source should run while a countdown is live")
	}
	assertCalls(t, h.calls(), "schedule 5m0s", "create act-1 300")

	h.engine.Tick(t0.Add(time.Second))
	assertCalls(t, h.calls(), "update act-1 299")

	snapshot := h.engine.Store().Snapshot()
	if snapshot.Countdown.Remaining != 299*time.Second {
		t.Fatalf("published remaining = %v, want 4m59s", snapshot.Countdown.Remaining)
	}
}

func TestEngine_RedragReplacesRunningCountdown(t *testing.T) {
	h := newHarness(t)
	h.start(t, 5)
	h.calls()

	h.clock.Set(t0.Add(200 * time.Second))
	h.engine.Tick(t0.Add(200 * time.Second))
	assertCalls(t, h.calls(), "update act-1 100")

	h.engine.BeginDrag()
	snapshot := h.engine.Store().Snapshot()
	if !snapshot.HasBaseline || snapshot.Baseline.Remaining != 100*time.Second {
		t.Fatalf("baseline during drag = %+v/%v, want 100s", snapshot.Baseline, snapshot.HasBaseline)
	}
	assertCalls(t, h.calls())

	h.engine.UpdateDrag(snap.OffsetFor(10, h.cfg))
	h.engine.Commit()

	assertCalls(t, h.calls(), "cancel", "end act-1", "schedule 10m0s", "create act-2 600")
	if got := h.disp.Handle(); got != (effects.ActiveActivity{ID: "act-2"}) {
		t.Fatalf("handle = %#v, want act-2", got)
	}
}

func TestEngine_ExpiryEndsActivityAndStopsTicking(t *testing.T) {
	h := newHarness(t)
	h.start(t, 1)
	h.calls()

	h.engine.Tick(t0.Add(61 * time.Second))

	assertCalls(t, h.calls(), "end act-1")
	if cd := h.engine.Countdown(); cd.Phase != countdown.PhaseIdle {
		t.Fatalf("phase after expiry = %v, want idle", cd.Phase)
	}
	if h.engine.Ticking() {
		t.Fatal("tick source should stop once nothing is live")
	}
	if _, ok := h.disp.Handle().(effects.NoActivity); !ok {
		t.Fatalf("handle after expiry = %#v, want NoActivity", h.disp.Handle())
	}
}

func TestEngine_AbortDragLeavesCountdownUntouched(t *testing.T) {
	h := newHarness(t)
	h.start(t, 5)
	h.calls()

	h.engine.BeginDrag()
	h.engine.UpdateDrag(snap.OffsetFor(30, h.cfg))
	h.engine.AbortDrag()

	assertCalls(t, h.calls())
	cd := h.engine.Countdown()
	if cd.Phase != countdown.PhaseRunning || !cd.Target.Equal(t0.Add(5*time.Minute)) {
		t.Fatalf("countdown after abort = %+v, want original 5m countdown", cd)
	}
	if !h.engine.Ticking() {
		t.Fatal("tick source should keep running after abort")
	}
}

func TestEngine_BaselineKeepsTickingDuringDrag(t *testing.T) {
	h := newHarness(t)
	h.start(t, 1)
	h.calls()

	h.engine.BeginDrag()
	h.engine.Tick(t0.Add(10 * time.Second))
	assertCalls(t, h.calls(), "update act-1 50")

	h.engine.Tick(t0.Add(2 * time.Minute))
	assertCalls(t, h.calls(), "end act-1")
	if cd := h.engine.Countdown(); cd.Phase != countdown.PhaseDragging {
		t.Fatalf("phase = %v, want dragging", cd.Phase)
	}
	if h.engine.Ticking() {
		t.Fatal("tick source should stop after the baseline expires")
	}
}

func TestEngine_CommitAtZeroSchedulesNothing(t *testing.T) {
	h := newHarness(t)

	h.engine.BeginDrag()
	h.engine.Commit()

	assertCalls(t, h.calls())
	if cd := h.engine.Countdown(); cd.Phase != countdown.PhaseIdle {
		t.Fatalf("phase = %v, want idle", cd.Phase)
	}
	if h.engine.Ticking() {
		t.Fatal("tick source should not start for an expired commit")
	}
}

func TestEngine_CancelWithoutCountdownIsSilent(t *testing.T) {
	h := newHarness(t)

	h.engine.Cancel()
	h.engine.Tick(t0.Add(time.Second))
	h.engine.Commit()

	assertCalls(t, h.calls())
}

func TestEngine_CancelTearsDown(t *testing.T) {
	h := newHarness(t)
	h.start(t, 5)
	h.calls()

	h.engine.Cancel()

	assertCalls(t, h.calls(), "cancel", "end act-1")
	if h.engine.Ticking() {
		t.Fatal("tick source should stop after cancel")
	}
}

func TestEngine_CloseCancelsLiveCountdown(t *testing.T) {
	h := newHarness(t)
	h.start(t, 5)
	h.calls()

	h.engine.Close()
	assertCalls(t, h.calls(), "cancel", "end act-1")

	h.engine.BeginDrag()
	h.engine.Commit()
	assertCalls(t, h.calls())
}

func TestEngine_UpdateDragPublishesPreview(t *testing.T) {
	h := newHarness(t)

	if _, ok := h.engine.UpdateDrag(10); ok {
		t.Fatal("UpdateDrag outside a drag should report false")
	}

	h.engine.BeginDrag()
	h.engine.UpdateDrag(snap.OffsetFor(45, h.cfg))

	snapshot := h.engine.Store().Snapshot()
	if !snapshot.HasPreview || snapshot.Preview.Minutes != 45 {
		t.Fatalf("preview = %+v/%v, want 45 min", snapshot.Preview, snapshot.HasPreview)
	}
	if !snapshot.Preview.Instant.Equal(t0.Add(45 * time.Minute)) {
		t.Fatalf("preview instant = %v", snapshot.Preview.Instant)
	}
}

func TestEngine_ConcurrentDragAndTick(t *testing.T) {
	rec := &recorder{}
	disp := effects.New(effects.Options{Notifier: rec, Activities: rec, ActivitiesEnabled: true})
	defer disp.Close()
	cfg := snap.DefaultConfig()
	e := New(Options{Snap: cfg, Clock: tick.SystemClock{}, TickInterval: time.Millisecond, Sink: disp, Store: &state.Store{}})

	const (
		workers    = 4
		iterations = 50
	)
	var wg sync.WaitGroup
	errs := make(chan string, workers*iterations+1)
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				e.BeginDrag()
				e.UpdateDrag(snap.OffsetFor((w+i)%5+1, cfg))
				switch (w + i) % 3 {
				case 0:
					if c := e.Commit(); c.Remaining < 0 {
						errs <- fmt.Sprintf("commit remaining = %s", c.Remaining)
					}
				case 1:
					e.Commit()
					e.Cancel()
				default:
					e.AbortDrag()
				}
				if c := e.Countdown(); c.Remaining < 0 {
					errs <- fmt.Sprintf("countdown remaining = %s", c.Remaining)
				}
			}
		}()
	}

	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if snapshot := e.Store().Snapshot(); snapshot.Countdown.Remaining < 0 {
				errs <- fmt.Sprintf("published remaining = %s", snapshot.Countdown.Remaining)
				return
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()

	time.Sleep(5 * time.Millisecond)
	e.Close()
	close(done)
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}

	if e.Ticking() {
		t.Fatalf("Ticking after Close")
	}
	disp.Flush()

	var open string
	creates := 0
	for _, call := range rec.Take() {
		var id string
		switch {
		case strings.HasPrefix(call, "create "):
			creates++
			id = strings.Fields(call)[1]
			if open != "" {
				t.Fatalf("%s while %s is still open", call, open)
			}
			open = id
		case strings.HasPrefix(call, "end "):
			id = strings.Fields(call)[1]
			if id != open {
				t.Fatalf("%s does not end the open activity %q", call, open)
			}
			open = ""
		}
	}
	if creates == 0 {
		t.Fatalf("no activity was created")
	}
	if open != "" {
		t.Fatalf("activity %s left open after Close", open)
	}
}
