package effects

import (
	"reflect"
	"testing"
	"time"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/snap"
)

var t0 = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func commit(m *countdown.Machine, d time.Duration, now time.Time) countdown.Transition {
	m.BeginDrag()
	return m.Commit(snap.Target{Instant: now.Add(d)}, now)
}

func TestPlan_CommitSchedulesAndCreates(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	got := Plan(commit(m, 100*time.Second, t0))
	want := []Request{
		ScheduleNotification{After: 100 * time.Second},
		CreateActivity{Content: ContentState{RemainingSeconds: 100, End: t0.Add(100 * time.Second)}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Plan(commit) = %v, want %v", got, want)
	}
}

func TestPlan_TickSequenceEndsOnce(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	all := Plan(commit(m, 5*time.Second, t0))

	var remaining []int
	for i := 1; i <= 5; i++ {
		tr := m.Tick(t0.Add(time.Duration(i) * time.Second))
		remaining = append(remaining, int(tr.Remaining/time.Second))
		reqs := Plan(tr)
		all = append(all, reqs...)
		if i < 5 {
			if len(reqs) != 1 {
				t.Fatalf("tick %d planned %v, want one update", i, reqs)
			}
			if up, ok := reqs[0].(UpdateActivity); !ok || up.Content.RemainingSeconds != 5-i {
				t.Fatalf("tick %d planned %v, want UpdateActivity(%ds)", i, reqs[0], 5-i)
			}
		}
	}
	if !reflect.DeepEqual(remaining, []int{4, 3, 2, 1, 0}) {
		t.Fatalf("remaining sequence = %v, want [4 3 2 1 0]", remaining)
	}
	if m.Countdown().Phase != countdown.PhaseExpired {
		t.Fatalf("phase = %v, want expired", m.Countdown().Phase)
	}

	var ends, schedules, cancels int
	for _, r := range all {
		switch r.(type) {
		case EndActivity:
			ends++
		case ScheduleNotification:
			schedules++
		case CancelNotification:
			cancels++
		}
	}
	if ends != 1 || schedules != 1 || cancels != 0 {
		t.Fatalf("ends=%d schedules=%d cancels=%d, want 1/1/0", ends, schedules, cancels)
	}
}

func TestPlan_ReplacingCountdownCancelsFirst(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	commit(m, 100*time.Second, t0)

	later := t0.Add(10 * time.Second)
	got := Plan(commit(m, 50*time.Second, later))
	want := []Request{
		CancelNotification{},
		EndActivity{},
		ScheduleNotification{After: 50 * time.Second},
		CreateActivity{Content: ContentState{RemainingSeconds: 50, End: later.Add(50 * time.Second)}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Plan(replace) = %v, want %v", got, want)
	}
}

func TestPlan_CancelWhileDraggingEmitsNothing(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	m.BeginDrag()
	m.UpdateDrag(120, t0)
	if got := Plan(m.Cancel()); len(got) != 0 {
		t.Fatalf("Plan(cancel while dragging) = %v, want none", got)
	}
}

func TestPlan_CancelRunning(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	commit(m, time.Minute, t0)
	got := Plan(m.Cancel())
	want := []Request{CancelNotification{}, EndActivity{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Plan(cancel) = %v, want %v", got, want)
	}
}

func TestPlan_ZeroCommit(t *testing.T) {
	t.Run("fresh", func(t *testing.T) {
		m := countdown.New(snap.DefaultConfig())
		got := Plan(commit(m, 0, t0))
		if !reflect.DeepEqual(got, []Request{EndActivity{}}) {
			t.Fatalf("Plan(zero commit) = %v, want [EndActivity]", got)
		}
	})
	t.Run("replacing", func(t *testing.T) {
		m := countdown.New(snap.DefaultConfig())
		commit(m, time.Minute, t0)
		got := Plan(commit(m, 0, t0))
		want := []Request{CancelNotification{}, EndActivity{}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Plan(zero commit over running) = %v, want %v", got, want)
		}
	})
}

func TestPlan_NoOpsAndDragTransitions(t *testing.T) {
	m := countdown.New(snap.DefaultConfig())
	if got := Plan(m.Tick(t0)); got != nil {
		t.Fatalf("Plan(no-op) = %v, want nil", got)
	}
	if got := Plan(m.BeginDrag()); got != nil {
		t.Fatalf("Plan(begin drag) = %v, want nil", got)
	}
	if got := Plan(m.AbortDrag()); got != nil {
		t.Fatalf("Plan(abort drag) = %v, want nil", got)
	}
}

func TestNewContentState_Truncates(t *testing.T) {
	end := t0.Add(time.Minute)
	if got := NewContentState(4999*time.Millisecond, end); got.RemainingSeconds != 4 {
		t.Fatalf("RemainingSeconds = %d, want 4", got.RemainingSeconds)
	}
	if got := NewContentState(-time.Second, end); got.RemainingSeconds != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0", got.RemainingSeconds)
	}
}
