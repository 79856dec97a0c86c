package effects

import "github.com/five82/gtimer/internal/countdown"

// Plan returns the ordered requests for a transition. It is pure.
func Plan(tr countdown.Transition) []Request {
	switch tr.Kind {
	case countdown.KindCommit:
		var reqs []Request
		if tr.Replaced {
			reqs = append(reqs, CancelNotification{}, EndActivity{})
		}
		if tr.To == countdown.PhaseRunning && tr.Remaining > 0 {
			content := NewContentState(tr.Remaining, tr.Target)
			return append(reqs, ScheduleNotification{After: tr.Remaining}, CreateActivity{Content: content})
		}
		// Zero-length commit: nothing is scheduled, only make sure no
		// activity lingers.
		if !tr.Replaced {
			reqs = append(reqs, EndActivity{})
		}
		return reqs

	case countdown.KindTick:
		return []Request{UpdateActivity{Content: NewContentState(tr.Remaining, tr.Target)}}

	case countdown.KindExpire:
		// The notification fires on its own; cancelling it here would
		// suppress the alert.
		return []Request{EndActivity{}}

	case countdown.KindCancel:
		if !tr.HadLive {
			return nil
		}
		return []Request{CancelNotification{}, EndActivity{}}
	}
	return nil
}
