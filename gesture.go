package panzoom

import "time"

// DefaultDebounceWindow is the DebouncePolicy window used when none is set.
const DefaultDebounceWindow = time.Second

// TouchGestureState is the multi-touch bookkeeping the controller keeps
// across the events of a gesture. Times are event-clock milliseconds.
type TouchGestureState struct {
	// LastDownTime is the epoch of the current gesture.
	LastDownTime int64
	// ActivePointerCount is the number of pointers still down after the
	// last tracked event.
	ActivePointerCount int
	// PeakPointerCount is the largest number of simultaneous pointers seen
	// since the gesture began.
	PeakPointerCount int
	// LastMultiTouchTime is the event time at which more than two
	// pointers were last down together. Only meaningful when
	// MultiTouchSeen is set.
	LastMultiTouchTime int64
	// MultiTouchSeen reports whether more than two pointers have ever been
	// down together.
	MultiTouchSeen bool
}

// GestureEndPolicy decides when a multi-finger gesture has ended, which is
// when the controller snaps the viewport back into valid bounds.
type GestureEndPolicy interface {
	// gestureEnded is called with the gesture state after it has been
	// updated for ev and reports whether ev ends the gesture.
	gestureEnded(st *TouchGestureState, ev *MotionEvent) bool
	String() string
}

// CountMatchPolicy ends a gesture when every finger that took part in a
// multi-finger gesture has lifted: the release that brings the active
// pointer count to zero, provided the peak count reached two or more. It
// fires once per gesture regardless of how many intermediate lifts occur.
type CountMatchPolicy struct{}

func (CountMatchPolicy) gestureEnded(st *TouchGestureState, ev *MotionEvent) bool {
	return ev.Action.isRelease() && st.ActivePointerCount == 0 && st.PeakPointerCount >= 2
}

func (CountMatchPolicy) String() string { return "count-match" }

// DebouncePolicy ends a gesture at every release made while exactly two
// pointers are down, unless more than two pointers were down together
// within the last Window. The window is measured on the event clock.
type DebouncePolicy struct {
	Window time.Duration
}

func (p DebouncePolicy) gestureEnded(st *TouchGestureState, ev *MotionEvent) bool {
	if !ev.Action.isRelease() || ev.PointerCount() != 2 {
		return false
	}
	window := p.Window
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return !st.MultiTouchSeen || ev.EventTime-st.LastMultiTouchTime > window.Milliseconds()
}

func (p DebouncePolicy) String() string { return "debounce" }

// gestureTracker applies a GestureEndPolicy to the event stream.
type gestureTracker struct {
	state  TouchGestureState
	policy GestureEndPolicy
}

func newGestureTracker(policy GestureEndPolicy) *gestureTracker {
	if policy == nil {
		policy = CountMatchPolicy{}
	}
	return &gestureTracker{policy: policy}
}

// track updates the gesture state for ev and reports whether ev ends the
// gesture. ev must already have passed the stale-epoch check.
func (t *gestureTracker) track(ev *MotionEvent) bool {
	st := &t.state
	count := ev.PointerCount()

	switch ev.Action {
	case ActionDown:
		st.LastDownTime = ev.DownTime
		st.PeakPointerCount = count
		st.ActivePointerCount = count
	case ActionPointerDown, ActionMove:
		st.ActivePointerCount = count
		if count > st.PeakPointerCount {
			st.PeakPointerCount = count
		}
	case ActionPointerUp:
		// The event still carries the lifting pointer.
		st.ActivePointerCount = count - 1
	case ActionUp, ActionCancel:
		st.ActivePointerCount = 0
	default:
		return false
	}
	if count > 2 {
		st.LastMultiTouchTime = ev.EventTime
		st.MultiTouchSeen = true
	}

	ended := t.policy.gestureEnded(st, ev)
	if st.ActivePointerCount == 0 {
		st.PeakPointerCount = 0
	}
	return ended
}
