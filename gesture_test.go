package panzoom

import (
	"testing"
	"time"
)

func trackAll(tr *gestureTracker, evs []MotionEvent) []bool {
	out := make([]bool, len(evs))
	for i := range evs {
		out[i] = tr.track(&evs[i])
	}
	return out
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func TestCountMatchFiresOnceWhenAllFingersLift(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	got := trackAll(tr, twoFingerGesture(100))

	if countTrue(got) != 1 {
		t.Fatalf("gesture ends = %d, want 1 (%v)", countTrue(got), got)
	}
	if got[3] {
		t.Error("first finger lifting must not end the gesture")
	}
	if !got[4] {
		t.Error("last finger lifting must end the gesture")
	}
}

func TestCountMatchSingleFingerNeverFires(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	got := trackAll(tr, []MotionEvent{
		touch(ActionDown, 1, 1, pointers(0, 0)),
		touch(ActionMove, 1, 2, pointers(5, 5)),
		touch(ActionUp, 1, 3, pointers(5, 5)),
	})
	if countTrue(got) != 0 {
		t.Errorf("single-finger gesture ended %d times, want 0", countTrue(got))
	}
}

func TestCountMatchThreeFingers(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	got := trackAll(tr, []MotionEvent{
		touch(ActionDown, 1, 1, pointers(0, 0)),
		touch(ActionPointerDown, 1, 2, pointers(0, 0, 10, 10)),
		touch(ActionPointerDown, 1, 3, pointers(0, 0, 10, 10, 20, 20)),
		touch(ActionPointerUp, 1, 4, pointers(0, 0, 10, 10, 20, 20)),
		// A finger goes back down mid-gesture.
		touch(ActionPointerDown, 1, 5, pointers(0, 0, 10, 10, 30, 30)),
		touch(ActionPointerUp, 1, 6, pointers(0, 0, 10, 10, 30, 30)),
		touch(ActionPointerUp, 1, 7, pointers(0, 0, 10, 10)),
		touch(ActionUp, 1, 8, pointers(0, 0)),
	})
	if countTrue(got) != 1 || !got[len(got)-1] {
		t.Errorf("gesture ends = %v, want only the final up", got)
	}
	if tr.state.PeakPointerCount != 0 || tr.state.ActivePointerCount != 0 {
		t.Errorf("state not reset after gesture: %+v", tr.state)
	}
}

func TestCountMatchCancel(t *testing.T) {
	tr := newGestureTracker(nil)
	got := trackAll(tr, []MotionEvent{
		touch(ActionDown, 1, 1, pointers(0, 0)),
		touch(ActionPointerDown, 1, 2, pointers(0, 0, 10, 10)),
		touch(ActionCancel, 1, 3, pointers(0, 0, 10, 10)),
	})
	if !got[2] || countTrue(got) != 1 {
		t.Errorf("cancel of two-finger gesture = %v, want one end at cancel", got)
	}
}

func TestCountMatchConsecutiveGestures(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	ends := 0
	for i := int64(0); i < 3; i++ {
		ends += countTrue(trackAll(tr, twoFingerGesture(100+i*10)))
	}
	if ends != 3 {
		t.Errorf("gesture ends = %d, want 3", ends)
	}
}

func TestTrackerIgnoresNonTouchActions(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	tr.track(&MotionEvent{Action: ActionDown, DownTime: 5, Pointers: pointers(0, 0)})
	before := tr.state
	for _, a := range []Action{ActionHoverMove, ActionScroll, ActionOutside} {
		ev := MotionEvent{Action: a, DownTime: 5, Pointers: pointers(0, 0, 1, 1, 2, 2)}
		if tr.track(&ev) {
			t.Errorf("%v ended a gesture", a)
		}
	}
	if tr.state != before {
		t.Errorf("state changed by non-touch actions: %+v -> %+v", before, tr.state)
	}
}

func TestTrackerState(t *testing.T) {
	tr := newGestureTracker(CountMatchPolicy{})
	evs := twoFingerGesture(42)

	tr.track(&evs[0])
	if tr.state.LastDownTime != 42 || tr.state.ActivePointerCount != 1 || tr.state.PeakPointerCount != 1 {
		t.Errorf("after down: %+v", tr.state)
	}
	tr.track(&evs[1])
	if tr.state.ActivePointerCount != 2 || tr.state.PeakPointerCount != 2 {
		t.Errorf("after pointer down: %+v", tr.state)
	}
	tr.track(&evs[3])
	if tr.state.ActivePointerCount != 1 || tr.state.PeakPointerCount != 2 {
		t.Errorf("after pointer up: %+v", tr.state)
	}
}

// threeFingerGesture is down, two pointer downs, two pointer ups, up.
func threeFingerGesture(epoch int64) []MotionEvent {
	return []MotionEvent{
		touch(ActionDown, epoch, epoch, pointers(10, 10)),
		touch(ActionPointerDown, epoch, epoch+1, pointers(10, 10, 50, 50)),
		touch(ActionPointerDown, epoch, epoch+2, pointers(10, 10, 50, 50, 90, 90)),
		touch(ActionPointerUp, epoch, epoch+3, pointers(10, 10, 50, 50, 90, 90)),
		touch(ActionPointerUp, epoch, epoch+4, pointers(10, 10, 50, 50)),
		touch(ActionUp, epoch, epoch+5, pointers(10, 10)),
	}
}

func TestDebouncePolicy(t *testing.T) {
	tr := newGestureTracker(DebouncePolicy{Window: time.Second})

	got := trackAll(tr, twoFingerGesture(100))
	if !got[3] {
		t.Error("pointer up with two pointers should fire")
	}
	if got[4] {
		t.Error("final up with one pointer should not fire")
	}

	// Two-finger gestures are never throttled by each other.
	got = trackAll(tr, twoFingerGesture(600))
	if countTrue(got) != 1 || !got[3] {
		t.Errorf("second pinch within window = %v, want one end", got)
	}
	if tr.state.MultiTouchSeen {
		t.Error("two-finger gestures marked multi-touch")
	}

	// A three-finger gesture suppresses two-finger ends within the window.
	got = trackAll(tr, threeFingerGesture(2000))
	if countTrue(got) != 0 {
		t.Errorf("three-finger gesture fired: %v", got)
	}
	if !tr.state.MultiTouchSeen || tr.state.LastMultiTouchTime != 2003 {
		t.Errorf("multi-touch stamp = %v/%d, want true/2003", tr.state.MultiTouchSeen, tr.state.LastMultiTouchTime)
	}
	got = trackAll(tr, twoFingerGesture(2500))
	if countTrue(got) != 0 {
		t.Errorf("pinch within window of three-finger touch fired: %v", got)
	}

	got = trackAll(tr, twoFingerGesture(3100))
	if countTrue(got) != 1 {
		t.Errorf("pinch after window = %v, want one end", got)
	}
	if tr.state.LastMultiTouchTime != 2003 {
		t.Errorf("LastMultiTouchTime = %d, firing must not restamp it", tr.state.LastMultiTouchTime)
	}
}

func TestDebouncePolicyMultiTouchAtTimeZero(t *testing.T) {
	tr := newGestureTracker(DebouncePolicy{Window: time.Second})
	trackAll(tr, threeFingerGesture(0))
	if tr.state.LastMultiTouchTime != 3 {
		t.Fatalf("LastMultiTouchTime = %d, want 3", tr.state.LastMultiTouchTime)
	}

	zero := []MotionEvent{
		touch(ActionDown, 0, 0, pointers(0, 0)),
		touch(ActionPointerDown, 0, 0, pointers(0, 0, 1, 1, 2, 2)),
		touch(ActionPointerUp, 0, 0, pointers(0, 0, 1, 1, 2, 2)),
		touch(ActionPointerUp, 0, 0, pointers(0, 0, 1, 1)),
		touch(ActionUp, 0, 0, pointers(0, 0)),
	}
	tr = newGestureTracker(DebouncePolicy{Window: time.Second})
	trackAll(tr, zero)
	if !tr.state.MultiTouchSeen || tr.state.LastMultiTouchTime != 0 {
		t.Fatalf("state = %+v, want multi-touch seen at 0", tr.state)
	}
	if got := trackAll(tr, twoFingerGesture(500)); countTrue(got) != 0 {
		t.Errorf("multi-touch at event time 0 did not suppress: %v", got)
	}
}

func TestDebouncePolicyDefaultWindow(t *testing.T) {
	tr := newGestureTracker(DebouncePolicy{})
	trackAll(tr, threeFingerGesture(10))
	got := trackAll(tr, twoFingerGesture(10+DefaultDebounceWindow.Milliseconds()-100))
	if countTrue(got) != 0 {
		t.Errorf("zero Window should default to %v: %v", DefaultDebounceWindow, got)
	}
	got = trackAll(tr, twoFingerGesture(10+DefaultDebounceWindow.Milliseconds()+100))
	if countTrue(got) != 1 {
		t.Errorf("pinch after default window = %v, want one end", got)
	}
}

func TestDebouncePolicyIgnoresThreePointerRelease(t *testing.T) {
	tr := newGestureTracker(DebouncePolicy{Window: time.Millisecond})
	got := trackAll(tr, threeFingerGesture(100))
	if got[3] {
		t.Error("release with three pointers down fired")
	}
}

func TestPolicyString(t *testing.T) {
	if (CountMatchPolicy{}).String() != "count-match" || (DebouncePolicy{}).String() != "debounce" {
		t.Error("policy names mismatch")
	}
}
