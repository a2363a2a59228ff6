package panzoom

import (
	"math"
	"sync"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Native spy ---

type spyNative struct {
	mu sync.Mutex

	batches   []MotionBatch
	scrolls   []ScrollEvent
	mouse     []MouseEvent
	velocity  []float64
	shifts    []PointF
	longpress []bool
	aborts    int
	disposed  int

	consume bool
}

func newSpyNative() *spyNative {
	return &spyNative{consume: true}
}

func (n *spyNative) HandleMotionEvent(b MotionBatch) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, b)
	return n.consume
}

func (n *spyNative) HandleScrollEvent(ev ScrollEvent) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scrolls = append(n.scrolls, ev)
	return n.consume
}

func (n *spyNative) HandleMouseEvent(ev MouseEvent) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mouse = append(n.mouse, ev)
	return n.consume
}

func (n *spyNative) HandleMotionEventVelocity(_ int64, speedY float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.velocity = append(n.velocity, speedY)
}

func (n *spyNative) AdjustScrollForSurfaceShift(dx, dy float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shifts = append(n.shifts, PointF{X: dx, Y: dy})
}

func (n *spyNative) SetIsLongpressEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.longpress = append(n.longpress, enabled)
}

func (n *spyNative) AbortAnimation() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.aborts++
}

func (n *spyNative) DisposeNative() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disposed++
}

// calls returns the total number of boundary calls made.
func (n *spyNative) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches) + len(n.scrolls) + len(n.mouse) + len(n.velocity) +
		len(n.shifts) + len(n.longpress) + n.aborts + n.disposed
}

// --- Event sink spy ---

type spySink struct {
	events []ControllerEvent
}

func (s *spySink) EmitEvent(ev ControllerEvent) {
	s.events = append(s.events, ev)
}

func (s *spySink) count(typ ControllerEventType) int {
	n := 0
	for _, ev := range s.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// --- Preferences spy ---

type spyPrefs struct {
	added   []PrefHandler
	removed []PrefHandler
	keys    []string
}

func (p *spyPrefs) AddObserver(keys []string, h PrefHandler) {
	p.added = append(p.added, h)
	p.keys = append(p.keys, keys...)
}

func (p *spyPrefs) RemoveObserver(h PrefHandler) {
	p.removed = append(p.removed, h)
}

// --- Overscroll spy ---

type axisValue struct {
	value float64
	axis  Axis
}

type spyOverscroll struct {
	mu        sync.Mutex
	velocity  []axisValue
	distance  []axisValue
	uiChecked func() bool
	offUI     int
}

func (o *spyOverscroll) SetVelocity(v float64, axis Axis) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.check()
	o.velocity = append(o.velocity, axisValue{v, axis})
}

func (o *spyOverscroll) SetDistance(d float64, axis Axis) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.check()
	o.distance = append(o.distance, axisValue{d, axis})
}

func (o *spyOverscroll) check() {
	if o.uiChecked != nil && !o.uiChecked() {
		o.offUI++
	}
}

// --- Builders ---

func pointers(xy ...float64) []PointerCoords {
	ps := make([]PointerCoords, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		ps = append(ps, PointerCoords{ID: int32(i / 2), X: xy[i], Y: xy[i+1], Pressure: 1})
	}
	return ps
}

func touch(action Action, downTime, eventTime int64, ps []PointerCoords) MotionEvent {
	return MotionEvent{
		Action:    action,
		DownTime:  downTime,
		EventTime: eventTime,
		Source:    SourceTouchscreen,
		Pointers:  ps,
	}
}

// overZoomedMetrics returns metrics zoomed out so far that the page is
// smaller than the viewport, which any gesture end must correct.
func overZoomedMetrics() ViewportMetrics {
	return NewViewportMetrics(Rect{Width: 100, Height: 100}, Rect{Width: 50, Height: 50}, 0.5)
}

func newTestTarget(m ViewportMetrics) *AnimatedTarget {
	t := NewAnimatedTarget(m, DefaultZoomConstraints)
	t.Duration = 0
	return t
}

func newTestController(opts ...ControllerOption) (*Controller, *spyNative, *AnimatedTarget, *spySink) {
	native := newSpyNative()
	target := newTestTarget(overZoomedMetrics())
	sink := &spySink{}
	opts = append([]ControllerOption{WithEventSink(sink)}, opts...)
	c := NewController(native, target, opts...)
	return c, native, target, sink
}

// twoFingerGesture is down, pointer down, move, pointer up, up.
func twoFingerGesture(epoch int64) []MotionEvent {
	return []MotionEvent{
		touch(ActionDown, epoch, epoch, pointers(10, 10)),
		touch(ActionPointerDown, epoch, epoch+10, pointers(10, 10, 50, 50)),
		touch(ActionMove, epoch, epoch+20, pointers(12, 12, 48, 48)),
		touch(ActionPointerUp, epoch, epoch+30, pointers(12, 12, 48, 48)),
		touch(ActionUp, epoch, epoch+40, pointers(12, 12)),
	}
}
