package panzoom

import (
	"sync"
	"sync/atomic"
)

// EventSink is the interface for optional event forwarding, e.g. into an
// ECS world. EmitEvent is only called on the UI goroutine.
type EventSink interface {
	EmitEvent(event ControllerEvent)
}

// ControllerEventType identifies a kind of ControllerEvent.
type ControllerEventType uint8

const (
	EventGestureEnd         ControllerEventType = iota // viewport snapped after a multi-touch gesture
	EventStaleRejected                                 // event dropped for belonging to an old gesture
	EventOverscrollVelocity                            // velocity delivered to the overscroll handler
	EventOverscrollOffset                              // distance delivered to the overscroll handler
	EventDestroyed                                     // controller disposed
)

func (t ControllerEventType) String() string {
	switch t {
	case EventGestureEnd:
		return "gesture_end"
	case EventStaleRejected:
		return "stale_rejected"
	case EventOverscrollVelocity:
		return "overscroll_velocity"
	case EventOverscrollOffset:
		return "overscroll_offset"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// ControllerEvent carries controller activity to an EventSink.
type ControllerEvent struct {
	Type ControllerEventType
	// Time is the event-clock time of the input that caused the event, if any.
	Time int64
	// Metrics is the committed animation target (EventGestureEnd).
	Metrics ViewportMetrics
	// X and Y hold overscroll values (EventOverscrollVelocity, EventOverscrollOffset).
	X, Y float64
}

// ControllerOption configures a Controller during creation.
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	config     Config
	prefs      Preferences
	dispatcher Dispatcher
	sink       EventSink
}

// WithConfig sets the controller configuration. Defaults to DefaultConfig().
func WithConfig(cfg Config) ControllerOption {
	return func(o *controllerOptions) {
		o.config = cfg
	}
}

// WithPreferences registers the controller as an observer of
// PrefNegateWheelScroll on p.
func WithPreferences(p Preferences) ControllerOption {
	return func(o *controllerOptions) {
		o.prefs = p
	}
}

// WithDispatcher sets the dispatcher used to reach the UI goroutine. By
// default a Looper bound to the goroutine calling NewController is created;
// retrieve it with Controller.Dispatcher and drain it on that goroutine.
func WithDispatcher(d Dispatcher) ControllerOption {
	return func(o *controllerOptions) {
		o.dispatcher = d
	}
}

// WithEventSink forwards controller activity to sink.
func WithEventSink(sink EventSink) ControllerOption {
	return func(o *controllerOptions) {
		o.sink = sink
	}
}

// Controller normalizes platform input for the engine, tracks multi-touch
// gestures, and snaps the target's viewport back into valid bounds when a
// gesture ends.
//
// Input methods must be called on the UI goroutine. Engine callbacks
// (UpdateOverscroll*, RequestContentRepaint, ...) and Destroy may be called
// from any goroutine.
type Controller struct {
	native     Native
	target     Target
	dispatcher Dispatcher
	sink       EventSink

	// Gesture state (UI goroutine only)
	tracker *gestureTracker

	// Preference binding
	prefs        Preferences
	wheel        wheelPrefs
	observer     PrefHandler // nil once removed
	scrollFactor float64

	overscroll     atomic.Pointer[overscrollBox]
	overScrollMode atomic.Int32

	destroyMu sync.Mutex
	destroyed atomic.Bool

	debug bool
	stats Stats
}

// NewController creates a controller for the given engine boundary and
// target. Call it on the UI goroutine.
//
// Without WithDispatcher the controller creates a *Looper bound to the
// calling goroutine. Callbacks posted from other goroutines queue on it
// until the host drains it, so a host using the default must call
// Dispatcher().(*Looper).Drain() once per frame (or run Loop).
func NewController(native Native, target Target, opts ...ControllerOption) *Controller {
	o := controllerOptions{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dispatcher == nil {
		o.dispatcher = NewLooper()
	}

	c := &Controller{
		native:       native,
		target:       target,
		dispatcher:   o.dispatcher,
		sink:         o.sink,
		tracker:      newGestureTracker(o.config.Policy()),
		prefs:        o.prefs,
		scrollFactor: o.config.scrollFactor(),
	}
	if c.prefs != nil {
		c.observer = &c.wheel
		c.prefs.AddObserver([]string{PrefNegateWheelScroll}, c.observer)
	}
	return c
}

// Dispatcher returns the dispatcher used to reach the UI goroutine.
func (c *Controller) Dispatcher() Dispatcher {
	return c.dispatcher
}

// SetEventSink sets the optional event sink. Pass nil to detach.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// GestureState returns a copy of the current multi-touch bookkeeping.
func (c *Controller) GestureState() TouchGestureState {
	return c.tracker.state
}

// Policy returns the gesture end policy chosen at construction.
func (c *Controller) Policy() GestureEndPolicy {
	return c.tracker.policy
}

// IsDestroyed reports whether Destroy has taken effect.
func (c *Controller) IsDestroyed() bool {
	return c.destroyed.Load()
}

// OnTouchEvent forwards a touch event to the engine and reports whether the
// engine consumed it. It also runs gesture tracking and, when a multi-finger
// gesture ends, commits a valid viewport to the target.
func (c *Controller) OnTouchEvent(ev MotionEvent) bool {
	consumed, accepted := c.handleMotionEvent(&ev)
	if !accepted {
		return false
	}
	if c.tracker.track(&ev) {
		c.commitValidViewport(ev.EventTime)
	}
	c.debugLog()
	return consumed
}

// OnMotionEvent handles non-touch input: wheel/touchpad scrolls and mouse
// hover. Other actions are not consumed.
func (c *Controller) OnMotionEvent(ev MotionEvent) bool {
	if c.IsDestroyed() {
		c.stats.DestroyedRejected++
		return false
	}
	switch ev.Action {
	case ActionScroll:
		st := &c.tracker.state
		if ev.DownTime >= st.LastDownTime {
			st.LastDownTime = ev.DownTime
		} else if ev.Source == SourceTouchpad {
			c.rejectStale(&ev)
			return false
		}
		return c.handleScrollEvent(&ev)
	case ActionHoverMove, ActionHoverEnter, ActionHoverExit:
		return c.handleMouseEvent(&ev)
	default:
		return false
	}
}

// OnKeyEvent is a placeholder for keyboard scrolling; keys are never consumed.
func (c *Controller) OnKeyEvent() bool {
	return false
}

// OnMotionEventVelocity forwards a fling velocity sample to the engine.
func (c *Controller) OnMotionEventVelocity(time int64, speedY float64) {
	if c.IsDestroyed() {
		return
	}
	c.native.HandleMotionEventVelocity(time, speedY)
}

// VelocityVector returns the current fling velocity. The engine owns
// flinging, so this is always zero.
func (c *Controller) VelocityVector() PointF {
	return PointF{}
}

// RedrawHint reports whether the host should redraw during panning.
func (c *Controller) RedrawHint() bool {
	return true
}

// SetOverScrollMode stores the platform overscroll mode.
func (c *Controller) SetOverScrollMode(mode int) {
	c.overScrollMode.Store(int32(mode))
}

// OverScrollMode returns the value last passed to SetOverScrollMode.
func (c *Controller) OverScrollMode() int {
	return int(c.overScrollMode.Load())
}

// AbortAnimation stops any engine-side pan or zoom animation.
func (c *Controller) AbortAnimation() {
	if !c.IsDestroyed() {
		c.native.AbortAnimation()
	}
}

// SetIsLongpressEnabled toggles engine long-press detection.
func (c *Controller) SetIsLongpressEnabled(enabled bool) {
	if !c.IsDestroyed() {
		c.native.SetIsLongpressEnabled(enabled)
	}
}

// AdjustScrollForSurfaceShift tells the engine the drawing surface moved by
// shift and returns m offset by the same amount and clamped to the page.
func (c *Controller) AdjustScrollForSurfaceShift(m ViewportMetrics, shift PointF) ViewportMetrics {
	if !c.IsDestroyed() {
		c.native.AdjustScrollForSurfaceShift(shift.X, shift.Y)
	}
	return m.OffsetViewportByAndClamp(shift.X, shift.Y)
}

// RequestContentRepaint is called by the engine, from any goroutine, to ask
// the target to repaint a region of the page.
func (c *Controller) RequestContentRepaint(rect Rect, resolution float64) {
	if rt, ok := c.target.(RepaintTarget); ok {
		rt.ForceRedraw(DisplayPortMetrics{Rect: rect, Resolution: resolution})
	}
}

// OnSelectionDragState is called by the engine while a selection caret is
// dragged. The toolbar is pinned for the duration so it does not scroll
// away under the caret.
func (c *Controller) OnSelectionDragState(dragging bool) {
	if tt, ok := c.target.(ToolbarTarget); ok {
		tt.SetToolbarPinned(dragging, PinReasonCaretDrag)
	}
}

// SetScrollingRootContent is called by the engine when scrolling switches
// between the root document and a sub-frame.
func (c *Controller) SetScrollingRootContent(isRootContent bool) {
	if rt, ok := c.target.(RootContentTarget); ok {
		rt.SetScrollingRootContent(isRootContent)
	}
}

// Destroy disposes the engine peer. It is a no-op when already destroyed or
// while the target is not ready; in the latter case call Destroy again
// later. Safe to call from any goroutine.
func (c *Controller) Destroy() {
	c.destroyMu.Lock()
	defer c.destroyMu.Unlock()

	if c.destroyed.Load() {
		return
	}
	if !c.target.IsReady() {
		Logger().Info("controller destroy deferred: target not ready")
		return
	}

	if c.observer != nil {
		c.prefs.RemoveObserver(c.observer)
		c.observer = nil
	}
	c.destroyed.Store(true)
	c.native.DisposeNative()
	Logger().Info("controller destroyed")

	if c.dispatcher.OnUIThread() {
		c.emit(ControllerEvent{Type: EventDestroyed})
	} else {
		c.dispatcher.Post(func() { c.emit(ControllerEvent{Type: EventDestroyed}) })
	}
}

// commitValidViewport snaps the target's viewport to the nearest valid
// metrics. This is the only place the controller writes viewport state.
func (c *Controller) commitValidViewport(time int64) {
	lk := c.target.Lock()
	lk.Lock()
	m := Validate(c.target.ViewportMetrics(), c.target.ZoomConstraints())
	c.target.SetAnimationTarget(m)
	lk.Unlock()

	c.stats.GestureEnds++
	Logger().Debug("gesture ended, viewport corrected", "policy", c.tracker.policy.String(), "metrics", m.String())
	c.emit(ControllerEvent{Type: EventGestureEnd, Time: time, Metrics: m})
}

func (c *Controller) rejectStale(ev *MotionEvent) {
	c.stats.StaleRejected++
	Logger().Debug("stale event rejected",
		"action", ev.Action.String(), "downTime", ev.DownTime, "epoch", c.tracker.state.LastDownTime)
	c.emit(ControllerEvent{Type: EventStaleRejected, Time: ev.EventTime})
}

func (c *Controller) emit(ev ControllerEvent) {
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}
