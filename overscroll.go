package panzoom

// velocityScale converts engine velocities (pixels per millisecond) into
// pixels per second.
const velocityScale = 1000.0

// OverscrollHandler displays overscroll feedback. Its methods are only ever
// called on the UI goroutine.
type OverscrollHandler interface {
	SetVelocity(velocity float64, axis Axis)
	SetDistance(distance float64, axis Axis)
}

// overscrollBox wraps the handler so it can be swapped atomically.
type overscrollBox struct {
	h OverscrollHandler
}

// SetOverscrollHandler replaces the overscroll handler. Pass nil to detach;
// later updates are then dropped.
func (c *Controller) SetOverscrollHandler(h OverscrollHandler) {
	if h == nil {
		c.overscroll.Store(nil)
		return
	}
	c.overscroll.Store(&overscrollBox{h: h})
}

func (c *Controller) overscrollHandler() OverscrollHandler {
	if b := c.overscroll.Load(); b != nil {
		return b.h
	}
	return nil
}

// UpdateOverscrollVelocity is called by the engine, from any goroutine, with
// the overscroll velocity in pixels per millisecond.
func (c *Controller) UpdateOverscrollVelocity(x, y float64) {
	ev := ControllerEvent{Type: EventOverscrollVelocity, X: x * velocityScale, Y: y * velocityScale}
	c.runOverscroll(ev, func(h OverscrollHandler) {
		h.SetVelocity(ev.X, AxisX)
		h.SetVelocity(ev.Y, AxisY)
	})
}

// UpdateOverscrollOffset is called by the engine, from any goroutine, with
// the current overscroll distance.
func (c *Controller) UpdateOverscrollOffset(x, y float64) {
	ev := ControllerEvent{Type: EventOverscrollOffset, X: x, Y: y}
	c.runOverscroll(ev, func(h OverscrollHandler) {
		h.SetDistance(x, AxisX)
		h.SetDistance(y, AxisY)
	})
}

// runOverscroll applies fn to the current handler on the UI goroutine. The
// handler is looked up again when a posted update runs, so a handler
// detached in between never sees it.
func (c *Controller) runOverscroll(ev ControllerEvent, fn func(OverscrollHandler)) {
	kind := ev.Type.String()
	if c.overscrollHandler() == nil {
		Logger().Debug("overscroll update dropped: no handler", "kind", kind, "x", ev.X, "y", ev.Y)
		return
	}
	apply := func() {
		if h := c.overscrollHandler(); h != nil {
			fn(h)
			c.emit(ev)
		}
	}
	if c.dispatcher.OnUIThread() {
		apply()
		return
	}
	if !c.dispatcher.Post(apply) {
		Logger().Debug("overscroll update dropped: dispatcher closed", "kind", kind)
	}
}
