package panzoom

// handleMotionEvent enforces the gesture epoch and forwards ev to the engine
// as a MotionBatch. accepted is false when ev was not forwarded (controller
// destroyed or ev stale); consumed is the engine's answer otherwise.
func (c *Controller) handleMotionEvent(ev *MotionEvent) (consumed, accepted bool) {
	if c.IsDestroyed() {
		c.stats.DestroyedRejected++
		return false, false
	}

	st := &c.tracker.state
	if ev.Action == ActionDown {
		st.LastDownTime = ev.DownTime
	} else if ev.DownTime != st.LastDownTime {
		c.rejectStale(ev)
		return false, false
	}

	consumed = c.native.HandleMotionEvent(newMotionBatch(ev))
	c.stats.Forwarded++
	if consumed {
		c.stats.Consumed++
	}
	return consumed, true
}

// newMotionBatch copies the pointers of ev into parallel per-slot slices.
func newMotionBatch(ev *MotionEvent) MotionBatch {
	n := ev.PointerCount()
	b := MotionBatch{
		Action:      ev.Action,
		ActionIndex: ev.ActionIndex,
		Time:        ev.EventTime,
		Modifiers:   ev.MetaState,
		PointerIDs:  make([]int32, n),
		X:           make([]float64, n),
		Y:           make([]float64, n),
		Orientation: make([]float64, n),
		Pressure:    make([]float64, n),
		ToolMajor:   make([]float64, n),
		ToolMinor:   make([]float64, n),
	}
	for i, p := range ev.Pointers {
		b.PointerIDs[i] = p.ID
		b.X[i] = p.X
		b.Y[i] = p.Y
		b.Orientation[i] = p.Orientation
		b.Pressure[i] = p.Pressure
		b.ToolMajor[i] = p.ToolMajor
		b.ToolMinor[i] = p.ToolMinor
	}
	return b
}

// handleScrollEvent forwards a wheel/touchpad scroll using the first
// pointer's position. Deltas are converted to pixels and optionally inverted.
func (c *Controller) handleScrollEvent(ev *MotionEvent) bool {
	if ev.PointerCount() == 0 {
		return false
	}
	p := ev.Pointers[0]
	k := c.wheel.flip() * c.scrollFactor

	consumed := c.native.HandleScrollEvent(ScrollEvent{
		Time:      ev.EventTime,
		Modifiers: ev.MetaState,
		X:         p.X,
		Y:         p.Y - c.toolbarHeight(),
		HScroll:   ev.HScroll * k,
		VScroll:   ev.VScroll * k,
	})
	c.stats.Scrolls++
	return consumed
}

// handleMouseEvent forwards a hover event using the first pointer's position.
func (c *Controller) handleMouseEvent(ev *MotionEvent) bool {
	if ev.PointerCount() == 0 {
		return false
	}
	p := ev.Pointers[0]

	consumed := c.native.HandleMouseEvent(MouseEvent{
		Action:    ev.Action,
		Time:      ev.EventTime,
		Modifiers: ev.MetaState,
		X:         p.X,
		Y:         p.Y - c.toolbarHeight(),
		Buttons:   ev.ButtonState,
	})
	c.stats.Hovers++
	return consumed
}

// toolbarHeight returns the height of the dynamic toolbar, which overlays
// the content but is not accounted for in scroll and hover coordinates.
func (c *Controller) toolbarHeight() float64 {
	if tt, ok := c.target.(ToolbarTarget); ok {
		return tt.CurrentToolbarHeight()
	}
	return 0
}
