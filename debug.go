package panzoom

// Stats counts what the controller did with its input. Only the UI
// goroutine updates it.
type Stats struct {
	Forwarded         int // touch batches sent to the engine
	Consumed          int // touch batches the engine consumed
	StaleRejected     int // events dropped for a mismatched gesture epoch
	DestroyedRejected int // events dropped because the controller was destroyed
	GestureEnds       int // viewport corrections committed
	Scrolls           int // scroll events sent to the engine
	Hovers            int // hover events sent to the engine
}

// Stats returns a snapshot of the controller's counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// ResetStats zeroes the counters.
func (c *Controller) ResetStats() {
	c.stats = Stats{}
}

// SetDebugMode enables or disables debug mode. When enabled, the counters
// and gesture state are logged at debug level after every touch event.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// debugLog logs the counters and gesture state.
func (c *Controller) debugLog() {
	if !c.debug {
		return
	}
	st := c.tracker.state
	s := c.stats
	Logger().Debug("panzoom stats",
		"forwarded", s.Forwarded, "consumed", s.Consumed,
		"stale", s.StaleRejected, "destroyed", s.DestroyedRejected,
		"gestureEnds", s.GestureEnds, "scrolls", s.Scrolls, "hovers", s.Hovers)
	Logger().Debug("panzoom gesture",
		"epoch", st.LastDownTime, "active", st.ActivePointerCount,
		"peak", st.PeakPointerCount, "lastMultiTouch", st.LastMultiTouchTime)
}
