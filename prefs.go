package panzoom

import "sync/atomic"

// PrefNegateWheelScroll inverts the direction of wheel scrolling when true.
const PrefNegateWheelScroll = "ui.scrolling.negate_wheel_scroll"

// PrefHandler receives preference values by name. Values may be delivered
// from any goroutine.
type PrefHandler interface {
	PrefBool(name string, value bool)
	PrefString(name string, value string)
}

// Preferences is the preference service the controller observes.
type Preferences interface {
	// AddObserver registers h for the named keys. Current values may be
	// delivered before AddObserver returns.
	AddObserver(keys []string, h PrefHandler)
	RemoveObserver(h PrefHandler)
}

// wheelPrefs is the controller's preference binding. It is written by the
// preference service and read by the event handlers without blocking.
type wheelPrefs struct {
	negate atomic.Bool
}

func (p *wheelPrefs) PrefBool(name string, value bool) {
	if name == PrefNegateWheelScroll {
		p.negate.Store(value)
	}
}

func (p *wheelPrefs) PrefString(string, string) {}

// flip returns the sign applied to wheel deltas.
func (p *wheelPrefs) flip() float64 {
	if p.negate.Load() {
		return -1
	}
	return 1
}
