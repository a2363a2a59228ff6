package panzoom

import "math"

// PointF is a 2D point or vector in screen pixels.
type PointF struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() PointF {
	return PointF{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Scale returns r with every edge multiplied by factor.
func (r Rect) Scale(factor float64) Rect {
	return Rect{X: r.X * factor, Y: r.Y * factor, Width: r.Width * factor, Height: r.Height * factor}
}

// Contains reports whether other lies fully inside r.
// Shared edges are considered inside.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// KeyModifiers is a bitmask of keyboard modifier keys. It is forwarded to
// the engine unchanged. Values can be combined with bitwise OR.
type KeyModifiers uint32

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModAlt                            // Alt / Option key
	ModCtrl                           // Control key
	ModMeta                           // Meta / Command / Windows key
)

// ButtonState is a bitmask of pressed mouse buttons.
type ButtonState uint32

const (
	ButtonPrimary   ButtonState = 1 << iota // left button
	ButtonSecondary                         // right button
	ButtonTertiary                          // middle button
)

// Action identifies what a MotionEvent reports. The numeric values match
// the platform action codes forwarded to the engine.
type Action int32

const (
	ActionDown        Action = 0  // first pointer went down; starts a gesture
	ActionUp          Action = 1  // last pointer went up; ends a gesture
	ActionMove        Action = 2  // one or more pointers moved
	ActionCancel      Action = 3  // gesture aborted by the platform
	ActionOutside     Action = 4  // touch landed outside the view
	ActionPointerDown Action = 5  // an additional pointer went down
	ActionPointerUp   Action = 6  // a non-last pointer went up
	ActionHoverMove   Action = 7  // mouse moved with no button down
	ActionScroll      Action = 8  // wheel or touchpad scroll
	ActionHoverEnter  Action = 9  // mouse entered the view
	ActionHoverExit   Action = 10 // mouse left the view
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionOutside:
		return "outside"
	case ActionPointerDown:
		return "pointer_down"
	case ActionPointerUp:
		return "pointer_up"
	case ActionHoverMove:
		return "hover_move"
	case ActionScroll:
		return "scroll"
	case ActionHoverEnter:
		return "hover_enter"
	case ActionHoverExit:
		return "hover_exit"
	default:
		return "unknown"
	}
}

// isRelease reports whether the action lifts one or more pointers.
func (a Action) isRelease() bool {
	return a == ActionUp || a == ActionPointerUp || a == ActionCancel
}

// Source identifies the device class an event originated from.
type Source uint8

const (
	SourceTouchscreen Source = iota
	SourceMouse
	SourceTouchpad
)

// Axis selects the X or Y component of an overscroll update.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
