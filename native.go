package panzoom

import "sync"

// Native is the rendering engine's side of the call boundary. Every method
// is called synchronously from the UI goroutine; the engine must not block.
type Native interface {
	// HandleMotionEvent receives a normalized touch batch and reports
	// whether the engine consumed it.
	HandleMotionEvent(batch MotionBatch) bool
	// HandleScrollEvent receives a normalized wheel/touchpad scroll.
	HandleScrollEvent(ev ScrollEvent) bool
	// HandleMouseEvent receives a normalized hover event.
	HandleMouseEvent(ev MouseEvent) bool
	// HandleMotionEventVelocity forwards a fling velocity sample.
	HandleMotionEventVelocity(time int64, speedY float64)
	// AdjustScrollForSurfaceShift tells the engine the drawing surface moved.
	AdjustScrollForSurfaceShift(dx, dy float64)

	SetIsLongpressEnabled(enabled bool)
	AbortAnimation()
	// DisposeNative releases the engine-side peer. Called at most once.
	DisposeNative()
}

// Target owns the authoritative viewport metrics the controller corrects.
type Target interface {
	ViewportMetrics() ViewportMetrics
	ZoomConstraints() ZoomConstraints
	// Lock returns the lock guarding the target's mutable state. The
	// controller holds it while committing an animation target.
	Lock() sync.Locker
	SetAnimationTarget(m ViewportMetrics)
	// IsReady reports whether the engine side is initialized. Destroy is
	// deferred while this is false.
	IsReady() bool
}

// DisplayPortMetrics is a region of the page the engine wants repainted,
// at the given resolution.
type DisplayPortMetrics struct {
	Rect       Rect
	Resolution float64
}

// RepaintTarget is implemented by targets that can schedule content repaints.
type RepaintTarget interface {
	ForceRedraw(dp DisplayPortMetrics)
}

// PinReason records why the dynamic toolbar is pinned. Reasons combine as a
// bitmask; the toolbar stays pinned while any reason is set.
type PinReason uint8

const (
	PinReasonCaretDrag PinReason = 1 << iota
	PinReasonRelayout
	PinReasonActionMode
)

// ToolbarTarget is implemented by targets with a dynamic toolbar overlaying
// the content. Scroll and hover coordinates are shifted by its height.
type ToolbarTarget interface {
	CurrentToolbarHeight() float64
	SetToolbarPinned(pinned bool, reason PinReason)
}

// RootContentTarget is implemented by targets that track whether the engine
// is currently scrolling the root document.
type RootContentTarget interface {
	SetScrollingRootContent(isRootContent bool)
}
