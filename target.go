package panzoom

import (
	"sync"
	"sync/atomic"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// settleAnim holds the active tween toward an animation target. The tween
// runs a progress value from 0 to 1 which interpolates between the two
// snapshots.
type settleAnim struct {
	from, to ViewportMetrics
	tween    *gween.Tween
}

// AnimatedTarget is an in-process Target that eases its viewport toward the
// committed animation target over a fixed duration. Hosts advance it once
// per frame with Update.
//
// All methods are safe for concurrent use. Lock exposes the mutex the target
// uses internally; the goroutine holding it may keep calling the target's
// methods.
type AnimatedTarget struct {
	mu    sync.Mutex
	owner atomic.Int64 // goroutine holding mu through Lock, or 0

	metrics     ViewportMetrics
	constraints ZoomConstraints
	ready       bool

	// Duration is the settle time in seconds.
	Duration float32
	// Ease shapes the settle animation.
	Ease ease.TweenFunc

	anim *settleAnim

	displayPort   DisplayPortMetrics
	redraws       int
	toolbarHeight float64
	pinned        PinReason
	rootContent   bool
}

// NewAnimatedTarget creates a ready target showing m.
func NewAnimatedTarget(m ViewportMetrics, c ZoomConstraints) *AnimatedTarget {
	return &AnimatedTarget{
		metrics:     m,
		constraints: c,
		ready:       true,
		Duration:    0.25,
		Ease:        ease.OutQuad,
		rootContent: true,
	}
}

// targetLock is the sync.Locker handed out by Lock. It records the holding
// goroutine so that goroutine can keep using the accessors.
type targetLock struct{ t *AnimatedTarget }

func (l targetLock) Lock() {
	l.t.mu.Lock()
	l.t.owner.Store(goroutineID())
}

func (l targetLock) Unlock() {
	l.t.owner.Store(0)
	l.t.mu.Unlock()
}

// Lock implements Target. While the lock is held, ViewportMetrics,
// ZoomConstraints and SetAnimationTarget may be called by the holder.
func (t *AnimatedTarget) Lock() sync.Locker {
	return targetLock{t: t}
}

// with runs fn holding the target mutex unless the calling goroutine already
// holds it through Lock. The goroutine id is only looked up while Lock is
// held by someone.
func (t *AnimatedTarget) with(fn func()) {
	if owner := t.owner.Load(); owner != 0 && owner == goroutineID() {
		fn()
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fn()
}

// ViewportMetrics implements Target.
func (t *AnimatedTarget) ViewportMetrics() ViewportMetrics {
	var m ViewportMetrics
	t.with(func() { m = t.metrics })
	return m
}

// SetViewportMetrics replaces the current metrics and cancels any settle
// animation, e.g. after the engine scrolled.
func (t *AnimatedTarget) SetViewportMetrics(m ViewportMetrics) {
	t.with(func() {
		t.metrics = m
		t.anim = nil
	})
}

// ZoomConstraints implements Target.
func (t *AnimatedTarget) ZoomConstraints() ZoomConstraints {
	var c ZoomConstraints
	t.with(func() { c = t.constraints })
	return c
}

// SetZoomConstraints replaces the page's zoom policy.
func (t *AnimatedTarget) SetZoomConstraints(c ZoomConstraints) {
	t.with(func() { t.constraints = c })
}

// SetAnimationTarget implements Target. The viewport eases from its current
// state to m; a zero Duration jumps immediately.
func (t *AnimatedTarget) SetAnimationTarget(m ViewportMetrics) {
	t.with(func() {
		if t.Duration <= 0 || t.metrics.FuzzyEquals(m) {
			t.metrics = m
			t.anim = nil
			return
		}
		easeFn := t.Ease
		if easeFn == nil {
			easeFn = ease.Linear
		}
		t.anim = &settleAnim{
			from:  t.metrics,
			to:    m,
			tween: gween.New(0, 1, t.Duration, easeFn),
		}
	})
}

// IsReady implements Target.
func (t *AnimatedTarget) IsReady() bool {
	var r bool
	t.with(func() { r = t.ready })
	return r
}

// SetReady marks whether the engine side is initialized.
func (t *AnimatedTarget) SetReady(ready bool) {
	t.with(func() { t.ready = ready })
}

// Animating reports whether a settle animation is in progress.
func (t *AnimatedTarget) Animating() bool {
	var a bool
	t.with(func() { a = t.anim != nil })
	return a
}

// Update advances the settle animation by dt seconds.
func (t *AnimatedTarget) Update(dt float32) {
	t.with(func() {
		if t.anim == nil {
			return
		}
		progress, done := t.anim.tween.Update(dt)
		if done {
			t.metrics = t.anim.to
			t.anim = nil
			return
		}
		t.metrics = t.anim.from.Interpolate(t.anim.to, float64(progress))
	})
}

// ForceRedraw implements RepaintTarget.
func (t *AnimatedTarget) ForceRedraw(dp DisplayPortMetrics) {
	t.with(func() {
		t.displayPort = dp
		t.redraws++
	})
}

// DisplayPort returns the last requested repaint region and how many
// repaints were requested in total.
func (t *AnimatedTarget) DisplayPort() (DisplayPortMetrics, int) {
	var dp DisplayPortMetrics
	var n int
	t.with(func() { dp, n = t.displayPort, t.redraws })
	return dp, n
}

// CurrentToolbarHeight implements ToolbarTarget.
func (t *AnimatedTarget) CurrentToolbarHeight() float64 {
	var h float64
	t.with(func() { h = t.toolbarHeight })
	return h
}

// SetToolbarHeight sets the height of the toolbar overlaying the content.
func (t *AnimatedTarget) SetToolbarHeight(h float64) {
	t.with(func() { t.toolbarHeight = h })
}

// SetToolbarPinned implements ToolbarTarget.
func (t *AnimatedTarget) SetToolbarPinned(pinned bool, reason PinReason) {
	t.with(func() {
		if pinned {
			t.pinned |= reason
		} else {
			t.pinned &^= reason
		}
	})
}

// ToolbarPinned reports whether any pin reason is set.
func (t *AnimatedTarget) ToolbarPinned() bool {
	var p bool
	t.with(func() { p = t.pinned != 0 })
	return p
}

// SetScrollingRootContent implements RootContentTarget.
func (t *AnimatedTarget) SetScrollingRootContent(isRootContent bool) {
	t.with(func() { t.rootContent = isRootContent })
}

// ScrollingRootContent reports whether the engine is scrolling the root
// document.
func (t *AnimatedTarget) ScrollingRootContent() bool {
	var r bool
	t.with(func() { r = t.rootContent })
	return r
}
