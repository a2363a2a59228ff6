package panzoom

import "fmt"

// ViewportMetrics is an immutable snapshot of the zoom and pan state: the
// visible region, the page bounds, and the zoom factor they were measured at.
//
// PageRect is expressed at the current zoom (scaling the metrics scales the
// page with it). A zero PageRect means the page size is not known yet.
// Values are never mutated in place; every operation returns a new snapshot.
type ViewportMetrics struct {
	ZoomFactor float64
	Viewport   Rect
	PageRect   Rect
}

// NewViewportMetrics returns metrics for the given viewport and page. A zoom
// factor that is not finite and positive is replaced with 1.
func NewViewportMetrics(viewport, page Rect, zoom float64) ViewportMetrics {
	if !isFinite(zoom) || zoom <= 0 {
		zoom = 1
	}
	return ViewportMetrics{ZoomFactor: zoom, Viewport: viewport, PageRect: page}
}

// Origin returns the top-left corner of the viewport.
func (m ViewportMetrics) Origin() PointF {
	return PointF{X: m.Viewport.X, Y: m.Viewport.Y}
}

// ViewportCenter returns the center of the viewport relative to its origin.
func (m ViewportMetrics) ViewportCenter() PointF {
	return PointF{X: m.Viewport.Width / 2, Y: m.Viewport.Height / 2}
}

// ScaleTo returns metrics zoomed to newZoom while keeping focus fixed.
// focus is relative to the viewport origin, so (0, 0) anchors the top-left
// corner and ViewportCenter() anchors the middle.
func (m ViewportMetrics) ScaleTo(newZoom float64, focus PointF) ViewportMetrics {
	if !isFinite(newZoom) || newZoom <= 0 {
		return m
	}
	factor := newZoom / m.ZoomFactor

	ox := (m.Viewport.X+focus.X)*factor - focus.X
	oy := (m.Viewport.Y+focus.Y)*factor - focus.Y

	return ViewportMetrics{
		ZoomFactor: newZoom,
		Viewport:   Rect{X: ox, Y: oy, Width: m.Viewport.Width, Height: m.Viewport.Height},
		PageRect:   m.PageRect.Scale(factor),
	}
}

// OffsetViewportBy returns metrics with the viewport translated by (dx, dy).
func (m ViewportMetrics) OffsetViewportBy(dx, dy float64) ViewportMetrics {
	m.Viewport = m.Viewport.Offset(dx, dy)
	return m
}

// OffsetViewportByAndClamp translates the viewport and then clamps it into
// the page.
func (m ViewportMetrics) OffsetViewportByAndClamp(dx, dy float64) ViewportMetrics {
	return m.OffsetViewportBy(dx, dy).Clamp()
}

// Clamp returns metrics whose viewport is panned back inside the page. The
// zoom factor is left untouched. When the page is narrower (or shorter) than
// the viewport the viewport aligns with the page's left (or top) edge.
// Metrics with an unknown page are returned unchanged.
func (m ViewportMetrics) Clamp() ViewportMetrics {
	if m.PageRect.IsEmpty() {
		return m
	}
	vp := m.Viewport
	page := m.PageRect

	if vp.Right() > page.Right() {
		vp.X += page.Right() - vp.Right()
	}
	if vp.X < page.X {
		vp.X = page.X
	}
	if vp.Bottom() > page.Bottom() {
		vp.Y += page.Bottom() - vp.Bottom()
	}
	if vp.Y < page.Y {
		vp.Y = page.Y
	}

	m.Viewport = vp
	return m
}

// FuzzyEquals reports whether the two snapshots match within a small
// tolerance on every component.
func (m ViewportMetrics) FuzzyEquals(other ViewportMetrics) bool {
	return fuzzyEqual(m.ZoomFactor, other.ZoomFactor) &&
		fuzzyRectEqual(m.Viewport, other.Viewport) &&
		fuzzyRectEqual(m.PageRect, other.PageRect)
}

// Interpolate returns the snapshot t of the way from m to to (t in [0, 1]).
func (m ViewportMetrics) Interpolate(to ViewportMetrics, t float64) ViewportMetrics {
	if t <= 0 {
		return m
	}
	if t >= 1 {
		return to
	}
	return ViewportMetrics{
		ZoomFactor: lerp(m.ZoomFactor, to.ZoomFactor, t),
		Viewport:   lerpRect(m.Viewport, to.Viewport, t),
		PageRect:   lerpRect(m.PageRect, to.PageRect, t),
	}
}

func (m ViewportMetrics) String() string {
	return fmt.Sprintf("zoom=%.4f viewport=(%.1f,%.1f %.1fx%.1f) page=(%.1f,%.1f %.1fx%.1f)",
		m.ZoomFactor,
		m.Viewport.X, m.Viewport.Y, m.Viewport.Width, m.Viewport.Height,
		m.PageRect.X, m.PageRect.Y, m.PageRect.Width, m.PageRect.Height)
}

const fuzzyEpsilon = 1e-4

func fuzzyEqual(a, b float64) bool {
	d := a - b
	return d < fuzzyEpsilon && d > -fuzzyEpsilon
}

func fuzzyRectEqual(a, b Rect) bool {
	return fuzzyEqual(a.X, b.X) && fuzzyEqual(a.Y, b.Y) &&
		fuzzyEqual(a.Width, b.Width) && fuzzyEqual(a.Height, b.Height)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      lerp(a.X, b.X, t),
		Y:      lerp(a.Y, b.Y, t),
		Width:  lerp(a.Width, b.Width, t),
		Height: lerp(a.Height, b.Height, t),
	}
}
