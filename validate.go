package panzoom

import "math"

// MaxZoom is the zoom ceiling used when the page sets no maximum.
const MaxZoom = 8.0

// Validate returns the nearest metrics with no overscrolled area visible.
//
// The zoom factor is first brought into [min, max], where min is raised so
// the page is at least as large as the viewport on both axes, then the
// viewport is panned back inside the page. When an axis of the page is
// smaller than the viewport, the zoom on that axis is anchored at the
// top/left edge instead of the viewport center, so differing scale factors
// per axis cannot leave the viewport scrolled to the far end of one axis.
func Validate(m ViewportMetrics, c ZoomConstraints) ViewportMetrics {
	zoom := m.ZoomFactor
	viewport := m.Viewport
	page := m.PageRect

	focus := m.ViewportCenter()

	minZoom := 0.0
	maxZoom := MaxZoom
	if c.restrictsMin() {
		minZoom = c.MinZoom
	}
	if c.restrictsMax() {
		maxZoom = c.MaxZoom
	}

	if page.Width > 0 {
		minZoom = math.Max(minZoom, zoom*(viewport.Width/page.Width))
		if viewport.Width > page.Width {
			focus.X = 0
		}
	}
	if page.Height > 0 {
		minZoom = math.Max(minZoom, zoom*(viewport.Height/page.Height))
		if viewport.Height > page.Height {
			focus.Y = 0
		}
	}

	maxZoom = math.Max(maxZoom, minZoom)

	switch {
	case zoom < minZoom:
		m = m.ScaleTo(minZoom, focus)
	case zoom > maxZoom && maxZoom > 0:
		m = m.ScaleTo(maxZoom, m.ViewportCenter())
	}

	return m.Clamp()
}
