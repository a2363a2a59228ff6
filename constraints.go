package panzoom

// ZoomConstraints is the zoom policy supplied by the page. A non-positive
// MinZoom or MaxZoom means "no limit" unless AllowZoom is false, in which
// case both values are taken literally.
type ZoomConstraints struct {
	MinZoom   float64
	MaxZoom   float64
	AllowZoom bool
}

// DefaultZoomConstraints allows zooming with no page-imposed limits.
var DefaultZoomConstraints = ZoomConstraints{AllowZoom: true}

// FixedZoom returns constraints that pin the zoom factor to zoom.
func FixedZoom(zoom float64) ZoomConstraints {
	return ZoomConstraints{MinZoom: zoom, MaxZoom: zoom, AllowZoom: false}
}

// restrictsMin reports whether MinZoom participates in validation.
func (c ZoomConstraints) restrictsMin() bool {
	return c.MinZoom > 0 || !c.AllowZoom
}

// restrictsMax reports whether MaxZoom participates in validation.
func (c ZoomConstraints) restrictsMax() bool {
	return c.MaxZoom > 0 || !c.AllowZoom
}
