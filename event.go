package panzoom

// PointerCoords describes one pointer of a raw platform event.
type PointerCoords struct {
	ID          int32
	X, Y        float64
	Orientation float64
	Pressure    float64
	ToolMajor   float64 // major axis of the contact ellipse
	ToolMinor   float64 // minor axis of the contact ellipse
}

// MotionEvent is a raw input event as delivered by the platform.
//
// DownTime is the gesture epoch: the event time of the ActionDown that
// started the gesture this event belongs to. Times are milliseconds on the
// platform's monotonic event clock.
type MotionEvent struct {
	Action      Action
	ActionIndex int // pointer slot that triggered Action
	DownTime    int64
	EventTime   int64
	MetaState   KeyModifiers
	ButtonState ButtonState
	Source      Source
	Pointers    []PointerCoords

	// Scroll deltas in wheel units, valid for ActionScroll.
	HScroll float64
	VScroll float64
}

// PointerCount returns the number of pointers carried by the event.
func (e *MotionEvent) PointerCount() int {
	return len(e.Pointers)
}

// MotionBatch is the canonical, fixed-shape form of a touch event forwarded
// to the engine. The per-pointer slices are parallel and indexed by pointer
// slot; all have the same length.
type MotionBatch struct {
	Action      Action
	ActionIndex int
	Time        int64
	Modifiers   KeyModifiers

	PointerIDs  []int32
	X           []float64
	Y           []float64
	Orientation []float64
	Pressure    []float64
	ToolMajor   []float64
	ToolMinor   []float64
}

// Len returns the number of pointer slots in the batch.
func (b *MotionBatch) Len() int {
	return len(b.PointerIDs)
}

// ScrollEvent is the normalized form of a wheel or touchpad scroll.
type ScrollEvent struct {
	Time      int64
	Modifiers KeyModifiers
	X, Y      float64
	HScroll   float64 // pixels
	VScroll   float64 // pixels
}

// MouseEvent is the normalized form of a hover event.
type MouseEvent struct {
	Action    Action
	Time      int64
	Modifiers KeyModifiers
	X, Y      float64
	Buttons   ButtonState
}
