package panzoom

type injectKind uint8

const (
	injectDown injectKind = iota
	injectMove
	injectUp
	injectScroll
)

type syntheticPointer struct {
	id   int32
	x, y float64
}

// syntheticEvent is one queued frame of injected input. A move may carry
// several pointers that all change position in the same frame.
type syntheticEvent struct {
	kind             injectKind
	pointers         []syntheticPointer
	hscroll, vscroll float64
}

// Pointer IDs used by InjectPinch.
const (
	PinchPointerA int32 = 100
	PinchPointerB int32 = 101
)

// InjectDown queues a pointer going down at the given screen coordinates.
// Each queued event is delivered on its own Update call.
func (b *TouchBridge) InjectDown(id int32, x, y float64) {
	b.inject(syntheticEvent{kind: injectDown, pointers: []syntheticPointer{{id, x, y}}})
}

// InjectMove queues a move of a pointer previously injected with InjectDown.
func (b *TouchBridge) InjectMove(id int32, x, y float64) {
	b.inject(syntheticEvent{kind: injectMove, pointers: []syntheticPointer{{id, x, y}}})
}

// InjectUp queues a pointer release at the given screen coordinates.
func (b *TouchBridge) InjectUp(id int32, x, y float64) {
	b.inject(syntheticEvent{kind: injectUp, pointers: []syntheticPointer{{id, x, y}}})
}

// InjectScroll queues a wheel scroll at (x, y) with deltas in wheel units.
func (b *TouchBridge) InjectScroll(x, y, hscroll, vscroll float64) {
	b.inject(syntheticEvent{
		kind:     injectScroll,
		pointers: []syntheticPointer{{0, x, y}},
		hscroll:  hscroll,
		vscroll:  vscroll,
	})
}

// InjectTap is a convenience that queues a down followed by an up at the
// same screen coordinates. Consumes two frames.
func (b *TouchBridge) InjectTap(id int32, x, y float64) {
	b.InjectDown(id, x, y)
	b.InjectUp(id, x, y)
}

// InjectDrag queues a one-finger drag: down at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and up at (toX, toY).
// Minimum frames is 2 (down + up).
func (b *TouchBridge) InjectDrag(id int32, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	b.InjectDown(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectUp(id, toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy). The fingers
// sit on a horizontal line fromSpan apart, move apart or together over the
// intermediate frames until they are toSpan apart, and lift in reverse
// order. Minimum frames is 4 (two downs + two ups).
func (b *TouchBridge) InjectPinch(cx, cy, fromSpan, toSpan float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	b.InjectDown(PinchPointerA, cx-fromSpan/2, cy)
	b.InjectDown(PinchPointerB, cx+fromSpan/2, cy)
	steps := frames - 4
	for i := 1; i <= steps; i++ {
		span := fromSpan + (toSpan-fromSpan)*float64(i)/float64(steps)
		b.inject(syntheticEvent{kind: injectMove, pointers: []syntheticPointer{
			{PinchPointerA, cx - span/2, cy},
			{PinchPointerB, cx + span/2, cy},
		}})
	}
	b.InjectUp(PinchPointerB, cx+toSpan/2, cy)
	b.InjectUp(PinchPointerA, cx-toSpan/2, cy)
}

// PendingInjections returns the number of queued injected events.
func (b *TouchBridge) PendingInjections() int {
	return len(b.injectQueue)
}

func (b *TouchBridge) inject(ev syntheticEvent) {
	b.injectQueue = append(b.injectQueue, ev)
}

// processInjectedInput pops one event from the inject queue and delivers it.
// Returns true if an event was consumed (device polling should be skipped).
func (b *TouchBridge) processInjectedInput(mods KeyModifiers) bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue[len(b.injectQueue)-1] = syntheticEvent{}
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	switch evt.kind {
	case injectDown:
		p := evt.pointers[0]
		b.pointerDown(p.id, p.x, p.y, SourceTouchscreen, true, mods)
	case injectMove:
		moved := false
		for _, p := range evt.pointers {
			if b.setPosition(p.id, p.x, p.y) {
				moved = true
			}
		}
		if moved {
			b.emitMove(mods)
		}
	case injectUp:
		p := evt.pointers[0]
		b.pointerUp(p.id, p.x, p.y, mods)
	case injectScroll:
		p := evt.pointers[0]
		b.emitScroll(p.x, p.y, evt.hscroll, evt.vscroll, SourceMouse, mods)
	}
	return true
}
