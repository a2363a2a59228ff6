package panzoom

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers    = 10 // pointer 0 = mouse, 1-9 = touch
	mousePointerID = 0
)

// MotionHandler receives the events a TouchBridge synthesizes.
// *Controller implements it.
type MotionHandler interface {
	OnTouchEvent(ev MotionEvent) bool
	OnMotionEvent(ev MotionEvent) bool
}

// inputSource abstracts the device state a TouchBridge polls each frame.
type inputSource interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	CursorPosition() (int, int)
	Wheel() (float64, float64)
	MouseButtons() ButtonState
	Modifiers() KeyModifiers
}

// ebitenSource reads input state from ebiten. Only valid inside the game
// loop's Update.
type ebitenSource struct{}

func (ebitenSource) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenSource) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenSource) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

func (ebitenSource) MouseButtons() ButtonState {
	var b ButtonState
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		b |= ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		b |= ButtonSecondary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		b |= ButtonTertiary
	}
	return b
}

func (ebitenSource) Modifiers() KeyModifiers {
	return readModifiers()
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// --- Per-pointer state ---

type activePointer struct {
	id       int32
	x, y     float64
	source   Source
	injected bool
}

// TouchBridge turns per-frame device state into the MotionEvent stream a
// platform would deliver: ActionDown for the first pointer, ActionPointerDown
// and ActionPointerUp for additional pointers, one ActionMove per frame in
// which anything moved, and ActionUp when the last pointer lifts. Mouse
// movement without a pressed button becomes ActionHoverMove and the wheel
// becomes ActionScroll.
//
// Call Update once per frame on the UI goroutine.
type TouchBridge struct {
	handler MotionHandler
	src     inputSource
	clock   func() int64

	pointers []activePointer // in down order; index is the event's pointer slot
	downTime int64

	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID

	cursorX, cursorY float64
	cursorSeen       bool

	injectQueue []syntheticEvent
	script      *GestureScript
}

// NewTouchBridge creates a bridge that polls ebiten input and delivers
// events to h.
func NewTouchBridge(h MotionHandler) *TouchBridge {
	return newTouchBridge(h, ebitenSource{})
}

// NewHeadlessTouchBridge creates a bridge without a device. Only injected
// input reaches h.
func NewHeadlessTouchBridge(h MotionHandler) *TouchBridge {
	return newTouchBridge(h, nil)
}

func newTouchBridge(h MotionHandler, src inputSource) *TouchBridge {
	return &TouchBridge{
		handler: h,
		src:     src,
		clock:   func() int64 { return time.Now().UnixMilli() },
	}
}

// SetClock replaces the millisecond event clock. Tests use it to get
// deterministic event times.
func (b *TouchBridge) SetClock(clock func() int64) {
	if clock != nil {
		b.clock = clock
	}
}

// ActivePointers returns the number of pointers currently down.
func (b *TouchBridge) ActivePointers() int {
	return len(b.pointers)
}

// Update runs the attached script, then delivers one queued injected event
// or, when nothing is injected, polls the device.
func (b *TouchBridge) Update() {
	if b.script != nil {
		b.script.step(b)
	}

	var mods KeyModifiers
	if b.src != nil {
		mods = b.src.Modifiers()
	}
	if b.processInjectedInput(mods) {
		return
	}
	if b.src == nil || b.hasInjectedPointers() {
		return
	}
	b.pollMouse(mods)
	b.pollTouches(mods)
	b.pollWheel(mods)
}

// CancelAll aborts the current gesture with ActionCancel and forgets every
// pointer.
func (b *TouchBridge) CancelAll() {
	if len(b.pointers) == 0 {
		return
	}
	b.emitTouch(ActionCancel, 0, 0, b.pointers[0].source, b.clock())
	b.pointers = b.pointers[:0]
	for i := range b.touchUsed {
		b.touchUsed[i] = false
		b.touchMap[i] = 0
	}
}

// --- Device polling ---

// pollMouse treats a pressed mouse button as pointer 0 and reports hover
// movement otherwise.
func (b *TouchBridge) pollMouse(mods KeyModifiers) {
	mx, my := b.src.CursorPosition()
	x, y := float64(mx), float64(my)
	buttons := b.src.MouseButtons()
	moved := b.cursorSeen && (x != b.cursorX || y != b.cursorY)
	b.cursorX, b.cursorY, b.cursorSeen = x, y, true

	held := b.indexOf(mousePointerID) >= 0
	switch {
	case buttons != 0 && !held:
		b.pointerDown(mousePointerID, x, y, SourceMouse, false, mods)
	case buttons != 0 && held:
		if b.setPosition(mousePointerID, x, y) {
			b.emitMove(mods)
		}
	case buttons == 0 && held:
		b.pointerUp(mousePointerID, x, y, mods)
	case moved:
		now := b.clock()
		b.handler.OnMotionEvent(MotionEvent{
			Action:    ActionHoverMove,
			DownTime:  now,
			EventTime: now,
			MetaState: mods,
			Source:    SourceMouse,
			Pointers:  []PointerCoords{{ID: mousePointerID, X: x, Y: y}},
		})
	}
}

// pollTouches handles touch input (pointers 1-9).
func (b *TouchBridge) pollTouches(mods KeyModifiers) {
	touchIDs := b.src.AppendTouchIDs(b.touchIDs[:0])
	b.touchIDs = touchIDs

	var activeSlots [maxPointers]bool
	moved := false
	for _, tid := range touchIDs {
		slot := b.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := b.src.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		if b.indexOf(int32(slot)) < 0 {
			b.pointerDown(int32(slot), x, y, SourceTouchscreen, false, mods)
		} else if b.setPosition(int32(slot), x, y) {
			moved = true
		}
	}
	if moved {
		b.emitMove(mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !activeSlots[i] {
			if idx := b.indexOf(int32(i)); idx >= 0 {
				p := b.pointers[idx]
				b.pointerUp(p.id, p.x, p.y, mods)
			}
			b.touchUsed[i] = false
			b.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (b *TouchBridge) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && b.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (b *TouchBridge) pollWheel(mods KeyModifiers) {
	dx, dy := b.src.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	b.emitScroll(b.cursorX, b.cursorY, dx, dy, SourceMouse, mods)
}

// --- Event synthesis ---

func (b *TouchBridge) indexOf(id int32) int {
	for i := range b.pointers {
		if b.pointers[i].id == id {
			return i
		}
	}
	return -1
}

func (b *TouchBridge) hasInjectedPointers() bool {
	for i := range b.pointers {
		if b.pointers[i].injected {
			return true
		}
	}
	return false
}

// setPosition updates a held pointer and reports whether it moved.
func (b *TouchBridge) setPosition(id int32, x, y float64) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	p := &b.pointers[idx]
	if p.x == x && p.y == y {
		return false
	}
	p.x, p.y = x, y
	return true
}

func (b *TouchBridge) pointerDown(id int32, x, y float64, src Source, injected bool, mods KeyModifiers) {
	if b.indexOf(id) >= 0 {
		if b.setPosition(id, x, y) {
			b.emitMove(mods)
		}
		return
	}
	b.pointers = append(b.pointers, activePointer{id: id, x: x, y: y, source: src, injected: injected})
	now := b.clock()
	if len(b.pointers) == 1 {
		b.downTime = now
		b.emitTouch(ActionDown, 0, mods, src, now)
		return
	}
	b.emitTouch(ActionPointerDown, len(b.pointers)-1, mods, src, now)
}

func (b *TouchBridge) pointerUp(id int32, x, y float64, mods KeyModifiers) {
	idx := b.indexOf(id)
	if idx < 0 {
		return
	}
	p := &b.pointers[idx]
	p.x, p.y = x, y
	src := p.source
	if len(b.pointers) == 1 {
		b.emitTouch(ActionUp, 0, mods, src, b.clock())
	} else {
		b.emitTouch(ActionPointerUp, idx, mods, src, b.clock())
	}
	b.pointers = append(b.pointers[:idx], b.pointers[idx+1:]...)
}

func (b *TouchBridge) emitMove(mods KeyModifiers) {
	if len(b.pointers) == 0 {
		return
	}
	b.emitTouch(ActionMove, 0, mods, b.pointers[0].source, b.clock())
}

// emitTouch delivers the current pointer set. Released pointers are still
// included in their release event.
func (b *TouchBridge) emitTouch(action Action, index int, mods KeyModifiers, src Source, now int64) {
	coords := make([]PointerCoords, len(b.pointers))
	for i, p := range b.pointers {
		coords[i] = PointerCoords{ID: p.id, X: p.x, Y: p.y, Pressure: 1}
	}
	var buttons ButtonState
	if src == SourceMouse && action != ActionUp && action != ActionCancel {
		buttons = ButtonPrimary
	}
	b.handler.OnTouchEvent(MotionEvent{
		Action:      action,
		ActionIndex: index,
		DownTime:    b.downTime,
		EventTime:   now,
		MetaState:   mods,
		ButtonState: buttons,
		Source:      src,
		Pointers:    coords,
	})
}

// emitScroll delivers a scroll. While a gesture is in progress the scroll
// carries that gesture's epoch so it does not supersede it.
func (b *TouchBridge) emitScroll(x, y, h, v float64, src Source, mods KeyModifiers) {
	now := b.clock()
	down := now
	if len(b.pointers) > 0 {
		down = b.downTime
	}
	b.handler.OnMotionEvent(MotionEvent{
		Action:    ActionScroll,
		DownTime:  down,
		EventTime: now,
		MetaState: mods,
		Source:    src,
		Pointers:  []PointerCoords{{X: x, Y: y}},
		HScroll:   h,
		VScroll:   v,
	})
}
