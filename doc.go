// Package panzoom is the input side of a pan/zoom controller for a
// content-rendering engine.
//
// It sits between the platform's input events and the engine: raw touch,
// wheel and hover events are normalized into fixed-shape batches for the
// engine, stale events from superseded gestures are dropped, and when a
// multi-finger gesture ends the viewport is snapped back into valid bounds
// with [Validate].
//
// # Quick start
//
// Implement [Native] for the engine boundary and [Target] for the viewport
// owner (or use [AnimatedTarget]), then feed platform events to a
// [Controller] on the UI goroutine:
//
//	target := panzoom.NewAnimatedTarget(metrics, panzoom.DefaultZoomConstraints)
//	ctrl := panzoom.NewController(engine, target)
//
//	consumed := ctrl.OnTouchEvent(ev)
//
// With [Ebitengine], a [TouchBridge] polls touches, the cursor and the wheel
// each frame and synthesizes the events for you:
//
//	bridge := panzoom.NewTouchBridge(ctrl)
//	looper := ctrl.Dispatcher().(*panzoom.Looper)
//
//	func (g *Game) Update() error {
//		g.looper.Drain()
//		g.bridge.Update()
//		g.target.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
// # Threading
//
// Input methods run on the UI goroutine. Engine callbacks such as
// [Controller.UpdateOverscrollVelocity] may arrive on any goroutine; they
// are marshalled onto the UI goroutine through the controller's
// [Dispatcher]. The default dispatcher is a [Looper] bound to the goroutine
// that created the controller.
//
// # Configuration
//
// [LoadConfig] reads an optional YAML file selecting the gesture end policy
// ([CountMatchPolicy] or [DebouncePolicy]), the wheel scroll factor and the
// settle animation length. Preferences such as [PrefNegateWheelScroll] are
// observed through [Preferences]; [PrefStore] is a TOML-backed
// implementation. Events can be forwarded into a [Donburi] world with the
// adapter in panzoom/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package panzoom
