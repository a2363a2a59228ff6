// Package ecs provides ECS adapters for panzoom's controller events.
//
// The primary adapter is [NewDonburiSink], which bridges controller events
// (gesture end, stale rejection, overscroll, destroy) into a [Donburi] world
// as typed events. Subscribe to [ControllerEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ctrl := panzoom.NewController(native, target, panzoom.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
