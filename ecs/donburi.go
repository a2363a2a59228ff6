// Package ecs provides ECS adapters for panzoom.
package ecs

import (
	"github.com/phanxgames/panzoom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ControllerEventType is the Donburi event type for panzoom controller events.
// Subscribe to this in your ECS systems to receive gesture and overscroll events.
var ControllerEventType = events.NewEventType[panzoom.ControllerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Controller events are published to ControllerEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) panzoom.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event panzoom.ControllerEvent) {
	ControllerEventType.Publish(s.world, event)
}
