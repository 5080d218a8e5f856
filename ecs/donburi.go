package ecs

import (
	"github.com/phanxgames/panzoom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ZoomEventType is the Donburi event type for panzoom zoom events.
var ZoomEventType = events.NewEventType[panzoom.ZoomEvent]()

// NewDonburiSink returns a zoom handler that publishes each event to
// ZoomEventType in world. Events are queued until ProcessEvents runs.
func NewDonburiSink(world donburi.World) func(panzoom.ZoomEvent) {
	return func(e panzoom.ZoomEvent) {
		ZoomEventType.Publish(world, e)
	}
}

// Bridge subscribes a Donburi sink for world to bus. Remove the returned
// subscription to stop forwarding.
func Bridge(bus *panzoom.ZoomBus, world donburi.World) panzoom.Subscription {
	return bus.Subscribe(NewDonburiSink(world))
}
