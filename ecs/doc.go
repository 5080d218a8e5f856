// Package ecs provides ECS adapters for panzoom's zoom events.
//
// [Bridge] subscribes to a [panzoom.ZoomBus] and republishes every zoom
// event into a [Donburi] world as [ZoomEventType]. Subscribe to it in your
// ECS systems to react to zoom changes:
//
//	sub := ecs.Bridge(bus, world)
//	defer sub.Remove()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
