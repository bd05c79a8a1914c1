// Package ecs provides ECS adapters for keepsake's choreography events.
//
// The primary adapter is [NewDonburiSink], which bridges scope notifications
// (active section, screen, carousel and card index, hints) into a [Donburi]
// world as typed events and mirrors the latest values into a singleton
// [StateComponent]. Subscribe to [ChoreographyEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scope.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
