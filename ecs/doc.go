// Package ecs provides ECS adapters for kinetic's motion events.
//
// The primary adapter is [NewDonburiStore], which bridges kinetic motion
// events (hover enter/leave, first measurement, shown/hidden) into a
// [Donburi] world as typed events. Subscribe to [MotionEventType] in your
// ECS systems to receive them, or [DonburiStore.Bind] an element id to an
// entity carrying a [Hover] component that tracks the element's state.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEntityStore(store)
//	card := store.Bind("card")
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
