package ecs

import (
	"github.com/soninewmedia/kinetic"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MotionEventType is the Donburi event type for kinetic motion events.
// Subscribe to this in your ECS systems to receive hover, measurement and
// visibility events.
var MotionEventType = events.NewEventType[kinetic.MotionEvent]()

// HoverData mirrors the latest motion state of one element on its entity.
type HoverData struct {
	ElementID string
	Over      bool
	RelX      float64
	RelY      float64
	Rect      kinetic.Rect
	Measured  bool
	Visible   bool
}

// Hover is the component Bind attaches to element entities.
var Hover = donburi.NewComponentType[HoverData]()

// DonburiStore is an EntityStore backed by a Donburi world. Every event is
// published to MotionEventType; events for bound elements also update the
// entity's Hover component.
type DonburiStore struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are consumed with MotionEventType.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[string]donburi.Entity)}
}

// Bind returns the entity mirroring element id, creating it with a Hover
// component on first use.
func (s *DonburiStore) Bind(id string) donburi.Entity {
	if entity, ok := s.entities[id]; ok && s.world.Valid(entity) {
		return entity
	}
	entity := s.world.Create(Hover)
	entry := s.world.Entry(entity)
	Hover.Set(entry, &HoverData{ElementID: id, RelX: 0.5, RelY: 0.5})
	s.entities[id] = entity
	return entity
}

// Unbind removes the entity mirroring element id.
func (s *DonburiStore) Unbind(id string) {
	entity, ok := s.entities[id]
	if !ok {
		return
	}
	delete(s.entities, id)
	if s.world.Valid(entity) {
		s.world.Remove(entity)
	}
}

// Entity returns the entity bound to element id.
func (s *DonburiStore) Entity(id string) (donburi.Entity, bool) {
	entity, ok := s.entities[id]
	if !ok || !s.world.Valid(entity) {
		return donburi.Null, false
	}
	return entity, true
}

// EmitEvent implements kinetic.EntityStore.
func (s *DonburiStore) EmitEvent(event kinetic.MotionEvent) {
	MotionEventType.Publish(s.world, event)

	entity, ok := s.Entity(event.ElementID)
	if !ok {
		return
	}
	h := Hover.Get(s.world.Entry(entity))
	switch event.Type {
	case kinetic.EventHoverEnter:
		h.Over = true
		h.RelX, h.RelY = event.RelX, event.RelY
		h.Rect = event.Rect
	case kinetic.EventHoverLeave:
		h.Over = false
		h.RelX, h.RelY = event.RelX, event.RelY
		h.Rect = event.Rect
	case kinetic.EventRectMeasured:
		h.Measured = true
		h.Rect = event.Rect
	case kinetic.EventElementShown:
		h.Visible = true
	case kinetic.EventElementHidden:
		h.Visible = false
	}
}
