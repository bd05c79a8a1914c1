package ecs

import (
	"slices"

	"github.com/phanxgames/keepsake"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChoreographyEventType is the Donburi event type for keepsake events.
var ChoreographyEventType = events.NewEventType[keepsake.Event]()

// ChoreographyState mirrors the latest value of every notification.
type ChoreographyState struct {
	SectionID     string
	Stage         keepsake.Stage
	CarouselIndex int
	CardIndex     int
	Hints         []string
}

// StateComponent holds the ChoreographyState on the sink's entity.
var StateComponent = donburi.NewComponentType[ChoreographyState]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to ChoreographyEventType and can be consumed with
// events.Subscribe and ProcessEvents. The sink also creates one entity
// carrying StateComponent, updated synchronously on every Emit.
func NewDonburiSink(world donburi.World) keepsake.EventSink {
	return &donburiSink{world: world, entity: world.Create(StateComponent)}
}

func (s *donburiSink) Emit(event keepsake.Event) {
	if s.world.Valid(s.entity) {
		st := StateComponent.Get(s.world.Entry(s.entity))
		switch event.Type {
		case keepsake.EventSectionChange:
			st.SectionID = event.SectionID
		case keepsake.EventScreenChange:
			st.Stage = event.Stage
			st.Hints = nil
		case keepsake.EventCarouselIndex:
			st.CarouselIndex = event.Index
		case keepsake.EventCardIndex:
			st.CardIndex = event.Index
		case keepsake.EventHintShown:
			st.Hints = append(st.Hints, event.Hint)
		}
	}
	ChoreographyEventType.Publish(s.world, event)
}

// State returns a snapshot of the mirrored state of the first sink created
// in world. Later events do not change a returned snapshot.
func State(world donburi.World) (ChoreographyState, bool) {
	entry, ok := StateComponent.First(world)
	if !ok {
		return ChoreographyState{}, false
	}
	st := *StateComponent.Get(entry)
	st.Hints = slices.Clone(st.Hints)
	return st, true
}
