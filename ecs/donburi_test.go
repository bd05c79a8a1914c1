package ecs

import (
	"testing"

	"github.com/phanxgames/keepsake"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	if _, ok := State(world); !ok {
		t.Fatal("sink did not create its state entity")
	}
}

func TestDonburiSink_Emit(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []keepsake.Event
	ChoreographyEventType.Subscribe(world, func(w donburi.World, e keepsake.Event) {
		received = append(received, e)
	})

	sink.Emit(keepsake.Event{Type: keepsake.EventSectionChange, SectionID: "gallery"})
	sink.Emit(keepsake.Event{Type: keepsake.EventCarouselIndex, Index: 3})

	// Events are queued until processed.
	ChoreographyEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != keepsake.EventSectionChange || e.SectionID != "gallery" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != keepsake.EventCarouselIndex || e.Index != 3 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_State(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	sink.Emit(keepsake.Event{Type: keepsake.EventScreenChange, Stage: keepsake.StageInvitation})
	sink.Emit(keepsake.Event{Type: keepsake.EventHintShown, Hint: "tooltip"})
	sink.Emit(keepsake.Event{Type: keepsake.EventCardIndex, Index: 2})

	st, ok := State(world)
	if !ok {
		t.Fatal("no state")
	}
	if st.Stage != keepsake.StageInvitation || st.CardIndex != 2 {
		t.Errorf("state = %+v", st)
	}
	if len(st.Hints) != 1 || st.Hints[0] != "tooltip" {
		t.Errorf("Hints = %v, want [tooltip]", st.Hints)
	}

	sink.Emit(keepsake.Event{Type: keepsake.EventScreenChange, Stage: keepsake.StageMain})
	if st, _ := State(world); len(st.Hints) != 0 {
		t.Errorf("Hints after screen change = %v, want empty", st.Hints)
	}
}

func TestDonburiSink_StateSnapshot(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	sink.Emit(keepsake.Event{Type: keepsake.EventScreenChange, Stage: keepsake.StageInvitation})
	sink.Emit(keepsake.Event{Type: keepsake.EventHintShown, Hint: "tooltip"})
	before, _ := State(world)

	sink.Emit(keepsake.Event{Type: keepsake.EventScreenChange, Stage: keepsake.StageMain})
	sink.Emit(keepsake.Event{Type: keepsake.EventHintShown, Hint: "scroll"})

	if len(before.Hints) != 1 || before.Hints[0] != "tooltip" {
		t.Errorf("earlier snapshot Hints = %v, want [tooltip]", before.Hints)
	}
	before.Hints[0] = "changed"
	if st, _ := State(world); len(st.Hints) != 1 || st.Hints[0] != "scroll" {
		t.Errorf("Hints = %v, want [scroll]", st.Hints)
	}
}

func TestDonburiSink_FromScope(t *testing.T) {
	world := donburi.NewWorld()
	scope := keepsake.NewScope(keepsake.ScopeConfig{})
	scope.SetEventSink(NewDonburiSink(world))

	scope.Tracker().Register("greeting", 0.8)
	seq := scope.NewSequencer()
	seq.Next()
	scope.Update(0.25)
	scope.Update(0.25)

	st, _ := State(world)
	if st.SectionID != "greeting" {
		t.Errorf("SectionID = %q, want greeting", st.SectionID)
	}
	if st.Stage != keepsake.StageInvitation {
		t.Errorf("Stage = %v, want invitation", st.Stage)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ChoreographyEventType.Subscribe(world, func(w donburi.World, e keepsake.Event) {
		count1++
	})
	ChoreographyEventType.Subscribe(world, func(w donburi.World, e keepsake.Event) {
		count2++
	})

	sink.Emit(keepsake.Event{Type: keepsake.EventHintShown, Hint: "scroll"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
