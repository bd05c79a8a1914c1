package keepsake

import "testing"

func TestInjectTap(t *testing.T) {
	s := NewScope(ScopeConfig{})
	target := NewTarget("t", HitRect{Width: 100, Height: 100})
	s.AddTarget(target)

	var clicked bool
	s.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.Target != target {
			t.Error("expected target")
		}
	})

	s.InjectTap(50, 50)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}

	// Frame 1: press
	s.Update(0.25)
	if s.PendingInput() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", s.PendingInput())
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release → click fires
	s.Update(0.25)
	if s.PendingInput() != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", s.PendingInput())
	}
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewScope(ScopeConfig{})
	s.AddTarget(NewTarget("t", HitRect{Width: 400, Height: 400}))

	var events []string
	s.OnDragStart(func(ctx DragContext) { events = append(events, "dragstart") })
	s.OnDrag(func(ctx DragContext) { events = append(events, "drag") })
	s.OnDragEnd(func(ctx DragContext) { events = append(events, "dragend") })

	// Drag from (10,10) to (200,200) over 5 frames:
	// frame 0: press at (10,10)
	// frame 1: move to ~(57.5, 57.5)
	// frame 2: move to ~(105, 105)
	// frame 3: move to ~(152.5, 152.5)
	// frame 4: release at (200, 200)
	s.InjectDrag(10, 10, 200, 200, 5)
	if s.PendingInput() != 5 {
		t.Fatalf("expected 5 queued events, got %d", s.PendingInput())
	}

	// Drain all frames.
	for i := 0; i < 5; i++ {
		s.Update(0.25)
	}

	if len(events) < 3 {
		t.Fatalf("expected at least 3 events, got %v", events)
	}
	if events[0] != "dragstart" {
		t.Errorf("first event should be dragstart, got %s", events[0])
	}
	if events[len(events)-1] != "dragend" {
		t.Errorf("last event should be dragend, got %s", events[len(events)-1])
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScope(ScopeConfig{})
	s.InjectDrag(0, 0, 100, 100, 1) // should clamp to 2
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", s.PendingInput())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScope(ScopeConfig{})

	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)

	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 events, got %d", len(s.injectQueue))
	}

	// Verify order: press, move, release.
	if !s.injectQueue[0].pressed || s.injectQueue[0].x != 10 {
		t.Error("first event should be press at (10,20)")
	}
	if !s.injectQueue[1].pressed || s.injectQueue[1].x != 30 {
		t.Error("second event should be move at (30,40)")
	}
	if s.injectQueue[2].pressed || s.injectQueue[2].x != 50 {
		t.Error("third event should be release at (50,60)")
	}
}

func TestInjectKeyAndWheel(t *testing.T) {
	s := NewScope(ScopeConfig{})
	var got []string
	s.OnKey(func(ctx KeyContext) { got = append(got, "key") })
	s.OnWheel(func(ctx WheelContext) { got = append(got, "wheel") })

	s.InjectKey(KeyEscape)
	s.InjectWheel(0, 10)
	s.Update(0.25)
	if len(got) != 1 || got[0] != "key" {
		t.Fatalf("after frame 1: %v", got)
	}
	s.Update(0.25)
	if len(got) != 2 || got[1] != "wheel" {
		t.Fatalf("after frame 2: %v", got)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScope(ScopeConfig{})
	if s.processInjectedInput() {
		t.Error("should not consume when queue is empty")
	}
}
