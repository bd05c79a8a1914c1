package keepsake

import (
	"slices"
	"testing"
)

// step advances s by n frames of dt seconds.
func step(s *Scope, n int, dt float32) {
	for i := 0; i < n; i++ {
		s.Update(dt)
	}
}

func TestSequencerInitialState(t *testing.T) {
	q := NewScope(ScopeConfig{}).NewSequencer()
	if q.Stage() != StageCover || q.Screen() != ScreenCover || q.Page() != PageIntro {
		t.Errorf("Stage = %v, Screen = %v, Page = %v", q.Stage(), q.Screen(), q.Page())
	}
	if q.Alpha() != 1 || q.FadingOut() {
		t.Errorf("Alpha = %v, FadingOut = %v", q.Alpha(), q.FadingOut())
	}
}

func TestSequencerTransition(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	var changes []Stage
	q.OnScreenChange = func(st Stage) { changes = append(changes, st) }

	if !q.RequestTransition(StageInvitation) {
		t.Fatal("RequestTransition should accept the next stage")
	}
	if !q.FadingOut() {
		t.Error("FadingOut should be true while in flight")
	}
	if q.Stage() != StageCover {
		t.Error("stage should not change before the delay")
	}

	s.Update(0.25)
	if q.Alpha() >= 1 || q.Alpha() <= 0 {
		t.Errorf("Alpha = %v mid fade-out", q.Alpha())
	}
	s.Update(0.25)
	if q.Stage() != StageInvitation || q.Screen() != ScreenInvitation {
		t.Fatalf("Stage = %v after 500ms, want invitation", q.Stage())
	}
	if q.FadingOut() {
		t.Error("FadingOut should clear on commit")
	}
	if q.Alpha() >= 1 {
		t.Errorf("Alpha = %v right after commit, fade-in should have just started", q.Alpha())
	}

	step(s, 2, 0.25)
	if q.Alpha() != 1 {
		t.Errorf("Alpha = %v after fade-in, want 1", q.Alpha())
	}
	if !slices.Equal(changes, []Stage{StageInvitation}) {
		t.Errorf("changes = %v", changes)
	}
}

func TestSequencerDropsOverlappingRequests(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	changes := 0
	q.OnScreenChange = func(Stage) { changes++ }

	q.RequestTransition(StageInvitation)
	s.Update(0.25)
	if q.RequestTransition(StageInvitation) {
		t.Error("second request inside the delay should be dropped")
	}
	if q.Next() {
		t.Error("Next inside the delay should be dropped")
	}
	step(s, 4, 0.25)

	if changes != 1 {
		t.Errorf("changes = %d, want exactly 1", changes)
	}
	if q.Stage() != StageInvitation {
		t.Errorf("Stage = %v, dropped requests must not queue", q.Stage())
	}
	if s.stats.droppedTransitions != 2 {
		t.Errorf("droppedTransitions = %d, want 2", s.stats.droppedTransitions)
	}
}

func TestSequencerRejectsNonAdjacentStage(t *testing.T) {
	tests := []struct {
		name   string
		target Stage
	}{
		{"skip to main", StageMain},
		{"back to cover", StageCover},
		{"past main", StageMain + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewScope(ScopeConfig{}).NewSequencer()
			if q.RequestTransition(tt.target) {
				t.Errorf("RequestTransition(%v) accepted from cover", tt.target)
			}
		})
	}
}

func TestSequencerFullIntro(t *testing.T) {
	s := NewScope(ScopeConfig{})
	sink := &recordingSink{}
	s.SetEventSink(sink)
	q := s.NewSequencer()

	q.Next()
	step(s, 2, 0.25)
	q.Next()
	step(s, 2, 0.25)
	if q.Stage() != StageMain || q.Page() != PageMain {
		t.Fatalf("Stage = %v, Page = %v", q.Stage(), q.Page())
	}
	if q.Screen() != ScreenInvitation {
		t.Errorf("Screen = %v, should stay invitation on main", q.Screen())
	}
	if q.Next() {
		t.Error("there is no stage after main")
	}

	events := sink.ofType(EventScreenChange)
	if len(events) != 2 || events[0].Stage != StageInvitation || events[1].Stage != StageMain {
		t.Errorf("screen events = %+v", events)
	}
}

func TestSequencerHints(t *testing.T) {
	s := NewScope(ScopeConfig{})
	sink := &recordingSink{}
	s.SetEventSink(sink)
	q := s.NewSequencer()
	var shown []string
	q.OnHint = func(name string) { shown = append(shown, name) }

	q.Next()
	step(s, 1, 0.5) // commit to invitation
	if q.HintVisible(HintTooltip) {
		t.Fatal("tooltip should not show on entry")
	}

	step(s, 2, 0.5) // 1.0s on the invitation
	if q.HintVisible(HintTooltip) {
		t.Fatal("tooltip showed before 1.5s")
	}
	step(s, 1, 0.5) // 1.5s
	if !q.HintVisible(HintTooltip) || q.HintVisible(HintScroll) {
		t.Fatalf("at 1.5s: tooltip = %v, scroll = %v", q.HintVisible(HintTooltip), q.HintVisible(HintScroll))
	}
	step(s, 3, 0.5) // 3.0s
	if !q.HintVisible(HintScroll) {
		t.Fatal("scroll hint should show at 3s")
	}
	if !slices.Equal(shown, []string{HintTooltip, HintScroll}) {
		t.Errorf("shown = %v", shown)
	}
	if events := sink.ofType(EventHintShown); len(events) != 2 || events[0].Hint != HintTooltip {
		t.Errorf("hint events = %+v", events)
	}

	// Leaving the screen hides its hints.
	q.Next()
	if q.HintVisible(HintTooltip) || q.HintVisible(HintScroll) {
		t.Error("hints should clear when a transition starts")
	}
}

func TestSequencerLeavingCancelsPendingHints(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	shown := 0
	q.OnHint = func(string) { shown++ }

	q.Next()
	step(s, 1, 0.5)
	q.Next() // leave before any hint is due
	step(s, 10, 0.5)
	if shown != 0 {
		t.Errorf("shown = %d, hints of a left screen must not appear", shown)
	}
}

func TestSequencerReducedMotion(t *testing.T) {
	s := NewScope(ScopeConfig{ReducedMotion: true})
	q := s.NewSequencer()

	q.Next()
	if q.Alpha() != 0 {
		t.Errorf("Alpha = %v, fade-out should be instant", q.Alpha())
	}
	s.Update(0.25)
	if q.Stage() != StageCover {
		t.Fatalf("Stage = %v, the choreography delay should still apply", q.Stage())
	}
	if q.Next() {
		t.Error("request during the delay should be dropped")
	}
	s.Update(0.25)
	if q.Stage() != StageInvitation {
		t.Fatalf("Stage = %v, want invitation after 500ms", q.Stage())
	}
	if q.Alpha() != 1 {
		t.Errorf("Alpha = %v, fade-in should be instant", q.Alpha())
	}
}

func TestSequencerBindTap(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	q.Bind(HitRect{Width: 360, Height: 640}, HitCircle{CenterX: 320, CenterY: 40, Radius: 20})

	s.InjectTap(180, 320)
	step(s, 4, 0.25)
	if q.Stage() != StageInvitation {
		t.Fatalf("Stage = %v, tap should leave the cover", q.Stage())
	}

	// Taps on a control (e.g. the music button) do not advance.
	s.InjectTap(320, 40)
	step(s, 4, 0.25)
	if q.Stage() != StageInvitation {
		t.Fatalf("Stage = %v, control tap should be ignored", q.Stage())
	}

	s.InjectTap(180, 320)
	step(s, 4, 0.25)
	if q.Stage() != StageMain {
		t.Fatalf("Stage = %v, want main", q.Stage())
	}
	if q.area.Interactable {
		t.Error("intro area should stop intercepting input on the main page")
	}
}

func TestSequencerBindSwipe(t *testing.T) {
	tests := []struct {
		name   string
		fromY  float64
		toY    float64
		expect Stage
	}{
		{"long swipe up", 500, 300, StageInvitation},
		{"short swipe up", 500, 470, StageCover},
		{"swipe down", 300, 500, StageCover},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScope(ScopeConfig{})
			q := s.NewSequencer()
			q.Bind(HitRect{Width: 360, Height: 640})

			s.InjectDrag(180, tt.fromY, 180, tt.toY, 4)
			step(s, 8, 0.25)
			if q.Stage() != tt.expect {
				t.Errorf("Stage = %v, want %v", q.Stage(), tt.expect)
			}
		})
	}
}

func TestSequencerBindWheel(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	q.Bind(HitRect{Width: 360, Height: 640})

	s.Wheel(0, -40)
	step(s, 4, 0.25)
	if q.Stage() != StageCover {
		t.Fatal("backward wheel should not leave the cover")
	}
	s.Wheel(0, 40)
	step(s, 4, 0.25)
	if q.Stage() != StageInvitation {
		t.Fatalf("Stage = %v, forward wheel should leave the cover", q.Stage())
	}
	// The wheel only drives the cover.
	s.Wheel(0, 40)
	step(s, 4, 0.25)
	if q.Stage() != StageInvitation {
		t.Errorf("Stage = %v, wheel should not leave the invitation", q.Stage())
	}
}

func TestSequencerReset(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	q.Bind(HitRect{Width: 100, Height: 100})
	var changes []Stage
	q.OnScreenChange = func(st Stage) { changes = append(changes, st) }

	q.Next()
	step(s, 2, 0.25)
	q.Next()
	step(s, 2, 0.25)
	q.Reset()
	if q.Stage() != StageCover || q.Alpha() != 1 || q.FadingOut() {
		t.Errorf("after Reset: Stage = %v, Alpha = %v, FadingOut = %v", q.Stage(), q.Alpha(), q.FadingOut())
	}
	if !q.area.Interactable {
		t.Error("intro area should be interactable again")
	}
	want := []Stage{StageInvitation, StageMain, StageCover}
	if !slices.Equal(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}

	// Reset cancels an in-flight transition.
	q.Next()
	q.Reset()
	step(s, 4, 0.25)
	if q.Stage() != StageCover {
		t.Errorf("Stage = %v, cancelled transition committed", q.Stage())
	}
}

func TestSequencerDispose(t *testing.T) {
	s := NewScope(ScopeConfig{})
	q := s.NewSequencer()
	q.Bind(HitRect{Width: 100, Height: 100})
	changes := 0
	q.OnScreenChange = func(Stage) { changes++ }

	q.Next()
	q.Dispose()
	step(s, 4, 0.25)
	if changes != 0 {
		t.Error("disposed sequencer committed a transition")
	}
	if len(s.targets) != 0 {
		t.Errorf("targets = %d, want 0", len(s.targets))
	}
	if len(s.handlers.wheel) != 0 {
		t.Error("wheel handler should be removed")
	}
	if q.RequestTransition(StageInvitation) {
		t.Error("disposed sequencer accepted a request")
	}
}
