package keepsake

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "mark", "label": "initial"},
			{"action": "tap", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "ArrowRight"},
			{"action": "mark", "label": "after-tap"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "mark" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "tap" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, "unknown action"},
		{"unknown key", `{"steps": [{"action": "key", "key": "F13"}]}`, "unknown key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStep_Tap(t *testing.T) {
	s := NewScope(ScopeConfig{})
	s.AddTarget(NewTarget("t", HitRect{Width: 200, Height: 200}))

	runner, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(runner)

	// First step call: tap queues press+release (2 events).
	runner.step(s)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}
	// Runner should not be done while injections are pending.
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	// Drain injections.
	s.processInjectedInput()
	s.processInjectedInput()

	// Step again to finalize.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScope(ScopeConfig{})

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "mark", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var marks []string
	runner.OnMark = func(label string) { marks = append(marks, label) }

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(s)
	// Frame 2: waitCount 2→1.
	runner.step(s)
	// Frame 3: waitCount 1→0.
	runner.step(s)
	if runner.Done() || len(marks) != 0 {
		t.Fatal("mark step should not run during the wait")
	}

	// Frame 4: execute mark step, runner finishes.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after mark step")
	}
	if len(marks) != 1 || marks[0] != "done" {
		t.Errorf("marks = %v, want [done]", marks)
	}
}

// A scripted guest session: leave the cover by tap, open the main page, then
// open the gallery and page through it with the keyboard.
func TestScriptedSession(t *testing.T) {
	s := NewScope(ScopeConfig{})
	seq := s.NewSequencer()
	seq.Bind(HitRect{Width: 400, Height: 800})
	c := s.NewCarousel()

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "tap", "x": 200, "y": 400},
		{"action": "wait", "frames": 3},
		{"action": "mark", "label": "invitation"},
		{"action": "tap", "x": 200, "y": 400},
		{"action": "wait", "frames": 3},
		{"action": "mark", "label": "main"},
		{"action": "key", "key": "ArrowRight"},
		{"action": "wait", "frames": 3},
		{"action": "mark", "label": "second"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.OnMark = func(label string) {
		switch label {
		case "invitation":
			if seq.Stage() != StageInvitation {
				t.Errorf("at %s: Stage = %v", label, seq.Stage())
			}
		case "main":
			if seq.Stage() != StageMain {
				t.Errorf("at %s: Stage = %v", label, seq.Stage())
			}
			c.Open([]string{"a", "b", "c"}, 0)
		case "second":
			if c.DisplayIndex() != 2 {
				t.Errorf("at %s: DisplayIndex = %d", label, c.DisplayIndex())
			}
		}
	}
	s.SetScriptRunner(runner)

	for i := 0; i < 40 && !runner.Done(); i++ {
		s.Update(0.25)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
}
