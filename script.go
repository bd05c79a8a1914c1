package keepsake

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input across frames so a whole guest
// session (open the cover, swipe the gallery, flip guestbook cards) can be
// replayed deterministically. Attach to a Scope via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnMark is called for "mark" steps with the step label, e.g. to assert
	// or snapshot state at a checkpoint.
	OnMark func(label string)
}

// LoadScript parses a JSON interaction script and returns a ScriptRunner
// ready to be attached to a Scope.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "tap", "drag", "wheel", "wait", "mark":
		case "key":
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a runner to the scope. The runner's step method is
// called from Scope.Update before injected input is processed.
func (s *Scope) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scope.Update.
func (r *ScriptRunner) step(s *Scope) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "mark":
		if r.OnMark != nil {
			r.OnMark(st.Label)
		}
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "key":
		k, _ := ParseKey(st.Key)
		s.InjectKey(k)
	case "wheel":
		s.InjectWheel(st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
