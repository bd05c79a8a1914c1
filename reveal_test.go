package keepsake

import (
	"errors"
	"testing"
)

// fakeHost is a VisibilityHost whose reports are driven by the test.
type fakeHost struct {
	reduced bool
	err     error
	obs     []*fakeObservation
}

type fakeObservation struct {
	opts    ObserveOptions
	fn      func(float64)
	removed bool
}

func (o *fakeObservation) Unobserve() { o.removed = true }

func (h *fakeHost) Observe(el Element, opts ObserveOptions, fn func(float64)) (Observation, error) {
	if h.err != nil {
		return nil, h.err
	}
	o := &fakeObservation{opts: opts, fn: fn}
	h.obs = append(h.obs, o)
	return o, nil
}

func (h *fakeHost) PrefersReducedMotion() bool { return h.reduced }

// report delivers ratio to observation i unless it was unobserved.
func (h *fakeHost) report(i int, ratio float64) {
	if o := h.obs[i]; !o.removed {
		o.fn(ratio)
	}
}

func TestRevealOneShot(t *testing.T) {
	host := &fakeHost{}
	s := NewScope(ScopeConfig{Host: host})
	rv := s.NewRevealer()

	count := 0
	r := rv.Observe(Rect{Width: 10, Height: 10}, RevealOptions{
		Threshold: 0.25,
		OnReveal:  func() { count++ },
	})
	if r.Revealed() || !r.Pending() {
		t.Fatal("reveal should start hidden and pending")
	}
	if got := host.obs[0].opts.Thresholds; len(got) != 1 || got[0] != 0.25 {
		t.Errorf("thresholds = %v, want [0.25]", got)
	}

	host.report(0, 0.1)
	if r.Revealed() {
		t.Fatal("revealed below threshold")
	}
	host.report(0, 0.3)
	if !r.Revealed() || count != 1 {
		t.Fatalf("Revealed = %v, count = %d", r.Revealed(), count)
	}
	if !host.obs[0].removed {
		t.Error("observation should be released after reveal")
	}

	// Late callbacks from the host never flip it back or fire twice.
	host.obs[0].fn(0)
	host.obs[0].fn(1)
	if !r.Revealed() || count != 1 {
		t.Errorf("Revealed = %v, count = %d after late reports", r.Revealed(), count)
	}
}

func TestRevealZeroThreshold(t *testing.T) {
	host := &fakeHost{}
	rv := NewScope(ScopeConfig{Host: host}).NewRevealer()
	r := rv.Observe(Rect{}, RevealOptions{})

	host.report(0, 0)
	if r.Revealed() {
		t.Fatal("ratio 0 should not reveal")
	}
	host.report(0, 0.01)
	if !r.Revealed() {
		t.Error("any visible pixel should reveal at threshold 0")
	}
}

func TestRevealFailsOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  ScopeConfig
	}{
		{"no host", ScopeConfig{}},
		{"host errors", ScopeConfig{Host: &fakeHost{err: ErrUnsupported}}},
		{"host reduced motion", ScopeConfig{Host: &fakeHost{reduced: true}}},
		{"config reduced motion", ScopeConfig{Host: &fakeHost{}, ReducedMotion: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := NewScope(tt.cfg).NewRevealer()
			fired := false
			r := rv.Observe(Rect{}, RevealOptions{OnReveal: func() { fired = true }})
			if !r.Revealed() || !fired {
				t.Errorf("Revealed = %v, fired = %v; want synchronous reveal", r.Revealed(), fired)
			}
			if r.Pending() || rv.Pending() != 0 {
				t.Error("nothing should remain observed")
			}
		})
	}
}

func TestRevealHostErrorIsWrapped(t *testing.T) {
	host := &fakeHost{err: errors.New("detached element")}
	rv := NewScope(ScopeConfig{Host: host}).NewRevealer()
	if r := rv.Observe(Rect{}, RevealOptions{}); !r.Revealed() {
		t.Error("any observe error should fail open")
	}
}

func TestRevealCancel(t *testing.T) {
	host := &fakeHost{}
	rv := NewScope(ScopeConfig{Host: host}).NewRevealer()
	fired := false
	r := rv.Observe(Rect{}, RevealOptions{OnReveal: func() { fired = true }})

	r.Cancel()
	if !host.obs[0].removed {
		t.Error("Cancel should unobserve")
	}
	host.obs[0].fn(1)
	if r.Revealed() || fired {
		t.Error("cancelled reveal should never fire")
	}
	r.Cancel() // idempotent
}

func TestRevealerPendingAndDispose(t *testing.T) {
	host := &fakeHost{}
	s := NewScope(ScopeConfig{Host: host})
	rv := s.NewRevealer()
	rv.Observe(Rect{}, RevealOptions{})
	rv.Observe(Rect{}, RevealOptions{})
	rv.Observe(Rect{}, RevealOptions{})

	host.report(1, 1)
	if rv.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", rv.Pending())
	}
	s.Update(0.25)
	if len(rv.reveals) != 2 {
		t.Errorf("revealed entries should be pruned on Update, have %d", len(rv.reveals))
	}

	rv.Dispose()
	if rv.Pending() != 0 {
		t.Errorf("Pending = %d after Dispose", rv.Pending())
	}
	for i, o := range host.obs {
		if !o.removed {
			t.Errorf("observation %d still live after Dispose", i)
		}
	}
}

func TestRevealWithViewport(t *testing.T) {
	v := NewViewport(100, 200)
	s := NewScope(ScopeConfig{Host: v})
	rv := s.NewRevealer()

	r := rv.Observe(Rect{Y: 300, Width: 100, Height: 100}, RevealOptions{
		Threshold:  0.5,
		RootMargin: Margin{Bottom: -50},
	})
	s.Update(0.25)
	if r.Revealed() {
		t.Fatal("element below the fold should stay hidden")
	}

	// Viewport 150..350 shrinks to 150..300 with the margin: 0% visible.
	v.ScrollBy(150)
	if r.Revealed() {
		t.Fatal("margin should delay the reveal")
	}
	// Viewport 250..450 shrinks to 250..400: fully visible.
	v.ScrollBy(100)
	if !r.Revealed() {
		t.Error("element should be revealed")
	}
	if v.Observed() != 0 {
		t.Errorf("Observed = %d, want 0 after reveal", v.Observed())
	}
}
