package keepsake

// RevealOptions configures a one-shot reveal.
type RevealOptions struct {
	// Threshold is the visible fraction that triggers the reveal. Zero means
	// any visible pixel.
	Threshold float64
	// RootMargin adjusts the viewport, e.g. Bottom: -50 reveals a little
	// after the element enters from below.
	RootMargin Margin
	// OnReveal is called once when the element is revealed, including the
	// synchronous reveals for reduced motion and missing hosts.
	OnReveal func()
}

// Reveal is the state of one observed element. It flips from hidden to
// revealed at most once and never flips back.
type Reveal struct {
	revealed  bool
	cancelled bool
	obs       Observation
	onReveal  func()
}

// Revealed reports whether the element has been revealed.
func (r *Reveal) Revealed() bool {
	return r.revealed
}

// Cancel stops observing (unmount). No callbacks fire afterwards.
func (r *Reveal) Cancel() {
	r.cancelled = true
	r.release()
}

// Pending reports whether the reveal is still waiting on the host.
func (r *Reveal) Pending() bool {
	return r.obs != nil
}

func (r *Reveal) release() {
	if r.obs != nil {
		r.obs.Unobserve()
		r.obs = nil
	}
}

func (r *Reveal) fire() {
	if r.revealed || r.cancelled {
		return
	}
	r.revealed = true
	r.release()
	if r.onReveal != nil {
		r.onReveal()
	}
}

// Revealer hands out one-shot reveal triggers. It is the single place
// scroll-linked "reveal on scroll" effects are expressed.
type Revealer struct {
	scope   *Scope
	reveals []*Reveal
}

// NewRevealer creates a revealer bound to the scope's visibility host.
func (s *Scope) NewRevealer() *Revealer {
	r := &Revealer{scope: s}
	s.addComponent(r)
	return r
}

// Observe starts watching el. The returned Reveal is already revealed when
// the user prefers reduced motion or when no visibility primitive is
// available (fail open).
func (rv *Revealer) Observe(el Element, opts RevealOptions) *Reveal {
	r := &Reveal{onReveal: opts.OnReveal}
	s := rv.scope

	if s.PrefersReducedMotion() {
		r.fire()
		return r
	}
	if s.host == nil {
		s.debugf("reveal: no visibility host, failing open")
		r.fire()
		return r
	}

	threshold := clamp01(opts.Threshold)
	obs, err := s.host.Observe(el, ObserveOptions{
		Thresholds: []float64{threshold},
		RootMargin: opts.RootMargin,
	}, func(ratio float64) {
		if reached(ratio, threshold) {
			r.fire()
		}
	})
	if err != nil {
		s.debugf("reveal: observe failed (%v), failing open", err)
		r.fire()
		return r
	}
	// The host may have reported synchronously and already fired.
	if r.revealed || r.cancelled {
		obs.Unobserve()
		return r
	}
	r.obs = obs
	rv.reveals = append(rv.reveals, r)
	return r
}

// Pending returns the number of reveals still being observed.
func (rv *Revealer) Pending() int {
	count := 0
	for _, r := range rv.reveals {
		if r.Pending() {
			count++
		}
	}
	return count
}

// Dispose cancels every pending reveal and detaches the revealer.
func (rv *Revealer) Dispose() {
	rv.dispose()
}

func (rv *Revealer) update(float32) {
	live := rv.reveals[:0]
	for _, r := range rv.reveals {
		if r.Pending() {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(rv.reveals); i++ {
		rv.reveals[i] = nil
	}
	rv.reveals = live
}

func (rv *Revealer) dispose() {
	for _, r := range rv.reveals {
		r.Cancel()
	}
	rv.reveals = nil
	rv.scope.removeComponent(rv)
}

func reached(ratio, threshold float64) bool {
	if threshold == 0 {
		return ratio > 0
	}
	return ratio >= threshold
}
