package keepsake

import "errors"

// ErrUnsupported is returned by a VisibilityHost that cannot observe an
// element. Callers fail open: the element is treated as visible.
var ErrUnsupported = errors.New("visibility observation unsupported")

// Element is anything whose document-space bounds can be observed. Hosts
// backed by a real layout engine may ignore Bounds and use their own handle.
type Element interface {
	Bounds() Rect
}

// ObserveOptions configures a visibility observation.
type ObserveOptions struct {
	// Thresholds are the ratios at which the callback fires when crossed.
	// Empty means a single threshold of 0.
	Thresholds []float64
	// RootMargin adjusts the viewport before intersecting.
	RootMargin Margin
}

// Observation is a live visibility subscription.
type Observation interface {
	// Unobserve stops callbacks. It is safe to call more than once, including
	// from inside the callback.
	Unobserve()
}

// VisibilityHost is the environment's visibility primitive: it reports the
// visible fraction of observed elements and the user's motion preference.
// Implementations must be injectable so choreography can be tested without a
// layout engine; Viewport is the built-in geometry implementation.
type VisibilityHost interface {
	// Observe reports el's visible ratio to fn whenever it crosses one of
	// opts.Thresholds, starting with an initial report.
	Observe(el Element, opts ObserveOptions, fn func(ratio float64)) (Observation, error)
	// PrefersReducedMotion reports the user's reduced-motion preference.
	PrefersReducedMotion() bool
}
