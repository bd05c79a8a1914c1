package keepsake

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active scroll-to tween.
type scrollAnim struct {
	tween *gween.Tween
}

// Viewport is a geometry-backed VisibilityHost: a window of Width x Height
// logical pixels scrolled vertically over a document. Observed elements are
// intersected with the (root-margin adjusted) window on every Refresh and
// callbacks fire when a threshold is crossed.
type Viewport struct {
	// ScrollY is the document offset of the viewport's top edge.
	ScrollY float64
	// Width and Height are the viewport size in logical pixels.
	Width, Height float64
	// DocumentHeight clamps scrolling to [0, DocumentHeight-Height].
	// Zero disables clamping.
	DocumentHeight float64
	// ReducedMotion is reported through PrefersReducedMotion and makes
	// ScrollTo jump instantly.
	ReducedMotion bool

	observers []*viewportObservation
	scroll    *scrollAnim
}

type viewportObservation struct {
	v          *Viewport
	el         Element
	thresholds []float64
	margin     Margin
	fn         func(ratio float64)
	bucket     int // -1 until the initial report
	removed    bool
}

func (o *viewportObservation) Unobserve() {
	o.removed = true
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Observe implements VisibilityHost. The initial report is delivered on the
// next Refresh (or Update).
func (v *Viewport) Observe(el Element, opts ObserveOptions, fn func(ratio float64)) (Observation, error) {
	if el == nil || fn == nil {
		return nil, ErrUnsupported
	}
	thresholds := opts.Thresholds
	if len(thresholds) == 0 {
		thresholds = []float64{0}
	}
	o := &viewportObservation{
		v:          v,
		el:         el,
		thresholds: thresholds,
		margin:     opts.RootMargin,
		fn:         fn,
		bucket:     -1,
	}
	v.observers = append(v.observers, o)
	return o, nil
}

// PrefersReducedMotion implements VisibilityHost.
func (v *Viewport) PrefersReducedMotion() bool {
	return v.ReducedMotion
}

// VisibleBounds returns the document-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// Ratio returns the fraction of el inside the viewport adjusted by margin.
// Zero-area elements report 1 when they touch the viewport and 0 otherwise.
func (v *Viewport) Ratio(el Element, margin Margin) float64 {
	b := el.Bounds()
	root := v.VisibleBounds().Inset(margin)
	if !root.Intersects(b) {
		return 0
	}
	area := b.Area()
	if area <= 0 {
		return 1
	}
	return clamp01(root.Intersection(b).Area() / area)
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clampScroll(y)
	if duration <= 0 || v.ReducedMotion {
		v.scroll = nil
		v.ScrollY = y
		v.Refresh()
		return
	}
	v.scroll = &scrollAnim{
		tween: gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
	}
}

// ScrollToElement animates so that el's top edge aligns with the viewport's.
func (v *Viewport) ScrollToElement(el Element, duration float32, easeFn ease.TweenFunc) {
	v.ScrollTo(el.Bounds().Y, duration, easeFn)
}

// ScrollIntoView scrolls to el with the theme's scroll duration and ease.
func (v *Viewport) ScrollIntoView(el Element, theme Theme) {
	v.ScrollToElement(el, seconds(theme.ScrollDuration), easing(theme.ScrollEase))
}

// ScrollBy moves the viewport immediately, cancelling any scroll animation.
func (v *Viewport) ScrollBy(dy float64) {
	v.scroll = nil
	v.ScrollY = v.clampScroll(v.ScrollY + dy)
	v.Refresh()
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scroll != nil
}

// Update advances the scroll animation and refreshes observations.
func (v *Viewport) Update(dt float32) {
	if v.scroll != nil {
		val, done := v.scroll.tween.Update(dt)
		v.ScrollY = v.clampScroll(float64(val))
		if done {
			v.scroll = nil
		}
	}
	v.Refresh()
}

// Refresh recomputes every observation and fires callbacks for threshold
// crossings. Callbacks may unobserve, including their own observation.
func (v *Viewport) Refresh() {
	n := len(v.observers)
	for i := 0; i < n; i++ {
		o := v.observers[i]
		if o.removed {
			continue
		}
		ratio := v.Ratio(o.el, o.margin)
		bucket := thresholdBucket(ratio, o.thresholds)
		if bucket == o.bucket {
			continue
		}
		o.bucket = bucket
		o.fn(ratio)
	}

	live := v.observers[:0]
	for _, o := range v.observers {
		if !o.removed {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(v.observers); i++ {
		v.observers[i] = nil
	}
	v.observers = live
}

// Observed returns the number of live observations.
func (v *Viewport) Observed() int {
	count := 0
	for _, o := range v.observers {
		if !o.removed {
			count++
		}
	}
	return count
}

func (v *Viewport) clampScroll(y float64) float64 {
	if v.DocumentHeight <= 0 {
		return math.Max(0, y)
	}
	maxY := math.Max(0, v.DocumentHeight-v.Height)
	return math.Max(0, math.Min(y, maxY))
}

// thresholdBucket counts the thresholds ratio has crossed. A threshold of 0
// counts as crossed once anything is visible.
func thresholdBucket(ratio float64, thresholds []float64) int {
	bucket := 0
	for _, th := range thresholds {
		if th == 0 {
			if ratio > 0 {
				bucket++
			}
			continue
		}
		if ratio >= th {
			bucket++
		}
	}
	return bucket
}
