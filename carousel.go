package keepsake

import "github.com/tanema/gween"

// Carousel is an infinite horizontal image viewer.
//
// The rendered strip is [last, img0 ... imgN-1, first]: one clone frame at
// each end. Index 0 and N+1 are the clones and real images occupy [1, N].
// Sliding onto a clone is animated like any other move; when the slide ends
// the index is silently rehomed to the matching real frame with transitions
// disabled for exactly one frame, so the jump is invisible.
type Carousel struct {
	scope *Scope

	images        []string
	index         int
	open          bool
	transitioning bool
	rehoming      bool
	offset        float64
	slide         *gween.Tween
	lastDisplay   int

	area     HitShape
	swipe    *Target
	keys     CallbackHandle
	disposed bool

	// OnIndexChange is called with the 1-based display index whenever it
	// changes, including on Open.
	OnIndexChange func(displayIndex int)
	// OnClose is called after the carousel closes.
	OnClose func()
}

// NewCarousel creates a closed carousel.
func (s *Scope) NewCarousel() *Carousel {
	c := &Carousel{scope: s}
	s.addComponent(c)
	return c
}

// Bind sets the area that accepts horizontal swipes while the carousel is
// open. Keyboard navigation is always attached while open.
func (c *Carousel) Bind(area HitShape) {
	c.area = area
	if c.open {
		c.detach()
		c.attach()
	}
}

// Open shows images starting at the 0-based real index start (clamped into
// range). Opening with no images is a no-op and returns false.
func (c *Carousel) Open(images []string, start int) bool {
	if c.disposed || len(images) == 0 {
		return false
	}
	if c.open {
		c.detach()
	}
	c.images = append(c.images[:0], images...)
	start = max(0, min(start, len(images)-1))
	c.index = start + 1
	c.offset = float64(c.index)
	c.slide = nil
	c.transitioning = false
	c.rehoming = false
	c.open = true
	c.lastDisplay = 0
	c.attach()
	c.notify()
	return true
}

// Close hides the carousel and removes its key and pointer listeners.
func (c *Carousel) Close() {
	if !c.open {
		return
	}
	c.detach()
	c.open = false
	c.slide = nil
	c.transitioning = false
	c.rehoming = false
	c.lastDisplay = 0
	if c.OnClose != nil {
		c.OnClose()
	}
}

// Next slides to the following image. It is a no-op (false) while closed or
// while a slide or rehoming step is in progress.
func (c *Carousel) Next() bool {
	return c.moveTo(c.index + 1)
}

// Prev slides to the preceding image. Same no-op rules as Next.
func (c *Carousel) Prev() bool {
	return c.moveTo(c.index - 1)
}

// GoTo slides directly to the 0-based real image i, e.g. from a thumbnail.
func (c *Carousel) GoTo(i int) bool {
	if i < 0 || i >= len(c.images) || i+1 == c.index {
		return false
	}
	return c.moveTo(i + 1)
}

// TransitionEnd finishes the current slide. It is called automatically when
// the slide animation completes; hosts whose rendering layer animates on its
// own may call it from their transition-end event instead.
func (c *Carousel) TransitionEnd() {
	if !c.transitioning {
		return
	}
	c.slide = nil
	c.transitioning = false
	c.offset = float64(c.index)

	n := len(c.images)
	switch c.index {
	case 0:
		c.rehome(n)
	case n + 1:
		c.rehome(1)
	}
}

// IsOpen reports whether the carousel is showing.
func (c *Carousel) IsOpen() bool {
	return c.open
}

// Len returns the number of real images.
func (c *Carousel) Len() int {
	return len(c.images)
}

// Index returns the raw strip index in [0, N+1].
func (c *Carousel) Index() int {
	return c.index
}

// DisplayIndex returns the 1-based index of the real image on screen, for an
// "i / N" counter. Clone frames map to their real counterpart. Zero while
// closed.
func (c *Carousel) DisplayIndex() int {
	if !c.open {
		return 0
	}
	return displayIndex(c.index, len(c.images))
}

// CurrentImage returns the URL of the image on screen, or "" while closed.
func (c *Carousel) CurrentImage() string {
	d := c.DisplayIndex()
	if d == 0 {
		return ""
	}
	return c.images[d-1]
}

// Transitioning reports whether a slide is in progress.
func (c *Carousel) Transitioning() bool {
	return c.transitioning
}

// Rehoming reports whether this frame is the silent jump off a clone frame.
func (c *Carousel) Rehoming() bool {
	return c.rehoming
}

// TransitionEnabled reports whether the renderer should animate transform
// changes this frame. It is false exactly while rehoming.
func (c *Carousel) TransitionEnabled() bool {
	return !c.rehoming
}

// Offset returns the animated strip position in frames.
func (c *Carousel) Offset() float64 {
	return c.offset
}

// TranslateX returns the strip translation in percent of the frame width.
func (c *Carousel) TranslateX() float64 {
	return -c.offset * 100
}

// Frames returns the rendered strip including both clone frames.
func (c *Carousel) Frames() []string {
	n := len(c.images)
	if n == 0 {
		return nil
	}
	frames := make([]string, 0, n+2)
	frames = append(frames, c.images[n-1])
	frames = append(frames, c.images...)
	frames = append(frames, c.images[0])
	return frames
}

// Dispose closes the carousel and detaches it from the scope.
func (c *Carousel) Dispose() {
	c.dispose()
}

func (c *Carousel) moveTo(index int) bool {
	if !c.open || c.disposed {
		return false
	}
	if c.transitioning || c.rehoming {
		c.scope.debugf("carousel: navigation dropped mid-transition")
		return false
	}
	c.index = index
	c.transitioning = true

	duration := c.scope.duration(seconds(c.scope.theme.CarouselTransition))
	c.notify()
	if duration <= 0 {
		c.TransitionEnd()
		return true
	}
	c.slide = gween.New(float32(c.offset), float32(index), duration, easing(c.scope.theme.CarouselEase))
	return true
}

func (c *Carousel) rehome(index int) {
	c.scope.stats.rehomes++
	c.scope.debugf("carousel: rehoming %d -> %d", c.index, index)
	c.index = index
	c.offset = float64(index)
	c.rehoming = true
}

func (c *Carousel) notify() {
	d := c.DisplayIndex()
	if d == c.lastDisplay {
		return
	}
	c.lastDisplay = d
	if c.OnIndexChange != nil {
		c.OnIndexChange(d)
	}
	c.scope.emit(Event{Type: EventCarouselIndex, Source: "carousel", Index: d})
}

func (c *Carousel) attach() {
	c.keys = c.scope.OnKey(func(ctx KeyContext) {
		switch ctx.Key {
		case KeyEscape:
			c.Close()
		case KeyArrowLeft:
			c.Prev()
		case KeyArrowRight:
			c.Next()
		}
	})
	if c.area == nil {
		return
	}
	c.swipe = NewTarget("carousel", c.area)
	c.swipe.OnDragEnd = func(ctx DragContext) {
		dx := ctx.X - ctx.StartX
		threshold := c.scope.theme.CarouselSwipeThreshold
		switch {
		case dx < -threshold:
			c.Next()
		case dx > threshold:
			c.Prev()
		}
	}
	c.scope.AddTarget(c.swipe)
}

func (c *Carousel) detach() {
	c.keys.Remove()
	c.keys = CallbackHandle{}
	if c.swipe != nil {
		c.scope.RemoveTarget(c.swipe)
		c.swipe = nil
	}
}

func (c *Carousel) update(dt float32) {
	// Transitions come back on the tick after a rehoming jump.
	if c.rehoming {
		c.rehoming = false
	}
	if c.slide == nil {
		return
	}
	val, done := c.slide.Update(dt)
	c.offset = float64(val)
	if done {
		c.TransitionEnd()
	}
}

func (c *Carousel) dispose() {
	if c.disposed {
		return
	}
	c.Close()
	c.disposed = true
	c.scope.removeComponent(c)
}

// displayIndex maps a strip index to its 1-based real position.
func displayIndex(index, n int) int {
	switch index {
	case 0:
		return n
	case n + 1:
		return 1
	default:
		return index
	}
}
