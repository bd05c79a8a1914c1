package keepsake

import (
	"github.com/phanxgames/keepsake/content"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxVisibleCards is the size of the rendered card window.
const maxVisibleCards = 3

// CardTransform is the render state of one card in the visible window.
type CardTransform struct {
	OffsetY  float64
	Scale    float64
	Rotation float64 // degrees
	// Interactive is true only for the top card.
	Interactive bool
}

// CardStack is the guestbook viewer: a looping stack of message cards where
// the top card follows the pointer and a release past the swipe threshold
// (or a tap) commits to the next or previous message.
type CardStack struct {
	scope *Scope

	messages  []content.Message
	index     int
	open      bool
	gesture   GestureState
	direction SwipeDirection
	anim      *gween.Tween

	area     HitShape
	top      *Target
	keys     CallbackHandle
	disposed bool

	// OnIndexChange is called with the new top index after a commit moves it,
	// and on Open.
	OnIndexChange func(index int)
	// OnClose is called after the stack closes.
	OnClose func()
}

// NewCardStack creates a closed card stack.
func (s *Scope) NewCardStack() *CardStack {
	c := &CardStack{scope: s}
	s.addComponent(c)
	return c
}

// Bind sets the area of the top card. Pointer input inside it drives the
// gesture while the stack is open; the pointer is captured until release.
func (c *CardStack) Bind(area HitShape) {
	c.area = area
	if c.open {
		c.detach()
		c.attach()
	}
}

// Open shows messages with start (wrapped into range) on top. Opening with no
// messages is a no-op and returns false.
func (c *CardStack) Open(messages []content.Message, start int) bool {
	if c.disposed || len(messages) == 0 {
		return false
	}
	if c.open {
		c.detach()
	}
	c.messages = append(c.messages[:0], messages...)
	c.index = wrapIndex(start, len(messages))
	c.gesture = GestureState{}
	c.direction = SwipeNone
	c.anim = nil
	c.open = true
	c.attach()
	c.notify()
	return true
}

// Close hides the stack, abandoning any gesture or animation.
func (c *CardStack) Close() {
	if !c.open {
		return
	}
	c.detach()
	c.open = false
	c.gesture = GestureState{}
	c.direction = SwipeNone
	c.anim = nil
	if c.OnClose != nil {
		c.OnClose()
	}
}

// PointerDown starts a drag of the top card. It is ignored while closed,
// while another pointer is dragging, or while a card is animating.
func (c *CardStack) PointerDown(pointerID int, y float64) bool {
	if !c.open || c.gesture.Phase != GestureIdle {
		return false
	}
	c.gesture = StepGesture(c.gesture, GestureEvent{Kind: GestureDown, Y: y, PointerID: pointerID}, c.thresholds())
	c.direction = SwipeNone
	return true
}

// PointerMove tracks the drag 1:1.
func (c *CardStack) PointerMove(pointerID int, y float64) {
	if !c.open || c.gesture.Phase != GestureDragging {
		return
	}
	c.gesture = StepGesture(c.gesture, GestureEvent{Kind: GestureMove, Y: y, PointerID: pointerID}, c.thresholds())
	switch {
	case c.gesture.OffsetY < 0:
		c.direction = SwipeUp
	case c.gesture.OffsetY > 0:
		c.direction = SwipeDown
	default:
		c.direction = SwipeNone
	}
}

// PointerUp releases the drag and resolves it to a commit or a snap back.
func (c *CardStack) PointerUp(pointerID int, y float64) {
	if !c.open || c.gesture.Phase != GestureDragging {
		return
	}
	c.gesture = StepGesture(c.gesture, GestureEvent{Kind: GestureUp, Y: y, PointerID: pointerID}, c.thresholds())
	c.scope.debugf("cardstack: release at %.0fpx -> %s", c.gesture.OffsetY, c.gesture.Phase)
	c.animate()
}

// PointerCancel abandons the drag and snaps the card back.
func (c *CardStack) PointerCancel(pointerID int) {
	if !c.open || c.gesture.Phase != GestureDragging {
		return
	}
	c.gesture = StepGesture(c.gesture, GestureEvent{Kind: GestureCancel, PointerID: pointerID}, c.thresholds())
	c.direction = SwipeNone
	c.animate()
}

// CommitNext animates the top card away upward and advances the index.
func (c *CardStack) CommitNext() bool {
	return c.commit(GestureCommittingNext)
}

// CommitPrev animates the top card away downward and moves the index back.
func (c *CardStack) CommitPrev() bool {
	return c.commit(GestureCommittingPrev)
}

// IsOpen reports whether the stack is showing.
func (c *CardStack) IsOpen() bool {
	return c.open
}

// Len returns the number of messages.
func (c *CardStack) Len() int {
	return len(c.messages)
}

// Index returns the index of the top message.
func (c *CardStack) Index() int {
	return c.index
}

// Phase returns the gesture phase.
func (c *CardStack) Phase() GesturePhase {
	return c.gesture.Phase
}

// Gesture returns the full gesture state.
func (c *CardStack) Gesture() GestureState {
	return c.gesture
}

// DragOffset returns the top card's vertical offset in pixels.
func (c *CardStack) DragOffset() float64 {
	return c.gesture.OffsetY
}

// SwipeDirection returns the direction the top card is heading.
func (c *CardStack) SwipeDirection() SwipeDirection {
	return c.direction
}

// TransitionEnabled reports whether the renderer should ease transform
// changes. It is false while the card tracks the pointer.
func (c *CardStack) TransitionEnabled() bool {
	return c.gesture.Phase != GestureDragging
}

// VisibleWindow returns the message indices of the rendered cards, top first.
// It holds min(3, N) entries and is nil while closed.
func (c *CardStack) VisibleWindow() []int {
	n := len(c.messages)
	if !c.open || n == 0 {
		return nil
	}
	window := make([]int, min(maxVisibleCards, n))
	for i := range window {
		window[i] = wrapIndex(c.index+i, n)
	}
	return window
}

// VisibleMessages returns the messages of VisibleWindow.
func (c *CardStack) VisibleMessages() []content.Message {
	window := c.VisibleWindow()
	msgs := make([]content.Message, len(window))
	for i, idx := range window {
		msgs[i] = c.messages[idx]
	}
	return msgs
}

// Top returns the top message.
func (c *CardStack) Top() (content.Message, bool) {
	if !c.open {
		return content.Message{}, false
	}
	return c.messages[c.index], true
}

// CardTransform returns the render state for the card at depth (0 = top).
func (c *CardStack) CardTransform(depth int) CardTransform {
	theme := &c.scope.theme
	if depth <= 0 {
		return CardTransform{
			OffsetY:     c.gesture.OffsetY,
			Scale:       1,
			Rotation:    c.gesture.OffsetY * theme.CardRotation,
			Interactive: true,
		}
	}
	d := float64(depth)
	return CardTransform{
		OffsetY: d * theme.CardStackOffset,
		Scale:   1 - d*theme.CardStackScale,
	}
}

// Dispose closes the stack and detaches it from the scope.
func (c *CardStack) Dispose() {
	c.dispose()
}

func (c *CardStack) thresholds() GestureThresholds {
	return GestureThresholds{
		Swipe: c.scope.theme.CardSwipeThreshold,
		Tap:   c.scope.theme.CardTapThreshold,
	}
}

func (c *CardStack) commit(phase GesturePhase) bool {
	if !c.open || c.gesture.Phase != GestureIdle {
		return false
	}
	c.gesture = GestureState{Phase: phase}
	c.animate()
	return true
}

// animate starts the tween for the current post-release phase.
func (c *CardStack) animate() {
	theme := &c.scope.theme
	var to float64
	var duration float32
	fn := ease.OutQuad
	switch c.gesture.Phase {
	case GestureCommittingNext:
		c.direction = SwipeUp
		to = -theme.CardExitDistance
		duration = seconds(theme.CardExit)
		fn = ease.InQuad
	case GestureCommittingPrev:
		c.direction = SwipeDown
		to = theme.CardExitDistance
		duration = seconds(theme.CardExit)
		fn = ease.InQuad
	case GestureSnappingBack:
		duration = seconds(theme.CardSnapBack)
	default:
		return
	}
	duration = c.scope.duration(duration)
	if duration <= 0 {
		c.finish()
		return
	}
	c.anim = gween.New(float32(c.gesture.OffsetY), float32(to), duration, fn)
}

// finish applies the outcome of the current animation and returns to idle.
func (c *CardStack) finish() {
	c.anim = nil
	n := len(c.messages)
	prev := c.index
	switch c.gesture.Phase {
	case GestureCommittingNext:
		c.index = wrapIndex(c.index+1, n)
		c.scope.stats.commits++
	case GestureCommittingPrev:
		c.index = wrapIndex(c.index-1, n)
		c.scope.stats.commits++
	case GestureSnappingBack:
		c.scope.stats.snapBacks++
	}
	c.gesture = StepGesture(c.gesture, GestureEvent{Kind: GestureAnimationEnd}, c.thresholds())
	c.direction = SwipeNone
	if c.index != prev {
		c.notify()
	}
}

func (c *CardStack) notify() {
	if c.OnIndexChange != nil {
		c.OnIndexChange(c.index)
	}
	c.scope.emit(Event{Type: EventCardIndex, Source: "cardstack", Index: c.index})
}

func (c *CardStack) attach() {
	c.keys = c.scope.OnKey(func(ctx KeyContext) {
		switch ctx.Key {
		case KeyEscape:
			c.Close()
		case KeyArrowUp:
			c.CommitNext()
		case KeyArrowDown:
			c.CommitPrev()
		}
	})
	if c.area == nil {
		return
	}
	t := NewTarget("cardstack", c.area)
	t.OnPointerDown = func(ctx PointerContext) {
		if c.PointerDown(ctx.PointerID, ctx.Y) {
			c.scope.CapturePointer(ctx.PointerID, t)
		}
	}
	t.OnDrag = func(ctx DragContext) {
		c.PointerMove(ctx.PointerID, ctx.Y)
	}
	t.OnPointerUp = func(ctx PointerContext) {
		c.PointerUp(ctx.PointerID, ctx.Y)
	}
	c.top = t
	c.scope.AddTarget(t)
}

func (c *CardStack) detach() {
	c.keys.Remove()
	c.keys = CallbackHandle{}
	if c.top != nil {
		c.scope.RemoveTarget(c.top)
		c.top = nil
	}
}

func (c *CardStack) update(dt float32) {
	if c.anim == nil {
		return
	}
	val, done := c.anim.Update(dt)
	c.gesture.OffsetY = float64(val)
	if done {
		c.finish()
	}
}

func (c *CardStack) dispose() {
	if c.disposed {
		return
	}
	c.Close()
	c.disposed = true
	c.scope.removeComponent(c)
}

// wrapIndex maps any integer onto [0, n).
func wrapIndex(i, n int) int {
	return (i%n + n) % n
}
