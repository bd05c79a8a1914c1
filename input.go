package keepsake

import "math"

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- HitShape types ---

// HitShape is a region that accepts pointer input.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area, e.g. a round music toggle.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Targets ---

// Target is a pointer-interactive area registered with a Scope. Targets added
// later sit on top of earlier ones for hit testing.
type Target struct {
	// Name identifies the target in debug output.
	Name string
	// HitShape limits the target to an area. Nil covers the whole surface.
	HitShape HitShape
	// Interactable gates hit testing. Targets start interactable.
	Interactable bool

	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnClick       func(ClickContext)
	OnDragStart   func(DragContext)
	OnDrag        func(DragContext)
	OnDragEnd     func(DragContext)

	scope *Scope
}

// NewTarget creates an interactable target with the given hit shape.
func NewTarget(name string, shape HitShape) *Target {
	return &Target{Name: name, HitShape: shape, Interactable: true}
}

func (t *Target) contains(x, y float64) bool {
	return t.HitShape == nil || t.HitShape.Contains(x, y)
}

// AddTarget registers t on top of every existing target.
func (s *Scope) AddTarget(t *Target) {
	if t.scope == s {
		return
	}
	if t.scope != nil {
		t.scope.RemoveTarget(t)
	}
	t.scope = s
	s.targets = append(s.targets, t)
}

// RemoveTarget unregisters t and drops any pointer capture it holds.
func (s *Scope) RemoveTarget(t *Target) {
	for i, existing := range s.targets {
		if existing == t {
			copy(s.targets[i:], s.targets[i+1:])
			s.targets[len(s.targets)-1] = nil
			s.targets = s.targets[:len(s.targets)-1]
			break
		}
	}
	for i := range s.captured {
		if s.captured[i] == t {
			s.captured[i] = nil
		}
	}
	for i := range s.pointers {
		if s.pointers[i].hitTarget == t {
			s.pointers[i].hitTarget = nil
			s.pointers[i].dragging = false
		}
	}
	t.scope = nil
}

// --- Callback contexts ---

// PointerContext carries pointer press/release data.
type PointerContext struct {
	Target    *Target
	X, Y      float64
	StartX    float64 // position of the press that began this interaction
	StartY    float64
	PointerID int
}

// ClickContext carries tap data: a press and release on the same target
// without exceeding the drag dead zone.
type ClickContext struct {
	Target    *Target
	X, Y      float64
	PointerID int
}

// DragContext carries drag data. DeltaX/DeltaY are relative to the previous
// frame; use X-StartX for the total displacement.
type DragContext struct {
	Target    *Target
	X, Y      float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	PointerID int
}

// KeyContext carries a key press.
type KeyContext struct {
	Key Key
}

// WheelContext carries a wheel/trackpad scroll. Positive DeltaY scrolls
// toward the end of the document.
type WheelContext struct {
	DeltaX, DeltaY float64
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitTarget *Target
	dragging  bool
}

// --- Handler registry ---

type inputKind uint8

const (
	inputPointerDown inputKind = iota
	inputPointerUp
	inputClick
	inputDragStart
	inputDrag
	inputDragEnd
	inputKey
	inputWheel
)

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type keyHandler struct {
	id uint32
	fn func(KeyContext)
}

type wheelHandler struct {
	id uint32
	fn func(WheelContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	click       []clickHandler
	dragStart   []dragHandler
	drag        []dragHandler
	dragEnd     []dragHandler
	key         []keyHandler
	wheel       []wheelHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scope-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind inputKind
}

// Remove unregisters this callback so it no longer fires. Removing the zero
// handle, or removing twice, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case inputPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case inputPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case inputClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(c clickHandler) uint32 { return c.id })
	case inputDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id, func(d dragHandler) uint32 { return d.id })
	case inputDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id, func(d dragHandler) uint32 { return d.id })
	case inputDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id, func(d dragHandler) uint32 { return d.id })
	case inputKey:
		h.reg.key = removeHandler(h.reg.key, h.id, func(k keyHandler) uint32 { return k.id })
	case inputWheel:
		h.reg.wheel = removeHandler(h.reg.wheel, h.id, func(w wheelHandler) uint32 { return w.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scope-level event registration ---

func (s *Scope) nextHandlerID() uint32 {
	s.handlers.nextID++
	return s.handlers.nextID
}

// OnPointerDown registers a scope-level callback for pointer down events.
func (s *Scope) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputPointerDown}
}

// OnPointerUp registers a scope-level callback for pointer up events.
func (s *Scope) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputPointerUp}
}

// OnClick registers a scope-level callback for taps.
func (s *Scope) OnClick(fn func(ClickContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputClick}
}

// OnDragStart registers a scope-level callback for drag start events.
func (s *Scope) OnDragStart(fn func(DragContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputDragStart}
}

// OnDrag registers a scope-level callback for drag events.
func (s *Scope) OnDrag(fn func(DragContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputDrag}
}

// OnDragEnd registers a scope-level callback for drag end events.
func (s *Scope) OnDragEnd(fn func(DragContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputDragEnd}
}

// OnKey registers a document-level key handler.
func (s *Scope) OnKey(fn func(KeyContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.key = append(s.handlers.key, keyHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputKey}
}

// OnWheel registers a document-level wheel handler.
func (s *Scope) OnWheel(fn func(WheelContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.wheel = append(s.handlers.wheel, wheelHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: inputWheel}
}

// CapturePointer routes all events for pointerID to the given target.
func (s *Scope) CapturePointer(pointerID int, t *Target) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = t
	}
}

// ReleasePointer stops routing events for pointerID to a captured target.
func (s *Scope) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scope) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// hitTest finds the topmost interactable target at (x, y).
// Returns nil if nothing is hit.
func (s *Scope) hitTest(x, y float64) *Target {
	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		if t.Interactable && t.contains(x, y) {
			return t
		}
	}
	return nil
}

// --- Host input ---

// Pointer feeds one pointer sample: its position and whether it is pressed.
// Hosts call it once per frame per active pointer; press, move, release,
// tap, and drag events are derived from consecutive samples.
func (s *Scope) Pointer(pointerID int, x, y float64, pressed bool) {
	if s.disposed || pointerID < 0 || pointerID >= maxPointers {
		return
	}
	s.processPointer(pointerID, x, y, pressed)
}

// PressKey delivers a key press to every key handler.
func (s *Scope) PressKey(k Key) {
	if s.disposed {
		return
	}
	ctx := KeyContext{Key: k}
	for _, h := range snapshot(s.handlers.key) {
		h.fn(ctx)
	}
}

// Wheel delivers a wheel delta to every wheel handler.
func (s *Scope) Wheel(dx, dy float64) {
	if s.disposed {
		return
	}
	ctx := WheelContext{DeltaX: dx, DeltaY: dy}
	for _, h := range snapshot(s.handlers.wheel) {
		h.fn(ctx)
	}
}

// snapshot copies a handler slice so callbacks may remove handlers while the
// event is being dispatched.
func snapshot[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append([]T(nil), s...)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scope) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &s.pointers[pointerID]

	// Determine target: captured target or hit test.
	var target *Target
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(x, y)
	}

	if pressed && !ps.down {
		// Just pressed.
		ps.down = true
		ps.startX = x
		ps.startY = y
		ps.lastX = x
		ps.lastY = y
		ps.hitTarget = target
		ps.dragging = false

		s.firePointerDown(target, pointerID, x, y, x, y)
	} else if !pressed && ps.down {
		// Just released.
		hit := ps.hitTarget
		startX, startY := ps.startX, ps.startY
		if ps.dragging {
			s.fireDrag(hit, inputDragEnd, pointerID, x, y, startX, startY, x-ps.lastX, y-ps.lastY)
		} else if hit != nil && hit == target {
			s.fireClick(target, pointerID, x, y)
		}

		// Release goes to the target that received the press.
		s.firePointerUp(hit, pointerID, x, y, startX, startY)

		// Auto-release capture.
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitTarget = nil
		ps.dragging = false
		ps.lastX = x
		ps.lastY = y
	} else if pressed && ps.down {
		// Held down, possibly moved.
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(ps.hitTarget, inputDragStart, pointerID, x, y, ps.startX, ps.startY,
						x-ps.startX, y-ps.startY)
				}
			}
			if ps.dragging {
				s.fireDrag(ps.hitTarget, inputDrag, pointerID, x, y, ps.startX, ps.startY,
					x-ps.lastX, y-ps.lastY)
			}
		}
		ps.lastX = x
		ps.lastY = y
	} else {
		ps.lastX = x
		ps.lastY = y
	}
}

// --- Event dispatch ---

func (s *Scope) firePointerDown(t *Target, pointerID int, x, y, startX, startY float64) {
	ctx := PointerContext{Target: t, X: x, Y: y, StartX: startX, StartY: startY, PointerID: pointerID}
	// Scope-level handlers first.
	for _, h := range snapshot(s.handlers.pointerDown) {
		h.fn(ctx)
	}
	// Per-target callback.
	if t != nil && t.OnPointerDown != nil {
		t.OnPointerDown(ctx)
	}
}

func (s *Scope) firePointerUp(t *Target, pointerID int, x, y, startX, startY float64) {
	ctx := PointerContext{Target: t, X: x, Y: y, StartX: startX, StartY: startY, PointerID: pointerID}
	for _, h := range snapshot(s.handlers.pointerUp) {
		h.fn(ctx)
	}
	if t != nil && t.OnPointerUp != nil {
		t.OnPointerUp(ctx)
	}
}

func (s *Scope) fireClick(t *Target, pointerID int, x, y float64) {
	ctx := ClickContext{Target: t, X: x, Y: y, PointerID: pointerID}
	for _, h := range snapshot(s.handlers.click) {
		h.fn(ctx)
	}
	if t != nil && t.OnClick != nil {
		t.OnClick(ctx)
	}
}

func (s *Scope) fireDrag(t *Target, kind inputKind, pointerID int, x, y, startX, startY, deltaX, deltaY float64) {
	ctx := DragContext{
		Target: t, X: x, Y: y,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY,
		PointerID: pointerID,
	}
	var handlers []dragHandler
	var fn func(DragContext)
	switch kind {
	case inputDragStart:
		handlers = s.handlers.dragStart
		if t != nil {
			fn = t.OnDragStart
		}
	case inputDrag:
		handlers = s.handlers.drag
		if t != nil {
			fn = t.OnDrag
		}
	case inputDragEnd:
		handlers = s.handlers.dragEnd
		if t != nil {
			fn = t.OnDragEnd
		}
	}
	for _, h := range snapshot(handlers) {
		h.fn(ctx)
	}
	if fn != nil {
		fn(ctx)
	}
}
