package keepsake

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticKey
	syntheticWheel
)

// syntheticEvent represents a single injected input event.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	key     Key
	dx, dy  float64
}

// InjectPress queues a pointer press at (x, y). Injected events are consumed
// one per Update, before timers and components advance.
func (s *Scope) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticPointer, x: x, y: y, pressed: true,
	})
}

// InjectMove queues a pointer move at (x, y) with the pointer held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (s *Scope) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticPointer, x: x, y: y, pressed: true,
	})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scope) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticPointer, x: x, y: y, pressed: false,
	})
}

// InjectTap is a convenience that queues a press followed by a release at the
// same coordinates. Consumes two frames.
func (s *Scope) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames is 2
// (press + release).
func (s *Scope) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press.
func (s *Scope) InjectKey(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// InjectWheel queues a wheel delta.
func (s *Scope) InjectWheel(dx, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticWheel, dx: dx, dy: dy})
}

// PendingInput returns the number of queued synthetic events.
func (s *Scope) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and dispatches
// it. Pointer events use pointer 0.
func (s *Scope) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.processPointer(0, evt.x, evt.y, evt.pressed)
	case syntheticKey:
		s.PressKey(evt.key)
	case syntheticWheel:
		s.Wheel(evt.dx, evt.dy)
	}
	return true
}
