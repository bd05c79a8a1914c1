package keepsake

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// timer is a one-shot delayed callback. The delay is tracked by a linear
// tween from 0 to the delay, so it advances on exactly the same clock as every
// animation in the scope.
type timer struct {
	id    uint32
	delay *gween.Tween // nil for zero delays, which fire on the next advance
	fn    func()
	dead  bool
}

// tick advances the timer by dt and reports whether it is due.
func (t *timer) tick(dt float32) bool {
	if t.delay == nil {
		return true
	}
	_, done := t.delay.Update(dt)
	return done
}

type timerQueue struct {
	timers []*timer
	nextID uint32
}

// TimerHandle allows cancelling a timer scheduled with Scope.After.
type TimerHandle struct {
	id uint32
	q  *timerQueue
}

// Cancel stops the timer from firing. It reports whether the timer was still
// pending.
func (h TimerHandle) Cancel() bool {
	t := h.find()
	if t == nil {
		return false
	}
	t.dead = true
	return true
}

// Pending reports whether the timer has neither fired nor been cancelled.
func (h TimerHandle) Pending() bool {
	return h.find() != nil
}

func (h TimerHandle) find() *timer {
	if h.q == nil || h.id == 0 {
		return nil
	}
	for _, t := range h.q.timers {
		if t.id == h.id && !t.dead {
			return t
		}
	}
	return nil
}

func (q *timerQueue) schedule(delay float32, fn func()) TimerHandle {
	q.nextID++
	t := &timer{id: q.nextID, fn: fn}
	if delay > 0 {
		t.delay = gween.New(0, delay, delay, ease.Linear)
	}
	q.timers = append(q.timers, t)
	return TimerHandle{id: t.id, q: q}
}

// advance ticks every timer that existed before the call. Timers scheduled
// from inside a callback start counting on the next advance.
func (q *timerQueue) advance(dt float32) {
	due := q.timers[:len(q.timers):len(q.timers)]
	for _, t := range due {
		if t.dead {
			continue
		}
		if t.tick(dt) {
			t.dead = true
			t.fn()
		}
	}

	live := q.timers[:0]
	for _, t := range q.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(q.timers); i++ {
		q.timers[i] = nil
	}
	q.timers = live
}

func (q *timerQueue) clear() {
	for _, t := range q.timers {
		t.dead = true
	}
	q.timers = nil
}
