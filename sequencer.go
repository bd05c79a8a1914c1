package keepsake

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Sequencer drives the two-screen intro (cover, then invitation) and the
// hand-off to the main page.
//
// A transition fades the current screen out, waits the theme's choreography
// delay, swaps the stage, fades back in, and schedules the new stage's hints.
// Requests made while a transition is in flight are dropped, never queued.
// Reduced motion skips the fades only; the choreography delay still applies.
type Sequencer struct {
	scope *Scope

	stage     Stage
	target    Stage
	fadingOut bool
	alpha     float64
	fade      *gween.Tween
	commit    TimerHandle

	hints      map[string]bool
	hintTimers []TimerHandle

	area     *Target
	controls []HitShape
	wheel    CallbackHandle

	disposed bool

	// OnScreenChange is called after a transition commits.
	OnScreenChange func(stage Stage)
	// OnHint is called when a delayed hint becomes visible.
	OnHint func(name string)
}

// NewSequencer creates a sequencer on the cover screen and schedules the
// cover's hints.
func (s *Scope) NewSequencer() *Sequencer {
	q := &Sequencer{
		scope: s,
		stage: StageCover,
		alpha: 1,
		hints: make(map[string]bool),
	}
	s.addComponent(q)
	q.scheduleHints()
	return q
}

// Stage returns the committed stage.
func (q *Sequencer) Stage() Stage {
	return q.stage
}

// Screen returns the intro sub-machine state. It stays ScreenInvitation once
// the main page is reached.
func (q *Sequencer) Screen() Screen {
	if q.stage == StageCover {
		return ScreenCover
	}
	return ScreenInvitation
}

// Page returns the outer page state.
func (q *Sequencer) Page() Page {
	if q.stage == StageMain {
		return PageMain
	}
	return PageIntro
}

// FadingOut reports whether a transition is in flight.
func (q *Sequencer) FadingOut() bool {
	return q.fadingOut
}

// Alpha returns the opacity of the current screen in [0, 1].
func (q *Sequencer) Alpha() float64 {
	return q.alpha
}

// HintVisible reports whether the named hint is showing.
func (q *Sequencer) HintVisible(name string) bool {
	return q.hints[name]
}

// RequestTransition starts a transition to target. It returns false, doing
// nothing, when a transition is already in flight or target is not the stage
// directly after the current one. Completion is observable only through
// OnScreenChange.
func (q *Sequencer) RequestTransition(target Stage) bool {
	if q.disposed {
		return false
	}
	if q.fadingOut {
		q.scope.stats.droppedTransitions++
		q.scope.debugf("sequencer: dropped %s request, transition to %s in flight", target, q.target)
		return false
	}
	if target != q.stage+1 || target > StageMain {
		return false
	}

	q.fadingOut = true
	q.target = target
	q.clearHints()

	delay := seconds(q.scope.theme.ChoreographyDelay)
	q.startFade(0, q.scope.duration(delay))
	q.commit = q.scope.After(delay, q.commitTransition)
	q.scope.debugf("sequencer: %s -> %s", q.stage, target)
	return true
}

// Next requests the stage after the current one, the explicit "next"
// affordance.
func (q *Sequencer) Next() bool {
	return q.RequestTransition(q.stage + 1)
}

// Reset returns to the cover immediately, cancelling any in-flight
// transition and pending hints. Used to replay the intro.
func (q *Sequencer) Reset() {
	if q.disposed {
		return
	}
	q.commit.Cancel()
	q.clearHints()
	q.fadingOut = false
	q.fade = nil
	q.alpha = 1
	changed := q.stage != StageCover
	q.stage = StageCover
	if q.area != nil {
		q.area.Interactable = true
	}
	if changed {
		q.notify()
	}
	q.scheduleHints()
}

// Bind wires the scope's input to the sequencer: taps on area advance the
// intro (except taps inside controls on the invitation screen), an upward
// swipe or a forward wheel leaves the cover. Calling Bind again replaces the
// previous binding.
func (q *Sequencer) Bind(area HitShape, controls ...HitShape) {
	q.Unbind()
	t := NewTarget("intro", area)
	t.OnClick = func(ctx ClickContext) {
		switch q.stage {
		case StageCover:
			q.RequestTransition(StageInvitation)
		case StageInvitation:
			for _, c := range q.controls {
				if c.Contains(ctx.X, ctx.Y) {
					return
				}
			}
			q.RequestTransition(StageMain)
		}
	}
	t.OnDragEnd = func(ctx DragContext) {
		if q.stage == StageCover && ctx.StartY-ctx.Y > q.scope.theme.IntroSwipeThreshold {
			q.RequestTransition(StageInvitation)
		}
	}
	t.Interactable = q.stage != StageMain
	q.area = t
	q.controls = controls
	q.scope.AddTarget(t)
	q.wheel = q.scope.OnWheel(func(ctx WheelContext) {
		if q.stage == StageCover && ctx.DeltaY > 0 {
			q.RequestTransition(StageInvitation)
		}
	})
}

// Unbind removes the input wiring added by Bind.
func (q *Sequencer) Unbind() {
	if q.area != nil {
		q.scope.RemoveTarget(q.area)
		q.area = nil
	}
	q.controls = nil
	q.wheel.Remove()
	q.wheel = CallbackHandle{}
}

// Dispose cancels timers, removes input wiring, and detaches the sequencer.
func (q *Sequencer) Dispose() {
	q.dispose()
}

func (q *Sequencer) commitTransition() {
	if q.disposed || !q.fadingOut {
		return
	}
	q.stage = q.target
	q.fadingOut = false
	q.alpha = 0
	q.startFade(1, q.scope.duration(seconds(q.scope.theme.FadeIn)))
	if q.area != nil && q.stage == StageMain {
		q.area.Interactable = false
	}
	q.notify()
	q.scheduleHints()
}

func (q *Sequencer) notify() {
	if q.OnScreenChange != nil {
		q.OnScreenChange(q.stage)
	}
	q.scope.emit(Event{Type: EventScreenChange, Source: "sequencer", Stage: q.stage})
}

func (q *Sequencer) scheduleHints() {
	for _, h := range q.scope.theme.Hints {
		if h.Stage != q.stage {
			continue
		}
		name := h.Name
		q.hintTimers = append(q.hintTimers, q.scope.After(seconds(h.Delay), func() {
			q.showHint(name)
		}))
	}
}

func (q *Sequencer) showHint(name string) {
	if q.hints[name] {
		return
	}
	q.hints[name] = true
	if q.OnHint != nil {
		q.OnHint(name)
	}
	q.scope.emit(Event{Type: EventHintShown, Source: "sequencer", Stage: q.stage, Hint: name})
}

func (q *Sequencer) clearHints() {
	for _, h := range q.hintTimers {
		h.Cancel()
	}
	q.hintTimers = q.hintTimers[:0]
	clear(q.hints)
}

func (q *Sequencer) update(dt float32) {
	if q.fade == nil {
		return
	}
	val, done := q.fade.Update(dt)
	q.alpha = float64(val)
	if done {
		q.fade = nil
	}
}

func (q *Sequencer) dispose() {
	if q.disposed {
		return
	}
	q.commit.Cancel()
	q.clearHints()
	q.Unbind()
	q.disposed = true
	q.scope.removeComponent(q)
}

// startFade animates alpha from its current value to `to`. A zero duration
// applies the value immediately.
func (q *Sequencer) startFade(to float64, duration float32) {
	if duration <= 0 {
		q.alpha = to
		q.fade = nil
		return
	}
	q.fade = gween.New(float32(q.alpha), float32(to), duration, ease.InOutQuad)
}
