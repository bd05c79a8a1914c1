package keepsake

import "math"

// GesturePhase is the state of a card-stack gesture.
type GesturePhase uint8

const (
	GestureIdle GesturePhase = iota
	GestureDragging
	GestureCommittingNext
	GestureCommittingPrev
	GestureSnappingBack
)

func (p GesturePhase) String() string {
	switch p {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureCommittingNext:
		return "committing-next"
	case GestureCommittingPrev:
		return "committing-prev"
	case GestureSnappingBack:
		return "snapping-back"
	default:
		return "unknown"
	}
}

// Animating reports whether the phase is one of the post-release animations.
func (p GesturePhase) Animating() bool {
	return p == GestureCommittingNext || p == GestureCommittingPrev || p == GestureSnappingBack
}

// GestureState is the full state of one drag gesture. The zero value is idle.
type GestureState struct {
	Phase     GesturePhase
	StartY    float64
	OffsetY   float64
	PointerID int
}

// GestureEventKind identifies a gesture input.
type GestureEventKind uint8

const (
	GestureDown GestureEventKind = iota
	GestureMove
	GestureUp
	GestureCancel
	// GestureAnimationEnd reports that the commit or snap-back animation
	// finished.
	GestureAnimationEnd
)

// GestureEvent is one input to StepGesture. Y is ignored for cancel and
// animation-end events.
type GestureEvent struct {
	Kind      GestureEventKind
	Y         float64
	PointerID int
}

// GestureThresholds are the release boundaries in pixels.
type GestureThresholds struct {
	// Swipe is the offset beyond which a release commits.
	Swipe float64
	// Tap is the offset below which a release counts as a tap.
	Tap float64
}

// ReleaseOutcome is what a pointer release resolves to.
type ReleaseOutcome uint8

const (
	ReleaseSnapBack ReleaseOutcome = iota
	ReleaseNext
	ReleasePrev
)

func (r ReleaseOutcome) String() string {
	switch r {
	case ReleaseNext:
		return "next"
	case ReleasePrev:
		return "prev"
	default:
		return "snap-back"
	}
}

// ClassifyRelease maps a release offset to its outcome. Negative offsets are
// upward. A swipe past the threshold commits in its direction; a release
// within the tap threshold commits next; anything between snaps back.
func ClassifyRelease(offsetY float64, th GestureThresholds) ReleaseOutcome {
	switch {
	case offsetY < -th.Swipe:
		return ReleaseNext
	case offsetY > th.Swipe:
		return ReleasePrev
	case math.Abs(offsetY) < th.Tap:
		return ReleaseNext
	default:
		return ReleaseSnapBack
	}
}

// StepGesture returns the state after ev. Events that do not apply to the
// current phase, or that come from a different pointer than the one being
// tracked, leave the state unchanged.
func StepGesture(s GestureState, ev GestureEvent, th GestureThresholds) GestureState {
	switch s.Phase {
	case GestureIdle:
		if ev.Kind == GestureDown {
			return GestureState{Phase: GestureDragging, StartY: ev.Y, PointerID: ev.PointerID}
		}
	case GestureDragging:
		if ev.PointerID != s.PointerID && ev.Kind != GestureAnimationEnd {
			return s
		}
		switch ev.Kind {
		case GestureMove:
			s.OffsetY = ev.Y - s.StartY
		case GestureUp:
			s.OffsetY = ev.Y - s.StartY
			switch ClassifyRelease(s.OffsetY, th) {
			case ReleaseNext:
				s.Phase = GestureCommittingNext
			case ReleasePrev:
				s.Phase = GestureCommittingPrev
			default:
				s.Phase = GestureSnappingBack
			}
		case GestureCancel:
			if s.OffsetY == 0 {
				return GestureState{}
			}
			s.Phase = GestureSnappingBack
		}
	default:
		if ev.Kind == GestureAnimationEnd {
			return GestureState{}
		}
	}
	return s
}
