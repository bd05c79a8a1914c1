package keepsake

import (
	"io"
	"os"
)

// EventSink is the interface for optional notification forwarding.
// When set on a Scope, every choreography notification is forwarded to it
// after the component's own callback runs.
type EventSink interface {
	Emit(event Event)
}

// Event carries a choreography notification. Only the fields relevant to
// Type are populated.
type Event struct {
	Type EventType
	// Source is the name of the component that produced the event.
	Source string
	// SectionID is valid for EventSectionChange. Empty means no section is active.
	SectionID string
	// Stage is valid for EventScreenChange.
	Stage Stage
	// Index is the carousel display index (1-based) for EventCarouselIndex and
	// the top card index (0-based) for EventCardIndex.
	Index int
	// Hint is valid for EventHintShown.
	Hint string
}

// Updater is implemented by visibility hosts that animate or poll. A Scope
// calls Update once per frame after its components have been ticked.
type Updater interface {
	Update(dt float32)
}

// component is a scope-owned state machine that is ticked every frame.
type component interface {
	update(dt float32)
	dispose()
}

// ScopeConfig configures a new Scope. The zero value is usable: default
// theme, no visibility host (visibility fails open), motion allowed.
type ScopeConfig struct {
	// Theme supplies pacing constants. Nil selects DefaultTheme.
	Theme *Theme
	// Host is the visibility primitive. Nil means reveals happen immediately
	// and sections are only updated through Tracker().Register.
	Host VisibilityHost
	// ReducedMotion forces reduced-motion behavior regardless of the host.
	ReducedMotion bool
}

// Scope is the top-level object that owns one invitation render: its section
// tracker, timers, input state, and every choreography component created from
// it. Independent previews must each use their own Scope.
type Scope struct {
	theme         Theme
	host          VisibilityHost
	reducedMotion bool
	sink          EventSink

	tracker    *Tracker
	sections   []*SectionHandle
	timers     timerQueue
	components []component
	compBuf    []component

	// Input state
	handlers     handlerRegistry
	targets      []*Target
	captured     [maxPointers]*Target
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	injectQueue  []syntheticEvent
	runner       *ScriptRunner

	debug    bool
	debugOut io.Writer
	stats    debugStats
	disposed bool
}

// NewScope creates a scope with its own section tracker.
func NewScope(cfg ScopeConfig) *Scope {
	theme := DefaultTheme()
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	s := &Scope{
		theme:         theme,
		host:          cfg.Host,
		reducedMotion: cfg.ReducedMotion,
		dragDeadZone:  defaultDragDeadZone,
		debugOut:      os.Stderr,
	}
	s.tracker = newTracker(s)
	return s
}

// Tracker returns the scope's section tracker.
func (s *Scope) Tracker() *Tracker {
	return s.tracker
}

// Theme returns the pacing configuration the scope was created with.
func (s *Scope) Theme() Theme {
	return s.theme
}

// Host returns the visibility host, or nil.
func (s *Scope) Host() VisibilityHost {
	return s.host
}

// PrefersReducedMotion reports whether animations should be skipped, either
// because the scope was configured that way or because the host says so.
func (s *Scope) PrefersReducedMotion() bool {
	if s.reducedMotion {
		return true
	}
	return s.host != nil && s.host.PrefersReducedMotion()
}

// SetEventSink sets the optional notification bridge.
func (s *Scope) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, dropped
// transitions, rehoming steps, and gesture decisions are logged.
func (s *Scope) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDebugOutput redirects debug logging. The default is os.Stderr.
func (s *Scope) SetDebugOutput(w io.Writer) {
	s.debugOut = w
}

// Update advances the scope by dt seconds: injected input, timers, every
// component, then the visibility host.
func (s *Scope) Update(dt float32) {
	if s.disposed {
		return
	}
	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjectedInput()
	s.timers.advance(dt)

	// Components may dispose themselves from callbacks; tick a snapshot.
	s.compBuf = append(s.compBuf[:0], s.components...)
	for _, c := range s.compBuf {
		c.update(dt)
	}

	if u, ok := s.host.(Updater); ok {
		u.Update(dt)
	}
}

// After schedules fn to run once, delay seconds of Update time from now.
func (s *Scope) After(delay float32, fn func()) TimerHandle {
	return s.timers.schedule(delay, fn)
}

// Dispose tears down the scope: components are disposed, timers cancelled,
// handlers and targets removed, tracked sections unobserved, and the tracker
// emptied. Further Update calls are no-ops and no events reach the sink.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	for len(s.sections) > 0 {
		s.sections[len(s.sections)-1].detach()
	}
	comps := append([]component(nil), s.components...)
	for i := len(comps) - 1; i >= 0; i-- {
		comps[i].dispose()
	}
	s.components = nil
	s.timers.clear()
	s.handlers = handlerRegistry{}
	s.targets = nil
	s.captured = [maxPointers]*Target{}
	s.pointers = [maxPointers]pointerState{}
	s.injectQueue = nil
	s.runner = nil
	s.tracker.reset()
	s.sink = nil
	s.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (s *Scope) IsDisposed() bool {
	return s.disposed
}

func (s *Scope) addComponent(c component) {
	s.components = append(s.components, c)
}

func (s *Scope) removeComponent(c component) {
	for i, existing := range s.components {
		if existing == c {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

// emit forwards an event to the sink, if any.
func (s *Scope) emit(ev Event) {
	if s.sink != nil {
		s.sink.Emit(ev)
	}
}

// duration returns d, or zero when reduced motion is in effect.
func (s *Scope) duration(d float32) float32 {
	if s.PrefersReducedMotion() {
		return 0
	}
	return d
}
