// Package keepsake is the interaction choreography engine behind animated
// wedding invitations.
//
// Keepsake owns the timing and state of an invitation render: which section
// is currently in view, when an element fades in, how the cover hands off to
// the invitation and then the main page, and how the gallery carousel and
// guestbook card stack respond to swipes, taps, and keys. Drawing is left to
// the host: an [Ebitengine] window (see keepsake/ebitenhost), a terminal
// previewer, or anything that can read the component state each frame.
//
// # Quick start
//
// Everything hangs off a [Scope]. Create one per invitation render and call
// [Scope.Update] once per frame:
//
//	vp := keepsake.NewViewport(360, 640)
//	scope := keepsake.NewScope(keepsake.ScopeConfig{Host: vp})
//
//	seq := scope.NewSequencer()
//	seq.Bind(keepsake.HitRect{Width: 360, Height: 640})
//	seq.OnScreenChange = func(st keepsake.Stage) { log.Println("stage:", st) }
//
//	for range ticker.C {
//		scope.Update(1.0 / 60)
//	}
//
// # Components
//
// [Tracker] reports the most visible section; [Scope.TrackSection] feeds it
// from the [VisibilityHost]. [Revealer] hands out one-shot reveal triggers.
// [Sequencer] drives the cover, invitation, and main page stages with delayed
// hints. [Carousel] is an infinite image strip with clone frames at both ends.
// [CardStack] is the swipeable guestbook, built on the pure [StepGesture]
// state machine.
//
// # Input
//
// Hosts feed raw samples with [Scope.Pointer], [Scope.PressKey], and
// [Scope.Wheel]. Press, drag, and tap events are derived per pointer and
// routed to [Target] hit areas. Tests and demos can queue the same input with
// [Scope.InjectTap], [Scope.InjectDrag], or a JSON [ScriptRunner].
//
// # Pacing
//
// Every duration, threshold, and easing curve comes from a [Theme]. Built-in
// themes are embedded YAML files; see [BuiltinTheme] and [LoadTheme]. When the
// host or [ScopeConfig] asks for reduced motion, reveals happen immediately
// and slides, fades, and card exits complete on the next frame. The intro
// still waits its choreography delay between screens.
//
// [Ebitengine]: https://ebitengine.org
package keepsake
