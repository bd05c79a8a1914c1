package keepsake

import "fmt"

// debugStats counts choreography decisions for DebugSummary.
type debugStats struct {
	droppedTransitions int
	rehomes            int
	commits            int
	snapBacks          int
}

// debugf prints a diagnostic line when debug mode is on.
func (s *Scope) debugf(format string, args ...any) {
	if !s.debug || s.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(s.debugOut, "[keepsake] "+format+"\n", args...)
}

// DebugSummary returns a one-line summary of the scope's counters: dropped
// transition requests, carousel rehomes, card commits, and snap-backs.
func (s *Scope) DebugSummary() string {
	return fmt.Sprintf("section: %q | dropped: %d | rehomes: %d | commits: %d | snap-backs: %d",
		s.tracker.ActiveID(), s.stats.droppedTransitions, s.stats.rehomes,
		s.stats.commits, s.stats.snapBacks)
}
