package keepsake

import "sort"

// region is one registered section and its last reported visibility ratio.
type region struct {
	ratio float64
	seq   uint64 // registration order, for tie-breaks
}

// Tracker reports which registered section of a document is currently the
// most visible. Each Scope owns exactly one.
//
// Ratios are last-write-wins per id. The active id is the argmax of ratios:
// on a tie the previously active id is kept if it is among the tied maxima,
// otherwise the most recently registered tied id wins. When every ratio is 0
// the previous active id is retained rather than flickering to a default.
type Tracker struct {
	scope   *Scope
	regions map[string]*region
	nextSeq uint64

	// Cached argmax. maxRatio may be 0 while activeID is retained.
	activeID string
	maxRatio float64

	// OnChange is called with the new active id whenever it changes.
	OnChange func(id string)
}

func newTracker(s *Scope) *Tracker {
	return &Tracker{scope: s, regions: make(map[string]*region)}
}

// Register records the visibility ratio of a section, adding it if unknown.
// It is called on every ratio change, including 0 (fully hidden).
func (t *Tracker) Register(id string, ratio float64) {
	ratio = clamp01(ratio)
	r, ok := t.regions[id]
	if !ok {
		t.nextSeq++
		r = &region{seq: t.nextSeq}
		t.regions[id] = r
	}
	r.ratio = ratio

	if id == t.activeID {
		if ratio >= t.maxRatio {
			t.maxRatio = ratio
			return
		}
		// Rare path: the leader dropped.
		t.rescan()
		return
	}
	if ratio > t.maxRatio {
		t.setActive(id, ratio)
	}
}

// Unregister removes a section. If it was active, the active id is
// recomputed from the remaining sections; it becomes "" when none of them is
// visible.
func (t *Tracker) Unregister(id string) {
	if _, ok := t.regions[id]; !ok {
		return
	}
	delete(t.regions, id)
	if id != t.activeID {
		return
	}
	t.maxRatio = 0
	best, ratio := t.argmax("")
	if ratio == 0 {
		best = ""
	}
	t.setActive(best, ratio)
}

// ActiveID returns the most visible section id, or "" before any section has
// reported a non-zero ratio.
func (t *Tracker) ActiveID() string {
	return t.activeID
}

// Ratio returns the last reported ratio of id and whether it is registered.
func (t *Tracker) Ratio(id string) (float64, bool) {
	r, ok := t.regions[id]
	if !ok {
		return 0, false
	}
	return r.ratio, true
}

// Len returns the number of registered sections.
func (t *Tracker) Len() int {
	return len(t.regions)
}

// IDs returns the registered ids in registration order.
func (t *Tracker) IDs() []string {
	ids := make([]string, 0, len(t.regions))
	for id := range t.regions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return t.regions[ids[i]].seq < t.regions[ids[j]].seq
	})
	return ids
}

// rescan recomputes the argmax after the active section's ratio dropped.
func (t *Tracker) rescan() {
	best, ratio := t.argmax(t.activeID)
	if ratio == 0 {
		// Everything is hidden: keep the previous id.
		t.maxRatio = 0
		return
	}
	t.setActive(best, ratio)
}

// argmax scans all regions. prefer wins ties when it is among the maxima;
// otherwise the most recently registered tied id wins.
func (t *Tracker) argmax(prefer string) (string, float64) {
	var (
		bestID    string
		bestRatio = -1.0
		bestSeq   uint64
	)
	for id, r := range t.regions {
		switch {
		case r.ratio > bestRatio:
		case r.ratio == bestRatio && id == prefer:
		case r.ratio == bestRatio && bestID != prefer && r.seq > bestSeq:
		default:
			continue
		}
		bestID, bestRatio, bestSeq = id, r.ratio, r.seq
	}
	if bestRatio < 0 {
		return "", 0
	}
	return bestID, bestRatio
}

func (t *Tracker) setActive(id string, ratio float64) {
	t.maxRatio = ratio
	if id == t.activeID {
		return
	}
	t.activeID = id
	if t.scope != nil {
		t.scope.debugf("active section -> %q (%.2f)", id, ratio)
	}
	if t.OnChange != nil {
		t.OnChange(id)
	}
	if t.scope != nil {
		t.scope.emit(Event{Type: EventSectionChange, Source: "tracker", SectionID: id})
	}
}

func (t *Tracker) reset() {
	t.regions = make(map[string]*region)
	t.activeID = ""
	t.maxRatio = 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// --- Section wiring ---

// SectionHandle keeps a section registered with the tracker until Untrack.
type SectionHandle struct {
	id    string
	scope *Scope
	obs   Observation
}

// ID returns the tracked section id.
func (h *SectionHandle) ID() string {
	return h.id
}

// Untrack stops observing the section and removes it from the tracker.
func (h *SectionHandle) Untrack() {
	s := h.scope
	if s == nil {
		return
	}
	h.detach()
	s.tracker.Unregister(h.id)
}

// detach drops the host observation and forgets the scope without touching
// the tracker.
func (h *SectionHandle) detach() {
	s := h.scope
	if s == nil {
		return
	}
	if h.obs != nil {
		h.obs.Unobserve()
		h.obs = nil
	}
	for i, other := range s.sections {
		if other == h {
			s.sections = append(s.sections[:i], s.sections[i+1:]...)
			break
		}
	}
	h.scope = nil
}

// TrackSection registers a section with the tracker and feeds it visibility
// ratios from the scope's host at the theme's section thresholds. Without a
// host (or if the host cannot observe el) the section is registered at 0 and
// can still be driven through Tracker().Register.
func (s *Scope) TrackSection(id string, el Element) *SectionHandle {
	h := &SectionHandle{id: id}
	if s.disposed {
		return h
	}
	s.tracker.Register(id, 0)
	h.scope = s
	s.sections = append(s.sections, h)
	if s.host == nil {
		return h
	}
	obs, err := s.host.Observe(el, ObserveOptions{Thresholds: s.theme.SectionThresholds}, func(ratio float64) {
		if s.disposed || h.scope == nil {
			return
		}
		s.tracker.Register(id, ratio)
	})
	if err != nil {
		s.debugf("section %q not observable: %v", id, err)
		return h
	}
	h.obs = obs
	return h
}
