// Package preview is a terminal previewer for invitations: the intro, the
// scrolling main page, the gallery carousel and the guestbook stack run on a
// keepsake Scope ticked by bubbletea and are rendered with lipgloss.
package preview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/keepsake"
	"github.com/phanxgames/keepsake/content"
)

// Layout in terminal cells. The viewport scrolls in rows.
const (
	width       = 60
	sectionRows = 8
	viewRows    = 12
	maxEvents   = 4
)

// Options configures a Model.
type Options struct {
	Theme         keepsake.Theme
	ReducedMotion bool
	// Tick is the frame interval. Zero selects 50ms.
	Tick   time.Duration
	Debug  bool
	Script *keepsake.ScriptRunner
}

type tickMsg time.Time

type section struct {
	id     string
	title  string
	rect   keepsake.Rect
	reveal *keepsake.Reveal
}

// Model is the bubbletea model of the previewer.
type Model struct {
	inv      *content.Invitation
	scope    *keepsake.Scope
	vp       *keepsake.Viewport
	seq      *keepsake.Sequencer
	carousel *keepsake.Carousel
	cards    *keepsake.CardStack
	top      *keepsake.Target
	sections []*section

	// input describes the last pointer gesture; pressed is true while a
	// pointer is held.
	input   string
	pressed bool

	tick   time.Duration
	debug  bool
	events []string
}

// New builds the preview scope for inv.
func New(inv *content.Invitation, opts Options) *Model {
	if opts.Tick <= 0 {
		opts.Tick = 50 * time.Millisecond
	}
	vp := keepsake.NewViewport(width, viewRows)
	vp.ReducedMotion = opts.ReducedMotion
	theme := opts.Theme
	scope := keepsake.NewScope(keepsake.ScopeConfig{Theme: &theme, Host: vp, ReducedMotion: opts.ReducedMotion})

	m := &Model{inv: inv, scope: scope, vp: vp, tick: opts.Tick, debug: opts.Debug}
	scope.SetEventSink(m)
	scope.SetDebugMode(opts.Debug)

	rv := scope.NewRevealer()
	for i, s := range inv.Sections {
		sec := &section{
			id:    s.ID,
			title: s.Title,
			rect:  keepsake.Rect{Y: float64(i * sectionRows), Width: width, Height: sectionRows},
		}
		if sec.title == "" {
			sec.title = s.ID
		}
		sec.reveal = rv.Observe(sec.rect, keepsake.RevealOptions{Threshold: 0.25})
		scope.TrackSection(sec.id, sec.rect)
		m.sections = append(m.sections, sec)
	}
	vp.DocumentHeight = float64(len(m.sections) * sectionRows)

	m.seq = scope.NewSequencer()
	m.seq.Bind(keepsake.HitRect{Width: width, Height: viewRows})
	m.carousel = scope.NewCarousel()
	m.cards = scope.NewCardStack()

	m.top = keepsake.NewTarget("back-to-top", topBadge())
	m.top.Interactable = false
	m.top.OnClick = func(keepsake.ClickContext) {
		if len(m.sections) > 0 {
			m.vp.ScrollIntoView(m.sections[0].rect, m.scope.Theme())
		}
	}
	scope.AddTarget(m.top)
	m.watchInput()

	if opts.Script != nil {
		scope.SetScriptRunner(opts.Script)
	}
	return m
}

// topBadge is the diamond in the top right corner of the main page that
// scrolls back to the first section.
func topBadge() keepsake.HitPolygon {
	const cx, cy = width - 3, 1
	return keepsake.HitPolygon{Points: []keepsake.Vec2{
		{X: cx, Y: cy - 1},
		{X: cx + 2, Y: cy},
		{X: cx, Y: cy + 1},
		{X: cx - 2, Y: cy},
	}}
}

// watchInput keeps a one-line readout of pointer activity for the footer.
func (m *Model) watchInput() {
	s := m.scope
	s.OnPointerDown(func(ctx keepsake.PointerContext) {
		m.pressed = true
		m.input = fmt.Sprintf("press %.0f,%.0f", ctx.X, ctx.Y)
	})
	s.OnPointerUp(func(keepsake.PointerContext) {
		m.pressed = false
	})
	s.OnClick(func(ctx keepsake.ClickContext) {
		m.input = fmt.Sprintf("tap %.0f,%.0f", ctx.X, ctx.Y)
	})
	s.OnDragStart(func(keepsake.DragContext) {
		m.input = "drag"
	})
	s.OnDrag(func(ctx keepsake.DragContext) {
		m.input = fmt.Sprintf("drag %+.0f", ctx.Y-ctx.StartY)
	})
	s.OnDragEnd(func(ctx keepsake.DragContext) {
		m.input = fmt.Sprintf("swipe %+.0f", ctx.Y-ctx.StartY)
	})
}

// Scope exposes the underlying scope.
func (m *Model) Scope() *keepsake.Scope {
	return m.scope
}

// Emit implements keepsake.EventSink by keeping a short event log.
func (m *Model) Emit(ev keepsake.Event) {
	var line string
	switch ev.Type {
	case keepsake.EventSectionChange:
		line = fmt.Sprintf("section -> %q", ev.SectionID)
	case keepsake.EventScreenChange:
		line = "screen -> " + ev.Stage.String()
	case keepsake.EventCarouselIndex:
		line = fmt.Sprintf("gallery image %d", ev.Index)
	case keepsake.EventCardIndex:
		line = fmt.Sprintf("guestbook card %d", ev.Index)
	case keepsake.EventHintShown:
		line = "hint " + ev.Hint
	default:
		line = ev.Type.String()
	}
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// Events returns the recent event log, oldest first.
func (m *Model) Events() []string {
	return m.events
}

func (m *Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m *Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.top.Interactable = m.seq.Page() == keepsake.PageMain &&
			!m.carousel.IsOpen() && !m.cards.IsOpen()
		m.scope.Update(float32(m.tick.Seconds()))
		return m, m.nextTick()
	case tea.KeyMsg:
		if m.handleKey(msg.String()) {
			m.scope.Dispose()
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleKey applies one key press and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	modal := m.carousel.IsOpen() || m.cards.IsOpen()
	switch key {
	case "q", "ctrl+c":
		return true
	case "esc":
		m.scope.PressKey(keepsake.KeyEscape)
	case "left", "h":
		m.scope.PressKey(keepsake.KeyArrowLeft)
	case "right", "l":
		m.scope.PressKey(keepsake.KeyArrowRight)
	case "up", "k":
		if modal {
			m.scope.PressKey(keepsake.KeyArrowUp)
		} else if m.seq.Page() == keepsake.PageMain {
			m.vp.ScrollBy(-1)
		} else if m.seq.Stage() == keepsake.StageCover {
			m.scope.Wheel(0, 1)
		}
	case "down", "j":
		if modal {
			m.scope.PressKey(keepsake.KeyArrowDown)
		} else if m.seq.Page() == keepsake.PageMain {
			m.vp.ScrollBy(1)
		}
	case "t":
		m.scope.InjectTap(width/2, viewRows/2)
	case "s":
		m.scope.InjectTap(width-3, 1)
	case "w":
		m.scope.InjectDrag(width/2, viewRows-1, width/2, 1, 4)
	case "enter", " ":
		if modal {
			break
		}
		if m.seq.Page() == keepsake.PageIntro {
			m.seq.Next()
			break
		}
		m.activate(m.scope.Tracker().ActiveID())
	case "g":
		m.activate("gallery")
	case "b":
		m.activate("guestbook")
	case "r":
		m.carousel.Close()
		m.cards.Close()
		m.vp.ScrollTo(0, 0, nil)
		m.seq.Reset()
	}
	return false
}

// activate opens the section's modal, or scrolls to the next section.
func (m *Model) activate(id string) {
	if m.seq.Page() != keepsake.PageMain {
		return
	}
	switch id {
	case "gallery":
		if !m.cards.IsOpen() {
			m.carousel.Open(m.inv.Gallery, 0)
		}
	case "guestbook":
		if !m.carousel.IsOpen() {
			m.cards.Open(m.inv.Guestbook, 0)
		}
	default:
		for i, sec := range m.sections {
			if sec.id == id && i+1 < len(m.sections) {
				m.vp.ScrollIntoView(m.sections[i+1].rect, m.scope.Theme())
				return
			}
		}
	}
}
