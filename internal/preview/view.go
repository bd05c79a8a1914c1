package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/keepsake"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	hintStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(width)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

func (m *Model) View() string {
	var body string
	switch {
	case m.carousel.IsOpen():
		body = m.renderCarousel()
	case m.cards.IsOpen():
		body = m.renderCards()
	case m.seq.Stage() == keepsake.StageCover:
		body = m.renderCover()
	case m.seq.Stage() == keepsake.StageInvitation:
		body = m.renderInvitation()
	default:
		body = m.renderMain()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderCover() string {
	inv := m.inv
	lines := []string{
		titleStyle.Render(inv.Groom.Name + " & " + inv.Bride.Name),
		inv.Wedding.Date.Format("Monday, January 2, 2006 15:04"),
		"",
		fadeBar(m.seq.Alpha()),
	}
	if m.seq.HintVisible("swipe") {
		lines = append(lines, hintStyle.Render("swipe up (k) or tap (t)"))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderInvitation() string {
	inv := m.inv
	lines := []string{
		titleStyle.Render("You are invited"),
		inv.Greeting,
		"",
		fmt.Sprintf("%s, son of %s and %s", inv.Groom.Name, inv.Groom.Father, inv.Groom.Mother),
		fmt.Sprintf("%s, daughter of %s and %s", inv.Bride.Name, inv.Bride.Father, inv.Bride.Mother),
		strings.TrimSpace(inv.Wedding.Venue + " " + inv.Wedding.Hall),
		"",
		fadeBar(m.seq.Alpha()),
	}
	if m.seq.HintVisible(keepsake.HintTooltip) {
		lines = append(lines, hintStyle.Render("tap anywhere to continue"))
	}
	if m.seq.HintVisible(keepsake.HintScroll) {
		lines = append(lines, hintStyle.Render("scroll down"))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMain() string {
	active := m.scope.Tracker().ActiveID()
	var lines []string
	for _, sec := range m.sections {
		ratio := m.vp.Ratio(sec.rect, keepsake.Margin{})
		if ratio == 0 {
			continue
		}
		label := fmt.Sprintf("%-28s %3.0f%%", sec.title, ratio*100)
		switch {
		case !sec.reveal.Revealed():
			lines = append(lines, dimStyle.Render("  ..."))
		case sec.id == active:
			lines = append(lines, activeStyle.Render("> "+label))
		default:
			lines = append(lines, "  "+label)
		}
	}
	header := titleStyle.Render(fmt.Sprintf("%s & %s", m.inv.Groom.Name, m.inv.Bride.Name))
	return boxStyle.Render(header + "\n" + strings.Join(lines, "\n"))
}

func (m *Model) renderCarousel() string {
	c := m.carousel
	var strip strings.Builder
	for i := range c.Frames() {
		switch {
		case i == c.Index():
			strip.WriteString("[*]")
		case i == 0 || i == c.Len()+1:
			strip.WriteString(dimStyle.Render("[ ]"))
		default:
			strip.WriteString("[ ]")
		}
	}
	state := "settled"
	switch {
	case c.Rehoming():
		state = "rehoming"
	case c.Transitioning():
		state = "sliding"
	}
	lines := []string{
		titleStyle.Render("Gallery"),
		fmt.Sprintf("<  %d / %d  >", c.DisplayIndex(), c.Len()),
		c.CurrentImage(),
		strip.String(),
		dimStyle.Render(fmt.Sprintf("offset %.2f (%s)", c.Offset(), state)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCards() string {
	c := m.cards
	msgs := c.VisibleMessages()
	cards := make([]string, 0, len(msgs))
	for depth, msg := range msgs {
		tr := c.CardTransform(depth)
		text := msg.Author + ": " + msg.Text
		if msg.Question != "" {
			text += "\nQ: " + msg.Question
		}
		style := cardStyle.Width(width - 6 - depth*4).MarginLeft(depth * 2)
		if !tr.Interactive {
			style = style.Faint(true)
		}
		cards = append(cards, style.Render(text))
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Guestbook %d / %d", c.Index()+1, c.Len())),
		lipgloss.JoinVertical(lipgloss.Left, cards...),
		dimStyle.Render(fmt.Sprintf("offset %.0f  %s  %s", c.DragOffset(), c.Phase(), c.SwipeDirection())),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	help := "[enter] next/open  [t] tap  [w] swipe  [s] top  [j/k] scroll  [g] gallery  [b] guestbook  [esc] close  [r] replay  [q] quit"
	lines := []string{dimStyle.Render(help)}
	if m.input != "" {
		state := m.input
		if m.pressed {
			state += " *"
		}
		lines = append(lines, dimStyle.Render("input: "+state))
	}
	if len(m.events) > 0 {
		lines = append(lines, hintStyle.Render(strings.Join(m.events, " | ")))
	}
	if m.debug {
		lines = append(lines, dimStyle.Render(m.scope.DebugSummary()))
	}
	return strings.Join(lines, "\n")
}

// fadeBar draws the current screen opacity.
func fadeBar(alpha float64) string {
	const cells = 20
	n := int(alpha*cells + 0.5)
	return strings.Repeat("█", n) + dimStyle.Render(strings.Repeat("░", cells-n))
}
