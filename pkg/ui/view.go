package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/hexview/pkg/hexagon"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 1 {
		return ""
	}
	bodyH := m.height - 1

	var body string
	if fp := m.mgr.Fullscreen(); fp != nil && !fp.Animating() && m.readerDoc == fp.ID() {
		body = m.reader.View()
	} else {
		body = m.renderGrid(m.width, bodyH)
	}

	switch {
	case m.help.IsVisible():
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.help.View())
	case m.jump.IsVisible():
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Top, "\n"+m.jump.View())
	}
	return body + "\n" + m.renderStatusBar()
}

// renderStatusBar shows the focused panel on the left and hints on the
// right, truncating the title first when space runs out.
func (m Model) renderStatusBar() string {
	r := m.theme.Renderer
	badge := r.NewStyle().
		Foreground(m.theme.StatusBg).
		Background(m.theme.Primary).
		Bold(true).
		Padding(0, 1).
		Render("⬡ hexview")

	state := ""
	p := m.mgr.Fullscreen()
	if p == nil {
		p = m.mgr.Focused()
	}
	if p != nil {
		state = p.State().String()
		if p.Animating() {
			state += "…"
		}
	}
	stateText := r.NewStyle().Foreground(m.theme.Muted).Render(state)

	hints := "? help  / jump  enter expand  q quit"
	if m.mgr.Fullscreen() != nil {
		hints = "esc collapse  ↑↓ scroll  y copy  q quit"
	}
	hintText := r.NewStyle().Foreground(m.theme.Muted).Render(hints)

	msgText := ""
	if m.status != "" {
		fg := m.theme.Success
		if m.statusErr {
			fg = m.theme.Danger
		}
		msgText = r.NewStyle().Foreground(fg).Render(m.status)
	}

	fixed := lipgloss.Width(badge) + lipgloss.Width(stateText) + lipgloss.Width(hintText) + 4
	if msgText != "" {
		fixed += lipgloss.Width(msgText) + 2
	}
	room := m.width - fixed
	title := ""
	if p != nil && room > 3 {
		title = focusedTitle(p, room)
	}
	titleText := r.NewStyle().Foreground(m.theme.Text).Bold(true).Render(title)

	left := badge + " " + titleText + " " + stateText
	if msgText != "" {
		left += "  " + msgText
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hintText)
	if gap < 1 {
		return truncate.String(left, uint(m.width))
	}
	return left + strings.Repeat(" ", gap) + hintText
}

// focusedTitle returns "#id title" fitted to width cells.
func focusedTitle(p *hexagon.Panel, width int) string {
	title := fmt.Sprintf("#%d", p.ID())
	if c := p.Content(); c != nil && c.Title() != "" {
		title += " " + c.Title()
	}
	if runewidth.StringWidth(title) <= width {
		return title
	}
	return runewidth.Truncate(title, width, "…")
}
