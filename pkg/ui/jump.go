package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const jumpMaxResults = 6

// JumpModel is the fuzzy "jump to panel" prompt.
type JumpModel struct {
	input    textinput.Model
	titles   []string
	matches  []int // panel indexes, best first
	selected int
	visible  bool
	theme    Theme
}

// NewJumpModel creates a closed prompt over the panel titles.
func NewJumpModel(theme Theme, titles []string) JumpModel {
	ti := textinput.New()
	ti.Placeholder = "Jump to panel..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "/ "
	return JumpModel{input: ti, titles: titles, theme: theme}
}

// Open shows the prompt with an empty query.
func (m *JumpModel) Open() {
	m.visible = true
	m.input.SetValue("")
	m.input.Focus()
	m.filter()
}

// Close hides the prompt.
func (m *JumpModel) Close() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns true if the prompt is showing
func (m JumpModel) IsVisible() bool { return m.visible }

// SetTitle updates a title after its document reloads.
func (m *JumpModel) SetTitle(i int, title string) {
	if i >= 0 && i < len(m.titles) {
		m.titles[i] = title
	}
}

// Selected returns the panel index under the cursor.
func (m JumpModel) Selected() (int, bool) {
	if m.selected < 0 || m.selected >= len(m.matches) {
		return 0, false
	}
	return m.matches[m.selected], true
}

// Update handles cursor movement and query edits.
func (m JumpModel) Update(msg tea.Msg) (JumpModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "up", "ctrl+p", "shift+tab":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n", "tab":
			if m.selected < min(len(m.matches), jumpMaxResults)-1 {
				m.selected++
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m *JumpModel) filter() {
	m.selected = 0
	query := strings.TrimSpace(m.input.Value())
	m.matches = m.matches[:0]
	if query == "" {
		for i := range m.titles {
			m.matches = append(m.matches, i)
		}
		return
	}
	for _, match := range fuzzy.Find(query, m.titles) {
		m.matches = append(m.matches, match.Index)
	}
}

// View renders the prompt box.
func (m JumpModel) View() string {
	if !m.visible {
		return ""
	}
	r := m.theme.Renderer
	itemStyle := r.NewStyle().Foreground(m.theme.Subtext)
	selStyle := r.NewStyle().Foreground(m.theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if len(m.matches) == 0 {
		b.WriteString(r.NewStyle().Foreground(m.theme.Muted).Italic(true).Render("  no match"))
	}
	for i, idx := range m.matches {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == jumpMaxResults {
			b.WriteString(r.NewStyle().Foreground(m.theme.Muted).Render("  …"))
			break
		}
		if i == m.selected {
			b.WriteString(selStyle.Render("▸ " + m.titles[idx]))
		} else {
			b.WriteString(itemStyle.Render("  " + m.titles[idx]))
		}
	}

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(0, 1).
		Width(46).
		Render(b.String())
}
