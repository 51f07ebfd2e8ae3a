package ui

import (
	"strings"

	"backoffice/internal/nav"
	"backoffice/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const quickJumpRows = 8

// QuickJumpModal fuzzy-searches every destination in the menu.
type QuickJumpModal struct {
	menu     *nav.Menu
	input    textinput.Model
	results  []nav.Destination
	selected int
}

var _ View = (*QuickJumpModal)(nil)

// NewQuickJumpModal creates a search over menu.
func NewQuickJumpModal(menu *nav.Menu) *QuickJumpModal {
	ti := textinput.New()
	ti.Placeholder = "go to…"
	ti.Prompt = "› "
	ti.Width = 36
	ti.Focus()
	m := &QuickJumpModal{menu: menu, input: ti}
	m.search()
	return m
}

// Results returns the current matches, best first.
func (m *QuickJumpModal) Results() []nav.Destination { return m.results }

// Selected returns the highlighted result index.
func (m *QuickJumpModal) Selected() int { return m.selected }

func (m *QuickJumpModal) search() {
	m.results = m.menu.Search(m.input.Value())
	if m.selected >= len(m.results) {
		m.selected = 0
	}
}

// Init implements View.
func (m *QuickJumpModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *QuickJumpModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m, msgCmd(DismissModalMsg{})
		case "enter":
			if m.selected < len(m.results) {
				return m, msgCmd(JumpMsg{Destination: m.results[m.selected]})
			}
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n", "tab":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		}
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.selected = 0
		m.search()
	}
	return m, cmd
}

// View implements View.
func (m *QuickJumpModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Jump to") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if len(m.results) == 0 {
		b.WriteString(Styles.Empty.Render("no matches") + "\n")
	}
	start := 0
	if m.selected >= quickJumpRows {
		start = m.selected - quickJumpRows + 1
	}
	for i := start; i < len(m.results) && i < start+quickJumpRows; i++ {
		d := m.results[i]
		line := textutil.PadRightVisual(d.Label, 24) + " " + Styles.Muted.Render(d.Path)
		if i == m.selected {
			line = Styles.Selected.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("↑/↓: select  Enter: go  Esc: cancel"))
	return Styles.Box.Render(b.String())
}
