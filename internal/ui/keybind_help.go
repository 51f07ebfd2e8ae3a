package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var helpBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(ColorAccent)).
	Padding(0, 1)

// RenderKeybindHelp renders the leader hint bar shown after SPC, or "" when
// not in leader mode.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode, width int) string {
	if keyHandler == nil || !keyHandler.InLeader() {
		return ""
	}
	km := NewKeyMap(keyHandler, mode)
	bindings := km.ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = Styles.Hint
	h.Styles.ShortSeparator = Styles.Hint
	if width > 4 {
		h.Width = width - 4
	}
	content := Styles.Hint.Render(keyHandler.Pending()) + " " + h.ShortHelpView(bindings)
	return helpBox.Render(content)
}
