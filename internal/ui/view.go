package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a self-contained screen region with its own Init/Update/View.
// Pages and modals implement it.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
