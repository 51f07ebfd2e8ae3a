package ui

import (
	"fmt"

	"backoffice/internal/nav"

	tea "github.com/charmbracelet/bubbletea"
)

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// goToKeys assigns SPC g shortcuts to menu items.
var goToKeys = map[string]string{
	"dashboard":    "d",
	"applications": "a",
	"properties":   "p",
	"leases":       "l",
	"people":       "t",
	"accounting":   "$",
	"maintenance":  "m",
	"settings":     "s",
}

// bindDefaults registers the global bindings.
func bindDefaults(reg *KeybindRegistry, menu *nav.Menu) {
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDescForMode("q", tea.Quit, "Quit", []AppMode{ModeSidebar, ModePage})
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC t", msgCmd(TogglePanelMsg{}), "Toggle panel")
	reg.BindWithDesc("[", msgCmd(TogglePanelMsg{}), "Toggle panel")
	reg.BindWithDesc("SPC j", msgCmd(ShowQuickJumpMsg{}), "Jump to…")
	reg.BindWithDesc("/", msgCmd(ShowQuickJumpMsg{}), "Jump to…")
	reg.BindWithDesc("SPC b", msgCmd(BackMsg{}), "Back")
	reg.BindWithDesc("SPC r", msgCmd(RefreshBadgesMsg{}), "Refresh badges")
	reg.BindWithDesc("SPC x", msgCmd(ShowLogoutMsg{}), "Log out")

	for _, it := range menu.All() {
		k, ok := goToKeys[it.ID]
		if !ok {
			continue
		}
		reg.BindWithDesc(fmt.Sprintf("SPC g %s", k), msgCmd(GoToMsg{ItemID: it.ID}), it.Label)
	}
	reg.BindWithDescForMode("SPC o", msgCmd(openCursorFlyoutMsg{}), "Open flyout", []AppMode{ModeSidebar})
}

// openCursorFlyoutMsg opens the flyout of the item under the sidebar cursor.
type openCursorFlyoutMsg struct{}
