package ui

import (
	"backoffice/internal/nav"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse turns terminal mouse reports into panel events. Motion moves
// the pointer; a left press moves it, notifies pointer-down listeners, then
// activates whatever was clicked.
func (a *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	target := a.HitMap.At(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		a.movePointer(target)
		return nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		a.movePointer(target)
		a.HitMap.Dispatch(target)
		return a.click(target)
	}
	return nil
}

func (a *AppModel) movePointer(target nav.Handle) {
	if a.Pointer != nil {
		a.Pointer.Move(target)
	}
}

func (a *AppModel) click(target nav.Handle) tea.Cmd {
	if a.Nav == nil || target == overlayHandle {
		return nil
	}
	switch target {
	case toggleHandle:
		a.Nav.ToggleClick()
		return nil
	case logoutHandle:
		return msgCmd(ShowLogoutMsg{})
	case pageHandle:
		a.Focus.SetFocus(ModePage)
		return nil
	}
	if id := itemOf(target); id != "" {
		a.Nav.ClickItem(id)
		return nil
	}
	if anchor, opt := optionOf(target); anchor != "" && opt != "" {
		a.Nav.ClickOption(anchor, opt)
	}
	return nil
}

// handleKey routes a key to the top modal, then the keybind registry, then
// the focused region.
func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, a.Focus.Current); consumed {
		return cmd
	}
	if a.Nav == nil {
		if msg.String() == "enter" {
			a.signIn()
			return a.startPolling()
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		if a.Focus.Current == ModeFlyout {
			a.Nav.CloseFlyout()
			a.Focus.SetFocus(ModePage)
			return nil
		}
		a.Focus.Next()
		return nil
	case "shift+tab":
		a.Focus.Prev()
		return nil
	}

	switch a.Focus.Current {
	case ModeSidebar:
		return a.sidebarKey(msg)
	case ModeFlyout:
		return a.flyoutKey(msg)
	}
	return a.pageKey(msg)
}

func (a *AppModel) cursorItem() nav.Item {
	all := a.menu.All()
	if len(all) == 0 {
		return nav.Item{}
	}
	a.cursor = min(max(a.cursor, 0), len(all)-1)
	return all[a.cursor]
}

func (a *AppModel) sidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(a.menu.All())-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.menu.All()) - 1
	case "enter":
		it := a.cursorItem()
		if it.HasFlyout() {
			a.Nav.ToggleFlyout(it.ID)
			a.enterFlyout(it.ID)
			return nil
		}
		a.Nav.ClickItem(it.ID)
	case "l", "right":
		a.openCursorFlyout()
	case "esc":
		a.Nav.CloseFlyout()
	}
	return nil
}

// openCursorFlyout opens the cursor item's flyout and moves focus into it.
func (a *AppModel) openCursorFlyout() {
	if a.Nav == nil {
		return
	}
	it := a.cursorItem()
	if !it.HasFlyout() {
		return
	}
	if !a.Nav.Flyouts().IsOpen(it.ID) {
		a.Nav.ToggleFlyout(it.ID)
	}
	a.enterFlyout(it.ID)
}

func (a *AppModel) enterFlyout(anchorID string) {
	if a.Nav.Flyouts().IsOpen(anchorID) {
		a.optCursor = 0
		a.Focus.SetFocus(ModeFlyout)
	}
}

func (a *AppModel) flyoutKey(msg tea.KeyMsg) tea.Cmd {
	it := a.cursorItem()
	switch msg.String() {
	case "j", "down":
		if a.optCursor < len(it.Options)-1 {
			a.optCursor++
		}
	case "k", "up":
		if a.optCursor > 0 {
			a.optCursor--
		}
	case "enter", "l", "right":
		if a.optCursor < len(it.Options) {
			a.Nav.ClickOption(it.ID, it.Options[a.optCursor].ID)
		}
		a.Focus.SetFocus(ModeSidebar)
	case "esc", "h", "left":
		a.Nav.CloseFlyout()
		a.Focus.SetFocus(ModeSidebar)
	}
	return nil
}

func (a *AppModel) pageKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		a.Router.Back()
		return nil
	}
	_, cmd := a.Page.Update(msg)
	return cmd
}
