package ui

import "backoffice/internal/nav"

// TogglePanelMsg pins or unpins the panel, same as clicking the toggle.
type TogglePanelMsg struct{}

// GoToMsg opens an item's page (SPC g …).
type GoToMsg struct {
	ItemID string
}

// BackMsg returns to the previous page.
type BackMsg struct{}

// ShowQuickJumpMsg opens the quick-jump search.
type ShowQuickJumpMsg struct{}

// JumpMsg is sent when a quick-jump result is chosen.
type JumpMsg struct {
	Destination nav.Destination
}

// ShowLogoutMsg asks for logout confirmation.
type ShowLogoutMsg struct{}

// LogoutMsg is sent once logout is confirmed.
type LogoutMsg struct{}

// DismissModalMsg closes the top modal (Esc).
type DismissModalMsg struct{}

// RefreshBadgesMsg forces a badge refresh outside the polling interval.
type RefreshBadgesMsg struct{}
