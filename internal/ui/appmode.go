package ui

// AppMode is where keyboard input goes. Keybind hints are filtered by it.
type AppMode int

const (
	ModeSidebar AppMode = iota
	ModeFlyout
	ModePage
)

func (m AppMode) String() string {
	switch m {
	case ModeSidebar:
		return "Sidebar"
	case ModeFlyout:
		return "Flyout"
	case ModePage:
		return "Page"
	default:
		return "Unknown"
	}
}
