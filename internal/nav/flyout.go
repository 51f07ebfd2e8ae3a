package nav

import (
	"time"

	"backoffice/internal/timer"

	"github.com/rs/zerolog"
)

// CloseTimerName is the registry name of an anchor's close debounce.
func CloseTimerName(anchorID string) string {
	return "flyout-close:" + anchorID
}

// Flyouts holds the single open-flyout slot. Opening one anchor replaces the
// previous one in the same assignment, so no observer can see two open.
type Flyouts struct {
	open      string
	positions map[string]Position

	delay    time.Duration
	menu     *Menu
	timers   *timer.Registry
	geo      Geometry
	panel    *Panel
	watcher  *Watcher
	navigate func(path string)
	log      zerolog.Logger
}

// OpenID returns the open anchor, or "" when none is open.
func (f *Flyouts) OpenID() string { return f.open }

// AnyOpen reports whether a flyout is open.
func (f *Flyouts) AnyOpen() bool { return f.open != "" }

// IsOpen reports whether anchorID is the open flyout.
func (f *Flyouts) IsOpen(anchorID string) bool {
	return anchorID != "" && f.open == anchorID
}

// Position returns the last known position of anchorID's flyout.
func (f *Flyouts) Position(anchorID string) (Position, bool) {
	pos, ok := f.positions[anchorID]
	return pos, ok
}

// HoverEnterTrigger opens anchorID, displacing any other open flyout at once.
func (f *Flyouts) HoverEnterTrigger(anchorID string) {
	if !f.menu.IsAnchor(anchorID) {
		f.log.Debug().Str("anchor", anchorID).Msg("hover on unknown anchor")
		return
	}
	f.timers.Cancel(CloseTimerName(anchorID))
	f.reposition(anchorID)
	if prev := f.open; prev != "" && prev != anchorID {
		f.timers.Cancel(CloseTimerName(prev))
	}
	f.open = anchorID
	f.watcher.Activate()
}

// HoverLeaveTrigger starts the close debounce so the pointer can reach the body.
func (f *Flyouts) HoverLeaveTrigger(anchorID string) {
	if f.open != anchorID || anchorID == "" {
		return
	}
	f.scheduleClose(anchorID)
}

// HoverEnterBody keeps the flyout and a hover-expanded panel open.
func (f *Flyouts) HoverEnterBody(anchorID string) {
	if f.open != anchorID || anchorID == "" {
		return
	}
	f.timers.Cancel(CloseTimerName(anchorID))
	f.panel.cancelCollapse()
}

// HoverLeaveBody schedules the close, and the panel collapse when the panel is
// only hover-expanded, so both go away together.
func (f *Flyouts) HoverLeaveBody(anchorID string) {
	if f.open != anchorID || anchorID == "" {
		return
	}
	f.scheduleClose(anchorID)
	if f.panel.hoverOnly() {
		f.panel.scheduleCollapse()
	}
}

// ClickOption closes the flyout and navigates to the option's path.
func (f *Flyouts) ClickOption(anchorID, optionID string) {
	opt, ok := f.menu.Option(anchorID, optionID)
	if !ok {
		f.log.Debug().Str("anchor", anchorID).Str("option", optionID).Msg("click on unknown option")
		return
	}
	f.closeAll(true)
	if f.navigate != nil {
		f.navigate(opt.Path)
	}
}

// Toggle opens anchorID, or closes it when it is already open. Used for
// clicks and keyboard activation of a trigger.
func (f *Flyouts) Toggle(anchorID string) {
	if f.open == anchorID && anchorID != "" {
		f.closeAll(true)
		return
	}
	f.HoverEnterTrigger(anchorID)
}

// OutsideInteraction closes the open flyout immediately.
func (f *Flyouts) OutsideInteraction() {
	f.closeAll(true)
}

// ViewportResize recomputes the open flyout's position.
func (f *Flyouts) ViewportResize() {
	if f.open != "" {
		f.reposition(f.open)
	}
}

// CloseAll closes the open flyout immediately.
func (f *Flyouts) CloseAll() {
	f.closeAll(true)
}

func (f *Flyouts) scheduleClose(anchorID string) {
	f.timers.Schedule(CloseTimerName(anchorID), f.delay, func() {
		if f.open == anchorID {
			f.closeAll(true)
		}
	})
}

// closeAll empties the open slot. notify tells the panel the last flyout closed.
func (f *Flyouts) closeAll(notify bool) {
	anchor := f.open
	if anchor == "" {
		return
	}
	f.timers.Cancel(CloseTimerName(anchor))
	f.open = ""
	f.watcher.Deactivate()
	if notify {
		f.panel.AnyFlyoutFullyClosed()
	}
}

// reposition refreshes the anchor's position. Missing geometry keeps the
// last known position.
func (f *Flyouts) reposition(anchorID string) {
	pos, ok := PositionOf(f.geo, TriggerHandle(anchorID))
	if !ok {
		f.log.Debug().Str("anchor", anchorID).Msg("trigger not rendered, keeping last position")
		return
	}
	f.positions[anchorID] = pos
}
