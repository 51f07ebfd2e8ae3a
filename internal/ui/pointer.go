package ui

import (
	"strings"

	"backoffice/internal/nav"
)

// PointerTracker converts the hovered handle under the mouse into enter and
// leave events, leaves first, the way a browser orders mouseout/mouseover.
type PointerTracker struct {
	nav     *nav.Controller
	hovered nav.Handle
}

// NewPointerTracker creates a tracker feeding c.
func NewPointerTracker(c *nav.Controller) *PointerTracker {
	return &PointerTracker{nav: c}
}

// Hovered returns the handle under the pointer.
func (p *PointerTracker) Hovered() nav.Handle { return p.hovered }

// Move records that the pointer is now over target.
func (p *PointerTracker) Move(target nav.Handle) {
	prev := p.hovered
	if prev == target {
		return
	}
	p.hovered = target
	menu := p.nav.Menu()

	if a := anchorOf(menu, prev); a != "" && a != anchorOf(menu, target) {
		p.nav.HoverLeaveTrigger(a)
	}
	if a := flyoutOf(prev); a != "" && a != flyoutOf(target) {
		p.nav.HoverLeaveFlyoutBody(a)
	}
	if nav.PanelHandle.Contains(prev) {
		// The controller ignores moves that stay inside the panel.
		p.nav.PointerLeavePanel(target)
	}

	if nav.PanelHandle.Contains(target) && !nav.PanelHandle.Contains(prev) {
		p.nav.PointerEnterPanel()
	}
	if a := flyoutOf(target); a != "" && a != flyoutOf(prev) {
		p.nav.HoverEnterFlyoutBody(a)
	}
	if a := anchorOf(menu, target); a != "" && a != anchorOf(menu, prev) {
		p.nav.HoverEnterTrigger(a)
	}
}

const (
	itemPrefix   = "nav/item/"
	flyoutPrefix = "flyout/"
)

// itemOf returns the item id for a panel item handle.
func itemOf(h nav.Handle) string {
	s := string(h)
	if !strings.HasPrefix(s, itemPrefix) {
		return ""
	}
	return strings.TrimPrefix(s, itemPrefix)
}

// anchorOf returns the anchor id when h is a flyout trigger.
func anchorOf(menu *nav.Menu, h nav.Handle) string {
	id := itemOf(h)
	if id == "" || !menu.IsAnchor(id) {
		return ""
	}
	return id
}

// flyoutOf returns the anchor id when h is a flyout body or one of its options.
func flyoutOf(h nav.Handle) string {
	s := string(h)
	if !strings.HasPrefix(s, flyoutPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(s, flyoutPrefix)
	anchor, _, _ := strings.Cut(rest, "/")
	return anchor
}

// optionOf splits a flyout option handle into anchor and option ids.
func optionOf(h nav.Handle) (anchor, option string) {
	s := string(h)
	if !strings.HasPrefix(s, flyoutPrefix) {
		return "", ""
	}
	anchor, option, _ = strings.Cut(strings.TrimPrefix(s, flyoutPrefix), "/")
	return anchor, option
}
