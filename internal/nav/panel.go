package nav

import (
	"strconv"
	"time"

	"backoffice/internal/timer"

	"github.com/rs/zerolog"
)

// TimerPanelCollapse is the registry name of the hover-collapse debounce.
const TimerPanelCollapse = "panel-collapse"

// StorageKeyPinned is the durable storage key mirroring the pinned state.
const StorageKeyPinned = "panelPinned"

// PanelMode is the rendered shape of the panel.
type PanelMode int

const (
	Collapsed PanelMode = iota
	PinnedOpen
	HoverExpanded
)

func (m PanelMode) String() string {
	switch m {
	case Collapsed:
		return "Collapsed"
	case PinnedOpen:
		return "PinnedOpen"
	case HoverExpanded:
		return "HoverExpanded"
	default:
		return "Unknown"
	}
}

// Panel is the collapsible side panel. The click lock is orthogonal to the
// mode: it only suppresses hover expansion and clears once the panel is
// Collapsed with the pointer outside it.
type Panel struct {
	mode          PanelMode
	clickLocked   bool
	pointerInside bool

	root    Handle
	delay   time.Duration
	timers  *timer.Registry
	geo     Geometry
	store   Storage
	flyouts *Flyouts
	log     zerolog.Logger
}

// Mode returns the current mode.
func (p *Panel) Mode() PanelMode { return p.mode }

// PinnedOpen reports whether the panel was pinned open by a click.
func (p *Panel) PinnedOpen() bool { return p.mode == PinnedOpen }

// HoverExpanded reports whether the panel is expanded by hover only.
func (p *Panel) HoverExpanded() bool { return p.mode == HoverExpanded }

// ClickLocked reports whether hover expansion is suppressed.
func (p *Panel) ClickLocked() bool { return p.clickLocked }

// IsExpanded reports whether the panel renders wide.
func (p *Panel) IsExpanded() bool { return p.mode == PinnedOpen || p.mode == HoverExpanded }

// PointerInside reports whether the pointer is over the panel.
func (p *Panel) PointerInside() bool { return p.pointerInside }

// ToggleClick handles a click on the menu control.
func (p *Panel) ToggleClick() {
	p.timers.Cancel(TimerPanelCollapse)
	if p.mode == HoverExpanded {
		// End the hover illusion without pinning, and keep hover from
		// re-expanding until the pointer leaves.
		p.mode = Collapsed
		p.clickLocked = true
	} else {
		if p.mode == PinnedOpen {
			p.mode = Collapsed
		} else {
			p.mode = PinnedOpen
		}
		p.persist()
	}
	if !p.IsExpanded() {
		p.flyouts.closeAll(false)
	}
	p.settle()
}

// PointerEnter handles the pointer entering the panel or any of its descendants.
func (p *Panel) PointerEnter() {
	p.pointerInside = true
	if p.clickLocked || p.mode == PinnedOpen {
		return
	}
	p.timers.Cancel(TimerPanelCollapse)
	p.mode = HoverExpanded
}

// PointerLeave handles the pointer leaving a panel region for related.
// Moving to another region inside the panel is not leaving the panel.
func (p *Panel) PointerLeave(related Handle) {
	if related != NoHandle && p.geo != nil && p.geo.IsDescendant(p.root, related) {
		return
	}
	p.pointerInside = false
	if !p.clickLocked && p.mode == HoverExpanded {
		if p.flyouts.AnyOpen() {
			p.log.Debug().Str("flyout", p.flyouts.OpenID()).Msg("collapse suppressed by open flyout")
		} else {
			p.scheduleCollapse()
		}
	}
	p.settle()
}

// AnyFlyoutFullyClosed is called by Flyouts when the last open flyout closes.
// A hover-only panel the pointer has left collapses after the usual delay;
// a collapse that is already pending keeps its deadline.
func (p *Panel) AnyFlyoutFullyClosed() {
	if p.mode != HoverExpanded || p.clickLocked || p.pointerInside {
		return
	}
	if p.timers.Pending(TimerPanelCollapse) {
		return
	}
	p.scheduleCollapse()
}

// hoverOnly reports whether the panel is expanded by hover alone.
func (p *Panel) hoverOnly() bool {
	return p.mode == HoverExpanded && !p.clickLocked
}

func (p *Panel) scheduleCollapse() {
	p.timers.Schedule(TimerPanelCollapse, p.delay, p.collapse)
}

func (p *Panel) cancelCollapse() {
	p.timers.Cancel(TimerPanelCollapse)
}

func (p *Panel) collapse() {
	if p.mode != HoverExpanded {
		return
	}
	if p.flyouts.AnyOpen() {
		p.log.Debug().Msg("collapse skipped, flyout still open")
		return
	}
	p.mode = Collapsed
	p.settle()
}

// settle clears the click lock once the panel has fully collapsed.
func (p *Panel) settle() {
	if p.mode == Collapsed && !p.pointerInside {
		p.clickLocked = false
	}
}

func (p *Panel) restore() {
	if p.store == nil {
		return
	}
	v, ok, err := p.store.GetItem(StorageKeyPinned)
	if err != nil {
		p.log.Warn().Err(err).Msg("read pinned preference")
		return
	}
	if !ok {
		return
	}
	pinned, err := strconv.ParseBool(v)
	if err != nil {
		p.log.Warn().Str("value", v).Msg("ignoring malformed pinned preference")
		return
	}
	if pinned {
		p.mode = PinnedOpen
	}
}

func (p *Panel) persist() {
	if p.store == nil {
		return
	}
	if err := p.store.SetItem(StorageKeyPinned, strconv.FormatBool(p.mode == PinnedOpen)); err != nil {
		p.log.Warn().Err(err).Msg("save pinned preference")
	}
}
