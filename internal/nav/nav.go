package nav

import (
	"time"

	"backoffice/internal/timer"

	"github.com/rs/zerolog"
)

// Default debounce windows.
const (
	DefaultCollapseDelay    = 200 * time.Millisecond
	DefaultFlyoutCloseDelay = 150 * time.Millisecond
)

// Timings holds the debounce windows.
type Timings struct {
	CollapseDelay    time.Duration
	FlyoutCloseDelay time.Duration
}

// DefaultTimings returns the standard windows.
func DefaultTimings() Timings {
	return Timings{
		CollapseDelay:    DefaultCollapseDelay,
		FlyoutCloseDelay: DefaultFlyoutCloseDelay,
	}
}

// Snapshot is the derived render state, recomputed after every transition.
type Snapshot struct {
	IsExpanded   bool
	OpenFlyoutID string
	FlyoutTop    *int // nil when no flyout is open or its position is unknown
}

// Config wires a Controller. Only Menu is required.
type Config struct {
	Menu        *Menu
	Timings     Timings
	Timers      *timer.Registry // defaults to a registry on the real clock
	Geometry    Geometry
	Router      Router
	Storage     Storage
	PointerDown PointerDownSource
	Observer    Observer
	Logger      *zerolog.Logger
}

// Controller owns the panel, the flyouts, the outside-interaction watcher and
// the timer registry for one mounted panel. After Unmount every handler is a
// no-op.
type Controller struct {
	menu      *Menu
	panel     *Panel
	flyouts   *Flyouts
	watcher   *Watcher
	timers    *timer.Registry
	router    Router
	observer  Observer
	log       zerolog.Logger
	mounted   bool
	unmounted bool
}

// New builds a Controller. Call Mount before feeding events.
func New(cfg Config) *Controller {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "nav").Logger()
	}
	timings := cfg.Timings
	if timings.CollapseDelay <= 0 {
		timings.CollapseDelay = DefaultCollapseDelay
	}
	if timings.FlyoutCloseDelay <= 0 {
		timings.FlyoutCloseDelay = DefaultFlyoutCloseDelay
	}
	timers := cfg.Timers
	if timers == nil {
		timers = timer.NewRegistry(timer.RealClock{}, timer.WithLogger(log))
	}
	menu := cfg.Menu
	if menu == nil {
		menu = &Menu{}
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NoopObserver{}
	}

	c := &Controller{
		menu:     menu,
		timers:   timers,
		router:   cfg.Router,
		observer: observer,
		log:      log,
	}
	c.panel = &Panel{
		root:   PanelHandle,
		delay:  timings.CollapseDelay,
		timers: timers,
		geo:    cfg.Geometry,
		store:  cfg.Storage,
		log:    log,
	}
	c.flyouts = &Flyouts{
		positions: make(map[string]Position),
		delay:     timings.FlyoutCloseDelay,
		menu:      menu,
		timers:    timers,
		geo:       cfg.Geometry,
		panel:     c.panel,
		navigate:  c.navigate,
		log:       log,
	}
	c.panel.flyouts = c.flyouts
	c.watcher = NewWatcher(cfg.PointerDown, cfg.Geometry, c.flyouts.OpenID, func() {
		c.flyouts.OutsideInteraction()
		c.emit("outside-interaction")
	})
	c.flyouts.watcher = c.watcher
	return c
}

// Mount restores the pinned preference and starts accepting events.
func (c *Controller) Mount() {
	if c.mounted || c.unmounted {
		return
	}
	c.panel.restore()
	c.mounted = true
	c.emit("mount")
}

// Unmount cancels every timer and listener and reports a final collapsed
// snapshot. Later events are ignored.
func (c *Controller) Unmount() {
	if c.unmounted {
		return
	}
	c.timers.Close()
	c.watcher.Stop()
	if c.mounted {
		c.observer.Transition("unmount", Snapshot{})
	}
	c.mounted = false
	c.unmounted = true
}

// Mounted reports whether the controller accepts events.
func (c *Controller) Mounted() bool { return c.mounted }

// Menu returns the menu the controller navigates.
func (c *Controller) Menu() *Menu { return c.menu }

// Panel exposes the panel state for rendering.
func (c *Controller) Panel() *Panel { return c.panel }

// Flyouts exposes the flyout state for rendering.
func (c *Controller) Flyouts() *Flyouts { return c.flyouts }

// Watcher exposes the outside-interaction watcher.
func (c *Controller) Watcher() *Watcher { return c.watcher }

// Timers exposes the registry so the host can Flush scheduling commands.
func (c *Controller) Timers() *timer.Registry { return c.timers }

// Snapshot returns the derived render state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		IsExpanded:   c.panel.IsExpanded(),
		OpenFlyoutID: c.flyouts.OpenID(),
	}
	if snap.OpenFlyoutID != "" {
		if pos, ok := c.flyouts.Position(snap.OpenFlyoutID); ok {
			top := pos.Top
			snap.FlyoutTop = &top
		}
	}
	return snap
}

// ToggleClick handles a click on the menu control.
func (c *Controller) ToggleClick() {
	c.do("toggle", c.panel.ToggleClick)
}

// PointerEnterPanel handles the pointer entering the panel.
func (c *Controller) PointerEnterPanel() {
	c.do("pointer-enter-panel", c.panel.PointerEnter)
}

// PointerLeavePanel handles the pointer leaving a panel region for related.
func (c *Controller) PointerLeavePanel(related Handle) {
	c.do("pointer-leave-panel", func() { c.panel.PointerLeave(related) })
}

// HoverEnterTrigger handles the pointer entering a flyout trigger.
func (c *Controller) HoverEnterTrigger(anchorID string) {
	c.do("hover-enter-trigger", func() { c.flyouts.HoverEnterTrigger(anchorID) })
}

// HoverLeaveTrigger handles the pointer leaving a flyout trigger.
func (c *Controller) HoverLeaveTrigger(anchorID string) {
	c.do("hover-leave-trigger", func() { c.flyouts.HoverLeaveTrigger(anchorID) })
}

// HoverEnterFlyoutBody handles the pointer entering a flyout body.
func (c *Controller) HoverEnterFlyoutBody(anchorID string) {
	c.do("hover-enter-flyout", func() { c.flyouts.HoverEnterBody(anchorID) })
}

// HoverLeaveFlyoutBody handles the pointer leaving a flyout body.
func (c *Controller) HoverLeaveFlyoutBody(anchorID string) {
	c.do("hover-leave-flyout", func() { c.flyouts.HoverLeaveBody(anchorID) })
}

// ClickOption handles a click on a flyout option.
func (c *Controller) ClickOption(anchorID, optionID string) {
	c.do("click-option", func() { c.flyouts.ClickOption(anchorID, optionID) })
}

// ClickItem handles a click on a panel item: any open flyout closes and the
// item's own page opens.
func (c *Controller) ClickItem(itemID string) {
	c.do("click-item", func() {
		it, ok := c.menu.Item(itemID)
		if !ok {
			c.log.Debug().Str("item", itemID).Msg("click on unknown item")
			return
		}
		c.flyouts.closeAll(true)
		c.navigate(it.Path)
	})
}

// ToggleFlyout opens or closes anchorID's flyout. Keyboard activation of a
// trigger uses this in place of hover.
func (c *Controller) ToggleFlyout(anchorID string) {
	c.do("toggle-flyout", func() { c.flyouts.Toggle(anchorID) })
}

// CloseFlyout closes the open flyout immediately.
func (c *Controller) CloseFlyout() {
	c.do("close-flyout", c.flyouts.CloseAll)
}

// ViewportResize recomputes the open flyout's position.
func (c *Controller) ViewportResize() {
	c.do("viewport-resize", c.flyouts.ViewportResize)
}

// HandleTimer runs the action of a delivered timer if it is still current.
func (c *Controller) HandleTimer(msg timer.FiredMsg) bool {
	if !c.mounted {
		return false
	}
	if !c.timers.Fire(msg) {
		return false
	}
	c.emit("timer:" + msg.Name)
	return true
}

func (c *Controller) do(event string, fn func()) {
	if !c.mounted {
		return
	}
	fn()
	c.emit(event)
}

func (c *Controller) emit(event string) {
	c.observer.Transition(event, c.Snapshot())
}

func (c *Controller) navigate(path string) {
	if c.router != nil {
		c.router.Navigate(path)
	}
	c.observer.Navigated(path)
}
