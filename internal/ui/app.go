package ui

import (
	"strings"
	"time"

	"backoffice/internal/badge"
	"backoffice/internal/logging"
	"backoffice/internal/nav"
	"backoffice/internal/timer"
	"backoffice/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	noticeTimer    = "notice"
	noticeDuration = 3 * time.Second
)

// Options configures NewAppModel. Only Role and User are required.
type Options struct {
	Role          nav.Role
	User          string
	Timings       nav.Timings
	Clock         timer.Clock // nil = real clock
	Strict        bool        // panic on timer misuse
	Storage       nav.Storage
	Observer      nav.Observer
	Badges        badge.Source // nil disables badge polling; so does a role without badges
	BadgeInterval time.Duration
	Logger        zerolog.Logger
}

// AppModel is the root model: a navigation panel on the left, the current
// page on the right, modals on top.
type AppModel struct {
	Nav        *nav.Controller // nil while signed out
	Router     *Router
	HitMap     *HitMap
	Pointer    *PointerTracker
	KeyHandler *KeyHandler
	Focus      *FocusManager
	Overlays   OverlayStack
	Page       *PageView
	Poller     *badge.Poller
	Counts     badge.Counts
	BadgeErr   error
	Notice     string

	opts      Options
	menu      *nav.Menu
	uiTimers  *timer.Registry
	width     int
	height    int
	cursor    int // index into menu.All()
	optCursor int
	manual    int  // manual badge refreshes in flight
	polling   bool // a tick or polled refresh is outstanding
	log       zerolog.Logger
}

var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the dashboard and mounts the panel.
func NewAppModel(opts Options) *AppModel {
	if opts.Clock == nil {
		opts.Clock = timer.RealClock{}
	}
	if opts.Timings == (nav.Timings{}) {
		opts.Timings = nav.DefaultTimings()
	}
	menu := nav.MenuFor(opts.Role)
	reg := NewKeybindRegistry()
	bindDefaults(reg, menu)

	a := &AppModel{
		HitMap:     NewHitMap(),
		KeyHandler: NewKeyHandler(reg),
		Focus:      NewFocusManager(ModeSidebar, ModePage),
		Counts:     make(badge.Counts),
		opts:       opts,
		menu:       menu,
		width:      100,
		height:     30,
		log:        logging.Component(opts.Logger, "ui"),
	}
	a.uiTimers = timer.NewRegistry(opts.Clock, timer.WithLogger(a.log), timer.WithStrict(opts.Strict))
	a.Focus.OnChange = func(from, to AppMode) {
		a.log.Debug().Stringer("from", from).Stringer("to", to).Msg("focus")
	}
	if opts.Badges != nil && opts.Role.HasBadges() {
		var keys []string
		for _, it := range menu.All() {
			if it.BadgeKey != "" {
				keys = append(keys, it.BadgeKey)
			}
		}
		a.Poller = badge.NewPoller(opts.Badges, keys, opts.BadgeInterval, logging.Component(opts.Logger, "badge"))
	}
	a.signIn()
	return a
}

// AsTeaModel returns the tea.Model for tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Menu returns the signed-in user's menu.
func (a *AppModel) Menu() *nav.Menu { return a.menu }

// Mode returns where keyboard input goes.
func (a *AppModel) Mode() AppMode { return a.Focus.Current }

// signIn mounts a fresh panel controller. The pinned preference is restored
// from storage.
func (a *AppModel) signIn() {
	dash, _ := a.menu.Item("dashboard")
	a.Router = NewRouter(dash.Path)
	navLog := logging.Component(a.opts.Logger, "nav")
	a.Nav = nav.New(nav.Config{
		Menu:    a.menu,
		Timings: a.opts.Timings,
		Timers: timer.NewRegistry(a.opts.Clock,
			timer.WithLogger(logging.Component(a.opts.Logger, "timer")),
			timer.WithStrict(a.opts.Strict)),
		Geometry:    a.HitMap,
		Router:      a.Router,
		Storage:     a.opts.Storage,
		PointerDown: a.HitMap,
		Observer:    a.opts.Observer,
		Logger:      &navLog,
	})
	a.Nav.Mount()
	a.Pointer = NewPointerTracker(a.Nav)
	a.cursor = 0
	a.Focus.SetFocus(ModeSidebar)
	a.syncPage()
	a.log.Info().Str("user", a.opts.User).Stringer("role", a.opts.Role).Msg("signed in")
}

// startPolling begins the badge refresh chain unless one is already running.
func (a *AppModel) startPolling() tea.Cmd {
	if a.Poller == nil || a.Nav == nil || a.polling {
		return nil
	}
	a.polling = true
	return a.refreshBadges()
}

// signOut tears the panel down and shows the login page.
func (a *AppModel) signOut() {
	if a.Nav != nil {
		a.Nav.Unmount()
	}
	a.Nav = nil
	a.Pointer = nil
	a.Router.Reset(LoginPath)
	a.Focus.SetFocus(ModePage)
	a.syncPage()
	a.log.Info().Str("user", a.opts.User).Msg("signed out")
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.startPolling()
}

// Update implements tea.Model. Timer scheduling queued by the handlers is
// flushed into the returned command.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.sync()
	cmds := []tea.Cmd{cmd, a.uiTimers.Flush()}
	if a.Nav != nil {
		cmds = append(cmds, a.Nav.Timers().Flush())
	}
	return a, tea.Batch(cmds...)
}

func (a *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.render()
		if a.Nav != nil {
			a.Nav.ViewportResize()
		}
		return nil

	case timer.FiredMsg:
		switch {
		case a.uiTimers.Owns(msg):
			a.uiTimers.Fire(msg)
		case a.Nav != nil && a.Nav.Timers().Owns(msg):
			a.Nav.HandleTimer(msg)
		default:
			a.log.Debug().Str("timer", msg.Name).Msg("delivery from a torn-down panel dropped")
		}
		return nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case badge.TickMsg:
		if a.Nav == nil {
			a.polling = false
			return nil
		}
		return a.refreshBadges()
	case RefreshBadgesMsg:
		if a.Poller == nil || a.Nav == nil {
			return nil
		}
		a.manual++
		return a.refreshBadges()
	case badge.UpdatedMsg:
		return a.badgesUpdated(msg)
	case spinner.TickMsg:
		_, cmd := a.Page.Update(msg)
		return cmd

	case TogglePanelMsg:
		if a.Nav != nil {
			a.Nav.ToggleClick()
		}
		return nil
	case GoToMsg:
		if a.Nav != nil {
			a.Nav.ClickItem(msg.ItemID)
		}
		return nil
	case openCursorFlyoutMsg:
		a.openCursorFlyout()
		return nil
	case BackMsg:
		a.Router.Back()
		return nil

	case ShowQuickJumpMsg:
		if a.Nav == nil || a.Overlays.Has("quickjump") {
			return nil
		}
		m := NewQuickJumpModal(a.menu)
		a.Overlays.Push(Overlay{Name: "quickjump", View: m})
		return m.Init()
	case JumpMsg:
		a.Overlays.Pop()
		return a.jump(msg.Destination)
	case ShowLogoutMsg:
		if a.Nav == nil || a.Overlays.Has("logout") {
			return nil
		}
		a.Overlays.Push(Overlay{Name: "logout", View: NewLogoutConfirmModal(a.opts.User, a.opts.Role.Label())})
		return nil
	case LogoutMsg:
		a.Overlays.Pop()
		a.signOut()
		return nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return nil
	}

	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return cmd
	}
	_, cmd := a.Page.Update(msg)
	return cmd
}

// jump navigates to a quick-jump destination the same way a click would.
func (a *AppModel) jump(d nav.Destination) tea.Cmd {
	if a.Nav == nil {
		return nil
	}
	if d.OptionID != "" {
		a.Nav.ClickOption(d.ItemID, d.OptionID)
	} else {
		a.Nav.ClickItem(d.ItemID)
	}
	return nil
}

// sync reconciles derived UI state after every message.
func (a *AppModel) sync() {
	if n := a.Router.TakeNotice(); n != "" {
		a.Notice = n
		a.uiTimers.Schedule(noticeTimer, noticeDuration, func() { a.Notice = "" })
	}
	if a.Page == nil || a.Page.Path != a.Router.Current() {
		a.syncPage()
	}
	if a.Focus.Current == ModeFlyout && (a.Nav == nil || a.Nav.Flyouts().OpenID() != a.cursorItem().ID) {
		a.Focus.SetFocus(ModeSidebar)
	}
}

func (a *AppModel) syncPage() {
	path := a.Router.Current()
	a.Page = NewPageView(path, PageTitle(a.menu, path), PageRows(a.menu, path, a.badgeCounts()))
}

// badgeCounts is nil when nothing polls, so pages leave the counts out.
func (a *AppModel) badgeCounts() badge.Counts {
	if a.Poller == nil {
		return nil
	}
	return a.Counts
}

func (a *AppModel) refreshBadges() tea.Cmd {
	if a.Poller == nil {
		return nil
	}
	return tea.Batch(a.Poller.Refresh(), a.Page.SetLoading(true))
}

func (a *AppModel) badgesUpdated(msg badge.UpdatedMsg) tea.Cmd {
	for k, v := range msg.Counts {
		a.Counts[k] = v
	}
	a.BadgeErr = msg.Err
	a.Page.SetLoading(false)
	a.Page.SetRows(PageRows(a.menu, a.Page.Path, a.badgeCounts()))
	if a.manual > 0 {
		a.manual--
		return nil
	}
	if a.Poller == nil || a.Nav == nil {
		a.polling = false
		return nil
	}
	return a.Poller.Next()
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.render()
}

// render draws a frame and rebuilds the hit map to match it.
func (a *AppModel) render() string {
	a.HitMap.Reset()
	w, h := a.width, a.height
	if w <= 0 || h <= 0 {
		return ""
	}

	sideW := 0
	var side []string
	if a.Nav != nil {
		snap := a.Nav.Snapshot()
		l := layoutSidebar(a.menu, snap.IsExpanded, h)
		side = renderSidebar(a.sidebarState(snap), l, a.HitMap)
		sideW = l.width
	}

	pageW := max(w-sideW, 0)
	page := a.renderPage(pageW, h)
	a.HitMap.Add(pageHandle, nav.Rect{X: sideW, Y: 0, W: pageW, H: h})

	if a.Nav != nil {
		snap := a.Nav.Snapshot()
		if it, ok := a.menu.Item(snap.OpenFlyoutID); ok && it.HasFlyout() {
			box := layoutFlyout(it, snap.FlyoutTop, sideW, w, h)
			cursor := -1
			if a.Focus.Current == ModeFlyout {
				cursor = a.optCursor
			}
			textutil.Overlay(page, box.lines(cursor, a.Router.Current()), pageW, 0, box.y)
			box.register(a.HitMap)
		}
	}

	lines := make([]string, h)
	for i := range lines {
		if side != nil {
			lines[i] = side[i]
		}
		lines[i] += page[i]
	}

	if top, ok := a.Overlays.Peek(); ok {
		fg := strings.Split(top.View.View(), "\n")
		fw := 0
		for _, l := range fg {
			fw = max(fw, lipgloss.Width(l))
		}
		textutil.Overlay(lines, fg, w, (w-fw)/2, (h-len(fg))/2)
		a.HitMap.Add(overlayHandle, nav.Rect{X: 0, Y: 0, W: w, H: h})
	}
	return strings.Join(lines, "\n")
}

func (a *AppModel) sidebarState(snap nav.Snapshot) sidebarState {
	s := sidebarState{
		menu:      a.menu,
		snap:      snap,
		pinned:    a.Nav.Panel().PinnedOpen(),
		active:    a.menu.ActiveItem(a.Router.Current()),
		counts:    a.Counts,
		user:      a.opts.User,
		roleLabel: a.opts.Role.Label(),
	}
	if a.Focus.Current != ModePage {
		s.cursor = a.cursorItem().ID
	}
	return s
}

// renderPage draws the page area as h lines of width w.
func (a *AppModel) renderPage(w, h int) []string {
	var footer []string
	if hb := RenderKeybindHelp(a.KeyHandler, a.Focus.Current, w); hb != "" {
		footer = strings.Split(hb, "\n")
	} else {
		footer = []string{a.hintLine()}
	}
	var head []string
	if a.Notice != "" {
		head = append(head, Styles.Notice.Render(a.Notice))
	}

	bodyH := max(h-len(footer)-len(head), 1)
	a.Page.SetSize(max(w-2, 1), bodyH)
	body := strings.Split(a.Page.View(), "\n")

	lines := make([]string, 0, h)
	lines = append(lines, head...)
	for i := 0; i < bodyH; i++ {
		if i < len(body) {
			lines = append(lines, body[i])
		} else {
			lines = append(lines, "")
		}
	}
	lines = append(lines, footer...)
	for len(lines) < h {
		lines = append(lines, "")
	}
	lines = lines[:h]
	for i, l := range lines {
		lines[i] = textutil.Fit(" "+l, w)
	}
	return lines
}

func (a *AppModel) hintLine() string {
	var hint string
	switch {
	case a.Nav == nil:
		hint = "enter sign in · q quit"
	case a.Focus.Current == ModeFlyout:
		hint = "j/k move · enter open · esc close"
	case a.Focus.Current == ModeSidebar:
		hint = "j/k move · enter open · l flyout · tab page · / jump · [ pin · SPC menu"
	default:
		hint = "j/k move · esc back · tab panel · / jump · SPC menu"
	}
	out := Styles.Hint.Render(hint)
	if a.BadgeErr != nil {
		out += "  " + Styles.Details.Render("badges stale")
	}
	return out
}
