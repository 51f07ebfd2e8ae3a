package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"backoffice/internal/badge"
	"backoffice/internal/nav"
	"backoffice/internal/prefs"
	"backoffice/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Landlord menu at 100x30: items start at row 2, so people is row 6 and
// the footer's logout row is 29.
const (
	rowProperties = 4
	rowLeases     = 5
	rowPeople     = 6
	rowAccounting = 7
	rowSettings   = 25
	rowLogout     = 29
)

type testApp struct {
	*appModelAdapter
	clock *timer.ManualClock
	store *prefs.MemoryStore
	quit  bool
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, prefs.NewMemoryStore())
}

func newTestAppWith(t *testing.T, store *prefs.MemoryStore) *testApp {
	t.Helper()
	clock := timer.NewManualClock()
	a := NewAppModel(Options{
		Role:    nav.RoleLandlord,
		User:    "Dana Whitfield",
		Clock:   clock,
		Strict:  true,
		Storage: store,
		Logger:  zerolog.Nop(),
	})
	ta := &testApp{
		appModelAdapter: a.AsTeaModel().(*appModelAdapter),
		clock:           clock,
		store:           store,
	}
	ta.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return ta
}

// send runs one update and renders, as the runtime does.
func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.Update(msg)
	ta.View()
	return cmd
}

// deliver runs cmd and feeds back the app's own messages. Anything else
// (blink and spinner ticks) is dropped.
func (ta *testApp) deliver(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch m := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range m {
			ta.deliver(c)
		}
	case tea.QuitMsg:
		ta.quit = true
	case TogglePanelMsg, GoToMsg, BackMsg, ShowQuickJumpMsg, JumpMsg,
		ShowLogoutMsg, LogoutMsg, DismissModalMsg, openCursorFlyoutMsg:
		ta.deliver(ta.send(m))
	}
}

func (ta *testApp) press(keys ...string) {
	for _, k := range keys {
		ta.deliver(ta.send(keyMsg(k)))
	}
}

func (ta *testApp) move(x, y int) {
	ta.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
}

func (ta *testApp) click(x, y int) {
	ta.deliver(ta.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}))
}

func (ta *testApp) advance(d time.Duration) {
	ta.clock.Advance(d, func(msg tea.Msg) { ta.send(msg) })
}

func (ta *testApp) snap() nav.Snapshot { return ta.Nav.Snapshot() }

func TestApp_StartsCollapsedOnDashboard(t *testing.T) {
	ta := newTestApp(t)

	assert.False(t, ta.snap().IsExpanded)
	assert.Equal(t, "/landlord-dashboard", ta.Router.Current())
	assert.Equal(t, ModeSidebar, ta.Mode())

	lines := strings.Split(ta.View(), "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, ta.View(), "Dashboard")
}

func TestApp_HoverOpensFlyoutAtTrigger(t *testing.T) {
	ta := newTestApp(t)
	ta.move(60, 15)
	ta.move(2, rowPeople)

	snap := ta.snap()
	assert.True(t, snap.IsExpanded)
	assert.Equal(t, "people", snap.OpenFlyoutID)
	require.NotNil(t, snap.FlyoutTop)
	assert.Equal(t, rowPeople, *snap.FlyoutTop)
	assert.True(t, ta.Nav.Watcher().Active())

	assert.Equal(t, nav.FlyoutHandle("people"), ta.HitMap.At(SidebarExpandedWidth+2, rowPeople-1))
	assert.Equal(t, nav.OptionHandle("people", "tenants"), ta.HitMap.At(SidebarExpandedWidth+2, rowPeople))
	assert.Contains(t, ta.View(), "Vendors")
}

func TestApp_TriggerToFlyoutKeepsBothOpen(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowPeople)
	ta.move(10, rowPeople)
	ta.move(SidebarExpandedWidth+3, rowPeople+1)

	ta.advance(time.Second)
	assert.Equal(t, "people", ta.snap().OpenFlyoutID)
	assert.True(t, ta.Nav.Panel().HoverExpanded())

	ta.click(SidebarExpandedWidth+3, rowPeople+1)
	assert.Equal(t, "/managers", ta.Router.Current())
	assert.False(t, ta.Nav.Flyouts().AnyOpen())
	assert.Contains(t, ta.View(), "People › Managers")

	ta.advance(nav.DefaultCollapseDelay)
	assert.Equal(t, nav.Collapsed, ta.Nav.Panel().Mode(), "panel collapses once the flyout is gone")
}

func TestApp_LeavingEverythingClosesThenCollapses(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowProperties)
	ta.move(80, rowProperties)

	ta.advance(nav.DefaultFlyoutCloseDelay)
	assert.False(t, ta.Nav.Flyouts().AnyOpen())
	assert.True(t, ta.snap().IsExpanded)

	ta.advance(nav.DefaultCollapseDelay)
	assert.False(t, ta.snap().IsExpanded)
	assert.Equal(t, pageHandle, ta.HitMap.At(SidebarCollapsedWidth+1, 10))
}

func TestApp_ClickOutsideClosesImmediately(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowPeople)
	ta.click(80, 20)

	assert.False(t, ta.Nav.Flyouts().AnyOpen(), "no debounce on outside click")
	assert.False(t, ta.Nav.Watcher().Active())
	assert.Equal(t, ModePage, ta.Mode())
}

func TestApp_ClickItemNavigates(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowLeases)
	ta.click(2, rowLeases)

	assert.Equal(t, "/leases", ta.Router.Current())
	assert.Equal(t, "/leases", ta.Page.Path)
	assert.Equal(t, "Leases", ta.Page.Title)
}

func TestApp_ComingSoonNotice(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowSettings)
	ta.click(2, rowSettings)

	assert.Equal(t, "/landlord-dashboard", ta.Router.Current())
	assert.Equal(t, ComingSoonNotice, ta.Notice)
	assert.Contains(t, ta.View(), ComingSoonNotice)

	ta.advance(noticeDuration)
	assert.Empty(t, ta.Notice)
}

func TestApp_TogglePinsAndPersists(t *testing.T) {
	ta := newTestApp(t)
	// Reaching the control hover-expands the panel, so the first click only
	// ends the hover.
	ta.click(1, 0)
	require.Equal(t, nav.Collapsed, ta.Nav.Panel().Mode())
	ta.click(1, 0)

	assert.True(t, ta.Nav.Panel().PinnedOpen())
	v, ok, err := ta.store.GetItem(nav.StorageKeyPinned)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	ta.move(80, 10)
	ta.advance(time.Second)
	assert.True(t, ta.snap().IsExpanded, "pinned panel ignores hover")

	again := newTestAppWith(t, ta.store)
	assert.True(t, again.Nav.Panel().PinnedOpen(), "restored on the next mount")
}

func TestApp_ToggleDuringHoverLocks(t *testing.T) {
	ta := newTestApp(t)
	ta.move(1, 0)
	require.True(t, ta.Nav.Panel().HoverExpanded())

	ta.click(1, 0)
	assert.Equal(t, nav.Collapsed, ta.Nav.Panel().Mode())
	assert.True(t, ta.Nav.Panel().ClickLocked())

	ta.move(2, rowLeases)
	assert.False(t, ta.snap().IsExpanded, "no re-expand while the pointer stays")

	ta.move(80, 10)
	ta.move(2, rowLeases)
	assert.True(t, ta.snap().IsExpanded)
}

func TestApp_KeyboardFlyout(t *testing.T) {
	ta := newTestApp(t)
	ta.press("j", "j", "j", "j")
	require.Equal(t, "people", ta.cursorItem().ID)

	ta.press("enter")
	assert.Equal(t, "people", ta.snap().OpenFlyoutID)
	assert.Equal(t, ModeFlyout, ta.Mode())
	assert.False(t, ta.snap().IsExpanded, "keyboard does not hover-expand the panel")

	ta.press("j", "j", "enter")
	assert.Equal(t, "/vendors", ta.Router.Current())
	assert.False(t, ta.Nav.Flyouts().AnyOpen())
	assert.Equal(t, ModeSidebar, ta.Mode())

	ta.press("l")
	assert.Equal(t, ModeFlyout, ta.Mode())
	ta.press("esc")
	assert.False(t, ta.Nav.Flyouts().AnyOpen())
	assert.Equal(t, ModeSidebar, ta.Mode())
}

func TestApp_FlyoutFocusDropsWhenClosedElsewhere(t *testing.T) {
	ta := newTestApp(t)
	ta.press("j", "j", "l")
	require.Equal(t, ModeFlyout, ta.Mode())

	ta.click(80, 20)
	assert.Equal(t, ModePage, ta.Mode())

	ta.Focus.SetFocus(ModeSidebar)
	ta.press("l")
	require.Equal(t, ModeFlyout, ta.Mode())
	ta.send(tea.MouseMsg{X: 90, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Equal(t, ModeFlyout, ta.Mode(), "only the left button counts as a click")
}

func TestApp_LeaderBindings(t *testing.T) {
	ta := newTestApp(t)

	ta.press(" ", "t")
	assert.True(t, ta.Nav.Panel().PinnedOpen())

	ta.press(" ", "g", "l")
	assert.Equal(t, "/leases", ta.Router.Current())

	ta.press(" ", "b")
	assert.Equal(t, "/landlord-dashboard", ta.Router.Current())

	ta.press("[")
	assert.False(t, ta.Nav.Panel().PinnedOpen())
}

func TestApp_PageFocusAndBack(t *testing.T) {
	ta := newTestApp(t)
	ta.press(" ", "g", "a")
	require.Equal(t, "/applications", ta.Router.Current())

	ta.press("tab")
	require.Equal(t, ModePage, ta.Mode())
	ta.press("esc")
	assert.Equal(t, "/landlord-dashboard", ta.Router.Current())

	ta.press("q")
	assert.True(t, ta.quit)
}

func TestApp_QuickJump(t *testing.T) {
	ta := newTestApp(t)
	ta.press("/")
	require.Equal(t, 1, ta.Overlays.Len())
	assert.Equal(t, overlayHandle, ta.HitMap.At(50, 15))

	for _, r := range "ledg" {
		ta.send(keyMsg(string(r)))
	}
	top, _ := ta.Overlays.Peek()
	qj := top.View.(*QuickJumpModal)
	require.NotEmpty(t, qj.Results())
	assert.Equal(t, "/accounting/ledger", qj.Results()[0].Path)

	ta.press("enter")
	assert.Zero(t, ta.Overlays.Len())
	assert.Equal(t, "/accounting/ledger", ta.Router.Current())
}

func TestApp_QuickJumpEscape(t *testing.T) {
	ta := newTestApp(t)
	ta.press("/")
	ta.send(keyMsg("q"))
	require.Equal(t, 1, ta.Overlays.Len(), "keys go to the modal first")
	top, _ := ta.Overlays.Peek()
	assert.Equal(t, "q", top.View.(*QuickJumpModal).input.Value())

	ta.press("esc")
	assert.Zero(t, ta.Overlays.Len())
}

func TestApp_LogoutAndSignIn(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowPeople)
	ta.move(2, rowLogout)
	require.True(t, ta.Nav.Flyouts().AnyOpen() || ta.Nav.Timers().Len() > 0)

	ta.click(2, rowLogout)
	require.Equal(t, 1, ta.Overlays.Len())

	old := ta.Nav
	ta.press("y")
	assert.Nil(t, ta.Nav)
	assert.False(t, old.Mounted())
	assert.Zero(t, old.Timers().Len(), "teardown cancels every timer")
	assert.Zero(t, ta.HitMap.Listeners(), "teardown removes the pointer-down listener")
	assert.Equal(t, LoginPath, ta.Router.Current())
	assert.Equal(t, ModePage, ta.Mode())

	ta.advance(time.Second)
	ta.move(2, rowPeople)
	ta.click(2, rowPeople)
	assert.Equal(t, LoginPath, ta.Router.Current(), "no panel while signed out")

	ta.press("enter")
	require.NotNil(t, ta.Nav)
	assert.True(t, ta.Nav.Mounted())
	assert.Equal(t, "/landlord-dashboard", ta.Router.Current())
}

func TestApp_SignInIgnoresTimersOfPreviousPanel(t *testing.T) {
	ta := newTestApp(t)
	ta.move(2, rowLeases)
	ta.move(80, 10)
	require.True(t, ta.Nav.Timers().Pending(nav.TimerPanelCollapse))

	ta.press(" ", "x", "y")
	require.Nil(t, ta.Nav)
	ta.press("enter")
	require.NotNil(t, ta.Nav)

	ta.advance(100 * time.Millisecond)
	ta.move(2, rowLeases)
	ta.move(80, 10)

	// The old panel's collapse comes due now, with the same name and id.
	ta.advance(110 * time.Millisecond)
	assert.True(t, ta.snap().IsExpanded)
	assert.True(t, ta.Nav.Timers().Pending(nav.TimerPanelCollapse))

	ta.advance(90 * time.Millisecond)
	assert.False(t, ta.snap().IsExpanded)
}

func TestApp_LogoutCancel(t *testing.T) {
	ta := newTestApp(t)
	ta.press(" ", "x")
	require.Equal(t, 1, ta.Overlays.Len())
	ta.press("n")
	assert.Zero(t, ta.Overlays.Len())
	assert.NotNil(t, ta.Nav)
}

func TestApp_ResizeRepositionsFlyout(t *testing.T) {
	ta := newTestApp(t)
	ta.press("j", "j", "j", "j", "j", "l")
	require.Equal(t, "accounting", ta.snap().OpenFlyoutID)
	require.Equal(t, rowAccounting, *ta.snap().FlyoutTop)

	ta.send(tea.WindowSizeMsg{Width: 60, Height: 8})
	assert.Equal(t, "accounting", ta.snap().OpenFlyoutID)
	assert.Equal(t, rowAccounting, *ta.snap().FlyoutTop)

	r, ok := ta.HitMap.Bounds(nav.FlyoutHandle("accounting"))
	require.True(t, ok)
	assert.LessOrEqual(t, r.Y+r.H, 8, "box stays on screen")
}

func TestApp_UnnamedUITimerStillRuns(t *testing.T) {
	clock := timer.NewManualClock()
	a := NewAppModel(Options{Role: nav.RoleLandlord, User: "Dana", Clock: clock, Logger: zerolog.Nop()})
	m := a.AsTeaModel()

	ran := false
	a.uiTimers.Schedule("", time.Millisecond, func() { ran = true })
	clock.Advance(time.Millisecond, func(msg tea.Msg) { m.Update(msg) })
	assert.True(t, ran, "routed by owner, not by name")
}

func TestApp_NarrowTerminalClipsFlyout(t *testing.T) {
	ta := newTestApp(t)
	ta.send(tea.WindowSizeMsg{Width: 34, Height: 30})
	ta.move(2, rowPeople)
	require.Equal(t, "people", ta.snap().OpenFlyoutID)

	for i, l := range strings.Split(ta.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), 34, "row %d", i)
	}
	r, ok := ta.HitMap.Bounds(nav.FlyoutHandle("people"))
	require.True(t, ok)
	assert.Equal(t, 34, r.X+r.W, "hit region ends at the screen edge")
	assert.Equal(t, pageHandle, ta.HitMap.At(r.X, r.Y+r.H))
}

func TestApp_Badges(t *testing.T) {
	clock := timer.NewManualClock()
	src := badge.SourceFunc(func(_ context.Context, key string) (int, error) {
		if key == nav.BadgeMaintenance {
			return 0, errors.New("down")
		}
		return 4, nil
	})
	a := NewAppModel(Options{
		Role:          nav.RoleManager,
		User:          "Lee",
		Clock:         clock,
		Badges:        src,
		BadgeInterval: time.Minute,
		Logger:        zerolog.Nop(),
	})
	m := a.AsTeaModel()
	require.NotNil(t, m.Init())

	counts, err := a.Poller.Fetch(context.Background())
	m.Update(badge.UpdatedMsg{Counts: counts, Err: err})

	assert.Equal(t, 4, a.Counts[nav.BadgeApplications])
	assert.Error(t, a.BadgeErr)
	assert.Contains(t, m.View(), "badges stale")

	var found bool
	for _, r := range a.Page.Rows() {
		if r.Name == "Applications" {
			found = true
			assert.Equal(t, "4 open", r.Detail)
		}
	}
	assert.True(t, found, "dashboard summarizes badge counts")
}

func TestApp_ManualBadgeRefreshDoesNotChain(t *testing.T) {
	a := NewAppModel(Options{
		Role:          nav.RoleLandlord,
		User:          "Ari",
		Clock:         timer.NewManualClock(),
		Badges:        badge.NewDemoSource(map[string]int{nav.BadgeApplications: 1, nav.BadgeMaintenance: 2}),
		BadgeInterval: time.Minute,
		Logger:        zerolog.Nop(),
	})
	m := a.AsTeaModel()

	m.Update(RefreshBadgesMsg{})
	require.Equal(t, 1, a.manual)
	assert.Nil(t, a.badgesUpdated(badge.UpdatedMsg{Counts: badge.Counts{}}), "manual refresh schedules no tick")
	assert.NotNil(t, a.badgesUpdated(badge.UpdatedMsg{Counts: badge.Counts{}}), "polled refresh schedules the next tick")
}

func TestApp_BadgePollingFollowsRoleAndSession(t *testing.T) {
	src := badge.NewDemoSource(map[string]int{nav.BadgeApplications: 1, nav.BadgeMaintenance: 2})
	opts := Options{
		Role:          nav.RoleAdmin,
		User:          "Ari",
		Clock:         timer.NewManualClock(),
		Badges:        src,
		BadgeInterval: time.Minute,
		Logger:        zerolog.Nop(),
	}
	admin := NewAppModel(opts)
	assert.Nil(t, admin.Poller, "admins have no badges to poll")
	assert.Nil(t, admin.AsTeaModel().Init())
	for _, r := range PageRows(admin.Menu(), "/admin-dashboard", admin.badgeCounts()) {
		assert.NotEqual(t, "…", r.Detail)
	}

	opts.Role = nav.RoleLandlord
	a := NewAppModel(opts)
	m := a.AsTeaModel()
	require.NotNil(t, m.Init())
	assert.Nil(t, a.startPolling(), "one refresh chain at a time")

	m.Update(LogoutMsg{})
	require.Nil(t, a.Nav)
	assert.Nil(t, a.update(badge.TickMsg{}), "signed out: the chain stops")
	assert.Nil(t, a.update(RefreshBadgesMsg{}))
	assert.False(t, a.polling)

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, a.Nav)
	assert.NotNil(t, cmd)
	assert.True(t, a.polling)
}
