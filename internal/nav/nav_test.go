package nav

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ActiveOnlyWhileOpen(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.c.Watcher().Active())
	assert.Empty(t, h.ptr.listeners)

	h.c.HoverEnterTrigger("properties")
	h.c.HoverEnterTrigger("people")
	assert.True(t, h.c.Watcher().Active())
	assert.Len(t, h.ptr.listeners, 1, "one listener across displacements")

	h.c.CloseFlyout()
	assert.False(t, h.c.Watcher().Active())
	assert.Empty(t, h.ptr.listeners)
}

func TestWatcher_OutsideInteraction(t *testing.T) {
	tests := []struct {
		name     string
		target   Handle
		wantOpen bool
	}{
		{name: "flyout body", target: FlyoutHandle("people"), wantOpen: true},
		{name: "flyout option", target: OptionHandle("people", "tenants"), wantOpen: true},
		{name: "own trigger", target: TriggerHandle("people"), wantOpen: true},
		{name: "other trigger", target: TriggerHandle("properties"), wantOpen: false},
		{name: "page content", target: Handle("page"), wantOpen: false},
		{name: "nothing", target: NoHandle, wantOpen: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.c.HoverEnterTrigger("people")
			h.c.HoverLeaveTrigger("people")

			h.ptr.down(tt.target)
			assert.Equal(t, tt.wantOpen, h.flyouts().AnyOpen())
			if !tt.wantOpen {
				assert.False(t, h.c.Timers().Pending(CloseTimerName("people")), "closed with no debounce")
				assert.Empty(t, h.ptr.listeners)
				assert.Contains(t, h.obs.events, "outside-interaction")
			}
		})
	}
}

func TestWatcher_OutsideCollapsesHoverPanel(t *testing.T) {
	h := newHarness(t)
	h.c.PointerEnterPanel()
	h.c.HoverEnterTrigger("people")
	h.c.PointerLeavePanel(Handle("page"))

	h.ptr.down(Handle("page"))
	assert.False(t, h.flyouts().AnyOpen())

	h.advance(DefaultCollapseDelay)
	assert.Equal(t, Collapsed, h.panel().Mode())
}

func TestWatcher_WithoutGeometryUsesHandleTree(t *testing.T) {
	open := "people"
	hits := 0
	w := NewWatcher(newFakePointer(), nil, func() string { return open }, func() { hits++ })

	w.handle(OptionHandle("people", "vendors"))
	w.handle(TriggerHandle("people"))
	assert.Equal(t, 0, hits)

	w.handle(Handle("page"))
	assert.Equal(t, 1, hits)

	open = ""
	w.handle(Handle("page"))
	assert.Equal(t, 1, hits)
}

func TestWatcher_StopIsFinal(t *testing.T) {
	src := newFakePointer()
	w := NewWatcher(src, nil, func() string { return "people" }, func() {})
	w.Activate()
	require.True(t, w.Active())

	w.Stop()
	w.Activate()
	assert.False(t, w.Active())
	assert.Empty(t, src.listeners)
}

func TestWatcher_NilSource(t *testing.T) {
	w := NewWatcher(nil, nil, func() string { return "" }, func() {})
	w.Activate()
	assert.False(t, w.Active())
	w.Stop()
}

func TestController_TeardownSafety(t *testing.T) {
	h := newHarness(t)
	h.c.PointerEnterPanel()
	h.c.HoverEnterTrigger("people")
	h.c.HoverLeaveTrigger("people")
	h.c.HoverLeaveFlyoutBody("people")
	require.NotZero(t, h.c.Timers().Len())

	h.c.Unmount()
	assert.Zero(t, h.c.Timers().Len())
	assert.Empty(t, h.ptr.listeners)
	require.NotEmpty(t, h.obs.events)
	assert.Equal(t, "unmount", h.obs.events[len(h.obs.events)-1])
	assert.Equal(t, Snapshot{}, h.obs.last, "final snapshot is collapsed with no flyout")

	before := len(h.obs.events)
	h.advance(time.Second)
	assert.Equal(t, "people", h.flyouts().OpenID(), "no close ran after teardown")
	assert.True(t, h.panel().HoverExpanded(), "no collapse ran after teardown")
	assert.Len(t, h.obs.events, before)
}

func TestController_HandlersNoopAfterUnmount(t *testing.T) {
	h := newHarness(t)
	h.c.Unmount()
	h.c.Unmount()

	h.c.ToggleClick()
	h.c.PointerEnterPanel()
	h.c.HoverEnterTrigger("people")
	h.c.ClickItem("leases")
	h.c.ClickOption("people", "tenants")
	h.c.ViewportResize()

	assert.Equal(t, Collapsed, h.panel().Mode())
	assert.False(t, h.flyouts().AnyOpen())
	assert.Empty(t, h.router.paths)
	assert.Zero(t, h.store.sets)
	assert.Zero(t, h.clock.Waiting())

	assert.Equal(t, []string{"mount", "unmount"}, h.obs.events, "a second Unmount reports nothing")

	h.c.Mount()
	assert.False(t, h.c.Mounted(), "an unmounted controller stays unmounted")
}

func TestController_EventsBeforeMountIgnored(t *testing.T) {
	c := New(Config{Menu: MenuFor(RoleManager)})
	c.PointerEnterPanel()
	assert.False(t, c.Panel().HoverExpanded())
}

func TestController_SnapshotAfterEveryTransition(t *testing.T) {
	h := newHarness(t)
	h.c.PointerEnterPanel()
	assert.True(t, h.obs.last.IsExpanded)

	h.c.HoverEnterTrigger("properties")
	assert.Equal(t, "properties", h.obs.last.OpenFlyoutID)
	require.NotNil(t, h.obs.last.FlyoutTop)
	assert.Equal(t, 6, *h.obs.last.FlyoutTop)

	h.c.HoverLeaveTrigger("properties")
	h.advance(DefaultFlyoutCloseDelay)
	assert.Equal(t, "timer:"+CloseTimerName("properties"), h.obs.events[len(h.obs.events)-1])
	assert.Empty(t, h.obs.last.OpenFlyoutID)
	assert.Nil(t, h.obs.last.FlyoutTop)
}

func TestController_CustomTimings(t *testing.T) {
	h := newHarness(t)
	c := New(Config{
		Menu:     MenuFor(RoleAdmin),
		Timings:  Timings{CollapseDelay: time.Second, FlyoutCloseDelay: 500 * time.Millisecond},
		Timers:   h.c.Timers(),
		Geometry: h.geo,
	})
	c.Mount()
	c.PointerEnterPanel()
	c.PointerLeavePanel(NoHandle)

	due, ok := c.Timers().FireAt(TimerPanelCollapse)
	require.True(t, ok)
	assert.Equal(t, h.clock.Now().Add(time.Second), due)
	assert.Equal(t, DefaultTimings().CollapseDelay, DefaultCollapseDelay)
}

func TestMultiObserver_IsolatesPanics(t *testing.T) {
	rec := &recordingObserver{}
	m := NewMultiObserver(nil, panicObserver{}, rec)

	m.Transition("toggle", Snapshot{IsExpanded: true})
	m.Navigated("/leases")

	assert.Equal(t, []string{"toggle"}, rec.events)
	assert.Equal(t, []string{"/leases"}, rec.paths)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := LogObserver{Log: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	top := 7
	obs.Transition("hover-enter-trigger", Snapshot{IsExpanded: true, OpenFlyoutID: "people", FlyoutTop: &top})
	obs.Navigated("/tenants")

	out := buf.String()
	assert.Contains(t, out, `"event":"hover-enter-trigger"`)
	assert.Contains(t, out, `"flyout_top":7`)
	assert.Contains(t, out, `"path":"/tenants"`)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

type panicObserver struct{}

func (panicObserver) Transition(string, Snapshot) { panic("boom") }
func (panicObserver) Navigated(string)            { panic("boom") }
