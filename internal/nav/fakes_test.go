package nav

import (
	"errors"
	"testing"
	"time"

	"backoffice/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeGeometry struct {
	rects map[Handle]Rect
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{rects: map[Handle]Rect{
		PanelHandle:                 {X: 0, Y: 0, W: 24, H: 40},
		TriggerHandle("properties"): {X: 0, Y: 6, W: 24, H: 1},
		TriggerHandle("people"):     {X: 0, Y: 10, W: 24, H: 1},
		TriggerHandle("accounting"): {X: 0, Y: 12, W: 24, H: 3},
		FlyoutHandle("properties"):  {X: 24, Y: 5, W: 20, H: 5},
		FlyoutHandle("people"):      {X: 24, Y: 9, W: 20, H: 5},
	}}
}

func (g *fakeGeometry) Bounds(h Handle) (Rect, bool) {
	r, ok := g.rects[h]
	return r, ok
}

func (g *fakeGeometry) IsDescendant(root, node Handle) bool {
	return root.Contains(node)
}

type fakeRouter struct {
	paths []string
}

func (r *fakeRouter) Navigate(path string) { r.paths = append(r.paths, path) }

type fakeStorage struct {
	items  map[string]string
	getErr error
	setErr error
	sets   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: map[string]string{}}
}

func (s *fakeStorage) GetItem(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fakeStorage) SetItem(key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.items[key] = value
	return nil
}

var errStorageDown = errors.New("storage unavailable")

type fakePointer struct {
	next      int
	listeners map[int]func(Handle)
}

func newFakePointer() *fakePointer {
	return &fakePointer{listeners: map[int]func(Handle){}}
}

func (p *fakePointer) OnPointerDown(fn func(Handle)) func() {
	p.next++
	id := p.next
	p.listeners[id] = fn
	return func() { delete(p.listeners, id) }
}

func (p *fakePointer) down(target Handle) {
	fns := make([]func(Handle), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(target)
	}
}

type recordingObserver struct {
	events []string
	paths  []string
	last   Snapshot
}

func (o *recordingObserver) Transition(event string, snap Snapshot) {
	o.events = append(o.events, event)
	o.last = snap
}

func (o *recordingObserver) Navigated(path string) { o.paths = append(o.paths, path) }

type harness struct {
	c      *Controller
	clock  *timer.ManualClock
	geo    *fakeGeometry
	router *fakeRouter
	store  *fakeStorage
	ptr    *fakePointer
	obs    *recordingObserver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, newFakeStorage())
}

func newHarnessWith(t *testing.T, store *fakeStorage) *harness {
	t.Helper()
	h := &harness{
		clock:  timer.NewManualClock(),
		geo:    newFakeGeometry(),
		router: &fakeRouter{},
		store:  store,
		ptr:    newFakePointer(),
		obs:    &recordingObserver{},
	}
	h.c = New(Config{
		Menu:        MenuFor(RoleLandlord),
		Timers:      timer.NewRegistry(h.clock, timer.WithStrict(true)),
		Geometry:    h.geo,
		Router:      h.router,
		Storage:     h.store,
		PointerDown: h.ptr,
		Observer:    h.obs,
	})
	h.c.Mount()
	return h
}

// advance moves simulated time and feeds every delivery through the controller.
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d, func(msg tea.Msg) {
		if f, ok := msg.(timer.FiredMsg); ok {
			h.c.HandleTimer(f)
		}
	})
}

func (h *harness) panel() *Panel     { return h.c.Panel() }
func (h *harness) flyouts() *Flyouts { return h.c.Flyouts() }
