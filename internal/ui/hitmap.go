package ui

import "backoffice/internal/nav"

type region struct {
	handle nav.Handle
	rect   nav.Rect
}

// HitMap records where each handle was drawn in the last frame. Regions
// added later sit on top of earlier ones.
//
// It also acts as the document-level pointer-down source.
type HitMap struct {
	regions   []region
	listeners map[int]func(nav.Handle)
	nextID    int
}

var (
	_ nav.Geometry          = (*HitMap)(nil)
	_ nav.PointerDownSource = (*HitMap)(nil)
)

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{listeners: make(map[int]func(nav.Handle))}
}

// Reset forgets every region. Called at the start of each render.
func (m *HitMap) Reset() {
	m.regions = m.regions[:0]
}

// Add registers h at r.
func (m *HitMap) Add(h nav.Handle, r nav.Rect) {
	if r.Empty() {
		return
	}
	m.regions = append(m.regions, region{handle: h, rect: r})
}

// At returns the topmost handle under (x, y), or nav.NoHandle.
func (m *HitMap) At(x, y int) nav.Handle {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].rect.Contains(x, y) {
			return m.regions[i].handle
		}
	}
	return nav.NoHandle
}

// Bounds implements nav.Geometry.
func (m *HitMap) Bounds(h nav.Handle) (nav.Rect, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].handle == h {
			return m.regions[i].rect, true
		}
	}
	return nav.Rect{}, false
}

// IsDescendant implements nav.Geometry. Handles nest by path.
func (m *HitMap) IsDescendant(root, node nav.Handle) bool {
	return root.Contains(node)
}

// OnPointerDown implements nav.PointerDownSource.
func (m *HitMap) OnPointerDown(fn func(nav.Handle)) func() {
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

// Dispatch delivers a pointer-down on target to every listener. Listeners
// may unsubscribe while being called.
func (m *HitMap) Dispatch(target nav.Handle) {
	fns := make([]func(nav.Handle), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(target)
	}
}

// Listeners returns the number of registered pointer-down listeners.
func (m *HitMap) Listeners() int {
	return len(m.listeners)
}
