package nav

import "github.com/rs/zerolog"

// Observer receives every committed transition and every navigation.
type Observer interface {
	Transition(event string, snap Snapshot)
	Navigated(path string)
}

// NoopObserver ignores everything. Embed it to implement only some methods.
type NoopObserver struct{}

func (NoopObserver) Transition(string, Snapshot) {}
func (NoopObserver) Navigated(string)            {}

// MultiObserver fans out to several observers. Nil observers are dropped and a
// panicking observer does not stop the others.
type MultiObserver struct {
	observers []Observer
}

var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver combines observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

// Transition implements Observer.
func (m *MultiObserver) Transition(event string, snap Snapshot) {
	for _, obs := range m.observers {
		safeCall(func() { obs.Transition(event, snap) })
	}
}

// Navigated implements Observer.
func (m *MultiObserver) Navigated(path string) {
	for _, obs := range m.observers {
		safeCall(func() { obs.Navigated(path) })
	}
}

// LogObserver writes transitions at debug level.
type LogObserver struct {
	Log zerolog.Logger
}

// Transition implements Observer.
func (o LogObserver) Transition(event string, snap Snapshot) {
	e := o.Log.Debug().
		Str("event", event).
		Bool("expanded", snap.IsExpanded).
		Str("flyout", snap.OpenFlyoutID)
	if snap.FlyoutTop != nil {
		e = e.Int("flyout_top", *snap.FlyoutTop)
	}
	e.Msg("nav transition")
}

// Navigated implements Observer.
func (o LogObserver) Navigated(path string) {
	o.Log.Info().Str("path", path).Msg("navigate")
}
