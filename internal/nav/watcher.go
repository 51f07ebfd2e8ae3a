package nav

// Watcher listens for pointer-down events while a flyout is open and reports
// those that land outside both the flyout and its trigger.
type Watcher struct {
	src         PointerDownSource
	geo         Geometry
	open        func() string
	onOutside   func()
	unsubscribe func()
	stopped     bool
}

// NewWatcher creates a watcher. open returns the currently open anchor.
func NewWatcher(src PointerDownSource, geo Geometry, open func() string, onOutside func()) *Watcher {
	return &Watcher{src: src, geo: geo, open: open, onOutside: onOutside}
}

// Active reports whether the listener is registered.
func (w *Watcher) Active() bool {
	return w != nil && w.unsubscribe != nil
}

// Activate registers the listener if it is not registered yet.
func (w *Watcher) Activate() {
	if w == nil || w.stopped || w.src == nil || w.unsubscribe != nil {
		return
	}
	w.unsubscribe = w.src.OnPointerDown(w.handle)
}

// Deactivate removes the listener.
func (w *Watcher) Deactivate() {
	if w == nil || w.unsubscribe == nil {
		return
	}
	w.unsubscribe()
	w.unsubscribe = nil
}

// Stop removes the listener for good.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.Deactivate()
	w.stopped = true
}

func (w *Watcher) handle(target Handle) {
	anchor := w.open()
	if anchor == "" {
		return
	}
	if w.within(FlyoutHandle(anchor), target) || w.within(TriggerHandle(anchor), target) {
		return
	}
	w.onOutside()
}

func (w *Watcher) within(root, target Handle) bool {
	if target == NoHandle {
		return false
	}
	if w.geo != nil {
		return w.geo.IsDescendant(root, target)
	}
	return root.Contains(target)
}
