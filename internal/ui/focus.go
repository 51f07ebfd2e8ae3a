package ui

// FocusManager rotates keyboard focus across modes in a fixed order.
type FocusManager struct {
	Current  AppMode
	Order    []AppMode
	OnChange func(from, to AppMode)
}

// NewFocusManager starts focused on the first mode in order.
func NewFocusManager(order ...AppMode) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

func (f *FocusManager) index() int {
	for i, m := range f.Order {
		if m == f.Current {
			return i
		}
	}
	return -1
}

// Next moves focus forward and returns the new mode.
func (f *FocusManager) Next() AppMode {
	if len(f.Order) == 0 {
		return f.Current
	}
	f.set(f.Order[(f.index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus backward and returns the new mode.
func (f *FocusManager) Prev() AppMode {
	if len(f.Order) == 0 {
		return f.Current
	}
	i := f.index() - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	f.set(f.Order[i])
	return f.Current
}

// SetFocus focuses m. Modes outside the rotation (ModeFlyout) are allowed.
func (f *FocusManager) SetFocus(m AppMode) {
	f.set(m)
}

func (f *FocusManager) set(m AppMode) {
	from := f.Current
	f.Current = m
	if f.OnChange != nil && from != m {
		f.OnChange(from, m)
	}
}
