package nav

import "strings"

// Handle identifies a rendered region (the panel, a trigger, a flyout body).
// Handles form a tree by path: "nav/item/people" is a descendant of "nav".
type Handle string

// Well-known handles.
const (
	PanelHandle Handle = "nav"
	NoHandle    Handle = ""
)

// TriggerHandle returns the handle of the panel item that anchors a flyout.
func TriggerHandle(anchorID string) Handle {
	return Handle("nav/item/" + anchorID)
}

// ItemHandle returns the handle of a panel item.
func ItemHandle(itemID string) Handle {
	return TriggerHandle(itemID)
}

// FlyoutHandle returns the handle of a flyout body.
func FlyoutHandle(anchorID string) Handle {
	return Handle("flyout/" + anchorID)
}

// OptionHandle returns the handle of one option inside a flyout body.
func OptionHandle(anchorID, optionID string) Handle {
	return Handle("flyout/" + anchorID + "/" + optionID)
}

// Contains reports whether node is h itself or lies below h in the handle tree.
func (h Handle) Contains(node Handle) bool {
	if h == NoHandle || node == NoHandle {
		return false
	}
	return node == h || strings.HasPrefix(string(node), string(h)+"/")
}

// Rect is a bounding box in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r. Width and height are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Geometry answers layout questions about rendered regions.
// Bounds returns ok=false when the region is not currently rendered.
type Geometry interface {
	Bounds(h Handle) (Rect, bool)
	IsDescendant(root, node Handle) bool
}

// Router performs navigation side effects.
type Router interface {
	Navigate(path string)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(path string)

// Navigate implements Router.
func (f RouterFunc) Navigate(path string) { f(path) }

// Storage is durable client storage for small preference strings.
// GetItem returns ok=false when the key has never been set.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// PointerDownSource delivers document-level pointer-down events. The returned
// function removes the listener.
type PointerDownSource interface {
	OnPointerDown(fn func(target Handle)) (unsubscribe func())
}
