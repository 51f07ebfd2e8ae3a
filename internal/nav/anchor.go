package nav

// Position anchors a flyout in screen coordinates.
type Position struct {
	Top int // row of the trigger's vertical center
}

// PositionOf computes the flyout position for trigger from its bounding box.
// Returns ok=false when the trigger is not rendered or has no height.
func PositionOf(geo Geometry, trigger Handle) (Position, bool) {
	if geo == nil {
		return Position{}, false
	}
	r, ok := geo.Bounds(trigger)
	if !ok || r.Empty() {
		return Position{}, false
	}
	return Position{Top: r.Y + r.H/2}, true
}
