// Package nav implements the interaction state machine of the dashboard's
// navigation panel: a collapsible side panel that can be pinned open by a
// click or temporarily expanded by hover, and that hosts hover-triggered
// flyout submenus with their own close timers.
//
// The package is screen-agnostic. Regions are opaque Handles; bounding boxes
// and containment come from a Geometry capability, navigation goes through a
// Router, and delayed transitions through a timer.Registry. Everything runs on
// the Bubble Tea event loop, so nothing here takes a lock: the hazard is stale
// timers, not concurrent transitions.
//
// Components:
//   - Panel: Collapsed | PinnedOpen | HoverExpanded plus a click lock
//   - Flyouts: the single open-flyout slot and its hover-intent timers
//   - PositionOf: flyout anchoring from a trigger's bounding box
//   - Watcher: closes the open flyout on pointer-down outside it
//   - Controller: owns the above and exposes a render Snapshot
package nav
