// Package ui is the Bubble Tea front end of the backoffice dashboard.
//
// Core pieces:
//   - AppModel: root model; owns the nav.Controller and feeds it mouse,
//     keyboard, resize and timer messages
//   - HitMap: regions registered while rendering; answers geometry queries
//     and delivers pointer-down events
//   - PointerTracker: turns mouse motion into enter/leave events
//   - Router: current page plus back stack
//   - FocusManager: keyboard focus between the sidebar and the page
//   - Overlay: modal views (logout confirmation, quick jump)
package ui
