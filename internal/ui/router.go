package ui

import "backoffice/internal/nav"

// LoginPath is where logout lands.
const LoginPath = "/login"

// ComingSoonNotice is shown instead of navigating to an unfinished page.
const ComingSoonNotice = "Coming soon!"

// Router tracks the current page and a back stack.
type Router struct {
	current string
	history []string
	notice  string
}

var _ nav.Router = (*Router)(nil)

// NewRouter starts at home.
func NewRouter(home string) *Router {
	return &Router{current: home}
}

// Current returns the current path.
func (r *Router) Current() string { return r.current }

// Depth returns the number of pages on the back stack.
func (r *Router) Depth() int { return len(r.history) }

// Navigate implements nav.Router. Unfinished pages leave a notice instead.
func (r *Router) Navigate(path string) {
	if nav.ComingSoon(path) {
		r.notice = ComingSoonNotice
		return
	}
	if path == "" || path == r.current {
		return
	}
	r.history = append(r.history, r.current)
	r.current = path
}

// Back returns to the previous page. Returns false when there is none.
func (r *Router) Back() bool {
	if len(r.history) == 0 {
		return false
	}
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	return true
}

// Reset jumps to path and clears the back stack.
func (r *Router) Reset(path string) {
	r.current = path
	r.history = nil
}

// TakeNotice returns and clears the pending notice.
func (r *Router) TakeNotice() string {
	n := r.notice
	r.notice = ""
	return n
}
