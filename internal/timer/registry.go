// Package timer owns named, cancellable delayed actions for the Bubble Tea loop.
//
// A Registry never runs an action from another goroutine. Scheduling produces a
// tea.Cmd (queued in an outbox and returned by Flush) that later delivers a
// FiredMsg; the root model hands that message back to Fire, which runs the
// action only if the entry is still the current one for its name. Cancelling
// therefore never needs to stop a goroutine: a superseded or cancelled delivery
// simply fails the id check. Every registry has its own owner token, so a
// delivery from a closed registry never matches one created after it.
package timer

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// FiredMsg is delivered by the Clock when a scheduled delay elapses.
type FiredMsg struct {
	Owner uint64
	Name  string
	ID    uint64
	At    time.Time
}

var lastOwner atomic.Uint64

type entry struct {
	id     uint64
	fireAt time.Time
	action func()
}

// Registry guarantees at most one pending action per name.
// Not safe for concurrent use; all calls happen on the tea event loop.
type Registry struct {
	owner   uint64
	clock   Clock
	log     zerolog.Logger
	strict  bool
	pending map[string]*entry
	outbox  []tea.Cmd
	nextID  uint64
	closed  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithStrict makes programmer errors (empty timer names) panic instead of
// degrading to a synthesized name. Enabled in development builds.
func WithStrict(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

// NewRegistry creates a registry driven by clock. A nil clock means RealClock.
func NewRegistry(clock Clock, opts ...Option) *Registry {
	if clock == nil {
		clock = RealClock{}
	}
	r := &Registry{
		owner:   lastOwner.Add(1),
		clock:   clock,
		log:     zerolog.Nop(),
		pending: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schedule cancels any timer pending under name and starts a new one.
func (r *Registry) Schedule(name string, delay time.Duration, action func()) {
	if r.closed {
		return
	}
	r.nextID++
	id := r.nextID
	if name == "" {
		if r.strict {
			panic("timer: Schedule called with empty name")
		}
		name = fmt.Sprintf("anon-%d", id)
		r.log.Warn().Str("timer", name).Msg("empty timer name, using synthesized name")
	}
	if delay < 0 {
		delay = 0
	}

	r.pending[name] = &entry{
		id:     id,
		fireAt: r.clock.Now().Add(delay),
		action: action,
	}
	owner := r.owner
	r.outbox = append(r.outbox, r.clock.After(delay, func(t time.Time) tea.Msg {
		return FiredMsg{Owner: owner, Name: name, ID: id, At: t}
	}))
	r.log.Debug().Str("timer", name).Uint64("id", id).Dur("delay", delay).Msg("scheduled")
}

// Cancel drops the timer pending under name. No-op when nothing is pending.
func (r *Registry) Cancel(name string) {
	if _, ok := r.pending[name]; ok {
		delete(r.pending, name)
		r.log.Debug().Str("timer", name).Msg("cancelled")
	}
}

// CancelAll drops every pending timer and any undelivered scheduling commands.
func (r *Registry) CancelAll() {
	if len(r.pending) > 0 {
		r.log.Debug().Int("count", len(r.pending)).Msg("cancelled all timers")
	}
	clear(r.pending)
	r.outbox = nil
}

// Close cancels everything and makes the registry inert. Deliveries that are
// already in flight are ignored by Fire.
func (r *Registry) Close() {
	r.CancelAll()
	r.closed = true
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	return r.closed
}

// Owns reports whether msg was scheduled by this registry.
func (r *Registry) Owns(msg FiredMsg) bool {
	return msg.Owner == r.owner
}

// Fire runs the action for msg if it is still the current timer for its name.
// Returns true when the action ran.
func (r *Registry) Fire(msg FiredMsg) bool {
	if r.closed {
		return false
	}
	if !r.Owns(msg) {
		r.log.Debug().Str("timer", msg.Name).Uint64("owner", msg.Owner).Msg("foreign delivery ignored")
		return false
	}
	e, ok := r.pending[msg.Name]
	if !ok || e.id != msg.ID {
		r.log.Debug().Str("timer", msg.Name).Uint64("id", msg.ID).Msg("stale delivery ignored")
		return false
	}
	delete(r.pending, msg.Name)
	if e.action != nil {
		e.action()
	}
	return true
}

// Pending reports whether a timer is pending under name.
func (r *Registry) Pending(name string) bool {
	_, ok := r.pending[name]
	return ok
}

// FireAt returns when the timer pending under name is due.
func (r *Registry) FireAt(name string) (time.Time, bool) {
	e, ok := r.pending[name]
	if !ok {
		return time.Time{}, false
	}
	return e.fireAt, true
}

// Len returns the number of pending timers.
func (r *Registry) Len() int {
	return len(r.pending)
}

// Flush returns the scheduling commands queued since the last Flush.
// The caller must hand the result to the Bubble Tea runtime.
func (r *Registry) Flush() tea.Cmd {
	if len(r.outbox) == 0 {
		return nil
	}
	cmds := r.outbox
	r.outbox = nil
	return tea.Batch(cmds...)
}
