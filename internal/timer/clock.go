package timer

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock supplies the current time and delayed message delivery.
type Clock interface {
	Now() time.Time
	After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

// RealClock delivers through tea.Tick.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }

// After implements Clock.
func (RealClock) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}

type manualTick struct {
	due time.Time
	seq int
	fn  func(time.Time) tea.Msg
}

// ManualClock is a simulated clock. After records the delivery instead of
// starting a real timer; Advance releases due deliveries in order.
type ManualClock struct {
	now     time.Time
	seq     int
	pending []manualTick
}

// NewManualClock returns a clock starting at a fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.now }

// After implements Clock. The returned command is nil: delivery happens
// only through Advance.
func (c *ManualClock) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.seq++
	c.pending = append(c.pending, manualTick{due: c.now.Add(d), seq: c.seq, fn: fn})
	return nil
}

// Advance moves time forward by d, passing every delivery that becomes due to
// deliver in due order. Deliveries scheduled by deliver itself are picked up if
// they fall inside the window.
func (c *ManualClock) Advance(d time.Duration, deliver func(tea.Msg)) {
	target := c.now.Add(d)
	for {
		idx := c.nextDue(target)
		if idx < 0 {
			break
		}
		t := c.pending[idx]
		c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
		c.now = t.due
		if deliver != nil {
			deliver(t.fn(t.due))
		}
	}
	c.now = target
}

// Waiting returns the number of deliveries not yet released.
func (c *ManualClock) Waiting() int {
	return len(c.pending)
}

func (c *ManualClock) nextDue(target time.Time) int {
	if len(c.pending) == 0 {
		return -1
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].due.Equal(c.pending[j].due) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].due.Before(c.pending[j].due)
	})
	if c.pending[0].due.After(target) {
		return -1
	}
	return 0
}
