// Package badge refreshes the live counts shown next to panel items.
package badge

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source reports the current count for one badge key.
type Source interface {
	Count(ctx context.Context, key string) (int, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, key string) (int, error)

// Count implements Source.
func (f SourceFunc) Count(ctx context.Context, key string) (int, error) { return f(ctx, key) }

// Counts maps badge keys to their counts. Keys whose fetch failed are absent.
type Counts map[string]int

// UpdatedMsg carries a finished refresh.
type UpdatedMsg struct {
	Counts Counts
	Err    error // first failure; Counts still holds the keys that succeeded
	At     time.Time
}

// TickMsg asks the model to start the next refresh.
type TickMsg struct{}

// Poller fetches every key in parallel on a fixed interval.
type Poller struct {
	source   Source
	keys     []string
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

// NewPoller creates a poller for keys.
func NewPoller(source Source, keys []string, interval time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		source:   source,
		keys:     keys,
		interval: interval,
		timeout:  5 * time.Second,
		log:      log,
	}
}

// Interval returns the refresh period.
func (p *Poller) Interval() time.Duration { return p.interval }

// Fetch queries every key concurrently.
func (p *Poller) Fetch(ctx context.Context) (Counts, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var mu sync.Mutex
	counts := make(Counts, len(p.keys))
	var g errgroup.Group
	for _, key := range p.keys {
		g.Go(func() error {
			n, err := p.source.Count(ctx, key)
			if err != nil {
				p.log.Warn().Err(err).Str("badge", key).Msg("badge count failed")
				return fmt.Errorf("badge %s: %w", key, err)
			}
			mu.Lock()
			counts[key] = n
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return counts, err
}

// Refresh returns a command that fetches and reports an UpdatedMsg.
func (p *Poller) Refresh() tea.Cmd {
	return func() tea.Msg {
		counts, err := p.Fetch(context.Background())
		return UpdatedMsg{Counts: counts, Err: err, At: time.Now()}
	}
}

// Next schedules the following TickMsg.
func (p *Poller) Next() tea.Cmd {
	return tea.Tick(p.interval, func(time.Time) tea.Msg { return TickMsg{} })
}

// Label formats a count for an expanded panel row: "" for zero, "99+" above 99.
func Label(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 99:
		return "99+"
	default:
		return fmt.Sprintf("%d", n)
	}
}
