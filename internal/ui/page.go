package ui

import (
	"fmt"
	"strings"

	"backoffice/internal/badge"
	"backoffice/internal/nav"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// PageRow is one line of page content.
type PageRow struct {
	Name   string
	Detail string
}

func (r PageRow) FilterValue() string { return r.Name }
func (r PageRow) Title() string       { return r.Name }
func (r PageRow) Description() string { return r.Detail }

// sampleRows is the placeholder content for each page.
var sampleRows = map[string][]PageRow{
	"/applications": {
		{"Jordan Blake", "Maple Court 4B · submitted 2d ago"},
		{"Priya Natarajan", "Harbor View 12 · awaiting references"},
		{"Sam Okafor", "Cedar Row 3 · background check"},
	},
	"/properties": {
		{"Maple Court", "12 units · 2 vacant"},
		{"Harbor View Lofts", "24 units · fully let"},
		{"Cedar Row Townhomes", "6 units · 1 vacant"},
	},
	"/properties/units": {
		{"Maple Court 4B", "2 bed · vacant"},
		{"Maple Court 1A", "1 bed · let"},
		{"Cedar Row 3", "3 bed · vacant"},
	},
	"/listings": {
		{"Maple Court 4B", "listed 5d ago · 14 views"},
		{"Cedar Row 3", "draft"},
	},
	"/leases": {
		{"Harbor View 12", "renews in 30 days"},
		{"Maple Court 1A", "ends in 4 months"},
	},
	"/tenants": {
		{"Alex Moreno", "Harbor View 12"},
		{"Chen Wei", "Maple Court 1A"},
	},
	"/managers": {
		{"Riley Adams", "Maple Court, Cedar Row"},
		{"Morgan Lee", "Harbor View Lofts"},
	},
	"/vendors": {
		{"Brightline Plumbing", "on call"},
		{"Summit Electric", "net 30"},
	},
	"/payments": {
		{"Alex Moreno", "$1,850 · paid"},
		{"Chen Wei", "$1,420 · due in 3 days"},
	},
	"/accounting/ledger": {
		{"Rent income", "$48,200 this month"},
		{"Repairs", "-$3,115 this month"},
	},
	"/accounting/reports": {
		{"Rent roll", "monthly"},
		{"Owner statement", "quarterly"},
	},
	"/maintenance": {
		{"Leaking tap", "Maple Court 1A · open"},
		{"Broken intercom", "Harbor View · in progress"},
	},
	"/maintenance/work-orders": {
		{"WO-1042", "Brightline Plumbing · scheduled"},
		{"WO-1043", "Summit Electric · awaiting quote"},
	},
	LoginPath: {
		{"Sign in again", "press enter"},
	},
}

// PageTitle returns the heading for path, taken from the menu.
func PageTitle(menu *nav.Menu, path string) string {
	if path == LoginPath {
		return "Signed out"
	}
	for _, d := range menu.Destinations() {
		if d.Path == path {
			return d.Label
		}
	}
	for _, it := range menu.All() {
		if it.Path == path {
			return it.Label
		}
	}
	return path
}

// PageRows returns the content rows for path. Dashboards summarize counts
// unless counts is nil.
func PageRows(menu *nav.Menu, path string, counts badge.Counts) []PageRow {
	if dash, ok := menu.Item("dashboard"); ok && dash.Path == path {
		rows := []PageRow{
			{"Occupancy", "94% across 3 properties"},
			{"Rent collected", "$48,200 of $51,300"},
		}
		for _, it := range menu.All() {
			if it.BadgeKey == "" || counts == nil {
				continue
			}
			n, ok := counts[it.BadgeKey]
			detail := "…"
			if ok {
				detail = fmt.Sprintf("%d open", n)
			}
			rows = append(rows, PageRow{Name: it.Label, Detail: detail})
		}
		return rows
	}
	return sampleRows[path]
}

// PageView renders the current page.
type PageView struct {
	Path    string
	Title   string
	list    list.Model
	spinner spinner.Model
	loading bool
}

var _ View = (*PageView)(nil)

// NewPageView creates a page with rows.
func NewPageView(path, title string, rows []PageRow) *PageView {
	l := list.New(nil, NewCompactListDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	p := &PageView{Path: path, Title: title, list: l, spinner: s}
	p.SetRows(rows)
	return p
}

// SetRows replaces the content, keeping the selection where possible.
func (p *PageView) SetRows(rows []PageRow) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	p.list.SetItems(items)
}

// Rows returns the current content.
func (p *PageView) Rows() []PageRow {
	items := p.list.Items()
	out := make([]PageRow, 0, len(items))
	for _, it := range items {
		if r, ok := it.(PageRow); ok {
			out = append(out, r)
		}
	}
	return out
}

// SetSize sizes the content area. Two lines are reserved for the heading.
func (p *PageView) SetSize(w, h int) {
	p.list.SetWidth(w)
	if h -= 2; h < 1 {
		h = 1
	}
	p.list.SetHeight(h)
}

// SetLoading toggles the heading spinner.
func (p *PageView) SetLoading(loading bool) tea.Cmd {
	p.loading = loading
	if loading {
		return p.spinner.Tick
	}
	return nil
}

// Init implements View.
func (p *PageView) Init() tea.Cmd { return nil }

// Update implements View.
func (p *PageView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok {
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View implements View.
func (p *PageView) View() string {
	var b strings.Builder
	title := Styles.Title.Render(p.Title)
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(Styles.Muted.Render(p.Path) + "\n")
	if len(p.list.Items()) == 0 {
		b.WriteString(Styles.Empty.Render("Nothing here yet."))
		return b.String()
	}
	b.WriteString(p.list.View())
	return b.String()
}
