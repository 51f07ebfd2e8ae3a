package nav

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Role selects which menu a signed-in user sees.
type Role int

const (
	RoleAdmin Role = iota
	RoleLandlord
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleLandlord:
		return "landlord"
	case RoleManager:
		return "manager"
	default:
		return "unknown"
	}
}

// Label is the human-readable role shown in the panel footer.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Platform Admin"
	case RoleLandlord:
		return "Business Owner"
	default:
		return "Property Manager"
	}
}

// HasBadges reports whether the role's panel shows live counts.
func (r Role) HasBadges() bool {
	return r == RoleLandlord || r == RoleManager
}

// ParseRole parses "admin", "landlord" or "manager" (case-insensitive).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "landlord", "owner":
		return RoleLandlord, nil
	case "manager":
		return RoleManager, nil
	}
	return 0, fmt.Errorf("unknown role %q (want admin, landlord or manager)", s)
}

// Badge keys for items that show a live count.
const (
	BadgeApplications = "applications"
	BadgeMaintenance  = "maintenance"
)

// Option is one entry in a flyout.
type Option struct {
	ID    string
	Label string
	Path  string
}

// Item is one panel entry. Items with Options anchor a flyout.
type Item struct {
	ID       string
	Label    string
	Icon     string
	Path     string
	BadgeKey string
	Options  []Option
}

// HasFlyout reports whether the item anchors a flyout.
func (i Item) HasFlyout() bool {
	return len(i.Options) > 0
}

// Menu is the ordered set of panel items for one role.
type Menu struct {
	Items  []Item // main section
	Bottom []Item // settings & support
}

// MenuFor builds the panel menu for role.
func MenuFor(role Role) *Menu {
	people := []Option{
		{ID: "tenants", Label: "Tenants", Path: "/tenants"},
	}
	if role != RoleManager {
		people = append(people, Option{ID: "managers", Label: "Managers", Path: "/managers"})
	}
	people = append(people, Option{ID: "vendors", Label: "Vendors", Path: "/vendors"})

	return &Menu{
		Items: []Item{
			{ID: "dashboard", Label: "Dashboard", Icon: "▦", Path: dashboardPath(role)},
			{ID: "applications", Label: "Applications", Icon: "✉", Path: "/applications", BadgeKey: BadgeApplications},
			{ID: "properties", Label: "Properties", Icon: "⌂", Path: "/properties", Options: []Option{
				{ID: "all", Label: "All properties", Path: "/properties"},
				{ID: "units", Label: "Units", Path: "/properties/units"},
				{ID: "listings", Label: "Listings", Path: "/listings"},
			}},
			{ID: "leases", Label: "Leases", Icon: "✎", Path: "/leases"},
			{ID: "people", Label: "People", Icon: "☺", Path: "/tenants", Options: people},
			{ID: "accounting", Label: "Accounting", Icon: "$", Path: "/payments", Options: []Option{
				{ID: "payments", Label: "Payments", Path: "/payments"},
				{ID: "ledger", Label: "Ledger", Path: "/accounting/ledger"},
				{ID: "reports", Label: "Reports", Path: "/accounting/reports"},
			}},
			{ID: "maintenance", Label: "Maintenance", Icon: "⚒", Path: "/maintenance", BadgeKey: BadgeMaintenance, Options: []Option{
				{ID: "tickets", Label: "Tickets", Path: "/maintenance"},
				{ID: "work-orders", Label: "Work orders", Path: "/maintenance/work-orders"},
			}},
		},
		Bottom: []Item{
			{ID: "settings", Label: "Settings", Icon: "⚙", Path: "/settings"},
			{ID: "support", Label: "Support", Icon: "?", Path: "/support"},
		},
	}
}

func dashboardPath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleLandlord:
		return "/landlord-dashboard"
	default:
		return "/manager-dashboard"
	}
}

// ComingSoon reports whether path has no page yet.
func ComingSoon(path string) bool {
	return path == "/settings" || path == "/support"
}

// All returns main and bottom items in display order.
func (m *Menu) All() []Item {
	out := make([]Item, 0, len(m.Items)+len(m.Bottom))
	out = append(out, m.Items...)
	return append(out, m.Bottom...)
}

// Item looks up an item by ID.
func (m *Menu) Item(id string) (Item, bool) {
	if m == nil {
		return Item{}, false
	}
	for _, it := range m.All() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// IsAnchor reports whether id names an item with a flyout.
func (m *Menu) IsAnchor(id string) bool {
	it, ok := m.Item(id)
	return ok && it.HasFlyout()
}

// Option looks up an option inside an anchor's flyout.
func (m *Menu) Option(anchorID, optionID string) (Option, bool) {
	it, ok := m.Item(anchorID)
	if !ok {
		return Option{}, false
	}
	for _, o := range it.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// ActiveItem returns the ID of the item whose path (or one of whose option
// paths) matches path, or "" if none does.
func (m *Menu) ActiveItem(path string) string {
	for _, it := range m.All() {
		if it.Path == path {
			return it.ID
		}
		for _, o := range it.Options {
			if o.Path == path {
				return it.ID
			}
		}
	}
	return ""
}

// Destination is a navigable entry found by Search.
type Destination struct {
	Label    string // "People › Tenants" for options
	Path     string
	ItemID   string
	OptionID string
}

type destinations []Destination

func (d destinations) String(i int) string { return d[i].Label }
func (d destinations) Len() int            { return len(d) }

// Destinations lists every navigable entry, items first then their options.
func (m *Menu) Destinations() []Destination {
	var out []Destination
	for _, it := range m.All() {
		if !it.HasFlyout() {
			out = append(out, Destination{Label: it.Label, Path: it.Path, ItemID: it.ID})
			continue
		}
		for _, o := range it.Options {
			out = append(out, Destination{
				Label:    it.Label + " › " + o.Label,
				Path:     o.Path,
				ItemID:   it.ID,
				OptionID: o.ID,
			})
		}
	}
	return out
}

// Search fuzzy-matches query against every destination label, best first.
// An empty query returns all destinations in menu order.
func (m *Menu) Search(query string) []Destination {
	all := destinations(m.Destinations())
	if strings.TrimSpace(query) == "" {
		return all
	}
	matches := fuzzy.FindFrom(query, all)
	out := make([]Destination, 0, len(matches))
	for _, match := range matches {
		out = append(out, all[match.Index])
	}
	return out
}
