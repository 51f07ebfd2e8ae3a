package ui

import (
	"strings"

	"backoffice/internal/badge"
	"backoffice/internal/nav"
	"backoffice/internal/ui/textutil"
)

// Panel widths in columns, border included.
const (
	SidebarCollapsedWidth = 6
	SidebarExpandedWidth  = 26
)

const (
	itemsTop   = 2 // first item row
	footerRows = 3 // user, role, logout
)

// Handles for regions that are not menu entries.
const (
	toggleHandle  nav.Handle = "nav/toggle"
	footerHandle  nav.Handle = "nav/footer"
	logoutHandle  nav.Handle = "nav/footer/logout"
	pageHandle    nav.Handle = "page"
	overlayHandle nav.Handle = "overlay"
)

// sidebarLayout maps panel rows for one frame.
type sidebarLayout struct {
	width     int
	height    int
	itemRows  map[string]int
	footerTop int
}

func layoutSidebar(menu *nav.Menu, expanded bool, height int) sidebarLayout {
	l := sidebarLayout{
		width:    SidebarCollapsedWidth,
		height:   height,
		itemRows: make(map[string]int),
	}
	if expanded {
		l.width = SidebarExpandedWidth
	}
	for i, it := range menu.Items {
		l.itemRows[it.ID] = itemsTop + i
	}
	bottom := max(itemsTop+len(menu.Items)+1, height-footerRows-len(menu.Bottom))
	for i, it := range menu.Bottom {
		l.itemRows[it.ID] = bottom + i
	}
	l.footerTop = bottom + len(menu.Bottom)
	return l
}

// sidebarState is what the panel needs from the app for one frame.
type sidebarState struct {
	menu      *nav.Menu
	snap      nav.Snapshot
	pinned    bool
	active    string // item owning the current route
	cursor    string // keyboard cursor item, "" when the panel is not focused
	counts    badge.Counts
	user      string
	roleLabel string
}

// renderSidebar draws the panel as height lines and registers its regions.
func renderSidebar(s sidebarState, l sidebarLayout, hits *HitMap) []string {
	inner := l.width - 1
	rows := make([]string, l.height)

	hits.Add(nav.PanelHandle, nav.Rect{X: 0, Y: 0, W: l.width, H: l.height})

	glyph := "☰"
	if s.pinned {
		glyph = "«"
	}
	top := " " + Styles.ItemActive.Render(glyph)
	if s.snap.IsExpanded {
		top += "  " + Styles.Title.Render("Backoffice")
	}
	rows[0] = top
	hits.Add(toggleHandle, nav.Rect{X: 0, Y: 0, W: 4, H: 1})

	for _, it := range s.menu.All() {
		y, ok := l.itemRows[it.ID]
		if !ok || y >= l.height {
			continue
		}
		rows[y] = renderItem(s, it, inner)
		hits.Add(nav.ItemHandle(it.ID), nav.Rect{X: 0, Y: y, W: l.width, H: 1})
	}

	if l.footerTop+footerRows <= l.height {
		y := l.footerTop
		avatar := Styles.Avatar.Render(textutil.Initial(s.user))
		if s.snap.IsExpanded {
			rows[y] = " " + avatar + " " + Styles.Normal.Render(textutil.Truncate(s.user, inner-4))
			rows[y+1] = "   " + Styles.Muted.Render(textutil.Truncate(s.roleLabel, inner-4))
			rows[y+2] = " " + Styles.Logout.Render("⏻ Log out")
		} else {
			rows[y] = " " + avatar
			rows[y+2] = " " + Styles.Logout.Render("⏻")
		}
		hits.Add(footerHandle, nav.Rect{X: 0, Y: y, W: l.width, H: footerRows})
		hits.Add(logoutHandle, nav.Rect{X: 0, Y: y + 2, W: l.width, H: 1})
	}

	border := Styles.PanelBorder.Render("│")
	for i := range rows {
		rows[i] = textutil.Fit(rows[i], inner) + border
	}
	return rows
}

func renderItem(s sidebarState, it nav.Item, inner int) string {
	marker := " "
	if it.ID == s.active {
		marker = Styles.ItemActive.Render("▌")
	}
	count := 0
	if it.BadgeKey != "" {
		count = s.counts[it.BadgeKey]
	}
	open := s.snap.OpenFlyoutID == it.ID

	if !s.snap.IsExpanded {
		icon := it.Icon
		switch {
		case it.ID == s.cursor:
			icon = Styles.ItemCursor.Render(icon)
		case open:
			icon = Styles.ItemOpen.Render(icon)
		}
		dot := " "
		if count > 0 {
			dot = Styles.Badge.Render("•")
		}
		return marker + " " + icon + " " + dot
	}

	var right string
	rightW := 0
	if n := badge.Label(count); n != "" {
		right = Styles.Badge.Render(n)
		rightW = textutil.VisualWidth(n)
	}
	if it.HasFlyout() {
		arrow := Styles.Muted.Render("›")
		if open {
			arrow = Styles.ItemOpen.Render("›")
		}
		if right != "" {
			right += " "
			rightW++
		}
		right += arrow
		rightW++
	}

	labelW := inner - 4 - rightW - 1
	label := textutil.PadRightVisual(it.Icon+" "+it.Label, max(labelW, 0))
	switch {
	case it.ID == s.cursor:
		label = Styles.ItemCursor.Render(label)
	case it.ID == s.active:
		label = Styles.ItemActive.Render(label)
	case open:
		label = Styles.ItemOpen.Render(label)
	default:
		label = Styles.Panel.Render(label)
	}
	return marker + " " + label + " " + right
}

// flyoutBox is the on-screen placement of the open flyout. w is the visible
// width; full is the width the box is drawn at before the screen edge clips it.
type flyoutBox struct {
	item nav.Item
	x, y int
	w, h int
	full int
}

const flyoutMinWidth = 18

// layoutFlyout centers the first option on top, the trigger's vertical
// center. A nil top (trigger never measured) places the box at the first item
// row. The box is kept on screen vertically and clipped at the right edge.
func layoutFlyout(it nav.Item, top *int, x, screenW, screenH int) flyoutBox {
	w := max(flyoutMinWidth, textutil.VisualWidth(it.Label)+6)
	for _, o := range it.Options {
		w = max(w, textutil.VisualWidth(o.Label)+6)
	}
	b := flyoutBox{item: it, x: x, w: min(w, max(screenW-x, 0)), h: len(it.Options) + 2, full: w}
	b.y = itemsTop
	if top != nil {
		b.y = *top - 1
	}
	if b.y+b.h > screenH {
		b.y = screenH - b.h
	}
	if b.y < 0 {
		b.y = 0
	}
	return b
}

// register adds the body and option regions.
func (b flyoutBox) register(hits *HitMap) {
	if b.w <= 0 {
		return
	}
	hits.Add(nav.FlyoutHandle(b.item.ID), nav.Rect{X: b.x, Y: b.y, W: b.w, H: b.h})
	for i, o := range b.item.Options {
		hits.Add(nav.OptionHandle(b.item.ID, o.ID), nav.Rect{X: b.x, Y: b.y + 1 + i, W: b.w, H: 1})
	}
}

// lines draws the box. cursor is the keyboard-selected option (-1 for none);
// current is the route path, shown as active.
func (b flyoutBox) lines(cursor int, current string) []string {
	edge := Styles.Flyout
	label := b.item.Label
	lw := textutil.VisualWidth(label)

	out := make([]string, 0, b.h)
	out = append(out, edge.Render("╭─ ")+Styles.Title.Render(label)+edge.Render(" "+strings.Repeat("─", b.full-5-lw)+"╮"))
	for i, o := range b.item.Options {
		text := textutil.PadRightVisual(o.Label, b.full-5)
		marker := " "
		switch {
		case i == cursor:
			marker = Styles.ItemCursor.Render("›")
			text = Styles.ItemCursor.Render(text)
		case o.Path == current:
			marker = Styles.ItemActive.Render("▌")
			text = Styles.ItemActive.Render(text)
		default:
			text = Styles.Normal.Render(text)
		}
		out = append(out, edge.Render("│")+" "+marker+" "+text+edge.Render("│"))
	}
	out = append(out, edge.Render("╰"+strings.Repeat("─", b.full-2)+"╯"))
	return out
}
