// Package textutil provides unicode-aware text helpers for the dashboard's
// fixed-width layout.
package textutil

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is appended when Truncate shortens a string.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns plain s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens plain s to at most maxWidth columns, ending in an ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads or truncates plain s to exactly targetWidth columns.
func PadRightVisual(s string, targetWidth int) string {
	if VisualWidth(s) >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return runewidth.FillRight(s, targetWidth)
}

// PadLeftVisual right-aligns plain s in targetWidth columns.
func PadLeftVisual(s string, targetWidth int) string {
	if VisualWidth(s) >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return runewidth.FillLeft(s, targetWidth)
}

// Fit cuts or pads a styled line to exactly w columns. Escape sequences are
// preserved.
func Fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	n := ansi.StringWidth(s)
	switch {
	case n > w:
		return ansi.Truncate(s, w, "")
	case n < w:
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// Overlay draws fg over bg with its top-left corner at (x, y). bg lines are
// expected to be w columns wide; fg lines are padded to the widest fg line and
// cut at column w.
func Overlay(bg []string, fg []string, w, x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	fgW := 0
	for _, l := range fg {
		if n := ansi.StringWidth(l); n > fgW {
			fgW = n
		}
	}
	fgW = min(fgW, w-x)
	if fgW <= 0 {
		return
	}
	for i := 0; i < len(fg) && y+i < len(bg); i++ {
		line := Fit(bg[y+i], w)
		left := ansi.Cut(line, 0, x)
		right := ansi.Cut(line, x+fgW, w)
		bg[y+i] = left + Fit(fg[i], fgW) + right
	}
}

// Initial returns the upper-cased first letter of name, or "?".
func Initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
