package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// fit shortens s to at most width terminal cells, ending in "...".
func fit(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// fitMiddle shortens s to width cells by dropping its middle, so both the
// scheme and the path of a URL stay readable.
func fitMiddle(s string, width int) string {
	s = strings.TrimSpace(s)
	w := ansi.StringWidth(s)
	if width <= 0 || w <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	head := (width - 1) / 2
	tail := width - 1 - head
	return ansi.Truncate(s, head, "") + "…" + ansi.TruncateLeft(s, w-tail, "")
}

// padCells pads s with spaces to width cells.
func padCells(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
