package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar renders segments of a full-width status bar. Every cell, spaces
// included, carries the bar background; otherwise the ANSI reset after each
// styled word leaves a gap. See
// https://github.com/charmbracelet/lipgloss/discussions/78
type bar struct {
	bg   lipgloss.Color
	fill lipgloss.Style
}

func newBar(color string) bar {
	bg := lipgloss.Color(color)
	return bar{bg: bg, fill: lipgloss.NewStyle().Background(bg)}
}

// text styles s word by word on the bar background.
func (b bar) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.fill.Render(" "))
}

// pair renders "label value" with separate styles.
func (b bar) pair(label string, labelStyle lipgloss.Style, value string, valueStyle lipgloss.Style) string {
	return b.text(label, labelStyle) + b.fill.Render(" ") + b.text(value, valueStyle)
}

// hint renders a "key:desc" command hint.
func (b bar) hint(k string, keyStyle lipgloss.Style, desc string, descStyle lipgloss.Style) string {
	return b.text(k, keyStyle) + b.fill.Render(":") + b.text(desc, descStyle)
}

// join separates segments with two filled spaces.
func (b bar) join(segments []string) string {
	return strings.Join(segments, b.fill.Render("  "))
}
