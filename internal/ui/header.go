package ui

import (
	"strconv"

	"github.com/five82/folio/internal/library"
)

// renderHeader renders the status bar: load state, book count, outstanding
// requests and the API root.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	segments := []string{b.text("folio", styles.Logo)}

	switch m.view.Load {
	case library.Loaded:
		segments = append(segments, b.text("● loaded", styles.SuccessText))
	case library.LoadFailed:
		segments = append(segments, b.text("● load failed", styles.DangerText))
	default:
		segments = append(segments, b.text("● loading", styles.WarningText.Bold(true)))
	}

	label := "Books:"
	if compact {
		label = "B:"
	}
	segments = append(segments, b.pair(label, styles.MutedText, strconv.Itoa(len(m.view.Items)), styles.Text))

	if n := m.pendingCount(); n > 0 {
		segments = append(segments, b.pair("Saving:", styles.MutedText, strconv.Itoa(n), styles.InfoText))
	}

	if !compact && m.apiURL != "" {
		segments = append(segments, b.pair("api", styles.FaintText, fitMiddle(m.apiURL, 40), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(b.join(segments))
}

// pendingCount returns the number of outstanding requests of any kind.
func (m Model) pendingCount() int {
	n := len(m.view.Updating) + len(m.view.Deleting)
	if m.view.Creating {
		n++
	}
	return n
}

// renderCommandBar renders the key hints for the focused area.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case focusNew:
		commands = []cmd{
			{"enter", "Add"},
			{"tab", "Next"},
			{"esc", "Back (keeps draft)"},
		}
	case focusEdit:
		commands = []cmd{
			{"enter", "Save"},
			{"tab", "Next"},
			{"esc", "Cancel"},
		}
	default:
		commands = []cmd{
			{"a", "Add"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"j/k", "Navigate"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, b.hint(c.key, styles.AccentText, c.desc, styles.MutedText))
	}
	segments = append(segments, b.hint("T", styles.AccentText, m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(b.join(segments))
}

// renderStatusLine shows the last failure or a UI notice.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	switch {
	case m.view.LastFailure != nil:
		text := fit(m.view.LastFailure.Error(), max(m.width-10, 20))
		return styles.DangerText.Render("ERROR") + " " + styles.DangerText.UnsetBold().Render(text) +
			styles.FaintText.Render("  (esc to dismiss)")
	case m.notice != "":
		return styles.WarningText.Render("! " + fit(m.notice, max(m.width-4, 20)))
	default:
		return ""
	}
}
