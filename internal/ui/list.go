package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/library"
)

// renderContent renders the list, the forms and the status line.
func (m Model) renderContent() string {
	contentHeight := m.height - 2 // Account for header + cmdbar

	newHint := formHint(m.focus == focusNew, "a: add a book")
	bottom := []string{m.newForm.render(m.theme, m.width, newHint)}
	if m.focus == focusEdit {
		editHint := formHint(true, "")
		bottom = append([]string{m.editForm.render(m.theme, m.width, editHint)}, bottom...)
	}
	if status := m.renderStatusLine(); status != "" {
		bottom = append(bottom, status)
	}
	panels := lipgloss.JoinVertical(lipgloss.Left, bottom...)

	listHeight := contentHeight - panelHeight(panels)
	if listHeight < 1 {
		listHeight = 1
	}
	list := lipgloss.NewStyle().Height(listHeight).Render(m.renderList(listHeight))

	return lipgloss.JoinVertical(lipgloss.Left, list, panels)
}

// renderList renders the visible window of rows, keeping the selection in
// view.
func (m Model) renderList(height int) string {
	styles := m.theme.Styles()
	rows := m.view.Rows()

	if len(rows) == 0 {
		var msg string
		switch m.view.Load {
		case library.Loaded:
			msg = "No books yet"
		case library.LoadFailed:
			msg = "Could not load books"
		default:
			msg = "Loading books..."
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	start, end := visibleWindow(len(rows), m.selectedRow, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.selectedRow))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one book as "title by author - $price" plus markers for
// editing and outstanding requests.
func (m Model) renderRow(row library.Row, selected bool) string {
	styles := m.theme.Styles()

	text := rowText(row.Item)
	var marks []string
	if row.Editing {
		mark := "editing"
		if row.Dirty() {
			mark = "editing*"
		}
		marks = append(marks, mark)
	}
	if row.Updating {
		marks = append(marks, "saving")
	}
	if row.Deleting {
		marks = append(marks, "deleting")
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}
	line := cursor + fit(text, max(m.width-24, 10))
	if len(marks) > 0 {
		line = padCells(line, max(m.width-22, 12))
	}

	if selected {
		line = styles.Selected.Render(line)
	} else if row.Editing {
		line = styles.AccentText.Render(line)
	} else {
		line = styles.Text.Render(line)
	}
	if len(marks) > 0 {
		line += " " + styles.InfoText.Render("["+strings.Join(marks, ", ")+"]")
	}
	return line
}

// rowText formats a book the way it is listed.
func rowText(it books.Item) string {
	return it.Title + " by " + it.Author + " - $" + books.FormatPrice(it.Price)
}

// visibleWindow returns the [start,end) slice of n rows that fits height
// and contains selected.
func visibleWindow(n, selected, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
