package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/books"
)

// form is a three-field book form. The inputs hold the raw text; the
// controller holds the parsed draft.
type form struct {
	title    string
	inputs   [3]textinput.Model
	fields   [3]books.Field
	focusIdx int
	focused  bool
}

func newForm(title string) form {
	f := form{title: title}
	placeholders := [3]string{"e.g. Dune", "e.g. Frank Herbert", "e.g. 9.99"}
	for i, field := range books.AllFields() {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = FieldCharLimit
		in.Width = FieldWidth
		f.inputs[i] = in
		f.fields[i] = field
	}
	return f
}

// fill sets every input from d.
func (f *form) fill(d books.Draft) {
	for i, field := range f.fields {
		f.inputs[i].SetValue(d.Get(field))
		f.inputs[i].CursorEnd()
	}
}

// reset clears every input but keeps focus where it is.
func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

// focusAt focuses input idx and blurs the others.
func (f *form) focusAt(idx int) tea.Cmd {
	f.focused = true
	f.focusIdx = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *form) next() tea.Cmd {
	return f.focusAt((f.focusIdx + 1) % len(f.inputs))
}

func (f *form) prev() tea.Cmd {
	return f.focusAt((f.focusIdx - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// update feeds msg to the focused input and reports which field changed.
func (f *form) update(msg tea.Msg) (books.Field, string, tea.Cmd, bool) {
	before := f.inputs[f.focusIdx].Value()
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	after := f.inputs[f.focusIdx].Value()
	return f.fields[f.focusIdx], after, cmd, after != before
}

// value returns the raw text of field.
func (f form) value(field books.Field) string {
	for i, fl := range f.fields {
		if fl == field {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// render draws the form as a bordered panel. hint is shown under the
// inputs.
func (f form) render(theme Theme, width int, hint string) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")

	labels := [3]string{"Title:  ", "Author: ", "Price:  "}
	for i := range f.inputs {
		label := labels[i]
		if f.focused && f.focusIdx == i {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render(hint))

	panel := styles.Panel
	if f.focused {
		panel = styles.FocusedPanel
	}
	// Border and padding take four columns.
	return panel.Width(max(width-4, FieldWidth)).Render(b.String())
}

// formHint returns the key hint line for a focused or idle form.
func formHint(focused bool, idle string) string {
	if !focused {
		return idle
	}
	return strings.Join([]string{"enter: save", "tab: next field", "esc: leave"}, "  •  ")
}

// panelHeight is the rendered height of a form panel.
func panelHeight(panel string) int {
	return lipgloss.Height(panel)
}
