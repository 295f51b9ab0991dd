// Package ui implements folio's terminal interface with Bubble Tea.
//
// # Layout
//
//	header       folio, load state, book count, outstanding requests, API root
//	command bar  key hints for the focused area, current theme
//	list         one row per book: "title by author - $price"
//	edit form    shown while an edit session is open
//	new form     always visible; focused with "a"
//	status line  the last failed operation, dismissed with esc
//
// # State
//
// The Model never keeps its own copy of the collection. Every key press,
// command result and refresh tick re-reads library.View from the
// Controller, so what is drawn is always what the controller holds. The
// text inputs keep the raw strings the user typed and push each change to
// the controller's drafts, which parse them.
//
// Remote operations run as tea.Cmds, so the UI stays responsive while a
// request is outstanding. Rows with one show a [saving] or [deleting]
// marker. The refresh tick only re-reads local state; the collection is
// fetched once, by Init.
//
// # Focus
//
// Keys go to one of three areas. The list handles navigation and the
// a/e/d actions. The new form and the edit form pass every key except
// enter, tab, shift+tab and esc to the focused input. ctrl+c quits from
// anywhere.
//
// When an edit session ends without a key press (its commit completed, or
// the book was deleted) the edit form closes on the next refresh.
package ui
