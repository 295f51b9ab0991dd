package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/library"
)

type memoryRemote struct {
	mu      sync.Mutex
	items   []books.Item
	nextID  int
	fail    map[books.Op]error
	updates int
}

func (r *memoryRemote) List(context.Context) ([]books.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[books.OpLoad]; err != nil {
		return nil, err
	}
	return append([]books.Item(nil), r.items...), nil
}

func (r *memoryRemote) Create(_ context.Context, d books.Draft) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[books.OpCreate]; err != nil {
		return "", err
	}
	r.nextID++
	return fmt.Sprintf("n%d", r.nextID), nil
}

func (r *memoryRemote) Update(context.Context, string, books.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	return r.fail[books.OpUpdate]
}

func (r *memoryRemote) Delete(context.Context, string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fail[books.OpDelete]
}

func newTestModel(t *testing.T, r *memoryRemote) Model {
	t.Helper()
	if r.fail == nil {
		r.fail = map[books.Op]error{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := library.New(r, library.Options{Logger: logger})
	m := New(context.Background(), Options{
		Controller: ctrl,
		Logger:     logger,
		APIURL:     "http://localhost:8080",
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	return exec(t, m, m.loadCmd())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys in order and returns the command from the last one.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		next, c := m.Update(keyMsg(k))
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

// exec runs cmd and feeds its message back into the model.
func exec(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

var (
	dune = books.Item{ID: "1", Title: "Dune", Author: "Herbert", Price: 10}
	emma = books.Item{ID: "2", Title: "Emma", Author: "Austen", Price: 7}
)

func TestModel_LoadRendersRows(t *testing.T) {
	m := newTestModel(t, &memoryRemote{items: []books.Item{dune, emma}})

	if m.view.Load != library.Loaded {
		t.Fatalf("Load = %v, want loaded", m.view.Load)
	}
	out := m.View()
	for _, want := range []string{"Dune by Herbert - $10", "Emma by Austen - $7", "Books: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q:\n%s", want, out)
		}
	}
	if m.selectedID != "1" {
		t.Fatalf("selectedID = %q, want first row", m.selectedID)
	}
}

func TestModel_LoadFailureShowsStatus(t *testing.T) {
	m := newTestModel(t, &memoryRemote{fail: map[books.Op]error{books.OpLoad: errors.New("connection refused")}})

	out := m.View()
	if !strings.Contains(out, "load failed") || !strings.Contains(out, "connection refused") {
		t.Fatalf("View() = %s, want load failure", out)
	}

	m, _ = press(m, "esc")
	if m.view.LastFailure != nil {
		t.Fatalf("LastFailure = %v, want dismissed", m.view.LastFailure)
	}
}

func TestModel_AddBookThroughForm(t *testing.T) {
	m := newTestModel(t, &memoryRemote{items: []books.Item{dune}})

	m, _ = press(m, "a", "Foo", "tab", "Bar", "tab", "5")
	if m.focus != focusNew {
		t.Fatalf("focus = %v, want new form", m.focus)
	}
	if got := m.view.NewDraft; got.Title != "Foo" || got.Author != "Bar" || got.Price != 5 {
		t.Fatalf("NewDraft = %+v, want typed values", got)
	}

	m, cmd := press(m, "enter")
	m = exec(t, m, cmd)

	if n := len(m.view.Items); n != 2 {
		t.Fatalf("Items = %d, want 2", n)
	}
	if got := m.view.Items[1]; got.ID != "n1" || got.Title != "Foo" {
		t.Fatalf("appended = %+v, want Foo with id n1", got)
	}
	if v := m.newForm.value(books.FieldTitle); v != "" {
		t.Fatalf("title input = %q, want cleared", v)
	}
	if !strings.Contains(m.View(), "Foo by Bar - $5") {
		t.Fatalf("View() missing new row")
	}
}

func TestModel_FormKeepsDraftOnEscAndFailure(t *testing.T) {
	r := &memoryRemote{fail: map[books.Op]error{books.OpCreate: errors.New("boom")}}
	m := newTestModel(t, r)

	// "d" and "a" are list keys; inside the form they are text.
	m, _ = press(m, "a", "dad", "esc")
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list after esc", m.focus)
	}
	if m.view.NewDraft.Title != "dad" {
		t.Fatalf("NewDraft.Title = %q, want draft kept", m.view.NewDraft.Title)
	}

	m, cmd := press(m, "a", "enter")
	m = exec(t, m, cmd)
	if len(m.view.Items) != 0 {
		t.Fatalf("Items = %v, want none after failed create", m.view.Items)
	}
	if v := m.newForm.value(books.FieldTitle); v != "dad" {
		t.Fatalf("title input = %q, want kept after failure", v)
	}
	if !strings.Contains(m.View(), "create failed") {
		t.Fatalf("View() missing create failure")
	}
}

func TestModel_InvalidPriceShowsNaN(t *testing.T) {
	m := newTestModel(t, &memoryRemote{})

	m, _ = press(m, "a", "X", "tab", "Y", "tab", "abc")
	if !math.IsNaN(m.view.NewDraft.Price) {
		t.Fatalf("NewDraft.Price = %v, want NaN", m.view.NewDraft.Price)
	}
	m, cmd := press(m, "enter")
	m = exec(t, m, cmd)
	if !strings.Contains(m.View(), "X by Y - $NaN") {
		t.Fatalf("View() missing NaN row:\n%s", m.View())
	}
}

func TestModel_EditCommit(t *testing.T) {
	m := newTestModel(t, &memoryRemote{items: []books.Item{dune, emma}})

	m, _ = press(m, "down", "e")
	if m.focus != focusEdit || m.editID != "2" {
		t.Fatalf("focus/editID = %v/%q, want edit of 2", m.focus, m.editID)
	}
	if v := m.editForm.value(books.FieldPrice); v != "7" {
		t.Fatalf("price input = %q, want 7", v)
	}

	m, _ = press(m, "ctrl+u", "Persuasion")
	if !strings.Contains(m.View(), "Persuasion by Austen - $7") {
		t.Fatalf("edited row should render from the draft:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "editing*") {
		t.Fatalf("View() missing dirty marker")
	}

	m, cmd := press(m, "enter")
	m = exec(t, m, cmd)

	if m.focus != focusList {
		t.Fatalf("focus = %v, want list after commit", m.focus)
	}
	if got := m.view.Items[1].Title; got != "Persuasion" {
		t.Fatalf("Items[1].Title = %q, want Persuasion", got)
	}
}

func TestModel_EditFailureKeepsForm(t *testing.T) {
	r := &memoryRemote{items: []books.Item{dune}, fail: map[books.Op]error{books.OpUpdate: errors.New("boom")}}
	m := newTestModel(t, r)

	m, _ = press(m, "e", "tab", "tab", "ctrl+u", "12")
	m, cmd := press(m, "enter")
	m = exec(t, m, cmd)

	if m.focus != focusEdit {
		t.Fatalf("focus = %v, want edit form kept", m.focus)
	}
	if m.view.Session.Draft.Price != 12 {
		t.Fatalf("draft price = %v, want 12", m.view.Session.Draft.Price)
	}
	if m.view.Items[0].Price != 10 {
		t.Fatalf("stored price = %v, want unchanged 10", m.view.Items[0].Price)
	}
}

func TestModel_EscCancelsEdit(t *testing.T) {
	r := &memoryRemote{items: []books.Item{dune}}
	m := newTestModel(t, r)

	m, _ = press(m, "e", "ctrl+u", "Other", "esc")
	if m.focus != focusList || m.view.Editing {
		t.Fatalf("focus/editing = %v/%v, want list without session", m.focus, m.view.Editing)
	}
	if m.view.Items[0].Title != "Dune" {
		t.Fatalf("Title = %q, want unchanged", m.view.Items[0].Title)
	}
	if r.updates != 0 {
		t.Fatalf("updates = %d, want none", r.updates)
	}
}

func TestModel_DeleteMovesSelection(t *testing.T) {
	m := newTestModel(t, &memoryRemote{items: []books.Item{dune, emma}})

	m, cmd := press(m, "d")
	m = exec(t, m, cmd)

	if len(m.view.Items) != 1 || m.view.Items[0].ID != "2" {
		t.Fatalf("Items = %v, want only Emma", m.view.Items)
	}
	if m.selectedID != "2" || m.selectedRow != 0 {
		t.Fatalf("selection = %q@%d, want 2@0", m.selectedID, m.selectedRow)
	}
}

func TestModel_DeleteClosesEditOnSameBook(t *testing.T) {
	m := newTestModel(t, &memoryRemote{items: []books.Item{dune}})

	m, _ = press(m, "e")
	cmd := m.deleteCmd("1")
	m = exec(t, m, cmd)

	if m.focus != focusList || m.view.Editing {
		t.Fatalf("focus/editing = %v/%v, want edit closed", m.focus, m.view.Editing)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, &memoryRemote{})
	before := m.theme.Name

	m, cmd := press(m, "T")
	if m.theme.Name == before {
		t.Fatalf("theme = %q, want changed", m.theme.Name)
	}
	m = exec(t, m, cmd)
	if m.notice != "" {
		t.Fatalf("notice = %q, want none", m.notice)
	}

	raw, err := os.ReadFile(m.prefsPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), m.theme.Name) {
		t.Fatalf("prefs = %q, want theme %q", raw, m.theme.Name)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &memoryRemote{})

	m, _ = press(m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m, _ = press(m, "x")
	if m.showHelp {
		t.Fatalf("help overlay should close on any key")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, &memoryRemote{})

	_, cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatalf("ctrl+c returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}

	// q is text inside a form.
	m, _ = press(m, "a")
	_, cmd = press(m, "q")
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("q inside the form should not quit")
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	cases := []struct {
		n, selected, height int
		start, end          int
	}{
		{5, 0, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tc := range cases {
		start, end := visibleWindow(tc.n, tc.selected, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleWindow(%d, %d, %d) = %d,%d, want %d,%d",
				tc.n, tc.selected, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestFit(t *testing.T) {
	if got := fit("abcdefgh", 6); got != "abc..." {
		t.Fatalf("fit = %q, want abc...", got)
	}
	if got := fitMiddle("http://example.com/api", 10); len([]rune(got)) != 10 {
		t.Fatalf("fitMiddle = %q, want 10 runes", got)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}
