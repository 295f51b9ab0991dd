package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/library"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/session"
)

// Controller is the part of library.Controller the UI drives.
type Controller interface {
	Load(ctx context.Context) error
	Snapshot() library.View
	UpdateNewField(name, raw string) error
	Submit(ctx context.Context) (books.Item, error)
	BeginEdit(id string) (session.Session, error)
	UpdateDraftField(name, raw string) error
	Cancel() error
	Commit(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	ClearFailure()
}

// focus is the part of the screen receiving keys.
type focus int

const (
	focusList focus = iota
	focusNew
	focusEdit
)

// Options configures the UI.
type Options struct {
	Controller Controller
	Logger     *slog.Logger
	APIURL     string
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      Controller
	logger    *slog.Logger
	apiURL    string
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  focus

	// Data state
	view library.View

	// List state
	selectedRow int
	selectedID  string

	// Forms
	newForm  form
	editForm form
	editID   string

	// Help overlay
	showHelp bool

	// Transient message for UI-local problems (e.g. prefs not saved)
	notice string
}

// New creates a new Bubble Tea model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themes[0].Name
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		logger:    logger,
		apiURL:    opts.APIURL,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		newForm:   newForm("New book"),
		editForm:  newForm("Edit book"),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		tickCmd(RefreshInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		next.refresh()
		return next, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd(RefreshInterval)

	case loadedMsg:
		m.refresh()
		return m, nil

	case createdMsg:
		if msg.err == nil {
			m.newForm.reset()
		}
		m.refresh()
		return m, nil

	case committedMsg:
		m.refresh()
		return m, nil

	case deletedMsg:
		m.refresh()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.notice = "theme not saved: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.focus {
	case focusNew:
		return m.handleNewFormKey(msg)
	case focusEdit:
		return m.handleEditFormKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keyboard input while the list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := len(m.view.Items)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, savePrefsCmd(m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Add):
		m.notice = ""
		m.focus = focusNew
		return m, m.newForm.focusAt(m.newForm.focusIdx)

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Delete):
		id := m.selectedID
		if id == "" {
			return m, nil
		}
		return m, m.deleteCmd(id)

	case key.Matches(msg, m.keys.Escape):
		m.ctrl.ClearFailure()
		m.notice = ""
		return m, nil
	}

	if rows == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < rows-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = rows - 1
	}
	m.selectedID = m.view.Items[m.selectedRow].ID
	return m, nil
}

// beginEdit opens an edit session on the selected book and fills the edit
// form from the session draft.
func (m Model) beginEdit() (Model, tea.Cmd) {
	if m.selectedID == "" {
		return m, nil
	}
	s, err := m.ctrl.BeginEdit(m.selectedID)
	if err != nil {
		m.logger.Debug("begin edit rejected", "id", m.selectedID, "error", err)
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	m.editID = s.TargetID
	m.editForm.fill(s.Draft)
	m.focus = focusEdit
	return m, m.editForm.focusAt(0)
}

// handleNewFormKey processes keyboard input for the new-book form. Leaving
// the form keeps the draft.
func (m Model) handleNewFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.newForm.blur()
		m.focus = focusList
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.submitCmd()

	case key.Matches(msg, m.keys.NextField):
		return m, m.newForm.next()

	case key.Matches(msg, m.keys.PrevField):
		return m, m.newForm.prev()
	}

	field, raw, cmd, changed := m.newForm.update(msg)
	if changed {
		if err := m.ctrl.UpdateNewField(string(field), raw); err != nil {
			m.logger.Debug("new draft field rejected", "field", field, "error", err)
		}
	}
	return m, cmd
}

// handleEditFormKey processes keyboard input for the edit form. Escape
// cancels the session.
func (m Model) handleEditFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if err := m.ctrl.Cancel(); err != nil {
			m.logger.Debug("cancel edit", "error", err)
		}
		m.leaveEdit()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.commitCmd()

	case key.Matches(msg, m.keys.NextField):
		return m, m.editForm.next()

	case key.Matches(msg, m.keys.PrevField):
		return m, m.editForm.prev()
	}

	field, raw, cmd, changed := m.editForm.update(msg)
	if changed {
		if err := m.ctrl.UpdateDraftField(string(field), raw); err != nil {
			m.logger.Debug("edit draft field rejected", "field", field, "error", err)
		}
	}
	return m, cmd
}

func (m *Model) leaveEdit() {
	m.editForm.blur()
	m.editID = ""
	m.focus = focusList
}

// refresh re-reads the controller and keeps the selection on the same book
// when it is still listed.
func (m *Model) refresh() {
	if m.ctrl == nil {
		return
	}
	m.view = m.ctrl.Snapshot()

	// The session can end without a key press: a commit completing or the
	// edited book being deleted.
	if m.focus == focusEdit && (!m.view.Editing || m.view.Session.TargetID != m.editID) {
		m.leaveEdit()
	}

	count := len(m.view.Items)
	if count == 0 {
		m.selectedRow = 0
		m.selectedID = ""
		return
	}
	if m.selectedID != "" {
		if idx := m.view.Index(m.selectedID); idx >= 0 {
			m.selectedRow = idx
			return
		}
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	m.selectedID = m.view.Items[m.selectedRow].ID
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// Messages

type tickMsg time.Time

type loadedMsg struct{ err error }

type createdMsg struct {
	item books.Item
	err  error
}

type committedMsg struct {
	id  string
	err error
}

type deletedMsg struct {
	id  string
	err error
}

type prefsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		item, err := ctrl.Submit(ctx)
		return createdMsg{item: item, err: err}
	}
}

func (m Model) commitCmd() tea.Cmd {
	ctx, ctrl, id := m.ctx, m.ctrl, m.editID
	return func() tea.Msg {
		return committedMsg{id: id, err: ctrl.Commit(ctx)}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return deletedMsg{id: id, err: ctrl.Delete(ctx, id)}
	}
}

func savePrefsCmd(path, theme string) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, prefs.Prefs{Theme: theme})}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
