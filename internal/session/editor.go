// Package session tracks the single edit session and the new-item draft.
package session

import (
	"errors"

	"github.com/five82/folio/internal/books"
)

// ErrNotEditing is returned by operations that need an active session.
var ErrNotEditing = errors.New("no book is being edited")

// Phase is the edit-session state.
type Phase int

const (
	Idle Phase = iota
	Editing
)

func (p Phase) String() string {
	if p == Editing {
		return "editing"
	}
	return "idle"
}

// Session is a copy of the active edit session. Token identifies the
// session so a late commit result can tell whether it still owns it.
type Session struct {
	TargetID string
	Draft    books.Draft
	Token    uint64
}

// Editor holds the single edit-session slot and the new-item draft.
// It does no locking; the owner serializes access.
type Editor struct {
	target   string
	draft    books.Draft
	token    uint64
	newDraft books.Draft
}

// Phase reports whether a session is active.
func (e *Editor) Phase() Phase {
	if e.target == "" {
		return Idle
	}
	return Editing
}

// Active returns the current session.
func (e *Editor) Active() (Session, bool) {
	if e.target == "" {
		return Session{}, false
	}
	return Session{TargetID: e.target, Draft: e.draft, Token: e.token}, true
}

// Begin starts a session on item with a draft copied from its fields. An
// already active session is replaced and returned as prev.
func (e *Editor) Begin(item books.Item) (cur Session, prev Session, replaced bool) {
	prev, replaced = e.Active()
	e.token++
	e.target = item.ID
	e.draft = item.Fields()
	return Session{TargetID: e.target, Draft: e.draft, Token: e.token}, prev, replaced
}

// SetField stages raw into the active draft.
func (e *Editor) SetField(field books.Field, raw string) error {
	if e.target == "" {
		return ErrNotEditing
	}
	next := e.draft
	if err := next.Set(field, raw); err != nil {
		return err
	}
	e.draft = next
	return nil
}

// Cancel discards the active session.
func (e *Editor) Cancel() error {
	if e.target == "" {
		return ErrNotEditing
	}
	e.clear()
	return nil
}

// End closes the session identified by token. It reports false when that
// session is no longer the active one.
func (e *Editor) End(token uint64) bool {
	if e.target == "" || e.token != token {
		return false
	}
	e.clear()
	return true
}

// EndFor closes the active session if it targets id.
func (e *Editor) EndFor(id string) bool {
	if e.target == "" || e.target != id {
		return false
	}
	e.clear()
	return true
}

func (e *Editor) clear() {
	e.target = ""
	e.draft = books.Draft{}
}

// NewDraft returns the staged new-item fields.
func (e *Editor) NewDraft() books.Draft {
	return e.newDraft
}

// SetNewField stages raw into the new-item draft.
func (e *Editor) SetNewField(field books.Field, raw string) error {
	next := e.newDraft
	if err := next.Set(field, raw); err != nil {
		return err
	}
	e.newDraft = next
	return nil
}

// ResetNew clears the new-item draft back to empty values.
func (e *Editor) ResetNew() {
	e.newDraft = books.Draft{}
}
