package library

import (
	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/session"
)

// View is a point-in-time copy of the controller state for rendering.
type View struct {
	Items       []books.Item
	Session     session.Session
	Editing     bool
	NewDraft    books.Draft
	Load        LoadState
	Creating    bool
	Updating    map[string]bool
	Deleting    map[string]bool
	LastFailure error
}

// Row is one displayed book. While a book is being edited its fields come
// from the draft and Stored holds the confirmed values.
type Row struct {
	books.Item
	Stored   books.Item
	Editing  bool
	Updating bool
	Deleting bool
}

// Dirty reports whether the draft differs from the stored fields.
func (r Row) Dirty() bool {
	return r.Editing && !r.Item.Fields().Equal(r.Stored.Fields())
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Items:       c.store.Items(),
		NewDraft:    c.editor.NewDraft(),
		Load:        c.load,
		Updating:    make(map[string]bool),
		Deleting:    make(map[string]bool),
		LastFailure: c.lastFailure,
	}
	v.Session, v.Editing = c.editor.Active()
	for key := range c.pending {
		switch key.op {
		case books.OpCreate:
			v.Creating = true
		case books.OpUpdate:
			v.Updating[key.id] = true
		case books.OpDelete:
			v.Deleting[key.id] = true
		}
	}
	return v
}

// Rows overlays the edit draft on the listed books, in list order.
func (v View) Rows() []Row {
	rows := make([]Row, 0, len(v.Items))
	for _, it := range v.Items {
		row := Row{
			Item:     it,
			Stored:   it,
			Updating: v.Updating[it.ID],
			Deleting: v.Deleting[it.ID],
		}
		if v.Editing && v.Session.TargetID == it.ID {
			row.Item = it.WithFields(v.Session.Draft)
			row.Editing = true
		}
		rows = append(rows, row)
	}
	return rows
}

// Index returns the list position of id, or -1.
func (v View) Index(id string) int {
	for i, it := range v.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
