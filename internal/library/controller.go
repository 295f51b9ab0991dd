package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/five82/folio/internal/books"
	"github.com/five82/folio/internal/session"
	"github.com/five82/folio/internal/state"
)

// Remote is the books store the controller synchronizes with.
// *remote.Client implements it.
type Remote interface {
	List(ctx context.Context) ([]books.Item, error)
	Create(ctx context.Context, d books.Draft) (string, error)
	Update(ctx context.Context, id string, d books.Draft) error
	Delete(ctx context.Context, id string) error
}

var (
	ErrAlreadyLoaded = errors.New("collection already loaded")
	ErrInFlight      = errors.New("request already in flight")
)

// LoadState tracks the one-time initial load.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load failed"
	default:
		return "not loaded"
	}
}

// Options configure a Controller.
type Options struct {
	Logger *slog.Logger

	// GuardInFlight rejects a create while another create is outstanding,
	// and an update or delete of an id that already has one outstanding.
	GuardInFlight bool

	// StrictPrice rejects a draft whose price is NaN, infinite or negative
	// before any request is made.
	StrictPrice bool
}

type pendingKey struct {
	op books.Op
	id string
}

// Controller owns the local collection, the edit session and the new-item
// draft. Local state changes only after the remote store confirms an
// operation. It is safe for concurrent use; no lock is held while a
// request is in flight.
type Controller struct {
	remote Remote
	logger *slog.Logger
	guard  bool
	strict bool

	mu          sync.Mutex
	store       state.Store
	editor      session.Editor
	load        LoadState
	pending     map[pendingKey]int
	lastFailure error
}

// New builds a Controller backed by r.
func New(r Remote, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		remote:  r,
		logger:  logger,
		guard:   opts.GuardInFlight,
		strict:  opts.StrictPrice,
		pending: make(map[pendingKey]int),
	}
}

// Load fetches the collection and replaces the local list with it. It runs
// at most once; later calls return ErrAlreadyLoaded without a request. On
// failure the list stays empty and nothing is retried.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.load != NotLoaded {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.load = Loading
	c.mu.Unlock()

	items, err := c.remote.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.load = LoadFailed
		return c.failLocked(books.OpLoad, "", err)
	}
	dropped := c.store.Replace(items)
	c.load = Loaded
	if len(dropped) > 0 {
		c.logger.Warn("dropped books without a unique id", "op", books.OpLoad, "ids", dropped)
	}
	c.logger.Info("collection loaded", "op", books.OpLoad, "count", c.store.Len())
	return nil
}

// UpdateNewField stages raw into the new-item draft.
func (c *Controller) UpdateNewField(name, raw string) error {
	field, err := books.ParseField(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.SetNewField(field, raw)
}

// Submit sends the new-item draft to the remote store. On success the new
// book is appended and the draft is reset; on failure both are unchanged.
func (c *Controller) Submit(ctx context.Context) (books.Item, error) {
	c.mu.Lock()
	draft := c.editor.NewDraft()
	if err := c.checkLocked(books.OpCreate, "", draft); err != nil {
		c.mu.Unlock()
		return books.Item{}, err
	}
	done := c.beginLocked(books.OpCreate, "")
	c.mu.Unlock()

	item, err := c.create(ctx, draft)
	done()
	return item, err
}

func (c *Controller) create(ctx context.Context, draft books.Draft) (books.Item, error) {
	id, err := c.remote.Create(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return books.Item{}, c.failLocked(books.OpCreate, "", err)
	}
	if id == "" {
		return books.Item{}, c.failLocked(books.OpCreate, "", books.ErrMissingID)
	}
	item := books.Item{ID: id}.WithFields(draft)
	if err := c.store.Append(item); err != nil {
		return books.Item{}, c.failLocked(books.OpCreate, id, err)
	}
	c.editor.ResetNew()
	c.logger.Info("book created", "op", books.OpCreate, "id", id)
	return item, nil
}

// BeginEdit opens an edit session on the book with the given id, with a
// draft copied from its current fields. An active session on any book is
// replaced and its draft discarded.
func (c *Controller) BeginEdit(id string) (session.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.store.Get(id)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: %s", books.ErrNotFound, id)
	}
	cur, prev, replaced := c.editor.Begin(item)
	if replaced {
		c.logger.Debug("edit session replaced",
			"previous_id", prev.TargetID,
			"id", cur.TargetID,
		)
	}
	return cur, nil
}

// UpdateDraftField stages raw into the active edit draft.
func (c *Controller) UpdateDraftField(name, raw string) error {
	field, err := books.ParseField(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.SetField(field, raw)
}

// Cancel discards the active edit session without contacting the store.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.Cancel()
}

// Commit sends the active draft as a replacement for the target book. On
// success the book is updated in place and the session that issued the
// commit ends; on failure the session stays open with its draft.
func (c *Controller) Commit(ctx context.Context) error {
	c.mu.Lock()
	s, ok := c.editor.Active()
	if !ok {
		c.mu.Unlock()
		return session.ErrNotEditing
	}
	if err := c.checkLocked(books.OpUpdate, s.TargetID, s.Draft); err != nil {
		c.mu.Unlock()
		return err
	}
	done := c.beginLocked(books.OpUpdate, s.TargetID)
	c.mu.Unlock()

	err := c.update(ctx, s)
	done()
	return err
}

func (c *Controller) update(ctx context.Context, s session.Session) error {
	err := c.remote.Update(ctx, s.TargetID, s.Draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.failLocked(books.OpUpdate, s.TargetID, err)
	}
	if !c.store.Merge(s.TargetID, s.Draft) {
		c.logger.Warn("updated book is no longer listed", "op", books.OpUpdate, "id", s.TargetID)
	}
	c.editor.End(s.Token)
	c.logger.Info("book updated", "op", books.OpUpdate, "id", s.TargetID)
	return nil
}

// Delete asks the store to remove the book with the given id and drops it
// from the local list once confirmed. An edit session on that book ends.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if err := c.guardLocked(books.OpDelete, id); err != nil {
		c.mu.Unlock()
		return err
	}
	done := c.beginLocked(books.OpDelete, id)
	c.mu.Unlock()
	defer done()

	err := c.remote.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.failLocked(books.OpDelete, id, err)
	}
	c.store.Remove(id)
	if c.editor.EndFor(id) {
		c.logger.Debug("edit session closed by delete", "id", id)
	}
	c.logger.Info("book deleted", "op", books.OpDelete, "id", id)
	return nil
}

// ClearFailure forgets the last reported failure.
func (c *Controller) ClearFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFailure = nil
}

// checkLocked applies the optional price and in-flight guards.
func (c *Controller) checkLocked(op books.Op, id string, d books.Draft) error {
	if c.strict {
		if err := d.Validate(); err != nil {
			c.lastFailure = err
			return err
		}
	}
	return c.guardLocked(op, id)
}

func (c *Controller) guardLocked(op books.Op, id string) error {
	if c.guard && c.pending[pendingKey{op, id}] > 0 {
		return fmt.Errorf("%w: %s %s", ErrInFlight, op, id)
	}
	return nil
}

// beginLocked marks a request as outstanding and returns the func that
// clears the mark.
func (c *Controller) beginLocked(op books.Op, id string) func() {
	key := pendingKey{op, id}
	c.pending[key]++
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.pending[key]--; c.pending[key] <= 0 {
			delete(c.pending, key)
		}
	}
}

func (c *Controller) failLocked(op books.Op, id string, err error) error {
	fail := books.Fail(op, id, err)
	c.lastFailure = fail
	c.logger.Error("operation failed", "op", op, "id", id, "error", err)
	return fail
}
