package books

import (
	"errors"
	"fmt"
)

// Op identifies a remote operation against the collection.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var (
	ErrLoad   = errors.New("load failed")
	ErrCreate = errors.New("create failed")
	ErrUpdate = errors.New("update failed")
	ErrDelete = errors.New("delete failed")

	ErrUnknownField = errors.New("unknown field")
	ErrInvalidPrice = errors.New("invalid price")
	ErrNotFound     = errors.New("book not found")
	ErrDuplicateID  = errors.New("duplicate book id")
	ErrMissingID    = errors.New("missing book id")
)

// Failure is an operation failure. It matches the sentinel for its Op with
// errors.Is and unwraps to the underlying transport or status error.
type Failure struct {
	Op  Op
	ID  string
	Err error
}

// Fail wraps err as a Failure for op. A nil err returns nil.
func Fail(op Op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Op: op, ID: id, Err: err}
}

func (f *Failure) Error() string {
	if f.ID != "" {
		return fmt.Sprintf("%s %s: %v", f.sentinel(), f.ID, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.sentinel(), f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the operation's sentinel.
func (f *Failure) Is(target error) bool {
	s := f.sentinel()
	return s != nil && target == s
}

func (f *Failure) sentinel() error {
	switch f.Op {
	case OpLoad:
		return ErrLoad
	case OpCreate:
		return ErrCreate
	case OpUpdate:
		return ErrUpdate
	case OpDelete:
		return ErrDelete
	}
	return nil
}
