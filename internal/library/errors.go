package library

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate matches any *DuplicateError.
	ErrDuplicate = errors.New("duplicate action")
	// ErrIndex matches any *IndexError.
	ErrIndex = errors.New("position out of range")
	// ErrNotFound reports a reference that names no stored action.
	ErrNotFound = errors.New("action not found")
	// ErrClosed reports a mutation after Close.
	ErrClosed = errors.New("library closed")
)

// DuplicateError reports raw JSON that is already stored.
type DuplicateError struct {
	Name     string // display name of the existing action
	Position int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate action: already stored as %q (position %d)", e.Name, e.Position)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// IndexError reports a stale or out-of-range position.
type IndexError struct {
	Position int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("position %d out of range [0,%d)", e.Position, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// PersistenceError wraps a failed gateway load or save.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
