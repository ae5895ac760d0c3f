package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every EntityNotFoundError through errors.Is.
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownType is returned by Open for a backend type it does not know.
	ErrUnknownType = errors.New("unknown store type")

	// ErrInvalidSort is returned by ParseSort.
	ErrInvalidSort = errors.New("invalid sort direction")
)

// EntityNotFoundError is the only domain error a store produces. EntityID is
// the text form of the key that missed.
type EntityNotFoundError struct {
	EntityID string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity with id %s was not found", e.EntityID)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound[K comparable](id K) error {
	return &EntityNotFoundError{EntityID: keyText(id)}
}

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError wraps backend failures (I/O, encoding) with the operation and key
// that triggered them.
type StoreError struct {
	Operation string
	EntityID  string
	Err       error
}

func (e *StoreError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Operation, e.EntityID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func keyText[K comparable](id K) string {
	return fmt.Sprint(id)
}
