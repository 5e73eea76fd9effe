package dataapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested object does not exist
	ErrNotFound = errors.New("not found")
	// ErrDecode is returned when a stored object is not valid JSON
	ErrDecode = errors.New("invalid json document")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind classifies failures reported by an ObjectStore.
type ErrorKind int

const (
	// KindOther covers every store failure that is not a missing object:
	// permissions, network, throttling, bucket misconfiguration.
	KindOther ErrorKind = iota
	// KindNotFound means the key does not exist in the bucket.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// StoreError is the error type returned by ObjectStore implementations.
// Kind is decided once by the store so callers never inspect provider errors.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Key  string
	Err  error
}

// NewStoreError wraps err with the given kind.
func NewStoreError(kind ErrorKind, op, key string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Key: key, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q: %s", e.Op, e.Key, e.Kind)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrNotFound for KindNotFound so errors.Is works across wrapping.
func (e *StoreError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// KindOf returns the ErrorKind carried by err. Errors that are not a
// StoreError are KindNotFound only when they wrap ErrNotFound.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindOther
}
