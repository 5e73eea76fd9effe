package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultObjectKey is the key of the document served by /data.
const DefaultObjectKey = "input/sample2.json"

// Document is a stored object that has been validated as JSON.
type Document = json.RawMessage

// ObjectStore is the get-by-key contract of the backing object store.
// Implementations return a *StoreError on failure.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// StoreOpener establishes a store session. DocumentService calls Open once
// per read so no session is shared between requests.
type StoreOpener interface {
	Open(ctx context.Context) (ObjectStore, error)
}

// OpenerFunc adapts a function to StoreOpener.
type OpenerFunc func(ctx context.Context) (ObjectStore, error)

// Open calls f(ctx).
func (f OpenerFunc) Open(ctx context.Context) (ObjectStore, error) {
	return f(ctx)
}

// Backend names an ObjectStore implementation.
type Backend string

// Supported backends.
const (
	BackendS3         Backend = "s3"
	BackendFilesystem Backend = "filesystem"
)

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendS3, BackendFilesystem:
		return true
	default:
		return false
	}
}

// ParseBackend converts s to a Backend, rejecting unknown names.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid store backend: %s (valid backends: s3, filesystem)", s)
	}
	return b, nil
}
