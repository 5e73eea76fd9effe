// Package filesystem provides a local directory backend for dataapi.
// Keys are resolved inside an os.Root so a key can never escape the
// configured directory. It is meant for local development.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sagarc03/dataapi"
)

// Store reads objects from a directory.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Get reads the file stored under key. A missing file, or a directory, is
// reported as a KindNotFound store error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dataapi.NewStoreError(dataapi.KindNotFound, "get object", key, err)
		}
		return nil, dataapi.NewStoreError(dataapi.KindOther, "get object", key, fmt.Errorf("failed to open file: %w", err))
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, dataapi.NewStoreError(dataapi.KindOther, "get object", key, fmt.Errorf("failed to stat file: %w", err))
	}
	if info.IsDir() {
		return nil, dataapi.NewStoreError(dataapi.KindNotFound, "get object", key, nil)
	}

	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, dataapi.NewStoreError(dataapi.KindOther, "read object body", key, err)
	}

	return data, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Opener hands out stores over one directory.
type Opener struct {
	root *os.Root
}

// Open opens dir as the root of the returned Opener.
func Open(dir string) (*Opener, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}
	return &Opener{root: root}, nil
}

// Open returns a Store over the opener's directory.
func (o *Opener) Open(ctx context.Context) (dataapi.ObjectStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewFileStorage(o.root), nil
}

// Close releases the directory handle.
func (o *Opener) Close() error {
	return o.root.Close()
}
