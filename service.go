package dataapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DocumentService reads the document stored under a fixed key.
type DocumentService struct {
	opener StoreOpener
	key    string
}

// NewDocumentService returns a service that serves key from the stores
// produced by opener. The key is fixed for the lifetime of the service.
func NewDocumentService(opener StoreOpener, key string) (*DocumentService, error) {
	if opener == nil {
		return nil, errors.New("store opener cannot be nil")
	}

	if !IsValidKey(key) {
		return nil, fmt.Errorf("object key %q: %w", key, ErrInvalidInput)
	}

	return &DocumentService{
		opener: opener,
		key:    key,
	}, nil
}

// Key returns the object key served by s.
func (s *DocumentService) Key() string {
	return s.key
}

// Fetch opens a store session, reads the object once and returns it as
// compacted JSON.
//
// Errors:
//   - *StoreError with KindNotFound when the object does not exist
//   - *StoreError with KindOther for any other store failure
//   - ErrDecode when the object is not valid JSON
func (s *DocumentService) Fetch(ctx context.Context) (Document, error) {
	store, err := s.opener.Open(ctx)
	if err != nil {
		var se *StoreError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, NewStoreError(KindOther, "open store", s.key, err)
	}

	raw, err := store.Get(ctx, s.key)
	if err != nil {
		var se *StoreError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, NewStoreError(KindOther, "get object", s.key, err)
	}

	return decodeDocument(raw)
}

// utf8BOM may lead a document saved by editors on some platforms.
var utf8BOM = []byte("\xef\xbb\xbf")

func decodeDocument(raw []byte) (Document, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Document(buf.Bytes()), nil
}
