package s3store

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/sagarc03/dataapi"
)

const codeNoSuchKey = "NoSuchKey"

// API is the subset of the S3 client used by Store.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ API = (*s3.Client)(nil)

// Store reads objects from a single bucket.
type Store struct {
	api    API
	bucket string
}

// New returns a Store reading from bucket through api.
func New(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// Get downloads the whole object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.api == nil {
		return nil, dataapi.NewStoreError(dataapi.KindOther, "get object", key, errors.New("s3 api client is not configured"))
	}

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, dataapi.NewStoreError(classify(err), "get object", key, err)
	}
	if out == nil || out.Body == nil {
		return nil, dataapi.NewStoreError(dataapi.KindOther, "get object", key, errors.New("empty response body"))
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, dataapi.NewStoreError(dataapi.KindOther, "read object body", key, err)
	}

	return data, nil
}

func classify(err error) dataapi.ErrorKind {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return dataapi.KindNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == codeNoSuchKey {
		return dataapi.KindNotFound
	}

	return dataapi.KindOther
}
