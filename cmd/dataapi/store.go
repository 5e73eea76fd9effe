package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/sagarc03/dataapi"
	"github.com/sagarc03/dataapi/config"
	"github.com/sagarc03/dataapi/filesystem"
	"github.com/sagarc03/dataapi/s3store"
)

func addStoreFlags(fs *pflag.FlagSet) {
	fs.String("backend", "", "store backend: s3, filesystem (env: DATAAPI_STORE_BACKEND)")
	fs.String("bucket", "", "S3 bucket (env: S3_BUCKET)")
	fs.String("region", "", "S3 region (env: AWS_REGION)")
	fs.String("profile", "", "AWS shared config profile (env: AWS_PROFILE)")
	fs.String("endpoint", "", "S3-compatible endpoint URL (env: AWS_ENDPOINT_URL_S3)")
	fs.String("key", "", "object key of the served document (env: DATAAPI_STORE_KEY)")
	fs.String("storage-path", "", "directory for the filesystem backend (env: DATAAPI_STORE_PATH)")
}

// newDocumentService wires the configured backend into a DocumentService.
// The returned cleanup func releases backend resources.
func newDocumentService(ctx context.Context, cfg *config.Config) (*dataapi.DocumentService, func(), error) {
	backend, err := dataapi.ParseBackend(cfg.Store.Backend)
	if err != nil {
		return nil, nil, err
	}

	var (
		opener  dataapi.StoreOpener
		cleanup = func() {}
	)

	switch backend {
	case dataapi.BackendS3:
		s3Opener, err := s3store.NewOpener(ctx, cfg.Store.S3())
		if err != nil {
			return nil, nil, fmt.Errorf("create s3 store: %w", err)
		}
		opener = s3Opener
		slog.Info("using s3 store", "bucket", cfg.Store.Bucket, "region", cfg.Store.Region, "key", cfg.Store.Key)
	case dataapi.BackendFilesystem:
		fsOpener, err := filesystem.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("create filesystem store: %w", err)
		}
		opener = fsOpener
		cleanup = func() {
			if err := fsOpener.Close(); err != nil {
				slog.Warn("failed to close storage root", "err", err)
			}
		}
		slog.Info("using filesystem store", "path", cfg.Store.Path, "key", cfg.Store.Key)
	}

	service, err := dataapi.NewDocumentService(opener, cfg.Store.Key)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, cleanup, nil
}
