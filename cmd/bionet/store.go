package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dd0wney/bionet/pkg/config"
	"github.com/dd0wney/bionet/pkg/netstore"
	"github.com/dd0wney/bionet/pkg/netstore/fs"
	"github.com/dd0wney/bionet/pkg/netstore/memory"
	"github.com/dd0wney/bionet/pkg/netstore/s3"
	"github.com/dd0wney/bionet/pkg/netstore/sqlite"
)

// openStore builds the backend selected by cfg.Store.Driver
func openStore(ctx context.Context, cfg *config.Config) (netstore.Store, error) {
	switch netstore.Driver(cfg.Store.Driver) {
	case netstore.DriverFilesystem:
		store, err := fs.New(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open store directory: %w", err)
		}
		return store, nil
	case netstore.DriverS3:
		store, err := s3.New(ctx, s3.Config{
			Bucket:    cfg.Store.S3.Bucket,
			Region:    cfg.Store.S3.Region,
			Endpoint:  cfg.Store.S3.Endpoint,
			Prefix:    cfg.Store.S3.Prefix,
			PathStyle: cfg.Store.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 store: %w", err)
		}
		return store, nil
	case netstore.DriverSQLite:
		store, err := sqlite.New(ctx, cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case netstore.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// closeStore releases backends that hold a handle (sqlite)
func closeStore(store netstore.Store) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
