// Package netstore stores encoded networks under string keys in a blob
// backend (local directory, S3 or MinIO bucket, SQLite file, or memory).
package netstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/bionet/pkg/bionet"
)

// Driver identifies a backend implementation
type Driver string

const (
	// DriverFilesystem stores networks as files under a root directory
	DriverFilesystem Driver = "fs"
	// DriverS3 stores networks as objects in an S3 compatible bucket
	DriverS3 Driver = "s3"
	// DriverSQLite stores networks as rows of a local SQLite database
	DriverSQLite Driver = "sqlite"
	// DriverMemory keeps networks in process memory (tests)
	DriverMemory Driver = "memory"
)

var (
	// ErrNotFound is returned when no network is stored under a key
	ErrNotFound = errors.New("netstore: key not found")
	// ErrInvalidKey is returned for empty, absolute or escaping keys
	ErrInvalidKey = errors.New("netstore: invalid key")
)

// Store is a minimal key/value blob abstraction. Put overwrites.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}

// CleanKey validates a key and returns its slash-separated form
func CleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: absolute key %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: key %q escapes the store", ErrInvalidKey, key)
		}
	}
	return key, nil
}

// SaveNet encodes net in format and stores it under key
func SaveNet(ctx context.Context, store Store, key string, net *bionet.BioNet, format bionet.Format) error {
	var buf bytes.Buffer
	if err := net.Encode(&buf, format); err != nil {
		return fmt.Errorf("failed to encode network %q: %w", net.Name(), err)
	}
	if err := store.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to store network under %q: %w", key, err)
	}
	return nil
}

// LoadNet fetches and decodes the network stored under key. Decoding
// failures wrap bionet.ErrMalformed.
func LoadNet(ctx context.Context, store Store, key string, format bionet.Format, opts ...bionet.Option) (*bionet.BioNet, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	net, err := bionet.Unmarshal(data, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("network under %q: %w", key, err)
	}
	return net, nil
}
