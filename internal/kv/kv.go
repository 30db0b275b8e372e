// Package kv persists opaque blobs under string keys. The ledger is stored
// as a single serialized record under one fixed key, so the interface is a
// deliberately small load/save surface with interchangeable backends.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is an opaque key-value blob store.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous blob.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend    string // "memory", "file" or "sqlite"
	DataDir    string // file backend: directory holding one file per key
	SQLitePath string // sqlite backend: database path
}

// Open builds the Store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(opts.DataDir)
	case "sqlite":
		return NewSQLite(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported kv backend: %s", opts.Backend)
	}
}
