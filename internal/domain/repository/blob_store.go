// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no blob exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// BlobStore is the durable local store of the engine: an opaque string-keyed
// blob store holding serialized snapshots of products, cart, and
// notifications. Each call acquires and releases the underlying storage
// handle; a failed write is a non-fatal error and callers must keep treating
// their in-memory state as authoritative for the process lifetime.
type BlobStore interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}
