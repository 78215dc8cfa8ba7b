// Package storage is StudyMate's durable key/value storage: the local
// replacement for browser storage. Values are opaque bytes (JSON documents
// in practice) addressed by string keys.
package storage

import "context"

// Store is a flat key/value store.
//
// Get returns (nil, nil) for a missing key. Set is an upsert. Delete of a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Transactor runs fn against a Store whose writes commit together. An error
// from fn discards every write made through kv.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, kv Store) error) error
}
