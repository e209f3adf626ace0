package kv

import "context"

// Store is a keyed string-blob store. It is the only persistence substrate
// in the app: higher-level stores serialize JSON into it and own their keys.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
