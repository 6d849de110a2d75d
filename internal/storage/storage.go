// Package storage holds the key-value drivers that persist owner-scoped
// storefront state (carts, favorites).
package storage

import "context"

// Store is a minimal key-value store. Get reports a missing key with
// found == false and a nil error. Removing a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
