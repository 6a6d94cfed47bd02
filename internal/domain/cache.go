package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port used for practice sessions and cached lookups.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value. A zero expiration keeps the key until it is deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	// Expire refreshes the time to live of an existing key.
	Expire(ctx context.Context, key string, expiration time.Duration) error

	// SetNX stores the value only when the key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
}
