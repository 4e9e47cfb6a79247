package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when a key has no value. Absence is an
// expected condition, not a failure; callers fall back to their defaults.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is a persistent string key-value store. Implementations must keep
// values across process restarts. Get returns ErrKeyNotFound for absent keys;
// Delete of an absent key succeeds.
//
// Two variants are consumed by the services: a general-purpose store
// (favorites, theme) and a secure store (session) with the same contract but
// encryption at rest. Their persisted data is not interchangeable.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
