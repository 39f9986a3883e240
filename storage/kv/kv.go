// Package kv defines the durable key-value medium behind the session store.
package kv

import "errors"

var ErrNotFound = errors.New("key not found")

// Store is a local, synchronous key-value medium. Set is an atomic
// replace; Remove of an absent key is a no-op.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
