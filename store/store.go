package store

import "errors"

// ErrKeyNotFound is returned by Get when nothing is persisted under the key.
var ErrKeyNotFound = errors.New("store: key not found")

// KeyValueStore is the external persistence collaborator the onboarding
// engine depends on. Implementations must make Set atomic per call.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
