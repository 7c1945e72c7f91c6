// Package storage provides the key-value persistence backends the state
// stores are built on. A backend only moves bytes; each store owns its own
// JSON shape.
package storage

import "errors"

// ErrNotFound is returned by Read when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key-value byte store.
type Backend interface {
	// Read returns the value stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write stores value under key, replacing any previous value.
	Write(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Well-known store keys.
const (
	KeyJournal       = "journal"
	KeySettings      = "settings"
	KeyCustomSpreads = "custom-spreads"
	KeyCardImages    = "card-images"
)
