// Package imagecache stores generated card art, keyed by card ID, so each
// card's art is paid for at most once.
package imagecache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hollyoak/arcanum/internal/storage"
)

type Store struct {
	backend storage.Backend
	images  map[string]string
}

func NewStore(backend storage.Backend) (*Store, error) {
	store := &Store{backend: backend, images: map[string]string{}}

	contents, err := backend.Read(storage.KeyCardImages)
	if errors.Is(err, storage.ErrNotFound) {
		return store, nil
	} else if err != nil {
		return nil, fmt.Errorf("backend.Read(%s) > %w", storage.KeyCardImages, err)
	}
	if err := json.Unmarshal(contents, &store.images); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(card images) > %w", err)
	}
	return store, nil
}

func (store *Store) persist() error {
	contents, err := json.Marshal(store.images)
	if err != nil {
		return fmt.Errorf("json.Marshal(card images) > %w", err)
	}
	if err := store.backend.Write(storage.KeyCardImages, contents); err != nil {
		return fmt.Errorf("backend.Write(%s) > %w", storage.KeyCardImages, err)
	}
	return nil
}

// Get returns the cached art data URL for a card, if any.
func (store *Store) Get(cardID string) (string, bool) {
	image, ok := store.images[cardID]
	return image, ok
}

// Put stores art for a card, overwriting any previous entry.
func (store *Store) Put(cardID, dataURL string) error {
	store.images[cardID] = dataURL
	return store.persist()
}

// Clear drops every cached image.
func (store *Store) Clear() error {
	store.images = map[string]string{}
	if err := store.backend.Delete(storage.KeyCardImages); err != nil {
		return fmt.Errorf("backend.Delete(%s) > %w", storage.KeyCardImages, err)
	}
	return nil
}

func (store *Store) Len() int {
	return len(store.images)
}
