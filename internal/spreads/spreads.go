// Package spreads manages user-defined spread layouts alongside the built-in
// catalog. Journal entries embed a copy of the spread they were drawn with,
// so changes here never rewrite past readings.
package spreads

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hollyoak/arcanum/internal/storage"
	"github.com/hollyoak/arcanum/internal/tarot"
)

var ErrSpreadNotFound = errors.New("spread not found")

type Store struct {
	backend storage.Backend
	spreads []tarot.Spread
}

func NewStore(backend storage.Backend) (*Store, error) {
	store := &Store{backend: backend}

	contents, err := backend.Read(storage.KeyCustomSpreads)
	if errors.Is(err, storage.ErrNotFound) {
		return store, nil
	} else if err != nil {
		return nil, fmt.Errorf("backend.Read(%s) > %w", storage.KeyCustomSpreads, err)
	}
	if err := json.Unmarshal(contents, &store.spreads); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(custom spreads) > %w", err)
	}
	return store, nil
}

func (store *Store) persist() error {
	contents, err := json.Marshal(store.spreads)
	if err != nil {
		return fmt.Errorf("json.Marshal(custom spreads) > %w", err)
	}
	if err := store.backend.Write(storage.KeyCustomSpreads, contents); err != nil {
		return fmt.Errorf("backend.Write(%s) > %w", storage.KeyCustomSpreads, err)
	}
	return nil
}

// Add stores a new custom spread and returns it with its generated ID.
func (store *Store) Add(spread tarot.Spread) (tarot.Spread, error) {
	spread.ID = uuid.NewString()
	if err := spread.Validate(); err != nil {
		return tarot.Spread{}, err
	}

	store.spreads = append(store.spreads, spread)
	if err := store.persist(); err != nil {
		return tarot.Spread{}, err
	}
	return spread, nil
}

func (store *Store) Update(spread tarot.Spread) error {
	if err := spread.Validate(); err != nil {
		return err
	}

	for i := range store.spreads {
		if store.spreads[i].ID == spread.ID {
			store.spreads[i] = spread
			return store.persist()
		}
	}
	return ErrSpreadNotFound
}

func (store *Store) Delete(id string) error {
	for i := range store.spreads {
		if store.spreads[i].ID == id {
			store.spreads = append(store.spreads[:i], store.spreads[i+1:]...)
			return store.persist()
		}
	}
	return ErrSpreadNotFound
}

// All returns the custom spreads in insertion order.
func (store *Store) All() []tarot.Spread {
	return append([]tarot.Spread(nil), store.spreads...)
}

// Find resolves an ID against the built-ins and the custom spreads.
func (store *Store) Find(id string) (tarot.Spread, bool) {
	return tarot.FindSpread(id, store.spreads)
}
