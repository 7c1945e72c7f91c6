// Package settings persists user preferences for the reading experience.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hollyoak/arcanum/internal/storage"
	"github.com/hollyoak/arcanum/internal/tarot"
)

type Settings struct {
	ReminderTime         string         `json:"reminderTime" validate:"required,datetime=15:04"`
	NotificationsEnabled bool           `json:"notificationsEnabled"`
	DeckType             tarot.DeckType `json:"deckType" validate:"required,oneof=full major minor"`
	IncludeReversals     bool           `json:"includeReversals"`
	SoundsEnabled        bool           `json:"soundsEnabled"`
}

func Defaults() Settings {
	return Settings{
		ReminderTime:         "09:00",
		NotificationsEnabled: false,
		DeckType:             tarot.DeckFull,
		IncludeReversals:     true,
		SoundsEnabled:        true,
	}
}

// Store keeps settings on a storage backend. Stored values are merged over
// the defaults on load, so settings added after an install pick up their
// default without wiping what the user already chose.
type Store struct {
	backend  storage.Backend
	validate *validator.Validate
	current  Settings
}

func NewStore(backend storage.Backend) (*Store, error) {
	store := &Store{
		backend:  backend,
		validate: validator.New(),
		current:  Defaults(),
	}

	contents, err := backend.Read(storage.KeySettings)
	if errors.Is(err, storage.ErrNotFound) {
		return store, nil
	} else if err != nil {
		return nil, fmt.Errorf("backend.Read(%s) > %w", storage.KeySettings, err)
	}
	if err := json.Unmarshal(contents, &store.current); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(settings) > %w", err)
	}
	if err := store.validate.Struct(store.current); err != nil {
		return nil, fmt.Errorf("stored settings are invalid: %w", err)
	}
	return store, nil
}

func (store *Store) Current() Settings {
	return store.current
}

func (store *Store) Update(updated Settings) error {
	if err := store.validate.Struct(updated); err != nil {
		return fmt.Errorf("validate.Struct(settings) > %w", err)
	}

	contents, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("json.Marshal(settings) > %w", err)
	}
	if err := store.backend.Write(storage.KeySettings, contents); err != nil {
		return fmt.Errorf("backend.Write(%s) > %w", storage.KeySettings, err)
	}
	store.current = updated
	return nil
}
