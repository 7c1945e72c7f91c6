package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/hollyoak/arcanum/internal/storage"
)

// Store is the journal state container. Entries are held in memory sorted by
// CreatedAt descending and written through to the backend on every mutation.
type Store struct {
	backend  storage.Backend
	validate *validator.Validate
	entries  []Entry
}

// NewStore loads any persisted journal from the backend.
func NewStore(backend storage.Backend) (*Store, error) {
	store := &Store{
		backend:  backend,
		validate: validator.New(),
	}

	contents, err := backend.Read(storage.KeyJournal)
	if errors.Is(err, storage.ErrNotFound) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("backend.Read(journal) > %w", err)
	}
	if err := json.Unmarshal(contents, &store.entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(journal) > %w", err)
	}
	store.sortEntries()
	return store, nil
}

func (store *Store) sortEntries() {
	sort.SliceStable(store.entries, func(i, j int) bool {
		return store.entries[i].CreatedAt.After(store.entries[j].CreatedAt)
	})
}

func (store *Store) persist() error {
	contents, err := json.Marshal(store.entries)
	if err != nil {
		return fmt.Errorf("json.Marshal(journal) > %w", err)
	}
	if err := store.backend.Write(storage.KeyJournal, contents); err != nil {
		return fmt.Errorf("backend.Write(journal) > %w", err)
	}
	return nil
}

// Add inserts a new entry and persists the journal.
func (store *Store) Add(entry Entry) error {
	if err := store.validate.Struct(entry); err != nil {
		return fmt.Errorf("invalid journal entry: %w", err)
	}
	store.entries = append(store.entries, entry)
	store.sortEntries()
	return store.persist()
}

// Update edits the user-editable fields of an entry. Cards, spread, and
// interpretation are immutable history.
func (store *Store) Update(id string, update EntryUpdate) error {
	for i := range store.entries {
		if store.entries[i].ID != id {
			continue
		}
		if update.Question != nil {
			store.entries[i].Question = *update.Question
		}
		if update.Impression != nil {
			store.entries[i].Impression = *update.Impression
		}
		if update.Tags != nil {
			store.entries[i].Tags = *update.Tags
		}
		return store.persist()
	}
	return ErrEntryNotFound
}

// Delete removes an entry by ID.
func (store *Store) Delete(id string) error {
	for i := range store.entries {
		if store.entries[i].ID != id {
			continue
		}
		store.entries = append(store.entries[:i], store.entries[i+1:]...)
		return store.persist()
	}
	return ErrEntryNotFound
}

// Entries returns all entries, newest first. The slice is a copy.
func (store *Store) Entries() []Entry {
	entries := make([]Entry, len(store.entries))
	copy(entries, store.entries)
	return entries
}

// Get returns the entry with the given ID.
func (store *Store) Get(id string) (Entry, error) {
	for _, entry := range store.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}

// ByDate returns all entries recorded on a local calendar day, newest first.
func (store *Store) ByDate(dateISO string) []Entry {
	var entries []Entry
	for _, entry := range store.entries {
		if entry.DateISO == dateISO {
			entries = append(entries, entry)
		}
	}
	return entries
}

// EntryDates returns the number of entries per local calendar day.
func (store *Store) EntryDates() map[string]int {
	dates := make(map[string]int, len(store.entries))
	for _, entry := range store.entries {
		dates[entry.DateISO]++
	}
	return dates
}

// Len returns the number of entries.
func (store *Store) Len() int {
	return len(store.entries)
}
