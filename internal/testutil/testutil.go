// Package testutil provides shared test helpers for config files and journal
// fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/journal"
	"github.com/hollyoak/arcanum/internal/storage"
	"github.com/hollyoak/arcanum/internal/tarot"
)

// SetupTestConfig creates a minimal config file with a file backend rooted in
// tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	configContent := fmt.Sprintf(`storage:
  backend: file
  directory: %s
`, dataDir)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file and sets a fake OpenAI API
// key for tests that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)
	t.Setenv("OPENAI_API_KEY", "fake-key-for-testing")
	return cfgPath
}

// NewJournalEntry builds a valid single-card journal entry fixture.
func NewJournalEntry(t *testing.T, id string, createdAt time.Time) journal.Entry {
	t.Helper()

	card, ok := tarot.FindCardByName("The Fool")
	require.True(t, ok)
	spread, ok := tarot.FindSpread(tarot.SpreadCardOfTheDay, nil)
	require.True(t, ok)

	return journal.Entry{
		ID:         id,
		CreatedAt:  createdAt,
		DateISO:    journal.LocalDateISO(createdAt),
		Spread:     spread,
		DrawnCards: []tarot.DrawnCard{{Card: card}},
		Interpretation: inference.Interpretation{
			Overall: "A fresh start.",
			Cards:   []inference.CardInterpretation{{CardName: "The Fool", Meaning: "Leap carefully."}},
		},
		Impression: "felt hopeful",
	}
}

// SeedJournal writes entries into the journal stored under dataDir.
func SeedJournal(t *testing.T, dataDir string, entries ...journal.Entry) {
	t.Helper()

	backend, err := storage.NewFileBackend(dataDir)
	require.NoError(t, err)
	store, err := journal.NewStore(backend)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NoError(t, store.Add(entry))
	}
}
