package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

var dateISOPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Export writes the full journal as a JSON array, newest first. Exporting and
// re-importing the file reproduces an identical entry list.
func (store *Store) Export(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(store.entries); err != nil {
		return fmt.Errorf("json.Encode(journal) > %w", err)
	}
	return nil
}

// Import replaces the journal with the entries read from r. The whole batch
// is validated first; if any entry fails, nothing changes.
func (store *Store) Import(r io.Reader) (int, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("io.ReadAll > %w", err)
	}

	if err := validateImport(contents); err != nil {
		return 0, err
	}

	var entries []Entry
	if err := json.Unmarshal(contents, &entries); err != nil {
		return 0, fmt.Errorf("json.Unmarshal(import) > %w", err)
	}
	for i, entry := range entries {
		if err := store.validate.Struct(entry); err != nil {
			return 0, fmt.Errorf("invalid data in entry %d: %w", i+1, err)
		}
	}

	store.entries = entries
	store.sortEntries()
	if err := store.persist(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// validateImport checks the raw JSON shape field by field. Struct decoding
// alone cannot tell an absent boolean from false, so required presence is
// verified on the generic document first.
func validateImport(contents []byte) error {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(contents, &raw); err != nil {
		return fmt.Errorf("imported file is not an array of entries: %w", err)
	}

	for i, entry := range raw {
		errorPrefix := fmt.Sprintf("invalid data in entry %d:", i+1)

		for _, field := range []string{"id", "createdAt", "dateISO", "impression"} {
			var s string
			if err := unmarshalRequired(entry, field, &s); err != nil {
				return fmt.Errorf("%s missing or invalid %q", errorPrefix, field)
			}
		}
		var dateISO string
		_ = json.Unmarshal(entry["dateISO"], &dateISO)
		if !dateISOPattern.MatchString(dateISO) {
			return fmt.Errorf("%s missing or invalid \"dateISO\"", errorPrefix)
		}

		var spread struct {
			Name *string `json:"name"`
		}
		if err := unmarshalRequired(entry, "spread", &spread); err != nil || spread.Name == nil {
			return fmt.Errorf("%s spread is missing a name", errorPrefix)
		}

		var drawnCards []map[string]json.RawMessage
		if err := unmarshalRequired(entry, "drawnCards", &drawnCards); err != nil || len(drawnCards) == 0 {
			return fmt.Errorf("%s missing or empty \"drawnCards\" array", errorPrefix)
		}
		for _, drawn := range drawnCards {
			var card struct {
				Name *string `json:"name"`
			}
			if err := unmarshalRequired(drawn, "card", &card); err != nil || card.Name == nil {
				return fmt.Errorf("%s a drawn card is missing its data", errorPrefix)
			}
			var reversed bool
			if err := unmarshalRequired(drawn, "isReversed", &reversed); err != nil {
				return fmt.Errorf("%s card %q has an invalid \"isReversed\" property", errorPrefix, *card.Name)
			}
		}

		var interpretation struct {
			Overall *string           `json:"overall"`
			Cards   *[]json.RawMessage `json:"cards"`
		}
		if err := unmarshalRequired(entry, "interpretation", &interpretation); err != nil {
			return fmt.Errorf("%s missing or invalid \"interpretation\"", errorPrefix)
		}
		if interpretation.Overall == nil {
			return fmt.Errorf("%s interpretation is missing \"overall\" text", errorPrefix)
		}
		if interpretation.Cards == nil {
			return fmt.Errorf("%s interpretation is missing \"cards\" array", errorPrefix)
		}

		if rawTags, ok := entry["tags"]; ok {
			var tags []string
			if err := json.Unmarshal(rawTags, &tags); err != nil {
				return fmt.Errorf("%s all items in \"tags\" must be strings", errorPrefix)
			}
		}
		if rawQuestion, ok := entry["question"]; ok {
			var question string
			if err := json.Unmarshal(rawQuestion, &question); err != nil {
				return fmt.Errorf("%s \"question\" has an invalid type", errorPrefix)
			}
		}
	}
	return nil
}

// unmarshalRequired decodes entry[field] into target, failing when the field
// is absent, JSON null, or of the wrong type.
func unmarshalRequired(entry map[string]json.RawMessage, field string, target any) error {
	raw, ok := entry[field]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("field %q is missing", field)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", field, err)
	}
	return nil
}
