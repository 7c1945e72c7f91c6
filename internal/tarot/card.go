// Package tarot holds the immutable card catalog, spread templates, and the
// drawing logic for a reading.
package tarot

import (
	"fmt"
	"strings"
)

// Arcana classifies a card as Major or Minor arcana.
type Arcana string

const (
	ArcanaMajor Arcana = "Major"
	ArcanaMinor Arcana = "Minor"
)

// Suit is the Minor arcana suit. Major arcana cards carry SuitNone.
type Suit string

const (
	SuitNone      Suit = "None"
	SuitWands     Suit = "Wands"
	SuitCups      Suit = "Cups"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
)

// DeckType selects the subset of the catalog used for drawing.
type DeckType string

const (
	DeckFull  DeckType = "full"
	DeckMajor DeckType = "major"
	DeckMinor DeckType = "minor"
)

// ParseDeckType converts a string into a DeckType.
func ParseDeckType(s string) (DeckType, error) {
	switch DeckType(s) {
	case DeckFull, DeckMajor, DeckMinor:
		return DeckType(s), nil
	}
	return "", fmt.Errorf("invalid deck type %q, valid values are %q, %q or %q", s, DeckFull, DeckMajor, DeckMinor)
}

// Card is a single catalog entry. Catalog entries are created once at startup
// and never mutated.
type Card struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Arcana           Arcana   `json:"arcana" validate:"required,oneof=Major Minor"`
	Suit             Suit     `json:"suit" validate:"required"`
	UprightKeywords  []string `json:"uprightKeywords"`
	ReversedKeywords []string `json:"reversedKeywords"`
	ImageURL         string   `json:"imageUrl"`
}

// Keywords returns the keyword list matching the card orientation.
func (c Card) Keywords(reversed bool) []string {
	if reversed {
		return c.ReversedKeywords
	}
	return c.UprightKeywords
}

// DrawnCard binds a catalog card to a reversal flag for one specific draw,
// plus an optional generated-art URL that overrides the default image.
type DrawnCard struct {
	Card       Card   `json:"card" validate:"required"`
	IsReversed bool   `json:"isReversed"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// Orientation returns "Upright" or "Reversed" for display and prompts.
func (d DrawnCard) Orientation() string {
	if d.IsReversed {
		return "Reversed"
	}
	return "Upright"
}

// FindCardByName looks a card up by its exact name, ignoring case.
// Free-text lookups should go through the match package instead.
func FindCardByName(name string) (Card, bool) {
	for _, c := range Deck() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Card{}, false
}

// DeckFor returns the catalog subset for a deck type. The returned slice is a
// copy, so callers may shuffle it freely.
func DeckFor(deckType DeckType) []Card {
	full := Deck()
	cards := make([]Card, 0, len(full))
	for _, c := range full {
		switch deckType {
		case DeckMajor:
			if c.Arcana != ArcanaMajor {
				continue
			}
		case DeckMinor:
			if c.Arcana != ArcanaMinor {
				continue
			}
		}
		cards = append(cards, c)
	}
	return cards
}
