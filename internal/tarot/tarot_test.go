package tarot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck(t *testing.T) {
	cards := Deck()
	require.Len(t, cards, 78)

	majors := 0
	suits := map[Suit]int{}
	seen := map[string]bool{}
	for _, c := range cards {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.UprightKeywords, "card %s has no upright keywords", c.Name)
		assert.NotEmpty(t, c.ReversedKeywords, "card %s has no reversed keywords", c.Name)
		assert.False(t, seen[c.ID], "duplicate card id %s", c.ID)
		seen[c.ID] = true
		if c.Arcana == ArcanaMajor {
			majors++
			assert.Equal(t, SuitNone, c.Suit)
		} else {
			suits[c.Suit]++
		}
	}
	assert.Equal(t, 22, majors)
	for _, suit := range []Suit{SuitWands, SuitCups, SuitSwords, SuitPentacles} {
		assert.Equal(t, 14, suits[suit], "suit %s", suit)
	}
}

func TestDeckFor(t *testing.T) {
	tests := []struct {
		name     string
		deckType DeckType
		want     int
	}{
		{name: "full deck", deckType: DeckFull, want: 78},
		{name: "major arcana only", deckType: DeckMajor, want: 22},
		{name: "minor arcana only", deckType: DeckMinor, want: 56},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, DeckFor(tt.deckType), tt.want)
		})
	}
}

func TestFindCardByName(t *testing.T) {
	card, ok := FindCardByName("The Fool")
	require.True(t, ok)
	assert.Equal(t, "the-fool", card.ID)

	card, ok = FindCardByName("ten of wands")
	require.True(t, ok)
	assert.Equal(t, "Ten of Wands", card.Name)

	_, ok = FindCardByName("The Joker")
	assert.False(t, ok)
}

func TestBuiltinSpreads(t *testing.T) {
	spreads := BuiltinSpreads()
	require.NotEmpty(t, spreads)
	for _, s := range spreads {
		assert.NoError(t, s.Validate(), "spread %s", s.ID)
	}

	daily, ok := FindSpread(SpreadCardOfTheDay, nil)
	require.True(t, ok)
	assert.Equal(t, 1, daily.CardCount)
}

func TestSpreadValidate(t *testing.T) {
	tests := []struct {
		name    string
		spread  Spread
		wantErr string
	}{
		{
			name: "valid spread",
			spread: Spread{
				ID: "custom-1", Name: "Mirror", CardCount: 2,
				Positions: []SpreadPosition{{Title: "You"}, {Title: "Shadow"}},
			},
		},
		{
			name: "position count mismatch",
			spread: Spread{
				ID: "custom-2", Name: "Broken", CardCount: 3,
				Positions: []SpreadPosition{{Title: "Only one"}},
			},
			wantErr: "declares 3 cards but 1 positions",
		},
		{
			name:    "missing name",
			spread:  Spread{ID: "custom-3", CardCount: 1, Positions: []SpreadPosition{{Title: "X"}}},
			wantErr: "missing a name",
		},
		{
			name:    "zero cards",
			spread:  Spread{ID: "custom-4", Name: "Empty"},
			wantErr: "at least one card",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spread.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDraw(t *testing.T) {
	deck := Deck()

	t.Run("draws the requested number of distinct cards", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		drawn, err := Draw(deck, 5, true, rng)
		require.NoError(t, err)
		require.Len(t, drawn, 5)

		seen := map[string]bool{}
		for _, d := range drawn {
			assert.False(t, seen[d.Card.ID], "card %s drawn twice", d.Card.ID)
			seen[d.Card.ID] = true
		}
	})

	t.Run("never reverses when reversals are disabled", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		drawn, err := Draw(deck, 10, false, rng)
		require.NoError(t, err)
		for _, d := range drawn {
			assert.False(t, d.IsReversed)
		}
	})

	t.Run("rejects drawing more cards than the deck holds", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		_, err := Draw(deck[:3], 4, false, rng)
		assert.Error(t, err)
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		first, err := Draw(deck, 3, true, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		second, err := Draw(deck, 3, true, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
