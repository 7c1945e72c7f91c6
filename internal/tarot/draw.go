package tarot

import (
	"fmt"
	"math/rand"
)

// Draw shuffles a copy of deck with a Fisher-Yates shuffle and returns the
// first n cards. When includeReversals is set, each drawn card lands reversed
// on a coin flip. The rng is injected so tests can fix the sequence.
func Draw(deck []Card, n int, includeReversals bool, rng *rand.Rand) ([]DrawnCard, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(deck) {
		return nil, fmt.Errorf("cannot draw %d cards from a deck of %d", n, len(deck))
	}

	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	drawn := make([]DrawnCard, 0, n)
	for _, card := range shuffled[:n] {
		drawn = append(drawn, DrawnCard{
			Card:       card,
			IsReversed: includeReversals && rng.Intn(2) == 1,
		})
	}
	return drawn, nil
}
