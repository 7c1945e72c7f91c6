package cli

import (
	"fmt"
	"strings"

	"github.com/hollyoak/arcanum/internal/match"
	"github.com/hollyoak/arcanum/internal/tarot"
)

// PromptCards asks for one card per spread position, reconciling free-text
// names against the deck with fuzzy matching so small typos still resolve.
func (cli *ReadingCLI) PromptCards(spread tarot.Spread, deck []tarot.Card, includeReversals bool) ([]tarot.DrawnCard, error) {
	names := make([]string, 0, len(deck))
	for _, card := range deck {
		names = append(names, card.Name)
	}

	drawn := make([]tarot.DrawnCard, 0, spread.CardCount)
	for _, position := range spread.Positions {
		card, err := cli.promptCard(position.Title, names)
		if err != nil {
			return nil, err
		}

		isReversed := false
		if includeReversals {
			answer, err := cli.prompt("Reversed? [y/N]: ")
			if err != nil {
				return nil, err
			}
			isReversed = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
		}
		drawn = append(drawn, tarot.DrawnCard{Card: card, IsReversed: isReversed})
	}
	return drawn, nil
}

func (cli *ReadingCLI) promptCard(position string, names []string) (tarot.Card, error) {
	for {
		input, err := cli.prompt(fmt.Sprintf("%s: ", position))
		if err != nil {
			return tarot.Card{}, err
		}
		if input == "" {
			continue
		}

		name, ok := match.FindBestMatch(input, names, match.DefaultThreshold)
		if !ok {
			fmt.Fprintf(cli.stdoutWriter, "No card matches %q. Try again.\n", input)
			continue
		}
		card, ok := tarot.FindCardByName(name)
		if !ok {
			return tarot.Card{}, fmt.Errorf("card %q is not in the catalog", name)
		}
		if name != input {
			cli.italic.Fprintf(cli.stdoutWriter, "Matched %q.\n", name)
		}
		return card, nil
	}
}
