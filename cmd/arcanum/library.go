package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/match"
	"github.com/hollyoak/arcanum/internal/tarot"
)

func newLibraryCommand() *cobra.Command {
	libraryCommand := &cobra.Command{
		Use:   "library",
		Short: "Browse the card catalog",
	}

	libraryCommand.AddCommand(newLibraryListCommand(), newLibraryShowCommand())
	return libraryCommand
}

func newLibraryListCommand() *cobra.Command {
	var deckFlag DeckFlag

	command := &cobra.Command{
		Use:   "list",
		Short: "List the cards in a deck subset",
		RunE: func(cmd *cobra.Command, args []string) error {
			deckType := tarot.DeckFull
			if deckFlag != "" {
				deckType = tarot.DeckType(deckFlag)
			}
			for _, card := range tarot.DeckFor(deckType) {
				fmt.Printf("%-24s %s\n", card.Name, card.Arcana)
			}
			return nil
		},
	}
	command.Flags().Var(&deckFlag, "deck", fmt.Sprintf("deck subset. Possible values are %v", []tarot.DeckType{tarot.DeckFull, tarot.DeckMajor, tarot.DeckMinor}))
	return command
}

func newLibraryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <card name>",
		Short: "Show a card's keywords, matching the name fuzzily",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			names := make([]string, 0, len(tarot.Deck()))
			for _, card := range tarot.Deck() {
				names = append(names, card.Name)
			}
			name, ok := match.FindBestMatch(query, names, match.DefaultThreshold)
			if !ok {
				return fmt.Errorf("no card matches %q", query)
			}
			card, ok := tarot.FindCardByName(name)
			if !ok {
				return fmt.Errorf("card %q is not in the catalog", name)
			}

			fmt.Printf("%s (%s)\n", card.Name, card.Arcana)
			fmt.Printf("Upright: %s\n", strings.Join(card.UprightKeywords, ", "))
			fmt.Printf("Reversed: %s\n", strings.Join(card.ReversedKeywords, ", "))
			return nil
		},
	}
}
