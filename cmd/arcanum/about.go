package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/tarot"
)

const version = "0.3.0"

func newAboutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "About this program",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("arcanum %s\n\n", version)
			fmt.Println("A Tarot reading journal for the command line: draw cards, receive")
			fmt.Println("AI-assisted interpretations, and keep a private record of your readings.")
			fmt.Printf("\nCard catalog: %d cards, %d built-in spreads.\n", len(tarot.Deck()), len(tarot.BuiltinSpreads()))
			fmt.Println("Interpretations are reflections, not predictions. Be kind to yourself.")
			return nil
		},
	}
}
