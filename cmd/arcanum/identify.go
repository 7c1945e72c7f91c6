package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/match"
	"github.com/hollyoak/arcanum/internal/tarot"
)

func newIdentifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <image-file>",
		Short: "Identify a photographed card and show its meaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			openaiClient, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = openaiClient.Close()
			}()

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}

			guess, err := openaiClient.IdentifyCard(cmd.Context(), image)
			if err != nil {
				return fmt.Errorf("openaiClient.IdentifyCard() > %w", err)
			}
			if guess == "" {
				fmt.Println("No card could be recognized in this image.")
				return nil
			}

			// Vision output is noisier than typed input, so reconcile the
			// guess against the catalog with a stricter threshold.
			names := make([]string, 0, len(tarot.Deck()))
			for _, card := range tarot.Deck() {
				names = append(names, card.Name)
			}
			name, ok := match.FindBestMatch(guess, names, match.VisionThreshold)
			if !ok {
				fmt.Printf("The image looks like %q, but no catalog card matches it closely enough.\n", guess)
				return nil
			}

			card, ok := tarot.FindCardByName(name)
			if !ok {
				return fmt.Errorf("card %q is not in the catalog", name)
			}
			fmt.Printf("%s (%s)\n", card.Name, card.Arcana)
			fmt.Printf("Upright: %v\n", card.UprightKeywords)
			fmt.Printf("Reversed: %v\n", card.ReversedKeywords)
			return nil
		},
	}
}
