package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hollyoak/arcanum/internal/cli"
	"github.com/hollyoak/arcanum/internal/reading"
	"github.com/hollyoak/arcanum/internal/tarot"
)

type DeckFlag tarot.DeckType

// Set implements pflag.Value.
func (f *DeckFlag) Set(v string) error {
	deckType, err := tarot.ParseDeckType(v)
	if err != nil {
		return err
	}
	*f = DeckFlag(deckType)
	return nil
}

// String implements pflag.Value.
func (f *DeckFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *DeckFlag) Type() string {
	return "DeckFlag"
}

var (
	_ pflag.Value = (*DeckFlag)(nil)
)

func newDrawCommand() *cobra.Command {
	var (
		spreadID string
		question string
		manual   bool
		noArt    bool
		deckFlag DeckFlag
		seed     int64
	)

	command := &cobra.Command{
		Use:   "draw",
		Short: "Draw cards and receive an interpreted reading",
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

			appStores, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = appStores.Close()
			}()
			prefs := appStores.settings.Current()

			spread, ok := appStores.spreads.Find(spreadID)
			if !ok {
				return fmt.Errorf("unknown spread %q, see 'arcanum spreads list'", spreadID)
			}

			deckType := prefs.DeckType
			if deckFlag != "" {
				deckType = tarot.DeckType(deckFlag)
			}
			deck := tarot.DeckFor(deckType)

			session := reading.NewSession(openaiClient, appStores.images, appStores.journal)
			readingCLI := cli.NewReadingCLI(session, !noArt)

			var cards []tarot.DrawnCard
			if manual {
				cards, err = readingCLI.PromptCards(spread, deck, prefs.IncludeReversals)
				if err != nil {
					return err
				}
			} else {
				if seed == 0 {
					seed = time.Now().UnixNano()
				}
				rng := rand.New(rand.NewSource(seed))
				cards, err = tarot.Draw(deck, spread.CardCount, prefs.IncludeReversals, rng)
				if err != nil {
					return fmt.Errorf("tarot.Draw() > %w", err)
				}
			}

			return readingCLI.Run(cmd.Context(), cards, spread, question)
		},
	}

	flags := command.Flags()
	flags.StringVar(&spreadID, "spread", tarot.SpreadCardOfTheDay, "spread to use")
	flags.StringVar(&question, "question", "", "optional question to focus the reading")
	flags.BoolVar(&manual, "manual", false, "enter cards drawn from a physical deck")
	flags.BoolVar(&noArt, "no-art", false, "skip generated card art")
	flags.Var(&deckFlag, "deck", fmt.Sprintf("deck subset. Possible values are %v", []tarot.DeckType{tarot.DeckFull, tarot.DeckMajor, tarot.DeckMinor}))
	flags.Int64Var(&seed, "seed", 0, "random seed for the shuffle (0 uses the clock)")

	return command
}
