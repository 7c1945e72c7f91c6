// Package cli drives interactive reading sessions on a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/hollyoak/arcanum/internal/reading"
	"github.com/hollyoak/arcanum/internal/tarot"
)

// errEnd signals that the user chose to leave the session.
var errEnd = errors.New("session ended")

// ReadingCLI walks one reading through its phases, prompting the user at
// every decision point: retrying failed steps, continuing without art, and
// saving the result.
type ReadingCLI struct {
	session      *reading.Session
	withArt      bool
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

func NewReadingCLI(session *reading.Session, withArt bool) *ReadingCLI {
	return &ReadingCLI{
		session:      session,
		withArt:      withArt,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

func (cli *ReadingCLI) prompt(label string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, label)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errEnd
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// Run starts a reading for the given draw and loops until it is saved,
// discarded, or interrupted.
func (cli *ReadingCLI) Run(ctx context.Context, cards []tarot.DrawnCard, spread tarot.Spread, question string) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	if err := cli.session.Start(cards, spread, question); err != nil {
		return fmt.Errorf("session.Start() > %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
			cli.session.Reset()
			return nil
		default:
		}

		var err error
		switch state := cli.session.State().(type) {
		case reading.GeneratingImages:
			err = cli.generateImages(ctx)
		case reading.ImageError:
			err = cli.resolveImageError(state)
		case reading.Loading:
			fmt.Fprintln(cli.stdoutWriter, "Consulting the cards...")
			err = cli.session.Interpret(ctx)
		case reading.InterpretationError:
			err = cli.resolveInterpretationError(state)
		case reading.Result:
			err = cli.finishReading(state)
		case reading.Dashboard:
			return nil
		}
		if errors.Is(err, errEnd) {
			cli.session.Reset()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (cli *ReadingCLI) generateImages(ctx context.Context) error {
	if !cli.withArt {
		return cli.session.SkipImages()
	}
	fmt.Fprintln(cli.stdoutWriter, "Generating card art...")
	return cli.session.GenerateImages(ctx)
}

func (cli *ReadingCLI) resolveImageError(state reading.ImageError) error {
	fmt.Fprintln(cli.stdoutWriter, state.Message)
	for {
		choice, err := cli.prompt("[r]etry art, [c]ontinue without art, or [q]uit: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "r", "retry":
			return cli.session.RetryImages()
		case "c", "continue":
			return cli.session.ContinueWithoutArt()
		case "q", "quit":
			return errEnd
		}
	}
}

func (cli *ReadingCLI) resolveInterpretationError(state reading.InterpretationError) error {
	fmt.Fprintln(cli.stdoutWriter, state.Message)
	for {
		choice, err := cli.prompt("[r]etry interpretation or [q]uit: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "r", "retry":
			return cli.session.RetryInterpretation()
		case "q", "quit":
			return cli.session.Abandon()
		}
	}
}

func (cli *ReadingCLI) finishReading(state reading.Result) error {
	cli.printResult(state)

	impression, err := cli.prompt("Your impression: ")
	if err != nil {
		return err
	}
	tagsInput, err := cli.prompt("Tags (comma-separated, optional): ")
	if err != nil {
		return err
	}

	save, err := cli.prompt("Save this reading to your journal? [Y/n]: ")
	if err != nil {
		return err
	}
	if strings.EqualFold(save, "n") || strings.EqualFold(save, "no") {
		cli.session.Reset()
		fmt.Fprintln(cli.stdoutWriter, "Reading discarded.")
		return nil
	}

	entry, err := cli.session.Save(impression, parseTags(tagsInput))
	if err != nil {
		return fmt.Errorf("session.Save() > %w", err)
	}
	fmt.Fprintf(cli.stdoutWriter, "Saved to your journal as %s.\n", entry.ID)
	return nil
}

func (cli *ReadingCLI) printResult(state reading.Result) {
	fmt.Fprintln(cli.stdoutWriter)
	cli.bold.Fprintf(cli.stdoutWriter, "%s\n", state.Spread.Name)
	if state.Question != "" {
		cli.italic.Fprintf(cli.stdoutWriter, "Question: %s\n", state.Question)
	}
	fmt.Fprintln(cli.stdoutWriter)

	for i, drawn := range state.Cards {
		position := ""
		if i < len(state.Spread.Positions) {
			position = state.Spread.Positions[i].Title
		}
		cli.bold.Fprintf(cli.stdoutWriter, "%s: %s (%s)\n", position, drawn.Card.Name, drawn.Orientation())
		for _, card := range state.Interpretation.Cards {
			if card.CardName == drawn.Card.Name {
				fmt.Fprintf(cli.stdoutWriter, "  %s\n", card.Meaning)
				break
			}
		}
		fmt.Fprintln(cli.stdoutWriter)
	}

	cli.bold.Fprintln(cli.stdoutWriter, "Overall")
	fmt.Fprintf(cli.stdoutWriter, "%s\n\n", state.Interpretation.Overall)
}

func parseTags(input string) []string {
	if input == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
