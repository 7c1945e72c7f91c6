package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/journal"
	"github.com/hollyoak/arcanum/internal/pdf"
)

func newJournalCommand() *cobra.Command {
	journalCommand := &cobra.Command{
		Use:   "journal",
		Short: "Browse and manage saved readings",
	}

	journalCommand.AddCommand(
		newJournalListCommand(),
		newJournalShowCommand(),
		newJournalEditCommand(),
		newJournalDeleteCommand(),
		newJournalExportCommand(),
		newJournalImportCommand(),
	)
	return journalCommand
}

func withJournal(run func(cmd *cobra.Command, args []string, store *journal.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appStores, err := openStores(cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = appStores.Close()
		}()
		return run(cmd, args, appStores.journal)
	}
}

func newJournalListCommand() *cobra.Command {
	var date string
	command := &cobra.Command{
		Use:   "list",
		Short: "List saved readings, newest first",
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			entries := store.Entries()
			if date != "" {
				entries = store.ByDate(date)
			}
			if len(entries) == 0 {
				fmt.Println("No readings in your journal yet.")
				return nil
			}
			for _, entry := range entries {
				tags := ""
				if len(entry.Tags) > 0 {
					tags = "  [" + strings.Join(entry.Tags, ", ") + "]"
				}
				fmt.Printf("%s  %s  %s%s\n", entry.ID, entry.DateISO, entry.Spread.Name, tags)
			}
			return nil
		}),
	}
	command.Flags().StringVar(&date, "date", "", "only list readings on a local date (YYYY-MM-DD)")
	return command
}

func newJournalShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reading in full",
		Args:  cobra.ExactArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			entry, err := store.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s - %s\n", entry.DateISO, entry.Spread.Name)
			if entry.Question != "" {
				fmt.Printf("Question: %s\n", entry.Question)
			}
			fmt.Println()
			for i, drawn := range entry.DrawnCards {
				position := ""
				if i < len(entry.Spread.Positions) {
					position = entry.Spread.Positions[i].Title
				}
				fmt.Printf("%s: %s (%s)\n", position, drawn.Card.Name, drawn.Orientation())
				for _, card := range entry.Interpretation.Cards {
					if card.CardName == drawn.Card.Name {
						fmt.Printf("  %s\n", card.Meaning)
						break
					}
				}
			}
			fmt.Printf("\nOverall: %s\n", entry.Interpretation.Overall)
			fmt.Printf("Impression: %s\n", entry.Impression)
			if len(entry.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(entry.Tags, ", "))
			}
			return nil
		}),
	}
}

func newJournalEditCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a reading's question, impression, or tags",
		Args:  cobra.ExactArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			var update journal.EntryUpdate
			if cmd.Flags().Changed("question") {
				question, _ := cmd.Flags().GetString("question")
				update.Question = &question
			}
			if cmd.Flags().Changed("impression") {
				impression, _ := cmd.Flags().GetString("impression")
				update.Impression = &impression
			}
			if cmd.Flags().Changed("tags") {
				tags, _ := cmd.Flags().GetStringSlice("tags")
				update.Tags = &tags
			}
			if update.Question == nil && update.Impression == nil && update.Tags == nil {
				return fmt.Errorf("nothing to update, pass --question, --impression, or --tags")
			}

			if err := store.Update(args[0], update); err != nil {
				return err
			}
			fmt.Println("Updated.")
			return nil
		}),
	}
	command.Flags().String("question", "", "replace the question")
	command.Flags().String("impression", "", "replace the impression")
	command.Flags().StringSlice("tags", nil, "replace the tags")
	return command
}

func newJournalDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		}),
	}
}

func newJournalExportCommand() *cobra.Command {
	var asPDF bool
	command := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the journal to a JSON or PDF file",
		Args:  cobra.MaximumNArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			today := journal.LocalDateISO(time.Now())

			if asPDF {
				path := fmt.Sprintf("tarot-journal-%s.pdf", today)
				if len(args) == 1 {
					path = args[0]
				}
				written, err := pdf.WriteJournal(store.Entries(), path)
				if err != nil {
					return fmt.Errorf("pdf.WriteJournal() > %w", err)
				}
				fmt.Printf("Exported %d readings to %s\n", store.Len(), written)
				return nil
			}

			path := fmt.Sprintf("tarot-journal-%s.json", today)
			if len(args) == 1 {
				path = args[0]
			}
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", path, err)
			}
			defer func() {
				_ = file.Close()
			}()
			if err := store.Export(file); err != nil {
				return fmt.Errorf("store.Export() > %w", err)
			}
			fmt.Printf("Exported %d readings to %s\n", store.Len(), path)
			return nil
		}),
	}
	command.Flags().BoolVar(&asPDF, "pdf", false, "export a printable PDF instead of JSON")
	return command
}

func newJournalImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the journal with entries from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, args []string, store *journal.Store) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", args[0], err)
			}
			defer func() {
				_ = file.Close()
			}()

			count, err := store.Import(file)
			if err != nil {
				return fmt.Errorf("store.Import() > %w", err)
			}
			fmt.Printf("Imported %d readings.\n", count)
			return nil
		}),
	}
}
