package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/spreads"
	"github.com/hollyoak/arcanum/internal/tarot"
)

func newSpreadsCommand() *cobra.Command {
	spreadsCommand := &cobra.Command{
		Use:   "spreads",
		Short: "Browse built-in spreads and manage your own",
	}

	spreadsCommand.AddCommand(
		newSpreadsListCommand(),
		newSpreadsCreateCommand(),
		newSpreadsDeleteCommand(),
	)
	return spreadsCommand
}

func withSpreads(run func(cmd *cobra.Command, args []string, store *spreads.Store) error) func(*cobra.Command, []string) error {
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
		return run(cmd, args, appStores.spreads)
	}
}

func newSpreadsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available spreads",
		RunE: withSpreads(func(cmd *cobra.Command, args []string, store *spreads.Store) error {
			fmt.Println("Built-in spreads:")
			for _, spread := range tarot.BuiltinSpreads() {
				fmt.Printf("  %-26s %2d cards  %s\n", spread.ID, spread.CardCount, spread.Name)
			}

			custom := store.All()
			if len(custom) == 0 {
				return nil
			}
			fmt.Println("\nYour spreads:")
			for _, spread := range custom {
				fmt.Printf("  %-26s %2d cards  %s\n", spread.ID, spread.CardCount, spread.Name)
			}
			return nil
		}),
	}
}

func newSpreadsCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		positions   []string
	)

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a custom spread",
		Long: `Create a custom spread. Each --position is "Title" or "Title: description";
the number of positions determines how many cards the spread draws.`,
		RunE: withSpreads(func(cmd *cobra.Command, args []string, store *spreads.Store) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			if len(positions) == 0 {
				return fmt.Errorf("at least one --position is required")
			}

			spread := tarot.Spread{
				Name:        name,
				Description: description,
				CardCount:   len(positions),
			}
			for _, position := range positions {
				title, positionDescription, _ := strings.Cut(position, ":")
				spread.Positions = append(spread.Positions, tarot.SpreadPosition{
					Title:       strings.TrimSpace(title),
					Description: strings.TrimSpace(positionDescription),
				})
			}

			added, err := store.Add(spread)
			if err != nil {
				return fmt.Errorf("store.Add() > %w", err)
			}
			fmt.Printf("Created spread %s (%s).\n", added.Name, added.ID)
			return nil
		}),
	}

	command.Flags().StringVar(&name, "name", "", "spread name")
	command.Flags().StringVar(&description, "description", "", "what the spread is for")
	command.Flags().StringArrayVar(&positions, "position", nil, `position as "Title" or "Title: description" (repeatable)`)
	return command
}

func newSpreadsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom spread",
		Args:  cobra.ExactArgs(1),
		RunE: withSpreads(func(cmd *cobra.Command, args []string, store *spreads.Store) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted. Saved readings that used this spread keep their own copy.")
			return nil
		}),
	}
}
