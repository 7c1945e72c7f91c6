package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/settings"
	"github.com/hollyoak/arcanum/internal/tarot"
)

func newSettingsCommand() *cobra.Command {
	settingsCommand := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
	}

	settingsCommand.AddCommand(
		newSettingsShowCommand(),
		newSettingsSetCommand(),
		newSettingsClearImageCacheCommand(),
	)
	return settingsCommand
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			prefs := appStores.settings.Current()
			fmt.Printf("reminder-time:     %s\n", prefs.ReminderTime)
			fmt.Printf("notifications:     %t\n", prefs.NotificationsEnabled)
			fmt.Printf("deck:              %s\n", prefs.DeckType)
			fmt.Printf("reversals:         %t\n", prefs.IncludeReversals)
			fmt.Printf("sounds:            %t\n", prefs.SoundsEnabled)
			fmt.Printf("cached card images: %d\n", appStores.images.Len())
			return nil
		},
	}
}

func applySetting(prefs settings.Settings, key, value string) (settings.Settings, error) {
	switch key {
	case "reminder-time":
		prefs.ReminderTime = value
	case "notifications", "reversals", "sounds":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return prefs, fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		switch key {
		case "notifications":
			prefs.NotificationsEnabled = enabled
		case "reversals":
			prefs.IncludeReversals = enabled
		case "sounds":
			prefs.SoundsEnabled = enabled
		}
	case "deck":
		deckType, err := tarot.ParseDeckType(value)
		if err != nil {
			return prefs, err
		}
		prefs.DeckType = deckType
	default:
		return prefs, fmt.Errorf("unknown setting %q, valid settings are reminder-time, notifications, deck, reversals, sounds", key)
	}
	return prefs, nil
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			updated, err := applySetting(appStores.settings.Current(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := appStores.settings.Update(updated); err != nil {
				return fmt.Errorf("settings.Update() > %w", err)
			}
			fmt.Printf("Set %s to %s.\n", args[0], args[1])
			return nil
		},
	}
}

func newSettingsClearImageCacheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-image-cache",
		Short: "Delete all generated card art",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			cleared := appStores.images.Len()
			if err := appStores.images.Clear(); err != nil {
				return fmt.Errorf("images.Clear() > %w", err)
			}
			fmt.Printf("Cleared %d cached card images.\n", cleared)
			return nil
		},
	}
}
