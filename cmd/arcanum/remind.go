package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/reminder"
)

func newRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Check whether a daily reading reminder is due",
		Long:  "Check whether a daily reading reminder is due. Intended to be run from cron or a shell profile.",
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

			due, err := reminder.Due(appStores.journal, appStores.settings.Current(), time.Now())
			if err != nil {
				return fmt.Errorf("reminder.Due() > %w", err)
			}
			if due {
				fmt.Println("The cards are waiting - you haven't drawn today. Try 'arcanum draw'.")
			}
			return nil
		},
	}
}
