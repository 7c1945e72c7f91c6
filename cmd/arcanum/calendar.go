package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newCalendarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [month]",
		Short: "Show which days have readings, one month at a time",
		Long:  "Show which days have readings. The month is given as YYYY-MM and defaults to the current month.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now().Format("2006-01")
			if len(args) == 1 {
				if _, err := time.Parse("2006-01", args[0]); err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
				}
				month = args[0]
			}

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

			counts := appStores.journal.EntryDates()
			var dates []string
			for date := range counts {
				if strings.HasPrefix(date, month+"-") {
					dates = append(dates, date)
				}
			}
			if len(dates) == 0 {
				fmt.Printf("No readings in %s.\n", month)
				return nil
			}
			sort.Strings(dates)

			for _, date := range dates {
				readings := "reading"
				if counts[date] > 1 {
					readings = "readings"
				}
				fmt.Printf("%s  %d %s\n", date, counts[date], readings)
			}
			return nil
		},
	}
}
