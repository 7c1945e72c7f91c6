package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollyoak/arcanum/internal/almanac"
)

func newAlmanacCommand() *cobra.Command {
	var (
		date     string
		upcoming int
	)

	command := &cobra.Command{
		Use:   "almanac",
		Short: "Show the lunar phase, season, and wheel-of-the-year holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				at = parsed
			}

			info := almanac.Snapshot(at)
			fmt.Printf("Date:        %s\n", at.Format("2006-01-02"))
			fmt.Printf("Lunar phase: %s\n", info.LunarPhase)
			fmt.Printf("Season:      %s\n", info.Season)
			if info.Holiday != "" {
				fmt.Printf("Holiday:     %s\n", info.Holiday)
			}

			if upcoming > 0 {
				fmt.Println("\nUpcoming holidays:")
				for _, holiday := range almanac.UpcomingHolidays(at, upcoming) {
					fmt.Printf("  %s  %s\n", holiday.Date.Format("2006-01-02"), holiday.Name)
				}
			}
			return nil
		},
	}

	command.Flags().StringVar(&date, "date", "", "date to inspect (YYYY-MM-DD, defaults to today)")
	command.Flags().IntVar(&upcoming, "upcoming", 3, "number of upcoming holidays to show (0 hides them)")
	return command
}
