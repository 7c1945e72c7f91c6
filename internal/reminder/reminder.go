// Package reminder decides when to nudge the user for a daily reading.
package reminder

import (
	"fmt"
	"time"

	"github.com/hollyoak/arcanum/internal/journal"
	"github.com/hollyoak/arcanum/internal/settings"
)

// Due reports whether the daily reminder should fire: notifications are
// enabled, the configured time of day has passed, and no reading has been
// saved on the current local date yet.
func Due(journalStore *journal.Store, prefs settings.Settings, now time.Time) (bool, error) {
	if !prefs.NotificationsEnabled {
		return false, nil
	}

	reminderTime, err := time.Parse("15:04", prefs.ReminderTime)
	if err != nil {
		return false, fmt.Errorf("invalid reminder time %q: %w", prefs.ReminderTime, err)
	}
	threshold := time.Date(now.Year(), now.Month(), now.Day(),
		reminderTime.Hour(), reminderTime.Minute(), 0, 0, now.Location())
	if now.Before(threshold) {
		return false, nil
	}

	return len(journalStore.ByDate(journal.LocalDateISO(now))) == 0, nil
}
