// Package journal persists completed readings and serves the calendar and
// export surfaces.
package journal

import (
	"fmt"
	"time"

	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/tarot"
)

// Entry is the persisted record of a completed reading. The spread is
// embedded by value so later edits to a custom spread never rewrite history.
// After creation only Question, Impression, and Tags may change.
type Entry struct {
	ID             string                   `json:"id" validate:"required"`
	CreatedAt      time.Time                `json:"createdAt" validate:"required"`
	DateISO        string                   `json:"dateISO" validate:"required,datetime=2006-01-02"`
	Spread         tarot.Spread             `json:"spread" validate:"required"`
	DrawnCards     []tarot.DrawnCard        `json:"drawnCards" validate:"required,min=1,dive"`
	Interpretation inference.Interpretation `json:"interpretation" validate:"required"`
	Question       string                   `json:"question,omitempty"`
	Impression     string                   `json:"impression"`
	Tags           []string                 `json:"tags,omitempty"`
}

// EntryUpdate carries the user-editable fields. Nil leaves a field unchanged.
type EntryUpdate struct {
	Question   *string
	Impression *string
	Tags       *[]string
}

// LocalDateISO formats t as YYYY-MM-DD in t's own location. Journal dates are
// local calendar days, never UTC, so a reading saved at 23:30 stays on the
// day the user experienced.
func LocalDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ErrEntryNotFound is returned for lookups and updates of unknown entry IDs.
var ErrEntryNotFound = fmt.Errorf("journal: entry not found")
