package reminder

import (
	"fmt"
	"time"

	"spicetrade-backend/internal/models"
)

// Visible returns the reminders that should currently be surfaced as
// active notifications: unacknowledged, not dismissed this session, and
// due in exactly ActiveWindowDays calendar days. Survivors keep their
// input order; an empty result is the normal state, not an error.
//
// The function is pure: for a fixed reminder list, dismissal set and now,
// the output is always the same. Callers re-invoke it after an
// acknowledgment or dismissal to pick up the new state.
func Visible(reminders []models.PaymentReminder, dismissed *DismissalSet, now time.Time) ([]models.PaymentReminder, error) {
	var visible []models.PaymentReminder
	for _, r := range reminders {
		if r.IsAcknowledged {
			continue
		}
		if dismissed != nil && dismissed.Contains(r.ID) {
			continue
		}

		active, err := IsExactlyTwoDaysBefore(r.OriginalDueDate, now)
		if err != nil {
			return nil, fmt.Errorf("reminder %s: %w", r.ID, err)
		}
		if active {
			visible = append(visible, r)
		}
	}
	return visible, nil
}
