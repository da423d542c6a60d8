package reminder

import (
	"errors"
	"math"
	"time"
)

// ErrMissingDueDate is returned when a reminder carries no due date. A
// reminder without a due date is a data error, not a reminder that is
// never due.
var ErrMissingDueDate = errors.New("reminder has no due date")

// ActiveWindowDays is the exact day offset at which an unacknowledged,
// undismissed reminder is surfaced as an active notification. It is an
// exact match, not a range: a payment due in 1 or 3 days does not qualify.
const ActiveWindowDays = 2

// Status labels for the management list. Display only; visibility never
// branches on a stored label.
const (
	StatusOverdue  = "overdue"
	StatusDueToday = "due_today"
	StatusUpcoming = "upcoming"
	StatusPending  = "pending"
)

// DaysUntilDue returns the whole calendar days between now and dueDate.
// Both instants are truncated to the midnight of their own calendar day
// first, so time-of-day components never shift the result. Negative means
// overdue.
func DaysUntilDue(dueDate, now time.Time) (int, error) {
	if dueDate.IsZero() {
		return 0, ErrMissingDueDate
	}

	due := midnight(dueDate)
	ref := midnight(now)

	days := int(math.Round(due.Sub(ref).Hours() / 24))
	return days, nil
}

// IsExactlyTwoDaysBefore reports whether dueDate falls exactly
// ActiveWindowDays after now, at day granularity.
func IsExactlyTwoDaysBefore(dueDate, now time.Time) (bool, error) {
	days, err := DaysUntilDue(dueDate, now)
	if err != nil {
		return false, err
	}
	return days == ActiveWindowDays, nil
}

// Status recomputes the display label for a due date. The label is
// cosmetic: the management list shows it, the active filter ignores it.
func Status(dueDate, now time.Time) (string, error) {
	days, err := DaysUntilDue(dueDate, now)
	if err != nil {
		return "", err
	}

	switch {
	case days < 0:
		return StatusOverdue, nil
	case days == 0:
		return StatusDueToday, nil
	case days <= 7:
		return StatusUpcoming, nil
	default:
		return StatusPending, nil
	}
}

// midnight pins t to the start of its own calendar day, in UTC so the
// day subtraction is always an exact multiple of 24h.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
