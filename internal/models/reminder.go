package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReminder tracks money owed to a caterer for an issued bill.
// Status is a denormalized display label; visibility decisions always
// recompute from OriginalDueDate.
type PaymentReminder struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CatererID       int             `json:"caterer_id" db:"caterer_id"`
	BillID          uuid.UUID       `json:"bill_id" db:"bill_id"`
	BillNumber      string          `json:"bill_number" db:"bill_number"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	OriginalDueDate time.Time       `json:"original_due_date" db:"original_due_date"`
	ReminderDate    time.Time       `json:"reminder_date" db:"reminder_date"`
	Status          string          `json:"status" db:"status"`
	IsRead          bool            `json:"is_read" db:"is_read"`
	IsAcknowledged  bool            `json:"is_acknowledged" db:"is_acknowledged"`
	AcknowledgedAt  *time.Time      `json:"acknowledged_at" db:"acknowledged_at"`
	Notes           string          `json:"notes" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

type UpdateReminderNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}
