package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is the purchase record a reminder originates from. Bills are owned
// by the billing side of the back office; this service only issues them and
// derives payment reminders from their due dates.
type Bill struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	BillNumber string          `json:"bill_number" db:"bill_number"`
	CatererID  int             `json:"caterer_id" db:"caterer_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	DueDate    *time.Time      `json:"due_date" db:"due_date"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type IssueBillRequest struct {
	BillNumber string          `json:"bill_number" binding:"required,max=100"`
	CatererID  int             `json:"caterer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DueDate    *time.Time      `json:"due_date"`
	Notes      string          `json:"notes" binding:"max=2000"`
}

type IssueBillResponse struct {
	Bill     Bill             `json:"bill"`
	Reminder *PaymentReminder `json:"reminder,omitempty"`
}
