package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spicetrade-backend/internal/models"
	"spicetrade-backend/internal/reminder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrBillNotFound = errors.New("bill not found")

// IssueBill records a purchase bill and, when the bill carries a due date,
// creates its payment reminder in the same transaction. The reminder is the
// only artifact this service derives from a bill; everything else about
// billing lives with the billing side of the back office.
func (db *Database) IssueBill(ctx context.Context, bill *models.Bill, notes string) (*models.PaymentReminder, error) {
	if !bill.Amount.IsPositive() {
		return nil, fmt.Errorf("bill %s has a non-positive amount", bill.BillNumber)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertBill := `
		INSERT INTO bills (bill_number, caterer_id, amount, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, insertBill, bill.BillNumber, bill.CatererID, bill.Amount, bill.DueDate).
		Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	if bill.DueDate == nil {
		return nil, tx.Commit(ctx)
	}

	status, err := reminder.Status(*bill.DueDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to classify due date for bill %s: %w", bill.BillNumber, err)
	}

	r := models.PaymentReminder{
		CatererID:       bill.CatererID,
		BillID:          bill.ID,
		BillNumber:      bill.BillNumber,
		Amount:          bill.Amount,
		OriginalDueDate: *bill.DueDate,
		ReminderDate:    today(),
		Status:          status,
		Notes:           notes,
	}

	insertReminder := `
		INSERT INTO payment_reminders (caterer_id, bill_id, bill_number, amount, original_due_date, reminder_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, insertReminder,
		r.CatererID, r.BillID, r.BillNumber, r.Amount, r.OriginalDueDate,
		r.ReminderDate, r.Status, r.Notes,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment reminder for bill %s: %w", bill.BillNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bill: %w", err)
	}
	return &r, nil
}

func (db *Database) GetBills(ctx context.Context) ([]models.Bill, error) {
	query := `SELECT id, bill_number, caterer_id, amount, due_date, created_at FROM bills ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.BillNumber, &b.CatererID, &b.Amount, &b.DueDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (db *Database) GetBillByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	query := `SELECT id, bill_number, caterer_id, amount, due_date, created_at FROM bills WHERE id = $1`

	var b models.Bill
	err := db.Pool.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.BillNumber, &b.CatererID, &b.Amount, &b.DueDate, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to fetch bill: %w", err)
	}
	return &b, nil
}

// DeleteBill removes a bill. Its reminders go with it via the foreign key
// cascade; reminder deletion is owned by bill management, never by the
// reminder endpoints.
func (db *Database) DeleteBill(ctx context.Context, id uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}
