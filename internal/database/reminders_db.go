package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spicetrade-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrReminderNotFound = errors.New("payment reminder not found")

// today is the current calendar day at UTC midnight, matching how DATE
// columns come back from the database.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const reminderColumns = `id, caterer_id, bill_id, bill_number, amount, original_due_date,
		reminder_date, status, is_read, is_acknowledged, acknowledged_at, notes, created_at`

func scanReminder(row pgx.Row) (*models.PaymentReminder, error) {
	var r models.PaymentReminder
	err := row.Scan(
		&r.ID, &r.CatererID, &r.BillID, &r.BillNumber, &r.Amount, &r.OriginalDueDate,
		&r.ReminderDate, &r.Status, &r.IsRead, &r.IsAcknowledged, &r.AcknowledgedAt,
		&r.Notes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreatePaymentReminder inserts a reminder for an issued bill. Reminders are
// only ever created from bills with a due date, so a zero due date or a
// non-positive amount is rejected before touching the database.
func (db *Database) CreatePaymentReminder(ctx context.Context, reminder *models.PaymentReminder) error {
	if reminder.OriginalDueDate.IsZero() {
		return fmt.Errorf("reminder for bill %s has no due date", reminder.BillNumber)
	}
	if !reminder.Amount.IsPositive() {
		return fmt.Errorf("reminder for bill %s has a non-positive amount", reminder.BillNumber)
	}
	if reminder.ReminderDate.IsZero() {
		reminder.ReminderDate = today()
	}

	query := `
		INSERT INTO payment_reminders (caterer_id, bill_id, bill_number, amount, original_due_date, reminder_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := db.Pool.QueryRow(ctx, query,
		reminder.CatererID,
		reminder.BillID,
		reminder.BillNumber,
		reminder.Amount,
		reminder.OriginalDueDate,
		reminder.ReminderDate,
		reminder.Status,
		reminder.Notes,
	).Scan(&reminder.ID, &reminder.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payment reminder: %w", err)
	}
	return nil
}

func (db *Database) GetPaymentReminders(ctx context.Context) ([]models.PaymentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM payment_reminders`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.PaymentReminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

func (db *Database) GetPaymentRemindersByCaterer(ctx context.Context, catererID int) ([]models.PaymentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM payment_reminders WHERE caterer_id = $1`

	rows, err := db.Pool.Query(ctx, query, catererID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.PaymentReminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

func (db *Database) GetPaymentReminderByID(ctx context.Context, id uuid.UUID) (*models.PaymentReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM payment_reminders WHERE id = $1`

	reminder, err := scanReminder(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment reminder: %w", err)
	}
	return reminder, nil
}

// AcknowledgePaymentReminder permanently retires a reminder. The update is
// idempotent and monotonic: a second acknowledgment keeps the original
// acknowledged_at and returns the same terminal row.
func (db *Database) AcknowledgePaymentReminder(ctx context.Context, id uuid.UUID) (*models.PaymentReminder, error) {
	query := `
		UPDATE payment_reminders
		SET is_acknowledged = TRUE,
			acknowledged_at = COALESCE(acknowledged_at, NOW())
		WHERE id = $1
		RETURNING ` + reminderColumns

	reminder, err := scanReminder(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to acknowledge payment reminder: %w", err)
	}
	return reminder, nil
}

func (db *Database) MarkPaymentReminderRead(ctx context.Context, id uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `UPDATE payment_reminders SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark payment reminder read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (db *Database) UpdatePaymentReminderNotes(ctx context.Context, id uuid.UUID, notes string) error {
	result, err := db.Pool.Exec(ctx, `UPDATE payment_reminders SET notes = $1 WHERE id = $2`, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update payment reminder notes: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReminderNotFound
	}
	return nil
}
