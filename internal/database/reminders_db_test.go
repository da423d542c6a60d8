package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"spicetrade-backend/internal/config"
	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func connectTestDB(t *testing.T) *database.Database {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		godotenv.Load(".env")
	}

	db, err := database.NewConnection(config.New())
	if err != nil {
		t.Skipf("database not available, skipping: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func seedCaterer(t *testing.T, db *database.Database) int {
	t.Helper()

	var id int
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO caterers (name) VALUES ($1) RETURNING id`,
		fmt.Sprintf("Store Test Caterer %d", time.Now().UnixNano()),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed caterer: %v", err)
	}
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM caterers WHERE id = $1`, id)
	})
	return id
}

func TestCreatePaymentReminderValidation(t *testing.T) {
	// Validation runs before any query, so no connection is needed.
	db := &database.Database{}
	ctx := context.Background()

	noDueDate := &models.PaymentReminder{
		BillNumber: "B-1",
		Amount:     decimal.NewFromInt(100),
	}
	if err := db.CreatePaymentReminder(ctx, noDueDate); err == nil {
		t.Error("expected error for reminder without due date")
	}

	badAmount := &models.PaymentReminder{
		BillNumber:      "B-2",
		Amount:          decimal.NewFromInt(-5),
		OriginalDueDate: time.Now().AddDate(0, 0, 3),
	}
	if err := db.CreatePaymentReminder(ctx, badAmount); err == nil {
		t.Error("expected error for reminder with non-positive amount")
	}
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	db := connectTestDB(t)
	defer db.Close()

	ctx := context.Background()
	catererID := seedCaterer(t, db)

	y, m, d := time.Now().Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)

	bill := models.Bill{
		BillNumber: fmt.Sprintf("ACK-%d", time.Now().UnixNano()),
		CatererID:  catererID,
		Amount:     decimal.NewFromFloat(500.25),
		DueDate:    &due,
	}
	created, err := db.IssueBill(ctx, &bill, "idempotency test")
	if err != nil {
		t.Fatalf("failed to issue bill: %v", err)
	}
	if created == nil {
		t.Fatal("expected a reminder for a bill with a due date")
	}

	first, err := db.AcknowledgePaymentReminder(ctx, created.ID)
	if err != nil {
		t.Fatalf("first acknowledge failed: %v", err)
	}
	if !first.IsAcknowledged || first.AcknowledgedAt == nil {
		t.Fatalf("reminder not in terminal state after acknowledge: %+v", first)
	}

	second, err := db.AcknowledgePaymentReminder(ctx, created.ID)
	if err != nil {
		t.Fatalf("second acknowledge failed: %v", err)
	}
	if !second.AcknowledgedAt.Equal(*first.AcknowledgedAt) {
		t.Errorf("acknowledged_at moved on second acknowledge: %v != %v",
			second.AcknowledgedAt, first.AcknowledgedAt)
	}
}

func TestMarkReadDoesNotAcknowledge(t *testing.T) {
	db := connectTestDB(t)
	defer db.Close()

	ctx := context.Background()
	catererID := seedCaterer(t, db)

	y, m, d := time.Now().Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 5)

	bill := models.Bill{
		BillNumber: fmt.Sprintf("READ-%d", time.Now().UnixNano()),
		CatererID:  catererID,
		Amount:     decimal.NewFromFloat(75.00),
		DueDate:    &due,
	}
	created, err := db.IssueBill(ctx, &bill, "")
	if err != nil {
		t.Fatalf("failed to issue bill: %v", err)
	}

	if err := db.MarkPaymentReminderRead(ctx, created.ID); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	got, err := db.GetPaymentReminderByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to fetch reminder: %v", err)
	}
	if !got.IsRead {
		t.Error("reminder should be read")
	}
	if got.IsAcknowledged || got.AcknowledgedAt != nil {
		t.Errorf("marking read must not acknowledge: %+v", got)
	}
}

func TestGetPaymentReminderByIDNotFound(t *testing.T) {
	db := connectTestDB(t)
	defer db.Close()

	_, err := db.GetPaymentReminderByID(context.Background(), uuid.New())
	if !errors.Is(err, database.ErrReminderNotFound) {
		t.Errorf("expected ErrReminderNotFound, got %v", err)
	}
}

func TestDeleteBillRemovesReminder(t *testing.T) {
	db := connectTestDB(t)
	defer db.Close()

	ctx := context.Background()
	catererID := seedCaterer(t, db)

	y, m, d := time.Now().Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4)

	bill := models.Bill{
		BillNumber: fmt.Sprintf("DEL-%d", time.Now().UnixNano()),
		CatererID:  catererID,
		Amount:     decimal.NewFromFloat(310.40),
		DueDate:    &due,
	}
	created, err := db.IssueBill(ctx, &bill, "")
	if err != nil {
		t.Fatalf("failed to issue bill: %v", err)
	}

	if err := db.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("failed to delete bill: %v", err)
	}

	if _, err := db.GetPaymentReminderByID(ctx, created.ID); !errors.Is(err, database.ErrReminderNotFound) {
		t.Errorf("reminder should cascade with its bill, got %v", err)
	}
}
