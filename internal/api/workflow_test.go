package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spicetrade-backend/internal/api"
	"spicetrade-backend/internal/config"
	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestServer(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		godotenv.Load(".env")
	}

	cfg := config.New()

	db, err := database.NewConnection(cfg)
	if err != nil {
		t.Skipf("database not available, skipping workflow test: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	api.SetupRoutes(router, db, cfg)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func openSession(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/v1/session", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to open session: %d - %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("No token in session response: %s", w.Body.String())
	}
	return token
}

func activeIDs(t *testing.T, router *gin.Engine, token string) map[uuid.UUID]bool {
	t.Helper()

	w := doJSON(t, router, "GET", "/api/v1/reminders/active", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to fetch active reminders: %d - %s", w.Code, w.Body.String())
	}

	var reminders []models.PaymentReminder
	json.Unmarshal(w.Body.Bytes(), &reminders)

	ids := make(map[uuid.UUID]bool, len(reminders))
	for _, r := range reminders {
		ids[r.ID] = true
	}
	return ids
}

func TestReminderWorkflow(t *testing.T) {
	router, db := setupTestServer(t)
	defer db.Close()

	token := openSession(t, router)

	// 1. Create a caterer
	catererReq := models.CreateCatererRequest{
		Name:  fmt.Sprintf("Workflow Caterer %d", time.Now().UnixNano()),
		Phone: "+91 11 5555 0000",
		Email: "workflow@test.example",
	}
	w := doJSON(t, router, "POST", "/api/v1/caterers", token, catererReq)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create caterer: %d - %s", w.Code, w.Body.String())
	}
	var caterer models.Caterer
	json.Unmarshal(w.Body.Bytes(), &caterer)

	defer func() {
		// Cascade removes the bill and its reminder too
		db.Pool.Exec(context.Background(), "DELETE FROM caterers WHERE id = $1", caterer.ID)
	}()

	// 2. Issue a bill due in exactly two days: the reminder it creates
	// must immediately show up as active.
	y, m, d := time.Now().Date()
	dueDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)
	billReq := models.IssueBillRequest{
		BillNumber: fmt.Sprintf("WF-%d", time.Now().UnixNano()),
		CatererID:  caterer.ID,
		Amount:     decimal.NewFromFloat(1234.56),
		DueDate:    &dueDate,
		Notes:      "workflow test bill",
	}
	w = doJSON(t, router, "POST", "/api/v1/bills", token, billReq)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to issue bill: %d - %s", w.Code, w.Body.String())
	}
	var issued models.IssueBillResponse
	json.Unmarshal(w.Body.Bytes(), &issued)
	if issued.Reminder == nil {
		t.Fatal("Issuing a bill with a due date should create a reminder")
	}
	reminderID := issued.Reminder.ID

	if ids := activeIDs(t, router, token); !ids[reminderID] {
		t.Fatal("Reminder due in two days should be active")
	}

	// 3. Dismiss hides it for this session only
	w = doJSON(t, router, "POST", "/api/v1/reminders/"+reminderID.String()+"/dismiss", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to dismiss reminder: %d - %s", w.Code, w.Body.String())
	}
	if ids := activeIDs(t, router, token); ids[reminderID] {
		t.Error("Dismissed reminder should not be active in the same session")
	}

	// 4. A fresh session (the restart case) sees it again
	otherToken := openSession(t, router)
	if ids := activeIDs(t, router, otherToken); !ids[reminderID] {
		t.Error("Dismissed reminder should be visible in a new session")
	}

	// 5. Mark read: no effect on visibility
	w = doJSON(t, router, "POST", "/api/v1/reminders/"+reminderID.String()+"/read", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to mark reminder read: %d - %s", w.Code, w.Body.String())
	}
	if ids := activeIDs(t, router, otherToken); !ids[reminderID] {
		t.Error("Marking read must not change visibility")
	}

	// 6. Acknowledge retires it everywhere, permanently
	w = doJSON(t, router, "POST", "/api/v1/reminders/"+reminderID.String()+"/acknowledge", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to acknowledge reminder: %d - %s", w.Code, w.Body.String())
	}
	var acked models.PaymentReminder
	json.Unmarshal(w.Body.Bytes(), &acked)
	if !acked.IsAcknowledged || acked.AcknowledgedAt == nil {
		t.Errorf("Acknowledged reminder missing terminal state: %+v", acked)
	}
	firstAckedAt := *acked.AcknowledgedAt

	if ids := activeIDs(t, router, otherToken); ids[reminderID] {
		t.Error("Acknowledged reminder must not be active in any session")
	}

	// 7. Acknowledging again is a no-op success with the same timestamp
	w = doJSON(t, router, "POST", "/api/v1/reminders/"+reminderID.String()+"/acknowledge", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Second acknowledge should succeed: %d - %s", w.Code, w.Body.String())
	}
	var ackedAgain models.PaymentReminder
	json.Unmarshal(w.Body.Bytes(), &ackedAgain)
	if ackedAgain.AcknowledgedAt == nil || !ackedAgain.AcknowledgedAt.Equal(firstAckedAt) {
		t.Errorf("Second acknowledge changed acknowledged_at: %v != %v", ackedAgain.AcknowledgedAt, firstAckedAt)
	}
}

func TestRemindersRequireSession(t *testing.T) {
	router, db := setupTestServer(t)
	defer db.Close()

	w := doJSON(t, router, "GET", "/api/v1/reminders/active", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a session token, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/reminders/active", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with an invalid token, got %d", w.Code)
	}
}

func TestBillWithoutDueDateCreatesNoReminder(t *testing.T) {
	router, db := setupTestServer(t)
	defer db.Close()

	token := openSession(t, router)

	catererReq := models.CreateCatererRequest{
		Name: fmt.Sprintf("No Due Date Caterer %d", time.Now().UnixNano()),
	}
	w := doJSON(t, router, "POST", "/api/v1/caterers", token, catererReq)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create caterer: %d - %s", w.Code, w.Body.String())
	}
	var caterer models.Caterer
	json.Unmarshal(w.Body.Bytes(), &caterer)
	defer db.Pool.Exec(context.Background(), "DELETE FROM caterers WHERE id = $1", caterer.ID)

	billReq := models.IssueBillRequest{
		BillNumber: fmt.Sprintf("ND-%d", time.Now().UnixNano()),
		CatererID:  caterer.ID,
		Amount:     decimal.NewFromFloat(99.99),
	}
	w = doJSON(t, router, "POST", "/api/v1/bills", token, billReq)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to issue bill: %d - %s", w.Code, w.Body.String())
	}

	var issued models.IssueBillResponse
	json.Unmarshal(w.Body.Bytes(), &issued)
	if issued.Reminder != nil {
		t.Errorf("Bill without a due date should not create a reminder, got %+v", issued.Reminder)
	}
}
