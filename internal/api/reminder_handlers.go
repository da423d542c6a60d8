package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/models"
	"spicetrade-backend/internal/reminder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func sessionDismissals(c *gin.Context) *reminder.DismissalSet {
	return c.MustGet("dismissed").(*reminder.DismissalSet)
}

// GetReminders is the management list: every reminder, acknowledged or not,
// with its status label recomputed from the due date. The stored label is
// never trusted for anything; it only exists so the list renders without a
// round of date math in the client. The sort is cosmetic.
func (s *Server) GetReminders(c *gin.Context) {
	ctx := c.Request.Context()

	reminders, err := s.db.GetPaymentReminders(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders"})
		return
	}

	now := time.Now()
	for i := range reminders {
		status, err := reminder.Status(reminders[i].OriginalDueDate, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder is missing its due date"})
			return
		}
		reminders[i].Status = status
	}

	priority := map[string]int{
		reminder.StatusOverdue:  0,
		reminder.StatusDueToday: 1,
		reminder.StatusUpcoming: 2,
		reminder.StatusPending:  3,
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		if priority[reminders[i].Status] != priority[reminders[j].Status] {
			return priority[reminders[i].Status] < priority[reminders[j].Status]
		}
		return reminders[i].ReminderDate.After(reminders[j].ReminderDate)
	})

	if reminders == nil {
		reminders = []models.PaymentReminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

// GetActiveReminders returns the reminders currently surfaced as active
// notifications for this session: unacknowledged, not dismissed, and due
// in exactly two days. An empty list is the common case.
func (s *Server) GetActiveReminders(c *gin.Context) {
	ctx := c.Request.Context()

	reminders, err := s.db.GetPaymentReminders(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders"})
		return
	}

	visible, err := reminder.Visible(reminders, sessionDismissals(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder is missing its due date"})
		return
	}

	if visible == nil {
		visible = []models.PaymentReminder{}
	}
	c.JSON(http.StatusOK, visible)
}

// AcknowledgeReminder permanently retires a reminder for every client.
// Acknowledging twice is a success, not an error.
func (s *Server) AcknowledgeReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID"})
		return
	}

	acked, err := s.db.AcknowledgePaymentReminder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge reminder"})
		return
	}

	c.JSON(http.StatusOK, acked)
}

// DismissReminder hides a reminder for the rest of this session only.
// Nothing is persisted: the reminder comes back after a restart if it
// still qualifies.
func (s *Server) DismissReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID"})
		return
	}

	// Confirm the reminder exists before recording the dismissal, so a
	// failed lookup never leaves session state half-committed.
	if _, err := s.db.GetPaymentReminderByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminder"})
		return
	}

	sessionDismissals(c).Add(id)
	c.JSON(http.StatusOK, gin.H{"message": "Reminder dismissed for this session"})
}

// MarkReminderRead flags a reminder as opened. Read state never affects
// visibility.
func (s *Server) MarkReminderRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID"})
		return
	}

	if err := s.db.MarkPaymentReminderRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark reminder read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder marked as read"})
}

func (s *Server) UpdateReminderNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID"})
		return
	}

	var req models.UpdateReminderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.db.UpdatePaymentReminderNotes(c.Request.Context(), id, req.Notes); err != nil {
		if errors.Is(err, database.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder notes updated"})
}
