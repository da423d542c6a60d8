package api

import (
	"net/http"
	"strconv"
	"time"

	"spicetrade-backend/internal/models"
	"spicetrade-backend/internal/reminder"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// Caterer Handlers
func (s *Server) GetCaterers(c *gin.Context) {
	ctx := c.Request.Context()

	query := `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM caterers
		ORDER BY name
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch caterers"})
		return
	}
	defer rows.Close()

	var caterers []models.Caterer
	for rows.Next() {
		var caterer models.Caterer
		err := rows.Scan(
			&caterer.ID, &caterer.Name, &caterer.Phone, &caterer.Email,
			&caterer.Address, &caterer.CreatedAt, &caterer.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan caterer"})
			return
		}
		caterers = append(caterers, caterer)
	}

	if caterers == nil {
		caterers = []models.Caterer{}
	}
	c.JSON(http.StatusOK, caterers)
}

func (s *Server) GetCaterer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caterer ID"})
		return
	}

	ctx := c.Request.Context()
	var caterer models.Caterer

	query := `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM caterers
		WHERE id = $1
	`

	err = s.db.Pool.QueryRow(ctx, query, id).Scan(
		&caterer.ID, &caterer.Name, &caterer.Phone, &caterer.Email,
		&caterer.Address, &caterer.CreatedAt, &caterer.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Caterer not found"})
		return
	}

	c.JSON(http.StatusOK, caterer)
}

func (s *Server) CreateCaterer(c *gin.Context) {
	var req models.CreateCatererRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var caterer models.Caterer

	query := `
		INSERT INTO caterers (name, phone, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, phone, email, address, created_at, updated_at
	`

	err := s.db.Pool.QueryRow(ctx, query, req.Name, req.Phone, req.Email, req.Address).Scan(
		&caterer.ID, &caterer.Name, &caterer.Phone, &caterer.Email,
		&caterer.Address, &caterer.CreatedAt, &caterer.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create caterer"})
		return
	}

	c.JSON(http.StatusCreated, caterer)
}

func (s *Server) UpdateCaterer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caterer ID"})
		return
	}

	var req models.UpdateCatererRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var caterer models.Caterer

	query := `
		UPDATE caterers
		SET name = $1, phone = $2, email = $3, address = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, phone, email, address, created_at, updated_at
	`

	err = s.db.Pool.QueryRow(ctx, query, req.Name, req.Phone, req.Email, req.Address, id).Scan(
		&caterer.ID, &caterer.Name, &caterer.Phone, &caterer.Email,
		&caterer.Address, &caterer.CreatedAt, &caterer.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Caterer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update caterer"})
		return
	}

	c.JSON(http.StatusOK, caterer)
}

// GetCatererReminders lists one caterer's reminders with fresh status
// labels, for the per-supplier billing view.
func (s *Server) GetCatererReminders(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caterer ID"})
		return
	}

	reminders, err := s.db.GetPaymentRemindersByCaterer(c.Request.Context(), id)
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

	if reminders == nil {
		reminders = []models.PaymentReminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) DeleteCaterer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caterer ID"})
		return
	}

	ctx := c.Request.Context()
	result, err := s.db.Pool.Exec(ctx, "DELETE FROM caterers WHERE id = $1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete caterer"})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Caterer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Caterer deleted successfully"})
}
