package api

import (
	"errors"
	"net/http"

	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Bill Handlers
func (s *Server) GetBills(c *gin.Context) {
	bills, err := s.db.GetBills(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	if bills == nil {
		bills = []models.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

func (s *Server) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	bill, err := s.db.GetBillByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bill"})
		return
	}

	c.JSON(http.StatusOK, bill)
}

// IssueBill records a supplier bill. A bill with a due date gets a payment
// reminder in the same transaction; a bill without one gets none.
func (s *Server) IssueBill(c *gin.Context) {
	var req models.IssueBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill := models.Bill{
		BillNumber: req.BillNumber,
		CatererID:  req.CatererID,
		Amount:     req.Amount,
		DueDate:    req.DueDate,
	}

	created, err := s.db.IssueBill(c.Request.Context(), &bill, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue bill"})
		return
	}

	c.JSON(http.StatusCreated, models.IssueBillResponse{
		Bill:     bill,
		Reminder: created,
	})
}

func (s *Server) DeleteBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	if err := s.db.DeleteBill(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
