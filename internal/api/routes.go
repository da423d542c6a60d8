package api

import (
	"spicetrade-backend/internal/config"
	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config) {
	server := NewServer(db, cfg)

	// CORS middleware
	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "spicetrade-backend",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session open (no session required yet)
		v1.POST("/session", server.OpenSession)

		// Session-scoped routes
		scoped := v1.Group("/")
		scoped.Use(middleware.SessionRequired(server.tokens, server.sessions))
		{
			// Reminder routes
			reminders := scoped.Group("/reminders")
			{
				reminders.GET("", server.GetReminders)
				reminders.GET("/active", server.GetActiveReminders)
				reminders.POST("/:id/acknowledge", server.AcknowledgeReminder)
				reminders.POST("/:id/dismiss", server.DismissReminder)
				reminders.POST("/:id/read", server.MarkReminderRead)
				reminders.PUT("/:id/notes", server.UpdateReminderNotes)
			}

			// Caterer routes
			caterers := scoped.Group("/caterers")
			{
				caterers.GET("", server.GetCaterers)
				caterers.POST("", server.CreateCaterer)
				caterers.GET("/:id", server.GetCaterer)
				caterers.PUT("/:id", server.UpdateCaterer)
				caterers.DELETE("/:id", server.DeleteCaterer)
				caterers.GET("/:id/reminders", server.GetCatererReminders)
			}

			// Bill routes
			bills := scoped.Group("/bills")
			{
				bills.GET("", server.GetBills)
				bills.POST("", server.IssueBill)
				bills.GET("/:id", server.GetBill)
				bills.DELETE("/:id", server.DeleteBill)
			}
		}
	}
}
