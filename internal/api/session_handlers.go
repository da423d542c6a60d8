package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OpenSession starts a client session and returns its token. Dismissals
// made with this token last until the session expires or the server
// restarts; a new session starts with a clean slate.
func (s *Server) OpenSession(c *gin.Context) {
	sessionID := s.sessions.Open()

	token, err := s.tokens.Generate(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"expires_in": int(s.config.Session.TokenExpiry.Seconds()),
	})
}
