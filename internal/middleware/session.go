package middleware

import (
	"net/http"
	"strings"

	"spicetrade-backend/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionRequired resolves the client session from the Authorization header
// and stashes its id and dismissal set in the request context. Requests
// without a live session are rejected: without a session there is nothing
// to scope dismissals to.
func SessionRequired(tokens *session.TokenManager, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session token required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		sessionID, err := tokens.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			c.Abort()
			return
		}

		dismissed, ok := store.Dismissals(sessionID)
		if !ok {
			// Token is valid but the server no longer knows the session
			// (restart or idle expiry). The client opens a new one.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Set("dismissed", dismissed)
		c.Next()
	}
}
