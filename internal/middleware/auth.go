package middleware

import (
	"net/http"
	"strings"

	"goalboard/internal/app/session"

	"github.com/gin-gonic/gin"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the user ID set by RequireAuth, 0 if unset.
func UserIDFromContext(c *gin.Context) uint64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(uint64)
	if !ok {
		return 0
	}
	return id
}

// RequireAuth resolves the session key from the session cookie or an
// Authorization bearer header and stores the user ID in the context.
// Requests without a valid session are rejected with 401.
func RequireAuth(sessions session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := SessionKeyFromRequest(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, err := sessions.UserIDByKey(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// SessionKeyFromRequest returns the session key carried by the request:
// the session cookie, or the Authorization bearer token as fallback.
func SessionKeyFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
