package handler

import (
	"net/http"
	"strings"

	"cinechat/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key the middleware stores the verified
// identity under.
const userIDKey = "userID"

// AuthRequired guards the REST surface with the same bearer-token check the
// socket gate uses.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}

		identity, err := auth.VerifyWithTimeout(c.Request.Context(), h.Verifier, strings.TrimPrefix(header, "Bearer "), h.VerifyTimeout)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(userIDKey, identity.UserID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
