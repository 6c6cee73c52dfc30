package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// IssueToken signs a chat token for an existing member. Credential checks
// live in the session service; this endpoint only converts an established
// identity into the token the socket gate consumes.
func (h *Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := h.Storage.GetUserByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		h.logger.Errorw("token generation failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID})
}
