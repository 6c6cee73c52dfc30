package handler

import (
	"net/http"
	"strings"

	"cinechat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// GetChats lists the authenticated user's conversations with receiver
// profiles populated.
func (h *Handler) GetChats(c *gin.Context) {
	userID := currentUserID(c)

	chats, err := h.Storage.GetChatsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if len(chats) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No chats found", "chats": []models.Chat{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetReceiverProfile resolves the counterpart of a conversation from its
// room identifier and creates the caller's chat-index row on first contact.
func (h *Handler) GetReceiverProfile(c *gin.Context) {
	senderID := currentUserID(c)
	chatID := c.Param("chatId")

	ids := strings.Split(chatID, "_")
	if len(ids) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID format. Provide a valid chat ID."})
		return
	}

	var receiverID string
	switch senderID {
	case ids[0]:
		receiverID = ids[1]
	case ids[1]:
		receiverID = ids[0]
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sender ID does not match any provided IDs."})
		return
	}

	receiver, err := h.lookupUser(receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Please try again later."})
		return
	}
	if receiver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found."})
		return
	}

	chat, err := h.Storage.GetChatBySender(chatID, senderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Please try again later."})
		return
	}

	if chat != nil {
		c.JSON(http.StatusOK, gin.H{"receiver": receiver, "chat": chat})
		return
	}

	chat = &models.Chat{ChatID: chatID, SenderID: senderID, ReceiverID: receiver.ID}
	if err := h.Storage.SaveChat(chat); err != nil {
		h.logger.Errorw("failed to create chat index entry", "chat_id", chatID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Please try again later."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"receiver": receiver, "chat": chat})
}

// GetUser returns a member profile, cache-aside.
func (h *Handler) GetUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.lookupUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type profileUpdate struct {
	Username       string   `json:"username"`
	UserImage      string   `json:"userImage"`
	FavoriteGenres []string `json:"favoriteGenres"`
}

// UpdateProfile mutates the caller's profile and drops the stale cache
// entry; the next lookup re-caches.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var req profileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.Storage.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.UserImage != "" {
		user.UserImage = req.UserImage
	}
	if req.FavoriteGenres != nil {
		user.FavoriteGenres = pq.StringArray(req.FavoriteGenres)
	}

	if err := h.Storage.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.Storage.InvalidateUserCache(userID); err != nil {
		h.logger.Warnw("failed to invalidate user cache", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// lookupUser reads through the profile cache. Cache misses and cache
// failures both fall back to Postgres; a fresh hit is re-cached best-effort.
func (h *Handler) lookupUser(userID string) (*models.User, error) {
	if cached, err := h.Storage.CachedUser(userID); err == nil && cached != nil {
		return cached, nil
	}

	user, err := h.Storage.GetUserByID(userID)
	if err != nil || user == nil {
		return user, err
	}

	if err := h.Storage.CacheUser(user); err != nil {
		h.logger.Warnw("failed to cache user", "user_id", userID, "error", err)
	}
	return user, nil
}
