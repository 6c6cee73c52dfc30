package storage

import (
	"context"
	"errors"
	"time"

	"cinechat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// MessageTTL is the room log lifetime. Every append resets the whole
	// log's expiry to this window; there is no per-message expiry.
	MessageTTL = 24 * time.Hour

	// userCacheTTL matches the profile cache window of the upstream site.
	userCacheTTL = 7 * 24 * time.Hour
)

// Storage is everything the messaging layer and its collaborator endpoints
// need from the persistence tier.
type Storage interface {
	// TTL-bound per-room message log (Redis).
	AppendMessage(roomID string, msg models.ChatMessage) error
	RoomMessages(roomID string) ([]models.ChatMessage, error)

	// Profile cache (Redis).
	CacheUser(user *models.User) error
	CachedUser(userID string) (*models.User, error)
	InvalidateUserCache(userID string) error

	// User directory and chat index (Postgres).
	SaveUser(user *models.User) error
	GetUserByID(userID string) (*models.User, error)
	SaveChat(chat *models.Chat) error
	GetChatBySender(chatID, senderID string) (*models.Chat, error)
	GetChatsForUser(userID string) ([]models.Chat, error)
}

// Service implements Storage over gorm and go-redis.
type Service struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ctx    context.Context
	logger *zap.SugaredLogger
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client, logger *zap.SugaredLogger) *Service {
	return &Service{
		DB:     db,
		Redis:  rdb,
		Ctx:    context.Background(),
		logger: logger,
	}
}

// SaveUser upserts a user in PostgreSQL.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID returns the user or (nil, nil) when no row exists.
func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User

	err := s.DB.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorw("failed to load user", "user_id", userID, "error", err)
		return nil, err
	}
	return &user, nil
}

// SaveChat creates a chat-index row.
func (s *Service) SaveChat(chat *models.Chat) error {
	return s.DB.Create(chat).Error
}

// GetChatBySender returns the sender's index row for a conversation, or
// (nil, nil) when the sender has not opened it yet.
func (s *Service) GetChatBySender(chatID, senderID string) (*models.Chat, error) {
	var chat models.Chat

	err := s.DB.Where("chat_id = ? AND sender_id = ?", chatID, senderID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorw("failed to load chat", "chat_id", chatID, "error", err)
		return nil, err
	}
	return &chat, nil
}

// GetChatsForUser lists the user's conversations with receiver profiles
// populated, newest first.
func (s *Service) GetChatsForUser(userID string) ([]models.Chat, error) {
	var chats []models.Chat

	err := s.DB.Preload("Receiver").
		Where("sender_id = ?", userID).
		Order("created_at desc").
		Find(&chats).Error
	if err != nil {
		s.logger.Errorw("failed to list chats", "user_id", userID, "error", err)
		return nil, err
	}
	return chats, nil
}
