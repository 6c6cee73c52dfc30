package storage

import (
	"encoding/json"
	"errors"

	"cinechat/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

func userCacheKey(userID string) string {
	return "user:" + userID
}

// CacheUser stores a profile snapshot with a fixed expiry.
func (s *Service) CacheUser(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.Redis.Set(s.Ctx, userCacheKey(user.ID), data, userCacheTTL).Err(); err != nil {
		s.logger.Errorw("failed to cache user", "user_id", user.ID, "error", err)
		return err
	}
	return nil
}

// CachedUser returns the cached profile, or (nil, nil) on a miss. Cache
// failures degrade to a miss so lookups fall through to Postgres.
func (s *Service) CachedUser(userID string) (*models.User, error) {
	data, err := s.Redis.Get(s.Ctx, userCacheKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorw("user cache read failed", "user_id", userID, "error", err)
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		s.logger.Warnw("dropping unreadable user cache entry", "user_id", userID, "error", err)
		return nil, nil
	}
	return &user, nil
}

// InvalidateUserCache drops the cached profile after a mutation.
func (s *Service) InvalidateUserCache(userID string) error {
	return s.Redis.Del(s.Ctx, userCacheKey(userID)).Err()
}
