package storage

import (
	"encoding/json"

	"cinechat/backend/internal/models"
)

func messageKey(roomID string) string {
	return "chat:" + roomID + ":messages"
}

// AppendMessage serializes the message, prepends it to the room's log and
// resets the log's TTL. Redis list-prepend is atomic, so concurrent appends
// to the same room interleave without corrupting the log.
func (s *Service) AppendMessage(roomID string, msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Errorw("failed to serialize message", "room_id", roomID, "error", err)
		return err
	}

	key := messageKey(roomID)
	if err := s.Redis.LPush(s.Ctx, key, data).Err(); err != nil {
		s.logger.Errorw("failed to append message", "room_id", roomID, "error", err)
		return err
	}

	// The message is in the log at this point. A failed TTL refresh only
	// delays expiry, so it must not mark the append as failed.
	if err := s.Redis.Expire(s.Ctx, key, MessageTTL).Err(); err != nil {
		s.logger.Warnw("failed to refresh log TTL", "room_id", roomID, "error", err)
	}

	return nil
}

// RoomMessages returns the room's stored history in chronological order.
// A missing or expired log is an empty slice, not an error; records that no
// longer unmarshal are skipped. Reads do not touch the log's TTL.
func (s *Service) RoomMessages(roomID string) ([]models.ChatMessage, error) {
	raw, err := s.Redis.LRange(s.Ctx, messageKey(roomID), 0, -1).Result()
	if err != nil {
		s.logger.Errorw("failed to read message log", "room_id", roomID, "error", err)
		return nil, err
	}

	messages := make([]models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg models.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			s.logger.Warnw("skipping unreadable message record", "room_id", roomID, "error", err)
			continue
		}
		messages = append(messages, msg)
	}

	// Stored newest-first; replay oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
