package models

import "time"

// Chat is the durable index entry for a direct-message conversation. One row
// exists per (sender, room) so each participant sees the conversation in
// their chat list; the messages themselves live only in the TTL-bound Redis
// log keyed by ChatID.
type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ChatID     string    `gorm:"index;not null" json:"chatId"`
	SenderID   string    `gorm:"index;not null" json:"senderId"`
	ReceiverID string    `gorm:"not null" json:"receiverId"`
	CreatedAt  time.Time `json:"createdAt"`

	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver"`
}
