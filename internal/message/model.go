package message

import (
	"time"
)

// Message represents the messages table. Messages hang off an accepted
// private event and are only exchanged between its two participants.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"message_id"`
	PrivateEventID uint      `gorm:"not null;index" json:"private_event_id"`
	SenderKind     string    `gorm:"type:varchar(10);not null" json:"sender_kind"` // user or band
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

type SendRequest struct {
	Body string `json:"body" binding:"required"`
}
