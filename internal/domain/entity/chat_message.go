package entity

import (
	"time"

	"github.com/google/uuid"
)

// SenderType tells which side of the chat wrote a message.
type SenderType string

const (
	SenderPatient  SenderType = "patient"
	SenderOperator SenderType = "operator"
)

// ChatMessage is immutable after creation except for IsRead.
type ChatMessage struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID     uint       `gorm:"not null;index" json:"chat_id"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null" json:"sender_id"`
	SenderType SenderType `gorm:"type:varchar(10);not null" json:"sender_type"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	IsRead     bool       `gorm:"not null;default:false" json:"is_read"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
