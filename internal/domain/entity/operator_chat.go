package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatStatus is the lifecycle state of an operator chat.
// WAITING -> ACTIVE -> CLOSED; CLOSED is terminal.
type ChatStatus string

const (
	ChatStatusWaiting ChatStatus = "WAITING"
	ChatStatusActive  ChatStatus = "ACTIVE"
	ChatStatusClosed  ChatStatus = "CLOSED"
)

func (s ChatStatus) Valid() bool {
	switch s {
	case ChatStatusWaiting, ChatStatusActive, ChatStatusClosed:
		return true
	}
	return false
}

// OperatorChat is a support conversation owned by a patient and, once taken, one operator.
type OperatorChat struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	OperatorID        *uuid.UUID `gorm:"type:uuid;index" json:"operator_id,omitempty"`
	Status            ChatStatus `gorm:"type:varchar(20);not null;default:'WAITING';index" json:"status"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastMessageAt     *time.Time `gorm:"index" json:"last_message_at,omitempty"`
	HasUnreadOperator bool       `gorm:"not null;default:false;index" json:"has_unread_operator"`
	HasUnreadPatient  bool       `gorm:"not null;default:false" json:"has_unread_patient"`

	// Relationships
	Patient  Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Operator *Patient      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	Messages []ChatMessage `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

func (OperatorChat) TableName() string {
	return "operator_chats"
}

func (c *OperatorChat) IsWaiting() bool {
	return c.Status == ChatStatusWaiting
}

func (c *OperatorChat) IsClosed() bool {
	return c.Status == ChatStatusClosed
}

// ChatFilter narrows the operator chat list.
type ChatFilter struct {
	Status *ChatStatus
}
