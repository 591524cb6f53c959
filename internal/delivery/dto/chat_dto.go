package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,notblank,max=5000"`
}

// UpdateChatRequest carries either {"action":"take"} or {"status":"CLOSED"}.
type UpdateChatRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

type BlockPatientRequest struct {
	Action string `json:"action" validate:"required,oneof=block unblock"`
}

// Response DTOs

type ChatMessageResponse struct {
	ID         uint      `json:"id"`
	ChatID     uint      `json:"chat_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

type ChatResponse struct {
	ID                uint                  `json:"id"`
	PatientID         uuid.UUID             `json:"patient_id"`
	OperatorID        *uuid.UUID            `json:"operator_id"`
	Status            string                `json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	LastMessageAt     *time.Time            `json:"last_message_at"`
	HasUnreadOperator bool                  `json:"has_unread_operator"`
	HasUnreadPatient  bool                  `json:"has_unread_patient"`
	Patient           *PatientSummary       `json:"patient,omitempty"`
	Operator          *PatientSummary       `json:"operator,omitempty"`
	Messages          []ChatMessageResponse `json:"messages,omitempty"`
}

type ChatListResponse struct {
	Chats []ChatResponse `json:"chats"`
	Total int            `json:"total"`
}

type ChatDetailResponse struct {
	Chat *ChatResponse `json:"chat"`
}

type BlockPatientResponse struct {
	PatientID         uuid.UUID `json:"patient_id"`
	IsMessagesBlocked bool      `json:"is_messages_blocked"`
	DeletedChats      int64     `json:"deleted_chats"`
}
