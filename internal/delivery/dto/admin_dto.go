package dto

import (
	"time"

	"github.com/google/uuid"
)

type UnreadCountsResponse struct {
	Feedbacks int64 `json:"feedbacks"`
	Letters   int64 `json:"letters"`
	Chats     int64 `json:"chats"`
}

type LetterResponse struct {
	ID                   uint       `json:"id"`
	PatientID            *uuid.UUID `json:"patient_id,omitempty"`
	Subject              string     `json:"subject"`
	Text                 string     `json:"text"`
	IsRead               bool       `json:"is_read"`
	HasNewPatientMessage bool       `json:"has_new_patient_message"`
	CreatedAt            time.Time  `json:"created_at"`
}

type LetterListResponse struct {
	Letters []LetterResponse `json:"letters"`
	Total   int              `json:"total"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type FeedbackResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Text        string    `json:"text"`
	Date        time.Time `json:"date"`
	Grade       int       `json:"grade"`
	ImageURL    string    `json:"image_url,omitempty"`
	Verified    bool      `json:"verified"`
	ServiceID   *uint     `json:"service_id"`
	ServiceName string    `json:"service_name,omitempty"`
}

type FeedbackListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	Total     int                `json:"total"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	UserName  string                 `json:"user_name,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
