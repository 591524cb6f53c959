package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Phone    string `json:"phone" validate:"omitempty,min=5,max=20"`
}

type LoginRequest struct {
	LoginOrEmail string `json:"login_or_email" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// Response DTOs

type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expires_in"`
	Patient   *PatientResponse `json:"patient"`
}

type PatientResponse struct {
	ID                uuid.UUID `json:"id"`
	Login             string    `json:"login"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone,omitempty"`
	Role              string    `json:"role"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	IsMessagesBlocked bool      `json:"is_messages_blocked"`
	RegistrationDate  time.Time `json:"registration_date"`
}

// PatientSummary is the compact participant view embedded in chats.
type PatientSummary struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	IsMessagesBlocked bool      `json:"is_messages_blocked"`
}
