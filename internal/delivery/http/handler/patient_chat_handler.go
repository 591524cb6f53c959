package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type PatientChatHandler struct {
	chatUsecase usecase.PatientChatUsecase
	validator   *validator.CustomValidator
}

func NewPatientChatHandler(chatUsecase usecase.PatientChatUsecase, validator *validator.CustomValidator) *PatientChatHandler {
	return &PatientChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *PatientChatHandler) GetMyChat(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chatUsecase.GetMyChat(r.Context())
	if err != nil {
		writePatientChatError(w, err, "Failed to get chat")
		return
	}

	response.Success(w, http.StatusOK, "Chat retrieved successfully", chat)
}

func (h *PatientChatHandler) OpenChat(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chatUsecase.OpenChat(r.Context())
	if err != nil {
		writePatientChatError(w, err, "Failed to open chat")
		return
	}

	response.Success(w, http.StatusOK, "Chat opened successfully", chat)
}

func (h *PatientChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.SendMessage(r.Context(), &req)
	if err != nil {
		writePatientChatError(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func writePatientChatError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrPatientNotFound):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, usecase.ErrNoOpenChat):
		response.NotFound(w, "You have no open chat")
	case errors.Is(err, usecase.ErrMessagesBlocked):
		response.Forbidden(w, "You are not allowed to send messages")
	case errors.Is(err, usecase.ErrEmptyMessage):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
