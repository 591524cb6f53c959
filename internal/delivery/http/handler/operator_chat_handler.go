package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type OperatorChatHandler struct {
	chatUsecase usecase.OperatorChatUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewOperatorChatHandler(chatUsecase usecase.OperatorChatUsecase, validator *validator.CustomValidator, log *logrus.Logger) *OperatorChatHandler {
	return &OperatorChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
		log:         log,
	}
}

func (h *OperatorChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatUsecase.ListChats(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, err, "Failed to get chats")
		return
	}

	response.Success(w, http.StatusOK, "Chats retrieved successfully", chats)
}

func (h *OperatorChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid chat ID")
		return
	}

	chat, err := h.chatUsecase.GetChat(r.Context(), chatID)
	if err != nil {
		h.writeError(w, err, "Failed to get chat")
		return
	}

	response.Success(w, http.StatusOK, "Chat retrieved successfully", chat)
}

// UpdateChat accepts {"action":"take"} or {"status":"CLOSED"}
func (h *OperatorChatHandler) UpdateChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid chat ID")
		return
	}

	var req dto.UpdateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	chat, err := h.chatUsecase.UpdateChat(r.Context(), chatID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update chat")
		return
	}

	response.Success(w, http.StatusOK, "Chat updated successfully", chat)
}

func (h *OperatorChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid chat ID")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.SendMessage(r.Context(), chatID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *OperatorChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid chat ID")
		return
	}

	if err := h.chatUsecase.DeleteChat(r.Context(), chatID); err != nil {
		h.writeError(w, err, "Failed to delete chat")
		return
	}

	response.Success(w, http.StatusOK, "Chat deleted successfully", nil)
}

// BlockPatient accepts {"action":"block"} or {"action":"unblock"} for the chat's patient
func (h *OperatorChatHandler) BlockPatient(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid chat ID")
		return
	}

	h.setBlocked(w, r, func(req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
		return h.chatUsecase.SetPatientBlocked(r.Context(), chatID, req)
	})
}

// BlockPatientByID is the same operation keyed on the patient, the only way to
// reach a patient whose chats were purged by a block.
func (h *OperatorChatHandler) BlockPatientByID(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	h.setBlocked(w, r, func(req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
		return h.chatUsecase.SetPatientBlockedByID(r.Context(), patientID, req)
	})
}

func (h *OperatorChatHandler) setBlocked(w http.ResponseWriter, r *http.Request, apply func(*dto.BlockPatientRequest) (*dto.BlockPatientResponse, error)) {
	var req dto.BlockPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := apply(&req)
	if err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	message := "Patient unblocked successfully"
	if result.IsMessagesBlocked {
		message = "Patient blocked successfully"
	}
	response.Success(w, http.StatusOK, message, result)
}

func (h *OperatorChatHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, usecase.ErrChatNotFound):
		response.NotFound(w, "Chat not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrChatAlreadyTaken):
		response.Conflict(w, "Chat already taken by another operator")
	case errors.Is(err, usecase.ErrEmptyMessage),
		errors.Is(err, usecase.ErrChatClosed),
		errors.Is(err, usecase.ErrChatAlreadyClosed),
		errors.Is(err, usecase.ErrInvalidChatAction),
		errors.Is(err, usecase.ErrInvalidChatStatus),
		errors.Is(err, usecase.ErrInvalidBlockState):
		response.BadRequest(w, err.Error())
	default:
		h.log.Warnf("Failed to handle chat request: %+v", err)
		response.InternalServerError(w, fallback)
	}
}
