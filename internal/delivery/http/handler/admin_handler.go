package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
)

// AdminHandler serves the back-office menu: badges, letters and feedback moderation.
type AdminHandler struct {
	unreadUsecase   usecase.UnreadCountUsecase
	letterUsecase   usecase.LetterUsecase
	feedbackUsecase usecase.FeedbackUsecase
}

func NewAdminHandler(
	unreadUsecase usecase.UnreadCountUsecase,
	letterUsecase usecase.LetterUsecase,
	feedbackUsecase usecase.FeedbackUsecase,
) *AdminHandler {
	return &AdminHandler{
		unreadUsecase:   unreadUsecase,
		letterUsecase:   letterUsecase,
		feedbackUsecase: feedbackUsecase,
	}
}

func (h *AdminHandler) GetUnreadCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.unreadUsecase.GetUnreadCounts(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthenticated) {
			response.Unauthorized(w, "Authentication required")
			return
		}
		response.InternalServerError(w, "Failed to get unread counts")
		return
	}

	response.Success(w, http.StatusOK, "Unread counts retrieved successfully", counts)
}

func (h *AdminHandler) GetAllLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := h.letterUsecase.GetAllLetters(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get letters")
		return
	}

	response.Success(w, http.StatusOK, "Letters retrieved successfully", letters)
}

func (h *AdminHandler) MarkAllLettersRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.letterUsecase.MarkAllRead(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthenticated) {
			response.Unauthorized(w, "Authentication required")
			return
		}
		response.InternalServerError(w, "Failed to mark letters read")
		return
	}

	response.Success(w, http.StatusOK, "All letters marked as read", result)
}

// GetAllFeedbacks accepts an optional ?verified=true|false filter
func (h *AdminHandler) GetAllFeedbacks(w http.ResponseWriter, r *http.Request) {
	var verified *bool
	if raw := r.URL.Query().Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "verified must be true or false")
			return
		}
		verified = &v
	}

	feedbacks, err := h.feedbackUsecase.GetAllFeedbacks(r.Context(), verified)
	if err != nil {
		response.InternalServerError(w, "Failed to get feedbacks")
		return
	}

	response.Success(w, http.StatusOK, "Feedbacks retrieved successfully", feedbacks)
}

func (h *AdminHandler) VerifyFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	feedback, err := h.feedbackUsecase.VerifyFeedback(r.Context(), id)
	if err != nil {
		writeFeedbackError(w, err, "Failed to verify feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback verified successfully", feedback)
}

func (h *AdminHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	if err := h.feedbackUsecase.DeleteFeedback(r.Context(), id); err != nil {
		writeFeedbackError(w, err, "Failed to delete feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback deleted successfully", nil)
}

func writeFeedbackError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, usecase.ErrFeedbackNotFound):
		response.NotFound(w, "Feedback not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
