package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backoffice/internal/delivery/dto"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAdminRouter(unread *unreadCountUsecaseMock, letters *letterUsecaseMock, feedbacks *feedbackUsecaseMock) *mux.Router {
	h := NewAdminHandler(unread, letters, feedbacks)
	r := mux.NewRouter()
	r.HandleFunc("/unread-counts", h.GetUnreadCounts).Methods(http.MethodGet)
	r.HandleFunc("/letters/mark-all-read", h.MarkAllLettersRead).Methods(http.MethodPost)
	r.HandleFunc("/feedbacks", h.GetAllFeedbacks).Methods(http.MethodGet)
	r.HandleFunc("/feedbacks/{id}/verify", h.VerifyFeedback).Methods(http.MethodPatch)
	return r
}

func TestGetUnreadCountsPayload(t *testing.T) {
	unread := new(unreadCountUsecaseMock)
	router := setupAdminRouter(unread, new(letterUsecaseMock), new(feedbackUsecaseMock))

	unread.On("GetUnreadCounts", mock.Anything).
		Return(&dto.UnreadCountsResponse{Feedbacks: 4, Letters: 0, Chats: 2}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unread-counts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(4), data["feedbacks"])
	assert.Equal(t, float64(0), data["letters"])
	assert.Equal(t, float64(2), data["chats"])
}

func TestMarkAllLettersRead(t *testing.T) {
	letters := new(letterUsecaseMock)
	router := setupAdminRouter(new(unreadCountUsecaseMock), letters, new(feedbackUsecaseMock))

	letters.On("MarkAllRead", mock.Anything).Return(&dto.MarkAllReadResponse{Updated: 3}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/letters/mark-all-read", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	letters.AssertExpectations(t)
}

func TestGetAllFeedbacksVerifiedFilter(t *testing.T) {
	feedbacks := new(feedbackUsecaseMock)
	router := setupAdminRouter(new(unreadCountUsecaseMock), new(letterUsecaseMock), feedbacks)

	feedbacks.On("GetAllFeedbacks", mock.Anything, mock.MatchedBy(func(v *bool) bool { return v != nil && !*v })).
		Return(&dto.FeedbackListResponse{}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedbacks?verified=false", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedbacks?verified=maybe", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	feedbacks.AssertExpectations(t)
}
