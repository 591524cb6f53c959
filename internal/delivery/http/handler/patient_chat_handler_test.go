package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type patientChatUsecaseMock struct {
	mock.Mock
}

func (m *patientChatUsecaseMock) GetMyChat(ctx context.Context) (*dto.ChatDetailResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.ChatDetailResponse)
	return resp, args.Error(1)
}

func (m *patientChatUsecaseMock) OpenChat(ctx context.Context) (*dto.ChatDetailResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.ChatDetailResponse)
	return resp, args.Error(1)
}

func (m *patientChatUsecaseMock) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.ChatMessageResponse)
	return resp, args.Error(1)
}

func setupPatientChatRouter(uc *patientChatUsecaseMock) *mux.Router {
	h := NewPatientChatHandler(uc, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/chat", h.GetMyChat).Methods(http.MethodGet)
	r.HandleFunc("/chat", h.OpenChat).Methods(http.MethodPost)
	r.HandleFunc("/chat/messages", h.SendMessage).Methods(http.MethodPost)
	return r
}

func TestGetMyChatNoOpenChat(t *testing.T) {
	uc := new(patientChatUsecaseMock)
	router := setupPatientChatRouter(uc)
	uc.On("GetMyChat", mock.Anything).Return(nil, usecase.ErrNoOpenChat).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	uc.AssertExpectations(t)
}

func TestOpenChatSuccess(t *testing.T) {
	uc := new(patientChatUsecaseMock)
	router := setupPatientChatRouter(uc)
	uc.On("OpenChat", mock.Anything).
		Return(&dto.ChatDetailResponse{Chat: &dto.ChatResponse{ID: 3, Status: "WAITING"}}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	chat := decodeBody(t, rec)["data"].(map[string]any)["chat"].(map[string]any)
	assert.Equal(t, "WAITING", chat["status"])
	uc.AssertExpectations(t)
}

func TestPatientSendMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"blocked", usecase.ErrMessagesBlocked, http.StatusForbidden},
		{"unauthenticated", usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{"internal", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(patientChatUsecaseMock)
			router := setupPatientChatRouter(uc)

			var resp *dto.ChatMessageResponse
			if tt.err == nil {
				resp = &dto.ChatMessageResponse{ID: 1, ChatID: 3, SenderType: "patient"}
			}
			uc.On("SendMessage", mock.Anything, &dto.SendMessageRequest{Content: "hello"}).Return(resp, tt.err).Once()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewBufferString(`{"content":"hello"}`))
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestPatientSendMessageBlankContent(t *testing.T) {
	uc := new(patientChatUsecaseMock)
	router := setupPatientChatRouter(uc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewBufferString(`{"content":"   "}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}
