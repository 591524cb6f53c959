package handler

import (
	"context"

	"clinic-backoffice/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type operatorChatUsecaseMock struct {
	mock.Mock
}

func (m *operatorChatUsecaseMock) ListChats(ctx context.Context, status string) (*dto.ChatListResponse, error) {
	args := m.Called(ctx, status)
	resp, _ := args.Get(0).(*dto.ChatListResponse)
	return resp, args.Error(1)
}

func (m *operatorChatUsecaseMock) GetChat(ctx context.Context, chatID uint) (*dto.ChatDetailResponse, error) {
	args := m.Called(ctx, chatID)
	resp, _ := args.Get(0).(*dto.ChatDetailResponse)
	return resp, args.Error(1)
}

func (m *operatorChatUsecaseMock) UpdateChat(ctx context.Context, chatID uint, req *dto.UpdateChatRequest) (*dto.ChatDetailResponse, error) {
	args := m.Called(ctx, chatID, req)
	resp, _ := args.Get(0).(*dto.ChatDetailResponse)
	return resp, args.Error(1)
}

func (m *operatorChatUsecaseMock) SendMessage(ctx context.Context, chatID uint, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	args := m.Called(ctx, chatID, req)
	resp, _ := args.Get(0).(*dto.ChatMessageResponse)
	return resp, args.Error(1)
}

func (m *operatorChatUsecaseMock) DeleteChat(ctx context.Context, chatID uint) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *operatorChatUsecaseMock) SetPatientBlocked(ctx context.Context, chatID uint, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
	args := m.Called(ctx, chatID, req)
	resp, _ := args.Get(0).(*dto.BlockPatientResponse)
	return resp, args.Error(1)
}

func (m *operatorChatUsecaseMock) SetPatientBlockedByID(ctx context.Context, patientID uuid.UUID, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
	args := m.Called(ctx, patientID, req)
	resp, _ := args.Get(0).(*dto.BlockPatientResponse)
	return resp, args.Error(1)
}

type categoryUsecaseMock struct {
	mock.Mock
}

func (m *categoryUsecaseMock) GetCategoryTree(ctx context.Context) (*dto.CategoryTreeResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.CategoryTreeResponse)
	return resp, args.Error(1)
}

func (m *categoryUsecaseMock) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.CategoryResponse)
	return resp, args.Error(1)
}

func (m *categoryUsecaseMock) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.CategoryResponse)
	return resp, args.Error(1)
}

func (m *categoryUsecaseMock) UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.CategoryResponse)
	return resp, args.Error(1)
}

func (m *categoryUsecaseMock) DeleteCategory(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type unreadCountUsecaseMock struct {
	mock.Mock
}

func (m *unreadCountUsecaseMock) GetUnreadCounts(ctx context.Context) (*dto.UnreadCountsResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.UnreadCountsResponse)
	return resp, args.Error(1)
}

type letterUsecaseMock struct {
	mock.Mock
}

func (m *letterUsecaseMock) GetAllLetters(ctx context.Context) (*dto.LetterListResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.LetterListResponse)
	return resp, args.Error(1)
}

func (m *letterUsecaseMock) MarkAllRead(ctx context.Context) (*dto.MarkAllReadResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.MarkAllReadResponse)
	return resp, args.Error(1)
}

type feedbackUsecaseMock struct {
	mock.Mock
}

func (m *feedbackUsecaseMock) GetAllFeedbacks(ctx context.Context, verified *bool) (*dto.FeedbackListResponse, error) {
	args := m.Called(ctx, verified)
	resp, _ := args.Get(0).(*dto.FeedbackListResponse)
	return resp, args.Error(1)
}

func (m *feedbackUsecaseMock) VerifyFeedback(ctx context.Context, id uint) (*dto.FeedbackResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.FeedbackResponse)
	return resp, args.Error(1)
}

func (m *feedbackUsecaseMock) DeleteFeedback(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
