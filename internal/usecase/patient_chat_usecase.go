package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMessagesBlocked = errors.New("you are not allowed to send messages")
	ErrNoOpenChat      = errors.New("no open chat")
)

// PatientChatUsecase is the patient side of the support chat.
type PatientChatUsecase interface {
	GetMyChat(ctx context.Context) (*dto.ChatDetailResponse, error)
	OpenChat(ctx context.Context) (*dto.ChatDetailResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
}

type patientChatUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	chatRepo    repository.OperatorChatRepository
	messageRepo repository.ChatMessageRepository
	patientRepo repository.PatientRepository
}

func NewPatientChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	chatRepo repository.OperatorChatRepository,
	messageRepo repository.ChatMessageRepository,
	patientRepo repository.PatientRepository,
) PatientChatUsecase {
	return &patientChatUsecase{
		db:          db,
		log:         log,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		patientRepo: patientRepo,
	}
}

// GetMyChat returns the caller's open chat and marks operator replies as read.
func (u *patientChatUsecase) GetMyChat(ctx context.Context) (*dto.ChatDetailResponse, error) {
	patientID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	open, err := u.chatRepo.FindOpenByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find open chat of patient %s: %+v", patientID, err)
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenChat
	}

	if err := u.messageRepo.MarkReadFrom(tx, open.ID, entity.SenderOperator); err != nil {
		u.log.Warnf("Failed to mark messages read in chat %d: %+v", open.ID, err)
		return nil, err
	}
	if err := u.chatRepo.ClearUnread(tx, open.ID, entity.SenderPatient); err != nil {
		u.log.Warnf("Failed to clear unread flag of chat %d: %+v", open.ID, err)
		return nil, err
	}

	chat, err := u.chatRepo.FindDetailByID(tx, open.ID)
	if err != nil {
		u.log.Warnf("Failed to load chat %d: %+v", open.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ChatDetailResponse{Chat: converter.ChatToResponse(chat)}, nil
}

// OpenChat returns the caller's open chat, creating a WAITING one when there is none.
func (u *patientChatUsecase) OpenChat(ctx context.Context) (*dto.ChatDetailResponse, error) {
	patientID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.ensureOpenChat(tx, patientID)
	if err != nil {
		return nil, err
	}

	detail, err := u.chatRepo.FindDetailByID(tx, chat.ID)
	if err != nil {
		u.log.Warnf("Failed to load chat %d: %+v", chat.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ChatDetailResponse{Chat: converter.ChatToResponse(detail)}, nil
}

func (u *patientChatUsecase) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	patientID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.ensureOpenChat(tx, patientID)
	if err != nil {
		return nil, err
	}

	message, err := appendMessage(tx, u.chatRepo, u.messageRepo, chat.ID, patientID, entity.SenderPatient, content)
	if err != nil {
		u.log.Warnf("Failed to store message in chat %d: %+v", chat.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	metrics.IncChatMessage(string(entity.SenderPatient))
	return converter.ChatMessageToResponse(message), nil
}

// ensureOpenChat rejects blocked patients before touching any chat row.
func (u *patientChatUsecase) ensureOpenChat(tx *gorm.DB, patientID uuid.UUID) (*entity.OperatorChat, error) {
	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.IsMessagesBlocked {
		return nil, ErrMessagesBlocked
	}

	chat, err := u.chatRepo.FindOpenByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find open chat of patient %s: %+v", patientID, err)
		return nil, err
	}
	if chat != nil {
		return chat, nil
	}

	chat = &entity.OperatorChat{
		PatientID: patientID,
		Status:    entity.ChatStatusWaiting,
	}
	if err := u.chatRepo.Create(tx, chat); err != nil {
		u.log.Warnf("Failed to create chat for patient %s: %+v", patientID, err)
		return nil, err
	}
	return chat, nil
}
