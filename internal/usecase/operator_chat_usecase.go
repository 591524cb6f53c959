package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/infrastructure/metrics"
	"clinic-backoffice/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrChatNotFound      = errors.New("chat not found")
	ErrChatAlreadyTaken  = errors.New("chat already taken by another operator")
	ErrChatClosed        = errors.New("chat is closed")
	ErrChatAlreadyClosed = errors.New("chat is already closed")
	ErrEmptyMessage      = errors.New("message content must not be empty")
	ErrInvalidChatAction = errors.New("invalid chat action, use {\"action\":\"take\"} or {\"status\":\"CLOSED\"}")
	ErrInvalidChatStatus = errors.New("invalid chat status, use WAITING, ACTIVE or CLOSED")
	ErrInvalidBlockState = errors.New("invalid action, use block or unblock")
	ErrPatientNotFound   = errors.New("patient not found")
)

const (
	ChatActionTake       = "take"
	PatientActionBlock   = "block"
	PatientActionUnblock = "unblock"
)

type OperatorChatUsecase interface {
	ListChats(ctx context.Context, status string) (*dto.ChatListResponse, error)
	GetChat(ctx context.Context, chatID uint) (*dto.ChatDetailResponse, error)
	UpdateChat(ctx context.Context, chatID uint, req *dto.UpdateChatRequest) (*dto.ChatDetailResponse, error)
	SendMessage(ctx context.Context, chatID uint, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	DeleteChat(ctx context.Context, chatID uint) error
	SetPatientBlocked(ctx context.Context, chatID uint, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error)
	SetPatientBlockedByID(ctx context.Context, patientID uuid.UUID, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error)
}

type operatorChatUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	chatRepo     repository.OperatorChatRepository
	messageRepo  repository.ChatMessageRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewOperatorChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	chatRepo repository.OperatorChatRepository,
	messageRepo repository.ChatMessageRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) OperatorChatUsecase {
	return &operatorChatUsecase{
		db:           db,
		log:          log,
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *operatorChatUsecase) ListChats(ctx context.Context, status string) (*dto.ChatListResponse, error) {
	var filter entity.ChatFilter
	if status != "" {
		s := entity.ChatStatus(strings.ToUpper(status))
		if !s.Valid() {
			return nil, ErrInvalidChatStatus
		}
		filter.Status = &s
	}

	chats, err := u.chatRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find chats: %+v", err)
		return nil, err
	}

	return &dto.ChatListResponse{
		Chats: converter.ChatsToResponses(chats),
		Total: len(chats),
	}, nil
}

// GetChat returns the full conversation and marks the patient's messages as read by the operator side.
func (u *operatorChatUsecase) GetChat(ctx context.Context, chatID uint) (*dto.ChatDetailResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.chatRepo.FindDetailByID(tx, chatID)
	if err != nil {
		u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	if err := u.messageRepo.MarkReadFrom(tx, chatID, entity.SenderPatient); err != nil {
		u.log.Warnf("Failed to mark messages read in chat %d: %+v", chatID, err)
		return nil, err
	}
	if err := u.chatRepo.ClearUnread(tx, chatID, entity.SenderOperator); err != nil {
		u.log.Warnf("Failed to clear unread flag of chat %d: %+v", chatID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	chat.HasUnreadOperator = false
	for i := range chat.Messages {
		if chat.Messages[i].SenderType == entity.SenderPatient {
			chat.Messages[i].IsRead = true
		}
	}

	return &dto.ChatDetailResponse{Chat: converter.ChatToResponse(chat)}, nil
}

// UpdateChat dispatches {"action":"take"} and {"status":"CLOSED"}.
func (u *operatorChatUsecase) UpdateChat(ctx context.Context, chatID uint, req *dto.UpdateChatRequest) (*dto.ChatDetailResponse, error) {
	switch {
	case req.Action != "" && req.Status != "":
		return nil, ErrInvalidChatAction
	case strings.EqualFold(req.Action, ChatActionTake):
		if err := u.takeChat(ctx, chatID); err != nil {
			return nil, err
		}
	case req.Action == "" && entity.ChatStatus(strings.ToUpper(req.Status)) == entity.ChatStatusClosed:
		if err := u.closeChat(ctx, chatID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidChatAction
	}

	chat, err := u.chatRepo.FindDetailByID(u.db.WithContext(ctx), chatID)
	if err != nil {
		u.log.Warnf("Failed to reload chat %d: %+v", chatID, err)
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	return &dto.ChatDetailResponse{Chat: converter.ChatToResponse(chat)}, nil
}

func (u *operatorChatUsecase) takeChat(ctx context.Context, chatID uint) error {
	operatorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.chatRepo.Take(tx, chatID, operatorID)
	if err != nil {
		u.log.Warnf("Failed to take chat %d: %+v", chatID, err)
		return err
	}
	if affected == 0 {
		existing, err := u.chatRepo.FindByID(tx, chatID)
		if err != nil {
			u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
			return err
		}
		if existing == nil {
			return ErrChatNotFound
		}
		metrics.IncTakeConflict()
		return ErrChatAlreadyTaken
	}

	if err := u.auditService.LogAction(tx, &operatorID, entity.AuditActionChatTake, "operator_chat", formatID(chatID), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	metrics.IncChatTransition(string(entity.ChatStatusActive))
	return nil
}

func (u *operatorChatUsecase) closeChat(ctx context.Context, chatID uint) error {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.chatRepo.Close(tx, chatID)
	if err != nil {
		u.log.Warnf("Failed to close chat %d: %+v", chatID, err)
		return err
	}
	if affected == 0 {
		existing, err := u.chatRepo.FindByID(tx, chatID)
		if err != nil {
			u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
			return err
		}
		if existing == nil {
			return ErrChatNotFound
		}
		return ErrChatAlreadyClosed
	}

	if err := u.auditService.LogAction(tx, &actorID, entity.AuditActionChatClose, "operator_chat", formatID(chatID), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	metrics.IncChatTransition(string(entity.ChatStatusClosed))
	return nil
}

func (u *operatorChatUsecase) SendMessage(ctx context.Context, chatID uint, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	operatorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.chatRepo.FindByID(tx, chatID)
	if err != nil {
		u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if chat.IsClosed() {
		return nil, ErrChatClosed
	}

	message, err := appendMessage(tx, u.chatRepo, u.messageRepo, chatID, operatorID, entity.SenderOperator, content)
	if err != nil {
		u.log.Warnf("Failed to store message in chat %d: %+v", chatID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	metrics.IncChatMessage(string(entity.SenderOperator))
	return converter.ChatMessageToResponse(message), nil
}

func (u *operatorChatUsecase) DeleteChat(ctx context.Context, chatID uint) error {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.chatRepo.FindByID(tx, chatID)
	if err != nil {
		u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}

	if err := u.auditService.LogDelete(tx, &actorID, entity.AuditActionChatDelete, "operator_chat", formatID(chatID), converter.ChatToResponse(chat)); err != nil {
		return err
	}

	if _, err := u.messageRepo.DeleteByChatIDs(tx, []uint{chatID}); err != nil {
		u.log.Warnf("Failed to delete messages of chat %d: %+v", chatID, err)
		return err
	}
	if _, err := u.chatRepo.Delete(tx, chatID); err != nil {
		u.log.Warnf("Failed to delete chat %d: %+v", chatID, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	metrics.AddChatsPurged(1)
	return nil
}

func parseBlockAction(action string) (bool, error) {
	switch strings.ToLower(action) {
	case PatientActionBlock:
		return true, nil
	case PatientActionUnblock:
		return false, nil
	}
	return false, ErrInvalidBlockState
}

// SetPatientBlocked flips the blocked flag of the chat's patient.
// Blocking also purges all of that patient's chats, so the chat id is gone afterwards;
// unblock through SetPatientBlockedByID.
func (u *operatorChatUsecase) SetPatientBlocked(ctx context.Context, chatID uint, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	block, err := parseBlockAction(req.Action)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	chat, err := u.chatRepo.FindByID(tx, chatID)
	if err != nil {
		u.log.Warnf("Failed to find chat %d: %+v", chatID, err)
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	return u.applyBlock(tx, actorID, chat.PatientID, block, entity.JSON{"chat_id": chatID})
}

// SetPatientBlockedByID is the patient-keyed form of SetPatientBlocked.
func (u *operatorChatUsecase) SetPatientBlockedByID(ctx context.Context, patientID uuid.UUID, req *dto.BlockPatientRequest) (*dto.BlockPatientResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	block, err := parseBlockAction(req.Action)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	// staff accounts never own chats
	if patient == nil || patient.Role.IsStaff() {
		return nil, ErrPatientNotFound
	}

	return u.applyBlock(tx, actorID, patientID, block, nil)
}

// applyBlock sets the flag, writes the audit entry and, when blocking, purges
// the patient's chats before committing tx. The purge is audited before any row is removed.
func (u *operatorChatUsecase) applyBlock(tx *gorm.DB, actorID, patientID uuid.UUID, block bool, details entity.JSON) (*dto.BlockPatientResponse, error) {
	affected, err := u.patientRepo.SetMessagesBlocked(tx, patientID, block)
	if err != nil {
		u.log.Warnf("Failed to update blocked flag of patient %s: %+v", patientID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPatientNotFound
	}

	action := entity.AuditActionPatientUnblock
	if block {
		action = entity.AuditActionPatientBlock
	}
	if err := u.auditService.LogAction(tx, &actorID, action, "patient", patientID.String(), details); err != nil {
		return nil, err
	}

	var purged int64
	if block {
		purged, err = u.purgeChats(tx, actorID, patientID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	metrics.AddChatsPurged(purged)
	return &dto.BlockPatientResponse{
		PatientID:         patientID,
		IsMessagesBlocked: block,
		DeletedChats:      purged,
	}, nil
}

func (u *operatorChatUsecase) purgeChats(tx *gorm.DB, actorID, patientID uuid.UUID) (int64, error) {
	chatIDs, err := u.chatRepo.FindIDsByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list chats of patient %s: %+v", patientID, err)
		return 0, err
	}
	if len(chatIDs) == 0 {
		return 0, nil
	}

	err = u.auditService.LogAction(tx, &actorID, entity.AuditActionChatsPurge, "patient", patientID.String(), entity.JSON{
		"chat_ids": chatIDs,
		"count":    len(chatIDs),
	})
	if err != nil {
		return 0, err
	}

	if _, err := u.messageRepo.DeleteByChatIDs(tx, chatIDs); err != nil {
		u.log.Warnf("Failed to delete messages of patient %s: %+v", patientID, err)
		return 0, err
	}
	deleted, err := u.chatRepo.DeleteByPatientID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to delete chats of patient %s: %+v", patientID, err)
		return 0, err
	}
	return deleted, nil
}

// appendMessage stores a message and stamps the chat so the receiving side sees it as unread.
func appendMessage(
	tx *gorm.DB,
	chatRepo repository.OperatorChatRepository,
	messageRepo repository.ChatMessageRepository,
	chatID uint,
	senderID uuid.UUID,
	sender entity.SenderType,
	content string,
) (*entity.ChatMessage, error) {
	message := &entity.ChatMessage{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderType: sender,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := messageRepo.Create(tx, message); err != nil {
		return nil, err
	}
	if err := chatRepo.TouchLastMessage(tx, chatID, message.CreatedAt, sender); err != nil {
		return nil, err
	}
	return message, nil
}
