package usecase

import (
	"context"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UnreadCountUsecase feeds the admin menu badges.
type UnreadCountUsecase interface {
	GetUnreadCounts(ctx context.Context) (*dto.UnreadCountsResponse, error)
}

type unreadCountUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	feedbackRepo repository.FeedbackRepository
	letterRepo   repository.LetterRepository
	chatRepo     repository.OperatorChatRepository
}

func NewUnreadCountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	letterRepo repository.LetterRepository,
	chatRepo repository.OperatorChatRepository,
) UnreadCountUsecase {
	return &unreadCountUsecase{
		db:           db,
		log:          log,
		feedbackRepo: feedbackRepo,
		letterRepo:   letterRepo,
		chatRepo:     chatRepo,
	}
}

// GetUnreadCounts zeroes the counters the caller's role may not see.
func (u *unreadCountUsecase) GetUnreadCounts(ctx context.Context) (*dto.UnreadCountsResponse, error) {
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	db := u.db.WithContext(ctx)
	counts := &dto.UnreadCountsResponse{}

	feedbacks, err := u.feedbackRepo.CountUnverified(db)
	if err != nil {
		u.log.Warnf("Failed to count unverified feedbacks: %+v", err)
		return nil, err
	}
	counts.Feedbacks = feedbacks

	if role.Can(entity.PermLettersManage) {
		letters, err := u.letterRepo.CountUnread(db)
		if err != nil {
			u.log.Warnf("Failed to count unread letters: %+v", err)
			return nil, err
		}
		counts.Letters = letters
	}

	if role.Can(entity.PermChatOperate) {
		chats, err := u.chatRepo.CountUnreadForOperator(db)
		if err != nil {
			u.log.Warnf("Failed to count unread chats: %+v", err)
			return nil, err
		}
		counts.Chats = chats
	}

	return counts, nil
}
