package usecase

import (
	"context"
	"errors"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

type FeedbackUsecase interface {
	GetAllFeedbacks(ctx context.Context, verified *bool) (*dto.FeedbackListResponse, error)
	VerifyFeedback(ctx context.Context, id uint) (*dto.FeedbackResponse, error)
	DeleteFeedback(ctx context.Context, id uint) error
}

type feedbackUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	feedbackRepo repository.FeedbackRepository
	auditService service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:           db,
		log:          log,
		feedbackRepo: feedbackRepo,
		auditService: auditService,
	}
}

func (u *feedbackUsecase) GetAllFeedbacks(ctx context.Context, verified *bool) (*dto.FeedbackListResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(u.db.WithContext(ctx), entity.FeedbackFilter{Verified: verified})
	if err != nil {
		u.log.Warnf("Failed to find feedbacks: %+v", err)
		return nil, err
	}

	return &dto.FeedbackListResponse{
		Feedbacks: converter.FeedbacksToResponses(feedbacks),
		Total:     len(feedbacks),
	}, nil
}

// VerifyFeedback is idempotent: verifying an already verified feedback returns it unchanged.
func (u *feedbackUsecase) VerifyFeedback(ctx context.Context, id uint) (*dto.FeedbackResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	feedback, err := u.feedbackRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find feedback %d: %+v", id, err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}

	affected, err := u.feedbackRepo.Verify(tx, id)
	if err != nil {
		u.log.Warnf("Failed to verify feedback %d: %+v", id, err)
		return nil, err
	}
	if affected > 0 {
		if err := u.auditService.LogAction(tx, &actorID, entity.AuditActionFeedbackVerify, "feedback", formatID(id), nil); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	feedback.Verified = true
	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) DeleteFeedback(ctx context.Context, id uint) error {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	feedback, err := u.feedbackRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find feedback %d: %+v", id, err)
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}

	if err := u.auditService.LogDelete(tx, &actorID, entity.AuditActionFeedbackDelete, "feedback", formatID(id), converter.FeedbackToResponse(feedback)); err != nil {
		return err
	}

	if _, err := u.feedbackRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete feedback %d: %+v", id, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
