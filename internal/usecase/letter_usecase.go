package usecase

import (
	"context"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LetterUsecase interface {
	GetAllLetters(ctx context.Context) (*dto.LetterListResponse, error)
	MarkAllRead(ctx context.Context) (*dto.MarkAllReadResponse, error)
}

type letterUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	letterRepo   repository.LetterRepository
	auditService service.AuditService
}

func NewLetterUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	letterRepo repository.LetterRepository,
	auditService service.AuditService,
) LetterUsecase {
	return &letterUsecase{
		db:           db,
		log:          log,
		letterRepo:   letterRepo,
		auditService: auditService,
	}
}

func (u *letterUsecase) GetAllLetters(ctx context.Context) (*dto.LetterListResponse, error) {
	letters, err := u.letterRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find letters: %+v", err)
		return nil, err
	}

	return &dto.LetterListResponse{
		Letters: converter.LettersToResponses(letters),
		Total:   len(letters),
	}, nil
}

func (u *letterUsecase) MarkAllRead(ctx context.Context) (*dto.MarkAllReadResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	updated, err := u.letterRepo.MarkAllRead(tx)
	if err != nil {
		u.log.Warnf("Failed to mark letters read: %+v", err)
		return nil, err
	}

	if updated > 0 {
		if err := u.auditService.LogAction(tx, &actorID, entity.AuditActionLettersRead, "letter", "*", entity.JSON{"count": updated}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.MarkAllReadResponse{Updated: updated}, nil
}
