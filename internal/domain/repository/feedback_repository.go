package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type FeedbackRepository interface {
	FindAll(db *gorm.DB, filter entity.FeedbackFilter) ([]entity.Feedback, error)
	FindByID(db *gorm.DB, id uint) (*entity.Feedback, error)
	Verify(db *gorm.DB, id uint) (int64, error)
	Delete(db *gorm.DB, id uint) (int64, error)
	CountUnverified(db *gorm.DB) (int64, error)
}
