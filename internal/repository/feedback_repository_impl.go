package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type feedbackRepository struct{}

func NewFeedbackRepository() domainRepo.FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) FindAll(db *gorm.DB, filter entity.FeedbackFilter) ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	query := db.Preload("Service")
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if err := query.Order("date DESC, id DESC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) FindByID(db *gorm.DB, id uint) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := db.Where("id = ?", id).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) Verify(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.Feedback{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Feedback{})
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) CountUnverified(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Feedback{}).Where("verified = ?", false).Count(&count).Error
	return count, err
}
