package repository

import (
	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type letterRepository struct{}

func NewLetterRepository() domainRepo.LetterRepository {
	return &letterRepository{}
}

func (r *letterRepository) FindAll(db *gorm.DB) ([]entity.Letter, error) {
	var letters []entity.Letter
	if err := db.Order("created_at DESC, id DESC").Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}

func (r *letterRepository) CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Letter{}).
		Where("is_read = ? OR has_new_patient_message = ?", false, true).
		Count(&count).Error
	return count, err
}

func (r *letterRepository) MarkAllRead(db *gorm.DB) (int64, error) {
	result := db.Model(&entity.Letter{}).
		Where("is_read = ? OR has_new_patient_message = ?", false, true).
		Updates(map[string]interface{}{
			"is_read":                 true,
			"has_new_patient_message": false,
		})
	return result.RowsAffected, result.Error
}
