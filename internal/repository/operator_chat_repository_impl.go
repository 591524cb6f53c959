package repository

import (
	"errors"
	"time"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type operatorChatRepository struct{}

func NewOperatorChatRepository() domainRepo.OperatorChatRepository {
	return &operatorChatRepository{}
}

func (r *operatorChatRepository) Create(db *gorm.DB, chat *entity.OperatorChat) error {
	return db.Omit(clause.Associations).Create(chat).Error
}

func (r *operatorChatRepository) FindByID(db *gorm.DB, id uint) (*entity.OperatorChat, error) {
	var chat entity.OperatorChat
	err := db.Where("id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

// FindDetailByID loads the chat with both participants and its full history, oldest first.
func (r *operatorChatRepository) FindDetailByID(db *gorm.DB, id uint) (*entity.OperatorChat, error) {
	var chat entity.OperatorChat
	err := db.Preload("Patient").
		Preload("Operator").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (r *operatorChatRepository) FindAll(db *gorm.DB, filter entity.ChatFilter) ([]entity.OperatorChat, error) {
	var chats []entity.OperatorChat
	query := db.Preload("Patient").Preload("Operator")
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	err := query.
		Order("last_message_at DESC NULLS LAST, created_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *operatorChatRepository) FindOpenByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.OperatorChat, error) {
	var chat entity.OperatorChat
	err := db.Where("patient_id = ? AND status <> ?", patientID, entity.ChatStatusClosed).
		Order("created_at DESC, id DESC").
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (r *operatorChatRepository) FindIDsByPatientID(db *gorm.DB, patientID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := db.Model(&entity.OperatorChat{}).
		Where("patient_id = ?", patientID).
		Pluck("id", &ids).Error
	return ids, err
}

// Take only matches WAITING rows, so of two concurrent takes exactly one sees a row affected.
func (r *operatorChatRepository) Take(db *gorm.DB, id uint, operatorID uuid.UUID) (int64, error) {
	result := db.Model(&entity.OperatorChat{}).
		Where("id = ? AND status = ?", id, entity.ChatStatusWaiting).
		Updates(map[string]interface{}{
			"operator_id": operatorID,
			"status":      entity.ChatStatusActive,
		})
	return result.RowsAffected, result.Error
}

func (r *operatorChatRepository) Close(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.OperatorChat{}).
		Where("id = ? AND status <> ?", id, entity.ChatStatusClosed).
		Update("status", entity.ChatStatusClosed)
	return result.RowsAffected, result.Error
}

func (r *operatorChatRepository) TouchLastMessage(db *gorm.DB, id uint, at time.Time, from entity.SenderType) error {
	updates := map[string]interface{}{
		"last_message_at": at,
	}
	switch from {
	case entity.SenderPatient:
		updates["has_unread_operator"] = true
	case entity.SenderOperator:
		updates["has_unread_patient"] = true
	}
	return db.Model(&entity.OperatorChat{}).Where("id = ?", id).Updates(updates).Error
}

func (r *operatorChatRepository) ClearUnread(db *gorm.DB, id uint, reader entity.SenderType) error {
	column := "has_unread_operator"
	if reader == entity.SenderPatient {
		column = "has_unread_patient"
	}
	return db.Model(&entity.OperatorChat{}).
		Where("id = ? AND "+column+" = ?", id, true).
		Update(column, false).Error
}

func (r *operatorChatRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.OperatorChat{})
	return result.RowsAffected, result.Error
}

func (r *operatorChatRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	result := db.Where("patient_id = ?", patientID).Delete(&entity.OperatorChat{})
	return result.RowsAffected, result.Error
}

func (r *operatorChatRepository) CountUnreadForOperator(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.OperatorChat{}).
		Where("has_unread_operator = ?", true).
		Count(&count).Error
	return count, err
}
