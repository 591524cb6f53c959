package repository

import (
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperatorChatRepository interface {
	Create(db *gorm.DB, chat *entity.OperatorChat) error
	FindByID(db *gorm.DB, id uint) (*entity.OperatorChat, error)
	FindDetailByID(db *gorm.DB, id uint) (*entity.OperatorChat, error)
	FindAll(db *gorm.DB, filter entity.ChatFilter) ([]entity.OperatorChat, error)
	FindOpenByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.OperatorChat, error)
	FindIDsByPatientID(db *gorm.DB, patientID uuid.UUID) ([]uint, error)

	// Take moves a WAITING chat to ACTIVE. Returns affected rows: 0 means it was not WAITING.
	Take(db *gorm.DB, id uint, operatorID uuid.UUID) (int64, error)
	// Close moves a non-CLOSED chat to CLOSED. Returns affected rows.
	Close(db *gorm.DB, id uint) (int64, error)
	// TouchLastMessage stamps last_message_at and raises the unread flag of the receiving side.
	TouchLastMessage(db *gorm.DB, id uint, at time.Time, from entity.SenderType) error
	ClearUnread(db *gorm.DB, id uint, reader entity.SenderType) error

	Delete(db *gorm.DB, id uint) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error)
	CountUnreadForOperator(db *gorm.DB) (int64, error)
}
