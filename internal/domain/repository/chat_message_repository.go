package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(db *gorm.DB, message *entity.ChatMessage) error
	FindByChatID(db *gorm.DB, chatID uint) ([]entity.ChatMessage, error)
	// MarkReadFrom flags as read every message in the chat written by the given side.
	MarkReadFrom(db *gorm.DB, chatID uint, sender entity.SenderType) error
	DeleteByChatIDs(db *gorm.DB, chatIDs []uint) (int64, error)
}
