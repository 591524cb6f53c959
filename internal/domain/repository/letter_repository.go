package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type LetterRepository interface {
	FindAll(db *gorm.DB) ([]entity.Letter, error)
	// CountUnread counts letters that are unread or carry a new patient message.
	CountUnread(db *gorm.DB) (int64, error)
	MarkAllRead(db *gorm.DB) (int64, error)
}
