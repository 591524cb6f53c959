package repository

import (
	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type chatMessageRepository struct{}

func NewChatMessageRepository() domainRepo.ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(db *gorm.DB, message *entity.ChatMessage) error {
	return db.Create(message).Error
}

func (r *chatMessageRepository) FindByChatID(db *gorm.DB, chatID uint) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	err := db.Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatMessageRepository) MarkReadFrom(db *gorm.DB, chatID uint, sender entity.SenderType) error {
	return db.Model(&entity.ChatMessage{}).
		Where("chat_id = ? AND sender_type = ? AND is_read = ?", chatID, sender, false).
		Update("is_read", true).Error
}

func (r *chatMessageRepository) DeleteByChatIDs(db *gorm.DB, chatIDs []uint) (int64, error) {
	if len(chatIDs) == 0 {
		return 0, nil
	}
	result := db.Where("chat_id IN ?", chatIDs).Delete(&entity.ChatMessage{})
	return result.RowsAffected, result.Error
}
