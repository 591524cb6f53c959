package repository

import (
	"clinic-backoffice/internal/domain/entity"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *entity.Category) error
	Update(db *gorm.DB, category *entity.Category) error
	Delete(db *gorm.DB, id uint) (int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.Category, error)
	FindAll(db *gorm.DB) ([]entity.Category, error)
	// FindBySlug returns the category using slug, ignoring excludeID when non-zero.
	FindBySlug(db *gorm.DB, slug string, excludeID uint) (*entity.Category, error)
	// FindByOrderAndParent returns the sibling holding order under parentID, ignoring excludeID when non-zero.
	FindByOrderAndParent(db *gorm.DB, order int, parentID *uint, excludeID uint) (*entity.Category, error)
	CountChildren(db *gorm.DB, id uint) (int64, error)
	ServiceStatsByCategory(db *gorm.DB) (map[uint]entity.ServiceStats, error)
}
