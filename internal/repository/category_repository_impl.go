package repository

import (
	"errors"

	"clinic-backoffice/internal/domain/entity"
	domainRepo "clinic-backoffice/internal/domain/repository"

	"gorm.io/gorm"
)

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *entity.Category) error {
	return db.Create(category).Error
}

func (r *categoryRepository) Update(db *gorm.DB, category *entity.Category) error {
	return db.Model(category).
		Select("name", "slug", "sort_order", "parent_id", "description", "updated_at").
		Updates(category).Error
}

func (r *categoryRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Category{})
	return result.RowsAffected, result.Error
}

func (r *categoryRepository) FindByID(db *gorm.DB, id uint) (*entity.Category, error) {
	var category entity.Category
	err := db.Preload("Children", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(db *gorm.DB) ([]entity.Category, error) {
	var categories []entity.Category
	if err := db.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(db *gorm.DB, slug string, excludeID uint) (*entity.Category, error) {
	var category entity.Category
	query := db.Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByOrderAndParent(db *gorm.DB, order int, parentID *uint, excludeID uint) (*entity.Category, error) {
	var category entity.Category
	query := db.Where("sort_order = ?", order)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CountChildren(db *gorm.DB, id uint) (int64, error) {
	var count int64
	err := db.Model(&entity.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// ServiceStatsByCategory aggregates prices in decimal so money never passes through float math.
func (r *categoryRepository) ServiceStatsByCategory(db *gorm.DB) (map[uint]entity.ServiceStats, error) {
	var services []entity.Service
	err := db.Select("category_id", "price").
		Where("category_id IS NOT NULL").
		Find(&services).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[uint]entity.ServiceStats)
	for _, svc := range services {
		st := stats[*svc.CategoryID]
		st.Add(svc.Price)
		stats[*svc.CategoryID] = st
	}
	return stats, nil
}
