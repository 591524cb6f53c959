package entity

import (
	"github.com/shopspring/decimal"
)

// Service is a bookable clinic service. Managed elsewhere, read here for category stats.
type Service struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID *uint           `gorm:"index" json:"category_id,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// ServiceStats summarises the services filed under one category.
type ServiceStats struct {
	Count    int64
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// Add folds one service price into the stats.
func (s *ServiceStats) Add(price decimal.Decimal) {
	if s.Count == 0 || price.LessThan(s.MinPrice) {
		s.MinPrice = price
	}
	if s.Count == 0 || price.GreaterThan(s.MaxPrice) {
		s.MaxPrice = price
	}
	s.Count++
}
