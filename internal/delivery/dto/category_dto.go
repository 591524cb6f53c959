package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Slug        string `json:"slug" validate:"required,max=255"`
	Order       int    `json:"order" validate:"gte=0"`
	ParentID    *uint  `json:"parent_id" validate:"omitempty,min=1"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is partial: nil fields are left unchanged.
// Set ClearParent to move the category to the root level.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=255"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
	ParentID    *uint   `json:"parent_id" validate:"omitempty,min=1"`
	ClearParent bool    `json:"clear_parent"`
	Description *string `json:"description"`
}

// Response DTOs

type CategoryResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Order         int                `json:"order"`
	ParentID      *uint              `json:"parent_id"`
	Description   string             `json:"description,omitempty"`
	ServicesCount int64              `json:"services_count"`
	MinPrice      *decimal.Decimal   `json:"min_price,omitempty"`
	MaxPrice      *decimal.Decimal   `json:"max_price,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Children      []CategoryResponse `json:"children,omitempty"`
}

type CategoryTreeResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}
