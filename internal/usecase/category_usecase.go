package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategorySlugExists     = errors.New("category with this slug already exists")
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrCategorySelfParent     = errors.New("category cannot be its own parent")
	ErrCategoryCycle          = errors.New("category cannot be moved under its own sub-category")
	ErrCategoryHasChildren    = errors.New("category has sub-categories, move or delete them first")
)

// CategoryOrderTakenError reports a sibling already holding the requested order.
type CategoryOrderTakenError struct {
	Order int
}

func (e *CategoryOrderTakenError) Error() string {
	return fmt.Sprintf("Category with order %d already exists at this level", e.Order)
}

type CategoryUsecase interface {
	GetCategoryTree(ctx context.Context) (*dto.CategoryTreeResponse, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type categoryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	categoryRepo repository.CategoryRepository
	auditService service.AuditService
}

func NewCategoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.CategoryRepository,
	auditService service.AuditService,
) CategoryUsecase {
	return &categoryUsecase{
		db:           db,
		log:          log,
		categoryRepo: categoryRepo,
		auditService: auditService,
	}
}

func (u *categoryUsecase) GetCategoryTree(ctx context.Context) (*dto.CategoryTreeResponse, error) {
	db := u.db.WithContext(ctx)

	categories, err := u.categoryRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find categories: %+v", err)
		return nil, err
	}

	stats, err := u.categoryRepo.ServiceStatsByCategory(db)
	if err != nil {
		u.log.Warnf("Failed to aggregate services per category: %+v", err)
		return nil, err
	}

	return &dto.CategoryTreeResponse{
		Categories: converter.CategoriesToTree(categories, stats),
		Total:      len(categories),
	}, nil
}

func (u *categoryUsecase) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	db := u.db.WithContext(ctx)

	category, err := u.categoryRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", id, err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	stats, err := u.categoryRepo.ServiceStatsByCategory(db)
	if err != nil {
		u.log.Warnf("Failed to aggregate services per category: %+v", err)
		return nil, err
	}

	return converter.CategoryToResponse(category, stats), nil
}

func (u *categoryUsecase) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category := &entity.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Order:       req.Order,
		ParentID:    req.ParentID,
		Description: req.Description,
	}

	if err := u.checkPlacement(tx, category); err != nil {
		return nil, err
	}

	if err := u.categoryRepo.Create(tx, category); err != nil {
		if mapped := mapCategoryConstraintError(err, category.Order); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &actorID, entity.AuditActionCategoryCreate, "category", formatID(category.ID), entity.JSON{"slug": category.Slug}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CategoryToResponse(category, nil), nil
}

func (u *categoryUsecase) UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", id, err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	before := converter.CategoryToResponse(category, nil)
	children := category.Children
	category.Children = nil

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		category.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ClearParent {
		category.ParentID = nil
	} else if req.ParentID != nil {
		category.ParentID = req.ParentID
	}

	if err := u.checkPlacement(tx, category); err != nil {
		return nil, err
	}

	if err := u.categoryRepo.Update(tx, category); err != nil {
		if mapped := mapCategoryConstraintError(err, category.Order); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update category %d: %+v", id, err)
		return nil, err
	}

	after := converter.CategoryToResponse(category, nil)
	if err := u.auditService.LogUpdate(tx, &actorID, entity.AuditActionCategoryUpdate, "category", formatID(id), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	category.Children = children
	return converter.CategoryToResponse(category, nil), nil
}

func (u *categoryUsecase) DeleteCategory(ctx context.Context, id uint) error {
	actorID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", id, err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	children, err := u.categoryRepo.CountChildren(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count children of category %d: %+v", id, err)
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}

	if err := u.auditService.LogDelete(tx, &actorID, entity.AuditActionCategoryDelete, "category", formatID(id), converter.CategoryToResponse(category, nil)); err != nil {
		return err
	}

	if _, err := u.categoryRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "categories") {
			return ErrCategoryHasChildren
		}
		u.log.Warnf("Failed to delete category %d: %+v", id, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// checkPlacement validates the parent link and both uniqueness rules. category.ID is zero on create.
func (u *categoryUsecase) checkPlacement(tx *gorm.DB, category *entity.Category) error {
	if category.ParentID != nil {
		if category.ID != 0 && *category.ParentID == category.ID {
			return ErrCategorySelfParent
		}

		parent, err := u.categoryRepo.FindByID(tx, *category.ParentID)
		if err != nil {
			u.log.Warnf("Failed to find parent category %d: %+v", *category.ParentID, err)
			return err
		}
		if parent == nil {
			return ErrParentCategoryNotFound
		}

		if category.ID != 0 {
			if err := u.checkNotDescendant(tx, category.ID, parent); err != nil {
				return err
			}
		}
	}

	existing, err := u.categoryRepo.FindBySlug(tx, category.Slug, category.ID)
	if err != nil {
		u.log.Warnf("Failed to check category slug: %+v", err)
		return err
	}
	if existing != nil {
		return ErrCategorySlugExists
	}

	sibling, err := u.categoryRepo.FindByOrderAndParent(tx, category.Order, category.ParentID, category.ID)
	if err != nil {
		u.log.Warnf("Failed to check category order: %+v", err)
		return err
	}
	if sibling != nil {
		return &CategoryOrderTakenError{Order: category.Order}
	}

	return nil
}

// checkNotDescendant walks up from the proposed parent and fails if it reaches id.
func (u *categoryUsecase) checkNotDescendant(tx *gorm.DB, id uint, parent *entity.Category) error {
	seen := map[uint]bool{}
	for current := parent; current != nil; {
		if current.ID == id {
			return ErrCategoryCycle
		}
		if current.ParentID == nil || seen[current.ID] {
			return nil
		}
		seen[current.ID] = true

		next, err := u.categoryRepo.FindByID(tx, *current.ParentID)
		if err != nil {
			u.log.Warnf("Failed to walk category ancestors: %+v", err)
			return err
		}
		current = next
	}
	return nil
}

// mapCategoryConstraintError covers writes that raced past checkPlacement.
func mapCategoryConstraintError(err error, order int) error {
	switch {
	case isDuplicateKeyError(err, "slug"):
		return ErrCategorySlugExists
	case isDuplicateKeyError(err, "order"):
		return &CategoryOrderTakenError{Order: order}
	case isForeignKeyError(err, "parent"), isForeignKeyError(err, "categories"):
		return ErrParentCategoryNotFound
	}
	return nil
}
