package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUsecase
	validator       *validator.CustomValidator
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUsecase, validator *validator.CustomValidator) *CategoryHandler {
	return &CategoryHandler{
		categoryUsecase: categoryUsecase,
		validator:       validator,
	}
}

func (h *CategoryHandler) GetCategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categoryUsecase.GetCategoryTree(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get categories")
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", tree)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	category, err := h.categoryUsecase.GetCategory(r.Context(), id)
	if err != nil {
		writeCategoryError(w, err, "Failed to get category")
		return
	}

	response.Success(w, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.CreateCategory(r.Context(), &req)
	if err != nil {
		writeCategoryError(w, err, "Failed to create category")
		return
	}

	response.Success(w, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeCategoryError(w, err, "Failed to update category")
		return
	}

	response.Success(w, http.StatusOK, "Category updated successfully", category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	if err := h.categoryUsecase.DeleteCategory(r.Context(), id); err != nil {
		writeCategoryError(w, err, "Failed to delete category")
		return
	}

	response.Success(w, http.StatusOK, "Category deleted successfully", nil)
}

func writeCategoryError(w http.ResponseWriter, err error, fallback string) {
	var orderErr *usecase.CategoryOrderTakenError
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, usecase.ErrCategoryNotFound):
		response.NotFound(w, "Category not found")
	case errors.As(err, &orderErr),
		errors.Is(err, usecase.ErrCategorySlugExists),
		errors.Is(err, usecase.ErrParentCategoryNotFound),
		errors.Is(err, usecase.ErrCategorySelfParent),
		errors.Is(err, usecase.ErrCategoryCycle),
		errors.Is(err, usecase.ErrCategoryHasChildren):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
