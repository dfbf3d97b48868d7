package services

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/repositories"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type CategoryService interface {
	Create(db *gorm.DB, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(db *gorm.DB, id uint, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB) ([]dto.CategoryResponse, error)
	ListWithUsage(db *gorm.DB) ([]dto.CategoryWithUsageResponse, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(db *gorm.DB, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	categorySlug := slug.Make(req.Name)

	exists, err := s.categoryRepo.ExistsBySlug(db, categorySlug, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to check category slug")
	}
	if exists {
		return nil, apperrors.ErrDuplicateSlug("category", fmt.Sprintf("category '%s' already exists", categorySlug))
	}

	category := &models.Category{Name: req.Name, Slug: categorySlug}
	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to create category")
	}

	resp := toCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) Update(db *gorm.DB, id uint, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err, "category", "category not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up category")
	}

	categorySlug := slug.Make(req.Name)
	exists, err := s.categoryRepo.ExistsBySlug(db, categorySlug, id)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to check category slug")
	}
	if exists {
		return nil, apperrors.ErrDuplicateSlug("category", fmt.Sprintf("category '%s' already exists", categorySlug))
	}

	category.Name = req.Name
	category.Slug = categorySlug
	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to update category")
	}

	resp := toCategoryResponse(*category)
	return &resp, nil
}

// Delete refuses to remove a category that any portfolio still links to.
// The check is a plain count query, the schema does not enforce it.
func (s *categoryService) Delete(db *gorm.DB, id uint) error {
	if _, err := s.categoryRepo.FindByID(db, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrNotFound(err, "category", "category not found")
		}
		return apperrors.DatabaseError(err, "failed to look up category")
	}

	count, err := s.categoryRepo.UsageCount(db, id)
	if err != nil {
		return apperrors.DatabaseError(err, "failed to count category usage")
	}
	if count > 0 {
		return apperrors.ErrInUse("category", "category is linked to existing portfolios", count)
	}

	if err := s.categoryRepo.Delete(db, id); err != nil {
		return apperrors.DatabaseError(err, "failed to delete category")
	}
	return nil
}

func (s *categoryService) List(db *gorm.DB) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to list categories")
	}
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}
	return responses, nil
}

func (s *categoryService) ListWithUsage(db *gorm.DB) ([]dto.CategoryWithUsageResponse, error) {
	categories, err := s.categoryRepo.ListWithUsage(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to list categories")
	}
	responses := make([]dto.CategoryWithUsageResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryWithUsageResponse{
			CategoryResponse: toCategoryResponse(category.Category),
			TotalProjects:    category.TotalProjects,
		})
	}
	return responses, nil
}

func toCategoryResponse(category models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}
