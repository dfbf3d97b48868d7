package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id uint) (*models.Category, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Category, error)
	FindBySlugs(db *gorm.DB, slugs []string) ([]models.Category, error)
	ExistsBySlug(db *gorm.DB, slug string, excludeID uint) (bool, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB) ([]models.Category, error)
	ListWithUsage(db *gorm.DB) ([]models.CategoryWithUsage, error)
	UsageCount(db *gorm.DB, id uint) (int64, error)
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	return db.Create(category).Error
}

func (r *categoryRepository) FindByID(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	var category models.Category
	err := db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindBySlugs returns the categories whose slug is in slugs. Slugs that do
// not resolve are simply absent from the result; the caller decides whether
// that matters.
func (r *categoryRepository) FindBySlugs(db *gorm.DB, slugs []string) ([]models.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := db.Where("slug IN ?", slugs).Find(&categories).Error
	return categories, err
}

// ExistsBySlug reports whether another category already owns slug. Pass the
// row's own id as excludeID on update so it does not collide with itself.
func (r *categoryRepository) ExistsBySlug(db *gorm.DB, slug string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes name and slug. RowsAffected is not checked; MySQL reports
// zero affected rows for a no-change update and the caller has already
// verified the row exists.
func (r *categoryRepository) Update(db *gorm.DB, category *models.Category) error {
	return db.Model(category).Updates(map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	}).Error
}

func (r *categoryRepository) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListWithUsage returns every category with the number of portfolios linked
// to it, busiest first.
func (r *categoryRepository) ListWithUsage(db *gorm.DB) ([]models.CategoryWithUsage, error) {
	var rows []models.CategoryWithUsage
	err := db.Model(&models.Category{}).
		Select("portfolio_main_categories.*, COUNT(pc.portfolio_id) AS total_projects").
		Joins("LEFT JOIN portfolio_categories pc ON portfolio_main_categories.id = pc.category_id").
		Group("portfolio_main_categories.id").
		Order("total_projects DESC, name ASC").
		Scan(&rows).Error
	return rows, err
}

// UsageCount returns how many portfolios still link to the category.
func (r *categoryRepository) UsageCount(db *gorm.DB, id uint) (int64, error) {
	var count int64
	err := db.Model(&models.PortfolioCategory{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
