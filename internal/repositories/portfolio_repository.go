package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/models"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")

type PortfolioRepository interface {
	// Portfolio rows
	Create(db *gorm.DB, portfolio *models.Portfolio) error
	FindByID(db *gorm.DB, id uint) (*models.Portfolio, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Portfolio, error)
	ExistsBySlug(db *gorm.DB, slug string, excludeID uint) (bool, error)
	ListIDs(db *gorm.DB) ([]uint, error)
	ListIDsByCategory(db *gorm.DB, categoryID uint) ([]uint, error)
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
	NextAfter(db *gorm.DB, id uint) (*models.Portfolio, error)
	First(db *gorm.DB) (*models.Portfolio, error)

	// Relations
	CategoriesFor(db *gorm.DB, portfolioID uint) ([]models.Category, error)
	DescriptionsFor(db *gorm.DB, portfolioID uint) ([]models.PortfolioDescription, error)
	ImagesFor(db *gorm.DB, portfolioID uint) ([]models.PortfolioImage, error)
	HeaderImageFor(db *gorm.DB, portfolioID uint) (*models.PortfolioImage, error)
	ReplaceCategories(db *gorm.DB, portfolioID uint, categoryIDs []uint) error
	ReplaceDescriptions(db *gorm.DB, portfolioID uint, descriptions []string) error
	DeleteRelations(db *gorm.DB, portfolioID uint) error

	// Image rows
	CreateImage(db *gorm.DB, image *models.PortfolioImage) error
	UpdateImagePlacement(db *gorm.DB, imageID uint, displayOrder int, isHeader bool) error
	DeleteImages(db *gorm.DB, imageIDs []uint) error
}

type portfolioRepository struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &portfolioRepository{}
}

func (r *portfolioRepository) Create(db *gorm.DB, portfolio *models.Portfolio) error {
	return db.Create(portfolio).Error
}

func (r *portfolioRepository) FindByID(db *gorm.DB, id uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := db.First(&portfolio, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func (r *portfolioRepository) FindBySlug(db *gorm.DB, slug string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := db.Where("slug = ?", slug).First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func (r *portfolioRepository) ExistsBySlug(db *gorm.DB, slug string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Portfolio{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListIDs returns all portfolio ids, newest first. The aggregate composition
// fans out from these.
func (r *portfolioRepository) ListIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Portfolio{}).Order("created_at DESC").Pluck("id", &ids).Error
	return ids, err
}

// ListIDsByCategory keeps the same newest-first order as ListIDs. The link
// table holds one row per portfolio and category, so the join cannot
// duplicate ids.
func (r *portfolioRepository) ListIDsByCategory(db *gorm.DB, categoryID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Portfolio{}).
		Joins("JOIN portfolio_categories pc ON portfolio.id = pc.portfolio_id").
		Where("pc.category_id = ?", categoryID).
		Order("portfolio.created_at DESC").
		Pluck("portfolio.id", &ids).Error
	return ids, err
}

// UpdateFields applies a partial field update and always refreshes
// updated_at, even when fields is empty.
func (r *portfolioRepository) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["updated_at"] = time.Now()
	return db.Model(&models.Portfolio{}).Where("id = ?", id).Updates(fields).Error
}

func (r *portfolioRepository) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Portfolio{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

// NextAfter returns the portfolio with the smallest id greater than id, or
// ErrPortfolioNotFound when id is already the last one.
func (r *portfolioRepository) NextAfter(db *gorm.DB, id uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := db.Where("id > ?", id).Order("id ASC").First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

// First returns the portfolio with the smallest id, for circular navigation.
func (r *portfolioRepository) First(db *gorm.DB) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := db.Order("id ASC").First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func (r *portfolioRepository) CategoriesFor(db *gorm.DB, portfolioID uint) ([]models.Category, error) {
	var categories []models.Category
	err := db.Model(&models.Category{}).
		Joins("JOIN portfolio_categories pc ON pc.category_id = portfolio_main_categories.id").
		Where("pc.portfolio_id = ?", portfolioID).
		Order("portfolio_main_categories.id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *portfolioRepository) DescriptionsFor(db *gorm.DB, portfolioID uint) ([]models.PortfolioDescription, error) {
	var descriptions []models.PortfolioDescription
	err := db.Where("portfolio_id = ?", portfolioID).
		Order("display_order ASC").
		Find(&descriptions).Error
	return descriptions, err
}

// ImagesFor returns the portfolio's images header-first, then by display
// order. This is the "old" sequence the reconciler diffs against.
func (r *portfolioRepository) ImagesFor(db *gorm.DB, portfolioID uint) ([]models.PortfolioImage, error) {
	var images []models.PortfolioImage
	err := db.Where("portfolio_id = ?", portfolioID).
		Order("is_header DESC, display_order ASC").
		Find(&images).Error
	return images, err
}

func (r *portfolioRepository) HeaderImageFor(db *gorm.DB, portfolioID uint) (*models.PortfolioImage, error) {
	var image models.PortfolioImage
	err := db.Where("portfolio_id = ? AND is_header = ?", portfolioID, true).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// ReplaceCategories swaps the full category link set. Caller resolves slugs
// to ids first.
func (r *portfolioRepository) ReplaceCategories(db *gorm.DB, portfolioID uint, categoryIDs []uint) error {
	if err := db.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioCategory{}).Error; err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		link := models.PortfolioCategory{PortfolioID: portfolioID, CategoryID: categoryID}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceDescriptions swaps the full description list with fresh 1-based
// display order.
func (r *portfolioRepository) ReplaceDescriptions(db *gorm.DB, portfolioID uint, descriptions []string) error {
	if err := db.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioDescription{}).Error; err != nil {
		return err
	}
	for i, text := range descriptions {
		row := models.PortfolioDescription{
			PortfolioID:  portfolioID,
			Description:  text,
			DisplayOrder: i + 1,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteRelations removes all child rows of a portfolio. The portfolio row
// itself is deleted separately.
func (r *portfolioRepository) DeleteRelations(db *gorm.DB, portfolioID uint) error {
	if err := db.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioImage{}).Error; err != nil {
		return err
	}
	if err := db.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioCategory{}).Error; err != nil {
		return err
	}
	return db.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioDescription{}).Error
}

func (r *portfolioRepository) CreateImage(db *gorm.DB, image *models.PortfolioImage) error {
	return db.Create(image).Error
}

// UpdateImagePlacement rewrites order and header flag only; the remote file
// is untouched.
func (r *portfolioRepository) UpdateImagePlacement(db *gorm.DB, imageID uint, displayOrder int, isHeader bool) error {
	result := db.Model(&models.PortfolioImage{}).Where("id = ?", imageID).Updates(map[string]interface{}{
		"display_order": displayOrder,
		"is_header":     isHeader,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *portfolioRepository) DeleteImages(db *gorm.DB, imageIDs []uint) error {
	if len(imageIDs) == 0 {
		return nil
	}
	return db.Delete(&models.PortfolioImage{}, imageIDs).Error
}
