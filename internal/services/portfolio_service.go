package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/logger"
	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/repositories"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/internal/storage"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type PortfolioService interface {
	GetByID(db *gorm.DB, id uint) (*dto.PortfolioAggregate, error)
	GetBySlug(db *gorm.DB, slug string) (*dto.PortfolioAggregate, error)
	ListAll(db *gorm.DB) ([]dto.PortfolioAggregate, error)
	ListByCategory(db *gorm.DB, categorySlug string) ([]dto.PortfolioAggregate, *dto.CategoryResponse, error)
	Carousel(db *gorm.DB, limit int) ([]dto.PortfolioSummary, error)
	GetNext(db *gorm.DB, currentID uint) (*dto.PortfolioSummary, error)

	Create(ctx context.Context, db *gorm.DB, req dto.CreatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error)
	Update(ctx context.Context, db *gorm.DB, id uint, req dto.UpdatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error)
	Delete(ctx context.Context, db *gorm.DB, id uint) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	categoryRepo  repositories.CategoryRepository
	store         storage.AssetStore
	uploadFolder  string
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	categoryRepo repositories.CategoryRepository,
	store storage.AssetStore,
	uploadFolder string,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		categoryRepo:  categoryRepo,
		store:         store,
		uploadFolder:  uploadFolder,
	}
}

// ---------------------------------------------------------------------------
// Reads

func (s *portfolioService) GetByID(db *gorm.DB, id uint) (*dto.PortfolioAggregate, error) {
	portfolio, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrNotFound(err, "portfolio", "portfolio not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up portfolio")
	}
	return s.composeAggregate(db, portfolio)
}

func (s *portfolioService) GetBySlug(db *gorm.DB, slug string) (*dto.PortfolioAggregate, error) {
	portfolio, err := s.portfolioRepo.FindBySlug(db, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrNotFound(err, "portfolio", "portfolio not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up portfolio")
	}
	return s.composeAggregate(db, portfolio)
}

func (s *portfolioService) ListAll(db *gorm.DB) ([]dto.PortfolioAggregate, error) {
	ids, err := s.portfolioRepo.ListIDs(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to list portfolios")
	}
	return s.composeAggregates(db, ids)
}

// ListByCategory also returns the resolved category so the handler can echo
// it alongside the filtered list.
func (s *portfolioService) ListByCategory(db *gorm.DB, categorySlug string) ([]dto.PortfolioAggregate, *dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(db, categorySlug)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "category", "category not found")
		}
		return nil, nil, apperrors.DatabaseError(err, "failed to look up category")
	}

	ids, err := s.portfolioRepo.ListIDsByCategory(db, category.ID)
	if err != nil {
		return nil, nil, apperrors.DatabaseError(err, "failed to list portfolios by category")
	}
	portfolios, err := s.composeAggregates(db, ids)
	if err != nil {
		return nil, nil, err
	}
	resp := toCategoryResponse(*category)
	return portfolios, &resp, nil
}

func (s *portfolioService) Carousel(db *gorm.DB, limit int) ([]dto.PortfolioSummary, error) {
	ids, err := s.portfolioRepo.ListIDs(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to list portfolios")
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	summaries := make([]dto.PortfolioSummary, 0, len(ids))
	for _, id := range ids {
		portfolio, err := s.portfolioRepo.FindByID(db, id)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "failed to load portfolio")
		}
		summary, err := s.toSummary(db, portfolio)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// GetNext resolves the id-ascending successor of currentID, wrapping to the
// first portfolio when currentID is the last one.
func (s *portfolioService) GetNext(db *gorm.DB, currentID uint) (*dto.PortfolioSummary, error) {
	next, err := s.portfolioRepo.NextAfter(db, currentID)
	if errors.Is(err, repositories.ErrPortfolioNotFound) {
		next, err = s.portfolioRepo.First(db)
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrNotFound(err, "portfolio", "no portfolios exist")
		}
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to resolve next portfolio")
	}
	return s.toSummary(db, next)
}

func (s *portfolioService) toSummary(db *gorm.DB, portfolio *models.Portfolio) (*dto.PortfolioSummary, error) {
	summary := dto.PortfolioSummary{
		ID:          portfolio.ID,
		Title:       portfolio.Title,
		Slug:        portfolio.Slug,
		ProjectType: portfolio.ProjectType,
	}
	header, err := s.portfolioRepo.HeaderImageFor(db, portfolio.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to load header image")
	}
	if header != nil {
		summary.HeaderImageURL = header.ImageURL
	}
	return &summary, nil
}

func (s *portfolioService) composeAggregates(db *gorm.DB, ids []uint) ([]dto.PortfolioAggregate, error) {
	aggregates := make([]dto.PortfolioAggregate, 0, len(ids))
	for _, id := range ids {
		portfolio, err := s.portfolioRepo.FindByID(db, id)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "failed to load portfolio")
		}
		aggregate, err := s.composeAggregate(db, portfolio)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, *aggregate)
	}
	return aggregates, nil
}

func (s *portfolioService) composeAggregate(db *gorm.DB, portfolio *models.Portfolio) (*dto.PortfolioAggregate, error) {
	categories, err := s.portfolioRepo.CategoriesFor(db, portfolio.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to load portfolio categories")
	}
	descriptions, err := s.portfolioRepo.DescriptionsFor(db, portfolio.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to load portfolio descriptions")
	}
	images, err := s.portfolioRepo.ImagesFor(db, portfolio.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to load portfolio images")
	}

	aggregate := dto.PortfolioAggregate{
		ID:            portfolio.ID,
		Title:         portfolio.Title,
		Slug:          portfolio.Slug,
		ProjectType:   portfolio.ProjectType,
		PublisherName: portfolio.PublisherName,
		ProjectLink:   portfolio.ProjectLink,
		Categories:    make([]dto.CategoryResponse, 0, len(categories)),
		Descriptions:  make([]string, 0, len(descriptions)),
		Images:        make([]dto.PortfolioImageResponse, 0, len(images)),
		CreatedAt:     portfolio.CreatedAt,
		UpdatedAt:     portfolio.UpdatedAt,
	}
	for _, category := range categories {
		aggregate.Categories = append(aggregate.Categories, toCategoryResponse(category))
	}
	for _, description := range descriptions {
		aggregate.Descriptions = append(aggregate.Descriptions, description.Description)
	}
	for _, image := range images {
		aggregate.Images = append(aggregate.Images, dto.PortfolioImageResponse{
			ID:           image.ID,
			ImageURL:     image.ImageURL,
			DisplayOrder: image.DisplayOrder,
			AltText:      image.AltText,
			IsHeader:     image.IsHeader,
		})
	}
	return &aggregate, nil
}

// ---------------------------------------------------------------------------
// Create

func (s *portfolioService) Create(ctx context.Context, db *gorm.DB, req dto.CreatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error) {
	exists, err := s.portfolioRepo.ExistsBySlug(db, req.Slug, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to check portfolio slug")
	}
	if exists {
		return nil, apperrors.ErrDuplicateSlug("portfolio", fmt.Sprintf("portfolio '%s' already exists", req.Slug))
	}

	// Creation cannot reference pre-existing remote images.
	for i, slot := range req.ImagePlan {
		if !slot.IsNew {
			return nil, apperrors.ErrInvalidImagePlan(fmt.Sprintf("image slot %d must be new on create", i))
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error, "failed to begin transaction")
	}
	defer tx.Rollback()

	portfolio := &models.Portfolio{
		Title:         req.Title,
		Slug:          req.Slug,
		ProjectType:   req.ProjectType,
		PublisherName: req.PublisherName,
		ProjectLink:   req.ProjectLink,
	}
	if err := s.portfolioRepo.Create(tx, portfolio); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to create portfolio")
	}

	categoryIDs, err := s.resolveCategorySlugs(ctx, tx, req.CategorySlugs)
	if err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.ReplaceCategories(tx, portfolio.ID, categoryIDs); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to link categories")
	}

	if err := s.portfolioRepo.ReplaceDescriptions(tx, portfolio.ID, req.Descriptions); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to insert descriptions")
	}

	// Uploads happen inside the open transaction window. A failed upload
	// rolls back every row, already uploaded files leak on remote storage.
	for i, slot := range req.ImagePlan {
		asset, err := s.uploadSlot(ctx, files, slot, i)
		if err != nil {
			return nil, err
		}
		image := &models.PortfolioImage{
			PortfolioID:  portfolio.ID,
			ImageURL:     asset.URL,
			FileID:       &asset.FileID,
			DisplayOrder: i,
			AltText:      altTextFor(slot, portfolio.Title, i),
			IsHeader:     i == 0,
		}
		if err := s.portfolioRepo.CreateImage(tx, image); err != nil {
			return nil, apperrors.DatabaseError(err, "failed to insert image row")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err, "failed to commit portfolio create")
	}

	logger.CtxInfo(ctx, "portfolio created",
		"portfolio_id", portfolio.ID,
		"slug", portfolio.Slug,
		"images", len(req.ImagePlan))

	return s.GetByID(db, portfolio.ID)
}

// ---------------------------------------------------------------------------
// Update

func (s *portfolioService) Update(ctx context.Context, db *gorm.DB, id uint, req dto.UpdatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error) {
	portfolio, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrNotFound(err, "portfolio", "portfolio not found")
		}
		return nil, apperrors.DatabaseError(err, "failed to look up portfolio")
	}

	if req.Slug != nil && *req.Slug != portfolio.Slug {
		exists, err := s.portfolioRepo.ExistsBySlug(db, *req.Slug, id)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "failed to check portfolio slug")
		}
		if exists {
			return nil, apperrors.ErrDuplicateSlug("portfolio", fmt.Sprintf("portfolio '%s' already exists", *req.Slug))
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error, "failed to begin transaction")
	}
	defer tx.Rollback()

	fields := baseFieldUpdates(req)
	if err := s.portfolioRepo.UpdateFields(tx, id, fields); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to update portfolio fields")
	}

	if req.CategorySlugs != nil {
		categoryIDs, err := s.resolveCategorySlugs(ctx, tx, req.CategorySlugs)
		if err != nil {
			return nil, err
		}
		if err := s.portfolioRepo.ReplaceCategories(tx, id, categoryIDs); err != nil {
			return nil, apperrors.DatabaseError(err, "failed to replace categories")
		}
	}

	if req.Descriptions != nil {
		if err := s.portfolioRepo.ReplaceDescriptions(tx, id, req.Descriptions); err != nil {
			return nil, apperrors.DatabaseError(err, "failed to replace descriptions")
		}
	}

	var removed []models.PortfolioImage
	if req.ImagePlan != nil {
		current, err := s.portfolioRepo.ImagesFor(tx, id)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "failed to load current images")
		}

		diff := diffImagePlan(current, req.ImagePlan)

		for _, move := range diff.Moves {
			if err := s.portfolioRepo.UpdateImagePlacement(tx, move.ImageID, move.DisplayOrder, move.IsHeader); err != nil {
				return nil, apperrors.DatabaseError(err, "failed to reorder image")
			}
		}

		// Uploads run only after the full diff is computed so a mid-upload
		// failure leaves nothing committed.
		for _, upload := range diff.Uploads {
			asset, err := s.uploadSlot(ctx, files, upload.Slot, upload.Position)
			if err != nil {
				return nil, err
			}
			image := &models.PortfolioImage{
				PortfolioID:  id,
				ImageURL:     asset.URL,
				FileID:       &asset.FileID,
				DisplayOrder: upload.Position,
				AltText:      altTextFor(upload.Slot, portfolio.Title, upload.Position),
				IsHeader:     upload.Position == 0,
			}
			if err := s.portfolioRepo.CreateImage(tx, image); err != nil {
				return nil, apperrors.DatabaseError(err, "failed to insert image row")
			}
		}

		if len(diff.Removals) > 0 {
			ids := make([]uint, 0, len(diff.Removals))
			for _, image := range diff.Removals {
				ids = append(ids, image.ID)
			}
			if err := s.portfolioRepo.DeleteImages(tx, ids); err != nil {
				return nil, apperrors.DatabaseError(err, "failed to delete image rows")
			}
		}
		removed = diff.Removals
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err, "failed to commit portfolio update")
	}

	// Remote cleanup strictly after commit. The rows are gone either way,
	// a failed remote delete only leaks a file.
	s.deleteRemoteAssets(ctx, removed)

	logger.CtxInfo(ctx, "portfolio updated", "portfolio_id", id, "removed_images", len(removed))

	return s.GetByID(db, id)
}

// ---------------------------------------------------------------------------
// Delete

func (s *portfolioService) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	if _, err := s.portfolioRepo.FindByID(db, id); err != nil {
		if errors.Is(err, repositories.ErrPortfolioNotFound) {
			return apperrors.ErrNotFound(err, "portfolio", "portfolio not found")
		}
		return apperrors.DatabaseError(err, "failed to look up portfolio")
	}

	images, err := s.portfolioRepo.ImagesFor(db, id)
	if err != nil {
		return apperrors.DatabaseError(err, "failed to load portfolio images")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := s.portfolioRepo.DeleteRelations(tx, id); err != nil {
		return apperrors.DatabaseError(err, "failed to delete portfolio relations")
	}
	if err := s.portfolioRepo.Delete(tx, id); err != nil {
		return apperrors.DatabaseError(err, "failed to delete portfolio")
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err, "failed to commit portfolio delete")
	}

	s.deleteRemoteAssets(ctx, images)

	logger.CtxInfo(ctx, "portfolio deleted", "portfolio_id", id, "images", len(images))
	return nil
}

// ---------------------------------------------------------------------------
// Helpers

// resolveCategorySlugs maps slugs to category ids, silently dropping slugs
// that no longer resolve. Categories can be deleted between the client
// loading the list and submitting.
func (s *portfolioService) resolveCategorySlugs(ctx context.Context, db *gorm.DB, slugs []string) ([]uint, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.FindBySlugs(db, slugs)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to resolve category slugs")
	}

	bySlug := make(map[string]uint, len(categories))
	for _, category := range categories {
		bySlug[category.Slug] = category.ID
	}

	ids := make([]uint, 0, len(slugs))
	for _, categorySlug := range slugs {
		id, ok := bySlug[categorySlug]
		if !ok {
			logger.CtxWarn(ctx, "skipping unresolved category slug", "slug", categorySlug)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *portfolioService) uploadSlot(ctx context.Context, files []*multipart.FileHeader, slot dto.ImageSlot, position int) (*storage.Asset, error) {
	if slot.FileIndex < 0 || slot.FileIndex >= len(files) {
		return nil, apperrors.ErrInvalidImagePlan(fmt.Sprintf("image slot %d references missing file %d", position, slot.FileIndex))
	}
	header := files[slot.FileIndex]

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err, "failed to open uploaded file")
	}
	defer file.Close()

	asset, err := s.store.Upload(ctx, file, header.Filename, s.uploadFolder)
	if err != nil {
		return nil, apperrors.ErrRemoteAsset(err, fmt.Sprintf("failed to upload %s", header.Filename))
	}
	return asset, nil
}

// deleteRemoteAssets is best effort. Failures are logged and swallowed, the
// database is already committed and must stay authoritative.
func (s *portfolioService) deleteRemoteAssets(ctx context.Context, images []models.PortfolioImage) {
	for _, image := range images {
		if image.FileID == nil || *image.FileID == "" {
			logger.CtxWarn(ctx, "image has no file handle, remote copy leaked",
				"image_id", image.ID, "image_url", image.ImageURL)
			continue
		}
		if err := s.store.Delete(ctx, *image.FileID); err != nil {
			logger.CtxWithError(ctx, "failed to delete remote asset", err,
				"image_id", image.ID, "file_id", *image.FileID)
		}
	}
}

func baseFieldUpdates(req dto.UpdatePortfolioRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.ProjectType != nil {
		fields["project_type"] = *req.ProjectType
	}
	if req.PublisherName != nil {
		fields["publisher_name"] = *req.PublisherName
	}
	if req.ProjectLink != nil {
		fields["project_link"] = *req.ProjectLink
	}
	return fields
}

func altTextFor(slot dto.ImageSlot, title string, position int) string {
	if slot.AltText != "" {
		return slot.AltText
	}
	return fmt.Sprintf("%s - Image %d", title, position+1)
}
