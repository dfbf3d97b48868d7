package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
	"github.com/devanpatel28/codegrin-backend/pkg/contextkeys"
)

// fakeCategoryService returns canned values so the handler layer can be
// tested without a database.
type fakeCategoryService struct {
	createErr  error
	deleteErr  error
	categories []dto.CategoryResponse
}

func (f *fakeCategoryService) Create(_ *gorm.DB, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.CategoryResponse{ID: 1, Name: req.Name, Slug: "made-up"}, nil
}

func (f *fakeCategoryService) Update(_ *gorm.DB, id uint, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	return &dto.CategoryResponse{ID: id, Name: req.Name, Slug: "made-up"}, nil
}

func (f *fakeCategoryService) Delete(_ *gorm.DB, id uint) error { return f.deleteErr }

func (f *fakeCategoryService) List(_ *gorm.DB) ([]dto.CategoryResponse, error) {
	return f.categories, nil
}

func (f *fakeCategoryService) ListWithUsage(_ *gorm.DB) ([]dto.CategoryWithUsageResponse, error) {
	return nil, nil
}

func newCategoryTestRouter(service *fakeCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), (*gorm.DB)(nil))
	})

	handler := NewCategoryHandler(service)
	group := router.Group("/api/categories")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return router
}

func TestCategoryListEnvelope(t *testing.T) {
	router := newCategoryTestRouter(&fakeCategoryService{
		categories: []dto.CategoryResponse{{ID: 1, Name: "AI", Slug: "ai"}},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool                   `json:"success"`
		Message    string                 `json:"message"`
		Categories []dto.CategoryResponse `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "ai", body.Categories[0].Slug)
}

func TestCategoryCreateValidatesBody(t *testing.T) {
	router := newCategoryTestRouter(&fakeCategoryService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestCategoryCreateConflictPassesThrough(t *testing.T) {
	router := newCategoryTestRouter(&fakeCategoryService{
		createErr: apperrors.ErrDuplicateSlug("category", "category 'ai' already exists"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"AI"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_EXISTS")
}

func TestCategoryDeleteInUse(t *testing.T) {
	router := newCategoryTestRouter(&fakeCategoryService{
		deleteErr: apperrors.ErrInUse("category", "category is linked to existing portfolios", 4),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/1", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_projects":4`)
}

func TestCategoryDeleteRejectsBadID(t *testing.T) {
	router := newCategoryTestRouter(&fakeCategoryService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/abc", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
