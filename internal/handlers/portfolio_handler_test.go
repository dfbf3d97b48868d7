package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/config"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
	"github.com/devanpatel28/codegrin-backend/pkg/contextkeys"
)

type fakePortfolioService struct {
	lastCreate dto.CreatePortfolioRequest
	lastUpdate dto.UpdatePortfolioRequest
	fileCount  int
	getErr     error
}

func (f *fakePortfolioService) GetByID(_ *gorm.DB, id uint) (*dto.PortfolioAggregate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dto.PortfolioAggregate{ID: id, Title: "Showcase", Slug: "showcase"}, nil
}

func (f *fakePortfolioService) GetBySlug(_ *gorm.DB, slug string) (*dto.PortfolioAggregate, error) {
	return &dto.PortfolioAggregate{ID: 1, Slug: slug}, nil
}

func (f *fakePortfolioService) ListAll(_ *gorm.DB) ([]dto.PortfolioAggregate, error) {
	return []dto.PortfolioAggregate{}, nil
}

func (f *fakePortfolioService) ListByCategory(_ *gorm.DB, slug string) ([]dto.PortfolioAggregate, *dto.CategoryResponse, error) {
	return []dto.PortfolioAggregate{{ID: 1, Slug: "showcase"}}, &dto.CategoryResponse{ID: 7, Name: "AI", Slug: slug}, nil
}

func (f *fakePortfolioService) Carousel(_ *gorm.DB, limit int) ([]dto.PortfolioSummary, error) {
	return []dto.PortfolioSummary{}, nil
}

func (f *fakePortfolioService) GetNext(_ *gorm.DB, currentID uint) (*dto.PortfolioSummary, error) {
	return &dto.PortfolioSummary{ID: currentID + 1, Slug: "next-one"}, nil
}

func (f *fakePortfolioService) Create(_ context.Context, _ *gorm.DB, req dto.CreatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error) {
	f.lastCreate = req
	f.fileCount = len(files)
	return &dto.PortfolioAggregate{ID: 1, Slug: req.Slug}, nil
}

func (f *fakePortfolioService) Update(_ context.Context, _ *gorm.DB, id uint, req dto.UpdatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioAggregate, error) {
	f.lastUpdate = req
	f.fileCount = len(files)
	return &dto.PortfolioAggregate{ID: id}, nil
}

func (f *fakePortfolioService) Delete(_ context.Context, _ *gorm.DB, id uint) error { return nil }

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxSize:      5 * 1024 * 1024,
		MaxFiles:     10,
		AllowedTypes: []string{"image/webp", "image/jpeg", "image/png"},
	}
}

func newPortfolioTestRouter(service *fakePortfolioService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), (*gorm.DB)(nil))
	})

	handler := NewPortfolioHandler(service, testUploadConfig())
	group := router.Group("/api/portfolios")
	group.GET("/slug/:slug", handler.GetBySlug)
	group.GET("/category/:slug", handler.ListByCategory)
	group.GET("/:id", handler.GetByID)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	return router
}

func addFormFile(t *testing.T, writer *multipart.Writer, field, name, contentType string) {
	t.Helper()
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
}

func TestPortfolioGetByIDIncludesNextPointer(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolios/1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success       bool                   `json:"success"`
		Portfolio     dto.PortfolioAggregate `json:"portfolio"`
		NextPortfolio dto.PortfolioSummary   `json:"nextPortfolio"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(1), body.Portfolio.ID)
	assert.Equal(t, uint(2), body.NextPortfolio.ID)
}

// The slug route serves the same detail page as the id route and must carry
// the same forward pointer.
func TestPortfolioGetBySlugIncludesNextPointer(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolios/slug/showcase", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success       bool                   `json:"success"`
		Portfolio     dto.PortfolioAggregate `json:"portfolio"`
		NextPortfolio *dto.PortfolioSummary  `json:"nextPortfolio"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "showcase", body.Portfolio.Slug)
	require.NotNil(t, body.NextPortfolio)
	assert.Equal(t, uint(2), body.NextPortfolio.ID)
}

func TestPortfolioListByCategoryEnvelope(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolios/category/ai", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool                     `json:"success"`
		Category   dto.CategoryResponse     `json:"category"`
		Count      int                      `json:"count"`
		Portfolios []dto.PortfolioAggregate `json:"portfolios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ai", body.Category.Slug)
	assert.Equal(t, 1, body.Count)
	assert.Len(t, body.Portfolios, 1)
}

func TestPortfolioGetByIDNotFound(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{
		getErr: apperrors.ErrNotFound(nil, "portfolio", "portfolio not found"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolios/99", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortfolioCreateDecodesMultipart(t *testing.T) {
	service := &fakePortfolioService{}
	router := newPortfolioTestRouter(service)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Showcase"))
	require.NoError(t, writer.WriteField("slug", "showcase"))
	require.NoError(t, writer.WriteField("project_type", "web"))
	require.NoError(t, writer.WriteField("publisher_name", "CodeGrin"))
	require.NoError(t, writer.WriteField("tech_category", `["ai","web"]`))
	require.NoError(t, writer.WriteField("descriptions", `["First","Second"]`))
	require.NoError(t, writer.WriteField("images_meta", `[{"isNew":true,"file_index":0,"alt_text":"Cover"}]`))
	addFormFile(t, writer, "images", "cover.webp", "image/webp")
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/portfolios", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, "showcase", service.lastCreate.Slug)
	assert.Equal(t, []string{"ai", "web"}, service.lastCreate.CategorySlugs)
	assert.Equal(t, []string{"First", "Second"}, service.lastCreate.Descriptions)
	require.Len(t, service.lastCreate.ImagePlan, 1)
	assert.True(t, service.lastCreate.ImagePlan[0].IsNew)
	assert.Equal(t, "Cover", service.lastCreate.ImagePlan[0].AltText)
	assert.Equal(t, 1, service.fileCount)
}

func TestPortfolioCreateRejectsMalformedPlanJSON(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Showcase"))
	require.NoError(t, writer.WriteField("slug", "showcase"))
	require.NoError(t, writer.WriteField("project_type", "web"))
	require.NoError(t, writer.WriteField("publisher_name", "CodeGrin"))
	require.NoError(t, writer.WriteField("images_meta", `{not json`))
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/portfolios", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "images_meta")
}

func TestPortfolioCreateRejectsUnsupportedFileType(t *testing.T) {
	router := newPortfolioTestRouter(&fakePortfolioService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Showcase"))
	require.NoError(t, writer.WriteField("slug", "showcase"))
	require.NoError(t, writer.WriteField("project_type", "web"))
	require.NoError(t, writer.WriteField("publisher_name", "CodeGrin"))
	require.NoError(t, writer.WriteField("images_meta", `[{"isNew":true,"file_index":0}]`))
	addFormFile(t, writer, "images", "script.svg", "image/svg+xml")
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/portfolios", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported type")
}

func TestPortfolioUpdateKeepsAbsentFieldsNil(t *testing.T) {
	service := &fakePortfolioService{}
	router := newPortfolioTestRouter(service)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Renamed"))
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/portfolios/1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, service.lastUpdate.Title)
	assert.Equal(t, "Renamed", *service.lastUpdate.Title)
	assert.Nil(t, service.lastUpdate.Slug)
	assert.Nil(t, service.lastUpdate.CategorySlugs)
	assert.Nil(t, service.lastUpdate.Descriptions)
	assert.Nil(t, service.lastUpdate.ImagePlan)
}
