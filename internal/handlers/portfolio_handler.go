package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/config"
	"github.com/devanpatel28/codegrin-backend/internal/middleware"
	"github.com/devanpatel28/codegrin-backend/internal/services"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/internal/validator"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type PortfolioHandler struct {
	BaseHandler
	portfolioService services.PortfolioService
	uploadCfg        config.UploadConfig
}

func NewPortfolioHandler(portfolioService services.PortfolioService, uploadCfg config.UploadConfig) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, uploadCfg: uploadCfg}
}

func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/carousel", h.Carousel)
	rg.GET("/slug/:slug", h.GetBySlug)
	rg.GET("/category/:slug", h.ListByCategory)
	rg.GET("/:id", h.GetByID)

	protected := rg.Group("", middleware.AdminAuthMiddleware())
	protected.POST("", h.Create)
	protected.PUT("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
}

// ---------------------------------------------------------------------------
// Reads

func (h *PortfolioHandler) List(c *gin.Context) {
	portfolios, err := h.portfolioService.ListAll(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "portfolios fetched",
		"portfolios": portfolios,
	})
}

func (h *PortfolioHandler) Carousel(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	portfolios, err := h.portfolioService.Carousel(h.GetDB(c), limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "carousel fetched",
		"portfolios": portfolios,
	})
}

// GetBySlug carries the same circular "next" pointer as GetByID; the public
// site reaches detail pages by slug.
func (h *PortfolioHandler) GetBySlug(c *gin.Context) {
	db := h.GetDB(c)
	portfolio, err := h.portfolioService.GetBySlug(db, c.Param("slug"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	next, err := h.portfolioService.GetNext(db, portfolio.ID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "portfolio fetched",
		"portfolio":     portfolio,
		"nextPortfolio": next,
	})
}

func (h *PortfolioHandler) ListByCategory(c *gin.Context) {
	portfolios, category, err := h.portfolioService.ListByCategory(h.GetDB(c), c.Param("slug"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "portfolios fetched",
		"category":   category,
		"count":      len(portfolios),
		"portfolios": portfolios,
	})
}

// GetByID also resolves the circular "next" pointer so the detail page can
// link forward without a second round trip.
func (h *PortfolioHandler) GetByID(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	portfolio, err := h.portfolioService.GetByID(db, id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	next, err := h.portfolioService.GetNext(db, id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "portfolio fetched",
		"portfolio":     portfolio,
		"nextPortfolio": next,
	})
}

// ---------------------------------------------------------------------------
// Writes

func (h *PortfolioHandler) Create(c *gin.Context) {
	req, files, ok := h.bindCreateForm(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.Create(c.Request.Context(), h.GetDB(c), req, files)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "portfolio created",
		"portfolio": portfolio,
	})
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	req, files, ok := h.bindUpdateForm(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.Update(c.Request.Context(), h.GetDB(c), id, req, files)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "portfolio updated",
		"portfolio": portfolio,
	})
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "portfolio deleted",
	})
}

// ---------------------------------------------------------------------------
// Multipart decoding

// bindCreateForm decodes the multipart body once into a typed request. The
// list fields arrive as JSON-encoded form values next to the raw files.
func (h *PortfolioHandler) bindCreateForm(c *gin.Context) (dto.CreatePortfolioRequest, []*multipart.FileHeader, bool) {
	var req dto.CreatePortfolioRequest

	req.Title = c.PostForm("title")
	req.Slug = c.PostForm("slug")
	req.ProjectType = c.PostForm("project_type")
	req.PublisherName = c.PostForm("publisher_name")
	if link, present := c.GetPostForm("project_link"); present && link != "" {
		req.ProjectLink = &link
	}

	if ok := decodeJSONField(c, "tech_category", &req.CategorySlugs); !ok {
		return req, nil, false
	}
	if ok := decodeJSONField(c, "descriptions", &req.Descriptions); !ok {
		return req, nil, false
	}
	if ok := decodeJSONField(c, "images_meta", &req.ImagePlan); !ok {
		return req, nil, false
	}

	if fields := validator.Struct(req); fields != nil {
		apperrors.HandleError(c, apperrors.ValidationError(fields))
		return req, nil, false
	}

	files, ok := h.formFiles(c)
	if !ok {
		return req, nil, false
	}
	return req, files, true
}

func (h *PortfolioHandler) bindUpdateForm(c *gin.Context) (dto.UpdatePortfolioRequest, []*multipart.FileHeader, bool) {
	var req dto.UpdatePortfolioRequest

	// Absent form fields stay nil so the service leaves them untouched.
	if v, present := c.GetPostForm("title"); present {
		req.Title = &v
	}
	if v, present := c.GetPostForm("slug"); present {
		req.Slug = &v
	}
	if v, present := c.GetPostForm("project_type"); present {
		req.ProjectType = &v
	}
	if v, present := c.GetPostForm("publisher_name"); present {
		req.PublisherName = &v
	}
	if v, present := c.GetPostForm("project_link"); present {
		req.ProjectLink = &v
	}

	if _, present := c.GetPostForm("tech_category"); present {
		req.CategorySlugs = []string{}
		if ok := decodeJSONField(c, "tech_category", &req.CategorySlugs); !ok {
			return req, nil, false
		}
	}
	if _, present := c.GetPostForm("descriptions"); present {
		req.Descriptions = []string{}
		if ok := decodeJSONField(c, "descriptions", &req.Descriptions); !ok {
			return req, nil, false
		}
	}
	if _, present := c.GetPostForm("images_meta"); present {
		req.ImagePlan = []dto.ImageSlot{}
		if ok := decodeJSONField(c, "images_meta", &req.ImagePlan); !ok {
			return req, nil, false
		}
	}

	if fields := validator.Struct(req); fields != nil {
		apperrors.HandleError(c, apperrors.ValidationError(fields))
		return req, nil, false
	}

	files, ok := h.formFiles(c)
	if !ok {
		return req, nil, false
	}
	return req, files, true
}

// formFiles pulls the raw image payloads and enforces the upload limits.
func (h *PortfolioHandler) formFiles(c *gin.Context) ([]*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid multipart body"))
		return nil, false
	}

	files := form.File["images"]
	if len(files) > h.uploadCfg.MaxFiles {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("too many files, at most %d allowed", h.uploadCfg.MaxFiles)))
		return nil, false
	}

	for _, file := range files {
		if file.Size > h.uploadCfg.MaxSize {
			apperrors.HandleError(c, apperrors.NewBadRequestError(
				fmt.Sprintf("file %s exceeds the %d byte limit", file.Filename, h.uploadCfg.MaxSize)))
			return nil, false
		}
		if !h.allowedType(file.Header.Get("Content-Type")) {
			apperrors.HandleError(c, apperrors.NewBadRequestError(
				fmt.Sprintf("file %s has unsupported type %s", file.Filename, file.Header.Get("Content-Type"))))
			return nil, false
		}
	}
	return files, true
}

func (h *PortfolioHandler) allowedType(contentType string) bool {
	for _, allowed := range h.uploadCfg.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func decodeJSONField(c *gin.Context, field string, dest interface{}) bool {
	raw := c.PostForm(field)
	if raw == "" {
		return true
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(fmt.Sprintf("malformed %s field", field)))
		return false
	}
	return true
}
