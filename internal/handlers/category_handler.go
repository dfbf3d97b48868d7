package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/middleware"
	"github.com/devanpatel28/codegrin-backend/internal/services"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type CategoryHandler struct {
	BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/totals", h.ListWithUsage)

	protected := rg.Group("", middleware.AdminAuthMiddleware())
	protected.POST("", h.Create)
	protected.PUT("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "categories fetched",
		"categories": categories,
	})
}

func (h *CategoryHandler) ListWithUsage(c *gin.Context) {
	categories, err := h.categoryService.ListWithUsage(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "categories fetched",
		"categories": categories,
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(h.GetDB(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "category created",
		"category": category,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(h.GetDB(c), id, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "category updated",
		"category": category,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(h.GetDB(c), id); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "category deleted",
	})
}
