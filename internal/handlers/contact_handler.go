package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/services"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type ContactHandler struct {
	BaseHandler
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Submit)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "message sent",
	})
}
