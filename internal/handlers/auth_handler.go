package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/middleware"
	"github.com/devanpatel28/codegrin-backend/internal/services"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)

	protected := rg.Group("", middleware.AdminAuthMiddleware())
	protected.GET("/profile", h.Profile)
	protected.PUT("/profile", h.UpdateProfile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"token":   resp.Token,
		"admin":   resp.Admin,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.authService.Profile(h.GetDB(c), h.AdminID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile fetched",
		"admin":   profile,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateAdminNameRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.authService.UpdateName(h.GetDB(c), h.AdminID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated",
		"admin":   profile,
	})
}
