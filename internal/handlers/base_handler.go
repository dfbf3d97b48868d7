package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devanpatel28/codegrin-backend/internal/validator"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
	"github.com/devanpatel28/codegrin-backend/pkg/contextkeys"
)

// BaseHandler carries the helpers every resource handler shares.
type BaseHandler struct{}

// GetDB pulls the request-scoped *gorm.DB the DB middleware stored.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	return c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
}

// BindJSON decodes the body into req and validates it, rendering the error
// response itself on failure.
func (h *BaseHandler) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body"))
		return false
	}
	if fields := validator.Struct(req); fields != nil {
		apperrors.HandleError(c, apperrors.ValidationError(fields))
		return false
	}
	return true
}

// AdminID returns the authenticated admin's id set by the auth middleware.
func (h *BaseHandler) AdminID(c *gin.Context) uint {
	return c.MustGet(string(contextkeys.AdminIDContextKey)).(uint)
}

// paramID parses the :id path segment, rendering a 400 on garbage.
func (h *BaseHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid id"))
		return 0, false
	}
	return uint(id), true
}
