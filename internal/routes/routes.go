package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/handlers"
)

// Setup mounts the API surface. Reads are public, writes sit behind the
// admin auth middleware registered per handler.
func Setup(router *gin.Engine, h *handlers.AppHandlers) {
	api := router.Group("/api")

	h.Auth.RegisterRoutes(api.Group("/admin"))
	h.Category.RegisterRoutes(api.Group("/categories"))
	h.Portfolio.RegisterRoutes(api.Group("/portfolios"))
	h.Contact.RegisterRoutes(api.Group("/contact"))
}
