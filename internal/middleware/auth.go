package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/auth"
	"github.com/devanpatel28/codegrin-backend/internal/logger"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
	"github.com/devanpatel28/codegrin-backend/pkg/contextkeys"
)

// AdminAuthMiddleware guards admin-only routes. It expects a bearer token
// issued by the login endpoint and stores the admin id for downstream
// handlers and logs.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("missing authorization header"))
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.AdminIDContextKey), claims.AdminID)
		ctx := logger.WithAdminID(c.Request.Context(), claims.AdminID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
