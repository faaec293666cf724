package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/config"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/service"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RequireAuth extracts and validates the bearer token, then exposes the
// caller's id and role to downstream handlers. Handlers trust these values
// as given and never re-verify.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWT.Secret)
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
			return
		}
		claims, err := service.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
			return
		}
		ctx.Set(ContextUserID, claims.UserID)
		ctx.Set(ContextRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin guards the admin route group. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextRole) != model.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Require admin role"})
			return
		}
		ctx.Next()
	}
}

// CallerID returns the authenticated user's id set by RequireAuth.
func CallerID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
