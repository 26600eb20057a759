package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
	"github.com/noah-isme/career-guide-api/pkg/response"
)

// RequireRoles lets a request through only when the verified claims carry one
// of the given roles. It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[models.UserRole(strings.ToUpper(string(role)))] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.EffectiveRole()]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role "+strings.ToLower(string(claims.EffectiveRole()))+" cannot manage the catalog"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CatalogAdmin chains token verification with the catalog maintainer roles.
func CatalogAdmin(tokens tokenValidator) []gin.HandlerFunc {
	return []gin.HandlerFunc{JWT(tokens), RequireRoles(models.CatalogAdminRoles...)}
}
