package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexarch/core/internal/apperr"
)

// TenantContextKey is the gin context key the resolved tenant ID is
// stored under.
const TenantContextKey = "tenant_id"

// Middleware extracts and validates the bearer token on every request,
// attaching the resolved tenant to the gin context. Missing or invalid
// credentials short-circuit with 401.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := issuer.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid bearer token")
			return
		}

		c.Set(TenantContextKey, claims.TenantID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	err := apperr.New(apperr.KindAuthorization, detail)
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"detail": apperr.PublicDetail(err)})
}

// TenantFromContext returns the tenant ID resolved by Middleware. Callers
// past the middleware can assume it is always present.
func TenantFromContext(c *gin.Context) string {
	v, _ := c.Get(TenantContextKey)
	tenant, _ := v.(string)
	return tenant
}
