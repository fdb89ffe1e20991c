package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/nexarch/core/internal/apperr"
	"github.com/nexarch/core/internal/auth"
)

func registerCacheRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/cache/stats", func(c *gin.Context) { cacheStats(c, deps) })
}

func cacheStats(c *gin.Context, deps Deps) {
	if deps.Cache == nil {
		c.JSON(200, gin.H{"enabled": false})
		return
	}

	tenant := auth.TenantFromContext(c)
	keyCount, err := deps.Cache.Stats(c.Request.Context(), tenant)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindDependency, err))
		return
	}

	c.JSON(200, gin.H{"enabled": true, "key_count": keyCount})
}
