package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/nexarch/core/internal/apperr"
	"github.com/nexarch/core/internal/auth"
	"github.com/nexarch/core/internal/models"
)

func registerIngestRoutes(api *gin.RouterGroup, deps Deps) {
	api.POST("/ingest", func(c *gin.Context) { ingestSingle(c, deps) })
	api.POST("/ingest/batch", func(c *gin.Context) { ingestBatch(c, deps) })
}

func ingestSingle(c *gin.Context, deps Deps) {
	tenant := auth.TenantFromContext(c)

	var span models.Span
	if err := c.ShouldBindJSON(&span); err != nil {
		respondError(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	spanID, err := deps.Ingest.IngestSingle(c.Request.Context(), tenant, span)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(202, gin.H{"status": "accepted", "span_id": spanID})
}

func ingestBatch(c *gin.Context, deps Deps) {
	tenant := auth.TenantFromContext(c)

	var spans []models.Span
	if err := c.ShouldBindJSON(&spans); err != nil {
		respondError(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	accepted, rejected, err := deps.Ingest.IngestBatch(c.Request.Context(), tenant, spans)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(202, gin.H{"accepted": accepted, "rejected": rejected})
}

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"detail": apperr.PublicDetail(err)})
}
