package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline/internal/migrations"
)

// registerSchemaResource serves the embedded reference schema as a read-only
// resource for client-side query generation.
func registerSchemaResource(rg *gin.RouterGroup) {
	rg.GET("/schema", func(c *gin.Context) {
		schema, err := migrations.Schema()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Schema resource unavailable"})
			return
		}
		c.String(http.StatusOK, schema)
	})
}
