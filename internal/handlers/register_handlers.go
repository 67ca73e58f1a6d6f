// Package handlers exposes the engine as a tool-call surface: every operation
// is a POST under /api/v1/tools responding with a success/message/data
// envelope, plus read-only resources under /api/v1/resources.
package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/middleware"
	"github.com/ledgerline/ledgerline/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter))

	tools := v1.Group("/tools")
	registerAccountTools(tools, services.Account, cfg)
	registerJournalTools(tools, services.Journal)
	registerReportingTools(tools, services.Reporting, cfg)
	registerRawQueryTool(tools, services.RawQuery)

	resources := v1.Group("/resources")
	registerSchemaResource(resources)

	return nil
}
