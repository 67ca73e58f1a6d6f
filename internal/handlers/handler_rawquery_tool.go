package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/utils/render"
)

// rawQueryToolHandler handles the raw SQL passthrough tool.
type rawQueryToolHandler struct {
	rawQueryService portssvc.RawQuerySvcFacade
}

// registerRawQueryTool registers the executeRawQuery route.
func registerRawQueryTool(rg *gin.RouterGroup, rawQueryService portssvc.RawQuerySvcFacade) {
	h := &rawQueryToolHandler{rawQueryService: rawQueryService}
	rg.POST("/executeRawQuery", h.executeRawQuery)
}

func (h *rawQueryToolHandler) executeRawQuery(c *gin.Context) {
	var req struct {
		Query  string `json:"query" binding:"required"`
		Params []any  `json:"params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.rawQueryService.ExecuteRawQuery(c.Request.Context(), req.Query, req.Params)
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("%d rows affected", result.RowsAffected)
	if len(result.Rows) > 0 {
		message = render.QueryTable(result.Columns, result.Rows)
	}
	respondOK(c, message, result)
}
