package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
	"github.com/ledgerline/ledgerline/internal/platform/config"
	"github.com/ledgerline/ledgerline/internal/utils/render"
)

// reportingToolHandler handles the Reporting Engine tools.
type reportingToolHandler struct {
	reportingService portssvc.ReportingSvcFacade
	decimalPlaces    int32
}

// registerReportingTools registers the reporting tool routes.
func registerReportingTools(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, cfg *config.Config) {
	h := &reportingToolHandler{reportingService: reportingService, decimalPlaces: cfg.DecimalPlaces}

	rg.POST("/generateFinancialReport", h.generateFinancialReport)
	rg.POST("/getLatestTrialBalance", h.getLatestTrialBalance)
	rg.POST("/getLatestBalanceSheet", h.getLatestBalanceSheet)
}

func (h *reportingToolHandler) generateFinancialReport(c *gin.Context) {
	var req dto.ReportQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	reportTime, err := parseOptionalDate(req.AsOfDate)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reportingService.GenerateFinancialReport(c.Request.Context(), reportTime)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c,
		fmt.Sprintf("Financial report %d generated at %s", report.ID, report.ReportTime.UTC().Format("2006-01-02 15:04:05")),
		gin.H{"reportID": report.ID, "reportTime": report.ReportTime})
}

func (h *reportingToolHandler) getLatestTrialBalance(c *gin.Context) {
	var req dto.ReportQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	asOf, err := parseOptionalDate(req.AsOfDate)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reportingService.GetLatestTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondOK(c, "No trial balance reports found", nil)
			return
		}
		respondError(c, err)
		return
	}

	table := render.TrialBalanceTable(report.Lines, report.TotalDebit, report.TotalCredit, h.decimalPlaces)
	respondOK(c, table, report)
}

func (h *reportingToolHandler) getLatestBalanceSheet(c *gin.Context) {
	var req dto.ReportQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	asOf, err := parseOptionalDate(req.AsOfDate)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reportingService.GetLatestBalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondOK(c, "No balance sheet reports found", nil)
			return
		}
		respondError(c, err)
		return
	}

	text := render.BalanceSheetText(report.Sections, report.TotalAssets, report.TotalLiabilitiesAndEquity, h.decimalPlaces)
	respondOK(c, text, report)
}
