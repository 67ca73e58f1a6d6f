package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
	"github.com/ledgerline/ledgerline/internal/platform/config"
	"github.com/ledgerline/ledgerline/internal/utils/render"
)

// accountToolHandler handles the Account Directory tools.
type accountToolHandler struct {
	accountService portssvc.AccountSvcFacade
	decimalPlaces  int32
}

// registerAccountTools registers the account tool routes.
func registerAccountTools(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, cfg *config.Config) {
	h := &accountToolHandler{accountService: accountService, decimalPlaces: cfg.DecimalPlaces}

	rg.POST("/ensureAccountsExist", h.ensureAccountsExist)
	rg.POST("/renameAccount", h.renameAccount)
	rg.POST("/setControlAccount", h.setControlAccount)
	rg.POST("/getAccounts", h.getAccounts)
	rg.POST("/getChartOfAccounts", h.getChartOfAccounts)
	rg.POST("/setAccountTags", h.setAccountTags)
	rg.POST("/unsetAccountTags", h.unsetAccountTags)
	rg.POST("/deactivateAccount", h.deactivateAccount)
}

func (h *accountToolHandler) ensureAccountsExist(c *gin.Context) {
	var req dto.EnsureAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if len(req.Accounts) == 0 {
		respondOK(c, "No accounts provided; nothing to do", nil)
		return
	}

	results, err := h.accountService.EnsureManyAccountsExist(c.Request.Context(), req.Accounts)
	if err != nil {
		respondError(c, err)
		return
	}

	created := 0
	for _, r := range results {
		if r.Created {
			created++
		}
	}
	message := fmt.Sprintf("Processed %d accounts (%d created, %d already existed)", len(results), created, len(results)-created)
	respondOK(c, message, results)
}

func (h *accountToolHandler) renameAccount(c *gin.Context) {
	var req dto.RenameAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.accountService.SetAccountName(c.Request.Context(), req.Code, req.Name); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Account %d renamed to %q", req.Code, req.Name), nil)
}

func (h *accountToolHandler) setControlAccount(c *gin.Context) {
	var req dto.SetControlAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.accountService.SetControlAccount(c.Request.Context(), req.AccountCode, req.ControlAccountCode); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Account %d is now controlled by account %d", req.AccountCode, req.ControlAccountCode), nil)
}

func (h *accountToolHandler) getAccounts(c *gin.Context) {
	var req dto.AccountFilters
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	accounts, err := h.accountService.GetManyAccounts(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(accounts) == 0 {
		respondOK(c, "No accounts found", []dto.AccountResponse{})
		return
	}
	respondOK(c, fmt.Sprintf("Found %d accounts", len(accounts)), dto.ToAccountResponses(accounts))
}

func (h *accountToolHandler) getChartOfAccounts(c *gin.Context) {
	var req dto.ChartOfAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	roots, err := h.accountService.GetHierarchicalChartOfAccounts(c.Request.Context(), req.IncludeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(roots) == 0 {
		respondOK(c, "No accounts found", nil)
		return
	}
	respondOK(c, render.ChartTree(roots, h.decimalPlaces), roots)
}

func (h *accountToolHandler) setAccountTags(c *gin.Context) {
	var req dto.AccountTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if len(req.Tags) == 0 {
		respondOK(c, "No tags provided; nothing to do", nil)
		return
	}

	results := h.accountService.SetManyAccountTags(c.Request.Context(), req.Tags)
	respondOK(c, tagSummary(results, "Set"), results)
}

func (h *accountToolHandler) unsetAccountTags(c *gin.Context) {
	var req dto.AccountTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if len(req.Tags) == 0 {
		respondOK(c, "No tags provided; nothing to do", nil)
		return
	}

	results := h.accountService.UnsetManyAccountTags(c.Request.Context(), req.Tags)
	respondOK(c, tagSummary(results, "Unset"), results)
}

func tagSummary(results []dto.TagResult, verb string) string {
	applied := 0
	for _, r := range results {
		if r.Applied {
			applied++
		}
	}
	return fmt.Sprintf("%s %d of %d tags", verb, applied, len(results))
}

func (h *accountToolHandler) deactivateAccount(c *gin.Context) {
	var req struct {
		Code int64 `json:"code" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Account %d deactivated", req.Code), nil)
}
