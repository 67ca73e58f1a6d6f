package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// journalToolHandler handles the Journal Engine tools.
type journalToolHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerJournalTools registers the journal tool routes.
func registerJournalTools(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalToolHandler{journalService: journalService}

	rg.POST("/draftJournalEntry", h.draftJournalEntry)
	rg.POST("/updateJournalEntry", h.updateJournalEntry)
	rg.POST("/postJournalEntry", h.postJournalEntry)
	rg.POST("/deleteJournalEntryDrafts", h.deleteJournalEntryDrafts)
	rg.POST("/reverseJournalEntry", h.reverseJournalEntry)
	rg.POST("/getJournalEntry", h.getJournalEntry)
	rg.POST("/getJournalEntryByIdempotentKey", h.getJournalEntryByIdempotentKey)
}

func (h *journalToolHandler) draftJournalEntry(c *gin.Context) {
	var req dto.DraftJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	entryTime, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	ref, created, err := h.journalService.DraftJournalEntry(c.Request.Context(), dto.DraftEntryInput{
		EntryTime:     entryTime,
		Note:          req.Description,
		Lines:         dto.ToEntryLineInputs(req.Lines),
		IdempotentKey: req.IdempotentKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Journal entry %d drafted", ref)
	if !created {
		message = fmt.Sprintf("Journal entry %d already exists for this idempotent key", ref)
	}
	respondOK(c, message, gin.H{"ref": ref, "created": created})
}

func (h *journalToolHandler) updateJournalEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	input := dto.UpdateEntryInput{
		Note:          req.Description,
		IdempotentKey: req.IdempotentKey,
	}
	if req.Date != nil {
		entryTime, err := parseDate(*req.Date)
		if err != nil {
			respondError(c, err)
			return
		}
		input.EntryTime = &entryTime
	}
	if req.Lines != nil {
		lines := dto.ToEntryLineInputs(*req.Lines)
		input.Lines = &lines
	}

	if err := h.journalService.UpdateJournalEntry(c.Request.Context(), req.Ref, input); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Journal entry %d updated", req.Ref), nil)
}

func (h *journalToolHandler) postJournalEntry(c *gin.Context) {
	var req dto.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	postTime, err := parseOptionalDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), req.Ref, postTime)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Journal entry %d posted", req.Ref), dto.ToJournalEntryResponse(entry))
}

func (h *journalToolHandler) deleteJournalEntryDrafts(c *gin.Context) {
	var req dto.DeleteJournalEntryDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if len(req.Refs) == 0 {
		respondOK(c, "No refs provided; nothing to do", nil)
		return
	}

	deleted, err := h.journalService.DeleteJournalEntryDrafts(c.Request.Context(), req.Refs)
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Deleted %d of %d drafts", len(deleted), len(req.Refs))
	if len(deleted) == 0 {
		message = "No matching drafts to delete (posted or unknown refs are skipped)"
	}
	respondOK(c, message, gin.H{"deletedRefs": deleted})
}

func (h *journalToolHandler) reverseJournalEntry(c *gin.Context) {
	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	reversalTime, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	reversalRef, created, err := h.journalService.ReverseJournalEntry(c.Request.Context(), dto.ReverseEntryInput{
		Ref:           req.Ref,
		ReversalTime:  reversalTime,
		Note:          req.Description,
		IdempotentKey: req.IdempotentKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Journal entry %d drafted as reversal of entry %d; post it to apply", reversalRef, req.Ref)
	if !created {
		message = fmt.Sprintf("Reversal entry %d already exists for this idempotent key", reversalRef)
	}
	respondOK(c, message, gin.H{"reversalRef": reversalRef, "reversalOfRef": req.Ref, "created": created})
}

func (h *journalToolHandler) getJournalEntry(c *gin.Context) {
	var req struct {
		Ref int64 `json:"ref" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), req.Ref)
	if err != nil {
		respondError(c, err)
		return
	}

	state := "draft"
	if entry.IsPosted() {
		state = "posted"
	}
	respondOK(c, fmt.Sprintf("Journal entry %d (%s)", entry.Ref, state), dto.ToJournalEntryResponse(entry))
}

func (h *journalToolHandler) getJournalEntryByIdempotentKey(c *gin.Context) {
	var req struct {
		IdempotentKey string `json:"idempotentKey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	ref, err := h.journalService.GetEntryRefByIdempotentKey(c.Request.Context(), req.IdempotentKey)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Idempotent key %q maps to journal entry %d", req.IdempotentKey, ref), gin.H{"ref": ref})
}
