package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/dto"
	"github.com/ledgerline/ledgerline/internal/middleware"
)

// respondOK writes a successful tool envelope.
func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.OK(message, data))
}

// respondError turns a service error into the tool envelope. Recoverable
// errors stay HTTP 200 with success=false; storage failures escape as 500.
func respondError(c *gin.Context, err error) {
	if apperrors.IsRecoverable(err) {
		c.JSON(http.StatusOK, dto.Fail(err.Error()))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Error("Tool call failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// bindFailed reports a malformed argument object as a recoverable failure.
func bindFailed(c *gin.Context, err error) {
	c.JSON(http.StatusOK, dto.Fail("Invalid arguments: "+err.Error()))
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// parseDate parses a caller-supplied date string.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q (expected RFC3339 or YYYY-MM-DD)", apperrors.ErrValidation, value)
}

// parseOptionalDate parses a date that defaults to now when empty.
func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return parseDate(value)
}
