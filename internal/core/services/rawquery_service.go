package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/dto"
)

// rawQueryService passes arbitrary SQL through to the store. Callers are
// trusted; the only guard is against an empty statement.
type rawQueryService struct {
	BaseService
	executor portsrepo.RawQueryExecutor
}

// NewRawQueryService creates a new raw query service.
func NewRawQueryService(executor portsrepo.RawQueryExecutor) portssvc.RawQuerySvcFacade {
	return &rawQueryService{executor: executor}
}

var _ portssvc.RawQuerySvcFacade = (*rawQueryService)(nil)

func (s *rawQueryService) ExecuteRawQuery(ctx context.Context, query string, params []any) (*dto.QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", apperrors.ErrValidation)
	}

	result, err := s.executor.ExecuteRawQuery(ctx, query, params)
	if err != nil {
		s.LogError(ctx, err, "Raw query failed")
		return nil, err
	}

	s.LogInfo(ctx, "Raw query executed", slog.Int("params", len(params)), slog.Int64("rows_affected", result.RowsAffected))
	return result, nil
}
