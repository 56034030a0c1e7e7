package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// PeriodSvcFacade manages fiscal periods and the reprocessing state machine.
type PeriodSvcFacade interface {
	// CreatePeriod opens a new fiscal period.
	CreatePeriod(ctx context.Context, orgID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// GetPeriod retrieves a fiscal period.
	GetPeriod(ctx context.Context, orgID string, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods lists an organization's periods in start-date order.
	ListPeriods(ctx context.Context, orgID string) ([]domain.FiscalPeriod, error)

	// GetSummary retrieves the persisted aggregate totals of a processed period.
	GetSummary(ctx context.Context, orgID string, periodID string) (*domain.PeriodSummary, error)

	// Process classifies, generates and aggregates an OPEN period, moving it
	// to PROCESSED, all inside one atomic unit of work.
	Process(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error)

	// Reprocess deletes a period's derived journal entries and re-runs the
	// whole classify/generate/aggregate sequence atomically. Any mid-sequence
	// failure rolls everything back, leaving the period exactly as it was.
	// Requests against the same period are serialized.
	Reprocess(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error)
}
