package repositories

import (
	"context"
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// PeriodReader defines read operations for fiscal periods.
type PeriodReader interface {
	// FindPeriodByID retrieves a fiscal period.
	FindPeriodByID(ctx context.Context, orgID string, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriodsByOrg retrieves all periods of an organization in start-date order.
	ListPeriodsByOrg(ctx context.Context, orgID string) ([]domain.FiscalPeriod, error)

	// FindSummary retrieves the persisted aggregate totals of a processed period.
	FindSummary(ctx context.Context, orgID string, periodID string) (*domain.PeriodSummary, error)
}

// PeriodWriter defines write operations for fiscal periods.
type PeriodWriter interface {
	// SavePeriod persists a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriodStatus moves a period between OPEN and PROCESSED.
	UpdatePeriodStatus(ctx context.Context, orgID string, periodID string, status domain.PeriodStatus, userID string, now time.Time) error

	// SaveSummary upserts the aggregate totals of a period.
	SaveSummary(ctx context.Context, orgID string, summary domain.PeriodSummary) error

	// DeleteSummary removes the persisted totals of a period (reprocessing reset).
	DeleteSummary(ctx context.Context, orgID string, periodID string) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
