package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	"github.com/autobooks/autobooks_app/internal/models"
	"github.com/autobooks/autobooks_app/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, org_id, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID, &m.OrgID, &m.StartDate, &m.EndDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PeriodID, m.OrgID, m.StartDate, m.EndDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, translateError(err, ""))
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, orgID string, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE org_id = $1 AND period_id = $2;`
	m, err := scanPeriod(r.db(ctx).QueryRow(ctx, query, orgID, periodID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("period %s", periodID))
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriodsByOrg retrieves all periods of an organization in start-date order.
func (r *PgxPeriodRepository) ListPeriodsByOrg(ctx context.Context, orgID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE org_id = $1 ORDER BY start_date ASC;`
	rows, err := r.db(ctx).Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	return periods, rows.Err()
}

// UpdatePeriodStatus moves a period between OPEN and PROCESSED.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, orgID string, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE org_id = $1 AND period_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query, orgID, periodID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status for period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	return nil
}

// FindSummary retrieves the persisted aggregate totals of a processed period.
func (r *PgxPeriodRepository) FindSummary(ctx context.Context, orgID string, periodID string) (*domain.PeriodSummary, error) {
	query := `
		SELECT period_id, org_id, opening_balance, total_debits, total_credits,
		       closing_balance, closing_side, reconciliation_gap,
		       classified_count, unclassified_count, entry_count, computed_at
		FROM period_summaries
		WHERE org_id = $1 AND period_id = $2;
	`
	var m models.PeriodSummary
	err := r.db(ctx).QueryRow(ctx, query, orgID, periodID).Scan(
		&m.PeriodID, &m.OrgID, &m.OpeningBalance, &m.TotalDebits, &m.TotalCredits,
		&m.ClosingBalance, &m.ClosingSide, &m.ReconciliationGap,
		&m.ClassifiedCount, &m.UnclassifiedCount, &m.EntryCount, &m.ComputedAt,
	)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("summary for period %s", periodID))
	}
	summary := mapping.ToDomainPeriodSummary(m)
	return &summary, nil
}

// SaveSummary upserts the aggregate totals of a period.
func (r *PgxPeriodRepository) SaveSummary(ctx context.Context, orgID string, summary domain.PeriodSummary) error {
	m := mapping.ToModelPeriodSummary(orgID, summary)
	query := `
		INSERT INTO period_summaries (period_id, org_id, opening_balance, total_debits, total_credits,
		                              closing_balance, closing_side, reconciliation_gap,
		                              classified_count, unclassified_count, entry_count, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (period_id) DO UPDATE SET
			opening_balance = EXCLUDED.opening_balance,
			total_debits = EXCLUDED.total_debits,
			total_credits = EXCLUDED.total_credits,
			closing_balance = EXCLUDED.closing_balance,
			closing_side = EXCLUDED.closing_side,
			reconciliation_gap = EXCLUDED.reconciliation_gap,
			classified_count = EXCLUDED.classified_count,
			unclassified_count = EXCLUDED.unclassified_count,
			entry_count = EXCLUDED.entry_count,
			computed_at = EXCLUDED.computed_at;
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PeriodID, m.OrgID, m.OpeningBalance, m.TotalDebits, m.TotalCredits,
		m.ClosingBalance, m.ClosingSide, m.ReconciliationGap,
		m.ClassifiedCount, m.UnclassifiedCount, m.EntryCount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save summary for period %s: %w", m.PeriodID, err)
	}
	return nil
}

// DeleteSummary removes the persisted totals of a period.
func (r *PgxPeriodRepository) DeleteSummary(ctx context.Context, orgID string, periodID string) error {
	query := `DELETE FROM period_summaries WHERE org_id = $1 AND period_id = $2;`
	if _, err := r.db(ctx).Exec(ctx, query, orgID, periodID); err != nil {
		return fmt.Errorf("failed to delete summary for period %s: %w", periodID, err)
	}
	return nil
}
