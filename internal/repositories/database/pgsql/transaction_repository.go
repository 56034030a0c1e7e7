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

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const txnColumns = `txn_id, org_id, period_id, txn_date, description, debit_amount, credit_amount, balance_after, account_code, classified_by, created_at, created_by, last_updated_at, last_updated_by`

func scanTxn(row pgx.Row) (models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TxnID, &m.OrgID, &m.PeriodID, &m.Date, &m.Description,
		&m.DebitAmount, &m.CreditAmount, &m.BalanceAfter,
		&m.AccountCode, &m.ClassifiedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransactions inserts a batch of imported statement rows in one round trip.
func (r *PgxBankTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.BankTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	query := `
		INSERT INTO bank_transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, t := range txns {
		m := mapping.ToModelBankTransaction(t)
		batch.Queue(query,
			m.TxnID, m.OrgID, m.PeriodID, m.Date, m.Description,
			m.DebitAmount, m.CreditAmount, m.BalanceAfter,
			m.AccountCode, m.ClassifiedBy,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	results := r.db(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range txns {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save transactions: %w", translateError(err, ""))
		}
	}
	return nil
}

// FindTransactionByID retrieves a single bank transaction.
func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, txnID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM bank_transactions WHERE org_id = $1 AND txn_id = $2;`
	m, err := scanTxn(r.db(ctx).QueryRow(ctx, query, orgID, txnID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("transaction %s", txnID))
	}
	txn := mapping.ToDomainBankTransaction(m)
	return &txn, nil
}

// ListTransactionsByPeriod retrieves a period's transactions in date order
// with import order as the tie-break.
func (r *PgxBankTransactionRepository) ListTransactionsByPeriod(ctx context.Context, orgID string, periodID string, onlyUnclassified bool) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM bank_transactions
		WHERE org_id = $1 AND period_id = $2
	`
	if onlyUnclassified {
		query += ` AND account_code IS NULL`
	}
	query += ` ORDER BY txn_date ASC, created_at ASC, txn_id ASC;`

	rows, err := r.db(ctx).Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.BankTransaction
	for rows.Next() {
		m, err := scanTxn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(m))
	}
	return txns, rows.Err()
}

// FirstTransactionInPeriod retrieves the earliest transaction of the period.
func (r *PgxBankTransactionRepository) FirstTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error) {
	return r.boundaryTransaction(ctx, orgID, periodID, "ASC")
}

// LastTransactionInPeriod retrieves the latest transaction of the period.
func (r *PgxBankTransactionRepository) LastTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error) {
	return r.boundaryTransaction(ctx, orgID, periodID, "DESC")
}

func (r *PgxBankTransactionRepository) boundaryTransaction(ctx context.Context, orgID string, periodID string, direction string) (*domain.BankTransaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bank_transactions
		WHERE org_id = $1 AND period_id = $2
		ORDER BY txn_date %s, created_at %s, txn_id %s
		LIMIT 1;
	`, txnColumns, direction, direction, direction)

	m, err := scanTxn(r.db(ctx).QueryRow(ctx, query, orgID, periodID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("transactions in period %s", periodID))
	}
	txn := mapping.ToDomainBankTransaction(m)
	return &txn, nil
}

// UpdateClassification sets or clears the resolved account code on one row.
func (r *PgxBankTransactionRepository) UpdateClassification(ctx context.Context, orgID string, txnID string, accountCode *string, classifiedBy string, userID string, now time.Time) error {
	var cb *string
	if classifiedBy != "" {
		cb = &classifiedBy
	}
	query := `
		UPDATE bank_transactions
		SET account_code = $3, classified_by = $4, last_updated_at = $5, last_updated_by = $6
		WHERE org_id = $1 AND txn_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query, orgID, txnID, accountCode, cb, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update classification for transaction %s: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txnID)
	}
	return nil
}

// ClearClassifications resets the classification columns for a whole period.
func (r *PgxBankTransactionRepository) ClearClassifications(ctx context.Context, orgID string, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET account_code = NULL, classified_by = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE org_id = $1 AND period_id = $2;
	`
	if _, err := r.db(ctx).Exec(ctx, query, orgID, periodID, now, userID); err != nil {
		return fmt.Errorf("failed to clear classifications for period %s: %w", periodID, err)
	}
	return nil
}
