package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	"github.com/autobooks/autobooks_app/internal/models"
	"github.com/autobooks/autobooks_app/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, org_id, period_id, reference, entry_date, description, created_at, created_by, last_updated_at, last_updated_by`
const lineColumns = `line_id, entry_id, account_code, debit_amount, credit_amount, source_txn_id`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.OrgID, &m.PeriodID, &m.Reference, &m.Date, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts an entry header and its lines in one batch. Callers run
// this inside WithTx when it must be atomic with other writes; the batch
// itself is atomic either way.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	header, lines := mapping.ToModelJournalEntry(entry)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		header.EntryID, header.OrgID, header.PeriodID, header.Reference,
		header.Date, header.Description,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO journal_entry_lines (`+lineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6);
		`,
			l.LineID, l.EntryID, l.AccountCode, l.DebitAmount, l.CreditAmount, l.SourceTxnID,
		)
	}

	results := r.db(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines)+1; i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save journal entry %s: %w", header.EntryID, translateError(err, ""))
		}
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE org_id = $1 AND entry_id = $2;`
	header, err := scanEntry(r.db(ctx).QueryRow(ctx, query, orgID, entryID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("journal entry %s", entryID))
	}
	lines, err := r.linesForEntries(ctx, []string{header.EntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(header, lines[header.EntryID])
	return &entry, nil
}

// FindEntryBySourceTxn retrieves the entry whose lines reference the given
// bank transaction.
func (r *PgxJournalRepository) FindEntryBySourceTxn(ctx context.Context, orgID string, txnID string) (*domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT e.entry_id
		FROM journal_entries e
		JOIN journal_entry_lines l ON l.entry_id = e.entry_id
		WHERE e.org_id = $1 AND l.source_txn_id = $2;
	`
	var entryID string
	if err := r.db(ctx).QueryRow(ctx, query, orgID, txnID).Scan(&entryID); err != nil {
		return nil, translateError(err, fmt.Sprintf("journal entry for transaction %s", txnID))
	}
	return r.FindEntryByID(ctx, orgID, entryID)
}

// ListEntriesByPeriod retrieves all entries of a period with lines, in date
// order.
func (r *PgxJournalRepository) ListEntriesByPeriod(ctx context.Context, orgID string, periodID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE org_id = $1 AND period_id = $2
		ORDER BY entry_date ASC, created_at ASC, entry_id ASC;
	`
	rows, err := r.db(ctx).Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	var entryIDs []string
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		headers = append(headers, m)
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	lines, err := r.linesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

// linesForEntries loads lines for a set of entries, keyed by entry id.
func (r *PgxJournalRepository) linesForEntries(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.JournalLine, len(entryIDs))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountCode, &l.DebitAmount, &l.CreditAmount, &l.SourceTxnID); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	return out, rows.Err()
}

// SumLinesByAccount aggregates line amounts per account for a period.
func (r *PgxJournalRepository) SumLinesByAccount(ctx context.Context, orgID string, periodID string) (map[string]domain.AccountActivity, error) {
	query := `
		SELECT l.account_code, COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.org_id = $1 AND e.period_id = $2
		GROUP BY l.account_code;
	`
	rows, err := r.db(ctx).Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.AccountActivity)
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountCode, &a.Debits, &a.Credits); err != nil {
			return nil, fmt.Errorf("failed to scan account activity: %w", err)
		}
		out[a.AccountCode] = a
	}
	return out, rows.Err()
}

// SumLinesForAccount aggregates line amounts for one account in a period.
// An account with no lines sums to zero, not to an error.
func (r *PgxJournalRepository) SumLinesForAccount(ctx context.Context, orgID string, periodID string, accountCode string) (domain.AccountActivity, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.org_id = $1 AND e.period_id = $2 AND l.account_code = $3;
	`
	activity := domain.AccountActivity{AccountCode: accountCode}
	if err := r.db(ctx).QueryRow(ctx, query, orgID, periodID, accountCode).Scan(&activity.Debits, &activity.Credits); err != nil {
		return domain.AccountActivity{}, fmt.Errorf("failed to aggregate lines for account %s: %w", accountCode, err)
	}
	return activity, nil
}

// DeleteEntriesByPeriod removes every entry of a period; lines cascade.
func (r *PgxJournalRepository) DeleteEntriesByPeriod(ctx context.Context, orgID string, periodID string) (int, error) {
	query := `DELETE FROM journal_entries WHERE org_id = $1 AND period_id = $2;`
	tag, err := r.db(ctx).Exec(ctx, query, orgID, periodID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries for period %s: %w", periodID, err)
	}
	return int(tag.RowsAffected()), nil
}
