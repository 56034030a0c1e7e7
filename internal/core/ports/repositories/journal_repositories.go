package repositories

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// JournalReader defines read operations for journal entries and lines.
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines populated.
	FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySourceTxn retrieves the entry whose lines reference the given
	// bank transaction, if one exists. Used for idempotent generation.
	FindEntryBySourceTxn(ctx context.Context, orgID string, txnID string) (*domain.JournalEntry, error)

	// ListEntriesByPeriod retrieves all entries of a fiscal period with lines,
	// in date order.
	ListEntriesByPeriod(ctx context.Context, orgID string, periodID string) ([]domain.JournalEntry, error)

	// SumLinesByAccount aggregates line debits and credits per account for a
	// fiscal period, keyed by account code.
	SumLinesByAccount(ctx context.Context, orgID string, periodID string) (map[string]domain.AccountActivity, error)

	// SumLinesForAccount aggregates line debits and credits for one account
	// within a fiscal period.
	SumLinesForAccount(ctx context.Context, orgID string, periodID string, accountCode string) (domain.AccountActivity, error)
}

// JournalWriter defines write operations for journal entries and lines.
type JournalWriter interface {
	// SaveEntry persists an entry together with its lines in one atomic step.
	// Partially written entries are never visible.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntriesByPeriod removes every entry of a period, cascading to
	// lines. Bank transactions are untouched; only derived data is deleted.
	DeleteEntriesByPeriod(ctx context.Context, orgID string, periodID string) (int, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
