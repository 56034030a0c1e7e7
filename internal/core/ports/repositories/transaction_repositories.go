package repositories

import (
	"context"
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// BankTransactionReader defines read operations for imported statement rows.
type BankTransactionReader interface {
	// FindTransactionByID retrieves a single bank transaction.
	FindTransactionByID(ctx context.Context, orgID string, txnID string) (*domain.BankTransaction, error)

	// ListTransactionsByPeriod retrieves all transactions of a fiscal period in
	// date order (import order as tie-break). When onlyUnclassified is set,
	// classified transactions are filtered out.
	ListTransactionsByPeriod(ctx context.Context, orgID string, periodID string, onlyUnclassified bool) ([]domain.BankTransaction, error)

	// FirstTransactionInPeriod retrieves the earliest transaction of the period,
	// the row whose statement balance implies the period's opening balance.
	FirstTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error)

	// LastTransactionInPeriod retrieves the latest transaction of the period.
	LastTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for imported statement rows.
// Rows are immutable after import except for the classification fields.
type BankTransactionWriter interface {
	// SaveTransactions persists a batch of imported transactions.
	SaveTransactions(ctx context.Context, txns []domain.BankTransaction) error

	// UpdateClassification sets or clears the resolved account code and the
	// classified-by audit note on one transaction.
	UpdateClassification(ctx context.Context, orgID string, txnID string, accountCode *string, classifiedBy string, userID string, now time.Time) error

	// ClearClassifications resets the classification fields for every
	// transaction in a period (reprocessing).
	ClearClassifications(ctx context.Context, orgID string, periodID string, userID string, now time.Time) error
}

// BankTransactionRepositoryFacade combines all bank-transaction repository interfaces.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
