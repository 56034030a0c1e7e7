package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// ClassifierSvcFacade applies the rule catalog to bank transactions.
type ClassifierSvcFacade interface {
	// Classify resolves an account code for one transaction, or nil when no
	// rule matches. Unclassified is a valid terminal state, not an error.
	// Classification has no side effects; it is a pure function of the
	// transaction, the current rule set and the current chart.
	Classify(ctx context.Context, orgID string, txn domain.BankTransaction) (*domain.Classification, error)

	// ClassifyPeriod classifies every transaction of a period and persists the
	// resolved account codes.
	ClassifyPeriod(ctx context.Context, orgID string, periodID string, userID string) (dto.ClassifyPeriodResult, error)

	// Override records a manual classification for one transaction.
	Override(ctx context.Context, orgID string, txnID string, accountCode string, userID string) error
}

// TransactionSvcFacade manages imported bank-statement rows.
type TransactionSvcFacade interface {
	// ImportTransactions bulk-imports well-formed statement rows into a period.
	ImportTransactions(ctx context.Context, orgID string, periodID string, req dto.ImportTransactionsRequest, userID string) ([]domain.BankTransaction, error)

	// ListTransactions lists a period's transactions, optionally only those
	// still unclassified.
	ListTransactions(ctx context.Context, orgID string, periodID string, onlyUnclassified bool) ([]domain.BankTransaction, error)

	// GetTransaction retrieves one bank transaction.
	GetTransaction(ctx context.Context, orgID string, txnID string) (*domain.BankTransaction, error)
}
