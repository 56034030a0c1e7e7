package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the single authoritative balance computation. Every
// downstream report reads balances from here and never recomputes them.
type LedgerSvcFacade interface {
	// OpeningBalance derives the opening balance of an account for a period.
	// Bank accounts derive it from the first statement row; all other accounts
	// open at zero. The result is signed relative to the account's normal side.
	OpeningBalance(ctx context.Context, orgID string, periodID string, accountCode string) (decimal.Decimal, error)

	// ClosingBalance computes the closing balance of one account, reported as
	// a non-negative amount plus an explicit side.
	ClosingBalance(ctx context.Context, orgID string, periodID string, accountCode string) (domain.AccountBalance, error)

	// ClosingBalances computes closing balances for every account with journal
	// activity (or a non-zero opening) in the period, in account-code order.
	ClosingBalances(ctx context.Context, orgID string, periodID string) ([]domain.AccountBalance, error)
}

// ReportingSvcFacade aggregates ledger balances into reports.
type ReportingSvcFacade interface {
	// TrialBalance builds the trial balance for a period from ledger closing
	// balances. Fails with apperrors.ErrTrialBalanceMismatch when total debits
	// and credits disagree; the mismatch is never auto-corrected.
	TrialBalance(ctx context.Context, orgID string, periodID string) (*domain.TrialBalanceReport, error)
}
