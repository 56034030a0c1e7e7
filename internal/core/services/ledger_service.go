package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/utils/accounting"
)

// ledgerService is the authoritative balance computation. Reports and period
// summaries read balances from here and never re-derive them.
type ledgerService struct {
	BaseService
	def         *chart.Definition
	journalRepo portsrepo.JournalRepositoryFacade
	txnRepo     portsrepo.BankTransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(def *chart.Definition, journalRepo portsrepo.JournalRepositoryFacade, txnRepo portsrepo.BankTransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{def: def, journalRepo: journalRepo, txnRepo: txnRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// OpeningBalance derives the opening balance of an account for a period.
// The bank account opens at the balance implied by the period's first
// statement row; the opening-offset equity account is seeded with the same
// amount on its own normal side so the books stay in balance; every other
// account opens at zero. A period with no statement rows opens at zero too.
func (s *ledgerService) OpeningBalance(ctx context.Context, orgID string, periodID string, accountCode string) (decimal.Decimal, error) {
	if !s.def.HasAccount(accountCode) {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountCode)
	}
	bankCode, err := s.def.BankAccountCode()
	if err != nil {
		return decimal.Zero, err
	}
	offsetCode, err := s.def.OpeningOffsetCode()
	if err != nil {
		return decimal.Zero, err
	}
	if accountCode != bankCode && accountCode != offsetCode {
		return decimal.Zero, nil
	}

	first, err := s.txnRepo.FirstTransactionInPeriod(ctx, orgID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find first transaction of period %s: %w", periodID, err)
	}
	return accounting.DeriveOpeningBalance(*first), nil
}

// ClosingBalance computes the closing balance of one account for a period:
// opening plus journal activity under the account's normal-balance convention.
func (s *ledgerService) ClosingBalance(ctx context.Context, orgID string, periodID string, accountCode string) (domain.AccountBalance, error) {
	opening, err := s.OpeningBalance(ctx, orgID, periodID, accountCode)
	if err != nil {
		return domain.AccountBalance{}, err
	}
	activity, err := s.journalRepo.SumLinesForAccount(ctx, orgID, periodID, accountCode)
	if err != nil {
		return domain.AccountBalance{}, fmt.Errorf("failed to sum journal lines for account %s: %w", accountCode, err)
	}
	side, err := s.def.NormalSide(accountCode)
	if err != nil {
		return domain.AccountBalance{}, err
	}
	return accounting.ClosingBalance(accountCode, side, opening, activity.Debits, activity.Credits)
}

// ClosingBalances computes closing balances for every account with journal
// activity in the period, plus the bank and opening-offset accounts whenever
// the derived opening balance is non-zero, in account-code order.
func (s *ledgerService) ClosingBalances(ctx context.Context, orgID string, periodID string) ([]domain.AccountBalance, error) {
	activity, err := s.journalRepo.SumLinesByAccount(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum journal lines for period %s: %w", periodID, err)
	}

	codes := make(map[string]struct{}, len(activity)+2)
	for code := range activity {
		codes[code] = struct{}{}
	}

	bankCode, err := s.def.BankAccountCode()
	if err != nil {
		return nil, err
	}
	offsetCode, err := s.def.OpeningOffsetCode()
	if err != nil {
		return nil, err
	}
	opening, err := s.OpeningBalance(ctx, orgID, periodID, bankCode)
	if err != nil {
		return nil, err
	}
	if !opening.IsZero() {
		codes[bankCode] = struct{}{}
		codes[offsetCode] = struct{}{}
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	balances := make([]domain.AccountBalance, 0, len(sorted))
	for _, code := range sorted {
		side, err := s.def.NormalSide(code)
		if err != nil {
			return nil, err
		}
		open := decimal.Zero
		if code == bankCode || code == offsetCode {
			open = opening
		}
		act := activity[code]
		balance, err := accounting.ClosingBalance(code, side, open, act.Debits, act.Credits)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}
