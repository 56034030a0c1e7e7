package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// transactionService manages imported statement rows. Rows are immutable
// after import except for their classification fields.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.BankTransactionRepositoryFacade
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.BankTransactionRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, periodRepo: periodRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ImportTransactions bulk-imports well-formed statement rows into a period.
// Each row must carry exactly one positive side; malformed rows reject the
// whole batch before anything is written.
func (s *transactionService) ImportTransactions(ctx context.Context, orgID string, periodID string, req dto.ImportTransactionsRequest, userID string) ([]domain.BankTransaction, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is not open for imports", apperrors.ErrPeriodLocked, periodID)
	}

	now := time.Now().UTC()
	txns := make([]domain.BankTransaction, 0, len(req.Transactions))
	for i, item := range req.Transactions {
		if err := validateStatementRow(item); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		txns = append(txns, domain.BankTransaction{
			TxnID:        uuid.NewString(),
			OrgID:        orgID,
			PeriodID:     periodID,
			Date:         item.Date,
			Description:  item.Description,
			DebitAmount:  item.DebitAmount,
			CreditAmount: item.CreditAmount,
			BalanceAfter: item.BalanceAfter,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := s.txnRepo.SaveTransactions(ctx, txns); err != nil {
		s.LogError(ctx, err, "Failed to import transactions", slog.String("org_id", orgID), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}

	s.LogInfo(ctx, "Transactions imported",
		slog.String("org_id", orgID),
		slog.String("period_id", periodID),
		slog.Int("count", len(txns)))
	return txns, nil
}

func validateStatementRow(item dto.ImportTransactionItem) error {
	debitSet := item.DebitAmount.IsPositive()
	creditSet := item.CreditAmount.IsPositive()
	if item.DebitAmount.IsNegative() || item.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: statement amounts must not be negative", apperrors.ErrValidation)
	}
	if debitSet == creditSet {
		return fmt.Errorf("%w: exactly one of debitAmount and creditAmount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// ListTransactions lists a period's transactions in date order.
func (s *transactionService) ListTransactions(ctx context.Context, orgID string, periodID string, onlyUnclassified bool) ([]domain.BankTransaction, error) {
	txns, err := s.txnRepo.ListTransactionsByPeriod(ctx, orgID, periodID, onlyUnclassified)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for period %s: %w", periodID, err)
	}
	return txns, nil
}

// GetTransaction retrieves one bank transaction.
func (s *transactionService) GetTransaction(ctx context.Context, orgID string, txnID string) (*domain.BankTransaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, orgID, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", txnID, err)
	}
	return txn, nil
}
