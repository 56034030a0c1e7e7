package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/utils/accounting"
)

var ErrTransactionUnclassified = errors.New("transaction has no resolved account code")

// journalService turns classified bank transactions into balanced two-line
// journal entries. The sign convention is anchored to the bank account:
// statement money out credits the bank and debits the classified account,
// statement money in debits the bank and credits the classified account.
type journalService struct {
	BaseService
	def         *chart.Definition
	journalRepo portsrepo.JournalRepositoryFacade
	txnRepo     portsrepo.BankTransactionRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(def *chart.Definition, journalRepo portsrepo.JournalRepositoryFacade, txnRepo portsrepo.BankTransactionRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{def: def, journalRepo: journalRepo, txnRepo: txnRepo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GenerateForTransaction converts one classified transaction into a balanced
// entry and persists it. Generation is idempotent on the source transaction:
// an entry already linked to it is returned untouched.
func (s *journalService) GenerateForTransaction(ctx context.Context, orgID string, txn domain.BankTransaction, userID string) (*domain.JournalEntry, bool, error) {
	if !txn.IsClassified() {
		return nil, false, fmt.Errorf("%w: transaction %s", ErrTransactionUnclassified, txn.TxnID)
	}

	existing, err := s.journalRepo.FindEntryBySourceTxn(ctx, orgID, txn.TxnID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up entry for transaction %s: %w", txn.TxnID, err)
	}

	entry, err := s.buildEntry(orgID, txn, userID)
	if err != nil {
		return nil, false, err
	}
	if err := s.journalRepo.SaveEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("org_id", orgID), slog.String("txn_id", txn.TxnID))
		return nil, false, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogDebug(ctx, "Journal entry generated",
		slog.String("org_id", orgID),
		slog.String("entry_id", entry.EntryID),
		slog.String("txn_id", txn.TxnID),
		slog.String("account_code", *txn.AccountCode))
	return entry, true, nil
}

// buildEntry constructs the balanced two-line entry for a transaction and
// validates it before it is ever persisted.
func (s *journalService) buildEntry(orgID string, txn domain.BankTransaction, userID string) (*domain.JournalEntry, error) {
	bankCode, err := s.def.BankAccountCode()
	if err != nil {
		return nil, err
	}
	classified := *txn.AccountCode
	amount := txn.Amount()
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction %s has no positive amount", apperrors.ErrValidation, txn.TxnID)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	srcID := txn.TxnID

	var lines []domain.JournalLine
	if txn.IsDebit() {
		// Money left the bank: debit the classified account, credit the bank.
		lines = []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: classified, DebitAmount: amount, SourceTxnID: &srcID},
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: bankCode, CreditAmount: amount, SourceTxnID: &srcID},
		}
	} else {
		// Money entered the bank: debit the bank, credit the classified account.
		lines = []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: bankCode, DebitAmount: amount, SourceTxnID: &srcID},
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: classified, CreditAmount: amount, SourceTxnID: &srcID},
		}
	}

	entry := &domain.JournalEntry{
		EntryID:     entryID,
		OrgID:       orgID,
		PeriodID:    txn.PeriodID,
		Reference:   fmt.Sprintf("TXN-%s", txn.TxnID),
		Date:        txn.Date,
		Description: txn.Description,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := accounting.ValidateEntryBalance(*entry); err != nil {
		return nil, fmt.Errorf("%w: entry for transaction %s: %v", apperrors.ErrUnbalanced, txn.TxnID, err)
	}
	return entry, nil
}

// GenerateForPeriod generates entries for every classified transaction of a
// period. Unclassified transactions are counted and skipped, never guessed at.
func (s *journalService) GenerateForPeriod(ctx context.Context, orgID string, periodID string, userID string) (dto.GenerationResult, error) {
	var result dto.GenerationResult

	txns, err := s.txnRepo.ListTransactionsByPeriod(ctx, orgID, periodID, false)
	if err != nil {
		return result, fmt.Errorf("failed to list transactions for period %s: %w", periodID, err)
	}

	for _, txn := range txns {
		if !txn.IsClassified() {
			result.Unclassified++
			continue
		}
		_, generated, err := s.GenerateForTransaction(ctx, orgID, txn, userID)
		if err != nil {
			return result, err
		}
		if generated {
			result.Generated++
		} else {
			result.Skipped++
		}
	}

	s.LogInfo(ctx, "Journal entries generated for period",
		slog.String("org_id", orgID),
		slog.String("period_id", periodID),
		slog.Int("generated", result.Generated),
		slog.Int("skipped", result.Skipped),
		slog.Int("unclassified", result.Unclassified))
	return result, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries lists a period's entries with lines in date order.
func (s *journalService) ListEntries(ctx context.Context, orgID string, periodID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntriesByPeriod(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for period %s: %w", periodID, err)
	}
	return entries, nil
}
