package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// JournalSvcFacade generates and reads balanced double-entry journal entries.
type JournalSvcFacade interface {
	// GenerateForTransaction converts one classified transaction into a
	// balanced two-line entry and persists it. Returns the entry and whether
	// it was newly generated; an entry already linked to the transaction is
	// returned as-is (generated == false), never duplicated.
	GenerateForTransaction(ctx context.Context, orgID string, txn domain.BankTransaction, userID string) (*domain.JournalEntry, bool, error)

	// GenerateForPeriod generates entries for every classified transaction of
	// a period.
	GenerateForPeriod(ctx context.Context, orgID string, periodID string, userID string) (dto.GenerationResult, error)

	// GetEntry retrieves an entry with lines.
	GetEntry(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries lists a period's entries with lines.
	ListEntries(ctx context.Context, orgID string, periodID string) ([]domain.JournalEntry, error)
}
