package dto

import (
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for one journal entry line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountCode  string          `json:"accountCode"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	SourceTxnID  *string         `json:"sourceTxnID"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	PeriodID    string                `json:"periodID"`
	Reference   string                `json:"reference"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Lines       []JournalLineResponse `json:"lines"`
}

// ListJournalEntriesResponse wraps a period's journal entry listing.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// GenerationResult reports the outcome of generating journal entries for a period.
type GenerationResult struct {
	Generated    int `json:"generated"`
	Skipped      int `json:"skipped"`
	Unclassified int `json:"unclassified"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:       l.LineID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			SourceTxnID:  l.SourceTxnID,
		}
	}
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		PeriodID:    e.PeriodID,
		Reference:   e.Reference,
		Date:        e.Date,
		Description: e.Description,
		Lines:       lines,
	}
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
