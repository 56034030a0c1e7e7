package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a balanced double-entry posting composed of at least two lines.
// Invariant: sum of line debits equals sum of line credits; an entry violating
// this must never be stored.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`
	OrgID       string    `json:"orgID"`
	PeriodID    string    `json:"periodID"`
	Reference   string    `json:"reference"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single side of a journal entry, affecting one account.
// Exactly one of DebitAmount and CreditAmount is non-zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountCode  string          `json:"accountCode"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	SourceTxnID  *string         `json:"sourceTxnID"` // audit trail back to the originating bank transaction
}

// TotalDebits sums the debit side of the entry's lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}
