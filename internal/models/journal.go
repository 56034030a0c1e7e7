package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents the header row of a balanced double-entry record.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	OrgID       string    `db:"org_id"`
	PeriodID    string    `db:"period_id"`
	Reference   string    `db:"reference"`
	Date        time.Time `db:"entry_date"`
	Description string    `db:"description"`
	AuditFields
}

// JournalLine represents one debit or credit line of a journal entry.
// Exactly one of DebitAmount and CreditAmount is positive.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountCode  string          `db:"account_code"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	SourceTxnID  *string         `db:"source_txn_id"`
}
