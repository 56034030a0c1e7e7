package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus tracks a fiscal period's processing state.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodProcessed PeriodStatus = "PROCESSED"
)

// FiscalPeriod is the bounded date range scoping bank transactions and the
// journal entries derived from them.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	OrgID     string       `json:"orgID"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// PeriodSummary holds the aggregate totals persisted when a period is processed.
// ReconciliationGap is the difference between the statement-reported closing
// balance and the ledger closing balance for the bank account; it is surfaced,
// never silently absorbed.
type PeriodSummary struct {
	PeriodID          string          `json:"periodID"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`
	ClosingSide       BalanceSide     `json:"closingSide"`
	ReconciliationGap decimal.Decimal `json:"reconciliationGap"`
	ClassifiedCount   int             `json:"classifiedCount"`
	UnclassifiedCount int             `json:"unclassifiedCount"`
	EntryCount        int             `json:"entryCount"`
}
