package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalPeriod represents one bounded accounting period.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	OrgID     string    `db:"org_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}

// PeriodSummary represents the aggregate totals persisted when a period is
// processed. One row per period, replaced wholesale on reprocessing.
type PeriodSummary struct {
	PeriodID          string          `db:"period_id"`
	OrgID             string          `db:"org_id"`
	OpeningBalance    decimal.Decimal `db:"opening_balance"`
	TotalDebits       decimal.Decimal `db:"total_debits"`
	TotalCredits      decimal.Decimal `db:"total_credits"`
	ClosingBalance    decimal.Decimal `db:"closing_balance"`
	ClosingSide       string          `db:"closing_side"`
	ReconciliationGap decimal.Decimal `db:"reconciliation_gap"`
	ClassifiedCount   int             `db:"classified_count"`
	UnclassifiedCount int             `db:"unclassified_count"`
	EntryCount        int             `db:"entry_count"`
	ComputedAt        time.Time       `db:"computed_at"`
}
