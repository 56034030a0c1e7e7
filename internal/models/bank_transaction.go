package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents one imported statement row. Immutable after
// import except for the classification columns.
type BankTransaction struct {
	TxnID        string          `db:"txn_id"`
	OrgID        string          `db:"org_id"`
	PeriodID     string          `db:"period_id"`
	Date         time.Time       `db:"txn_date"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	AccountCode  *string         `db:"account_code"`
	ClassifiedBy *string         `db:"classified_by"`
	AuditFields
}
