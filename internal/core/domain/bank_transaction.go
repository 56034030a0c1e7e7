package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassifiedByManual marks a transaction classified by a manual override
// rather than a catalog rule.
const ClassifiedByManual = "manual"

// BankTransaction is one statement row supplied by the import collaborator.
// Exactly one of DebitAmount (money leaving the bank) and CreditAmount
// (money entering) is non-zero. The row is immutable after import except
// for the classification fields.
type BankTransaction struct {
	TxnID        string          `json:"txnID"`
	OrgID        string          `json:"orgID"`
	PeriodID     string          `json:"periodID"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"` // running balance reported by the statement
	AccountCode  *string         `json:"accountCode"`  // resolved classification, nil while unclassified
	ClassifiedBy string          `json:"classifiedBy"` // rule id or ClassifiedByManual, empty while unclassified
	AuditFields
}

// IsClassified reports whether a classification has been resolved.
func (t *BankTransaction) IsClassified() bool {
	return t.AccountCode != nil && *t.AccountCode != ""
}

// IsDebit reports whether the statement side of the transaction is a debit
// (money leaving the bank account).
func (t *BankTransaction) IsDebit() bool {
	return t.DebitAmount.IsPositive()
}

// Amount returns the magnitude of the transaction regardless of side.
func (t *BankTransaction) Amount() decimal.Decimal {
	if t.IsDebit() {
		return t.DebitAmount
	}
	return t.CreditAmount
}
