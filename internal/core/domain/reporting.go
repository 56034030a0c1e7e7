package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance is a closing balance as reported by the ledger engine:
// always a non-negative amount plus an explicit side tag, never a signed
// number alone. A debit-normal account that nets negative is reported as a
// credit balance of the absolute value.
type AccountBalance struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Side        BalanceSide     `json:"side"`
}

// TrialBalanceRow places one account's closing balance into the debit or
// credit column per its reported side.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	CategoryID  string          `json:"categoryID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the cross-account consistency check: TotalDebits
// must equal TotalCredits or the producing call fails outright.
type TrialBalanceReport struct {
	OrgID        string            `json:"orgID"`
	PeriodID     string            `json:"periodID"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// AccountActivity is the per-account sum of journal line debits and credits
// posted within one fiscal period.
type AccountActivity struct {
	AccountCode string          `json:"accountCode"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
}

// Classification is the outcome of running the rule catalog over one
// bank transaction description.
type Classification struct {
	AccountCode string `json:"accountCode"`
	RuleID      string `json:"ruleID"`
	RuleName    string `json:"ruleName"`
}
