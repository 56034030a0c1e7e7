package domain

// BalanceSide identifies the debit or credit side of the ledger.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// AccountCategory groups accounts and fixes their normal balance side.
// The normal side is what decides whether a positive balance is reported
// as a debit or credit amount; it is set at chart-definition time and
// never changes afterwards.
type AccountCategory struct {
	CategoryID string      `json:"categoryID"`
	Name       string      `json:"name"`
	NormalSide BalanceSide `json:"normalSide"`
}

// Account is one entry in an organization's chart of accounts.
// Accounts are created during chart initialization and are never deleted
// once a journal line references them; deactivation is the only removal.
type Account struct {
	AccountID     string `json:"accountID"`
	OrgID         string `json:"orgID"`
	Code          string `json:"code"` // unique per organization, numeric-range partitioned by category
	Name          string `json:"name"`
	CategoryID    string `json:"categoryID"`
	IsBankAccount bool   `json:"isBankAccount"` // opening balances are derived only for bank accounts
	IsActive      bool   `json:"isActive"`
	AuditFields
}
