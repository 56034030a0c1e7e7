package models

// Account represents one chart-of-accounts entry materialized for an
// organization. The shape (code, name, category) mirrors the static chart
// definition; only activation state changes after initialization.
type Account struct {
	AccountID     string `db:"account_id"`
	OrgID         string `db:"org_id"`
	Code          string `db:"code"`
	Name          string `db:"name"`
	CategoryID    string `db:"category_id"`
	IsBankAccount bool   `db:"is_bank_account"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
