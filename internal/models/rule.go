package models

// MappingRule represents one persisted user classification rule. System
// rules are derived from the chart definition and are never stored.
type MappingRule struct {
	RuleID      string `db:"rule_id"`
	OrgID       string `db:"org_id"`
	MatchType   string `db:"match_type"`
	Pattern     string `db:"pattern"`
	AccountCode string `db:"account_code"`
	Priority    int    `db:"priority"`
	Sequence    int    `db:"sequence"`
	IsActive    bool   `db:"is_active"`
	Name        string `db:"name"`
	AuditFields
}
