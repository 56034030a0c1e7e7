package domain

// MatchType selects the comparison a mapping rule applies to a description.
type MatchType string

const (
	MatchContains MatchType = "CONTAINS"
	MatchExact    MatchType = "EXACT"
	MatchPrefix   MatchType = "PREFIX"
)

// RuleSource records where a mapping rule came from. System rules are
// regenerated from the chart definition and are never hand-edited; user
// rules are created interactively and persisted independently.
type RuleSource string

const (
	RuleSourceSystem RuleSource = "SYSTEM"
	RuleSourceUser   RuleSource = "USER"
)

// MappingRule maps a description pattern to a target account code.
// Rules are evaluated in strictly descending priority order; ties are
// broken by Sequence (definition order), so evaluation is stable.
type MappingRule struct {
	RuleID      string     `json:"ruleID"`
	OrgID       string     `json:"orgID"` // empty for system rules, which apply to every organization
	MatchType   MatchType  `json:"matchType"`
	Pattern     string     `json:"pattern"`
	AccountCode string     `json:"accountCode"`
	Priority    int        `json:"priority"`
	Sequence    int        `json:"sequence"`
	IsActive    bool       `json:"isActive"`
	Source      RuleSource `json:"source"`
	Name        string     `json:"name"`
	AuditFields
}
