package dto

import (
	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// CreateRuleRequest defines the data needed to create a user mapping rule.
type CreateRuleRequest struct {
	Name        string           `json:"name"`
	MatchType   domain.MatchType `json:"matchType" binding:"omitempty,oneof=CONTAINS EXACT PREFIX"`
	Pattern     string           `json:"pattern" binding:"required"`
	AccountCode string           `json:"accountCode" binding:"required"`
	Priority    int              `json:"priority" binding:"gte=0"`
}

// RuleResponse defines the data returned for a mapping rule.
type RuleResponse struct {
	RuleID      string            `json:"ruleID"`
	Name        string            `json:"name"`
	MatchType   domain.MatchType  `json:"matchType"`
	Pattern     string            `json:"pattern"`
	AccountCode string            `json:"accountCode"`
	Priority    int               `json:"priority"`
	IsActive    bool              `json:"isActive"`
	Source      domain.RuleSource `json:"source"`
}

// ListRulesResponse wraps the rule catalog listing. System rules come first;
// user rules follow, matching the order the classifier evaluates them in.
type ListRulesResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// ToRuleResponse converts a domain.MappingRule to RuleResponse DTO.
func ToRuleResponse(r *domain.MappingRule) RuleResponse {
	return RuleResponse{
		RuleID:      r.RuleID,
		Name:        r.Name,
		MatchType:   r.MatchType,
		Pattern:     r.Pattern,
		AccountCode: r.AccountCode,
		Priority:    r.Priority,
		IsActive:    r.IsActive,
		Source:      r.Source,
	}
}

// ToRuleResponses converts a slice of domain rules.
func ToRuleResponses(rules []domain.MappingRule) []RuleResponse {
	res := make([]RuleResponse, len(rules))
	for i, r := range rules {
		res[i] = ToRuleResponse(&r)
	}
	return res
}
