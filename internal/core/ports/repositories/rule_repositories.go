package repositories

import (
	"context"
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// RuleReader defines read operations for user-defined mapping rules.
// System rules are derived from the chart definition and never stored here.
type RuleReader interface {
	// ListUserRules retrieves all user rules for an organization, active and
	// inactive, ordered by priority descending then sequence ascending.
	ListUserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error)

	// FindRuleByID retrieves a single user rule.
	FindRuleByID(ctx context.Context, orgID string, ruleID string) (*domain.MappingRule, error)
}

// RuleWriter defines write operations for user-defined mapping rules.
type RuleWriter interface {
	// SaveRule persists a new user rule.
	SaveRule(ctx context.Context, rule domain.MappingRule) error

	// DeactivateRule marks a user rule as inactive.
	DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string, now time.Time) error

	// NextRuleSequence returns the next definition-order sequence number for
	// an organization's user rules; sequence is the stable priority tie-break.
	NextRuleSequence(ctx context.Context, orgID string) (int, error)
}

// RuleRepositoryFacade combines all rule-related repository interfaces.
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
