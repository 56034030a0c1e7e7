package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// RuleCatalogSvcFacade is the single source of truth for classification rules.
// Consumers needing classification logic read from here and never hold private
// copies of pattern strings.
type RuleCatalogSvcFacade interface {
	// Rules returns the full evaluation sequence for an organization: the
	// system tier (derived from the chart definition) followed by the user
	// tier, each sorted descending by priority with stable definition-order
	// tie-breaks.
	Rules(ctx context.Context, orgID string) ([]domain.MappingRule, error)

	// SystemRules returns the system tier alone.
	SystemRules() []domain.MappingRule

	// UserRules returns the persisted user tier for an organization.
	UserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error)

	// Match reports whether a rule's pattern matches a normalized description.
	Match(description string, rule domain.MappingRule) bool

	// CreateRule persists a new user rule after validating its target account.
	CreateRule(ctx context.Context, orgID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.MappingRule, error)

	// DeactivateRule marks a user rule inactive. System rules cannot be edited.
	DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string) error
}
