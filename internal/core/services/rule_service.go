package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/utils/normalize"
)

var (
	ErrSystemRuleImmutable = errors.New("system rules are regenerated from the chart and cannot be edited")
	ErrRuleTargetUnknown   = errors.New("rule targets an account code not present in the chart")
)

// ruleCatalogService is the single source of truth for classification rules.
// The system tier is derived from the chart definition; the user tier lives
// in the store. Both tiers are sorted descending by priority with definition
// order as the stable tie-break, and the system tier is always evaluated
// first regardless of user-rule priorities.
type ruleCatalogService struct {
	BaseService
	def      *chart.Definition
	ruleRepo portsrepo.RuleRepositoryFacade
}

// NewRuleCatalogService creates a new RuleCatalogService.
func NewRuleCatalogService(def *chart.Definition, ruleRepo portsrepo.RuleRepositoryFacade) portssvc.RuleCatalogSvcFacade {
	return &ruleCatalogService{def: def, ruleRepo: ruleRepo}
}

var _ portssvc.RuleCatalogSvcFacade = (*ruleCatalogService)(nil)

// SystemRules returns the system tier, regenerated from the chart definition.
func (s *ruleCatalogService) SystemRules() []domain.MappingRule {
	return s.def.SystemRules()
}

// UserRules returns the persisted user tier for an organization, sorted
// descending by priority, ties broken by creation sequence.
func (s *ruleCatalogService) UserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	rules, err := s.ruleRepo.ListUserRules(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user rules for organization %s: %w", orgID, err)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].Sequence < rules[j].Sequence
	})
	return rules, nil
}

// Rules returns the full evaluation sequence: system tier then user tier.
func (s *ruleCatalogService) Rules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	system := s.SystemRules()
	user, err := s.UserRules(ctx, orgID)
	if err != nil {
		return nil, err
	}
	all := make([]domain.MappingRule, 0, len(system)+len(user))
	all = append(all, system...)
	all = append(all, user...)
	return all, nil
}

// Match reports whether a rule's pattern matches a normalized description.
// Matching is case-insensitive; CONTAINS is the default semantic.
func (s *ruleCatalogService) Match(description string, rule domain.MappingRule) bool {
	desc := normalize.Description(description)
	pattern := normalize.Description(rule.Pattern)
	if pattern == "" {
		return false
	}
	switch rule.MatchType {
	case domain.MatchExact:
		return desc == pattern
	case domain.MatchPrefix:
		return strings.HasPrefix(desc, pattern)
	default:
		return strings.Contains(desc, pattern)
	}
}

// CreateRule persists a new user rule after validating its target account
// against the chart. User rules are additive; they never shadow the system
// tier, which is always evaluated first.
func (s *ruleCatalogService) CreateRule(ctx context.Context, orgID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.MappingRule, error) {
	if strings.TrimSpace(req.Pattern) == "" {
		return nil, fmt.Errorf("%w: rule pattern must not be empty", apperrors.ErrValidation)
	}
	if !s.def.HasAccount(req.AccountCode) {
		return nil, fmt.Errorf("%w: %s", ErrRuleTargetUnknown, req.AccountCode)
	}
	if offset, err := s.def.OpeningOffsetCode(); err == nil && offset == req.AccountCode {
		return nil, fmt.Errorf("%w: account %s is reserved for opening balances", apperrors.ErrValidation, req.AccountCode)
	}

	matchType := req.MatchType
	if matchType == "" {
		matchType = domain.MatchContains
	}

	seq, err := s.ruleRepo.NextRuleSequence(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate rule sequence: %w", err)
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%s -> %s", normalize.Description(req.Pattern), req.AccountCode)
	}

	now := time.Now().UTC()
	rule := domain.MappingRule{
		RuleID:      uuid.NewString(),
		OrgID:       orgID,
		MatchType:   matchType,
		Pattern:     normalize.Description(req.Pattern),
		AccountCode: req.AccountCode,
		Priority:    req.Priority,
		Sequence:    seq,
		IsActive:    true,
		Source:      domain.RuleSourceUser,
		Name:        name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save user rule", slog.String("org_id", orgID), slog.String("pattern", rule.Pattern))
		return nil, fmt.Errorf("failed to save rule: %w", err)
	}

	s.LogInfo(ctx, "User rule created", slog.String("org_id", orgID), slog.String("rule_id", rule.RuleID), slog.String("pattern", rule.Pattern), slog.Int("priority", rule.Priority))
	return &rule, nil
}

// DeactivateRule marks a user rule inactive. System rules cannot be edited.
func (s *ruleCatalogService) DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string) error {
	rule, err := s.ruleRepo.FindRuleByID(ctx, orgID, ruleID)
	if err != nil {
		return fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}
	if rule.Source != domain.RuleSourceUser {
		return ErrSystemRuleImmutable
	}
	if err := s.ruleRepo.DeactivateRule(ctx, orgID, ruleID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate rule %s: %w", ruleID, err)
	}
	s.LogInfo(ctx, "User rule deactivated", slog.String("org_id", orgID), slog.String("rule_id", ruleID))
	return nil
}
