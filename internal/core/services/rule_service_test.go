package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

type RuleServiceTestSuite struct {
	suite.Suite
	ruleRepo *MockRuleRepository
	def      *chart.Definition
	svc      portssvc.RuleCatalogSvcFacade
	ctx      context.Context
}

func (s *RuleServiceTestSuite) SetupTest() {
	var err error
	s.def, err = chart.Default()
	s.Require().NoError(err)
	s.ruleRepo = new(MockRuleRepository)
	s.svc = services.NewRuleCatalogService(s.def, s.ruleRepo)
	s.ctx = context.Background()
}

func (s *RuleServiceTestSuite) TestSystemRulesSortedByPriorityThenSequence() {
	rules := s.svc.SystemRules()
	s.Require().NotEmpty(rules)

	for i := 1; i < len(rules); i++ {
		prev, cur := rules[i-1], rules[i]
		s.GreaterOrEqual(prev.Priority, cur.Priority)
		if prev.Priority == cur.Priority {
			s.Less(prev.Sequence, cur.Sequence, "equal priorities must keep definition order")
		}
	}

	// BANK CHARGE carries the chart's highest priority.
	s.Equal("BANK CHARGE", rules[0].Pattern)
	s.Equal("7100", rules[0].AccountCode)
	s.Equal(domain.RuleSourceSystem, rules[0].Source)
}

func (s *RuleServiceTestSuite) TestSystemTierAlwaysPrecedesUserTier() {
	userRules := []domain.MappingRule{
		{RuleID: "u1", OrgID: "org-1", Pattern: "LANDLORD", AccountCode: "8200", Priority: 9999, Sequence: 0, IsActive: true, Source: domain.RuleSourceUser},
	}
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return(userRules, nil)

	all, err := s.svc.Rules(s.ctx, "org-1")
	s.Require().NoError(err)

	systemCount := len(s.svc.SystemRules())
	s.Require().Len(all, systemCount+1)
	for _, r := range all[:systemCount] {
		s.Equal(domain.RuleSourceSystem, r.Source)
	}
	// A user rule outranking every system priority still evaluates last.
	s.Equal("u1", all[systemCount].RuleID)
}

func (s *RuleServiceTestSuite) TestUserRulesSortedPriorityDescSequenceAsc() {
	unsorted := []domain.MappingRule{
		{RuleID: "low", Priority: 10, Sequence: 0, IsActive: true, Source: domain.RuleSourceUser},
		{RuleID: "high-late", Priority: 50, Sequence: 2, IsActive: true, Source: domain.RuleSourceUser},
		{RuleID: "high-early", Priority: 50, Sequence: 1, IsActive: true, Source: domain.RuleSourceUser},
	}
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return(unsorted, nil)

	rules, err := s.svc.UserRules(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Require().Len(rules, 3)
	s.Equal("high-early", rules[0].RuleID)
	s.Equal("high-late", rules[1].RuleID)
	s.Equal("low", rules[2].RuleID)
}

func (s *RuleServiceTestSuite) TestMatchSemantics() {
	contains := domain.MappingRule{MatchType: domain.MatchContains, Pattern: "office rent"}
	exact := domain.MappingRule{MatchType: domain.MatchExact, Pattern: "ATM"}
	prefix := domain.MappingRule{MatchType: domain.MatchPrefix, Pattern: "POS SALE"}

	s.True(s.svc.Match("PAYMENT  Office   Rent March", contains), "match is case-insensitive and whitespace-collapsed")
	s.False(s.svc.Match("OFFICE SUPPLIES", contains))

	s.True(s.svc.Match("atm", exact))
	s.False(s.svc.Match("ATM WITHDRAWAL", exact))

	s.True(s.svc.Match("pos sale 4411 main st", prefix))
	s.False(s.svc.Match("REFUND POS SALE", prefix))
}

func (s *RuleServiceTestSuite) TestMatchEmptyPatternNeverMatches() {
	rule := domain.MappingRule{MatchType: domain.MatchContains, Pattern: "   "}
	s.False(s.svc.Match("ANYTHING AT ALL", rule))
}

func (s *RuleServiceTestSuite) TestCreateRuleSuccess() {
	s.ruleRepo.On("NextRuleSequence", s.ctx, "org-1").Return(7, nil)
	s.ruleRepo.On("SaveRule", s.ctx, mock.AnythingOfType("domain.MappingRule")).Return(nil)

	req := dto.CreateRuleRequest{Pattern: "  my   Landlord ", AccountCode: "8200", Priority: 45}
	rule, err := s.svc.CreateRule(s.ctx, "org-1", req, "user-1")

	s.Require().NoError(err)
	s.Equal("MY LANDLORD", rule.Pattern, "pattern is stored normalized")
	s.Equal(domain.MatchContains, rule.MatchType, "CONTAINS is the default match type")
	s.Equal(7, rule.Sequence)
	s.Equal(domain.RuleSourceUser, rule.Source)
	s.True(rule.IsActive)
	s.Equal("user-1", rule.CreatedBy)
	s.ruleRepo.AssertExpectations(s.T())
}

func (s *RuleServiceTestSuite) TestCreateRuleRejectsEmptyPattern() {
	req := dto.CreateRuleRequest{Pattern: "   ", AccountCode: "8200"}
	_, err := s.svc.CreateRule(s.ctx, "org-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ruleRepo.AssertNotCalled(s.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (s *RuleServiceTestSuite) TestCreateRuleRejectsUnknownAccount() {
	req := dto.CreateRuleRequest{Pattern: "SOMETHING", AccountCode: "9999"}
	_, err := s.svc.CreateRule(s.ctx, "org-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrRuleTargetUnknown)
	s.ruleRepo.AssertNotCalled(s.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (s *RuleServiceTestSuite) TestCreateRuleRejectsOpeningOffsetTarget() {
	req := dto.CreateRuleRequest{Pattern: "OPENING", AccountCode: "3050"}
	_, err := s.svc.CreateRule(s.ctx, "org-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RuleServiceTestSuite) TestDeactivateUserRule() {
	rule := &domain.MappingRule{RuleID: "u1", OrgID: "org-1", Source: domain.RuleSourceUser, IsActive: true}
	s.ruleRepo.On("FindRuleByID", s.ctx, "org-1", "u1").Return(rule, nil)
	s.ruleRepo.On("DeactivateRule", s.ctx, "org-1", "u1", "user-1", mock.AnythingOfType("time.Time")).Return(nil)

	err := s.svc.DeactivateRule(s.ctx, "org-1", "u1", "user-1")

	s.Require().NoError(err)
	s.ruleRepo.AssertExpectations(s.T())
}

func (s *RuleServiceTestSuite) TestDeactivateSystemRuleRejected() {
	rule := &domain.MappingRule{RuleID: "system-7100-0", Source: domain.RuleSourceSystem, IsActive: true}
	s.ruleRepo.On("FindRuleByID", s.ctx, "org-1", "system-7100-0").Return(rule, nil)

	err := s.svc.DeactivateRule(s.ctx, "org-1", "system-7100-0", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrSystemRuleImmutable)
	s.ruleRepo.AssertNotCalled(s.T(), "DeactivateRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}

func TestCreateRuleDefaultName(t *testing.T) {
	def, err := chart.Default()
	assert.NoError(t, err)
	ruleRepo := new(MockRuleRepository)
	svc := services.NewRuleCatalogService(def, ruleRepo)
	ctx := context.Background()

	ruleRepo.On("NextRuleSequence", ctx, "org-1").Return(0, nil)
	ruleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.MappingRule")).Return(nil)

	rule, err := svc.CreateRule(ctx, "org-1", dto.CreateRuleRequest{Pattern: "coffee shop", AccountCode: "9100"}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "COFFEE SHOP -> 9100", rule.Name)
	assert.WithinDuration(t, time.Now().UTC(), rule.CreatedAt, time.Minute)
}
