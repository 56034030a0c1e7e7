package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/handlers"
	"github.com/autobooks/autobooks_app/pkg/config"
)

// --- Mock RuleCatalogService ---
type MockRuleCatalogService struct {
	mock.Mock
}

func (m *MockRuleCatalogService) Rules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappingRule), args.Error(1)
}

func (m *MockRuleCatalogService) SystemRules() []domain.MappingRule {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.MappingRule)
}

func (m *MockRuleCatalogService) UserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappingRule), args.Error(1)
}

func (m *MockRuleCatalogService) Match(description string, rule domain.MappingRule) bool {
	args := m.Called(description, rule)
	return args.Bool(0)
}

func (m *MockRuleCatalogService) CreateRule(ctx context.Context, orgID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.MappingRule, error) {
	args := m.Called(ctx, orgID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingRule), args.Error(1)
}

func (m *MockRuleCatalogService) DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string) error {
	args := m.Called(ctx, orgID, ruleID, userID)
	return args.Error(0)
}

var _ portssvc.RuleCatalogSvcFacade = (*MockRuleCatalogService)(nil)

type RuleHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	ruleSvc *MockRuleCatalogService
}

func (s *RuleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ruleSvc = new(MockRuleCatalogService)
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{}, &portssvc.ServicesContainer{RuleSvc: s.ruleSvc})
}

func (s *RuleHandlerTestSuite) TestListRules() {
	rules := []domain.MappingRule{
		{RuleID: "system-8200-0", Pattern: "OFFICE RENT", AccountCode: "8200", Priority: 60, IsActive: true, Source: domain.RuleSourceSystem},
		{RuleID: "u1", Pattern: "LANDLORD", AccountCode: "8200", Priority: 45, IsActive: true, Source: domain.RuleSourceUser},
	}
	s.ruleSvc.On("Rules", mock.Anything, "org-1").Return(rules, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs/org-1/rules", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListRulesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Rules, 2)
	s.Equal("system-8200-0", resp.Rules[0].RuleID)
	s.Equal(domain.RuleSourceUser, resp.Rules[1].Source)
}

func (s *RuleHandlerTestSuite) TestCreateRule() {
	created := &domain.MappingRule{RuleID: "u1", Pattern: "LANDLORD", AccountCode: "8200", Priority: 45, IsActive: true, Source: domain.RuleSourceUser}
	s.ruleSvc.On("CreateRule", mock.Anything, "org-1", mock.AnythingOfType("dto.CreateRuleRequest"), "user-1").Return(created, nil)

	body, _ := json.Marshal(dto.CreateRuleRequest{Pattern: "LANDLORD", AccountCode: "8200", Priority: 45})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orgs/org-1/rules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.RuleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("u1", resp.RuleID)
}

func (s *RuleHandlerTestSuite) TestCreateRuleUnknownTarget() {
	s.ruleSvc.On("CreateRule", mock.Anything, "org-1", mock.AnythingOfType("dto.CreateRuleRequest"), "system").
		Return(nil, services.ErrRuleTargetUnknown)

	body, _ := json.Marshal(dto.CreateRuleRequest{Pattern: "SOMETHING", AccountCode: "9999"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orgs/org-1/rules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RuleHandlerTestSuite) TestCreateRuleMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orgs/org-1/rules", bytes.NewReader([]byte(`{"pattern":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.ruleSvc.AssertNotCalled(s.T(), "CreateRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RuleHandlerTestSuite) TestDeactivateRule() {
	s.ruleSvc.On("DeactivateRule", mock.Anything, "org-1", "u1", "system").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orgs/org-1/rules/u1", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *RuleHandlerTestSuite) TestDeactivateSystemRule() {
	s.ruleSvc.On("DeactivateRule", mock.Anything, "org-1", "system-8200-0", "system").
		Return(services.ErrSystemRuleImmutable)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orgs/org-1/rules/system-8200-0", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func TestRuleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RuleHandlerTestSuite))
}
