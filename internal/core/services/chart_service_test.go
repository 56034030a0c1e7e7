package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

type ChartServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	svc         portssvc.ChartSvcFacade
	ctx         context.Context
}

func (s *ChartServiceTestSuite) SetupTest() {
	def, err := chart.Default()
	s.Require().NoError(err)
	s.accountRepo = new(MockAccountRepository)
	s.svc, err = services.NewChartService(def, s.accountRepo)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ChartServiceTestSuite) TestInitializeChartMaterializesDefinition() {
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return([]domain.Account{}, nil)
	s.accountRepo.On("SaveAccounts", s.ctx, mock.AnythingOfType("[]domain.Account")).Return(nil)

	accounts, err := s.svc.InitializeChart(s.ctx, "org-1", "user-1")

	s.Require().NoError(err)
	s.Require().NotEmpty(accounts)
	for _, a := range accounts {
		s.NotEmpty(a.AccountID)
		s.Equal("org-1", a.OrgID)
		s.True(a.IsActive)
		s.Equal("user-1", a.CreatedBy)
	}
	s.accountRepo.AssertExpectations(s.T())
}

func (s *ChartServiceTestSuite) TestInitializeChartIsIdempotent() {
	existing := []domain.Account{{AccountID: "a1", OrgID: "org-1", Code: "1100"}}
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(existing, nil)

	accounts, err := s.svc.InitializeChart(s.ctx, "org-1", "user-1")

	s.Require().NoError(err)
	s.Equal(existing, accounts)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccounts", mock.Anything, mock.Anything)
}

func (s *ChartServiceTestSuite) TestBankAccountCode() {
	s.Equal("1100", s.svc.BankAccountCode())
}

func (s *ChartServiceTestSuite) TestNormalSide() {
	side, err := s.svc.NormalSide("EXPENSES")
	s.Require().NoError(err)
	s.Equal(domain.DebitSide, side)

	_, err = s.svc.NormalSide("NOPE")
	s.Require().Error(err)
	s.ErrorIs(err, services.ErrUnknownCategory)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}

type OrganizationServiceTestSuite struct {
	suite.Suite
	orgRepo     *MockOrganizationRepository
	accountRepo *MockAccountRepository
	svc         portssvc.OrganizationSvcFacade
	ctx         context.Context
}

func (s *OrganizationServiceTestSuite) SetupTest() {
	def, err := chart.Default()
	s.Require().NoError(err)
	s.orgRepo = new(MockOrganizationRepository)
	s.accountRepo = new(MockAccountRepository)
	chartSvc, err := services.NewChartService(def, s.accountRepo)
	s.Require().NoError(err)
	s.svc = services.NewOrganizationService(s.orgRepo, chartSvc)
	s.ctx = context.Background()
}

func (s *OrganizationServiceTestSuite) TestCreateOrganizationInitializesChart() {
	s.orgRepo.On("SaveOrganization", s.ctx, mock.AnythingOfType("domain.Organization")).Return(nil)
	s.accountRepo.On("ListAccounts", s.ctx, mock.AnythingOfType("string")).Return([]domain.Account{}, nil)
	s.accountRepo.On("SaveAccounts", s.ctx, mock.AnythingOfType("[]domain.Account")).Return(nil)

	org, err := s.svc.CreateOrganization(s.ctx, dto.CreateOrganizationRequest{Name: "Dlamini Trading"}, "user-1")

	s.Require().NoError(err)
	s.NotEmpty(org.OrgID)
	s.Equal("Dlamini Trading", org.Name)
	s.True(org.IsActive)
	s.accountRepo.AssertCalled(s.T(), "SaveAccounts", s.ctx, mock.AnythingOfType("[]domain.Account"))
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
