package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
)

type ClassifierServiceTestSuite struct {
	suite.Suite
	ruleRepo    *MockRuleRepository
	accountRepo *MockAccountRepository
	txnRepo     *MockBankTransactionRepository
	svc         portssvc.ClassifierSvcFacade
	ctx         context.Context
}

func (s *ClassifierServiceTestSuite) SetupTest() {
	def, err := chart.Default()
	s.Require().NoError(err)
	s.ruleRepo = new(MockRuleRepository)
	s.accountRepo = new(MockAccountRepository)
	s.txnRepo = new(MockBankTransactionRepository)
	ruleSvc := services.NewRuleCatalogService(def, s.ruleRepo)
	s.svc = services.NewClassifierService(ruleSvc, s.accountRepo, s.txnRepo)
	s.ctx = context.Background()
}

// chartAccounts materializes every chart account as active, minus the codes
// listed in inactivate.
func (s *ClassifierServiceTestSuite) chartAccounts(inactivate ...string) []domain.Account {
	def, err := chart.Default()
	s.Require().NoError(err)
	off := make(map[string]bool, len(inactivate))
	for _, code := range inactivate {
		off[code] = true
	}
	accounts := def.Accounts()
	for i := range accounts {
		accounts[i].OrgID = "org-1"
		if off[accounts[i].Code] {
			accounts[i].IsActive = false
		}
	}
	return accounts
}

func debitTxn(id, desc, amount string) domain.BankTransaction {
	return domain.BankTransaction{
		TxnID:       id,
		OrgID:       "org-1",
		PeriodID:    "period-1",
		Date:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: desc,
		DebitAmount: decimal.RequireFromString(amount),
	}
}

func (s *ClassifierServiceTestSuite) TestClassifyFirstMatchingRuleWins() {
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return([]domain.MappingRule{}, nil)
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(s.chartAccounts(), nil)

	// OFFICE RENT (priority 60) outranks the generic RENT rule (priority 30).
	cls, err := s.svc.Classify(s.ctx, "org-1", debitTxn("t1", "payment office rent march", "1210.00"))

	s.Require().NoError(err)
	s.Require().NotNil(cls)
	s.Equal("8200", cls.AccountCode)
}

func (s *ClassifierServiceTestSuite) TestClassifyNoMatchReturnsNil() {
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return([]domain.MappingRule{}, nil)
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(s.chartAccounts(), nil)

	cls, err := s.svc.Classify(s.ctx, "org-1", debitTxn("t1", "COMPLETELY OPAQUE NARRATIVE 42", "10.00"))

	s.Require().NoError(err)
	s.Nil(cls, "no match is a valid outcome, not an error")
}

func (s *ClassifierServiceTestSuite) TestClassifySkipsInactiveRule() {
	user := []domain.MappingRule{
		{RuleID: "u-off", OrgID: "org-1", MatchType: domain.MatchContains, Pattern: "GYM", AccountCode: "9100", Priority: 90, Sequence: 0, IsActive: false, Source: domain.RuleSourceUser},
		{RuleID: "u-on", OrgID: "org-1", MatchType: domain.MatchContains, Pattern: "GYM", AccountCode: "8400", Priority: 10, Sequence: 1, IsActive: true, Source: domain.RuleSourceUser},
	}
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return(user, nil)
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(s.chartAccounts(), nil)

	cls, err := s.svc.Classify(s.ctx, "org-1", debitTxn("t1", "GYM MEMBERSHIP", "350.00"))

	s.Require().NoError(err)
	s.Require().NotNil(cls)
	s.Equal("u-on", cls.RuleID, "an inactive rule is skipped even when it outranks the match")
}

func (s *ClassifierServiceTestSuite) TestClassifySkipsRuleWithInactiveTargetAccount() {
	user := []domain.MappingRule{
		{RuleID: "u-fallback", OrgID: "org-1", MatchType: domain.MatchContains, Pattern: "OFFICE RENT", AccountCode: "9100", Priority: 1, Sequence: 0, IsActive: true, Source: domain.RuleSourceUser},
	}
	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return(user, nil)
	// Rent Paid is deactivated, so every system rule targeting it is skipped.
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(s.chartAccounts("8200"), nil)

	cls, err := s.svc.Classify(s.ctx, "org-1", debitTxn("t1", "OFFICE RENT MARCH", "1210.00"))

	s.Require().NoError(err)
	s.Require().NotNil(cls)
	s.Equal("9100", cls.AccountCode, "the next matching rule with an active target wins")
	s.Equal("u-fallback", cls.RuleID)
}

func (s *ClassifierServiceTestSuite) TestClassifyPeriodPersistsAndCounts() {
	txns := []domain.BankTransaction{
		debitTxn("t1", "OFFICE RENT", "1210.00"),
		debitTxn("t2", "UNKNOWN VENDOR 734", "200.00"),
	}
	already := "6100"
	classified := debitTxn("t3", "SALARY RUN", "52000.00")
	classified.AccountCode = &already
	classified.ClassifiedBy = "system-6100-10"
	txns = append(txns, classified)

	s.ruleRepo.On("ListUserRules", s.ctx, "org-1").Return([]domain.MappingRule{}, nil)
	s.accountRepo.On("ListAccounts", s.ctx, "org-1").Return(s.chartAccounts(), nil)
	s.txnRepo.On("ListTransactionsByPeriod", s.ctx, "org-1", "period-1", false).Return(txns, nil)
	s.txnRepo.On("UpdateClassification", s.ctx, "org-1", "t1", mock.AnythingOfType("*string"), mock.AnythingOfType("string"), "user-1", mock.AnythingOfType("time.Time")).Return(nil)

	result, err := s.svc.ClassifyPeriod(s.ctx, "org-1", "period-1", "user-1")

	s.Require().NoError(err)
	s.Equal(2, result.Classified, "already-classified rows keep their classification and still count")
	s.Equal(1, result.Unclassified)
	s.txnRepo.AssertNumberOfCalls(s.T(), "UpdateClassification", 1)
}

func (s *ClassifierServiceTestSuite) TestOverrideRecordsManualClassification() {
	account := &domain.Account{Code: "8600", OrgID: "org-1", IsActive: true}
	s.accountRepo.On("FindAccountByCode", s.ctx, "org-1", "8600").Return(account, nil)
	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "t1").Return(&domain.BankTransaction{TxnID: "t1"}, nil)
	s.txnRepo.On("UpdateClassification", s.ctx, "org-1", "t1", mock.AnythingOfType("*string"), domain.ClassifiedByManual, "user-1", mock.AnythingOfType("time.Time")).Return(nil)

	err := s.svc.Override(s.ctx, "org-1", "t1", "8600", "user-1")

	s.Require().NoError(err)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *ClassifierServiceTestSuite) TestOverrideRejectsInactiveAccount() {
	account := &domain.Account{Code: "8600", OrgID: "org-1", IsActive: false}
	s.accountRepo.On("FindAccountByCode", s.ctx, "org-1", "8600").Return(account, nil)

	err := s.svc.Override(s.ctx, "org-1", "t1", "8600", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateClassification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClassifierServiceTestSuite) TestOverrideRejectsUnknownTransaction() {
	account := &domain.Account{Code: "8600", OrgID: "org-1", IsActive: true}
	s.accountRepo.On("FindAccountByCode", s.ctx, "org-1", "8600").Return(account, nil)
	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "missing").Return(nil, apperrors.ErrNotFound)

	err := s.svc.Override(s.ctx, "org-1", "missing", "8600", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestClassifierServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClassifierServiceTestSuite))
}
