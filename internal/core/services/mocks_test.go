package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, orgID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, orgID string, code string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, code, userID, now)
	return args.Error(0)
}

// --- Mock RuleRepository ---

type MockRuleRepository struct {
	mock.Mock
}

var _ portsrepo.RuleRepositoryFacade = (*MockRuleRepository)(nil)

func (m *MockRuleRepository) ListUserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappingRule), args.Error(1)
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, orgID string, ruleID string) (*domain.MappingRule, error) {
	args := m.Called(ctx, orgID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingRule), args.Error(1)
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.MappingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, ruleID, userID, now)
	return args.Error(0)
}

func (m *MockRuleRepository) NextRuleSequence(ctx context.Context, orgID string) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

// --- Mock BankTransactionRepository ---

type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, txnID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, orgID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListTransactionsByPeriod(ctx context.Context, orgID string, periodID string, onlyUnclassified bool) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, orgID, periodID, onlyUnclassified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FirstTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) LastTransactionInPeriod(ctx context.Context, orgID string, periodID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.BankTransaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) UpdateClassification(ctx context.Context, orgID string, txnID string, accountCode *string, classifiedBy string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, txnID, accountCode, classifiedBy, userID, now)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) ClearClassifications(ctx context.Context, orgID string, periodID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, periodID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySourceTxn(ctx context.Context, orgID string, txnID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByPeriod(ctx context.Context, orgID string, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SumLinesByAccount(ctx context.Context, orgID string, periodID string) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

func (m *MockJournalRepository) SumLinesForAccount(ctx context.Context, orgID string, periodID string, accountCode string) (domain.AccountActivity, error) {
	args := m.Called(ctx, orgID, periodID, accountCode)
	return args.Get(0).(domain.AccountActivity), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntriesByPeriod(ctx context.Context, orgID string, periodID string) (int, error) {
	args := m.Called(ctx, orgID, periodID)
	return args.Int(0), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, orgID string, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByOrg(ctx context.Context, orgID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindSummary(ctx context.Context, orgID string, periodID string) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, orgID string, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, periodID, status, userID, now)
	return args.Error(0)
}

func (m *MockPeriodRepository) SaveSummary(ctx context.Context, orgID string, summary domain.PeriodSummary) error {
	args := m.Called(ctx, orgID, summary)
	return args.Error(0)
}

func (m *MockPeriodRepository) DeleteSummary(ctx context.Context, orgID string, periodID string) error {
	args := m.Called(ctx, orgID, periodID)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

// --- Pass-through TransactionManager ---

// passthroughTxManager runs the function directly; unit tests assert on the
// repository calls, not on transaction mechanics.
type passthroughTxManager struct{}

var _ portsrepo.TransactionManager = (*passthroughTxManager)(nil)

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
