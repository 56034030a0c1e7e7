package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo    *MockBankTransactionRepository
	periodRepo *MockPeriodRepository
	svc        portssvc.TransactionSvcFacade
	ctx        context.Context
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockBankTransactionRepository)
	s.periodRepo = new(MockPeriodRepository)
	s.svc = services.NewTransactionService(s.txnRepo, s.periodRepo)
	s.ctx = context.Background()
}

func (s *TransactionServiceTestSuite) openPeriod() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		PeriodID:  "period-1",
		OrgID:     "org-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func importRow(desc, debit, credit, balance string) dto.ImportTransactionItem {
	return dto.ImportTransactionItem{
		Date:         time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Description:  desc,
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
		BalanceAfter: decimal.RequireFromString(balance),
	}
}

func (s *TransactionServiceTestSuite) TestImportTransactionsSuccess() {
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(s.openPeriod(), nil)
	s.txnRepo.On("SaveTransactions", s.ctx, mock.AnythingOfType("[]domain.BankTransaction")).Return(nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("OFFICE RENT", "1210.00", "0", "478297.94"),
		importRow("PAYMENT RECEIVED INV 88", "0", "15000.00", "493297.94"),
	}}
	txns, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.NotEmpty(txns[0].TxnID)
	s.Equal("period-1", txns[0].PeriodID)
	s.Nil(txns[0].AccountCode, "imported rows start unclassified")
	s.Equal("user-1", txns[0].CreatedBy)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestImportRejectsProcessedPeriod() {
	period := s.openPeriod()
	period.Status = domain.PeriodProcessed
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(period, nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("OFFICE RENT", "1210.00", "0", "478297.94"),
	}}
	_, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPeriodLocked)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestImportRejectsRowWithBothSides() {
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(s.openPeriod(), nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("AMBIGUOUS ROW", "10.00", "10.00", "100.00"),
	}}
	_, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestImportRejectsRowWithNoSide() {
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(s.openPeriod(), nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("EMPTY ROW", "0", "0", "100.00"),
	}}
	_, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestImportRejectsNegativeAmounts() {
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(s.openPeriod(), nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("NEGATIVE ROW", "-5.00", "0", "100.00"),
	}}
	_, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestImportOneBadRowRejectsWholeBatch() {
	s.periodRepo.On("FindPeriodByID", s.ctx, "org-1", "period-1").Return(s.openPeriod(), nil)

	req := dto.ImportTransactionsRequest{Transactions: []dto.ImportTransactionItem{
		importRow("GOOD ROW", "10.00", "0", "90.00"),
		importRow("BAD ROW", "0", "0", "90.00"),
	}}
	_, err := s.svc.ImportTransactions(s.ctx, "org-1", "period-1", req, "user-1")

	s.Require().Error(err)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestListTransactionsOnlyUnclassified() {
	expected := []domain.BankTransaction{{TxnID: "t1"}}
	s.txnRepo.On("ListTransactionsByPeriod", s.ctx, "org-1", "period-1", true).Return(expected, nil)

	txns, err := s.svc.ListTransactions(s.ctx, "org-1", "period-1", true)

	s.Require().NoError(err)
	s.Equal(expected, txns)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
