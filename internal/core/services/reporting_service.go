package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
)

// reportingService aggregates ledger closing balances into reports. It never
// reads journal lines directly; the ledger engine is the only balance source.
type reportingService struct {
	BaseService
	def       *chart.Definition
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(def *chart.Definition, ledgerSvc portssvc.LedgerSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{def: def, ledgerSvc: ledgerSvc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance builds the trial balance for a period. Each account's closing
// balance lands in the debit or credit column per its reported side; the two
// column totals must agree or the call fails. A mismatch means derived data
// is corrupt and is surfaced, never papered over.
func (s *reportingService) TrialBalance(ctx context.Context, orgID string, periodID string) (*domain.TrialBalanceReport, error) {
	balances, err := s.ledgerSvc.ClosingBalances(ctx, orgID, periodID)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		OrgID:        orgID,
		PeriodID:     periodID,
		Rows:         make([]domain.TrialBalanceRow, 0, len(balances)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, b := range balances {
		account, ok := s.def.Account(b.AccountCode)
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, b.AccountCode)
		}
		row := domain.TrialBalanceRow{
			AccountCode: b.AccountCode,
			AccountName: account.Name,
			CategoryID:  account.CategoryID,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		switch b.Side {
		case domain.DebitSide:
			row.Debit = b.Amount
			report.TotalDebits = report.TotalDebits.Add(b.Amount)
		case domain.CreditSide:
			row.Credit = b.Amount
			report.TotalCredits = report.TotalCredits.Add(b.Amount)
		}
		report.Rows = append(report.Rows, row)
	}

	if !report.TotalDebits.Equal(report.TotalCredits) {
		s.LogError(ctx, apperrors.ErrTrialBalanceMismatch, "Trial balance columns disagree",
			slog.String("org_id", orgID),
			slog.String("period_id", periodID),
			slog.String("total_debits", report.TotalDebits.String()),
			slog.String("total_credits", report.TotalCredits.String()))
		return nil, fmt.Errorf("%w: period %s debits %s credits %s",
			apperrors.ErrTrialBalanceMismatch, periodID,
			report.TotalDebits.String(), report.TotalCredits.String())
	}

	return report, nil
}
