package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// keyedMutex serializes work per key. Reprocessing holds the period's mutex
// for the whole run so two concurrent requests against the same period
// cannot interleave.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// periodService manages fiscal periods and drives the classify/generate/
// aggregate pipeline, including the atomic reprocessing state machine.
type periodService struct {
	BaseService
	def           *chart.Definition
	periodRepo    portsrepo.PeriodRepositoryFacade
	txnRepo       portsrepo.BankTransactionRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	classifierSvc portssvc.ClassifierSvcFacade
	journalSvc    portssvc.JournalSvcFacade
	ledgerSvc     portssvc.LedgerSvcFacade
	reportingSvc  portssvc.ReportingSvcFacade
	txManager     portsrepo.TransactionManager
	periodLocks   *keyedMutex
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(
	def *chart.Definition,
	periodRepo portsrepo.PeriodRepositoryFacade,
	txnRepo portsrepo.BankTransactionRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	classifierSvc portssvc.ClassifierSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	reportingSvc portssvc.ReportingSvcFacade,
	txManager portsrepo.TransactionManager,
) portssvc.PeriodSvcFacade {
	return &periodService{
		def:           def,
		periodRepo:    periodRepo,
		txnRepo:       txnRepo,
		journalRepo:   journalRepo,
		classifierSvc: classifierSvc,
		journalSvc:    journalSvc,
		ledgerSvc:     ledgerSvc,
		reportingSvc:  reportingSvc,
		txManager:     txManager,
		periodLocks:   newKeyedMutex(),
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new fiscal period.
func (s *periodService) CreatePeriod(ctx context.Context, orgID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		OrgID:     orgID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to save period: %w", err)
	}
	s.LogInfo(ctx, "Fiscal period created", slog.String("org_id", orgID), slog.String("period_id", period.PeriodID))
	return &period, nil
}

// GetPeriod retrieves a fiscal period.
func (s *periodService) GetPeriod(ctx context.Context, orgID string, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// ListPeriods lists an organization's periods in start-date order.
func (s *periodService) ListPeriods(ctx context.Context, orgID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods for organization %s: %w", orgID, err)
	}
	return periods, nil
}

// GetSummary retrieves the persisted aggregate totals of a processed period.
func (s *periodService) GetSummary(ctx context.Context, orgID string, periodID string) (*domain.PeriodSummary, error) {
	summary, err := s.periodRepo.FindSummary(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find summary for period %s: %w", periodID, err)
	}
	return summary, nil
}

// Process runs the classify/generate/aggregate pipeline over an OPEN period
// and moves it to PROCESSED. The whole run is one atomic unit of work; a
// failure at any step leaves the period untouched.
func (s *periodService) Process(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error) {
	unlock := s.periodLocks.lock(orgID + "/" + periodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is already processed; use reprocessing", apperrors.ErrConflict, periodID)
	}

	var summary *domain.PeriodSummary
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		summary, err = s.runPipeline(ctx, orgID, periodID, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Period processing failed, rolled back", slog.String("org_id", orgID), slog.String("period_id", periodID))
		return nil, err
	}

	s.LogInfo(ctx, "Period processed",
		slog.String("org_id", orgID),
		slog.String("period_id", periodID),
		slog.Int("entries", summary.EntryCount),
		slog.Int("unclassified", summary.UnclassifiedCount))
	return summary, nil
}

// Reprocess discards a period's derived data and re-runs the pipeline from
// the immutable bank transactions, all inside one transaction. Any failure
// rolls the whole sequence back; readers never observe an intermediate state.
// Running it twice with no intervening change yields identical results.
func (s *periodService) Reprocess(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error) {
	unlock := s.periodLocks.lock(orgID + "/" + periodID)
	defer unlock()

	if _, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID); err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	var summary *domain.PeriodSummary
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		deleted, err := s.journalRepo.DeleteEntriesByPeriod(ctx, orgID, periodID)
		if err != nil {
			return fmt.Errorf("failed to delete derived entries for period %s: %w", periodID, err)
		}
		if err := s.txnRepo.ClearClassifications(ctx, orgID, periodID, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to clear classifications for period %s: %w", periodID, err)
		}
		if err := s.periodRepo.DeleteSummary(ctx, orgID, periodID); err != nil {
			return fmt.Errorf("failed to delete summary for period %s: %w", periodID, err)
		}
		s.LogDebug(ctx, "Derived data discarded for reprocessing",
			slog.String("period_id", periodID),
			slog.Int("entries_deleted", deleted))

		summary, err = s.runPipeline(ctx, orgID, periodID, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Period reprocessing failed, rolled back", slog.String("org_id", orgID), slog.String("period_id", periodID))
		return nil, err
	}

	s.LogInfo(ctx, "Period reprocessed",
		slog.String("org_id", orgID),
		slog.String("period_id", periodID),
		slog.Int("entries", summary.EntryCount))
	return summary, nil
}

// runPipeline classifies, generates, verifies the trial balance, aggregates
// the summary and marks the period PROCESSED. Callers wrap it in a storage
// transaction.
func (s *periodService) runPipeline(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error) {
	classifyResult, err := s.classifierSvc.ClassifyPeriod(ctx, orgID, periodID, userID)
	if err != nil {
		return nil, err
	}
	genResult, err := s.journalSvc.GenerateForPeriod(ctx, orgID, periodID, userID)
	if err != nil {
		return nil, err
	}

	// The trial balance is the correctness gate: a period whose derived
	// entries do not balance is never marked PROCESSED.
	if _, err := s.reportingSvc.TrialBalance(ctx, orgID, periodID); err != nil {
		return nil, err
	}

	summary, err := s.buildSummary(ctx, orgID, periodID, classifyResult, genResult)
	if err != nil {
		return nil, err
	}
	if err := s.periodRepo.SaveSummary(ctx, orgID, *summary); err != nil {
		return nil, fmt.Errorf("failed to save summary for period %s: %w", periodID, err)
	}
	if err := s.periodRepo.UpdatePeriodStatus(ctx, orgID, periodID, domain.PeriodProcessed, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update status for period %s: %w", periodID, err)
	}
	return summary, nil
}

// buildSummary aggregates the period's totals from the ledger engine and
// compares the computed bank closing balance against the statement-reported
// one. A residual gap is recorded and logged, never absorbed.
func (s *periodService) buildSummary(ctx context.Context, orgID string, periodID string, classifyResult dto.ClassifyPeriodResult, genResult dto.GenerationResult) (*domain.PeriodSummary, error) {
	bankCode, err := s.def.BankAccountCode()
	if err != nil {
		return nil, err
	}

	opening, err := s.ledgerSvc.OpeningBalance(ctx, orgID, periodID, bankCode)
	if err != nil {
		return nil, err
	}
	closing, err := s.ledgerSvc.ClosingBalance(ctx, orgID, periodID, bankCode)
	if err != nil {
		return nil, err
	}
	activity, err := s.journalRepo.SumLinesForAccount(ctx, orgID, periodID, bankCode)
	if err != nil {
		return nil, fmt.Errorf("failed to sum bank account lines for period %s: %w", periodID, err)
	}

	gap := decimal.Zero
	last, err := s.txnRepo.LastTransactionInPeriod(ctx, orgID, periodID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find last transaction of period %s: %w", periodID, err)
	}
	if last != nil {
		computed := closing.Amount
		if closing.Side == domain.CreditSide {
			computed = computed.Neg()
		}
		gap = last.BalanceAfter.Sub(computed)
	}
	if !gap.IsZero() {
		s.LogWarn(ctx, "Reconciliation gap between statement and ledger closing balance",
			slog.String("org_id", orgID),
			slog.String("period_id", periodID),
			slog.String("gap", gap.String()))
	}

	return &domain.PeriodSummary{
		PeriodID:          periodID,
		OpeningBalance:    opening,
		TotalDebits:       activity.Debits,
		TotalCredits:      activity.Credits,
		ClosingBalance:    closing.Amount,
		ClosingSide:       closing.Side,
		ReconciliationGap: gap,
		ClassifiedCount:   classifyResult.Classified,
		UnclassifiedCount: classifyResult.Unclassified,
		EntryCount:        genResult.Generated + genResult.Skipped,
	}, nil
}
