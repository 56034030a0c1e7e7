package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// classifierService resolves account codes for bank transactions by walking
// the rule catalog in evaluation order: system tier first, then user tier,
// first active matching rule wins. A rule whose target account is missing or
// inactive is skipped so the next rule in sequence can still match.
type classifierService struct {
	BaseService
	ruleSvc     portssvc.RuleCatalogSvcFacade
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.BankTransactionRepositoryFacade
}

// NewClassifierService creates a new ClassifierService.
func NewClassifierService(ruleSvc portssvc.RuleCatalogSvcFacade, accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.BankTransactionRepositoryFacade) portssvc.ClassifierSvcFacade {
	return &classifierService{ruleSvc: ruleSvc, accountRepo: accountRepo, txnRepo: txnRepo}
}

var _ portssvc.ClassifierSvcFacade = (*classifierService)(nil)

// Classify resolves an account code for one transaction. It is a pure
// function of the transaction, the rule set and the chart; nil means no rule
// matched, which is a valid terminal state.
func (s *classifierService) Classify(ctx context.Context, orgID string, txn domain.BankTransaction) (*domain.Classification, error) {
	rules, err := s.ruleSvc.Rules(ctx, orgID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.activeAccounts(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.classifyAgainst(txn, rules, accounts), nil
}

// classifyAgainst walks the pre-fetched rule sequence. Split out so batch
// classification fetches rules and accounts once per period, not per row.
func (s *classifierService) classifyAgainst(txn domain.BankTransaction, rules []domain.MappingRule, activeAccounts map[string]bool) *domain.Classification {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !activeAccounts[rule.AccountCode] {
			continue
		}
		if s.ruleSvc.Match(txn.Description, rule) {
			return &domain.Classification{
				AccountCode: rule.AccountCode,
				RuleID:      rule.RuleID,
				RuleName:    rule.Name,
			}
		}
	}
	return nil
}

// ClassifyPeriod classifies every transaction of a period and persists the
// resolved account codes. Already-classified transactions keep their
// classification; use the reprocessor to start over.
func (s *classifierService) ClassifyPeriod(ctx context.Context, orgID string, periodID string, userID string) (dto.ClassifyPeriodResult, error) {
	var result dto.ClassifyPeriodResult

	rules, err := s.ruleSvc.Rules(ctx, orgID)
	if err != nil {
		return result, err
	}
	accounts, err := s.activeAccounts(ctx, orgID)
	if err != nil {
		return result, err
	}
	txns, err := s.txnRepo.ListTransactionsByPeriod(ctx, orgID, periodID, false)
	if err != nil {
		return result, fmt.Errorf("failed to list transactions for period %s: %w", periodID, err)
	}

	now := time.Now().UTC()
	for _, txn := range txns {
		if txn.IsClassified() {
			result.Classified++
			continue
		}
		cls := s.classifyAgainst(txn, rules, accounts)
		if cls == nil {
			result.Unclassified++
			continue
		}
		code := cls.AccountCode
		if err := s.txnRepo.UpdateClassification(ctx, orgID, txn.TxnID, &code, cls.RuleID, userID, now); err != nil {
			return result, fmt.Errorf("failed to persist classification for transaction %s: %w", txn.TxnID, err)
		}
		result.Classified++
	}

	s.LogInfo(ctx, "Period classified",
		slog.String("org_id", orgID),
		slog.String("period_id", periodID),
		slog.Int("classified", result.Classified),
		slog.Int("unclassified", result.Unclassified))
	return result, nil
}

// Override records a manual classification for one transaction. Manual
// overrides survive rule-catalog changes until the period is reprocessed.
func (s *classifierService) Override(ctx context.Context, orgID string, txnID string, accountCode string, userID string) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, orgID, accountCode)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountCode)
	}
	if _, err := s.txnRepo.FindTransactionByID(ctx, orgID, txnID); err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", txnID, err)
	}

	code := accountCode
	if err := s.txnRepo.UpdateClassification(ctx, orgID, txnID, &code, domain.ClassifiedByManual, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to persist manual classification for transaction %s: %w", txnID, err)
	}
	s.LogInfo(ctx, "Manual classification recorded",
		slog.String("org_id", orgID),
		slog.String("txn_id", txnID),
		slog.String("account_code", accountCode))
	return nil
}

func (s *classifierService) activeAccounts(ctx context.Context, orgID string) (map[string]bool, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", orgID, err)
	}
	active := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active[a.Code] = true
		}
	}
	return active, nil
}
