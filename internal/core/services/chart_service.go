package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
)

var (
	ErrAccountNotFound = errors.New("account not found in chart")
	ErrUnknownCategory = errors.New("unknown account category")
)

// chartService exposes the static chart definition and its per-organization
// account materialization. The chart is fixed data: classification looks
// accounts up here, it never creates them at runtime.
type chartService struct {
	BaseService
	def         *chart.Definition
	accountRepo portsrepo.AccountRepositoryFacade
	bankCode    string
}

// NewChartService creates a new ChartService backed by the given definition.
func NewChartService(def *chart.Definition, accountRepo portsrepo.AccountRepositoryFacade) (portssvc.ChartSvcFacade, error) {
	bankCode, err := def.BankAccountCode()
	if err != nil {
		return nil, fmt.Errorf("invalid chart definition: %w", err)
	}
	return &chartService{def: def, accountRepo: accountRepo, bankCode: bankCode}, nil
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// InitializeChart materializes the chart definition into the organization's
// account set. Re-initializing an already populated chart is a no-op.
func (s *chartService) InitializeChart(ctx context.Context, orgID string, creatorUserID string) ([]domain.Account, error) {
	existing, err := s.accountRepo.ListAccounts(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing chart for organization %s: %w", orgID, err)
	}
	if len(existing) > 0 {
		s.LogDebug(ctx, "Chart already initialized", slog.String("org_id", orgID), slog.Int("account_count", len(existing)))
		return existing, nil
	}

	now := time.Now().UTC()
	accounts := s.def.Accounts()
	for i := range accounts {
		accounts[i].AccountID = uuid.NewString()
		accounts[i].OrgID = orgID
		accounts[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to initialize chart", slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to save chart accounts: %w", err)
	}

	s.LogInfo(ctx, "Chart initialized", slog.String("org_id", orgID), slog.Int("account_count", len(accounts)))
	return accounts, nil
}

// ListAccounts retrieves the organization's accounts in code order.
func (s *chartService) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", orgID, err)
	}
	return accounts, nil
}

// GetAccountByCode retrieves one account by chart code.
func (s *chartService) GetAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, orgID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("org_id", orgID), slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// DeactivateAccount soft-deactivates an account.
func (s *chartService) DeactivateAccount(ctx context.Context, orgID string, code string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, orgID, code, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("org_id", orgID), slog.String("code", code))
	return nil
}

// Categories returns the chart's account categories.
func (s *chartService) Categories() []domain.AccountCategory {
	return s.def.Categories()
}

// NormalSide returns the normal balance side of an account's category.
func (s *chartService) NormalSide(categoryID string) (domain.BalanceSide, error) {
	cat, ok := s.def.Category(categoryID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return cat.NormalSide, nil
}

// BankAccountCode returns the chart's designated bank account code.
func (s *chartService) BankAccountCode() string {
	return s.bankCode
}

// organizationService manages organization registration.
type organizationService struct {
	BaseService
	orgRepo  portsrepo.OrganizationRepositoryFacade
	chartSvc portssvc.ChartSvcFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, chartSvc portssvc.ChartSvcFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo, chartSvc: chartSvc}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization registers an organization and initializes its chart.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	now := time.Now().UTC()
	org := domain.Organization{
		OrgID:    uuid.NewString(),
		Name:     req.Name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	if _, err := s.chartSvc.InitializeChart(ctx, org.OrgID, creatorUserID); err != nil {
		return nil, fmt.Errorf("failed to initialize chart for new organization: %w", err)
	}

	s.LogInfo(ctx, "Organization created", slog.String("org_id", org.OrgID), slog.String("name", org.Name))
	return &org, nil
}

// GetOrganization retrieves an organization by id.
func (s *organizationService) GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization %s: %w", orgID, err)
	}
	return org, nil
}
