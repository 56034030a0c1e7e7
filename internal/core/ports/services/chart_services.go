package services

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/dto"
)

// OrganizationSvcFacade defines organization lifecycle operations.
type OrganizationSvcFacade interface {
	// CreateOrganization registers an organization and initializes its chart.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// GetOrganization retrieves an organization by id.
	GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error)
}

// ChartSvcFacade exposes the chart of accounts for an organization.
type ChartSvcFacade interface {
	// InitializeChart materializes the static chart definition into the
	// organization's account set. Idempotent: re-initializing an already
	// populated chart is a no-op.
	InitializeChart(ctx context.Context, orgID string, creatorUserID string) ([]domain.Account, error)

	// ListAccounts retrieves the organization's accounts in code order.
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)

	// GetAccountByCode retrieves one account by chart code.
	GetAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error)

	// DeactivateAccount soft-deactivates an account; accounts are never deleted.
	DeactivateAccount(ctx context.Context, orgID string, code string, userID string) error

	// Categories returns the chart's account categories with normal sides.
	Categories() []domain.AccountCategory

	// NormalSide returns the normal balance side of an account's category.
	NormalSide(categoryID string) (domain.BalanceSide, error)

	// BankAccountCode returns the chart's designated bank account code.
	BankAccountCode() string
}
