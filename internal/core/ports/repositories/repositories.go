package repositories

import (
	"context"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// OrganizationRepositoryFacade defines persistence for organizations.
type OrganizationRepositoryFacade interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// FindOrganizationByID retrieves an organization.
	FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrgRepo     OrganizationRepositoryFacade
	AccountRepo AccountRepositoryFacade
	RuleRepo    RuleRepositoryFacade
	TxnRepo     BankTransactionRepositoryFacade
	JournalRepo JournalRepositoryFacade
	PeriodRepo  PeriodRepositoryFacade
	TxManager   TransactionManager
}
