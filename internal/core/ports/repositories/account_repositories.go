package repositories

import (
	"context"
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByCode retrieves an account by its chart code within an organization.
	FindAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts by code, keyed by code.
	FindAccountsByCodes(ctx context.Context, orgID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts for an organization in code order.
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccounts persists a batch of accounts (chart initialization).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, orgID string, code string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
