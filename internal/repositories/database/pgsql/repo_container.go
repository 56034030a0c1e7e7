package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrgRepo:     newPgxOrganizationRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		RuleRepo:    newPgxRuleRepository(dbPool),
		TxnRepo:     newPgxBankTransactionRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		PeriodRepo:  newPgxPeriodRepository(dbPool),
		TxManager:   newPgxTransactionManager(dbPool),
	}
}
