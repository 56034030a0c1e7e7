package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	"github.com/autobooks/autobooks_app/internal/models"
	"github.com/autobooks/autobooks_app/internal/utils/mapping"
)

type PgxRuleRepository struct {
	BaseRepository
}

func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

const ruleColumns = `rule_id, org_id, match_type, pattern, account_code, priority, sequence, is_active, name, created_at, created_by, last_updated_at, last_updated_by`

func scanRule(row pgx.Row) (models.MappingRule, error) {
	var m models.MappingRule
	err := row.Scan(
		&m.RuleID, &m.OrgID, &m.MatchType, &m.Pattern, &m.AccountCode,
		&m.Priority, &m.Sequence, &m.IsActive, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveRule inserts a new user rule.
func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.MappingRule) error {
	m := mapping.ToModelRule(rule)
	query := `
		INSERT INTO mapping_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RuleID, m.OrgID, m.MatchType, m.Pattern, m.AccountCode,
		m.Priority, m.Sequence, m.IsActive, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule %s: %w", m.RuleID, translateError(err, ""))
	}
	return nil
}

// ListUserRules retrieves all user rules for an organization ordered by
// priority descending then sequence ascending.
func (r *PgxRuleRepository) ListUserRules(ctx context.Context, orgID string) ([]domain.MappingRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM mapping_rules
		WHERE org_id = $1
		ORDER BY priority DESC, sequence ASC;
	`
	rows, err := r.db(ctx).Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.MappingRule
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, mapping.ToDomainRule(m))
	}
	return rules, rows.Err()
}

// FindRuleByID retrieves a single user rule.
func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, orgID string, ruleID string) (*domain.MappingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM mapping_rules WHERE org_id = $1 AND rule_id = $2;`
	m, err := scanRule(r.db(ctx).QueryRow(ctx, query, orgID, ruleID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("rule %s", ruleID))
	}
	rule := mapping.ToDomainRule(m)
	return &rule, nil
}

// DeactivateRule marks a user rule inactive.
func (r *PgxRuleRepository) DeactivateRule(ctx context.Context, orgID string, ruleID string, userID string, now time.Time) error {
	query := `
		UPDATE mapping_rules
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE org_id = $1 AND rule_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query, orgID, ruleID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: rule %s", apperrors.ErrNotFound, ruleID)
	}
	return nil
}

// NextRuleSequence allocates the next definition-order sequence number.
func (r *PgxRuleRepository) NextRuleSequence(ctx context.Context, orgID string) (int, error) {
	query := `SELECT COALESCE(MAX(sequence), -1) + 1 FROM mapping_rules WHERE org_id = $1;`
	var seq int
	if err := r.db(ctx).QueryRow(ctx, query, orgID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to allocate rule sequence: %w", err)
	}
	return seq, nil
}
