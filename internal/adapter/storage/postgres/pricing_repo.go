package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PricingRepo implements ports.PricingRepository.
type PricingRepo struct {
	pool Pool
}

// NewPricingRepo creates a new PricingRepo.
func NewPricingRepo(pool Pool) *PricingRepo {
	return &PricingRepo{pool: pool}
}

const pricingRuleColumns = `id, name, spread_bps, min_order_grams, max_order_grams, active, created_at, updated_at`

// CreateRule inserts a new pricing rule.
func (r *PricingRepo) CreateRule(ctx context.Context, rule *domain.PricingRule) error {
	query := `INSERT INTO pricing_rules (` + pricingRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rule.ID, rule.Name, rule.SpreadBps, rule.MinOrderGrams, rule.MaxOrderGrams,
		rule.Active, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing rule: %w", err)
	}
	return nil
}

// GetRule fetches a rule by UUID.
func (r *PricingRepo) GetRule(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE id = $1`

	rule := &domain.PricingRule{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Name, &rule.SpreadBps, &rule.MinOrderGrams, &rule.MaxOrderGrams,
		&rule.Active, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing rule: %w", err)
	}
	return rule, nil
}

// ListRules fetches all pricing rules, tightest band first so the quoting
// loop finds the most specific rule before any catch-all.
func (r *PricingRepo) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules ORDER BY min_order_grams DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		var rule domain.PricingRule
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.SpreadBps, &rule.MinOrderGrams, &rule.MaxOrderGrams,
			&rule.Active, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pricing rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// UpdateRule rewrites a rule record.
func (r *PricingRepo) UpdateRule(ctx context.Context, rule *domain.PricingRule) error {
	query := `UPDATE pricing_rules
		SET name=$1, spread_bps=$2, min_order_grams=$3, max_order_grams=$4, active=$5, updated_at=NOW()
		WHERE id=$6`

	tag, err := r.pool.Exec(ctx, query,
		rule.Name, rule.SpreadBps, rule.MinOrderGrams, rule.MaxOrderGrams, rule.Active, rule.ID,
	)
	if err != nil {
		return fmt.Errorf("update pricing rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pricing rule not found: %s", rule.ID)
	}
	return nil
}
