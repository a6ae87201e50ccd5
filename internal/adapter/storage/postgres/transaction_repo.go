package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, wallet_id, type, amount_grams, amount_usd, tx_hash, reference, created_at`

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Type, t.AmountGrams, t.AmountUSD, t.TxHash, t.Reference, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List fetches transactions with filtering, sorting and pagination.
// Highest/lowest sort by absolute amount, so a large burn outranks a small
// mint regardless of sign.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.WalletID != "" {
		conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
		args = append(args, params.WalletID)
		argIdx++
	}
	if params.Type != "" && params.Type != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var orderBy string
	switch params.Sort {
	case domain.SortOldest:
		orderBy = "created_at ASC"
	case domain.SortHighest:
		orderBy = "ABS(amount_grams) DESC"
	case domain.SortLowest:
		orderBy = "ABS(amount_grams) ASC"
	default:
		orderBy = "created_at DESC"
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.AmountGrams, &t.AmountUSD,
			&t.TxHash, &t.Reference, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, total, rows.Err()
}

// GetSupplyStats aggregates minted and burned totals across all wallets.
func (r *TransactionRepo) GetSupplyStats(ctx context.Context) (*ports.SupplyStats, error) {
	query := `SELECT
		COALESCE(SUM(amount_grams) FILTER (WHERE type = 'MINT'), 0) AS minted,
		COALESCE(-SUM(amount_grams) FILTER (WHERE type = 'BURN'), 0) AS burned,
		COUNT(DISTINCT wallet_id) AS holders
		FROM transactions`

	stats := &ports.SupplyStats{}
	err := r.pool.QueryRow(ctx, query).Scan(&stats.MintedGrams, &stats.BurnedGrams, &stats.HolderCount)
	if err != nil {
		return nil, fmt.Errorf("get supply stats: %w", err)
	}
	stats.TotalSupplyGrams = stats.MintedGrams - stats.BurnedGrams
	return stats, nil
}
