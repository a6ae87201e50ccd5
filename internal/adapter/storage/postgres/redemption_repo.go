package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// RedemptionRepo implements ports.RedemptionRepository.
type RedemptionRepo struct {
	pool Pool
}

// NewRedemptionRepo creates a new RedemptionRepo.
func NewRedemptionRepo(pool Pool) *RedemptionRepo {
	return &RedemptionRepo{pool: pool}
}

const redemptionColumns = `request_id, user_name, user_email, user_wallet_id, gold_weight_grams,
	vault_location, status, mode, requested_on, shipping_partner, shipping_tracking_number,
	tokens_burned, updated_at`

func scanRedemption(row pgx.Row) (*domain.Redemption, error) {
	r := &domain.Redemption{}
	var shipPartner, shipTracking *string
	err := row.Scan(
		&r.RequestID, &r.User.Name, &r.User.Email, &r.User.WalletID, &r.GoldWeightGrams,
		&r.VaultLocation, &r.Status, &r.Mode, &r.RequestedOn, &shipPartner, &shipTracking,
		&r.TokensBurned, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if shipPartner != nil && shipTracking != nil {
		r.Shipping = &domain.ShippingDetails{Partner: *shipPartner, TrackingNumber: *shipTracking}
	}
	return r, nil
}

// GetByID fetches a redemption request by its RED- identifier.
func (r *RedemptionRepo) GetByID(ctx context.Context, requestID string) (*domain.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE request_id = $1`

	red, err := scanRedemption(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get redemption by id: %w", err)
	}
	return red, nil
}

// List fetches redemption requests with filtering and pagination.
func (r *RedemptionRepo) List(ctx context.Context, params ports.RedemptionListParams) ([]domain.Redemption, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(request_id ILIKE $%d OR user_name ILIKE $%d OR user_email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" && params.Status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Mode != "" && params.Mode != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("mode = $%d", argIdx))
		args = append(args, params.Mode)
		argIdx++
	}
	if params.Vault != "" && params.Vault != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("vault_location = $%d", argIdx))
		args = append(args, params.Vault)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM redemptions` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count redemptions: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + redemptionColumns + ` FROM redemptions` + where +
		fmt.Sprintf(" ORDER BY requested_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var reds []domain.Redemption
	for rows.Next() {
		red, err := scanRedemption(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan redemption: %w", err)
		}
		reds = append(reds, *red)
	}
	return reds, total, rows.Err()
}

// UpdateStatus updates the request status within a database transaction.
func (r *RedemptionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, requestID, status string) error {
	query := `UPDATE redemptions SET status = $1, updated_at = NOW() WHERE request_id = $2`

	tag, err := tx.Exec(ctx, query, status, requestID)
	if err != nil {
		return fmt.Errorf("update redemption status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("redemption not found: %s", requestID)
	}
	return nil
}

// AssignVault binds the request to a vault within a transaction.
func (r *RedemptionRepo) AssignVault(ctx context.Context, tx pgx.Tx, requestID, vaultLocation string) error {
	query := `UPDATE redemptions SET vault_location = $1, updated_at = NOW() WHERE request_id = $2`

	tag, err := tx.Exec(ctx, query, vaultLocation, requestID)
	if err != nil {
		return fmt.Errorf("assign redemption vault: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("redemption not found: %s", requestID)
	}
	return nil
}

// SetShipping records courier details within a transaction.
func (r *RedemptionRepo) SetShipping(ctx context.Context, tx pgx.Tx, requestID string, shipping domain.ShippingDetails) error {
	query := `UPDATE redemptions SET shipping_partner = $1, shipping_tracking_number = $2, updated_at = NOW()
		WHERE request_id = $3`

	tag, err := tx.Exec(ctx, query, shipping.Partner, shipping.TrackingNumber, requestID)
	if err != nil {
		return fmt.Errorf("set redemption shipping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("redemption not found: %s", requestID)
	}
	return nil
}

// MarkBurned flags the request's tokens as burned within a transaction.
func (r *RedemptionRepo) MarkBurned(ctx context.Context, tx pgx.Tx, requestID string) error {
	query := `UPDATE redemptions SET tokens_burned = TRUE, updated_at = NOW() WHERE request_id = $1`

	tag, err := tx.Exec(ctx, query, requestID)
	if err != nil {
		return fmt.Errorf("mark redemption burned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("redemption not found: %s", requestID)
	}
	return nil
}

// AppendEvent inserts an activity-log entry within a transaction.
func (r *RedemptionRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	return appendStatusEvent(ctx, tx, event)
}

// ListEvents fetches the request's activity log oldest first.
func (r *RedemptionRepo) ListEvents(ctx context.Context, requestID string) ([]domain.StatusEvent, error) {
	return listStatusEvents(ctx, r.pool, requestID)
}
