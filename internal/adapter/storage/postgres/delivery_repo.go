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

// DeliveryOrderRepo implements ports.DeliveryOrderRepository.
type DeliveryOrderRepo struct {
	pool Pool
}

// NewDeliveryOrderRepo creates a new DeliveryOrderRepo.
func NewDeliveryOrderRepo(pool Pool) *DeliveryOrderRepo {
	return &DeliveryOrderRepo{pool: pool}
}

const deliveryOrderColumns = `id, "user", email, kyc_status, wallet_id, gold_weight_grams,
	token_burn_hash, vault, status, delivery_address, landmark, postal_code, contact_number,
	delivery_mode, delivery_partner, awb_number, requested_on, updated_at`

// GetByID fetches a delivery order by its RD- identifier.
func (r *DeliveryOrderRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryOrder, error) {
	query := `SELECT ` + deliveryOrderColumns + ` FROM delivery_orders WHERE id = $1`

	o := &domain.DeliveryOrder{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.User, &o.Email, &o.KYCStatus, &o.WalletID, &o.GoldWeightGrams,
		&o.TokenBurnHash, &o.Vault, &o.Status, &o.DeliveryAddress, &o.Landmark,
		&o.PostalCode, &o.ContactNumber, &o.DeliveryMode, &o.DeliveryPartner,
		&o.AWBNumber, &o.RequestedOn, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery order by id: %w", err)
	}
	return o, nil
}

// List fetches delivery orders with filtering and pagination.
func (r *DeliveryOrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.DeliveryOrder, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(id ILIKE $%d OR "user" ILIKE $%d OR email ILIKE $%d)`, argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" && params.Status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Vault != "" && params.Vault != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("vault = $%d", argIdx))
		args = append(args, params.Vault)
		argIdx++
	}
	if params.Partner != "" && params.Partner != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("delivery_partner = $%d", argIdx))
		args = append(args, params.Partner)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM delivery_orders` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count delivery orders: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + deliveryOrderColumns + ` FROM delivery_orders` + where +
		fmt.Sprintf(" ORDER BY requested_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list delivery orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.DeliveryOrder
	for rows.Next() {
		var o domain.DeliveryOrder
		if err := rows.Scan(
			&o.ID, &o.User, &o.Email, &o.KYCStatus, &o.WalletID, &o.GoldWeightGrams,
			&o.TokenBurnHash, &o.Vault, &o.Status, &o.DeliveryAddress, &o.Landmark,
			&o.PostalCode, &o.ContactNumber, &o.DeliveryMode, &o.DeliveryPartner,
			&o.AWBNumber, &o.RequestedOn, &o.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan delivery order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// UpdateStatus updates the order status within a database transaction.
func (r *DeliveryOrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error {
	query := `UPDATE delivery_orders SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update delivery order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery order not found: %s", id)
	}
	return nil
}

// SetShipping records the courier partner and AWB within a transaction.
func (r *DeliveryOrderRepo) SetShipping(ctx context.Context, tx pgx.Tx, id, partner, awb string) error {
	query := `UPDATE delivery_orders SET delivery_partner = $1, awb_number = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, partner, awb, id)
	if err != nil {
		return fmt.Errorf("set delivery shipping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery order not found: %s", id)
	}
	return nil
}

// AppendEvent inserts an activity-log entry within a transaction.
func (r *DeliveryOrderRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	return appendStatusEvent(ctx, tx, event)
}

// ListEvents fetches the order's activity log oldest first.
func (r *DeliveryOrderRepo) ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	return listStatusEvents(ctx, r.pool, orderID)
}

// pageBounds converts 1-based page / pageSize into LIMIT and OFFSET,
// clamping unset values to a sane default.
func pageBounds(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
