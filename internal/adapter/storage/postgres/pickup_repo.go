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

// PickupOrderRepo implements ports.PickupOrderRepository.
type PickupOrderRepo struct {
	pool Pool
}

// NewPickupOrderRepo creates a new PickupOrderRepo.
func NewPickupOrderRepo(pool Pool) *PickupOrderRepo {
	return &PickupOrderRepo{pool: pool}
}

const pickupOrderColumns = `id, "user", email, kyc_status, wallet_id, vendor, vendor_id,
	gold_weight_grams, token_burn_hash, vault, status, pickup_date, time_slot, pickup_code,
	requested_on, updated_at`

// GetByID fetches a pickup order by its RP- identifier.
func (r *PickupOrderRepo) GetByID(ctx context.Context, id string) (*domain.PickupOrder, error) {
	query := `SELECT ` + pickupOrderColumns + ` FROM pickup_orders WHERE id = $1`

	o := &domain.PickupOrder{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.User, &o.Email, &o.KYCStatus, &o.WalletID, &o.Vendor, &o.VendorID,
		&o.GoldWeightGrams, &o.TokenBurnHash, &o.Vault, &o.Status, &o.PickupDate,
		&o.TimeSlot, &o.PickupCode, &o.RequestedOn, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pickup order by id: %w", err)
	}
	return o, nil
}

// List fetches pickup orders with filtering and pagination.
func (r *PickupOrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.PickupOrder, int64, error) {
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
	if params.Vendor != "" && params.Vendor != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("vendor = $%d", argIdx))
		args = append(args, params.Vendor)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM pickup_orders` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pickup orders: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + pickupOrderColumns + ` FROM pickup_orders` + where +
		fmt.Sprintf(" ORDER BY requested_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pickup orders: %w", err)
	}
	defer rows.Close()

	return scanPickupOrders(rows, total)
}

// ListByVendor fetches a vendor's pickup orders, optionally only the open
// (Scheduled) ones for the vendor detail panel.
func (r *PickupOrderRepo) ListByVendor(ctx context.Context, vendorID string, openOnly bool) ([]domain.PickupOrder, error) {
	query := `SELECT ` + pickupOrderColumns + ` FROM pickup_orders WHERE vendor_id = $1`
	args := []any{vendorID}
	if openOnly {
		query += ` AND status = $2`
		args = append(args, domain.PickupStatusScheduled)
	}
	query += ` ORDER BY requested_on DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pickup orders by vendor: %w", err)
	}
	defer rows.Close()

	orders, _, err := scanPickupOrders(rows, 0)
	return orders, err
}

// UpdateStatus updates the order status within a database transaction.
func (r *PickupOrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error {
	query := `UPDATE pickup_orders SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update pickup order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pickup order not found: %s", id)
	}
	return nil
}

// AppendEvent inserts an activity-log entry within a transaction.
func (r *PickupOrderRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	return appendStatusEvent(ctx, tx, event)
}

// ListEvents fetches the order's activity log oldest first.
func (r *PickupOrderRepo) ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	return listStatusEvents(ctx, r.pool, orderID)
}

func scanPickupOrders(rows pgx.Rows, total int64) ([]domain.PickupOrder, int64, error) {
	var orders []domain.PickupOrder
	for rows.Next() {
		var o domain.PickupOrder
		if err := rows.Scan(
			&o.ID, &o.User, &o.Email, &o.KYCStatus, &o.WalletID, &o.Vendor, &o.VendorID,
			&o.GoldWeightGrams, &o.TokenBurnHash, &o.Vault, &o.Status, &o.PickupDate,
			&o.TimeSlot, &o.PickupCode, &o.RequestedOn, &o.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan pickup order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}
