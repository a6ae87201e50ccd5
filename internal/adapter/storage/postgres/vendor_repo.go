package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// VendorRepo implements ports.VendorRepository. Weekly time slots are stored
// as jsonb; linked vaults as a text array.
type VendorRepo struct {
	pool Pool
}

// NewVendorRepo creates a new VendorRepo.
func NewVendorRepo(pool Pool) *VendorRepo {
	return &VendorRepo{pool: pool}
}

const vendorColumns = `id, name, location, address, city, zip, contact_person, phone, email,
	status, accepting_orders, time_slots, linked_vaults, delivery_type, notes, created_at, updated_at`

// Create inserts a new vendor.
func (r *VendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	slots, err := json.Marshal(v.TimeSlots)
	if err != nil {
		return fmt.Errorf("marshal time slots: %w", err)
	}

	query := `INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = r.pool.Exec(ctx, query,
		v.ID, v.Name, v.Location, v.Address, v.City, v.Zip, v.ContactPerson, v.Phone, v.Email,
		v.Status, v.AcceptingOrders, slots, v.LinkedVaults, v.DeliveryType, v.Notes,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	var slots []byte
	err := row.Scan(
		&v.ID, &v.Name, &v.Location, &v.Address, &v.City, &v.Zip, &v.ContactPerson,
		&v.Phone, &v.Email, &v.Status, &v.AcceptingOrders, &slots, &v.LinkedVaults,
		&v.DeliveryType, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		if err := json.Unmarshal(slots, &v.TimeSlots); err != nil {
			return nil, fmt.Errorf("unmarshal time slots: %w", err)
		}
	}
	return v, nil
}

// GetByID fetches a vendor by its VEN- identifier.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	v, err := scanVendor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor by id: %w", err)
	}
	return v, nil
}

// List fetches vendors with filtering and pagination.
func (r *VendorRepo) List(ctx context.Context, params ports.VendorListParams) ([]domain.Vendor, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(id ILIKE $%d OR name ILIKE $%d OR city ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" && params.Status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.City != "" && params.City != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argIdx))
		args = append(args, params.City)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM vendors` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + vendorColumns + ` FROM vendors` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, total, rows.Err()
}

// Update rewrites a vendor record.
func (r *VendorRepo) Update(ctx context.Context, v *domain.Vendor) error {
	slots, err := json.Marshal(v.TimeSlots)
	if err != nil {
		return fmt.Errorf("marshal time slots: %w", err)
	}

	query := `UPDATE vendors
		SET name=$1, location=$2, address=$3, city=$4, zip=$5, contact_person=$6, phone=$7, email=$8,
			status=$9, accepting_orders=$10, time_slots=$11, linked_vaults=$12, delivery_type=$13,
			notes=$14, updated_at=NOW()
		WHERE id=$15`

	tag, err := r.pool.Exec(ctx, query,
		v.Name, v.Location, v.Address, v.City, v.Zip, v.ContactPerson, v.Phone, v.Email,
		v.Status, v.AcceptingOrders, slots, v.LinkedVaults, v.DeliveryType, v.Notes, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vendor not found: %s", v.ID)
	}
	return nil
}
