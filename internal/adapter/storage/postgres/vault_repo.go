package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// VaultRepo implements ports.VaultRepository.
type VaultRepo struct {
	pool Pool
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(pool Pool) *VaultRepo {
	return &VaultRepo{pool: pool}
}

const vaultColumns = `id, name, type, location, partner, gold_holding_grams, threshold_grams,
	last_sync, status, auto_sync, sync_frequency, created_at, updated_at`

func scanVault(row pgx.Row) (*domain.Vault, error) {
	v := &domain.Vault{}
	err := row.Scan(
		&v.ID, &v.Name, &v.Type, &v.Location, &v.Partner, &v.GoldHoldingGrams,
		&v.ThresholdGrams, &v.LastSync, &v.Status, &v.AutoSync, &v.SyncFrequency,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Create inserts a new vault.
func (r *VaultRepo) Create(ctx context.Context, v *domain.Vault) error {
	query := `INSERT INTO vaults (` + vaultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams, v.ThresholdGrams,
		v.LastSync, v.Status, v.AutoSync, v.SyncFrequency, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vault: %w", err)
	}
	return nil
}

// GetByID fetches a vault by its VLT- identifier.
func (r *VaultRepo) GetByID(ctx context.Context, id string) (*domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE id = $1`

	v, err := scanVault(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vault by id: %w", err)
	}
	return v, nil
}

// GetByName fetches a vault by its display name, used when redemptions
// reference vaults by location name.
func (r *VaultRepo) GetByName(ctx context.Context, name string) (*domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE name = $1`

	v, err := scanVault(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vault by name: %w", err)
	}
	return v, nil
}

// List fetches vaults matching an optional search and status filter.
func (r *VaultRepo) List(ctx context.Context, search, status string) ([]domain.Vault, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(id ILIKE $%d OR name ILIKE $%d OR location ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status != "" && status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
	}

	query := `SELECT ` + vaultColumns + ` FROM vaults`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}
	defer rows.Close()

	var vaults []domain.Vault
	for rows.Next() {
		v, err := scanVault(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vault: %w", err)
		}
		vaults = append(vaults, *v)
	}
	return vaults, rows.Err()
}

// Update rewrites a vault record.
func (r *VaultRepo) Update(ctx context.Context, v *domain.Vault) error {
	query := `UPDATE vaults
		SET name=$1, type=$2, location=$3, partner=$4, gold_holding_grams=$5, threshold_grams=$6,
			last_sync=$7, status=$8, auto_sync=$9, sync_frequency=$10, updated_at=NOW()
		WHERE id=$11`

	tag, err := r.pool.Exec(ctx, query,
		v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams, v.ThresholdGrams,
		v.LastSync, v.Status, v.AutoSync, v.SyncFrequency, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vault: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vault not found: %s", v.ID)
	}
	return nil
}
