package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdminRepo implements ports.AdminRepository.
type AdminRepo struct {
	pool Pool
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(pool Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

const adminColumns = `id, username, password_hash, display_name, role, status, created_at, updated_at`

// Create inserts a new admin account.
func (r *AdminRepo) Create(ctx context.Context, a *domain.AdminUser) error {
	query := `INSERT INTO admins (` + adminColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.DisplayName, a.Role, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func scanAdmin(row pgx.Row) (*domain.AdminUser, error) {
	a := &domain.AdminUser{}
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.DisplayName, &a.Role, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID fetches an admin by UUID.
func (r *AdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return a, nil
}

// GetByUsername fetches an admin by username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return a, nil
}
