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

// WalletRepo implements ports.WalletRepository. Notes, alerts and login
// history live in side tables and are loaded on the single-wallet view only.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `address, owner_name, owner_email, balance_grams, balance_usdt, status,
	recovery_setup, biometric_bound, mpc_shares_total, mpc_shares_active, created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.Address, &w.OwnerName, &w.OwnerEmail, &w.BalanceGrams, &w.BalanceUSDT, &w.Status,
		&w.Security.RecoverySetup, &w.Security.BiometricBound,
		&w.Security.MPCSharesTotal, &w.Security.MPCSharesActive,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetByAddress fetches a wallet with its notes, alerts and login history.
func (r *WalletRepo) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE address = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by address: %w", err)
	}

	if w.AdminNotes, err = r.listNotes(ctx, address); err != nil {
		return nil, err
	}
	if w.Alerts, err = r.listAlerts(ctx, address); err != nil {
		return nil, err
	}
	if w.LoginHistory, err = r.listLogins(ctx, address); err != nil {
		return nil, err
	}
	return w, nil
}

// List fetches wallets with filtering and pagination.
func (r *WalletRepo) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(address ILIKE $%d OR owner_name ILIKE $%d OR owner_email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" && params.Status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM wallets` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wallets: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := `SELECT ` + walletColumns + ` FROM wallets` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, *w)
	}
	return wallets, total, rows.Err()
}

// UpdateStatus sets the wallet's admin-facing status.
func (r *WalletRepo) UpdateStatus(ctx context.Context, address string, status domain.WalletStatus) error {
	query := `UPDATE wallets SET status = $1, updated_at = NOW() WHERE address = $2`

	tag, err := r.pool.Exec(ctx, query, status, address)
	if err != nil {
		return fmt.Errorf("update wallet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", address)
	}
	return nil
}

// ResetSecurity clears the wallet's recovery setup, biometric binding and
// active MPC shares.
func (r *WalletRepo) ResetSecurity(ctx context.Context, address string) error {
	query := `UPDATE wallets
		SET recovery_setup = FALSE, biometric_bound = FALSE, mpc_shares_active = 0, updated_at = NOW()
		WHERE address = $1`

	tag, err := r.pool.Exec(ctx, query, address)
	if err != nil {
		return fmt.Errorf("reset wallet security: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", address)
	}
	return nil
}

// AddNote inserts an admin note.
func (r *WalletRepo) AddNote(ctx context.Context, address string, note *domain.WalletNote) error {
	query := `INSERT INTO wallet_notes (id, wallet_address, author, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, note.ID, address, note.Author, note.Text, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet note: %w", err)
	}
	return nil
}

// AddAlert inserts a wallet alert.
func (r *WalletRepo) AddAlert(ctx context.Context, address string, alert *domain.WalletAlert) error {
	query := `INSERT INTO wallet_alerts (id, wallet_address, severity, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, alert.ID, address, alert.Severity, alert.Message, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet alert: %w", err)
	}
	return nil
}

func (r *WalletRepo) listNotes(ctx context.Context, address string) ([]domain.WalletNote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, author, text, created_at FROM wallet_notes WHERE wallet_address = $1 ORDER BY created_at DESC`,
		address)
	if err != nil {
		return nil, fmt.Errorf("list wallet notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.WalletNote
	for rows.Next() {
		var n domain.WalletNote
		if err := rows.Scan(&n.ID, &n.Author, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *WalletRepo) listAlerts(ctx context.Context, address string) ([]domain.WalletAlert, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, severity, message, created_at FROM wallet_alerts WHERE wallet_address = $1 ORDER BY created_at DESC`,
		address)
	if err != nil {
		return nil, fmt.Errorf("list wallet alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.WalletAlert
	for rows.Next() {
		var a domain.WalletAlert
		if err := rows.Scan(&a.ID, &a.Severity, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *WalletRepo) listLogins(ctx context.Context, address string) ([]domain.LoginRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT timestamp, ip, device, success FROM wallet_logins WHERE wallet_address = $1 ORDER BY timestamp DESC LIMIT 20`,
		address)
	if err != nil {
		return nil, fmt.Errorf("list wallet logins: %w", err)
	}
	defer rows.Close()

	var logins []domain.LoginRecord
	for rows.Next() {
		var l domain.LoginRecord
		if err := rows.Scan(&l.Timestamp, &l.IP, &l.Device, &l.Success); err != nil {
			return nil, fmt.Errorf("scan wallet login: %w", err)
		}
		logins = append(logins, l)
	}
	return logins, rows.Err()
}
