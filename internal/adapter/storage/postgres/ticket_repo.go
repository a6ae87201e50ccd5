package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TicketRepo implements ports.TicketRepository.
type TicketRepo struct {
	pool Pool
}

// NewTicketRepo creates a new TicketRepo.
func NewTicketRepo(pool Pool) *TicketRepo {
	return &TicketRepo{pool: pool}
}

const ticketColumns = `id, subject, requester_name, requester_email, priority, status, created_at, updated_at`

// GetByID fetches a ticket by its TKT- identifier.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1`

	t := &domain.SupportTicket{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Subject, &t.RequesterName, &t.RequesterEmail, &t.Priority, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket by id: %w", err)
	}
	return t, nil
}

// List fetches tickets matching an optional search and status filter,
// high priority first.
func (r *TicketRepo) List(ctx context.Context, search, status string) ([]domain.SupportTicket, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(id ILIKE $%d OR subject ILIKE $%d OR requester_email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status != "" && status != domain.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
	}

	query := `SELECT ` + ticketColumns + ` FROM support_tickets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.SupportTicket
	for rows.Next() {
		var t domain.SupportTicket
		if err := rows.Scan(
			&t.ID, &t.Subject, &t.RequesterName, &t.RequesterEmail, &t.Priority, &t.Status,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// UpdateStatus sets a ticket's status.
func (r *TicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	query := `UPDATE support_tickets SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket not found: %s", id)
	}
	return nil
}
