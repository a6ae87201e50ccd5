package postgres

import (
	"context"
	"fmt"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// All three fulfillment flows log into the same status_events table, keyed
// by the order/request ID. Rows are insert-only.

func appendStatusEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	query := `INSERT INTO status_events (id, order_id, status, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, event.ID, event.OrderID, event.Status, event.Note, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}

func listStatusEvents(ctx context.Context, pool Pool, orderID string) ([]domain.StatusEvent, error) {
	query := `SELECT id, order_id, status, note, occurred_at
		FROM status_events WHERE order_id = $1 ORDER BY occurred_at ASC`

	rows, err := pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}
	defer rows.Close()

	var events []domain.StatusEvent
	for rows.Next() {
		var e domain.StatusEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Note, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
