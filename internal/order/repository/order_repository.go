package repository

import (
	"context"
	"database/sql"
	"fmt"

	"partstrack/internal/domain"
	"partstrack/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, customerName, partNumber, technician, store,
		       status, cancellationReason, createdAt, updatedAt
		FROM PartOrders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.PartNumber, &order.Technician,
		&order.Store, &order.Status, &order.CancellationReason,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

// ListByStatus returns the orders visible under a status filter. An empty
// filter means every order.
func (r *MySQLOrderRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	query := `
		SELECT id, customerName, partNumber, technician, store,
		       status, cancellationReason, createdAt, updatedAt
		FROM PartOrders
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY createdAt DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.PartNumber, &order.Technician,
			&order.Store, &order.Status, &order.CancellationReason,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	query := `UPDATE PartOrders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// Cancel moves the order to the cancelled status and records the reason in
// the same statement, so the two can never disagree.
func (r *MySQLOrderRepository) Cancel(ctx context.Context, id uint, reason string) error {
	query := `UPDATE PartOrders SET status = ?, cancellationReason = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(domain.StatusCancelled), reason, id)
	if err != nil {
		return fmt.Errorf("cancelling order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	query := `DELETE FROM PartOrders WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}
