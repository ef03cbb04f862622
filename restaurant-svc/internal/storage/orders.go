package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = "id, user_id, status, customer_name, total, placed_at"

// CreateOrder stages the header and every item in one transaction and commits
// once. A duplicate id surfaces as domain.ErrAlreadyExists and leaves the
// existing order untouched.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, user_id, status, customer_name, total, placed_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, order.UserID, order.Status, order.CustomerName, order.Total, order.Timestamp,
		); err != nil {
			return fmt.Errorf("insert order %s: %w", order.ID, classify(err))
		}

		for _, item := range order.Items {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO items (order_id, name, quantity) VALUES ($1, $2, $3)",
				order.ID, item.Name, item.Quantity,
			); err != nil {
				return fmt.Errorf("insert order item %s: %w", item.Name, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id).
		Scan(&order.ID, &order.UserID, &order.Status, &order.CustomerName, &order.Total, &order.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", notFound(err, "order %s", id))
	}

	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.queryOrders(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY placed_at DESC, id")
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY placed_at DESC, id", userID)
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CustomerName, &order.Total, &order.Timestamp); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items of all given orders with one query and groups
// them by order id.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []domain.Item{}
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT order_id, name, quantity FROM items WHERE order_id = ANY($1) ORDER BY id", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item domain.Item
		if err := rows.Scan(&orderID, &item.Name, &item.Quantity); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

// UpdateOrderStatus locks the order, lets check veto the move away from the
// current status and writes the new one. It returns the previous status.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, check func(from domain.OrderStatus) error) (domain.OrderStatus, error) {
	var previous domain.OrderStatus
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&previous)
		if err != nil {
			return fmt.Errorf("lock order: %w", notFound(err, "order %s", id))
		}
		if check != nil {
			if err := check(previous); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// DeleteOrder removes the items and then the header in one transaction and
// returns the status the order had.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, id string) (domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE order_id = $1", id); err != nil {
			return fmt.Errorf("delete items of order %s: %w", id, err)
		}
		err := tx.QueryRowContext(ctx, "DELETE FROM orders WHERE id = $1 RETURNING status", id).Scan(&status)
		if err != nil {
			return fmt.Errorf("delete order: %w", notFound(err, "order %s", id))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *PostgresRepository) OrderExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order: %w", err)
	}
	return exists, nil
}
