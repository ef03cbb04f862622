package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"
)

const dishColumns = "id, name, price, description, average_rating, total_ratings"

func scanDish(row interface{ Scan(...any) error }, dish *domain.Dish) error {
	return row.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Description, &dish.AverageRating, &dish.TotalRatings)
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	err := scanDish(r.DB.QueryRowContext(ctx, `
		INSERT INTO dishes (id, name, price, description, average_rating, total_ratings)
		VALUES ($1, $2, $3, $4, 0, 0)
		RETURNING `+dishColumns,
		dish.ID, dish.Name, dish.Price, dish.Description), dish)
	if err != nil {
		return fmt.Errorf("insert dish %d: %w", dish.ID, classify(err))
	}
	return nil
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+dishColumns+" FROM dishes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var dish domain.Dish
		if err := scanDish(rows, &dish); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	var dish domain.Dish
	err := scanDish(r.DB.QueryRowContext(ctx, "SELECT "+dishColumns+" FROM dishes WHERE id = $1", id), &dish)
	if err != nil {
		return nil, fmt.Errorf("get dish: %w", notFound(err, "dish %d", id))
	}
	return &dish, nil
}

// UpdateDish rewrites the editable fields only; the rating aggregate is owned
// by SaveRating.
func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	err := scanDish(r.DB.QueryRowContext(ctx, `
		UPDATE dishes
		SET name = $1, price = $2, description = $3
		WHERE id = $4
		RETURNING `+dishColumns,
		dish.Name, dish.Price, dish.Description, dish.ID), dish)
	if err != nil {
		return fmt.Errorf("update dish: %w", notFound(err, "dish %d", dish.ID))
	}
	return nil
}

// DeleteDish removes the dish together with the ratings it owns.
func (r *PostgresRepository) DeleteDish(ctx context.Context, id int) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM ratings WHERE dish_id = $1", id); err != nil {
			return fmt.Errorf("delete ratings of dish %d: %w", id, err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM dishes WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete dish %d: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete dish %d: %w", id, err)
		}
		if affected == 0 {
			return fmt.Errorf("dish %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}
