package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/rating"
)

// SaveRating records a user's rating and folds it into the dish aggregate in
// one transaction. The dish row is locked first so concurrent raters of the
// same dish apply their read-modify-write one after another.
func (r *PostgresRepository) SaveRating(ctx context.Context, dishID int, userID string, value int, at time.Time) (rating.Aggregate, error) {
	var agg rating.Aggregate
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"SELECT average_rating, total_ratings FROM dishes WHERE id = $1 FOR UPDATE", dishID,
		).Scan(&agg.Average, &agg.Count)
		if err != nil {
			return fmt.Errorf("lock dish: %w", notFound(err, "dish %d", dishID))
		}

		var ratingID, previous int
		err = tx.QueryRowContext(ctx,
			"SELECT id, rating FROM ratings WHERE dish_id = $1 AND user_id = $2", dishID, userID,
		).Scan(&ratingID, &previous)
		switch {
		case err == nil:
			agg = agg.Replace(previous, value)
			if _, err := tx.ExecContext(ctx,
				"UPDATE ratings SET rating = $1, rated_at = $2 WHERE id = $3", value, at, ratingID); err != nil {
				return fmt.Errorf("update rating %d: %w", ratingID, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			agg = agg.Add(value)
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO ratings (dish_id, user_id, rating, rated_at) VALUES ($1, $2, $3, $4)",
				dishID, userID, value, at); err != nil {
				return fmt.Errorf("insert rating: %w", classify(err))
			}
		default:
			return fmt.Errorf("find rating: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE dishes SET average_rating = $1, total_ratings = $2 WHERE id = $3",
			agg.Average, agg.Count, dishID); err != nil {
			return fmt.Errorf("update dish aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return rating.Aggregate{}, err
	}
	return agg, nil
}

func (r *PostgresRepository) ListDishRatings(ctx context.Context, dishID int) ([]domain.Rating, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM dishes WHERE id = $1)", dishID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check dish: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("dish %d: %w", dishID, domain.ErrNotFound)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, dish_id, user_id, rating, rated_at
		FROM ratings
		WHERE dish_id = $1
		ORDER BY rated_at DESC, id DESC`, dishID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.DishID, &rt.UserID, &rt.Rating, &rt.Timestamp); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}
