package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"restaurant-api/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	topRatedKey    = "stats:dishes:rating"
	dailyKeyPrefix = "stats:ratings:daily:"
	orderStatusKey = "stats:orders:status"
	dailyKeyTTL    = 7 * 24 * time.Hour
	dayLayout      = "2006-01-02"
)

// Store is the Redis projection of restaurant events.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func DailyKey(day time.Time) string {
	return dailyKeyPrefix + day.UTC().Format(dayLayout)
}

// RecordRating stores the dish's latest average and counts one rating event
// on the day it happened.
func (s *Store) RecordRating(ctx context.Context, dishID int, average float64, at time.Time) error {
	member := strconv.Itoa(dishID)
	dailyKey := DailyKey(at)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, topRatedKey, redis.Z{Score: average, Member: member})
		pipe.ZIncrBy(ctx, dailyKey, 1, member)
		pipe.Expire(ctx, dailyKey, dailyKeyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record rating of dish %d: %w", dishID, err)
	}
	return nil
}

func (s *Store) RemoveDish(ctx context.Context, dishID int) error {
	if err := s.rdb.ZRem(ctx, topRatedKey, strconv.Itoa(dishID)).Err(); err != nil {
		return fmt.Errorf("remove dish %d: %w", dishID, err)
	}
	return nil
}

func (s *Store) AdjustOrderStatus(ctx context.Context, status string, delta int64) error {
	if err := s.rdb.HIncrBy(ctx, orderStatusKey, status, delta).Err(); err != nil {
		return fmt.Errorf("adjust %s orders: %w", status, err)
	}
	return nil
}

// TopRated returns up to limit dishes ordered by their latest average rating.
func (s *Store) TopRated(ctx context.Context, limit int) ([]domain.DishScore, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, topRatedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read top rated dishes: %w", err)
	}
	return toScores(result)
}

// RatingsOn returns the dishes rated on day, most rated first.
func (s *Store) RatingsOn(ctx context.Context, day time.Time) (domain.DailyRatings, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, DailyKey(day), 0, -1).Result()
	if err != nil {
		return domain.DailyRatings{}, fmt.Errorf("read daily ratings: %w", err)
	}
	scores, err := toScores(result)
	if err != nil {
		return domain.DailyRatings{}, err
	}
	return domain.DailyRatings{Date: day.UTC().Format(dayLayout), Dishes: scores}, nil
}

func (s *Store) OrderCounts(ctx context.Context) (domain.OrderCounts, error) {
	raw, err := s.rdb.HGetAll(ctx, orderStatusKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read order counts: %w", err)
	}
	counts := make(domain.OrderCounts, len(raw))
	for status, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("order count for %s: %w", status, err)
		}
		counts[status] = n
	}
	return counts, nil
}

func toScores(result []redis.Z) ([]domain.DishScore, error) {
	scores := make([]domain.DishScore, 0, len(result))
	for _, z := range result {
		member, _ := z.Member.(string)
		dishID, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("dish member %q: %w", member, err)
		}
		scores = append(scores, domain.DishScore{DishID: dishID, Score: z.Score})
	}
	return scores, nil
}
