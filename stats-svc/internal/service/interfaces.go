package service

import (
	"context"
	"time"

	"restaurant-api/events"
	"restaurant-api/stats-svc/internal/domain"
	"restaurant-api/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordRating(ctx context.Context, dishID int, average float64, at time.Time) error
	RemoveDish(ctx context.Context, dishID int) error
	AdjustOrderStatus(ctx context.Context, status string, delta int64) error
}

// StatsReader is the read side served over HTTP.
type StatsReader interface {
	TopRated(ctx context.Context, limit int) ([]domain.DishScore, error)
	RatingsOn(ctx context.Context, day time.Time) (domain.DailyRatings, error)
	OrderCounts(ctx context.Context) (domain.OrderCounts, error)
}

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Handle(ctx context.Context, msg events.Message) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ StatsReader       = (*storage.Store)(nil)
	_ Reader            = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
