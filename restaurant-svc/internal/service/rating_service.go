package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-api/events"
	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/rating"
)

type RatingService struct {
	repo      RatingRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewRatingService(repo RatingRepository, publisher events.Publisher) *RatingService {
	return &RatingService{
		repo:      repo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit records value as userID's rating of the dish, replacing any earlier
// rating by the same user, and returns the dish aggregate rounded for display.
// Out-of-range values are rejected before the store is touched.
func (s *RatingService) Submit(ctx context.Context, dishID int, userID string, value int) (*domain.RatingSummary, error) {
	if !rating.Valid(value) {
		return nil, fmt.Errorf("rating %d outside [%d, %d]: %w", value, rating.MinValue, rating.MaxValue, domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user_id is required: %w", domain.ErrInvalidArgument)
	}

	at := s.now()
	agg, err := s.repo.SaveRating(ctx, dishID, userID, value, at)
	if err != nil {
		return nil, err
	}

	summary := &domain.RatingSummary{AverageRating: agg.Rounded(), TotalRatings: agg.Count}
	publish(ctx, s.publisher, events.Message{
		Type:          events.TypeDishRated,
		DishID:        dishID,
		UserID:        userID,
		Rating:        value,
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
		Timestamp:     at,
	})
	return summary, nil
}

func (s *RatingService) List(ctx context.Context, dishID int) ([]domain.Rating, error) {
	return s.repo.ListDishRatings(ctx, dishID)
}

var _ RatingServiceInterface = (*RatingService)(nil)
