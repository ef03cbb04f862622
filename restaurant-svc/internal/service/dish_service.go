package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"restaurant-api/events"
	"restaurant-api/restaurant-svc/internal/domain"
)

type DishService struct {
	repo      DishRepository
	publisher events.Publisher
}

func NewDishService(repo DishRepository, publisher events.Publisher) *DishService {
	return &DishService{repo: repo, publisher: publisher}
}

func validateDish(dish *domain.Dish) error {
	switch {
	case dish.ID <= 0:
		return fmt.Errorf("dish id must be positive: %w", domain.ErrInvalidArgument)
	case strings.TrimSpace(dish.Name) == "":
		return fmt.Errorf("dish name is required: %w", domain.ErrInvalidArgument)
	case dish.Price < 0:
		return fmt.Errorf("dish price must not be negative: %w", domain.ErrInvalidArgument)
	}
	return nil
}

// Create stores a new dish. Whatever aggregate the caller sent is discarded;
// a dish always starts unrated.
func (s *DishService) Create(ctx context.Context, dish *domain.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}
	dish.AverageRating = 0
	dish.TotalRatings = 0
	return s.repo.CreateDish(ctx, dish)
}

func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *DishService) Get(ctx context.Context, id int) (*domain.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *DishService) Update(ctx context.Context, dish *domain.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}
	return s.repo.UpdateDish(ctx, dish)
}

func (s *DishService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}
	log.Printf("dish %d deleted", id)
	publish(ctx, s.publisher, events.Message{Type: events.TypeDishDeleted, DishID: id})
	return nil
}

var _ DishServiceInterface = (*DishService)(nil)
