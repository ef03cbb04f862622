package service

import (
	"context"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/rating"
)

type DishRepository interface {
	CreateDish(ctx context.Context, dish *domain.Dish) error
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	UpdateDish(ctx context.Context, dish *domain.Dish) error
	DeleteDish(ctx context.Context, id int) error
}

type RatingRepository interface {
	SaveRating(ctx context.Context, dishID int, userID string, value int, at time.Time) (rating.Aggregate, error)
	ListDishRatings(ctx context.Context, dishID int) ([]domain.Rating, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, check func(from domain.OrderStatus) error) (domain.OrderStatus, error)
	DeleteOrder(ctx context.Context, id string) (domain.OrderStatus, error)
	OrderExists(ctx context.Context, id string) (bool, error)
}

type DishServiceInterface interface {
	Create(ctx context.Context, dish *domain.Dish) error
	List(ctx context.Context) ([]domain.Dish, error)
	Get(ctx context.Context, id int) (*domain.Dish, error)
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id int) error
}

type RatingServiceInterface interface {
	Submit(ctx context.Context, dishID int, userID string, value int) (*domain.RatingSummary, error)
	List(ctx context.Context, dishID int) ([]domain.Rating, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, order *domain.Order) (string, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	QRCode(ctx context.Context, id string) ([]byte, error)
}
