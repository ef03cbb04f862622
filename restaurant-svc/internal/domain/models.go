package domain

import "time"

type Dish struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type Rating struct {
	ID        int       `json:"id"`
	DishID    int       `json:"dish_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// RatingSummary is the aggregate returned after a rating is recorded.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Status       OrderStatus `json:"status"`
	CustomerName string      `json:"customer_name"`
	Total        float64     `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
	Items        []Item      `json:"items"`
}

type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
