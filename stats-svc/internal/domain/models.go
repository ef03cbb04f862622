package domain

// DishScore is a dish with either its latest average rating or the number of
// ratings it received on a day, depending on the ranking it came from.
type DishScore struct {
	DishID int     `json:"dish_id"`
	Score  float64 `json:"score"`
}

type DailyRatings struct {
	Date   string      `json:"date"`
	Dishes []DishScore `json:"dishes"`
}

// OrderCounts maps an order status to the number of live orders in it.
type OrderCounts map[string]int64
