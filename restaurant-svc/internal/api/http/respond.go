package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/rating"
)

// dishResponse repeats the rounded average under "rating" for older clients.
type dishResponse struct {
	domain.Dish
	Rating float64 `json:"rating"`
}

func newDishResponse(dish domain.Dish) dishResponse {
	dish.AverageRating = rating.Aggregate{Average: dish.AverageRating, Count: dish.TotalRatings}.Rounded()
	return dishResponse{Dish: dish, Rating: dish.AverageRating}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Warning: failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps domain errors to status codes. resource names the entity in
// the 404 detail. Anything unclassified, persistence failures included, is a
// 400 carrying the cause.
func writeError(w http.ResponseWriter, err error, resource string) {
	status := http.StatusBadRequest
	detail := err.Error()

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		detail = resource + " not found"
	case errors.Is(err, domain.ErrInvalidArgument):
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	default:
		log.Printf("Error: %v", err)
	}

	writeJSON(w, status, map[string]string{"detail": detail})
}
