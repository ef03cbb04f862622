package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createDishRequest struct {
	ID          int     `json:"id" validate:"gt=0,lte=2147483647"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

// updateDishRequest ignores any id in the body; the path id is authoritative.
type updateDishRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

type rateRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	UserID string `json:"user_id" validate:"required"`
}

type itemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type createOrderRequest struct {
	ID           string        `json:"id" validate:"required"`
	UserID       string        `json:"userId" validate:"required"`
	Status       string        `json:"status"`
	CustomerName string        `json:"customer_name" validate:"required"`
	Total        float64       `json:"total" validate:"gte=0"`
	Timestamp    time.Time     `json:"timestamp"`
	Items        []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req createOrderRequest) order() *domain.Order {
	items := make([]domain.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.Item{Name: item.Name, Quantity: item.Quantity}
	}
	return &domain.Order{
		ID:           req.ID,
		UserID:       req.UserID,
		Status:       domain.OrderStatus(req.Status),
		CustomerName: req.CustomerName,
		Total:        req.Total,
		Timestamp:    req.Timestamp,
		Items:        items,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// decode reads a JSON body into dst and validates it. Both failures are
// reported as domain.ErrInvalidArgument.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %v: %w", err, domain.ErrInvalidArgument)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", describeValidation(err), domain.ErrInvalidArgument)
	}
	return nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s fails %s", fe.Namespace(), rule))
	}
	return strings.Join(problems, "; ")
}
