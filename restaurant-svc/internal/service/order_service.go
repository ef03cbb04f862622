package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"restaurant-api/events"
	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/statemachine"
)

type OrderService struct {
	repo      OrderRepository
	qr        QRGenerator
	publisher events.Publisher
}

func NewOrderService(repo OrderRepository, qr QRGenerator, publisher events.Publisher) *OrderService {
	return &OrderService{repo: repo, qr: qr, publisher: publisher}
}

func validateOrder(order *domain.Order) error {
	switch {
	case strings.TrimSpace(order.ID) == "":
		return fmt.Errorf("order id is required: %w", domain.ErrInvalidArgument)
	case strings.TrimSpace(order.UserID) == "":
		return fmt.Errorf("userId is required: %w", domain.ErrInvalidArgument)
	case strings.TrimSpace(order.CustomerName) == "":
		return fmt.Errorf("customer_name is required: %w", domain.ErrInvalidArgument)
	case order.Total < 0:
		return fmt.Errorf("total must not be negative: %w", domain.ErrInvalidArgument)
	case len(order.Items) == 0:
		return fmt.Errorf("order needs at least one item: %w", domain.ErrInvalidArgument)
	}
	for _, item := range order.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("item name is required: %w", domain.ErrInvalidArgument)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %s: quantity must be positive: %w", item.Name, domain.ErrInvalidArgument)
		}
	}
	return nil
}

// Create persists the order with all of its items and returns its id. An
// empty status means pending and a zero timestamp means now.
func (s *OrderService) Create(ctx context.Context, order *domain.Order) (string, error) {
	if err := validateOrder(order); err != nil {
		return "", err
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	} else {
		status, err := statemachine.Parse(string(order.Status))
		if err != nil {
			return "", err
		}
		if !statemachine.IsInitial(status) {
			return "", fmt.Errorf("order cannot start as %s: %w", status, domain.ErrInvalidArgument)
		}
		order.Status = status
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now().UTC()
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return "", err
	}
	log.Printf("order %s created with %d items", order.ID, len(order.Items))

	publish(ctx, s.publisher, events.Message{
		Type:      events.TypeOrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Items:     len(order.Items),
		Timestamp: order.Timestamp,
	})
	return order.ID, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

// SetStatus moves the order to status if the transition table allows it. The
// check runs against the locked current status.
func (s *OrderService) SetStatus(ctx context.Context, id, raw string) error {
	status, err := statemachine.Parse(raw)
	if err != nil {
		return err
	}

	previous, err := s.repo.UpdateOrderStatus(ctx, id, status, func(from domain.OrderStatus) error {
		return statemachine.CanTransition(from, status)
	})
	if err != nil {
		return err
	}
	if previous == status {
		return nil
	}

	log.Printf("order %s moved from %s to %s", id, previous, status)
	publish(ctx, s.publisher, events.Message{
		Type:           events.TypeOrderStatusChanged,
		OrderID:        id,
		Status:         string(status),
		PreviousStatus: string(previous),
	})
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	status, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("order %s deleted", id)
	publish(ctx, s.publisher, events.Message{Type: events.TypeOrderDeleted, OrderID: id, Status: string(status)})
	return nil
}

// QRCode renders a PNG QR code linking to the order. The order must exist.
func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	exists, err := s.repo.OrderExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr code generation is not configured")
	}

	png, err := s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for order %s: %w", id, err)
	}
	return png, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
