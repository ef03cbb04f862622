// Package events carries the domain events emitted by restaurant-svc after a
// successful commit and consumed by stats-svc.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeDishRated          = "dish_rated"
	TypeDishDeleted        = "dish_deleted"
	TypeOrderCreated       = "order_created"
	TypeOrderStatusChanged = "order_status_changed"
	TypeOrderDeleted       = "order_deleted"
)

type Message struct {
	Type           string    `json:"type"`
	DishID         int       `json:"dish_id,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	Rating         int       `json:"rating,omitempty"`
	AverageRating  float64   `json:"average_rating,omitempty"`
	TotalRatings   int       `json:"total_ratings,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Items          int       `json:"items,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Key partitions dish events by dish and order events by order.
func (m Message) Key() string {
	if m.OrderID != "" {
		return m.OrderID
	}
	return strconv.Itoa(m.DishID)
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", msg.Type, err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key()),
		Value: payload,
	})
}

func Decode(value []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return Message{}, fmt.Errorf("decode event: %w", err)
	}
	return msg, nil
}

var _ Publisher = (*KafkaPublisher)(nil)
