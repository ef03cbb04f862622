package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"restaurant-api/events"
)

type Consumer struct {
	Reader Reader
	Store  StoreInterface
}

func NewConsumer(reader Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads events until ctx is cancelled. Malformed messages and failed
// projections are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Stats Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		msg, err := events.Decode(message.Value)
		if err != nil {
			log.Printf("Error decoding message at offset %d: %v", message.Offset, err)
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			log.Printf("Error processing %s event (key %s): %v", msg.Type, msg.Key(), err)
		}
	}
}

// Handle applies one event to the projection. Unknown event types are ignored.
func (c *Consumer) Handle(ctx context.Context, msg events.Message) error {
	switch msg.Type {
	case events.TypeDishRated:
		at := msg.Timestamp
		if at.IsZero() {
			at = time.Now()
		}
		return c.Store.RecordRating(ctx, msg.DishID, msg.AverageRating, at)

	case events.TypeDishDeleted:
		return c.Store.RemoveDish(ctx, msg.DishID)

	case events.TypeOrderCreated:
		return c.Store.AdjustOrderStatus(ctx, statusOrPending(msg.Status), 1)

	case events.TypeOrderStatusChanged:
		if msg.PreviousStatus == "" || msg.Status == "" {
			return fmt.Errorf("status change of order %s without both statuses", msg.OrderID)
		}
		if err := c.Store.AdjustOrderStatus(ctx, msg.PreviousStatus, -1); err != nil {
			return err
		}
		return c.Store.AdjustOrderStatus(ctx, msg.Status, 1)

	case events.TypeOrderDeleted:
		return c.Store.AdjustOrderStatus(ctx, statusOrPending(msg.Status), -1)
	}
	return nil
}

func statusOrPending(status string) string {
	if status == "" {
		return "pending"
	}
	return status
}
