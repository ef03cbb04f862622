package service

import (
	"context"
	"log"

	"restaurant-api/events"
)

// publish emits msg after the change it describes has been committed. A
// failure cannot undo the commit, so it is only logged.
func publish(ctx context.Context, publisher events.Publisher, msg events.Message) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, msg); err != nil {
		log.Printf("Warning: failed to publish %s event (key %s): %v", msg.Type, msg.Key(), err)
	}
}
