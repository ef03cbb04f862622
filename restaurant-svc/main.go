package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"restaurant-api/config"
	"restaurant-api/events"
	httpapi "restaurant-api/restaurant-svc/internal/api/http"
	"restaurant-api/restaurant-svc/internal/service"
	"restaurant-api/restaurant-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

// newPublisher returns nil when no broker is configured, which turns event
// publishing off.
func newPublisher(cfg config.Config) (events.Publisher, *kafka.Writer) {
	if cfg.KafkaBroker == "" {
		return nil, nil
	}
	writer := config.NewKafkaWriter(cfg)
	return events.NewKafkaPublisher(writer), writer
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}

	publisher, writer := newPublisher(cfg)
	if writer != nil {
		defer writer.Close()
		log.Printf("Publishing events to %s on %s", cfg.EventsTopic, cfg.KafkaBroker)
	} else {
		log.Println("Warning: KAFKA_BROKER not set, events are not published")
	}

	handler := httpapi.NewHandler(
		service.NewDishService(repo, publisher),
		service.NewRatingService(repo, publisher),
		service.NewOrderService(repo, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}, publisher),
	)

	if err := httpapi.StartServer(ctx, ":"+cfg.Port, httpapi.NewRouter(handler)); err != nil {
		log.Fatal(err)
	}
}
