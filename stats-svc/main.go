package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"restaurant-api/config"
	httpapi "restaurant-api/stats-svc/internal/api/http"
	"restaurant-api/stats-svc/internal/service"
	"restaurant-api/stats-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg)
	defer reader.Close()

	store := storage.NewStore(rdb)
	consumer := service.NewConsumer(reader, store)
	go consumer.Start(ctx)

	router := httpapi.NewRouter(httpapi.NewHandler(store))
	if err := httpapi.StartServer(ctx, ":"+cfg.StatsPort, router); err != nil {
		log.Fatal(err)
	}
}
