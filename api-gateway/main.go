package main

import (
	"log"
	"net/http"
	"time"

	"restaurant-api/api-gateway/internal/gateway"
	"restaurant-api/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	gw := gateway.NewGateway(gateway.Config{
		RestaurantSvcURL: cfg.RestaurantSvcURL,
		StatsSvcURL:      cfg.StatsSvcURL,
	}, &http.Client{Timeout: 30 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(gw.SetupRoutes())

	log.Printf("API Gateway starting on port %s", cfg.GatewayPort)
	log.Fatal(http.ListenAndServe(":"+cfg.GatewayPort, handler))
}
