package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/example/shopfront-gateway/internal/api"
	"github.com/example/shopfront-gateway/internal/checkout"
	"github.com/example/shopfront-gateway/internal/infrastructure/cartstore"
	"github.com/example/shopfront-gateway/internal/infrastructure/kafka"
	"github.com/example/shopfront-gateway/internal/upstream"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	// Configuration from environment variables
	port := getEnv("PORT", "8080")
	upstreamURL := getEnv("UPSTREAM_API_URL", "http://localhost:3000/api")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	cartNamespace := getEnv("CART_NAMESPACE", cartstore.DefaultNamespace)
	kafkaBrokersStr := os.Getenv("KAFKA_BROKERS")
	kafkaTopic := getEnv("KAFKA_TOPIC", "shopfront-events")

	log.Println("[Gateway] ========================================")
	log.Println("[Gateway] Shopfront Gateway")
	log.Println("[Gateway] ========================================")
	log.Printf("[Gateway] Upstream API: %s", upstreamURL)
	log.Printf("[Gateway] Redis: %s", redisAddr)
	log.Printf("[Gateway] Cart namespace: %s", cartNamespace)

	// Cart store: Redis when reachable, memory-only otherwise. The failover
	// wrapper also covers outages that begin after startup.
	var store cartstore.Store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("[Gateway] Redis unreachable, carts are memory-only: %v", err)
		store = cartstore.NewMemoryStore()
	} else {
		log.Println("[Gateway] Connected to Redis")
		store = cartstore.NewFailoverStore(cartstore.NewRedisStore(redisClient, cartNamespace))
	}
	pingCancel()

	// Event producer is optional; without brokers the gateway still takes
	// orders, there are just no owner notifications.
	var publisher checkout.Publisher
	if kafkaBrokersStr != "" {
		brokers := strings.Split(kafkaBrokersStr, ",")
		producer := kafka.NewProducer(brokers, kafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[Gateway] Kafka: %v, topic %s", brokers, kafkaTopic)
	} else {
		log.Println("[Gateway] No KAFKA_BROKERS set, event publishing disabled")
	}

	client := upstream.NewClient(upstreamURL, nil)
	handlers := api.NewHandlers(client, store, publisher)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("[Gateway] Server started on :%s", port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[Gateway] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Gateway] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
