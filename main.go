package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hanzala183/goSwim/handlers"
	"github.com/hanzala183/goSwim/metrics"
	"github.com/hanzala183/goSwim/middleware"
	"github.com/hanzala183/goSwim/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	// Operator-owned record store
	poolStore, err := services.NewPoolStore(postgresDSN())
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer poolStore.Close()

	// Redis holds the mock telemetry state
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("REDIS_ADDR environment variable is not set")
	}
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB value: %v", err)
		}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   redisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Merge engine
	overpassService := services.NewOverpassService(os.Getenv("OVERPASS_URL"))
	matcherService := services.NewMatcherService(poolStore)
	rankerService := services.NewRankerService(poolStore)

	telemetryService := services.NewTelemetryService(redisClient)
	if err := telemetryService.SeedBaselines(context.Background()); err != nil {
		log.Fatalf("Failed to seed telemetry baselines: %v", err)
	}
	telemetryService.StartDriftLoop(context.Background(), 30*time.Second)

	poolHandler := handlers.NewPoolHandler(overpassService, matcherService, rankerService, poolStore)
	telemetryHandler := handlers.NewTelemetryHandler(telemetryService)

	r := mux.NewRouter()

	// CORS middleware
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	r.Use(middleware.CORSMiddleware(strings.Split(corsOrigin, ",")))
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.RequestLogMiddleware())

	// Pool routes
	poolRouter := r.PathPrefix("/api/pools").Subrouter()
	poolRouter.HandleFunc("/nearby", poolHandler.GetNearbyPools).Methods("GET", "OPTIONS")
	poolRouter.HandleFunc("/search", poolHandler.SearchPools).Methods("GET", "OPTIONS")
	poolRouter.HandleFunc("/all", poolHandler.GetAllPools).Methods("GET", "OPTIONS")
	poolRouter.HandleFunc("/{id:[0-9]+}", poolHandler.GetPoolByID).Methods("GET", "OPTIONS")

	// Live telemetry
	r.HandleFunc("/api/pool-data/{id}", telemetryHandler.GetPoolData).Methods("GET", "OPTIONS")

	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func postgresDSN() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Fatal("DB_HOST environment variable is not set")
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		log.Fatal("DB_NAME environment variable is not set")
	}
	user := os.Getenv("DB_USER")
	if user == "" {
		log.Fatal("DB_USER environment variable is not set")
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, os.Getenv("DB_PASSWORD"), name)
}
