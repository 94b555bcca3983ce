package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/fieldplan/backend/internal/config"
	"github.com/pageza/fieldplan/backend/internal/handlers"
	"github.com/pageza/fieldplan/backend/internal/planner"
	"github.com/pageza/fieldplan/backend/internal/repository"
	"github.com/pageza/fieldplan/backend/internal/services"
	"github.com/pageza/fieldplan/backend/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	conn, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepositories(conn)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = conn.RedisClient
	}
	cache := planner.NewWarmStartCache(cfg.PlannerWarmStartCacheSize, redisClient)
	plannerCfg := planner.ConfigFromAppConfig(cfg)

	orchestrator := services.NewPlannerOrchestrator(repos.Planner, cache, plannerCfg, logger, cfg.PlannerDebug)

	h := handlers.NewPlannerHandler(orchestrator, logger)

	router := mux.NewRouter()
	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Printf("Starting API server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exited")
}
