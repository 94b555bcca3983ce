package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/fieldplan/backend/internal/config"
	"github.com/pageza/fieldplan/backend/internal/planner"
	"github.com/pageza/fieldplan/backend/internal/repository"
	"github.com/pageza/fieldplan/backend/internal/services"
	"github.com/pageza/fieldplan/backend/pkg/database"
)

// cmd/planner runs a solve outside the HTTP surface: a single one-shot
// solve for a tenant, or a daemon that re-solves on a fixed interval until
// interrupted.
func main() {
	var (
		tenantFlag = flag.String("tenant", "", "tenant ID to solve for (required)")
		daemon     = flag.Bool("daemon", false, "keep re-solving on an interval instead of exiting after one solve")
		interval   = flag.Duration("interval", 5*time.Minute, "re-solve interval when -daemon is set")
	)
	flag.Parse()

	if *tenantFlag == "" {
		log.Fatal("-tenant is required")
	}
	tenantID, err := uuid.Parse(*tenantFlag)
	if err != nil {
		log.Fatalf("invalid -tenant: %v", err)
	}

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

	if !*daemon {
		runOnce(context.Background(), orchestrator, tenantID, logger)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Println("Shutting down planner daemon...")
		cancel()
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	runOnce(ctx, orchestrator, tenantID, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Println("Planner daemon exited")
			return
		case <-ticker.C:
			runOnce(ctx, orchestrator, tenantID, logger)
		}
	}
}

func runOnce(ctx context.Context, orchestrator *services.PlannerOrchestrator, tenantID uuid.UUID, logger *log.Logger) {
	result, err := orchestrator.ComputePlan(ctx, tenantID)
	if err != nil {
		logger.Printf("solve failed: tenant_id=%s error=%v", tenantID, err)
		return
	}
	logger.Printf("solve complete: tenant_id=%s status=%s solve_time=%.2fs jobs=%d",
		tenantID, result.Status, result.SolveTime, len(result.Jobs))
}
