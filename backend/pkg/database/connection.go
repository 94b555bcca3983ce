package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/fieldplan/backend/internal/config"
)

// Connection holds the Postgres and Redis connections shared by the
// repositories and the warm-start cache.
type Connection struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

// NewConnection creates new database and Redis connections.
func NewConnection(cfg *config.Config) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxConnections)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdle)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		if cfg.RedisDB != 0 {
			opts.DB = cfg.RedisDB
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		redisClient = redis.NewClient(opts)

		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to ping Redis: %w", err)
		}
	}

	return &Connection{
		DB:          db,
		RedisClient: redisClient,
	}, nil
}

// Close closes database and Redis connections.
func (c *Connection) Close() error {
	var err error

	if c.DB != nil {
		if dbErr := c.DB.Close(); dbErr != nil {
			err = fmt.Errorf("failed to close database: %w", dbErr)
		}
	}

	if c.RedisClient != nil {
		if redisErr := c.RedisClient.Close(); redisErr != nil {
			if err != nil {
				err = fmt.Errorf("%v; failed to close Redis: %w", err, redisErr)
			} else {
				err = fmt.Errorf("failed to close Redis: %w", redisErr)
			}
		}
	}

	return err
}

// HealthCheck performs a health check on the database and, when
// configured, Redis.
func (c *Connection) HealthCheck(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.RedisClient == nil {
		return nil
	}
	if _, err := c.RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}

	return nil
}

// GetStats returns connection pool statistics for both stores.
func (c *Connection) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	if c.DB != nil {
		dbStats := c.DB.Stats()
		stats["database"] = map[string]interface{}{
			"max_open_connections": dbStats.MaxOpenConnections,
			"open_connections":     dbStats.OpenConnections,
			"in_use":               dbStats.InUse,
			"idle":                 dbStats.Idle,
			"wait_count":           dbStats.WaitCount,
			"wait_duration":        dbStats.WaitDuration.String(),
			"max_idle_closed":      dbStats.MaxIdleClosed,
			"max_idle_time_closed": dbStats.MaxIdleTimeClosed,
			"max_lifetime_closed":  dbStats.MaxLifetimeClosed,
		}
	}

	if c.RedisClient != nil {
		poolStats := c.RedisClient.PoolStats()
		stats["redis"] = map[string]interface{}{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		}
	}

	return stats
}
