package database

import (
	"context"
	"fmt"
	"time"

	"PalmCare/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// LoadRedisConfig maps the application configuration onto the client settings.
func LoadRedisConfig(cfg *config.AppConfig) RedisConfig {
	return RedisConfig{
		URL:          cfg.RedisAddress,
		PoolSize:     cfg.RedisPoolSize,
		DialTimeout:  cfg.RedisDialTimeout,
		MinIdleConns: cfg.RedisMinIdle,
		ReadTimeout:  cfg.RedisReadTimeout,
		MaxRetries:   cfg.RedisMaxRetries,
	}
}

// InitializeRedis returns nil without error when Redis is not configured.
func InitializeRedis(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		log.Info().Msg("REDIS_URL not set, aggregate caching disabled")
		return nil, nil
	}
	client, err := NewRedisClient(ctx, LoadRedisConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	return client, nil
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(ctx context.Context, config RedisConfig, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns
	opt.DialTimeout = config.DialTimeout
	opt.ReadTimeout = config.ReadTimeout
	opt.MaxRetries = config.MaxRetries

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.Info().
		Int("pool_size", config.PoolSize).
		Int("min_idle_conns", config.MinIdleConns).
		Dur("dial_timeout", config.DialTimeout).
		Dur("read_timeout", config.ReadTimeout).
		Int("max_retries", config.MaxRetries).
		Msg("Redis client initialized")
	return client, nil
}

// MonitorRedisPool logs the connection pool statistics every interval until
// ctx is done.
func MonitorRedisPool(ctx context.Context, client *redis.Client, interval time.Duration, log zerolog.Logger) {
	if client == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := client.PoolStats()
			log.Debug().
				Uint32("total", stats.TotalConns).
				Uint32("idle", stats.IdleConns).
				Uint32("stale", stats.StaleConns).
				Msg("Redis pool stats")
		}
	}
}
