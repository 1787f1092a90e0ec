package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Service throttles callers by key.
type Service interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config configuration for rate limiting
type Config struct {
	Enabled  bool
	RedisURL string
	Requests int
	Window   time.Duration
}

// NewService creates a Redis-backed rate limiter, or a no-op one when
// rate limiting is disabled.
func NewService(config Config, logger *logrus.Logger) (Service, error) {
	if !config.Enabled {
		logger.Info("Rate limiting disabled")
		return &noopService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"requests": config.Requests,
		"window":   config.Window,
	}).Info("Rate limiting service initialized")

	return NewRedisService(client, config.Requests, config.Window, logger), nil
}

// NewRedisService wraps an existing Redis client as a rate limiter.
func NewRedisService(client *redis.Client, requests int, window time.Duration, logger *logrus.Logger) Service {
	return &redisService{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
	}
}

type redisService struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   *logrus.Logger
}

// Allow increments the caller's counter and reports whether it is still
// within the window limit.
func (s *redisService) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := "ratelimit:" + key

	pipeline := s.client.Pipeline()
	incrCmd := pipeline.Incr(ctx, counterKey)
	pipeline.Expire(ctx, counterKey, s.window)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to increment rate limit counter")
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	count := incrCmd.Val()
	if count > int64(s.requests) {
		s.logger.WithFields(logrus.Fields{
			"key":   key,
			"count": count,
			"limit": s.requests,
		}).Debug("Rate limit reached")
		return false, nil
	}

	return true, nil
}

// noopService always allows, used when rate limiting is disabled.
type noopService struct{}

func (n *noopService) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}
