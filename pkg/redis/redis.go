package redis

import (
	"context"
	"fmt"
	"highscores/pkg/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// NewClient creates the client and checks that the server answers.
func NewClient(ctx context.Context, cfg config.RedisConfiguration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   1,
		PoolSize:     2,
		DialTimeout:  time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("couldn't reach redis at %s: %w", cfg.Addr(), err)
	}

	return &RedisClient{Client: client}, nil
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
