package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"TradePilot/internal/model"
)

// RedisCache shares fetched series across instances via Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, symbol string, tf model.Timeframe) ([]model.PricePoint, bool) {
	data, err := c.client.Get(ctx, seriesKey(symbol, tf)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] redis get %s/%s: %v", symbol, tf, err)
		}
		return nil, false
	}
	var points []model.PricePoint
	if err := json.Unmarshal([]byte(data), &points); err != nil {
		log.Printf("[WARN] redis decode %s/%s: %v", symbol, tf, err)
		return nil, false
	}
	return points, true
}

func (c *RedisCache) Set(ctx context.Context, symbol string, tf model.Timeframe, points []model.PricePoint) error {
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	return c.client.Set(ctx, seriesKey(symbol, tf), data, c.ttl).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }
