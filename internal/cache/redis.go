package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by GetInt when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// RedisClient wraps redis.Client and records every round-trip in metrics
type RedisClient struct {
	client *redis.Client
}

var globalRedis *RedisClient

// NewRedisClient connects to Redis and installs the client as the process-wide instance
func NewRedisClient(host, port, password string) (*RedisClient, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Failed to connect to Redis", zap.String("addr", client.Options().Addr), zap.Error(err))
		return nil, err
	}

	rc := &RedisClient{client: client}
	globalRedis = rc

	logger.Log.Info("Redis client connected", zap.String("address", addr))
	return rc, nil
}

// GetRedisClient returns the process-wide client, or nil when Redis is not configured
func GetRedisClient() *RedisClient {
	return globalRedis
}

// Close closes the connection pool
func (rc *RedisClient) Close() error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}

// Ping checks connectivity
func (rc *RedisClient) Ping(ctx context.Context) error {
	start := time.Now()
	err := rc.client.Ping(ctx).Err()
	metrics.RecordRedisOperation("ping", start, err)
	return err
}

// GetInt reads an integer counter, returning ErrCacheMiss when it is unset
func (rc *RedisClient) GetInt(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	val, err := rc.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		metrics.RecordRedisOperation("get", start, nil)
		return 0, ErrCacheMiss
	}
	metrics.RecordRedisOperation("get", start, err)
	return val, err
}

// IncrBy increments a key by a value
func (rc *RedisClient) IncrBy(ctx context.Context, key string, increment int64) (int64, error) {
	start := time.Now()
	val, err := rc.client.IncrBy(ctx, key, increment).Result()
	metrics.RecordRedisOperation("incrby", start, err)
	return val, err
}

// Expire sets a TTL on a key
func (rc *RedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	start := time.Now()
	err := rc.client.Expire(ctx, key, ttl).Err()
	metrics.RecordRedisOperation("expire", start, err)
	return err
}

// TTL returns the remaining time to live of a key
func (rc *RedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	start := time.Now()
	ttl, err := rc.client.TTL(ctx, key).Result()
	metrics.RecordRedisOperation("ttl", start, err)
	return ttl, err
}
