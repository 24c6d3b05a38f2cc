// Package cache stores fetched exchange rates in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petquote/internal/models"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// SetWithTTL stores value as JSON.
func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Rate caching
func (s *CacheService) SetRate(ctx context.Context, rate models.ExchangeRate, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	return s.SetWithTTL(ctx, s.GenerateKey("rate", "source", rate.Source), rate, ttl)
}

func (s *CacheService) GetRate(ctx context.Context, source string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	found, err := s.Get(ctx, s.GenerateKey("rate", "source", source), &rate)
	if err != nil || !found {
		return nil, err
	}
	return &rate, nil
}

func (s *CacheService) InvalidateRate(ctx context.Context, source string) error {
	return s.Delete(ctx, s.GenerateKey("rate", "source", source))
}

// Ping checks the Redis connection.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
