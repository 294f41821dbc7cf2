package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vuhd/tourbooking/config"
	"github.com/vuhd/tourbooking/internal/domain"
)

type RedisCache struct {
	client   *redis.Client
	toursTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, toursTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		toursTTL: toursTTL,
	}
}

func (c *RedisCache) GetTours(ctx context.Context) ([]domain.Tour, error) {
	data, err := c.client.Get(ctx, toursKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var tours []domain.Tour
	if err := json.Unmarshal(data, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (c *RedisCache) SetTours(ctx context.Context, tours []domain.Tour) error {
	payload, err := json.Marshal(tours)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, toursKey(), payload, c.toursTTL).Err()
}

func (c *RedisCache) GetTour(ctx context.Context, slug string) (*domain.Tour, error) {
	data, err := c.client.Get(ctx, tourKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var tour domain.Tour
	if err := json.Unmarshal(data, &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (c *RedisCache) SetTour(ctx context.Context, tour *domain.Tour) error {
	payload, err := json.Marshal(tour)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tourKey(tour.Slug), payload, c.toursTTL).Err()
}

// AcquireSubmitLock is the single-flight gate on invoice submission: a
// second submit with the same key is rejected until the first resolves or
// the TTL lapses.
func (c *RedisCache) AcquireSubmitLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, submitLockKey(key), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSubmitLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, submitLockKey(key)).Err()
}

func toursKey() string {
	return "cache:tours"
}

func tourKey(slug string) string {
	return fmt.Sprintf("cache:tour:%s", slug)
}

func submitLockKey(key string) string {
	return fmt.Sprintf("lock:submit:%s", key)
}
