package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
)

const availableRoomsKey = "rooms:available"

// RedisAvailabilityCache keeps the free-room list in Redis so repeated
// availability queries skip the database between invalidations.
type RedisAvailabilityCache struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client}
}

func (r *RedisAvailabilityCache) GetAvailableRooms(ctx context.Context) ([]*models.RoomDetail, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, availableRoomsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get available rooms from redis: %w", err)
	}

	var rooms []*models.RoomDetail
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal available rooms: %w", err)
	}
	return rooms, true, nil
}

func (r *RedisAvailabilityCache) SetAvailableRooms(ctx context.Context, rooms []*models.RoomDetail, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal available rooms: %w", err)
	}

	if err := r.client.Set(ctx, availableRoomsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set available rooms in redis: %w", err)
	}
	return nil
}

func (r *RedisAvailabilityCache) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, availableRoomsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete available rooms from redis: %w", err)
	}
	return nil
}

func (r *RedisAvailabilityCache) Healthy(ctx context.Context) bool {
	if r.client == nil {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}

func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
