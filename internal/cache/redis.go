package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	vehiclesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, vehiclesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		vehiclesTTL: vehiclesTTL,
	}
}

func (c *RedisCache) GetVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	data, err := c.client.Get(ctx, vehiclesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *RedisCache) SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehiclesKey(), payload, c.vehiclesTTL).Err()
}

func (c *RedisCache) InvalidateVehicles(ctx context.Context) error {
	return c.client.Del(ctx, vehiclesKey()).Err()
}

// AcquireVehicleLock takes the per-vehicle mutex guarding the
// conflict-check-then-write sequence. The TTL bounds how long a crashed
// holder can keep the vehicle blocked.
func (c *RedisCache) AcquireVehicleLock(ctx context.Context, vehicleID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, vehicleLockKey(vehicleID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseVehicleLock(ctx context.Context, vehicleID int64) error {
	return c.client.Del(ctx, vehicleLockKey(vehicleID)).Err()
}

func vehiclesKey() string {
	return "cache:vehicles"
}

func vehicleLockKey(vehicleID int64) string {
	return fmt.Sprintf("lock:vehicle:%d", vehicleID)
}
