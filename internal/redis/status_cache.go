package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voltgrid/internal/models"
)

// Cache keeps the latest device status in redis for quick reads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns redis-backed status cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) vehicleKey(vehicleID string) string {
	return fmt.Sprintf("status:vehicle:%s", vehicleID)
}

func (c *Cache) meterKey(meterID string) string {
	return fmt.Sprintf("status:meter:%s", meterID)
}

// SaveVehicle caches vehicle status.
func (c *Cache) SaveVehicle(ctx context.Context, status models.VehicleStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.vehicleKey(status.VehicleID), data, c.ttl).Err()
}

// GetVehicle returns cached vehicle status.
func (c *Cache) GetVehicle(ctx context.Context, vehicleID string) (*models.VehicleStatus, error) {
	result, err := c.client.Get(ctx, c.vehicleKey(vehicleID)).Result()
	if err != nil {
		return nil, err
	}
	var status models.VehicleStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SaveMeter caches meter status.
func (c *Cache) SaveMeter(ctx context.Context, status models.MeterStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.meterKey(status.MeterID), data, c.ttl).Err()
}

// GetMeter returns cached meter status.
func (c *Cache) GetMeter(ctx context.Context, meterID string) (*models.MeterStatus, error) {
	result, err := c.client.Get(ctx, c.meterKey(meterID)).Result()
	if err != nil {
		return nil, err
	}
	var status models.MeterStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
