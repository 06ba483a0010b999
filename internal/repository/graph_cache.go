package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/bayillag/epigeo_surveillance/internal/spatial"
	"github.com/redis/go-redis/v9"
)

const graphKeyPrefix = "region_graph:"

// GraphCache хранит снимки графа смежности в Redis, чтобы экземпляры сервиса не строили его заново
type GraphCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewGraphCache(redisClient *redis.Client, ttl time.Duration) *GraphCache {
	return &GraphCache{redisClient: redisClient, ttl: ttl}
}

var _ service.GraphStore = (*GraphCache)(nil)

// LoadGraph пытается получить граф из Redis; промах возвращает nil без ошибки
func (c *GraphCache) LoadGraph(ctx context.Context, fingerprint string) (*spatial.GraphSnapshot, error) {
	val, err := c.redisClient.Get(ctx, graphKeyPrefix+fingerprint).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get graph from cache: %w", err)
	}

	snapshot := &spatial.GraphSnapshot{}
	if err := json.Unmarshal(val, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph from cache: %w", err)
	}
	return snapshot, nil
}

// SaveGraph сохраняет граф в Redis
func (c *GraphCache) SaveGraph(ctx context.Context, snapshot spatial.GraphSnapshot) error {
	val, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal graph for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, graphKeyPrefix+snapshot.Fingerprint, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set graph in cache: %w", err)
	}
	return nil
}
