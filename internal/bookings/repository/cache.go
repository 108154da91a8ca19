package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laundry/pkg/logger"
	"laundry/pkg/model"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "laundry:"

// cacheStore is the part of *redis.Client the read-through cache needs.
type cacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// readThrough returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never fail the lookup.
func readThrough[T any](ctx context.Context, store cacheStore, log *logger.Logger, key string, ttl time.Duration, load func() (*T, error)) (*T, error) {
	raw, err := store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal(raw, &v)
		if jsonErr == nil {
			return &v, nil
		}
		log.Warn("Discarding undecodable cache entry", "key", key, "error", jsonErr)
	case errors.Is(err, redis.Nil):
	default:
		log.Warn("Reference cache read failed", "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(v); jsonErr != nil {
		log.Warn("Failed to encode cache entry", "key", key, "error", jsonErr)
	} else if setErr := store.Set(ctx, key, encoded, ttl).Err(); setErr != nil {
		log.Warn("Reference cache write failed", "key", key, "error", setErr)
	}
	return v, nil
}

type CachedHouseRepository struct {
	next  HouseRepository
	store cacheStore
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedHouseRepository(next HouseRepository, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedHouseRepository {
	return &CachedHouseRepository{next: next, store: rdb, ttl: ttl, log: log}
}

func (r *CachedHouseRepository) FindByID(ctx context.Context, id model.HouseID) (*model.House, error) {
	key := fmt.Sprintf("%shouse:%d", cacheKeyPrefix, id)
	return readThrough(ctx, r.store, r.log, key, r.ttl, func() (*model.House, error) {
		return r.next.FindByID(ctx, id)
	})
}

type CachedLaundryRoomRepository struct {
	next  LaundryRoomRepository
	store cacheStore
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedLaundryRoomRepository(next LaundryRoomRepository, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedLaundryRoomRepository {
	return &CachedLaundryRoomRepository{next: next, store: rdb, ttl: ttl, log: log}
}

func (r *CachedLaundryRoomRepository) FindByID(ctx context.Context, id model.LaundryRoomID) (*model.LaundryRoom, error) {
	key := fmt.Sprintf("%slaundry_room:%d", cacheKeyPrefix, id)
	return readThrough(ctx, r.store, r.log, key, r.ttl, func() (*model.LaundryRoom, error) {
		return r.next.FindByID(ctx, id)
	})
}
