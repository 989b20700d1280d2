// Package cache keeps the public form's catalog reads (active event and its
// option sets) off the database. Entries are JSON blobs with a short TTL;
// any cache failure falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(addr, password string, db int, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Catalog{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Get unmarshals the cached value for key into dest, reporting whether a
// usable entry was found.
func (c *Catalog) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err = json.Unmarshal(raw, dest); err != nil {
		zap.L().Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (c *Catalog) Set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err = c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		zap.L().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops entries after admin edits so the public form picks up
// configuration changes within one request rather than one TTL.
func (c *Catalog) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		zap.L().Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (c *Catalog) Close() error {
	return c.rdb.Close()
}
