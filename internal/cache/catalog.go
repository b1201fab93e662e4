// Package cache provides a Redis-backed read-through cache for the product
// catalog. The cache is strictly optional: every failure is treated as a
// miss and the catalog falls back to the gateway.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xenking/shophub/internal/domain/product"
)

const catalogKey = "shophub:catalog"

// Catalog caches the product list under a single key with a TTL.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalog creates a catalog cache.
func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

// Get returns the cached catalog. Any error or absent key is a miss.
func (c *Catalog) Get(ctx context.Context) ([]product.Product, bool) {
	data, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			zctx.From(ctx).Debug("Catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// Set stores the catalog. Failures are logged and otherwise ignored.
func (c *Catalog) Set(ctx context.Context, products []product.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		zctx.From(ctx).Debug("Catalog cache write failed", zap.Error(err))
	}
}
