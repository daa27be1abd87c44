// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shop_backend/internal/feature/catalog/adapters"
	"shop_backend/internal/platform/cache"
)

// shopViewTTL bounds how stale a cached browsing surface may get even when
// invalidation misses.
const shopViewTTL = time.Minute

// NewProductStore creates the product store, wrapped with the Redis shop-view
// cache. With a nil Redis client the decorator transparently bypasses the
// cache, so callers never need to care whether Redis is available.
func NewProductStore(db *gorm.DB, rdb *redis.Client) *cache.CachingProductRepository {
	repo := adapters.NewProductMySQL(db)
	return cache.NewCachingProductRepository(rdb, shopViewTTL, repo, "shop")
}
