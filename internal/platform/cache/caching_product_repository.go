// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/feature/catalog/domain/entity"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	ordersusecase "shop_backend/internal/feature/orders/usecase"
)

// ProductStore is the full product persistence surface the decorator wraps:
// the catalog repository plus the order engine's reservation primitives.
type ProductStore interface {
	catalogusecase.ProductRepository
	ordersusecase.StockReserver
}

// CachingProductRepository decorates a ProductStore with Redis caching of the
// shop view. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Every write — catalog
// mutation or stock movement — invalidates the cached views, so buyers never
// browse listings whose stock or price is known to be stale beyond the TTL.
type CachingProductRepository struct {
	inner     ProductStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies the full store.
var _ ProductStore = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductStore with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "shop".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner ProductStore, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "shop"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindShopView retrieves the browsing surface, checking the cache first and
// falling back to the database.
func (c *CachingProductRepository) FindShopView(ctx context.Context, viewerID uint) ([]entity.Product, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindShopView(ctx, viewerID)
	}

	key := c.viewKey(viewerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindShopView(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts a product and invalidates the cached shop views.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves a product and invalidates the cached shop views.
func (c *CachingProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a product and invalidates the cached shop views.
func (c *CachingProductRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DecrementStock reserves stock through the underlying store and invalidates
// the cached shop views. The atomicity of the reservation lives entirely in
// the inner store; the cache is never consulted on the write path.
func (c *CachingProductRepository) DecrementStock(ctx context.Context, productID uint, qty int) (*entity.Product, error) {
	p, err := c.inner.DecrementStock(ctx, productID, qty)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return p, nil
}

// RestoreStock compensates a reservation and invalidates the cached shop views.
func (c *CachingProductRepository) RestoreStock(ctx context.Context, productID uint, qty int) error {
	if err := c.inner.RestoreStock(ctx, productID, qty); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID delegates to the underlying store. Single-product reads are cheap
// and must observe current stock, so they are never cached.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByOwner delegates to the underlying store. The management surface
// always shows fresh data.
func (c *CachingProductRepository) FindByOwner(ctx context.Context, ownerID uint) ([]entity.Product, error) {
	return c.inner.FindByOwner(ctx, ownerID)
}

// viewKey generates the cache key for one viewer's shop view.
func (c *CachingProductRepository) viewKey(viewerID uint) string {
	return fmt.Sprintf("%s:view:%d", c.namespace, viewerID)
}

// invalidate drops every cached shop view. Any product write can change any
// other user's browsing surface, so the whole namespace goes. Best effort:
// a failed invalidation only means a stale view until the TTL expires.
func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":view:*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
