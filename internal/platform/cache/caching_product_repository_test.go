package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"shop_backend/internal/feature/catalog/domain/entity"
)

// mockProductStore is a func-field mock of the full ProductStore surface.
type mockProductStore struct {
	createFn         func(ctx context.Context, p *entity.Product) error
	findByIDFn       func(ctx context.Context, id uint) (*entity.Product, error)
	findByOwnerFn    func(ctx context.Context, ownerID uint) ([]entity.Product, error)
	findShopViewFn   func(ctx context.Context, viewerID uint) ([]entity.Product, error)
	updateFn         func(ctx context.Context, p *entity.Product) error
	deleteFn         func(ctx context.Context, id uint) error
	decrementStockFn func(ctx context.Context, productID uint, qty int) (*entity.Product, error)
	restoreStockFn   func(ctx context.Context, productID uint, qty int) error
}

func (m *mockProductStore) Create(ctx context.Context, p *entity.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProductStore) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProductStore) FindByOwner(ctx context.Context, ownerID uint) ([]entity.Product, error) {
	if m.findByOwnerFn != nil {
		return m.findByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockProductStore) FindShopView(ctx context.Context, viewerID uint) ([]entity.Product, error) {
	if m.findShopViewFn != nil {
		return m.findShopViewFn(ctx, viewerID)
	}
	return nil, nil
}

func (m *mockProductStore) Update(ctx context.Context, p *entity.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProductStore) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductStore) DecrementStock(ctx context.Context, productID uint, qty int) (*entity.Product, error) {
	if m.decrementStockFn != nil {
		return m.decrementStockFn(ctx, productID, qty)
	}
	return &entity.Product{ID: productID}, nil
}

func (m *mockProductStore) RestoreStock(ctx context.Context, productID uint, qty int) error {
	if m.restoreStockFn != nil {
		return m.restoreStockFn(ctx, productID, qty)
	}
	return nil
}

func sampleView() []entity.Product {
	return []entity.Product{
		{ID: 1, OwnerID: 2, Name: "Camera", Price: 499.0, Stock: 3, IsActive: true},
	}
}

// TestNewCachingProductRepository_Defaults verifies the TTL and namespace defaults.
func TestNewCachingProductRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       time.Minute,
			expectedNamespace: "shop",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       time.Minute,
			expectedNamespace: "shop",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingProductRepository(nil, tt.ttl, &mockProductStore{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingProductRepository_FindShopView_NilRedis verifies the cache is
// bypassed entirely when no Redis client is configured.
func TestCachingProductRepository_FindShopView_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockProductStore{
		findShopViewFn: func(ctx context.Context, viewerID uint) ([]entity.Product, error) {
			return sampleView(), nil
		},
	}

	repo := NewCachingProductRepository(nil, time.Minute, inner, "shop")

	view, err := repo.FindShopView(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view) != 1 {
		t.Errorf("expected 1 product, got %d", len(view))
	}
}

// TestCachingProductRepository_FindShopView_CacheHit verifies a hit returns
// the cached view without touching the database.
func TestCachingProductRepository_FindShopView_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(sampleView())
	mock.ExpectGet("shop:view:42").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockProductStore{
		findShopViewFn: func(ctx context.Context, viewerID uint) ([]entity.Product, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	view, err := repo.FindShopView(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner store should not be called on cache hit")
	}
	if len(view) != 1 || view[0].Name != "Camera" {
		t.Errorf("unexpected view: %+v", view)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindShopView_CacheMiss verifies a miss falls
// back to the database and fills the cache.
func TestCachingProductRepository_FindShopView_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleView())
	mock.ExpectGet("shop:view:42").RedisNil()
	mock.ExpectSet("shop:view:42", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockProductStore{
		findShopViewFn: func(ctx context.Context, viewerID uint) ([]entity.Product, error) {
			return sampleView(), nil
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	view, err := repo.FindShopView(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view) != 1 {
		t.Errorf("expected 1 product, got %d", len(view))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindShopView_CorruptedCache verifies a corrupted
// entry is deleted and the database result re-cached.
func TestCachingProductRepository_FindShopView_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleView())
	mock.ExpectGet("shop:view:42").SetVal("invalid json")
	mock.ExpectDel("shop:view:42").SetVal(1)
	mock.ExpectSet("shop:view:42", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockProductStore{
		findShopViewFn: func(ctx context.Context, viewerID uint) ([]entity.Product, error) {
			return sampleView(), nil
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	view, err := repo.FindShopView(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view) != 1 {
		t.Errorf("expected 1 product, got %d", len(view))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindShopView_InnerError verifies a database
// error is propagated unchanged.
func TestCachingProductRepository_FindShopView_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("shop:view:42").RedisNil()

	inner := &mockProductStore{
		findShopViewFn: func(ctx context.Context, viewerID uint) ([]entity.Product, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	_, err := repo.FindShopView(context.Background(), 42)

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingProductRepository_DecrementStock_Invalidation verifies a stock
// reservation drops every cached shop view.
func TestCachingProductRepository_DecrementStock_Invalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "shop:view:*", 200).SetVal([]string{"shop:view:1", "shop:view:2"}, 0)
	mock.ExpectDel("shop:view:1", "shop:view:2").SetVal(2)

	inner := &mockProductStore{
		decrementStockFn: func(ctx context.Context, productID uint, qty int) (*entity.Product, error) {
			return &entity.Product{ID: productID, Stock: 1}, nil
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	p, err := repo.DecrementStock(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("expected product 7, got %d", p.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_DecrementStock_InnerError verifies a failed
// reservation does not invalidate the cache.
func TestCachingProductRepository_DecrementStock_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("insufficient stock")
	inner := &mockProductStore{
		decrementStockFn: func(ctx context.Context, productID uint, qty int) (*entity.Product, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")
	_, err := repo.DecrementStock(context.Background(), 7, 2)

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	// No SCAN/DEL expectations were registered, so any invalidation would fail here.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_WriteInvalidation verifies every catalog write
// path drops the cached views.
func TestCachingProductRepository_WriteInvalidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(repo *CachingProductRepository) error
	}{
		{"create", func(repo *CachingProductRepository) error {
			return repo.Create(context.Background(), &entity.Product{Name: "x"})
		}},
		{"update", func(repo *CachingProductRepository) error {
			return repo.Update(context.Background(), &entity.Product{ID: 1})
		}},
		{"delete", func(repo *CachingProductRepository) error {
			return repo.Delete(context.Background(), 1)
		}},
		{"restore stock", func(repo *CachingProductRepository) error {
			return repo.RestoreStock(context.Background(), 1, 2)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()

			mock.ExpectScan(0, "shop:view:*", 200).SetVal([]string{"shop:view:1"}, 0)
			mock.ExpectDel("shop:view:1").SetVal(1)

			repo := NewCachingProductRepository(rdb, time.Minute, &mockProductStore{}, "shop")
			if err := tt.call(repo); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled mock expectations: %v", err)
			}
		})
	}
}

// TestCachingProductRepository_ReadDelegation verifies single-product and
// owner reads bypass the cache.
func TestCachingProductRepository_ReadDelegation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockProductStore{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Product, error) {
			return &entity.Product{ID: id}, nil
		},
		findByOwnerFn: func(ctx context.Context, ownerID uint) ([]entity.Product, error) {
			return sampleView(), nil
		},
	}

	repo := NewCachingProductRepository(rdb, time.Minute, inner, "shop")

	p, err := repo.FindByID(context.Background(), 7)
	if err != nil || p.ID != 7 {
		t.Errorf("FindByID = %+v, %v", p, err)
	}
	own, err := repo.FindByOwner(context.Background(), 2)
	if err != nil || len(own) != 1 {
		t.Errorf("FindByOwner = %+v, %v", own, err)
	}
	// No Redis expectations: any cache access would fail the mock.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
