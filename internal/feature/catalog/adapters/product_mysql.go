// Package adapters provides the repository implementations for the catalog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
)

// productMySQL is the MySQL implementation of the catalog repositories.
// It also provides the atomic stock reservation primitives consumed by the
// order engine.
type productMySQL struct {
	db *gorm.DB
}

// Compile-time check that productMySQL satisfies the catalog repository.
var _ usecase.ProductRepository = (*productMySQL)(nil)

// NewProductMySQL creates a new productMySQL instance with the given gorm.DB
// connection. Constructor for dependency injection.
func NewProductMySQL(db *gorm.DB) *productMySQL {
	return &productMySQL{db: db}
}

// Create inserts a product.
func (r *productMySQL) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID retrieves a product by id.
// Returns usecase.ErrProductNotFound when it does not exist.
func (r *productMySQL) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOwner retrieves all products listed by ownerID, newest first.
func (r *productMySQL) FindByOwner(ctx context.Context, ownerID uint) ([]entity.Product, error) {
	var ps []entity.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// FindShopView retrieves the browsing surface for viewerID: active products
// with stock, excluding the viewer's own listings, newest first.
func (r *productMySQL) FindShopView(ctx context.Context, viewerID uint) ([]entity.Product, error) {
	var ps []entity.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock > 0 AND owner_id <> ?", true, viewerID).
		Order("created_at DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Update saves all fields of an existing product.
func (r *productMySQL) Update(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a product by id.
func (r *productMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

// DecrementStock atomically reserves qty units of a product. The conditional
// UPDATE ("stock = stock - qty WHERE stock >= qty") is the serialization
// point: two concurrent reservations can never both succeed when their
// combined quantity exceeds the available stock. The returned product row is
// read inside the same transaction, so its price is the price at the moment
// of the decrement.
//
// Returns usecase.ErrProductNotFound when the product does not exist and
// *usecase.InsufficientStockError when stock cannot cover qty.
func (r *productMySQL) DecrementStock(ctx context.Context, id uint, qty int) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Product{}).
			Where("id = ? AND stock >= ?", id, qty).
			Update("stock", gorm.Expr("stock - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the product is missing or the remaining stock cannot
			// cover qty; read the row to tell the two apart.
			if err := tx.First(&p, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return usecase.ErrProductNotFound
				}
				return err
			}
			return &usecase.InsufficientStockError{ProductID: id, Available: p.Stock, Requested: qty}
		}
		return tx.First(&p, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RestoreStock adds qty units back to a product. It is the compensation for
// DecrementStock when a later item in the same order fails.
func (r *productMySQL) RestoreStock(ctx context.Context, id uint, qty int) error {
	res := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}
