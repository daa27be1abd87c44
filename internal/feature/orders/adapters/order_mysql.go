// Package adapters provides the repository implementations for the orders feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/usecase"
)

// orderMySQL is the MySQL implementation of the OrderRepository interface.
type orderMySQL struct {
	db *gorm.DB
}

// Compile-time check that orderMySQL satisfies the repository interface.
var _ usecase.OrderRepository = (*orderMySQL)(nil)

// NewOrderMySQL creates a new orderMySQL instance with the given gorm.DB
// connection. Constructor for dependency injection.
func NewOrderMySQL(db *gorm.DB) *orderMySQL {
	return &orderMySQL{db: db}
}

// Create persists the order and its line items in a single transaction.
// GORM inserts the associated Items rows together with the order.
func (r *orderMySQL) Create(ctx context.Context, o *entity.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// FindByID retrieves an order with its items preloaded.
// Returns usecase.ErrOrderNotFound when it does not exist.
func (r *orderMySQL) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByBuyer retrieves all orders placed by buyerID, newest first, with
// items preloaded.
func (r *orderMySQL) FindByBuyer(ctx context.Context, buyerID uint) ([]entity.Order, error) {
	var os []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&os).Error
	if err != nil {
		return nil, err
	}
	return os, nil
}

// UpdateStatus conditionally moves an order from one status to another.
// The WHERE clause on the source status makes the transition atomic: when a
// concurrent transition already won, zero rows match and
// usecase.ErrInvalidTransition is returned.
func (r *orderMySQL) UpdateStatus(ctx context.Context, id uint, from, to entity.Status) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInvalidTransition
	}
	return nil
}
