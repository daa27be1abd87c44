// Package usecase implements the business logic for the catalog feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when no product exists with the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotProductOwner is returned when a user attempts to mutate or delete
	// a product they do not own.
	ErrNotProductOwner = errors.New("not the product owner")

	// ErrInvalidCategory is returned when a category is outside the closed set.
	ErrInvalidCategory = errors.New("invalid product category")

	// ErrInvalidPrice is returned when a price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidStock is returned when a stock count is negative.
	ErrInvalidStock = errors.New("stock must not be negative")
)

// InsufficientStockError is returned by the conditional stock decrement when
// the available stock cannot cover the requested quantity. It carries enough
// detail for the caller to report exactly which product lost the race.
type InsufficientStockError struct {
	ProductID uint
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available, %d requested",
		e.ProductID, e.Available, e.Requested)
}
