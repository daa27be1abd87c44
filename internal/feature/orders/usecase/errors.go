// Package usecase implements the order engine: placement, status transitions
// and buyer-scoped reads.
package usecase

import "errors"

var (
	// ErrEmptyOrder is returned when a placement contains no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrInvalidQuantity is returned when an item quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrOrderNotFound is returned when no order exists with the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotOrderOwner is returned when a user touches an order they did not place.
	ErrNotOrderOwner = errors.New("not the order owner")

	// ErrInvalidTransition is returned for any status change other than
	// pending -> cancelled, including a repeated cancellation.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
