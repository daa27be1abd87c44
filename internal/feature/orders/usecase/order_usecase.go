package usecase

import (
	"context"
	"fmt"
	"log/slog"

	catalogentity "shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/orders/domain/entity"
)

// OrderRepository abstracts the persistence layer for orders.
// Following Go convention the interface is defined by the consumer (usecase),
// not the provider (adapters).
type OrderRepository interface {
	// Create persists an order together with its items in one transaction.
	Create(ctx context.Context, o *entity.Order) error

	// FindByID retrieves an order with its items, returning ErrOrderNotFound
	// when missing.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// FindByBuyer retrieves all orders placed by buyerID, newest first.
	FindByBuyer(ctx context.Context, buyerID uint) ([]entity.Order, error)

	// UpdateStatus conditionally moves an order from one status to another.
	// It returns ErrInvalidTransition when the order is no longer in the
	// expected source status (e.g. a concurrent cancellation won).
	UpdateStatus(ctx context.Context, id uint, from, to entity.Status) error
}

// StockReserver is the slice of the catalog the order engine depends on: the
// atomic conditional decrement and its compensation. The catalog adapter
// satisfies it.
type StockReserver interface {
	// DecrementStock atomically reserves qty units and returns the product
	// row read at the moment of the decrement (price capture).
	DecrementStock(ctx context.Context, productID uint, qty int) (*catalogentity.Product, error)

	// RestoreStock returns qty units, compensating a prior decrement.
	RestoreStock(ctx context.Context, productID uint, qty int) error
}

// OrderItemInput is one requested (product, quantity) pair of a placement.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// orderUsecase implements the order engine.
type orderUsecase struct {
	orders OrderRepository
	stock  StockReserver
}

// NewOrderUsecase creates a new orderUsecase instance.
func NewOrderUsecase(orders OrderRepository, stock StockReserver) *orderUsecase {
	return &orderUsecase{orders: orders, stock: stock}
}

// PlaceOrder validates the requested items, reserves stock per product with
// the atomic conditional decrement, captures each unit price at the moment of
// its decrement, and persists a pending order with the computed total.
//
// The placement is all-or-nothing: when any reservation or the final persist
// fails, every decrement already applied is compensated before the error is
// returned, so no partial decrement ever survives — including when the
// request context is cancelled between items.
func (u *orderUsecase) PlaceOrder(ctx context.Context, buyerID uint, items []OrderItemInput, addr entity.ShippingAddress) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, it.ProductID)
		}
	}

	reserved := make([]OrderItemInput, 0, len(items))
	lines := make([]entity.OrderItem, 0, len(items))
	var total float64

	for _, it := range items {
		p, err := u.stock.DecrementStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			u.rollback(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, it)
		lines = append(lines, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}

	order := &entity.Order{
		BuyerID:         buyerID,
		Status:          entity.StatusPending,
		Total:           total,
		ShippingAddress: addr,
		Items:           lines,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		u.rollback(ctx, reserved)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, nil
}

// rollback compensates the decrements already applied for a failed placement.
// It runs detached from the caller's cancellation so an aborted request still
// restores its reservations.
func (u *orderUsecase) rollback(ctx context.Context, reserved []OrderItemInput) {
	ctx = context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		it := reserved[i]
		if err := u.stock.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			slog.Error("stock compensation failed", "error", err,
				"product_id", it.ProductID, "quantity", it.Quantity)
		}
	}
}

// UpdateStatus applies the single buyer-initiated transition
// pending -> cancelled. Any other target, or a transition from a non-pending
// state, fails with ErrInvalidTransition; a foreign order fails with
// ErrNotOrderOwner.
//
// Cancellation deliberately does not restore stock: the reservation is
// considered consumed once placed, matching the storefront's behavior.
// A restock flow would be a separate, explicit feature.
func (u *orderUsecase) UpdateStatus(ctx context.Context, buyerID, orderID uint, newStatus entity.Status) (*entity.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrNotOrderOwner
	}
	if newStatus != entity.StatusCancelled || o.Status != entity.StatusPending {
		return nil, ErrInvalidTransition
	}
	// Conditional update so a concurrent transition cannot be applied twice.
	if err := u.orders.UpdateStatus(ctx, orderID, entity.StatusPending, entity.StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = entity.StatusCancelled
	return o, nil
}

// GetOrder returns an order with its items. Only the buyer may read it.
func (u *orderUsecase) GetOrder(ctx context.Context, buyerID, orderID uint) (*entity.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

// ListOrders returns the buyer's orders, newest first.
func (u *orderUsecase) ListOrders(ctx context.Context, buyerID uint) ([]entity.Order, error) {
	return u.orders.FindByBuyer(ctx, buyerID)
}
