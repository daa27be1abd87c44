// Package entity defines the domain models for the orders feature.
package entity

import "time"

// Status is the lifecycle state of an order. The set is closed; the only
// buyer-initiated transition is pending -> cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the free-form destination recorded on an order.
type ShippingAddress struct {
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	Zip     string `gorm:"size:20" json:"zip"`
	Country string `gorm:"size:100" json:"country"`
}

// Order is an immutable record of a completed placement. Only Status may
// change after creation.
type Order struct {
	// ID is the unique identifier for the order.
	ID uint `gorm:"primaryKey"`

	// BuyerID references the user who placed the order.
	BuyerID uint `gorm:"index;not null"`

	// Status is the lifecycle state, pending at creation.
	Status Status `gorm:"size:16;not null;default:pending"`

	// Total is the sum of quantity x captured unit price over all items.
	Total float64 `gorm:"not null"`

	// ShippingAddress is stored inline on the order row.
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`

	// Items are the priced line items of the order.
	Items []OrderItem `gorm:"foreignKey:OrderID"`

	// CreatedAt is the placement timestamp.
	CreatedAt time.Time
}

// OrderItem is a single priced line of an order. Price is the unit price
// captured at reservation time; it never changes even when the product's
// current price later does.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`
}
