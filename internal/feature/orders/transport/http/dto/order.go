// Package dto defines data transfer objects for the orders feature's HTTP transport layer.
package dto

import (
	"time"

	"shop_backend/internal/feature/orders/domain/entity"
)

// OrderItemReq is one requested line of a placement.
type OrderItemReq struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddressReq is the shipping destination of a placement.
type AddressReq struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// PlaceOrderReq is the request body for POST /orders.
type PlaceOrderReq struct {
	Items           []OrderItemReq `json:"items" binding:"required,min=1,dive"`
	ShippingAddress AddressReq     `json:"shipping_address" binding:"required"`
}

// UpdateStatusReq is the request body for PUT /orders/:id/status.
type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one priced line of an order.
type OrderItemResponse struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse is the public representation of an order.
type OrderResponse struct {
	ID              uint                   `json:"id"`
	Status          string                 `json:"status"`
	Total           float64                `json:"total"`
	ShippingAddress entity.ShippingAddress `json:"shipping_address"`
	Items           []OrderItemResponse    `json:"items"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ToOrderResponse maps an order entity to its public representation.
func ToOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

// ToOrderResponses maps a slice of order entities.
func ToOrderResponses(os []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(os))
	for i := range os {
		out = append(out, ToOrderResponse(&os[i]))
	}
	return out
}
